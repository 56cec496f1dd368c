package wallet

import (
	"context"

	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/api"
)

func newNetwork() *cobra.Command {
	return &cobra.Command{
		Use:   "network <id>",
		Short: "Switches the wallet to another network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, true, func(ctx context.Context, s *api.Server) error {
				if err := s.Wallet.SwitchNetwork(ctx, args[0]); err != nil {
					return err
				}

				printStatus(cmd.OutOrStdout(), s.Wallet.Snapshot())

				return nil
			})
		},
	}
}
