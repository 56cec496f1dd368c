package wallet

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/api"
)

func newStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Shows the wallet state, address and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, true, func(_ context.Context, s *api.Server) error {
				printStatus(cmd.OutOrStdout(), s.Wallet.Snapshot())
				return nil
			})
		},
	}
}

func newNetworks() *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "Lists the known networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *api.Server) error {
				selected, _, err := s.Vault.LoadNetwork(ctx)
				if err != nil {
					return err
				}
				if selected == "" {
					selected = s.Config.Wallet.DefaultNetwork
				}

				for _, n := range s.Networks.List() {
					marker := " "
					if n.ID == selected {
						marker = "*"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s %-8s %-20s chain %-6d %s\n", marker, n.ID, n.DisplayName, n.ChainID, n.RPCURL)
				}

				return nil
			})
		},
	}
}
