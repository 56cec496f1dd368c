package wallet

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/api"
)

func newExport() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Prints the stored seed phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := confirm(cmd, "This prints your seed phrase in clear text."); err != nil {
				return err
			}

			return withSession(cmd, false, func(ctx context.Context, s *api.Server) error {
				mnemonic, err := s.Wallet.ExportSeedPhrase(ctx)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), mnemonic)

				return nil
			})
		},
	}

	cmd.Flags().BoolP(yesFlag, "y", false, "Skip the confirmation prompt.")

	return cmd
}

func newDisconnect() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Removes the wallet from this device",
		Long: `Removes the stored seed phrase, the device key and the network
preference. Without a backup of the seed phrase the wallet is lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := confirm(cmd, "This removes the wallet from this device."); err != nil {
				return err
			}

			return withSession(cmd, false, func(ctx context.Context, s *api.Server) error {
				if err := s.Wallet.DisconnectWallet(ctx); err != nil {
					return err
				}

				printStatus(cmd.OutOrStdout(), s.Wallet.Snapshot())

				return nil
			})
		},
	}

	cmd.Flags().BoolP(yesFlag, "y", false, "Skip the confirmation prompt.")

	return cmd
}
