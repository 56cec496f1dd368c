package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/api"
)

func newCreate() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Generates and stores a new wallet",
		Long: `Generates a new seed phrase, stores it encrypted on this device and
prints it once. Write it down; it is the only way to recover the wallet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, false, func(ctx context.Context, s *api.Server) error {
				mnemonic, err := s.Wallet.CreateWallet(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "seed phrase: %s\n\n", mnemonic)
				printStatus(out, s.Wallet.Snapshot())

				return nil
			})
		},
	}
}

func newImport() *cobra.Command {
	return &cobra.Command{
		Use:   "import [words...]",
		Short: "Stores an existing seed phrase",
		Long: `Stores an existing BIP39 seed phrase encrypted on this device.
Without arguments the phrase is read from the terminal without echo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mnemonic := strings.Join(args, " ")
			if len(args) == 0 {
				var err error
				if mnemonic, err = promptSecret(cmd, "Seed phrase: "); err != nil {
					return err
				}
			}

			return withSession(cmd, false, func(ctx context.Context, s *api.Server) error {
				if err := s.Wallet.ImportWallet(ctx, mnemonic); err != nil {
					return err
				}

				printStatus(cmd.OutOrStdout(), s.Wallet.Snapshot())

				return nil
			})
		},
	}
}
