package probe

import (
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/config"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Runs liveness probes",
		Long:  `Checks that the configuration loads. Exits non-zero otherwise.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.DefaultServiceConfigFromEnv()

			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			if cfg.Store.DataDir == "" && !cfg.Store.InMemory {
				return fmt.Errorf("no data directory configured")
			}

			if verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "data dir: %s\n", cfg.Store.DataDir)
			}

			return nil
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}
