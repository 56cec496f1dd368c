package probe

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/store"
	"github/chapool/quickpay-wallet/internal/util/command"
)

func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Runs readiness probes",
		Long:  `Checks that both store backends accept a write, a read and a delete.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}

			return command.WithServer(cmd.Context(), config.DefaultServiceConfigFromEnv(), func(ctx context.Context, s *api.Server) error {
				return readiness(ctx, cmd, s, verbose)
			})
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Show verbose output.")

	return cmd
}

func readiness(ctx context.Context, cmd *cobra.Command, s *api.Server, verbose bool) error {
	var result *multierror.Error

	backends := []struct {
		name string
		s    store.Store
	}{
		{"primary", s.Store.Primary},
		{"secondary", s.Store.Secondary},
	}

	for _, b := range backends {
		err := store.Check(ctx, b.s)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s store: %w", b.name, err))
		}

		if verbose {
			status := "ok"
			if err != nil {
				status = err.Error()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store: %s\n", b.name, status)
		}
	}

	return result.ErrorOrNil()
}
