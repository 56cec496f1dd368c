package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/util/command"
	"github/chapool/quickpay-wallet/internal/wallet/session"
	"golang.org/x/term"
)

const yesFlag = "yes"

var errNotConfirmed = errors.New("operation not confirmed")

func New() *cobra.Command {
	return command.NewSubcommandGroup("wallet",
		newStatus(),
		newNetworks(),
		newCreate(),
		newImport(),
		newExport(),
		newDisconnect(),
		newNetwork(),
	)
}

// withSession runs f against a bootstrapped session. Wallets are never
// created implicitly from the CLI.
func withSession(cmd *cobra.Command, unlock bool, f func(ctx context.Context, s *api.Server) error) error {
	cfg := config.DefaultServiceConfigFromEnv()

	return command.WithServer(cmd.Context(), cfg, func(ctx context.Context, s *api.Server) error {
		err := s.Wallet.Bootstrap(ctx, session.BootstrapOptions{AutoCreate: false, AutoUnlock: unlock})
		if err != nil {
			// The session stays Locked; f decides whether that is fatal.
			log.Warn().Err(err).Str("state", s.Wallet.State().String()).Msg("Failed to unlock wallet")
		}

		return f(ctx, s)
	})
}

func printStatus(w io.Writer, st session.Status) {
	fmt.Fprintf(w, "state:   %s\n", st.State)

	if st.Network != "" {
		fmt.Fprintf(w, "network: %s\n", st.Network)
	}
	if st.Address != "" {
		fmt.Fprintf(w, "address: %s\n", st.Address)
	}
	if st.Balance != nil {
		fmt.Fprintf(w, "balance: %s wei\n", st.Balance.String())
	}
}

// confirm passes when --yes is set or the user types "yes" on a terminal.
func confirm(cmd *cobra.Command, prompt string) error {
	yes, err := cmd.Flags().GetBool(yesFlag)
	if err != nil {
		return err
	}
	if yes {
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.Wrapf(errNotConfirmed, "pass --%s to run non-interactively", yesFlag)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s Type 'yes' to continue: ", prompt)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "failed to read confirmation")
	}

	if strings.TrimSpace(answer) != "yes" {
		return errNotConfirmed
	}

	return nil
}

// promptSecret reads a line from the terminal without echoing it.
func promptSecret(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal to read from")
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)

	b, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrap(err, "failed to read from terminal")
	}

	return string(b), nil
}
