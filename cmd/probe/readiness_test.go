package probe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/api"
	"github/chapool/quickpay-wallet/internal/test"
)

func TestReadiness(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		cmd := newReadiness()
		var out bytes.Buffer
		cmd.SetOut(&out)

		require.NoError(t, readiness(t.Context(), cmd, s, true))
		assert.Contains(t, out.String(), "primary store: ok")
		assert.Contains(t, out.String(), "secondary store: ok")
	})
}
