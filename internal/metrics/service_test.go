package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/quickpay-wallet/internal/config"
	"github/chapool/quickpay-wallet/internal/metrics"
)

func TestServiceRecords(t *testing.T) {
	m, err := metrics.New(config.DefaultServiceConfigFromEnv())
	require.NoError(t, err)

	m.StoreFallback("set")
	m.StoreFallback("set")
	m.Transition("unlock", nil)
	m.Transition("unlock", errors.New("boom"))
	m.SessionState(2)

	assert.InDelta(t, 2, testutil.ToFloat64(m.StoreFallbacks().WithLabelValues("set")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Transitions().WithLabelValues("unlock", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Transitions().WithLabelValues("unlock", "error")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.State()), 0)
}

func TestNilServiceIsNoop(t *testing.T) {
	var m *metrics.Service

	assert.NotPanics(t, func() {
		m.StoreFallback("get")
		m.Transition("lock", nil)
		m.SessionState(1)
	})
}
