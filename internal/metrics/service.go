package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github/chapool/quickpay-wallet/internal/config"
)

const namespace = "wallet"

// Service owns the prometheus registry and the collectors the wallet core reports to.
// A nil *Service is valid and records nothing.
type Service struct {
	Registry *prometheus.Registry

	storeFallbacks *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	sessionState   prometheus.Gauge
}

func New(cfg config.Server) (*Service, error) {
	reg := prometheus.NewRegistry()

	s := &Service{
		Registry: reg,
		storeFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "fallback_total",
			Help:      "Number of store operations served by the fallback backend after a primary failure.",
		}, []string{"op"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "transitions_total",
			Help:      "Number of wallet session operations by result.",
		}, []string{"op", "result"}),
		sessionState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "state",
			Help:      "Current session state (0 uninitialized, 1 locked, 2 unlocked).",
		}),
	}

	cs := []prometheus.Collector{s.storeFallbacks, s.transitions, s.sessionState}
	if cfg.Metrics.Enabled {
		cs = append(cs,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Service) StoreFallback(op string) {
	if s == nil {
		return
	}
	s.storeFallbacks.WithLabelValues(op).Inc()
}

func (s *Service) Transition(op string, err error) {
	if s == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	s.transitions.WithLabelValues(op, result).Inc()
}

func (s *Service) SessionState(state int) {
	if s == nil {
		return
	}
	s.sessionState.Set(float64(state))
}

// StoreFallbacks exposes the fallback counter, mainly for tests.
func (s *Service) StoreFallbacks() *prometheus.CounterVec {
	return s.storeFallbacks
}

// Transitions exposes the session transition counter, mainly for tests.
func (s *Service) Transitions() *prometheus.CounterVec {
	return s.transitions
}

// State exposes the session state gauge, mainly for tests.
func (s *Service) State() prometheus.Gauge {
	return s.sessionState
}
