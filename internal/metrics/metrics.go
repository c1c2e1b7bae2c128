package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/session"
)

const namespace = "wallet_session"

var states = []session.State{
	session.StateDisconnected,
	session.StateConnecting,
	session.StateConnected,
}

// Service owns the prometheus registry and records session activity.
type Service struct {
	registry *prometheus.Registry

	connectTotal         *prometheus.CounterVec
	accountsChangedTotal prometheus.Counter
	state                *prometheus.GaugeVec
}

func New(cfg config.Server) (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		registry: registry,
		connectTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connect_total",
			Help:      "Connect attempts by outcome.",
		}, []string{"outcome"}),
		accountsChangedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_changed_total",
			Help:      "Account change notifications received from the wallet.",
		}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "state",
			Help:      "1 for the current connection state, 0 otherwise.",
		}, []string{"state"}),
	}

	toRegister := []prometheus.Collector{s.connectTotal, s.accountsChangedTotal, s.state}
	if cfg.Metrics.Enabled {
		toRegister = append(toRegister,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	for _, c := range toRegister {
		if err := registry.Register(c); err != nil {
			return nil, errors.Wrap(err, "failed to register collector")
		}
	}

	s.StateChanged(session.StateDisconnected)

	return s, nil
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

func (s *Service) ConnectFinished(outcome string) {
	s.connectTotal.WithLabelValues(outcome).Inc()
}

func (s *Service) AccountsChanged() {
	s.accountsChangedTotal.Inc()
}

func (s *Service) StateChanged(current session.State) {
	for _, state := range states {
		value := 0.0
		if state == current {
			value = 1
		}
		s.state.WithLabelValues(state.String()).Set(value)
	}
}
