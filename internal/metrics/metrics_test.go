package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-session/internal/config"
	"github/chapool/wallet-session/internal/provider"
	"github/chapool/wallet-session/internal/session"
)

func TestSessionMetrics(t *testing.T) {
	m, err := New(config.Server{})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.state.WithLabelValues("disconnected")), 0)

	p := provider.NewMock("MetaMask")
	p.Respond([]string{"0xABCDEF1234567890"}, nil)
	s := session.New(p, session.WithRecorder(m))
	s.Start()
	defer s.Close()

	_, err = s.Connect(testContext(t))
	require.NoError(t, err)

	p.Reject(provider.CodeUserRejected, "denied")
	_, err = s.Connect(testContext(t))
	require.Error(t, err)

	p.EmitAccountsChanged([]string{"0xBBB"})

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.connectTotal.WithLabelValues(session.OutcomeConnected)), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.connectTotal.WithLabelValues(string(session.ErrorKindUserRejected))), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.accountsChangedTotal), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.state.WithLabelValues("connected")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.state.WithLabelValues("disconnected")), 0)
}

func TestRuntimeCollectorsOnlyWhenEnabled(t *testing.T) {
	disabled, err := New(config.Server{})
	require.NoError(t, err)
	enabled, err := New(config.Server{Metrics: config.Metrics{Enabled: true}})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(disabled.Registry(), "go_goroutines")
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = testutil.GatherAndCount(enabled.Registry(), "go_goroutines")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
