package metrics

import (
	"testing"

	"github.com/adwski/chatsession/client/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	req := require.New(t)
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.EnvelopeSent(model.TypeHello)
	m.EnvelopeSent(model.TypePublicChat)
	m.EnvelopeSent(model.TypePublicChat)
	m.EnvelopeReceived(model.TypeClientList)
	m.DecodeError("unknown_type")
	m.SendFailure()
	m.State(model.StateReady)
	m.RosterSize(2)

	req.InDelta(2, testutil.ToFloat64(m.envelopesSent.WithLabelValues("public_chat")), 0)
	req.InDelta(1, testutil.ToFloat64(m.envelopesSent.WithLabelValues("hello")), 0)
	req.InDelta(1, testutil.ToFloat64(m.envelopesReceived.WithLabelValues("client_list")), 0)
	req.InDelta(1, testutil.ToFloat64(m.decodeErrors.WithLabelValues("unknown_type")), 0)
	req.InDelta(1, testutil.ToFloat64(m.sendFailures), 0)
	req.InDelta(3, testutil.ToFloat64(m.connectionState), 0)
	req.InDelta(2, testutil.ToFloat64(m.rosterSize), 0)

	n, err := testutil.GatherAndCount(reg)
	req.NoError(err)
	req.Equal(7, n)
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.EnvelopeSent(model.TypeHello)
		m.EnvelopeReceived(model.TypeHello)
		m.DecodeError("malformed")
		m.SendFailure()
		m.State(model.StateConnecting)
		m.RosterSize(1)
	})
}
