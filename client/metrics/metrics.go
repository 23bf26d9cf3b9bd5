// Package metrics exposes session counters to Prometheus.
//
// All methods are safe to call on a nil *Metrics so components can run
// without a registry.
package metrics

import (
	"github.com/adwski/chatsession/client/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chat"

type Metrics struct {
	envelopesSent     *prometheus.CounterVec
	envelopesReceived *prometheus.CounterVec
	decodeErrors      *prometheus.CounterVec
	sendFailures      prometheus.Counter
	connectionState   prometheus.Gauge
	rosterSize        prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		envelopesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelopes_sent_total",
			Help:      "Envelopes written to the server, by type",
		}, []string{"type"}),
		envelopesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "envelopes_received_total",
			Help:      "Envelopes decoded from the server, by type",
		}, []string{"type"}),
		decodeErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Inbound frames dropped because they could not be decoded",
		}, []string{"reason"}),
		sendFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "send_failures_total",
			Help:      "Outbound envelopes that could not be delivered to the transport",
		}),
		connectionState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connection_state",
			Help:      "Current session state (0 disconnected, 1 connecting, 2 connected, 3 ready)",
		}),
		rosterSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_size",
			Help:      "Number of peers in the latest roster",
		}),
	}
}

func (m *Metrics) EnvelopeSent(t model.Type) {
	if m == nil {
		return
	}
	m.envelopesSent.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) EnvelopeReceived(t model.Type) {
	if m == nil {
		return
	}
	m.envelopesReceived.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) DecodeError(reason string) {
	if m == nil {
		return
	}
	m.decodeErrors.WithLabelValues(reason).Inc()
}

func (m *Metrics) SendFailure() {
	if m == nil {
		return
	}
	m.sendFailures.Inc()
}

func (m *Metrics) State(s model.State) {
	if m == nil {
		return
	}
	m.connectionState.Set(float64(s))
}

func (m *Metrics) RosterSize(n int) {
	if m == nil {
		return
	}
	m.rosterSize.Set(float64(n))
}
