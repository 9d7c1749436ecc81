package nevent

import (
	"errors"
	"reflect"

	"github.com/juchiast/neovide/nchan"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the aggregator's collectors.
// All methods are safe to call on a nil *metrics.
type metrics struct {
	published *prometheus.CounterVec
	failures  *prometheus.CounterVec
	channels  *prometheus.GaugeVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	m := &metrics{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "neovide_event_published_total",
				Help: "Values sent through the event aggregator, by payload type.",
			},
			[]string{"type"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "neovide_event_send_failures_total",
				Help: "Sends rejected by the event aggregator, by payload type and reason.",
			},
			[]string{"type", "reason"},
		),
		channels: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "neovide_event_channels",
				Help: "Event aggregator channels, by whether a consumer has claimed them.",
			},
			[]string{"state"},
		),
	}

	reg.MustRegister(m.published, m.failures, m.channels)
	return m
}

func (m *metrics) ObserveSend(key reflect.Type, err error) {
	if m == nil {
		return
	}

	if err == nil {
		m.published.WithLabelValues(nchan.QualifiedName(key)).Inc()
		return
	}

	reason := "other"
	if errors.Is(err, nchan.ErrReceiverClosed) {
		reason = "receiver_closed"
	} else if errors.Is(err, nchan.ErrClosed) {
		reason = "closed"
	}
	m.failures.WithLabelValues(nchan.QualifiedName(key), reason).Inc()
}

// ObserveCreate records a channel created by a sender
// before any consumer registered.
func (m *metrics) ObserveCreate() {
	if m == nil {
		return
	}
	m.channels.WithLabelValues("unclaimed").Inc()
}

// ObserveClaim records a consumer registering.
// wasQueued reports whether the channel already existed.
func (m *metrics) ObserveClaim(wasQueued bool) {
	if m == nil {
		return
	}
	if wasQueued {
		m.channels.WithLabelValues("unclaimed").Dec()
	}
	m.channels.WithLabelValues("claimed").Inc()
}
