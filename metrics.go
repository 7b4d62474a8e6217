package combus

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "combus"

type metrics struct {
	dispatched *prometheus.CounterVec
	settled    *prometheus.CounterVec
	canceled   *prometheus.CounterVec
	replies    *prometheus.CounterVec
	failures   *prometheus.CounterVec
	pending    prometheus.Gauge
}

func newMetrics(name string) *metrics {
	labels := prometheus.Labels{"bus": name}
	counter := func(metric, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   metricsNamespace,
			Name:        metric,
			Help:        help,
			ConstLabels: labels,
		}, []string{"type"})
	}

	return &metrics{
		dispatched: counter("dispatched_total", "Calls published on an event type channel."),
		settled:    counter("settled_total", "Pending calls settled by a reply."),
		canceled:   counter("canceled_total", "Pending calls reclaimed before any reply arrived."),
		replies:    counter("replies_total", "Replies published by listeners."),
		failures:   counter("handler_failures_total", "Handler invocations that returned an error or panicked."),
		pending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   metricsNamespace,
			Name:        "pending_calls",
			Help:        "Calls waiting for a reply.",
			ConstLabels: labels,
		}),
	}
}

func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.dispatched, m.settled, m.canceled, m.replies, m.failures, m.pending}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	registered := make([]prometheus.Collector, 0, len(m.collectors()))
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			for _, r := range registered {
				reg.Unregister(r)
			}
			return err
		}
		registered = append(registered, c)
	}
	return nil
}

func (m *metrics) unregister(reg prometheus.Registerer) {
	for _, c := range m.collectors() {
		reg.Unregister(c)
	}
}
