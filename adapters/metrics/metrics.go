// Package metrics exposes dispatch activity as Prometheus metrics. The
// collector is an event-bus sink: it never touches the dispatch path, it
// only observes the events the dispatcher publishes.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artpar/schedclient/core/events"
)

// Collector holds the dispatch metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	dispatchesTotal *prometheus.CounterVec
	denialsTotal    *prometheus.CounterVec
	faultsTotal     *prometheus.CounterVec
}

// New creates a collector. Prefix defaults to "schedclient".
func New(prefix string) *Collector {
	if prefix == "" {
		prefix = "schedclient"
	}
	reg := prometheus.NewRegistry()

	c := &Collector{registry: reg}

	c.dispatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_dispatches_total",
			Help: "Dispatched operations by outcome",
		},
		[]string{"operation", "variant", "outcome"},
	)

	c.denialsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_capability_denials_total",
			Help: "Dispatches refused by the capability table",
		},
		[]string{"operation", "variant"},
	)

	c.faultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_remote_faults_total",
			Help: "Dispatches failed with a structured remote fault",
		},
		[]string{"operation"},
	)

	reg.MustRegister(c.dispatchesTotal, c.denialsTotal, c.faultsTotal)
	reg.MustRegister(prometheus.NewGoCollector())
	reg.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return c
}

// Attach subscribes the collector to every dispatch event on the bus.
func (c *Collector) Attach(bus *events.Bus) {
	bus.Subscribe("*", c.Observe)
}

// Observe records one dispatch event.
func (c *Collector) Observe(_ context.Context, e events.Event) error {
	op, v := e.Operation, e.Variant.String()
	c.dispatchesTotal.WithLabelValues(op, v, string(e.Outcome)).Inc()
	switch e.Outcome {
	case events.OutcomeDenied:
		c.denialsTotal.WithLabelValues(op, v).Inc()
	case events.OutcomeRemote:
		c.faultsTotal.WithLabelValues(op).Inc()
	}
	return nil
}

// Handler serves the registry for Prometheus scraping.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the underlying registry for custom metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
