// Package metrics exports cache activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/pathcache/internal/core/domain"
	"go.trai.ch/pathcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const namespace = "pathcache"

// Collector implements ports.Metrics on its own registry.
type Collector struct {
	registry *prometheus.Registry

	delivered *prometheus.CounterVec
	queued    prometheus.Counter
	applied   prometheus.Counter
	discarded prometheus.Counter

	roots   prometheus.Gauge
	records prometheus.Gauge
	nodes   prometheus.Gauge
	pending prometheus.Gauge
}

var _ ports.Metrics = (*Collector)(nil)

// New creates a Collector with a fresh registry.
func New() *Collector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		delivered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_delivered_total",
			Help:      "Listener notifications delivered, by event kind.",
		}, []string{"kind"}),
		queued: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_queued_total",
			Help:      "Asynchronous property loads queued.",
		}),
		applied: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_applied_total",
			Help:      "Asynchronous property loads applied to the cache.",
		}),
		discarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_discarded_total",
			Help:      "Asynchronous property loads dropped as stale or cleared.",
		}),
		roots: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roots",
			Help:      "Registered root objects.",
		}),
		records: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Observed objects with a cache record.",
		}),
		nodes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "path_nodes",
			Help:      "Nodes in the registered path tree.",
		}),
		pending: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_loads",
			Help:      "Loads waiting for the background worker.",
		}),
	}
}

// EventDelivered counts one listener notification.
func (c *Collector) EventDelivered(kind string) {
	c.delivered.WithLabelValues(kind).Inc()
}

// LoadsQueued counts n queued loads.
func (c *Collector) LoadsQueued(n int) {
	c.queued.Add(float64(n))
}

// LoadApplied counts one applied load.
func (c *Collector) LoadApplied() {
	c.applied.Inc()
}

// LoadDiscarded counts one dropped load.
func (c *Collector) LoadDiscarded() {
	c.discarded.Inc()
}

// ObserveStats updates the size gauges.
func (c *Collector) ObserveStats(s domain.CacheStats) {
	c.roots.Set(float64(s.Roots))
	c.records.Set(float64(s.Records))
	c.nodes.Set(float64(s.Nodes))
	c.pending.Set(float64(s.PendingLoads))
}

// Registry returns the registry the collector writes to.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on ln until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, "metrics server failed")
	}
	return nil
}
