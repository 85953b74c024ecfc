// Package metrics exposes the resolver and snapshot counters to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Resolutions     *prometheus.CounterVec // outcome label: a resolver failure reason, or "ok"
	ResolveDuration prometheus.Histogram
	RouterCalls     prometheus.Counter

	Stations      prometheus.Gauge
	Edges         prometheus.Gauge
	Rebuilds      prometheus.Counter
	LastRebuildAt prometheus.Gauge

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	RateLimited prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "railroute_resolutions_total",
			Help: "Trip resolutions by outcome.",
		}, []string{"outcome"}),
		ResolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "railroute_resolve_duration_seconds",
			Help:    "Duration of trip resolutions.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
		RouterCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railroute_router_calls_total",
			Help: "Shortest-path searches run.",
		}),
		Stations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railroute_graph_stations",
			Help: "Stations appearing on at least one edge of the current graph.",
		}),
		Edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railroute_graph_edges",
			Help: "Compact edges of the current graph.",
		}),
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railroute_snapshot_rebuilds_total",
			Help: "Snapshots swapped in after startup.",
		}),
		LastRebuildAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "railroute_snapshot_built_timestamp_seconds",
			Help: "Unix time the current snapshot was built.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railroute_trip_cache_hits_total",
			Help: "Trip lookups served from the cache.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railroute_trip_cache_misses_total",
			Help: "Trip lookups computed by the resolver.",
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "railroute_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}

	reg.MustRegister(
		c.Resolutions, c.ResolveDuration, c.RouterCalls,
		c.Stations, c.Edges, c.Rebuilds, c.LastRebuildAt,
		c.CacheHits, c.CacheMisses, c.RateLimited,
	)

	return c
}

// ObserveResolution records one resolution outcome and its latency.
func (c *Collector) ObserveResolution(outcome string, elapsed time.Duration, routerCalls int) {
	c.Resolutions.WithLabelValues(outcome).Inc()
	c.ResolveDuration.Observe(elapsed.Seconds())
	if routerCalls > 0 {
		c.RouterCalls.Add(float64(routerCalls))
	}
}

// SetGraph updates the graph gauges for a newly active snapshot.
func (c *Collector) SetGraph(stations, edges int, builtAt time.Time) {
	c.Stations.Set(float64(stations))
	c.Edges.Set(float64(edges))
	c.LastRebuildAt.Set(float64(builtAt.Unix()))
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }
