package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Prometheus Metrics
// =============================================================================

const namespace = "dgraph"

// PrometheusHooks records layout, cache, and HTTP events as Prometheus
// metrics. It implements [LayoutHooks], [CacheHooks], and [HTTPHooks].
type PrometheusHooks struct {
	// layoutDuration measures pipeline latency.
	// Labels: status (ok, error)
	layoutDuration *prometheus.HistogramVec

	// layoutNodes tracks the size of laid out graphs.
	// Labels: kind (real, virtual)
	layoutNodes *prometheus.HistogramVec

	layoutCrossings prometheus.Histogram
	layoutWidth     prometheus.Histogram

	// renderDuration measures render latency.
	// Labels: format, status
	renderDuration *prometheus.HistogramVec

	// cacheOps counts cache operations.
	// Labels: backend, op (hit, miss, set)
	cacheOps *prometheus.CounterVec

	// httpRequests counts served requests.
	// Labels: method, route, code
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpErrors   *prometheus.CounterVec
}

// NewPrometheusHooks creates the dgraph metrics and registers them with reg.
// Registering twice on the same registry panics, as with promauto.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	sizeBuckets := []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000}
	return &PrometheusHooks{
		layoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "duration_seconds",
			Help:      "Layered layout pipeline latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"status"}),
		layoutNodes: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "nodes",
			Help:      "Node count of laid out graphs",
			Buckets:   sizeBuckets,
		}, []string{"kind"}),
		layoutCrossings: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "crossings",
			Help:      "Edge crossings remaining after ordering",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		}),
		layoutWidth: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "layout",
			Name:      "width_columns",
			Help:      "Grid width of finished layouts",
			Buckets:   sizeBuckets,
		}),
		renderDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Render latency in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"format", "status"}),
		cacheOps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "operations_total",
			Help:      "Cache operations by backend and outcome",
		}, []string{"backend", "op"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Served HTTP requests",
		}, []string{"method", "route", "code"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "errors_total",
			Help:      "Handler errors by route",
		}, []string{"method", "route"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *PrometheusHooks) OnLayoutStart(context.Context, int, int) {}

func (p *PrometheusHooks) OnLayoutComplete(_ context.Context, s LayoutStats, d time.Duration, err error) {
	p.layoutDuration.WithLabelValues(status(err)).Observe(d.Seconds())
	if err != nil {
		return
	}
	p.layoutNodes.WithLabelValues("real").Observe(float64(s.Nodes))
	p.layoutNodes.WithLabelValues("virtual").Observe(float64(s.Virtual))
	p.layoutCrossings.Observe(float64(s.Crossings))
	p.layoutWidth.Observe(float64(s.Width))
}

func (p *PrometheusHooks) OnRenderStart(context.Context, string) {}

func (p *PrometheusHooks) OnRenderComplete(_ context.Context, format string, _ int, d time.Duration, err error) {
	p.renderDuration.WithLabelValues(format, status(err)).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, backend string) {
	p.cacheOps.WithLabelValues(backend, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, backend string) {
	p.cacheOps.WithLabelValues(backend, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, backend string, _ int) {
	p.cacheOps.WithLabelValues(backend, "set").Inc()
}

func (p *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (p *PrometheusHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnError(_ context.Context, method, route string, _ error) {
	p.httpErrors.WithLabelValues(method, route).Inc()
}

var (
	_ LayoutHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
