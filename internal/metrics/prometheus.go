package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusOnce     sync.Once
	prometheusInstance *PrometheusCollector
)

// PrometheusCollector provides Prometheus metrics for the goban engine server.
type PrometheusCollector struct {
	// MCP Tool metrics
	toolCallsTotal   *prometheus.CounterVec
	toolErrorsTotal  *prometheus.CounterVec
	toolDurationSecs *prometheus.HistogramVec

	// Engine metrics
	movesTotal          *prometheus.CounterVec
	capturesTotal       *prometheus.CounterVec
	scoringDurationSecs *prometheus.HistogramVec

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Score cache metrics
	cacheHitsTotal   prometheus.Counter
	cacheMissesTotal prometheus.Counter
	cacheItems       prometheus.Gauge
}

// NewPrometheusCollector creates a new Prometheus metrics collector (singleton).
func NewPrometheusCollector() *PrometheusCollector {
	prometheusOnce.Do(func() {
		prometheusInstance = &PrometheusCollector{
			// MCP Tool metrics
			toolCallsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goban_tool_calls_total",
					Help: "Total number of MCP tool calls",
				},
				[]string{"tool", "status"},
			),
			toolErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goban_tool_errors_total",
					Help: "Total number of MCP tool errors",
				},
				[]string{"tool", "error_type"},
			),
			toolDurationSecs: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "goban_tool_duration_seconds",
					Help:    "Duration of MCP tool calls in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"tool"},
			),

			// Engine metrics
			movesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goban_moves_total",
					Help: "Total number of moves checked or played, by result",
				},
				[]string{"result"},
			),
			capturesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goban_captures_total",
					Help: "Total number of stones captured, by color",
				},
				[]string{"color"},
			),
			scoringDurationSecs: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "goban_scoring_duration_seconds",
					Help:    "Duration of full-board scoring in seconds",
					Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
				},
				[]string{"rule_set"},
			),

			// HTTP metrics
			httpRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "goban_http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			httpRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "goban_http_request_duration_seconds",
					Help:    "Duration of HTTP requests in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"method", "path"},
			),

			// Score cache metrics
			cacheHitsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "goban_score_cache_hits_total",
					Help: "Total number of score cache hits",
				},
			),
			cacheMissesTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "goban_score_cache_misses_total",
					Help: "Total number of score cache misses",
				},
			),
			cacheItems: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "goban_score_cache_items",
					Help: "Current number of items in the score cache",
				},
			),
		}
	})
	return prometheusInstance
}

// RecordToolCall records a tool call metric.
func (p *PrometheusCollector) RecordToolCall(tool, status string, durationSecs float64) {
	p.toolCallsTotal.WithLabelValues(tool, status).Inc()
	p.toolDurationSecs.WithLabelValues(tool).Observe(durationSecs)

	if status == "error" {
		p.toolErrorsTotal.WithLabelValues(tool, "general").Inc()
	}
}

// RecordMove records the outcome of a move legality check or execution.
func (p *PrometheusCollector) RecordMove(result string) {
	p.movesTotal.WithLabelValues(result).Inc()
}

// RecordCaptures records stones captured from the given color's groups.
func (p *PrometheusCollector) RecordCaptures(color string, count int) {
	if count > 0 {
		p.capturesTotal.WithLabelValues(color).Add(float64(count))
	}
}

// RecordScoring records a full-board scoring pass.
func (p *PrometheusCollector) RecordScoring(ruleSet string, durationSecs float64) {
	p.scoringDurationSecs.WithLabelValues(ruleSet).Observe(durationSecs)
}

// RecordHTTPRequest records an HTTP request.
func (p *PrometheusCollector) RecordHTTPRequest(method, path, status string, durationSecs float64) {
	p.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	p.httpRequestDuration.WithLabelValues(method, path).Observe(durationSecs)
}

// RecordCacheHit records a score cache hit.
func (p *PrometheusCollector) RecordCacheHit() {
	p.cacheHitsTotal.Inc()
}

// RecordCacheMiss records a score cache miss.
func (p *PrometheusCollector) RecordCacheMiss() {
	p.cacheMissesTotal.Inc()
}

// SetCacheItems sets the current score cache item count.
func (p *PrometheusCollector) SetCacheItems(items float64) {
	p.cacheItems.Set(items)
}
