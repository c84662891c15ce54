package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/ports/outbound"
)

const namespace = "ayurplan"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	gatherer prometheus.Gatherer

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpResponseSize    *prometheus.HistogramVec

	// Engine metrics
	complianceScores  *prometheus.HistogramVec
	suggestionsTotal  *prometheus.CounterVec
	suggestionItems   *prometheus.HistogramVec
	suggestionScores  prometheus.Histogram
	candidatePoolSize *prometheus.HistogramVec
	unresolvedRefs    prometheus.Counter
	cacheLookupsTotal *prometheus.CounterVec
}

var _ outbound.EngineMetrics = (*MetricsCollector)(nil)

// NewMetricsCollector registers the collector's metrics with reg.
// gatherer backs Handler; pass the same registry for both.
func NewMetricsCollector(reg prometheus.Registerer, gatherer prometheus.Gatherer, logger *zap.Logger) *MetricsCollector {
	factory := promauto.With(reg)
	scoreBuckets := prometheus.LinearBuckets(0, 10, 11)

	return &MetricsCollector{
		logger:   logger.Named("metrics"),
		gatherer: gatherer,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		httpResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_response_size_bytes",
				Help:      "HTTP response size in bytes",
				Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
			},
			[]string{"method", "path"},
		),

		complianceScores: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "compliance_overall_score",
				Help:      "Overall compliance scores by dosha type",
				Buckets:   scoreBuckets,
			},
			[]string{"dosha_type"},
		),
		suggestionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "meal_suggestions_total",
				Help:      "Total number of meal suggestions generated",
			},
			[]string{"meal_type"},
		),
		suggestionItems: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "meal_suggestion_items",
				Help:      "Number of items per suggested meal",
				Buckets:   prometheus.LinearBuckets(0, 1, 6),
			},
			[]string{"meal_type"},
		),
		suggestionScores: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "meal_suggestion_compliance_score",
				Help:      "Compliance score of suggested meals",
				Buckets:   scoreBuckets,
			},
		),
		candidatePoolSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "candidate_pool_size",
				Help:      "Candidate foods retrieved per suggestion",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
			},
			[]string{"pool"},
		),
		unresolvedRefs: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unresolved_references_total",
				Help:      "Consumption items whose catalog entry could not be found",
			},
		),
		cacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_cache_lookups_total",
				Help:      "Catalog cache lookups by entity and result",
			},
			[]string{"entity", "result"},
		),
	}
}

// ObserveCompliance records an overall compliance score
func (m *MetricsCollector) ObserveCompliance(doshaType string, overallScore int) {
	m.complianceScores.WithLabelValues(doshaType).Observe(float64(overallScore))
}

// ObserveSuggestion records a generated meal suggestion
func (m *MetricsCollector) ObserveSuggestion(mealType string, items int, complianceScore int) {
	m.suggestionsTotal.WithLabelValues(mealType).Inc()
	m.suggestionItems.WithLabelValues(mealType).Observe(float64(items))
	m.suggestionScores.Observe(float64(complianceScore))
}

// ObserveCandidatePool records the compatible and fallback pool sizes
func (m *MetricsCollector) ObserveCandidatePool(compatible, fallback int) {
	m.candidatePoolSize.WithLabelValues("compatible").Observe(float64(compatible))
	m.candidatePoolSize.WithLabelValues("fallback").Observe(float64(fallback))
}

// AddUnresolvedReferences counts items skipped during aggregation
func (m *MetricsCollector) AddUnresolvedReferences(n int) {
	if n > 0 {
		m.unresolvedRefs.Add(float64(n))
	}
}

// ObserveCacheLookup records catalog cache hits and misses
func (m *MetricsCollector) ObserveCacheLookup(entity string, hits, misses int) {
	if hits > 0 {
		m.cacheLookupsTotal.WithLabelValues(entity, "hit").Add(float64(hits))
	}
	if misses > 0 {
		m.cacheLookupsTotal.WithLabelValues(entity, "miss").Add(float64(misses))
	}
}

// HTTPMiddleware records request count, latency and response size.
// Paths are labelled by their chi route pattern to bound cardinality.
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		code := strconv.Itoa(status)

		m.httpRequestsTotal.WithLabelValues(r.Method, path, code).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path, code).Observe(time.Since(start).Seconds())
		m.httpResponseSize.WithLabelValues(r.Method, path).Observe(float64(ww.BytesWritten()))
	})
}

// Handler returns the Prometheus metrics handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
