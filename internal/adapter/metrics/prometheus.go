package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gitlab.com/algotutor.net/internal/core/ports/secondary"
	"gitlab.com/algotutor.net/internal/domain"
)

const namespace = "algotutor"

var _ secondary.MetricsRecorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder keeps its own registry so tests and multiple servers don't collide
type PrometheusRecorder struct {
	registry         *prometheus.Registry
	solveRequests    *prometheus.CounterVec
	quotaDecisions   *prometheus.CounterVec
	providerCalls    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

func NewPrometheusRecorder() *PrometheusRecorder {
	r := &PrometheusRecorder{
		registry: prometheus.NewRegistry(),
		solveRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solve_requests_total",
			Help:      "Handled submissions by category and final stage.",
		}, []string{"category", "stage"}),
		quotaDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quota_decisions_total",
			Help:      "Execution quota decisions.",
		}, []string{"decision"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Outbound provider calls by result.",
		}, []string{"provider", "result"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Latency of outbound provider calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 15, 30, 60},
		}, []string{"provider"}),
	}

	r.registry.MustRegister(
		r.solveRequests,
		r.quotaDecisions,
		r.providerCalls,
		r.providerDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *PrometheusRecorder) ObserveSolve(category domain.Category, stage domain.SolveStage) {
	r.solveRequests.WithLabelValues(category.String(), string(stage)).Inc()
}

func (r *PrometheusRecorder) ObserveQuota(decision domain.QuotaDecision) {
	r.quotaDecisions.WithLabelValues(string(decision)).Inc()
}

func (r *PrometheusRecorder) ObserveProviderCall(provider string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.providerCalls.WithLabelValues(provider, result).Inc()
	r.providerDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// Handler serves the registry in the exposition format
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Nop discards every observation
type Nop struct{}

func (Nop) ObserveSolve(domain.Category, domain.SolveStage)  {}
func (Nop) ObserveQuota(domain.QuotaDecision)                {}
func (Nop) ObserveProviderCall(string, time.Duration, error) {}
