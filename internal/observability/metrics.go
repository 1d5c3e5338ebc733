package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eduflow_http_requests_total",
		Help: "Total number of HTTP requests handled.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eduflow_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	llmRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eduflow_llm_requests_total",
		Help: "Total number of LLM provider calls.",
	}, []string{"provider", "outcome"})

	llmRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eduflow_llm_request_duration_seconds",
		Help:    "LLM provider call latency.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	activitiesLoggedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eduflow_activities_logged_total",
		Help: "Total number of gamification activities recorded.",
	}, []string{"activity_type"})

	badgesAwardedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eduflow_badges_awarded_total",
		Help: "Total number of badges awarded to users.",
	}, []string{"badge"})
)

// ObserveHTTPRequest enregistre une requête HTTP terminée.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveLLMRequest enregistre un appel au fournisseur LLM.
func ObserveLLMRequest(provider string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	llmRequestsTotal.WithLabelValues(provider, outcome).Inc()
	llmRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// CountActivity enregistre une activité journalisée.
func CountActivity(activityType string) {
	activitiesLoggedTotal.WithLabelValues(activityType).Inc()
}

// CountBadge enregistre un badge décerné.
func CountBadge(badge string) {
	badgesAwardedTotal.WithLabelValues(badge).Inc()
}
