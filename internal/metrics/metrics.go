package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tudman_http_requests_total",
			Help: "Number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tudman_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	llmCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tudman_llm_calls_total",
			Help: "Number of chat completion calls by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	llmDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tudman_llm_call_duration_seconds",
			Help:    "Chat completion latency",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"model"},
	)

	evaluationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tudman_evaluation_cache_lookups_total",
			Help: "Free-response evaluation cache lookups by result",
		},
		[]string{"result"},
	)
)

func ObserveHTTPRequest(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// ObserveLLMCall records one chat completion; err decides the outcome label.
func ObserveLLMCall(model string, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	llmCalls.WithLabelValues(model, outcome).Inc()
	llmDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}

func ObserveEvaluationCache(hit bool) {
	if hit {
		evaluationCache.WithLabelValues("hit").Inc()
		return
	}
	evaluationCache.WithLabelValues("miss").Inc()
}
