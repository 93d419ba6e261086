package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PromptGenerations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moodjournal",
		Name:      "prompt_generations_total",
		Help:      "Prompt generation calls by gateway and outcome (ok, no_reply).",
	}, []string{"gateway", "outcome"})

	MoodClassifications = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moodjournal",
		Name:      "mood_classifications_total",
		Help:      "Moods assigned by the classifier.",
	}, []string{"mood"})

	HTTPRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moodjournal",
		Name:      "http_request_duration_seconds",
		Help:      "API request latency by method and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

// Registry holds the process metrics; served on /metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(PromptGenerations, MoodClassifications, HTTPRequests)
}

// CountGeneration records one gateway call outcome.
func CountGeneration(gateway string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "no_reply"
	}
	PromptGenerations.WithLabelValues(gateway, outcome).Inc()
}
