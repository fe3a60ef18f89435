package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds all Prometheus metrics for the insight analysis service
type Metrics struct {
	GraphRequests    *prometheus.CounterVec
	AnalysisRuns     *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	AssistantPrompts *prometheus.CounterVec
}
