package main

import (
	"strconv"
	"time"

	"spyglass/internal/handlers"
	"spyglass/internal/insights"
	"spyglass/internal/metrics"
	"spyglass/pkg/clients/facebook"
	"spyglass/pkg/config"
	"spyglass/pkg/logging"
	"spyglass/pkg/monitoring"
	"spyglass/pkg/server"
	"spyglass/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("spyglass")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Spyglass (Page Insight API)")

	graphURL := config.GetEnv("FACEBOOK_GRAPH_URL", facebook.DefaultGraphURL)

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("spyglass", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("spyglass", version.Version, version.GitCommit)

	// Add health checks
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"FACEBOOK_GRAPH_URL": graphURL,
	}))
	healthChecker.AddCheck("graph_api", monitoring.HTTPServiceHealthCheck("facebook-graph", graphURL))

	// Create custom analysis metrics
	serviceMetrics := &metrics.Metrics{
		GraphRequests:    metricsCollector.NewCounter("graph_requests_total", "Graph API requests issued", []string{"edge", "status"}),
		AnalysisRuns:     metricsCollector.NewCounter("analysis_runs_total", "Page analyses executed", []string{"operation", "status"}),
		AnalysisDuration: metricsCollector.NewHistogram("analysis_duration_seconds", "Page analysis duration", []string{"operation"}, nil),
		AssistantPrompts: metricsCollector.NewCounter("assistant_prompts_total", "Assistant prompts answered", []string{"outcome"}),
	}

	// Graph API client, instrumented per request
	fbClient := facebook.NewClient(graphURL, facebook.WithRequestObserver(func(edge string, status int) {
		serviceMetrics.GraphRequests.WithLabelValues(edge, strconv.Itoa(status)).Inc()
	}))

	analyzerConfig := insights.Config{
		PeriodPostLimit:      config.GetEnvInt("PERIOD_POST_LIMIT", 100),
		HistoryPostLimit:     config.GetEnvInt("HISTORY_POST_LIMIT", 50),
		HistoryCommentSample: config.GetEnvInt("HISTORY_COMMENT_SAMPLE", 5),
		TopPostsLimit:        config.GetEnvInt("TOP_POSTS_LIMIT", 10),
		HashtagLimit:         config.GetEnvInt("HASHTAG_LIMIT", 10),
	}
	growth := insights.SeededGrowth{Seed: time.Now().UnixNano()}
	analyzer := insights.NewAnalyzer(fbClient, growth, analyzerConfig, logger)

	// Setup router with unified monitoring
	router := server.SetupServiceRouter(logger, "spyglass", healthChecker, metricsCollector)

	// Register API routes
	h := handlers.NewHandlers(analyzer, serviceMetrics, logger)
	h.RegisterRoutes(router)

	// Start HTTP server with graceful shutdown
	serverConfig := server.DefaultConfig("spyglass", "18020")
	if err := server.Start(serverConfig, router, logger); err != nil {
		logger.WithError(err).Fatal("Server startup failed")
	}
}
