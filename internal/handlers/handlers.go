package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"spyglass/internal/insights"
	"spyglass/internal/metrics"
	"spyglass/internal/responder"
	"spyglass/pkg/api/common"
	"spyglass/pkg/api/spyglass"
	"spyglass/pkg/clients/facebook"
	"spyglass/pkg/logging"
	"spyglass/pkg/middleware"
)

// Handlers carries the service dependencies for the HTTP API
type Handlers struct {
	analyzer *insights.Analyzer
	metrics  *metrics.Metrics
	logger   logging.Logger
}

// NewHandlers creates the HTTP handler set
func NewHandlers(analyzer *insights.Analyzer, serviceMetrics *metrics.Metrics, logger logging.Logger) *Handlers {
	return &Handlers{
		analyzer: analyzer,
		metrics:  serviceMetrics,
		logger:   logger,
	}
}

// RegisterRoutes mounts the API routes on the router
func (h *Handlers) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")

	v1.GET("/insights", h.GetInsights)
	v1.GET("/insights/engagement", h.GetEngagementSeries)
	v1.GET("/insights/best-day", h.GetBestDay)
	v1.GET("/insights/best-hour", h.GetBestHour)
	v1.GET("/insights/performance", h.GetPerformance)

	page := v1.Group("/page")
	page.GET("/profile", h.GetPageProfile)
	page.GET("/followers", h.GetFollowers)
	page.GET("/gender", h.GetGenderBreakdown)

	v1.POST("/assistant", h.AskAssistant)
}

// bearerToken extracts the page access token from the Authorization header.
func bearerToken(c middleware.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// requireToken extracts the token or answers 401.
func (h *Handlers) requireToken(c middleware.Context) (string, bool) {
	token, ok := bearerToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, common.ErrorResponse{
			Error: "Missing page access token",
			Code:  "missing_token",
		})
	}
	return token, ok
}

// sinceParam parses the optional ?since= Unix-seconds query parameter.
func (h *Handlers) sinceParam(c middleware.Context) (time.Time, bool) {
	raw := c.Query("since")
	if raw == "" {
		return time.Time{}, true
	}
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || seconds <= 0 {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Invalid since parameter, expected Unix seconds",
			Code:  "invalid_since",
		})
		return time.Time{}, false
	}
	return time.Unix(seconds, 0), true
}

// upstreamError maps an upstream failure onto the API error taxonomy:
// user tokens are a caller problem (401), everything else is a gateway
// failure (502).
func (h *Handlers) upstreamError(c middleware.Context, err error, operation string) {
	logger := middleware.GetContextLogger(c, h.logger)

	if errors.Is(err, facebook.ErrUserToken) {
		c.JSON(http.StatusUnauthorized, common.ErrorResponse{
			Error: "A page access token is required, not a user token",
			Code:  "user_token",
		})
		return
	}

	var apiErr *facebook.APIError
	if errors.As(err, &apiErr) {
		logger.WithError(err).WithField("operation", operation).Error("Graph API call failed")
		c.JSON(http.StatusBadGateway, common.ErrorResponse{
			Error: "Upstream Graph API error",
			Code:  "upstream_error",
			Details: map[string]interface{}{
				"message": apiErr.Message,
				"status":  apiErr.StatusCode,
			},
		})
		return
	}

	logger.WithError(err).WithField("operation", operation).Error("Upstream request failed")
	c.JSON(http.StatusBadGateway, common.ErrorResponse{
		Error: "Failed to reach the Graph API",
		Code:  "upstream_unreachable",
	})
}

func (h *Handlers) observeAnalysis(operation string, start time.Time, err error) {
	if h.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	h.metrics.AnalysisRuns.WithLabelValues(operation, status).Inc()
	h.metrics.AnalysisDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// GetInsights runs the full page analysis and returns the report
func (h *Handlers) GetInsights(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	since, ok := h.sinceParam(c)
	if !ok {
		return
	}

	start := time.Now()
	report, err := h.analyzer.AnalyzePage(c.Request.Context(), token, since)
	h.observeAnalysis("insights", start, err)
	if err != nil {
		h.upstreamError(c, err, "analyze_page")
		return
	}

	c.JSON(http.StatusOK, spyglass.InsightReportResponse(*report))
}

// GetPageProfile returns the page's profile fields
func (h *Handlers) GetPageProfile(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	profile, err := h.analyzer.PageProfile(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err, "page_profile")
		return
	}

	c.JSON(http.StatusOK, spyglass.PageProfileResponse(*profile))
}

// GetFollowers returns the page's follower count
func (h *Handlers) GetFollowers(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	followers, err := h.analyzer.FollowerCount(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err, "follower_count")
		return
	}

	c.JSON(http.StatusOK, spyglass.FollowersResponse{Followers: followers})
}

// GetGenderBreakdown returns the collapsed gender totals of the page audience
func (h *Handlers) GetGenderBreakdown(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	breakdown, err := h.analyzer.GenderBreakdown(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err, "gender_breakdown")
		return
	}

	c.JSON(http.StatusOK, spyglass.GenderBreakdownResponse{Breakdown: breakdown})
}

// GetEngagementSeries returns the sparse daily engagement series
func (h *Handlers) GetEngagementSeries(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	since, ok := h.sinceParam(c)
	if !ok {
		return
	}

	start := time.Now()
	series, err := h.analyzer.EngagementSeries(c.Request.Context(), token, since)
	h.observeAnalysis("engagement_series", start, err)
	if err != nil {
		h.upstreamError(c, err, "engagement_series")
		return
	}

	c.JSON(http.StatusOK, spyglass.EngagementSeriesResponse{Series: series})
}

// GetBestDay returns the dense weekday average series
func (h *Handlers) GetBestDay(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	since, ok := h.sinceParam(c)
	if !ok {
		return
	}

	start := time.Now()
	series, err := h.analyzer.BestDay(c.Request.Context(), token, since)
	h.observeAnalysis("best_day", start, err)
	if err != nil {
		h.upstreamError(c, err, "best_day")
		return
	}

	c.JSON(http.StatusOK, spyglass.DaySeriesResponse{Series: series})
}

// GetBestHour returns the dense hourly average series
func (h *Handlers) GetBestHour(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}
	since, ok := h.sinceParam(c)
	if !ok {
		return
	}

	start := time.Now()
	series, err := h.analyzer.BestHour(c.Request.Context(), token, since)
	h.observeAnalysis("best_hour", start, err)
	if err != nil {
		h.upstreamError(c, err, "best_hour")
		return
	}

	c.JSON(http.StatusOK, spyglass.DaySeriesResponse{Series: series})
}

// GetPerformance returns the daily reach/engagement series
func (h *Handlers) GetPerformance(c middleware.Context) {
	token, ok := h.requireToken(c)
	if !ok {
		return
	}

	performance, err := h.analyzer.OverallPerformance(c.Request.Context(), token)
	if err != nil {
		h.upstreamError(c, err, "overall_performance")
		return
	}

	c.JSON(http.StatusOK, spyglass.PerformanceResponse{Performance: performance})
}

// AskAssistant answers a growth-assistant prompt
func (h *Handlers) AskAssistant(c middleware.Context) {
	var req spyglass.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Error: "Prompt is required",
			Code:  "invalid_request",
		})
		return
	}

	reply := responder.Reply(req.Prompt)
	if h.metrics != nil {
		outcome := "answered"
		if reply == responder.OutOfScopeReply() {
			outcome = "out_of_scope"
		}
		h.metrics.AssistantPrompts.WithLabelValues(outcome).Inc()
	}

	c.JSON(http.StatusOK, spyglass.AssistantResponse{Reply: reply})
}
