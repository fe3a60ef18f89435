package spyglass

import "spyglass/pkg/models"

// InsightReportResponse represents the response from GetInsights
type InsightReportResponse = models.InsightReport

// PageProfileResponse represents the response from GetPageProfile
type PageProfileResponse = models.PageProfile

// FollowersResponse represents the response from GetFollowers
type FollowersResponse struct {
	Followers int64 `json:"followers"`
}

// GenderBreakdownResponse represents the response from GetGenderBreakdown
type GenderBreakdownResponse struct {
	Breakdown map[string]int `json:"breakdown"`
}

// EngagementSeriesResponse represents the response from GetEngagementSeries
type EngagementSeriesResponse struct {
	Series []models.DailyEngagement `json:"series"`
}

// DaySeriesResponse represents the response from GetBestDay and GetBestHour
type DaySeriesResponse struct {
	Series []models.SeriesPoint `json:"series"`
}

// PerformanceResponse represents the response from GetPerformance
type PerformanceResponse struct {
	Performance map[string]models.DayPerformance `json:"performance"`
}

// AssistantRequest is the prompt sent to the assistant endpoint
type AssistantRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// AssistantResponse is the assistant's reply
type AssistantResponse struct {
	Reply string `json:"reply"`
}
