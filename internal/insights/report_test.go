package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/pkg/models"
)

func TestBuildReport_Full(t *testing.T) {
	monday := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	periodPosts := []models.PostRecord{
		{ID: "p1", CreatedAt: &monday, ReactionCount: 10, CommentCount: 2, ShareCount: 1, ContentType: "photo"},
		{ID: "p2", CreatedAt: &monday, ReactionCount: 5, ContentType: "video"},
	}
	historyPosts := []models.PostRecord{
		{ID: "h1", ReactionCount: 100, ContentType: "photo", Message: "big hit #launch", Comments: []string{"love it"}},
		{ID: "h2", ReactionCount: 20, ContentType: "video", Comments: []string{"bad sound"}},
		{ID: "h3", ReactionCount: 30, ContentType: "photo"},
	}

	report := BuildReport(ReportInput{
		Followers:    1000,
		PeriodPosts:  periodPosts,
		HistoryPosts: historyPosts,
		Since:        monday.AddDate(0, 0, -7),
		Location:     time.UTC,
		Growth:       2.5,
	})

	assert.Equal(t, int64(1000), report.TotalFollowers)
	assert.Equal(t, 3, report.TotalPostsAnalyzed)
	assert.True(t, report.HasRecentActivity)
	assert.Equal(t, 2.5, report.GrowthPercentage)

	// Period sums
	assert.Equal(t, 2, report.PeriodMetrics.PostsInPeriod)
	assert.Equal(t, int64(15), report.PeriodMetrics.LikesInPeriod)
	assert.Equal(t, int64(2), report.PeriodMetrics.CommentsInPeriod)
	assert.Equal(t, int64(1), report.PeriodMetrics.SharesInPeriod)
	require.Len(t, report.RecentPosts, 2)

	// Dense series shape regardless of input
	assert.Len(t, report.EngagementByDay, 7)
	assert.Len(t, report.EngagementByHour, 24)

	// History-window computations
	require.NotEmpty(t, report.TopPerformingPosts)
	assert.Equal(t, "h1", report.TopPerformingPosts[0].ID)
	assert.Equal(t, int64(130), report.EngagementByContentType["photo"])
	assert.Equal(t, 2, report.PostCountByContentType["photo"])
	require.Len(t, report.HashtagRankings, 1)
	assert.Equal(t, "#launch", report.HashtagRankings[0].Tag)
	assert.Equal(t, 1, report.Sentiment.Positive)
	assert.Equal(t, 1, report.Sentiment.Negative)

	// (100+20+30) / 3 posts / 1000 followers * 100
	assert.InDelta(t, 5.0, report.AverageEngagementRate, 1e-9)

	assert.NotEmpty(t, report.Recommendations)
	assert.NotEmpty(t, report.WeeklySummary)
}

func TestBuildReport_EmptyInput(t *testing.T) {
	report := BuildReport(ReportInput{Followers: 500})

	assert.False(t, report.HasRecentActivity)
	assert.Equal(t, 0, report.TotalPostsAnalyzed)
	assert.Equal(t, 0.0, report.AverageEngagementRate)
	assert.Empty(t, report.RecentPosts)
	assert.Empty(t, report.TopPerformingPosts)
	assert.Empty(t, report.EngagementByContentType)
	assert.Empty(t, report.HashtagRankings)
	assert.Len(t, report.EngagementByDay, 7)
	assert.Len(t, report.EngagementByHour, 24)
	assert.Contains(t, report.WeeklySummary, "image")
}

func TestBuildReport_DoesNotRequirePerformance(t *testing.T) {
	report := BuildReport(ReportInput{Followers: 10, Performance: nil})
	assert.Nil(t, report.OverallPerformance)
	assert.NotEmpty(t, report.WeeklySummary)
}

func TestBuildReport_DoesNotMutateInput(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	history := []models.PostRecord{
		{ID: "a", ReactionCount: 1, CreatedAt: &ts},
		{ID: "b", ReactionCount: 9, CreatedAt: &ts},
	}

	BuildReport(ReportInput{Followers: 10, HistoryPosts: history, Location: time.UTC})

	assert.Equal(t, "a", history[0].ID)
	assert.Equal(t, "b", history[1].ID)
}
