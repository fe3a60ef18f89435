package insights

import (
	"time"

	"spyglass/pkg/models"
)

// Default collection limits for the report.
const (
	DefaultTopPostsLimit = 10
	DefaultHashtagLimit  = 10
)

// ReportInput carries everything BuildReport needs. PeriodPosts is the
// since-bounded recent window; HistoryPosts is the independent, larger
// window used for ranking and content analysis. The two windows are
// intentionally separate and are never reconciled.
type ReportInput struct {
	Followers    int64
	PeriodPosts  []models.PostRecord
	HistoryPosts []models.PostRecord
	Since        time.Time
	Location     *time.Location
	Performance  map[string]models.DayPerformance
	Growth       float64
	TopPosts     int
	Hashtags     int
}

// BuildReport assembles the full insight report from the pre-fetched
// windows. It does not mutate its inputs and the returned report is never
// modified afterwards.
func BuildReport(in ReportInput) models.InsightReport {
	topN := in.TopPosts
	if topN <= 0 {
		topN = DefaultTopPostsLimit
	}
	hashtagN := in.Hashtags
	if hashtagN <= 0 {
		hashtagN = DefaultHashtagLimit
	}

	report := models.InsightReport{
		TotalFollowers:     in.Followers,
		TotalPostsAnalyzed: len(in.HistoryPosts),
		GrowthPercentage:   in.Growth,
		HasRecentActivity:  len(in.PeriodPosts) > 0,
		OverallPerformance: in.Performance,
	}

	// Period window: raw sums and the recent post list.
	metrics := models.PeriodMetrics{PostsInPeriod: len(in.PeriodPosts)}
	recent := make([]models.PostSummary, 0, len(in.PeriodPosts))
	for _, rec := range in.PeriodPosts {
		metrics.LikesInPeriod += rec.ReactionCount
		metrics.CommentsInPeriod += rec.CommentCount
		metrics.SharesInPeriod += rec.ShareCount
		recent = append(recent, Summarize(rec))
	}
	report.PeriodMetrics = metrics
	report.RecentPosts = recent

	// Time-bucketed views over the period window.
	report.EngagementOverTime = EngagementOverTime(in.PeriodPosts, in.Since, in.Location)
	report.EngagementByDay = BestDayToPost(in.PeriodPosts, in.Since, in.Location)
	report.EngagementByHour = BestHourToPost(in.PeriodPosts, in.Since, in.Location)

	// Ranking and extraction over the historical window.
	report.TopPerformingPosts = TopPosts(in.HistoryPosts, topN)
	report.EngagementByContentType, report.PostCountByContentType = ContentTypeEngagement(in.HistoryPosts)
	report.HashtagRankings = HashtagRankings(in.HistoryPosts, hashtagN)
	report.Sentiment = SentimentCounts(in.HistoryPosts)

	var totalEngagement int64
	for _, rec := range in.HistoryPosts {
		totalEngagement += rec.Engagement()
	}
	report.AverageEngagementRate = AverageEngagementRate(totalEngagement, len(in.HistoryPosts), in.Followers)

	GenerateRecommendations(&report)
	return report
}
