package models

import "time"

// Content type reported when the source payload carries none.
const ContentTypeUnknown = "unknown"

// Placeholder display text for posts without a message (e.g. photo-only posts).
const MediaPostText = "Media Post"

// PostRecord is the canonical, normalized form of a single social-media post.
// Numeric counters are always present (0 when the source omitted them);
// CreatedAt is nil when the source carried no timestamp, which excludes the
// post from every time-bucketed view.
type PostRecord struct {
	ID            string     `json:"id"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	Message       string     `json:"message"`
	ReactionCount int64      `json:"reaction_count"`
	CommentCount  int64      `json:"comment_count"`
	ShareCount    int64      `json:"share_count"`
	ContentType   string     `json:"content_type"`
	Comments      []string   `json:"comments,omitempty"`
}

// Engagement is the derived total of reactions, comments and shares.
func (p PostRecord) Engagement() int64 {
	return p.ReactionCount + p.CommentCount + p.ShareCount
}

// DisplayMessage returns the message text for display, substituting a
// placeholder for media-only posts.
func (p PostRecord) DisplayMessage() string {
	if p.Message == "" {
		return MediaPostText
	}
	return p.Message
}

// ShortMessage returns the display message truncated for short-form fields:
// messages longer than 50 characters are cut to the first 47 plus an ellipsis.
// The limit counts characters, not bytes, so multibyte text is never cut
// mid-rune.
func (p PostRecord) ShortMessage() string {
	msg := p.DisplayMessage()
	runes := []rune(msg)
	if len(runes) > 50 {
		return string(runes[:47]) + "..."
	}
	return msg
}

// PostSummary is the presentation form of a ranked post.
type PostSummary struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	FullText    string `json:"full_text"`
	Likes       int64  `json:"likes"`
	Comments    int64  `json:"comments"`
	Shares      int64  `json:"shares"`
	Engagement  int64  `json:"engagement"`
	CreatedTime string `json:"created_time"`
	ContentType string `json:"content_type"`
}

// DailyEngagement is one entry of the sparse per-day engagement series,
// ordered by first appearance in the input.
type DailyEngagement struct {
	Date     string `json:"date"` // "Jan 02"
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Shares   int64  `json:"shares"`
	Total    int64  `json:"total"`
}

// SeriesPoint is one entry of a dense averaged series (weekday or hour).
type SeriesPoint struct {
	Key     string  `json:"key"`
	Average float64 `json:"average"`
}

// HashtagCount is one entry of the hashtag ranking.
type HashtagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SentimentTally counts keyword-set hits over comment texts. A comment can
// contribute to both Positive and Negative; Neutral counts comments matching
// neither set.
type SentimentTally struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// PeriodMetrics are the raw sums over the caller-specified recent window.
type PeriodMetrics struct {
	PostsInPeriod    int   `json:"posts_in_period"`
	LikesInPeriod    int64 `json:"likes_in_period"`
	CommentsInPeriod int64 `json:"comments_in_period"`
	SharesInPeriod   int64 `json:"shares_in_period"`
}

// DayPerformance is one day of the optional page-level performance series.
type DayPerformance struct {
	Reach      int `json:"reach"`
	Engagement int `json:"engagement"`
}

// PageProfile describes the analyzed page.
type PageProfile struct {
	Name       string `json:"name"`
	ID         string `json:"id"`
	Category   string `json:"category"`
	PictureURL string `json:"picture_url"`
}

// InsightReport is the complete analytics report for one page. It is built
// once per analysis and never mutated afterwards; concurrent readers are safe.
type InsightReport struct {
	TotalFollowers        int64   `json:"total_followers"`
	TotalPostsAnalyzed    int     `json:"total_posts_analyzed"`
	AverageEngagementRate float64 `json:"average_engagement_rate"`
	GrowthPercentage      float64 `json:"growth_percentage"`
	HasRecentActivity     bool    `json:"has_recent_activity"`

	PeriodMetrics PeriodMetrics `json:"period_metrics"`
	RecentPosts   []PostSummary `json:"recent_posts"`

	EngagementOverTime []DailyEngagement `json:"engagement_over_time"`
	EngagementByDay    []SeriesPoint     `json:"engagement_by_day"`  // always 7 entries, Mon-Sun
	EngagementByHour   []SeriesPoint     `json:"engagement_by_hour"` // always 24 entries, 00:00-23:00

	TopPerformingPosts      []PostSummary    `json:"top_performing_posts"`
	EngagementByContentType map[string]int64 `json:"engagement_by_content_type"` // zero totals excluded
	PostCountByContentType  map[string]int   `json:"post_count_by_content_type"`
	HashtagRankings         []HashtagCount   `json:"hashtag_rankings"`

	Sentiment SentimentTally `json:"sentiment"`

	// OverallPerformance is sourced from a separate page-insights call and may
	// be empty when that call fails; report construction does not depend on it.
	OverallPerformance map[string]DayPerformance `json:"overall_performance,omitempty"` // keyed "YYYY-MM-DD"

	BestContentTypeSuggestion string   `json:"best_content_type_suggestion,omitempty"`
	BestTimeToPostSuggestion  string   `json:"best_time_to_post_suggestion,omitempty"`
	WeeklySummary             string   `json:"weekly_summary,omitempty"`
	Recommendations           []string `json:"recommendations"`
}
