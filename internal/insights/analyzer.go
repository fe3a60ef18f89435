package insights

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"spyglass/pkg/clients/facebook"
	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

// PageFetcher is the upstream surface the analyzer needs. *facebook.Client
// satisfies it; tests substitute a fake.
type PageFetcher interface {
	GetPage(ctx context.Context, token string) (*facebook.Page, error)
	ListPosts(ctx context.Context, token string, opts facebook.ListPostsOptions) ([]facebook.Post, error)
	GetDailyInsights(ctx context.Context, token string) ([]facebook.Metric, error)
	GetGenderBreakdown(ctx context.Context, token string) (map[string]int, error)
}

// Config bounds the two fetch windows and the ranking sizes. Zero values take
// the defaults below.
type Config struct {
	PeriodPostLimit      int
	HistoryPostLimit     int
	HistoryCommentSample int
	TopPostsLimit        int
	HashtagLimit         int
	Location             *time.Location
}

// DefaultConfig returns the production window sizes.
func DefaultConfig() Config {
	return Config{
		PeriodPostLimit:      100,
		HistoryPostLimit:     50,
		HistoryCommentSample: 5,
		TopPostsLimit:        DefaultTopPostsLimit,
		HashtagLimit:         DefaultHashtagLimit,
	}
}

// Analyzer runs the full analysis pipeline against an upstream page fetcher.
// It holds no per-request state, so one instance serves concurrent requests.
type Analyzer struct {
	fetcher PageFetcher
	growth  GrowthEstimator
	config  Config
	logger  logging.Logger
}

// NewAnalyzer wires an analyzer. A nil growth estimator falls back to the
// seeded default so repeated analyses of the same page agree.
func NewAnalyzer(fetcher PageFetcher, growth GrowthEstimator, config Config, logger logging.Logger) *Analyzer {
	defaults := DefaultConfig()
	if config.PeriodPostLimit <= 0 {
		config.PeriodPostLimit = defaults.PeriodPostLimit
	}
	if config.HistoryPostLimit <= 0 {
		config.HistoryPostLimit = defaults.HistoryPostLimit
	}
	if config.HistoryCommentSample <= 0 {
		config.HistoryCommentSample = defaults.HistoryCommentSample
	}
	if config.TopPostsLimit <= 0 {
		config.TopPostsLimit = defaults.TopPostsLimit
	}
	if config.HashtagLimit <= 0 {
		config.HashtagLimit = defaults.HashtagLimit
	}
	if growth == nil {
		growth = SeededGrowth{}
	}
	return &Analyzer{fetcher: fetcher, growth: growth, config: config, logger: logger}
}

// normalizeSince defaults the window start to the last 7 days.
func normalizeSince(since time.Time) time.Time {
	if since.IsZero() {
		return time.Now().AddDate(0, 0, -7)
	}
	return since
}

// AnalyzePage fetches the page, the since-bounded period window and the
// independent historical window concurrently, then assembles the report. The
// overall-performance series is best effort: its fetch failing is logged and
// leaves the field empty without failing the analysis.
func (a *Analyzer) AnalyzePage(ctx context.Context, token string, since time.Time) (*models.InsightReport, error) {
	since = normalizeSince(since)

	var (
		page         *facebook.Page
		periodPosts  []facebook.Post
		historyPosts []facebook.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = a.fetcher.GetPage(gctx, token)
		return err
	})
	g.Go(func() error {
		var err error
		periodPosts, err = a.fetcher.ListPosts(gctx, token, facebook.ListPostsOptions{
			Fields: facebook.PeriodPostFields,
			Since:  since.Unix(),
			Limit:  a.config.PeriodPostLimit,
		})
		return err
	})
	g.Go(func() error {
		var err error
		historyPosts, err = a.fetcher.ListPosts(gctx, token, facebook.ListPostsOptions{
			Fields: fmt.Sprintf(facebook.HistoryPostFields, a.config.HistoryCommentSample),
			Limit:  a.config.HistoryPostLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := BuildReport(ReportInput{
		Followers:    page.Followers(),
		PeriodPosts:  NormalizePosts(periodPosts),
		HistoryPosts: NormalizePosts(historyPosts),
		Since:        since,
		Location:     a.config.Location,
		Performance:  a.fetchPerformance(ctx, token),
		Growth:       a.growth.EstimateGrowth(page.ID),
		TopPosts:     a.config.TopPostsLimit,
		Hashtags:     a.config.HashtagLimit,
	})
	return &report, nil
}

func (a *Analyzer) fetchPerformance(ctx context.Context, token string) map[string]models.DayPerformance {
	metrics, err := a.fetcher.GetDailyInsights(ctx, token)
	if err != nil {
		if a.logger != nil {
			a.logger.WithError(err).Warn("Overall performance fetch failed, continuing without it")
		}
		return nil
	}
	return BuildOverallPerformance(metrics)
}

// PageProfile fetches the page node and maps it to the profile view.
func (a *Analyzer) PageProfile(ctx context.Context, token string) (*models.PageProfile, error) {
	page, err := a.fetcher.GetPage(ctx, token)
	if err != nil {
		return nil, err
	}
	return &models.PageProfile{
		Name:       page.Name,
		ID:         page.ID,
		Category:   page.Category,
		PictureURL: page.PictureURL(),
	}, nil
}

// FollowerCount fetches the page's follower count.
func (a *Analyzer) FollowerCount(ctx context.Context, token string) (int64, error) {
	page, err := a.fetcher.GetPage(ctx, token)
	if err != nil {
		return 0, err
	}
	return page.Followers(), nil
}

// GenderBreakdown fetches the lifetime gender/age buckets and collapses them
// to Male/Female/Unknown totals.
func (a *Analyzer) GenderBreakdown(ctx context.Context, token string) (map[string]int, error) {
	buckets, err := a.fetcher.GetGenderBreakdown(ctx, token)
	if err != nil {
		return nil, err
	}
	return SummarizeGenderBuckets(buckets), nil
}

// fetchPeriod fetches and normalizes the since-bounded window for the
// standalone series queries.
func (a *Analyzer) fetchPeriod(ctx context.Context, token string, since time.Time) ([]models.PostRecord, time.Time, error) {
	since = normalizeSince(since)
	posts, err := a.fetcher.ListPosts(ctx, token, facebook.ListPostsOptions{
		Fields: facebook.PeriodPostFields,
		Since:  since.Unix(),
		Limit:  a.config.PeriodPostLimit,
	})
	if err != nil {
		return nil, since, err
	}
	return NormalizePosts(posts), since, nil
}

// EngagementSeries computes the sparse daily engagement series on its own.
func (a *Analyzer) EngagementSeries(ctx context.Context, token string, since time.Time) ([]models.DailyEngagement, error) {
	records, start, err := a.fetchPeriod(ctx, token, since)
	if err != nil {
		return nil, err
	}
	return EngagementOverTime(records, start, a.config.Location), nil
}

// BestDay computes the dense weekday series on its own.
func (a *Analyzer) BestDay(ctx context.Context, token string, since time.Time) ([]models.SeriesPoint, error) {
	records, start, err := a.fetchPeriod(ctx, token, since)
	if err != nil {
		return nil, err
	}
	return BestDayToPost(records, start, a.config.Location), nil
}

// BestHour computes the dense hourly series on its own.
func (a *Analyzer) BestHour(ctx context.Context, token string, since time.Time) ([]models.SeriesPoint, error) {
	records, start, err := a.fetchPeriod(ctx, token, since)
	if err != nil {
		return nil, err
	}
	return BestHourToPost(records, start, a.config.Location), nil
}

// OverallPerformance fetches the daily page metrics as a standalone series.
// Unlike the report path, upstream failure is returned to the caller here.
func (a *Analyzer) OverallPerformance(ctx context.Context, token string) (map[string]models.DayPerformance, error) {
	metrics, err := a.fetcher.GetDailyInsights(ctx, token)
	if err != nil {
		return nil, err
	}
	return BuildOverallPerformance(metrics), nil
}
