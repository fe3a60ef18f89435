package insights

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/pkg/clients/facebook"
	"spyglass/pkg/logging"
)

type fakeFetcher struct {
	mu        sync.Mutex
	page      *facebook.Page
	pageErr   error
	posts     map[string][]facebook.Post // keyed by fields selection
	postsErr  error
	listCalls []facebook.ListPostsOptions
	daily     []facebook.Metric
	dailyErr  error
	gender    map[string]int
	genderErr error
}

func (f *fakeFetcher) GetPage(ctx context.Context, token string) (*facebook.Page, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.page, nil
}

func (f *fakeFetcher) ListPosts(ctx context.Context, token string, opts facebook.ListPostsOptions) ([]facebook.Post, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, opts)
	f.mu.Unlock()
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	return f.posts[opts.Fields], nil
}

func (f *fakeFetcher) GetDailyInsights(ctx context.Context, token string) ([]facebook.Metric, error) {
	if f.dailyErr != nil {
		return nil, f.dailyErr
	}
	return f.daily, nil
}

func (f *fakeFetcher) GetGenderBreakdown(ctx context.Context, token string) (map[string]int, error) {
	if f.genderErr != nil {
		return nil, f.genderErr
	}
	return f.gender, nil
}

func testPage(followers int64) *facebook.Page {
	return &facebook.Page{ID: "page-1", Name: "Test Page", FollowersCount: &followers}
}

func testPost(id string, created string, likes int64) facebook.Post {
	return facebook.Post{
		ID:          id,
		CreatedTime: &created,
		Reactions:   &facebook.SummaryEdge{Summary: &facebook.EdgeSummary{TotalCount: &likes}},
	}
}

func TestAnalyzePage(t *testing.T) {
	since := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	historyFields := "id,message,created_time,type,reactions.limit(0).summary(total_count),comments.limit(5).summary(true),shares"

	fetcher := &fakeFetcher{
		page: testPage(2000),
		posts: map[string][]facebook.Post{
			facebook.PeriodPostFields: {
				testPost("p1", "2024-01-15T10:00:00+0000", 10),
			},
			historyFields: {
				testPost("h1", "2024-01-01T10:00:00+0000", 100),
				testPost("h2", "2024-01-02T10:00:00+0000", 50),
			},
		},
		daily: []facebook.Metric{
			{
				Name: facebook.MetricImpressionsUnique,
				Values: []facebook.MetricValue{
					{Value: json.RawMessage("75"), EndTime: "2024-01-15T08:00:00+0000"},
				},
			},
		},
	}

	analyzer := NewAnalyzer(fetcher, FixedGrowth(2.0), Config{Location: time.UTC}, logging.NewLogger())
	report, err := analyzer.AnalyzePage(context.Background(), "token", since)

	require.NoError(t, err)
	assert.Equal(t, int64(2000), report.TotalFollowers)
	assert.Equal(t, 2, report.TotalPostsAnalyzed)
	assert.Equal(t, 1, report.PeriodMetrics.PostsInPeriod)
	assert.True(t, report.HasRecentActivity)
	assert.Equal(t, 2.0, report.GrowthPercentage)
	assert.Equal(t, 75, report.OverallPerformance["2024-01-15"].Reach)

	// Both windows fetched with their own bounds
	require.Len(t, fetcher.listCalls, 2)
	var periodCall, historyCall *facebook.ListPostsOptions
	for i := range fetcher.listCalls {
		if fetcher.listCalls[i].Fields == facebook.PeriodPostFields {
			periodCall = &fetcher.listCalls[i]
		} else {
			historyCall = &fetcher.listCalls[i]
		}
	}
	require.NotNil(t, periodCall)
	require.NotNil(t, historyCall)
	assert.Equal(t, since.Unix(), periodCall.Since)
	assert.Equal(t, 100, periodCall.Limit)
	assert.Equal(t, int64(0), historyCall.Since)
	assert.Equal(t, 50, historyCall.Limit)
	assert.Equal(t, historyFields, historyCall.Fields)
}

func TestAnalyzePage_PerformanceFailureIsRecovered(t *testing.T) {
	fetcher := &fakeFetcher{
		page:     testPage(100),
		posts:    map[string][]facebook.Post{},
		dailyErr: errors.New("insights unavailable"),
	}

	analyzer := NewAnalyzer(fetcher, FixedGrowth(1.0), Config{Location: time.UTC}, logging.NewLogger())
	report, err := analyzer.AnalyzePage(context.Background(), "token", time.Time{})

	require.NoError(t, err)
	assert.Nil(t, report.OverallPerformance)
	assert.Len(t, report.EngagementByDay, 7)
}

func TestAnalyzePage_UpstreamErrorPropagates(t *testing.T) {
	fetcher := &fakeFetcher{pageErr: facebook.ErrUserToken, posts: map[string][]facebook.Post{}}

	analyzer := NewAnalyzer(fetcher, FixedGrowth(1.0), Config{}, logging.NewLogger())
	_, err := analyzer.AnalyzePage(context.Background(), "token", time.Time{})

	require.Error(t, err)
	assert.ErrorIs(t, err, facebook.ErrUserToken)
}

func TestAnalyzerStandaloneQueries(t *testing.T) {
	fetcher := &fakeFetcher{
		page: testPage(300),
		posts: map[string][]facebook.Post{
			facebook.PeriodPostFields: {testPost("p1", "2024-01-15T10:00:00+0000", 6)},
		},
		gender: map[string]int{"M.25-34": 30, "F.25-34": 20},
	}

	analyzer := NewAnalyzer(fetcher, FixedGrowth(1.0), Config{Location: time.UTC}, logging.NewLogger())
	ctx := context.Background()

	followers, err := analyzer.FollowerCount(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, int64(300), followers)

	profile, err := analyzer.PageProfile(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "Test Page", profile.Name)

	gender, err := analyzer.GenderBreakdown(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Male": 30, "Female": 20}, gender)

	series, err := analyzer.BestDay(ctx, "token", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, series, 7)
	assert.Equal(t, 6.0, series[0].Average) // 2024-01-15 is a Monday
}
