package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"

	"spyglass/pkg/clients"
)

// DefaultGraphURL is the Graph API base used when none is configured.
const DefaultGraphURL = "https://graph.facebook.com/v19.0"

// Post field selections for the two fetch windows. The period fetch only
// needs summary counts; the history fetch also samples comments for the
// sentiment pass.
const (
	PeriodPostFields  = "id,message,created_time,type,reactions.limit(0).summary(total_count),comments.limit(0).summary(true),shares"
	HistoryPostFields = "id,message,created_time,type,reactions.limit(0).summary(total_count),comments.limit(%d).summary(true),shares"
)

// Page-level insight metric names used by the standalone queries.
const (
	MetricImpressionsUnique = "page_impressions_unique"
	MetricEngagedUsers      = "page_engaged_users"
	MetricFansGenderAge     = "page_fans_gender_age"
)

// ErrUserToken is returned when the supplied token belongs to a user rather
// than a page; every page-scoped call fails with it.
var ErrUserToken = errors.New("token is a user access token, a page access token is required")

// APIError is a non-2xx answer from the Graph API.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Code       int
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("graph api error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("graph api returned status: %d", e.StatusCode)
}

// Client talks to the Facebook Graph API. Access tokens are supplied per
// call, so one client instance serves any number of pages concurrently.
type Client struct {
	baseURL      string
	client       *http.Client
	httpExecutor failsafe.Executor[*http.Response]
	shouldRetry  func(resp *http.Response, err error) bool
	maxPages     int
	observe      func(edge string, status int)
}

// Option configures the client.
type Option func(*Client)

// NewClient creates a Graph API client with retrying defaults.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultGraphURL
	}
	defaultConfig := clients.DefaultHTTPExecutorConfig()
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       &http.Client{Timeout: 15 * time.Second, Transport: clients.DefaultTransport()},
		httpExecutor: clients.NewHTTPExecutor(defaultConfig),
		shouldRetry:  defaultConfig.ShouldRetry,
		maxPages:     10,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.client = httpClient
		}
	}
}

// WithHTTPExecutorConfig overrides retry/circuit-breaker behaviour.
func WithHTTPExecutorConfig(cfg clients.HTTPExecutorConfig) Option {
	return func(c *Client) {
		c.httpExecutor = clients.NewHTTPExecutor(cfg)
		c.shouldRetry = cfg.ShouldRetry
	}
}

// WithRequestObserver registers a callback invoked after every Graph request
// with the edge name and HTTP status (0 when the request never got a reply).
func WithRequestObserver(observe func(edge string, status int)) Option {
	return func(c *Client) {
		c.observe = observe
	}
}

// WithMaxPages caps how many connection pages a list call will follow.
func WithMaxPages(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

func (c *Client) doRequest(ctx context.Context, build func(ctx context.Context) (*http.Request, error)) (*http.Response, error) {
	if c.httpExecutor == nil {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		return c.client.Do(req)
	}

	return clients.ExecuteHTTP(ctx, c.httpExecutor, func() (*http.Response, error) {
		req, err := build(ctx)
		if err != nil {
			return nil, err
		}
		resp, err := c.client.Do(req)
		if c.shouldRetry != nil && c.shouldRetry(resp, err) {
			if resp != nil && resp.Body != nil {
				_ = resp.Body.Close()
			}
		}
		return resp, err
	})
}

// get fetches a Graph URL and decodes the JSON answer into out.
func (c *Client) get(ctx context.Context, reqURL, token string, out interface{}) error {
	resp, err := c.doRequest(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	})
	if c.observe != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		c.observe(edgeName(reqURL), status)
	}
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// edgeName extracts the final path segment of a Graph URL for metric labels.
func edgeName(reqURL string) string {
	u, err := url.Parse(reqURL)
	if err != nil {
		return "unknown"
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	return parts[len(parts)-1]
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var envelope graphErrorEnvelope
		if json.Unmarshal(body, &envelope) == nil {
			apiErr.Message = envelope.Error.Message
			apiErr.Type = envelope.Error.Type
			apiErr.Code = envelope.Error.Code
		}
	}
	// The Graph API reports a user token used on a page edge as a node type
	// mismatch in the error message.
	if strings.Contains(apiErr.Message, "node type (User)") {
		return fmt.Errorf("%w: %s", ErrUserToken, apiErr.Message)
	}
	return apiErr
}

// GetPage fetches the page node with profile and follower fields.
func (c *Client) GetPage(ctx context.Context, token string) (*Page, error) {
	params := url.Values{}
	params.Set("fields", "id,name,category,picture{url},fan_count,followers_count")
	reqURL := fmt.Sprintf("%s/me?%s", c.baseURL, params.Encode())

	var page Page
	if err := c.get(ctx, reqURL, token, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPostsOptions bounds a posts fetch. Since is a Unix-seconds lower bound
// applied by the API when non-zero; Limit caps the total number of posts
// collected across connection pages.
type ListPostsOptions struct {
	Fields string
	Since  int64
	Limit  int
}

// ListPosts fetches the page's posts edge, following pagination until Limit
// posts are collected or the connection is exhausted.
func (c *Client) ListPosts(ctx context.Context, token string, opts ListPostsOptions) ([]Post, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	if opts.Fields == "" {
		opts.Fields = PeriodPostFields
	}

	params := url.Values{}
	params.Set("fields", opts.Fields)
	params.Set("limit", strconv.Itoa(opts.Limit))
	if opts.Since > 0 {
		params.Set("since", strconv.FormatInt(opts.Since, 10))
	}
	next := fmt.Sprintf("%s/me/posts?%s", c.baseURL, params.Encode())

	var posts []Post
	for page := 0; next != "" && page < c.maxPages && len(posts) < opts.Limit; page++ {
		var conn postsConnection
		if err := c.get(ctx, next, token, &conn); err != nil {
			return nil, err
		}
		posts = append(posts, conn.Data...)
		next = conn.Paging.Next
	}

	if len(posts) > opts.Limit {
		posts = posts[:opts.Limit]
	}
	return posts, nil
}

// GetInsights fetches page-level insight metrics for the given period.
func (c *Client) GetInsights(ctx context.Context, token string, metrics []string, period string) ([]Metric, error) {
	params := url.Values{}
	params.Set("metric", strings.Join(metrics, ","))
	params.Set("period", period)
	reqURL := fmt.Sprintf("%s/me/insights?%s", c.baseURL, params.Encode())

	var conn insightsConnection
	if err := c.get(ctx, reqURL, token, &conn); err != nil {
		return nil, err
	}
	return conn.Data, nil
}

// GetDailyInsights fetches the daily reach and engagement metrics.
func (c *Client) GetDailyInsights(ctx context.Context, token string) ([]Metric, error) {
	return c.GetInsights(ctx, token, []string{MetricImpressionsUnique, MetricEngagedUsers}, "day")
}

// GetGenderBreakdown fetches the lifetime gender/age follower breakdown and
// returns the latest raw bucket map ("M.25-34" etc), nil when the page has
// no breakdown data.
func (c *Client) GetGenderBreakdown(ctx context.Context, token string) (map[string]int, error) {
	metrics, err := c.GetInsights(ctx, token, []string{MetricFansGenderAge}, "lifetime")
	if err != nil {
		return nil, err
	}
	for _, metric := range metrics {
		if metric.Name != MetricFansGenderAge || len(metric.Values) == 0 {
			continue
		}
		return metric.Values[len(metric.Values)-1].BucketValue(), nil
	}
	return nil, nil
}
