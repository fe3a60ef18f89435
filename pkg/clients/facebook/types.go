package facebook

import (
	"encoding/json"
	"time"
)

// Graph API timestamps look like "2024-01-15T10:30:45+0000".
const timeLayout = "2006-01-02T15:04:05-0700"

// Page is the page node as returned by the Graph API.
type Page struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	FanCount       *int64   `json:"fan_count"`
	FollowersCount *int64   `json:"followers_count"`
	Picture        *Picture `json:"picture"`
}

// Followers returns the follower count, falling back to the fan count and
// then to zero when neither field is present.
func (p *Page) Followers() int64 {
	if p.FollowersCount != nil {
		return *p.FollowersCount
	}
	if p.FanCount != nil {
		return *p.FanCount
	}
	return 0
}

// PictureURL returns the page picture URL or "" when absent.
func (p *Page) PictureURL() string {
	if p.Picture != nil {
		return p.Picture.Data.URL
	}
	return ""
}

// Picture wraps the nested picture payload.
type Picture struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Post is one entry of a posts connection.
type Post struct {
	ID          string           `json:"id"`
	Message     *string          `json:"message"`
	CreatedTime *string          `json:"created_time"`
	Type        *string          `json:"type"`
	Reactions   *SummaryEdge     `json:"reactions"`
	Comments    *CommentsEdge    `json:"comments"`
	Shares      *ShareAttachment `json:"shares"`
}

// CreatedAt parses the post timestamp; ok is false when the field is absent
// or unparseable.
func (p *Post) CreatedAt() (time.Time, bool) {
	if p.CreatedTime == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(timeLayout, *p.CreatedTime)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// ReactionCount returns the reaction summary total, 0 when absent.
func (p *Post) ReactionCount() int64 {
	if p.Reactions != nil && p.Reactions.Summary != nil && p.Reactions.Summary.TotalCount != nil {
		return *p.Reactions.Summary.TotalCount
	}
	return 0
}

// CommentCount returns the comment summary total, 0 when absent.
func (p *Post) CommentCount() int64 {
	if p.Comments != nil && p.Comments.Summary != nil && p.Comments.Summary.TotalCount != nil {
		return *p.Comments.Summary.TotalCount
	}
	return 0
}

// ShareCount returns the share count, 0 when absent.
func (p *Post) ShareCount() int64 {
	if p.Shares != nil {
		return p.Shares.Count
	}
	return 0
}

// CommentMessages returns the sampled comment texts carried on the post.
func (p *Post) CommentMessages() []string {
	if p.Comments == nil || len(p.Comments.Data) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(p.Comments.Data))
	for _, c := range p.Comments.Data {
		msgs = append(msgs, c.Message)
	}
	return msgs
}

// SummaryEdge is an edge fetched with .summary(...) only.
type SummaryEdge struct {
	Summary *EdgeSummary `json:"summary"`
}

// CommentsEdge carries a bounded comment sample plus the summary total.
type CommentsEdge struct {
	Data    []Comment    `json:"data"`
	Summary *EdgeSummary `json:"summary"`
}

// EdgeSummary is the summary block of a connection edge.
type EdgeSummary struct {
	TotalCount *int64 `json:"total_count"`
}

// Comment is a single comment on a post.
type Comment struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// ShareAttachment is the shares field of a post.
type ShareAttachment struct {
	Count int64 `json:"count"`
}

// postsConnection is a page of a posts edge.
type postsConnection struct {
	Data   []Post `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// Metric is one metric of an insights response.
type Metric struct {
	Name   string        `json:"name"`
	Period string        `json:"period"`
	Values []MetricValue `json:"values"`
}

// MetricValue is a single value of an insights metric. The value is an
// integer for daily metrics and an object for breakdown metrics, so it is
// kept raw and decoded on demand.
type MetricValue struct {
	Value   json.RawMessage `json:"value"`
	EndTime string          `json:"end_time"`
}

// IntValue decodes the value as an integer, returning 0 when it is not one.
func (v MetricValue) IntValue() int {
	var n int
	if err := json.Unmarshal(v.Value, &n); err != nil {
		return 0
	}
	return n
}

// BucketValue decodes the value as a string-keyed breakdown map.
func (v MetricValue) BucketValue() map[string]int {
	var buckets map[string]int
	if err := json.Unmarshal(v.Value, &buckets); err != nil {
		return nil
	}
	return buckets
}

// insightsConnection is a page of an insights edge.
type insightsConnection struct {
	Data   []Metric `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

// graphErrorEnvelope is the Graph API error payload.
type graphErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}
