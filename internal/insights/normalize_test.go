package insights

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/pkg/clients/facebook"
	"spyglass/pkg/models"
)

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }

func TestNormalizePost_Defaults(t *testing.T) {
	rec := NormalizePost(facebook.Post{ID: "1"})

	assert.Equal(t, "1", rec.ID)
	assert.Nil(t, rec.CreatedAt)
	assert.Equal(t, "", rec.Message)
	assert.Equal(t, int64(0), rec.ReactionCount)
	assert.Equal(t, int64(0), rec.CommentCount)
	assert.Equal(t, int64(0), rec.ShareCount)
	assert.Equal(t, models.ContentTypeUnknown, rec.ContentType)
	assert.Equal(t, int64(0), rec.Engagement())
}

func TestNormalizePost_FullPayload(t *testing.T) {
	post := facebook.Post{
		ID:          "2",
		Message:     strPtr("hello world"),
		CreatedTime: strPtr("2024-01-15T10:30:45+0000"),
		Type:        strPtr("photo"),
		Reactions:   &facebook.SummaryEdge{Summary: &facebook.EdgeSummary{TotalCount: int64Ptr(7)}},
		Comments: &facebook.CommentsEdge{
			Data:    []facebook.Comment{{ID: "c1", Message: "nice"}},
			Summary: &facebook.EdgeSummary{TotalCount: int64Ptr(3)},
		},
		Shares: &facebook.ShareAttachment{Count: 2},
	}

	rec := NormalizePost(post)

	require.NotNil(t, rec.CreatedAt)
	assert.Equal(t, 2024, rec.CreatedAt.Year())
	assert.Equal(t, "hello world", rec.Message)
	assert.Equal(t, "photo", rec.ContentType)
	assert.Equal(t, int64(7), rec.ReactionCount)
	assert.Equal(t, int64(3), rec.CommentCount)
	assert.Equal(t, int64(2), rec.ShareCount)
	assert.Equal(t, int64(12), rec.Engagement())
	assert.Equal(t, []string{"nice"}, rec.Comments)
}

func TestNormalizePost_BadTimestampSkipped(t *testing.T) {
	rec := NormalizePost(facebook.Post{ID: "3", CreatedTime: strPtr("not-a-date")})
	assert.Nil(t, rec.CreatedAt)
}

func TestSummarize_MediaPostFallback(t *testing.T) {
	summary := Summarize(models.PostRecord{ID: "4", ContentType: "photo"})

	assert.Equal(t, models.MediaPostText, summary.Text)
	assert.Equal(t, models.MediaPostText, summary.FullText)
	assert.Equal(t, "Unknown", summary.CreatedTime)
}

func TestSummarize_Truncation(t *testing.T) {
	long := strings.Repeat("a", 60)
	summary := Summarize(models.PostRecord{ID: "5", Message: long})

	assert.Len(t, summary.Text, 50)
	assert.Equal(t, strings.Repeat("a", 47)+"...", summary.Text)
	assert.Equal(t, long, summary.FullText)

	exactly50 := strings.Repeat("b", 50)
	summary = Summarize(models.PostRecord{ID: "6", Message: exactly50})
	assert.Equal(t, exactly50, summary.Text)
}

func TestSummarize_TruncationCountsRunesNotBytes(t *testing.T) {
	// 30 characters but 90 bytes; must not be truncated
	short := strings.Repeat("❤", 30)
	summary := Summarize(models.PostRecord{ID: "7", Message: short})
	assert.Equal(t, short, summary.Text)

	// 60 characters; cut at 47 characters without splitting a rune
	long := strings.Repeat("❤", 60)
	summary = Summarize(models.PostRecord{ID: "8", Message: long})
	assert.Equal(t, strings.Repeat("❤", 47)+"...", summary.Text)
	assert.True(t, utf8.ValidString(summary.Text))
}
