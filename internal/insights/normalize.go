package insights

import (
	"spyglass/pkg/clients/facebook"
	"spyglass/pkg/models"
)

// NormalizePost converts a raw Graph API post into the canonical record.
// Missing counters become 0, a missing type becomes "unknown" and a missing
// timestamp stays nil so the post is excluded from time-bucketed views.
func NormalizePost(p facebook.Post) models.PostRecord {
	rec := models.PostRecord{
		ID:            p.ID,
		ReactionCount: p.ReactionCount(),
		CommentCount:  p.CommentCount(),
		ShareCount:    p.ShareCount(),
		ContentType:   models.ContentTypeUnknown,
		Comments:      p.CommentMessages(),
	}
	if p.Message != nil {
		rec.Message = *p.Message
	}
	if p.Type != nil && *p.Type != "" {
		rec.ContentType = *p.Type
	}
	if ts, ok := p.CreatedAt(); ok {
		rec.CreatedAt = &ts
	}
	return rec
}

// NormalizePosts converts a slice of raw posts, preserving retrieval order.
func NormalizePosts(posts []facebook.Post) []models.PostRecord {
	records := make([]models.PostRecord, 0, len(posts))
	for _, p := range posts {
		records = append(records, NormalizePost(p))
	}
	return records
}

// Summarize builds the presentation form of a record.
func Summarize(rec models.PostRecord) models.PostSummary {
	createdTime := "Unknown"
	if rec.CreatedAt != nil {
		createdTime = rec.CreatedAt.Format("2006-01-02T15:04:05-0700")
	}
	return models.PostSummary{
		ID:          rec.ID,
		Text:        rec.ShortMessage(),
		FullText:    rec.DisplayMessage(),
		Likes:       rec.ReactionCount,
		Comments:    rec.CommentCount,
		Shares:      rec.ShareCount,
		Engagement:  rec.Engagement(),
		CreatedTime: createdTime,
		ContentType: rec.ContentType,
	}
}
