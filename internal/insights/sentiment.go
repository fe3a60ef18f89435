package insights

import (
	"strings"

	"spyglass/pkg/models"
)

// Curated keyword sets for the deterministic sentiment pass. Matching is by
// substring containment on the lowercased comment; there is no stemming or
// negation handling.
var (
	positiveKeywords = []string{"love", "great", "amazing", "excellent", "good", "awesome", "nice", "perfect"}
	negativeKeywords = []string{"bad", "hate", "terrible", "awful", "disappointed", "poor", "sad"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ClassifyComment tallies a single comment. A comment contributes at most 1
// to each of the positive and negative tallies regardless of how many
// keywords it contains, and may contribute to both.
func ClassifyComment(comment string, tally *models.SentimentTally) {
	text := strings.ToLower(comment)
	positive := containsAny(text, positiveKeywords)
	negative := containsAny(text, negativeKeywords)

	if positive {
		tally.Positive++
	}
	if negative {
		tally.Negative++
	}
	if !positive && !negative {
		tally.Neutral++
	}
}

// SentimentCounts runs the keyword pass over every sampled comment of the
// given records.
func SentimentCounts(records []models.PostRecord) models.SentimentTally {
	var tally models.SentimentTally
	for _, rec := range records {
		for _, comment := range rec.Comments {
			ClassifyComment(comment, &tally)
		}
	}
	return tally
}
