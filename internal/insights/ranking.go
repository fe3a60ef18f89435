package insights

import (
	"regexp"
	"sort"
	"strings"

	"spyglass/pkg/models"
)

// hashtagSplit separates message text into tokens on whitespace and
// punctuation, keeping '#' attached so hashtags survive tokenization.
var hashtagSplit = regexp.MustCompile(`[^\p{L}\p{N}#]+`)

// TopPosts returns the n highest-engagement posts as summaries, sorted
// non-increasing. The sort is stable so equal-engagement posts retain their
// retrieval order.
func TopPosts(records []models.PostRecord, n int) []models.PostSummary {
	summaries := make([]models.PostSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, Summarize(rec))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Engagement > summaries[j].Engagement
	})

	if n > 0 && len(summaries) > n {
		summaries = summaries[:n]
	}
	return summaries
}

// ContentTypeEngagement sums engagement per content type. Types whose total
// is exactly 0 are dropped from the engagement map; the count map keeps every
// type so zero-engagement types remain distinguishable from absent ones.
func ContentTypeEngagement(records []models.PostRecord) (map[string]int64, map[string]int) {
	engagement := make(map[string]int64)
	counts := make(map[string]int)

	for _, rec := range records {
		contentType := rec.ContentType
		if contentType == "" {
			contentType = models.ContentTypeUnknown
		}
		engagement[contentType] += rec.Engagement()
		counts[contentType]++
	}

	for contentType, total := range engagement {
		if total == 0 {
			delete(engagement, contentType)
		}
	}
	return engagement, counts
}

// HashtagRankings counts hashtag occurrences across all post messages and
// returns the n most frequent, ties broken by first appearance.
func HashtagRankings(records []models.PostRecord, n int) []models.HashtagCount {
	var ranking []models.HashtagCount
	index := make(map[string]int)

	for _, rec := range records {
		if rec.Message == "" {
			continue
		}
		for _, token := range hashtagSplit.Split(strings.ToLower(rec.Message), -1) {
			if len(token) < 2 || !strings.HasPrefix(token, "#") {
				continue
			}
			i, seen := index[token]
			if !seen {
				i = len(ranking)
				index[token] = i
				ranking = append(ranking, models.HashtagCount{Tag: token})
			}
			ranking[i].Count++
		}
	}

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})

	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// AverageEngagementRate computes (total / posts / followers) * 100, defined
// as 0 whenever either divisor is 0.
func AverageEngagementRate(totalEngagement int64, postCount int, followers int64) float64 {
	if postCount == 0 || followers == 0 {
		return 0
	}
	return float64(totalEngagement) / float64(postCount) / float64(followers) * 100
}
