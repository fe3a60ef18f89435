package insights

import (
	"fmt"
	"unicode"

	"spyglass/pkg/models"
)

// maxSeriesPoint returns the entry with the highest average; ties keep the
// earliest entry. ok is false for an empty series.
func maxSeriesPoint(series []models.SeriesPoint) (models.SeriesPoint, bool) {
	if len(series) == 0 {
		return models.SeriesPoint{}, false
	}
	best := series[0]
	for _, point := range series[1:] {
		if point.Average > best.Average {
			best = point
		}
	}
	return best, true
}

// maxContentType returns the content type with the highest engagement total.
// Ties are broken lexicographically so the result is stable across runs.
func maxContentType(totals map[string]int64) (string, bool) {
	var best string
	var bestTotal int64
	found := false
	for contentType, total := range totals {
		if !found || total > bestTotal || (total == bestTotal && contentType < best) {
			best = contentType
			bestTotal = total
			found = true
		}
	}
	return best, found
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// GenerateRecommendations derives the textual suggestions from the completed
// aggregate. Each recommendation is an independent optional computation;
// one being undefined never blocks the others.
func GenerateRecommendations(report *models.InsightReport) {
	var recommendations []string

	bestType, hasType := maxContentType(report.EngagementByContentType)
	if hasType {
		suggestion := fmt.Sprintf("%s content performs best on your page. Consider creating more %s posts.",
			capitalize(bestType), bestType)
		report.BestContentTypeSuggestion = suggestion
		recommendations = append(recommendations, "💡 "+suggestion)
	}

	bestDay, hasDay := maxSeriesPoint(report.EngagementByDay)
	bestHour, hasHour := maxSeriesPoint(report.EngagementByHour)
	if hasDay && hasHour {
		suggestion := fmt.Sprintf("Your audience is most active on %ss between %s.", bestDay.Key, bestHour.Key)
		report.BestTimeToPostSuggestion = suggestion
		recommendations = append(recommendations, "⏰ "+suggestion)
	}

	summaryType := "image"
	if hasType {
		summaryType = bestType
	}
	summaryDay := "evening"
	if hasDay {
		summaryDay = bestDay.Key
	}
	report.WeeklySummary = fmt.Sprintf("This week, %s content and %s posts performed best. Overall engagement increased by %.1f%%.",
		summaryType, summaryDay, report.GrowthPercentage)

	report.Recommendations = recommendations
}
