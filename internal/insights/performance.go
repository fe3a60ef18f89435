package insights

import (
	"spyglass/pkg/clients/facebook"
	"spyglass/pkg/models"
)

// BuildOverallPerformance folds the daily page metrics into a per-day series
// keyed by calendar date ("YYYY-MM-DD"). Unrecognized metrics and values
// without a usable end time are skipped.
func BuildOverallPerformance(metrics []facebook.Metric) map[string]models.DayPerformance {
	perf := make(map[string]models.DayPerformance)
	for _, metric := range metrics {
		for _, value := range metric.Values {
			if len(value.EndTime) < 10 {
				continue
			}
			date := value.EndTime[:10]
			day := perf[date]
			switch metric.Name {
			case facebook.MetricImpressionsUnique:
				day.Reach = value.IntValue()
			case facebook.MetricEngagedUsers:
				day.Engagement = value.IntValue()
			default:
				continue
			}
			perf[date] = day
		}
	}
	return perf
}

// SummarizeGenderBuckets collapses the gender/age breakdown ("M.25-34",
// "F.18-24", ...) into three totals. Zero totals are dropped so the caller
// can tell "no data" from "no followers of that gender".
func SummarizeGenderBuckets(buckets map[string]int) map[string]int {
	totals := map[string]int{"Male": 0, "Female": 0, "Unknown": 0}
	for key, count := range buckets {
		switch {
		case len(key) >= 2 && key[:2] == "M.":
			totals["Male"] += count
		case len(key) >= 2 && key[:2] == "F.":
			totals["Female"] += count
		default:
			totals["Unknown"] += count
		}
	}
	for gender, total := range totals {
		if total == 0 {
			delete(totals, gender)
		}
	}
	return totals
}
