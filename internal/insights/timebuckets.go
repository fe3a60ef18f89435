package insights

import (
	"fmt"
	"time"

	"spyglass/pkg/models"
)

var weekdayKeys = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// bucketTime resolves the bucketing timestamp of a record, applying the
// inclusive since lower bound. Records without a timestamp are skipped from
// every bucketed view.
func bucketTime(rec models.PostRecord, since time.Time, loc *time.Location) (time.Time, bool) {
	if rec.CreatedAt == nil {
		return time.Time{}, false
	}
	if !since.IsZero() && rec.CreatedAt.Before(since) {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	return rec.CreatedAt.In(loc), true
}

// EngagementOverTime groups records into a sparse per-day engagement series.
// Days appear in order of first appearance; only days with at least one
// qualifying post are present.
func EngagementOverTime(records []models.PostRecord, since time.Time, loc *time.Location) []models.DailyEngagement {
	var series []models.DailyEngagement
	index := make(map[string]int)

	for _, rec := range records {
		ts, ok := bucketTime(rec, since, loc)
		if !ok {
			continue
		}
		date := ts.Format("Jan 02")

		i, seen := index[date]
		if !seen {
			i = len(series)
			index[date] = i
			series = append(series, models.DailyEngagement{Date: date})
		}
		series[i].Likes += rec.ReactionCount
		series[i].Comments += rec.CommentCount
		series[i].Shares += rec.ShareCount
		series[i].Total += rec.Engagement()
	}

	return series
}

// BestDayToPost averages engagement per weekday. The result always contains
// exactly 7 entries in Mon-Sun order; weekdays without qualifying posts keep
// the seeded 0.0 average.
func BestDayToPost(records []models.PostRecord, since time.Time, loc *time.Location) []models.SeriesPoint {
	sums := make(map[string]int64, len(weekdayKeys))
	counts := make(map[string]int, len(weekdayKeys))

	for _, rec := range records {
		ts, ok := bucketTime(rec, since, loc)
		if !ok {
			continue
		}
		day := ts.Format("Mon")
		sums[day] += rec.Engagement()
		counts[day]++
	}

	series := make([]models.SeriesPoint, 0, len(weekdayKeys))
	for _, day := range weekdayKeys {
		point := models.SeriesPoint{Key: day}
		if n := counts[day]; n > 0 {
			point.Average = float64(sums[day]) / float64(n)
		}
		series = append(series, point)
	}
	return series
}

// BestHourToPost averages engagement per hour of day. The result always
// contains exactly 24 entries keyed "00:00" through "23:00".
func BestHourToPost(records []models.PostRecord, since time.Time, loc *time.Location) []models.SeriesPoint {
	var sums [24]int64
	var counts [24]int

	for _, rec := range records {
		ts, ok := bucketTime(rec, since, loc)
		if !ok {
			continue
		}
		hour := ts.Hour()
		sums[hour] += rec.Engagement()
		counts[hour]++
	}

	series := make([]models.SeriesPoint, 0, 24)
	for hour := 0; hour < 24; hour++ {
		point := models.SeriesPoint{Key: fmt.Sprintf("%02d:00", hour)}
		if counts[hour] > 0 {
			point.Average = float64(sums[hour]) / float64(counts[hour])
		}
		series = append(series, point)
	}
	return series
}
