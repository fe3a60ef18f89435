package insights

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/pkg/clients/facebook"
)

func metricValue(value string, endTime string) facebook.MetricValue {
	return facebook.MetricValue{Value: json.RawMessage(value), EndTime: endTime}
}

func TestBuildOverallPerformance(t *testing.T) {
	metrics := []facebook.Metric{
		{
			Name: facebook.MetricImpressionsUnique,
			Values: []facebook.MetricValue{
				metricValue("120", "2024-01-15T08:00:00+0000"),
				metricValue("90", "2024-01-16T08:00:00+0000"),
			},
		},
		{
			Name: facebook.MetricEngagedUsers,
			Values: []facebook.MetricValue{
				metricValue("40", "2024-01-15T08:00:00+0000"),
			},
		},
		{
			Name:   "page_some_other_metric",
			Values: []facebook.MetricValue{metricValue("7", "2024-01-15T08:00:00+0000")},
		},
	}

	perf := BuildOverallPerformance(metrics)

	require.Len(t, perf, 2)
	assert.Equal(t, 120, perf["2024-01-15"].Reach)
	assert.Equal(t, 40, perf["2024-01-15"].Engagement)
	assert.Equal(t, 90, perf["2024-01-16"].Reach)
	assert.Equal(t, 0, perf["2024-01-16"].Engagement)
}

func TestBuildOverallPerformance_BadEndTime(t *testing.T) {
	metrics := []facebook.Metric{
		{Name: facebook.MetricImpressionsUnique, Values: []facebook.MetricValue{metricValue("10", "bad")}},
	}

	perf := BuildOverallPerformance(metrics)
	assert.Empty(t, perf)
}

func TestSummarizeGenderBuckets(t *testing.T) {
	buckets := map[string]int{
		"M.25-34": 100,
		"M.35-44": 50,
		"F.18-24": 80,
		"U.25-34": 5,
	}

	totals := SummarizeGenderBuckets(buckets)

	assert.Equal(t, 150, totals["Male"])
	assert.Equal(t, 80, totals["Female"])
	assert.Equal(t, 5, totals["Unknown"])
}

func TestSummarizeGenderBuckets_DropsZeroTotals(t *testing.T) {
	totals := SummarizeGenderBuckets(map[string]int{"M.25-34": 10})

	assert.Equal(t, map[string]int{"Male": 10}, totals)
}
