package insights

import (
	"hash/fnv"
	"math/rand"
)

// GrowthEstimator supplies the period-over-period growth figure quoted in
// recommendations. Real page-growth history is not available from a single
// snapshot, so the production estimator is a seeded stand-in; keeping it
// behind this interface keeps the aggregation pipeline deterministic and
// testable.
type GrowthEstimator interface {
	EstimateGrowth(pageID string) float64
}

// FixedGrowth returns the same growth figure for every page.
type FixedGrowth float64

func (g FixedGrowth) EstimateGrowth(string) float64 { return float64(g) }

// SeededGrowth derives a growth percentage in [1.5, 3.5) from the page ID
// and a fixed seed, so repeated analyses of the same page agree.
type SeededGrowth struct {
	Seed int64
}

func (g SeededGrowth) EstimateGrowth(pageID string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(pageID))
	r := rand.New(rand.NewSource(g.Seed ^ int64(h.Sum64())))
	return 1.5 + 2.0*r.Float64()
}
