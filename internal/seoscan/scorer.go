package seoscan

import (
	"math"

	"github.com/seolens/seolens/internal/model"
)

// Overall score weights. These sum to 1 and are part of the versioned rules
// table, not a runtime parameter.
const (
	weightTechnical   = 0.35
	weightContent     = 0.40
	weightPerformance = 0.25
)

// Score computes the three sub-scores and the weighted overall score from a
// fact snapshot. Pure and total: identical facts always produce identical
// scores, and every value lands in [0,100]. Each category starts at 100,
// penalties are summed, and clamping happens once after the sum so penalties
// stay additive and order-independent.
func Score(facts model.PageFacts) model.ScoreBreakdown {
	var penalties [3]int
	for _, r := range rules {
		if r.applies(facts) {
			penalties[r.category] += r.penalty
		}
	}

	technical := clampScore(100 - penalties[categoryTechnical])
	content := clampScore(100 - penalties[categoryContent])
	performance := clampScore(100 - penalties[categoryPerformance])

	overall := int(math.Round(
		float64(technical)*weightTechnical +
			float64(content)*weightContent +
			float64(performance)*weightPerformance,
	))

	return model.ScoreBreakdown{
		Technical:   technical,
		Content:     content,
		Performance: performance,
		Overall:     clampScore(overall),
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
