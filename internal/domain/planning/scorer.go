package planning

import "math"

// Per-nutrient penalty curves. The score starts at 100 and loses points
// proportional to how far coverage sits outside the acceptance band, capped
// per nutrient. Carbs carry the strictest band and the steepest overshoot
// penalty; sodium punishes undershoot harder than overshoot; fluid penalties
// are the gentlest.
type penaltyCurve struct {
	underRate float64
	underCap  float64
	overRate  float64
	overCap   float64
}

var (
	carbsPenalty  = penaltyCurve{underRate: 1.5, underCap: 40, overRate: 2.0, overCap: 40}
	sodiumPenalty = penaltyCurve{underRate: 1.2, underCap: 30, overRate: 0.8, overCap: 20}
	fluidPenalty  = penaltyCurve{underRate: 0.8, underCap: 20, overRate: 0.5, overCap: 15}
)

func (c penaltyCurve) penalty(coverage, floor, ceiling float64) float64 {
	switch {
	case coverage < floor:
		return math.Min(c.underCap, (floor-coverage)*c.underRate)
	case coverage > ceiling:
		return math.Min(c.overCap, (coverage-ceiling)*c.overRate)
	default:
		return 0
	}
}

// scoreTotals maps a plan's coverage onto a single 0-100 quality score
func (e *Engine) scoreTotals(t Target, tot Totals) int {
	cov := coverageOf(t, tot)
	floor := e.tuning.BandFloor * 100
	ceiling := e.tuning.BandCeiling * 100

	score := 100.0
	score -= carbsPenalty.penalty(cov.Carbs, floor, ceiling)
	score -= sodiumPenalty.penalty(cov.Sodium, floor, ceiling)
	score -= fluidPenalty.penalty(cov.Fluid, floor, ceiling)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
