package planning

// Tuning bundles the engine's heuristic constants. Every loop in the engine
// is bounded by one of these caps, so pathological inputs cannot cause
// unbounded work.
//
// The acceptance band is 90-120% of target. The original planner documented
// the band as "90-105%" in one place while scoring against 120; the operative
// constant is 120 and that is the contract here.
type Tuning struct {
	// Acceptance band, as fractions of target
	BandFloor   float64
	BandCeiling float64

	// Hard per-nutrient overshoot margins, applied to the band ceiling.
	// Insertion logic may never push a total past target * ceiling * margin.
	CarbsOvershoot  float64
	SodiumOvershoot float64
	FluidOvershoot  float64

	// Composer caps
	PrimaryItemCap   int // distinct items added by the primary fill
	PrimaryQtyCap    int // servings per item in the primary fill
	FillerQtyCap     int // servings per item in the real-food gap-fill
	WaterQtyCap      int // servings of water in the hydration fill
	ComposerEntryCap int // total entries per composed plan

	// Sodium coverage (percent) at which the primary fill hands over
	// to real-food filling
	PrimarySodiumStop float64

	// Max sodium (mg/serving) for an item to qualify as a low-sodium filler
	FillerSodiumMax float64

	// Multi-start searcher
	SearchRotations int

	// Refinement pass
	RefineQtyCap        int
	RefineEntryCap      int
	RefineMaxIterations int
}

// DefaultTuning returns the hand-tuned production constants
func DefaultTuning() Tuning {
	return Tuning{
		BandFloor:           0.90,
		BandCeiling:         1.20,
		CarbsOvershoot:      1.05,
		SodiumOvershoot:     1.15,
		FluidOvershoot:      1.10,
		PrimaryItemCap:      3,
		PrimaryQtyCap:       2,
		FillerQtyCap:        3,
		WaterQtyCap:         4,
		ComposerEntryCap:    6,
		PrimarySodiumStop:   95.0,
		FillerSodiumMax:     15.0,
		SearchRotations:     5,
		RefineQtyCap:        4,
		RefineEntryCap:      8,
		RefineMaxIterations: 10,
	}
}

// ceiling returns the hard insertion ceiling for a nutrient target. A zero
// target means the nutrient is not a goal for this run and is unconstrained.
func (t Tuning) ceiling(target int, margin float64) float64 {
	if target <= 0 {
		return maxUnconstrained
	}
	return float64(target) * t.BandCeiling * margin
}

// Effectively no ceiling; large enough that no realistic plan reaches it
const maxUnconstrained = 1e12
