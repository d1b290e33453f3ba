// Package planning contains the fueling plan selection engine: target
// calculation, per-strategy plan composition, multi-start search, refinement
// and scoring. The engine is a pure, synchronous computation over a catalog
// snapshot and a target; it holds no state between invocations.
package planning

import "math"

// Default per-hour intake rates, applied when a rate is unset (zero)
const (
	DefaultCarbsPerHour  = 60.0  // grams
	DefaultSodiumPerHour = 500.0 // milligrams
	DefaultFluidPerHour  = 500.0 // milliliters
)

// Rates holds the per-hour nutrient intake rates for a racer
type Rates struct {
	CarbsPerHour  float64 // g/h
	SodiumPerHour float64 // mg/h
	FluidPerHour  float64 // ml/h
}

// Target is the absolute nutrient requirement for one race window.
// Derived once from the duration and rates, never mutated during selection.
type Target struct {
	Carbs  int     // grams
	Sodium int     // milligrams
	Fluid  int     // milliliters
	Hours  float64 // window duration
}

// CalculateTarget converts a segment duration and per-hour rates into the
// absolute requirements for the window. Unset (zero) rates fall back to the
// defaults. Zero or negative durations yield a zero target whose use is
// guarded by the orchestrator.
func CalculateTarget(durationMinutes int, rates Rates) Target {
	if durationMinutes <= 0 {
		return Target{}
	}

	hours := float64(durationMinutes) / 60.0

	carbsRate := rates.CarbsPerHour
	if carbsRate == 0 {
		carbsRate = DefaultCarbsPerHour
	}
	sodiumRate := rates.SodiumPerHour
	if sodiumRate == 0 {
		sodiumRate = DefaultSodiumPerHour
	}
	fluidRate := rates.FluidPerHour
	if fluidRate == 0 {
		fluidRate = DefaultFluidPerHour
	}

	return Target{
		Carbs:  int(math.Round(carbsRate * hours)),
		Sodium: int(math.Round(sodiumRate * hours)),
		Fluid:  int(math.Round(fluidRate * hours)),
		Hours:  hours,
	}
}
