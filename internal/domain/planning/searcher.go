package planning

import (
	"math"
	"sort"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"go.uber.org/zap"
)

// search is the multi-start alternative to the composer. Greedy insertion is
// order-sensitive, so the same three-phase build is retried from several
// rotations of the strategy catalog and only the best-scoring plan survives.
func (e *Engine) search(t Target, items []catalog.Item, s Strategy, cls *catalog.Classifier) (Plan, bool) {
	if len(items) == 0 {
		return Plan{}, false
	}

	rotations := e.tuning.SearchRotations
	if rotations > len(items) {
		rotations = len(items)
	}

	var best Plan
	found := false
	for offset := 0; offset < rotations; offset++ {
		acc := e.searchBuild(t, rotate(items, offset), cls)
		if acc.count() == 0 {
			continue
		}
		plan := e.buildPlan(s, t, acc)
		e.logger.Debug("search rotation scored",
			zap.String("strategy", s.ID),
			zap.Int("offset", offset),
			zap.Int("score", plan.Score))
		if !found || plan.Score > best.Score {
			best = plan
			found = true
		}
	}

	return best, found
}

// searchBuild runs one three-phase build: carbohydrate base in rotated
// catalog order, sodium gap-fill preferring the highest sodium-to-carb
// ratio with a zero-carb bonus, then hydration gap-fill preferring the
// highest net fluid per unit of nutrient cost.
func (e *Engine) searchBuild(t Target, items []catalog.Item, cls *catalog.Classifier) accumulator {
	acc := accumulator{}
	floorPct := e.tuning.BandFloor * 100

	// Carbohydrate base
	added := 0
	for _, it := range items {
		if added >= e.tuning.PrimaryItemCap || acc.count() >= e.tuning.ComposerEntryCap {
			break
		}
		if coverageOf(t, acc.totals).Carbs >= floorPct {
			break
		}
		if cls.Classify(it) == catalog.CategoryWater || it.Carbs <= 0 || acc.hasItem(it.Name) {
			continue
		}

		need := float64(t.Carbs)*e.tuning.BandFloor - acc.totals.Carbs
		desired := int(math.Ceil(need / it.Carbs))
		if desired < 1 {
			desired = 1
		}
		if desired > e.tuning.PrimaryQtyCap {
			desired = e.tuning.PrimaryQtyCap
		}

		eff := catalog.EffectiveFluid(it, cls.Classify(it))
		qty := e.legalQuantity(t, acc.totals, it, desired, eff)
		if qty == 0 {
			continue
		}
		acc = acc.withEntry(newEntry(it, qty, eff))
		added++
	}

	// Sodium gap-fill
	for acc.count() < e.tuning.ComposerEntryCap {
		if t.Sodium <= 0 || coverageOf(t, acc.totals).Sodium >= floorPct {
			break
		}
		candidates := sodiumCandidates(items, acc)
		if len(candidates) == 0 {
			break
		}
		inserted := false
		for _, it := range candidates {
			eff := catalog.EffectiveFluid(it, cls.Classify(it))
			if e.fits(t, acc.totals, it, 1, eff) {
				acc = acc.withEntry(newEntry(it, 1, eff))
				inserted = true
				break
			}
		}
		if !inserted {
			break
		}
	}

	// Hydration gap-fill
	for acc.count() < e.tuning.ComposerEntryCap {
		if t.Fluid <= 0 || coverageOf(t, acc.totals).Fluid >= floorPct {
			break
		}
		candidates := fluidCandidates(items, acc, cls)
		if len(candidates) == 0 {
			break
		}
		inserted := false
		for _, it := range candidates {
			eff := catalog.EffectiveFluid(it, cls.Classify(it))
			if e.fits(t, acc.totals, it, 1, eff) {
				acc = acc.withEntry(newEntry(it, 1, eff))
				inserted = true
				break
			}
		}
		if !inserted {
			break
		}
	}

	return acc
}

// sodiumCandidates ranks unused sodium sources by sodium-to-carb ratio,
// doubling the score of zero-carb items since they close the sodium gap
// without spending carb headroom.
func sodiumCandidates(items []catalog.Item, acc accumulator) []catalog.Item {
	out := make([]catalog.Item, 0)
	for _, it := range items {
		if it.Sodium <= 0 || acc.hasItem(it.Name) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := sodiumScore(out[i]), sodiumScore(out[j])
		if si != sj {
			return si > sj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sodiumScore(it catalog.Item) float64 {
	score := it.Sodium / (it.Carbs + 1)
	if it.Carbs == 0 {
		score *= 2
	}
	return score
}

// fluidCandidates ranks unused fluid sources by effective fluid per unit of
// nutrient cost, so plain water beats carb-heavy mixes when only hydration
// is short.
func fluidCandidates(items []catalog.Item, acc accumulator, cls *catalog.Classifier) []catalog.Item {
	out := make([]catalog.Item, 0)
	for _, it := range items {
		if acc.hasItem(it.Name) {
			continue
		}
		if catalog.EffectiveFluid(it, cls.Classify(it)) <= 0 {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		fi := fluidScore(out[i], cls)
		fj := fluidScore(out[j], cls)
		if fi != fj {
			return fi > fj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func fluidScore(it catalog.Item, cls *catalog.Classifier) float64 {
	eff := catalog.EffectiveFluid(it, cls.Classify(it))
	return eff / (1 + it.Carbs + it.Sodium/10)
}

func rotate(items []catalog.Item, offset int) []catalog.Item {
	if offset == 0 {
		return items
	}
	rotated := make([]catalog.Item, 0, len(items))
	rotated = append(rotated, items[offset:]...)
	rotated = append(rotated, items[:offset]...)
	return rotated
}
