package planning

import (
	"sort"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"go.uber.org/zap"
)

type nutrient int

const (
	nutrientCarbs nutrient = iota
	nutrientSodium
	nutrientFluid
)

func (n nutrient) String() string {
	switch n {
	case nutrientCarbs:
		return "carbohydrate"
	case nutrientSodium:
		return "sodium"
	default:
		return "fluid"
	}
}

// refine patches a candidate plan by adding one serving of a well-chosen
// item whenever a nutrient sits below the acceptance floor: largest
// shortfall first, items not yet in the plan preferred, relaxed quantity
// and entry caps, bounded iterations. The original plan is replaced only
// when the refined plan scores strictly higher.
func (e *Engine) refine(t Target, plan Plan, items []catalog.Item, s Strategy, cls *catalog.Classifier) Plan {
	entries := make([]Entry, len(plan.Entries))
	copy(entries, plan.Entries)
	acc := accumulator{entries: entries}.recompute()

	for iter := 0; iter < e.tuning.RefineMaxIterations; iter++ {
		target, ok := e.largestShortfall(t, acc.totals)
		if !ok {
			break
		}
		if !e.addBestFor(target, t, items, &acc, s, cls) {
			e.logger.Debug("refinement stopped: no legal addition",
				zap.String("strategy", s.ID),
				zap.String("nutrient", target.String()))
			break
		}
	}

	refined := e.buildPlan(s, t, acc)
	if refined.Score > plan.Score {
		e.logger.Debug("refinement improved plan",
			zap.String("strategy", s.ID),
			zap.Int("score_before", plan.Score),
			zap.Int("score_after", refined.Score))
		return refined
	}
	return plan
}

// largestShortfall returns the nutrient furthest below the acceptance floor
func (e *Engine) largestShortfall(t Target, tot Totals) (nutrient, bool) {
	floorPct := e.tuning.BandFloor * 100
	cov := coverageOf(t, tot)

	best := nutrientCarbs
	bestGap := 0.0
	found := false
	for _, n := range []nutrient{nutrientCarbs, nutrientSodium, nutrientFluid} {
		var c float64
		switch n {
		case nutrientCarbs:
			c = cov.Carbs
		case nutrientSodium:
			c = cov.Sodium
		default:
			c = cov.Fluid
		}
		gap := floorPct - c
		if gap > 0 && gap > bestGap {
			best = n
			bestGap = gap
			found = true
		}
	}
	return best, found
}

// addBestFor adds one serving of the item best suited to the nutrient,
// honoring the relaxed refinement caps and the overshoot ceilings. Returns
// false when no legal addition exists.
func (e *Engine) addBestFor(n nutrient, t Target, items []catalog.Item, acc *accumulator, s Strategy, cls *catalog.Classifier) bool {
	ranked := rankForNutrient(n, items, cls)

	// Items not yet in the plan first, then quantity bumps on existing ones
	for _, inPlan := range []bool{false, true} {
		for _, it := range ranked {
			if acc.hasItem(it.Name) != inPlan {
				continue
			}
			if inPlan {
				if acc.quantityOf(it.Name) >= e.tuning.RefineQtyCap {
					continue
				}
			} else if acc.count() >= e.tuning.RefineEntryCap {
				continue
			}

			eff := catalog.EffectiveFluid(it, cls.Classify(it))
			if !e.fits(t, acc.totals, it, 1, eff) {
				continue
			}

			if inPlan {
				for i := range acc.entries {
					if acc.entries[i].Item.Name == it.Name {
						acc.entries[i] = newEntry(it, acc.entries[i].Quantity+1, eff)
						break
					}
				}
				*acc = acc.recompute()
			} else {
				*acc = acc.withEntry(newEntry(it, 1, eff))
			}
			e.logger.Debug("item accepted",
				zap.String("strategy", s.ID),
				zap.String("item", it.Name),
				zap.String("nutrient", n.String()),
				zap.String("phase", "refine"))
			return true
		}
	}
	return false
}

// rankForNutrient orders the catalog by suitability for one nutrient:
// highest raw carbs, highest sodium-to-carb ratio with a zero-carb bonus,
// or highest effective fluid.
func rankForNutrient(n nutrient, items []catalog.Item, cls *catalog.Classifier) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		switch n {
		case nutrientCarbs:
			if it.Carbs <= 0 {
				continue
			}
		case nutrientSodium:
			if it.Sodium <= 0 {
				continue
			}
		default:
			if catalog.EffectiveFluid(it, cls.Classify(it)) <= 0 {
				continue
			}
		}
		out = append(out, it)
	}

	sort.SliceStable(out, func(i, j int) bool {
		var si, sj float64
		switch n {
		case nutrientCarbs:
			si, sj = out[i].Carbs, out[j].Carbs
		case nutrientSodium:
			si, sj = sodiumScore(out[i]), sodiumScore(out[j])
		default:
			si = catalog.EffectiveFluid(out[i], cls.Classify(out[i]))
			sj = catalog.EffectiveFluid(out[j], cls.Classify(out[j]))
		}
		if si != sj {
			return si > sj
		}
		return out[i].Name < out[j].Name
	})
	return out
}
