package planning

import (
	"math"
	"sort"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"go.uber.org/zap"
)

// compose builds one candidate plan for a strategy with the four-phase
// greedy procedure: primary fill, real-food carb gap-fill, hydration fill,
// fine-tuning. Each phase takes the accumulator and returns a new one.
func (e *Engine) compose(t Target, items []catalog.Item, s Strategy, cls *catalog.Classifier) Plan {
	acc := accumulator{}
	acc = e.primaryFill(t, items, s, cls, acc)
	acc = e.realFoodFill(t, items, s, cls, acc)
	acc = e.hydrationFill(t, items, s, cls, acc)
	acc = e.ensureRequiredCategory(t, items, s, cls, acc)
	acc = e.fineTune(t, s, acc)
	return e.buildPlan(s, t, acc)
}

// primaryFill walks the catalog in strategy priority order and stacks the
// highest-yield carbohydrate sources until the carb floor is reachable,
// sodium is essentially covered, or the primary item cap is hit. Water is
// reserved for the hydration fill.
func (e *Engine) primaryFill(t Target, items []catalog.Item, s Strategy, cls *catalog.Classifier, acc accumulator) accumulator {
	ordered := orderForPrimary(items, s, cls)
	floorPct := e.tuning.BandFloor * 100
	primaryCount := 0

	for _, it := range ordered {
		if primaryCount >= e.tuning.PrimaryItemCap {
			e.logger.Debug("primary fill stopped: item cap",
				zap.String("strategy", s.ID))
			break
		}
		if acc.count() >= e.tuning.ComposerEntryCap {
			break
		}

		cov := coverageOf(t, acc.totals)
		if t.Sodium > 0 && cov.Sodium >= e.tuning.PrimarySodiumStop {
			e.logger.Debug("primary fill stopped: sodium covered",
				zap.String("strategy", s.ID),
				zap.Float64("sodium_coverage", cov.Sodium))
			break
		}
		if cov.Carbs >= floorPct {
			break
		}

		class := cls.Classify(it)
		if class == catalog.CategoryWater {
			continue
		}
		if it.Carbs <= 0 {
			continue
		}
		if acc.hasItem(it.Name) {
			continue
		}

		need := float64(t.Carbs)*e.tuning.BandFloor - acc.totals.Carbs
		if need <= 0 {
			break
		}

		desired := int(math.Ceil(need / it.Carbs))
		if desired < 1 {
			desired = 1
		}
		if desired > e.tuning.PrimaryQtyCap {
			desired = e.tuning.PrimaryQtyCap
		}

		eff := catalog.EffectiveFluid(it, class)
		qty := e.legalQuantity(t, acc.totals, it, desired, eff)
		if qty == 0 {
			e.logger.Debug("item rejected: would breach overshoot ceiling",
				zap.String("strategy", s.ID),
				zap.String("item", it.Name),
				zap.String("phase", "primary"))
			continue
		}

		acc = acc.withEntry(newEntry(it, qty, eff))
		primaryCount++
		e.logger.Debug("item accepted",
			zap.String("strategy", s.ID),
			zap.String("item", it.Name),
			zap.Int("quantity", qty),
			zap.String("phase", "primary"))
	}

	return acc
}

// realFoodFill closes a remaining carbohydrate gap with near-zero-sodium
// carb sources, ordered by the strategy's filler preference and then by
// carb-to-sodium ratio.
func (e *Engine) realFoodFill(t Target, items []catalog.Item, s Strategy, cls *catalog.Classifier, acc accumulator) accumulator {
	floorPct := e.tuning.BandFloor * 100
	if coverageOf(t, acc.totals).Carbs >= floorPct {
		return acc
	}

	candidates := make([]catalog.Item, 0)
	for _, it := range items {
		if cls.Classify(it) == catalog.CategoryWater {
			continue
		}
		if it.Carbs <= 0 || it.Sodium > e.tuning.FillerSodiumMax {
			continue
		}
		candidates = append(candidates, it)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		pi, pj := fillerRank(candidates[i].Name, s.FillerPreference), fillerRank(candidates[j].Name, s.FillerPreference)
		if pi != pj {
			return pi < pj
		}
		ri := candidates[i].Carbs / (candidates[i].Sodium + 1)
		rj := candidates[j].Carbs / (candidates[j].Sodium + 1)
		if ri != rj {
			return ri > rj
		}
		return candidates[i].Name < candidates[j].Name
	})

	for _, it := range candidates {
		if coverageOf(t, acc.totals).Carbs >= 100 {
			break
		}
		if acc.count() >= e.tuning.ComposerEntryCap {
			break
		}
		if acc.hasItem(it.Name) {
			continue
		}

		need := float64(t.Carbs) - acc.totals.Carbs
		if need <= 0 {
			break
		}

		desired := int(math.Ceil(need / it.Carbs))
		if desired < 1 {
			desired = 1
		}
		if desired > e.tuning.FillerQtyCap {
			desired = e.tuning.FillerQtyCap
		}

		eff := catalog.EffectiveFluid(it, cls.Classify(it))
		qty := e.legalQuantity(t, acc.totals, it, desired, eff)
		if qty == 0 {
			continue
		}

		acc = acc.withEntry(newEntry(it, qty, eff))
		e.logger.Debug("item accepted",
			zap.String("strategy", s.ID),
			zap.String("item", it.Name),
			zap.Int("quantity", qty),
			zap.String("phase", "real_food"))
	}

	return acc
}

// hydrationFill adds plain water sized to bring fluid coverage up to the
// acceptance floor.
func (e *Engine) hydrationFill(t Target, items []catalog.Item, s Strategy, cls *catalog.Classifier, acc accumulator) accumulator {
	cov := coverageOf(t, acc.totals)
	if cov.Fluid >= e.tuning.BandFloor*100 {
		return acc
	}
	if acc.count() >= e.tuning.ComposerEntryCap {
		return acc
	}

	var water *catalog.Item
	for i := range items {
		if cls.Classify(items[i]) == catalog.CategoryWater && items[i].Fluid > 0 {
			water = &items[i]
			break
		}
	}
	if water == nil {
		e.logger.Debug("hydration fill skipped: no water in catalog",
			zap.String("strategy", s.ID))
		return acc
	}

	need := float64(t.Fluid)*e.tuning.BandFloor - acc.totals.Fluid
	desired := int(math.Ceil(need / water.Fluid))
	if desired < 1 {
		desired = 1
	}
	if desired > e.tuning.WaterQtyCap {
		desired = e.tuning.WaterQtyCap
	}

	qty := e.legalQuantity(t, acc.totals, *water, desired, water.Fluid)
	if qty == 0 {
		return acc
	}

	acc = acc.withEntry(newEntry(*water, qty, water.Fluid))
	e.logger.Debug("item accepted",
		zap.String("strategy", s.ID),
		zap.String("item", water.Name),
		zap.Int("quantity", qty),
		zap.String("phase", "hydration"))
	return acc
}

// ensureRequiredCategory adds one serving of the strategy's required
// category when the plan lacks it and the ceilings allow. A catalog without
// the category leaves the plan untouched.
func (e *Engine) ensureRequiredCategory(t Target, items []catalog.Item, s Strategy, cls *catalog.Classifier, acc accumulator) accumulator {
	if s.RequireCategory == "" || acc.count() >= e.tuning.ComposerEntryCap {
		return acc
	}
	for _, en := range acc.entries {
		if en.Item.Category == s.RequireCategory {
			return acc
		}
	}

	var best *catalog.Item
	for i := range items {
		it := items[i]
		if it.Category != s.RequireCategory || acc.hasItem(it.Name) {
			continue
		}
		if best == nil || it.Carbs > best.Carbs {
			best = &items[i]
		}
	}
	if best == nil {
		return acc
	}

	eff := catalog.EffectiveFluid(*best, cls.Classify(*best))
	if !e.fits(t, acc.totals, *best, 1, eff) {
		e.logger.Debug("required category item rejected: would breach overshoot ceiling",
			zap.String("strategy", s.ID),
			zap.String("item", best.Name))
		return acc
	}

	acc = acc.withEntry(newEntry(*best, 1, eff))
	e.logger.Debug("item accepted",
		zap.String("strategy", s.ID),
		zap.String("item", best.Name),
		zap.Int("quantity", 1),
		zap.String("phase", "required_category"))
	return acc
}

// fineTune walks the plan in reverse insertion order, trimming one serving
// at a time from multi-serving entries while any nutrient sits above the
// band ceiling. A reduction is only legal if carb coverage stays within 10
// points of the floor.
func (e *Engine) fineTune(t Target, s Strategy, acc accumulator) accumulator {
	if acc.count() == 0 {
		return acc
	}
	floorPct := e.tuning.BandFloor * 100
	ceilingPct := e.tuning.BandCeiling * 100

	for {
		cov := coverageOf(t, acc.totals)
		if cov.Carbs <= ceilingPct && cov.Sodium <= ceilingPct && cov.Fluid <= ceilingPct {
			break
		}

		reduced := false
		for i := len(acc.entries) - 1; i >= 0; i-- {
			en := acc.entries[i]
			if en.Quantity < 2 {
				continue
			}
			perServingCarbs := en.Carbs / float64(en.Quantity)
			if pct(acc.totals.Carbs-perServingCarbs, t.Carbs) < floorPct-10 {
				continue
			}

			perServingFluid := en.Fluid / float64(en.Quantity)
			acc.entries[i] = newEntry(en.Item, en.Quantity-1, perServingFluid)
			acc = acc.recompute()
			reduced = true
			e.logger.Debug("quantity reduced",
				zap.String("strategy", s.ID),
				zap.String("item", en.Item.Name),
				zap.Int("quantity", en.Quantity-1),
				zap.String("phase", "fine_tune"))
			break
		}
		if !reduced {
			break
		}
	}

	return acc
}

func (e *Engine) buildPlan(s Strategy, t Target, acc accumulator) Plan {
	return Plan{
		StrategyID:   s.ID,
		StrategyName: s.Name,
		Description:  s.Description,
		Entries:      acc.entries,
		Totals:       acc.totals,
		Coverage:     coverageOf(t, acc.totals),
		Score:        e.scoreTotals(t, acc.totals),
	}
}

// orderForPrimary sorts items by strategy category priority, preferred-name
// matches first within a category, then descending carbs, with the name as a
// deterministic tie-break.
func orderForPrimary(items []catalog.Item, s Strategy, cls *catalog.Classifier) []catalog.Item {
	ordered := make([]catalog.Item, len(items))
	copy(ordered, items)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi := categoryRank(cls.Classify(ordered[i]), s.CategoryPriority)
		pj := categoryRank(cls.Classify(ordered[j]), s.CategoryPriority)
		if pi != pj {
			return pi < pj
		}
		fi := catalog.MatchesAnyPattern(ordered[i].Name, s.PreferNames)
		fj := catalog.MatchesAnyPattern(ordered[j].Name, s.PreferNames)
		if fi != fj {
			return fi
		}
		if ordered[i].Carbs != ordered[j].Carbs {
			return ordered[i].Carbs > ordered[j].Carbs
		}
		return ordered[i].Name < ordered[j].Name
	})

	return ordered
}

func categoryRank(c catalog.Category, priority []catalog.Category) int {
	for i, p := range priority {
		if p == c {
			return i
		}
	}
	return len(priority)
}

func fillerRank(name string, preference []string) int {
	for i, p := range preference {
		if catalog.MatchesAnyPattern(name, []string{p}) {
			return i
		}
	}
	return len(preference)
}
