package planning

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine runs the whole selection pipeline: global catalog filter once, then
// per strategy the multi-start searcher, the greedy composer and the
// refinement pass, keeping one best plan per strategy. Strategies share only
// read-only inputs, so their pipelines run in parallel.
type Engine struct {
	tuning     Tuning
	strategies []Strategy
	logger     *zap.Logger
}

// NewEngine creates an engine with the built-in strategies
func NewEngine(tuning Tuning, logger *zap.Logger) *Engine {
	return NewEngineWithStrategies(tuning, BuiltinStrategies(), logger)
}

// NewEngineWithStrategies creates an engine with a custom strategy set
func NewEngineWithStrategies(tuning Tuning, strategies []Strategy, logger *zap.Logger) *Engine {
	return &Engine{
		tuning:     tuning,
		strategies: strategies,
		logger:     logger.Named("plan-engine"),
	}
}

// Request is one engine invocation: a catalog snapshot, the race window and
// rates, and optionally the names of recently used items. RecentlyUsed is
// accepted for a future diversity rule and does not affect selection yet.
type Request struct {
	Catalog         []catalog.Item
	DurationMinutes int
	Rates           Rates
	RecentlyUsed    []string
}

// Generate runs the engine. Malformed business input never raises; the
// result degrades to an empty plan list with explanatory warnings.
func (e *Engine) Generate(req Request) Result {
	res := Result{
		ID:          uuid.New(),
		GeneratedAt: time.Now(),
	}

	if req.DurationMinutes <= 0 {
		res.Warnings = append(res.Warnings,
			"race timing must be set before a fueling plan can be generated")
		return res
	}

	target := CalculateTarget(req.DurationMinutes, req.Rates)
	res.Target = target

	usable := catalog.FilterGlobal(req.Catalog)
	if len(usable) == 0 {
		res.Warnings = append(res.Warnings,
			"no usable products in the catalog after removing recovery and protein items")
		return res
	}

	e.logger.Info("generating fueling plans",
		zap.Int("catalog_size", len(usable)),
		zap.Float64("hours", target.Hours),
		zap.Int("strategies", len(e.strategies)),
	)

	// One pipeline per strategy; each owns its classifier and accumulator,
	// so no coordination is needed beyond collecting the results.
	outcomes := make([]*Plan, len(e.strategies))
	var wg sync.WaitGroup
	for i, s := range e.strategies {
		wg.Add(1)
		go func(i int, s Strategy) {
			defer wg.Done()
			if plan, ok := e.runStrategy(target, usable, s); ok {
				outcomes[i] = &plan
			}
		}(i, s)
	}
	wg.Wait()

	plans := make([]Plan, 0, len(outcomes))
	for _, p := range outcomes {
		if p != nil {
			plans = append(plans, *p)
		}
	}
	sort.SliceStable(plans, func(i, j int) bool {
		return plans[i].Score > plans[j].Score
	})
	res.Plans = plans

	res.Warnings = append(res.Warnings, e.coverageWarnings(target, plans)...)
	res.Tips = e.tips(target, plans)
	return res
}

// runStrategy produces the best plan for one strategy, or ok=false when the
// strategy's filtered catalog is empty or nothing usable was assembled.
func (e *Engine) runStrategy(target Target, usable []catalog.Item, s Strategy) (Plan, bool) {
	cls := catalog.NewClassifier()

	items := e.filterForStrategy(usable, s, cls)
	if len(items) == 0 {
		e.logger.Info("strategy skipped: no legal items",
			zap.String("strategy", s.ID))
		return Plan{}, false
	}

	searched, found := e.search(target, items, s, cls)
	composed := e.compose(target, items, s, cls)

	kept := composed
	if found && searched.Score > composed.Score {
		kept = searched
	}

	if kept.Score < 100 {
		kept = e.refine(target, kept, items, s, cls)
	}

	if kept.IsEmpty() {
		return Plan{}, false
	}
	e.logger.Info("strategy plan selected",
		zap.String("strategy", s.ID),
		zap.Int("score", kept.Score),
		zap.Int("entries", len(kept.Entries)),
	)
	return kept, true
}

// coverageWarnings names the nutrients the top-ranked plan fails to clear
func (e *Engine) coverageWarnings(t Target, plans []Plan) []string {
	if len(plans) == 0 {
		return []string{"no plan could be assembled from the current catalog"}
	}

	floorPct := e.tuning.BandFloor * 100
	top := plans[0]
	var warnings []string

	type check struct {
		name     string
		target   int
		coverage float64
	}
	for _, c := range []check{
		{"carbohydrate", t.Carbs, top.Coverage.Carbs},
		{"sodium", t.Sodium, top.Coverage.Sodium},
		{"fluid", t.Fluid, top.Coverage.Fluid},
	} {
		if c.target > 0 && c.coverage < floorPct {
			warnings = append(warnings, fmt.Sprintf(
				"no plan reaches %d%% of the %s target, consider adding richer products to the catalog",
				int(floorPct), c.name))
		}
	}
	return warnings
}

// tips assembles the plain-language advisories: duration, carb and sodium
// rates, and cross-strategy duplicates.
func (e *Engine) tips(t Target, plans []Plan) []string {
	var tips []string

	if t.Hours > 3 {
		tips = append(tips,
			"races over 3 hours usually need a mid-race restock, so split this plan across feed zones")
	}
	if t.Hours > 0 {
		carbRate := float64(t.Carbs) / t.Hours
		if carbRate > 90 {
			tips = append(tips, fmt.Sprintf(
				"a carbohydrate rate of %.0f g/h needs gut training, practice this intake before race day", carbRate))
		}
		sodiumRate := float64(t.Sodium) / t.Hours
		if sodiumRate > 800 {
			tips = append(tips, fmt.Sprintf(
				"a sodium rate of %.0f mg/h suits heavy sweaters, confirm it against a sweat test", sodiumRate))
		}
	}

	tips = append(tips, duplicateTips(plans)...)
	return tips
}

// duplicateTips flags strategies that arrived at an identical product mix.
// Duplicates are an advisory, not an error: the plans are still valid.
func duplicateTips(plans []Plan) []string {
	groups := make(map[string][]string)
	order := make([]string, 0)
	for _, p := range plans {
		fp := p.Fingerprint()
		if _, seen := groups[fp]; !seen {
			order = append(order, fp)
		}
		groups[fp] = append(groups[fp], p.StrategyName)
	}

	var tips []string
	for _, fp := range order {
		names := groups[fp]
		if len(names) > 1 {
			tips = append(tips, fmt.Sprintf(
				"%s ended up with the same product mix, adjust targets or catalog for more variety",
				strings.Join(names, " and ")))
		}
	}
	return tips
}
