package planning

import (
	"strings"
	"testing"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultTuning(), zap.NewNop())
}

// stdCatalog mirrors a small shop shelf every strategy can plan against
func stdCatalog() []catalog.Item {
	return []catalog.Item{
		{Name: "Citrus Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Berry Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 40},
		{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 45, Sodium: 300},
		{Name: "Rice Cake", Category: catalog.CategoryRealFood, Carbs: 30, Sodium: 60},
		{Name: "Banana", Category: catalog.CategoryRealFood, Carbs: 27, Sodium: 1},
		{Name: "Salt Capsule", Category: catalog.CategoryElectrolyte, Sodium: 215},
		{Name: "Water", Category: catalog.CategoryWater, Fluid: 500},
	}
}

func assertWithinCeilings(t *testing.T, tuning Tuning, target Target, tot Totals) {
	t.Helper()
	if target.Carbs > 0 {
		assert.LessOrEqual(t, tot.Carbs, float64(target.Carbs)*tuning.BandCeiling*tuning.CarbsOvershoot)
	}
	if target.Sodium > 0 {
		assert.LessOrEqual(t, tot.Sodium, float64(target.Sodium)*tuning.BandCeiling*tuning.SodiumOvershoot)
	}
	if target.Fluid > 0 {
		assert.LessOrEqual(t, tot.Fluid, float64(target.Fluid)*tuning.BandCeiling*tuning.FluidOvershoot)
	}
}

func planByStrategy(t *testing.T, res Result, id string) (Plan, bool) {
	t.Helper()
	for _, p := range res.Plans {
		if p.StrategyID == id {
			return p, true
		}
	}
	return Plan{}, false
}

func TestGenerateZeroDurationWarns(t *testing.T) {
	e := newTestEngine()

	res := e.Generate(Request{Catalog: stdCatalog()})

	assert.Empty(t, res.Plans)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "race timing must be set before a fueling plan can be generated", res.Warnings[0])
	assert.Equal(t, Target{}, res.Target)
}

func TestGenerateUnusableCatalogWarns(t *testing.T) {
	e := newTestEngine()

	res := e.Generate(Request{
		Catalog: []catalog.Item{
			{Name: "Recovery Shake", Category: catalog.CategoryOther, Carbs: 50},
			{Name: "Whey Protein Bar", Category: catalog.CategoryBar, Carbs: 30},
		},
		DurationMinutes: 180,
	})

	assert.Empty(t, res.Plans)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "no usable products in the catalog after removing recovery and protein items", res.Warnings[0])
}

func TestGeneratePlansSortedByScore(t *testing.T) {
	e := newTestEngine()

	res := e.Generate(Request{Catalog: stdCatalog(), DurationMinutes: 180})
	require.NotEmpty(t, res.Plans)

	for i := 1; i < len(res.Plans); i++ {
		assert.GreaterOrEqual(t, res.Plans[i-1].Score, res.Plans[i].Score)
	}

	seen := make(map[string]bool)
	for _, p := range res.Plans {
		assert.False(t, seen[p.StrategyID], "strategy %s appears twice", p.StrategyID)
		seen[p.StrategyID] = true
	}
}

func TestGenerateHonorsOvershootCeilings(t *testing.T) {
	e := newTestEngine()

	for _, minutes := range []int{60, 120, 180, 360} {
		res := e.Generate(Request{Catalog: stdCatalog(), DurationMinutes: minutes})
		for _, p := range res.Plans {
			assertWithinCeilings(t, e.tuning, res.Target, p.Totals)
			assert.Positive(t, p.Score)
			assert.NotEmpty(t, p.Entries)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	e := newTestEngine()
	req := Request{Catalog: stdCatalog(), DurationMinutes: 180}

	a := e.Generate(req)
	b := e.Generate(req)

	require.Equal(t, len(a.Plans), len(b.Plans))
	for i := range a.Plans {
		assert.Equal(t, a.Plans[i].StrategyID, b.Plans[i].StrategyID)
		assert.Equal(t, a.Plans[i].Fingerprint(), b.Plans[i].Fingerprint())
		assert.Equal(t, a.Plans[i].Score, b.Plans[i].Score)
	}
	assert.Equal(t, a.Warnings, b.Warnings)
	assert.Equal(t, a.Tips, b.Tips)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGenerateLiquidFuelIsAllLiquid(t *testing.T) {
	e := newTestEngine()
	cls := catalog.NewClassifier()

	res := e.Generate(Request{Catalog: stdCatalog(), DurationMinutes: 180})
	plan, ok := planByStrategy(t, res, "liquid-fuel")
	require.True(t, ok)

	for _, en := range plan.Entries {
		assert.True(t, catalog.IsLiquid(cls.Classify(en.Item)),
			"%s is not a liquid", en.Item.Name)
	}
}

func TestGenerateSolidFuelExcludesGels(t *testing.T) {
	e := newTestEngine()
	cls := catalog.NewClassifier()

	res := e.Generate(Request{Catalog: stdCatalog(), DurationMinutes: 180})
	plan, ok := planByStrategy(t, res, "solid-fuel")
	require.True(t, ok)

	hasRealFood := false
	for _, en := range plan.Entries {
		assert.NotEqual(t, catalog.CategoryGel, cls.Classify(en.Item))
		assert.NotContains(t, strings.ToLower(en.Item.Name), "gel")
		if en.Item.Category == catalog.CategoryRealFood {
			hasRealFood = true
		}
	}
	assert.True(t, hasRealFood, "solid fuel plan carries no real food")
}

func TestGenerateLowSodiumCapsServings(t *testing.T) {
	e := newTestEngine()

	res := e.Generate(Request{Catalog: stdCatalog(), DurationMinutes: 180})
	plan, ok := planByStrategy(t, res, "low-sodium")
	require.True(t, ok)

	for _, en := range plan.Entries {
		assert.LessOrEqual(t, en.Item.Sodium, 100.0)
		name := strings.ToLower(en.Item.Name)
		assert.NotContains(t, name, "salt")
		assert.NotContains(t, name, "electrolyte")
	}
}

func TestGenerateSparseCatalogWarnsOnCoverage(t *testing.T) {
	e := newTestEngine()

	res := e.Generate(Request{
		Catalog: []catalog.Item{
			{Name: "Citrus Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
			{Name: "Water", Category: catalog.CategoryWater, Fluid: 500},
		},
		DurationMinutes: 360,
	})

	require.NotEmpty(t, res.Plans)
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "carbohydrate target") {
			found = true
		}
	}
	assert.True(t, found, "expected a carbohydrate coverage warning, got %v", res.Warnings)
}

func TestTipsForLongHotRaces(t *testing.T) {
	e := newTestEngine()

	tips := e.tips(Target{Carbs: 400, Sodium: 3400, Fluid: 3000, Hours: 4}, nil)

	require.Len(t, tips, 3)
	assert.Contains(t, tips[0], "mid-race restock")
	assert.Contains(t, tips[1], "gut training")
	assert.Contains(t, tips[2], "sweat test")
}

func TestTipsShortEasyRaceHasNone(t *testing.T) {
	e := newTestEngine()

	tips := e.tips(Target{Carbs: 120, Sodium: 1000, Fluid: 1000, Hours: 2}, nil)
	assert.Empty(t, tips)
}

func TestDuplicateTips(t *testing.T) {
	entries := []Entry{{Item: catalog.Item{Name: "Citrus Gel"}, Quantity: 2}}
	plans := []Plan{
		{StrategyName: "Balanced", Entries: entries},
		{StrategyName: "Low Sodium", Entries: entries},
		{StrategyName: "Solid Fuel", Entries: []Entry{{Item: catalog.Item{Name: "Banana"}, Quantity: 3}}},
	}

	tips := duplicateTips(plans)
	require.Len(t, tips, 1)
	assert.Contains(t, tips[0], "Balanced and Low Sodium")
	assert.Contains(t, tips[0], "same product mix")
}

func TestGenerateLogsStrategySelection(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := NewEngine(DefaultTuning(), zap.New(core))

	res := e.Generate(Request{Catalog: stdCatalog(), DurationMinutes: 180})
	require.NotEmpty(t, res.Plans)

	selected := logs.FilterMessage("strategy plan selected").All()
	assert.Len(t, selected, len(res.Plans))
}

func TestGenerateWithCustomStrategySet(t *testing.T) {
	only := []Strategy{strategyByID(t, "balanced")}
	e := NewEngineWithStrategies(DefaultTuning(), only, zap.NewNop())

	res := e.Generate(Request{Catalog: stdCatalog(), DurationMinutes: 180})
	require.Len(t, res.Plans, 1)
	assert.Equal(t, "balanced", res.Plans[0].StrategyID)
}

func TestGenerateBalancedOneHourOmitsWater(t *testing.T) {
	e := newTestEngine()

	// The dry drink mix reconstitutes to 500 ml, which alone clears the
	// hydration floor, so plain water must stay out of the plan.
	res := e.Generate(Request{
		Catalog: []catalog.Item{
			{Name: "Citrus Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
			{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 20, Sodium: 200},
			{Name: "Water", Category: catalog.CategoryWater, Fluid: 500},
		},
		DurationMinutes: 60,
		Rates:           Rates{CarbsPerHour: 60, SodiumPerHour: 300, FluidPerHour: 500},
	})

	require.Equal(t, Target{Carbs: 60, Sodium: 300, Fluid: 500, Hours: 1}, res.Target)

	plan, ok := planByStrategy(t, res, "balanced")
	require.True(t, ok)
	assert.Equal(t, 100, plan.Score)

	quantities := make(map[string]int)
	for _, entry := range plan.Entries {
		quantities[entry.Item.Name] = entry.Quantity
	}
	assert.Equal(t, map[string]int{"Citrus Gel": 2, "Endurance Mix": 1}, quantities)
	assert.NotContains(t, quantities, "Water")

	assert.InDelta(t, 70.0, plan.Totals.Carbs, 0.001)
	assert.InDelta(t, 300.0, plan.Totals.Sodium, 0.001)
	assert.InDelta(t, 500.0, plan.Totals.Fluid, 0.001)
	assertWithinCeilings(t, e.tuning, res.Target, plan.Totals)
}
