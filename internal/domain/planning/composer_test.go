package planning

import (
	"testing"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeBalancedThreeHourRace(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	balanced := strategyByID(t, "balanced")

	plan := e.compose(target, stdCatalog(), balanced, catalog.NewClassifier())

	// Gels first (name tie-break puts Berry ahead of Citrus), then the
	// drink mix, then water to close the fluid gap.
	require.Len(t, plan.Entries, 4)
	assert.Equal(t, "Berry Gel", plan.Entries[0].Item.Name)
	assert.Equal(t, 2, plan.Entries[0].Quantity)
	assert.Equal(t, "Citrus Gel", plan.Entries[1].Item.Name)
	assert.Equal(t, 2, plan.Entries[1].Quantity)
	assert.Equal(t, "Endurance Mix", plan.Entries[2].Item.Name)
	assert.Equal(t, 2, plan.Entries[2].Quantity)
	assert.Equal(t, "Water", plan.Entries[3].Item.Name)
	assert.Equal(t, 1, plan.Entries[3].Quantity)

	assert.GreaterOrEqual(t, plan.Coverage.Carbs, 90.0)
	assert.LessOrEqual(t, plan.Coverage.Carbs, 126.0)
	assert.InDelta(t, 100.0, plan.Coverage.Fluid, 0.01)
}

func TestComposeRealFoodFillClosesCarbGap(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	balanced := strategyByID(t, "balanced")

	// Three gels max out the primary item cap at 150 g; the date closes
	// the remaining gap in the filler phase.
	items := []catalog.Item{
		{Name: "Alpha Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Bravo Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Charlie Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Medjool Date", Category: catalog.CategoryRealFood, Carbs: 20, Sodium: 0},
	}

	plan := e.compose(target, items, balanced, catalog.NewClassifier())

	var dateQty int
	for _, en := range plan.Entries {
		if en.Item.Name == "Medjool Date" {
			dateQty = en.Quantity
		}
	}
	assert.Equal(t, 2, dateQty)
	assert.GreaterOrEqual(t, plan.Coverage.Carbs, 100.0)
}

func TestComposeSaltyFillerIsExcluded(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	balanced := strategyByID(t, "balanced")

	// Sodium above the filler ceiling keeps the potatoes out of the
	// gap-fill even though the carb floor is unreached.
	items := []catalog.Item{
		{Name: "Alpha Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Bravo Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Charlie Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Salted Potatoes", Category: catalog.CategoryRealFood, Carbs: 26, Sodium: 400},
	}

	plan := e.compose(target, items, balanced, catalog.NewClassifier())

	for _, en := range plan.Entries {
		assert.NotEqual(t, "Salted Potatoes", en.Item.Name)
	}
}

func TestComposeHydrationCapsWaterQuantity(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(360, Rates{})
	balanced := strategyByID(t, "balanced")

	items := []catalog.Item{
		{Name: "Alpha Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Water", Category: catalog.CategoryWater, Fluid: 500},
	}

	plan := e.compose(target, items, balanced, catalog.NewClassifier())

	var waterQty int
	for _, en := range plan.Entries {
		if en.Item.Name == "Water" {
			waterQty = en.Quantity
		}
	}
	// A six-hour fluid target wants six bottles; the cap holds at four
	assert.Equal(t, 4, waterQty)
}

func TestComposeWithoutWaterSkipsHydration(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	balanced := strategyByID(t, "balanced")

	items := []catalog.Item{
		{Name: "Alpha Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
	}

	plan := e.compose(target, items, balanced, catalog.NewClassifier())
	for _, en := range plan.Entries {
		assert.NotEqual(t, catalog.CategoryWater, en.Item.Category)
	}
}

func TestEnsureRequiredCategoryAddsOneServing(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	solid := strategyByID(t, "solid-fuel")
	cls := catalog.NewClassifier()

	items := []catalog.Item{
		{Name: "Oat Bar", Category: catalog.CategoryBar, Carbs: 40, Sodium: 100},
		{Name: "Banana", Category: catalog.CategoryRealFood, Carbs: 27, Sodium: 1},
		{Name: "Rice Cake", Category: catalog.CategoryRealFood, Carbs: 30, Sodium: 60},
	}

	acc := accumulator{}.withEntry(newEntry(items[0], 2, 0))
	acc = e.ensureRequiredCategory(target, items, solid, cls, acc)

	// Highest-carb real food wins
	require.Len(t, acc.entries, 2)
	assert.Equal(t, "Rice Cake", acc.entries[1].Item.Name)
	assert.Equal(t, 1, acc.entries[1].Quantity)
}

func TestEnsureRequiredCategoryNoopWhenPresent(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	solid := strategyByID(t, "solid-fuel")
	cls := catalog.NewClassifier()

	banana := catalog.Item{Name: "Banana", Category: catalog.CategoryRealFood, Carbs: 27, Sodium: 1}
	acc := accumulator{}.withEntry(newEntry(banana, 1, 0))

	out := e.ensureRequiredCategory(target, []catalog.Item{banana}, solid, cls, acc)
	assert.Len(t, out.entries, 1)
}

func TestFineTuneTrimsOvershoot(t *testing.T) {
	e := newTestEngine()
	target := Target{Carbs: 50, Hours: 1}
	gel := catalog.Item{Name: "Alpha Gel", Category: catalog.CategoryGel, Carbs: 25}

	acc := accumulator{}.withEntry(newEntry(gel, 3, 0))
	out := e.fineTune(target, strategyByID(t, "balanced"), acc)

	require.Len(t, out.entries, 1)
	assert.Equal(t, 2, out.entries[0].Quantity)
	assert.Equal(t, 50.0, out.totals.Carbs)
}

func TestFineTuneRespectsCarbFloor(t *testing.T) {
	e := newTestEngine()
	target := Target{Carbs: 40, Hours: 1}
	bar := catalog.Item{Name: "Oat Bar", Category: catalog.CategoryBar, Carbs: 30}

	// 60 g against a 40 g target overshoots, but dropping to one serving
	// would fall below floor minus the allowed slack, so nothing moves.
	acc := accumulator{}.withEntry(newEntry(bar, 2, 0))
	out := e.fineTune(target, strategyByID(t, "balanced"), acc)

	require.Len(t, out.entries, 1)
	assert.Equal(t, 2, out.entries[0].Quantity)
}

func TestOrderForPrimaryRanking(t *testing.T) {
	cls := catalog.NewClassifier()
	s := Strategy{
		CategoryPriority: []catalog.Category{catalog.CategoryGel, catalog.CategoryDrinkMix},
		PreferNames:      []string{"berry"},
	}

	items := []catalog.Item{
		{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 45},
		{Name: "Citrus Gel", Category: catalog.CategoryGel, Carbs: 30},
		{Name: "Berry Gel", Category: catalog.CategoryGel, Carbs: 25},
		{Name: "Banana", Category: catalog.CategoryRealFood, Carbs: 27},
	}

	ordered := orderForPrimary(items, s, cls)
	names := make([]string, 0, len(ordered))
	for _, it := range ordered {
		names = append(names, it.Name)
	}

	// Preferred name beats raw carbs inside the gel tier; unprioritized
	// categories sink to the back.
	assert.Equal(t, []string{"Berry Gel", "Citrus Gel", "Endurance Mix", "Banana"}, names)
}
