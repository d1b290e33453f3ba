package planning

import (
	"testing"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotate(t *testing.T) {
	items := []catalog.Item{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	rotated := rotate(items, 1)
	assert.Equal(t, "B", rotated[0].Name)
	assert.Equal(t, "C", rotated[1].Name)
	assert.Equal(t, "A", rotated[2].Name)

	assert.Equal(t, items, rotate(items, 0))
}

func TestSodiumCandidatesRanking(t *testing.T) {
	items := []catalog.Item{
		{Name: "Citrus Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
		{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 45, Sodium: 300},
		{Name: "Salt Capsule", Category: catalog.CategoryElectrolyte, Sodium: 200},
		{Name: "Banana", Category: catalog.CategoryRealFood, Carbs: 27},
	}

	ranked := sodiumCandidates(items, accumulator{})
	names := make([]string, 0, len(ranked))
	for _, it := range ranked {
		names = append(names, it.Name)
	}

	// The zero-carb capsule doubles its ratio and wins; the zero-sodium
	// banana is not a candidate at all.
	assert.Equal(t, []string{"Salt Capsule", "Endurance Mix", "Citrus Gel"}, names)
}

func TestSodiumCandidatesSkipItemsAlreadyInPlan(t *testing.T) {
	capsule := catalog.Item{Name: "Salt Capsule", Category: catalog.CategoryElectrolyte, Sodium: 200}
	mix := catalog.Item{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 45, Sodium: 300}

	acc := accumulator{}.withEntry(newEntry(capsule, 1, 0))
	ranked := sodiumCandidates([]catalog.Item{capsule, mix}, acc)

	require.Len(t, ranked, 1)
	assert.Equal(t, "Endurance Mix", ranked[0].Name)
}

func TestFluidCandidatesPreferPlainWater(t *testing.T) {
	cls := catalog.NewClassifier()
	items := []catalog.Item{
		{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 45, Sodium: 300},
		{Name: "Water", Category: catalog.CategoryWater, Fluid: 500},
		{Name: "Citrus Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50},
	}

	ranked := fluidCandidates(items, accumulator{}, cls)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "Water", ranked[0].Name)

	// The gel yields no fluid and is excluded
	for _, it := range ranked {
		assert.NotEqual(t, "Citrus Gel", it.Name)
	}
}

func TestSearchFindsPlanWithinCeilings(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	balanced := strategyByID(t, "balanced")

	plan, found := e.search(target, stdCatalog(), balanced, catalog.NewClassifier())
	require.True(t, found)
	assert.NotEmpty(t, plan.Entries)
	assertWithinCeilings(t, e.tuning, target, plan.Totals)
	assert.LessOrEqual(t, len(plan.Entries), e.tuning.ComposerEntryCap)
}

func TestSearchCoversSodiumWithElectrolytes(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(120, Rates{})
	balanced := strategyByID(t, "balanced")

	items := []catalog.Item{
		{Name: "Alpha Gel", Category: catalog.CategoryGel, Carbs: 30},
		{Name: "Bravo Gel", Category: catalog.CategoryGel, Carbs: 30},
		{Name: "Salt Capsule", Category: catalog.CategoryElectrolyte, Sodium: 215},
		{Name: "Water", Category: catalog.CategoryWater, Fluid: 500},
	}

	plan, found := e.search(target, items, balanced, catalog.NewClassifier())
	require.True(t, found)

	var capsuleQty int
	for _, en := range plan.Entries {
		if en.Item.Name == "Salt Capsule" {
			capsuleQty = en.Quantity
		}
	}
	assert.Equal(t, 1, capsuleQty)
}

func TestSearchEmptyCatalog(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})

	_, found := e.search(target, nil, strategyByID(t, "balanced"), catalog.NewClassifier())
	assert.False(t, found)
}

func TestSearchIsDeterministic(t *testing.T) {
	e := newTestEngine()
	target := CalculateTarget(180, Rates{})
	balanced := strategyByID(t, "balanced")

	a, foundA := e.search(target, stdCatalog(), balanced, catalog.NewClassifier())
	b, foundB := e.search(target, stdCatalog(), balanced, catalog.NewClassifier())

	require.True(t, foundA)
	require.True(t, foundB)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Score, b.Score)
}
