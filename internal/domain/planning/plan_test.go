package planning

import (
	"testing"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
)

func TestFingerprintIsOrderInsensitive(t *testing.T) {
	a := Plan{Entries: []Entry{
		{Item: catalog.Item{Name: "Citrus Gel"}, Quantity: 2},
		{Item: catalog.Item{Name: "Banana"}, Quantity: 1},
	}}
	b := Plan{Entries: []Entry{
		{Item: catalog.Item{Name: "Banana"}, Quantity: 1},
		{Item: catalog.Item{Name: "Citrus Gel"}, Quantity: 2},
	}}

	assert.Equal(t, "Banana:1|Citrus Gel:2", a.Fingerprint())
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestFingerprintDistinguishesQuantities(t *testing.T) {
	a := Plan{Entries: []Entry{{Item: catalog.Item{Name: "Citrus Gel"}, Quantity: 2}}}
	b := Plan{Entries: []Entry{{Item: catalog.Item{Name: "Citrus Gel"}, Quantity: 3}}}

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Plan{}.IsEmpty())
	assert.False(t, Plan{Entries: []Entry{{Quantity: 1}}}.IsEmpty())
}

func TestCoverageOfZeroTargetIsFull(t *testing.T) {
	cov := coverageOf(Target{Carbs: 100}, Totals{Carbs: 50})

	assert.Equal(t, 50.0, cov.Carbs)
	assert.Equal(t, 100.0, cov.Sodium)
	assert.Equal(t, 100.0, cov.Fluid)
}

func TestNewEntryComputesContributions(t *testing.T) {
	it := catalog.Item{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 45, Sodium: 300}
	en := newEntry(it, 2, 500)

	assert.Equal(t, 2, en.Quantity)
	assert.Equal(t, 90.0, en.Carbs)
	assert.Equal(t, 600.0, en.Sodium)
	assert.Equal(t, 1000.0, en.Fluid)
}

func TestAccumulatorWithEntryDoesNotShareBacking(t *testing.T) {
	base := accumulator{}
	a := base.withEntry(newEntry(catalog.Item{Name: "A", Carbs: 10}, 1, 0))
	b := a.withEntry(newEntry(catalog.Item{Name: "B", Carbs: 20}, 1, 0))
	c := a.withEntry(newEntry(catalog.Item{Name: "C", Carbs: 30}, 1, 0))

	assert.Equal(t, "B", b.entries[1].Item.Name)
	assert.Equal(t, "C", c.entries[1].Item.Name)
	assert.Equal(t, 30.0, b.totals.Carbs)
	assert.Equal(t, 40.0, c.totals.Carbs)
}
