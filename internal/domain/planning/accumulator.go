package planning

import "github.com/enduraplan/v2/internal/domain/catalog"

// accumulator is the running state threaded through the composer phases:
// entries selected so far and their summed totals. Phases are pure functions
// of (catalog, target, accumulator) -> accumulator; nothing is shared.
type accumulator struct {
	entries []Entry
	totals  Totals
}

func (a accumulator) withEntry(e Entry) accumulator {
	entries := make([]Entry, len(a.entries), len(a.entries)+1)
	copy(entries, a.entries)
	entries = append(entries, e)
	return accumulator{
		entries: entries,
		totals: Totals{
			Carbs:  a.totals.Carbs + e.Carbs,
			Sodium: a.totals.Sodium + e.Sodium,
			Fluid:  a.totals.Fluid + e.Fluid,
		},
	}
}

func (a accumulator) count() int {
	return len(a.entries)
}

func (a accumulator) hasItem(name string) bool {
	for _, e := range a.entries {
		if e.Item.Name == name {
			return true
		}
	}
	return false
}

func (a accumulator) quantityOf(name string) int {
	for _, e := range a.entries {
		if e.Item.Name == name {
			return e.Quantity
		}
	}
	return 0
}

// recompute rebuilds the totals from the entries. Used after the fine-tuning
// phase adjusts quantities.
func (a accumulator) recompute() accumulator {
	var tot Totals
	for _, e := range a.entries {
		tot.Carbs += e.Carbs
		tot.Sodium += e.Sodium
		tot.Fluid += e.Fluid
	}
	a.totals = tot
	return a
}

// fits reports whether adding qty servings of the item keeps every nutrient
// total at or under its hard overshoot ceiling. This is the invariant the
// engine enforces at every insertion.
func (e *Engine) fits(t Target, tot Totals, it catalog.Item, qty int, effectiveFluid float64) bool {
	q := float64(qty)
	if tot.Carbs+it.Carbs*q > e.tuning.ceiling(t.Carbs, e.tuning.CarbsOvershoot) {
		return false
	}
	if tot.Sodium+it.Sodium*q > e.tuning.ceiling(t.Sodium, e.tuning.SodiumOvershoot) {
		return false
	}
	if tot.Fluid+effectiveFluid*q > e.tuning.ceiling(t.Fluid, e.tuning.FluidOvershoot) {
		return false
	}
	return true
}

// legalQuantity reduces the desired quantity until the addition fits the
// ceilings, returning 0 when no quantity is legal.
func (e *Engine) legalQuantity(t Target, tot Totals, it catalog.Item, desired int, effectiveFluid float64) int {
	for qty := desired; qty >= 1; qty-- {
		if e.fits(t, tot, it, qty, effectiveFluid) {
			return qty
		}
	}
	return 0
}
