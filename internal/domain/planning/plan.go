package planning

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/google/uuid"
)

// Entry is one (item, quantity) pair in a plan, with the precomputed
// nutrient contribution of the whole entry. Fluid uses the effective yield.
type Entry struct {
	Item     catalog.Item
	Quantity int
	Carbs    float64
	Sodium   float64
	Fluid    float64
}

// newEntry builds an entry with contributions computed from the item yields
func newEntry(it catalog.Item, qty int, effectiveFluid float64) Entry {
	q := float64(qty)
	return Entry{
		Item:     it,
		Quantity: qty,
		Carbs:    it.Carbs * q,
		Sodium:   it.Sodium * q,
		Fluid:    effectiveFluid * q,
	}
}

// Totals holds the summed nutrient contributions of a plan
type Totals struct {
	Carbs  float64
	Sodium float64
	Fluid  float64
}

// Coverage holds per-nutrient coverage as percentages of target.
// A zero target counts as fully covered.
type Coverage struct {
	Carbs  float64
	Sodium float64
	Fluid  float64
}

func coverageOf(t Target, tot Totals) Coverage {
	return Coverage{
		Carbs:  pct(tot.Carbs, t.Carbs),
		Sodium: pct(tot.Sodium, t.Sodium),
		Fluid:  pct(tot.Fluid, t.Fluid),
	}
}

func pct(actual float64, target int) float64 {
	if target <= 0 {
		return 100
	}
	return actual / float64(target) * 100
}

// Plan is a scored, strategy-tagged multiset of entries. Plans are value
// objects: once scored they are only replaced wholesale by a better-scoring
// plan for the same strategy, never mutated mid-comparison.
type Plan struct {
	StrategyID   string
	StrategyName string
	Description  string
	Entries      []Entry
	Totals       Totals
	Coverage     Coverage
	Score        int
}

// IsEmpty reports whether the plan carries no entries
func (p Plan) IsEmpty() bool {
	return len(p.Entries) == 0
}

// Fingerprint returns a content fingerprint of the plan: sorted
// "name:quantity" pairs. Plans with identical fingerprints are duplicates
// regardless of which strategy produced them.
func (p Plan) Fingerprint() string {
	pairs := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		pairs = append(pairs, fmt.Sprintf("%s:%d", e.Item.Name, e.Quantity))
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "|")
}

// Result is the outcome of one engine invocation: the echoed target, the
// best plan per strategy sorted by score descending, and plain-language
// warnings and tips. The ID and timestamp label the run; they never
// participate in selection logic.
type Result struct {
	ID          uuid.UUID
	GeneratedAt time.Time
	Target      Target
	Plans       []Plan
	Warnings    []string
	Tips        []string
}

// SavedPlan is a generated plan a racer accepted and stored for later
type SavedPlan struct {
	ID        uuid.UUID
	Plan      Plan
	Target    Target
	CreatedAt time.Time
}
