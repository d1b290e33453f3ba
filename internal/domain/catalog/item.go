// Package catalog contains the core domain logic for the fueling product catalog.
// Items are immutable value objects for the duration of a planning run.
package catalog

import (
	"strings"
)

// Category identifies the product class of a catalog item
type Category string

// The closed set of product categories
const (
	CategoryGel         Category = "gel"
	CategoryDrinkMix    Category = "drink_mix"
	CategoryBar         Category = "bar"
	CategoryRealFood    Category = "real_food"
	CategoryElectrolyte Category = "electrolyte"
	CategoryWater       Category = "water"
	CategoryOther       Category = "other"
)

// ReconstitutionVolumeML is the fluid volume assumed for a drink-mix item
// whose cataloged fluid yield is zero. The catalog record is never altered;
// the volume only participates in plan computation.
const ReconstitutionVolumeML = 500.0

// Item represents one discrete consumable with fixed per-serving yields.
// Name is unique within a catalog.
type Item struct {
	Name        string
	Category    Category
	Carbs       float64 // grams per serving
	Sodium      float64 // milligrams per serving
	Fluid       float64 // milliliters per serving
	ServingSize string  // human-readable label, e.g. "1 sachet (32 g)"
}

// Validate validates the item
func (i Item) Validate() error {
	if i.Name == "" {
		return ErrItemNameRequired
	}
	if i.Carbs < 0 || i.Sodium < 0 || i.Fluid < 0 {
		return ErrNegativeYield
	}
	switch i.Category {
	case CategoryGel, CategoryDrinkMix, CategoryBar, CategoryRealFood,
		CategoryElectrolyte, CategoryWater, CategoryOther:
		return nil
	default:
		return ErrUnknownCategory
	}
}

// Classifier resolves the effective class of catalog items, combining the
// stored category with name-pattern heuristics. Results are cached per item
// name so the string matching runs once per planning run.
type Classifier struct {
	cache map[string]Category
}

// NewClassifier creates a classifier with an empty cache
func NewClassifier() *Classifier {
	return &Classifier{cache: make(map[string]Category)}
}

// Classify returns the effective class of an item. The stored category wins
// unless a name pattern clearly contradicts it: a "mix" filed under bars is
// still a liquid, and a named "gel" is a gel even if miscategorized.
func (c *Classifier) Classify(it Item) Category {
	if cached, ok := c.cache[it.Name]; ok {
		return cached
	}
	class := classify(it)
	c.cache[it.Name] = class
	return class
}

func classify(it Item) Category {
	name := strings.ToLower(it.Name)

	switch {
	case it.Category == CategoryWater, name == "water", strings.Contains(name, "plain water"):
		return CategoryWater
	case strings.Contains(name, "gel"):
		return CategoryGel
	case strings.Contains(name, "mix"), strings.Contains(name, "drink"), strings.Contains(name, "hydration"):
		return CategoryDrinkMix
	case it.Category == CategoryElectrolyte && it.Fluid > 0:
		// Ready-to-drink electrolyte products behave like drink mixes
		return CategoryDrinkMix
	}
	return it.Category
}

// IsLiquid reports whether an effective class counts as a liquid for
// strategies that hard-restrict to one macro-class.
func IsLiquid(class Category) bool {
	return class == CategoryDrinkMix || class == CategoryWater
}

// IsDrinkMix reports whether an item should be treated as a drink mix for
// the effective-fluid rule: explicit category, the classified name patterns,
// or an electrolyte product carrying a meaningful carb or sodium load.
func IsDrinkMix(it Item, class Category) bool {
	if it.Category == CategoryDrinkMix || class == CategoryDrinkMix {
		return true
	}
	return it.Category == CategoryElectrolyte && (it.Carbs >= 10 || it.Sodium >= 150)
}

// EffectiveFluid returns the fluid contribution of one serving. Drink-mix
// items with a zero cataloged fluid yield contribute the reconstitution
// volume instead; all other items contribute their cataloged yield.
func EffectiveFluid(it Item, class Category) float64 {
	if it.Fluid == 0 && IsDrinkMix(it, class) {
		return ReconstitutionVolumeML
	}
	return it.Fluid
}
