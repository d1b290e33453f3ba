package planning

import "github.com/enduraplan/v2/internal/domain/catalog"

// ClassRestriction hard-restricts a strategy to one macro-class of items
type ClassRestriction int

const (
	// ClassAny places no macro-class restriction
	ClassAny ClassRestriction = iota
	// ClassLiquidsOnly keeps only drink mixes and water
	ClassLiquidsOnly
	// ClassSolidsOnly keeps only non-liquid items
	ClassSolidsOnly
)

// Strategy is a named, immutable rule set constraining which items and
// categories a candidate plan may draw from, and in which order the
// composer prefers them.
type Strategy struct {
	ID          string
	Name        string
	Description string

	// CategoryPriority orders the primary fill; earlier categories first
	CategoryPriority []catalog.Category

	// PreferNames bumps matching items ahead of their category peers;
	// AvoidNames drops matching items outright (case-insensitive substring)
	PreferNames []string
	AvoidNames  []string

	// BannedCategories drops whole categories before composition
	BannedCategories []catalog.Category

	// MaxSodiumPerServing drops items above the ceiling (0 = no ceiling)
	MaxSodiumPerServing float64

	// FillerPreference orders low-sodium filler items in the gap-fill phase
	FillerPreference []string

	// RequireCategory asks the composer to include at least one item of
	// this category when the catalog allows it ("" = no requirement)
	RequireCategory catalog.Category

	// Restriction hard-restricts the strategy to one macro-class
	Restriction ClassRestriction
}

// BuiltinStrategies returns the four selection profiles the engine ships
// with. Implementations may add more without changing the engine contract.
func BuiltinStrategies() []Strategy {
	return []Strategy{
		{
			ID:          "balanced",
			Name:        "Balanced",
			Description: "Even mix of gels, drinks and solids covering all three targets",
			CategoryPriority: []catalog.Category{
				catalog.CategoryGel,
				catalog.CategoryDrinkMix,
				catalog.CategoryElectrolyte,
				catalog.CategoryBar,
				catalog.CategoryRealFood,
			},
			FillerPreference: []string{"banana", "date", "rice", "waffle"},
		},
		{
			ID:          "liquid-fuel",
			Name:        "Liquid Fuel",
			Description: "Drink mixes and water only, for racers who cannot chew at effort",
			CategoryPriority: []catalog.Category{
				catalog.CategoryDrinkMix,
				catalog.CategoryElectrolyte,
			},
			Restriction: ClassLiquidsOnly,
		},
		{
			ID:          "solid-fuel",
			Name:        "Solid Fuel",
			Description: "No gels; bars and real food carry the carbohydrate load",
			CategoryPriority: []catalog.Category{
				catalog.CategoryBar,
				catalog.CategoryRealFood,
				catalog.CategoryDrinkMix,
				catalog.CategoryElectrolyte,
			},
			BannedCategories: []catalog.Category{catalog.CategoryGel},
			AvoidNames:       []string{"gel"},
			FillerPreference: []string{"banana", "potato", "rice", "date"},
			RequireCategory:  catalog.CategoryRealFood,
		},
		{
			ID:          "low-sodium",
			Name:        "Low Sodium",
			Description: "Per-serving sodium capped for heat-sensitive stomachs",
			CategoryPriority: []catalog.Category{
				catalog.CategoryGel,
				catalog.CategoryRealFood,
				catalog.CategoryBar,
				catalog.CategoryDrinkMix,
			},
			AvoidNames:          []string{"salt", "electrolyte"},
			MaxSodiumPerServing: 100,
			FillerPreference:    []string{"banana", "date", "fig", "rice"},
		},
	}
}
