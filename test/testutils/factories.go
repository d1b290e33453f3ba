// Package testutils provides test data factories and in-memory doubles
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/domain/planning"
)

// CatalogFactory generates deterministic test catalogs
type CatalogFactory struct {
	faker *gofakeit.Faker
	seq   int
}

// NewCatalogFactory creates a catalog factory with a seeded faker
func NewCatalogFactory(seed int64) *CatalogFactory {
	return &CatalogFactory{faker: gofakeit.New(seed)}
}

// Gel returns a gel item with the given yields
func (f *CatalogFactory) Gel(carbs, sodium float64) catalog.Item {
	f.seq++
	return catalog.Item{
		Name:        fmt.Sprintf("%s Gel %d", f.faker.Company(), f.seq),
		Category:    catalog.CategoryGel,
		Carbs:       carbs,
		Sodium:      sodium,
		ServingSize: "1 sachet (32 g)",
	}
}

// DrinkMix returns a drink-mix item. A zero fluid yield exercises the
// reconstitution-volume rule.
func (f *CatalogFactory) DrinkMix(carbs, sodium, fluid float64) catalog.Item {
	f.seq++
	return catalog.Item{
		Name:        fmt.Sprintf("%s Mix %d", f.faker.Company(), f.seq),
		Category:    catalog.CategoryDrinkMix,
		Carbs:       carbs,
		Sodium:      sodium,
		Fluid:       fluid,
		ServingSize: "1 scoop per 500 ml",
	}
}

// RealFood returns a real-food item
func (f *CatalogFactory) RealFood(carbs, sodium float64) catalog.Item {
	f.seq++
	return catalog.Item{
		Name:        fmt.Sprintf("%s Bite %d", f.faker.Fruit(), f.seq),
		Category:    catalog.CategoryRealFood,
		Carbs:       carbs,
		Sodium:      sodium,
		ServingSize: "1 piece",
	}
}

// Electrolyte returns a zero-carb electrolyte item
func (f *CatalogFactory) Electrolyte(sodium float64) catalog.Item {
	f.seq++
	return catalog.Item{
		Name:        fmt.Sprintf("Salt Capsule %d", f.seq),
		Category:    catalog.CategoryElectrolyte,
		Sodium:      sodium,
		ServingSize: "1 capsule",
	}
}

// Water returns a plain water item
func (f *CatalogFactory) Water() catalog.Item {
	f.seq++
	return catalog.Item{
		Name:        fmt.Sprintf("Water %d", f.seq),
		Category:    catalog.CategoryWater,
		Fluid:       500,
		ServingSize: "1 bottle (500 ml)",
	}
}

// StandardCatalog returns a balanced catalog that every strategy can plan
// against: gels, a drink mix, real food, electrolytes and water.
func StandardCatalog() []catalog.Item {
	return []catalog.Item{
		{Name: "Citrus Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 50, ServingSize: "1 sachet"},
		{Name: "Berry Gel", Category: catalog.CategoryGel, Carbs: 25, Sodium: 40, ServingSize: "1 sachet"},
		{Name: "Endurance Mix", Category: catalog.CategoryDrinkMix, Carbs: 45, Sodium: 300, ServingSize: "1 scoop per 500 ml"},
		{Name: "Rice Cake", Category: catalog.CategoryRealFood, Carbs: 30, Sodium: 60, ServingSize: "1 cake"},
		{Name: "Banana", Category: catalog.CategoryRealFood, Carbs: 27, Sodium: 1, ServingSize: "1 medium"},
		{Name: "Salt Capsule", Category: catalog.CategoryElectrolyte, Sodium: 215, ServingSize: "1 capsule"},
		{Name: "Water", Category: catalog.CategoryWater, Fluid: 500, ServingSize: "1 bottle (500 ml)"},
	}
}

// StandardRequest returns a three-hour request with default rates over the
// standard catalog
func StandardRequest() planning.Request {
	return planning.Request{
		Catalog:         StandardCatalog(),
		DurationMinutes: 180,
	}
}
