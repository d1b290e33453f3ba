// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	gormModels "github.com/enduraplan/v2/internal/infrastructure/persistence/gorm"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&gormModels.CatalogItemModel{},
		&gormModels.AcceptedPlanModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates an empty catalog with a starter product set.
// The products mirror what a well-stocked racer actually carries; the
// planner needs nothing beyond name, category and per-serving yields.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.CatalogItemModel{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	type seed struct {
		name, category, serving string
		carbs, sodium, fluid    float64
	}
	seeds := []seed{
		{"Energy Gel", "gel", "1 sachet (32 g)", 25, 50, 0},
		{"Caffeinated Gel", "gel", "1 sachet (32 g)", 25, 40, 0},
		{"Dual-Source Gel", "gel", "1 sachet (40 g)", 40, 10, 0},
		{"Endurance Drink Mix", "drink_mix", "1 scoop per 500 ml", 45, 300, 0},
		{"Light Hydration Mix", "drink_mix", "1 tablet per 500 ml", 8, 360, 0},
		{"Energy Chews", "other", "1 pack (50 g)", 36, 80, 0},
		{"Oat Bar", "bar", "1 bar (45 g)", 28, 95, 0},
		{"Rice Cake", "real_food", "1 cake (60 g)", 30, 60, 0},
		{"Banana", "real_food", "1 medium", 27, 1, 0},
		{"Salted Potatoes", "real_food", "1 cup (150 g)", 26, 400, 0},
		{"Electrolyte Capsule", "electrolyte", "1 capsule", 0, 215, 0},
		{"Electrolyte Drink", "electrolyte", "1 bottle (500 ml)", 14, 230, 500},
		{"Water", "water", "1 bottle (500 ml)", 0, 0, 500},
	}

	for i, s := range seeds {
		model := gormModels.CatalogItemModel{
			Name:        s.name,
			Category:    s.category,
			Carbs:       s.carbs,
			Sodium:      s.sodium,
			Fluid:       s.fluid,
			ServingSize: s.serving,
			Position:    i,
		}
		if err := db.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to seed catalog: %w", err)
		}
	}
	return nil
}
