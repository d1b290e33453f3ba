package gorm

import (
	"context"
	"errors"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/ports/outbound"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogRepository implements the catalog repository interface using GORM
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) outbound.CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindAll returns the full catalog in stored order
func (r *CatalogRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	var models []CatalogItemModel
	result := r.db.WithContext(ctx).Order("position ASC, name ASC").Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]catalog.Item, 0, len(models))
	for _, m := range models {
		items = append(items, ModelToItem(m))
	}
	return items, nil
}

// Upsert creates or replaces the item with the same name. New items are
// appended at the end of the stored order.
func (r *CatalogRepository) Upsert(ctx context.Context, item catalog.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var position int
		var existing CatalogItemModel
		err := tx.Where("name = ?", item.Name).First(&existing).Error
		switch {
		case err == nil:
			position = existing.Position
		case errors.Is(err, gorm.ErrRecordNotFound):
			var maxPos *int
			if err := tx.Model(&CatalogItemModel{}).Select("MAX(position)").Scan(&maxPos).Error; err != nil {
				return err
			}
			if maxPos != nil {
				position = *maxPos + 1
			}
		default:
			return err
		}

		model := ItemToModel(item, position)
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"category", "carbs", "sodium", "fluid", "serving_size", "updated_at",
			}),
		}).Create(&model).Error
	})
}

// ReplaceAll swaps the whole catalog, preserving the given order
func (r *CatalogRepository) ReplaceAll(ctx context.Context, items []catalog.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&CatalogItemModel{}).Error; err != nil {
			return err
		}
		for i, it := range items {
			model := ItemToModel(it, i)
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
