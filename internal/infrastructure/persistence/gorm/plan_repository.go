package gorm

import (
	"context"
	"errors"

	"github.com/enduraplan/v2/internal/domain/planning"
	"github.com/enduraplan/v2/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlanRepository implements the accepted-plan repository interface using GORM
type PlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *gorm.DB) outbound.PlanRepository {
	return &PlanRepository{db: db}
}

// Save stores an accepted plan
func (r *PlanRepository) Save(ctx context.Context, plan planning.SavedPlan) error {
	model := SavedPlanToModel(plan)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindRecent returns the most recently accepted plans, newest first
func (r *PlanRepository) FindRecent(ctx context.Context, limit int) ([]planning.SavedPlan, error) {
	var models []AcceptedPlanModel
	result := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	saved := make([]planning.SavedPlan, 0, len(models))
	for _, m := range models {
		saved = append(saved, ModelToSavedPlan(m))
	}
	return saved, nil
}

// FindByID returns one accepted plan, or nil when it does not exist
func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.SavedPlan, error) {
	var model AcceptedPlanModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	saved := ModelToSavedPlan(model)
	return &saved, nil
}
