// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlanningService defines the fueling plan use cases. This is the primary
// port the HTTP handlers and the CLI drive.
type PlanningService interface {
	// GeneratePlans runs the selection engine over the stored catalog
	GeneratePlans(ctx context.Context, cmd GeneratePlansCommand) (*PlanSetDTO, error)

	// AcceptPlan persists a generated plan the racer chose to keep
	AcceptPlan(ctx context.Context, cmd AcceptPlanCommand) (uuid.UUID, error)

	// ListAcceptedPlans returns recently accepted plans, newest first
	ListAcceptedPlans(ctx context.Context, limit int) ([]AcceptedPlanDTO, error)

	// Catalog management
	ListCatalog(ctx context.Context) ([]CatalogItemDTO, error)
	UpsertCatalogItem(ctx context.Context, item CatalogItemDTO) error
}

// GeneratePlansCommand contains the inputs for one engine run
type GeneratePlansCommand struct {
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
	CarbsPerHour    float64  `json:"carbs_per_hour" validate:"gte=0"`
	SodiumPerHour   float64  `json:"sodium_per_hour" validate:"gte=0"`
	FluidPerHour    float64  `json:"fluid_per_hour" validate:"gte=0"`
	RecentlyUsed    []string `json:"recently_used,omitempty"`
}

// AcceptPlanCommand stores one generated plan
type AcceptPlanCommand struct {
	ResultID   uuid.UUID `json:"result_id" validate:"required"`
	StrategyID string    `json:"strategy_id" validate:"required"`
}

// CatalogItemDTO mirrors a catalog item at the API boundary
type CatalogItemDTO struct {
	Name        string  `json:"name" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Carbs       float64 `json:"carbs_g" validate:"gte=0"`
	Sodium      float64 `json:"sodium_mg" validate:"gte=0"`
	Fluid       float64 `json:"fluid_ml" validate:"gte=0"`
	ServingSize string  `json:"serving_size"`
}

// PlanEntryDTO is one (item, quantity) line of a plan
type PlanEntryDTO struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	ServingSize string  `json:"serving_size"`
	Carbs       float64 `json:"carbs_g"`
	Sodium      float64 `json:"sodium_mg"`
	Fluid       float64 `json:"fluid_ml"`
}

// PlanDTO is one strategy's best plan
type PlanDTO struct {
	StrategyID   string         `json:"strategy_id"`
	StrategyName string         `json:"strategy_name"`
	Description  string         `json:"description"`
	Entries      []PlanEntryDTO `json:"entries"`
	TotalCarbs   float64        `json:"total_carbs_g"`
	TotalSodium  float64        `json:"total_sodium_mg"`
	TotalFluid   float64        `json:"total_fluid_ml"`
	CarbsPct     float64        `json:"carbs_coverage_pct"`
	SodiumPct    float64        `json:"sodium_coverage_pct"`
	FluidPct     float64        `json:"fluid_coverage_pct"`
	Score        int            `json:"score"`
}

// TargetDTO echoes the computed absolute targets
type TargetDTO struct {
	Carbs  int     `json:"carbs_g"`
	Sodium int     `json:"sodium_mg"`
	Fluid  int     `json:"fluid_ml"`
	Hours  float64 `json:"hours"`
}

// PlanSetDTO is the full outcome of one engine run
type PlanSetDTO struct {
	ID          uuid.UUID `json:"id"`
	GeneratedAt time.Time `json:"generated_at"`
	Target      TargetDTO `json:"target"`
	Plans       []PlanDTO `json:"plans"`
	Warnings    []string  `json:"warnings"`
	Tips        []string  `json:"tips"`
}

// AcceptedPlanDTO is a stored plan with its context
type AcceptedPlanDTO struct {
	ID        uuid.UUID `json:"id"`
	Plan      PlanDTO   `json:"plan"`
	Target    TargetDTO `json:"target"`
	CreatedAt time.Time `json:"created_at"`
}
