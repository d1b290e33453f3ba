// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/domain/planning"
	"github.com/google/uuid"
)

// CatalogRepository defines the interface for catalog persistence
type CatalogRepository interface {
	// FindAll returns the full catalog snapshot in stored order
	FindAll(ctx context.Context) ([]catalog.Item, error)

	// Upsert creates or replaces the item with the same name
	Upsert(ctx context.Context, item catalog.Item) error

	// ReplaceAll swaps the whole catalog, preserving the given order
	ReplaceAll(ctx context.Context, items []catalog.Item) error
}

// PlanRepository defines the interface for accepted-plan persistence
type PlanRepository interface {
	Save(ctx context.Context, plan planning.SavedPlan) error
	FindRecent(ctx context.Context, limit int) ([]planning.SavedPlan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*planning.SavedPlan, error)
}

// CacheRepository defines the interface for caching engine results
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
