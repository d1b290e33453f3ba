package testutils

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/domain/planning"
	"github.com/google/uuid"
)

// InMemoryCatalogRepository is a thread-safe catalog repository for tests
type InMemoryCatalogRepository struct {
	mu    sync.RWMutex
	items []catalog.Item
	Err   error // returned by every method when set
}

// NewInMemoryCatalogRepository creates a repository preloaded with items
func NewInMemoryCatalogRepository(items ...catalog.Item) *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{items: items}
}

// FindAll returns the stored items in order
func (r *InMemoryCatalogRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

// Upsert creates or replaces the item with the same name
func (r *InMemoryCatalogRepository) Upsert(ctx context.Context, item catalog.Item) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items {
		if existing.Name == item.Name {
			r.items[i] = item
			return nil
		}
	}
	r.items = append(r.items, item)
	return nil
}

// ReplaceAll swaps the whole catalog
func (r *InMemoryCatalogRepository) ReplaceAll(ctx context.Context, items []catalog.Item) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]catalog.Item, len(items))
	copy(r.items, items)
	return nil
}

// InMemoryPlanRepository is a thread-safe accepted-plan store for tests
type InMemoryPlanRepository struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]planning.SavedPlan
	Err   error
}

// NewInMemoryPlanRepository creates an empty plan repository
func NewInMemoryPlanRepository() *InMemoryPlanRepository {
	return &InMemoryPlanRepository{plans: make(map[uuid.UUID]planning.SavedPlan)}
}

// Save stores an accepted plan
func (r *InMemoryPlanRepository) Save(ctx context.Context, plan planning.SavedPlan) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = plan
	return nil
}

// FindRecent returns stored plans, newest first
func (r *InMemoryPlanRepository) FindRecent(ctx context.Context, limit int) ([]planning.SavedPlan, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]planning.SavedPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// FindByID returns one stored plan, or nil
func (r *InMemoryPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.SavedPlan, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.plans[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// Len returns the number of stored plans
func (r *InMemoryPlanRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plans)
}

// RecordingMetrics counts business metric calls for assertions
type RecordingMetrics struct {
	mu          sync.Mutex
	PlanSets    int
	Scores      map[string][]int
	Accepted    map[string]int
	CatalogSize int
	CacheOps    map[string]int
}

// NewRecordingMetrics creates an empty metrics recorder
func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Scores:   make(map[string][]int),
		Accepted: make(map[string]int),
		CacheOps: make(map[string]int),
	}
}

// RecordPlanSetGenerated counts one engine run
func (m *RecordingMetrics) RecordPlanSetGenerated(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlanSets++
}

// RecordPlanScore records one plan score per strategy
func (m *RecordingMetrics) RecordPlanScore(strategy string, score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Scores[strategy] = append(m.Scores[strategy], score)
}

// RecordPlanAccepted counts one accepted plan per strategy
func (m *RecordingMetrics) RecordPlanAccepted(strategy string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accepted[strategy]++
}

// SetCatalogSize stores the last reported catalog size
func (m *RecordingMetrics) SetCatalogSize(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogSize = n
}

// RecordCacheOperation counts cache operations keyed "operation/result"
func (m *RecordingMetrics) RecordCacheOperation(operation, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheOps[operation+"/"+result]++
}
