// Package planning provides the application layer for fueling plan
// generation. It implements the use cases defined in the inbound ports.
package planning

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/domain/planning"
	"github.com/enduraplan/v2/internal/ports/inbound"
	"github.com/enduraplan/v2/internal/ports/outbound"
	"github.com/enduraplan/v2/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recentResultLimit bounds the in-memory window of generated results kept
// around so one of their plans can still be accepted.
const recentResultLimit = 64

// defaultListLimit applies when a list request carries no explicit limit
const defaultListLimit = 20

// PlanningService implements the fueling plan use cases
type PlanningService struct {
	engine      *planning.Engine
	catalogRepo outbound.CatalogRepository
	planRepo    outbound.PlanRepository
	cache       outbound.CacheRepository
	cacheTTL    time.Duration
	metrics     outbound.MetricsRecorder
	logger      *zap.Logger

	mu     sync.Mutex
	recent map[uuid.UUID]planning.Result
	order  []uuid.UUID
}

// NewPlanningService creates a new planning service
func NewPlanningService(
	engine *planning.Engine,
	catalogRepo outbound.CatalogRepository,
	planRepo outbound.PlanRepository,
	cache outbound.CacheRepository,
	cacheTTL time.Duration,
	metrics outbound.MetricsRecorder,
	logger *zap.Logger,
) inbound.PlanningService {
	return &PlanningService{
		engine:      engine,
		catalogRepo: catalogRepo,
		planRepo:    planRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     metrics,
		logger:      logger.Named("planning-service"),
		recent:      make(map[uuid.UUID]planning.Result),
	}
}

// GeneratePlans runs the selection engine over the stored catalog.
// Results are cached keyed by the command and a catalog digest, so a
// catalog edit naturally invalidates all prior entries.
func (s *PlanningService) GeneratePlans(ctx context.Context, cmd inbound.GeneratePlansCommand) (*inbound.PlanSetDTO, error) {
	items, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load catalog", err)
	}
	if len(items) == 0 {
		return nil, errors.NewCatalogEmptyError()
	}

	key := cacheKey(cmd, items)
	if cached := s.getCachedResult(ctx, key); cached != nil {
		s.logger.Debug("serving cached plan set",
			zap.String("result_id", cached.ID.String()),
		)
		s.recordCacheOp("get", "hit")
		s.remember(dtoToResult(*cached))
		return cached, nil
	}
	if s.cache != nil {
		s.recordCacheOp("get", "miss")
	}

	s.logger.Info("generating plan set",
		zap.Int("duration_minutes", cmd.DurationMinutes),
		zap.Int("catalog_size", len(items)),
	)

	start := time.Now()
	result := s.engine.Generate(planning.Request{
		Catalog:         items,
		DurationMinutes: cmd.DurationMinutes,
		Rates: planning.Rates{
			CarbsPerHour:  cmd.CarbsPerHour,
			SodiumPerHour: cmd.SodiumPerHour,
			FluidPerHour:  cmd.FluidPerHour,
		},
		RecentlyUsed: cmd.RecentlyUsed,
	})

	if s.metrics != nil {
		s.metrics.RecordPlanSetGenerated(time.Since(start))
		for _, p := range result.Plans {
			s.metrics.RecordPlanScore(p.StrategyID, p.Score)
		}
	}

	s.remember(result)
	dto := ResultToDTO(result)
	s.cacheResult(ctx, key, dto)
	return &dto, nil
}

// AcceptPlan persists one plan from a recently generated result
func (s *PlanningService) AcceptPlan(ctx context.Context, cmd inbound.AcceptPlanCommand) (uuid.UUID, error) {
	s.mu.Lock()
	result, ok := s.recent[cmd.ResultID]
	s.mu.Unlock()
	if !ok {
		return uuid.Nil, errors.NewRunNotFoundError(cmd.ResultID.String())
	}

	var chosen *planning.Plan
	for i := range result.Plans {
		if result.Plans[i].StrategyID == cmd.StrategyID {
			chosen = &result.Plans[i]
			break
		}
	}
	if chosen == nil {
		return uuid.Nil, errors.NewPlanNotFoundError(cmd.StrategyID)
	}

	saved := planning.SavedPlan{
		ID:        uuid.New(),
		Plan:      *chosen,
		Target:    result.Target,
		CreatedAt: time.Now(),
	}
	if err := s.planRepo.Save(ctx, saved); err != nil {
		return uuid.Nil, errors.NewDatabaseError("save accepted plan", err)
	}

	if s.metrics != nil {
		s.metrics.RecordPlanAccepted(cmd.StrategyID)
	}
	s.logger.Info("plan accepted",
		zap.String("plan_id", saved.ID.String()),
		zap.String("strategy", cmd.StrategyID),
		zap.Int("score", chosen.Score),
	)
	return saved.ID, nil
}

// ListAcceptedPlans returns recently accepted plans, newest first
func (s *PlanningService) ListAcceptedPlans(ctx context.Context, limit int) ([]inbound.AcceptedPlanDTO, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	saved, err := s.planRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("list accepted plans", err)
	}

	dtos := make([]inbound.AcceptedPlanDTO, 0, len(saved))
	for _, sp := range saved {
		dtos = append(dtos, inbound.AcceptedPlanDTO{
			ID:        sp.ID,
			Plan:      planToDTO(sp.Plan),
			Target:    targetToDTO(sp.Target),
			CreatedAt: sp.CreatedAt,
		})
	}
	return dtos, nil
}

// ListCatalog returns the stored catalog in order
func (s *PlanningService) ListCatalog(ctx context.Context) ([]inbound.CatalogItemDTO, error) {
	items, err := s.catalogRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("load catalog", err)
	}

	dtos := make([]inbound.CatalogItemDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, itemToDTO(it))
	}
	return dtos, nil
}

// UpsertCatalogItem validates and stores one catalog item
func (s *PlanningService) UpsertCatalogItem(ctx context.Context, dto inbound.CatalogItemDTO) error {
	item := catalog.Item{
		Name:        dto.Name,
		Category:    catalog.Category(dto.Category),
		Carbs:       dto.Carbs,
		Sodium:      dto.Sodium,
		Fluid:       dto.Fluid,
		ServingSize: dto.ServingSize,
	}
	if err := item.Validate(); err != nil {
		return errors.NewItemInvalidError(dto.Name, err)
	}
	if err := s.catalogRepo.Upsert(ctx, item); err != nil {
		return errors.NewDatabaseError("upsert catalog item", err)
	}

	s.logger.Info("catalog item stored", zap.String("name", item.Name))
	return nil
}

// remember keeps a bounded window of generated results for acceptance
func (s *PlanningService) remember(result planning.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.recent[result.ID]; seen {
		return
	}
	s.recent[result.ID] = result
	s.order = append(s.order, result.ID)
	for len(s.order) > recentResultLimit {
		delete(s.recent, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *PlanningService) getCachedResult(ctx context.Context, key string) *inbound.PlanSetDTO {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return nil
	}
	var dto inbound.PlanSetDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		s.logger.Warn("discarding malformed cached plan set", zap.Error(err))
		return nil
	}
	return &dto
}

func (s *PlanningService) cacheResult(ctx context.Context, key string, dto inbound.PlanSetDTO) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache plan set", zap.Error(err))
		s.recordCacheOp("set", "error")
		return
	}
	s.recordCacheOp("set", "ok")
}

func (s *PlanningService) recordCacheOp(operation, result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(operation, result)
	}
}

// cacheKey digests the command and the catalog snapshot. Two identical
// requests against an unchanged catalog share one cache entry.
func cacheKey(cmd inbound.GeneratePlansCommand, items []catalog.Item) string {
	h := sha256.New()
	fmt.Fprintf(h, "plans:%d:%g:%g:%g", cmd.DurationMinutes, cmd.CarbsPerHour, cmd.SodiumPerHour, cmd.FluidPerHour)
	for _, name := range cmd.RecentlyUsed {
		fmt.Fprintf(h, ":%s", name)
	}
	for _, it := range items {
		fmt.Fprintf(h, "|%s:%s:%g:%g:%g", it.Name, it.Category, it.Carbs, it.Sodium, it.Fluid)
	}
	return "planset:" + hex.EncodeToString(h.Sum(nil))
}
