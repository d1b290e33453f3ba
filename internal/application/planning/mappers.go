package planning

import (
	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/domain/planning"
	"github.com/enduraplan/v2/internal/ports/inbound"
)

func itemToDTO(it catalog.Item) inbound.CatalogItemDTO {
	return inbound.CatalogItemDTO{
		Name:        it.Name,
		Category:    string(it.Category),
		Carbs:       it.Carbs,
		Sodium:      it.Sodium,
		Fluid:       it.Fluid,
		ServingSize: it.ServingSize,
	}
}

func targetToDTO(t planning.Target) inbound.TargetDTO {
	return inbound.TargetDTO{
		Carbs:  t.Carbs,
		Sodium: t.Sodium,
		Fluid:  t.Fluid,
		Hours:  t.Hours,
	}
}

func planToDTO(p planning.Plan) inbound.PlanDTO {
	entries := make([]inbound.PlanEntryDTO, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, inbound.PlanEntryDTO{
			Name:        e.Item.Name,
			Quantity:    e.Quantity,
			ServingSize: e.Item.ServingSize,
			Carbs:       e.Carbs,
			Sodium:      e.Sodium,
			Fluid:       e.Fluid,
		})
	}
	return inbound.PlanDTO{
		StrategyID:   p.StrategyID,
		StrategyName: p.StrategyName,
		Description:  p.Description,
		Entries:      entries,
		TotalCarbs:   p.Totals.Carbs,
		TotalSodium:  p.Totals.Sodium,
		TotalFluid:   p.Totals.Fluid,
		CarbsPct:     p.Coverage.Carbs,
		SodiumPct:    p.Coverage.Sodium,
		FluidPct:     p.Coverage.Fluid,
		Score:        p.Score,
	}
}

// ResultToDTO converts an engine result to its API representation
func ResultToDTO(r planning.Result) inbound.PlanSetDTO {
	plans := make([]inbound.PlanDTO, 0, len(r.Plans))
	for _, p := range r.Plans {
		plans = append(plans, planToDTO(p))
	}
	return inbound.PlanSetDTO{
		ID:          r.ID,
		GeneratedAt: r.GeneratedAt,
		Target:      targetToDTO(r.Target),
		Plans:       plans,
		Warnings:    r.Warnings,
		Tips:        r.Tips,
	}
}

// dtoToResult rebuilds a result from its serialized form so plans served
// from the cache stay acceptable. Per-serving yields are recovered from the
// entry totals; the reconstructed items are only ever used for persistence.
func dtoToResult(dto inbound.PlanSetDTO) planning.Result {
	plans := make([]planning.Plan, 0, len(dto.Plans))
	for _, pd := range dto.Plans {
		plans = append(plans, dtoToPlan(pd))
	}
	return planning.Result{
		ID:          dto.ID,
		GeneratedAt: dto.GeneratedAt,
		Target: planning.Target{
			Carbs:  dto.Target.Carbs,
			Sodium: dto.Target.Sodium,
			Fluid:  dto.Target.Fluid,
			Hours:  dto.Target.Hours,
		},
		Plans:    plans,
		Warnings: dto.Warnings,
		Tips:     dto.Tips,
	}
}

func dtoToPlan(pd inbound.PlanDTO) planning.Plan {
	entries := make([]planning.Entry, 0, len(pd.Entries))
	for _, ed := range pd.Entries {
		q := float64(ed.Quantity)
		if q == 0 {
			q = 1
		}
		entries = append(entries, planning.Entry{
			Item: catalog.Item{
				Name:        ed.Name,
				Carbs:       ed.Carbs / q,
				Sodium:      ed.Sodium / q,
				Fluid:       ed.Fluid / q,
				ServingSize: ed.ServingSize,
			},
			Quantity: ed.Quantity,
			Carbs:    ed.Carbs,
			Sodium:   ed.Sodium,
			Fluid:    ed.Fluid,
		})
	}
	return planning.Plan{
		StrategyID:   pd.StrategyID,
		StrategyName: pd.StrategyName,
		Description:  pd.Description,
		Entries:      entries,
		Totals: planning.Totals{
			Carbs:  pd.TotalCarbs,
			Sodium: pd.TotalSodium,
			Fluid:  pd.TotalFluid,
		},
		Coverage: planning.Coverage{
			Carbs:  pd.CarbsPct,
			Sodium: pd.SodiumPct,
			Fluid:  pd.FluidPct,
		},
		Score: pd.Score,
	}
}
