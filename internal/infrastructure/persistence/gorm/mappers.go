package gorm

import (
	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/domain/planning"
)

// ItemToModel converts a domain catalog item to its GORM model
func ItemToModel(it catalog.Item, position int) CatalogItemModel {
	return CatalogItemModel{
		Name:        it.Name,
		Category:    string(it.Category),
		Carbs:       it.Carbs,
		Sodium:      it.Sodium,
		Fluid:       it.Fluid,
		ServingSize: it.ServingSize,
		Position:    position,
	}
}

// ModelToItem converts a GORM model to a domain catalog item
func ModelToItem(m CatalogItemModel) catalog.Item {
	return catalog.Item{
		Name:        m.Name,
		Category:    catalog.Category(m.Category),
		Carbs:       m.Carbs,
		Sodium:      m.Sodium,
		Fluid:       m.Fluid,
		ServingSize: m.ServingSize,
	}
}

// SavedPlanToModel converts an accepted plan to its GORM model
func SavedPlanToModel(sp planning.SavedPlan) AcceptedPlanModel {
	entries := make(EntrySlice, 0, len(sp.Plan.Entries))
	for _, e := range sp.Plan.Entries {
		entries = append(entries, EntryRecord{
			Name:        e.Item.Name,
			Category:    string(e.Item.Category),
			Quantity:    e.Quantity,
			ServingSize: e.Item.ServingSize,
			Carbs:       e.Carbs,
			Sodium:      e.Sodium,
			Fluid:       e.Fluid,
		})
	}

	return AcceptedPlanModel{
		ID:           sp.ID,
		StrategyID:   sp.Plan.StrategyID,
		StrategyName: sp.Plan.StrategyName,
		Description:  sp.Plan.Description,
		Entries:      entries,
		TotalCarbs:   sp.Plan.Totals.Carbs,
		TotalSodium:  sp.Plan.Totals.Sodium,
		TotalFluid:   sp.Plan.Totals.Fluid,
		CarbsPct:     sp.Plan.Coverage.Carbs,
		SodiumPct:    sp.Plan.Coverage.Sodium,
		FluidPct:     sp.Plan.Coverage.Fluid,
		Score:        sp.Plan.Score,
		TargetCarbs:  sp.Target.Carbs,
		TargetSodium: sp.Target.Sodium,
		TargetFluid:  sp.Target.Fluid,
		TargetHours:  sp.Target.Hours,
		CreatedAt:    sp.CreatedAt,
	}
}

// ModelToSavedPlan converts a GORM model back to an accepted plan
func ModelToSavedPlan(m AcceptedPlanModel) planning.SavedPlan {
	entries := make([]planning.Entry, 0, len(m.Entries))
	for _, r := range m.Entries {
		q := float64(r.Quantity)
		if q == 0 {
			q = 1
		}
		entries = append(entries, planning.Entry{
			Item: catalog.Item{
				Name:        r.Name,
				Category:    catalog.Category(r.Category),
				Carbs:       r.Carbs / q,
				Sodium:      r.Sodium / q,
				Fluid:       r.Fluid / q,
				ServingSize: r.ServingSize,
			},
			Quantity: r.Quantity,
			Carbs:    r.Carbs,
			Sodium:   r.Sodium,
			Fluid:    r.Fluid,
		})
	}

	return planning.SavedPlan{
		ID: m.ID,
		Plan: planning.Plan{
			StrategyID:   m.StrategyID,
			StrategyName: m.StrategyName,
			Description:  m.Description,
			Entries:      entries,
			Totals: planning.Totals{
				Carbs:  m.TotalCarbs,
				Sodium: m.TotalSodium,
				Fluid:  m.TotalFluid,
			},
			Coverage: planning.Coverage{
				Carbs:  m.CarbsPct,
				Sodium: m.SodiumPct,
				Fluid:  m.FluidPct,
			},
			Score: m.Score,
		},
		Target: planning.Target{
			Carbs:  m.TargetCarbs,
			Sodium: m.TargetSodium,
			Fluid:  m.TargetFluid,
			Hours:  m.TargetHours,
		},
		CreatedAt: m.CreatedAt,
	}
}
