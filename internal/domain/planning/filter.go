package planning

import (
	"github.com/enduraplan/v2/internal/domain/catalog"
	"go.uber.org/zap"
)

// filterForStrategy applies a strategy's hard rules to the globally filtered
// catalog: category ban-lists, the per-serving sodium ceiling, avoid-name
// patterns, and macro-class restrictions using the effective classification.
// An empty result means the strategy is skipped for this run.
func (e *Engine) filterForStrategy(items []catalog.Item, s Strategy, cls *catalog.Classifier) []catalog.Item {
	filtered := make([]catalog.Item, 0, len(items))

	for _, it := range items {
		class := cls.Classify(it)

		if categoryBanned(s, it.Category) || categoryBanned(s, class) {
			e.logger.Debug("item rejected: banned category",
				zap.String("strategy", s.ID),
				zap.String("item", it.Name),
				zap.String("class", string(class)),
			)
			continue
		}

		if s.MaxSodiumPerServing > 0 && it.Sodium > s.MaxSodiumPerServing {
			e.logger.Debug("item rejected: sodium ceiling",
				zap.String("strategy", s.ID),
				zap.String("item", it.Name),
				zap.Float64("sodium", it.Sodium),
				zap.Float64("ceiling", s.MaxSodiumPerServing),
			)
			continue
		}

		if catalog.MatchesAnyPattern(it.Name, s.AvoidNames) {
			e.logger.Debug("item rejected: avoid pattern",
				zap.String("strategy", s.ID),
				zap.String("item", it.Name),
			)
			continue
		}

		switch s.Restriction {
		case ClassLiquidsOnly:
			if !catalog.IsLiquid(class) {
				e.logger.Debug("item rejected: not a liquid",
					zap.String("strategy", s.ID),
					zap.String("item", it.Name),
					zap.String("class", string(class)),
				)
				continue
			}
		case ClassSolidsOnly:
			if catalog.IsLiquid(class) {
				e.logger.Debug("item rejected: liquid",
					zap.String("strategy", s.ID),
					zap.String("item", it.Name),
					zap.String("class", string(class)),
				)
				continue
			}
		}

		filtered = append(filtered, it)
	}

	return filtered
}

func categoryBanned(s Strategy, c catalog.Category) bool {
	for _, banned := range s.BannedCategories {
		if banned == c {
			return true
		}
	}
	return false
}
