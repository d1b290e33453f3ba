// Package catalogfile loads the product catalog from a JSON file and keeps
// the stored catalog in sync while the file changes on disk
package catalogfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/internal/ports/outbound"
)

// fileItem is the JSON schema of one catalog entry
type fileItem struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Carbs       float64 `json:"carbs_g"`
	Sodium      float64 `json:"sodium_mg"`
	Fluid       float64 `json:"fluid_ml"`
	ServingSize string  `json:"serving_size"`
}

// LoadFile parses a catalog JSON file. Every item must validate; a single
// bad record rejects the whole file so a partial catalog never goes live.
func LoadFile(path string) ([]catalog.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var records []fileItem
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	seen := make(map[string]bool, len(records))
	items := make([]catalog.Item, 0, len(records))
	for i, r := range records {
		item := catalog.Item{
			Name:        r.Name,
			Category:    catalog.Category(r.Category),
			Carbs:       r.Carbs,
			Sodium:      r.Sodium,
			Fluid:       r.Fluid,
			ServingSize: r.ServingSize,
		}
		if item.Category == "" {
			item.Category = catalog.CategoryOther
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("catalog record %d (%q): %w", i, r.Name, err)
		}
		if seen[item.Name] {
			return nil, fmt.Errorf("catalog record %d: %w: %s", i, catalog.ErrDuplicateItem, item.Name)
		}
		seen[item.Name] = true
		items = append(items, item)
	}
	return items, nil
}

// Import loads a catalog file and replaces the stored catalog with it
func Import(ctx context.Context, path string, repo outbound.CatalogRepository) (int, error) {
	items, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	if err := repo.ReplaceAll(ctx, items); err != nil {
		return 0, fmt.Errorf("failed to store catalog: %w", err)
	}
	return len(items), nil
}
