package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/enduraplan/v2/internal/domain/catalog"
	"github.com/enduraplan/v2/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"name": "Citrus Gel", "category": "gel", "carbs_g": 25, "sodium_mg": 50, "serving_size": "1 sachet"},
		{"name": "Endurance Mix", "category": "drink_mix", "carbs_g": 45, "sodium_mg": 300},
		{"name": "Water", "category": "water", "fluid_ml": 500}
	]`)

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Citrus Gel", items[0].Name)
	assert.Equal(t, catalog.CategoryGel, items[0].Category)
	assert.Equal(t, 25.0, items[0].Carbs)
	assert.Equal(t, "1 sachet", items[0].ServingSize)
	assert.Equal(t, 500.0, items[2].Fluid)
}

func TestLoadFileDefaultsMissingCategory(t *testing.T) {
	path := writeCatalogFile(t, `[{"name": "Mystery Chew", "carbs_g": 20}]`)

	items, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, catalog.CategoryOther, items[0].Category)
}

func TestLoadFileRejectsWholeFileOnBadRecord(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"name": "Citrus Gel", "category": "gel", "carbs_g": 25},
		{"name": "Broken Bar", "category": "gravel", "carbs_g": 30}
	]`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)
	assert.Contains(t, err.Error(), "Broken Bar")
}

func TestLoadFileRejectsDuplicateNames(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"name": "Citrus Gel", "category": "gel", "carbs_g": 25},
		{"name": "Citrus Gel", "category": "gel", "carbs_g": 30}
	]`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrDuplicateItem)
}

func TestLoadFileMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadFileMalformedJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"not": "an array"`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestImportReplacesStoredCatalog(t *testing.T) {
	repo := testutils.NewInMemoryCatalogRepository(testutils.StandardCatalog()...)
	path := writeCatalogFile(t, `[
		{"name": "Oat Bar", "category": "bar", "carbs_g": 40, "sodium_mg": 100}
	]`)

	count, err := Import(context.Background(), path, repo)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	items, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Oat Bar", items[0].Name)
}

func TestImportLoadErrorLeavesCatalogUntouched(t *testing.T) {
	repo := testutils.NewInMemoryCatalogRepository(testutils.StandardCatalog()...)

	_, err := Import(context.Background(), filepath.Join(t.TempDir(), "absent.json"), repo)
	require.Error(t, err)

	items, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, len(testutils.StandardCatalog()))
}
