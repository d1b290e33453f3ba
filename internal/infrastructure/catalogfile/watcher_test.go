package catalogfile

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/enduraplan/v2/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestWatcher(t *testing.T, path string, repo *testutils.InMemoryCatalogRepository) *Watcher {
	t.Helper()
	w, err := NewWatcher(path, repo, zap.NewNop())
	require.NoError(t, err)
	w.Start()
	t.Cleanup(func() {
		require.NoError(t, w.Stop())
	})
	return w
}

func catalogNames(t *testing.T, repo *testutils.InMemoryCatalogRepository) []string {
	t.Helper()
	items, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}

func TestWatcherReloadsOnFileChange(t *testing.T) {
	path := writeCatalogFile(t, `[{"name": "Citrus Gel", "category": "gel", "carbs_g": 25}]`)
	repo := testutils.NewInMemoryCatalogRepository()

	_, err := Import(context.Background(), path, repo)
	require.NoError(t, err)
	newTestWatcher(t, path, repo)

	updated := `[
		{"name": "Citrus Gel", "category": "gel", "carbs_g": 25},
		{"name": "Oat Bar", "category": "bar", "carbs_g": 40}
	]`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		return len(catalogNames(t, repo)) == 2
	}, 3*time.Second, 25*time.Millisecond)
	assert.Equal(t, []string{"Citrus Gel", "Oat Bar"}, catalogNames(t, repo))
}

func TestWatcherKeepsCatalogOnBrokenFile(t *testing.T) {
	path := writeCatalogFile(t, `[{"name": "Citrus Gel", "category": "gel", "carbs_g": 25}]`)
	repo := testutils.NewInMemoryCatalogRepository()

	_, err := Import(context.Background(), path, repo)
	require.NoError(t, err)
	newTestWatcher(t, path, repo)

	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	// The reload fires after the debounce window and must leave the
	// previously imported catalog in place.
	time.Sleep(2 * debounceDelay)
	assert.Eventually(t, func() bool {
		return len(catalogNames(t, repo)) == 1
	}, time.Second, 25*time.Millisecond)
	assert.Equal(t, []string{"Citrus Gel"}, catalogNames(t, repo))
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	path := writeCatalogFile(t, `[{"name": "Citrus Gel", "category": "gel", "carbs_g": 25}]`)
	repo := testutils.NewInMemoryCatalogRepository()
	newTestWatcher(t, path, repo)

	other := path + ".bak"
	require.NoError(t, os.WriteFile(other, []byte(`[{"name": "Ghost Gel", "category": "gel", "carbs_g": 1}]`), 0o644))

	time.Sleep(2 * debounceDelay)
	assert.Empty(t, catalogNames(t, repo))
}
