package container

import (
	"context"
	"testing"

	"github.com/enduraplan/v2/internal/infrastructure/config"
	"github.com/enduraplan/v2/internal/infrastructure/persistence/sqlite"
	"github.com/enduraplan/v2/pkg/healthcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
)

// fx resolves the graph lazily, so a missing or mistyped provider only
// surfaces at startup. ValidateApp catches that without running anything.
func TestModuleGraphResolves(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Module))
}

func TestNewHealthCheckWithoutRedis(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	db, err := sqlite.SetupDatabase(":memory:", gormLogger.Silent)
	require.NoError(t, err)

	hc := NewHealthCheck(cfg, zap.NewNop(), db, nil)
	resp := hc.Check(context.Background())

	names := make([]string, 0, len(resp.Checks))
	for _, c := range resp.Checks {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"database"}, names)
	assert.Equal(t, healthcheck.StatusHealthy, resp.Status)
}
