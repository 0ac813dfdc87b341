package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 25, cfg.MaxStops)
	assert.Equal(t, 150.0, cfg.MaxDistanceKm)
	assert.Equal(t, "data/app.db", cfg.DSN())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MAX_STOPS", "8")
	t.Setenv("DEPOT_LAT", "51.5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.MaxStops)
	assert.Equal(t, 51.5, cfg.DepotLat)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.yaml")
	body := "db_driver: postgres\ndatabase_url: postgres://localhost/shops\nmax_distance_km: 40\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/shops", cfg.DSN())
	assert.Equal(t, 40.0, cfg.MaxDistanceKm)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	base := Config{DBDriver: "sqlite", DBPath: "x.db", MaxStops: 5, MaxDistanceKm: 10}
	require.NoError(t, base.Validate())

	bad := base
	bad.DBDriver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.DBDriver = "postgres"
	assert.Error(t, bad.Validate())

	bad = base
	bad.MaxStops = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.MaxDistanceKm = 0
	assert.Error(t, bad.Validate())
}
