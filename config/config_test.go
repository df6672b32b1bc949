package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"CATALOG_STRICT", "CATALOG_PLURAL_RULE", "CATALOG_CACHE_SIZE",
		"CATALOG_REDIS_ADDR", "CATALOG_NATS_URL", "CATALOG_TELEMETRY",
		"CATALOG_LOG_LEVEL", "CATALOG_CACHE_TTL",
	} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := FromEnv[EngineConfig]()
	require.NoError(t, err)
	require.False(t, cfg.StrictByDefault)
	require.Equal(t, "DEFAULT", cfg.DefaultPluralRule)
	require.Equal(t, 4096, cfg.ResolverCacheSize)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CATALOG_STRICT", "true")
	t.Setenv("CATALOG_CACHE_SIZE", "128")

	cfg, err := FromEnv[EngineConfig]()
	require.NoError(t, err)
	require.True(t, cfg.StrictByDefault)
	require.Equal(t, 128, cfg.ResolverCacheSize)
}

func TestFillEnv(t *testing.T) {
	t.Setenv("CATALOG_LOG_LEVEL", "debug")

	cfg := &EngineConfig{}
	require.NoError(t, FillEnv(cfg))
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestToFromContext(t *testing.T) {
	cfg := EngineConfig{LogLevel: "warn"}
	ctx := ToContext(context.Background(), cfg)

	got := FromContext[EngineConfig](ctx)
	require.Equal(t, "warn", got.LogLevel)
}

func TestFromContext_MissingReturnsZeroValue(t *testing.T) {
	got := FromContext[EngineConfig](context.Background())
	require.Equal(t, EngineConfig{}, got)
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
StrictByDefault = true
DefaultPluralRule = "SLAVIC"
ResolverCacheSize = 256
`), 0o644))

	var cfg EngineConfig
	require.NoError(t, LoadTOML(path, &cfg))
	require.True(t, cfg.StrictByDefault)
	require.Equal(t, "SLAVIC", cfg.DefaultPluralRule)
	require.Equal(t, 256, cfg.ResolverCacheSize)
}
