// Package config holds the engine's own configuration: how strict/non-strict
// loading defaults, cache backends, and observability toggles are wired up.
// This is deliberately separate from the catalog file format itself (spec §6)
// — it configures the Go process embedding the engine, not the catalog data.
package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
)

type contextKey string

func (c contextKey) String() string {
	return "catalog/config/" + string(c)
}

const ctxKeyConfiguration = contextKey("configurationKey")

// ToContext adds an engine configuration value to the supplied context.
func ToContext(ctx context.Context, cfg any) context.Context {
	return context.WithValue(ctx, ctxKeyConfiguration, cfg)
}

// FromContext extracts a typed configuration value from the supplied context, if any.
func FromContext[T any](ctx context.Context) T {
	if cfg, ok := ctx.Value(ctxKeyConfiguration).(T); ok {
		return cfg
	}
	var zero T
	return zero
}

// FromEnv parses T from environment variables using struct `env` tags.
func FromEnv[T any]() (T, error) {
	return env.ParseAs[T]()
}

// FillEnv fills an existing config value from environment variables.
func FillEnv(v any) error {
	return env.Parse(v)
}

// EngineConfig is the default configuration struct for a catalog Engine. It
// is loaded either from the environment (FromEnv) or from a TOML file
// (LoadTOML, config_toml.go), mirroring the teacher's config-from-file /
// config-from-env duality.
type EngineConfig struct {
	// StrictByDefault is a default strict flag for the embedding process.
	// The Engine does not read it: Reload() reuses the strict flag of the
	// last successful LoadFile call.
	StrictByDefault bool `env:"CATALOG_STRICT" envDefault:"false"`

	// DefaultPluralRule names a plural rule. The Engine does not read it: a
	// text catalog with no @meta plural directive loads with RuleDefault.
	DefaultPluralRule string `env:"CATALOG_PLURAL_RULE" envDefault:"DEFAULT"`

	// ResolverCacheSize bounds the in-memory LRU resolver cache (0 disables it).
	ResolverCacheSize int `env:"CATALOG_CACHE_SIZE" envDefault:"4096"`

	// RedisAddr names a Redis server for the resolver cache. NewEngine does
	// not read it; the Engine uses a Redis-backed cache only when one is
	// installed with WithResolverCache.
	RedisAddr string `env:"CATALOG_REDIS_ADDR" envDefault:""`

	// NATSURL names a NATS server for reload notifications (see package
	// event). NewEngine does not read it; notifications are published only
	// when WithReloadNotifier is passed.
	NATSURL string `env:"CATALOG_NATS_URL" envDefault:""`

	// EnableTelemetry is an OpenTelemetry instrumentation toggle. NewEngine
	// does not read it; instrumentation is installed only by WithTelemetry.
	EnableTelemetry bool `env:"CATALOG_TELEMETRY" envDefault:"false"`

	// LogLevel is parsed by util.ParseLevel; see logging.go.
	LogLevel string `env:"CATALOG_LOG_LEVEL" envDefault:"info"`

	// ResolverCacheTTL bounds how long a cached resolution is trusted between
	// snapshot publishes (the cache is also flushed wholesale on publish).
	ResolverCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`
}
