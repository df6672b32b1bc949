package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pitabwire/util"

	"github.com/pitabwire/catalog/cache"
	"github.com/pitabwire/catalog/config"
	"github.com/pitabwire/catalog/event"
	"github.com/pitabwire/catalog/telemetry"
)

// Option configures an Engine at construction time, mirroring the teacher's
// functional-option Service pattern.
type Option func(*Engine)

// Engine is the facade spec.md §6 describes: load/reload a catalog, query
// it, export it, and inspect its last error. A zero-value Engine is not
// usable; construct one with NewEngine.
type Engine struct {
	name   string
	config config.EngineConfig
	logger *util.LogEntry

	handle snapshotHandle

	resolverCache cache.RawCache
	notifier      *event.Notifier
	telemetry     *telemetry.Recorder

	mu         sync.Mutex
	lastErr    error
	lastPath   string
	lastStrict bool
}

// WithName sets the engine's identifying name, used in log fields and
// reload-notification payloads.
func WithName(name string) Option {
	return func(e *Engine) { e.name = name }
}

// WithConfig overrides the engine's default configuration wholesale.
func WithConfig(cfg config.EngineConfig) Option {
	return func(e *Engine) { e.config = cfg }
}

// WithResolverCache installs a caller-supplied resolver memoization cache,
// overriding whatever EngineConfig.ResolverCacheSize would have built.
func WithResolverCache(c cache.RawCache) Option {
	return func(e *Engine) { e.resolverCache = c }
}

// WithReloadNotifier installs a NATS-backed publisher that emits a
// ReloadEvent on every successful LoadBytes/LoadFile/Reload. Connection
// failures are logged and leave the engine without a notifier rather than
// failing construction, since notification is a pure side effect.
func WithReloadNotifier(natsURL, subject string) Option {
	return func(e *Engine) {
		n, err := event.NewNotifier(natsURL, subject)
		if err != nil {
			e.Log(context.Background()).WithError(err).Warn("reload notifier disabled: connect failed")
			return
		}
		e.notifier = n
	}
}

// WithTelemetry installs an OpenTelemetry recorder built against whatever
// global MeterProvider/TracerProvider the embedding process has configured.
func WithTelemetry() Option {
	return func(e *Engine) { e.telemetry = telemetry.NewRecorder() }
}

// NewEngine constructs an Engine with default configuration, then applies
// opts in order. Options that need defaulted fields (e.g. WithLogger
// reading e.config.LogLevel) should be passed after any WithConfig call.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		name: "catalog",
		config: config.EngineConfig{
			StrictByDefault:   false,
			DefaultPluralRule: "DEFAULT",
			ResolverCacheSize: 4096,
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = util.NewLogger(context.Background())
	}

	if e.resolverCache == nil && e.config.ResolverCacheSize > 0 {
		if c, err := cache.NewLRUCache(e.config.ResolverCacheSize); err == nil {
			e.resolverCache = c
		}
	}

	return e
}

// LoadBytes parses src (auto-detecting the binary vs. text catalog format,
// spec §6 "Format detection") and, on success, publishes the resulting
// snapshot. It returns false and records the failure in LastError()
// otherwise. An unloaded engine has no effect on in-flight Translate calls
// from other goroutines (spec §5).
func (e *Engine) LoadBytes(src []byte, strict bool) bool {
	var snap *CatalogSnapshot
	var err error

	if sniffBinary(src) {
		snap, err = parseBinary(src, strict)
	} else {
		snap, err = parseText(src, strict)
	}

	if err != nil {
		e.setLastError(err)
		e.Log(context.Background()).WithError(err).Warn("catalog load failed")
		return false
	}

	if localeErr := validateLocaleTags(snap.metadata); localeErr != nil {
		if strict {
			e.setLastError(localeErr)
			e.Log(context.Background()).WithError(localeErr).Warn("catalog load failed")
			return false
		}
		e.Log(context.Background()).WithError(localeErr).Warn("catalog loaded with locale warning")
	}

	e.handle.publish(snap)
	e.setLastError(nil)
	e.flushResolverCache()
	e.notifyReload(snap)
	e.recordLoadMetric(snap)

	e.mu.Lock()
	e.lastStrict = strict
	e.mu.Unlock()

	return true
}

// LoadFile reads path and delegates to LoadBytes, additionally remembering
// path/strict for a later Reload().
func (e *Engine) LoadFile(path string, strict bool) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		e.setLastError(err)
		e.Log(context.Background()).WithError(err).Warn("catalog file read failed")
		return false
	}

	ok := e.LoadBytes(src, strict)
	if ok {
		e.mu.Lock()
		e.lastPath = path
		e.mu.Unlock()
	}
	return ok
}

// Reload re-reads the most recently loaded file with the same strict flag.
// It fails with ErrNoFileToReload if no file-backed load has happened yet
// (an engine constructed from LoadBytes alone has nothing to reload from).
func (e *Engine) Reload() bool {
	e.mu.Lock()
	path := e.lastPath
	strict := e.lastStrict
	e.mu.Unlock()

	if path == "" {
		e.setLastError(ErrNoFileToReload)
		return false
	}
	return e.LoadFile(path, strict)
}

// Translate resolves token against the published snapshot (spec §4.3). It
// returns an empty string if no catalog has ever been loaded.
func (e *Engine) Translate(token string, args ...string) string {
	snap := e.handle.acquire()
	if snap == nil {
		return ""
	}

	folded := foldToken(token)
	key := cacheKey("t", folded, args)
	if e.resolverCache != nil {
		if cached, found := e.cacheGet(key); found {
			e.recordCacheHit()
			e.recordTranslateMetric(folded)
			return cached
		}
	}

	result := translate(snap, folded, args)
	e.cacheSet(key, result)
	e.recordTranslateMetric(folded)
	return result
}

// TranslatePlural resolves a count-qualified token (spec §4.4).
func (e *Engine) TranslatePlural(token string, count int, args ...string) string {
	snap := e.handle.acquire()
	if snap == nil {
		return ""
	}

	key := cacheKey("p:"+strconv.Itoa(count), token, args)
	if e.resolverCache != nil {
		if cached, found := e.cacheGet(key); found {
			e.recordCacheHit()
			e.recordTranslateMetric(token)
			return cached
		}
	}

	result := translatePlural(snap, token, count, args)
	e.cacheSet(key, result)
	e.recordTranslateMetric(token)
	return result
}

// NativeStyle projects a style token's declarations onto a numeric record
// (spec §4.7). A token that does not resolve to any physical property
// returns DefaultNativeStyle() with HasPhysical false.
func (e *Engine) NativeStyle(token string, args ...string) NativeStyle {
	snap := e.handle.acquire()
	if snap == nil {
		return DefaultNativeStyle()
	}
	return nativeStyleFor(snap, foldToken(token), args)
}

// DumpTable renders every loaded token, deterministically ordered (spec §6).
func (e *Engine) DumpTable() string {
	return dumpTable(e.handle.acquire())
}

// FindAny performs a case-insensitive substring search over templates and labels.
func (e *Engine) FindAny(query string) []FindResult {
	return findAny(e.handle.acquire(), query)
}

// CheckReport runs the integrity checker (spec §4.8) and returns both its
// rendered text and its process exit code.
func (e *Engine) CheckReport() (string, int) {
	snap := e.handle.acquire()
	report := checkCatalog(snap)
	e.recordCheckMetric(report)
	return report.String(), report.Code(snap != nil)
}

// ExportBinary serializes the current snapshot to the binary catalog format
// (spec §4.2) and writes it to path.
func (e *Engine) ExportBinary(path string) bool {
	snap := e.handle.acquire()
	if snap == nil {
		e.setLastError(ErrNoCatalogLoaded)
		return false
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			e.setLastError(err)
			return false
		}
	}

	data := exportBinary(snap)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		e.setLastError(err)
		return false
	}
	e.setLastError(nil)
	return true
}

// LastError returns the error from the most recent Load/Reload/Export call,
// or nil if the most recent such call succeeded (or none has happened yet).
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Locale returns the published snapshot's @meta locale, or "" if unset/unloaded.
func (e *Engine) Locale() string {
	if snap := e.handle.acquire(); snap != nil {
		return snap.metadata.Locale
	}
	return ""
}

// Fallback returns the published snapshot's @meta fallback, or "" if unset/unloaded.
func (e *Engine) Fallback() string {
	if snap := e.handle.acquire(); snap != nil {
		return snap.metadata.Fallback
	}
	return ""
}

// Note returns the published snapshot's @meta note, or "" if unset/unloaded.
func (e *Engine) Note() string {
	if snap := e.handle.acquire(); snap != nil {
		return snap.metadata.Note
	}
	return ""
}

// PluralRule returns the published snapshot's plural rule, defaulting to
// RuleDefault if unloaded.
func (e *Engine) PluralRule() PluralRule {
	if snap := e.handle.acquire(); snap != nil {
		return snap.metadata.PluralRule
	}
	return RuleDefault
}

func (e *Engine) setLastError(err error) {
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()
}

func (e *Engine) flushResolverCache() {
	if e.resolverCache == nil {
		return
	}
	if err := e.resolverCache.Flush(context.Background()); err != nil {
		e.Log(context.Background()).WithError(err).Warn("resolver cache flush failed")
	}
}

func (e *Engine) cacheGet(key string) (string, bool) {
	val, found, err := e.resolverCache.Get(context.Background(), key)
	if err != nil || !found {
		return "", false
	}
	return string(val), true
}

func (e *Engine) cacheSet(key, value string) {
	if e.resolverCache == nil {
		return
	}
	_ = e.resolverCache.Set(context.Background(), key, []byte(value), e.config.ResolverCacheTTL)
}

// cacheKey builds a resolver-cache key from an operation tag, a token and
// its argument list, joined unambiguously (args themselves may contain
// arbitrary bytes, so length-prefixing avoids delimiter collisions).
func cacheKey(kind, token string, args []string) string {
	key := kind + "|" + token
	for _, a := range args {
		key += "|" + strconv.Itoa(len(a)) + ":" + a
	}
	return key
}

func (e *Engine) notifyReload(snap *CatalogSnapshot) {
	if e.notifier == nil || snap == nil {
		return
	}
	evt := event.ReloadEvent{
		Engine:     e.name,
		TokenCount: snap.entryCount(),
		Checksum:   fnv1a32([]byte(dumpTable(snap))),
		Version:    1,
	}
	if err := e.notifier.Publish(evt); err != nil {
		e.Log(context.Background()).WithError(err).Warn("reload notification publish failed")
	}
}

func (e *Engine) recordLoadMetric(snap *CatalogSnapshot) {
	if e.telemetry == nil || snap == nil {
		return
	}
	e.telemetry.RecordLoad(context.Background(), snap.entryCount())
}

func (e *Engine) recordTranslateMetric(token string) {
	if e.telemetry == nil {
		return
	}
	e.telemetry.RecordTranslate(context.Background(), token)
}

func (e *Engine) recordCacheHit() {
	if e.telemetry == nil {
		return
	}
	e.telemetry.RecordCacheHit(context.Background())
}

func (e *Engine) recordCheckMetric(report CheckReport) {
	if e.telemetry == nil {
		return
	}
	e.telemetry.RecordCheck(context.Background(), len(report.Errors), len(report.Warnings))
}
