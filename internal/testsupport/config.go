package testsupport

import (
	"path/filepath"
	"testing"

	"recipebox/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// File logging is disabled; tests that need it set Paths.LogDir themselves.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSearchLimit overrides the search result cap.
func WithSearchLimit(limit int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.SearchLimit = limit
	}
}

// WithDefaultCookbook overrides the name seeded on first open.
func WithDefaultCookbook(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Store.DefaultCookbook = name
	}
}

// WithLimits replaces the per-request limits.
func WithLimits(limits config.Limits) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Limits = limits
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
