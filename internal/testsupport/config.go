package testsupport

import (
	"path/filepath"
	"testing"

	"dronesort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Source, destination and state directories live under one temp root.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.SourceDir = filepath.Join(base, "source")
	cfgVal.Paths.DestDir = filepath.Join(base, "dest")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Copy.BufferKiB = 4
	cfgVal.Logging.Console = false

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

// WithBufferKiB overrides the copy chunk size.
func WithBufferKiB(kib int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Copy.BufferKiB = kib
	}
}

// WithOverwrite toggles replacing existing targets.
func WithOverwrite(overwrite bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Copy.OverwriteExisting = overwrite
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
