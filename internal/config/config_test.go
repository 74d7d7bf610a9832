package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"dronesort/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("DRONESORT_SOURCE_DIR", "")
	t.Setenv("DRONESORT_DEST_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "dronesort")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.SourceDir != "" || cfg.Paths.DestDir != "" {
		t.Fatalf("expected empty default source/dest, got %q / %q", cfg.Paths.SourceDir, cfg.Paths.DestDir)
	}
	if !cfg.Copy.OverwriteExisting {
		t.Fatal("expected overwrite_existing enabled by default")
	}
	if !cfg.Copy.PreserveTimes {
		t.Fatal("expected preserve_times enabled by default")
	}
	if cfg.CopyBufferSize() != 1024*1024 {
		t.Fatalf("unexpected copy buffer size: %d", cfg.CopyBufferSize())
	}
	if !cfg.History.Enabled || cfg.History.ListLimit != 20 {
		t.Fatalf("unexpected history defaults: %+v", cfg.History)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.StateDir)
	if err != nil {
		t.Fatalf("expected state dir to exist: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Paths.StateDir)
	}
	if filepath.Dir(cfg.HistoryPath()) != cfg.Paths.StateDir || filepath.Dir(cfg.LockPath()) != cfg.Paths.StateDir {
		t.Fatalf("expected state files under %q", cfg.Paths.StateDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "dronesort.toml")

	type payload struct {
		Paths struct {
			SourceDir string `toml:"source_dir"`
			DestDir   string `toml:"dest_dir"`
			StateDir  string `toml:"state_dir"`
		} `toml:"paths"`
		Copy struct {
			BufferKiB         int  `toml:"buffer_kib"`
			OverwriteExisting bool `toml:"overwrite_existing"`
		} `toml:"copy"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.SourceDir = filepath.Join(tempDir, "card")
	custom.Paths.DestDir = filepath.Join(tempDir, "videos")
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Copy.BufferKiB = 256
	custom.Copy.OverwriteExisting = false
	custom.Logging.Format = "JSON"
	custom.Logging.Level = " Debug "

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.SourceDir != custom.Paths.SourceDir || cfg.Paths.DestDir != custom.Paths.DestDir {
		t.Fatalf("unexpected paths: %+v", cfg.Paths)
	}
	if cfg.CopyBufferSize() != 256*1024 {
		t.Fatalf("unexpected buffer size: %d", cfg.CopyBufferSize())
	}
	if cfg.Copy.OverwriteExisting {
		t.Fatal("expected overwrite_existing=false from file")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging settings, got %+v", cfg.Logging)
	}
}

func TestLoadUsesEnvFallbacks(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("DRONESORT_SOURCE_DIR", filepath.Join(tempDir, "card"))
	t.Setenv("DRONESORT_DEST_DIR", filepath.Join(tempDir, "videos"))

	cfg, _, _, err := config.Load(filepath.Join(tempDir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.SourceDir != filepath.Join(tempDir, "card") {
		t.Fatalf("expected source dir from env, got %q", cfg.Paths.SourceDir)
	}
	if cfg.Paths.DestDir != filepath.Join(tempDir, "videos") {
		t.Fatalf("expected dest dir from env, got %q", cfg.Paths.DestDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative buffer", func(c *config.Config) { c.Copy.BufferKiB = -1 }, "copy.buffer_kib"},
		{"huge buffer", func(c *config.Config) { c.Copy.BufferKiB = 1 << 30 }, "copy.buffer_kib"},
		{"unknown format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"unknown level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"same source and dest", func(c *config.Config) {
			c.Paths.SourceDir = "/media/card"
			c.Paths.DestDir = "/media/card"
		}, "must differ"},
		{"missing state dir", func(c *config.Config) { c.Paths.StateDir = "" }, "paths.state_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.StateDir = "/tmp/dronesort"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("DRONESORT_SOURCE_DIR", "")
	t.Setenv("DRONESORT_DEST_DIR", "")
	target := filepath.Join(tempDir, "nested", "config.toml")

	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Paths.StateDir != filepath.Join(tempDir, ".local", "share", "dronesort") {
		t.Fatalf("unexpected state dir from sample: %q", cfg.Paths.StateDir)
	}
}
