package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"dronesort/internal/config"
	"dronesort/internal/history"
	"dronesort/internal/logging"
	"dronesort/internal/organizer"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openRecorder returns the history ledger as a run recorder, or nil when
// history is disabled. The returned close func is always safe to call.
func (c *commandContext) openRecorder() (organizer.Recorder, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, func() {}, err
	}
	if !cfg.History.Enabled {
		return nil, func() {}, nil
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open history: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// resolveDirs picks the source and destination directories from positional
// arguments, falling back to the configured paths.
func (c *commandContext) resolveDirs(args []string) (string, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", "", err
	}
	source, err := pickDir(args, 0, cfg.Paths.SourceDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve source directory: %w", err)
	}
	dest, err := pickDir(args, 1, cfg.Paths.DestDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve destination directory: %w", err)
	}
	switch {
	case source == "":
		return "", "", errors.New("no source directory: pass it as the first argument or set paths.source_dir")
	case dest == "":
		return "", "", errors.New("no destination directory: pass it as the second argument or set paths.dest_dir")
	}
	return source, dest, nil
}

func pickDir(args []string, index int, fallback string) (string, error) {
	if index < len(args) && strings.TrimSpace(args[index]) != "" {
		return config.ExpandPath(strings.TrimSpace(args[index]))
	}
	return fallback, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
