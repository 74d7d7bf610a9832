package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCopy(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	if c.Paths.SourceDir != "" && c.Paths.SourceDir == c.Paths.DestDir {
		return errors.New("paths.source_dir and paths.dest_dir must differ")
	}
	return nil
}

func (c *Config) validateCopy() error {
	if c.Copy.BufferKiB < 0 {
		return errors.New("copy.buffer_kib must be positive")
	}
	if c.Copy.BufferKiB > maxCopyBufferKiB {
		return fmt.Errorf("copy.buffer_kib must not exceed %d", maxCopyBufferKiB)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
