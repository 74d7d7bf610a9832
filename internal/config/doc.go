// Package config loads, normalizes, and validates dronesort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DRONESORT_SOURCE_DIR. The Config type centralizes every knob the organizer
// and CLI need so source, destination, and state directories are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
