// Package config loads, normalizes, and validates osrcdl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OSRCDL_BASE_URL. The Config type centralizes every knob the CLI needs:
// portal endpoints, download directory, chunk sizing, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
