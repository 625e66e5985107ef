// Package logging constructs the slog loggers used across osrcdl.
//
// It offers a console handler for interactive use and a JSON handler for
// machine consumption, selected through configuration. Attribute helpers
// keep call sites terse and consistent.
package logging
