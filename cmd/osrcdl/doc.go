// Package main hosts the osrcdl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into portal
// operations: searching a device model's source releases and downloading a
// selected release. It centralizes configuration resolution and structured
// logging setup so subcommands can focus on user experience instead of
// wiring, and maps the download outcome to the process exit code (0 success,
// 1 failure, 130 interrupt).
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
