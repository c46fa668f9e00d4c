// Package logging constructs slog loggers for the CLI.
//
// Two output formats are supported: "console" (human-readable text) and
// "json" (machine-readable, one object per line). Component loggers carry a
// standardized attribute so pipeline stages can be filtered in output.
package logging
