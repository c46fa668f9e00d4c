// Package config loads and validates the loopify configuration file.
//
// Configuration is TOML with three sections:
//   - [tools]: ffmpeg and ffprobe binary names or paths
//   - [output]: default destination suffix and overwrite behavior
//   - [logging]: log level and output format
//
// Load resolves an explicit path, then ~/.config/loopify/config.toml, then a
// project-local loopify.toml; missing files fall back to defaults.
package config
