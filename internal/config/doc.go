// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It covers the cloakroom layout (locker
// count and per-locker capacity) as well as the HTTP server settings.
package config
