// Package main is the fsbrowser command.
//
// A single binary runs either half of the file browser, both halves
// together, or acts as a terminal client of a running gateway.
//
// Architecture:
//
//	Browser / fsbrowser ls → Gateway (HTTP :3000) → Accessor (gRPC :9999) → Root
//
// Server commands:
//
//	fsbrowser accessor --root /srv/data
//	fsbrowser gateway --accessor localhost:9999
//	fsbrowser serve --root /srv/data       # both in one process
//
// Client commands:
//
//	fsbrowser ls docs
//	fsbrowser cat docs/readme.md
//	fsbrowser tree --depth 2
//	fsbrowser glob '**/*.go'
//	fsbrowser health
//
// Configuration:
//   - Defaults
//   - Environment variables (GATEWAY_*, ACCESSOR_*, LOG_*, RATE_LIMIT_*, CORS_ORIGINS)
//   - --config file (YAML or TOML)
//   - CLI flags (override everything above)
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
