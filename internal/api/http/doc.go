// Package http implements the gateway's HTTP API.
//
// Endpoints:
//   - GET /api/files/list?path=       directory listing
//   - GET /api/files/read?path=       file content (path required)
//   - GET /api/files/walk?path=&max_depth=
//   - GET /api/files/glob?pattern=
//   - GET /, /health, /metrics, /metrics/json
//
// Soft failures are 200 responses with an {"error": "..."} body. Hard
// failures (access denied, accessor unreachable) are 500 responses with a
// {"detail": "..."} body. Missing or malformed query parameters are 422.
package http
