// Package middleware provides the gateway's HTTP middleware.
//
//   - CORS: browser origins from configuration (GET only, the API is read-only)
//   - RateLimit: per-IP token bucket with idle-client eviction
//   - Logger: structured access log tagged with the request and trace ids
//   - Recovery: panics become a 500 with a JSON detail
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORS.Origins)))
//	router.Use(middleware.RateLimit(middleware.RateLimitConfig{RequestsPerSecond: 100, Burst: 200}))
package middleware
