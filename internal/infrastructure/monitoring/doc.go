/*
Package monitoring provides Prometheus metrics for the gateway and accessor.

# Metrics

- HTTP requests by route template and status
- gRPC calls on both sides of the gateway/accessor hop, by status code
- Accessor operations by outcome (ok, soft_error, denied, error)
- Circuit breaker state and process uptime

Every Metrics value owns a private registry, so a gateway and an accessor can
share one process without duplicate registration.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "list")
	// ... perform operation ...
	timer.Stop(monitoring.OutcomeOK)
*/
package monitoring
