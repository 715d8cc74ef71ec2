// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Each component logs through a named child logger (accessor, gateway, grpc).
// Soft filesystem failures are logged at Debug, rejected paths at Warn and
// transport faults at Error.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	logger = logger.Named(logging.Gateway)
//	logger.Info("Gateway listening", zap.String("addr", ":3000"))
package logging
