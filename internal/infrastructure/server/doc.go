// Package server assembles the two processes of the file browser.
//
// The Accessor owns the directory root and exposes it over gRPC next to the
// standard health service. The Gateway dials the Accessor and serves the
// JSON file API behind this middleware chain:
//
//	Recovery -> tracing -> metrics -> access log -> CORS -> rate limit -> handlers
//
// Responses are gzip-compressed when the client accepts it.
//
// Lifecycle:
//
//	acc, err := server.NewAccessor(cfg, logger)
//	go acc.Run(ctx)
//
//	gw, err := server.NewGateway(cfg, logger)
//	defer gw.Close()
//	err = gw.Run(ctx) // returns after ctx is done and requests have drained
package server
