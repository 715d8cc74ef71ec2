/*
Package tracing provides lightweight request tracing across the gateway and
the accessor.

A trace starts at the gateway's HTTP middleware (or continues one named by the
X-Trace-ID / X-Span-ID request headers), crosses the gRPC hop in metadata, and
ends in the accessor's server interceptor. Finished spans are logged by a
buffered background collector; Close flushes it.

	tracer := tracing.New("gateway", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))
	conn, err := grpc.NewClient(addr,
		grpc.WithChainUnaryInterceptor(tracing.GRPCClientInterceptor(tracer)),
	)

IDs are prefixed ULIDs from the id package (trace_*, span_*).
*/
package tracing
