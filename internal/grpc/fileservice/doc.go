// Package fileservice carries the file accessor over gRPC.
//
// Messages are plain Go structs encoded as JSON by a codec registered under
// the "json" content subtype, so no generated protobuf code is needed. The
// service descriptor is written by hand in the shape protoc-gen-go-grpc
// would emit.
//
// Failure channels:
//   - Soft failures travel inside the reply as an error field.
//   - Access denied travels as codes.PermissionDenied.
//   - Everything else is codes.Internal, or the transport's own code.
//
// Server side:
//
//	srv := grpc.NewServer()
//	fileservice.RegisterFileServiceServer(srv, fileservice.NewServer(accessor, logger, metrics))
//
// Client side:
//
//	c, err := fileservice.Dial("localhost:9999", fileservice.Options{Logger: logger})
//	res, err := c.ListDirectory(ctx, "docs")
//
// The client guards calls with a circuit breaker that only counts transport
// faults, and implements types.FileAccessor.
package fileservice
