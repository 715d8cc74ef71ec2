package fileservice

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "fsbrowser.v1.FileService"

const (
	FileService_ListDirectory_FullMethodName = "/fsbrowser.v1.FileService/ListDirectory"
	FileService_ReadFile_FullMethodName      = "/fsbrowser.v1.FileService/ReadFile"
	FileService_Walk_FullMethodName          = "/fsbrowser.v1.FileService/Walk"
	FileService_Glob_FullMethodName          = "/fsbrowser.v1.FileService/Glob"
)

// FileServiceClient is the client API for FileService.
type FileServiceClient interface {
	ListDirectory(ctx context.Context, in *PathRequest, opts ...grpc.CallOption) (*EntriesReply, error)
	ReadFile(ctx context.Context, in *PathRequest, opts ...grpc.CallOption) (*ContentReply, error)
	Walk(ctx context.Context, in *WalkRequest, opts ...grpc.CallOption) (*EntriesReply, error)
	Glob(ctx context.Context, in *GlobRequest, opts ...grpc.CallOption) (*EntriesReply, error)
}

type fileServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewFileServiceClient creates a FileService stub. Every call is sent with the
// JSON content-subtype; other services on the same connection keep protobuf.
func NewFileServiceClient(cc grpc.ClientConnInterface) FileServiceClient {
	return &fileServiceClient{cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *fileServiceClient) ListDirectory(ctx context.Context, in *PathRequest, opts ...grpc.CallOption) (*EntriesReply, error) {
	out := new(EntriesReply)
	err := c.cc.Invoke(ctx, FileService_ListDirectory_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServiceClient) ReadFile(ctx context.Context, in *PathRequest, opts ...grpc.CallOption) (*ContentReply, error) {
	out := new(ContentReply)
	err := c.cc.Invoke(ctx, FileService_ReadFile_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServiceClient) Walk(ctx context.Context, in *WalkRequest, opts ...grpc.CallOption) (*EntriesReply, error) {
	out := new(EntriesReply)
	err := c.cc.Invoke(ctx, FileService_Walk_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *fileServiceClient) Glob(ctx context.Context, in *GlobRequest, opts ...grpc.CallOption) (*EntriesReply, error) {
	out := new(EntriesReply)
	err := c.cc.Invoke(ctx, FileService_Glob_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FileServiceServer is the server API for FileService.
type FileServiceServer interface {
	ListDirectory(context.Context, *PathRequest) (*EntriesReply, error)
	ReadFile(context.Context, *PathRequest) (*ContentReply, error)
	Walk(context.Context, *WalkRequest) (*EntriesReply, error)
	Glob(context.Context, *GlobRequest) (*EntriesReply, error)
}

// UnimplementedFileServiceServer returns Unimplemented for every method.
type UnimplementedFileServiceServer struct{}

func (UnimplementedFileServiceServer) ListDirectory(context.Context, *PathRequest) (*EntriesReply, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDirectory not implemented")
}
func (UnimplementedFileServiceServer) ReadFile(context.Context, *PathRequest) (*ContentReply, error) {
	return nil, status.Error(codes.Unimplemented, "method ReadFile not implemented")
}
func (UnimplementedFileServiceServer) Walk(context.Context, *WalkRequest) (*EntriesReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Walk not implemented")
}
func (UnimplementedFileServiceServer) Glob(context.Context, *GlobRequest) (*EntriesReply, error) {
	return nil, status.Error(codes.Unimplemented, "method Glob not implemented")
}

// RegisterFileServiceServer registers srv on s
func RegisterFileServiceServer(s grpc.ServiceRegistrar, srv FileServiceServer) {
	s.RegisterService(&FileService_ServiceDesc, srv)
}

func _FileService_ListDirectory_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PathRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServiceServer).ListDirectory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FileService_ListDirectory_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServiceServer).ListDirectory(ctx, req.(*PathRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FileService_ReadFile_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PathRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServiceServer).ReadFile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FileService_ReadFile_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServiceServer).ReadFile(ctx, req.(*PathRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FileService_Walk_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WalkRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServiceServer).Walk(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FileService_Walk_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServiceServer).Walk(ctx, req.(*WalkRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _FileService_Glob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GlobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(FileServiceServer).Glob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: FileService_Glob_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(FileServiceServer).Glob(ctx, req.(*GlobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// FileService_ServiceDesc is the grpc.ServiceDesc for FileService.
var FileService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDirectory", Handler: _FileService_ListDirectory_Handler},
		{MethodName: "ReadFile", Handler: _FileService_ReadFile_Handler},
		{MethodName: "Walk", Handler: _FileService_Walk_Handler},
		{MethodName: "Glob", Handler: _FileService_Glob_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fsbrowser/v1/fileservice",
}
