// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.6.0
// - protoc             (unknown)
// source: entitlements/v1/entitlements.proto

package entitlementsv1

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	EntitlementsService_GetEntitlements_FullMethodName = "/entitlements.v1.EntitlementsService/GetEntitlements"
)

// EntitlementsServiceClient is the client API for EntitlementsService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// EntitlementsService resolves a salon's subscription limits. Served by
// the billing service; consulted synchronously when cached projections
// are missing.
type EntitlementsServiceClient interface {
	GetEntitlements(ctx context.Context, in *EntitlementsRequest, opts ...grpc.CallOption) (*EntitlementsResponse, error)
}

type entitlementsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEntitlementsServiceClient(cc grpc.ClientConnInterface) EntitlementsServiceClient {
	return &entitlementsServiceClient{cc}
}

func (c *entitlementsServiceClient) GetEntitlements(ctx context.Context, in *EntitlementsRequest, opts ...grpc.CallOption) (*EntitlementsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(EntitlementsResponse)
	err := c.cc.Invoke(ctx, EntitlementsService_GetEntitlements_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EntitlementsServiceServer is the server API for EntitlementsService service.
// All implementations must embed UnimplementedEntitlementsServiceServer
// for forward compatibility.
//
// EntitlementsService resolves a salon's subscription limits. Served by
// the billing service; consulted synchronously when cached projections
// are missing.
type EntitlementsServiceServer interface {
	GetEntitlements(context.Context, *EntitlementsRequest) (*EntitlementsResponse, error)
	mustEmbedUnimplementedEntitlementsServiceServer()
}

// UnimplementedEntitlementsServiceServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedEntitlementsServiceServer struct{}

func (UnimplementedEntitlementsServiceServer) GetEntitlements(context.Context, *EntitlementsRequest) (*EntitlementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEntitlements not implemented")
}
func (UnimplementedEntitlementsServiceServer) mustEmbedUnimplementedEntitlementsServiceServer() {}
func (UnimplementedEntitlementsServiceServer) testEmbeddedByValue()                             {}

// UnsafeEntitlementsServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to EntitlementsServiceServer will
// result in compilation errors.
type UnsafeEntitlementsServiceServer interface {
	mustEmbedUnimplementedEntitlementsServiceServer()
}

func RegisterEntitlementsServiceServer(s grpc.ServiceRegistrar, srv EntitlementsServiceServer) {
	// If the following call panics, it indicates UnimplementedEntitlementsServiceServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&EntitlementsService_ServiceDesc, srv)
}

func _EntitlementsService_GetEntitlements_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EntitlementsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EntitlementsServiceServer).GetEntitlements(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EntitlementsService_GetEntitlements_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(EntitlementsServiceServer).GetEntitlements(ctx, req.(*EntitlementsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// EntitlementsService_ServiceDesc is the grpc.ServiceDesc for EntitlementsService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var EntitlementsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "entitlements.v1.EntitlementsService",
	HandlerType: (*EntitlementsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetEntitlements",
			Handler:    _EntitlementsService_GetEntitlements_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "entitlements/v1/entitlements.proto",
}
