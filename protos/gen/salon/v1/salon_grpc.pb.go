// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.6.0
// - protoc             (unknown)
// source: salon/v1/salon.proto

package salonv1

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
	SalonService_GetDayAvailability_FullMethodName = "/salon.v1.SalonService/GetDayAvailability"
	SalonService_GetSalonLimits_FullMethodName     = "/salon.v1.SalonService/GetSalonLimits"
)

// SalonServiceClient is the client API for SalonService service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// SalonService exposes read paths other services need synchronously:
// staff availability for slot computation and subscription limits for
// booking admission.
type SalonServiceClient interface {
	GetDayAvailability(ctx context.Context, in *DayAvailabilityRequest, opts ...grpc.CallOption) (*DayAvailabilityResponse, error)
	GetSalonLimits(ctx context.Context, in *SalonLimitsRequest, opts ...grpc.CallOption) (*SalonLimitsResponse, error)
}

type salonServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSalonServiceClient(cc grpc.ClientConnInterface) SalonServiceClient {
	return &salonServiceClient{cc}
}

func (c *salonServiceClient) GetDayAvailability(ctx context.Context, in *DayAvailabilityRequest, opts ...grpc.CallOption) (*DayAvailabilityResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(DayAvailabilityResponse)
	err := c.cc.Invoke(ctx, SalonService_GetDayAvailability_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *salonServiceClient) GetSalonLimits(ctx context.Context, in *SalonLimitsRequest, opts ...grpc.CallOption) (*SalonLimitsResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(SalonLimitsResponse)
	err := c.cc.Invoke(ctx, SalonService_GetSalonLimits_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SalonServiceServer is the server API for SalonService service.
// All implementations must embed UnimplementedSalonServiceServer
// for forward compatibility.
//
// SalonService exposes read paths other services need synchronously:
// staff availability for slot computation and subscription limits for
// booking admission.
type SalonServiceServer interface {
	GetDayAvailability(context.Context, *DayAvailabilityRequest) (*DayAvailabilityResponse, error)
	GetSalonLimits(context.Context, *SalonLimitsRequest) (*SalonLimitsResponse, error)
	mustEmbedUnimplementedSalonServiceServer()
}

// UnimplementedSalonServiceServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedSalonServiceServer struct{}

func (UnimplementedSalonServiceServer) GetDayAvailability(context.Context, *DayAvailabilityRequest) (*DayAvailabilityResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDayAvailability not implemented")
}
func (UnimplementedSalonServiceServer) GetSalonLimits(context.Context, *SalonLimitsRequest) (*SalonLimitsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalonLimits not implemented")
}
func (UnimplementedSalonServiceServer) mustEmbedUnimplementedSalonServiceServer() {}
func (UnimplementedSalonServiceServer) testEmbeddedByValue()                      {}

// UnsafeSalonServiceServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to SalonServiceServer will
// result in compilation errors.
type UnsafeSalonServiceServer interface {
	mustEmbedUnimplementedSalonServiceServer()
}

func RegisterSalonServiceServer(s grpc.ServiceRegistrar, srv SalonServiceServer) {
	// If the following call panics, it indicates UnimplementedSalonServiceServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&SalonService_ServiceDesc, srv)
}

func _SalonService_GetDayAvailability_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DayAvailabilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SalonServiceServer).GetDayAvailability(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SalonService_GetDayAvailability_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SalonServiceServer).GetDayAvailability(ctx, req.(*DayAvailabilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SalonService_GetSalonLimits_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SalonLimitsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SalonServiceServer).GetSalonLimits(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SalonService_GetSalonLimits_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SalonServiceServer).GetSalonLimits(ctx, req.(*SalonLimitsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SalonService_ServiceDesc is the grpc.ServiceDesc for SalonService service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var SalonService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "salon.v1.SalonService",
	HandlerType: (*SalonServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetDayAvailability",
			Handler:    _SalonService_GetDayAvailability_Handler,
		},
		{
			MethodName: "GetSalonLimits",
			Handler:    _SalonService_GetSalonLimits_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "salon/v1/salon.proto",
}
