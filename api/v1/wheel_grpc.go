// Package v1 declares the wheel.v1.WheelService gRPC service. Messages are
// protobuf well-known types so no generated message code is needed:
// requests carry a JSON response document in a BytesValue, BuildLayout
// answers with the layout as a Struct and RenderWheel with the PNG bytes.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "wheel.v1.WheelService"

	WheelService_BuildLayout_FullMethodName = "/wheel.v1.WheelService/BuildLayout"
	WheelService_RenderWheel_FullMethodName = "/wheel.v1.WheelService/RenderWheel"
)

// WheelServiceClient is the client API for WheelService.
type WheelServiceClient interface {
	BuildLayout(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	RenderWheel(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type wheelServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWheelServiceClient(cc grpc.ClientConnInterface) WheelServiceClient {
	return &wheelServiceClient{cc}
}

func (c *wheelServiceClient) BuildLayout(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, WheelService_BuildLayout_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *wheelServiceClient) RenderWheel(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, WheelService_RenderWheel_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// WheelServiceServer is the server API for WheelService.
// Implementations must embed UnimplementedWheelServiceServer.
type WheelServiceServer interface {
	BuildLayout(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error)
	RenderWheel(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	mustEmbedUnimplementedWheelServiceServer()
}

type UnimplementedWheelServiceServer struct{}

func (UnimplementedWheelServiceServer) BuildLayout(context.Context, *wrapperspb.BytesValue) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method BuildLayout not implemented")
}

func (UnimplementedWheelServiceServer) RenderWheel(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RenderWheel not implemented")
}

func (UnimplementedWheelServiceServer) mustEmbedUnimplementedWheelServiceServer() {}

func RegisterWheelServiceServer(s grpc.ServiceRegistrar, srv WheelServiceServer) {
	s.RegisterService(&WheelService_ServiceDesc, srv)
}

func _WheelService_BuildLayout_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WheelServiceServer).BuildLayout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: WheelService_BuildLayout_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WheelServiceServer).BuildLayout(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _WheelService_RenderWheel_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WheelServiceServer).RenderWheel(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: WheelService_RenderWheel_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(WheelServiceServer).RenderWheel(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// WheelService_ServiceDesc is the grpc.ServiceDesc for WheelService.
var WheelService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WheelServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "BuildLayout",
			Handler:    _WheelService_BuildLayout_Handler,
		},
		{
			MethodName: "RenderWheel",
			Handler:    _WheelService_RenderWheel_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wheel/v1/wheel.proto",
}
