package grpcsaid

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// SAIDServer is the server API for the SAID gRPC service.
//
// We intentionally use protobuf well-known wrapper types so this package
// does not require a protoc/codegen toolchain. Requests carry the SAD
// as JSON bytes; key order in the JSON document is significant.
//
// Proto definition: said.proto.
type SAIDServer interface {
	// Saidify returns the full SAD with the computed SAID embedded.
	Saidify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	// Said returns only the qualified SAID for the submitted SAD.
	Said(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error)
	// Verify checks the embedded SAID of the submitted SAD.
	Verify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error)
}

// UnimplementedSAIDServer can be embedded to have forward compatible implementations.
type UnimplementedSAIDServer struct{}

func (UnimplementedSAIDServer) Saidify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Saidify not implemented")
}
func (UnimplementedSAIDServer) Said(context.Context, *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Said not implemented")
}
func (UnimplementedSAIDServer) Verify(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Verify not implemented")
}

// RegisterSAIDServer registers the SAID service on a gRPC server.
func RegisterSAIDServer(s grpc.ServiceRegistrar, srv SAIDServer) {
	s.RegisterService(&SAID_ServiceDesc, srv)
}

// SAIDClient is the client API for the SAID gRPC service.
type SAIDClient interface {
	Saidify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Said(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Verify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
}

type saidClient struct{ cc grpc.ClientConnInterface }

func NewSAIDClient(cc grpc.ClientConnInterface) SAIDClient { return &saidClient{cc: cc} }

func (c *saidClient) Saidify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, "/xdao.said.grpcsaid.v1.SAID/Saidify", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *saidClient) Said(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/xdao.said.grpcsaid.v1.SAID/Said", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *saidClient) Verify(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	err := c.cc.Invoke(ctx, "/xdao.said.grpcsaid.v1.SAID/Verify", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _SAID_Saidify_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SAIDServer).Saidify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.said.grpcsaid.v1.SAID/Saidify"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SAIDServer).Saidify(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SAID_Said_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SAIDServer).Said(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.said.grpcsaid.v1.SAID/Said"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SAIDServer).Said(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _SAID_Verify_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SAIDServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/xdao.said.grpcsaid.v1.SAID/Verify"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SAIDServer).Verify(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// SAID_ServiceDesc is the grpc.ServiceDesc for the SAID service.
var SAID_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "xdao.said.grpcsaid.v1.SAID",
	HandlerType: (*SAIDServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Saidify", Handler: _SAID_Saidify_Handler},
		{MethodName: "Said", Handler: _SAID_Said_Handler},
		{MethodName: "Verify", Handler: _SAID_Verify_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "said.proto",
}
