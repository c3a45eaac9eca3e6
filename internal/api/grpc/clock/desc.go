package clock

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "alarmclock.v1.ClockService"

// Method names of the clock service.
const (
	MethodGetState     = "GetState"
	MethodStart        = "Start"
	MethodStop         = "Stop"
	MethodToggleFormat = "ToggleFormat"
	MethodSetAlarm     = "SetAlarm"
	MethodClearAlarm   = "ClearAlarm"
)

// ClockServiceServer is the server API for the clock service.
type ClockServiceServer interface {
	GetState(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Start(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Stop(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	ToggleFormat(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	SetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	ClearAlarm(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ServiceDesc describes the clock service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodGetState, ClockServiceServer.GetState),
		unary(MethodStart, ClockServiceServer.Start),
		unary(MethodStop, ClockServiceServer.Stop),
		unary(MethodToggleFormat, ClockServiceServer.ToggleFormat),
		unary(MethodSetAlarm, ClockServiceServer.SetAlarm),
		unary(MethodClearAlarm, ClockServiceServer.ClearAlarm),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarmclock/v1/clock.proto",
}

// RegisterClockServiceServer registers srv on registrar.
func RegisterClockServiceServer(registrar grpc.ServiceRegistrar, srv ClockServiceServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// unary builds a method descriptor that decodes a Req and calls call.
func unary[Req any, PReq interface {
	*Req
	proto.Message
}](
	method string,
	call func(ClockServiceServer, context.Context, PReq) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(
			srv any,
			ctx context.Context,
			dec func(any) error,
			interceptor grpc.UnaryServerInterceptor,
		) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req any) (any, error) {
				//nolint:forcetypeassert // grpc only registers ClockServiceServer implementations here.
				return call(srv.(ClockServiceServer), ctx, req.(PReq))
			}

			if interceptor == nil {
				return handler(ctx, in)
			}

			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}

			return interceptor(ctx, in, info, handler)
		},
	}
}
