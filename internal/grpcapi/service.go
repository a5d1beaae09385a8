// Package grpcapi exposes frame classification over gRPC.
//
// The service is declared by hand and carries google.protobuf.Struct
// messages holding the same JSON documents the HTTP API accepts and returns:
//
//	service Occupancy {
//	  rpc Classify(google.protobuf.Struct) returns (google.protobuf.Struct);
//	}
package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName          = "slotwatch.v1.Occupancy"
	ClassifyFullMethod   = "/" + ServiceName + "/Classify"
	occupancyProtoSource = "slotwatch/v1/occupancy.proto"
)

// OccupancyServer is the server API for the Occupancy service.
type OccupancyServer interface {
	Classify(ctx context.Context, frame *structpb.Struct) (*structpb.Struct, error)
}

func RegisterOccupancyServer(s grpc.ServiceRegistrar, srv OccupancyServer) {
	s.RegisterService(&OccupancyServiceDesc, srv)
}

func classifyHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OccupancyServer).Classify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ClassifyFullMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OccupancyServer).Classify(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var OccupancyServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OccupancyServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Classify",
			Handler:    classifyHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: occupancyProtoSource,
}
