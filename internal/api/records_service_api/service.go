package records_service_api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "flightdb.RecordsService"

const (
	listRecordsMethod  = "/" + serviceName + "/ListRecords"
	countRecordsMethod = "/" + serviceName + "/CountRecords"
	createRecordMethod = "/" + serviceName + "/CreateRecord"
)

// RecordsServiceServer is the server API of flightdb.RecordsService. Requests
// and responses are protobuf well-known types:
//
//	ListRecords(Struct{table, query}) returns ListValue
//	CountRecords(StringValue) returns Int64Value
//	CreateRecord(Struct{table, record}) returns Struct
type RecordsServiceServer interface {
	ListRecords(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	CountRecords(context.Context, *wrapperspb.StringValue) (*wrapperspb.Int64Value, error)
	CreateRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*RecordsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListRecords", Handler: listRecordsHandler},
		{MethodName: "CountRecords", Handler: countRecordsHandler},
		{MethodName: "CreateRecord", Handler: createRecordHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flightdb/records.proto",
}

func RegisterRecordsServiceServer(s grpc.ServiceRegistrar, srv RecordsServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func listRecordsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordsServiceServer).ListRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listRecordsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecordsServiceServer).ListRecords(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func countRecordsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordsServiceServer).CountRecords(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: countRecordsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecordsServiceServer).CountRecords(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func createRecordHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RecordsServiceServer).CreateRecord(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: createRecordMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RecordsServiceServer).CreateRecord(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// RecordsServiceClient is the client API of flightdb.RecordsService.
type RecordsServiceClient interface {
	ListRecords(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	CountRecords(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	CreateRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type recordsServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewRecordsServiceClient(cc grpc.ClientConnInterface) RecordsServiceClient {
	return &recordsServiceClient{cc: cc}
}

func (c *recordsServiceClient) ListRecords(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listRecordsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordsServiceClient) CountRecords(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, countRecordsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *recordsServiceClient) CreateRecord(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, createRecordMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
