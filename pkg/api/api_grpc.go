package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Api_GetPipeline_FullMethodName       = "/arroyo_api.ApiGrpc/GetPipeline"
	Api_GetSources_FullMethodName        = "/arroyo_api.ApiGrpc/GetSources"
	Api_GetSinks_FullMethodName          = "/arroyo_api.ApiGrpc/GetSinks"
	Api_GraphForPipeline_FullMethodName  = "/arroyo_api.ApiGrpc/GraphForPipeline"
	Api_StartPipeline_FullMethodName     = "/arroyo_api.ApiGrpc/StartPipeline"
	Api_GetJobDetails_FullMethodName     = "/arroyo_api.ApiGrpc/GetJobDetails"
	Api_UpdateJob_FullMethodName         = "/arroyo_api.ApiGrpc/UpdateJob"
	Api_SubscribeToOutput_FullMethodName = "/arroyo_api.ApiGrpc/SubscribeToOutput"
	Api_GetOperatorErrors_FullMethodName = "/arroyo_api.ApiGrpc/GetOperatorErrors"
)

type ApiClient interface {
	GetPipeline(ctx context.Context, in *GetPipelineReq, opts ...grpc.CallOption) (*PipelineDef, error)
	GetSources(ctx context.Context, in *GetSourcesReq, opts ...grpc.CallOption) (*GetSourcesResp, error)
	GetSinks(ctx context.Context, in *GetSinksReq, opts ...grpc.CallOption) (*GetSinksResp, error)
	GraphForPipeline(ctx context.Context, in *PipelineGraphReq, opts ...grpc.CallOption) (*PipelineGraphResp, error)
	StartPipeline(ctx context.Context, in *CreatePipelineReq, opts ...grpc.CallOption) (*CreatePipelineResp, error)
	GetJobDetails(ctx context.Context, in *JobDetailsReq, opts ...grpc.CallOption) (*JobDetailsResp, error)
	UpdateJob(ctx context.Context, in *UpdateJobReq, opts ...grpc.CallOption) (*UpdateJobResp, error)
	SubscribeToOutput(ctx context.Context, in *GrpcOutputSubscription, opts ...grpc.CallOption) (Api_SubscribeToOutputClient, error)
	GetOperatorErrors(ctx context.Context, in *OperatorErrorsReq, opts ...grpc.CallOption) (*OperatorErrorsRes, error)
}

type apiClient struct {
	cc grpc.ClientConnInterface
}

func NewApiClient(cc grpc.ClientConnInterface) ApiClient {
	return &apiClient{cc: cc}
}

func (c *apiClient) GetPipeline(ctx context.Context, in *GetPipelineReq, opts ...grpc.CallOption) (*PipelineDef, error) {
	out := new(PipelineDef)
	if err := c.cc.Invoke(ctx, Api_GetPipeline_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) GetSources(ctx context.Context, in *GetSourcesReq, opts ...grpc.CallOption) (*GetSourcesResp, error) {
	out := new(GetSourcesResp)
	if err := c.cc.Invoke(ctx, Api_GetSources_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) GetSinks(ctx context.Context, in *GetSinksReq, opts ...grpc.CallOption) (*GetSinksResp, error) {
	out := new(GetSinksResp)
	if err := c.cc.Invoke(ctx, Api_GetSinks_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) GraphForPipeline(ctx context.Context, in *PipelineGraphReq, opts ...grpc.CallOption) (*PipelineGraphResp, error) {
	out := new(PipelineGraphResp)
	if err := c.cc.Invoke(ctx, Api_GraphForPipeline_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) StartPipeline(ctx context.Context, in *CreatePipelineReq, opts ...grpc.CallOption) (*CreatePipelineResp, error) {
	out := new(CreatePipelineResp)
	if err := c.cc.Invoke(ctx, Api_StartPipeline_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) GetJobDetails(ctx context.Context, in *JobDetailsReq, opts ...grpc.CallOption) (*JobDetailsResp, error) {
	out := new(JobDetailsResp)
	if err := c.cc.Invoke(ctx, Api_GetJobDetails_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) UpdateJob(ctx context.Context, in *UpdateJobReq, opts ...grpc.CallOption) (*UpdateJobResp, error) {
	out := new(UpdateJobResp)
	if err := c.cc.Invoke(ctx, Api_UpdateJob_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *apiClient) SubscribeToOutput(ctx context.Context, in *GrpcOutputSubscription, opts ...grpc.CallOption) (Api_SubscribeToOutputClient, error) {
	stream, err := c.cc.NewStream(ctx, &Api_ServiceDesc.Streams[0], Api_SubscribeToOutput_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &apiSubscribeToOutputClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

type Api_SubscribeToOutputClient interface {
	Recv() (*OutputData, error)
	grpc.ClientStream
}

type apiSubscribeToOutputClient struct {
	grpc.ClientStream
}

func (x *apiSubscribeToOutputClient) Recv() (*OutputData, error) {
	m := new(OutputData)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *apiClient) GetOperatorErrors(ctx context.Context, in *OperatorErrorsReq, opts ...grpc.CallOption) (*OperatorErrorsRes, error) {
	out := new(OperatorErrorsRes)
	if err := c.cc.Invoke(ctx, Api_GetOperatorErrors_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type ApiServer interface {
	GetPipeline(context.Context, *GetPipelineReq) (*PipelineDef, error)
	GetSources(context.Context, *GetSourcesReq) (*GetSourcesResp, error)
	GetSinks(context.Context, *GetSinksReq) (*GetSinksResp, error)
	GraphForPipeline(context.Context, *PipelineGraphReq) (*PipelineGraphResp, error)
	StartPipeline(context.Context, *CreatePipelineReq) (*CreatePipelineResp, error)
	GetJobDetails(context.Context, *JobDetailsReq) (*JobDetailsResp, error)
	UpdateJob(context.Context, *UpdateJobReq) (*UpdateJobResp, error)
	SubscribeToOutput(*GrpcOutputSubscription, Api_SubscribeToOutputServer) error
	GetOperatorErrors(context.Context, *OperatorErrorsReq) (*OperatorErrorsRes, error)
	mustEmbedUnimplementedApiServer()
}

type UnimplementedApiServer struct{}

func (UnimplementedApiServer) GetPipeline(context.Context, *GetPipelineReq) (*PipelineDef, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPipeline not implemented")
}
func (UnimplementedApiServer) GetSources(context.Context, *GetSourcesReq) (*GetSourcesResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSources not implemented")
}
func (UnimplementedApiServer) GetSinks(context.Context, *GetSinksReq) (*GetSinksResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSinks not implemented")
}
func (UnimplementedApiServer) GraphForPipeline(context.Context, *PipelineGraphReq) (*PipelineGraphResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GraphForPipeline not implemented")
}
func (UnimplementedApiServer) StartPipeline(context.Context, *CreatePipelineReq) (*CreatePipelineResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method StartPipeline not implemented")
}
func (UnimplementedApiServer) GetJobDetails(context.Context, *JobDetailsReq) (*JobDetailsResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetJobDetails not implemented")
}
func (UnimplementedApiServer) UpdateJob(context.Context, *UpdateJobReq) (*UpdateJobResp, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdateJob not implemented")
}
func (UnimplementedApiServer) SubscribeToOutput(*GrpcOutputSubscription, Api_SubscribeToOutputServer) error {
	return status.Errorf(codes.Unimplemented, "method SubscribeToOutput not implemented")
}
func (UnimplementedApiServer) GetOperatorErrors(context.Context, *OperatorErrorsReq) (*OperatorErrorsRes, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetOperatorErrors not implemented")
}
func (UnimplementedApiServer) mustEmbedUnimplementedApiServer() {}

func RegisterApiServer(s grpc.ServiceRegistrar, srv ApiServer) {
	s.RegisterService(&Api_ServiceDesc, srv)
}

func _Api_GetPipeline_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPipelineReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).GetPipeline(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_GetPipeline_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).GetPipeline(ctx, req.(*GetPipelineReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _Api_GetSources_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSourcesReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).GetSources(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_GetSources_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).GetSources(ctx, req.(*GetSourcesReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _Api_GetSinks_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSinksReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).GetSinks(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_GetSinks_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).GetSinks(ctx, req.(*GetSinksReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _Api_GraphForPipeline_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PipelineGraphReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).GraphForPipeline(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_GraphForPipeline_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).GraphForPipeline(ctx, req.(*PipelineGraphReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _Api_StartPipeline_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreatePipelineReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).StartPipeline(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_StartPipeline_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).StartPipeline(ctx, req.(*CreatePipelineReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _Api_GetJobDetails_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JobDetailsReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).GetJobDetails(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_GetJobDetails_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).GetJobDetails(ctx, req.(*JobDetailsReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _Api_UpdateJob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateJobReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).UpdateJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_UpdateJob_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).UpdateJob(ctx, req.(*UpdateJobReq))
	}
	return interceptor(ctx, in, info, handler)
}

func _Api_SubscribeToOutput_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(GrpcOutputSubscription)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ApiServer).SubscribeToOutput(m, &apiSubscribeToOutputServer{stream})
}

type Api_SubscribeToOutputServer interface {
	Send(*OutputData) error
	grpc.ServerStream
}

type apiSubscribeToOutputServer struct {
	grpc.ServerStream
}

func (x *apiSubscribeToOutputServer) Send(m *OutputData) error {
	return x.ServerStream.SendMsg(m)
}

func _Api_GetOperatorErrors_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(OperatorErrorsReq)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ApiServer).GetOperatorErrors(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Api_GetOperatorErrors_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ApiServer).GetOperatorErrors(ctx, req.(*OperatorErrorsReq))
	}
	return interceptor(ctx, in, info, handler)
}

var Api_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "arroyo_api.ApiGrpc",
	HandlerType: (*ApiServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPipeline", Handler: _Api_GetPipeline_Handler},
		{MethodName: "GetSources", Handler: _Api_GetSources_Handler},
		{MethodName: "GetSinks", Handler: _Api_GetSinks_Handler},
		{MethodName: "GraphForPipeline", Handler: _Api_GraphForPipeline_Handler},
		{MethodName: "StartPipeline", Handler: _Api_StartPipeline_Handler},
		{MethodName: "GetJobDetails", Handler: _Api_GetJobDetails_Handler},
		{MethodName: "UpdateJob", Handler: _Api_UpdateJob_Handler},
		{MethodName: "GetOperatorErrors", Handler: _Api_GetOperatorErrors_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeToOutput",
			Handler:       _Api_SubscribeToOutput_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "api.proto",
}
