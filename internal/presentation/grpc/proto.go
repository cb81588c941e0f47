package grpc

// proto.go defines the gRPC server interface derived from
// portal/dues/v1/dues.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace it with the
// generated import.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Message types mirroring portal.dues.v1.

type WeekSelectionMsg struct {
	Year  int32
	Month int32
	Week  int32
}

type WeekCellMsg struct {
	Week   int32
	Status string
	Rupiah int64
}

type MonthBillMsg struct {
	Month            int32
	Label            string
	Weeks            []*WeekCellMsg
	SettledWeeks     int32
	PendingWeeks     int32
	PaidRupiah       int64
	Complete         bool
	DeficiencyRupiah int64
}

type CheckBillRequest struct {
	StudentID string
	Year      int32
}

type CheckBillResponse struct {
	StudentID        string
	Year             int32
	Months           []*MonthBillMsg
	PaidMonthCount   int32
	PaidRupiah       int64
	DeficiencyRupiah int64
	Outstanding      []string
	Settled          bool
}

type GetLifetimeSummaryRequest struct {
	StudentID string
	Years     []int32
}

type GetLifetimeSummaryResponse struct {
	StudentID        string
	Years            []*CheckBillResponse
	PaidMonthCount   int32
	PaidRupiah       int64
	DeficiencyRupiah int64
}

type GetClassSummaryRequest struct {
	ClassID string
	Year    int32
}

type StudentRecapMsg struct {
	StudentID        string
	PaidRupiah       int64
	DeficiencyRupiah int64
	Outstanding      []string
}

type GetClassSummaryResponse struct {
	ClassID          string
	Students         []*StudentRecapMsg
	CollectedRupiah  int64
	DeficiencyRupiah int64
}

type SessionMsg struct {
	SessionID        string
	StudentID        string
	Weeks            []*WeekSelectionMsg
	State            string
	TotalRupiah      int64
	ReservedAt       *timestamppb.Timestamp
	ExpiresAt        *timestamppb.Timestamp
	RemainingSeconds int64
}

type CreateSessionRequest struct {
	StudentID string
	Weeks     []*WeekSelectionMsg
}

type CreateSessionResponse struct {
	Session *SessionMsg
}

type ConfirmSessionRequest struct {
	SessionID string
}

type ConfirmSessionResponse struct {
	Session *SessionMsg
}

type CancelSessionRequest struct {
	SessionID string
}

type CancelSessionResponse struct {
	Session *SessionMsg
}

type GetSessionRequest struct {
	SessionID string
}

type GetSessionResponse struct {
	Session *SessionMsg
}

type ResumeSessionRequest struct {
	StudentID string
}

type ResumeSessionResponse struct {
	Session *SessionMsg
}

type GetBillingRangeRequest struct{}

type BillingRangeMsg struct {
	StartMonth   int32
	EndMonth     int32
	ActivePeriod int32
}

type GetBillingRangeResponse struct {
	Range *BillingRangeMsg
}

type SaveBillingRangeRequest struct {
	Range *BillingRangeMsg
}

type SaveBillingRangeResponse struct {
	Range *BillingRangeMsg
}

// DuesServiceServer is the server API for DuesService.
// It mirrors the proto-generated interface from portal.dues.v1.DuesService.
type DuesServiceServer interface {
	CheckBill(context.Context, *CheckBillRequest) (*CheckBillResponse, error)
	GetLifetimeSummary(context.Context, *GetLifetimeSummaryRequest) (*GetLifetimeSummaryResponse, error)
	GetClassSummary(context.Context, *GetClassSummaryRequest) (*GetClassSummaryResponse, error)
	CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error)
	ConfirmSession(context.Context, *ConfirmSessionRequest) (*ConfirmSessionResponse, error)
	CancelSession(context.Context, *CancelSessionRequest) (*CancelSessionResponse, error)
	GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error)
	ResumeSession(context.Context, *ResumeSessionRequest) (*ResumeSessionResponse, error)
	GetBillingRange(context.Context, *GetBillingRangeRequest) (*GetBillingRangeResponse, error)
	SaveBillingRange(context.Context, *SaveBillingRangeRequest) (*SaveBillingRangeResponse, error)
	mustEmbedUnimplementedDuesServiceServer()
}

// UnimplementedDuesServiceServer provides forward-compatible default implementations.
type UnimplementedDuesServiceServer struct{}

func (UnimplementedDuesServiceServer) CheckBill(context.Context, *CheckBillRequest) (*CheckBillResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CheckBill not implemented")
}
func (UnimplementedDuesServiceServer) GetLifetimeSummary(context.Context, *GetLifetimeSummaryRequest) (*GetLifetimeSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLifetimeSummary not implemented")
}
func (UnimplementedDuesServiceServer) GetClassSummary(context.Context, *GetClassSummaryRequest) (*GetClassSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetClassSummary not implemented")
}
func (UnimplementedDuesServiceServer) CreateSession(context.Context, *CreateSessionRequest) (*CreateSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateSession not implemented")
}
func (UnimplementedDuesServiceServer) ConfirmSession(context.Context, *ConfirmSessionRequest) (*ConfirmSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ConfirmSession not implemented")
}
func (UnimplementedDuesServiceServer) CancelSession(context.Context, *CancelSessionRequest) (*CancelSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CancelSession not implemented")
}
func (UnimplementedDuesServiceServer) GetSession(context.Context, *GetSessionRequest) (*GetSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetSession not implemented")
}
func (UnimplementedDuesServiceServer) ResumeSession(context.Context, *ResumeSessionRequest) (*ResumeSessionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResumeSession not implemented")
}
func (UnimplementedDuesServiceServer) GetBillingRange(context.Context, *GetBillingRangeRequest) (*GetBillingRangeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetBillingRange not implemented")
}
func (UnimplementedDuesServiceServer) SaveBillingRange(context.Context, *SaveBillingRangeRequest) (*SaveBillingRangeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SaveBillingRange not implemented")
}
func (UnimplementedDuesServiceServer) mustEmbedUnimplementedDuesServiceServer() {}

// RegisterDuesServiceServer registers the DuesServiceServer with the gRPC server.
func RegisterDuesServiceServer(s *grpclib.Server, srv DuesServiceServer) {
	s.RegisterService(&_DuesService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _DuesService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "portal.dues.v1.DuesService",
	HandlerType: (*DuesServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "CheckBill", Handler: _DuesService_CheckBill_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "GetLifetimeSummary", Handler: _DuesService_GetLifetimeSummary_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "GetClassSummary", Handler: _DuesService_GetClassSummary_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "CreateSession", Handler: _DuesService_CreateSession_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "ConfirmSession", Handler: _DuesService_ConfirmSession_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "CancelSession", Handler: _DuesService_CancelSession_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetSession", Handler: _DuesService_GetSession_Handler},                 //nolint:revive // gRPC handler registration
		{MethodName: "ResumeSession", Handler: _DuesService_ResumeSession_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "GetBillingRange", Handler: _DuesService_GetBillingRange_Handler},       //nolint:revive // gRPC handler registration
		{MethodName: "SaveBillingRange", Handler: _DuesService_SaveBillingRange_Handler},     //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_CheckBill_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CheckBillRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).CheckBill(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/CheckBill",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).CheckBill(ctx, req.(*CheckBillRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_GetLifetimeSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLifetimeSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).GetLifetimeSummary(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/GetLifetimeSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).GetLifetimeSummary(ctx, req.(*GetLifetimeSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_GetClassSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetClassSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).GetClassSummary(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/GetClassSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).GetClassSummary(ctx, req.(*GetClassSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_CreateSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).CreateSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/CreateSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).CreateSession(ctx, req.(*CreateSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_ConfirmSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ConfirmSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).ConfirmSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/ConfirmSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).ConfirmSession(ctx, req.(*ConfirmSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_CancelSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(CancelSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).CancelSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/CancelSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).CancelSession(ctx, req.(*CancelSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_GetSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).GetSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/GetSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).GetSession(ctx, req.(*GetSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_ResumeSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ResumeSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).ResumeSession(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/ResumeSession",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).ResumeSession(ctx, req.(*ResumeSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_GetBillingRange_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetBillingRangeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).GetBillingRange(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/GetBillingRange",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).GetBillingRange(ctx, req.(*GetBillingRangeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _DuesService_SaveBillingRange_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SaveBillingRangeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DuesServiceServer).SaveBillingRange(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/portal.dues.v1.DuesService/SaveBillingRange",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(DuesServiceServer).SaveBillingRange(ctx, req.(*SaveBillingRangeRequest))
	}
	return interceptor(ctx, in, info, handler)
}
