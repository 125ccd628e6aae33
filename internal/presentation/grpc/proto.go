package grpc

// proto.go defines the gRPC server interface derived from
// lhz/risk/v1/risk.proto. This file serves as a stand-in for buf-generated
// code. Once `buf generate` is run, replace this file with the import from
// github.com/Skenwise/loan-hub-zambia-sub003/api/gen/go/lhz/risk/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
)

// ---------------------------------------------------------------------------
// Wire messages (JSON codec)
// ---------------------------------------------------------------------------

// Monetary fields travel as decimal strings so no precision is lost between
// the wire and the engine.

type RegisterLoanRequest struct {
	TenantID        string `json:"tenant_id"`
	CustomerID      string `json:"customer_id"`
	PrincipalAmount string `json:"principal_amount"`
	Currency        string `json:"currency"`
	InterestRatePct string `json:"interest_rate_pct"`
	TermMonths      int    `json:"term_months"`
}

type RegisterLoanResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

type DisburseLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

type DisburseLoanResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

type GetLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

type GetLoanResponse struct {
	Loan dto.LoanResponse `json:"loan"`
}

type ApplyRepaymentRequest struct {
	TenantID  string `json:"tenant_id"`
	LoanID    string `json:"loan_id"`
	TotalPaid string `json:"total_paid"`
}

type ApplyRepaymentResponse struct {
	Result dto.RepaymentResultResponse `json:"result"`
}

type SettleLoanEarlyRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

type SettleLoanEarlyResponse struct {
	Result dto.RepaymentResultResponse `json:"result"`
}

type AssessLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
	// AsOfDate is RFC 3339; empty means "now".
	AsOfDate string `json:"as_of_date"`
}

type AssessLoanResponse struct {
	Assessment dto.LoanAssessmentResponse `json:"assessment"`
}

type GetPortfolioSummaryRequest struct {
	TenantID string `json:"tenant_id"`
	AsOfDate string `json:"as_of_date"`
}

type GetPortfolioSummaryResponse struct {
	Summary dto.PortfolioSummaryResponse `json:"summary"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

// LoanRiskServiceServer is the server API for LoanRiskService.
// It mirrors the proto-generated interface from lhz.risk.v1.LoanRiskService.
type LoanRiskServiceServer interface {
	RegisterLoan(context.Context, *RegisterLoanRequest) (*RegisterLoanResponse, error)
	DisburseLoan(context.Context, *DisburseLoanRequest) (*DisburseLoanResponse, error)
	GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error)
	ApplyRepayment(context.Context, *ApplyRepaymentRequest) (*ApplyRepaymentResponse, error)
	SettleLoanEarly(context.Context, *SettleLoanEarlyRequest) (*SettleLoanEarlyResponse, error)
	AssessLoan(context.Context, *AssessLoanRequest) (*AssessLoanResponse, error)
	GetPortfolioSummary(context.Context, *GetPortfolioSummaryRequest) (*GetPortfolioSummaryResponse, error)
	mustEmbedUnimplementedLoanRiskServiceServer()
}

// UnimplementedLoanRiskServiceServer provides forward-compatible default implementations.
type UnimplementedLoanRiskServiceServer struct{}

func (UnimplementedLoanRiskServiceServer) RegisterLoan(context.Context, *RegisterLoanRequest) (*RegisterLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RegisterLoan not implemented")
}
func (UnimplementedLoanRiskServiceServer) DisburseLoan(context.Context, *DisburseLoanRequest) (*DisburseLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DisburseLoan not implemented")
}
func (UnimplementedLoanRiskServiceServer) GetLoan(context.Context, *GetLoanRequest) (*GetLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedLoanRiskServiceServer) ApplyRepayment(context.Context, *ApplyRepaymentRequest) (*ApplyRepaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyRepayment not implemented")
}
func (UnimplementedLoanRiskServiceServer) SettleLoanEarly(context.Context, *SettleLoanEarlyRequest) (*SettleLoanEarlyResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SettleLoanEarly not implemented")
}
func (UnimplementedLoanRiskServiceServer) AssessLoan(context.Context, *AssessLoanRequest) (*AssessLoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessLoan not implemented")
}
func (UnimplementedLoanRiskServiceServer) GetPortfolioSummary(context.Context, *GetPortfolioSummaryRequest) (*GetPortfolioSummaryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPortfolioSummary not implemented")
}
func (UnimplementedLoanRiskServiceServer) mustEmbedUnimplementedLoanRiskServiceServer() {}

// RegisterLoanRiskServiceServer registers the LoanRiskServiceServer with the gRPC server.
func RegisterLoanRiskServiceServer(s *grpclib.Server, srv LoanRiskServiceServer) {
	s.RegisterService(&_LoanRiskService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _LoanRiskService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "lhz.risk.v1.LoanRiskService",
	HandlerType: (*LoanRiskServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RegisterLoan", Handler: _LoanRiskService_RegisterLoan_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "DisburseLoan", Handler: _LoanRiskService_DisburseLoan_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _LoanRiskService_GetLoan_Handler},                         //nolint:revive // gRPC handler registration
		{MethodName: "ApplyRepayment", Handler: _LoanRiskService_ApplyRepayment_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "SettleLoanEarly", Handler: _LoanRiskService_SettleLoanEarly_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "AssessLoan", Handler: _LoanRiskService_AssessLoan_Handler},                   //nolint:revive // gRPC handler registration
		{MethodName: "GetPortfolioSummary", Handler: _LoanRiskService_GetPortfolioSummary_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanRiskService_RegisterLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RegisterLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).RegisterLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lhz.risk.v1.LoanRiskService/RegisterLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).RegisterLoan(ctx, req.(*RegisterLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanRiskService_DisburseLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DisburseLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).DisburseLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lhz.risk.v1.LoanRiskService/DisburseLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).DisburseLoan(ctx, req.(*DisburseLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanRiskService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lhz.risk.v1.LoanRiskService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).GetLoan(ctx, req.(*GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanRiskService_ApplyRepayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApplyRepaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).ApplyRepayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lhz.risk.v1.LoanRiskService/ApplyRepayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).ApplyRepayment(ctx, req.(*ApplyRepaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanRiskService_SettleLoanEarly_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SettleLoanEarlyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).SettleLoanEarly(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lhz.risk.v1.LoanRiskService/SettleLoanEarly",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).SettleLoanEarly(ctx, req.(*SettleLoanEarlyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanRiskService_AssessLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(AssessLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).AssessLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lhz.risk.v1.LoanRiskService/AssessLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).AssessLoan(ctx, req.(*AssessLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _LoanRiskService_GetPortfolioSummary_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPortfolioSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LoanRiskServiceServer).GetPortfolioSummary(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/lhz.risk.v1.LoanRiskService/GetPortfolioSummary",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LoanRiskServiceServer).GetPortfolioSummary(ctx, req.(*GetPortfolioSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}
