package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/usecase"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// RiskHandler exposes the loan risk engine over gRPC. It implements
// LoanRiskServiceServer.
type RiskHandler struct {
	UnimplementedLoanRiskServiceServer

	registerLoan    *usecase.RegisterLoanUseCase
	disburseLoan    *usecase.DisburseLoanUseCase
	applyRepayment  *usecase.ApplyRepaymentUseCase
	settleEarly     *usecase.SettleEarlyUseCase
	assessLoan      *usecase.AssessLoanUseCase
	assessPortfolio *usecase.AssessPortfolioUseCase
	getLoan         *usecase.GetLoanUseCase
	logger          *slog.Logger
}

// NewRiskHandler creates a new handler with all use-case dependencies.
func NewRiskHandler(
	registerLoan *usecase.RegisterLoanUseCase,
	disburseLoan *usecase.DisburseLoanUseCase,
	applyRepayment *usecase.ApplyRepaymentUseCase,
	settleEarly *usecase.SettleEarlyUseCase,
	assessLoan *usecase.AssessLoanUseCase,
	assessPortfolio *usecase.AssessPortfolioUseCase,
	getLoan *usecase.GetLoanUseCase,
	logger *slog.Logger,
) *RiskHandler {
	return &RiskHandler{
		registerLoan:    registerLoan,
		disburseLoan:    disburseLoan,
		applyRepayment:  applyRepayment,
		settleEarly:     settleEarly,
		assessLoan:      assessLoan,
		assessPortfolio: assessPortfolio,
		getLoan:         getLoan,
		logger:          logger,
	}
}

// RegisterLoan handles new loan registration.
func (h *RiskHandler) RegisterLoan(ctx context.Context, req *RegisterLoanRequest) (*RegisterLoanResponse, error) {
	principal, err := decimal.NewFromString(req.PrincipalAmount)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid principal amount: %v", err)
	}
	rate, err := decimal.NewFromString(req.InterestRatePct)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid interest rate: %v", err)
	}

	resp, err := h.registerLoan.Execute(ctx, dto.RegisterLoanRequest{
		TenantID:        req.TenantID,
		CustomerID:      req.CustomerID,
		PrincipalAmount: principal,
		Currency:        req.Currency,
		InterestRatePct: rate,
		TermMonths:      req.TermMonths,
	})
	if err != nil {
		return nil, h.grpcError(ctx, "RegisterLoan", err)
	}
	return &RegisterLoanResponse{Loan: resp}, nil
}

// DisburseLoan releases funds for an approved loan.
func (h *RiskHandler) DisburseLoan(ctx context.Context, req *DisburseLoanRequest) (*DisburseLoanResponse, error) {
	resp, err := h.disburseLoan.Execute(ctx, dto.DisburseLoanRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
	})
	if err != nil {
		return nil, h.grpcError(ctx, "DisburseLoan", err)
	}
	return &DisburseLoanResponse{Loan: resp}, nil
}

// GetLoan retrieves a loan with its repayment history.
func (h *RiskHandler) GetLoan(ctx context.Context, req *GetLoanRequest) (*GetLoanResponse, error) {
	resp, err := h.getLoan.Execute(ctx, dto.GetLoanRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
	})
	if err != nil {
		return nil, h.grpcError(ctx, "GetLoan", err)
	}
	return &GetLoanResponse{Loan: resp}, nil
}

// ApplyRepayment allocates one incoming payment.
func (h *RiskHandler) ApplyRepayment(ctx context.Context, req *ApplyRepaymentRequest) (*ApplyRepaymentResponse, error) {
	totalPaid, err := decimal.NewFromString(req.TotalPaid)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid total paid: %v", err)
	}

	resp, err := h.applyRepayment.Execute(ctx, dto.ApplyRepaymentRequest{
		TenantID:  req.TenantID,
		LoanID:    req.LoanID,
		TotalPaid: totalPaid,
	})
	if err != nil {
		return nil, h.grpcError(ctx, "ApplyRepayment", err)
	}
	return &ApplyRepaymentResponse{Result: resp}, nil
}

// SettleLoanEarly settles a loan in full.
func (h *RiskHandler) SettleLoanEarly(ctx context.Context, req *SettleLoanEarlyRequest) (*SettleLoanEarlyResponse, error) {
	resp, err := h.settleEarly.Execute(ctx, dto.SettleEarlyRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
	})
	if err != nil {
		return nil, h.grpcError(ctx, "SettleLoanEarly", err)
	}
	return &SettleLoanEarlyResponse{Result: resp}, nil
}

// AssessLoan runs the risk pipeline for one loan.
func (h *RiskHandler) AssessLoan(ctx context.Context, req *AssessLoanRequest) (*AssessLoanResponse, error) {
	asOf, err := parseAsOfDate(req.AsOfDate)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid as-of date: %v", err)
	}

	resp, err := h.assessLoan.Execute(ctx, dto.AssessLoanRequest{
		TenantID: req.TenantID,
		LoanID:   req.LoanID,
		AsOfDate: asOf,
	})
	if err != nil {
		return nil, h.grpcError(ctx, "AssessLoan", err)
	}
	return &AssessLoanResponse{Assessment: resp}, nil
}

// GetPortfolioSummary rolls up a tenant's portfolio.
func (h *RiskHandler) GetPortfolioSummary(ctx context.Context, req *GetPortfolioSummaryRequest) (*GetPortfolioSummaryResponse, error) {
	asOf, err := parseAsOfDate(req.AsOfDate)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid as-of date: %v", err)
	}

	resp, err := h.assessPortfolio.Execute(ctx, dto.AssessPortfolioRequest{
		TenantID: req.TenantID,
		AsOfDate: asOf,
	})
	if err != nil {
		return nil, h.grpcError(ctx, "GetPortfolioSummary", err)
	}
	return &GetPortfolioSummaryResponse{Summary: resp}, nil
}

func parseAsOfDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// grpcError maps domain errors to gRPC status codes.
func (h *RiskHandler) grpcError(ctx context.Context, method string, err error) error {
	h.logger.ErrorContext(ctx, "rpc failed", "method", method, "error", err)

	var invalidInput valueobject.InvalidInputError
	var invalidTerm valueobject.InvalidTermError
	var overpayment valueobject.OverpaymentError
	var stale valueobject.StaleSnapshotError

	switch {
	case errors.As(err, &invalidInput), errors.As(err, &invalidTerm):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &overpayment):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.As(err, &stale):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, pgx.ErrNoRows):
		return status.Error(codes.NotFound, "loan not found")
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
