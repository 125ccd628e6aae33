package usecase

import (
	"context"
	"fmt"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/port"
)

// GetLoanUseCase retrieves a loan with its repayment history.
type GetLoanUseCase struct {
	loanRepo      port.LoanRepository
	repaymentRepo port.RepaymentRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(loanRepo port.LoanRepository, repaymentRepo port.RepaymentRepository) *GetLoanUseCase {
	return &GetLoanUseCase{loanRepo: loanRepo, repaymentRepo: repaymentRepo}
}

// Execute retrieves the loan.
func (uc *GetLoanUseCase) Execute(
	ctx context.Context,
	req dto.GetLoanRequest,
) (dto.LoanResponse, error) {
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	repayments, err := uc.repaymentRepo.FindByLoanID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find repayments: %w", err)
	}

	return toLoanResponse(loan, repayments), nil
}
