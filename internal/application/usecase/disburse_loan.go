package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/port"
)

// DisburseLoanUseCase releases funds for an approved loan: the outstanding
// balance becomes the principal, the amortization schedule is generated, and
// the first payment falls due one month out.
type DisburseLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
}

// NewDisburseLoanUseCase wires dependencies.
func NewDisburseLoanUseCase(loanRepo port.LoanRepository, publisher port.EventPublisher) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{loanRepo: loanRepo, publisher: publisher}
}

// Execute disburses an approved loan.
func (uc *DisburseLoanUseCase) Execute(
	ctx context.Context,
	req dto.DisburseLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Load the aggregate.
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Disburse.
	loan, err = loan.Disburse(now)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("disburse loan: %w", err)
	}

	// 3. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 4. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, nil), nil
}
