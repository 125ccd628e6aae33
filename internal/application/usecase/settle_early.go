package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/port"
)

// SettleEarlyUseCase closes a loan through the explicit early-settlement
// path: the full outstanding balance plus one month of accrued interest is
// allocated and the balance clamps to zero.
type SettleEarlyUseCase struct {
	loanRepo      port.LoanRepository
	repaymentRepo port.RepaymentRepository
	publisher     port.EventPublisher
	locks         *loanLocks
}

// NewSettleEarlyUseCase wires dependencies.
func NewSettleEarlyUseCase(
	loanRepo port.LoanRepository,
	repaymentRepo port.RepaymentRepository,
	publisher port.EventPublisher,
) *SettleEarlyUseCase {
	return &SettleEarlyUseCase{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		publisher:     publisher,
		locks:         newLoanLocks(),
	}
}

// Execute settles the loan in full.
func (uc *SettleEarlyUseCase) Execute(
	ctx context.Context,
	req dto.SettleEarlyRequest,
) (dto.RepaymentResultResponse, error) {
	release := uc.locks.acquire(req.LoanID)
	defer release()

	now := time.Now().UTC()

	// 1. Load the aggregate.
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.RepaymentResultResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Settle.
	loan, repayment, err := loan.SettleEarly(now)
	if err != nil {
		return dto.RepaymentResultResponse{}, fmt.Errorf("settle early: %w", err)
	}

	// 3. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.RepaymentResultResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 4. Append the ledger entry.
	if err := uc.repaymentRepo.Append(ctx, repayment); err != nil {
		return dto.RepaymentResultResponse{}, fmt.Errorf("append repayment: %w", err)
	}

	// 5. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.RepaymentResultResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toRepaymentResult(loan, repayment), nil
}
