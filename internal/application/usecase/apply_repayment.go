package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/port"
)

// ApplyRepaymentUseCase allocates an incoming payment interest-first against
// a loan. Allocation for a given loan is serialized: a per-loan lock on this
// instance plus the repository's optimistic lock across instances, so two
// simultaneous payments never both read the same starting balance.
type ApplyRepaymentUseCase struct {
	loanRepo      port.LoanRepository
	repaymentRepo port.RepaymentRepository
	publisher     port.EventPublisher
	locks         *loanLocks
}

// NewApplyRepaymentUseCase wires dependencies.
func NewApplyRepaymentUseCase(
	loanRepo port.LoanRepository,
	repaymentRepo port.RepaymentRepository,
	publisher port.EventPublisher,
) *ApplyRepaymentUseCase {
	return &ApplyRepaymentUseCase{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		publisher:     publisher,
		locks:         newLoanLocks(),
	}
}

// Execute allocates one payment. Payments exceeding the outstanding balance
// plus accrued interest are rejected in the aggregate; callers that intend to
// settle the loan use SettleEarly instead.
func (uc *ApplyRepaymentUseCase) Execute(
	ctx context.Context,
	req dto.ApplyRepaymentRequest,
) (dto.RepaymentResultResponse, error) {
	release := uc.locks.acquire(req.LoanID)
	defer release()

	now := time.Now().UTC()

	// 1. Load the aggregate.
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.RepaymentResultResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Allocate interest-first.
	loan, repayment, err := loan.ApplyRepayment(req.TotalPaid, now)
	if err != nil {
		return dto.RepaymentResultResponse{}, fmt.Errorf("apply repayment: %w", err)
	}

	// 3. Persist the aggregate under the optimistic lock.
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

func toRepaymentResult(loan model.LoanAccount, r model.Repayment) dto.RepaymentResultResponse {
	resp := dto.RepaymentResultResponse{
		LoanID:             loan.ID(),
		RepaymentID:        r.ID(),
		TotalPaid:          r.TotalPaid(),
		PrincipalPortion:   r.PrincipalPortion(),
		InterestPortion:    r.InterestPortion(),
		OutstandingBalance: loan.OutstandingBalance(),
		LoanStatus:         loan.Status().String(),
	}
	if n := loan.NextPaymentDate(); !n.IsZero() {
		resp.NextPaymentDate = &n
	}
	return resp
}
