package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/port"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/service"
)

// RegisterLoanUseCase orchestrates new loan registration, customer profile
// lookup, and the rule-based approval decision.
type RegisterLoanUseCase struct {
	loanRepo  port.LoanRepository
	publisher port.EventPublisher
	profiles  port.CustomerProfileReader
	policy    *service.ApprovalPolicy
}

// NewRegisterLoanUseCase wires dependencies.
func NewRegisterLoanUseCase(
	loanRepo port.LoanRepository,
	publisher port.EventPublisher,
	profiles port.CustomerProfileReader,
	policy *service.ApprovalPolicy,
) *RegisterLoanUseCase {
	return &RegisterLoanUseCase{
		loanRepo:  loanRepo,
		publisher: publisher,
		profiles:  profiles,
		policy:    policy,
	}
}

// Execute registers, decisions, and persists a loan account.
func (uc *RegisterLoanUseCase) Execute(
	ctx context.Context,
	req dto.RegisterLoanRequest,
) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	// 1. Create the loan aggregate in PENDING_APPROVAL.
	loan, err := model.NewLoanAccount(
		req.TenantID, req.CustomerID, req.PrincipalAmount,
		req.Currency, req.InterestRatePct, req.TermMonths, now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	// 2. Fetch the customer risk profile.
	profile, err := uc.profiles.GetProfile(ctx, req.TenantID, req.CustomerID)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("fetch customer profile: %w", err)
	}

	// 3. Run the approval policy.
	decision := uc.policy.Evaluate(profile, req.PrincipalAmount, req.TermMonths)

	// 4. Apply the decision.
	if decision.Approved {
		loan, err = loan.Approve(decision.Reason, now)
	} else {
		loan, err = loan.Reject(decision.Reason, now)
	}
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("apply decision: %w", err)
	}

	// 5. Persist.
	if err := uc.loanRepo.Save(ctx, loan); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, loan.DomainEvents()...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan, nil), nil
}

func toLoanResponse(loan model.LoanAccount, repayments []model.Repayment) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:                 loan.ID(),
		TenantID:           loan.TenantID(),
		CustomerID:         loan.CustomerID(),
		PrincipalAmount:    loan.Principal(),
		Currency:           loan.Currency(),
		InterestRatePct:    loan.InterestRatePct(),
		TermMonths:         loan.TermMonths(),
		Status:             loan.Status().String(),
		OutstandingBalance: loan.OutstandingBalance(),
		CreatedAt:          loan.CreatedAt(),
		UpdatedAt:          loan.UpdatedAt(),
	}
	if d := loan.DisbursementDate(); !d.IsZero() {
		resp.DisbursementDate = &d
	}
	if n := loan.NextPaymentDate(); !n.IsZero() {
		resp.NextPaymentDate = &n
	}
	if c := loan.ClosureDate(); !c.IsZero() {
		resp.ClosureDate = &c
	}
	for _, r := range repayments {
		resp.Repayments = append(resp.Repayments, toRepaymentResponse(r))
	}
	return resp
}

func toRepaymentResponse(r model.Repayment) dto.RepaymentResponse {
	return dto.RepaymentResponse{
		ID:               r.ID(),
		LoanID:           r.LoanID(),
		RepaymentDate:    r.RepaymentDate(),
		PrincipalPortion: r.PrincipalPortion(),
		InterestPortion:  r.InterestPortion(),
		TotalPaid:        r.TotalPaid(),
		EarlySettlement:  r.EarlySettlement(),
	}
}
