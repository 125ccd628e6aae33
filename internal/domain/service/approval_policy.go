package service

import (
	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
)

// ---------------------------------------------------------------------------
// ApprovalPolicy – rule-based decisioning for pending loans
// ---------------------------------------------------------------------------

// ApprovalDecision holds the outcome of the approval evaluation.
type ApprovalDecision struct {
	Reason    string
	MaxAmount decimal.Decimal
	Approved  bool
}

// ApprovalPolicy encapsulates rule-based credit decisioning for loans in
// PENDING_APPROVAL.
type ApprovalPolicy struct{}

// NewApprovalPolicy returns a new policy instance.
func NewApprovalPolicy() *ApprovalPolicy {
	return &ApprovalPolicy{}
}

// Evaluate performs a rule-based approval decision.
//
// Tiers:
//
//	score >= 700 -> approved, max 500,000
//	score >= 600 -> approved, max 250,000
//	score >= 500 -> approved, max 100,000
//	score <  500 or unknown -> rejected
//
// Unverified KYC rejects regardless of score.
func (p *ApprovalPolicy) Evaluate(
	profile model.CustomerRiskProfile,
	requestedAmount decimal.Decimal,
	termMonths int,
) ApprovalDecision {
	if !profile.KYCVerified {
		return ApprovalDecision{
			Approved: false,
			Reason:   "customer KYC is not verified",
		}
	}

	var (
		approved  bool
		reason    string
		maxAmount decimal.Decimal
	)

	switch {
	case profile.CreditScore >= 700:
		approved = true
		reason = "excellent credit tier"
		maxAmount = decimal.NewFromInt(500_000)
	case profile.CreditScore >= 600:
		approved = true
		reason = "good credit tier"
		maxAmount = decimal.NewFromInt(250_000)
	case profile.CreditScore >= 500:
		approved = true
		reason = "fair credit tier"
		maxAmount = decimal.NewFromInt(100_000)
	default:
		approved = false
		reason = "credit score below minimum threshold"
		maxAmount = decimal.Zero
	}

	if approved && requestedAmount.GreaterThan(maxAmount) {
		approved = false
		reason = "requested amount exceeds maximum for credit tier"
	}

	if approved && termMonths > 360 {
		approved = false
		reason = "term exceeds maximum 360 months"
	}

	return ApprovalDecision{
		Approved:  approved,
		Reason:    reason,
		MaxAmount: maxAmount,
	}
}
