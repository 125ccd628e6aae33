package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

// ---------------------------------------------------------------------------
// Loan lifecycle events
// ---------------------------------------------------------------------------

// LoanRegistered is raised when a new loan account enters PENDING_APPROVAL.
type LoanRegistered struct {
	events.BaseEvent
	CustomerID      string          `json:"customer_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	Currency        string          `json:"currency"`
	InterestRatePct decimal.Decimal `json:"interest_rate_pct"`
	TermMonths      int             `json:"term_months"`
}

func NewLoanRegistered(
	loanID, tenantID, customerID string,
	principal decimal.Decimal, currency string,
	ratePct decimal.Decimal, termMonths int,
) LoanRegistered {
	return LoanRegistered{
		BaseEvent:       events.NewBaseEvent("lending.loan.registered", loanID, "LoanAccount", tenantID),
		CustomerID:      customerID,
		PrincipalAmount: principal,
		Currency:        currency,
		InterestRatePct: ratePct,
		TermMonths:      termMonths,
	}
}

// LoanApproved is raised when a pending loan passes approval.
type LoanApproved struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason"`
}

func NewLoanApproved(loanID, tenantID, customerID, reason string) LoanApproved {
	return LoanApproved{
		BaseEvent:  events.NewBaseEvent("lending.loan.approved", loanID, "LoanAccount", tenantID),
		CustomerID: customerID,
		Reason:     reason,
	}
}

// LoanRejected is raised when a pending loan is rejected.
type LoanRejected struct {
	events.BaseEvent
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason"`
}

func NewLoanRejected(loanID, tenantID, customerID, reason string) LoanRejected {
	return LoanRejected{
		BaseEvent:  events.NewBaseEvent("lending.loan.rejected", loanID, "LoanAccount", tenantID),
		CustomerID: customerID,
		Reason:     reason,
	}
}

// LoanDisbursed is raised when funds are disbursed and the loan goes ACTIVE.
type LoanDisbursed struct {
	events.BaseEvent
	CustomerID      string          `json:"customer_id"`
	Principal       decimal.Decimal `json:"principal"`
	Currency        string          `json:"currency"`
	NextPaymentDate time.Time       `json:"next_payment_date"`
}

func NewLoanDisbursed(
	loanID, tenantID, customerID string,
	principal decimal.Decimal, currency string,
	nextPaymentDate time.Time,
) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:       events.NewBaseEvent("lending.loan.disbursed", loanID, "LoanAccount", tenantID),
		CustomerID:      customerID,
		Principal:       principal,
		Currency:        currency,
		NextPaymentDate: nextPaymentDate,
	}
}

// LoanStatusChanged is raised on any staff/system-initiated lifecycle
// transition so the audit trail captures every status move.
type LoanStatusChanged struct {
	events.BaseEvent
	FromStatus         string          `json:"from_status"`
	ToStatus           string          `json:"to_status"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewLoanStatusChanged(loanID, tenantID, from, to string, outstanding decimal.Decimal) LoanStatusChanged {
	return LoanStatusChanged{
		BaseEvent:          events.NewBaseEvent("lending.loan.status_changed", loanID, "LoanAccount", tenantID),
		FromStatus:         from,
		ToStatus:           to,
		OutstandingBalance: outstanding,
	}
}

// LoanClosed is raised when the balance clamps to zero and the loan closes.
type LoanClosed struct {
	events.BaseEvent
	ClosureDate time.Time `json:"closure_date"`
	EarlySettle bool      `json:"early_settlement"`
}

func NewLoanClosed(loanID, tenantID string, closureDate time.Time, earlySettle bool) LoanClosed {
	return LoanClosed{
		BaseEvent:   events.NewBaseEvent("lending.loan.closed", loanID, "LoanAccount", tenantID),
		ClosureDate: closureDate,
		EarlySettle: earlySettle,
	}
}

// ---------------------------------------------------------------------------
// Repayment events
// ---------------------------------------------------------------------------

// RepaymentAllocated is raised when a repayment is split into principal and
// interest and applied to the balance.
type RepaymentAllocated struct {
	events.BaseEvent
	RepaymentID        string          `json:"repayment_id"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	PrincipalPortion   decimal.Decimal `json:"principal_portion"`
	InterestPortion    decimal.Decimal `json:"interest_portion"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewRepaymentAllocated(
	loanID, tenantID, repaymentID string,
	totalPaid, principalPortion, interestPortion, outstanding decimal.Decimal,
) RepaymentAllocated {
	return RepaymentAllocated{
		BaseEvent:          events.NewBaseEvent("lending.repayment.allocated", loanID, "LoanAccount", tenantID),
		RepaymentID:        repaymentID,
		TotalPaid:          totalPaid,
		PrincipalPortion:   principalPortion,
		InterestPortion:    interestPortion,
		OutstandingBalance: outstanding,
	}
}

// ---------------------------------------------------------------------------
// Risk assessment events
// ---------------------------------------------------------------------------

// ECLSnapshotTaken is raised when a new expected-credit-loss row is appended.
type ECLSnapshotTaken struct {
	events.BaseEvent
	Stage         string          `json:"ifrs9_stage"`
	ECLValue      decimal.Decimal `json:"ecl_value"`
	EffectiveDate time.Time       `json:"effective_date"`
}

func NewECLSnapshotTaken(loanID, tenantID, stage string, ecl decimal.Decimal, effectiveDate time.Time) ECLSnapshotTaken {
	return ECLSnapshotTaken{
		BaseEvent:     events.NewBaseEvent("risk.ecl.snapshot_taken", loanID, "LoanAccount", tenantID),
		Stage:         stage,
		ECLValue:      ecl,
		EffectiveDate: effectiveDate,
	}
}

// ProvisionSuperseded is raised when a loan's current provision record is
// replaced by a recalculated one.
type ProvisionSuperseded struct {
	events.BaseEvent
	Stage               string          `json:"ifrs9_stage"`
	ProvisionAmount     decimal.Decimal `json:"provision_amount"`
	ProvisionPercentage decimal.Decimal `json:"provision_percentage"`
}

func NewProvisionSuperseded(loanID, tenantID, stage string, amount, percentage decimal.Decimal) ProvisionSuperseded {
	return ProvisionSuperseded{
		BaseEvent:           events.NewBaseEvent("risk.provision.superseded", loanID, "LoanAccount", tenantID),
		Stage:               stage,
		ProvisionAmount:     amount,
		ProvisionPercentage: percentage,
	}
}

// ProvisionDivergenceFlagged is raised when the statutory provision diverges
// from the IFRS 9 ECL beyond the configured threshold. Advisory only; the
// figures are surfaced to compliance review, never auto-corrected.
type ProvisionDivergenceFlagged struct {
	events.BaseEvent
	ProvisionAmount decimal.Decimal `json:"provision_amount"`
	ECLValue        decimal.Decimal `json:"ecl_value"`
	Divergence      decimal.Decimal `json:"divergence"`
	Threshold       decimal.Decimal `json:"threshold"`
}

func NewProvisionDivergenceFlagged(loanID, tenantID string, provision, ecl, divergence, threshold decimal.Decimal) ProvisionDivergenceFlagged {
	return ProvisionDivergenceFlagged{
		BaseEvent:       events.NewBaseEvent("risk.provision.divergence_flagged", loanID, "LoanAccount", tenantID),
		ProvisionAmount: provision,
		ECLValue:        ecl,
		Divergence:      divergence,
		Threshold:       threshold,
	}
}

// ---------------------------------------------------------------------------
// Collections events
// ---------------------------------------------------------------------------

// CollectionCaseOpened is raised when a credit-impaired loan gets a new
// collections case. It carries the stage and outstanding balance observed at
// opening so downstream consumers see the recovery target without a lookup.
type CollectionCaseOpened struct {
	events.BaseEvent
	CaseID             string          `json:"case_id"`
	Stage              string          `json:"ifrs9_stage"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

func NewCollectionCaseOpened(loanID, tenantID, caseID, stage string, outstanding decimal.Decimal) CollectionCaseOpened {
	return CollectionCaseOpened{
		BaseEvent:          events.NewBaseEvent("collections.case.opened", loanID, "LoanAccount", tenantID),
		CaseID:             caseID,
		Stage:              stage,
		OutstandingBalance: outstanding,
	}
}
