package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Engine inputs and derived outputs – plain data, no behaviour
// ---------------------------------------------------------------------------

// LoanSnapshot is the read-only view of a loan the pure engine components
// operate on, together with an explicit as-of date supplied by the caller.
type LoanSnapshot struct {
	LoanID             string
	TenantID           string
	CustomerID         string
	PrincipalAmount    decimal.Decimal
	OutstandingBalance decimal.Decimal
	Status             valueobject.LoanStatus
	NextPaymentDate    time.Time
}

// CustomerRiskProfile is the read-only customer input. A credit score of zero
// means the score is unknown; the scorer treats unknown as the worst tier.
type CustomerRiskProfile struct {
	CustomerID  string
	CreditScore int
	KYCVerified bool
}

// AgingAssessment is the derived days-overdue classification. It is
// recomputed on demand and never stored as a source of truth.
type AgingAssessment struct {
	DaysOverdue int
	Bucket      valueobject.AgingBucket
	AsOfDate    time.Time
}

// StageClassification is the derived IFRS 9 stage.
type StageClassification struct {
	Stage valueobject.Stage
}

// ECLResult is an append-only expected-credit-loss snapshot. Every
// recalculation appends a new row; history is never overwritten.
type ECLResult struct {
	ID            string
	LoanID        string
	TenantID      string
	ECLValue      decimal.Decimal
	Stage         valueobject.Stage
	EffectiveDate time.Time
	CalculatedAt  time.Time
}

// ProvisionRecord is the statutory provision for a loan. One current record
// per loan; recalculation supersedes rather than deletes.
type ProvisionRecord struct {
	ID                  string
	LoanID              string
	TenantID            string
	ProvisionAmount     decimal.Decimal
	ProvisionPercentage decimal.Decimal
	Stage               valueobject.Stage
	EffectiveDate       time.Time
	SupersededAt        *time.Time
}

// RiskAssessment is the derived composite risk score. The score is a
// rule-table heuristic, not a calibrated probability of default.
type RiskAssessment struct {
	RiskScore         int
	Category          valueobject.RiskCategory
	RecommendedAction string
}

// LoanAssessment bundles every derived figure for one loan at one as-of date.
// Each field is safe to hand to report formatters as-is.
type LoanAssessment struct {
	LoanID     string
	AsOfDate   time.Time
	Aging      AgingAssessment
	Stage      StageClassification
	ECL        ECLResult
	Provision  ProvisionRecord
	Risk       RiskAssessment
	Divergence *ProvisionDivergence
}

// ProvisionDivergence is the advisory reconciliation between the statutory
// provision and the IFRS 9 ECL. Flagged entries go to compliance review.
type ProvisionDivergence struct {
	ProvisionAmount decimal.Decimal
	ECLValue        decimal.Decimal
	Ratio           decimal.Decimal
	Threshold       decimal.Decimal
	Flagged         bool
}
