package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterLoanRequest carries the data needed to register a new loan account.
type RegisterLoanRequest struct {
	TenantID        string          `json:"tenant_id"`
	CustomerID      string          `json:"customer_id"`
	PrincipalAmount decimal.Decimal `json:"principal_amount"`
	Currency        string          `json:"currency"`
	InterestRatePct decimal.Decimal `json:"interest_rate_pct"`
	TermMonths      int             `json:"term_months"`
}

// DisburseLoanRequest identifies an approved loan to disburse.
type DisburseLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// ApplyRepaymentRequest carries one incoming payment for allocation.
type ApplyRepaymentRequest struct {
	TenantID  string          `json:"tenant_id"`
	LoanID    string          `json:"loan_id"`
	TotalPaid decimal.Decimal `json:"total_paid"`
}

// SettleEarlyRequest requests explicit early settlement of a loan.
type SettleEarlyRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// AssessLoanRequest runs the risk pipeline for one loan at an as-of date.
type AssessLoanRequest struct {
	TenantID string    `json:"tenant_id"`
	LoanID   string    `json:"loan_id"`
	AsOfDate time.Time `json:"as_of_date"`
}

// AssessPortfolioRequest rolls up a tenant's portfolio at an as-of date.
type AssessPortfolioRequest struct {
	TenantID string    `json:"tenant_id"`
	AsOfDate time.Time `json:"as_of_date"`
}

// GetLoanRequest identifies a loan to retrieve.
type GetLoanRequest struct {
	TenantID string `json:"tenant_id"`
	LoanID   string `json:"loan_id"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// LoanResponse is the external representation of a loan account.
type LoanResponse struct {
	ID                 string              `json:"id"`
	TenantID           string              `json:"tenant_id"`
	CustomerID         string              `json:"customer_id"`
	PrincipalAmount    decimal.Decimal     `json:"principal_amount"`
	Currency           string              `json:"currency"`
	InterestRatePct    decimal.Decimal     `json:"interest_rate_pct"`
	TermMonths         int                 `json:"term_months"`
	Status             string              `json:"status"`
	OutstandingBalance decimal.Decimal     `json:"outstanding_balance"`
	DisbursementDate   *time.Time          `json:"disbursement_date,omitempty"`
	NextPaymentDate    *time.Time          `json:"next_payment_date,omitempty"`
	ClosureDate        *time.Time          `json:"closure_date,omitempty"`
	Repayments         []RepaymentResponse `json:"repayments,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

// RepaymentResponse is one allocated repayment ledger entry.
type RepaymentResponse struct {
	ID               string          `json:"id"`
	LoanID           string          `json:"loan_id"`
	RepaymentDate    time.Time       `json:"repayment_date"`
	PrincipalPortion decimal.Decimal `json:"principal_portion"`
	InterestPortion  decimal.Decimal `json:"interest_portion"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	EarlySettlement  bool            `json:"early_settlement"`
}

// RepaymentResultResponse reports the outcome of an allocation.
type RepaymentResultResponse struct {
	LoanID             string          `json:"loan_id"`
	RepaymentID        string          `json:"repayment_id"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	PrincipalPortion   decimal.Decimal `json:"principal_portion"`
	InterestPortion    decimal.Decimal `json:"interest_portion"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	LoanStatus         string          `json:"loan_status"`
	NextPaymentDate    *time.Time      `json:"next_payment_date,omitempty"`
}

// LoanAssessmentResponse bundles every derived risk figure for one loan.
type LoanAssessmentResponse struct {
	LoanID              string          `json:"loan_id"`
	AsOfDate            time.Time       `json:"as_of_date"`
	DaysOverdue         int             `json:"days_overdue"`
	AgingBucket         string          `json:"aging_bucket"`
	Stage               string          `json:"ifrs9_stage"`
	ECLValue            decimal.Decimal `json:"ecl_value"`
	ProvisionAmount     decimal.Decimal `json:"provision_amount"`
	ProvisionPercentage decimal.Decimal `json:"provision_percentage"`
	RiskScore           int             `json:"risk_score"`
	RiskCategory        string          `json:"risk_category"`
	RecommendedAction   string          `json:"recommended_action"`
	DivergenceFlagged   bool            `json:"divergence_flagged"`
	DivergenceRatio     decimal.Decimal `json:"divergence_ratio"`
}

// PortfolioSummaryResponse is the portfolio roll-up for dashboards/reports.
type PortfolioSummaryResponse struct {
	TenantID         string          `json:"tenant_id"`
	AsOfDate         time.Time       `json:"as_of_date"`
	TotalLoans       int             `json:"total_loans"`
	StatusCounts     map[string]int  `json:"status_counts"`
	StageCounts      map[string]int  `json:"stage_counts"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	PAR30Count       int             `json:"par30_count"`
	PAR90Count       int             `json:"par90_count"`
	PAR30Outstanding decimal.Decimal `json:"par30_outstanding"`
	PAR90Outstanding decimal.Decimal `json:"par90_outstanding"`
	TotalECL         decimal.Decimal `json:"total_ecl"`
	TotalProvisions  decimal.Decimal `json:"total_provisions"`
}
