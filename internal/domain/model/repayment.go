package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Repayment entity – append-only ledger row
// ---------------------------------------------------------------------------

// Repayment records one allocated payment against a loan. Entries are
// immutable once created: the repository appends, never updates or deletes.
type Repayment struct {
	id               string
	loanID           string
	tenantID         string
	repaymentDate    time.Time
	principalPortion decimal.Decimal
	interestPortion  decimal.Decimal
	earlySettlement  bool
}

// NewRepayment creates a ledger entry for an allocated payment.
func NewRepayment(
	loanID, tenantID string,
	principalPortion, interestPortion decimal.Decimal,
	earlySettlement bool,
	repaymentDate time.Time,
) Repayment {
	return Repayment{
		id:               uuid.New().String(),
		loanID:           loanID,
		tenantID:         tenantID,
		repaymentDate:    repaymentDate,
		principalPortion: principalPortion,
		interestPortion:  interestPortion,
		earlySettlement:  earlySettlement,
	}
}

// ReconstructRepayment rebuilds a Repayment from persistence.
func ReconstructRepayment(
	id, loanID, tenantID string,
	principalPortion, interestPortion decimal.Decimal,
	earlySettlement bool,
	repaymentDate time.Time,
) Repayment {
	return Repayment{
		id:               id,
		loanID:           loanID,
		tenantID:         tenantID,
		repaymentDate:    repaymentDate,
		principalPortion: principalPortion,
		interestPortion:  interestPortion,
		earlySettlement:  earlySettlement,
	}
}

func (r Repayment) ID() string                        { return r.id }
func (r Repayment) LoanID() string                    { return r.loanID }
func (r Repayment) TenantID() string                  { return r.tenantID }
func (r Repayment) RepaymentDate() time.Time          { return r.repaymentDate }
func (r Repayment) PrincipalPortion() decimal.Decimal { return r.principalPortion }
func (r Repayment) InterestPortion() decimal.Decimal  { return r.interestPortion }
func (r Repayment) EarlySettlement() bool             { return r.earlySettlement }

// TotalPaid is always the sum of the principal and interest portions.
func (r Repayment) TotalPaid() decimal.Decimal {
	return r.principalPortion.Add(r.interestPortion)
}
