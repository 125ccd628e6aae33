package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Domain error kinds
// ---------------------------------------------------------------------------

// InvalidTermError reports a non-positive loan term.
type InvalidTermError struct {
	TermMonths int
}

func (e InvalidTermError) Error() string {
	return fmt.Sprintf("invalid loan term: %d months, must be at least 1", e.TermMonths)
}

// OverpaymentError reports a repayment that exceeds the outstanding balance
// without an explicit early-settlement request.
type OverpaymentError struct {
	LoanID      string
	TotalPaid   decimal.Decimal
	Outstanding decimal.Decimal
}

func (e OverpaymentError) Error() string {
	return fmt.Sprintf(
		"repayment of %s exceeds outstanding balance %s on loan %s: request early settlement instead",
		e.TotalPaid, e.Outstanding, e.LoanID,
	)
}

// InvalidInputError reports input the engine refuses to compute on, such as a
// negative exposure or an unrecognised enum value. The engine fails closed
// rather than silently producing a zero figure.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// StaleSnapshotError reports that a loan record was mutated concurrently while
// an allocation was in flight. The caller decides whether to retry; the engine
// never reapplies silently.
type StaleSnapshotError struct {
	LoanID  string
	Version int
}

func (e StaleSnapshotError) Error() string {
	return fmt.Sprintf("loan %s snapshot at version %d is stale", e.LoanID, e.Version)
}
