package valueobject

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan account.
type LoanStatus struct {
	value string
}

const (
	loanStatusPendingApproval = "PENDING_APPROVAL"
	loanStatusApproved        = "APPROVED"
	loanStatusRejected        = "REJECTED"
	loanStatusActive          = "ACTIVE"
	loanStatusOverdue         = "OVERDUE"
	loanStatusDelinquent      = "DELINQUENT"
	loanStatusDefault         = "DEFAULT"
	loanStatusClosed          = "CLOSED"
	loanStatusWrittenOff      = "WRITTEN_OFF"
)

var (
	LoanStatusPendingApproval = LoanStatus{value: loanStatusPendingApproval}
	LoanStatusApproved        = LoanStatus{value: loanStatusApproved}
	LoanStatusRejected        = LoanStatus{value: loanStatusRejected}
	LoanStatusActive          = LoanStatus{value: loanStatusActive}
	LoanStatusOverdue         = LoanStatus{value: loanStatusOverdue}
	LoanStatusDelinquent      = LoanStatus{value: loanStatusDelinquent}
	LoanStatusDefault         = LoanStatus{value: loanStatusDefault}
	LoanStatusClosed          = LoanStatus{value: loanStatusClosed}
	LoanStatusWrittenOff      = LoanStatus{value: loanStatusWrittenOff}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusPendingApproval: LoanStatusPendingApproval,
	loanStatusApproved:        LoanStatusApproved,
	loanStatusRejected:        LoanStatusRejected,
	loanStatusActive:          LoanStatusActive,
	loanStatusOverdue:         LoanStatusOverdue,
	loanStatusDelinquent:      LoanStatusDelinquent,
	loanStatusDefault:         LoanStatusDefault,
	loanStatusClosed:          LoanStatusClosed,
	loanStatusWrittenOff:      LoanStatusWrittenOff,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsServicing returns true when the loan carries an outstanding balance that
// repayments may be applied to.
func (s LoanStatus) IsServicing() bool {
	switch s.value {
	case loanStatusActive, loanStatusOverdue, loanStatusDelinquent, loanStatusDefault:
		return true
	}
	return false
}

// IsPastDue returns true for statuses indicating missed payments short of default.
func (s LoanStatus) IsPastDue() bool {
	return s.value == loanStatusOverdue || s.value == loanStatusDelinquent
}

// IsCreditImpaired returns true for statuses treated as credit-impaired under
// IFRS 9 (defaulted or written off).
func (s LoanStatus) IsCreditImpaired() bool {
	return s.value == loanStatusDefault || s.value == loanStatusWrittenOff
}

// IsTerminal returns true when no further state transitions are possible.
func (s LoanStatus) IsTerminal() bool {
	return s.value == loanStatusRejected || s.value == loanStatusClosed || s.value == loanStatusWrittenOff
}

// ---------------------------------------------------------------------------
// Sentinel errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
