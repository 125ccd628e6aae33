package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/event"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
	"github.com/Skenwise/loan-hub-zambia-sub003/pkg/money"
)

// closureEpsilon is the residual balance below which a loan is considered
// fully repaid. Residue this small is rounding noise, not receivable.
var closureEpsilon = decimal.NewFromFloat(0.01)

// ---------------------------------------------------------------------------
// LoanAccount aggregate root
// ---------------------------------------------------------------------------

// LoanAccount is an immutable aggregate. Mutations return a new copy. The
// outstanding balance is monotonically non-increasing except on disbursement,
// and never negative; repayment allocation is the only operation with write
// side effects on the balance.
type LoanAccount struct {
	id                 string
	tenantID           string
	customerID         string
	principal          decimal.Decimal
	currency           string
	interestRatePct    decimal.Decimal
	termMonths         int
	status             valueobject.LoanStatus
	schedule           []AmortizationEntry
	outstandingBalance decimal.Decimal
	disbursementDate   time.Time
	nextPaymentDate    time.Time
	closureDate        time.Time
	version            int
	createdAt          time.Time
	updatedAt          time.Time
	domainEvents       []event.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewLoanAccount registers a loan in PENDING_APPROVAL. The balance stays at
// zero until disbursement.
func NewLoanAccount(
	tenantID, customerID string,
	principal decimal.Decimal,
	currency string,
	interestRatePct decimal.Decimal,
	termMonths int,
	now time.Time,
) (LoanAccount, error) {
	if tenantID == "" {
		return LoanAccount{}, errors.New("tenant ID is required")
	}
	if customerID == "" {
		return LoanAccount{}, errors.New("customer ID is required")
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return LoanAccount{}, errors.New("principal must be positive")
	}
	if _, err := money.NewCurrency(currency); err != nil {
		return LoanAccount{}, fmt.Errorf("currency: %w", err)
	}
	if interestRatePct.IsNegative() {
		return LoanAccount{}, errors.New("interest rate must not be negative")
	}
	if termMonths <= 0 {
		return LoanAccount{}, valueobject.InvalidTermError{TermMonths: termMonths}
	}

	id := uuid.New().String()
	loan := LoanAccount{
		id:                 id,
		tenantID:           tenantID,
		customerID:         customerID,
		principal:          principal,
		currency:           currency,
		interestRatePct:    interestRatePct,
		termMonths:         termMonths,
		status:             valueobject.LoanStatusPendingApproval,
		outstandingBalance: decimal.Zero,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanRegistered(
		id, tenantID, customerID, principal, currency, interestRatePct, termMonths,
	))
	return loan, nil
}

// ReconstructLoanAccount rebuilds a LoanAccount aggregate from persistence.
func ReconstructLoanAccount(
	id, tenantID, customerID string,
	principal decimal.Decimal,
	currency string,
	interestRatePct decimal.Decimal,
	termMonths int,
	status valueobject.LoanStatus,
	schedule []AmortizationEntry,
	outstandingBalance decimal.Decimal,
	disbursementDate, nextPaymentDate, closureDate time.Time,
	version int,
	createdAt, updatedAt time.Time,
) LoanAccount {
	return LoanAccount{
		id:                 id,
		tenantID:           tenantID,
		customerID:         customerID,
		principal:          principal,
		currency:           currency,
		interestRatePct:    interestRatePct,
		termMonths:         termMonths,
		status:             status,
		schedule:           schedule,
		outstandingBalance: outstandingBalance,
		disbursementDate:   disbursementDate,
		nextPaymentDate:    nextPaymentDate,
		closureDate:        closureDate,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Approval transitions
// ---------------------------------------------------------------------------

// Approve transitions PENDING_APPROVAL -> APPROVED.
func (l LoanAccount) Approve(reason string, now time.Time) (LoanAccount, error) {
	if !l.status.Equal(valueobject.LoanStatusPendingApproval) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusApproved
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanApproved(l.id, l.tenantID, l.customerID, reason))
	return next, nil
}

// Reject transitions PENDING_APPROVAL -> REJECTED. REJECTED is reachable only
// from PENDING_APPROVAL.
func (l LoanAccount) Reject(reason string, now time.Time) (LoanAccount, error) {
	if !l.status.Equal(valueobject.LoanStatusPendingApproval) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	next := l
	next.status = valueobject.LoanStatusRejected
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanRejected(l.id, l.tenantID, l.customerID, reason))
	return next, nil
}

// Disburse transitions APPROVED -> ACTIVE, sets the outstanding balance to the
// principal, generates the amortization schedule and sets the first due date.
// This is the only operation that increases the balance.
func (l LoanAccount) Disburse(now time.Time) (LoanAccount, error) {
	if !l.status.Equal(valueobject.LoanStatusApproved) {
		return l, valueobject.ErrInvalidStatusTransition
	}

	sched := GenerateAmortizationSchedule(l.principal, l.interestRatePct, l.termMonths, now)
	var nextDue time.Time
	if len(sched) > 0 {
		nextDue = sched[0].DueDate
	}

	next := l
	next.status = valueobject.LoanStatusActive
	next.outstandingBalance = l.principal
	next.disbursementDate = now
	next.nextPaymentDate = nextDue
	next.schedule = sched
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanDisbursed(
		l.id, l.tenantID, l.customerID, l.principal, l.currency, nextDue,
	))
	return next, nil
}

// ---------------------------------------------------------------------------
// Repayment allocation
// ---------------------------------------------------------------------------

// ApplyRepayment splits an incoming payment interest-first, reduces the
// balance by the principal portion, and returns the updated loan together
// with the immutable Repayment ledger entry.
//
// Policy: the due date advances one calendar month only when the payment
// covers at least the scheduled amount; partial payments leave it unchanged.
func (l LoanAccount) ApplyRepayment(totalPaid decimal.Decimal, now time.Time) (LoanAccount, Repayment, error) {
	if !l.status.IsServicing() {
		return l, Repayment{}, valueobject.ErrInvalidStatusTransition
	}
	if totalPaid.LessThanOrEqual(decimal.Zero) {
		return l, Repayment{}, valueobject.InvalidInputError{Field: "total_paid", Reason: "must be positive"}
	}

	monthlyRate := MonthlyRate(l.interestRatePct)
	interestDue := money.RoundCash(l.outstandingBalance.Mul(monthlyRate))

	interestPortion := interestDue
	if totalPaid.LessThan(interestDue) {
		interestPortion = totalPaid
	}
	principalPortion := totalPaid.Sub(interestPortion)

	if principalPortion.GreaterThan(l.outstandingBalance) {
		return l, Repayment{}, valueobject.OverpaymentError{
			LoanID:      l.id,
			TotalPaid:   totalPaid,
			Outstanding: l.outstandingBalance,
		}
	}

	next := l
	next.outstandingBalance = l.outstandingBalance.Sub(principalPortion)
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	scheduledPayment, err := MonthlyPayment(l.principal, l.interestRatePct, l.termMonths)
	if err != nil {
		return l, Repayment{}, err
	}

	closed := next.outstandingBalance.LessThanOrEqual(closureEpsilon)
	if closed {
		next.outstandingBalance = decimal.Zero
		next.status = valueobject.LoanStatusClosed
		next.closureDate = now
	}

	if (totalPaid.GreaterThanOrEqual(scheduledPayment) || closed) && !next.nextPaymentDate.IsZero() {
		next.nextPaymentDate = next.nextPaymentDate.AddDate(0, 1, 0)
	}

	repayment := NewRepayment(l.id, l.tenantID, principalPortion, interestPortion, false, now)

	next.domainEvents = append(next.domainEvents, event.NewRepaymentAllocated(
		l.id, l.tenantID, repayment.ID(),
		totalPaid, principalPortion, interestPortion, next.outstandingBalance,
	))
	if closed {
		next.domainEvents = append(next.domainEvents, event.NewLoanClosed(l.id, l.tenantID, now, false))
	}

	return next, repayment, nil
}

// SettleEarly clears the full outstanding balance plus one month of accrued
// interest and closes the loan. This is the explicit path for payments that
// would otherwise be rejected as overpayments.
func (l LoanAccount) SettleEarly(now time.Time) (LoanAccount, Repayment, error) {
	if !l.status.IsServicing() {
		return l, Repayment{}, valueobject.ErrInvalidStatusTransition
	}

	monthlyRate := MonthlyRate(l.interestRatePct)
	interestPortion := money.RoundCash(l.outstandingBalance.Mul(monthlyRate))
	principalPortion := l.outstandingBalance

	next := l
	next.outstandingBalance = decimal.Zero
	next.status = valueobject.LoanStatusClosed
	next.closureDate = now
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	repayment := NewRepayment(l.id, l.tenantID, principalPortion, interestPortion, true, now)

	next.domainEvents = append(next.domainEvents, event.NewRepaymentAllocated(
		l.id, l.tenantID, repayment.ID(),
		principalPortion.Add(interestPortion), principalPortion, interestPortion, decimal.Zero,
	))
	next.domainEvents = append(next.domainEvents, event.NewLoanClosed(l.id, l.tenantID, now, true))

	return next, repayment, nil
}

// ---------------------------------------------------------------------------
// Delinquency transitions
// ---------------------------------------------------------------------------

// MarkOverdue transitions ACTIVE -> OVERDUE.
func (l LoanAccount) MarkOverdue(now time.Time) (LoanAccount, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	return l.withStatus(valueobject.LoanStatusOverdue, now), nil
}

// MarkDelinquent transitions ACTIVE or OVERDUE -> DELINQUENT.
func (l LoanAccount) MarkDelinquent(now time.Time) (LoanAccount, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) && !l.status.Equal(valueobject.LoanStatusOverdue) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	return l.withStatus(valueobject.LoanStatusDelinquent, now), nil
}

// Cure transitions OVERDUE or DELINQUENT back to ACTIVE once payments catch
// up. Staging is recomputed from current facts, so a cured loan re-enters
// stage 1 on the next assessment.
func (l LoanAccount) Cure(now time.Time) (LoanAccount, error) {
	if !l.status.IsPastDue() {
		return l, valueobject.ErrInvalidStatusTransition
	}
	return l.withStatus(valueobject.LoanStatusActive, now), nil
}

// MarkDefault transitions OVERDUE or DELINQUENT -> DEFAULT.
func (l LoanAccount) MarkDefault(now time.Time) (LoanAccount, error) {
	if !l.status.IsPastDue() {
		return l, valueobject.ErrInvalidStatusTransition
	}
	return l.withStatus(valueobject.LoanStatusDefault, now), nil
}

// WriteOff transitions DEFAULT -> WRITTEN_OFF. The outstanding balance is
// retained for statutory provisioning.
func (l LoanAccount) WriteOff(now time.Time) (LoanAccount, error) {
	if !l.status.Equal(valueobject.LoanStatusDefault) {
		return l, valueobject.ErrInvalidStatusTransition
	}
	return l.withStatus(valueobject.LoanStatusWrittenOff, now), nil
}

func (l LoanAccount) withStatus(status valueobject.LoanStatus, now time.Time) LoanAccount {
	next := l
	next.status = status
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewLoanStatusChanged(
		l.id, l.tenantID, l.status.String(), status.String(), l.outstandingBalance,
	))
	return next
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l LoanAccount) ID() string                          { return l.id }
func (l LoanAccount) TenantID() string                    { return l.tenantID }
func (l LoanAccount) CustomerID() string                  { return l.customerID }
func (l LoanAccount) Principal() decimal.Decimal          { return l.principal }
func (l LoanAccount) Currency() string                    { return l.currency }
func (l LoanAccount) InterestRatePct() decimal.Decimal    { return l.interestRatePct }
func (l LoanAccount) TermMonths() int                     { return l.termMonths }
func (l LoanAccount) Status() valueobject.LoanStatus      { return l.status }
func (l LoanAccount) OutstandingBalance() decimal.Decimal { return l.outstandingBalance }
func (l LoanAccount) DisbursementDate() time.Time         { return l.disbursementDate }
func (l LoanAccount) NextPaymentDate() time.Time          { return l.nextPaymentDate }
func (l LoanAccount) ClosureDate() time.Time              { return l.closureDate }
func (l LoanAccount) Version() int                        { return l.version }
func (l LoanAccount) CreatedAt() time.Time                { return l.createdAt }
func (l LoanAccount) UpdatedAt() time.Time                { return l.updatedAt }
func (l LoanAccount) DomainEvents() []event.DomainEvent   { return l.domainEvents }

// Schedule returns a defensive copy of the amortization schedule.
func (l LoanAccount) Schedule() []AmortizationEntry {
	if l.schedule == nil {
		return nil
	}
	out := make([]AmortizationEntry, len(l.schedule))
	copy(out, l.schedule)
	return out
}

// Snapshot extracts the loan state the pure engine components operate on.
func (l LoanAccount) Snapshot() LoanSnapshot {
	return LoanSnapshot{
		LoanID:             l.id,
		TenantID:           l.tenantID,
		CustomerID:         l.customerID,
		PrincipalAmount:    l.principal,
		OutstandingBalance: l.outstandingBalance,
		Status:             l.status,
		NextPaymentDate:    l.nextPaymentDate,
	}
}

// ClearEvents returns a copy with an empty event list.
func (l LoanAccount) ClearEvents() LoanAccount {
	next := l
	next.domainEvents = nil
	return next
}

func copyEvents(in []event.DomainEvent) []event.DomainEvent {
	if in == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(in))
	copy(out, in)
	return out
}
