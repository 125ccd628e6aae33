package model_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/event"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

var (
	testDisbursed = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	testNow       = time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC)
)

func newPendingLoan(t *testing.T) model.LoanAccount {
	t.Helper()
	loan, err := model.NewLoanAccount(
		uuid.New().String(), uuid.New().String(),
		decimal.NewFromInt(10000), "ZMW",
		decimal.NewFromInt(12), 12, testNow,
	)
	require.NoError(t, err)
	return loan
}

func reconstructLoan(t *testing.T, status valueobject.LoanStatus, balance decimal.Decimal) model.LoanAccount {
	t.Helper()
	return model.ReconstructLoanAccount(
		uuid.New().String(), uuid.New().String(), uuid.New().String(),
		decimal.NewFromInt(10000), "ZMW",
		decimal.NewFromInt(12), 12,
		status, nil, balance,
		testDisbursed, testDisbursed.AddDate(0, 1, 0), time.Time{},
		1, testDisbursed, testDisbursed,
	)
}

func TestNewLoanAccount_Validation(t *testing.T) {
	tests := []struct {
		name       string
		tenantID   string
		customerID string
		principal  decimal.Decimal
		currency   string
		ratePct    decimal.Decimal
		termMonths int
	}{
		{"missing tenant", "", "cust", decimal.NewFromInt(1000), "ZMW", decimal.NewFromInt(12), 12},
		{"missing customer", "tenant", "", decimal.NewFromInt(1000), "ZMW", decimal.NewFromInt(12), 12},
		{"zero principal", "tenant", "cust", decimal.Zero, "ZMW", decimal.NewFromInt(12), 12},
		{"negative principal", "tenant", "cust", decimal.NewFromInt(-1), "ZMW", decimal.NewFromInt(12), 12},
		{"missing currency", "tenant", "cust", decimal.NewFromInt(1000), "", decimal.NewFromInt(12), 12},
		{"lowercase currency", "tenant", "cust", decimal.NewFromInt(1000), "zmw", decimal.NewFromInt(12), 12},
		{"malformed currency", "tenant", "cust", decimal.NewFromInt(1000), "ZMWK", decimal.NewFromInt(12), 12},
		{"negative rate", "tenant", "cust", decimal.NewFromInt(1000), "ZMW", decimal.NewFromInt(-1), 12},
		{"zero term", "tenant", "cust", decimal.NewFromInt(1000), "ZMW", decimal.NewFromInt(12), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewLoanAccount(
				tt.tenantID, tt.customerID, tt.principal,
				tt.currency, tt.ratePct, tt.termMonths, testNow,
			)
			assert.Error(t, err)
		})
	}
}

func TestNewLoanAccount_RaisesRegisteredEvent(t *testing.T) {
	loan := newPendingLoan(t)

	assert.True(t, loan.Status().Equal(valueobject.LoanStatusPendingApproval))
	assert.True(t, loan.OutstandingBalance().IsZero())

	events := loan.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "lending.loan.registered", events[0].EventType())
	assert.Equal(t, loan.ID(), events[0].AggregateID())
}

func TestLoanAccount_Approve(t *testing.T) {
	loan := newPendingLoan(t)

	approved, err := loan.Approve("good credit tier", testNow)
	require.NoError(t, err)
	assert.True(t, approved.Status().Equal(valueobject.LoanStatusApproved))

	// The original copy is unchanged.
	assert.True(t, loan.Status().Equal(valueobject.LoanStatusPendingApproval))

	// Approving twice is rejected.
	_, err = approved.Approve("again", testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoanAccount_Reject(t *testing.T) {
	loan := newPendingLoan(t)

	rejected, err := loan.Reject("credit score below minimum threshold", testNow)
	require.NoError(t, err)
	assert.True(t, rejected.Status().Equal(valueobject.LoanStatusRejected))
	assert.True(t, rejected.Status().IsTerminal())

	_, err = rejected.Approve("too late", testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoanAccount_Disburse(t *testing.T) {
	loan := newPendingLoan(t)
	approved, err := loan.Approve("ok", testNow)
	require.NoError(t, err)

	active, err := approved.Disburse(testDisbursed)
	require.NoError(t, err)

	assert.True(t, active.Status().Equal(valueobject.LoanStatusActive))
	assert.True(t, active.OutstandingBalance().Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, testDisbursed, active.DisbursementDate())
	assert.Equal(t, testDisbursed.AddDate(0, 1, 0), active.NextPaymentDate())
	require.Len(t, active.Schedule(), 12)

	// Disbursing an already active loan is rejected.
	_, err = active.Disburse(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

	// Disbursing straight from PENDING_APPROVAL is rejected.
	_, err = loan.Disburse(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoanAccount_ApplyRepayment_InterestFirst(t *testing.T) {
	loan := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(10000))
	dueBefore := loan.NextPaymentDate()

	// Interest due at 1% monthly on 10,000 is 100.
	next, repayment, err := loan.ApplyRepayment(decimal.NewFromInt(1000), testNow)
	require.NoError(t, err)

	assert.Equal(t, "100.00", repayment.InterestPortion().StringFixed(2))
	assert.Equal(t, "900.00", repayment.PrincipalPortion().StringFixed(2))
	assert.Equal(t, "1000.00", repayment.TotalPaid().StringFixed(2))
	assert.Equal(t, "9100.00", next.OutstandingBalance().StringFixed(2))

	// 1000 covers the 888.49 scheduled payment, so the due date advances.
	assert.Equal(t, dueBefore.AddDate(0, 1, 0), next.NextPaymentDate())
}

func TestLoanAccount_ApplyRepayment_BelowInterest(t *testing.T) {
	loan := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(10000))
	dueBefore := loan.NextPaymentDate()

	next, repayment, err := loan.ApplyRepayment(decimal.NewFromInt(40), testNow)
	require.NoError(t, err)

	// The whole payment is consumed by interest; the balance is untouched.
	assert.Equal(t, "40.00", repayment.InterestPortion().StringFixed(2))
	assert.True(t, repayment.PrincipalPortion().IsZero())
	assert.Equal(t, "10000.00", next.OutstandingBalance().StringFixed(2))
	assert.Equal(t, dueBefore, next.NextPaymentDate())
}

func TestLoanAccount_ApplyRepayment_PartialKeepsDueDate(t *testing.T) {
	loan := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(10000))
	dueBefore := loan.NextPaymentDate()

	// 500 covers interest but falls short of the 888.49 scheduled payment.
	next, repayment, err := loan.ApplyRepayment(decimal.NewFromInt(500), testNow)
	require.NoError(t, err)

	assert.Equal(t, "400.00", repayment.PrincipalPortion().StringFixed(2))
	assert.Equal(t, "9600.00", next.OutstandingBalance().StringFixed(2))
	assert.Equal(t, dueBefore, next.NextPaymentDate())
}

func TestLoanAccount_ApplyRepayment_Overpayment(t *testing.T) {
	loan := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(10000))

	_, _, err := loan.ApplyRepayment(decimal.NewFromInt(50000), testNow)

	var overErr valueobject.OverpaymentError
	require.ErrorAs(t, err, &overErr)
	assert.Equal(t, loan.ID(), overErr.LoanID)

	// The aggregate is untouched after a rejected payment.
	assert.Equal(t, "10000.00", loan.OutstandingBalance().StringFixed(2))
}

func TestLoanAccount_ApplyRepayment_ClosesLoan(t *testing.T) {
	loan := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(100))

	// Interest due is 1.00; 101 clears the balance exactly.
	next, repayment, err := loan.ApplyRepayment(decimal.NewFromInt(101), testNow)
	require.NoError(t, err)

	assert.Equal(t, "100.00", repayment.PrincipalPortion().StringFixed(2))
	assert.True(t, next.OutstandingBalance().IsZero())
	assert.True(t, next.Status().Equal(valueobject.LoanStatusClosed))
	assert.Equal(t, testNow, next.ClosureDate())

	var closedEvents int
	for _, e := range next.DomainEvents() {
		if _, ok := e.(event.LoanClosed); ok {
			closedEvents++
		}
	}
	assert.Equal(t, 1, closedEvents)
}

func TestLoanAccount_ApplyRepayment_NonPositiveAmount(t *testing.T) {
	loan := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(10000))

	_, _, err := loan.ApplyRepayment(decimal.Zero, testNow)
	var inputErr valueobject.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "total_paid", inputErr.Field)
}

func TestLoanAccount_ApplyRepayment_NotServicing(t *testing.T) {
	closed := reconstructLoan(t, valueobject.LoanStatusClosed, decimal.Zero)

	_, _, err := closed.ApplyRepayment(decimal.NewFromInt(100), testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoanAccount_ApplyRepayment_OverdueLoanAccepted(t *testing.T) {
	overdue := reconstructLoan(t, valueobject.LoanStatusOverdue, decimal.NewFromInt(10000))

	next, _, err := overdue.ApplyRepayment(decimal.NewFromInt(1000), testNow)
	require.NoError(t, err)
	assert.Equal(t, "9100.00", next.OutstandingBalance().StringFixed(2))
}

func TestLoanAccount_ApplyRepayment_RecoveryOnDefaultedLoan(t *testing.T) {
	defaulted := reconstructLoan(t, valueobject.LoanStatusDefault, decimal.NewFromInt(100))

	// Recovery payments are accepted on defaulted loans; a full recovery
	// closes the loan directly.
	next, repayment, err := defaulted.ApplyRepayment(decimal.NewFromInt(101), testNow)
	require.NoError(t, err)

	assert.Equal(t, "100.00", repayment.PrincipalPortion().StringFixed(2))
	assert.True(t, next.OutstandingBalance().IsZero())
	assert.True(t, next.Status().Equal(valueobject.LoanStatusClosed))
}

func TestLoanAccount_SettleEarly(t *testing.T) {
	loan := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(10000))

	settled, repayment, err := loan.SettleEarly(testNow)
	require.NoError(t, err)

	assert.Equal(t, "10000.00", repayment.PrincipalPortion().StringFixed(2))
	assert.Equal(t, "100.00", repayment.InterestPortion().StringFixed(2))
	assert.Equal(t, "10100.00", repayment.TotalPaid().StringFixed(2))
	assert.True(t, repayment.EarlySettlement())

	assert.True(t, settled.OutstandingBalance().IsZero())
	assert.True(t, settled.Status().Equal(valueobject.LoanStatusClosed))
	assert.Equal(t, testNow, settled.ClosureDate())
}

func TestLoanAccount_SettleEarly_NotServicing(t *testing.T) {
	pending := newPendingLoan(t)

	_, _, err := pending.SettleEarly(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoanAccount_DelinquencyTransitions(t *testing.T) {
	active := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(8000))

	overdue, err := active.MarkOverdue(testNow)
	require.NoError(t, err)
	assert.True(t, overdue.Status().Equal(valueobject.LoanStatusOverdue))

	// MarkOverdue only applies to ACTIVE.
	_, err = overdue.MarkOverdue(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

	delinquent, err := overdue.MarkDelinquent(testNow)
	require.NoError(t, err)
	assert.True(t, delinquent.Status().Equal(valueobject.LoanStatusDelinquent))

	defaulted, err := delinquent.MarkDefault(testNow)
	require.NoError(t, err)
	assert.True(t, defaulted.Status().Equal(valueobject.LoanStatusDefault))

	writtenOff, err := defaulted.WriteOff(testNow)
	require.NoError(t, err)
	assert.True(t, writtenOff.Status().Equal(valueobject.LoanStatusWrittenOff))

	// The balance survives write-off for statutory provisioning.
	assert.Equal(t, "8000.00", writtenOff.OutstandingBalance().StringFixed(2))
}

func TestLoanAccount_Cure(t *testing.T) {
	overdue := reconstructLoan(t, valueobject.LoanStatusOverdue, decimal.NewFromInt(8000))

	cured, err := overdue.Cure(testNow)
	require.NoError(t, err)
	assert.True(t, cured.Status().Equal(valueobject.LoanStatusActive))

	delinquent := reconstructLoan(t, valueobject.LoanStatusDelinquent, decimal.NewFromInt(8000))
	cured, err = delinquent.Cure(testNow)
	require.NoError(t, err)
	assert.True(t, cured.Status().Equal(valueobject.LoanStatusActive))

	// DEFAULT cannot cure; it is credit-impaired, not past due.
	defaulted := reconstructLoan(t, valueobject.LoanStatusDefault, decimal.NewFromInt(8000))
	_, err = defaulted.Cure(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoanAccount_WriteOff_RequiresDefault(t *testing.T) {
	delinquent := reconstructLoan(t, valueobject.LoanStatusDelinquent, decimal.NewFromInt(8000))

	_, err := delinquent.WriteOff(testNow)
	assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
}

func TestLoanAccount_StatusChangeRaisesEvent(t *testing.T) {
	active := reconstructLoan(t, valueobject.LoanStatusActive, decimal.NewFromInt(8000))

	overdue, err := active.MarkOverdue(testNow)
	require.NoError(t, err)

	events := overdue.DomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(event.LoanStatusChanged)
	require.True(t, ok)
	assert.Equal(t, "ACTIVE", changed.FromStatus)
	assert.Equal(t, "OVERDUE", changed.ToStatus)
}

func TestLoanAccount_ClearEvents(t *testing.T) {
	loan := newPendingLoan(t)
	require.NotEmpty(t, loan.DomainEvents())

	cleared := loan.ClearEvents()
	assert.Empty(t, cleared.DomainEvents())
}
