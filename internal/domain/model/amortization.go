package model

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
	"github.com/Skenwise/loan-hub-zambia-sub003/pkg/money"
)

// AmortizationEntry is an immutable value object representing one period in an
// amortization schedule.
type AmortizationEntry struct {
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
	Period           int
}

// MonthlyRate converts an annual percentage rate to the monthly decimal rate
// used by both scheduling and repayment allocation:
//
//	monthlyRate = annualPct / 12 / 100
func MonthlyRate(annualRatePct decimal.Decimal) decimal.Decimal {
	return annualRatePct.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
}

// MonthlyPayment computes the level monthly payment for a reducing-balance
// loan:
//
//	payment = P * r / (1 - (1+r)^-n)
//
// where r is the monthly rate and n the term in months. A zero rate splits the
// principal evenly. Returns InvalidTermError when termMonths < 1.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, valueobject.InvalidTermError{TermMonths: termMonths}
	}
	if principal.IsNegative() {
		return decimal.Zero, valueobject.InvalidInputError{Field: "principal", Reason: "must not be negative"}
	}

	monthlyRate := MonthlyRate(annualRatePct)
	if monthlyRate.IsZero() {
		return money.RoundCash(principal.Div(decimal.NewFromInt(int64(termMonths)))), nil
	}

	// The power term uses float64; monetary arithmetic stays decimal.
	r := monthlyRate.InexactFloat64()
	n := float64(termMonths)
	denominator := 1 - math.Pow(1+r, -n)

	payment := principal.InexactFloat64() * r / denominator
	return decimal.NewFromFloat(payment).Round(money.CashScale), nil
}

// GenerateAmortizationSchedule computes the full fixed-payment schedule. The
// first payment falls due one calendar month after startDate and the final
// period absorbs rounding drift so the balance reaches exactly zero.
func GenerateAmortizationSchedule(
	principal, annualRatePct decimal.Decimal,
	termMonths int,
	startDate time.Time,
) []AmortizationEntry {
	payment, err := MonthlyPayment(principal, annualRatePct, termMonths)
	if err != nil || principal.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	monthlyRate := MonthlyRate(annualRatePct)
	schedule := make([]AmortizationEntry, 0, termMonths)
	remaining := principal

	for period := 1; period <= termMonths; period++ {
		dueDate := startDate.AddDate(0, period, 0)

		interest := money.RoundCash(remaining.Mul(monthlyRate))
		principalPart := payment.Sub(interest)

		// Last period: adjust for rounding so balance reaches exactly zero.
		if period == termMonths {
			principalPart = remaining
			payment = principalPart.Add(interest)
		}

		remaining = remaining.Sub(principalPart)
		if remaining.LessThan(decimal.Zero) {
			remaining = decimal.Zero
		}

		schedule = append(schedule, AmortizationEntry{
			Period:           period,
			DueDate:          dueDate,
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
	}

	return schedule
}
