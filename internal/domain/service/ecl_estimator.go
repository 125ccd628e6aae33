package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
	"github.com/Skenwise/loan-hub-zambia-sub003/pkg/money"
)

// LossRateTable maps an IFRS 9 stage to the portfolio loss rate applied to
// the exposure. Rates are policy data supplied by configuration, tunable per
// jurisdiction and portfolio without code changes.
type LossRateTable map[valueobject.Stage]decimal.Decimal

// ECLEstimator computes expected credit loss per loan. Every estimate is an
// append-only snapshot; the caller persists it as a new row so the audit
// trail of past calculations survives recalculation.
type ECLEstimator struct {
	rates LossRateTable
}

// NewECLEstimator creates an estimator with the given loss-rate policy table.
func NewECLEstimator(rates LossRateTable) *ECLEstimator {
	return &ECLEstimator{rates: rates}
}

// Estimate computes eclValue = exposure x lossRate(stage) for a loan.
// Exposure is the principal amount, the exposure-at-default proxy.
//
// It fails closed: a negative exposure or a stage without a configured rate
// raises InvalidInputError instead of silently defaulting the ECL to zero.
func (e *ECLEstimator) Estimate(
	loanID, tenantID string,
	stage valueobject.Stage,
	exposure decimal.Decimal,
	effectiveDate time.Time,
	now time.Time,
) (model.ECLResult, error) {
	if exposure.IsNegative() {
		return model.ECLResult{}, valueobject.InvalidInputError{
			Field:  "exposure",
			Reason: "must not be negative",
		}
	}
	rate, ok := e.rates[stage]
	if !ok {
		return model.ECLResult{}, valueobject.InvalidInputError{
			Field:  "stage",
			Reason: "no loss rate configured for stage " + stage.String(),
		}
	}

	return model.ECLResult{
		ID:            uuid.New().String(),
		LoanID:        loanID,
		TenantID:      tenantID,
		ECLValue:      money.RoundCash(exposure.Mul(rate)),
		Stage:         stage,
		EffectiveDate: effectiveDate,
		CalculatedAt:  now,
	}, nil
}
