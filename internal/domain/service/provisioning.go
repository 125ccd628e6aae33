package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
	"github.com/Skenwise/loan-hub-zambia-sub003/pkg/money"
)

// ProvisionRateTable maps an IFRS 9 stage to the statutory provisioning
// percentage. It is a separate policy table from the ECL loss rates:
// provisioning is a distinct statutory computation that may diverge from
// IFRS 9 by design.
type ProvisionRateTable map[valueobject.Stage]decimal.Decimal

// ProvisioningCalculator computes the regulator-mandated provision for a loan
// and the advisory reconciliation against the IFRS 9 ECL.
type ProvisioningCalculator struct {
	rates               ProvisionRateTable
	divergenceThreshold decimal.Decimal
}

// NewProvisioningCalculator creates a calculator with the given statutory
// rate table and divergence threshold.
func NewProvisioningCalculator(rates ProvisionRateTable, divergenceThreshold decimal.Decimal) *ProvisioningCalculator {
	return &ProvisioningCalculator{
		rates:               rates,
		divergenceThreshold: divergenceThreshold,
	}
}

// Calculate computes provisionAmount = outstandingBalance x percentage(stage).
// The caller supersedes the loan's previous ProvisionRecord; prior records
// are retained for audit, never deleted.
func (p *ProvisioningCalculator) Calculate(
	loanID, tenantID string,
	stage valueobject.Stage,
	outstandingBalance decimal.Decimal,
	effectiveDate time.Time,
) (model.ProvisionRecord, error) {
	if outstandingBalance.IsNegative() {
		return model.ProvisionRecord{}, valueobject.InvalidInputError{
			Field:  "outstanding_balance",
			Reason: "must not be negative",
		}
	}
	pct, ok := p.rates[stage]
	if !ok {
		return model.ProvisionRecord{}, valueobject.InvalidInputError{
			Field:  "stage",
			Reason: "no provision percentage configured for stage " + stage.String(),
		}
	}

	return model.ProvisionRecord{
		ID:                  uuid.New().String(),
		LoanID:              loanID,
		TenantID:            tenantID,
		ProvisionAmount:     money.RoundCash(outstandingBalance.Mul(pct)),
		ProvisionPercentage: pct,
		Stage:               stage,
		EffectiveDate:       effectiveDate,
	}, nil
}

// Reconcile compares the statutory provision against the IFRS 9 ECL:
//
//	ratio = |provisionAmount - eclValue| / max(eclValue, 1)
//
// Entries above the configured threshold are flagged for compliance review.
// The check is advisory; nothing is auto-corrected.
func (p *ProvisioningCalculator) Reconcile(provision model.ProvisionRecord, ecl model.ECLResult) model.ProvisionDivergence {
	denominator := ecl.ECLValue
	if denominator.LessThan(decimal.NewFromInt(1)) {
		denominator = decimal.NewFromInt(1)
	}
	ratio := provision.ProvisionAmount.Sub(ecl.ECLValue).Abs().Div(denominator)

	return model.ProvisionDivergence{
		ProvisionAmount: provision.ProvisionAmount,
		ECLValue:        ecl.ECLValue,
		Ratio:           ratio,
		Threshold:       p.divergenceThreshold,
		Flagged:         ratio.GreaterThan(p.divergenceThreshold),
	}
}
