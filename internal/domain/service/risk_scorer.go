package service

import (
	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// RiskScorer blends credit score, lifecycle status, and balance utilization
// into a 0-100 composite score with a banded recommended action.
//
// The score is a rule-table heuristic for prioritising portfolio review. It
// is not a statistical model and must not be presented as a calibrated
// probability of default.
type RiskScorer struct{}

// NewRiskScorer returns a scorer instance.
func NewRiskScorer() *RiskScorer {
	return &RiskScorer{}
}

// Score computes the composite risk assessment for a loan snapshot and its
// customer profile. Missing optional data never fails the computation: an
// unknown credit score (zero) lands in the worst credit tier, biasing toward
// caution rather than refusing to produce a figure.
func (s *RiskScorer) Score(profile model.CustomerRiskProfile, snapshot model.LoanSnapshot) model.RiskAssessment {
	total := creditComponent(profile.CreditScore) +
		statusComponent(snapshot.Status) +
		utilizationComponent(snapshot.OutstandingBalance, snapshot.PrincipalAmount)

	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	category := valueobject.RiskCategoryForScore(total)
	return model.RiskAssessment{
		RiskScore:         total,
		Category:          category,
		RecommendedAction: category.RecommendedAction(),
	}
}

func creditComponent(creditScore int) int {
	switch {
	case creditScore >= 750:
		return 5
	case creditScore >= 650:
		return 15
	case creditScore >= 550:
		return 25
	default:
		return 30
	}
}

func statusComponent(status valueobject.LoanStatus) int {
	switch {
	case status.Equal(valueobject.LoanStatusWrittenOff):
		return 40
	case status.Equal(valueobject.LoanStatusDefault):
		return 35
	case status.IsPastDue():
		return 25
	default:
		return 0
	}
}

func utilizationComponent(outstanding, principal decimal.Decimal) int {
	if principal.LessThanOrEqual(decimal.Zero) {
		return 0
	}
	ratio := outstanding.Div(principal)
	switch {
	case ratio.GreaterThan(decimal.NewFromFloat(0.8)):
		return 25
	case ratio.GreaterThan(decimal.NewFromFloat(0.5)):
		return 15
	case ratio.GreaterThan(decimal.NewFromFloat(0.2)):
		return 5
	default:
		return 0
	}
}
