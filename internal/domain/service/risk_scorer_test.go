package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/service"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

func TestRiskScorer_Score(t *testing.T) {
	scorer := service.NewRiskScorer()

	tests := []struct {
		name        string
		creditScore int
		status      valueobject.LoanStatus
		outstanding int64
		principal   int64
		wantScore   int
		wantCat     valueobject.RiskCategory
		wantAction  string
	}{
		{
			// 5 credit + 0 status + 0 utilization (0.1).
			name:        "prime borrower low utilization",
			creditScore: 780, status: valueobject.LoanStatusActive,
			outstanding: 1000, principal: 10000,
			wantScore: 5, wantCat: valueobject.RiskCategoryLow, wantAction: "Monitor",
		},
		{
			// 15 credit + 0 status + 15 utilization (0.6).
			name:        "good borrower mid utilization",
			creditScore: 700, status: valueobject.LoanStatusActive,
			outstanding: 6000, principal: 10000,
			wantScore: 20, wantCat: valueobject.RiskCategoryLow, wantAction: "Monitor",
		},
		{
			// 25 credit + 25 status + 25 utilization (0.9).
			name:        "overdue subprime high utilization",
			creditScore: 560, status: valueobject.LoanStatusOverdue,
			outstanding: 9000, principal: 10000,
			wantScore: 75, wantCat: valueobject.RiskCategoryHigh, wantAction: "Escalate",
		},
		{
			// 30 credit + 35 status + 25 utilization.
			name:        "defaulted with unknown credit score",
			creditScore: 0, status: valueobject.LoanStatusDefault,
			outstanding: 10000, principal: 10000,
			wantScore: 90, wantCat: valueobject.RiskCategoryCritical, wantAction: "Immediate Action",
		},
		{
			// 30 credit + 40 status + 25 utilization.
			name:        "written off worst case",
			creditScore: 300, status: valueobject.LoanStatusWrittenOff,
			outstanding: 10000, principal: 10000,
			wantScore: 95, wantCat: valueobject.RiskCategoryCritical, wantAction: "Immediate Action",
		},
		{
			// Delinquent counts as past due: 15 + 25 + 5 (0.3).
			name:        "delinquent partially repaid",
			creditScore: 680, status: valueobject.LoanStatusDelinquent,
			outstanding: 3000, principal: 10000,
			wantScore: 45, wantCat: valueobject.RiskCategoryMedium, wantAction: "Review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := model.CustomerRiskProfile{CreditScore: tt.creditScore, KYCVerified: true}
			snapshot := model.LoanSnapshot{
				PrincipalAmount:    decimal.NewFromInt(tt.principal),
				OutstandingBalance: decimal.NewFromInt(tt.outstanding),
				Status:             tt.status,
			}

			got := scorer.Score(profile, snapshot)

			assert.Equal(t, tt.wantScore, got.RiskScore)
			assert.True(t, got.Category.Equal(tt.wantCat),
				"expected %s, got %s", tt.wantCat, got.Category)
			assert.Equal(t, tt.wantAction, got.RecommendedAction)
		})
	}
}

func TestRiskScorer_ScoreStaysInBounds(t *testing.T) {
	scorer := service.NewRiskScorer()

	statuses := []valueobject.LoanStatus{
		valueobject.LoanStatusActive, valueobject.LoanStatusOverdue,
		valueobject.LoanStatusDelinquent, valueobject.LoanStatusDefault,
		valueobject.LoanStatusWrittenOff, valueobject.LoanStatusClosed,
	}

	for _, status := range statuses {
		for credit := 0; credit <= 850; credit += 50 {
			for outstanding := int64(0); outstanding <= 10000; outstanding += 2500 {
				got := scorer.Score(
					model.CustomerRiskProfile{CreditScore: credit},
					model.LoanSnapshot{
						PrincipalAmount:    decimal.NewFromInt(10000),
						OutstandingBalance: decimal.NewFromInt(outstanding),
						Status:             status,
					},
				)
				assert.GreaterOrEqual(t, got.RiskScore, 0)
				assert.LessOrEqual(t, got.RiskScore, 100)
				assert.False(t, got.Category.IsZero())
			}
		}
	}
}

func TestRiskScorer_ZeroPrincipalUtilization(t *testing.T) {
	scorer := service.NewRiskScorer()

	// A zero principal must not divide; utilization contributes nothing.
	got := scorer.Score(
		model.CustomerRiskProfile{CreditScore: 780},
		model.LoanSnapshot{
			PrincipalAmount:    decimal.Zero,
			OutstandingBalance: decimal.Zero,
			Status:             valueobject.LoanStatusActive,
		},
	)

	assert.Equal(t, 5, got.RiskScore)
}
