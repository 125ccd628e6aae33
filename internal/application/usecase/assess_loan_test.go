package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/usecase"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/event"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/service"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

func testLossRates() service.LossRateTable {
	return service.LossRateTable{
		valueobject.Stage1: decimal.NewFromFloat(0.01),
		valueobject.Stage2: decimal.NewFromFloat(0.10),
		valueobject.Stage3: decimal.NewFromFloat(0.75),
	}
}

func testProvisionRates() service.ProvisionRateTable {
	return service.ProvisionRateTable{
		valueobject.Stage1: decimal.NewFromFloat(0.01),
		valueobject.Stage2: decimal.NewFromFloat(0.20),
		valueobject.Stage3: decimal.NewFromInt(1),
	}
}

func newAssessLoanUseCase(
	loanRepo *mockLoanRepository,
	eclRepo *mockECLRepository,
	provisionRepo *mockProvisionRepository,
	caseRepo *mockCollectionCaseRepository,
	publisher *mockEventPublisher,
	profiles *mockProfileReader,
) *usecase.AssessLoanUseCase {
	return usecase.NewAssessLoanUseCase(
		loanRepo, eclRepo, provisionRepo, caseRepo, publisher, profiles,
		service.NewAgingCalculator(service.DefaultBucketThresholds()),
		service.NewStageClassifier(),
		service.NewECLEstimator(testLossRates()),
		service.NewProvisioningCalculator(testProvisionRates(), decimal.NewFromFloat(0.25)),
		service.NewRiskScorer(),
	)
}

func overdueLoan(daysOverdue int, status valueobject.LoanStatus, asOf time.Time) model.LoanAccount {
	now := asOf.Add(-24 * time.Hour)
	return model.ReconstructLoanAccount(
		"loan-001", "tenant-001", "customer-001",
		decimal.NewFromInt(10000), "ZMW",
		decimal.NewFromInt(12), 12,
		status,
		nil,
		decimal.NewFromInt(8000),
		now, asOf.AddDate(0, 0, -daysOverdue), time.Time{},
		3, now, now,
	)
}

func TestAssessLoan_Execute(t *testing.T) {
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("performing loan lands in stage 1", func(t *testing.T) {
		loan := overdueLoan(0, valueobject.LoanStatusActive, asOf)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanAccount, error) {
				return loan, nil
			},
		}
		eclRepo := &mockECLRepository{}
		provisionRepo := &mockProvisionRepository{}
		publisher := &mockEventPublisher{}

		uc := newAssessLoanUseCase(loanRepo, eclRepo, provisionRepo, &mockCollectionCaseRepository{}, publisher, &mockProfileReader{})

		req := dto.AssessLoanRequest{TenantID: "tenant-001", LoanID: "loan-001", AsOfDate: asOf}
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 0, resp.DaysOverdue)
		assert.Equal(t, "CURRENT", resp.AgingBucket)
		assert.Equal(t, "STAGE_1", resp.Stage)
		// ECL on the principal: 10,000 x 1%.
		assert.True(t, decimal.NewFromInt(100).Equal(resp.ECLValue), resp.ECLValue.String())
		// Provision on the outstanding balance: 8,000 x 1%.
		assert.True(t, decimal.NewFromInt(80).Equal(resp.ProvisionAmount), resp.ProvisionAmount.String())
		require.Len(t, eclRepo.appended, 1)
		require.Len(t, provisionRepo.superseded, 1)
		// Status unchanged, so no lifecycle save.
		assert.Empty(t, loanRepo.savedLoans)
	})

	t.Run("45 days overdue reaches stage 2 and marks the loan overdue", func(t *testing.T) {
		loan := overdueLoan(45, valueobject.LoanStatusActive, asOf)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanAccount, error) {
				return loan, nil
			},
		}

		uc := newAssessLoanUseCase(loanRepo, &mockECLRepository{}, &mockProvisionRepository{}, &mockCollectionCaseRepository{}, &mockEventPublisher{}, &mockProfileReader{})

		req := dto.AssessLoanRequest{TenantID: "tenant-001", LoanID: "loan-001", AsOfDate: asOf}
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 45, resp.DaysOverdue)
		assert.Equal(t, "D31_60", resp.AgingBucket)
		assert.Equal(t, "STAGE_2", resp.Stage)
		require.Len(t, loanRepo.savedLoans, 1)
		assert.Equal(t, "OVERDUE", loanRepo.savedLoans[0].Status().String())
		// Stage 2 provision diverges from stage 2 ECL: |1600-1000|/1000 = 0.6.
		assert.True(t, resp.DivergenceFlagged)
	})

	t.Run("written-off loan is stage 3 with full provision and a collections case", func(t *testing.T) {
		loan := overdueLoan(200, valueobject.LoanStatusWrittenOff, asOf)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanAccount, error) {
				return loan, nil
			},
		}
		caseRepo := &mockCollectionCaseRepository{}
		publisher := &mockEventPublisher{}

		uc := newAssessLoanUseCase(loanRepo, &mockECLRepository{}, &mockProvisionRepository{}, caseRepo, publisher, &mockProfileReader{})

		req := dto.AssessLoanRequest{TenantID: "tenant-001", LoanID: "loan-001", AsOfDate: asOf}
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "STAGE_3", resp.Stage)
		// Retained balance provisioned at 100%.
		assert.True(t, decimal.NewFromInt(8000).Equal(resp.ProvisionAmount), resp.ProvisionAmount.String())
		require.Len(t, caseRepo.savedCases, 1)
		saved := caseRepo.savedCases[0]
		assert.Equal(t, "loan-001", saved.LoanID())
		// The case freezes the stage and balance observed at opening.
		assert.True(t, saved.StageAtOpen().Equal(valueobject.Stage3))
		assert.True(t, decimal.NewFromInt(8000).Equal(saved.OutstandingAtOpen()), saved.OutstandingAtOpen().String())

		opened := findCaseOpenedEvent(t, publisher.publishedEvents)
		assert.Equal(t, saved.ID(), opened.CaseID)
		assert.Equal(t, "STAGE_3", opened.Stage)
		assert.True(t, decimal.NewFromInt(8000).Equal(opened.OutstandingBalance))
	})

	t.Run("does not open a second case when one is already open", func(t *testing.T) {
		loan := overdueLoan(200, valueobject.LoanStatusDefault, asOf)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanAccount, error) {
				return loan, nil
			},
		}
		existing, err := model.NewCollectionCase("loan-001", "tenant-001", valueobject.Stage3, decimal.NewFromInt(8000), asOf)
		require.NoError(t, err)
		caseRepo := &mockCollectionCaseRepository{
			findOpenByLoanFunc: func(_ context.Context, _, _ string) ([]model.CollectionCase, error) {
				return []model.CollectionCase{existing}, nil
			},
		}

		uc := newAssessLoanUseCase(loanRepo, &mockECLRepository{}, &mockProvisionRepository{}, caseRepo, &mockEventPublisher{}, &mockProfileReader{})

		req := dto.AssessLoanRequest{TenantID: "tenant-001", LoanID: "loan-001", AsOfDate: asOf}
		_, err = uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Empty(t, caseRepo.savedCases)
	})

	t.Run("cures a past-due loan once it is current again", func(t *testing.T) {
		loan := overdueLoan(0, valueobject.LoanStatusOverdue, asOf)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanAccount, error) {
				return loan, nil
			},
		}

		uc := newAssessLoanUseCase(loanRepo, &mockECLRepository{}, &mockProvisionRepository{}, &mockCollectionCaseRepository{}, &mockEventPublisher{}, &mockProfileReader{})

		req := dto.AssessLoanRequest{TenantID: "tenant-001", LoanID: "loan-001", AsOfDate: asOf}
		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "STAGE_1", resp.Stage)
		require.Len(t, loanRepo.savedLoans, 1)
		assert.Equal(t, "ACTIVE", loanRepo.savedLoans[0].Status().String())
	})
}

func findCaseOpenedEvent(t *testing.T, evts []event.DomainEvent) event.CollectionCaseOpened {
	t.Helper()
	for _, e := range evts {
		if opened, ok := e.(event.CollectionCaseOpened); ok {
			return opened
		}
	}
	t.Fatal("no collections case event published")
	return event.CollectionCaseOpened{}
}
