package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/usecase"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
)

func TestGetLoan_Execute(t *testing.T) {
	t.Run("returns the loan with its repayment history", func(t *testing.T) {
		loan := activeLoan()
		now := time.Now().UTC()
		repayment := model.ReconstructRepayment(
			"rep-001", "loan-001", "tenant-001",
			decimal.NewFromInt(900), decimal.NewFromInt(100),
			false, now,
		)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanAccount, error) {
				return loan, nil
			},
		}
		repaymentRepo := &mockRepaymentRepository{
			findByLoanIDFunc: func(_ context.Context, _, _ string) ([]model.Repayment, error) {
				return []model.Repayment{repayment}, nil
			},
		}

		uc := usecase.NewGetLoanUseCase(loanRepo, repaymentRepo)

		resp, err := uc.Execute(context.Background(), dto.GetLoanRequest{TenantID: "tenant-001", LoanID: "loan-001"})

		require.NoError(t, err)
		assert.Equal(t, "loan-001", resp.ID)
		require.Len(t, resp.Repayments, 1)
		assert.Equal(t, "rep-001", resp.Repayments[0].ID)
		assert.True(t, decimal.NewFromInt(1000).Equal(resp.Repayments[0].TotalPaid))
	})

	t.Run("fails when loan not found", func(t *testing.T) {
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _, _ string) (model.LoanAccount, error) {
				return model.LoanAccount{}, fmt.Errorf("loan not found")
			},
		}

		uc := usecase.NewGetLoanUseCase(loanRepo, &mockRepaymentRepository{})

		_, err := uc.Execute(context.Background(), dto.GetLoanRequest{TenantID: "tenant-001", LoanID: "missing"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "find loan")
	})
}
