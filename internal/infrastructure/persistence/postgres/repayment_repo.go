package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
)

// RepaymentRepo implements port.RepaymentRepository. The repayments table is
// an append-only ledger; there is no update or delete path.
type RepaymentRepo struct {
	pool *pgxpool.Pool
}

// NewRepaymentRepo creates a new PostgreSQL-backed repayment ledger.
func NewRepaymentRepo(pool *pgxpool.Pool) *RepaymentRepo {
	return &RepaymentRepo{pool: pool}
}

// Append inserts one allocated repayment.
func (r *RepaymentRepo) Append(ctx context.Context, repayment model.Repayment) error {
	query := `
		INSERT INTO repayments (
			id, loan_id, tenant_id, repayment_date,
			principal_portion, interest_portion, early_settlement
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		repayment.ID(), repayment.LoanID(), repayment.TenantID(), repayment.RepaymentDate(),
		repayment.PrincipalPortion(), repayment.InterestPortion(), repayment.EarlySettlement(),
	)
	if err != nil {
		return fmt.Errorf("append repayment: %w", err)
	}
	return nil
}

// FindByLoanID retrieves a loan's repayment history, oldest first.
func (r *RepaymentRepo) FindByLoanID(ctx context.Context, tenantID, loanID string) ([]model.Repayment, error) {
	query := `
		SELECT id, loan_id, tenant_id, repayment_date,
		       principal_portion, interest_portion, early_settlement
		FROM repayments
		WHERE tenant_id = $1 AND loan_id = $2
		ORDER BY repayment_date
	`
	rows, err := r.pool.Query(ctx, query, tenantID, loanID)
	if err != nil {
		return nil, fmt.Errorf("query repayments: %w", err)
	}
	defer rows.Close()

	var repayments []model.Repayment
	for rows.Next() {
		var (
			id, loan, tenant                  string
			repaymentDate                     time.Time
			principalPortion, interestPortion decimal.Decimal
			earlySettlement                   bool
		)
		if err := rows.Scan(&id, &loan, &tenant, &repaymentDate, &principalPortion, &interestPortion, &earlySettlement); err != nil {
			return nil, fmt.Errorf("scan repayment: %w", err)
		}
		repayments = append(repayments, model.ReconstructRepayment(
			id, loan, tenant, principalPortion, interestPortion, earlySettlement, repaymentDate,
		))
	}
	return repayments, rows.Err()
}
