package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// ECLRepo implements port.ECLResultRepository. Snapshots are append-only;
// every recalculation inserts a new row and the history is retained for
// audit.
type ECLRepo struct {
	pool *pgxpool.Pool
}

// NewECLRepo creates a new PostgreSQL-backed ECL snapshot store.
func NewECLRepo(pool *pgxpool.Pool) *ECLRepo {
	return &ECLRepo{pool: pool}
}

// Append inserts one ECL snapshot.
func (r *ECLRepo) Append(ctx context.Context, result model.ECLResult) error {
	query := `
		INSERT INTO ecl_results (
			id, loan_id, tenant_id, ecl_value, stage, effective_date, calculated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		result.ID, result.LoanID, result.TenantID,
		result.ECLValue, result.Stage.String(), result.EffectiveDate, result.CalculatedAt,
	)
	if err != nil {
		return fmt.Errorf("append ecl result: %w", err)
	}
	return nil
}

// FindLatestByLoanID retrieves the most recent snapshot for a loan.
func (r *ECLRepo) FindLatestByLoanID(ctx context.Context, tenantID, loanID string) (model.ECLResult, error) {
	query := selectECL + `
		WHERE tenant_id = $1 AND loan_id = $2
		ORDER BY calculated_at DESC
		LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, tenantID, loanID)
	return scanECLRow(row)
}

// ListCurrentByTenant retrieves the most recent snapshot per loan.
func (r *ECLRepo) ListCurrentByTenant(ctx context.Context, tenantID string) ([]model.ECLResult, error) {
	query := `
		SELECT DISTINCT ON (loan_id)
		       id, loan_id, tenant_id, ecl_value, stage, effective_date, calculated_at
		FROM ecl_results
		WHERE tenant_id = $1
		ORDER BY loan_id, calculated_at DESC
	`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query ecl results: %w", err)
	}
	defer rows.Close()

	var results []model.ECLResult
	for rows.Next() {
		result, err := scanECLRow(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

const selectECL = `
	SELECT id, loan_id, tenant_id, ecl_value, stage, effective_date, calculated_at
	FROM ecl_results`

func scanECLRow(s scannable) (model.ECLResult, error) {
	var (
		id, loanID, tenantID        string
		eclValue                    decimal.Decimal
		stageStr                    string
		effectiveDate, calculatedAt time.Time
	)
	if err := s.Scan(&id, &loanID, &tenantID, &eclValue, &stageStr, &effectiveDate, &calculatedAt); err != nil {
		return model.ECLResult{}, fmt.Errorf("scan ecl result: %w", err)
	}

	stage, err := valueobject.NewStage(stageStr)
	if err != nil {
		return model.ECLResult{}, fmt.Errorf("parse stage: %w", err)
	}

	return model.ECLResult{
		ID:            id,
		LoanID:        loanID,
		TenantID:      tenantID,
		ECLValue:      eclValue,
		Stage:         stage,
		EffectiveDate: effectiveDate,
		CalculatedAt:  calculatedAt,
	}, nil
}
