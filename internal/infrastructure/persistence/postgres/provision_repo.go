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

// ProvisionRepo implements port.ProvisionRecordRepository. A loan has at most
// one current record; recalculation stamps the previous record and inserts
// the new one in a single transaction. Nothing is ever deleted.
type ProvisionRepo struct {
	pool *pgxpool.Pool
}

// NewProvisionRepo creates a new PostgreSQL-backed provision store.
func NewProvisionRepo(pool *pgxpool.Pool) *ProvisionRepo {
	return &ProvisionRepo{pool: pool}
}

// Supersede stamps the loan's current record and inserts the replacement.
func (r *ProvisionRepo) Supersede(ctx context.Context, record model.ProvisionRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	stampQuery := `
		UPDATE provision_records
		SET superseded_at = now()
		WHERE tenant_id = $1 AND loan_id = $2 AND superseded_at IS NULL
	`
	if _, err := tx.Exec(ctx, stampQuery, record.TenantID, record.LoanID); err != nil {
		return fmt.Errorf("stamp superseded provision: %w", err)
	}

	insertQuery := `
		INSERT INTO provision_records (
			id, loan_id, tenant_id,
			provision_amount, provision_percentage, stage, effective_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, insertQuery,
		record.ID, record.LoanID, record.TenantID,
		record.ProvisionAmount, record.ProvisionPercentage, record.Stage.String(), record.EffectiveDate,
	)
	if err != nil {
		return fmt.Errorf("insert provision record: %w", err)
	}

	return tx.Commit(ctx)
}

// FindCurrentByLoanID retrieves the loan's current (unsuperseded) record.
func (r *ProvisionRepo) FindCurrentByLoanID(ctx context.Context, tenantID, loanID string) (model.ProvisionRecord, error) {
	query := selectProvisions + `
		WHERE tenant_id = $1 AND loan_id = $2 AND superseded_at IS NULL
	`
	row := r.pool.QueryRow(ctx, query, tenantID, loanID)
	return scanProvisionRow(row)
}

// ListCurrentByTenant retrieves all current records for a tenant.
func (r *ProvisionRepo) ListCurrentByTenant(ctx context.Context, tenantID string) ([]model.ProvisionRecord, error) {
	query := selectProvisions + `
		WHERE tenant_id = $1 AND superseded_at IS NULL
	`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query provision records: %w", err)
	}
	defer rows.Close()

	var records []model.ProvisionRecord
	for rows.Next() {
		record, err := scanProvisionRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

const selectProvisions = `
	SELECT id, loan_id, tenant_id,
	       provision_amount, provision_percentage, stage, effective_date, superseded_at
	FROM provision_records`

func scanProvisionRow(s scannable) (model.ProvisionRecord, error) {
	var (
		id, loanID, tenantID                 string
		provisionAmount, provisionPercentage decimal.Decimal
		stageStr                             string
		effectiveDate                        time.Time
		supersededAt                         *time.Time
	)
	err := s.Scan(&id, &loanID, &tenantID, &provisionAmount, &provisionPercentage, &stageStr, &effectiveDate, &supersededAt)
	if err != nil {
		return model.ProvisionRecord{}, fmt.Errorf("scan provision record: %w", err)
	}

	stage, err := valueobject.NewStage(stageStr)
	if err != nil {
		return model.ProvisionRecord{}, fmt.Errorf("parse stage: %w", err)
	}

	return model.ProvisionRecord{
		ID:                  id,
		LoanID:              loanID,
		TenantID:            tenantID,
		ProvisionAmount:     provisionAmount,
		ProvisionPercentage: provisionPercentage,
		Stage:               stage,
		EffectiveDate:       effectiveDate,
		SupersededAt:        supersededAt,
	}, nil
}
