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

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// Save persists a loan and its amortization schedule. The version predicate
// enforces optimistic locking: a concurrent writer leaves zero rows affected
// and the caller gets StaleSnapshotError.
func (r *LoanRepo) Save(ctx context.Context, loan model.LoanAccount) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	loanQuery := `
		INSERT INTO loans (
			id, tenant_id, customer_id,
			principal, currency, interest_rate_pct, term_months,
			status, outstanding_balance,
			disbursement_date, next_payment_date, closure_date,
			version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			status              = EXCLUDED.status,
			outstanding_balance = EXCLUDED.outstanding_balance,
			disbursement_date   = EXCLUDED.disbursement_date,
			next_payment_date   = EXCLUDED.next_payment_date,
			closure_date        = EXCLUDED.closure_date,
			version             = loans.version + 1,
			updated_at          = EXCLUDED.updated_at
		WHERE loans.version = $13
	`
	tag, err := tx.Exec(ctx, loanQuery,
		loan.ID(), loan.TenantID(), loan.CustomerID(),
		loan.Principal(), loan.Currency(), loan.InterestRatePct(), loan.TermMonths(),
		loan.Status().String(), loan.OutstandingBalance(),
		nullableTime(loan.DisbursementDate()), nullableTime(loan.NextPaymentDate()), nullableTime(loan.ClosureDate()),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.StaleSnapshotError{LoanID: loan.ID(), Version: loan.Version()}
	}

	// The schedule is written once, at disbursement.
	for _, entry := range loan.Schedule() {
		entryQuery := `
			INSERT INTO amortization_entries (loan_id, period, due_date, principal, interest, total, remaining_balance)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (loan_id, period) DO NOTHING
		`
		_, err := tx.Exec(ctx, entryQuery,
			loan.ID(), entry.Period, entry.DueDate,
			entry.Principal, entry.Interest, entry.Total, entry.RemainingBalance,
		)
		if err != nil {
			return fmt.Errorf("save amortization entry %d: %w", entry.Period, err)
		}
	}

	return tx.Commit(ctx)
}

// FindByID retrieves a loan and its amortization schedule by ID.
func (r *LoanRepo) FindByID(ctx context.Context, tenantID, id string) (model.LoanAccount, error) {
	query := selectLoans + ` WHERE tenant_id = $1 AND id = $2`
	row := r.pool.QueryRow(ctx, query, tenantID, id)
	loan, err := scanLoanRow(row)
	if err != nil {
		return model.LoanAccount{}, err
	}
	return r.withSchedule(ctx, loan)
}

// FindByCustomerID retrieves all loans for a customer.
func (r *LoanRepo) FindByCustomerID(ctx context.Context, tenantID, customerID string) ([]model.LoanAccount, error) {
	query := selectLoans + ` WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, tenantID, customerID)
}

// FindAllByTenant retrieves a tenant's whole book for portfolio roll-ups.
func (r *LoanRepo) FindAllByTenant(ctx context.Context, tenantID string) ([]model.LoanAccount, error) {
	query := selectLoans + ` WHERE tenant_id = $1 ORDER BY created_at DESC`
	return r.queryLoans(ctx, query, tenantID)
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

const selectLoans = `
	SELECT id, tenant_id, customer_id,
	       principal, currency, interest_rate_pct, term_months,
	       status, outstanding_balance,
	       disbursement_date, next_payment_date, closure_date,
	       version, created_at, updated_at
	FROM loans`

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.LoanAccount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.LoanAccount
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoanRow(s scannable) (model.LoanAccount, error) {
	var (
		id, tenantID, customerID                       string
		principal                                      decimal.Decimal
		currency                                       string
		interestRatePct                                decimal.Decimal
		termMonths                                     int
		statusStr                                      string
		outstandingBalance                             decimal.Decimal
		disbursementDate, nextPaymentDate, closureDate *time.Time
		version                                        int
		createdAt, updatedAt                           time.Time
	)

	err := s.Scan(
		&id, &tenantID, &customerID,
		&principal, &currency, &interestRatePct, &termMonths,
		&statusStr, &outstandingBalance,
		&disbursementDate, &nextPaymentDate, &closureDate,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.LoanAccount{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.LoanAccount{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoanAccount(
		id, tenantID, customerID,
		principal, currency, interestRatePct, termMonths,
		status, nil, outstandingBalance,
		derefTime(disbursementDate), derefTime(nextPaymentDate), derefTime(closureDate),
		version, createdAt, updatedAt,
	), nil
}

func (r *LoanRepo) withSchedule(ctx context.Context, loan model.LoanAccount) (model.LoanAccount, error) {
	query := `
		SELECT period, due_date, principal, interest, total, remaining_balance
		FROM amortization_entries
		WHERE loan_id = $1
		ORDER BY period
	`
	rows, err := r.pool.Query(ctx, query, loan.ID())
	if err != nil {
		return model.LoanAccount{}, fmt.Errorf("query amortization: %w", err)
	}
	defer rows.Close()

	var schedule []model.AmortizationEntry
	for rows.Next() {
		var e model.AmortizationEntry
		if err := rows.Scan(&e.Period, &e.DueDate, &e.Principal, &e.Interest, &e.Total, &e.RemainingBalance); err != nil {
			return model.LoanAccount{}, fmt.Errorf("scan amortization entry: %w", err)
		}
		schedule = append(schedule, e)
	}
	if err := rows.Err(); err != nil {
		return model.LoanAccount{}, err
	}

	return model.ReconstructLoanAccount(
		loan.ID(), loan.TenantID(), loan.CustomerID(),
		loan.Principal(), loan.Currency(), loan.InterestRatePct(), loan.TermMonths(),
		loan.Status(), schedule, loan.OutstandingBalance(),
		loan.DisbursementDate(), loan.NextPaymentDate(), loan.ClosureDate(),
		loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	), nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
