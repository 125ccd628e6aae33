package port

import (
	"context"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/event"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loan accounts. Save enforces
// optimistic locking and returns StaleSnapshotError when the persisted
// version moved underneath the caller.
type LoanRepository interface {
	Save(ctx context.Context, loan model.LoanAccount) error
	FindByID(ctx context.Context, tenantID, id string) (model.LoanAccount, error)
	FindByCustomerID(ctx context.Context, tenantID, customerID string) ([]model.LoanAccount, error)
	FindAllByTenant(ctx context.Context, tenantID string) ([]model.LoanAccount, error)
}

// RepaymentRepository is an append-only ledger: entries are created by the
// repayment allocator and never mutated or deleted.
type RepaymentRepository interface {
	Append(ctx context.Context, repayment model.Repayment) error
	FindByLoanID(ctx context.Context, tenantID, loanID string) ([]model.Repayment, error)
}

// ECLResultRepository appends expected-credit-loss snapshots. Every
// recalculation adds a new row; history is retained for audit.
type ECLResultRepository interface {
	Append(ctx context.Context, result model.ECLResult) error
	FindLatestByLoanID(ctx context.Context, tenantID, loanID string) (model.ECLResult, error)
	ListCurrentByTenant(ctx context.Context, tenantID string) ([]model.ECLResult, error)
}

// ProvisionRecordRepository keeps one current provision per loan. Supersede
// stamps the previous record and inserts the new one in a single transaction.
type ProvisionRecordRepository interface {
	Supersede(ctx context.Context, record model.ProvisionRecord) error
	FindCurrentByLoanID(ctx context.Context, tenantID, loanID string) (model.ProvisionRecord, error)
	ListCurrentByTenant(ctx context.Context, tenantID string) ([]model.ProvisionRecord, error)
}

// CollectionCaseRepository persists and retrieves collection cases.
type CollectionCaseRepository interface {
	Save(ctx context.Context, c model.CollectionCase) error
	FindByID(ctx context.Context, tenantID, id string) (model.CollectionCase, error)
	FindOpenByLoanID(ctx context.Context, tenantID, loanID string) ([]model.CollectionCase, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers, including
// the audit trail.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// External service ports
// ---------------------------------------------------------------------------

// CustomerProfileReader fetches the read-only customer risk profile owned by
// the customer-management subsystem.
type CustomerProfileReader interface {
	GetProfile(ctx context.Context, tenantID, customerID string) (model.CustomerRiskProfile, error)
}
