package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/event"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// --- Mocks shared across the usecase tests ---

type mockLoanRepository struct {
	saveFunc           func(ctx context.Context, loan model.LoanAccount) error
	findByIDFunc       func(ctx context.Context, tenantID, id string) (model.LoanAccount, error)
	findAllByTenant    func(ctx context.Context, tenantID string) ([]model.LoanAccount, error)
	findByCustomerFunc func(ctx context.Context, tenantID, customerID string) ([]model.LoanAccount, error)
	savedLoans         []model.LoanAccount
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.LoanAccount) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, tenantID, id string) (model.LoanAccount, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.LoanAccount{}, fmt.Errorf("loan not found")
}

func (m *mockLoanRepository) FindByCustomerID(ctx context.Context, tenantID, customerID string) ([]model.LoanAccount, error) {
	if m.findByCustomerFunc != nil {
		return m.findByCustomerFunc(ctx, tenantID, customerID)
	}
	return nil, nil
}

func (m *mockLoanRepository) FindAllByTenant(ctx context.Context, tenantID string) ([]model.LoanAccount, error) {
	if m.findAllByTenant != nil {
		return m.findAllByTenant(ctx, tenantID)
	}
	return nil, nil
}

type mockRepaymentRepository struct {
	appendFunc       func(ctx context.Context, r model.Repayment) error
	findByLoanIDFunc func(ctx context.Context, tenantID, loanID string) ([]model.Repayment, error)
	appended         []model.Repayment
}

func (m *mockRepaymentRepository) Append(ctx context.Context, r model.Repayment) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, r)
	}
	m.appended = append(m.appended, r)
	return nil
}

func (m *mockRepaymentRepository) FindByLoanID(ctx context.Context, tenantID, loanID string) ([]model.Repayment, error) {
	if m.findByLoanIDFunc != nil {
		return m.findByLoanIDFunc(ctx, tenantID, loanID)
	}
	return nil, nil
}

type mockECLRepository struct {
	appendFunc          func(ctx context.Context, r model.ECLResult) error
	listCurrentFunc     func(ctx context.Context, tenantID string) ([]model.ECLResult, error)
	findLatestByLoan    func(ctx context.Context, tenantID, loanID string) (model.ECLResult, error)
	appended            []model.ECLResult
}

func (m *mockECLRepository) Append(ctx context.Context, r model.ECLResult) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, r)
	}
	m.appended = append(m.appended, r)
	return nil
}

func (m *mockECLRepository) FindLatestByLoanID(ctx context.Context, tenantID, loanID string) (model.ECLResult, error) {
	if m.findLatestByLoan != nil {
		return m.findLatestByLoan(ctx, tenantID, loanID)
	}
	return model.ECLResult{}, fmt.Errorf("ecl result not found")
}

func (m *mockECLRepository) ListCurrentByTenant(ctx context.Context, tenantID string) ([]model.ECLResult, error) {
	if m.listCurrentFunc != nil {
		return m.listCurrentFunc(ctx, tenantID)
	}
	return nil, nil
}

type mockProvisionRepository struct {
	supersedeFunc   func(ctx context.Context, r model.ProvisionRecord) error
	listCurrentFunc func(ctx context.Context, tenantID string) ([]model.ProvisionRecord, error)
	findCurrentFunc func(ctx context.Context, tenantID, loanID string) (model.ProvisionRecord, error)
	superseded      []model.ProvisionRecord
}

func (m *mockProvisionRepository) Supersede(ctx context.Context, r model.ProvisionRecord) error {
	if m.supersedeFunc != nil {
		return m.supersedeFunc(ctx, r)
	}
	m.superseded = append(m.superseded, r)
	return nil
}

func (m *mockProvisionRepository) FindCurrentByLoanID(ctx context.Context, tenantID, loanID string) (model.ProvisionRecord, error) {
	if m.findCurrentFunc != nil {
		return m.findCurrentFunc(ctx, tenantID, loanID)
	}
	return model.ProvisionRecord{}, fmt.Errorf("provision record not found")
}

func (m *mockProvisionRepository) ListCurrentByTenant(ctx context.Context, tenantID string) ([]model.ProvisionRecord, error) {
	if m.listCurrentFunc != nil {
		return m.listCurrentFunc(ctx, tenantID)
	}
	return nil, nil
}

type mockCollectionCaseRepository struct {
	saveFunc           func(ctx context.Context, c model.CollectionCase) error
	findOpenByLoanFunc func(ctx context.Context, tenantID, loanID string) ([]model.CollectionCase, error)
	savedCases         []model.CollectionCase
}

func (m *mockCollectionCaseRepository) Save(ctx context.Context, c model.CollectionCase) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, c)
	}
	m.savedCases = append(m.savedCases, c)
	return nil
}

func (m *mockCollectionCaseRepository) FindByID(ctx context.Context, tenantID, id string) (model.CollectionCase, error) {
	return model.CollectionCase{}, fmt.Errorf("case not found")
}

func (m *mockCollectionCaseRepository) FindOpenByLoanID(ctx context.Context, tenantID, loanID string) ([]model.CollectionCase, error) {
	if m.findOpenByLoanFunc != nil {
		return m.findOpenByLoanFunc(ctx, tenantID, loanID)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockProfileReader struct {
	getProfileFunc func(ctx context.Context, tenantID, customerID string) (model.CustomerRiskProfile, error)
}

func (m *mockProfileReader) GetProfile(ctx context.Context, tenantID, customerID string) (model.CustomerRiskProfile, error) {
	if m.getProfileFunc != nil {
		return m.getProfileFunc(ctx, tenantID, customerID)
	}
	return model.CustomerRiskProfile{CustomerID: customerID, CreditScore: 720, KYCVerified: true}, nil
}

// --- Shared fixtures ---

func activeLoan() model.LoanAccount {
	now := time.Now().UTC()
	return model.ReconstructLoanAccount(
		"loan-001", "tenant-001", "customer-001",
		decimal.NewFromInt(10000), "ZMW",
		decimal.NewFromInt(12), 12,
		valueobject.LoanStatusActive,
		nil,
		decimal.NewFromInt(10000),
		now, now.AddDate(0, 1, 0), time.Time{},
		1, now, now,
	)
}

func approvedLoan() model.LoanAccount {
	now := time.Now().UTC()
	return model.ReconstructLoanAccount(
		"loan-001", "tenant-001", "customer-001",
		decimal.NewFromInt(10000), "ZMW",
		decimal.NewFromInt(12), 12,
		valueobject.LoanStatusApproved,
		nil,
		decimal.Zero,
		time.Time{}, time.Time{}, time.Time{},
		1, now, now,
	)
}
