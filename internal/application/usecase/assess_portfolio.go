package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/port"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/service"
)

// AssessPortfolioUseCase rolls a tenant's book up into portfolio metrics.
// Every figure is recomputed from first principles on each call; nothing is
// cached or incrementally maintained.
type AssessPortfolioUseCase struct {
	loanRepo      port.LoanRepository
	eclRepo       port.ECLResultRepository
	provisionRepo port.ProvisionRecordRepository
	aggregator    *service.PortfolioAggregator
}

// NewAssessPortfolioUseCase wires dependencies.
func NewAssessPortfolioUseCase(
	loanRepo port.LoanRepository,
	eclRepo port.ECLResultRepository,
	provisionRepo port.ProvisionRecordRepository,
	aggregator *service.PortfolioAggregator,
) *AssessPortfolioUseCase {
	return &AssessPortfolioUseCase{
		loanRepo:      loanRepo,
		eclRepo:       eclRepo,
		provisionRepo: provisionRepo,
		aggregator:    aggregator,
	}
}

// Execute computes the portfolio summary at the requested as-of date.
func (uc *AssessPortfolioUseCase) Execute(
	ctx context.Context,
	req dto.AssessPortfolioRequest,
) (dto.PortfolioSummaryResponse, error) {
	asOf := req.AsOfDate
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	// 1. Load the book.
	loans, err := uc.loanRepo.FindAllByTenant(ctx, req.TenantID)
	if err != nil {
		return dto.PortfolioSummaryResponse{}, fmt.Errorf("load loans: %w", err)
	}

	// 2. Pull current ECL and provision figures in bulk.
	ecls, err := uc.eclRepo.ListCurrentByTenant(ctx, req.TenantID)
	if err != nil {
		return dto.PortfolioSummaryResponse{}, fmt.Errorf("load ecl snapshots: %w", err)
	}
	eclByLoan := make(map[string]decimal.Decimal, len(ecls))
	for _, e := range ecls {
		eclByLoan[e.LoanID] = e.ECLValue
	}

	provisions, err := uc.provisionRepo.ListCurrentByTenant(ctx, req.TenantID)
	if err != nil {
		return dto.PortfolioSummaryResponse{}, fmt.Errorf("load provisions: %w", err)
	}
	provisionByLoan := make(map[string]decimal.Decimal, len(provisions))
	for _, p := range provisions {
		provisionByLoan[p.LoanID] = p.ProvisionAmount
	}

	// 3. Assemble and aggregate. Loans never assessed carry zero ECL and
	// provision until their first assessment run.
	portfolio := make([]service.PortfolioLoan, 0, len(loans))
	for _, loan := range loans {
		portfolio = append(portfolio, service.PortfolioLoan{
			Snapshot:        loan.Snapshot(),
			ECLValue:        eclByLoan[loan.ID()],
			ProvisionAmount: provisionByLoan[loan.ID()],
		})
	}

	summary, err := uc.aggregator.Aggregate(portfolio, asOf)
	if err != nil {
		return dto.PortfolioSummaryResponse{}, fmt.Errorf("aggregate portfolio: %w", err)
	}

	return dto.PortfolioSummaryResponse{
		TenantID:         req.TenantID,
		AsOfDate:         summary.AsOfDate,
		TotalLoans:       summary.TotalLoans,
		StatusCounts:     summary.StatusCounts,
		StageCounts:      summary.StageCounts,
		TotalOutstanding: summary.TotalOutstanding,
		PAR30Count:       summary.PAR30Count,
		PAR90Count:       summary.PAR90Count,
		PAR30Outstanding: summary.PAR30Outstanding,
		PAR90Outstanding: summary.PAR90Outstanding,
		TotalECL:         summary.TotalECL,
		TotalProvisions:  summary.TotalProvisions,
	}, nil
}
