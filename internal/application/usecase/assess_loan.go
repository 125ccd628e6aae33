package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/application/dto"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/event"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/port"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/service"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// AssessLoanUseCase runs the full risk pipeline for one loan at an explicit
// as-of date: aging, lifecycle sync, IFRS 9 staging, ECL snapshot, statutory
// provision, divergence reconciliation, and the composite risk score.
//
// The as-of date always comes from the request, never from the wall clock,
// so backdated month-end runs produce the same figures every time.
type AssessLoanUseCase struct {
	loanRepo      port.LoanRepository
	eclRepo       port.ECLResultRepository
	provisionRepo port.ProvisionRecordRepository
	caseRepo      port.CollectionCaseRepository
	publisher     port.EventPublisher
	profiles      port.CustomerProfileReader
	aging         *service.AgingCalculator
	stager        *service.StageClassifier
	estimator     *service.ECLEstimator
	provisioner   *service.ProvisioningCalculator
	scorer        *service.RiskScorer
}

// NewAssessLoanUseCase wires dependencies.
func NewAssessLoanUseCase(
	loanRepo port.LoanRepository,
	eclRepo port.ECLResultRepository,
	provisionRepo port.ProvisionRecordRepository,
	caseRepo port.CollectionCaseRepository,
	publisher port.EventPublisher,
	profiles port.CustomerProfileReader,
	aging *service.AgingCalculator,
	stager *service.StageClassifier,
	estimator *service.ECLEstimator,
	provisioner *service.ProvisioningCalculator,
	scorer *service.RiskScorer,
) *AssessLoanUseCase {
	return &AssessLoanUseCase{
		loanRepo:      loanRepo,
		eclRepo:       eclRepo,
		provisionRepo: provisionRepo,
		caseRepo:      caseRepo,
		publisher:     publisher,
		profiles:      profiles,
		aging:         aging,
		stager:        stager,
		estimator:     estimator,
		provisioner:   provisioner,
		scorer:        scorer,
	}
}

// Execute assesses one loan.
func (uc *AssessLoanUseCase) Execute(
	ctx context.Context,
	req dto.AssessLoanRequest,
) (dto.LoanAssessmentResponse, error) {
	now := time.Now().UTC()
	asOf := req.AsOfDate
	if asOf.IsZero() {
		asOf = now
	}

	// 1. Load the aggregate.
	loan, err := uc.loanRepo.FindByID(ctx, req.TenantID, req.LoanID)
	if err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("find loan: %w", err)
	}

	// 2. Derive days-overdue and the aging bucket.
	aging := uc.aging.Assess(loan.NextPaymentDate(), asOf)

	// 3. Sync the lifecycle status with the observed aging.
	loan, changed, err := syncLifecycle(loan, aging, now)
	if err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("sync lifecycle: %w", err)
	}
	if changed {
		if err := uc.loanRepo.Save(ctx, loan); err != nil {
			return dto.LoanAssessmentResponse{}, fmt.Errorf("save loan: %w", err)
		}
	}

	// 4. Stage classification is recomputed from current facts every run.
	stage, err := uc.stager.Classify(loan.Status(), aging.Bucket)
	if err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("classify stage: %w", err)
	}

	// 5. Append a fresh ECL snapshot. Exposure at default is the principal.
	ecl, err := uc.estimator.Estimate(loan.ID(), loan.TenantID(), stage.Stage, loan.Principal(), asOf, now)
	if err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("estimate ecl: %w", err)
	}
	if err := uc.eclRepo.Append(ctx, ecl); err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("append ecl: %w", err)
	}

	// 6. Recalculate the statutory provision and supersede the current record.
	provision, err := uc.provisioner.Calculate(loan.ID(), loan.TenantID(), stage.Stage, loan.OutstandingBalance(), asOf)
	if err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("calculate provision: %w", err)
	}
	if err := uc.provisionRepo.Supersede(ctx, provision); err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("supersede provision: %w", err)
	}

	// 7. Reconcile the two frameworks.
	divergence := uc.provisioner.Reconcile(provision, ecl)

	// 8. Composite risk score from the customer profile and loan snapshot.
	profile, err := uc.profiles.GetProfile(ctx, req.TenantID, loan.CustomerID())
	if err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("fetch customer profile: %w", err)
	}
	risk := uc.scorer.Score(profile, loan.Snapshot())

	// 9. Credit-impaired loans get a collections case if none is open.
	caseEvents, err := uc.ensureCollectionCase(ctx, loan, stage.Stage, now)
	if err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("ensure collection case: %w", err)
	}

	// 10. Publish lifecycle and assessment events together.
	evts := append(loan.DomainEvents(),
		event.NewECLSnapshotTaken(loan.ID(), loan.TenantID(), stage.Stage.String(), ecl.ECLValue, asOf),
		event.NewProvisionSuperseded(loan.ID(), loan.TenantID(), stage.Stage.String(), provision.ProvisionAmount, provision.ProvisionPercentage),
	)
	if divergence.Flagged {
		evts = append(evts, event.NewProvisionDivergenceFlagged(
			loan.ID(), loan.TenantID(),
			provision.ProvisionAmount, ecl.ECLValue, divergence.Ratio, divergence.Threshold,
		))
	}
	evts = append(evts, caseEvents...)
	if err := uc.publisher.Publish(ctx, evts...); err != nil {
		return dto.LoanAssessmentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.LoanAssessmentResponse{
		LoanID:              loan.ID(),
		AsOfDate:            asOf,
		DaysOverdue:         aging.DaysOverdue,
		AgingBucket:         aging.Bucket.String(),
		Stage:               stage.Stage.String(),
		ECLValue:            ecl.ECLValue,
		ProvisionAmount:     provision.ProvisionAmount,
		ProvisionPercentage: provision.ProvisionPercentage,
		RiskScore:           risk.RiskScore,
		RiskCategory:        risk.Category.String(),
		RecommendedAction:   risk.RecommendedAction,
		DivergenceFlagged:   divergence.Flagged,
		DivergenceRatio:     divergence.Ratio,
	}, nil
}

// syncLifecycle applies system-initiated delinquency transitions driven by
// the observed aging. Terminal and pre-disbursement statuses are untouched.
func syncLifecycle(loan model.LoanAccount, aging model.AgingAssessment, now time.Time) (model.LoanAccount, bool, error) {
	status := loan.Status()
	switch {
	case status.Equal(valueobject.LoanStatusActive) && aging.DaysOverdue > 0:
		next, err := loan.MarkOverdue(now)
		if err != nil {
			return loan, false, err
		}
		if aging.Bucket.AtLeast(valueobject.AgingBucketD61_90) {
			next, err = next.MarkDelinquent(now)
			if err != nil {
				return loan, false, err
			}
		}
		return next, true, nil
	case status.Equal(valueobject.LoanStatusOverdue) && aging.Bucket.AtLeast(valueobject.AgingBucketD61_90):
		next, err := loan.MarkDelinquent(now)
		if err != nil {
			return loan, false, err
		}
		return next, true, nil
	case status.IsPastDue() && aging.DaysOverdue == 0:
		next, err := loan.Cure(now)
		if err != nil {
			return loan, false, err
		}
		return next, true, nil
	default:
		return loan, false, nil
	}
}

// ensureCollectionCase opens a case for credit-impaired loans that have none.
// The stage and outstanding balance at opening are frozen on the case.
func (uc *AssessLoanUseCase) ensureCollectionCase(
	ctx context.Context,
	loan model.LoanAccount,
	stage valueobject.Stage,
	now time.Time,
) ([]event.DomainEvent, error) {
	if !loan.Status().IsCreditImpaired() {
		return nil, nil
	}

	open, err := uc.caseRepo.FindOpenByLoanID(ctx, loan.TenantID(), loan.ID())
	if err != nil {
		return nil, fmt.Errorf("find open cases: %w", err)
	}
	if len(open) > 0 {
		return nil, nil
	}

	c, err := model.NewCollectionCase(loan.ID(), loan.TenantID(), stage, loan.OutstandingBalance(), now)
	if err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}
	if err := uc.caseRepo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save case: %w", err)
	}

	return []event.DomainEvent{
		event.NewCollectionCaseOpened(loan.ID(), loan.TenantID(), c.ID(), stage.String(), loan.OutstandingBalance()),
	}, nil
}
