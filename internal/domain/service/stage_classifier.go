package service

import (
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// StageClassifier maps lifecycle status and aging bucket to an IFRS 9 stage.
// The stage is always recomputed from current facts; it is never carried
// forward as sticky state, so a cured loan re-enters stage 1.
type StageClassifier struct{}

// NewStageClassifier returns a classifier instance.
func NewStageClassifier() *StageClassifier {
	return &StageClassifier{}
}

// Classify evaluates the staging rules in precedence order, first match wins:
//
//  1. DEFAULT or WRITTEN_OFF            -> STAGE_3
//  2. OVERDUE/DELINQUENT or bucket >= D31_60 -> STAGE_2
//  3. otherwise                          -> STAGE_1
//
// An uninitialised status fails closed with InvalidInputError rather than
// silently landing in stage 1.
func (c *StageClassifier) Classify(
	status valueobject.LoanStatus,
	bucket valueobject.AgingBucket,
) (model.StageClassification, error) {
	if status.IsZero() {
		return model.StageClassification{}, valueobject.InvalidInputError{
			Field:  "lifecycle_status",
			Reason: "status is not set",
		}
	}

	switch {
	case status.IsCreditImpaired():
		return model.StageClassification{Stage: valueobject.Stage3}, nil
	case status.IsPastDue() || bucket.AtLeast(valueobject.AgingBucketD31_60):
		return model.StageClassification{Stage: valueobject.Stage2}, nil
	default:
		return model.StageClassification{Stage: valueobject.Stage1}, nil
	}
}
