package service

import (
	"time"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

// BucketThresholds holds the upper bound (inclusive) in days of each overdue
// bucket below D180_PLUS. The boundaries are jurisdiction configuration, not
// code; the defaults match the standard 30/60/90/180 reporting grid.
type BucketThresholds struct {
	D30  int
	D60  int
	D90  int
	D180 int
}

// DefaultBucketThresholds returns the standard regulatory boundaries.
func DefaultBucketThresholds() BucketThresholds {
	return BucketThresholds{D30: 30, D60: 60, D90: 90, D180: 180}
}

// AgingCalculator derives days-overdue and the aging bucket for a loan at an
// explicit as-of date. It is a pure function of its inputs; the as-of date is
// always threaded in by the caller, never taken from the wall clock.
type AgingCalculator struct {
	thresholds BucketThresholds
}

// NewAgingCalculator creates a calculator with the given bucket boundaries.
func NewAgingCalculator(thresholds BucketThresholds) *AgingCalculator {
	return &AgingCalculator{thresholds: thresholds}
}

// Assess computes the AgingAssessment for a loan snapshot. Loans without a
// next payment date (not yet disbursed) are CURRENT with zero days overdue.
func (c *AgingCalculator) Assess(nextPaymentDate time.Time, asOf time.Time) model.AgingAssessment {
	days := 0
	if !nextPaymentDate.IsZero() {
		days = wholeDaysBetween(nextPaymentDate, asOf)
		if days < 0 {
			days = 0
		}
	}
	return model.AgingAssessment{
		DaysOverdue: days,
		Bucket:      c.bucketFor(days),
		AsOfDate:    asOf,
	}
}

// bucketFor assigns the half-open, non-overlapping regulatory buckets:
// CURRENT (<=0), D1_30 (1-30), D31_60 (31-60), D61_90 (61-90),
// D91_180 (91-180), D180_PLUS (>180).
func (c *AgingCalculator) bucketFor(daysOverdue int) valueobject.AgingBucket {
	switch {
	case daysOverdue <= 0:
		return valueobject.AgingBucketCurrent
	case daysOverdue <= c.thresholds.D30:
		return valueobject.AgingBucketD1_30
	case daysOverdue <= c.thresholds.D60:
		return valueobject.AgingBucketD31_60
	case daysOverdue <= c.thresholds.D90:
		return valueobject.AgingBucketD61_90
	case daysOverdue <= c.thresholds.D180:
		return valueobject.AgingBucketD91_180
	default:
		return valueobject.AgingBucketD180Plus
	}
}

// wholeDaysBetween counts whole calendar days from `from` to `to`, ignoring
// the time-of-day component of both.
func wholeDaysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
