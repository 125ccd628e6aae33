package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// AgingBucket – immutable value object
// ---------------------------------------------------------------------------

// AgingBucket classifies a loan by how many whole days its payment is overdue.
// The buckets partition the integer line with half-open, non-overlapping
// boundaries matching regulatory reporting.
type AgingBucket struct {
	value string
	rank  int
}

const (
	agingBucketCurrent  = "CURRENT"
	agingBucketD1_30    = "D1_30"
	agingBucketD31_60   = "D31_60"
	agingBucketD61_90   = "D61_90"
	agingBucketD91_180  = "D91_180"
	agingBucketD180Plus = "D180_PLUS"
)

var (
	AgingBucketCurrent  = AgingBucket{value: agingBucketCurrent, rank: 0}
	AgingBucketD1_30    = AgingBucket{value: agingBucketD1_30, rank: 1}
	AgingBucketD31_60   = AgingBucket{value: agingBucketD31_60, rank: 2}
	AgingBucketD61_90   = AgingBucket{value: agingBucketD61_90, rank: 3}
	AgingBucketD91_180  = AgingBucket{value: agingBucketD91_180, rank: 4}
	AgingBucketD180Plus = AgingBucket{value: agingBucketD180Plus, rank: 5}
)

var validAgingBuckets = map[string]AgingBucket{
	agingBucketCurrent:  AgingBucketCurrent,
	agingBucketD1_30:    AgingBucketD1_30,
	agingBucketD31_60:   AgingBucketD31_60,
	agingBucketD61_90:   AgingBucketD61_90,
	agingBucketD91_180:  AgingBucketD91_180,
	agingBucketD180Plus: AgingBucketD180Plus,
}

// NewAgingBucket creates an AgingBucket from a raw string.
func NewAgingBucket(s string) (AgingBucket, error) {
	v, ok := validAgingBuckets[s]
	if !ok {
		return AgingBucket{}, fmt.Errorf("invalid aging bucket: %q", s)
	}
	return v, nil
}

// String returns the string representation of the bucket.
func (b AgingBucket) String() string { return b.value }

// IsZero returns true if the bucket has not been initialised.
func (b AgingBucket) IsZero() bool { return b.value == "" }

// Equal returns true when both buckets carry the same value.
func (b AgingBucket) Equal(other AgingBucket) bool { return b.value == other.value }

// AtLeast returns true when b is at least as severe as other.
func (b AgingBucket) AtLeast(other AgingBucket) bool { return b.rank >= other.rank }
