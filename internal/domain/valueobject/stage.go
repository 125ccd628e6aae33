package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Stage – immutable value object
// ---------------------------------------------------------------------------

// Stage is the IFRS 9 credit-risk stage of a loan. Stage 1 is performing,
// stage 2 reflects a significant increase in credit risk, stage 3 is
// credit-impaired. A stage 3 loan can cure back to stage 1; staging is a
// derived fact, never a sticky state.
type Stage struct {
	value string
}

const (
	stage1 = "STAGE_1"
	stage2 = "STAGE_2"
	stage3 = "STAGE_3"
)

var (
	Stage1 = Stage{value: stage1}
	Stage2 = Stage{value: stage2}
	Stage3 = Stage{value: stage3}
)

var validStages = map[string]Stage{
	stage1: Stage1,
	stage2: Stage2,
	stage3: Stage3,
}

// NewStage creates a Stage from a raw string.
func NewStage(s string) (Stage, error) {
	v, ok := validStages[s]
	if !ok {
		return Stage{}, fmt.Errorf("invalid IFRS 9 stage: %q", s)
	}
	return v, nil
}

// String returns the string representation of the stage.
func (s Stage) String() string { return s.value }

// IsZero returns true if the stage has not been initialised.
func (s Stage) IsZero() bool { return s.value == "" }

// Equal returns true when both stages carry the same value.
func (s Stage) Equal(other Stage) bool { return s.value == other.value }
