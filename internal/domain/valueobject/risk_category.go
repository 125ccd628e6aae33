package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// RiskCategory – immutable value object
// ---------------------------------------------------------------------------

// RiskCategory bands a composite risk score and carries the fixed action
// recommended for loans in that band.
type RiskCategory struct {
	value  string
	action string
}

const (
	riskCategoryLow      = "LOW"
	riskCategoryMedium   = "MEDIUM"
	riskCategoryHigh     = "HIGH"
	riskCategoryCritical = "CRITICAL"
)

var (
	RiskCategoryLow      = RiskCategory{value: riskCategoryLow, action: "Monitor"}
	RiskCategoryMedium   = RiskCategory{value: riskCategoryMedium, action: "Review"}
	RiskCategoryHigh     = RiskCategory{value: riskCategoryHigh, action: "Escalate"}
	RiskCategoryCritical = RiskCategory{value: riskCategoryCritical, action: "Immediate Action"}
)

var validRiskCategories = map[string]RiskCategory{
	riskCategoryLow:      RiskCategoryLow,
	riskCategoryMedium:   RiskCategoryMedium,
	riskCategoryHigh:     RiskCategoryHigh,
	riskCategoryCritical: RiskCategoryCritical,
}

// NewRiskCategory creates a RiskCategory from a raw string.
func NewRiskCategory(s string) (RiskCategory, error) {
	v, ok := validRiskCategories[s]
	if !ok {
		return RiskCategory{}, fmt.Errorf("invalid risk category: %q", s)
	}
	return v, nil
}

// RiskCategoryForScore bands a clamped 0-100 score:
// <=20 LOW, <=50 MEDIUM, <=75 HIGH, else CRITICAL.
func RiskCategoryForScore(score int) RiskCategory {
	switch {
	case score <= 20:
		return RiskCategoryLow
	case score <= 50:
		return RiskCategoryMedium
	case score <= 75:
		return RiskCategoryHigh
	default:
		return RiskCategoryCritical
	}
}

// String returns the string representation of the category.
func (c RiskCategory) String() string { return c.value }

// IsZero returns true if the category has not been initialised.
func (c RiskCategory) IsZero() bool { return c.value == "" }

// Equal returns true when both categories carry the same value.
func (c RiskCategory) Equal(other RiskCategory) bool { return c.value == other.value }

// RecommendedAction returns the fixed action for this band.
func (c RiskCategory) RecommendedAction() string { return c.action }
