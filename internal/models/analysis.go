package models

type WarningType string

const (
	WarningFakeDiscount        WarningType = "fake_discount"
	WarningUrgencyManipulation WarningType = "urgency_manipulation"
	WarningInflatedPrice       WarningType = "inflated_price"
)

// PricingWarning flags a manipulative pricing or urgency pattern.
// Confidence is always in [0,1]. Warnings are never stored on their own,
// only embedded in an AnalysisResult snapshot.
type PricingWarning struct {
	Type        WarningType `json:"type"`
	Confidence  float64     `json:"confidence"`
	Explanation string      `json:"explanation"`
}

// Projections holds the compounded value of a purchase price at fixed
// horizons, rounded to 2 decimal places.
type Projections struct {
	Year5  float64 `json:"year5"`
	Year10 float64 `json:"year10"`
	Year20 float64 `json:"year20"`
}

// OpportunityCost is a derived value, recomputed on demand.
type OpportunityCost struct {
	Amount         float64     `json:"amount"`
	Projections    Projections `json:"projections"`
	ComparisonText string      `json:"comparison_text"`
}

type SuggestedAction string

const (
	ActionProceed  SuggestedAction = "proceed"
	ActionCoolDown SuggestedAction = "cooldown"
	ActionSkip     SuggestedAction = "skip"
)

// ValidAction reports whether a is one of the three suggested actions.
func ValidAction(a SuggestedAction) bool {
	return a == ActionProceed || a == ActionCoolDown || a == ActionSkip
}

// AnalysisResult is the merged recommendation for one analysis request:
// LLM-derived essentiality and messaging plus locally computed warnings and
// opportunity cost. Built once per request and embedded verbatim into a
// CoolDown if the user defers.
type AnalysisResult struct {
	IsEssential         bool             `json:"isEssential"`
	EssentialityScore   float64          `json:"essentialityScore"`
	Reasoning           string           `json:"reasoning"`
	Warnings            []PricingWarning `json:"warnings"`
	OpportunityCost     OpportunityCost  `json:"opportunityCost"`
	PersonalizedMessage string           `json:"personalizedMessage"`
	SuggestedAction     SuggestedAction  `json:"suggestedAction"`
}
