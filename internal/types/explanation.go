package types

import "time"

// Severity is the tier of a contributing factor
type Severity string

// Severity tiers
const (
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// Narrative sources for ExplanationResult.NarrativeSource
const (
	NarrativeRules = "rules"
	NarrativeLLM   = "llm"
)

// ContributingFactor is one templated, fact-based explanation entry
type ContributingFactor struct {
	Feature     string   `json:"feature"`
	DisplayName string   `json:"display_name"`
	Value       float64  `json:"value"`
	Severity    Severity `json:"severity"`
	Explanation string   `json:"explanation"`
}

// ExplanationResult holds the ranked factors and the summary for one assessment
type ExplanationResult struct {
	ContributingFactors []ContributingFactor `json:"contributing_factors"`
	Summary             []string             `json:"summary"`
	RiskLevel           RiskLevel            `json:"risk_level"`
	RiskScore           float64              `json:"risk_score"`
	RiskDescription     string               `json:"risk_description"`
	GeneratedAt         time.Time            `json:"generated_at"`

	// Narrative is the optional single-paragraph rendering of Summary.
	// It is only set by the polishing stage and never replaces Summary.
	Narrative       string `json:"narrative,omitempty"`
	NarrativeSource string `json:"narrative_source,omitempty"`
}
