package types

// RiskLevel is the coarse category derived from a risk score
type RiskLevel string

// Risk levels. CRITICAL is accepted on the wire but never produced by ClassifyRisk;
// UNKNOWN is reserved for unrecoverable internal errors.
const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
	RiskUnknown  RiskLevel = "UNKNOWN"
)

// Cut points of the canonical risk table
const (
	MediumRiskThreshold = 0.40
	HighRiskThreshold   = 0.70
)

// ClassifyRisk maps a score to its level using the canonical table:
// [0, 0.40) LOW, [0.40, 0.70) MEDIUM, [0.70, 1] HIGH.
func ClassifyRisk(score float64) RiskLevel {
	score = ClampUnit(score)
	switch {
	case score >= HighRiskThreshold:
		return RiskHigh
	case score >= MediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ParseRiskLevel converts a string to a RiskLevel, returning RiskUnknown for unrecognized input
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return RiskLevel(s)
	default:
		return RiskUnknown
	}
}

// ClampUnit bounds v to [0, 1]. NaN maps to 0.
func ClampUnit(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
