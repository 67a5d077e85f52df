package explanation

import (
	"github.com/jonathan/risk-router/internal/features"
	"github.com/jonathan/risk-router/internal/types"
)

// Template placeholders
const (
	valuePlaceholder    = "{value}"
	durationPlaceholder = "{duration}"
)

// Template holds the sentences for one feature. A factor is high when its value
// exceeds Threshold and moderate when it lies in (Threshold/2, Threshold].
// An empty sentence means the tier is not reported.
type Template struct {
	Feature   string
	Threshold float64
	High      string
	Moderate  string
	// HighNoDuration replaces High when High needs {duration} and the trend
	// duration is absent
	HighNoDuration string
}

// Templates is the closed template catalog, in catalog order
var Templates = []Template{
	{
		Feature:        features.SugarPercentChange,
		Threshold:      15,
		High:           "Blood sugar increased {value}% over {duration} months",
		HighNoDuration: "Blood sugar increased {value}% over the monitoring period",
		Moderate:       "Blood sugar rose {value}% during the monitoring period",
	},
	{
		Feature:   features.BPPercentChange,
		Threshold: 10,
		High:      "Blood pressure increased {value}% across multiple visits",
		Moderate:  "Blood pressure showed upward trend ({value}% change)",
	},
	{
		Feature:   features.MedicationDelay,
		Threshold: 0.5,
		High:      "Medication was initiated late in the observation period",
		Moderate:  "Medication start time fell partway into the observation period",
	},
	{
		Feature:   features.TrendDurationMonths,
		Threshold: 12,
		High:      "Concerning trends persisted for {value} months",
		Moderate:  "Trends observed over {value} months",
	},
	{
		Feature:   features.Age,
		Threshold: 60,
		High:      "Patient age ({value}) is a contributing factor",
	},
}

// riskDescriptions are the fixed per-level descriptions. CRITICAL reuses HIGH.
var riskDescriptions = map[types.RiskLevel]string{
	types.RiskHigh:     "This patient shows multiple indicators of clinical deterioration that warrant attention.",
	types.RiskCritical: "This patient shows multiple indicators of clinical deterioration that warrant attention.",
	types.RiskMedium:   "This patient shows some concerning trends that are worth monitoring.",
	types.RiskLow:      "This patient's metrics are within expected ranges.",
}

// RiskDescription returns the fixed description for level, or "" for UNKNOWN
func RiskDescription(level types.RiskLevel) string {
	return riskDescriptions[level]
}

var displayNames = map[string]string{
	features.SugarPercentChange:  "Blood Sugar Change",
	features.BPPercentChange:     "Blood Pressure Change",
	features.MedicationDelay:     "Medication Timing",
	features.TrendDurationMonths: "Trend Duration",
	features.SugarTrendUp:        "Blood Sugar Trend",
	features.BPTrendUp:           "Blood Pressure Trend",
	features.Age:                 "Age",
	features.Sex:                 "Sex",
}

// DisplayName returns the human-readable name of a feature
func DisplayName(feature string) string {
	if name, ok := displayNames[feature]; ok {
		return name
	}
	return feature
}
