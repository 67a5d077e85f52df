// Package features defines the feature catalog consumed from the upstream trend extractor,
// the per-model feature sets, and coverage and signal detection over a FeatureVector.
package features

import (
	"strings"

	"github.com/jonathan/risk-router/internal/types"
)

// Trend features produced upstream
const (
	Age                    = "age"
	Sex                    = "sex"
	SugarPercentChange     = "sugar_percent_change"
	SugarTrendUp           = "sugar_trend_up"
	SugarVelocity          = "sugar_velocity"
	SugarVolatility        = "sugar_volatility"
	SugarConsecutiveIncr   = "sugar_consecutive_increase"
	SugarMaxSpike          = "sugar_max_spike"
	SugarTimeSinceBaseline = "sugar_time_since_baseline"
	BPPercentChange        = "bp_percent_change"
	BPTrendUp              = "bp_trend_up"
	BPVelocity             = "bp_velocity"
	BPVolatility           = "bp_volatility"
	BPConsecutiveIncr      = "bp_consecutive_increase"
	TrendDurationMonths    = "trend_duration_months"
	MedicationDelay        = "medication_delay"
	MedicationDelayMonths  = "medication_delay_months"
)

// Latest vital readings, used only by the rule-based scorer
const (
	Glucose     = "glucose"
	Systolic    = "systolic"
	HeartRate   = "heart_rate"
	Temperature = "temperature"
)

// Signal prefixes used by the router
const (
	SugarPrefix = "sugar_"
	BPPrefix    = "bp_"
)

// Catalog lists the trend features in their canonical order
var Catalog = []string{
	Age, Sex,
	SugarPercentChange, SugarTrendUp, SugarVelocity, SugarVolatility,
	SugarConsecutiveIncr, SugarMaxSpike, SugarTimeSinceBaseline,
	BPPercentChange, BPTrendUp, BPVelocity, BPVolatility, BPConsecutiveIncr,
	TrendDurationMonths, MedicationDelay, MedicationDelayMonths,
}

// Vitals lists the latest-reading inputs accepted next to the trend catalog
var Vitals = []string{Glucose, Systolic, HeartRate, Temperature}

// clinicalSignals are the features whose presence counts as clinical trend data
var clinicalSignals = []string{SugarPercentChange, BPPercentChange, SugarTrendUp, BPTrendUp}

var known = func() map[string]bool {
	m := make(map[string]bool, len(Catalog)+len(Vitals))
	for _, name := range Catalog {
		m[name] = true
	}
	for _, name := range Vitals {
		m[name] = true
	}
	return m
}()

// IsKnown reports whether name is part of the accepted input catalog
func IsKnown(name string) bool {
	return known[name]
}

// HasSignal reports whether any present feature carries the given name prefix
func HasSignal(fv types.FeatureVector, prefix string) bool {
	for name := range fv {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// HasClinicalSignal reports whether any trend signal feature is present
func HasClinicalSignal(fv types.FeatureVector) bool {
	for _, name := range clinicalSignals {
		if fv.Has(name) {
			return true
		}
	}
	return false
}

// FromZeroAbsent converts a vector produced under the legacy convention where a
// zero value meant "not measured". Zero entries are dropped; everything else is kept.
func FromZeroAbsent(values map[string]float64) types.FeatureVector {
	fv := make(types.FeatureVector, len(values))
	for name, v := range values {
		if v != 0 {
			fv[name] = v
		}
	}
	return fv
}
