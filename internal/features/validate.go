package features

import (
	"fmt"

	"github.com/jonathan/risk-router/internal/types"
)

// Warning messages attached to assessments
const (
	WarnMissingAge         = "Missing or invalid 'age' feature"
	WarnNoClinicalSignal   = "No clinical trend data provided - prediction may be unreliable"
	warnNonFiniteFormat    = "Feature %q has a non-finite value and was ignored"
	warnUnrecognizedFormat = "Unrecognized feature %q was ignored"
)

// Normalize returns a copy of fv restricted to usable catalog entries, plus the
// validation warnings for the request. It never fails.
func Normalize(fv types.FeatureVector) (types.FeatureVector, []string) {
	var warnings []string
	clean := make(types.FeatureVector, len(fv))

	for _, name := range fv.Names() {
		v := fv[name]
		if !IsKnown(name) {
			warnings = append(warnings, fmt.Sprintf(warnUnrecognizedFormat, name))
			continue
		}
		if !types.IsFinite(v) {
			warnings = append(warnings, fmt.Sprintf(warnNonFiniteFormat, name))
			continue
		}
		clean[name] = v
	}

	if age, ok := clean.Get(Age); !ok || age <= 0 {
		warnings = append(warnings, WarnMissingAge)
	}
	if !HasClinicalSignal(clean) {
		warnings = append(warnings, WarnNoClinicalSignal)
	}

	return clean, warnings
}
