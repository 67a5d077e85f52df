package features

import "github.com/jonathan/risk-router/internal/types"

// Set is the feature catalog of one model
type Set struct {
	Required []string
	Optional []string
}

// All returns Required followed by Optional. This is the column order of the model input.
func (s Set) All() []string {
	all := make([]string, 0, len(s.Required)+len(s.Optional))
	all = append(all, s.Required...)
	return append(all, s.Optional...)
}

// Coverage returns the fraction of the set's features present in fv
func (s Set) Coverage(fv types.FeatureVector) float64 {
	all := s.All()
	if len(all) == 0 {
		return 0
	}
	matched := 0
	for _, name := range all {
		if fv.Has(name) {
			matched++
		}
	}
	return float64(matched) / float64(len(all))
}

// Present returns the set's features present in fv, in model column order
func (s Set) Present(fv types.FeatureVector) []string {
	var present []string
	for _, name := range s.All() {
		if fv.Has(name) {
			present = append(present, name)
		}
	}
	return present
}

// Vector returns the model input for fv: one value per column, absent features as 0
func (s Set) Vector(fv types.FeatureVector) []float64 {
	all := s.All()
	x := make([]float64, len(all))
	for i, name := range all {
		x[i] = fv.ValueOr(name, 0)
	}
	return x
}

var modelSets = map[string]Set{
	types.ModelDiabetes: {
		Required: []string{Age, Sex},
		Optional: []string{
			SugarPercentChange, SugarTrendUp, SugarVelocity,
			SugarVolatility, SugarConsecutiveIncr, SugarMaxSpike,
			SugarTimeSinceBaseline, TrendDurationMonths, MedicationDelay,
		},
	},
	types.ModelCardiac: {
		Required: []string{Age, Sex},
		Optional: []string{
			BPPercentChange, BPTrendUp, BPVelocity,
			BPVolatility, BPConsecutiveIncr, TrendDurationMonths,
			MedicationDelay,
		},
	},
	types.ModelGeneral: {
		Required: []string{Age, Sex},
		Optional: []string{
			SugarPercentChange, SugarTrendUp, TrendDurationMonths,
			BPPercentChange, BPTrendUp, MedicationDelay,
			SugarVelocity, SugarVolatility, SugarConsecutiveIncr,
			SugarMaxSpike, SugarTimeSinceBaseline,
			BPVelocity, BPVolatility, BPConsecutiveIncr,
			MedicationDelayMonths,
		},
	},
}

// ForModel returns the feature set of a registry model
func ForModel(name string) (Set, bool) {
	s, ok := modelSets[name]
	return s, ok
}
