package features

import (
	"math"
	"testing"

	"github.com/jonathan/risk-router/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_HasSeventeenTrendFeatures(t *testing.T) {
	assert.Len(t, Catalog, 17)
	for _, name := range Catalog {
		assert.True(t, IsKnown(name), name)
	}
	for _, name := range Vitals {
		assert.True(t, IsKnown(name), name)
	}
	assert.False(t, IsKnown("cholesterol"))
}

func TestHasSignal(t *testing.T) {
	fv := types.FeatureVector{"age": 50, "sugar_velocity": 1.2}

	assert.True(t, HasSignal(fv, SugarPrefix))
	assert.False(t, HasSignal(fv, BPPrefix))
}

func TestHasSignal_ExplicitZeroCounts(t *testing.T) {
	fv := types.FeatureVector{"bp_percent_change": 0}
	assert.True(t, HasSignal(fv, BPPrefix))
}

func TestFromZeroAbsent(t *testing.T) {
	fv := FromZeroAbsent(map[string]float64{"age": 60, "sugar_trend_up": 0, "bp_trend_up": 1})

	assert.Equal(t, types.FeatureVector{"age": 60, "bp_trend_up": 1}, fv)
}

func TestSet_AllOrdersRequiredFirst(t *testing.T) {
	set, ok := ForModel(types.ModelCardiac)
	require.True(t, ok)

	all := set.All()
	assert.Equal(t, []string{Age, Sex}, all[:2])
	assert.Len(t, all, 9)
}

func TestSet_Coverage(t *testing.T) {
	set, ok := ForModel(types.ModelDiabetes)
	require.True(t, ok)

	fv := types.FeatureVector{Age: 52, Sex: 1, SugarPercentChange: 35, BPTrendUp: 1}

	// 3 of 11 diabetes features present; the bp feature is not part of the set
	assert.InDelta(t, 3.0/11.0, set.Coverage(fv), 1e-9)
	assert.Equal(t, []string{Age, Sex, SugarPercentChange}, set.Present(fv))
}

func TestSet_VectorDefaultsAbsentToZero(t *testing.T) {
	set := Set{Required: []string{Age}, Optional: []string{Sex, MedicationDelay}}
	x := set.Vector(types.FeatureVector{Age: 70, MedicationDelay: 1})

	assert.Equal(t, []float64{70, 0, 1}, x)
}

func TestForModel_Unknown(t *testing.T) {
	_, ok := ForModel("oncology")
	assert.False(t, ok)
}

func TestNormalize_DropsUnknownAndNonFinite(t *testing.T) {
	fv := types.FeatureVector{
		Age:                60,
		SugarPercentChange: math.NaN(),
		"cholesterol":      220,
		BPTrendUp:          1,
	}

	clean, warnings := Normalize(fv)

	assert.Equal(t, types.FeatureVector{Age: 60, BPTrendUp: 1}, clean)
	assert.Contains(t, warnings, `Unrecognized feature "cholesterol" was ignored`)
	assert.Contains(t, warnings, `Feature "sugar_percent_change" has a non-finite value and was ignored`)
	assert.NotContains(t, warnings, WarnMissingAge)
	assert.NotContains(t, warnings, WarnNoClinicalSignal)
}

func TestNormalize_MissingAgeAndSignal(t *testing.T) {
	_, warnings := Normalize(types.FeatureVector{Sex: 1})

	assert.Equal(t, []string{WarnMissingAge, WarnNoClinicalSignal}, warnings)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	fv := types.FeatureVector{"unknown": 1}
	_, _ = Normalize(fv)
	assert.Contains(t, fv, "unknown")
}
