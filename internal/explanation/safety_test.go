package explanation

import (
	"testing"

	"github.com/jonathan/risk-router/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestFindBanned(t *testing.T) {
	assert.Nil(t, FindBanned("Blood sugar increased 35% over 18 months"))
	assert.Equal(t, []string{"should"}, FindBanned("The patient SHOULD rest"))
	assert.Equal(t, []string{"diagnos", "treat"}, FindBanned("Diagnosis suggests treatment"))
	assert.Equal(t, []string{"recommend", "prescribe"}, FindBanned("We recommend you prescribe it"))
}

func TestTemplates_AreSafe(t *testing.T) {
	for _, tpl := range Templates {
		for _, sentence := range []string{tpl.High, tpl.Moderate, tpl.HighNoDuration} {
			assert.True(t, IsSafe(sentence), "template for %s: %q", tpl.Feature, sentence)
		}
	}
}

func TestRiskDescriptions_AreSafe(t *testing.T) {
	for _, level := range []types.RiskLevel{types.RiskLow, types.RiskMedium, types.RiskHigh, types.RiskCritical, types.RiskUnknown} {
		assert.True(t, IsSafe(RiskDescription(level)), "description for %s", level)
	}
}

func TestRenderedFactors_AreSafe(t *testing.T) {
	engine := NewEngine(WithTopN(len(Templates)))
	for _, value := range []float64{0.4, 0.9, 8, 14, 35, 70, 250} {
		fv := types.FeatureVector{}
		for _, tpl := range Templates {
			fv[tpl.Feature] = value
		}
		for _, level := range []types.RiskLevel{types.RiskLow, types.RiskMedium, types.RiskHigh} {
			res := engine.Explain(fv, level, 0.5)
			for _, sentence := range res.Summary {
				assert.True(t, IsSafe(sentence), "%q", sentence)
			}
			assert.True(t, IsSafe(res.RiskDescription))
		}
	}
}
