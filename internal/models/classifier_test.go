package models

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogistic_ZeroWeightsGiveHalf(t *testing.T) {
	m := &Logistic{Coefficients: []float64{0, 0}}

	p, err := m.PredictProbability([]float64{10, 20})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)
}

func TestLogistic_Standardization(t *testing.T) {
	m := &Logistic{
		Intercept:    0,
		Coefficients: []float64{1},
		Mean:         []float64{50},
		Scale:        []float64{10},
	}

	// (60-50)/10 = 1 → sigmoid(1)
	p, err := m.PredictProbability([]float64{60})
	require.NoError(t, err)
	assert.InDelta(t, 1/(1+math.Exp(-1)), p, 1e-12)
}

func TestLogistic_WidthMismatch(t *testing.T) {
	m := &Logistic{Coefficients: []float64{1, 2}}

	_, err := m.PredictProbability([]float64{1})
	assert.Error(t, err)
}

func TestGradientBoosting_WalksTrees(t *testing.T) {
	m := &GradientBoosting{
		InitScore:    0,
		LearningRate: 1,
		Width:        1,
		Trees: []Tree{{Nodes: []TreeNode{
			{Feature: 0, Threshold: 60, Left: 1, Right: 2},
			{Left: -1, Right: -1, Value: -2},
			{Left: -1, Right: -1, Value: 2},
		}}},
	}
	require.NoError(t, m.check())

	young, err := m.PredictProbability([]float64{40})
	require.NoError(t, err)
	old, err := m.PredictProbability([]float64{70})
	require.NoError(t, err)

	assert.InDelta(t, 1/(1+math.Exp(2)), young, 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-2)), old, 1e-12)
}

func TestGradientBoosting_CheckRejectsBackEdges(t *testing.T) {
	m := &GradientBoosting{
		LearningRate: 1,
		Width:        1,
		Trees: []Tree{{Nodes: []TreeNode{
			{Feature: 0, Threshold: 1, Left: 0, Right: 1},
			{Left: -1, Right: -1},
		}}},
	}
	assert.Error(t, m.check())
}

func TestGradientBoosting_CheckRejectsFeatureOutOfRange(t *testing.T) {
	m := &GradientBoosting{
		LearningRate: 1,
		Width:        1,
		Trees: []Tree{{Nodes: []TreeNode{
			{Feature: 3, Threshold: 1, Left: 1, Right: 2},
			{Left: -1, Right: -1},
			{Left: -1, Right: -1},
		}}},
	}
	assert.Error(t, m.check())
}

func TestClassifierFunc(t *testing.T) {
	f := ClassifierFunc(func(x []float64) (float64, error) { return 0.25, nil })

	p, err := f.PredictProbability(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.25, p)
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("boom")

	loadErr := &ModelLoadError{Model: "cardiac", Path: "/m/cardiac_model.json", Cause: cause}
	assert.ErrorIs(t, loadErr, cause)
	assert.Contains(t, loadErr.Error(), "cardiac")

	predErr := &PredictionError{Model: "general", Message: "non-finite output"}
	assert.Equal(t, "general model prediction failed: non-finite output", predErr.Error())
}
