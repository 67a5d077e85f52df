package models

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/jonathan/risk-router/internal/schemas"
)

// Artifact kinds
const (
	KindLogistic         = "logistic"
	KindGradientBoosting = "gradient_boosting"
)

// Artifact is the portable serialized form of a trained classifier
type Artifact struct {
	Name              string             `json:"name"`
	Kind              string             `json:"kind"`
	Version           string             `json:"version,omitempty"`
	Features          []string           `json:"features"`
	Logistic          *LogisticParams    `json:"logistic,omitempty"`
	GradientBoosting  *BoostingParams    `json:"gradient_boosting,omitempty"`
	FeatureImportance map[string]float64 `json:"feature_importance,omitempty"`
}

// LogisticParams are the serialized parameters of a Logistic model
type LogisticParams struct {
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
	Mean         []float64 `json:"mean,omitempty"`
	Scale        []float64 `json:"scale,omitempty"`
}

// BoostingParams are the serialized parameters of a GradientBoosting model
type BoostingParams struct {
	InitScore    float64 `json:"init_score"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []Tree  `json:"trees"`
}

// ParseArtifact validates raw artifact bytes against the artifact schema and decodes them
func ParseArtifact(data []byte) (*Artifact, error) {
	if err := schemas.ValidateModelArtifact(data); err != nil {
		return nil, err
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse artifact JSON: %w", err)
	}
	return &artifact, nil
}

// Build constructs the classifier described by the artifact. columns is the input
// order the caller will use; the artifact's feature list must match it exactly.
func (a *Artifact) Build(columns []string) (Classifier, error) {
	if !slices.Equal(a.Features, columns) {
		return nil, fmt.Errorf("artifact features %v do not match model columns %v", a.Features, columns)
	}

	switch a.Kind {
	case KindLogistic:
		if a.Logistic == nil {
			return nil, fmt.Errorf("logistic parameters missing")
		}
		m := &Logistic{
			Intercept:    a.Logistic.Intercept,
			Coefficients: a.Logistic.Coefficients,
			Mean:         a.Logistic.Mean,
			Scale:        a.Logistic.Scale,
		}
		if err := m.check(len(columns)); err != nil {
			return nil, err
		}
		return m, nil
	case KindGradientBoosting:
		if a.GradientBoosting == nil {
			return nil, fmt.Errorf("gradient boosting parameters missing")
		}
		m := &GradientBoosting{
			InitScore:    a.GradientBoosting.InitScore,
			LearningRate: a.GradientBoosting.LearningRate,
			Trees:        a.GradientBoosting.Trees,
			Width:        len(columns),
		}
		if err := m.check(); err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}
}

// LoadFile reads, validates and builds the classifier stored at path.
// Any failure is reported as a *ModelLoadError; nothing is partially loaded.
func LoadFile(model, path string, columns []string) (Classifier, *Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &ModelLoadError{Model: model, Path: path, Cause: err}
	}

	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, nil, &ModelLoadError{Model: model, Path: path, Cause: err}
	}
	if artifact.Name != model {
		return nil, nil, &ModelLoadError{Model: model, Path: path, Cause: fmt.Errorf("artifact is for model %q", artifact.Name)}
	}

	clf, err := artifact.Build(columns)
	if err != nil {
		return nil, nil, &ModelLoadError{Model: model, Path: path, Cause: err}
	}

	return clf, artifact, nil
}
