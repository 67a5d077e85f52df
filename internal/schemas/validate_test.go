package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLogistic = `{
  "name": "diabetes",
  "kind": "logistic",
  "version": "1.0.0",
  "features": ["age", "sex"],
  "logistic": {"intercept": -1.2, "coefficients": [0.02, 0.1]}
}`

const validBoosting = `{
  "name": "general",
  "kind": "gradient_boosting",
  "features": ["age"],
  "gradient_boosting": {
    "init_score": 0.0,
    "learning_rate": 0.1,
    "trees": [{"nodes": [
      {"feature": 0, "threshold": 60, "left": 1, "right": 2},
      {"left": -1, "right": -1, "value": -0.5},
      {"left": -1, "right": -1, "value": 0.5}
    ]}]
  }
}`

func TestModelArtifactSchema_IsValidJSON(t *testing.T) {
	var schema map[string]any
	require.NoError(t, json.Unmarshal(ModelArtifactSchema(), &schema))
	assert.Equal(t, "ModelArtifact", schema["title"])
}

func TestValidateModelArtifact_Valid(t *testing.T) {
	assert.NoError(t, ValidateModelArtifact([]byte(validLogistic)))
	assert.NoError(t, ValidateModelArtifact([]byte(validBoosting)))
}

func TestValidateModelArtifact_UnknownKind(t *testing.T) {
	doc := `{"name": "cardiac", "kind": "random_forest", "features": ["age"]}`

	err := ValidateModelArtifact([]byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateModelArtifact_MissingKindPayload(t *testing.T) {
	doc := `{"name": "cardiac", "kind": "logistic", "features": ["age"]}`

	err := ValidateModelArtifact([]byte(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logistic")
}

func TestValidateModelArtifact_UnknownModelName(t *testing.T) {
	doc := `{"name": "oncology", "kind": "logistic", "features": ["age"], "logistic": {"intercept": 0, "coefficients": [1]}}`

	err := ValidateModelArtifact([]byte(doc))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Errors[0].Field)
}

func TestValidateModelArtifact_Corrupt(t *testing.T) {
	err := ValidateModelArtifact([]byte(`{"name": "diab`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr), "error should be SchemaLoadError type")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type": "object", "required": ["a"]}`

	assert.NoError(t, ValidateJSONString(schema, `{"a": 1}`))
	assert.Error(t, ValidateJSONString(schema, `{"b": 1}`))
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "kind", Message: "bad"}}}
	assert.Contains(t, err.Error(), "1. kind: bad")
}
