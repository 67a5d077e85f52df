package models

import "fmt"

// ModelLoadError marks a model artifact that could not be loaded.
// It is never fatal: the registry records the model as unhealthy.
type ModelLoadError struct {
	Model string
	Path  string
	Cause error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load %s model from %s: %v", e.Model, e.Path, e.Cause)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Cause
}

// PredictionError marks a single model's failure to produce a probability
type PredictionError struct {
	Model   string
	Message string
	Cause   error
}

func (e *PredictionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s model prediction failed: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s model prediction failed: %s", e.Model, e.Message)
}

func (e *PredictionError) Unwrap() error {
	return e.Cause
}
