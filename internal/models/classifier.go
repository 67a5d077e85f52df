// Package models provides the native classifiers behind the registry and the
// loader for their portable JSON artifacts.
package models

import "math"

// Classifier turns an ordered feature vector into a probability in [0, 1]
type Classifier interface {
	PredictProbability(x []float64) (float64, error)
}

// ClassifierFunc adapts a plain function to Classifier
type ClassifierFunc func(x []float64) (float64, error)

// PredictProbability calls f(x)
func (f ClassifierFunc) PredictProbability(x []float64) (float64, error) {
	return f(x)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
