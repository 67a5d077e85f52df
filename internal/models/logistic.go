package models

import "fmt"

// Logistic is a standardized logistic regression:
// p = sigmoid(intercept + Σ coef[i] * (x[i] - mean[i]) / scale[i])
type Logistic struct {
	Intercept    float64
	Coefficients []float64
	// Mean and Scale are optional; when empty the inputs are used as-is
	Mean  []float64
	Scale []float64
}

// PredictProbability implements Classifier
func (m *Logistic) PredictProbability(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(m.Coefficients), len(x))
	}

	z := m.Intercept
	for i, coef := range m.Coefficients {
		v := x[i]
		if len(m.Mean) > 0 {
			v -= m.Mean[i]
		}
		if len(m.Scale) > 0 && m.Scale[i] != 0 {
			v /= m.Scale[i]
		}
		z += coef * v
	}

	return sigmoid(z), nil
}

func (m *Logistic) check(width int) error {
	if len(m.Coefficients) != width {
		return fmt.Errorf("logistic has %d coefficients for %d features", len(m.Coefficients), width)
	}
	if len(m.Mean) != 0 && len(m.Mean) != width {
		return fmt.Errorf("logistic mean has %d entries for %d features", len(m.Mean), width)
	}
	if len(m.Scale) != 0 && len(m.Scale) != width {
		return fmt.Errorf("logistic scale has %d entries for %d features", len(m.Scale), width)
	}
	return nil
}
