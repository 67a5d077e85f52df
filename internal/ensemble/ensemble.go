// Package ensemble combines the probabilities of every usable model, weighted by
// how much of each model's feature catalog the request covers.
package ensemble

import (
	"github.com/jonathan/risk-router/internal/registry"
	"github.com/jonathan/risk-router/internal/types"
	"github.com/sirupsen/logrus"
)

// GeneralWeightMultiplier boosts the general model's coverage weight
const GeneralWeightMultiplier = 1.5

// specialtyOrder fixes the vote order so results are reproducible
var specialtyOrder = []string{types.ModelDiabetes, types.ModelCardiac}

// Vote is one model's contribution to the ensemble
type Vote struct {
	Model       string  `json:"model"`
	Probability float64 `json:"probability"`
	Weight      float64 `json:"weight"`
}

// Collector gathers coverage-weighted votes from a registry. Falling back when
// nothing votes is left to the caller.
type Collector struct {
	registry *registry.Registry
	logger   logrus.FieldLogger
}

// NewCollector creates a Collector
func NewCollector(reg *registry.Registry, logger logrus.FieldLogger) *Collector {
	return &Collector{registry: reg, logger: logger}
}

// Collect gathers the votes of all healthy models: specialties first, general last
// with its weight multiplied by GeneralWeightMultiplier. A failing model is skipped.
func (c *Collector) Collect(fv types.FeatureVector) ([]Vote, []string, []error) {
	var (
		votes    []Vote
		failures []error
		used     []string
	)
	seen := make(map[string]bool)

	order := append(append([]string{}, specialtyOrder...), types.ModelGeneral)
	for _, name := range order {
		d, ok := c.registry.Descriptor(name)
		if !ok || !d.Healthy {
			continue
		}

		prob, err := c.registry.Predict(name, fv)
		if err != nil {
			c.logger.WithError(err).WithField("model", name).Warn("dropping ensemble vote")
			failures = append(failures, err)
			continue
		}

		weight := d.Features.Coverage(fv)
		if name == types.ModelGeneral {
			weight *= GeneralWeightMultiplier
		}
		votes = append(votes, Vote{Model: name, Probability: prob, Weight: weight})

		for _, f := range d.Features.Present(fv) {
			if !seen[f] {
				seen[f] = true
				used = append(used, f)
			}
		}
	}

	return votes, used, failures
}

// Combine returns the weight-normalized mean probability and the confidence
// max(weight) / Σ weight. ok is false when there is no positive total weight.
func Combine(votes []Vote) (probability, confidence float64, ok bool) {
	var sum, weighted, maxWeight float64
	for _, v := range votes {
		if v.Weight <= 0 {
			continue
		}
		sum += v.Weight
		weighted += v.Weight * v.Probability
		maxWeight = max(maxWeight, v.Weight)
	}
	if sum == 0 {
		return 0, 0, false
	}
	return weighted / sum, maxWeight / sum, true
}
