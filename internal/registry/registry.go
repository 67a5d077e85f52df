// Package registry loads the specialty classifiers once at startup and exposes
// them, with their health, to the router and the ensemble.
package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonathan/risk-router/internal/features"
	"github.com/jonathan/risk-router/internal/models"
	"github.com/jonathan/risk-router/internal/types"
	"github.com/sirupsen/logrus"
)

// ArtifactFileName returns the artifact file name for a model
func ArtifactFileName(model string) string {
	return model + "_model.json"
}

// Descriptor describes one loaded (or failed) model. It is immutable after load.
type Descriptor struct {
	Name       string
	Features   features.Set
	Classifier models.Classifier
	Healthy    bool
	Version    string
	Importance map[string]float64
	LoadError  string
}

// Registry holds the model descriptors. It is read-only after construction and
// safe for concurrent use without locking.
type Registry struct {
	models map[string]Descriptor
}

// New builds a registry from in-memory descriptors. A descriptor without a
// classifier is always unhealthy; a missing feature set is filled from the catalog.
func New(descriptors ...Descriptor) *Registry {
	r := &Registry{models: make(map[string]Descriptor, len(descriptors))}
	for _, d := range descriptors {
		if len(d.Features.All()) == 0 {
			d.Features, _ = features.ForModel(d.Name)
		}
		if d.Classifier == nil {
			d.Healthy = false
		}
		r.models[d.Name] = d
	}
	return r
}

// Load reads every known model from dir. Failures mark the model unhealthy and
// are logged; Load itself never fails.
func Load(dir string, logger logrus.FieldLogger) *Registry {
	descriptors := make([]Descriptor, 0, len(types.ModelNames))

	for _, name := range types.ModelNames {
		set, _ := features.ForModel(name)
		path := filepath.Join(dir, ArtifactFileName(name))
		log := logger.WithFields(logrus.Fields{"model": name, "path": path})

		clf, artifact, err := models.LoadFile(name, path, set.All())
		if err != nil {
			log.WithError(err).Warn("model unavailable, marking unhealthy")
			descriptors = append(descriptors, Descriptor{Name: name, Features: set, LoadError: err.Error()})
			continue
		}

		log.WithFields(logrus.Fields{"kind": artifact.Kind, "version": artifact.Version}).Info("loaded model")
		descriptors = append(descriptors, Descriptor{
			Name:       name,
			Features:   set,
			Classifier: clf,
			Healthy:    true,
			Version:    artifact.Version,
			Importance: artifact.FeatureImportance,
		})
	}

	return New(descriptors...)
}

// Get returns the classifier of a healthy model
func (r *Registry) Get(name string) (models.Classifier, bool) {
	d, ok := r.models[name]
	if !ok || !d.Healthy {
		return nil, false
	}
	return d.Classifier, true
}

// IsHealthy reports whether name is loaded and usable
func (r *Registry) IsHealthy(name string) bool {
	d, ok := r.models[name]
	return ok && d.Healthy
}

// Descriptor returns the descriptor of a known model
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	d, ok := r.models[name]
	return d, ok
}

// Health returns the health of every known model, including ones never registered
func (r *Registry) Health() map[string]bool {
	health := make(map[string]bool, len(types.ModelNames))
	for _, name := range types.ModelNames {
		health[name] = r.IsHealthy(name)
	}
	for name, d := range r.models {
		health[name] = d.Healthy
	}
	return health
}

// HealthyNames returns the healthy models in registry order
func (r *Registry) HealthyNames() []string {
	var names []string
	for _, name := range r.names() {
		if r.IsHealthy(name) {
			names = append(names, name)
		}
	}
	return names
}

// Report summarizes registry health at the given time
func (r *Registry) Report(now time.Time) types.HealthReport {
	available := r.HealthyNames()
	if available == nil {
		available = []string{}
	}

	var loadErrors map[string]string
	for _, name := range r.names() {
		if msg := r.models[name].LoadError; msg != "" {
			if loadErrors == nil {
				loadErrors = make(map[string]string)
			}
			loadErrors[name] = msg
		}
	}

	return types.HealthReport{
		Healthy:         len(available) > 0,
		Models:          r.Health(),
		AvailableModels: available,
		Errors:          loadErrors,
		Timestamp:       now,
	}
}

// Predict runs one model on fv. Absent features are passed as 0. Panics,
// errors and outputs outside [0, 1] are returned as *models.PredictionError.
func (r *Registry) Predict(name string, fv types.FeatureVector) (p float64, err error) {
	d, ok := r.models[name]
	if !ok || !d.Healthy {
		return 0, &models.PredictionError{Model: name, Message: "model unavailable"}
	}

	defer func() {
		if rec := recover(); rec != nil {
			p = 0
			err = &models.PredictionError{Model: name, Message: fmt.Sprintf("panic: %v", rec)}
		}
	}()

	p, err = d.Classifier.PredictProbability(d.Features.Vector(fv))
	if err != nil {
		return 0, &models.PredictionError{Model: name, Message: "classifier error", Cause: err}
	}
	if !types.IsFinite(p) || p < 0 || p > 1 {
		return 0, &models.PredictionError{Model: name, Message: fmt.Sprintf("probability %v outside [0, 1]", p)}
	}
	return p, nil
}

// names returns known model names: the standard models first, then any extras sorted
func (r *Registry) names() []string {
	names := make([]string, 0, len(r.models))
	seen := make(map[string]bool, len(r.models))
	for _, name := range types.ModelNames {
		if _, ok := r.models[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var extra []string
	for name := range r.models {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
