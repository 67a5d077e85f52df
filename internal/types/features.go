// Package types provides type definitions for structured data used throughout the risk-router system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"math"
	"sort"
)

// FeatureVector maps a feature name to its numeric value.
// A feature is present when its key exists; an explicit 0 is a real reading.
type FeatureVector map[string]float64

// Get returns the value for name and whether it is present
func (fv FeatureVector) Get(name string) (float64, bool) {
	v, ok := fv[name]
	return v, ok
}

// Has reports whether name is present
func (fv FeatureVector) Has(name string) bool {
	_, ok := fv[name]
	return ok
}

// ValueOr returns the value for name, or def when the feature is absent
func (fv FeatureVector) ValueOr(name string, def float64) float64 {
	if v, ok := fv[name]; ok {
		return v
	}
	return def
}

// Names returns the present feature names in sorted order
func (fv FeatureVector) Names() []string {
	names := make([]string, 0, len(fv))
	for name := range fv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy that can be mutated independently
func (fv FeatureVector) Clone() FeatureVector {
	out := make(FeatureVector, len(fv))
	for k, v := range fv {
		out[k] = v
	}
	return out
}

// IsFinite reports whether v is usable as a feature value
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
