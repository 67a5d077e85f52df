// Package explanation turns a feature vector and a risk result into ranked,
// fact-only sentences built from a closed template catalog.
package explanation

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/risk-router/internal/features"
	"github.com/jonathan/risk-router/internal/types"
)

// DefaultTopN is the number of factors kept when none is configured
const DefaultTopN = 3

// Engine generates explanations. It is immutable and safe for concurrent use.
type Engine struct {
	importance map[string]float64
	topN       int
	now        func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithImportance ranks factors by descending importance weight
func WithImportance(importance map[string]float64) Option {
	return func(e *Engine) {
		e.importance = make(map[string]float64, len(importance))
		for k, v := range importance {
			e.importance[k] = v
		}
	}
}

// WithTopN sets how many factors are kept; values below 1 keep the default
func WithTopN(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.topN = n
		}
	}
}

// WithClock sets the clock used for GeneratedAt
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{topN: DefaultTopN, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Explain builds the explanation for fv at the given risk
func (e *Engine) Explain(fv types.FeatureVector, level types.RiskLevel, score float64) types.ExplanationResult {
	factors := e.Factors(fv)
	if len(factors) > e.topN {
		factors = factors[:e.topN]
	}

	summary := make([]string, 0, len(factors))
	for _, f := range factors {
		if f.Explanation != "" {
			summary = append(summary, f.Explanation)
		}
	}

	return types.ExplanationResult{
		ContributingFactors: factors,
		Summary:             summary,
		RiskLevel:           level,
		RiskScore:           score,
		RiskDescription:     RiskDescription(level),
		GeneratedAt:         e.now(),
	}
}

// Factors returns every factor that fires for fv, ranked by importance
// (ties and an empty importance map keep catalog order). It does not truncate.
func (e *Engine) Factors(fv types.FeatureVector) []types.ContributingFactor {
	factors := make([]types.ContributingFactor, 0, len(Templates))
	for _, tpl := range Templates {
		if f, ok := tpl.render(fv); ok {
			factors = append(factors, f)
		}
	}

	if len(e.importance) > 0 {
		sort.SliceStable(factors, func(i, j int) bool {
			return e.importance[factors[i].Feature] > e.importance[factors[j].Feature]
		})
	}
	return factors
}

// Tier returns the severity tier of value for tpl
func (tpl Template) Tier(value float64) (types.Severity, bool) {
	switch {
	case value > tpl.Threshold:
		return types.SeverityHigh, true
	case value > tpl.Threshold/2:
		return types.SeverityModerate, true
	default:
		return "", false
	}
}

func (tpl Template) render(fv types.FeatureVector) (types.ContributingFactor, bool) {
	value, ok := fv.Get(tpl.Feature)
	if !ok || !types.IsFinite(value) {
		return types.ContributingFactor{}, false
	}

	severity, ok := tpl.Tier(value)
	if !ok {
		return types.ContributingFactor{}, false
	}

	sentence := tpl.Moderate
	if severity == types.SeverityHigh {
		sentence = tpl.High
	}
	if sentence == "" {
		return types.ContributingFactor{}, false
	}

	duration, hasDuration := fv.Get(features.TrendDurationMonths)
	if strings.Contains(sentence, durationPlaceholder) && !hasDuration && tpl.HighNoDuration != "" {
		sentence = tpl.HighNoDuration
	}

	sentence = strings.NewReplacer(
		valuePlaceholder, formatNumber(value),
		durationPlaceholder, formatNumber(duration),
	).Replace(sentence)

	return types.ContributingFactor{
		Feature:     tpl.Feature,
		DisplayName: DisplayName(tpl.Feature),
		Value:       value,
		Severity:    severity,
		Explanation: sentence,
	}, true
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// importanceFile is the training metadata layout carrying feature importance
type importanceFile struct {
	FeatureImportance map[string]float64 `json:"feature_importance"`
}

// LoadImportance reads a feature-importance map from training metadata JSON
func LoadImportance(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read importance file %s: %w", path, err)
	}

	var meta importanceFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse importance file %s: %w", path, err)
	}
	return meta.FeatureImportance, nil
}
