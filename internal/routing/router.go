// Package routing decides which predictor answers a request and runs it.
//
// Routing is a small state machine:
//
//	SELECTING → {SINGLE_MODEL, ENSEMBLE, RULE_FALLBACK} → DONE
//
// with SINGLE_MODEL → ENSEMBLE on low confidence or a failed model, and
// ENSEMBLE → RULE_FALLBACK when no model could vote.
package routing

import (
	"errors"
	"fmt"
	"math"

	"github.com/jonathan/risk-router/internal/ensemble"
	"github.com/jonathan/risk-router/internal/fallback"
	"github.com/jonathan/risk-router/internal/features"
	"github.com/jonathan/risk-router/internal/metrics"
	"github.com/jonathan/risk-router/internal/models"
	"github.com/jonathan/risk-router/internal/registry"
	"github.com/jonathan/risk-router/internal/types"
	"github.com/sirupsen/logrus"
)

// Selection confidences
const (
	ConfidenceSpecialty = 0.95
	ConfidenceCombined  = 0.90
	ConfidenceEnsemble  = 0.75
	ConfidenceDegraded  = 0.70
	ConfidenceMinimal   = 0.50
)

// Escalation: a single-model probability within EscalationBand of 0.5, chosen with
// a selection confidence below EscalationConfidence, is re-run through the ensemble.
const (
	EscalationBand       = 0.2
	EscalationConfidence = 0.70
	EscalatedTag         = "low confidence — escalated"
)

// Warnings attached by the router
const (
	WarnDegradedRouting  = "Preferred specialty model unavailable - routed to general model"
	WarnDegradedEnsemble = "Preferred specialty and general models unavailable - ensemble used"
	WarnRuleFallback     = "No trained model available - rule-based fallback used"
	WarnNoEnsembleVotes  = "No model produced a usable ensemble vote - rule-based fallback used"
	warnModelFailed      = "Model %q failed to predict - ensemble used"
)

// Outcome is the result of running the state machine for one request
type Outcome struct {
	Decision     types.RoutingDecision
	Probability  float64
	Confidence   float64
	FeaturesUsed []string
	Warnings     []string
	Votes        []ensemble.Vote
	Trace        []State
}

// Router selects and runs predictors
type Router struct {
	registry *registry.Registry
	ensemble *ensemble.Collector
	logger   logrus.FieldLogger
}

// NewRouter creates a Router over reg
func NewRouter(reg *registry.Registry, logger logrus.FieldLogger) *Router {
	return &Router{
		registry: reg,
		ensemble: ensemble.NewCollector(reg, logger),
		logger:   logger,
	}
}

// Select picks the initial target from which signal families are present and
// which models are healthy. First match wins.
func (r *Router) Select(fv types.FeatureVector) types.RoutingDecision {
	d, _ := r.selectTarget(fv)
	return d
}

// selectTarget also reports whether a preferred specialty model was unavailable
func (r *Router) selectTarget(fv types.FeatureVector) (types.RoutingDecision, bool) {
	hasSugar := features.HasSignal(fv, features.SugarPrefix)
	hasBP := features.HasSignal(fv, features.BPPrefix)

	switch {
	case hasSugar && !hasBP:
		if r.registry.IsHealthy(types.ModelDiabetes) {
			return decision(types.ModelDiabetes, ConfidenceSpecialty, "Sugar/glucose data detected → Diabetes model"), false
		}
		return decision(types.ModelGeneral, ConfidenceDegraded, "Diabetes model unavailable → degraded routing to General model"), true
	case hasBP && !hasSugar:
		if r.registry.IsHealthy(types.ModelCardiac) {
			return decision(types.ModelCardiac, ConfidenceSpecialty, "Blood pressure data detected → Cardiac model"), false
		}
		return decision(types.ModelGeneral, ConfidenceDegraded, "Cardiac model unavailable → degraded routing to General model"), true
	case hasSugar && hasBP:
		if r.registry.IsHealthy(types.ModelGeneral) {
			return decision(types.ModelGeneral, ConfidenceCombined, "Combined data detected → General model"), false
		}
		return decision(types.TargetEnsemble, ConfidenceEnsemble, "General model unavailable → weighted ensemble"), false
	default:
		if r.registry.IsHealthy(types.ModelGeneral) {
			return decision(types.ModelGeneral, ConfidenceMinimal, "Minimal data → General model (low confidence)"), false
		}
		return decision(types.TargetRuleFallback, fallback.Confidence, "No models available → rule-based fallback"), false
	}
}

func decision(target string, confidence float64, reason string) types.RoutingDecision {
	return types.RoutingDecision{Target: target, SelectionConfidence: confidence, Reason: reason}
}

// ShouldEscalate reports whether a single-model probability is too uncertain to keep
func ShouldEscalate(probability, selectionConfidence float64) bool {
	return math.Abs(probability-0.5) < EscalationBand && selectionConfidence < EscalationConfidence
}

// Route runs the state machine on a normalized feature vector
func (r *Router) Route(fv types.FeatureVector) Outcome {
	m := &machine{router: r, fv: fv, state: StateSelecting}
	m.trace = append(m.trace, StateSelecting)

	var degraded bool
	m.out.Decision, degraded = r.selectTarget(fv)
	if degraded {
		warning := WarnDegradedRouting
		if !r.registry.IsHealthy(types.ModelGeneral) {
			warning = WarnDegradedEnsemble
		}
		m.out.Warnings = append(m.out.Warnings, warning)
	}

	r.logger.WithFields(logrus.Fields{
		"target":     m.out.Decision.Target,
		"confidence": m.out.Decision.SelectionConfidence,
	}).Debug("route selected")

	switch m.out.Decision.Target {
	case types.TargetEnsemble:
		m.enter(StateEnsemble)
	case types.TargetRuleFallback:
		m.enter(StateRuleFallback)
	default:
		m.enter(StateSingleModel)
	}

	for m.state != StateDone {
		m.step()
	}

	m.out.Trace = m.trace
	metrics.RoutingTargets.WithLabelValues(m.out.Decision.Target).Inc()
	return m.out
}

// machine holds per-request routing state
type machine struct {
	router *Router
	fv     types.FeatureVector
	state  State
	trace  []State
	out    Outcome
	// noVotes is set when the ensemble ran but had nothing to combine
	noVotes bool
}

func (m *machine) enter(next State) {
	if !CanTransition(m.state, next) {
		panic(fmt.Sprintf("routing: illegal transition %s → %s", m.state, next))
	}
	m.state = next
	m.trace = append(m.trace, next)
}

func (m *machine) step() {
	switch m.state {
	case StateSingleModel:
		m.runSingle()
	case StateEnsemble:
		m.runEnsemble()
	case StateRuleFallback:
		m.runRuleFallback()
	default:
		panic(fmt.Sprintf("routing: no step for state %s", m.state))
	}
}

func (m *machine) runSingle() {
	name := m.out.Decision.Target
	sel := m.out.Decision.SelectionConfidence

	if !m.router.registry.IsHealthy(name) {
		m.router.logger.WithField("model", name).Warn("model unavailable, using ensemble")
		m.out.Decision.Reason += fmt.Sprintf(" (%s unavailable → ensemble)", name)
		m.out.Decision.Target = types.TargetEnsemble
		m.enter(StateEnsemble)
		return
	}

	p, err := m.router.registry.Predict(name, m.fv)
	if err != nil {
		m.router.logger.WithError(err).WithField("model", name).Warn("single model failed, using ensemble")
		metrics.PredictionFailures.WithLabelValues(name).Inc()
		m.out.Warnings = append(m.out.Warnings, fmt.Sprintf(warnModelFailed, name))
		m.out.Decision.Reason += fmt.Sprintf(" (%s failed → ensemble)", name)
		m.out.Decision.Target = types.TargetEnsemble
		m.enter(StateEnsemble)
		return
	}

	if ShouldEscalate(p, sel) {
		m.router.logger.WithFields(logrus.Fields{"model": name, "probability": p}).Debug("escalating to ensemble")
		metrics.Escalations.Inc()
		m.out.Decision.Reason += " (" + EscalatedTag + ")"
		m.out.Decision.Target = types.TargetEnsemble
		m.enter(StateEnsemble)
		return
	}

	d, _ := m.router.registry.Descriptor(name)
	m.out.Probability = p
	m.out.Confidence = sel
	m.out.FeaturesUsed = d.Features.Present(m.fv)
	m.enter(StateDone)
}

func (m *machine) runEnsemble() {
	votes, used, failures := m.router.ensemble.Collect(m.fv)
	for _, err := range failures {
		if name := failedModel(err); name != "" {
			metrics.PredictionFailures.WithLabelValues(name).Inc()
		}
	}

	prob, conf, ok := ensemble.Combine(votes)
	if !ok {
		m.router.logger.Warn("ensemble produced no votes, using rule-based fallback")
		m.noVotes = true
		m.out.Decision.Reason += " (no ensemble votes → rule-based fallback)"
		m.out.Decision.Target = types.TargetRuleFallback
		m.enter(StateRuleFallback)
		return
	}

	m.out.Probability = prob
	m.out.Confidence = conf
	m.out.FeaturesUsed = used
	m.out.Votes = votes
	m.enter(StateDone)
}

func (m *machine) runRuleFallback() {
	metrics.RuleFallbacks.Inc()
	m.out.Probability = fallback.Score(m.fv)
	m.out.Confidence = fallback.Confidence
	m.out.FeaturesUsed = fallback.InputsUsed(m.fv)
	warning := WarnRuleFallback
	if m.noVotes {
		warning = WarnNoEnsembleVotes
	}
	m.out.Warnings = append(m.out.Warnings, warning)
	m.enter(StateDone)
}

func failedModel(err error) string {
	var predErr *models.PredictionError
	if errors.As(err, &predErr) {
		return predErr.Model
	}
	return ""
}
