// Package assessment assembles the public risk assessment: it validates the
// feature vector, runs the router, classifies the score and attaches the
// explanation. Predict never fails; internal errors become an UNKNOWN assessment.
package assessment

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/risk-router/internal/explanation"
	"github.com/jonathan/risk-router/internal/features"
	"github.com/jonathan/risk-router/internal/metrics"
	"github.com/jonathan/risk-router/internal/polish"
	"github.com/jonathan/risk-router/internal/registry"
	"github.com/jonathan/risk-router/internal/routing"
	"github.com/jonathan/risk-router/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	// WarnInternalError is attached to recovered assessments
	WarnInternalError = "Internal error during prediction - result is not reliable"
	// errorScore is the neutral score reported with an UNKNOWN level
	errorScore = 0.5
)

// fingerprintNamespace scopes assessment fingerprints
var fingerprintNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("risk-router/assessment"))

// Service is the entry point for predictions. It is safe for concurrent use.
type Service struct {
	registry *registry.Registry
	engine   *explanation.Engine
	polisher *polish.Polisher
	logger   logrus.FieldLogger
	now      func() time.Time

	route func(types.FeatureVector) routing.Outcome
}

// Option configures a Service
type Option func(*Service)

// WithClock sets the clock used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithEngine replaces the default explanation engine
func WithEngine(engine *explanation.Engine) Option {
	return func(s *Service) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithPolisher sets the narrative polisher used by Explain
func WithPolisher(p *polish.Polisher) Option {
	return func(s *Service) {
		if p != nil {
			s.polisher = p
		}
	}
}

// NewService creates a Service over reg
func NewService(reg *registry.Registry, logger logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		registry: reg,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = explanation.NewEngine(explanation.WithClock(s.now))
	}
	if s.polisher == nil {
		s.polisher = polish.New(nil, logger)
	}
	s.route = routing.NewRouter(reg, logger).Route
	return s
}

// Predict scores fv. The explanation is attached without polishing.
func (s *Service) Predict(_ context.Context, fv types.FeatureVector) (a types.RiskAssessment) {
	start := time.Now()
	defer func() {
		metrics.PredictLatency.Observe(time.Since(start).Seconds())
	}()

	defer func() {
		if rec := recover(); rec != nil {
			s.logger.WithField("panic", rec).Error("prediction failed, returning error fallback")
			metrics.InternalErrors.Inc()
			a = s.errorAssessment(fmt.Sprint(rec))
		}
	}()

	clean, warnings := features.Normalize(fv)
	out := s.route(clean)

	score := round3(types.ClampUnit(out.Probability))
	level := types.ClassifyRisk(score)
	exp := s.engine.Explain(clean, level, score)

	used := out.FeaturesUsed
	if used == nil {
		used = []string{}
	}
	warnings = append(warnings, out.Warnings...)
	if warnings == nil {
		warnings = []string{}
	}

	s.logger.WithFields(logrus.Fields{
		"model": out.Decision.Target,
		"score": score,
		"level": level,
	}).Debug("prediction complete")

	return types.RiskAssessment{
		RiskScore:     score,
		RiskLevel:     level,
		Confidence:    round3(types.ClampUnit(out.Confidence)),
		ModelUsed:     out.Decision.Target,
		RoutingReason: out.Decision.Reason,
		FeaturesUsed:  used,
		Warnings:      warnings,
		Explanation:   &exp,
		Timestamp:     s.now(),
		Fingerprint:   Fingerprint(clean, out.Decision.Target, score),
		Route:         routing.TraceStrings(out.Trace),
	}
}

func (s *Service) errorAssessment(msg string) types.RiskAssessment {
	return types.RiskAssessment{
		RiskScore:     errorScore,
		RiskLevel:     types.RiskUnknown,
		Confidence:    0,
		ModelUsed:     types.ErrorFallbackModel,
		RoutingReason: "Error occurred: " + msg,
		FeaturesUsed:  []string{},
		Warnings:      []string{WarnInternalError},
		Timestamp:     s.now(),
		Fingerprint:   uuid.Nil,
	}
}

// Explain builds the explanation for fv at the given risk and fills the
// narrative through the polisher. An empty level is derived from the score.
func (s *Service) Explain(ctx context.Context, fv types.FeatureVector, risk types.RiskResult) types.ExplanationResult {
	clean, _ := features.Normalize(fv)

	level := risk.RiskLevel
	if level == "" {
		level = types.ClassifyRisk(risk.RiskScore)
	}

	res := s.engine.Explain(clean, level, risk.RiskScore)
	res, outcome := s.polisher.Polish(ctx, res)
	s.logger.WithField("outcome", outcome).Debug("explanation polished")
	return res
}

// Health reports registry health
func (s *Service) Health() types.HealthReport {
	return s.registry.Report(s.now())
}

// Fingerprint derives a deterministic UUIDv5 from the validated input and the
// routing outcome. Equal inputs produce equal fingerprints.
func Fingerprint(fv types.FeatureVector, target string, score float64) uuid.UUID {
	names := fv.Names()
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(strconv.FormatFloat(fv[name], 'g', -1, 64))
		sb.WriteByte(';')
	}
	sb.WriteString("target=")
	sb.WriteString(target)
	sb.WriteString(";score=")
	sb.WriteString(strconv.FormatFloat(score, 'f', 3, 64))

	return uuid.NewSHA1(fingerprintNamespace, []byte(sb.String()))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
