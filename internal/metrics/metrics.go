package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Latency of a full Predict call, routing through assembly
	PredictLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "risk_predict_latency_seconds",
		Help:    "Latency of risk predictions",
		Buckets: prometheus.DefBuckets,
	})

	// Final routing target of every prediction
	RoutingTargets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_routing_target_total",
		Help: "Predictions by final routing target",
	}, []string{"target"})

	Escalations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "risk_routing_escalations_total",
		Help: "Single-model predictions escalated to the ensemble on low confidence",
	})

	// Model invocations that failed and were dropped
	PredictionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_model_prediction_failures_total",
		Help: "Model prediction failures by model",
	}, []string{"model"})

	RuleFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "risk_rule_fallback_total",
		Help: "Predictions answered by the rule-based scorer",
	})

	InternalErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "risk_internal_errors_total",
		Help: "Predictions recovered into an UNKNOWN assessment",
	})

	// Polishing outcome: llm, rules_unavailable, rules_error, rules_empty, rules_banned
	PolishOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "risk_polish_outcome_total",
		Help: "Explanation polishing outcomes",
	}, []string{"outcome"})
)

var once sync.Once

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			PredictLatency,
			RoutingTargets,
			Escalations,
			PredictionFailures,
			RuleFallbacks,
			InternalErrors,
			PolishOutcomes,
		)
	})
}
