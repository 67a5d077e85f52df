package types

import (
	"time"

	"github.com/google/uuid"
)

// ErrorFallbackModel is reported as ModelUsed when an internal error was recovered
const ErrorFallbackModel = "error_fallback"

// RiskAssessment is the structured result of one prediction
type RiskAssessment struct {
	RiskScore     float64            `json:"risk_score"`
	RiskLevel     RiskLevel          `json:"risk_level"`
	Confidence    float64            `json:"confidence"`
	ModelUsed     string             `json:"model_used"`
	RoutingReason string             `json:"routing_reason"`
	FeaturesUsed  []string           `json:"features_used"`
	Warnings      []string           `json:"warnings"`
	Explanation   *ExplanationResult `json:"explanation,omitempty"`
	Timestamp     time.Time          `json:"timestamp"`
	// Fingerprint identifies the validated input and routing outcome; identical
	// requests against the same registry state share a fingerprint.
	Fingerprint uuid.UUID `json:"fingerprint"`
	// Route lists the router states visited, e.g. ["SELECTING","SINGLE_MODEL","DONE"]
	Route []string `json:"route,omitempty"`
}

// HealthReport summarizes registry health
type HealthReport struct {
	Healthy         bool              `json:"healthy"`
	Models          map[string]bool   `json:"models"`
	AvailableModels []string          `json:"available_models"`
	Errors          map[string]string `json:"errors,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
}

// RiskResult is the risk part of an assessment, as accepted by Explain
type RiskResult struct {
	RiskScore  float64   `json:"risk_score" validate:"gte=0,lte=1"`
	RiskLevel  RiskLevel `json:"risk_level,omitempty" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL UNKNOWN"`
	Confidence float64   `json:"confidence,omitempty" validate:"gte=0,lte=1"`
}
