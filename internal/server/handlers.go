package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/risk-router/internal/types"
)

// PredictRequest is the body of POST /predict
type PredictRequest struct {
	Features map[string]float64 `json:"features" validate:"required"`
}

// ExplainRequest is the body of POST /explain
type ExplainRequest struct {
	Features map[string]float64 `json:"features" validate:"required"`
	Risk     types.RiskResult   `json:"risk"`
}

// handlePredict scores a feature vector
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	a := s.service.Predict(r.Context(), types.FeatureVector(req.Features))
	s.jsonResponse(w, http.StatusOK, a)
}

// handleExplain explains a feature vector at a given risk, with polishing when configured
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	res := s.service.Explain(r.Context(), types.FeatureVector(req.Features), req.Risk)
	s.jsonResponse(w, http.StatusOK, res)
}

// handleHealth returns registry health. A registry with no healthy model still
// answers through the rule-based fallback, so the status is 200 either way.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.service.Health())
}

// decode reads and validates a JSON body into dst
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrRequestTooLarge{Limit: maxErr.Limit}
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := s.validator.Struct(dst); err != nil {
		return extractValidationError(err)
	}
	return nil
}

// extractValidationError converts the first validator failure into ErrValidation
func extractValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: fmt.Sprintf("failed on '%s'", ve.Tag())}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}
