package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/risk-router/internal/assessment"
	"github.com/jonathan/risk-router/internal/metrics"
	"github.com/jonathan/risk-router/internal/models"
	"github.com/jonathan/risk-router/internal/registry"
	"github.com/jonathan/risk-router/internal/types"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, descs ...registry.Descriptor) *httptest.Server {
	t.Helper()
	metrics.Init()

	logger, _ := logtest.NewNullLogger()
	now := func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	svc := assessment.NewService(registry.New(descs...), logger, assessment.WithClock(now))
	s := New(Config{Port: 0}, svc, logger)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func diabetesModel(p float64) registry.Descriptor {
	return registry.Descriptor{
		Name:       types.ModelDiabetes,
		Classifier: models.ClassifierFunc(func(_ []float64) (float64, error) { return p, nil }),
		Healthy:    true,
	}
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHandlePredict(t *testing.T) {
	ts := newTestServer(t, diabetesModel(0.83))

	resp := post(t, ts.URL+"/predict", `{"features": {"age": 52, "sugar_percent_change": 35, "trend_duration_months": 18}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var a types.RiskAssessment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Equal(t, types.ModelDiabetes, a.ModelUsed)
	assert.Equal(t, types.RiskHigh, a.RiskLevel)
	assert.Equal(t, 0.83, a.RiskScore)
	require.NotNil(t, a.Explanation)
	assert.Equal(t, "Blood sugar increased 35% over 18 months", a.Explanation.Summary[0])
}

func TestHandlePredict_NoModels(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/predict", `{"features": {"glucose": 150, "systolic": 135, "heart_rate": 110, "age": 72}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var a types.RiskAssessment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Equal(t, types.TargetRuleFallback, a.ModelUsed)
	assert.Equal(t, 0.51, a.RiskScore)
	assert.Equal(t, types.RiskMedium, a.RiskLevel)
}

func TestHandlePredict_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", ``, http.StatusBadRequest},
		{"invalid json", `{"features":`, http.StatusBadRequest},
		{"missing features", `{}`, http.StatusBadRequest},
		{"unknown field", `{"features": {"age": 40}, "patient": "x"}`, http.StatusBadRequest},
		{"non-numeric feature", `{"features": {"age": "old"}}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/predict", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandlePredict_WrongMethod(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/predict")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandleExplain(t *testing.T) {
	ts := newTestServer(t)

	body := `{"features": {"bp_percent_change": 8, "age": 70}, "risk": {"risk_score": 0.55}}`
	resp := post(t, ts.URL+"/explain", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res types.ExplanationResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, types.RiskMedium, res.RiskLevel)
	require.Len(t, res.ContributingFactors, 2)
	assert.Equal(t, types.NarrativeRules, res.NarrativeSource)
	assert.Equal(t, strings.Join(res.Summary, "; "), res.Narrative)
}

func TestHandleExplain_InvalidRisk(t *testing.T) {
	ts := newTestServer(t)

	tests := []string{
		`{"features": {"age": 70}, "risk": {"risk_score": 1.5}}`,
		`{"features": {"age": 70}, "risk": {"risk_score": 0.5, "risk_level": "SEVERE"}}`,
	}
	for _, body := range tests {
		resp := post(t, ts.URL+"/explain", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t, diabetesModel(0.5))

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var h types.HealthReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&h))
	assert.True(t, h.Healthy)
	assert.Equal(t, []string{types.ModelDiabetes}, h.AvailableModels)
	assert.False(t, h.Models[types.ModelGeneral])
}

func TestHandleMetrics(t *testing.T) {
	ts := newTestServer(t, diabetesModel(0.9))
	post(t, ts.URL+"/predict", `{"features": {"age": 50, "sugar_trend_up": 1}}`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "risk_routing_target_total")
	assert.Contains(t, buf.String(), "risk_predict_latency_seconds")
}
