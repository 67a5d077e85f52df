package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("explanation.json", "polish-narrative")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Facts}}")
	assert.Contains(t, prompt, "{{.RiskLevel}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("explanation.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestFormat(t *testing.T) {
	result := Format("Level {{.RiskLevel}}: {{.Facts}} {{.Missing}}", map[string]string{
		"RiskLevel": "HIGH",
		"Facts":     "- a\n- b",
	})
	assert.Equal(t, "Level HIGH: - a\n- b {{.Missing}}", result)
}

func TestRender(t *testing.T) {
	ClearCache()

	prompt, err := Render("explanation.json", "polish-narrative", map[string]string{
		"RiskLevel": "MEDIUM",
		"Facts":     "- Blood sugar rose 12% during the monitoring period",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Risk level: MEDIUM")
	assert.Contains(t, prompt, "- Blood sugar rose 12% during the monitoring period")
	assert.NotContains(t, prompt, "{{.")
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("explanation.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"polish-narrative", "polish-system"}, keys)
}
