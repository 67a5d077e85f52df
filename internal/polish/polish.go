// Package polish optionally rewords an explanation summary into a single
// narrative paragraph with a language model. The model output is accepted only
// when it is non-empty and free of banned phrases; in every other case the
// narrative is the rule-based summary joined with "; ".
package polish

import (
	"context"
	"strings"

	"github.com/jonathan/risk-router/internal/explanation"
	"github.com/jonathan/risk-router/internal/llm"
	"github.com/jonathan/risk-router/internal/metrics"
	"github.com/jonathan/risk-router/internal/prompts"
	"github.com/jonathan/risk-router/internal/types"
	"github.com/sirupsen/logrus"
)

const promptFile = "explanation.json"

// Outcome labels, also used as metric label values
const (
	OutcomeLLM         = "llm"
	OutcomeUnavailable = "rules_unavailable"
	OutcomeError       = "rules_error"
	OutcomeEmpty       = "rules_empty"
	OutcomeBanned      = "rules_banned"
	OutcomeNoFacts     = "rules_no_facts"
)

// Polisher fills ExplanationResult.Narrative
type Polisher struct {
	client llm.Client
	tier   llm.ModelTier
	logger logrus.FieldLogger
}

// New creates a Polisher. A nil client is valid and always yields the rule-based narrative.
func New(client llm.Client, logger logrus.FieldLogger) *Polisher {
	return &Polisher{client: client, tier: llm.TierLite, logger: logger}
}

// RulesNarrative is the narrative used whenever the model output is not accepted
func RulesNarrative(summary []string) string {
	return strings.Join(summary, "; ")
}

// Polish returns a copy of res with Narrative and NarrativeSource set, and the
// outcome label. Summary and factors are never modified.
func (p *Polisher) Polish(ctx context.Context, res types.ExplanationResult) (types.ExplanationResult, string) {
	text, outcome := p.narrative(ctx, res)
	metrics.PolishOutcomes.WithLabelValues(outcome).Inc()

	res.Narrative = text
	res.NarrativeSource = types.NarrativeRules
	if outcome == OutcomeLLM {
		res.NarrativeSource = types.NarrativeLLM
	}
	return res, outcome
}

func (p *Polisher) narrative(ctx context.Context, res types.ExplanationResult) (string, string) {
	rules := RulesNarrative(res.Summary)

	if len(res.Summary) == 0 {
		return rules, OutcomeNoFacts
	}
	if p.client == nil {
		return rules, OutcomeUnavailable
	}

	prompt, err := BuildPrompt(res)
	if err != nil {
		p.logger.WithError(err).Warn("polish prompt unavailable, keeping rule-based narrative")
		return rules, OutcomeError
	}

	text, err := p.client.GenerateText(ctx, prompt, p.tier)
	if err != nil {
		p.logger.WithError(err).Warn("polish call failed, keeping rule-based narrative")
		return rules, OutcomeError
	}

	text = llm.CleanText(text)
	if text == "" {
		p.logger.Warn("polish returned empty text, keeping rule-based narrative")
		return rules, OutcomeEmpty
	}
	if banned := explanation.FindBanned(text); len(banned) > 0 {
		p.logger.WithField("phrases", banned).Warn("polish output rejected, keeping rule-based narrative")
		return rules, OutcomeBanned
	}

	return text, OutcomeLLM
}

// BuildPrompt renders the polishing prompt for res
func BuildPrompt(res types.ExplanationResult) (string, error) {
	system, err := prompts.Get(promptFile, "polish-system")
	if err != nil {
		return "", err
	}

	facts := make([]string, len(res.Summary))
	for i, s := range res.Summary {
		facts[i] = "- " + s
	}

	body, err := prompts.Render(promptFile, "polish-narrative", map[string]string{
		"RiskLevel": string(res.RiskLevel),
		"Facts":     strings.Join(facts, "\n"),
	})
	if err != nil {
		return "", err
	}
	return system + "\n\n" + body, nil
}
