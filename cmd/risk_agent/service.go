package main

import (
	"context"
	"fmt"

	"github.com/jonathan/risk-router/internal/assessment"
	"github.com/jonathan/risk-router/internal/config"
	"github.com/jonathan/risk-router/internal/explanation"
	"github.com/jonathan/risk-router/internal/llm"
	"github.com/jonathan/risk-router/internal/metrics"
	"github.com/jonathan/risk-router/internal/polish"
	"github.com/jonathan/risk-router/internal/registry"
	"github.com/jonathan/risk-router/internal/types"
)

// buildService loads the registry and wires the assessment service. When
// withLLM is set and polishing is enabled, the returned close func releases the client.
func buildService(ctx context.Context, withLLM bool) (*assessment.Service, func(), error) {
	cfg := app.cfg
	logger := app.logger
	metrics.Init()

	reg := registry.Load(cfg.ModelsDir, logger)

	importance, err := loadImportance(reg)
	if err != nil {
		return nil, nil, err
	}

	engine := explanation.NewEngine(
		explanation.WithImportance(importance),
		explanation.WithTopN(cfg.TopN),
	)

	closeFn := func() {}
	var client llm.Client
	if withLLM && cfg.LLM.Enabled {
		client, err = llm.NewClient(ctx, llmConfig(cfg.LLM), cfg.LLM.APIKey)
		if err != nil {
			// polishing is optional: keep the rule-based narrative
			logger.WithError(err).Warn("LLM client unavailable, polishing disabled")
			client = nil
		} else {
			closeFn = func() {
				if err := client.Close(); err != nil {
					logger.WithError(err).Warn("failed to close LLM client")
				}
			}
		}
	}

	svc := assessment.NewService(reg, logger,
		assessment.WithEngine(engine),
		assessment.WithPolisher(polish.New(client, logger)),
	)
	return svc, closeFn, nil
}

// llmConfig maps the llm config section onto the client configuration
func llmConfig(c config.LLMConfig) *llm.Config {
	llmCfg := llm.DefaultConfig()
	if c.Provider != "" {
		llmCfg.Provider = llm.Provider(c.Provider)
	}
	if c.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierLite, c.Model)
	}
	if c.Timeout > 0 {
		llmCfg.Timeout = c.Timeout
	}
	return llmCfg
}

// loadImportance reads the configured importance file, or falls back to the
// general model's embedded importance
func loadImportance(reg *registry.Registry) (map[string]float64, error) {
	if app.cfg.ImportancePath != "" {
		importance, err := explanation.LoadImportance(app.cfg.ImportancePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load feature importance: %w", err)
		}
		return importance, nil
	}

	if d, ok := reg.Descriptor(types.ModelGeneral); ok && len(d.Importance) > 0 {
		return d.Importance, nil
	}
	return nil, nil
}
