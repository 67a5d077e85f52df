package main

import (
	"fmt"

	"github.com/jonathan/risk-router/internal/observability"
	"github.com/jonathan/risk-router/internal/types"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain a feature vector at a given risk",
	Long: "Builds the ranked contributing factors for a feature vector. Without --risk-score the vector is scored first. " +
		"With --polish and llm enabled in config, the summary is reworded into a narrative; rejected or failed rewording keeps the rule-based text.",
	RunE: runExplain,
}

var (
	explainInput     string
	explainOutput    string
	explainRiskScore float64
	explainRiskLevel string
	explainPolish    bool
)

func init() {
	explainCmd.Flags().StringVarP(&explainInput, "input", "i", "-", "Path to feature JSON (\"-\" for stdin)")
	explainCmd.Flags().StringVarP(&explainOutput, "out", "o", "", "Path to output ExplanationResult JSON (default stdout)")
	explainCmd.Flags().Float64Var(&explainRiskScore, "risk-score", 0, "Risk score in [0, 1]; scored from the input when omitted")
	explainCmd.Flags().StringVar(&explainRiskLevel, "risk-level", "", "Risk level (LOW, MEDIUM, HIGH, CRITICAL); derived from the score when omitted")
	explainCmd.Flags().BoolVar(&explainPolish, "polish", false, "Reword the summary with the configured LLM")
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, _ []string) error {
	data, err := readInput(explainInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	fv, err := parseFeatures(data)
	if err != nil {
		return err
	}

	svc, closeFn, err := buildService(cmd.Context(), explainPolish)
	if err != nil {
		return err
	}
	defer closeFn()

	risk := types.RiskResult{RiskScore: explainRiskScore}
	if cmd.Flags().Changed("risk-score") {
		if explainRiskScore < 0 || explainRiskScore > 1 {
			return fmt.Errorf("--risk-score must be within [0, 1], got %v", explainRiskScore)
		}
	} else {
		a := svc.Predict(cmd.Context(), fv)
		risk = types.RiskResult{RiskScore: a.RiskScore, RiskLevel: a.RiskLevel, Confidence: a.Confidence}
	}
	if explainRiskLevel != "" {
		level := types.ParseRiskLevel(explainRiskLevel)
		if level == types.RiskUnknown {
			return fmt.Errorf("invalid --risk-level %q", explainRiskLevel)
		}
		risk.RiskLevel = level
	}

	res := svc.Explain(cmd.Context(), fv, risk)

	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintExplanation(&res)
	}

	return writeJSON(explainOutput, cmd.OutOrStdout(), res)
}
