package main

import (
	"github.com/jonathan/risk-router/internal/observability"
	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Score one feature vector",
	Long:  "Routes a JSON feature vector to the best available model and prints the RiskAssessment JSON, including the rule-based explanation.",
	RunE:  runPredict,
}

var (
	predictInput  string
	predictOutput string
)

func init() {
	predictCmd.Flags().StringVarP(&predictInput, "input", "i", "-", "Path to feature JSON (\"-\" for stdin)")
	predictCmd.Flags().StringVarP(&predictOutput, "out", "o", "", "Path to output RiskAssessment JSON (default stdout)")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	data, err := readInput(predictInput, cmd.InOrStdin())
	if err != nil {
		return err
	}
	fv, err := parseFeatures(data)
	if err != nil {
		return err
	}

	svc, closeFn, err := buildService(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeFn()

	a := svc.Predict(cmd.Context(), fv)

	if verbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintAssessment(&a)
		p.PrintExplanation(a.Explanation)
	}

	return writeJSON(predictOutput, cmd.OutOrStdout(), a)
}
