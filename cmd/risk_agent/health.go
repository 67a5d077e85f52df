package main

import (
	"github.com/jonathan/risk-router/internal/observability"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report model registry health",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	svc, closeFn, err := buildService(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeFn()

	h := svc.Health()
	if verbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintHealth(&h)
	}
	return writeJSON("", cmd.OutOrStdout(), h)
}
