package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/risk-router/internal/types"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a JSONL file of feature vectors",
	Long:  "Reads one feature JSON object per line and writes one RiskAssessment JSON per line, in input order, scoring with bounded parallelism.",
	RunE:  runBatch,
}

var (
	batchInput       string
	batchOutput      string
	batchConcurrency int
)

func init() {
	batchCmd.Flags().StringVarP(&batchInput, "input", "i", "-", "Path to JSONL input (\"-\" for stdin)")
	batchCmd.Flags().StringVarP(&batchOutput, "out", "o", "", "Path to JSONL output (default stdout)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Parallel workers (default from config)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	data, err := readInput(batchInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	var vectors []types.FeatureVector
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for line := 1; scanner.Scan(); line++ {
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		fv, err := parseFeatures(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		vectors = append(vectors, fv)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan input: %w", err)
	}

	svc, closeFn, err := buildService(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeFn()

	concurrency := batchConcurrency
	if concurrency <= 0 {
		concurrency = app.cfg.Batch.Concurrency
	}

	results, err := svc.PredictAll(cmd.Context(), vectors, concurrency)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, a := range results {
		if err := enc.Encode(a); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	}

	app.logger.WithField("count", len(results)).Info("batch complete")

	if batchOutput == "" {
		_, err := cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(batchOutput, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", batchOutput, err)
	}
	return nil
}
