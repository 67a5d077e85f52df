package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/risk-router/internal/types"
)

// readInput reads path, or stdin when path is "" or "-"
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return data, nil
}

// parseFeatures accepts either a bare feature object or {"features": {...}}
func parseFeatures(data []byte) (types.FeatureVector, error) {
	var wrapped struct {
		Features map[string]float64 `json:"features"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Features != nil {
		return types.FeatureVector(wrapped.Features), nil
	}

	var fv map[string]float64
	if err := json.Unmarshal(data, &fv); err != nil {
		return nil, fmt.Errorf("failed to parse feature JSON: %w", err)
	}
	return types.FeatureVector(fv), nil
}

// writeJSON writes v as indented JSON to path, or to out when path is empty
func writeJSON(path string, out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err := out.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
