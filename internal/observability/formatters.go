// Package observability provides structured logging setup and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/risk-router/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// PrintAssessment outputs the score, level, routing and warnings of an assessment
func (p *Printer) PrintAssessment(a *types.RiskAssessment) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Risk:       %.3f (%s)\n", a.RiskScore, a.RiskLevel))
	sb.WriteString(fmt.Sprintf("Confidence: %.3f\n", a.Confidence))
	sb.WriteString(fmt.Sprintf("Model:      %s\n", a.ModelUsed))
	sb.WriteString(fmt.Sprintf("Reason:     %s\n", a.RoutingReason))
	if len(a.Route) > 0 {
		sb.WriteString(fmt.Sprintf("Route:      %s\n", strings.Join(a.Route, " → ")))
	}
	if len(a.FeaturesUsed) > 0 {
		sb.WriteString(fmt.Sprintf("Features:   %s\n", strings.Join(a.FeaturesUsed, ", ")))
	}

	if len(a.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range a.Warnings {
			sb.WriteString(fmt.Sprintf("  ! %s\n", w))
		}
	}

	p.printBox("RISK ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExplanation outputs the ranked contributing factors and the narrative, if any
func (p *Printer) PrintExplanation(e *types.ExplanationResult) {
	if e == nil {
		return
	}

	var sb strings.Builder
	if e.RiskDescription != "" {
		sb.WriteString(e.RiskDescription)
		sb.WriteString("\n\n")
	}

	if len(e.ContributingFactors) == 0 {
		sb.WriteString("No contributing factors above threshold\n")
	}

	count := min(len(e.ContributingFactors), maxItemsToShow)
	for i := 0; i < count; i++ {
		f := e.ContributingFactors[i]
		sb.WriteString(fmt.Sprintf("#%d  %s = %.1f [%s]\n", i+1, f.DisplayName, f.Value, f.Severity))
		sb.WriteString(fmt.Sprintf("    %s\n", f.Explanation))
	}
	if len(e.ContributingFactors) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more factors\n", len(e.ContributingFactors)-maxItemsToShow))
	}

	if e.Narrative != "" {
		sb.WriteString(fmt.Sprintf("\nNarrative (%s):\n  %s\n", e.NarrativeSource, e.Narrative))
	}

	p.printBox("EXPLANATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHealth outputs the per-model health table
func (p *Printer) PrintHealth(h *types.HealthReport) {
	if h == nil {
		return
	}

	names := make([]string, 0, len(h.Models))
	for name := range h.Models {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	status := "healthy"
	if !h.Healthy {
		status = "UNHEALTHY (rule-based fallback only)"
	}
	sb.WriteString(fmt.Sprintf("Registry: %s\n\n", status))

	for _, name := range names {
		mark := "✓"
		if !h.Models[name] {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, name))
		if msg, ok := h.Errors[name]; ok {
			sb.WriteString(fmt.Sprintf("    %s\n", msg))
		}
	}

	p.printBox("MODEL HEALTH", strings.TrimSuffix(sb.String(), "\n"))
}
