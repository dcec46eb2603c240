package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/m-217/oneupdater/oneupdater/config"
	"github.com/m-217/oneupdater/oneupdater/managergroup"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func successMark() string { return color.GreenString("✓") }
func failureMark() string { return color.RedString("✗") }
func warningMark() string { return color.YellowString("!") }

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func pastTense(op string) string {
	if op == config.OpUpdate {
		return "updated"
	}
	return "upgraded"
}

func gerund(op string) string {
	if op == config.OpUpdate {
		return "Updating"
	}
	return "Upgrading"
}

func printResult(w io.Writer, r managergroup.Result, verbose bool) {
	switch r.Status {
	case managergroup.Succeeded:
		_, _ = fmt.Fprintf(w, "%s %s %s successfully (%s)\n", successMark(), r.Manager, pastTense(r.Operation), r.Duration.Round(time.Second))
	case managergroup.Failed:
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "%s %s: %v\n", failureMark(), r.Manager, r.Err)
			return
		}
		_, _ = fmt.Fprintf(w, "%s %s %s failed\n", failureMark(), r.Manager, r.Operation)
	case managergroup.Skipped:
		_, _ = fmt.Fprintf(w, "%s %s has no %s command, skipped\n", warningMark(), r.Manager, r.Operation)
	case managergroup.Disabled:
		if verbose {
			_, _ = fmt.Fprintf(w, "- %s is disabled\n", r.Manager)
		}
	}
}

type summaryEntry struct {
	Manager   string `json:"manager" yaml:"manager"`
	Operation string `json:"operation" yaml:"operation"`
	Status    string `json:"status" yaml:"status"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
	Duration  string `json:"duration,omitempty" yaml:"duration,omitempty"`
}

func summarize(results []managergroup.Result) []summaryEntry {
	entries := make([]summaryEntry, 0, len(results))
	for _, r := range results {
		e := summaryEntry{Manager: r.Manager, Operation: r.Operation, Status: r.Status.String()}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		if r.Duration > 0 {
			e.Duration = r.Duration.Round(time.Millisecond).String()
		}
		entries = append(entries, e)
	}
	return entries
}

// printSummary writes the final tally in the requested format.
func printSummary(w io.Writer, results []managergroup.Result, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summarize(results))
	case outputYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(summarize(results))
	}

	counts := map[managergroup.Status]int{}
	for _, r := range results {
		counts[r.Status]++
	}
	parts := []string{fmt.Sprintf("%d succeeded", counts[managergroup.Succeeded])}
	if n := counts[managergroup.Failed]; n > 0 {
		parts = append(parts, color.RedString("%d failed", n))
	}
	if n := counts[managergroup.Skipped]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", n))
	}
	if n := counts[managergroup.Disabled]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d disabled", n))
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, ", "))
	return err
}

func validOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want %s, %s or %s)", format, outputText, outputJSON, outputYAML)
}
