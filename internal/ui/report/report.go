package report

import (
	"emblint/internal/engine/rules"
)

// FileResult is one module's lint outcome. Violations are already in
// ascending line order; a parse failure replaces them entirely.
type FileResult struct {
	Path           string
	Violations     []rules.Violation
	ParseError     string
	ParseErrorLine int
}

// Result aggregates the whole run in scan order. Construction order is
// preserved end to end so output stays stable and diffable.
type Result struct {
	Files []FileResult
}

// HasErrors reports whether any Error-severity violation or parse
// failure exists; it drives the process exit status.
func (r Result) HasErrors() bool {
	for _, file := range r.Files {
		if file.ParseError != "" {
			return true
		}
		for _, v := range file.Violations {
			if v.Severity == rules.SeverityError {
				return true
			}
		}
	}
	return false
}

func (r Result) ViolationCount() int {
	total := 0
	for _, file := range r.Files {
		total += len(file.Violations)
	}
	return total
}

func (r Result) ParseErrorCount() int {
	total := 0
	for _, file := range r.Files {
		if file.ParseError != "" {
			total++
		}
	}
	return total
}

// CountByRule returns violation totals keyed by rule id.
func (r Result) CountByRule() map[string]int {
	out := make(map[string]int)
	for _, file := range r.Files {
		for _, v := range file.Violations {
			out[v.RuleID]++
		}
	}
	return out
}
