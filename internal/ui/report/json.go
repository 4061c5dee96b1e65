package report

import (
	"encoding/json"

	"emblint/internal/shared/version"
)

type jsonReport struct {
	Tool    string     `json:"tool"`
	Version string     `json:"version"`
	Files   []jsonFile `json:"files"`
	Summary jsonTotals `json:"summary"`
}

type jsonFile struct {
	Path       string          `json:"path"`
	ParseError string          `json:"parseError,omitempty"`
	Violations []jsonViolation `json:"violations"`
}

type jsonViolation struct {
	Line     int    `json:"line"`
	RuleID   string `json:"ruleId"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type jsonTotals struct {
	Files       int `json:"files"`
	Violations  int `json:"violations"`
	ParseErrors int `json:"parseErrors"`
}

// GenerateJSON builds the machine-readable report. File and violation
// order mirrors the in-memory result exactly.
func GenerateJSON(res Result) ([]byte, error) {
	doc := jsonReport{
		Tool:    "emblint",
		Version: version.Version,
		Files:   make([]jsonFile, 0, len(res.Files)),
		Summary: jsonTotals{
			Files:       len(res.Files),
			Violations:  res.ViolationCount(),
			ParseErrors: res.ParseErrorCount(),
		},
	}

	for _, file := range res.Files {
		jf := jsonFile{
			Path:       file.Path,
			ParseError: file.ParseError,
			Violations: make([]jsonViolation, 0, len(file.Violations)),
		}
		for _, v := range file.Violations {
			jf.Violations = append(jf.Violations, jsonViolation{
				Line:     v.Line,
				RuleID:   v.RuleID,
				Severity: v.Severity.String(),
				Message:  v.Message,
			})
		}
		doc.Files = append(doc.Files, jf)
	}

	return json.MarshalIndent(doc, "", "  ")
}
