package report

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"emblint/internal/engine/rules"
	"emblint/internal/shared/version"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	ruleIDParseError = "parse-error"
)

// sarifReport is the top-level SARIF document.
type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document from a lint result.
// All file URIs are made relative to projectRoot; absolute paths are
// never included so that reports are safe to share.
func GenerateSARIF(projectRoot string, active []rules.Rule, res Result) ([]byte, error) {
	catalog := buildSARIFRules(active, res)
	results := make([]sarifResult, 0, res.ViolationCount())

	for _, file := range res.Files {
		if file.ParseError != "" {
			results = append(results, sarifResult{
				RuleID:    ruleIDParseError,
				Level:     "error",
				Message:   sarifMessage{Text: file.ParseError},
				Locations: []sarifLocation{fileLocation(projectRoot, file.Path, file.ParseErrorLine, 0)},
			})
			continue
		}
		for _, v := range file.Violations {
			level := "warning"
			if v.Severity == rules.SeverityError {
				level = "error"
			}
			results = append(results, sarifResult{
				RuleID:    v.RuleID,
				Level:     level,
				Message:   sarifMessage{Text: v.Message},
				Locations: []sarifLocation{fileLocation(projectRoot, file.Path, v.Line, 0)},
			})
		}
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "emblint",
						Version: version.Version,
						Rules:   catalog,
					},
				},
				Results: results,
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

func buildSARIFRules(active []rules.Rule, res Result) []sarifRule {
	catalog := make([]sarifRule, 0, len(active)+1)
	for _, rule := range active {
		catalog = append(catalog, sarifRule{
			ID:               rule.ID(),
			Name:             sarifRuleName(rule.ID()),
			ShortDescription: sarifMessage{Text: rule.Describe()},
			DefaultConfig:    sarifRuleDefaultConfig{Level: rule.DefaultSeverity().String()},
		})
	}
	if res.ParseErrorCount() > 0 {
		catalog = append(catalog, sarifRule{
			ID:               ruleIDParseError,
			Name:             "ParseError",
			ShortDescription: sarifMessage{Text: "The module is not syntactically valid."},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "error"},
		})
	}
	return catalog
}

// sarifRuleName turns "order-groups" into "OrderGroups" for the rule
// catalog's PascalCase name field.
func sarifRuleName(id string) string {
	parts := strings.Split(id, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}

func fileLocation(projectRoot, file string, line, column int) sarifLocation {
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{
				URI:       relativeURI(projectRoot, file),
				URIBaseID: "%SRCROOT%",
			},
		},
	}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{
			StartLine:   line,
			StartColumn: column,
		}
	}
	return loc
}

func relativeURI(projectRoot, file string) string {
	if projectRoot != "" {
		if rel, err := filepath.Rel(projectRoot, file); err == nil && !strings.HasPrefix(rel, "..") {
			file = rel
		}
	}
	return filepath.ToSlash(file)
}
