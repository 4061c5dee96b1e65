package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"emblint/internal/engine/rules"
)

func sampleResult() Result {
	return Result{Files: []FileResult{
		{
			Path: "app/models/person.js",
			Violations: []rules.Violation{
				{File: "app/models/person.js", Line: 3, RuleID: "explicit-attr-type", Message: "attribute \"age\" must declare a transform type, e.g. attr('string')", Severity: rules.SeverityError},
				{File: "app/models/person.js", Line: 7, RuleID: "alpha-within-group", Message: "attribute \"firstName\" breaks alphabetical order within its group (\"lastName\" precedes it)", Severity: rules.SeverityWarning},
			},
		},
		{Path: "app/templates/clean.hbs"},
		{Path: "app/components/broken.js", ParseError: "syntax error at line 2", ParseErrorLine: 2},
	}}
}

func TestResultExitStatus(t *testing.T) {
	if !sampleResult().HasErrors() {
		t.Error("error-severity violations must fail the run")
	}

	warningsOnly := Result{Files: []FileResult{{
		Path: "a.js",
		Violations: []rules.Violation{
			{Line: 1, RuleID: "order-groups", Severity: rules.SeverityWarning},
		},
	}}}
	if warningsOnly.HasErrors() {
		t.Error("warnings alone must not fail the run")
	}

	parseFailure := Result{Files: []FileResult{{Path: "b.js", ParseError: "boom"}}}
	if !parseFailure.HasErrors() {
		t.Error("parse failures must fail the run")
	}
}

func TestRenderTextOrderAndSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, sampleResult())
	out := buf.String()

	personIdx := strings.Index(out, "app/models/person.js")
	brokenIdx := strings.Index(out, "app/components/broken.js")
	if personIdx == -1 || brokenIdx == -1 || personIdx > brokenIdx {
		t.Errorf("file blocks must keep scan order:\n%s", out)
	}
	if strings.Contains(out, "app/templates/clean.hbs") {
		t.Errorf("clean files should not get a block:\n%s", out)
	}
	if !strings.Contains(out, "3 files checked, 1 clean, 2 violations, 1 parse failures") {
		t.Errorf("unexpected summary:\n%s", out)
	}
}

func TestGenerateJSON(t *testing.T) {
	data, err := GenerateJSON(sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	files := doc["files"].([]interface{})
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d", len(files))
	}
	first := files[0].(map[string]interface{})
	if first["path"] != "app/models/person.js" {
		t.Errorf("file order not preserved: %v", first["path"])
	}
	violations := first["violations"].([]interface{})
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %d", len(violations))
	}
	v0 := violations[0].(map[string]interface{})
	if v0["ruleId"] != "explicit-attr-type" || v0["severity"] != "error" {
		t.Errorf("unexpected first violation: %v", v0)
	}
}

func TestGenerateSARIF(t *testing.T) {
	active := rules.AllRules()
	data, err := GenerateSARIF("/project", active, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	runs := doc["runs"].([]interface{})
	run := runs[0].(map[string]interface{})

	driver := run["tool"].(map[string]interface{})["driver"].(map[string]interface{})
	if driver["name"] != "emblint" {
		t.Errorf("unexpected driver name: %v", driver["name"])
	}
	catalog := driver["rules"].([]interface{})
	// All active rules plus the synthetic parse-error rule.
	if len(catalog) != len(active)+1 {
		t.Errorf("expected %d catalog rules, got %d", len(active)+1, len(catalog))
	}

	results := run["results"].([]interface{})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	last := results[2].(map[string]interface{})
	if last["ruleId"] != "parse-error" || last["level"] != "error" {
		t.Errorf("parse failure should map to the parse-error rule: %v", last)
	}
}

func TestSARIFRuleName(t *testing.T) {
	if got := sarifRuleName("no-template-partial"); got != "NoTemplatePartial" {
		t.Errorf("unexpected rule name: %s", got)
	}
}
