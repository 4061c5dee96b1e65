package rules

import (
	"fmt"
	"sort"
	"strings"

	"emblint/internal/core/errors"
	"emblint/internal/engine/parser"
	"emblint/internal/shared/util"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

type Violation struct {
	File     string
	Line     int
	RuleID   string
	Message  string
	Severity Severity
}

// Rule is one convention check. Rules are pure and order-independent:
// Check never mutates the module and identical modules always yield
// identical violation sequences.
type Rule interface {
	ID() string
	Describe() string
	DefaultSeverity() Severity
	Check(mod *parser.Module) []Violation
}

// Settings mirrors the [rules] config table without importing the
// config package into the engine layer.
type Settings struct {
	Enabled  []string
	Disabled []string
	Severity map[string]string
}

// AllRules returns the full rule catalog in stable id order.
func AllRules() []Rule {
	rules := []Rule{
		&OrderGroupsRule{},
		&AlphaWithinGroupRule{},
		&ModelGroupsRule{},
		&ExplicitAttrTypeRule{},
		&NoGlobalAccessRule{},
		&GetSetHelpersRule{},
		&UnderscoreDynamicSegmentRule{},
		&NoObjectArrayControllerRule{},
		&NoTemplatePartialRule{},
		&BlockSyntaxRule{},
		&InitSuperCallRule{},
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
	return rules
}

type RuleSet struct {
	rules      []Rule
	severities map[string]Severity
}

// NewRuleSet applies the allow/deny lists and severity overrides to the
// catalog. Any unknown rule id is a fatal configuration error, reported
// before a single module is parsed.
func NewRuleSet(settings Settings) (*RuleSet, error) {
	catalog := AllRules()
	known := make(map[string]Rule, len(catalog))
	for _, rule := range catalog {
		known[rule.ID()] = rule
	}

	for _, id := range append(append([]string{}, settings.Enabled...), settings.Disabled...) {
		if _, ok := known[id]; !ok {
			return nil, errors.New(errors.CodeConfigError, fmt.Sprintf("unknown rule id %q", id))
		}
	}

	severities := make(map[string]Severity)
	// Sorted iteration keeps the first reported bad id deterministic.
	for _, id := range util.SortedStringKeys(settings.Severity) {
		raw := settings.Severity[id]
		if _, ok := known[id]; !ok {
			return nil, errors.New(errors.CodeConfigError, fmt.Sprintf("unknown rule id %q in severity overrides", id))
		}
		switch strings.ToLower(raw) {
		case "error":
			severities[id] = SeverityError
		case "warning":
			severities[id] = SeverityWarning
		default:
			return nil, errors.New(errors.CodeConfigError,
				fmt.Sprintf("invalid severity %q for rule %q", raw, id))
		}
	}

	var active []Rule
	if len(settings.Enabled) > 0 {
		for _, id := range settings.Enabled {
			active = append(active, known[id])
		}
		sort.Slice(active, func(i, j int) bool { return active[i].ID() < active[j].ID() })
	} else {
		disabled := make(map[string]bool, len(settings.Disabled))
		for _, id := range settings.Disabled {
			disabled[id] = true
		}
		for _, rule := range catalog {
			if !disabled[rule.ID()] {
				active = append(active, rule)
			}
		}
	}

	return &RuleSet{rules: active, severities: severities}, nil
}

func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Evaluate runs every active rule over the module and returns the merged
// violations ordered by line, then rule id. A panicking rule is isolated
// into a single RULE_ERROR violation attributed to that rule; the other
// rules still run.
func (rs *RuleSet) Evaluate(mod *parser.Module) []Violation {
	if mod == nil {
		return nil
	}

	out := make([]Violation, 0)
	for _, rule := range rs.rules {
		out = append(out, rs.runRule(rule, mod)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].RuleID < out[j].RuleID
	})
	return out
}

func (rs *RuleSet) runRule(rule Rule, mod *parser.Module) (violations []Violation) {
	defer func() {
		if r := recover(); r != nil {
			violations = []Violation{{
				File:     mod.Path,
				RuleID:   rule.ID(),
				Severity: SeverityError,
				Message:  fmt.Sprintf("rule evaluation failed: %v", r),
			}}
		}
	}()

	violations = rule.Check(mod)
	if override, ok := rs.severities[rule.ID()]; ok {
		for i := range violations {
			violations[i].Severity = override
		}
	}
	return violations
}

// violation is the shared constructor used by the individual rules.
func violation(rule Rule, mod *parser.Module, line int, format string, args ...interface{}) Violation {
	return Violation{
		File:     mod.Path,
		Line:     line,
		RuleID:   rule.ID(),
		Message:  fmt.Sprintf(format, args...),
		Severity: rule.DefaultSeverity(),
	}
}
