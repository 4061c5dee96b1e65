package rules

import (
	"regexp"
	"strings"

	"emblint/internal/engine/parser"
)

var underscoredSegmentRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
var camelBoundaryRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// UnderscoreDynamicSegmentRule requires snake_case dynamic segments in
// route paths: ':foo_id', never ':fooId'.
type UnderscoreDynamicSegmentRule struct{}

func (r *UnderscoreDynamicSegmentRule) ID() string { return "underscore-dynamic-segment" }

func (r *UnderscoreDynamicSegmentRule) Describe() string {
	return "route dynamic segments must be underscored"
}

func (r *UnderscoreDynamicSegmentRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *UnderscoreDynamicSegmentRule) Check(mod *parser.Module) []Violation {
	var out []Violation
	for _, seg := range mod.Routes {
		if underscoredSegmentRe.MatchString(seg.Segment) {
			continue
		}
		out = append(out, violation(r, mod, seg.Location.Line,
			"dynamic segment :%s in route %q should be :%s",
			seg.Segment, seg.Route, underscored(seg.Segment)))
	}
	return out
}

func underscored(segment string) string {
	return strings.ToLower(camelBoundaryRe.ReplaceAllString(segment, "${1}_${2}"))
}
