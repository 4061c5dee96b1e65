package rules

import (
	"strings"

	"emblint/internal/engine/parser"
)

// NoObjectArrayControllerRule forbids extending the deprecated proxying
// controller base types.
type NoObjectArrayControllerRule struct{}

func (r *NoObjectArrayControllerRule) ID() string { return "no-object-array-controller" }

func (r *NoObjectArrayControllerRule) Describe() string {
	return "ObjectController and ArrayController are deprecated; extend Controller"
}

func (r *NoObjectArrayControllerRule) DefaultSeverity() Severity { return SeverityError }

func (r *NoObjectArrayControllerRule) Check(mod *parser.Module) []Violation {
	var out []Violation
	for _, call := range mod.ExtendCalls {
		base := call.Target
		if idx := strings.LastIndex(base, "."); idx != -1 {
			base = base[idx+1:]
		}
		if base != "ObjectController" && base != "ArrayController" {
			continue
		}
		out = append(out, violation(r, mod, call.Location.Line,
			"%s is deprecated; extend Controller and alias what you need", call.Target))
	}
	return out
}
