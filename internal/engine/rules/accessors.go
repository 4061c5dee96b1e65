package rules

import (
	"emblint/internal/engine/parser"
)

// GetSetHelpersRule forbids method-style property access: obj.get('a')
// and obj.set('a', v) must be the free functions get(obj, 'a') and
// set(obj, 'a', v).
type GetSetHelpersRule struct{}

func (r *GetSetHelpersRule) ID() string { return "get-set-helpers" }

func (r *GetSetHelpersRule) Describe() string {
	return "use the free get/set helpers instead of method-style property access"
}

func (r *GetSetHelpersRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *GetSetHelpersRule) Check(mod *parser.Module) []Violation {
	var out []Violation
	for _, call := range mod.AccessorCalls {
		out = append(out, violation(r, mod, call.Location.Line,
			"%s.%s(...) should be %s(%s, ...) from @ember/object",
			call.Receiver, call.Method, call.Method, call.Receiver))
	}
	return out
}
