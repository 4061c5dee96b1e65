package rules

import (
	"emblint/internal/engine/parser"
)

// ExplicitAttrTypeRule requires every attr() call to name its transform
// type: attr('string'), never attr() or attr('').
type ExplicitAttrTypeRule struct{}

func (r *ExplicitAttrTypeRule) ID() string { return "explicit-attr-type" }

func (r *ExplicitAttrTypeRule) Describe() string {
	return "attributes must declare an explicit transform type"
}

func (r *ExplicitAttrTypeRule) DefaultSeverity() Severity { return SeverityError }

func (r *ExplicitAttrTypeRule) Check(mod *parser.Module) []Violation {
	if mod.ExportBody == nil {
		return nil
	}
	var out []Violation
	for _, entry := range mod.ExportBody.Properties {
		if entry.Category != parser.CategoryAttribute {
			continue
		}
		// A non-literal first argument (attr(type) through a variable)
		// is opaque to static analysis and passes.
		if entry.ArgCount == 0 || (entry.TransformLiteral && entry.Transform == "") {
			out = append(out, violation(r, mod, entry.Location.Line,
				"attribute %q must declare a transform type, e.g. attr('string')", entry.Name))
		}
	}
	return out
}
