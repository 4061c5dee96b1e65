package rules

import (
	"emblint/internal/engine/parser"
)

// NoTemplatePartialRule forbids {{partial}}: partials share the calling
// scope; components declare theirs.
type NoTemplatePartialRule struct{}

func (r *NoTemplatePartialRule) ID() string { return "no-template-partial" }

func (r *NoTemplatePartialRule) Describe() string {
	return "use a component instead of a partial"
}

func (r *NoTemplatePartialRule) DefaultSeverity() Severity { return SeverityError }

func (r *NoTemplatePartialRule) Check(mod *parser.Module) []Violation {
	var out []Violation
	mod.Template.Walk(func(n *parser.TemplateNode) {
		if n.Kind != parser.TemplatePartialInvocation {
			return
		}
		out = append(out, violation(r, mod, n.Location.Line,
			"{{%s}} shares the including scope; extract a component", n.Expression))
	})
	return out
}

// BlockSyntaxRule forbids the legacy "{{#each item in items}}" binding;
// block params ("as |item|") declare their scope explicitly.
type BlockSyntaxRule struct{}

func (r *BlockSyntaxRule) ID() string { return "block-syntax" }

func (r *BlockSyntaxRule) Describe() string {
	return "block helpers must bind locals with block params, not the legacy in-syntax"
}

func (r *BlockSyntaxRule) DefaultSeverity() Severity { return SeverityError }

func (r *BlockSyntaxRule) Check(mod *parser.Module) []Violation {
	var out []Violation
	mod.Template.Walk(func(n *parser.TemplateNode) {
		if n.Kind != parser.TemplateBlockHelper || !n.LegacyInSyntax {
			return
		}
		out = append(out, violation(r, mod, n.Location.Line,
			"{{#%s}} uses the legacy in-syntax; bind with block params: as |...|", n.Expression))
	})
	return out
}
