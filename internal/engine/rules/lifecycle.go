package rules

import (
	"emblint/internal/engine/parser"
)

// InitSuperCallRule requires an overridden init hook to call
// this._super(...arguments) before anything else.
type InitSuperCallRule struct{}

func (r *InitSuperCallRule) ID() string { return "init-super-call" }

func (r *InitSuperCallRule) Describe() string {
	return "an overridden init must call this._super(...arguments) first"
}

func (r *InitSuperCallRule) DefaultSeverity() Severity { return SeverityError }

func (r *InitSuperCallRule) Check(mod *parser.Module) []Violation {
	if mod.ExportBody == nil {
		return nil
	}
	var out []Violation
	for _, entry := range mod.ExportBody.Properties {
		if entry.Category != parser.CategoryLifecycleHook || entry.Name != "init" {
			continue
		}
		if entry.Hook == nil {
			continue
		}
		switch {
		case !entry.Hook.SuperFirst:
			out = append(out, violation(r, mod, entry.Location.Line,
				"init must call this._super(...arguments) before any other statement"))
		case !entry.Hook.ForwardsAll:
			out = append(out, violation(r, mod, entry.Location.Line,
				"init's super call must forward all original arguments: this._super(...arguments)"))
		}
	}
	return out
}
