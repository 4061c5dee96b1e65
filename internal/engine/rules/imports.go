package rules

import (
	"emblint/internal/engine/parser"
)

// namespaceUtilities maps framework utilities that have a named-import
// home to the module that exports them. Accessing one through the
// namespace object (member access or destructuring) is flagged.
var namespaceUtilities = map[string]string{
	"computed":      "@ember/object",
	"get":           "@ember/object",
	"set":           "@ember/object",
	"getProperties": "@ember/object",
	"setProperties": "@ember/object",
	"observer":      "@ember/object",
	"on":            "@ember/object/evented",
	"alias":         "@ember/object/computed",
	"run":           "@ember/runloop",
	"isEmpty":       "@ember/utils",
	"isBlank":       "@ember/utils",
	"isPresent":     "@ember/utils",
	"isNone":        "@ember/utils",
	"typeOf":        "@ember/utils",
	"A":             "@ember/array",
	"makeArray":     "@ember/array",
	"inject":        "@ember/service",
	"assert":        "@ember/debug",
	"warn":          "@ember/debug",
	"debug":         "@ember/debug",
	"htmlSafe":      "@ember/string",
	"camelize":      "@ember/string",
	"dasherize":     "@ember/string",
	"underscore":    "@ember/string",
	"guidFor":       "@ember/object/internals",
}

type NoGlobalAccessRule struct{}

func (r *NoGlobalAccessRule) ID() string { return "no-global-access" }

func (r *NoGlobalAccessRule) Describe() string {
	return "framework utilities must be named imports, not namespace member accesses"
}

func (r *NoGlobalAccessRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *NoGlobalAccessRule) Check(mod *parser.Module) []Violation {
	var out []Violation
	for _, access := range mod.NamespaceAccesses {
		module, ok := namespaceUtilities[access.Member]
		if !ok {
			continue
		}
		out = append(out, violation(r, mod, access.Location.Line,
			"%s is read off the %s namespace; import { %s } from '%s' instead",
			access.Member, access.Namespace, access.Member, module))
	}
	return out
}
