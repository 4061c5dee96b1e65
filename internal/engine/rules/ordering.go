package rules

import (
	"emblint/internal/engine/parser"
	"emblint/internal/shared/util"
)

// Group ranks for the general property ordering: plain properties,
// attributes and associations lead, then single-line computed, multi-line
// computed, lifecycle hooks, and the actions block last.
func generalGroupRank(category parser.PropertyCategory) int {
	switch category {
	case parser.CategoryDefault, parser.CategoryAttribute, parser.CategoryAssociation:
		return 0
	case parser.CategoryComputedSingleLine:
		return 1
	case parser.CategoryComputedMultiLine:
		return 2
	case parser.CategoryLifecycleHook:
		return 3
	case parser.CategoryActionsBlock:
		return 4
	default:
		return 0
	}
}

type OrderGroupsRule struct{}

func (r *OrderGroupsRule) ID() string { return "order-groups" }

func (r *OrderGroupsRule) Describe() string {
	return "object properties must be grouped: plain properties, single-line computed, multi-line computed, lifecycle hooks, actions"
}

func (r *OrderGroupsRule) DefaultSeverity() Severity { return SeverityWarning }

func (r *OrderGroupsRule) Check(mod *parser.Module) []Violation {
	if mod.ExportBody == nil {
		return nil
	}
	return checkGroupOrder(r, mod, mod.ExportBody.Properties, generalGroupRank,
		"plain properties, single-line computed, multi-line computed, lifecycle hooks, actions")
}

// checkGroupOrder flags every entry that is followed, anywhere later in
// the object, by an entry from an earlier-required group. Blind to order
// inside a group: permuting same-group entries never changes the result.
func checkGroupOrder(rule Rule, mod *parser.Module, props []parser.PropertyEntry, rank func(parser.PropertyCategory) int, expected string) []Violation {
	var out []Violation
	for i, entry := range props {
		entryRank := rank(entry.Category)
		for _, later := range props[i+1:] {
			if rank(later.Category) < entryRank {
				out = append(out, violation(rule, mod, entry.Location.Line,
					"%s %q belongs after later entries; expected group order: %s",
					entry.Category, entry.Name, expected))
				break
			}
		}
	}
	return out
}

type AlphaWithinGroupRule struct{}

func (r *AlphaWithinGroupRule) ID() string { return "alpha-within-group" }

func (r *AlphaWithinGroupRule) Describe() string {
	return "attributes, associations and computed properties must be alphabetical within their group"
}

func (r *AlphaWithinGroupRule) DefaultSeverity() Severity { return SeverityWarning }

var alphabetizedCategories = []parser.PropertyCategory{
	parser.CategoryAttribute,
	parser.CategoryAssociation,
	parser.CategoryComputedSingleLine,
	parser.CategoryComputedMultiLine,
}

func (r *AlphaWithinGroupRule) Check(mod *parser.Module) []Violation {
	if mod.ExportBody == nil {
		return nil
	}
	return checkAlphabetical(r, mod, mod.ExportBody.Properties, alphabetizedCategories)
}

func checkAlphabetical(rule Rule, mod *parser.Module, props []parser.PropertyEntry, categories []parser.PropertyCategory) []Violation {
	var out []Violation
	for _, category := range categories {
		var prev *parser.PropertyEntry
		for i := range props {
			entry := &props[i]
			if entry.Category != category {
				continue
			}
			if prev != nil && prev.Name > entry.Name {
				out = append(out, violation(rule, mod, entry.Location.Line,
					"%s %q breaks alphabetical order within its group (%q precedes it)",
					entry.Category, entry.Name, prev.Name))
			}
			prev = entry
		}
	}
	return out
}

type ModelGroupsRule struct{}

func (r *ModelGroupsRule) ID() string { return "model-groups" }

func (r *ModelGroupsRule) Describe() string {
	return "model properties must be grouped attributes, associations, computed properties, each alphabetical"
}

func (r *ModelGroupsRule) DefaultSeverity() Severity { return SeverityWarning }

func modelGroupRank(category parser.PropertyCategory) int {
	switch category {
	case parser.CategoryAttribute:
		return 0
	case parser.CategoryAssociation:
		return 1
	case parser.CategoryComputedSingleLine, parser.CategoryComputedMultiLine:
		return 2
	default:
		return 3
	}
}

func (r *ModelGroupsRule) Check(mod *parser.Module) []Violation {
	if mod.ExportBody == nil || !isModelModule(mod) {
		return nil
	}

	// Only the three model groups participate in the ordering.
	var props []parser.PropertyEntry
	for _, entry := range mod.ExportBody.Properties {
		if modelGroupRank(entry.Category) < 3 {
			props = append(props, entry)
		}
	}

	out := checkGroupOrder(r, mod, props, modelGroupRank,
		"attributes, associations, computed properties")
	out = append(out, checkAlphabetical(r, mod, props, alphabetizedCategories)...)
	return out
}

func isModelModule(mod *parser.Module) bool {
	if mod.ExportBody != nil {
		switch mod.ExportBody.Target {
		case "DS.Model", "Model":
			return true
		}
	}
	return util.PathSegment(mod.Path, "models")
}
