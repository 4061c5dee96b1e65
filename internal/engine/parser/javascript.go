package parser

import (
	"regexp"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// JavaScriptExtractor builds the source model for one .js module:
// imports, the exported extend-call object with classified properties,
// route maps, namespace accesses and method-style accessor calls.
type JavaScriptExtractor struct{}

var lifecycleHooks = map[string]bool{
	"init":               true,
	"willInsertElement":  true,
	"didInsertElement":   true,
	"willDestroyElement": true,
	"didDestroyElement":  true,
	"willRender":         true,
	"didRender":          true,
	"didReceiveAttrs":    true,
	"didUpdateAttrs":     true,
	"willUpdate":         true,
	"didUpdate":          true,
	"willDestroy":        true,
	"willTransition":     true,
	"didTransition":      true,
	"beforeModel":        true,
	"model":              true,
	"afterModel":         true,
	"setupController":    true,
	"activate":           true,
	"deactivate":         true,
}

// Computed-property macros that read as aliases/reductions of other keys.
var computedMacros = map[string]bool{
	"alias":    true,
	"reads":    true,
	"readOnly": true,
	"oneWay":   true,
	"equal":    true,
	"and":      true,
	"or":       true,
	"not":      true,
	"bool":     true,
	"empty":    true,
	"notEmpty": true,
	"none":     true,
	"match":    true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"max":      true,
	"min":      true,
	"sum":      true,
	"map":      true,
	"mapBy":    true,
	"filter":   true,
	"filterBy": true,
	"sort":     true,
	"uniq":     true,
	"union":    true,
}

var dynamicSegmentRe = regexp.MustCompile(`:(\w+)`)

func (e *JavaScriptExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*Module, error) {
	mod := &Module{
		Path:     filePath,
		Language: "javascript",
		ParsedAt: time.Now(),
	}

	ctx := &ExtractionContext{Source: source, Module: mod}
	js := &jsExtraction{
		ctx: ctx,
		namespaces: map[string]bool{
			"Ember": true,
			"Em":    true,
			"DS":    true,
		},
	}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_statement":    js.extractImport,
		"export_statement":    js.extractExport,
		"call_expression":     js.extractCall,
		"member_expression":   js.extractNamespaceAccess,
		"variable_declarator": js.extractNamespaceDestructure,
	})
	engine.Walk(ctx, root)

	return mod, nil
}

// jsExtraction is per-file state; the registered extractor itself stays
// stateless so parallel workers can share it.
type jsExtraction struct {
	ctx        *ExtractionContext
	namespaces map[string]bool
}

func (js *jsExtraction) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	imp := Import{Location: ctx.Location(node)}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		switch child.Kind() {
		case "string":
			imp.SourceModule = trimQuoted(ctx.Text(child))
		case "import_clause":
			js.extractImportClause(ctx, child, &imp)
		}
	}

	if imp.SourceModule == "" {
		return true
	}
	if imp.IsNamespace && imp.LocalName != "" {
		js.namespaces[imp.LocalName] = true
	}
	ctx.Module.Imports = append(ctx.Module.Imports, imp)
	return true
}

func (js *jsExtraction) extractImportClause(ctx *ExtractionContext, clause *sitter.Node, imp *Import) {
	for i := uint(0); i < clause.ChildCount(); i++ {
		child := clause.Child(i)
		switch child.Kind() {
		case "identifier":
			imp.LocalName = ctx.Text(child)
		case "namespace_import":
			imp.IsNamespace = true
			for j := uint(0); j < child.ChildCount(); j++ {
				if child.Child(j).Kind() == "identifier" {
					imp.LocalName = ctx.Text(child.Child(j))
				}
			}
		case "named_imports":
			for j := uint(0); j < child.NamedChildCount(); j++ {
				spec := child.NamedChild(j)
				if spec.Kind() != "import_specifier" {
					continue
				}
				local := spec.ChildByFieldName("alias")
				if local == nil {
					local = spec.ChildByFieldName("name")
				}
				if local != nil {
					imp.Named = append(imp.Named, ctx.Text(local))
				}
			}
		}
	}
}

func (js *jsExtraction) extractExport(ctx *ExtractionContext, node *sitter.Node) bool {
	isDefault := false
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "default" {
			isDefault = true
			break
		}
	}
	if !isDefault {
		return false
	}

	value := node.ChildByFieldName("value")
	if value == nil {
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			if child.Kind() == "call_expression" {
				value = child
				break
			}
		}
	}
	if value == nil || value.Kind() != "call_expression" {
		return false
	}

	target, body := js.extendCallParts(ctx, value)
	if body == nil {
		return false
	}

	spec := &ObjectSpec{Target: target, Location: ctx.Location(body)}
	js.extractProperties(ctx, body, spec)
	ctx.Module.ExportBody = spec
	// Children still walked: the body holds namespace/accessor patterns.
	return false
}

// extendCallParts returns the extension target and the object-literal
// argument when node is an X.extend({...}) call. Mixins before the final
// object argument are skipped.
func (js *jsExtraction) extendCallParts(ctx *ExtractionContext, node *sitter.Node) (string, *sitter.Node) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "member_expression" {
		return "", nil
	}
	prop := fn.ChildByFieldName("property")
	if prop == nil || ctx.Text(prop) != "extend" {
		return "", nil
	}
	target := ctx.Text(fn.ChildByFieldName("object"))

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return target, nil
	}
	var body *sitter.Node
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		if arg.Kind() == "object" {
			body = arg
		}
	}
	return target, body
}

func (js *jsExtraction) extractProperties(ctx *ExtractionContext, object *sitter.Node, spec *ObjectSpec) {
	for i := uint(0); i < object.NamedChildCount(); i++ {
		child := object.NamedChild(i)
		switch child.Kind() {
		case "pair":
			if entry, ok := js.classifyPair(ctx, child); ok {
				spec.Properties = append(spec.Properties, entry)
			}
		case "method_definition":
			if entry, ok := js.classifyMethod(ctx, child); ok {
				spec.Properties = append(spec.Properties, entry)
			}
		case "shorthand_property_identifier":
			spec.Properties = append(spec.Properties, PropertyEntry{
				Name:     ctx.Text(child),
				Category: CategoryDefault,
				Location: ctx.Location(child),
			})
		}
	}
}

func (js *jsExtraction) classifyPair(ctx *ExtractionContext, pair *sitter.Node) (PropertyEntry, bool) {
	key := pair.ChildByFieldName("key")
	value := pair.ChildByFieldName("value")
	if key == nil || value == nil {
		return PropertyEntry{}, false
	}

	entry := PropertyEntry{
		Name:     propertyKeyName(ctx, key),
		Category: CategoryDefault,
		Location: ctx.Location(pair),
	}
	if entry.Name == "" {
		return PropertyEntry{}, false
	}

	if entry.Name == "actions" {
		entry.Category = CategoryActionsBlock
		return entry, true
	}

	switch value.Kind() {
	case "call_expression":
		js.classifyInitializerCall(ctx, pair, value, &entry)
	case "function", "function_expression", "arrow_function":
		if lifecycleHooks[entry.Name] {
			entry.Category = CategoryLifecycleHook
			entry.Hook = hookInfo(ctx, value.ChildByFieldName("body"))
		}
	}

	return entry, true
}

func (js *jsExtraction) classifyMethod(ctx *ExtractionContext, method *sitter.Node) (PropertyEntry, bool) {
	name := method.ChildByFieldName("name")
	if name == nil {
		return PropertyEntry{}, false
	}
	entry := PropertyEntry{
		Name:     propertyKeyName(ctx, name),
		Category: CategoryDefault,
		Location: ctx.Location(method),
	}
	if entry.Name == "" {
		return PropertyEntry{}, false
	}
	if lifecycleHooks[entry.Name] {
		entry.Category = CategoryLifecycleHook
		entry.Hook = hookInfo(ctx, method.ChildByFieldName("body"))
	}
	return entry, true
}

func (js *jsExtraction) classifyInitializerCall(ctx *ExtractionContext, pair, call *sitter.Node, entry *PropertyEntry) {
	base, path := calleeNames(ctx, call)

	switch {
	case base == "attr":
		entry.Category = CategoryAttribute
		entry.ArgCount, entry.Transform, entry.TransformLiteral = attrArguments(ctx, call)
	case base == "hasMany" || base == "belongsTo":
		entry.Category = CategoryAssociation
	case isComputedCall(base, path) || isLegacyPropertyCall(ctx, call):
		if multiLineComputed(ctx, pair, call) {
			entry.Category = CategoryComputedMultiLine
		} else {
			entry.Category = CategoryComputedSingleLine
		}
	default:
		if lifecycleHooks[entry.Name] {
			// e.g. init: Ember.on(...) wrappers still count as hooks,
			// but without a body there is nothing to inspect.
			entry.Category = CategoryLifecycleHook
		}
	}
}

func (js *jsExtraction) extractCall(ctx *ExtractionContext, node *sitter.Node) bool {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return false
	}

	if fn.Kind() == "member_expression" {
		obj := fn.ChildByFieldName("object")
		prop := fn.ChildByFieldName("property")
		if obj != nil && prop != nil {
			propName := ctx.Text(prop)

			if propName == "extend" {
				ctx.Module.ExtendCalls = append(ctx.Module.ExtendCalls, ExtendCall{
					Target:   ctx.Text(obj),
					Location: ctx.Location(node),
				})
			}

			if ctx.Text(obj) == "this" && (propName == "route" || propName == "resource") {
				js.extractRouteCall(ctx, node)
			}

			if (propName == "get" || propName == "set") && firstArgIsString(node) {
				ctx.Module.AccessorCalls = append(ctx.Module.AccessorCalls, AccessorCall{
					Receiver: ctx.Text(obj),
					Method:   propName,
					Location: ctx.Location(node),
				})
			}
		}
	}

	return false
}

func (js *jsExtraction) extractRouteCall(ctx *ExtractionContext, call *sitter.Node) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return
	}

	routeName := ""
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		switch arg.Kind() {
		case "string":
			if routeName == "" {
				routeName = trimQuoted(ctx.Text(arg))
			}
		case "object":
			js.extractRoutePath(ctx, routeName, arg)
		}
	}
}

func (js *jsExtraction) extractRoutePath(ctx *ExtractionContext, routeName string, options *sitter.Node) {
	for i := uint(0); i < options.NamedChildCount(); i++ {
		pair := options.NamedChild(i)
		if pair.Kind() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil || propertyKeyName(ctx, key) != "path" || value.Kind() != "string" {
			continue
		}
		path := trimQuoted(ctx.Text(value))
		for _, match := range dynamicSegmentRe.FindAllStringSubmatch(path, -1) {
			ctx.Module.Routes = append(ctx.Module.Routes, RouteSegment{
				Route:    routeName,
				Segment:  match[1],
				Location: ctx.Location(value),
			})
		}
	}
}

func (js *jsExtraction) extractNamespaceAccess(ctx *ExtractionContext, node *sitter.Node) bool {
	obj := node.ChildByFieldName("object")
	prop := node.ChildByFieldName("property")
	if obj == nil || prop == nil || obj.Kind() != "identifier" {
		return false
	}
	ns := ctx.Text(obj)
	if !js.namespaces[ns] {
		return false
	}
	ctx.Module.NamespaceAccesses = append(ctx.Module.NamespaceAccesses, NamespaceAccess{
		Namespace: ns,
		Member:    ctx.Text(prop),
		Location:  ctx.Location(node),
	})
	return false
}

func (js *jsExtraction) extractNamespaceDestructure(ctx *ExtractionContext, node *sitter.Node) bool {
	name := node.ChildByFieldName("name")
	value := node.ChildByFieldName("value")
	if name == nil || value == nil || name.Kind() != "object_pattern" || value.Kind() != "identifier" {
		return false
	}
	ns := ctx.Text(value)
	if !js.namespaces[ns] {
		return false
	}
	for i := uint(0); i < name.NamedChildCount(); i++ {
		member := name.NamedChild(i)
		switch member.Kind() {
		case "shorthand_property_identifier_pattern":
			ctx.Module.NamespaceAccesses = append(ctx.Module.NamespaceAccesses, NamespaceAccess{
				Namespace: ns,
				Member:    ctx.Text(member),
				Location:  ctx.Location(member),
			})
		case "pair_pattern":
			if key := member.ChildByFieldName("key"); key != nil {
				ctx.Module.NamespaceAccesses = append(ctx.Module.NamespaceAccesses, NamespaceAccess{
					Namespace: ns,
					Member:    propertyKeyName(ctx, key),
					Location:  ctx.Location(member),
				})
			}
		}
	}
	return false
}

func propertyKeyName(ctx *ExtractionContext, key *sitter.Node) string {
	switch key.Kind() {
	case "property_identifier", "identifier":
		return ctx.Text(key)
	case "string":
		return trimQuoted(ctx.Text(key))
	default:
		return ""
	}
}

// calleeNames resolves a call's base function name and full dotted path,
// e.g. DS.attr -> ("attr", "DS.attr"), computed -> ("computed", "computed").
func calleeNames(ctx *ExtractionContext, call *sitter.Node) (string, string) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return "", ""
	}
	switch fn.Kind() {
	case "identifier":
		name := ctx.Text(fn)
		return name, name
	case "member_expression":
		path := normalizeRefName(ctx.Text(fn))
		parts := strings.Split(path, ".")
		return parts[len(parts)-1], path
	default:
		return "", ""
	}
}

func isComputedCall(base, path string) bool {
	if base == "computed" {
		return true
	}
	if strings.Contains(path+".", "computed.") {
		return true
	}
	return computedMacros[base]
}

// isLegacyPropertyCall matches function(){...}.property('dep') initializers.
func isLegacyPropertyCall(ctx *ExtractionContext, call *sitter.Node) bool {
	fn := call.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "member_expression" {
		return false
	}
	prop := fn.ChildByFieldName("property")
	obj := fn.ChildByFieldName("object")
	if prop == nil || obj == nil || ctx.Text(prop) != "property" {
		return false
	}
	switch obj.Kind() {
	case "function", "function_expression", "arrow_function", "parenthesized_expression":
		return true
	}
	return false
}

// multiLineComputed decides the single-line/multi-line form: a trailing
// get/set pair object is always multi-line, otherwise the property's
// physical extent decides.
func multiLineComputed(ctx *ExtractionContext, pair, call *sitter.Node) bool {
	args := call.ChildByFieldName("arguments")
	if args != nil && args.NamedChildCount() > 0 {
		last := args.NamedChild(args.NamedChildCount() - 1)
		if last.Kind() == "object" {
			return true
		}
	}
	return pair.StartPosition().Row != pair.EndPosition().Row
}

func attrArguments(ctx *ExtractionContext, call *sitter.Node) (int, string, bool) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return 0, "", false
	}
	count := int(args.NamedChildCount())
	transform := ""
	literal := false
	if count > 0 {
		first := args.NamedChild(0)
		if first.Kind() == "string" {
			transform = trimQuoted(ctx.Text(first))
			literal = true
		}
	}
	return count, transform, literal
}

func firstArgIsString(call *sitter.Node) bool {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return false
	}
	return args.NamedChild(0).Kind() == "string"
}

// hookInfo inspects the first statement of a hook body for the
// this._super call and whether it forwards all original arguments.
func hookInfo(ctx *ExtractionContext, body *sitter.Node) *HookInfo {
	info := &HookInfo{}
	if body == nil || body.Kind() != "statement_block" {
		return info
	}
	if body.NamedChildCount() == 0 {
		return info
	}

	first := body.NamedChild(0)
	if first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return info
	}
	call := first.NamedChild(0)
	if call.Kind() != "call_expression" {
		return info
	}

	fn := call.ChildByFieldName("function")
	if fn == nil {
		return info
	}
	path := normalizeRefName(ctx.Text(fn))
	args := call.ChildByFieldName("arguments")

	switch path {
	case "this._super":
		info.SuperFirst = true
		if args != nil {
			for i := uint(0); i < args.NamedChildCount(); i++ {
				arg := args.NamedChild(i)
				if arg.Kind() == "spread_element" && normalizeRefName(ctx.Text(arg)) == "...arguments" {
					info.ForwardsAll = true
				}
			}
		}
	case "this._super.apply":
		info.SuperFirst = true
		if args != nil && args.NamedChildCount() >= 2 {
			if normalizeRefName(ctx.Text(args.NamedChild(1))) == "arguments" {
				info.ForwardsAll = true
			}
		}
	}

	return info
}

func normalizeRefName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\n", "")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\t", "")
	value = strings.ReplaceAll(value, " ", "")
	return value
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}
