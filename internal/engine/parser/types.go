package parser

import (
	"time"
)

// Module is the normalized source model for one linted file. It is built
// fresh per lint run, never mutated afterwards, and discarded once the
// reporter has consumed the violations derived from it.
type Module struct {
	Path              string
	Language          string
	Imports           []Import
	ExportBody        *ObjectSpec // argument of the exported extend call, nil when absent
	ExtendCalls       []ExtendCall
	Routes            []RouteSegment
	NamespaceAccesses []NamespaceAccess
	AccessorCalls     []AccessorCall
	Template          *TemplateNode // root node for template modules
	ParsedAt          time.Time
}

type Import struct {
	SourceModule string
	LocalName    string // default or namespace binding, empty for bare imports
	Named        []string
	IsNamespace  bool
	Location     Location
}

// ObjectSpec is the object literal passed to a class-extension call.
type ObjectSpec struct {
	Target     string // e.g. "DS.Model", "Ember.Component", "Component"
	Properties []PropertyEntry
	Location   Location
}

type PropertyCategory int

const (
	CategoryDefault PropertyCategory = iota
	CategoryAttribute
	CategoryAssociation
	CategoryComputedSingleLine
	CategoryComputedMultiLine
	CategoryLifecycleHook
	CategoryActionsBlock
)

func (c PropertyCategory) String() string {
	switch c {
	case CategoryAttribute:
		return "attribute"
	case CategoryAssociation:
		return "association"
	case CategoryComputedSingleLine:
		return "single-line computed property"
	case CategoryComputedMultiLine:
		return "multi-line computed property"
	case CategoryLifecycleHook:
		return "lifecycle hook"
	case CategoryActionsBlock:
		return "actions block"
	default:
		return "property"
	}
}

type PropertyEntry struct {
	Name     string
	Category PropertyCategory
	Location Location

	// Attribute-call details, meaningful only for CategoryAttribute.
	ArgCount         int
	Transform        string // first argument when it is a string literal
	TransformLiteral bool   // whether the first argument is a string literal

	// Hook body details, meaningful only for CategoryLifecycleHook.
	Hook *HookInfo
}

// HookInfo records how an overridden lifecycle hook begins.
type HookInfo struct {
	SuperFirst  bool // first statement calls this._super
	ForwardsAll bool // the super call forwards all original arguments
}

// ExtendCall records every X.extend({...}) invocation, exported or not.
type ExtendCall struct {
	Target   string
	Location Location
}

// RouteSegment is one ":segment" inside a route path option.
type RouteSegment struct {
	Route    string
	Segment  string
	Location Location
}

// NamespaceAccess is a member access or destructuring off a recognized
// framework namespace object (Ember, Em, DS, or a namespace import).
type NamespaceAccess struct {
	Namespace string
	Member    string
	Location  Location
}

// AccessorCall is a method-style property access such as this.get("a")
// or model.set("b", 1).
type AccessorCall struct {
	Receiver string
	Method   string // "get" or "set"
	Location Location
}

type TemplateNodeKind int

const (
	TemplatePlainMarkup TemplateNodeKind = iota
	TemplateBlockHelper
	TemplateComponentInvocation
	TemplatePartialInvocation
)

func (k TemplateNodeKind) String() string {
	switch k {
	case TemplateBlockHelper:
		return "block helper"
	case TemplateComponentInvocation:
		return "component invocation"
	case TemplatePartialInvocation:
		return "partial invocation"
	default:
		return "plain markup"
	}
}

// TemplateNode is one node of the template structure tree. The root is a
// PlainMarkup node whose children are the top-level constructs in order.
type TemplateNode struct {
	Kind           TemplateNodeKind
	Name           string
	Expression     string // raw mustache content, without braces
	BlockParams    []string
	LegacyInSyntax bool // "{{#each item in items}}" style binding
	Children       []*TemplateNode
	Location       Location
}

// Walk visits the node and all descendants depth-first in source order.
func (n *TemplateNode) Walk(visit func(*TemplateNode)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

type Location struct {
	File   string
	Line   int
	Column int
}
