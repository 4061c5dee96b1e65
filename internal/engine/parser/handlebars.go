package parser

import (
	"fmt"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"emblint/internal/core/errors"
)

// HandlebarsExtractor scans template text into a TemplateNode tree.
// There is no tree-sitter grammar for mustache templates, so this is a
// hand-rolled scanner behind the RawExtractor seam: it only needs the
// block structure, invocation names and block params, not full HTML.
type HandlebarsExtractor struct{}

var (
	_ Extractor    = (*HandlebarsExtractor)(nil)
	_ RawExtractor = (*HandlebarsExtractor)(nil)
)

// Extract satisfies the registry interface. Templates never get a
// tree-sitter node, so it delegates to the raw scan.
func (e *HandlebarsExtractor) Extract(_ *sitter.Node, source []byte, filePath string) (*Module, error) {
	return e.ExtractRaw(source, filePath)
}

func (e *HandlebarsExtractor) ExtractRaw(source []byte, filePath string) (*Module, error) {
	mod := &Module{
		Path:     filePath,
		Language: "handlebars",
		ParsedAt: time.Now(),
	}

	root := &TemplateNode{
		Kind:     TemplatePlainMarkup,
		Name:     "root",
		Location: Location{File: filePath, Line: 1, Column: 1},
	}
	stack := []*TemplateNode{root}

	text := string(source)
	line := 1
	pos := 0

	for {
		open := strings.Index(text[pos:], "{{")
		if open == -1 {
			break
		}
		line += strings.Count(text[pos:pos+open], "\n")
		pos += open

		closeDelim := "}}"
		contentStart := pos + 2
		if strings.HasPrefix(text[pos:], "{{{") {
			closeDelim = "}}}"
			contentStart = pos + 3
		}

		end := strings.Index(text[contentStart:], closeDelim)
		if end == -1 {
			return nil, errors.AddContext(
				errors.New(errors.CodeParseError, fmt.Sprintf("unterminated mustache at line %d", line)),
				errors.CtxPath, filePath)
		}
		content := text[contentStart : contentStart+end]
		mustacheLine := line
		line += strings.Count(content, "\n")
		pos = contentStart + end + len(closeDelim)

		node, action := classifyMustache(content, Location{File: filePath, Line: mustacheLine, Column: 1})
		parent := stack[len(stack)-1]

		switch action {
		case mustacheOpen:
			parent.Children = append(parent.Children, node)
			stack = append(stack, node)
		case mustacheClose:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case mustacheInline:
			parent.Children = append(parent.Children, node)
		case mustacheSkip:
		}
	}

	if len(stack) > 1 {
		unclosed := stack[len(stack)-1]
		return nil, errors.AddContext(
			errors.New(errors.CodeParseError,
				fmt.Sprintf("unclosed block {{#%s}} opened at line %d", unclosed.Name, unclosed.Location.Line)),
			errors.CtxPath, filePath)
	}

	mod.Template = root
	return mod, nil
}

type mustacheAction int

const (
	mustacheInline mustacheAction = iota
	mustacheOpen
	mustacheClose
	mustacheSkip
)

func classifyMustache(content string, loc Location) (*TemplateNode, mustacheAction) {
	content = strings.TrimSpace(content)
	if content == "" || strings.HasPrefix(content, "!") {
		return nil, mustacheSkip
	}

	switch {
	case strings.HasPrefix(content, "/"):
		return nil, mustacheClose
	case content == "else" || strings.HasPrefix(content, "else "):
		return nil, mustacheSkip
	case strings.HasPrefix(content, "#"):
		return blockHelperNode(strings.TrimPrefix(content, "#"), loc), mustacheOpen
	case strings.HasPrefix(content, "^"):
		rest := strings.TrimSpace(strings.TrimPrefix(content, "^"))
		if rest == "" {
			// Bare {{^}} is an else marker, not a new block.
			return nil, mustacheSkip
		}
		return blockHelperNode(rest, loc), mustacheOpen
	}

	fields := strings.Fields(content)
	name := fields[0]
	node := &TemplateNode{Name: name, Expression: content, Location: loc}
	switch {
	case name == "partial":
		node.Kind = TemplatePartialInvocation
	case name == "component" || (strings.Contains(name, "-") && !strings.Contains(name, ".")):
		node.Kind = TemplateComponentInvocation
	default:
		node.Kind = TemplatePlainMarkup
	}
	return node, mustacheInline
}

func blockHelperNode(content string, loc Location) *TemplateNode {
	node := &TemplateNode{
		Kind:       TemplateBlockHelper,
		Expression: content,
		Location:   loc,
	}

	// Block params trail the expression: {{#each people as |person|}}
	if idx := strings.Index(content, " as |"); idx != -1 {
		params := content[idx+len(" as |"):]
		if end := strings.Index(params, "|"); end != -1 {
			node.BlockParams = strings.Fields(params[:end])
		}
		content = strings.TrimSpace(content[:idx])
	}

	fields := strings.Fields(content)
	if len(fields) == 0 {
		return node
	}
	node.Name = fields[0]

	// Legacy inline binding: {{#each person in people}}
	if len(fields) >= 4 && fields[2] == "in" {
		node.LegacyInSyntax = true
	}

	return node
}
