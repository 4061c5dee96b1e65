package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"emblint/internal/core/errors"
)

// Parser turns raw source text into a Module via the registered
// language extractors. ParseFile is pure with respect to its inputs:
// the same bytes always yield a structurally identical Module.
type Parser struct {
	loader     *GrammarLoader
	extractors map[string]Extractor // language -> extractor
	extensions map[string]string
}

type Extractor interface {
	Extract(node *sitter.Node, source []byte, filePath string) (*Module, error)
}

// RawExtractor handles languages without a tree-sitter grammar.
type RawExtractor interface {
	ExtractRaw(source []byte, filePath string) (*Module, error)
}

func NewParser(loader *GrammarLoader) *Parser {
	p := &Parser{
		loader:     loader,
		extractors: make(map[string]Extractor),
		extensions: make(map[string]string),
	}
	for lang, spec := range loader.LanguageRegistry() {
		if !spec.Enabled {
			continue
		}
		for _, ext := range spec.Extensions {
			p.extensions[strings.ToLower(ext)] = lang
		}
	}
	return p
}

func (p *Parser) RegisterExtractor(lang string, e Extractor) {
	p.extractors[lang] = e
}

func (p *Parser) RegisterDefaultExtractors() {
	p.RegisterExtractor("javascript", &JavaScriptExtractor{})
	p.RegisterExtractor("handlebars", &HandlebarsExtractor{})
}

func (p *Parser) ParseFile(path string, content []byte) (*Module, error) {
	lang := p.detectLanguage(path)
	if lang == "" {
		return nil, errors.New(errors.CodeNotSupported, "unsupported language")
	}

	extractor := p.extractors[lang]
	if extractor == nil {
		return nil, errors.New(errors.CodeNotSupported, fmt.Sprintf("no extractor for: %s", lang))
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		if rawExtractor, ok := extractor.(RawExtractor); ok {
			return rawExtractor.ExtractRaw(content, path)
		}
		return nil, errors.New(errors.CodeInternal, fmt.Sprintf("grammar not loaded: %s", lang))
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New(errors.CodeParseError, "parse failed")
	}
	defer tree.Close()

	root := tree.RootNode()
	if errNode := firstErrorNode(root); errNode != nil {
		line := int(errNode.StartPosition().Row) + 1
		err := errors.New(errors.CodeParseError, fmt.Sprintf("syntax error at line %d", line))
		return nil, errors.AddContext(errors.AddContext(err, errors.CtxPath, path), errors.CtxLine, line)
	}

	res, err := extractor.Extract(root, content, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "extraction failed")
	}
	return res, nil
}

func (p *Parser) detectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := p.extensions[ext]; ok {
		return lang
	}
	return ""
}

func (p *Parser) IsSupportedPath(filePath string) bool {
	return p.detectLanguage(filePath) != ""
}

func (p *Parser) GetLanguage(path string) string {
	return p.detectLanguage(path)
}

func (p *Parser) SupportedExtensions() []string {
	out := make([]string, 0, len(p.extensions))
	for ext := range p.extensions {
		out = append(out, ext)
	}
	return out
}

func firstErrorNode(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		if found := firstErrorNode(node.Child(i)); found != nil {
			return found
		}
	}
	return node
}
