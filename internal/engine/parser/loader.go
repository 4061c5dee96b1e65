package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

type LanguageSpec struct {
	Enabled    bool
	Extensions []string
	Raw        bool // parsed by a raw-text extractor, no tree-sitter grammar
}

// GrammarLoader owns the tree-sitter grammars for the supported languages.
// Handlebars templates have no grammar binding; they are registered as a
// raw language and scanned by a text extractor.
type GrammarLoader struct {
	languages map[string]*sitter.Language
	registry  map[string]LanguageSpec
}

func DefaultLanguageRegistry() map[string]LanguageSpec {
	return map[string]LanguageSpec{
		"javascript": {
			Enabled:    true,
			Extensions: []string{".js"},
		},
		"handlebars": {
			Enabled:    true,
			Extensions: []string{".hbs", ".handlebars"},
			Raw:        true,
		},
	}
}

func NewGrammarLoader() *GrammarLoader {
	return NewGrammarLoaderWithRegistry(DefaultLanguageRegistry())
}

func NewGrammarLoaderWithRegistry(registry map[string]LanguageSpec) *GrammarLoader {
	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
		registry:  cloneRegistry(registry),
	}

	for langID, spec := range gl.registry {
		if !spec.Enabled || spec.Raw {
			continue
		}
		switch langID {
		case "javascript":
			gl.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())
		}
	}

	return gl
}

func (gl *GrammarLoader) Language(langID string) *sitter.Language {
	return gl.languages[langID]
}

func (gl *GrammarLoader) LanguageRegistry() map[string]LanguageSpec {
	return cloneRegistry(gl.registry)
}

func cloneRegistry(registry map[string]LanguageSpec) map[string]LanguageSpec {
	out := make(map[string]LanguageSpec, len(registry))
	for id, spec := range registry {
		exts := make([]string, len(spec.Extensions))
		copy(exts, spec.Extensions)
		spec.Extensions = exts
		out[id] = spec
	}
	return out
}
