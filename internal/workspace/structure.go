package workspace

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
)

type grammar struct {
	language  *sitter.Language
	functions map[string]bool
	classes   map[string]bool
}

var grammars = map[string]grammar{
	"python": {
		language:  python.GetLanguage(),
		functions: map[string]bool{"function_definition": true},
		classes:   map[string]bool{"class_definition": true},
	},
	"go": {
		language:  golang.GetLanguage(),
		functions: map[string]bool{"function_declaration": true, "method_declaration": true},
		classes:   map[string]bool{"type_spec": true},
	},
	"javascript": {
		language: javascript.GetLanguage(),
		functions: map[string]bool{
			"function_declaration":           true,
			"generator_function_declaration": true,
			"method_definition":              true,
		},
		classes: map[string]bool{"class_declaration": true},
	},
}

// Structure counts definitions across the parsed source files of a project.
type Structure struct {
	ParsedFiles int
	Functions   int
	Classes     int
	BrokenFiles int
}

// structureParser keeps one tree-sitter parser per language. Not safe for concurrent use.
type structureParser struct {
	parsers map[string]*sitter.Parser
}

func newStructureParser() *structureParser {
	return &structureParser{parsers: make(map[string]*sitter.Parser)}
}

func (p *structureParser) Close() {
	for _, parser := range p.parsers {
		parser.Close()
	}
}

// Add parses content as lang and folds its counts into s. Unsupported languages are ignored.
func (p *structureParser) Add(ctx context.Context, lang string, content []byte, s *Structure) error {
	g, ok := grammars[lang]
	if !ok {
		return nil
	}

	parser, ok := p.parsers[lang]
	if !ok {
		parser = sitter.NewParser()
		parser.SetLanguage(g.language)
		p.parsers[lang] = parser
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return err
	}
	defer tree.Close()

	root := tree.RootNode()
	s.ParsedFiles++
	if root.HasError() {
		s.BrokenFiles++
	}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch kind := n.Type(); {
		case g.functions[kind]:
			s.Functions++
		case g.classes[kind]:
			s.Classes++
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
	return nil
}
