package codegen

import (
	"context"
	"fmt"
	"strings"

	"github.com/bethropolis/compedit/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Problem is one syntax error found in generated code.
type Problem struct {
	Line, Column int // 1-based, relative to the checked code
	Kind         string
	Text         string
}

func (p Problem) String() string {
	return fmt.Sprintf("%d:%d: %s %q", p.Line, p.Column, p.Kind, p.Text)
}

// Validator parses generated statements with the tree-sitter C++ grammar.
type Validator struct {
	parser *sitter.Parser
}

// NewValidator creates a validator.
func NewValidator() *Validator {
	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	return &Validator{parser: parser}
}

// wrapper puts statements inside a function so they parse as a body.
const (
	wrapperHead = "void generatedCodeCheck()\n{\n"
	wrapperTail = "\n}\n"
)

// CheckStatements parses code as a function body and returns every ERROR
// or MISSING node. An empty result means the code parsed cleanly.
func (v *Validator) CheckStatements(ctx context.Context, code string) ([]Problem, error) {
	src := []byte(wrapperHead + code + wrapperTail)
	tree, err := v.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	headLines := strings.Count(wrapperHead, "\n")
	var problems []Problem
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.IsError() || n.IsMissing() {
			kind := "error"
			if n.IsMissing() {
				kind = "missing " + n.Type()
			}
			pt := n.StartPoint()
			problems = append(problems, Problem{
				Line:   int(pt.Row) + 1 - headLines,
				Column: int(pt.Column) + 1,
				Kind:   kind,
				Text:   n.Content(src),
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	logger.DebugTagf("codegen", "Validator found %d problem(s)", len(problems))
	return problems, nil
}
