package codegen

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight writes code to w with ANSI colours. A nil style uses chroma's
// fallback style; formatterName "" means true-colour terminal output.
func Highlight(w io.Writer, code string, style *chroma.Style, formatterName string) error {
	lexer := lexers.Get("cpp")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if style == nil {
		style = styles.Fallback
	}
	if formatterName == "" {
		formatterName = "terminal16m"
	}
	formatter := formatters.Get(formatterName)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return fmt.Errorf("failed to tokenise generated code: %w", err)
	}
	if err := formatter.Format(w, style, it); err != nil {
		return fmt.Errorf("failed to format generated code: %w", err)
	}
	return nil
}
