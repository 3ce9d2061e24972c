package appearance

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme is a set of named terminal styles derived from the scheme.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style for name, falling back to the part before
// the first dot, then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}
	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			return style
		}
	}
	if style, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("appearance", "Theme '%s': style '%s' not found, using 'Default'", t.Name, name)
		}
		return style
	}
	return tcell.StyleDefault
}

func (s *Settings) colourOr(name string, def colour.Colour) colour.Colour {
	if c, ok := s.Colour(name); ok {
		return c
	}
	return def
}

// Theme builds the terminal styles for the property editor.
func (s *Settings) Theme() *Theme {
	bg := s.colourOr(MainBackground, colour.Black)
	fg := s.colourOr(DefaultText, colour.White)
	statusBg := s.colourOr(StatusBackground, bg)
	statusFg := s.colourOr(StatusText, fg)
	highlight := bg.OverlaidWith(s.colourOr(TreeviewHighlight, fg.WithAlpha(0.25)))

	base := tcell.StyleDefault.Background(bg.Tcell()).Foreground(fg.Tcell())
	status := tcell.StyleDefault.Background(statusBg.Tcell()).Foreground(statusFg.Tcell())

	name := s.current
	if name == "" {
		name = "Custom"
	}
	t := &Theme{
		Name:   name,
		IsDark: bg.PerceivedBrightness() < 0.5,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Selection":         base.Background(highlight.Tcell()),
			"Heading":           base.Bold(true),
			"Dim":               base.Foreground(fg.Interpolated(bg, 0.5).Tcell()),
			"Scrollbar":         base.Foreground(bg.OverlaidWith(ScrollbarColourForBackground(bg)).Tcell()),
			"StatusBar":         status,
			"StatusBarModified": status.Foreground(s.colourOr(ModifiedMarker, statusFg).Tcell()),
			"StatusBarMessage":  status.Bold(true),
			"Tooltip":           base.Background(s.colourOr(TooltipBackground, statusBg).Tcell()),
		},
	}
	for _, token := range tokenColourNames {
		if c, ok := s.Colour(token); ok {
			t.Styles[tokenStyleName(token)] = base.Foreground(c.Tcell())
		}
	}
	return t
}

// tokenStyleName maps "Preprocessor Text" to "token.preprocessor_text".
func tokenStyleName(token string) string {
	return "token." + strings.ReplaceAll(strings.ToLower(token), " ", "_")
}

var chromaTokens = map[string]chroma.TokenType{
	TokenError:        chroma.Error,
	TokenComment:      chroma.Comment,
	TokenKeyword:      chroma.Keyword,
	TokenOperator:     chroma.Operator,
	TokenIdentifier:   chroma.Name,
	TokenInteger:      chroma.LiteralNumberInteger,
	TokenFloat:        chroma.LiteralNumberFloat,
	TokenString:       chroma.LiteralString,
	TokenPunctuation:  chroma.Punctuation,
	TokenPreprocessor: chroma.CommentPreproc,
}

// ChromaStyle converts the scheme into a chroma style for highlighting
// generated code. Alpha is dropped.
func (s *Settings) ChromaStyle() (*chroma.Style, error) {
	entries := chroma.StyleEntries{}
	bg := s.colourOr(MainBackground, colour.Black)
	fg := s.colourOr(DefaultText, colour.White)
	entries[chroma.Background] = fmt.Sprintf("%s bg:%s", fg.Colorful().Hex(), bg.Colorful().Hex())
	for _, token := range tokenColourNames {
		c, found := s.Colour(token)
		if !found {
			continue
		}
		tt, ok := chromaTokens[token]
		if !ok {
			continue // brackets share the punctuation colour
		}
		entries[tt] = c.Colorful().Hex()
	}
	name := s.current
	if name == "" {
		name = "compedit"
	}
	style, err := chroma.NewStyle(name, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build chroma style: %w", err)
	}
	return style, nil
}

// ScrollbarColourForBackground is a faint colour that contrasts with background.
func ScrollbarColourForBackground(background colour.Colour) colour.Colour {
	return background.Contrasting(1).WithAlpha(0.13)
}
