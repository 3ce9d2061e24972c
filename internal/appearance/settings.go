// Package appearance manages the editor colour scheme: a list of named
// colours and the code font, stored in .scheme files and applied to
// anything that implements LookAndFeel.
package appearance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/property"
)

// Colour names for the editor chrome.
const (
	MainBackground    = "Main Window Bkgd"
	TreeviewHighlight = "Treeview Highlight"
	DefaultText       = "Default Text"
	StatusBackground  = "Status Bar Bkgd"
	StatusText        = "Status Bar Text"
	ModifiedMarker    = "Modified Marker"
	TooltipBackground = "Tooltip Bkgd"
)

// Colour names for code tokens.
const (
	TokenError        = "Error"
	TokenComment      = "Comment"
	TokenKeyword      = "Keyword"
	TokenOperator     = "Operator"
	TokenIdentifier   = "Identifier"
	TokenInteger      = "Integer"
	TokenFloat        = "Float"
	TokenString       = "String"
	TokenBracket      = "Bracket"
	TokenPunctuation  = "Punctuation"
	TokenPreprocessor = "Preprocessor Text"
)

var uiColourNames = []string{
	MainBackground, TreeviewHighlight, DefaultText,
	StatusBackground, StatusText, ModifiedMarker, TooltipBackground,
}

var tokenColourNames = []string{
	TokenError, TokenComment, TokenKeyword, TokenOperator, TokenIdentifier,
	TokenInteger, TokenFloat, TokenString, TokenBracket, TokenPunctuation,
	TokenPreprocessor,
}

const fontKey property.Key = "font"

// Font is the code editor font.
type Font struct {
	Name string
	Size float64
}

// DefaultCodeFont is used until a scheme sets one.
func DefaultCodeFont() Font {
	return Font{Name: "Monospaced", Size: 13}
}

// String formats the font as "Name; 13.0".
func (f Font) String() string {
	return f.Name + "; " + strconv.FormatFloat(f.Size, 'f', 1, 64)
}

// ParseFont reads the String form. A missing or bad size keeps the default size.
func ParseFont(s string) Font {
	f := DefaultCodeFont()
	name, size, found := strings.Cut(s, ";")
	if !found {
		size = name
		name = ""
	}
	if name = strings.TrimSpace(name); name != "" {
		f.Name = name
	}
	if fields := strings.Fields(size); len(fields) > 0 {
		if v, err := strconv.ParseFloat(fields[0], 64); err == nil && v > 0 {
			f.Size = v
		}
	}
	return f
}

// LookAndFeel is anything that can take a named colour from the scheme.
type LookAndFeel interface {
	SetColour(name string, c colour.Colour)
}

// CodeEditor is a code view whose token colours follow the scheme.
type CodeEditor interface {
	SetTokenColour(tokenType string, c colour.Colour)
	SetBackground(c colour.Colour)
	SetHighlight(c colour.Colour)
}

// Options configures Settings.
type Options struct {
	Events *event.Manager
	// SchemesDir overrides the preset folder; "~" is expanded.
	SchemesDir string
}

// Settings is the live colour scheme. Every change re-applies the scheme
// to the bound LookAndFeels and dispatches TypeSchemeChanged. Not safe
// for concurrent use.
type Settings struct {
	names        []string
	store        *property.Store
	events       *event.Manager
	lookAndFeels []LookAndFeel
	schemesDir   string
	presetFiles  []string
	current      string

	batching bool
	pending  bool
}

// New creates settings holding the built-in dark scheme.
func New(opts Options) *Settings {
	s := &Settings{
		names:      append(append([]string(nil), uiColourNames...), tokenColourNames...),
		store:      property.NewStore(),
		events:     opts.Events,
		schemesDir: opts.SchemesDir,
	}
	for name, c := range defaultDark {
		s.store.Load(property.Key(name), property.Colour(c))
	}
	s.store.Load(fontKey, property.String(DefaultCodeFont().String()))
	s.store.AddObserver(property.ObserverFunc(func(property.Key, property.Value, property.Value) {
		if s.batching {
			s.pending = true
			return
		}
		s.updateColourScheme()
	}))
	return s
}

// batch runs fn with change notifications collapsed into one update.
func (s *Settings) batch(fn func()) {
	s.batching = true
	fn()
	s.batching = false
	if s.pending {
		s.pending = false
		s.updateColourScheme()
	}
}

func (s *Settings) updateColourScheme() {
	for _, lf := range s.lookAndFeels {
		s.ApplyTo(lf)
	}
	logger.DebugTagf("appearance", "Colour scheme updated (%s)", s.current)
	if s.events != nil {
		s.events.Dispatch(event.TypeSchemeChanged, event.SchemeChangedData{Scheme: s.current})
	}
}

// Bind applies the scheme to lf now and after every change.
func (s *Settings) Bind(lf LookAndFeel) {
	s.lookAndFeels = append(s.lookAndFeels, lf)
	s.ApplyTo(lf)
}

// ColourNames lists every colour the scheme defines, chrome first.
func (s *Settings) ColourNames() []string {
	return append([]string(nil), s.names...)
}

func (s *Settings) known(name string) bool {
	for _, n := range s.names {
		if n == name {
			return true
		}
	}
	return false
}

// Colour looks up a named colour.
func (s *Settings) Colour(name string) (colour.Colour, bool) {
	if !s.known(name) {
		return 0, false
	}
	v := s.store.Get(property.Key(name), property.Value{})
	if v.Kind() != property.KindColour {
		return 0, false
	}
	return v.AsColour(0), true
}

// SetColour changes a named colour. Unknown names are ignored.
func (s *Settings) SetColour(name string, c colour.Colour) bool {
	if !s.known(name) {
		return false
	}
	s.store.Set(property.Key(name), property.Colour(c))
	return true
}

// CodeFont is the font for generated code.
func (s *Settings) CodeFont() Font {
	return ParseFont(s.store.GetString(fontKey, DefaultCodeFont().String()))
}

// SetCodeFont changes the code font.
func (s *Settings) SetCodeFont(f Font) {
	s.store.Set(fontKey, property.String(f.String()))
}

// Current names the preset last selected, "" if none.
func (s *Settings) Current() string { return s.current }

// ApplyTo hands every chrome colour to lf.
func (s *Settings) ApplyTo(lf LookAndFeel) {
	for _, name := range uiColourNames {
		if c, ok := s.Colour(name); ok {
			lf.SetColour(name, c)
		}
	}
}

// ApplyToCodeEditor sets the token colours, background and highlight of editor.
func (s *Settings) ApplyToCodeEditor(editor CodeEditor) {
	for _, name := range tokenColourNames {
		if c, ok := s.Colour(name); ok {
			editor.SetTokenColour(name, c)
		}
	}
	if c, ok := s.Colour(MainBackground); ok {
		editor.SetBackground(c)
	}
	if c, ok := s.Colour(TreeviewHighlight); ok {
		editor.SetHighlight(c)
	}
}

func (s *Settings) describe() string {
	return fmt.Sprintf("%d colours, font %s", len(s.names), s.CodeFont())
}
