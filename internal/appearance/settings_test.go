package appearance

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/xmldoc"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLF struct {
	colours map[string]colour.Colour
}

func (r *recordingLF) SetColour(name string, c colour.Colour) {
	if r.colours == nil {
		r.colours = make(map[string]colour.Colour)
	}
	r.colours[name] = c
}

type recordingEditor struct {
	tokens     map[string]colour.Colour
	background colour.Colour
	highlight  colour.Colour
}

func (e *recordingEditor) SetTokenColour(token string, c colour.Colour) {
	if e.tokens == nil {
		e.tokens = make(map[string]colour.Colour)
	}
	e.tokens[token] = c
}
func (e *recordingEditor) SetBackground(c colour.Colour) { e.background = c }
func (e *recordingEditor) SetHighlight(c colour.Colour)  { e.highlight = c }

func TestFontString(t *testing.T) {
	assert.Equal(t, "Monospaced; 13.0", DefaultCodeFont().String())
	assert.Equal(t, Font{"Menlo", 14.5}, ParseFont("Menlo; 14.5"))
	assert.Equal(t, Font{"Menlo", 13}, ParseFont("Menlo; big"))
	assert.Equal(t, Font{"Monospaced", 10}, ParseFont("10"))
}

func TestColourLookupAndChangeNotifies(t *testing.T) {
	events := event.NewManager()
	changes := 0
	events.Subscribe(event.TypeSchemeChanged, func(event.Event) bool { changes++; return false })

	s := New(Options{Events: events})
	lf := &recordingLF{}
	s.Bind(lf)
	assert.Equal(t, colour.Colour(0xff29292a), lf.colours[MainBackground])

	c, ok := s.Colour(TokenKeyword)
	require.True(t, ok)
	assert.Equal(t, colour.Colour(0xffee6f6f), c)

	_, ok = s.Colour("Nope")
	assert.False(t, ok)
	assert.False(t, s.SetColour("Nope", colour.White))
	assert.Equal(t, 0, changes)

	require.True(t, s.SetColour(MainBackground, colour.White))
	assert.Equal(t, 1, changes)
	assert.Equal(t, colour.White, lf.colours[MainBackground])

	s.SetCodeFont(Font{"Menlo", 12})
	assert.Equal(t, 2, changes)
	assert.Equal(t, Font{"Menlo", 12}, s.CodeFont())
}

func TestColourNamesOrder(t *testing.T) {
	names := New(Options{}).ColourNames()
	assert.Equal(t, MainBackground, names[0])
	assert.Contains(t, names, TokenPreprocessor)
	assert.Len(t, names, len(uiColourNames)+len(tokenColourNames))
}

func TestReadFromXML(t *testing.T) {
	events := event.NewManager()
	changes := 0
	events.Subscribe(event.TypeSchemeChanged, func(event.Event) bool { changes++; return false })
	s := New(Options{Events: events})

	root, err := xmldoc.ParseString(`<COLOUR_SCHEME font="Menlo; 15.0">
  <COLOUR name="Keyword" colour="ff0000ff"/>
  <COLOUR name="Comment" colour="not-a-color"/>
  <COLOUR name="Sparkles" colour="ffffffff"/>
</COLOUR_SCHEME>`)
	require.NoError(t, err)
	require.NoError(t, s.ReadFromXML(root))

	assert.Equal(t, 1, changes, "one notification per scheme load")
	c, _ := s.Colour(TokenKeyword)
	assert.Equal(t, colour.Colour(0xff0000ff), c)
	c, _ = s.Colour(TokenComment)
	assert.Equal(t, defaultDark[TokenComment], c)
	assert.Equal(t, Font{"Menlo", 15}, s.CodeFont())

	wrong, err := xmldoc.ParseString(`<plist/>`)
	require.NoError(t, err)
	assert.ErrorIs(t, s.ReadFromXML(wrong), ErrNotScheme)
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.scheme")
	s := New(Options{})
	s.SetColour(TokenString, 0xff123456)
	require.NoError(t, s.WriteToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<COLOUR name="String" colour="ff123456"/>`)

	other := New(Options{})
	require.NoError(t, other.ReadFromFile(path))
	c, _ := other.Colour(TokenString)
	assert.Equal(t, colour.Colour(0xff123456), c)
}

func TestPresetSchemes(t *testing.T) {
	dir := t.TempDir()
	events := event.NewManager()
	listChanges := 0
	events.Subscribe(event.TypeSchemeListChanged, func(event.Event) bool { listChanges++; return false })

	s := New(Options{Events: events, SchemesDir: dir})
	folder, err := s.SchemesFolder()
	require.NoError(t, err)
	assert.Equal(t, dir, folder)

	require.NoError(t, s.WriteDefaultSchemes())
	require.NoError(t, s.RefreshPresetSchemeList())
	assert.Equal(t, []string{"Default (Dark)", "Default (Light)"}, s.PresetSchemes())
	assert.Equal(t, 1, listChanges)

	// Unchanged folder: no event.
	require.NoError(t, s.RefreshPresetSchemeList())
	assert.Equal(t, 1, listChanges)

	require.NoError(t, s.SelectPresetScheme(1))
	assert.Equal(t, "Default (Light)", s.Current())
	c, _ := s.Colour(MainBackground)
	assert.Equal(t, colour.Colour(0xffdddddd), c)

	require.NoError(t, s.SelectPresetByName("default (dark)"))
	c, _ = s.Colour(MainBackground)
	assert.Equal(t, colour.Colour(0xff29292a), c)

	assert.Error(t, s.SelectPresetScheme(5))
	assert.Error(t, s.SelectPresetByName("Solarized"))
}

func TestWriteDefaultSchemesKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Default (Dark).scheme")
	require.NoError(t, os.WriteFile(path, []byte("<COLOUR_SCHEME/>"), 0o644))

	s := New(Options{SchemesDir: dir})
	require.NoError(t, s.WriteDefaultSchemes())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<COLOUR_SCHEME/>", string(data))
}

func TestApplyToCodeEditor(t *testing.T) {
	s := New(Options{})
	ed := &recordingEditor{}
	s.ApplyToCodeEditor(ed)
	assert.Len(t, ed.tokens, len(tokenColourNames))
	assert.Equal(t, defaultDark[TokenString], ed.tokens[TokenString])
	assert.Equal(t, defaultDark[MainBackground], ed.background)
	assert.Equal(t, defaultDark[TreeviewHighlight], ed.highlight)
}

func TestTheme(t *testing.T) {
	s := New(Options{})
	th := s.Theme()
	assert.True(t, th.IsDark)

	fg, bg, _ := th.GetStyle("Default").Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xc5, 0xcd, 0xd9), fg)
	assert.Equal(t, tcell.NewRGBColor(0x29, 0x29, 0x2a), bg)

	kfg, _, _ := th.GetStyle("token.keyword").Decompose()
	assert.Equal(t, tcell.NewRGBColor(0xee, 0x6f, 0x6f), kfg)
	_, _, _ = th.GetStyle("token.preprocessor_text").Decompose()

	// Unknown styles fall back to the base name, then Default.
	assert.Equal(t, th.GetStyle("StatusBar"), th.GetStyle("StatusBar.extra"))
	assert.Equal(t, th.GetStyle("Default"), th.GetStyle("nothing"))
}

func TestChromaStyle(t *testing.T) {
	s := New(Options{})
	style, err := s.ChromaStyle()
	require.NoError(t, err)
	entry := style.Get(chromaTokens[TokenKeyword])
	assert.Equal(t, "#ee6f6f", strings.ToLower(entry.Colour.String()))
}

func TestScrollbarColour(t *testing.T) {
	dark := ScrollbarColourForBackground(0xff000000)
	assert.Equal(t, colour.Colour(0x21ffffff), dark)
	light := ScrollbarColourForBackground(0xffffffff)
	assert.Equal(t, colour.Colour(0x21000000), light)
}

func TestWatchReportsSchemeChanges(t *testing.T) {
	dir := t.TempDir()
	s := New(Options{SchemesDir: dir})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	require.NoError(t, s.Watch(ctx, func() { calls.Add(1) }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.scheme"), []byte("<COLOUR_SCHEME/>"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 20*time.Millisecond)
}
