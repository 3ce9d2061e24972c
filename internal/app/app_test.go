package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/config"
	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/imagebutton"
	"github.com/bethropolis/compedit/internal/tui"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Row indexes in the image button panel.
const (
	rowName          = 0
	rowResourceNorm  = 6
	rowOpacityNormal = 7
)

type harness struct {
	app      *App
	screen   tcell.SimulationScreen
	tui      *tui.TUI
	doc      *component.Document
	settings *appearance.Settings
	copied   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	tm, err := tui.NewWithScreen(screen)
	require.NoError(t, err)
	screen.SetSize(100, 30)
	t.Cleanup(tm.Close)

	reg := component.NewRegistry()
	require.NoError(t, reg.Register(imagebutton.New()))
	events := event.NewManager()
	doc := component.NewDocument(reg, component.Options{Events: events})
	doc.AddResource("logo_png", 1200)
	_, err = doc.Add(imagebutton.TypeName, "ok button")
	require.NoError(t, err)

	h := &harness{screen: screen, tui: tm, doc: doc}
	h.settings = appearance.New(appearance.Options{Events: events, SchemesDir: t.TempDir()})
	cfg := config.NewDefaultConfig()
	cfg.Appearance.WatchSchemes = false

	h.app, err = New(Options{
		TUI:      tm,
		Document: doc,
		Settings: h.settings,
		Config:   cfg,
		Clipboard: func(text string) error {
			h.copied = text
			return nil
		},
	})
	require.NoError(t, err)
	return h
}

func (h *harness) key(k tcell.Key) bool {
	return h.app.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) ctrl(k tcell.Key) bool {
	return h.app.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModCtrl))
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (h *harness) component(i int) *component.Component {
	return h.doc.Components()[i]
}

func (h *harness) screenText() string {
	h.app.Draw()
	cells, w, hgt := h.screen.GetContents()
	var sb strings.Builder
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				sb.WriteRune(c.Runes[0])
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// pump feeds posted events to the app until cond holds.
func (h *harness) pump(t *testing.T, cond func() bool) {
	t.Helper()
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := h.tui.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	deadline := time.After(3 * time.Second)
	for !cond() {
		select {
		case ev := <-events:
			h.app.HandleEvent(ev)
		case <-deadline:
			t.Fatal("condition not reached")
		}
	}
}

func TestDrawShowsComponentAndProperties(t *testing.T) {
	h := newHarness(t)
	text := h.screenText()
	assert.Contains(t, text, "ok button")
	assert.Contains(t, text, "opacity")
	assert.Contains(t, text, "<< none >>")
	assert.Contains(t, text, "maintain image proportions")
	assert.Contains(t, text, "preview")
}

func TestSliderStepUndoRedo(t *testing.T) {
	h := newHarness(t)
	h.app.row = rowOpacityNormal
	c := h.component(0)

	h.key(tcell.KeyLeft)
	assert.InDelta(t, 0.99, imagebutton.Opacity(c.Properties, imagebutton.Normal), 1e-9)
	assert.True(t, h.doc.IsModified())

	h.ctrl(tcell.KeyCtrlZ)
	assert.Equal(t, 1.0, imagebutton.Opacity(c.Properties, imagebutton.Normal))
	msg, isMessage := h.app.statusBar.Text()
	assert.True(t, isMessage)
	assert.Equal(t, "Undo: "+imagebutton.DescOpacity, msg)

	h.ctrl(tcell.KeyCtrlY)
	assert.InDelta(t, 0.99, imagebutton.Opacity(c.Properties, imagebutton.Normal), 1e-9)
}

func TestResourceCycleUpdatesPreview(t *testing.T) {
	h := newHarness(t)
	h.app.row = rowResourceNorm
	h.key(tcell.KeyRight)

	c := h.component(0)
	assert.Equal(t, "logo_png", imagebutton.Resource(c.Properties, imagebutton.Normal))
	assert.Contains(t, h.screenText(), "normal: logo_png 1200B 100%")

	h.key(tcell.KeyRight) // wraps back to none
	assert.Equal(t, "", imagebutton.Resource(c.Properties, imagebutton.Normal))
}

func TestPromptEditsTextUndoably(t *testing.T) {
	h := newHarness(t)
	h.app.row = rowName
	h.key(tcell.KeyEnter)
	require.NotNil(t, h.app.prompt)
	assert.Equal(t, 1, h.app.modals.Count())
	assert.Contains(t, h.screenText(), "name: ok button")

	for i := 0; i < len("button"); i++ {
		h.key(tcell.KeyBackspace2)
	}
	h.typeText("go")
	h.key(tcell.KeyEnter)

	assert.Nil(t, h.app.prompt)
	assert.Equal(t, 0, h.app.modals.Count())
	assert.Equal(t, "ok go", h.component(0).Name())

	h.ctrl(tcell.KeyCtrlZ)
	assert.Equal(t, "ok button", h.component(0).Name())
}

func TestEscCancelsPromptBeforeQuitting(t *testing.T) {
	h := newHarness(t)
	h.app.row = rowName
	h.key(tcell.KeyEnter)
	require.NotNil(t, h.app.prompt)

	assert.False(t, h.key(tcell.KeyEscape))
	assert.Nil(t, h.app.prompt)
	assert.Equal(t, "ok button", h.component(0).Name())

	// the document is modified (a component was added), so quitting asks first
	assert.False(t, h.key(tcell.KeyEscape))
	msg, _ := h.app.statusBar.Text()
	assert.Contains(t, msg, "Unsaved changes")
	assert.True(t, h.key(tcell.KeyEscape))
}

func TestSaveWhilePromptOpenIsRetried(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "layout.xml")
	require.NoError(t, h.doc.SaveFile(path))

	h.app.row = rowOpacityNormal
	h.key(tcell.KeyLeft)
	require.True(t, h.doc.IsModified())

	h.app.row = rowName
	h.key(tcell.KeyEnter)
	require.NotNil(t, h.app.prompt)

	h.ctrl(tcell.KeyCtrlS)
	assert.Nil(t, h.app.prompt, "the prompt is cancelled")
	assert.Equal(t, 1, h.app.scheduler.Pending())
	assert.True(t, h.doc.IsModified(), "save waits for the retry")

	h.pump(t, func() bool { return !h.doc.IsModified() })
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `opacityNormal="0.99"`)
}

func TestCopyGeneratedCode(t *testing.T) {
	h := newHarness(t)
	h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	assert.Contains(t, h.copied, "okButton->setImages (false, true, true,")
	assert.Contains(t, h.copied, "//[Members] "+config.DefaultClassName)
}

func TestGenerateWritesNextToLayout(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "panel.xml")
	require.NoError(t, h.doc.SaveFile(path))

	h.ctrl(tcell.KeyCtrlG)
	data, err := os.ReadFile(GeneratedCodePath(path))
	require.NoError(t, err)
	assert.Contains(t, string(data), "addAndMakeVisible (okButton = new ImageButton (\"ok button\"));")
	msg, _ := h.app.statusBar.Text()
	assert.True(t, strings.HasPrefix(msg, "Wrote "), msg)
	assert.NotContains(t, msg, "problem")
}

func TestCommandPromptLiteral(t *testing.T) {
	h := newHarness(t)
	h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone))
	require.NotNil(t, h.app.prompt)
	h.typeText("literal héllo")
	h.key(tcell.KeyEnter)
	assert.Equal(t, `CharPointer_UTF8 ("h\xc3\xa9llo")`, h.copied)
}

func TestUnknownCommandReported(t *testing.T) {
	h := newHarness(t)
	h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone))
	h.typeText("frobnicate")
	h.key(tcell.KeyEnter)
	msg, _ := h.app.statusBar.Text()
	assert.Contains(t, msg, "unknown command")
}

func TestUndoSelectsChangedComponent(t *testing.T) {
	h := newHarness(t)
	_, err := h.doc.Add(imagebutton.TypeName, "cancel button")
	require.NoError(t, err)
	assert.Equal(t, 0, h.app.selected)

	h.key(tcell.KeyTab)
	assert.Equal(t, 1, h.app.selected)
	h.app.row = rowOpacityNormal
	h.key(tcell.KeyLeft)

	h.key(tcell.KeyTab)
	assert.Equal(t, 0, h.app.selected)
	h.ctrl(tcell.KeyCtrlZ)
	assert.Equal(t, 1, h.app.selected, "undo brings the changed component forward")
	assert.Equal(t, 1.0, imagebutton.Opacity(h.component(1).Properties, imagebutton.Normal))
}

func TestRolloverHelpFollowsPointer(t *testing.T) {
	h := newHarness(t)
	h.app.Draw()

	// row 7 sits below the one-line header, right of the component list
	x, y := 30, 1+rowOpacityNormal
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	h.app.rollover.Poll()
	assert.Equal(t, "Opacity of the normal image, 0 to 1.", h.app.rollover.Tip())

	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	assert.Equal(t, rowOpacityNormal, h.app.row)

	h.app.row = rowName
	h.key(tcell.KeyEnter)
	h.app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	h.app.rollover.Poll()
	assert.Equal(t, "", h.app.rollover.Tip(), "rows are blocked while the prompt is open")
}

func TestSchemeCommandSwitchesTheme(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.settings.WriteDefaultSchemes())

	h.app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModNone))
	h.typeText("scheme Default (Light)")
	h.key(tcell.KeyEnter)

	assert.Equal(t, "Default (Light)", h.settings.Current())
	assert.Equal(t, "Default (Light)", h.app.theme.Name)
	assert.False(t, h.app.theme.IsDark)
	bg, ok := h.tui.Colour(appearance.MainBackground)
	require.True(t, ok)
	assert.EqualValues(t, 0xffdddddd, bg)
}

func TestGeneratedCodePath(t *testing.T) {
	assert.Equal(t, "", GeneratedCodePath(""))
	assert.Equal(t, "/tmp/panel.cpp", GeneratedCodePath("/tmp/panel.xml"))
}

func TestInternalRegisterWhenSystemClipboardOff(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	tm, err := tui.NewWithScreen(screen)
	require.NoError(t, err)
	t.Cleanup(tm.Close)

	reg := component.NewRegistry()
	require.NoError(t, reg.Register(imagebutton.New()))
	doc := component.NewDocument(reg, component.Options{})
	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	cfg.Appearance.WatchSchemes = false

	a, err := New(Options{
		TUI:      tm,
		Document: doc,
		Settings: appearance.New(appearance.Options{Events: doc.Events(), SchemesDir: t.TempDir()}),
		Config:   cfg,
	})
	require.NoError(t, err)
	require.NoError(t, a.commands.Execute("literal hi"))
	assert.Equal(t, `"hi"`, a.register)
}
