// Package tui wraps the tcell screen and draws the property editor.
package tui

import (
	"fmt"
	"sync"

	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell. It takes the chrome
// colours from the appearance settings as an appearance.LookAndFeel.
type TUI struct {
	screen tcell.Screen

	mu      sync.Mutex
	colours map[string]colour.Colour
	layout  layout
}

// New creates a TUI on the real terminal.
func New() (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s)
}

// NewWithScreen initialises s (a simulation screen in tests) and wraps it.
func NewWithScreen(s tcell.Screen) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	return &TUI{screen: s, colours: make(map[string]colour.Colour)}, nil
}

// SetColour implements appearance.LookAndFeel. The background and text
// colours become the screen's base style.
func (t *TUI) SetColour(name string, c colour.Colour) {
	t.mu.Lock()
	t.colours[name] = c
	bg, hasBg := t.colours[appearance.MainBackground]
	fg, hasFg := t.colours[appearance.DefaultText]
	t.mu.Unlock()

	if name != appearance.MainBackground && name != appearance.DefaultText {
		return
	}
	style := tcell.StyleDefault
	if hasBg {
		style = style.Background(bg.Tcell())
	}
	if hasFg {
		style = style.Foreground(fg.Tcell())
	}
	t.screen.SetStyle(style)
	logger.DebugTagf("tui", "Base style updated from %q", name)
}

// Colour returns the last colour set for name.
func (t *TUI) Colour(name string) (colour.Colour, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.colours[name]
	return c, ok
}

// Close finalizes the tcell screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Post queues fn to run on the goroutine reading events.
func (t *TUI) Post(fn func()) {
	if err := t.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		logger.Warnf("TUI: dropped posted event: %v", err)
	}
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync redraws everything after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
