// Package statusbar draws the bottom line of the terminal editor: the
// layout file, the modified marker, the next undo and redo steps, and
// temporary messages.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the behaviour of the status bar.
type Config struct {
	MessageTimeout time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{MessageTimeout: 4 * time.Second}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	isModified bool
	component  string
	undoDesc   string
	redoDesc   string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &StatusBar{config: config}
}

// SetFileInfo updates the file path and modified marker.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetComponent names the selected component.
func (sb *StatusBar) SetComponent(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.component = name
}

// SetHistory shows the labels of the next undo and redo steps.
func (sb *StatusBar) SetHistory(undo, redo string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.undoDesc = undo
	sb.redoDesc = redo
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.config.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns what the bar currently shows and whether it is a message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if !sb.tempMessageTime.IsZero() {
		if sb.config.Now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, true
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	return sb.defaultText(), false
}

func (sb *StatusBar) defaultText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	text := fPath + modifiedIndicator
	if sb.component != "" {
		text += " -- " + sb.component
	}
	if sb.undoDesc != "" {
		text += " -- Undo: " + sb.undoDesc
	}
	if sb.redoDesc != "" {
		text += " -- Redo: " + sb.redoDesc
	}
	return text
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, theme *appearance.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, isMessage := sb.Text()
	sb.mu.RLock()
	modified := sb.isModified
	sb.mu.RUnlock()

	style := theme.GetStyle("StatusBar")
	switch {
	case isMessage:
		style = theme.GetStyle("StatusBarMessage")
	case modified:
		style = theme.GetStyle("StatusBarModified")
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	currentX := 0
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		screen.SetContent(currentX, y, runes[0], runes[1:], style)
		currentX += clusterWidth
	}
}
