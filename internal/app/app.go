// Package app runs the terminal property editor: it owns the document,
// the screen and the single goroutine on which both are used.
package app

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/compedit/internal/appearance"
	"github.com/bethropolis/compedit/internal/commands"
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/config"
	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/input"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/modal"
	"github.com/bethropolis/compedit/internal/propedit"
	"github.com/bethropolis/compedit/internal/rollover"
	"github.com/bethropolis/compedit/internal/statusbar"
	"github.com/bethropolis/compedit/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Options holds the parts the application is built from.
type Options struct {
	TUI      *tui.TUI
	Document *component.Document
	Settings *appearance.Settings
	Config   *config.Config
	// Clipboard receives copied text. Defaults to the system clipboard,
	// or an in-process register when Editor.SystemClipboard is off.
	Clipboard func(text string) error
}

// App encapsulates the editor state and main loop.
type App struct {
	tuiManager *tui.TUI
	doc        *component.Document
	settings   *appearance.Settings
	cfg        *config.Config
	statusBar  *statusbar.StatusBar
	input      *input.InputProcessor
	commands   *commands.Manager
	modals     *modal.Manager
	scheduler  *modal.Scheduler
	clipboard  func(string) error
	register   string // last copy when the system clipboard is off
	theme      *appearance.Theme

	window   *windowNode
	pointer  *pointer
	rollover *rollover.Helper
	help     string

	selected    int // component index
	row         int // property row
	props       []propedit.Property
	prompt      *prompt
	quitPending bool
	quit        bool
}

// New wires an application together. It does not touch the terminal
// until Run.
func New(opts Options) (*App, error) {
	if opts.TUI == nil || opts.Document == nil || opts.Settings == nil {
		return nil, fmt.Errorf("app: TUI, Document and Settings are required")
	}
	if opts.Config == nil {
		opts.Config = config.NewDefaultConfig()
	}

	a := &App{
		tuiManager: opts.TUI,
		doc:        opts.Document,
		settings:   opts.Settings,
		cfg:        opts.Config,
		statusBar:  statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout}),
		input:      input.NewInputProcessor(),
		commands:   commands.NewManager(opts.TUI.Post),
		modals:     modal.NewManager(),
		scheduler:  modal.NewScheduler(opts.TUI.Post),
		clipboard:  opts.Clipboard,
		pointer:    &pointer{},
	}
	if a.clipboard == nil {
		if a.cfg.Editor.SystemClipboard {
			a.clipboard = clipboard.WriteAll
		} else {
			a.clipboard = func(text string) error {
				a.register = text
				return nil
			}
		}
	}
	a.window = &windowNode{modals: a.modals}
	a.rollover = rollover.NewHelper(a.window, a.pointer, func(tip string) {
		a.tuiManager.Post(func() { a.help = tip })
	})

	a.doc.SetTabShower(a)
	a.settings.Bind(a.tuiManager)
	a.theme = a.settings.Theme()

	events := a.doc.Events()
	events.Subscribe(event.TypeHistoryChanged, a.handleHistoryChanged)
	events.Subscribe(event.TypeDocumentModified, a.handleDocumentModified)
	events.Subscribe(event.TypeDocumentSaved, a.handleDocumentSaved)
	events.Subscribe(event.TypeLayoutChanged, a.handleLayoutChanged)
	events.Subscribe(event.TypeSchemeChanged, a.handleSchemeChanged)

	a.registerCommands()
	a.attachPreviews()
	a.selectComponent(0)
	a.updateStatusBarContent()
	return a, nil
}

// Run starts the event loop and blocks until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.tuiManager.Close()
	defer a.scheduler.Close()

	go a.rollover.Run(ctx)
	if a.cfg.Appearance.WatchSchemes {
		err := a.settings.Watch(ctx, func() {
			a.tuiManager.Post(a.refreshSchemes)
		})
		if err != nil {
			logger.Warnf("App: not watching schemes: %v", err)
		}
	}
	go func() {
		<-ctx.Done()
		a.tuiManager.Post(func() { a.quit = true })
	}()

	a.statusBar.SetTemporaryMessage("compedit - Ctrl+S Save | Ctrl+Z Undo | Ctrl+Y Redo | Ctrl+G Generate | Esc Quit")
	a.Draw()
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		if a.HandleEvent(ev) {
			if a.doc.IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		}
		a.Draw()
	}
}

// HandleEvent processes one terminal event and reports whether the
// application should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	case *tcell.EventResize:
		a.tuiManager.Sync()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	}
	return a.quit
}

// Draw renders the whole screen.
func (a *App) Draw() {
	width, height := a.tuiManager.Size()
	view := tui.View{
		SelectedComponent: a.selected,
		SelectedRow:       a.row,
		Help:              rollover.Layout(a.help, tui.HelpWidth(width)),
	}
	for _, c := range a.doc.Components() {
		view.Components = append(view.Components, c.Name())
	}
	for _, p := range a.props {
		view.Rows = append(view.Rows, tui.Row{Name: p.Name(), Value: p.Text()})
	}
	if c := a.selectedComponent(); c != nil {
		if pv, ok := c.Images.(*preview); ok {
			view.Rows = append(view.Rows, tui.Row{Name: "preview", Value: pv.String()})
		}
	}
	if a.prompt != nil {
		view.Prompt = a.prompt.String()
	}

	a.tuiManager.DrawView(view, a.theme)
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height, a.theme)
	a.tuiManager.Show()
}

// SetStatusMessage shows a temporary message in the status bar.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
}

// ShowTabFor implements component.TabShower: a component about to change
// through undo or redo becomes the selected one.
func (a *App) ShowTabFor(id component.ID) {
	for i, c := range a.doc.Components() {
		if c.ID == id {
			if i != a.selected {
				a.selectComponent(i)
			}
			return
		}
	}
}

func (a *App) selectedComponent() *component.Component {
	comps := a.doc.Components()
	if a.selected < 0 || a.selected >= len(comps) {
		return nil
	}
	return comps[a.selected]
}

// selectComponent rebuilds the property rows for component i.
func (a *App) selectComponent(i int) {
	comps := a.doc.Components()
	a.props = nil
	if len(comps) == 0 {
		a.selected, a.row = 0, 0
		a.statusBar.SetComponent("")
		return
	}
	a.selected = ((i % len(comps)) + len(comps)) % len(comps)
	c := comps[a.selected]
	a.props = editableProperties(a.doc, c)
	if a.row >= len(a.props) {
		a.row = len(a.props) - 1
	}
	if a.row < 0 {
		a.row = 0
	}
	a.statusBar.SetComponent(c.Name() + " (" + c.Type + ")")
}

type propertySource interface {
	EditableProperties(doc *component.Document, id component.ID) []propedit.Property
}

func editableProperties(doc *component.Document, c *component.Component) []propedit.Property {
	if h, ok := doc.Handler(c); ok {
		if ps, ok := h.(propertySource); ok {
			return ps.EditableProperties(doc, c.ID)
		}
	}
	return propedit.ButtonProperties(doc, c.ID)
}

// --- Event Handlers (App reacts to events) ---

func (a *App) handleHistoryChanged(e event.Event) bool {
	if data, ok := e.Data.(event.HistoryChangedData); ok {
		a.statusBar.SetHistory(data.UndoDescription, data.RedoDescription)
	}
	return false
}

func (a *App) handleDocumentModified(e event.Event) bool {
	a.updateStatusBarContent()
	return false
}

func (a *App) handleDocumentSaved(e event.Event) bool {
	a.updateStatusBarContent()
	if data, ok := e.Data.(event.DocumentFileData); ok {
		a.SetStatusMessage("Saved %s", data.FilePath)
	}
	return false
}

func (a *App) handleLayoutChanged(e event.Event) bool {
	if data, ok := e.Data.(event.LayoutChangedData); ok && data.ComponentID == 0 {
		// components were added, removed or reloaded
		a.attachPreviews()
		a.selectComponent(a.selected)
	}
	return false
}

func (a *App) handleSchemeChanged(e event.Event) bool {
	a.theme = a.settings.Theme()
	return false
}

func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.doc.FilePath(), a.doc.IsModified())
	log := a.doc.History()
	a.statusBar.SetHistory(log.UndoDescription(), log.RedoDescription())
}

func (a *App) refreshSchemes() {
	if err := a.settings.RefreshPresetSchemeList(); err != nil {
		logger.Warnf("App: %v", err)
		return
	}
	if name := a.settings.Current(); name != "" {
		if err := a.settings.SelectPresetByName(name); err != nil {
			logger.Warnf("App: reloading scheme: %v", err)
		}
	}
}
