package app

import (
	"strings"

	"github.com/bethropolis/compedit/internal/commands"
	"github.com/bethropolis/compedit/internal/input"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/modal"
	"github.com/bethropolis/compedit/internal/propedit"
	"github.com/bethropolis/compedit/internal/property"
	"github.com/gdamore/tcell/v2"
)

// prompt is the modal input line used for typed values and commands.
type prompt struct {
	app       *App
	label     string
	text      []rune
	onConfirm func(text string)
}

func (p *prompt) String() string { return p.label + string(p.text) }

// ExitModalState implements modal.Component.
func (p *prompt) ExitModalState(result int) {
	if p.app.prompt == p {
		p.app.prompt = nil
	}
}

func (a *App) openPrompt(label, initial string, onConfirm func(string)) {
	if a.prompt != nil {
		a.modals.CancelAll()
	}
	a.prompt = &prompt{app: a, label: label, text: []rune(initial), onConfirm: onConfirm}
	a.modals.Enter(a.prompt)
}

func (a *App) handleKey(ev *tcell.EventKey) {
	actionEvent := a.input.ProcessEvent(ev, a.prompt != nil)
	if actionEvent.Action != input.ActionQuit && actionEvent.Action != input.ActionForceQuit {
		a.quitPending = false
	}

	switch actionEvent.Action {
	case input.ActionQuit:
		if a.modals.CancelAll() {
			return
		}
		if a.doc.IsModified() && !a.quitPending {
			a.quitPending = true
			a.SetStatusMessage("Unsaved changes: press Esc again to quit, Ctrl+S to save")
			return
		}
		a.quit = true
	case input.ActionForceQuit:
		a.quit = true
	case input.ActionSave:
		a.invoke("save")
	case input.ActionUndo:
		a.invoke("undo")
	case input.ActionRedo:
		a.invoke("redo")
	case input.ActionGenerate:
		a.invoke("generate")
	case input.ActionCopyCode:
		a.invoke("copy")
	case input.ActionAddComponent:
		a.invoke("add")

	case input.ActionMoveUp:
		if a.row > 0 {
			a.row--
		}
	case input.ActionMoveDown:
		if a.row < len(a.props)-1 {
			a.row++
		}
	case input.ActionDecrease:
		a.adjust(-1)
	case input.ActionIncrease:
		a.adjust(1)
	case input.ActionNextComponent:
		a.selectComponent(a.selected + 1)
	case input.ActionPrevComponent:
		a.selectComponent(a.selected - 1)
	case input.ActionEdit:
		a.editSelected()
	case input.ActionEnterCommandMode:
		a.openPrompt(":", "", func(line string) {
			if err := a.commands.Execute(line); err != nil {
				a.SetStatusMessage("Error: %v", err)
			}
		})

	case input.ActionInsertRune:
		if a.prompt != nil {
			a.prompt.text = append(a.prompt.text, actionEvent.Rune)
		}
	case input.ActionDeleteCharBackward:
		if a.prompt != nil && len(a.prompt.text) > 0 {
			a.prompt.text = a.prompt.text[:len(a.prompt.text)-1]
		}
	case input.ActionConfirm:
		if p := a.prompt; p != nil {
			a.modals.Exit(p)
			a.prompt = nil
			p.onConfirm(string(p.text))
		}
	}
}

// invoke runs a command. If a prompt is open it is cancelled first and
// the command retried shortly after, so the prompt's text is not lost
// into the wrong place.
func (a *App) invoke(id commands.ID) {
	info := commands.InvocationInfo{Command: id}
	if a.prompt != nil {
		info.Origin = a.prompt
	}
	if modal.ReinvokeAfterCancelling(a.modals, a.scheduler, a.commands, info) {
		logger.DebugTagf("app", "Cancelled prompt, retrying '%s'", id)
		return
	}
	if err := a.commands.Invoke(info, false); err != nil {
		a.SetStatusMessage("Error executing command '%s': %v", id, err)
	}
}

func (a *App) selectedProperty() propedit.Property {
	if a.row < 0 || a.row >= len(a.props) {
		return nil
	}
	return a.props[a.row]
}

// adjust steps the selected row: sliders move, resources cycle and
// toggles flip.
func (a *App) adjust(delta int) {
	switch p := a.selectedProperty().(type) {
	case *propedit.Slider:
		p.Step(delta)
	case *propedit.ResourcePicker:
		p.Cycle(delta)
	case *propedit.Toggle:
		p.Toggle()
	}
}

type textSetter interface {
	SetText(text string) bool
}

func (a *App) editSelected() {
	p := a.selectedProperty()
	if p == nil {
		return
	}
	if tg, ok := p.(*propedit.Toggle); ok {
		tg.Toggle()
		return
	}
	if rp, ok := p.(*propedit.ResourcePicker); ok {
		a.openPrompt(p.Name()+": ", rp.Current().AsString(""), func(text string) {
			if !rp.Commit(property.String(strings.TrimSpace(text))) {
				a.SetStatusMessage("%s unchanged", p.Name())
			}
		})
		return
	}
	ts, ok := p.(textSetter)
	if !ok {
		return
	}
	a.openPrompt(p.Name()+": ", p.Text(), func(text string) {
		if !ts.SetText(text) {
			a.SetStatusMessage("%s unchanged", p.Name())
		}
	})
}
