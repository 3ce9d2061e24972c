package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]Action
type RuneKeymap map[rune]Action
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell events into ActionEvents. In prompt
// mode runes are text; otherwise they may be bound to commands.
type InputProcessor struct {
	keymap       Keymap
	runeKeymap   RuneKeymap
	modKeymap    ModKeymap
	promptKeymap Keymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:       make(Keymap),
		runeKeymap:   make(RuneKeymap),
		modKeymap:    make(ModKeymap),
		promptKeymap: make(Keymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionDecrease
	p.keymap[tcell.KeyRight] = ActionIncrease
	p.keymap[tcell.KeyTab] = ActionNextComponent
	p.keymap[tcell.KeyBacktab] = ActionPrevComponent
	p.keymap[tcell.KeyEnter] = ActionEdit
	p.keymap[tcell.KeyEscape] = ActionQuit

	// Ctrl+letter arrives as its own key code
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlG] = ActionGenerate
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlC] = ActionQuit
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['c'] = ActionCopyCode
	p.runeKeymap['a'] = ActionAddComponent
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['r'] = ActionRedo

	p.promptKeymap[tcell.KeyEnter] = ActionConfirm
	p.promptKeymap[tcell.KeyEscape] = ActionQuit
	p.promptKeymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.promptKeymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
}

// ProcessEvent decodes ev. prompting selects the text-entry bindings.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey, prompting bool) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl combinations work in both modes
	if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok && key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return ActionEvent{Action: action}
	}
	if modKeyMap, ok := p.modKeymap[mod]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if prompting {
		if action, ok := p.promptKeymap[key]; ok {
			return ActionEvent{Action: action}
		}
		if key == tcell.KeyRune {
			return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
		}
		return ActionEvent{Action: ActionUnknown}
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}
	if key == tcell.KeyRune && mod&(tcell.ModAlt|tcell.ModCtrl) == 0 {
		if action, ok := p.runeKeymap[ev.Rune()]; ok {
			return ActionEvent{Action: action, Rune: ev.Rune()}
		}
	}
	return ActionEvent{Action: ActionUnknown}
}
