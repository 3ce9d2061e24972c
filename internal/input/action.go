// Package input translates terminal key events into editor actions.
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	ActionUnknown Action = iota

	// Meta
	ActionQuit // Esc: cancel the prompt, or quit
	ActionForceQuit
	ActionSave
	ActionUndo
	ActionRedo
	ActionGenerate
	ActionCopyCode

	// Grid navigation
	ActionMoveUp
	ActionMoveDown
	ActionDecrease // step slider, cycle resource, toggle
	ActionIncrease
	ActionNextComponent
	ActionPrevComponent
	ActionEdit // Enter: edit the selected row as text
	ActionAddComponent

	// Prompt editing
	ActionInsertRune
	ActionDeleteCharBackward
	ActionConfirm
	ActionEnterCommandMode
)

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // for ActionInsertRune
}
