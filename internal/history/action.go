// Package history provides undo/redo through an ordered log of reversible actions.
package history

// Action is one reversible edit. Perform applies it, Undo reverts it.
// Both report whether anything was done; a false return leaves the log
// untouched.
type Action interface {
	Perform() bool
	Undo() bool
}

// Coalescer is an Action that can absorb a following action into itself,
// so a burst of edits (a slider drag) becomes a single undo step.
// CoalesceWith is called after next has already been performed; it
// returns the combined action, or false if the two must stay separate.
type Coalescer interface {
	Action
	CoalesceWith(next Action) (Action, bool)
}

// ActionFunc builds an Action from two closures.
type ActionFunc struct {
	PerformFunc func() bool
	UndoFunc    func() bool
}

func (a ActionFunc) Perform() bool { return a.PerformFunc() }
func (a ActionFunc) Undo() bool    { return a.UndoFunc() }
