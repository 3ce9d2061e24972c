package history

import (
	"time"

	"github.com/bethropolis/compedit/internal/event"
	"github.com/bethropolis/compedit/internal/logger"
)

const (
	DefaultMaxHistory  = 100
	DefaultMergeWindow = 500 * time.Millisecond
)

// Options configures a Log.
type Options struct {
	// MaxHistory caps the number of undo steps kept. <= 0 means DefaultMaxHistory.
	MaxHistory int
	// MergeWindow is how close in time two coalescable actions must be to
	// become one step. Zero disables merging.
	MergeWindow time.Duration
	// Events, if set, receives TypeHistoryChanged after every change.
	Events *event.Manager
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

type entry struct {
	action      Action
	description string
	at          time.Time
	sealed      bool // no longer accepts merges
}

// Log is the undo manager: performed actions before the cursor, undone
// actions after it. Not safe for concurrent use; all calls must come from
// the goroutine that owns the document.
type Log struct {
	entries     []entry
	cursor      int // index of the next action to redo
	maxHistory  int
	mergeWindow time.Duration
	events      *event.Manager
	now         func() time.Time
}

// NewLog creates an empty log.
func NewLog(opts Options) *Log {
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Log{
		entries:     make([]entry, 0, 16),
		maxHistory:  opts.MaxHistory,
		mergeWindow: opts.MergeWindow,
		events:      opts.Events,
		now:         opts.Clock,
	}
}

// Perform runs the action and, if it succeeds, records it as the next undo
// step, discarding anything that had been undone.
func (l *Log) Perform(a Action, description string) bool {
	if a == nil {
		return false
	}
	if !a.Perform() {
		logger.DebugTagf("history", "Action %q refused to perform; log unchanged", description)
		return false
	}

	truncated := false
	if l.cursor < len(l.entries) {
		l.entries = l.entries[:l.cursor]
		truncated = true
	}

	now := l.now()
	if !truncated && l.tryMerge(a, now) {
		logger.DebugTagf("history", "Merged %q into step %d", description, l.cursor)
		l.changed()
		return true
	}

	l.entries = append(l.entries, entry{action: a, description: description, at: now})
	if len(l.entries) > l.maxHistory {
		l.entries = append(l.entries[:0], l.entries[len(l.entries)-l.maxHistory:]...)
	}
	l.cursor = len(l.entries)

	logger.DebugTagf("history", "Recorded %q. Cursor: %d, Count: %d", description, l.cursor, len(l.entries))
	l.changed()
	return true
}

// tryMerge folds a into the step just before the cursor if both sides agree.
func (l *Log) tryMerge(a Action, now time.Time) bool {
	if l.mergeWindow <= 0 || l.cursor == 0 {
		return false
	}
	prev := &l.entries[l.cursor-1]
	if prev.sealed || now.Sub(prev.at) > l.mergeWindow {
		return false
	}
	c, ok := prev.action.(Coalescer)
	if !ok {
		return false
	}
	merged, ok := c.CoalesceWith(a)
	if !ok {
		return false
	}
	prev.action = merged
	prev.at = now
	return true
}

// Seal stops the most recent step from absorbing further actions, e.g.
// when a drag gesture ends.
func (l *Log) Seal() {
	if l.cursor > 0 {
		l.entries[l.cursor-1].sealed = true
	}
}

// Undo reverts the step before the cursor. It returns false if there is
// nothing to undo or the action could not be undone.
func (l *Log) Undo() bool {
	if l.cursor <= 0 {
		logger.DebugTagf("history", "Nothing to undo")
		return false
	}

	e := &l.entries[l.cursor-1]
	if !e.action.Undo() {
		logger.Warnf("History: undo of %q failed; cursor stays at %d", e.description, l.cursor)
		return false
	}
	e.sealed = true
	l.cursor--

	logger.DebugTagf("history", "Undid %q. Cursor: %d", e.description, l.cursor)
	l.changed()
	return true
}

// Redo re-applies the step at the cursor. It returns false if there is
// nothing to redo or the action could not be performed.
func (l *Log) Redo() bool {
	if l.cursor >= len(l.entries) {
		logger.DebugTagf("history", "Nothing to redo. Cursor: %d, Count: %d", l.cursor, len(l.entries))
		return false
	}

	e := &l.entries[l.cursor]
	if !e.action.Perform() {
		logger.Warnf("History: redo of %q failed; cursor stays at %d", e.description, l.cursor)
		return false
	}
	e.sealed = true
	l.cursor++

	logger.DebugTagf("history", "Redid %q. Cursor: %d", e.description, l.cursor)
	l.changed()
	return true
}

// Clear drops all steps. Call it when the document is loaded or closed.
func (l *Log) Clear() {
	for i := range l.entries {
		l.entries[i] = entry{} // release actions
	}
	l.entries = l.entries[:0]
	l.cursor = 0
	logger.DebugTagf("history", "Cleared")
	l.changed()
}

// CanUndo reports whether Undo has something to revert.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether Redo has something to re-apply.
func (l *Log) CanRedo() bool { return l.cursor < len(l.entries) }

// Len returns the number of recorded steps, undone ones included.
func (l *Log) Len() int { return len(l.entries) }

// Cursor returns the number of steps currently applied.
func (l *Log) Cursor() int { return l.cursor }

// UndoDescription names the step Undo would revert ("" if none).
func (l *Log) UndoDescription() string {
	if !l.CanUndo() {
		return ""
	}
	return l.entries[l.cursor-1].description
}

// RedoDescription names the step Redo would re-apply ("" if none).
func (l *Log) RedoDescription() string {
	if !l.CanRedo() {
		return ""
	}
	return l.entries[l.cursor].description
}

func (l *Log) changed() {
	if l.events == nil {
		return
	}
	l.events.Dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
		CanUndo:         l.CanUndo(),
		CanRedo:         l.CanRedo(),
		UndoDescription: l.UndoDescription(),
		RedoDescription: l.RedoDescription(),
	})
}
