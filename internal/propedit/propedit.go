// Package propedit binds editor widgets to component properties. A
// binding never writes to a property store itself: every accepted value
// becomes a component.PropertyAction performed through the document's
// undo log.
package propedit

import (
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/property"
)

// Property is one row of a property panel.
type Property interface {
	Name() string
	Key() property.Key
	Kind() property.Kind
	// Current reads the live value from the component.
	Current() property.Value
	// Commit submits v as an undoable change. It returns false if v was
	// rejected, equal to the current value, or the action failed.
	Commit(v property.Value) bool
	// Refresh re-reads the value after an external change (undo, redo, load).
	Refresh()
	// Text is the value as the panel displays it.
	Text() string
}

// Target names the property a binding edits.
type Target struct {
	Doc  *component.Document
	ID   component.ID
	Key  property.Key
	Name string
	// Description labels the undo step.
	Description string
	// Help is shown while the pointer rests on the row.
	Help string
	// Default is returned when the key is missing and fixes the kind
	// accepted by Commit.
	Default property.Value
}

// Binding is the shared implementation behind every editor kind.
type Binding struct {
	target    Target
	shown     property.Value
	normalise func(property.Value) (property.Value, bool)
	format    func(property.Value) string
	onRefresh func(property.Value)
}

func newBinding(t Target) *Binding {
	b := &Binding{target: t}
	b.shown = b.Current()
	return b
}

func (b *Binding) Name() string        { return b.target.Name }
func (b *Binding) Key() property.Key   { return b.target.Key }
func (b *Binding) Kind() property.Kind { return b.target.Default.Kind() }
func (b *Binding) Target() Target      { return b.target }
func (b *Binding) Help() string        { return b.target.Help }

func (b *Binding) Current() property.Value {
	c, ok := b.target.Doc.Get(b.target.ID)
	if !ok {
		return b.target.Default
	}
	return c.Properties.Get(b.target.Key, b.target.Default)
}

func (b *Binding) Commit(v property.Value) bool {
	if v.Kind() != b.Kind() {
		logger.Warnf("Property %q: rejecting %s value, want %s", b.target.Name, v.Kind(), b.Kind())
		return false
	}
	if b.normalise != nil {
		var ok bool
		if v, ok = b.normalise(v); !ok {
			return false
		}
	}
	if b.Current().Equal(v) {
		return false
	}
	action := component.NewPropertyAction(b.target.Doc, b.target.ID, b.target.Key, v)
	if !b.target.Doc.Perform(action, b.target.Description) {
		return false
	}
	b.Refresh()
	return true
}

func (b *Binding) Refresh() {
	b.shown = b.Current()
	if b.onRefresh != nil {
		b.onRefresh(b.shown)
	}
}

// OnRefresh installs a callback run with the new value after every refresh.
func (b *Binding) OnRefresh(fn func(property.Value)) { b.onRefresh = fn }

// Shown is the value as of the last refresh.
func (b *Binding) Shown() property.Value { return b.shown }

func (b *Binding) Text() string {
	v := b.Current()
	if b.format != nil {
		return b.format(v)
	}
	return v.Text()
}
