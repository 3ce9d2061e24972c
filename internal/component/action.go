package component

import (
	"github.com/bethropolis/compedit/internal/history"
	"github.com/bethropolis/compedit/internal/property"
)

// PropertyAction changes one property of one component. The previous
// value is captured when the action is built, so build it just before
// handing it to the log.
type PropertyAction struct {
	doc      *Document
	id       ID
	key      property.Key
	old, new property.Value
}

// NewPropertyAction records the component's current value for key and
// the value to change it to. If the key is absent the old value is
// KindNone and undoing removes the key again.
func NewPropertyAction(doc *Document, id ID, key property.Key, newValue property.Value) *PropertyAction {
	a := &PropertyAction{doc: doc, id: id, key: key, new: newValue}
	if c, ok := doc.Get(id); ok {
		a.old = c.Properties.Get(key, property.Value{})
	}
	return a
}

func (a *PropertyAction) ComponentID() ID     { return a.id }
func (a *PropertyAction) Key() property.Key   { return a.key }
func (a *PropertyAction) Old() property.Value { return a.old }
func (a *PropertyAction) New() property.Value { return a.new }

// Perform applies the new value. It fails if the component has gone.
func (a *PropertyAction) Perform() bool { return a.apply(a.new) }

// Undo restores the old value. It fails if the component has gone.
func (a *PropertyAction) Undo() bool { return a.apply(a.old) }

func (a *PropertyAction) apply(v property.Value) bool {
	c, ok := a.doc.Get(a.id)
	if !ok {
		return false
	}
	a.doc.ShowTabFor(a.id)
	if v.IsNone() {
		c.Properties.Remove(a.key)
	} else {
		c.Properties.Set(a.key, v)
	}
	return true
}

// CoalesceWith merges a later change of the same property into this one.
// The result keeps this action's old value and takes next's new value.
func (a *PropertyAction) CoalesceWith(next history.Action) (history.Action, bool) {
	n, ok := next.(*PropertyAction)
	if !ok || n.doc != a.doc || n.id != a.id || n.key != a.key {
		return nil, false
	}
	return &PropertyAction{doc: a.doc, id: a.id, key: a.key, old: a.old, new: n.new}, true
}
