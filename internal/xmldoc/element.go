// Package xmldoc is a small ordered XML element tree used for layout
// documents, colour scheme files and plist fragments. Attribute order is
// preserved so written files are stable.
package xmldoc

import (
	"strconv"
	"strings"
)

// Attr is one attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is an element node, or a text node when Tag is empty.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string // only for text nodes

	parent *Element
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// IsText reports whether e is a text node.
func (e *Element) IsText() bool { return e.Tag == "" }

// HasTag compares the tag name.
func (e *Element) HasTag(tag string) bool { return e.Tag == tag }

// Parent returns the containing element, or nil for a root.
func (e *Element) Parent() *Element { return e.parent }

// --- attributes ---

func (e *Element) attrIndex(name string) int {
	for i, a := range e.Attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// HasAttribute reports whether name is set.
func (e *Element) HasAttribute(name string) bool { return e.attrIndex(name) >= 0 }

// SetAttribute sets or replaces an attribute, keeping its original position.
func (e *Element) SetAttribute(name, value string) {
	if i := e.attrIndex(name); i >= 0 {
		e.Attrs[i].Value = value
		return
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// SetBoolAttribute writes "1" or "0".
func (e *Element) SetBoolAttribute(name string, v bool) {
	if v {
		e.SetAttribute(name, "1")
	} else {
		e.SetAttribute(name, "0")
	}
}

// SetIntAttribute writes a decimal integer.
func (e *Element) SetIntAttribute(name string, v int) {
	e.SetAttribute(name, strconv.Itoa(v))
}

// SetDoubleAttribute writes the shortest decimal that reads back exactly.
func (e *Element) SetDoubleAttribute(name string, v float64) {
	e.SetAttribute(name, strconv.FormatFloat(v, 'g', -1, 64))
}

// RemoveAttribute deletes name if present.
func (e *Element) RemoveAttribute(name string) {
	if i := e.attrIndex(name); i >= 0 {
		e.Attrs = append(e.Attrs[:i], e.Attrs[i+1:]...)
	}
}

// StringAttribute returns the attribute or def when absent.
func (e *Element) StringAttribute(name, def string) string {
	if i := e.attrIndex(name); i >= 0 {
		return e.Attrs[i].Value
	}
	return def
}

// DoubleAttribute parses a float attribute, returning def when absent or malformed.
func (e *Element) DoubleAttribute(name string, def float64) float64 {
	i := e.attrIndex(name)
	if i < 0 {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(e.Attrs[i].Value), 64)
	if err != nil {
		return def
	}
	return v
}

// IntAttribute parses an integer attribute, returning def when absent or malformed.
func (e *Element) IntAttribute(name string, def int) int {
	i := e.attrIndex(name)
	if i < 0 {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(e.Attrs[i].Value))
	if err != nil {
		return def
	}
	return v
}

// BoolAttribute returns def when absent; otherwise true if the value
// starts with 1, y or t (any case).
func (e *Element) BoolAttribute(name string, def bool) bool {
	i := e.attrIndex(name)
	if i < 0 {
		return def
	}
	v := strings.TrimSpace(e.Attrs[i].Value)
	if v == "" {
		return false
	}
	switch v[0] {
	case '1', 'y', 'Y', 't', 'T':
		return true
	}
	return false
}

// --- children ---

// AddChild appends child, detaching it from any previous parent.
func (e *Element) AddChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.Children = append(e.Children, child)
	return child
}

// NewChild creates and appends an element.
func (e *Element) NewChild(tag string) *Element {
	return e.AddChild(NewElement(tag))
}

// AddText appends a text node.
func (e *Element) AddText(text string) *Element {
	return e.AddChild(&Element{Text: text})
}

// RemoveChild detaches child. It reports whether child was found.
func (e *Element) RemoveChild(child *Element) bool {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Elements returns the element (non-text) children.
func (e *Element) Elements() []*Element {
	out := make([]*Element, 0, len(e.Children))
	for _, c := range e.Children {
		if !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenNamed returns the element children with the given tag.
func (e *Element) ChildrenNamed(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// FirstChildNamed returns the first child with the given tag, or nil.
func (e *Element) FirstChildNamed(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// NextElement returns the next element sibling, skipping text nodes.
func (e *Element) NextElement() *Element {
	if e.parent == nil {
		return nil
	}
	siblings := e.parent.Children
	for i, c := range siblings {
		if c != e {
			continue
		}
		for _, next := range siblings[i+1:] {
			if !next.IsText() {
				return next
			}
		}
		return nil
	}
	return nil
}

// AllSubText concatenates every text node below e.
func (e *Element) AllSubText() string {
	if e.IsText() {
		return e.Text
	}
	var sb strings.Builder
	for _, c := range e.Children {
		sb.WriteString(c.AllSubText())
	}
	return sb.String()
}
