// Package component holds the layout document: the components being
// edited, their property stores, the undo log they share, and the
// undoable property action every edit goes through.
package component

import (
	"errors"

	"github.com/bethropolis/compedit/internal/codegen"
	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/property"
	"github.com/bethropolis/compedit/internal/xmldoc"
)

var (
	ErrUnknownType = errors.New("unknown component type")
	ErrNotFound    = errors.New("component not found")
)

// ID identifies a component within its document. IDs are never reused.
type ID uint64

// Image is one resolved image slot. A zero Resource means no image.
type Image struct {
	Resource string
	Size     int
	Opacity  float64
	Overlay  colour.Colour
}

// ImageSink receives the images a component should display. The terminal
// editor and tests install one; with none set, image updates are dropped.
type ImageSink interface {
	SetImages(keepProportions bool, normal, over, down Image)
}

// Component is one element of the layout.
type Component struct {
	ID         ID
	Type       string
	Properties *property.Store
	Images     ImageSink

	removeObserver func()
}

// Name is the display name stored under the "name" key.
func (c *Component) Name() string {
	return c.Properties.GetString(KeyName, "")
}

// Tooltip is the component's own help text.
func (c *Component) Tooltip() string {
	return c.Properties.GetString(KeyTooltip, "")
}

// MemberName is the C++ member variable name.
func (c *Component) MemberName() string {
	if m := c.Properties.GetString(KeyMemberName, ""); m != "" {
		return m
	}
	return codegen.MakeValidIdentifier(c.Name(), false)
}

// Handler knows how to create, persist and generate code for one
// component type.
type Handler interface {
	TypeName() string
	XMLTag() string
	// CreateNew fills a freshly added component with its default properties.
	CreateNew(doc *Document, c *Component)
	ToXML(c *Component) *xmldoc.Element
	// RestoreFromXML loads properties silently; malformed attributes fall
	// back to defaults rather than failing the load.
	RestoreFromXML(el *xmldoc.Element, c *Component) error
	FillInCreationCode(code *codegen.GeneratedCode, c *Component, memberName string)
}

// Refresher is implemented by handlers that need to update a component's
// visuals after one of its properties changes.
type Refresher interface {
	Refresh(doc *Document, c *Component)
}
