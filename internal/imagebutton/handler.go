// Package imagebutton handles the "Image Button" component type: a button
// drawn from up to three image resources (normal, mouse-over and pressed),
// each with its own opacity and overlay colour.
package imagebutton

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/compedit/internal/codegen"
	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/propedit"
	"github.com/bethropolis/compedit/internal/property"
	"github.com/bethropolis/compedit/internal/serial"
	"github.com/bethropolis/compedit/internal/xmldoc"
)

const (
	TypeName  = "ImageButton"
	XMLTag    = "IMAGEBUTTON"
	ClassName = "ImageButton"
)

// Role selects one of the three image slots.
type Role int

const (
	Normal Role = iota
	Over
	Down
)

// Roles lists every role in slot order.
var Roles = [...]Role{Normal, Over, Down}

func (r Role) String() string {
	switch r {
	case Normal:
		return "Normal"
	case Over:
		return "Over"
	case Down:
		return "Down"
	default:
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
}

func (r Role) label() string {
	return strings.ToLower(r.String()) + " image"
}

// KeyKeepProportions is the store key for the proportional scaling flag.
const KeyKeepProportions property.Key = "keepImageProp"

func ResourceKey(r Role) property.Key { return property.Key("resource" + strconv.Itoa(int(r))) }
func OpacityKey(r Role) property.Key  { return property.Key("imageOpacity" + strconv.Itoa(int(r))) }
func ColourKey(r Role) property.Key   { return property.Key("imageColour" + strconv.Itoa(int(r))) }

// Undo step labels.
const (
	DescResource    = "Change image resource"
	DescProportions = "change imagebutton proportion mode"
	DescOpacity     = "change imagebutton opacity"
	DescColour      = "change imagebutton colour"
)

// Schema is written after the shared button attributes.
var Schema = func() serial.Schema {
	s := serial.Schema{{Attr: "keepProportions", Key: KeyKeepProportions, Default: property.Bool(true)}}
	for _, r := range Roles {
		s = append(s,
			serial.Field{Attr: "resource" + r.String(), Key: ResourceKey(r), Default: property.String("")},
			serial.Field{Attr: "opacity" + r.String(), Key: OpacityKey(r), Default: property.Float(1)},
			serial.Field{Attr: "colour" + r.String(), Key: ColourKey(r), Default: property.Colour(colour.TransparentBlack)},
		)
	}
	return s
}()

// Handler implements component.Handler and component.Refresher.
type Handler struct{}

// New returns the image button handler.
func New() *Handler { return &Handler{} }

func (h *Handler) TypeName() string { return TypeName }
func (h *Handler) XMLTag() string   { return XMLTag }

func (h *Handler) CreateNew(doc *component.Document, c *component.Component) {
	component.CreateButton(c, "new button")
	for _, f := range Schema {
		c.Properties.Load(f.Key, f.Default)
	}
}

func (h *Handler) ToXML(c *component.Component) *xmldoc.Element {
	el := component.ButtonToXML(XMLTag, c)
	Schema.WriteTo(el, c.Properties)
	return el
}

func (h *Handler) RestoreFromXML(el *xmldoc.Element, c *component.Component) error {
	bad := component.RestoreButton(el, c) + Schema.ReadFrom(el, c.Properties)
	if bad > 0 {
		logger.Warnf("ImageButton %q: %d malformed attribute(s) replaced by defaults", c.Name(), bad)
	}
	return nil
}

func (h *Handler) Refresh(doc *component.Document, c *component.Component) {
	UpdateImages(doc, c)
}

// FillInCreationCode adds the setImages call after the shared button code.
func (h *Handler) FillInCreationCode(code *codegen.GeneratedCode, c *component.Component, memberName string) {
	component.FillInButtonCreationCode(code, c, memberName, ClassName)

	store := c.Properties
	indent := strings.Repeat(" ", len(memberName)+13)

	var sb strings.Builder
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%s->setImages (false, true, %s,\n", memberName, codegen.BoolLiteral(KeepsProportions(store)))
	for i, r := range Roles {
		sb.WriteString(indent)
		sb.WriteString(ImageCreationCode(Resource(store, r)))
		sb.WriteString(", ")
		sb.WriteString(codegen.FloatLiteral(Opacity(store, r), 3))
		sb.WriteString(", ")
		sb.WriteString(codegen.ColourToCode(Colour(store, r)))
		if i < len(Roles)-1 {
			sb.WriteString(",\n")
		}
	}
	sb.WriteString(");\n")
	code.AddConstructorCode(sb.String())
}

// ImageCreationCode is the expression that loads a resource, or an empty
// Image for none.
func ImageCreationCode(resource string) string {
	if resource == "" {
		return "Image()"
	}
	return "ImageCache::getFromMemory (" + resource + ", " + resource + "Size)"
}

// EditableProperties lists the panel rows for an image button: the shared
// button rows, then proportions, then resource, opacity and overlay
// colour for each role.
func (h *Handler) EditableProperties(doc *component.Document, id component.ID) []propedit.Property {
	return EditableProperties(doc, id)
}

// EditableProperties is the function form of Handler.EditableProperties.
func EditableProperties(doc *component.Document, id component.ID) []propedit.Property {
	props := propedit.ButtonProperties(doc, id)
	props = append(props, propedit.NewToggle(propedit.Target{
		Doc: doc, ID: id, Key: KeyKeepProportions, Name: "proportional",
		Description: DescProportions,
		Help:        "Whether the images keep their aspect ratio when the button is resized.",
		Default:     property.Bool(true),
	}, "maintain image proportions", "scale to fit"))

	for _, r := range Roles {
		props = append(props,
			propedit.NewResourcePicker(propedit.Target{
				Doc: doc, ID: id, Key: ResourceKey(r), Name: r.label(),
				Description: DescResource,
				Help:        "The resource used for the " + r.label() + ".",
				Default:     property.String(""),
			}),
			propedit.NewSlider(propedit.Target{
				Doc: doc, ID: id, Key: OpacityKey(r), Name: "opacity",
				Description: DescOpacity,
				Help:        "Opacity of the " + r.label() + ", 0 to 1.",
				Default:     property.Float(1),
			}, 0, 1, 0),
			propedit.NewColourPicker(propedit.Target{
				Doc: doc, ID: id, Key: ColourKey(r), Name: "overlay col.",
				Description: DescColour,
				Help:        "Colour drawn over the " + r.label() + "; its alpha sets the strength.",
				Default:     property.Colour(colour.TransparentBlack),
			}),
		)
	}
	return props
}
