package component

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/compedit/internal/codegen"
	"github.com/bethropolis/compedit/internal/property"
	"github.com/bethropolis/compedit/internal/serial"
	"github.com/bethropolis/compedit/internal/xmldoc"
)

// Keys shared by every button type.
const (
	KeyName       property.Key = "name"
	KeyMemberName property.Key = "memberName"
	KeyPosition   property.Key = "pos"
	KeyButtonText property.Key = "buttonText"
	KeyTooltip    property.Key = "tooltip"
)

// ButtonSchema lists the attributes every button writes first.
var ButtonSchema = serial.Schema{
	{Attr: "name", Key: KeyName, Default: property.String("new button")},
	{Attr: "memberName", Key: KeyMemberName, Default: property.String("")},
	{Attr: "pos", Key: KeyPosition, Default: property.String("0 0 150 24")},
	{Attr: "buttonText", Key: KeyButtonText, Default: property.String("new button")},
	{Attr: "tooltip", Key: KeyTooltip, Default: property.String("")},
}

// CreateButton loads the base button defaults into c.
func CreateButton(c *Component, defaultName string) {
	for _, f := range ButtonSchema {
		c.Properties.Load(f.Key, f.Default)
	}
	c.Properties.Load(KeyName, property.String(defaultName))
	c.Properties.Load(KeyMemberName, property.String(codegen.MakeValidIdentifier(defaultName, false)))
	c.Properties.Load(KeyButtonText, property.String(defaultName))
}

// ButtonToXML starts an element for c carrying the base button attributes.
func ButtonToXML(tag string, c *Component) *xmldoc.Element {
	el := xmldoc.NewElement(tag)
	ButtonSchema.WriteTo(el, c.Properties)
	return el
}

// RestoreButton loads the base button attributes and returns how many
// were malformed.
func RestoreButton(el *xmldoc.Element, c *Component) int {
	return ButtonSchema.ReadFrom(el, c.Properties)
}

// Bounds is a component position in pixels.
type Bounds struct {
	X, Y, Width, Height int
}

// ParseBounds reads "x y w h". Missing or malformed numbers are zero.
func ParseBounds(pos string) Bounds {
	var n [4]int
	for i, f := range strings.Fields(pos) {
		if i >= len(n) {
			break
		}
		v, err := strconv.Atoi(f)
		if err == nil {
			n[i] = v
		}
	}
	return Bounds{n[0], n[1], n[2], n[3]}
}

func (b Bounds) String() string {
	return fmt.Sprintf("%d %d %d %d", b.X, b.Y, b.Width, b.Height)
}

// FillInButtonCreationCode writes the member declaration, construction,
// text, tooltip and bounds code shared by all buttons. Button text is only
// set when it differs from the name, which the constructor already uses.
func FillInButtonCreationCode(code *codegen.GeneratedCode, c *Component, memberName, className string) {
	code.AddMember(fmt.Sprintf("ScopedPointer<%s> %s;", className, memberName))

	var sb strings.Builder
	fmt.Fprintf(&sb, "addAndMakeVisible (%s = new %s (%s));\n",
		memberName, className, codegen.StringLiteral(c.Name(), 0))

	if text := c.Properties.GetString(KeyButtonText, ""); text != c.Name() {
		fmt.Fprintf(&sb, "%s->setButtonText (TRANS(%s));\n", memberName, codegen.StringLiteral(text, 0))
	}
	if tip := c.Properties.GetString(KeyTooltip, ""); tip != "" {
		fmt.Fprintf(&sb, "%s->setTooltip (TRANS(%s));\n", memberName, codegen.StringLiteral(tip, 0))
	}
	b := ParseBounds(c.Properties.GetString(KeyPosition, ""))
	fmt.Fprintf(&sb, "%s->setBounds (%d, %d, %d, %d);\n", memberName, b.X, b.Y, b.Width, b.Height)
	code.AddConstructorCode(sb.String())

	code.AddDestructorCode(memberName + " = nullptr;\n")
}
