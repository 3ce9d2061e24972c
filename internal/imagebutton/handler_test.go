package imagebutton

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bethropolis/compedit/internal/codegen"
	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/component"
	"github.com/bethropolis/compedit/internal/propedit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sinkCall struct {
	keep               bool
	normal, over, down component.Image
}

type recordingSink struct {
	calls []sinkCall
}

func (s *recordingSink) SetImages(keep bool, normal, over, down component.Image) {
	s.calls = append(s.calls, sinkCall{keep, normal, over, down})
}

func newDoc(t *testing.T) *component.Document {
	t.Helper()
	reg := component.NewRegistry()
	require.NoError(t, reg.Register(New()))
	return component.NewDocument(reg, component.Options{})
}

func addButton(t *testing.T, doc *component.Document) (component.ID, *component.Component) {
	t.Helper()
	id, err := doc.Add(TypeName, "")
	require.NoError(t, err)
	c, ok := doc.Get(id)
	require.True(t, ok)
	return id, c
}

func TestDefaults(t *testing.T) {
	doc := newDoc(t)
	_, c := addButton(t, doc)
	for _, r := range Roles {
		assert.Equal(t, "", Resource(c.Properties, r))
		assert.Equal(t, 1.0, Opacity(c.Properties, r))
		assert.Equal(t, colour.TransparentBlack, Colour(c.Properties, r))
	}
	assert.True(t, KeepsProportions(c.Properties))
	assert.Equal(t, "new button", c.Name())
	assert.Equal(t, "newButton", c.MemberName())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "resource0", string(ResourceKey(Normal)))
	assert.Equal(t, "imageOpacity1", string(OpacityKey(Over)))
	assert.Equal(t, "imageColour2", string(ColourKey(Down)))
	assert.Equal(t, "Role(7)", Role(7).String())
}

func TestUndoableSetters(t *testing.T) {
	doc := newDoc(t)
	id, c := addButton(t, doc)

	require.True(t, SetOpacity(doc, id, Over, 0.25, true))
	assert.Equal(t, 0.25, Opacity(c.Properties, Over))
	assert.Equal(t, DescOpacity, doc.History().UndoDescription())

	require.True(t, SetColour(doc, id, Down, 0xff336699, true))
	assert.Equal(t, DescColour, doc.History().UndoDescription())

	require.True(t, SetKeepProportions(doc, id, false, true))
	assert.Equal(t, DescProportions, doc.History().UndoDescription())

	require.True(t, doc.Undo())
	require.True(t, doc.Undo())
	require.True(t, doc.Undo())
	assert.Equal(t, 1.0, Opacity(c.Properties, Over))
	assert.Equal(t, colour.TransparentBlack, Colour(c.Properties, Down))
	assert.True(t, KeepsProportions(c.Properties))
}

func TestSetResourceSkipsUnchanged(t *testing.T) {
	doc := newDoc(t)
	id, c := addButton(t, doc)

	assert.False(t, SetResource(doc, id, Normal, "", true))
	assert.Equal(t, 0, doc.History().Len())

	require.True(t, SetResource(doc, id, Normal, "knob_png", true))
	assert.Equal(t, DescResource, doc.History().UndoDescription())
	assert.False(t, SetResource(doc, id, Normal, "knob_png", true))
	assert.Equal(t, 1, doc.History().Len())

	// Direct sets bypass the log.
	require.True(t, SetResource(doc, id, Over, "hover_png", false))
	assert.Equal(t, "hover_png", Resource(c.Properties, Over))
	assert.Equal(t, 1, doc.History().Len())
}

func TestSettersOnMissingComponent(t *testing.T) {
	doc := newDoc(t)
	assert.False(t, SetOpacity(doc, 42, Normal, 0.5, true))
	assert.False(t, SetResource(doc, 42, Normal, "x", false))
}

func TestXMLRoundTrip(t *testing.T) {
	doc := newDoc(t)
	id, _ := addButton(t, doc)
	doc.AddResource("knob_png", 2048)
	require.True(t, SetResource(doc, id, Normal, "knob_png", true))
	require.True(t, SetOpacity(doc, id, Normal, 0.5, true))
	require.True(t, SetColour(doc, id, Over, 0x80ff0000, true))
	require.True(t, SetKeepProportions(doc, id, false, true))

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	out := buf.String()
	assert.Contains(t, out, `keepProportions="0"`)
	assert.Contains(t, out, `resourceNormal="knob_png"`)
	assert.Contains(t, out, `opacityNormal="0.5"`)
	assert.Contains(t, out, `colourNormal="0"`)
	assert.Contains(t, out, `colourOver="80ff0000"`)
	// Base attributes come first.
	assert.Less(t, strings.Index(out, `name="new button"`), strings.Index(out, `keepProportions=`))

	loaded := newDoc(t)
	require.NoError(t, loaded.Load(strings.NewReader(out)))
	comps := loaded.Components()
	require.Len(t, comps, 1)
	s := comps[0].Properties
	assert.Equal(t, "knob_png", Resource(s, Normal))
	assert.Equal(t, 0.5, Opacity(s, Normal))
	assert.Equal(t, colour.Colour(0x80ff0000), Colour(s, Over))
	assert.False(t, KeepsProportions(s))
	assert.Equal(t, 1.0, Opacity(s, Down))
}

func TestRestoreMalformedColourFallsBack(t *testing.T) {
	doc := newDoc(t)
	src := `<JUCER_COMPONENT>
  <IMAGEBUTTON name="b" colourNormal="not-a-color" opacityOver="0.3"/>
</JUCER_COMPONENT>`
	require.NoError(t, doc.Load(strings.NewReader(src)))
	s := doc.Components()[0].Properties
	assert.Equal(t, colour.TransparentBlack, Colour(s, Normal))
	assert.Equal(t, 0.3, Opacity(s, Over))
	assert.True(t, KeepsProportions(s))
}

func TestCreationCode(t *testing.T) {
	doc := newDoc(t)
	id, _ := addButton(t, doc)
	require.True(t, SetResource(doc, id, Normal, "knob_png", false))
	require.True(t, SetOpacity(doc, id, Over, 0.5, false))
	require.True(t, SetColour(doc, id, Down, 0xffff0000, false))

	code := doc.GenerateCode("Panel")
	indent := strings.Repeat(" ", len("newButton")+13)
	want := "addAndMakeVisible (newButton = new ImageButton (\"new button\"));\n" +
		"newButton->setBounds (0, 0, 150, 24);\n" +
		"\n" +
		"newButton->setImages (false, true, true,\n" +
		indent + "ImageCache::getFromMemory (knob_png, knob_pngSize), 1.000f, Colour (0x00000000),\n" +
		indent + "Image(), 0.500f, Colour (0x00000000),\n" +
		indent + "Image(), 1.000f, Colours::red);\n"
	assert.Equal(t, want, code.ConstructorCode)
	assert.Equal(t, "ScopedPointer<ImageButton> newButton;\n", code.MemberDeclarations)

	problems, err := codegen.NewValidator().CheckStatements(context.Background(), code.ConstructorCode)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestUpdateImages(t *testing.T) {
	doc := newDoc(t)
	id, c := addButton(t, doc)
	sink := &recordingSink{}
	c.Images = sink
	doc.AddResource("knob_png", 100)

	require.True(t, SetResource(doc, id, Normal, "knob_png", true))
	require.Len(t, sink.calls, 1)
	got := sink.calls[0]
	assert.True(t, got.keep)
	assert.Equal(t, component.Image{Resource: "knob_png", Size: 100, Opacity: 1}, got.normal)
	assert.Equal(t, component.Image{Opacity: 1}, got.over)

	// A resource the document does not have resolves to no image.
	require.True(t, SetResource(doc, id, Over, "missing_png", true))
	assert.Equal(t, "", sink.calls[len(sink.calls)-1].over.Resource)
}

func TestEditableProperties(t *testing.T) {
	doc := newDoc(t)
	id, _ := addButton(t, doc)

	props := EditableProperties(doc, id)
	require.Len(t, props, 5+1+9)

	var names []string
	for _, p := range props[5:] {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{
		"proportional",
		"normal image", "opacity", "overlay col.",
		"over image", "opacity", "overlay col.",
		"down image", "opacity", "overlay col.",
	}, names)

	toggle, ok := props[5].(*propedit.Toggle)
	require.True(t, ok)
	assert.Equal(t, "maintain image proportions", toggle.Text())
	require.True(t, toggle.Toggle())
	assert.Equal(t, "scale to fit", toggle.Text())
	assert.Equal(t, DescProportions, doc.History().UndoDescription())
}
