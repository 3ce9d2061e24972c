package serial

import (
	"testing"

	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/property"
	"github.com/bethropolis/compedit/internal/xmldoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{Attr: "keepProportions", Key: "keepImageProp", Default: property.Bool(true)},
	{Attr: "resourceNormal", Key: "resource0", Default: property.String("")},
	{Attr: "opacityNormal", Key: "imageOpacity0", Default: property.Float(1.0)},
	{Attr: "colourNormal", Key: "imageColour0", Default: property.Colour(colour.TransparentBlack)},
}

func TestToAttributesFormatting(t *testing.T) {
	s := property.NewStore()
	s.Set("keepImageProp", property.Bool(false))
	s.Set("resource0", property.String("knob_png"))
	s.Set("imageOpacity0", property.Float(0.25))
	s.Set("imageColour0", property.Colour(colour.FromARGB(0x80, 0xff, 0, 0)))

	assert.Equal(t, []xmldoc.Attr{
		{Name: "keepProportions", Value: "0"},
		{Name: "resourceNormal", Value: "knob_png"},
		{Name: "opacityNormal", Value: "0.25"},
		{Name: "colourNormal", Value: "80ff0000"},
	}, testSchema.ToAttributes(s))
}

func TestToAttributesUsesDefaultsForAbsentKeys(t *testing.T) {
	attrs := testSchema.ToAttributes(property.NewStore())
	assert.Equal(t, "1", attrs[0].Value)
	assert.Equal(t, "", attrs[1].Value)
	assert.Equal(t, "1", attrs[2].Value)
	assert.Equal(t, "0", attrs[3].Value)
}

func TestRoundTrip(t *testing.T) {
	src := property.NewStore()
	src.Set("keepImageProp", property.Bool(false))
	src.Set("resource0", property.String("a b & c"))
	src.Set("imageOpacity0", property.Float(1.0/3.0))
	src.Set("imageColour0", property.Colour(0x12345678))

	el := xmldoc.NewElement("IMAGEBUTTON")
	testSchema.WriteTo(el, src)

	parsed, err := xmldoc.ParseString(el.String())
	require.NoError(t, err)

	dst := property.NewStore()
	assert.Zero(t, testSchema.ReadFrom(parsed, dst))
	for _, key := range testSchema.Keys() {
		assert.True(t, src.Get(key, property.Value{}).Equal(dst.Get(key, property.Value{})), "key %s", key)
	}
}

func TestMalformedValuesFallBackToDefault(t *testing.T) {
	el := xmldoc.NewElement("IMAGEBUTTON")
	el.SetAttribute("colourNormal", "not-a-color")
	el.SetAttribute("opacityNormal", "very")
	el.SetAttribute("resourceNormal", "ok")
	el.SetAttribute("someFutureAttribute", "ignored")

	s := property.NewStore()
	assert.Equal(t, 2, testSchema.ReadFrom(el, s))

	assert.Equal(t, colour.TransparentBlack, s.GetColour("imageColour0", colour.White))
	assert.Equal(t, 1.0, s.GetFloat("imageOpacity0", 0))
	assert.Equal(t, "ok", s.GetString("resource0", ""))
	assert.True(t, s.GetBool("keepImageProp", false))
	assert.False(t, s.Has("someFutureAttribute"))
}

func TestLoadDoesNotNotify(t *testing.T) {
	s := property.NewStore()
	notified := false
	s.AddObserver(property.ObserverFunc(func(property.Key, property.Value, property.Value) {
		notified = true
	}))
	testSchema.FromAttributes([]xmldoc.Attr{{Name: "opacityNormal", Value: "0.5"}}, s)
	assert.False(t, notified)
	assert.Equal(t, 0.5, s.GetFloat("imageOpacity0", 1))
}
