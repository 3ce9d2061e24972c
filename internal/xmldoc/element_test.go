package xmldoc

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesKeepOrder(t *testing.T) {
	e := NewElement("IMAGEBUTTON")
	e.SetAttribute("name", "button")
	e.SetDoubleAttribute("opacityNormal", 0.5)
	e.SetBoolAttribute("keepProportions", true)
	e.SetAttribute("name", "renamed")

	assert.Equal(t, `<IMAGEBUTTON name="renamed" opacityNormal="0.5" keepProportions="1"/>`, e.String())

	e.RemoveAttribute("opacityNormal")
	assert.False(t, e.HasAttribute("opacityNormal"))
}

func TestTypedAttributeDefaults(t *testing.T) {
	e := NewElement("X")
	e.SetAttribute("bad", "zzz")
	e.SetAttribute("yes", "yes")
	e.SetAttribute("zero", "0")
	e.SetIntAttribute("n", 42)

	assert.Equal(t, 1.0, e.DoubleAttribute("missing", 1.0))
	assert.Equal(t, 1.0, e.DoubleAttribute("bad", 1.0))
	assert.Equal(t, 7, e.IntAttribute("bad", 7))
	assert.Equal(t, 42, e.IntAttribute("n", 0))
	assert.True(t, e.BoolAttribute("missing", true))
	assert.True(t, e.BoolAttribute("yes", false))
	assert.False(t, e.BoolAttribute("zero", true))
	assert.Equal(t, "dflt", e.StringAttribute("missing", "dflt"))
}

func TestParseAndWriteRoundTrip(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
  <dict>
    <key>CFBundleName</key>
    <string>A &amp; B</string>
    <true/>
  </dict>
</plist>`

	root, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, "plist", root.Tag)
	dict := root.FirstChildNamed("dict")
	require.NotNil(t, dict)
	require.Len(t, dict.Elements(), 3)

	key := dict.ChildrenNamed("key")[0]
	assert.Equal(t, "CFBundleName", key.AllSubText())
	assert.Equal(t, "A & B", key.NextElement().AllSubText())
	assert.Nil(t, dict.Elements()[2].NextElement())

	var buf bytes.Buffer
	require.NoError(t, root.Write(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, buf.String(), "<string>A &amp; B</string>")

	again, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, root.String(), again.String())
}

func TestParseErrors(t *testing.T) {
	_, err := ParseString("")
	assert.ErrorIs(t, err, ErrNoRoot)

	_, err = ParseString("<a><b></a>")
	assert.Error(t, err)
}

func TestChildManipulation(t *testing.T) {
	root := NewElement("ROOT")
	a := root.NewChild("A")
	b := root.NewChild("B")
	root.AddText("tail")

	assert.Equal(t, b, a.NextElement())
	assert.Equal(t, root, a.Parent())

	other := NewElement("OTHER")
	other.AddChild(a)
	assert.Equal(t, []*Element{b}, root.Elements())
	assert.Equal(t, other, a.Parent())

	assert.True(t, root.RemoveChild(b))
	assert.False(t, root.RemoveChild(b))
	assert.Equal(t, "tail", root.AllSubText())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	root := NewElement("COLOUR_SCHEME")
	root.NewChild("COLOUR").SetAttribute("name", "Main Window Bkgd")
	require.NoError(t, root.WriteFile(path))

	back, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Main Window Bkgd", back.FirstChildNamed("COLOUR").StringAttribute("name", ""))

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}
