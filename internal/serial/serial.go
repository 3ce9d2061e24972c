// Package serial converts between property stores and XML attributes.
// Loading never goes through the undo log: it populates a store directly,
// before any edit history exists.
package serial

import (
	"github.com/bethropolis/compedit/internal/logger"
	"github.com/bethropolis/compedit/internal/property"
	"github.com/bethropolis/compedit/internal/xmldoc"
)

// Field binds an XML attribute name to a property key. Default decides
// both the fallback value and the kind the attribute is parsed as.
type Field struct {
	Attr    string
	Key     property.Key
	Default property.Value
}

// Schema is the ordered list of fields a component type persists.
type Schema []Field

// Keys returns the property keys covered by the schema.
func (s Schema) Keys() []property.Key {
	keys := make([]property.Key, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// ToAttributes formats each field's current value in schema order.
// Absent keys and kind mismatches are written as the field default.
func (s Schema) ToAttributes(store *property.Store) []xmldoc.Attr {
	attrs := make([]xmldoc.Attr, 0, len(s))
	for _, f := range s {
		v := store.Get(f.Key, f.Default)
		attrs = append(attrs, xmldoc.Attr{Name: f.Attr, Value: v.Text()})
	}
	return attrs
}

// WriteTo sets the schema's attributes on el.
func (s Schema) WriteTo(el *xmldoc.Element, store *property.Store) {
	for _, a := range s.ToAttributes(store) {
		el.SetAttribute(a.Name, a.Value)
	}
}

// ReadFrom loads every field from el into store. Missing attributes load
// the default; malformed ones load the default and are counted in the
// returned number of fallbacks. Attributes outside the schema are ignored.
func (s Schema) ReadFrom(el *xmldoc.Element, store *property.Store) (fallbacks int) {
	for _, f := range s {
		if !el.HasAttribute(f.Attr) {
			store.Load(f.Key, f.Default)
			continue
		}
		text := el.StringAttribute(f.Attr, "")
		v, err := property.ParseText(f.Default.Kind(), text)
		if err != nil {
			logger.Warnf("Serializer: <%s %s=%q> is malformed (%v); using default %s",
				el.Tag, f.Attr, text, err, f.Default.Text())
			store.Load(f.Key, f.Default)
			fallbacks++
			continue
		}
		store.Load(f.Key, v)
	}
	return fallbacks
}

// FromAttributes is ReadFrom over a bare attribute list.
func (s Schema) FromAttributes(attrs []xmldoc.Attr, store *property.Store) int {
	el := xmldoc.NewElement("attributes")
	el.Attrs = append(el.Attrs, attrs...)
	return s.ReadFrom(el, store)
}
