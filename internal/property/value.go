// Package property holds the typed key/value bag attached to every
// component in a layout.
package property

import (
	"fmt"
	"strconv"

	"github.com/bethropolis/compedit/internal/colour"
)

// Key names one editable attribute of a component.
type Key string

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNone Kind = iota
	KindString
	KindFloat
	KindBool
	KindColour
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindColour:
		return "colour"
	default:
		return "none"
	}
}

// Value is a tagged union of the property types. The zero Value has KindNone.
type Value struct {
	kind Kind
	s    string
	f    float64
	b    bool
	c    colour.Colour
}

func String(s string) Value        { return Value{kind: KindString, s: s} }
func Float(f float64) Value        { return Value{kind: KindFloat, f: f} }
func Bool(b bool) Value            { return Value{kind: KindBool, b: b} }
func Colour(c colour.Colour) Value { return Value{kind: KindColour, c: c} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNone reports whether the value holds nothing.
func (v Value) IsNone() bool { return v.kind == KindNone }

// AsString returns the string, or def when the value is not a string.
func (v Value) AsString(def string) string {
	if v.kind != KindString {
		return def
	}
	return v.s
}

// AsFloat returns the float, or def when the value is not a float.
func (v Value) AsFloat(def float64) float64 {
	if v.kind != KindFloat {
		return def
	}
	return v.f
}

// AsBool returns the bool, or def when the value is not a bool.
func (v Value) AsBool(def bool) bool {
	if v.kind != KindBool {
		return def
	}
	return v.b
}

// AsColour returns the colour, or def when the value is not a colour.
func (v Value) AsColour(def colour.Colour) colour.Colour {
	if v.kind != KindColour {
		return def
	}
	return v.c
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == other.s
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindColour:
		return v.c == other.c
	default:
		return true
	}
}

// Interface returns the payload as a plain Go value (nil for KindNone).
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	case KindColour:
		return v.c
	default:
		return nil
	}
}

// Text is the persisted form of the value: floats use the shortest
// decimal that reads back exactly, booleans are "1"/"0", colours use
// colour.Colour.String.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		if v.b {
			return "1"
		}
		return "0"
	case KindColour:
		return v.c.String()
	default:
		return ""
	}
}

// ParseText reads text written by Text back into a value of the given kind.
func ParseText(kind Kind, text string) (Value, error) {
	switch kind {
	case KindString:
		return String(text), nil
	case KindFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float %q: %w", text, err)
		}
		return Float(f), nil
	case KindBool:
		switch text {
		case "1", "true", "True", "TRUE", "yes":
			return Bool(true), nil
		case "0", "false", "False", "FALSE", "no":
			return Bool(false), nil
		}
		return Value{}, fmt.Errorf("invalid bool %q", text)
	case KindColour:
		c, err := colour.Parse(text)
		if err != nil {
			return Value{}, err
		}
		return Colour(c), nil
	default:
		return Value{}, fmt.Errorf("cannot parse value of kind %v", kind)
	}
}

func (v Value) String() string {
	if v.kind == KindNone {
		return "<none>"
	}
	return fmt.Sprintf("%v(%s)", v.kind, v.Text())
}
