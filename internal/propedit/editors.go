package propedit

import (
	"math"
	"strconv"
	"strings"

	"github.com/bethropolis/compedit/internal/colour"
	"github.com/bethropolis/compedit/internal/property"
)

// Slider edits a float within [Min, Max], snapped to Interval.
type Slider struct {
	*Binding
	Min, Max, Interval float64
}

// NewSlider binds a float property. An Interval <= 0 means no snapping.
func NewSlider(t Target, min, max, interval float64) *Slider {
	if t.Default.Kind() != property.KindFloat {
		t.Default = property.Float(min)
	}
	s := &Slider{Binding: newBinding(t), Min: min, Max: max, Interval: interval}
	s.normalise = func(v property.Value) (property.Value, bool) {
		f := v.AsFloat(min)
		if math.IsNaN(f) {
			return v, false
		}
		return property.Float(s.constrain(f)), true
	}
	s.format = func(v property.Value) string {
		return strconv.FormatFloat(v.AsFloat(min), 'f', s.decimals(), 64)
	}
	return s
}

func (s *Slider) constrain(f float64) float64 {
	if s.Interval > 0 {
		f = s.Min + math.Round((f-s.Min)/s.Interval)*s.Interval
		// Rounding the step count can leave float noise such as 0.30000000000000004.
		f, _ = strconv.ParseFloat(strconv.FormatFloat(f, 'f', s.decimals(), 64), 64)
	}
	return math.Max(s.Min, math.Min(s.Max, f))
}

func (s *Slider) decimals() int {
	if s.Interval <= 0 || s.Interval >= 1 {
		return 3
	}
	d := int(math.Ceil(-math.Log10(s.Interval)))
	if d < 0 {
		return 0
	}
	return d
}

// Value is the current float.
func (s *Slider) Value() float64 { return s.Current().AsFloat(s.Min) }

// Step moves the slider by delta intervals (or delta/100 of the range
// when there is no interval).
func (s *Slider) Step(delta int) bool {
	step := s.Interval
	if step <= 0 {
		step = (s.Max - s.Min) / 100
	}
	return s.Commit(property.Float(s.Value() + float64(delta)*step))
}

// SetText parses text as a number and commits it, clamped and snapped.
func (s *Slider) SetText(text string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return false
	}
	return s.Commit(property.Float(f))
}

// Toggle edits a bool shown as one of two labels.
type Toggle struct {
	*Binding
	OnText, OffText string
}

// NewToggle binds a bool property.
func NewToggle(t Target, onText, offText string) *Toggle {
	if t.Default.Kind() != property.KindBool {
		t.Default = property.Bool(false)
	}
	tg := &Toggle{Binding: newBinding(t), OnText: onText, OffText: offText}
	tg.format = func(v property.Value) string {
		if v.AsBool(false) {
			return onText
		}
		return offText
	}
	return tg
}

// Value is the current state.
func (t *Toggle) Value() bool { return t.Current().AsBool(false) }

// Toggle flips the value.
func (t *Toggle) Toggle() bool { return t.Commit(property.Bool(!t.Value())) }

// ColourPicker edits an ARGB colour.
type ColourPicker struct {
	*Binding
}

// NewColourPicker binds a colour property.
func NewColourPicker(t Target) *ColourPicker {
	if t.Default.Kind() != property.KindColour {
		t.Default = property.Colour(colour.TransparentBlack)
	}
	return &ColourPicker{Binding: newBinding(t)}
}

// Value is the current colour.
func (p *ColourPicker) Value() colour.Colour { return p.Current().AsColour(colour.TransparentBlack) }

// SetText parses text as a colour and commits it. Malformed text is
// rejected without touching the log.
func (p *ColourPicker) SetText(text string) bool {
	c, err := colour.Parse(text)
	if err != nil {
		return false
	}
	return p.Commit(property.Colour(c))
}

// NoResource is how the empty resource is displayed.
const NoResource = "<< none >>"

// ResourcePicker chooses one of the document's resources, or none.
type ResourcePicker struct {
	*Binding
}

// NewResourcePicker binds a string property naming a resource.
func NewResourcePicker(t Target) *ResourcePicker {
	if t.Default.Kind() != property.KindString {
		t.Default = property.String("")
	}
	p := &ResourcePicker{Binding: newBinding(t)}
	p.format = func(v property.Value) string {
		if s := v.AsString(""); s != "" {
			return s
		}
		return NoResource
	}
	return p
}

// Choices lists the selectable values; "" (none) comes first.
func (p *ResourcePicker) Choices() []string {
	return append([]string{""}, p.target.Doc.Resources()...)
}

// Cycle moves the selection delta places through Choices, wrapping round.
// A current value that is not a known resource counts as none.
func (p *ResourcePicker) Cycle(delta int) bool {
	choices := p.Choices()
	cur := p.Current().AsString("")
	idx := 0
	for i, c := range choices {
		if c == cur {
			idx = i
			break
		}
	}
	n := len(choices)
	next := ((idx+delta)%n + n) % n
	return p.Commit(property.String(choices[next]))
}

// Text edits a free string.
type Text struct {
	*Binding
}

// NewText binds a string property.
func NewText(t Target) *Text {
	if t.Default.Kind() != property.KindString {
		t.Default = property.String("")
	}
	return &Text{Binding: newBinding(t)}
}

// SetText commits s.
func (t *Text) SetText(s string) bool { return t.Commit(property.String(s)) }
