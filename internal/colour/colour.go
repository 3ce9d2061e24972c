// Package colour implements the 32-bit ARGB colour used by component
// properties and appearance schemes, and its text encoding.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalid is returned by Parse for text that is not a colour.
var ErrInvalid = errors.New("invalid colour")

// Colour is a packed 0xAARRGGBB value. The zero value is transparent black.
type Colour uint32

// Some fixed colours.
const (
	TransparentBlack Colour = 0x00000000
	TransparentWhite Colour = 0x00ffffff
	Black            Colour = 0xff000000
	White            Colour = 0xffffffff
)

// FromARGB packs four channels.
func FromARGB(a, r, g, b uint8) Colour {
	return Colour(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromRGB returns an opaque colour.
func FromRGB(r, g, b uint8) Colour {
	return FromARGB(0xff, r, g, b)
}

// FromRGBA returns a colour with alpha given in [0, 1].
func FromRGBA(r, g, b uint8, alpha float64) Colour {
	return FromARGB(alphaByte(alpha), r, g, b)
}

func (c Colour) A() uint8 { return uint8(c >> 24) }
func (c Colour) R() uint8 { return uint8(c >> 16) }
func (c Colour) G() uint8 { return uint8(c >> 8) }
func (c Colour) B() uint8 { return uint8(c) }

// Alpha returns the alpha channel in [0, 1].
func (c Colour) Alpha() float64 {
	return float64(c.A()) / 255.0
}

// IsTransparent reports whether alpha is zero.
func (c Colour) IsTransparent() bool {
	return c.A() == 0
}

// WithAlpha replaces the alpha channel.
func (c Colour) WithAlpha(alpha float64) Colour {
	return FromARGB(alphaByte(alpha), c.R(), c.G(), c.B())
}

// String is the persisted form: lowercase hex of the packed value with no
// padding, so transparent black is "0" and opaque red is "ffff0000".
func (c Colour) String() string {
	return strconv.FormatUint(uint64(c), 16)
}

// Hex8 is the zero-padded 8-digit form used in generated code.
func (c Colour) Hex8() string {
	return fmt.Sprintf("%08x", uint32(c))
}

// Parse is the inverse of String. It accepts 1 to 8 hex digits with an
// optional "0x" prefix. A "#" prefix with exactly 6 digits is read as an
// opaque #RRGGBB colour; with 8 digits it is #AARRGGBB.
func Parse(s string) (Colour, error) {
	text := strings.TrimSpace(s)
	opaque := false
	switch {
	case strings.HasPrefix(text, "#"):
		text = text[1:]
		opaque = len(text) == 6
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		text = text[2:]
	}
	if len(text) == 0 || len(text) > 8 {
		return TransparentBlack, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return TransparentBlack, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	c := Colour(v)
	if opaque {
		c |= 0xff000000
	}
	return c, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Colour {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Colorful converts the RGB channels, dropping alpha.
func (c Colour) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R()) / 255.0,
		G: float64(c.G()) / 255.0,
		B: float64(c.B()) / 255.0,
	}
}

// fromColorful packs a colorful colour with the given alpha byte.
func fromColorful(cc colorful.Color, a uint8) Colour {
	r, g, b := cc.Clamped().RGB255()
	return FromARGB(a, r, g, b)
}

// Brightness is the HSV value in [0, 1].
func (c Colour) Brightness() float64 {
	_, _, v := c.Colorful().Hsv()
	return v
}

// PerceivedBrightness weights the channels by how bright they look.
func (c Colour) PerceivedBrightness() float64 {
	cc := c.Colorful()
	return math.Sqrt(cc.R*cc.R*0.241 + cc.G*cc.G*0.691 + cc.B*cc.B*0.068)
}

// Contrasting moves the colour towards black or white, whichever
// contrasts with it, by amount in [0, 1]. Alpha is kept.
func (c Colour) Contrasting(amount float64) Colour {
	target := colorful.Color{R: 1, G: 1, B: 1}
	if c.PerceivedBrightness() >= 0.5 {
		target = colorful.Color{}
	}
	return fromColorful(c.Colorful().BlendRgb(target, clamp01(amount)), c.A())
}

// Interpolated blends towards other by t in [0, 1], alpha included.
func (c Colour) Interpolated(other Colour, t float64) Colour {
	t = clamp01(t)
	a := float64(c.A()) + (float64(other.A())-float64(c.A()))*t
	return fromColorful(c.Colorful().BlendRgb(other.Colorful(), t), uint8(math.Round(a)))
}

// OverlaidWith paints top over c, using top's alpha. The result keeps c's alpha.
func (c Colour) OverlaidWith(top Colour) Colour {
	return fromColorful(c.Colorful().BlendRgb(top.Colorful(), top.Alpha()), c.A())
}

// Tcell converts to a terminal colour. Fully transparent colours map to
// the terminal default.
func (c Colour) Tcell() tcell.Color {
	if c.IsTransparent() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}

func alphaByte(alpha float64) uint8 {
	return uint8(math.Round(clamp01(alpha) * 255.0))
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
