// Package colorutil parses color notations and derives palettes from them.
package colorutil

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

var namedColors = map[string]RGB{
	"black":   {0x00, 0x00, 0x00},
	"white":   {0xFF, 0xFF, 0xFF},
	"red":     {0xFF, 0x00, 0x00},
	"green":   {0x00, 0x80, 0x00},
	"lime":    {0x00, 0xFF, 0x00},
	"blue":    {0x00, 0x00, 0xFF},
	"yellow":  {0xFF, 0xFF, 0x00},
	"cyan":    {0x00, 0xFF, 0xFF},
	"magenta": {0xFF, 0x00, 0xFF},
	"orange":  {0xFF, 0xA5, 0x00},
	"purple":  {0x80, 0x00, 0x80},
	"violet":  {0xEE, 0x82, 0xEE},
	"pink":    {0xFF, 0xC0, 0xCB},
	"brown":   {0xA5, 0x2A, 0x2A},
	"gray":    {0x80, 0x80, 0x80},
	"grey":    {0x80, 0x80, 0x80},
	"silver":  {0xC0, 0xC0, 0xC0},
	"gold":    {0xFF, 0xD7, 0x00},
	"navy":    {0x00, 0x00, 0x80},
	"teal":    {0x00, 0x80, 0x80},
	"maroon":  {0x80, 0x00, 0x00},
	"olive":   {0x80, 0x80, 0x00},
	"indigo":  {0x4B, 0x00, 0x82},
	"coral":   {0xFF, 0x7F, 0x50},
	"salmon":  {0xFA, 0x80, 0x72},
	"blurple": {0x58, 0x65, 0xF2},
}

var (
	hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	// The rgb( and ) delimiters must appear as a pair or not at all.
	tripletPattern = regexp.MustCompile(`^(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})$`)
	rgbFuncPattern = regexp.MustCompile(`^rgb\s*\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
)

// Parse accepts hex (#RGB, #RRGGBB, with or without '#'), decimal triples
// ("255, 0, 0" or "rgb(255, 0, 0)"), and common color names.
func Parse(input string) (RGB, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return RGB{}, fmt.Errorf("empty color")
	}

	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	if m := hexPattern.FindStringSubmatch(s); m != nil {
		hex := m[1]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return RGB{}, fmt.Errorf("invalid hex color '%s'", input)
		}
		return FromInt(int(v)), nil
	}

	m := tripletPattern.FindStringSubmatch(s)
	if m == nil {
		m = rgbFuncPattern.FindStringSubmatch(s)
	}
	if m != nil {
		var ch [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(m[i+1])
			if err != nil || v > 255 {
				return RGB{}, fmt.Errorf("invalid channel value '%s'", m[i+1])
			}
			ch[i] = uint8(v)
		}
		return RGB{ch[0], ch[1], ch[2]}, nil
	}

	return RGB{}, fmt.Errorf("unrecognized color '%s'", input)
}

// FromInt unpacks a 0xRRGGBB integer.
func FromInt(v int) RGB {
	return RGB{uint8(v >> 16 & 0xFF), uint8(v >> 8 & 0xFF), uint8(v & 0xFF)}
}

// Random returns a uniformly random color.
func Random() RGB {
	v := rand.Intn(0x1000000)
	return FromInt(v)
}

// Hex renders the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Int packs the color as 0xRRGGBB, the form Discord embeds take.
func (c RGB) Int() int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}

// HSL returns hue in degrees [0, 360) and saturation/lightness in [0, 1].
func (c RGB) HSL() (h, s, l float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		return 0, 0, l
	}

	d := max - min
	if l > 0.5 {
		s = d / (2 - max - min)
	} else {
		s = d / (max + min)
	}

	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, l
}

// HSV returns hue in degrees [0, 360) and saturation/value in [0, 1].
func (c RGB) HSV() (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max

	if max > 0 {
		s = (max - min) / max
	}
	if max == min {
		return 0, s, v
	}

	d := max - min
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h * 60, s, v
}

// FromHSL builds a color from hue in degrees and saturation/lightness in
// [0, 1]. Hue wraps; saturation and lightness are clamped.
func FromHSL(h, s, l float64) RGB {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360
	s = clamp01(s)
	l = clamp01(l)

	if s == 0 {
		v := uint8(math.Round(l * 255))
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: uint8(math.Round(hueToChannel(p, q, h+1.0/3) * 255)),
		G: uint8(math.Round(hueToChannel(p, q, h) * 255)),
		B: uint8(math.Round(hueToChannel(p, q, h-1.0/3) * 255)),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func (c RGB) rotate(degrees float64) RGB {
	h, s, l := c.HSL()
	return FromHSL(h+degrees, s, l)
}

// Complementary returns the color opposite on the hue wheel.
func (c RGB) Complementary() RGB {
	return c.rotate(180)
}

// Analogous returns the two neighbors 30 degrees to either side.
func (c RGB) Analogous() [2]RGB {
	return [2]RGB{c.rotate(-30), c.rotate(30)}
}

// Triadic returns the two colors completing an even three-way split.
func (c RGB) Triadic() [2]RGB {
	return [2]RGB{c.rotate(120), c.rotate(240)}
}

// Tetradic returns the three colors completing an even four-way split.
func (c RGB) Tetradic() [3]RGB {
	return [3]RGB{c.rotate(90), c.rotate(180), c.rotate(270)}
}

// Monochromatic returns n lightness steps of the same hue, darkest first.
func (c RGB) Monochromatic(n int) []RGB {
	if n <= 0 {
		return nil
	}

	h, s, _ := c.HSL()
	out := make([]RGB, n)
	for i := 0; i < n; i++ {
		l := float64(i+1) / float64(n+1)
		out[i] = FromHSL(h, s, l)
	}
	return out
}

// Lighten raises lightness by amount in [0, 1].
func (c RGB) Lighten(amount float64) RGB {
	h, s, l := c.HSL()
	return FromHSL(h, s, l+amount)
}

// Darken lowers lightness by amount in [0, 1].
func (c RGB) Darken(amount float64) RGB {
	h, s, l := c.HSL()
	return FromHSL(h, s, l-amount)
}
