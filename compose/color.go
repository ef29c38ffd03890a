package compose

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrBadColor is returned when a hex color string cannot be parsed.
var ErrBadColor = errors.New("gridzip: invalid hex color")

// ParseHexColor parses CSS-style hex colors: #RGB, #RRGGBB, and
// #RRGGBBAA, with or without the leading hash. Three- and six-digit
// forms are fully opaque.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 3:
		r, okR := hexNibble(hex[0])
		g, okG := hexNibble(hex[1])
		b, okB := hexNibble(hex[2])
		if !okR || !okG || !okB {
			return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return color.NRGBA{R: r * 0x11, G: g * 0x11, B: b * 0x11, A: 0xFF}, nil
	case 6, 8:
		var bytes [4]uint8
		bytes[3] = 0xFF
		for i := 0; i*2 < len(hex); i++ {
			hi, okHi := hexNibble(hex[i*2])
			lo, okLo := hexNibble(hex[i*2+1])
			if !okHi || !okLo {
				return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
			}
			bytes[i] = hi<<4 | lo
		}
		return color.NRGBA{R: bytes[0], G: bytes[1], B: bytes[2], A: bytes[3]}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
}

// hexNibble decodes one hex digit.
func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
