// Package palette provides color handling for cohort flow diagrams.
//
// Colors are passed around as lowercase "#rrggbb" hex strings. The package
// converts between hex and RGB channels, interpolates linearly in RGB space,
// generates gradient palettes, and resolves user-supplied color values
// (hex or SVG 1.1 named colors) against a fallback.
//
// The named-color table is golang.org/x/image/colornames: process-wide,
// read-only, initialized at program start.
package palette

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// InvalidColorError reports a color value that could not be parsed or
// resolved. Value holds the offending input as given by the caller.
type InvalidColorError struct {
	Value  string
	Reason string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q: %s", e.Value, e.Reason)
}

// HexToRGB converts a "#rrggbb" hex string to its RGB channels.
// The leading "#" is optional. An 8-digit "#rrggbbaa" input is accepted;
// the alpha channel is discarded. Any other length, or a non-hex digit,
// returns an *InvalidColorError.
func HexToRGB(hex string) (r, g, b uint8, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) == 8 {
		s = s[:6]
	}
	if len(s) != 6 {
		return 0, 0, 0, &InvalidColorError{Value: hex, Reason: "hex colors must have 6 digits"}
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, perr := strconv.ParseUint(s[2*i:2*i+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, &InvalidColorError{Value: hex, Reason: "not a hexadecimal number"}
		}
		ch[i] = uint8(v)
	}
	return ch[0], ch[1], ch[2], nil
}

// RGBToHex converts RGB channels to a lowercase "#rrggbb" string.
// For any valid lowercase 6-digit hex x, RGBToHex(HexToRGB(x)) == x.
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Interpolate blends two hex colors linearly per RGB channel.
// t=0 yields start, t=1 yields end. t is not clamped; callers guarantee
// the [0, 1] range.
func Interpolate(start, end string, t float64) (string, error) {
	cs, err := parseHex(start)
	if err != nil {
		return "", err
	}
	ce, err := parseHex(end)
	if err != nil {
		return "", err
	}
	return cs.BlendRgb(ce, t).Hex(), nil
}

// Gradient returns n colors blending linearly from start to end.
// n=1 returns just the start color; for n>1 the first element is start,
// the last is end, and the rest are evenly spaced between them.
// Endpoints may be hex strings or named colors.
func Gradient(start, end string, n int) ([]string, error) {
	s, err := Resolve(start, "", true)
	if err != nil {
		return nil, err
	}
	if n <= 1 {
		return []string{s}, nil
	}
	e, err := Resolve(end, "", true)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		c, err := Interpolate(s, e, float64(i)/float64(n-1))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Resolve normalizes a user-supplied color value to a lowercase "#rrggbb"
// string. An empty value falls back to def. Hex strings (leading "#") are
// always accepted; named colors only when allowNamed is true. Anything
// else returns an *InvalidColorError.
func Resolve(value, def string, allowNamed bool) (string, error) {
	v := value
	if v == "" {
		v = def
	}
	if !strings.HasPrefix(v, "#") {
		if !allowNamed {
			return "", &InvalidColorError{Value: v, Reason: "named colors are disabled, use hex colors like #88ccff"}
		}
		c, ok := colornames.Map[strings.ToLower(v)]
		if !ok {
			return "", &InvalidColorError{Value: v, Reason: "not a hex color or a recognized color name"}
		}
		return RGBToHex(c.R, c.G, c.B), nil
	}
	r, g, b, err := HexToRGB(v)
	if err != nil {
		return "", err
	}
	return RGBToHex(r, g, b), nil
}

// Names returns the sorted list of recognized color name tokens.
func Names() []string {
	return colornames.Names
}

func parseHex(hex string) (colorful.Color, error) {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}, nil
}
