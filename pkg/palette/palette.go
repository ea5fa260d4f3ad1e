// Package palette provides brick color tables and nearest-color quantization.
//
// Two independent tables exist: a small curated palette used for Euclidean
// quantization, and a larger extended code table used to resolve literal
// LDraw-style codes found in placement documents. They are deliberately
// separate lookup services and must not be mixed for the same document.
package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Packed returns the color packed as 0xRRGGBB.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromPacked unpacks the low 24 bits of v into an RGB.
func FromPacked(v uint32) RGB {
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// ParseHex parses a "#rrggbb" or "rrggbb" color string.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex color %q", s)
	}
	return FromPacked(uint32(v)), nil
}

// Entry is one curated palette color.
type Entry struct {
	Code  int
	Name  string
	Color RGB
}

// Curated is the ordered quantization palette. The order is part of the
// quantizer contract: on a distance tie the earlier entry wins.
var Curated = []Entry{
	{4, "Red", RGB{0xB4, 0x00, 0x00}},
	{0, "Black", RGB{0x1B, 0x2A, 0x34}},
	{15, "White", RGB{0xF4, 0xF4, 0xF4}},
	{2, "Green", RGB{0x00, 0x85, 0x2B}},
	{1, "Blue", RGB{0x1E, 0x5A, 0xA8}},
	{14, "Yellow", RGB{0xFA, 0xC8, 0x0A}},
	{7, "Light-Gray", RGB{0x8A, 0x92, 0x8D}},
	{8, "Dark-Gray", RGB{0x54, 0x59, 0x55}},
	{19, "Tan", RGB{0xD7, 0xBA, 0x8C}},
	{28, "Dark-Tan", RGB{0x89, 0x7D, 0x62}},
	{25, "Orange", RGB{0xD6, 0x79, 0x23}},
	{320, "Dark-Red", RGB{0x72, 0x00, 0x12}},
}

// Quantizer maps arbitrary colors to the nearest entry of a fixed palette.
type Quantizer struct {
	entries []Entry
}

// NewQuantizer builds a quantizer over the given ordered entries.
func NewQuantizer(entries []Entry) *Quantizer {
	return &Quantizer{entries: entries}
}

// NewCuratedQuantizer builds a quantizer over the curated palette.
func NewCuratedQuantizer() *Quantizer {
	return NewQuantizer(Curated)
}

// NearestCode returns the code of the palette entry closest to c by squared
// Euclidean distance. Channel deltas are computed in integer space so equal
// distances compare exactly; the scan uses strict less-than comparison, so
// the first entry at minimal distance wins.
func (q *Quantizer) NearestCode(c RGB) int {
	best := 0
	bestDist := math.MaxInt
	for _, e := range q.entries {
		dr := int(c.R) - int(e.Color.R)
		dg := int(c.G) - int(e.Color.G)
		db := int(c.B) - int(e.Color.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			best = e.Code
		}
	}
	return best
}
