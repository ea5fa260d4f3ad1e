// Package ldraw encodes occupancy grids as placement records and serializes
// them to the line-oriented LDraw-style placement document format.
package ldraw

import (
	"strconv"
	"strings"

	"github.com/Faultbox/brickforge/pkg/geom"
	"github.com/Faultbox/brickforge/pkg/palette"
)

// StudSpacing is the footprint unit in document units: one stud is 20 LDU
// (8 mm at 0.4 mm per LDU).
const StudSpacing = 20.0

// DefaultColorCode is the palette code used for voxels with no sampled
// color (LDraw 71, light bluish gray).
const DefaultColorCode = 71

// Identity is the identity rotation matrix in row-major order.
var Identity = [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}

// Record is one part placement. Color is either a palette code (Direct
// false) or a literal 24-bit color (Direct true, RGB holds the low 24 bits
// and Code the full literal value as written in the document).
type Record struct {
	Position geom.Vec3
	Rotation [9]float64
	Code     int
	Direct   bool
	RGB      palette.RGB
	Part     string
}

// ColorToken renders the record's color as a document token: a decimal
// palette code, or the hex literal for direct colors. Direct tokens round
// trip byte for byte apart from letter case.
func (r Record) ColorToken() string {
	if r.Direct {
		return "0x" + strings.ToUpper(strconv.FormatUint(uint64(uint32(r.Code)), 16))
	}
	return strconv.Itoa(r.Code)
}
