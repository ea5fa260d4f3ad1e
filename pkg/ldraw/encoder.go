package ldraw

import (
	"github.com/Faultbox/brickforge/pkg/brick"
	"github.com/Faultbox/brickforge/pkg/geom"
	"github.com/Faultbox/brickforge/pkg/palette"
	"github.com/Faultbox/brickforge/pkg/voxel"
)

// ColorMode selects how sampled voxel colors become record colors.
type ColorMode int

// Color modes. ModePalette quantizes against the curated palette; ModeDirect
// embeds the literal RGB. The two are caller-selected alternatives, never
// combined in one document.
const (
	ModePalette ColorMode = iota
	ModeDirect
)

// Encoder maps an occupancy grid to placement records.
type Encoder struct {
	Quantizer   *palette.Quantizer
	Mode        ColorMode
	DefaultCode int
}

// NewEncoder returns an encoder quantizing to the curated palette with the
// standard default code.
func NewEncoder() *Encoder {
	return &Encoder{
		Quantizer:   palette.NewCuratedQuantizer(),
		Mode:        ModePalette,
		DefaultCode: DefaultColorCode,
	}
}

// Encode emits one 1x1 placement per occupied voxel. Only a 1x1 footprint
// covers every occupied cell without a packing pass, so the part is always
// the family default. The document convention treats increasing Y as
// downward, hence the vertical inversion.
func (e *Encoder) Encode(grid *voxel.Grid, family brick.Family) []Record {
	unitHeight := StudSpacing * family.HeightRatio()
	records := make([]Record, 0, len(grid.Voxels))
	for _, v := range grid.Voxels {
		rec := Record{
			Position: geom.Vec3{
				X: float64(v.I) * StudSpacing,
				Y: -float64(v.J) * unitHeight,
				Z: float64(v.K) * StudSpacing,
			},
			Rotation: Identity,
			Part:     family.DefaultPart(),
		}
		switch {
		case !v.Colored:
			rec.Code = e.DefaultCode
		case e.Mode == ModeDirect:
			rec.Direct = true
			rec.RGB = v.Color
			rec.Code = int(palette.DirectCode(v.Color))
		default:
			rec.Code = e.Quantizer.NearestCode(v.Color)
		}
		records = append(records, rec)
	}
	return records
}
