package palette

// DirectMarker is the LDraw direct-color flag: codes of the form 0x2RRGGBB
// embed a literal 24-bit color instead of referencing a color table.
const DirectMarker uint32 = 0x02000000

// DirectCode packs c as a marked direct-color value.
func DirectCode(c RGB) uint32 {
	return DirectMarker | c.Packed()
}

// IsDirectCode reports whether a parsed numeric color value carries the
// direct-color marker.
func IsDirectCode(v uint32) bool {
	return v >= DirectMarker && v <= DirectMarker|0x00FFFFFF
}
