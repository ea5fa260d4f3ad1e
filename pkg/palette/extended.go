package palette

// Extended is the direct code table: LDraw-style color codes mapped to
// display colors. Documents may carry codes that are absent from the
// curated palette; this table resolves them for redisplay. It is never
// consulted by the Quantizer.
var Extended = map[int]RGB{
	0: {0x1B, 0x2A, 0x34}, // Black
	1: {0x1E, 0x5A, 0xA8}, // Blue
	2: {0x00, 0x85, 0x2B}, // Green
	3: {0x06, 0x9D, 0x9F}, // Dark Turquoise
	4: {0xB4, 0x00, 0x00}, // Red
	5: {0xD3, 0x35, 0x9D}, // Dark Pink
	6: {0x54, 0x33, 0x24}, // Brown
	7: {0x8A, 0x92, 0x8D}, // Light Grey
	8: {0x54, 0x59, 0x55}, // Dark Grey
	9: {0x97, 0xCB, 0xD9}, // Light Blue
	10: {0x58, 0xAB, 0x41}, // Bright Green
	11: {0x00, 0xAA, 0xA4}, // Light Turquoise
	12: {0xF0, 0x6D, 0x61}, // Salmon
	13: {0xF6, 0xA9, 0xBB}, // Pink
	14: {0xFA, 0xC8, 0x0A}, // Yellow
	15: {0xF4, 0xF4, 0xF4}, // White
	17: {0xAD, 0xD9, 0xA8}, // Light Green
	18: {0xFF, 0xD6, 0x7F}, // Light Yellow
	19: {0xD7, 0xBA, 0x8C}, // Tan
	20: {0xAF, 0xBE, 0xD6}, // Light Violet
	22: {0x67, 0x1F, 0x81}, // Purple
	23: {0x0E, 0x3E, 0x9A}, // Dark Blue Violet
	25: {0xD6, 0x79, 0x23}, // Orange
	26: {0x90, 0x1F, 0x76}, // Magenta
	27: {0xA5, 0xCA, 0x18}, // Lime
	28: {0x89, 0x7D, 0x62}, // Dark Tan
	29: {0xFF, 0x9E, 0xCD}, // Bright Pink
	30: {0xA0, 0x6E, 0xB9}, // Medium Lavender
	31: {0xCD, 0xA4, 0xDE}, // Lavender
	68: {0xFD, 0xC3, 0x83}, // Very Light Orange
	69: {0x8A, 0x12, 0xA8}, // Bright Reddish Lilac
	70: {0x5F, 0x31, 0x09}, // Reddish Brown
	71: {0x96, 0x96, 0x96}, // Light Bluish Grey
	72: {0x64, 0x64, 0x64}, // Dark Bluish Grey
	73: {0x73, 0x96, 0xC8}, // Medium Blue
	74: {0x7F, 0xC4, 0x75}, // Medium Green
	77: {0xFE, 0xCC, 0xCF}, // Light Pink
	78: {0xFF, 0xC9, 0x95}, // Light Nougat
	84: {0xAA, 0x7D, 0x55}, // Medium Nougat
	85: {0x44, 0x1A, 0x91}, // Medium Lilac
	86: {0x7B, 0x5D, 0x41}, // Light Brown
	89: {0x1C, 0x58, 0xA7}, // Blue Violet
	92: {0xBB, 0x80, 0x5A}, // Nougat
	100: {0xF9, 0xB7, 0xA5}, // Light Salmon
	110: {0x26, 0x46, 0x9A}, // Violet
	112: {0x48, 0x61, 0xAC}, // Medium Violet
	115: {0xB7, 0xD4, 0x25}, // Medium Lime
	118: {0x9C, 0xD6, 0xCC}, // Aqua
	120: {0xDE, 0xEA, 0x92}, // Light Lime
	123: {0xEE, 0x54, 0x34}, // Dark Salmon
	125: {0xF9, 0xA7, 0x77}, // Spud Orange
	128: {0xAD, 0x61, 0x40}, // Dark Nougat
	151: {0xC8, 0xC8, 0xC8}, // Very Light Bluish Grey
	191: {0xFC, 0xAC, 0x00}, // Bright Light Orange
	212: {0x9D, 0xC3, 0xF7}, // Bright Light Blue
	213: {0x47, 0x6F, 0xB6}, // Medium Blue Violet
	216: {0x87, 0x2B, 0x17}, // Rust
	218: {0x8E, 0x55, 0x97}, // Reddish Lilac
	219: {0x56, 0x4E, 0x9D}, // Lilac
	220: {0x91, 0x95, 0xCA}, // Light Lilac
	226: {0xFF, 0xEC, 0x6C}, // Bright Light Yellow
	232: {0x77, 0xC9, 0xD8}, // Sky Blue
	272: {0x19, 0x32, 0x5A}, // Dark Blue
	288: {0x00, 0x45, 0x1A}, // Dark Green
	295: {0xFF, 0x94, 0xC2}, // Flamingo Pink
	308: {0x35, 0x21, 0x00}, // Dark Brown
	313: {0xAB, 0xD9, 0xFF}, // Maersk Blue
	320: {0x72, 0x00, 0x12}, // Dark Red
	321: {0x46, 0x9B, 0xC3}, // Dark Azure
	322: {0x68, 0xC3, 0xE2}, // Medium Azure
	323: {0xD3, 0xF2, 0xEA}, // Light Aqua
	326: {0xE2, 0xF9, 0x9A}, // Yellowish Green
	330: {0x77, 0x77, 0x4E}, // Olive Green
	335: {0x88, 0x60, 0x5E}, // Sand Red
	351: {0xF7, 0x85, 0xB1}, // Medium Dark Pink
	353: {0xFF, 0x6D, 0x77}, // Coral
	366: {0xD8, 0x6D, 0x2C}, // Earth Orange
	368: {0xED, 0xFF, 0x21}, // Neon Yellow
	370: {0x75, 0x59, 0x45}, // Medium Brown
	373: {0x75, 0x65, 0x7D}, // Sand Purple
	378: {0x70, 0x8E, 0x7C}, // Sand Green
	379: {0x70, 0x81, 0x9A}, // Sand Blue
}

// ExtendedLookup resolves a numeric code against the extended table.
func ExtendedLookup(code int) (RGB, bool) {
	c, ok := Extended[code]
	return c, ok
}
