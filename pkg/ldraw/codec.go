package ldraw

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Faultbox/brickforge/pkg/palette"
)

// Serialize renders records as a placement document: a metadata header
// block, a blank separator line, one type-1 line per record, and a NOFILE
// trailer. Name and author are free-form metadata.
func Serialize(records []Record, name, author string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "0 FILE %s\n", name)
	fmt.Fprintf(&b, "0 Name: %s\n", name)
	fmt.Fprintf(&b, "0 Author: %s\n", author)
	b.WriteString("0 !LDRAW_ORG Unofficial_Model\n")
	b.WriteString("\n")

	for _, r := range records {
		fmt.Fprintf(&b, "1 %s %.3f %.3f %.3f", r.ColorToken(), r.Position.X, r.Position.Y, r.Position.Z)
		for _, m := range r.Rotation {
			fmt.Fprintf(&b, " %g", m)
		}
		fmt.Fprintf(&b, " %s\n", r.Part)
	}

	b.WriteString("0 NOFILE\n")
	return b.String()
}

// Parse extracts placement records from document text. The grammar is
// deliberately tolerant: blank lines and lines whose first token is "0"
// are ignored, lines with any other opcode are skipped, and a malformed
// type-1 line is dropped without failing the parse. Rotation tokens that do
// not all parse as finite numbers degrade to the identity matrix instead of
// rejecting the record.
func Parse(text string) []Record {
	var records []Record
	for _, line := range strings.Split(text, "\n") {
		tokens := strings.Fields(line)
		if len(tokens) == 0 || tokens[0] == "0" {
			continue
		}
		if tokens[0] != "1" {
			continue
		}
		// opcode, color, x, y, z, nine rotation values, then the part
		// identifier. Part tokens are rejoined so filenames containing
		// spaces survive.
		if len(tokens) < 14 {
			continue
		}
		part := strings.Join(tokens[14:], " ")
		if part == "" {
			continue
		}

		rec := Record{Rotation: Identity, Part: part}
		if !parseColorToken(tokens[1], &rec) {
			continue
		}

		x, okX := parseFinite(tokens[2])
		y, okY := parseFinite(tokens[3])
		z, okZ := parseFinite(tokens[4])
		if !okX || !okY || !okZ {
			continue
		}
		rec.Position.X, rec.Position.Y, rec.Position.Z = x, y, z

		var rot [9]float64
		valid := true
		for i := 0; i < 9; i++ {
			v, ok := parseFinite(tokens[5+i])
			if !ok {
				valid = false
				break
			}
			rot[i] = v
		}
		if valid {
			rec.Rotation = rot
		}

		records = append(records, rec)
	}
	return records
}

// parseColorToken fills the record's color from a document token: a decimal
// palette code or a 0x-prefixed hex literal whose low 24 bits are the packed
// direct color.
func parseColorToken(token string, rec *Record) bool {
	if strings.HasPrefix(token, "0x") || strings.HasPrefix(token, "0X") {
		v, err := strconv.ParseUint(token[2:], 16, 32)
		if err != nil {
			return false
		}
		rec.Code = int(v)
		rec.Direct = true
		rec.RGB = palette.FromPacked(uint32(v))
		return true
	}
	code, err := strconv.Atoi(token)
	if err != nil {
		return false
	}
	rec.Code = code
	return true
}

// parseFinite parses a float and rejects NaN and infinities.
func parseFinite(token string) (float64, bool) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
