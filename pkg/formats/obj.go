// Package formats provides parsers for supported mesh file formats.
package formats

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/brickforge/pkg/geom"
	"github.com/Faultbox/brickforge/pkg/mesh"
)

// objVertexRef is one corner of an OBJ face: indices into the position,
// texture and normal tables, already resolved to zero-based values.
// Missing references are -1.
type objVertexRef struct {
	pos, uv, normal int
}

// ParseOBJ parses Wavefront OBJ text into a triangle soup. Polygonal faces
// are split as triangle fans. Malformed statements are skipped; the format
// in the wild is too loose to treat them as fatal.
func ParseOBJ(data []byte) (*mesh.Mesh, error) {
	var (
		positions []geom.Vec3
		uvs       []geom.Vec2
		normals   []geom.Vec3
	)
	out := &mesh.Mesh{}
	hasNormals := true
	hasUVs := true

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if v, ok := parseVec3(fields[1:]); ok {
				positions = append(positions, v)
			}
		case "vt":
			if len(fields) >= 3 {
				u, err1 := strconv.ParseFloat(fields[1], 64)
				v, err2 := strconv.ParseFloat(fields[2], 64)
				if err1 == nil && err2 == nil {
					uvs = append(uvs, geom.Vec2{X: u, Y: v})
				}
			}
		case "vn":
			if v, ok := parseVec3(fields[1:]); ok {
				normals = append(normals, v)
			}
		case "f":
			refs := parseFaceRefs(fields[1:], len(positions), len(uvs), len(normals))
			if len(refs) < 3 {
				continue
			}
			for i := 1; i+1 < len(refs); i++ {
				corners := [3]objVertexRef{refs[0], refs[i], refs[i+1]}
				for _, c := range corners {
					out.Positions = append(out.Positions, positions[c.pos])
					if c.normal >= 0 {
						out.Normals = append(out.Normals, normals[c.normal])
					} else {
						hasNormals = false
					}
					if c.uv >= 0 {
						out.UVs = append(out.UVs, uvs[c.uv])
					} else {
						hasUVs = false
					}
				}
			}
		}
	}

	// Partial attribute coverage is worse than none: the normalizer
	// recomputes normals anyway, and a UV array that does not parallel the
	// positions cannot be indexed safely.
	if !hasNormals || len(out.Normals) != len(out.Positions) {
		out.Normals = nil
	}
	if !hasUVs || len(out.UVs) != len(out.Positions) {
		out.UVs = nil
	}

	out.ComputeBounds()
	return out, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*mesh.Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

// parseVec3 parses three float fields.
func parseVec3(fields []string) (geom.Vec3, bool) {
	if len(fields) < 3 {
		return geom.Vec3{}, false
	}
	x, err1 := strconv.ParseFloat(fields[0], 64)
	y, err2 := strconv.ParseFloat(fields[1], 64)
	z, err3 := strconv.ParseFloat(fields[2], 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return geom.Vec3{}, false
	}
	return geom.Vec3{X: x, Y: y, Z: z}, true
}

// parseFaceRefs parses "v", "v/vt", "v//vn" and "v/vt/vn" corner tokens.
// Corners with an unresolvable position index are dropped.
func parseFaceRefs(tokens []string, posCount, uvCount, normalCount int) []objVertexRef {
	refs := make([]objVertexRef, 0, len(tokens))
	for _, token := range tokens {
		parts := strings.Split(token, "/")
		ref := objVertexRef{pos: -1, uv: -1, normal: -1}

		ref.pos = resolveIndex(parts[0], posCount)
		if ref.pos < 0 {
			continue
		}
		if len(parts) > 1 && parts[1] != "" {
			ref.uv = resolveIndex(parts[1], uvCount)
		}
		if len(parts) > 2 && parts[2] != "" {
			ref.normal = resolveIndex(parts[2], normalCount)
		}
		refs = append(refs, ref)
	}
	return refs
}

// resolveIndex converts a one-based OBJ index (negative counts from the end
// of the table) to a zero-based index, or -1 when out of range.
func resolveIndex(token string, count int) int {
	n, err := strconv.Atoi(token)
	if err != nil || n == 0 {
		return -1
	}
	if n < 0 {
		n = count + n
	} else {
		n--
	}
	if n < 0 || n >= count {
		return -1
	}
	return n
}
