package brick

import (
	"regexp"
	"strconv"
	"strings"
)

// PartDefinition describes one catalog part.
type PartDefinition struct {
	ID     string
	Family Family
	StudsX int
	StudsY int
}

// Library maps normalized part keys to definitions. It is immutable after
// construction; build one with DefaultLibrary and share it freely.
type Library struct {
	byKey map[string]PartDefinition
}

// catalog lists the known plate and brick variants. Symmetric footprints
// share a part number (a 2x1 plate is a rotated 1x2).
var catalog = []PartDefinition{
	{"3024.dat", Plate, 1, 1},
	{"3023.dat", Plate, 2, 1},
	{"3623.dat", Plate, 3, 1},
	{"3710.dat", Plate, 4, 1},
	{"3022.dat", Plate, 2, 2},
	{"3021.dat", Plate, 3, 2},
	{"3020.dat", Plate, 4, 2},
	{"3031.dat", Plate, 4, 4},
	{"3005.dat", Brick, 1, 1},
	{"3004.dat", Brick, 2, 1},
	{"3622.dat", Brick, 3, 1},
	{"3010.dat", Brick, 4, 1},
	{"3003.dat", Brick, 2, 2},
	{"3001.dat", Brick, 4, 2},
}

var aliasPattern = regexp.MustCompile(`^(plate|brick)_(\d+)x(\d+)$`)

// DefaultLibrary builds the standard part library.
func DefaultLibrary() *Library {
	lib := &Library{byKey: make(map[string]PartDefinition, len(catalog))}
	for _, def := range catalog {
		lib.byKey[normalizeKey(def.ID)] = def
	}
	return lib
}

// normalizeKey lowercases a part token, strips any directory prefix and
// drops the file extension, so "parts\\3005.DAT" and "3005" match.
func normalizeKey(token string) string {
	key := strings.ToLower(strings.TrimSpace(token))
	key = strings.ReplaceAll(key, "\\", "/")
	if i := strings.LastIndex(key, "/"); i >= 0 {
		key = key[i+1:]
	}
	if i := strings.LastIndex(key, "."); i >= 0 {
		key = key[:i]
	}
	return key
}

// Resolve looks up a part identifier. Unresolvable identifiers fall back to
// the 1x1 default of the given family; a lookup never fails.
func (l *Library) Resolve(token string, fallback Family) PartDefinition {
	key := normalizeKey(token)
	if def, ok := l.byKey[key]; ok {
		return def
	}
	if m := aliasPattern.FindStringSubmatch(key); m != nil {
		family, _ := ParseFamily(m[1])
		sx, _ := strconv.Atoi(m[2])
		sy, _ := strconv.Atoi(m[3])
		if def, ok := l.lookupFootprint(family, sx, sy); ok {
			return def
		}
	}
	return PartDefinition{ID: fallback.DefaultPart(), Family: fallback, StudsX: 1, StudsY: 1}
}

// lookupFootprint finds a part by family and stud footprint, trying the
// transposed footprint as well.
func (l *Library) lookupFootprint(family Family, sx, sy int) (PartDefinition, bool) {
	for _, def := range l.byKey {
		if def.Family == family && ((def.StudsX == sx && def.StudsY == sy) || (def.StudsX == sy && def.StudsY == sx)) {
			return def, true
		}
	}
	return PartDefinition{}, false
}
