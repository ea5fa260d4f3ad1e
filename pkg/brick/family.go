// Package brick defines the block families and the part library used to
// resolve placement part identifiers.
package brick

import "fmt"

// Family is the block family of a part. It is a closed set: every family
// constant has a fixed height ratio and a default 1x1 part.
type Family int

// Block families.
const (
	Plate Family = iota
	Brick
)

// HeightRatio returns the vertical unit height as a fraction of the
// footprint unit: a plate is 8 LDU tall against a 20 LDU stud (0.4), a
// brick 24 LDU (1.2).
func (f Family) HeightRatio() float64 {
	switch f {
	case Brick:
		return 1.2
	default:
		return 0.4
	}
}

// DefaultPart returns the canonical 1x1 part identifier for the family.
func (f Family) DefaultPart() string {
	switch f {
	case Brick:
		return "3005.dat"
	default:
		return "3024.dat"
	}
}

// String returns the family name.
func (f Family) String() string {
	switch f {
	case Brick:
		return "brick"
	case Plate:
		return "plate"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily parses a family name.
func ParseFamily(s string) (Family, error) {
	switch s {
	case "plate":
		return Plate, nil
	case "brick":
		return Brick, nil
	default:
		return Plate, fmt.Errorf("unknown block family %q", s)
	}
}

// UnmarshalYAML decodes a family from its string name.
func (f *Family) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseFamily(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalYAML encodes the family as its string name.
func (f Family) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}
