package photongrid

import (
	"fmt"
	"strings"
)

// CellClass is the static classification of a grid cell.
type CellClass uint8

const (
	Empty CellClass = iota
	Blocked
	Gold // scoring metadata only, no physical effect
)

var classNames = [...]string{"empty", "blocked", "gold"}

func (c CellClass) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return fmt.Sprintf("CellClass(%d)", uint8(c))
}

// Kind of a placed component.
type Kind uint8

const (
	Mirror Kind = iota
	BeamSplitter
	Detector
	Source
	PartialMirror
)

var kindNames = [...]string{"mirror", "beam_splitter", "detector", "source", "partial_mirror"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Oriented reports whether the kind needs a diagonal orientation.
func (k Kind) Oriented() bool {
	return k == Mirror || k == BeamSplitter || k == PartialMirror
}

// ParseKind accepts the names used by layout files ("beamsplitter" and "laser" included).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mirror":
		return Mirror, nil
	case "beam_splitter", "beamsplitter", "splitter":
		return BeamSplitter, nil
	case "detector":
		return Detector, nil
	case "source", "laser":
		return Source, nil
	case "partial_mirror", "partialmirror":
		return PartialMirror, nil
	}
	return 0, fmt.Errorf("unknown component kind %q", s)
}

// Orientation of a diagonal component.
type Orientation uint8

const (
	NoOrientation Orientation = iota
	Slash                     // '/'
	Backslash                 // '\'
)

func (o Orientation) String() string {
	switch o {
	case Slash:
		return "/"
	case Backslash:
		return `\`
	}
	return ""
}

func ParseOrientation(s string) (Orientation, error) {
	switch strings.TrimSpace(s) {
	case "":
		return NoOrientation, nil
	case "/", "slash":
		return Slash, nil
	case `\`, "backslash":
		return Backslash, nil
	}
	return 0, fmt.Errorf("unknown orientation %q", s)
}

// Component is a placed optical element.
type Component struct {
	ID           string
	Kind         Kind
	Pos          Point
	Orientation  Orientation
	Reflectivity Real // power reflectivity, partial mirrors only
	Loss         Real // power absorbed on entry, oriented kinds only
}

// defaultID names a component after its kind and cell, e.g. "detector@8,4".
func defaultID(k Kind, p Point) string {
	return k.String() + "@" + p.String()
}

func (c Component) validate() error {
	if c.Kind > PartialMirror {
		return fmt.Errorf("unknown component kind %d", c.Kind)
	}
	if !isFinite(c.Loss) || c.Loss < 0 || c.Loss > 1 {
		return fmt.Errorf("loss must be in [0,1], got %v", c.Loss)
	}
	if !c.Kind.Oriented() {
		if c.Loss != 0 {
			return fmt.Errorf("%s takes no loss", c.Kind)
		}
		if c.Orientation != NoOrientation {
			return fmt.Errorf("%s takes no orientation", c.Kind)
		}
		return nil
	}
	if c.Orientation != Slash && c.Orientation != Backslash {
		return fmt.Errorf("%s needs orientation '/' or '\\'", c.Kind)
	}
	if c.Kind == PartialMirror && (!isFinite(c.Reflectivity) || c.Reflectivity < 0 || c.Reflectivity > 1) {
		return fmt.Errorf("reflectivity must be in [0,1], got %v", c.Reflectivity)
	}
	return nil
}
