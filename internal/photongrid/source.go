package photongrid

import "fmt"

// SourceDef is the laser: a unit-amplitude beam leaving Pos toward Dir.
type SourceDef struct {
	Pos     Point
	Dir     Direction
	Enabled bool
}

// NewSource returns an enabled source after validating the direction.
func NewSource(pos Point, dir Direction) (SourceDef, error) {
	if !dir.valid() {
		return SourceDef{}, fmt.Errorf("invalid source direction %d", dir)
	}
	s := SourceDef{Pos: pos, Dir: dir, Enabled: true}
	DebugLog("Created source %+v", s)
	return s, nil
}
