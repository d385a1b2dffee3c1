package photongrid

import (
	"fmt"
	"strings"
)

// Direction of beam travel.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var directionNames = [...]string{"N", "E", "S", "W"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Delta returns the cell offset of one step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) valid() bool { return d <= West }

// Reflect turns d by 90 degrees off a diagonal surface.
// '/' swaps N<->E and S<->W, '\' swaps N<->W and S<->E.
func (d Direction) Reflect(o Orientation) Direction {
	switch o {
	case Slash:
		return [...]Direction{East, North, West, South}[d]
	case Backslash:
		return [...]Direction{West, South, East, North}[d]
	}
	return d
}

// ParseDirection accepts N/E/S/W, full names and up/right/down/left, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north", "up":
		return North, nil
	case "e", "east", "right":
		return East, nil
	case "s", "south", "down":
		return South, nil
	case "w", "west", "left":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
