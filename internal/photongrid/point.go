package photongrid

import "fmt"

// Point is a grid cell coordinate. Y grows downward, as on screen.
type Point struct {
	X, Y int
}

// Add moves p one cell in direction d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{p.X + dx, p.Y + dy}
}

func (p Point) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }
