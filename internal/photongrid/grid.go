package photongrid

import "fmt"

// Grid stores cell classification and component occupancy for a W x H board.
// Both live in flat buffers indexed by y*W + x.
type Grid struct {
	W, H    int
	classes []CellClass
	comps   []*Component
	ids     map[string]Point
	placed  int
}

// NewGrid allocates an all-empty grid.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %dx%d", w, h)
	}
	g := &Grid{
		W:       w,
		H:       h,
		classes: make([]CellClass, w*h),
		comps:   make([]*Component, w*h),
		ids:     make(map[string]Point),
	}
	DebugLog("Created grid %dx%d", w, h)
	return g, nil
}

func (g *Grid) idx(p Point) int { return p.Y*g.W + p.X }

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// Classify returns the classification of p. Out-of-bounds cells read as Blocked.
func (g *Grid) Classify(p Point) CellClass {
	if !g.InBounds(p) {
		return Blocked
	}
	return g.classes[g.idx(p)]
}

// SetClass reclassifies a cell. A cell holding a component cannot become blocked.
func (g *Grid) SetClass(p Point, c CellClass) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set class %s at %s: %w", c, p, ErrOutOfBounds)
	}
	if c > Gold {
		return fmt.Errorf("unknown cell class %d", c)
	}
	i := g.idx(p)
	if c == Blocked && g.comps[i] != nil {
		return fmt.Errorf("block %s: %w", p, ErrOccupied)
	}
	g.classes[i] = c
	return nil
}

// ComponentAt returns the component placed at p, if any.
func (g *Grid) ComponentAt(p Point) (Component, bool) {
	if !g.InBounds(p) {
		return Component{}, false
	}
	c := g.comps[g.idx(p)]
	if c == nil {
		return Component{}, false
	}
	return *c, true
}

// Place puts a component of the given kind at p with a default ID.
func (g *Grid) Place(p Point, kind Kind, o Orientation) (*Component, error) {
	c := Component{Kind: kind, Pos: p, Orientation: o}
	if kind == PartialMirror {
		c.Reflectivity = 0.5
	}
	if err := g.PlaceComponent(c); err != nil {
		return nil, err
	}
	placed := *g.comps[g.idx(p)]
	return &placed, nil
}

// PlaceComponent validates and records c. On any error the grid is not modified.
func (g *Grid) PlaceComponent(c Component) error {
	if !g.InBounds(c.Pos) {
		return &PlacementError{Pos: c.Pos, Kind: c.Kind, Err: ErrOutOfBounds}
	}
	if err := c.validate(); err != nil {
		return &PlacementError{Pos: c.Pos, Kind: c.Kind, Err: fmt.Errorf("%w: %v", ErrInvalidComponent, err)}
	}
	i := g.idx(c.Pos)
	if g.comps[i] != nil {
		return &PlacementError{Pos: c.Pos, Kind: c.Kind, Err: ErrOccupied}
	}
	if g.classes[i] == Blocked {
		return &PlacementError{Pos: c.Pos, Kind: c.Kind, Err: ErrBlockedCell}
	}
	if c.ID == "" {
		c.ID = defaultID(c.Kind, c.Pos)
	}
	if at, ok := g.ids[c.ID]; ok {
		return &PlacementError{Pos: c.Pos, Kind: c.Kind, Err: fmt.Errorf("%w: %q already at %s", ErrDuplicateID, c.ID, at)}
	}
	g.ids[c.ID] = c.Pos
	g.comps[i] = &c
	g.placed++
	return nil
}

// Remove clears the component at p; no-op for empty or out-of-bounds cells.
func (g *Grid) Remove(p Point) {
	if !g.InBounds(p) {
		return
	}
	i := g.idx(p)
	if g.comps[i] == nil {
		return
	}
	delete(g.ids, g.comps[i].ID)
	g.comps[i] = nil
	g.placed--
}

// Len returns the number of placed components.
func (g *Grid) Len() int { return g.placed }

// Components returns all placed components in row-major order.
func (g *Grid) Components() []Component {
	out := make([]Component, 0, g.placed)
	for _, c := range g.comps {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// Detectors returns placed detectors in row-major order.
func (g *Grid) Detectors() []Component {
	var out []Component
	for _, c := range g.comps {
		if c != nil && c.Kind == Detector {
			out = append(out, *c)
		}
	}
	return out
}

// Cells returns all cells with the given classification in row-major order.
func (g *Grid) Cells(class CellClass) []Point {
	var out []Point
	for i, c := range g.classes {
		if c == class {
			out = append(out, Point{i % g.W, i / g.W})
		}
	}
	return out
}

// Clone returns a deep copy, used as a read-only snapshot while tracing.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		W:       g.W,
		H:       g.H,
		classes: append([]CellClass(nil), g.classes...),
		comps:   make([]*Component, len(g.comps)),
		ids:     make(map[string]Point, len(g.ids)),
		placed:  g.placed,
	}
	for id, p := range g.ids {
		c.ids[id] = p
	}
	for i, comp := range g.comps {
		if comp != nil {
			cp := *comp
			c.comps[i] = &cp
		}
	}
	return c
}
