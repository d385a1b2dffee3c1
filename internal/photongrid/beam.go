package photongrid

import "fmt"

// SegmentState is the lifecycle of a beam segment. Every state but
// Traveling is terminal.
type SegmentState uint8

const (
	Traveling SegmentState = iota
	Branched
	Detected
	Absorbed
	Expired
)

var stateNames = [...]string{"traveling", "branched", "detected", "absorbed", "expired"}

func (s SegmentState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("SegmentState(%d)", uint8(s))
}

// BeamSegment is one coherent sub-beam. Its path history is diagnostic only
// and never consulted for control flow.
type BeamSegment struct {
	ID        int
	Parent    int // -1 for the source segment
	Pos       Point
	Dir       Direction
	Amplitude complex128
	Steps     int
	Born      int // Steps at creation; Own()[k] is the cell entered at step Born+1+k
	State     SegmentState
	trail     *trail
}

// trail is the stretch of cells one segment walked, linked to the stretch of
// the segment it branched from. Branches share their ancestors' cells, so a
// segment costs only its own stretch.
type trail struct {
	up    *trail
	cells []Point
}

func (t *trail) path() []Point {
	n := 0
	for x := t; x != nil; x = x.up {
		n += len(x.cells)
	}
	out := make([]Point, n)
	for x := t; x != nil; x = x.up {
		n -= len(x.cells)
		copy(out[n:], x.cells)
	}
	return out
}

func rootSegment(src SourceDef) *BeamSegment {
	return &BeamSegment{
		Parent:    -1,
		Pos:       src.Pos,
		Dir:       src.Dir,
		Amplitude: 1,
		trail:     &trail{up: &trail{cells: []Point{src.Pos}}},
	}
}

// Power returns |amplitude|^2.
func (s *BeamSegment) Power() Real { return power(s.Amplitude) }

// Path rebuilds the full path from the source cell to the current cell.
func (s *BeamSegment) Path() []Point {
	if s.trail == nil {
		return nil
	}
	return s.trail.path()
}

// Own returns the cells this segment entered itself, after it was created.
func (s *BeamSegment) Own() []Point {
	if s.trail == nil {
		return nil
	}
	return s.trail.cells
}

func (s *BeamSegment) advance() {
	s.Pos = s.Pos.Add(s.Dir)
	s.Steps++
	s.trail.cells = append(s.trail.cells, s.Pos)
}

// child starts a new segment at the parent's cell, sharing its path history.
func (s *BeamSegment) child(id int, out Outgoing) *BeamSegment {
	return &BeamSegment{
		ID:        id,
		Parent:    s.ID,
		Pos:       s.Pos,
		Dir:       out.Dir,
		Amplitude: out.Amplitude,
		Steps:     s.Steps,
		Born:      s.Steps,
		trail:     &trail{up: s.trail, cells: make([]Point, 0, 8)},
	}
}

// segmentQueue is a FIFO that reuses its backing array once the consumed
// prefix dominates.
type segmentQueue struct {
	items []*BeamSegment
	head  int
}

func (q *segmentQueue) push(s *BeamSegment) { q.items = append(q.items, s) }

func (q *segmentQueue) len() int { return len(q.items) - q.head }

func (q *segmentQueue) pop() (*BeamSegment, bool) {
	if q.head == len(q.items) {
		return nil, false
	}
	s := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head >= 1024 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return s, true
}
