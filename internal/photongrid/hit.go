package photongrid

// DetectorHit is produced when a segment terminates on a detector cell.
type DetectorHit struct {
	DetectorID string
	Pos        Point
	Dir        Direction // direction of arrival
	Amplitude  complex128
	Steps      int
	SegmentID  int

	trail *trail
}

// Path lists every cell the arriving segment and its ancestors occupied,
// from the source cell to the detector. It is rebuilt on each call.
func (h DetectorHit) Path() []Point {
	if h.trail == nil {
		return nil
	}
	return h.trail.path()
}

// LossPort identifies where probability leaves the system: the blocked or
// off-grid cell entered and the direction of travel. Amplitudes arriving at
// the same port are summed coherently before squaring.
type LossPort struct {
	Pos      Point
	Dir      Direction
	Boundary bool
	Element  bool // attenuated inside a lossy component
}

// LossEvent is one segment absorbed at a loss port.
type LossEvent struct {
	Port      LossPort
	Amplitude complex128
	Steps     int
	SegmentID int
}
