package photongrid

import "fmt"

var (
	Debug        = false // verbose debug output and segment event logging
	PNG          = false // save a PNG snapshot of the traced layout
	GIF          = false // save an animated GIF, one frame per propagation step
	View         = false // show the traced layout in the terminal
	Sweep        = false // also sweep the propagation phase
	SweepN       = 0     // sweep points; 0 uses the layout's sweepSteps
	ReportFormat = "json"
	// Compile time checks
	_ fmt.Stringer = Direction(0)
	_ fmt.Stringer = Kind(0)
	_ fmt.Stringer = CellClass(0)
	_ fmt.Stringer = SegmentState(0)
	_ error        = (*PlacementError)(nil)
	_ error        = (*ConfigurationError)(nil)
)
