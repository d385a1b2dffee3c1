package photongrid

const (
	GridW              = 20 // default grid width (cells)
	GridH              = 15 // default grid height (cells)
	Epsilon            = 1e-6
	MaxSegments        = 1 << 18 // created segments per trace
	StepCeilingFactor  = 2       // max steps = StepCeilingFactor * (W + H)
	ConservationTol    = 1e-6
	SweepSteps         = 36
	CellPx             = 24 // PNG/GIF pixels per grid cell
	GIFOut             = "beams.gif"
	PNGOut             = "beams.png"
	GIFDelay           = 8 // 100ths of a second per frame
	MaxGIFFrames       = 120
	Gamma              = 0.75
	ReportOut          = "report.json"
	DefaultBlockedFile = "config/blocked_fields.txt"
	DefaultGoldFile    = "config/gold_fields.txt"
	// splitter coefficient magnitude, 1/sqrt(2)
	invSqrt2 = 0.7071067811865476
)
