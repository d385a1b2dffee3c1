package photongrid

import "math/cmplx"

// TraceOptions bounds and tunes one trace. Zero values select the defaults.
type TraceOptions struct {
	MaxSteps     int  // per segment; default StepCeilingFactor*(W+H)
	Epsilon      Real // amplitude floor; default Epsilon
	MaxSegments  int  // created segments; default MaxSegments
	PhasePerStep Real // radians of propagation phase per cell advance
	KeepSegments bool // retain terminated segments; paths are rebuilt on demand
	Log          bool // record a SegmentLog (always on with Debug)
}

func (o TraceOptions) withDefaults(g *Grid) TraceOptions {
	if o.MaxSteps <= 0 {
		o.MaxSteps = StepCeilingFactor * (g.W + g.H)
	}
	if o.Epsilon <= 0 {
		o.Epsilon = Epsilon
	}
	if o.MaxSegments <= 0 {
		o.MaxSegments = MaxSegments
	}
	if !isFinite(o.PhasePerStep) {
		o.PhasePerStep = 0
	}
	if Debug {
		o.Log = true
	}
	return o
}

// RawTrace is the pre-aggregation output of Propagate.
type RawTrace struct {
	W, H      int
	Source    SourceDef
	Detectors []Component // detectors on the traced grid, row-major
	Hits      []DetectorHit
	Losses    []LossEvent
	// IncoherentLoss is the running sum of |a|^2 over loss events.
	IncoherentLoss Real
	DetectedPower  Real // sum of |a|^2 over detector hits
	ExpiredPower   Real
	Gold           map[Point]Real // |a|^2 exposure per gold cell entered
	Segments       []BeamSegment  // terminated segments, with KeepSegments
	Stats          TraceStats
	Log            *SegmentLog
	MaxSteps       int
}

// TraceStats counts segments by terminal state.
type TraceStats struct {
	Created  int `json:"created" msgpack:"created"`
	Branched int `json:"branched" msgpack:"branched"`
	Detected int `json:"detected" msgpack:"detected"`
	Absorbed int `json:"absorbed" msgpack:"absorbed"`
	Expired  int `json:"expired" msgpack:"expired"`
	Steps    int `json:"steps" msgpack:"steps"` // total cell advances
}

type tracer struct {
	g    *Grid
	opts TraceOptions
	raw  *RawTrace
	q    segmentQueue
}

// Propagate explores every coherent beam path from src through g, breadth
// first. Segments are advanced in FIFO order and children are enqueued
// transmitted before reflected, so the same layout always yields the same
// hit order. g must not be mutated while Propagate runs.
func Propagate(g *Grid, src SourceDef, opts TraceOptions) *RawTrace {
	opts = opts.withDefaults(g)
	raw := &RawTrace{
		W:         g.W,
		H:         g.H,
		Source:    src,
		Detectors: g.Detectors(),
		Gold:      make(map[Point]Real),
		MaxSteps:  opts.MaxSteps,
	}
	if opts.Log {
		raw.Log = newSegmentLog()
	}
	if !src.Enabled {
		return raw
	}
	t := &tracer{g: g, opts: opts, raw: raw}
	t.q.push(rootSegment(src))
	raw.Stats.Created = 1
	t.run()
	if Debug {
		raw.Log.stats()
		DebugLog("Trace done: %+v, queue drained", raw.Stats)
	}
	return raw
}

func (t *tracer) run() {
	step := phasor(t.opts.PhasePerStep)
	for {
		seg, ok := t.q.pop()
		if !ok {
			return
		}
		if cmplx.Abs(seg.Amplitude) < t.opts.Epsilon {
			t.expire(seg, "amplitude_floor", Expire)
			continue
		}
		if seg.Steps >= t.opts.MaxSteps {
			t.expire(seg, "step_ceiling", Expire)
			continue
		}

		seg.advance()
		seg.Amplitude *= step
		t.raw.Stats.Steps++
		next := seg.Pos

		if !t.g.InBounds(next) {
			t.absorb(seg, true)
			continue
		}
		i := t.g.idx(next)
		class, comp := t.g.classes[i], t.g.comps[i]
		if class == Gold {
			t.raw.Gold[next] += seg.Power()
		}

		in := Interact(seg.Dir, seg.Amplitude, class, comp)
		if in.Lost != 0 {
			t.lose(seg, LossPort{Pos: next, Dir: seg.Dir, Element: true}, in.Lost)
			t.raw.Log.log("element_loss", Absorb, seg)
		}
		switch in.State {
		case Detected:
			t.detect(seg, comp)
		case Absorbed:
			if comp != nil {
				// fully lossy element, its loss is already recorded
				t.raw.Stats.Absorbed++
				t.finish(seg, Absorbed)
				break
			}
			t.absorb(seg, false)
		case Traveling:
			out := in.Beams()[0]
			seg.Dir, seg.Amplitude = out.Dir, out.Amplitude
			t.q.push(seg)
		case Branched:
			t.branch(seg, in.Beams())
		}
	}
}

func (t *tracer) finish(seg *BeamSegment, state SegmentState) {
	seg.State = state
	if t.opts.KeepSegments {
		t.raw.Segments = append(t.raw.Segments, *seg)
	}
}

func (t *tracer) expire(seg *BeamSegment, name string, category Category) {
	t.raw.Stats.Expired++
	t.raw.ExpiredPower += seg.Power()
	t.raw.Log.log(name, category, seg)
	t.finish(seg, Expired)
}

func (t *tracer) lose(seg *BeamSegment, port LossPort, a complex128) {
	t.raw.IncoherentLoss += power(a)
	t.raw.Losses = append(t.raw.Losses, LossEvent{
		Port:      port,
		Amplitude: a,
		Steps:     seg.Steps,
		SegmentID: seg.ID,
	})
}

func (t *tracer) absorb(seg *BeamSegment, boundary bool) {
	t.raw.Stats.Absorbed++
	t.lose(seg, LossPort{Pos: seg.Pos, Dir: seg.Dir, Boundary: boundary}, seg.Amplitude)
	if boundary {
		t.raw.Log.log("exited_grid", Exit, seg)
	} else {
		t.raw.Log.log("absorbed", Absorb, seg)
	}
	t.finish(seg, Absorbed)
}

func (t *tracer) detect(seg *BeamSegment, comp *Component) {
	t.raw.Stats.Detected++
	t.raw.DetectedPower += seg.Power()
	t.raw.Hits = append(t.raw.Hits, DetectorHit{
		DetectorID: comp.ID,
		Pos:        seg.Pos,
		Dir:        seg.Dir,
		Amplitude:  seg.Amplitude,
		Steps:      seg.Steps,
		SegmentID:  seg.ID,
		trail:      seg.trail,
	})
	t.raw.Log.log("detected", Detect, seg)
	t.finish(seg, Detected)
}

// branch terminates seg and enqueues its children. Children past the segment
// budget are counted as expired without being allocated.
func (t *tracer) branch(seg *BeamSegment, outs []Outgoing) {
	t.raw.Stats.Branched++
	t.raw.Log.log("branched", Split, seg)
	t.finish(seg, Branched)
	for _, out := range outs {
		id := t.raw.Stats.Created
		t.raw.Stats.Created++
		if t.raw.Stats.Created > t.opts.MaxSegments {
			DebugLogOnce("Segment budget of %d exhausted, dropping new segments", t.opts.MaxSegments)
			dropped := BeamSegment{
				ID:        id,
				Parent:    seg.ID,
				Pos:       seg.Pos,
				Dir:       out.Dir,
				Amplitude: out.Amplitude,
				Steps:     seg.Steps,
				Born:      seg.Steps,
			}
			t.expire(&dropped, "segment_budget", Overflow)
			continue
		}
		t.q.push(seg.child(id, out))
	}
}
