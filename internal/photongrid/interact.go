package photongrid

import "math"

// Outgoing is one beam leaving a cell.
type Outgoing struct {
	Dir       Direction
	Amplitude complex128
	Reflected bool
}

// Interaction is the outcome of a beam entering a cell: the resulting
// segment state and up to two outgoing beams, transmitted first. Lost is
// the amplitude a lossy component removed before coupling.
type Interaction struct {
	State SegmentState
	Lost  complex128
	out   [2]Outgoing
	n     int
}

// Beams returns the outgoing beams in emission order.
func (in *Interaction) Beams() []Outgoing { return in.out[:in.n] }

func (in *Interaction) emit(o Outgoing) {
	in.out[in.n] = o
	in.n++
}

// Interact dispatches a beam travelling in dir with amplitude a that has just
// entered a cell of the given class holding comp (nil when empty).
func Interact(dir Direction, a complex128, class CellClass, comp *Component) Interaction {
	var in Interaction
	if class == Blocked {
		in.State = Absorbed
		return in
	}
	if comp == nil {
		// empty and gold cells
		in.emit(Outgoing{Dir: dir, Amplitude: a})
		return in
	}
	switch comp.Kind {
	case Detector:
		in.State = Detected
		return in
	case Source:
		in.emit(Outgoing{Dir: dir, Amplitude: a})
		return in
	}
	if comp.Loss > 0 {
		in.Lost = a * complex(math.Sqrt(comp.Loss), 0)
		if comp.Loss >= 1 {
			in.State = Absorbed
			return in
		}
		a *= complex(math.Sqrt(1-comp.Loss), 0)
	}
	k := couplingOf(comp)
	if k.t != 0 {
		in.emit(Outgoing{Dir: dir, Amplitude: a * k.t})
	}
	if k.r != 0 {
		in.emit(Outgoing{Dir: dir.Reflect(comp.Orientation), Amplitude: a * k.r, Reflected: true})
	}
	switch in.n {
	case 0:
		in.State = Absorbed
	case 2:
		in.State = Branched
	}
	return in
}
