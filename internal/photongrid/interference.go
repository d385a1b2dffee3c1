package photongrid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/cmplxs"
	"gonum.org/v1/gonum/floats"
)

// DetectorReading is the coherent superposition of every hit on one detector.
type DetectorReading struct {
	ID        string
	Pos       Point
	Amplitude complex128 // sum of hit amplitudes
	Intensity Real       // |Amplitude|^2
	Hits      []DetectorHit
}

// PortLoss is the coherent loss through one loss port.
type PortLoss struct {
	Port      LossPort
	Amplitude complex128
	Power     Real
	Events    int
}

// TraceResult is the aggregated outcome of a trace.
type TraceResult struct {
	Detectors []DetectorReading // placed detectors first (row-major), then any others hit
	Ports     []PortLoss        // loss ports in first-seen order
	// TotalLoss sums |sum of amplitudes|^2 per loss port.
	TotalLoss      Real
	IncoherentLoss Real
	ExpiredPower   Real
	Gold           map[Point]Real
	Stats          TraceStats
	Raw            *RawTrace
	byID           map[string]int
}

// Trace runs Propagate and Aggregate. A disabled source yields an empty result.
func Trace(g *Grid, src SourceDef, opts TraceOptions) *TraceResult {
	return Aggregate(Propagate(g, src, opts))
}

// Aggregate groups raw hits by detector and sums their amplitudes before
// squaring; summing intensities instead would erase interference.
func Aggregate(raw *RawTrace) *TraceResult {
	r := &TraceResult{
		IncoherentLoss: raw.IncoherentLoss,
		ExpiredPower:   raw.ExpiredPower,
		Gold:           raw.Gold,
		Stats:          raw.Stats,
		Raw:            raw,
		byID:           make(map[string]int),
	}
	for _, d := range raw.Detectors {
		r.reading(d.ID, d.Pos)
	}
	for _, h := range raw.Hits {
		i := r.reading(h.DetectorID, h.Pos)
		r.Detectors[i].Hits = append(r.Detectors[i].Hits, h)
	}
	for i := range r.Detectors {
		d := &r.Detectors[i]
		if len(d.Hits) == 0 {
			continue
		}
		amps := make([]complex128, len(d.Hits))
		for j, h := range d.Hits {
			amps[j] = h.Amplitude
		}
		d.Amplitude = cmplxs.Sum(amps)
		d.Intensity = power(d.Amplitude)
	}

	portIdx := make(map[LossPort]int)
	portAmps := [][]complex128{}
	for _, ev := range raw.Losses {
		i, ok := portIdx[ev.Port]
		if !ok {
			i = len(r.Ports)
			portIdx[ev.Port] = i
			r.Ports = append(r.Ports, PortLoss{Port: ev.Port})
			portAmps = append(portAmps, nil)
		}
		portAmps[i] = append(portAmps[i], ev.Amplitude)
		r.Ports[i].Events++
	}
	powers := make([]Real, len(r.Ports))
	for i := range r.Ports {
		r.Ports[i].Amplitude = cmplxs.Sum(portAmps[i])
		r.Ports[i].Power = power(r.Ports[i].Amplitude)
		powers[i] = r.Ports[i].Power
	}
	r.TotalLoss = floats.Sum(powers)
	return r
}

func (r *TraceResult) reading(id string, pos Point) int {
	if i, ok := r.byID[id]; ok {
		return i
	}
	i := len(r.Detectors)
	r.byID[id] = i
	r.Detectors = append(r.Detectors, DetectorReading{ID: id, Pos: pos})
	return i
}

// Detector returns the reading for a detector id.
func (r *TraceResult) Detector(id string) (DetectorReading, bool) {
	i, ok := r.byID[id]
	if !ok {
		return DetectorReading{}, false
	}
	return r.Detectors[i], true
}

// Intensity returns the intensity at a detector id, 0 when unknown.
func (r *TraceResult) Intensity(id string) Real {
	d, _ := r.Detector(id)
	return d.Intensity
}

// HitsByDetector maps detector id to its ordered hits.
func (r *TraceResult) HitsByDetector() map[string][]DetectorHit {
	out := make(map[string][]DetectorHit, len(r.Detectors))
	for _, d := range r.Detectors {
		out[d.ID] = d.Hits
	}
	return out
}

// TotalIntensity sums the intensities of all detectors.
func (r *TraceResult) TotalIntensity() Real {
	xs := make([]Real, len(r.Detectors))
	for i, d := range r.Detectors {
		xs[i] = d.Intensity
	}
	return floats.Sum(xs)
}

// EnergyReport is a power budget of one trace. Detected and Lost are
// coherent sums; Expired and Incoherent add segment powers directly.
type EnergyReport struct {
	Input      Real `json:"input" msgpack:"input"` // 1 for an enabled source
	Detected   Real `json:"detected" msgpack:"detected"`
	Lost       Real `json:"lost" msgpack:"lost"`
	Expired    Real `json:"expired" msgpack:"expired"`
	Balance    Real `json:"balance" msgpack:"balance"`       // Detected + Lost + Expired
	Incoherent Real `json:"incoherent" msgpack:"incoherent"` // every terminal |a|^2, always Input
}

func (r *TraceResult) Energy() EnergyReport {
	e := EnergyReport{
		Detected: r.TotalIntensity(),
		Lost:     r.TotalLoss,
		Expired:  r.ExpiredPower,
	}
	if r.Raw != nil {
		if r.Raw.Source.Enabled {
			e.Input = 1
		}
		e.Incoherent = r.Raw.DetectedPower + r.Raw.IncoherentLoss + r.Raw.ExpiredPower
	}
	e.Balance = e.Detected + e.Lost + e.Expired
	return e
}

// CheckConservation verifies sum(intensities) + loss + expired == input
// within tol. Expired power is summed per segment, so layouts where expired
// beams would have interfered, or with one detector fed from several
// directions, are not expected to balance.
func (r *TraceResult) CheckConservation(tol Real) error {
	e := r.Energy()
	if math.Abs(e.Balance-e.Input) > tol {
		return fmt.Errorf("%w: detected %.9f + lost %.9f + expired %.9f = %.9f, input %.0f",
			ErrConservation, e.Detected, e.Lost, e.Expired, e.Balance, e.Input)
	}
	return nil
}
