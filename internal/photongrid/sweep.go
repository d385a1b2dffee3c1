package photongrid

import (
	"math"
	"runtime"
	"sync"
)

// SweepPoint is one trace of a phase sweep.
type SweepPoint struct {
	Phase       Real            `json:"phase" msgpack:"phase"`
	Intensities map[string]Real `json:"intensities" msgpack:"intensities"`
	Loss        Real            `json:"loss" msgpack:"loss"`
	Expired     Real            `json:"expired" msgpack:"expired"`
}

// PhaseSteps returns n propagation phases evenly spaced over [0, 2*pi).
func PhaseSteps(n int) []Real {
	out := make([]Real, n)
	for i := range out {
		out[i] = 2 * math.Pi * Real(i) / Real(n)
	}
	return out
}

// SweepPhase traces g once per phase (as TraceOptions.PhasePerStep) across
// NumCPU workers. Results are in input order. g is shared read-only.
func SweepPhase(g *Grid, src SourceDef, opts TraceOptions, phases []Real) []SweepPoint {
	n := len(phases)
	out := make([]SweepPoint, n)
	if n == 0 {
		return out
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	opts.Log = false
	opts.KeepSegments = false

	per, rem := n/workers, n%workers
	var wg sync.WaitGroup
	from := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		if cnt == 0 {
			continue
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				o := opts
				o.PhasePerStep = phases[i]
				res := Trace(g, src, o)
				pt := SweepPoint{
					Phase:       phases[i],
					Intensities: make(map[string]Real, len(res.Detectors)),
					Loss:        res.TotalLoss,
					Expired:     res.ExpiredPower,
				}
				for _, d := range res.Detectors {
					pt.Intensities[d.ID] = d.Intensity
				}
				out[i] = pt
			}
		}(from, from+cnt)
		from += cnt
	}
	wg.Wait()
	DebugLog("Swept %d phases on %d workers", n, workers)
	return out
}

// Curve extracts one detector's intensity across a sweep.
func Curve(points []SweepPoint, id string) []Real {
	out := make([]Real, len(points))
	for i, p := range points {
		out[i] = p.Intensities[id]
	}
	return out
}
