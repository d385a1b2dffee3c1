package photongrid

import "math"

// coupling holds the complex transmission and reflection coefficients of a
// cell. Phase convention, applied everywhere:
//   - mirror:        r = -1 (pi on reflection), no transmission
//   - beam splitter: t = 1/sqrt2, r = i/sqrt2
//   - partial mirror with power reflectivity R: t = sqrt(1-R), r = -sqrt(R)
//
// so |t|^2 + |r|^2 = 1 for every lossless element.
type coupling struct {
	t, r complex128
}

var (
	mirrorCoupling   = coupling{t: 0, r: -1}
	splitterCoupling = coupling{t: complex(invSqrt2, 0), r: complex(0, invSqrt2)}
)

func partialCoupling(reflectivity Real) coupling {
	return coupling{
		t: complex(math.Sqrt(1-reflectivity), 0),
		r: complex(-math.Sqrt(reflectivity), 0),
	}
}

func couplingOf(c *Component) coupling {
	switch c.Kind {
	case Mirror:
		return mirrorCoupling
	case BeamSplitter:
		return splitterCoupling
	case PartialMirror:
		return partialCoupling(c.Reflectivity)
	}
	return coupling{t: 1}
}
