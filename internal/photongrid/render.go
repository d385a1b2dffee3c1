package photongrid

import (
	"image"
	"image/color"
	"math"
)

var (
	colEmpty    = color.NRGBA{R: 16, G: 16, B: 24, A: 255}
	colBlocked  = color.NRGBA{R: 90, G: 90, B: 90, A: 255}
	colGold     = color.NRGBA{R: 70, G: 58, B: 12, A: 255}
	colGridLine = color.NRGBA{R: 32, G: 32, B: 44, A: 255}
	colMirror   = color.NRGBA{R: 230, G: 230, B: 240, A: 255}
	colSplitter = color.NRGBA{R: 80, G: 200, B: 230, A: 255}
	colPartial  = color.NRGBA{R: 150, G: 120, B: 230, A: 255}
	colDetector = color.NRGBA{R: 60, G: 220, B: 90, A: 255}
	colSource   = color.NRGBA{R: 230, G: 60, B: 200, A: 255}
)

// exposure sums |a|^2 per cell over every kept segment's own stretch of path,
// up to and including step upto. Needs a trace run with KeepSegments.
func exposure(raw *RawTrace, upto int) []Real {
	out := make([]Real, raw.W*raw.H)
	for i := range raw.Segments {
		s := &raw.Segments[i]
		p := s.Power()
		for k, c := range s.Own() {
			if s.Born+1+k > upto {
				break
			}
			if c.X < 0 || c.Y < 0 || c.X >= raw.W || c.Y >= raw.H {
				continue
			}
			out[c.Y*raw.W+c.X] += p
		}
	}
	return out
}

// lastStep returns the largest step reached by any kept segment.
func lastStep(raw *RawTrace) int {
	n := 0
	for i := range raw.Segments {
		n = imax(n, raw.Segments[i].Steps)
	}
	return n
}

// renderFrame rasterizes g at cellPx pixels per cell with beam exposure on top,
// normalized to the frame's peak and gamma mapped.
func renderFrame(g *Grid, exp []Real, cellPx int, gamma Real) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.W*cellPx, g.H*cellPx))
	peak := 0.0
	for _, v := range exp {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}
	toByte := func(v Real) uint8 {
		if v <= 0 {
			return 0
		}
		n := v / peak
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint8(math.Round(n * 255))
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := Point{x, y}
			bg := colEmpty
			switch g.Classify(p) {
			case Blocked:
				bg = colBlocked
			case Gold:
				bg = colGold
			}
			if len(exp) == g.W*g.H {
				if b := toByte(exp[g.idx(p)]); b > 0 {
					bg = blend(bg, color.NRGBA{R: 255, G: 40, B: 30, A: 255}, b)
				}
			}
			fillCell(img, p, cellPx, bg)
			if c, ok := g.ComponentAt(p); ok {
				drawComponent(img, c, cellPx)
			}
		}
	}
	return img
}

func blend(a, b color.NRGBA, t uint8) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8((int(x)*(255-int(t)) + int(y)*int(t)) / 255)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func fillCell(img *image.NRGBA, p Point, px int, c color.NRGBA) {
	x0, y0 := p.X*px, p.Y*px
	for j := 0; j < px; j++ {
		for i := 0; i < px; i++ {
			if i == 0 || j == 0 {
				img.SetNRGBA(x0+i, y0+j, colGridLine)
				continue
			}
			img.SetNRGBA(x0+i, y0+j, c)
		}
	}
}

func drawComponent(img *image.NRGBA, c Component, px int) {
	x0, y0 := c.Pos.X*px, c.Pos.Y*px
	pad := imax(1, px/6)
	switch c.Kind {
	case Detector, Source:
		col := colDetector
		if c.Kind == Source {
			col = colSource
		}
		for j := pad; j < px-pad; j++ {
			for i := pad; i < px-pad; i++ {
				img.SetNRGBA(x0+i, y0+j, col)
			}
		}
	default:
		col := colMirror
		switch c.Kind {
		case BeamSplitter:
			col = colSplitter
		case PartialMirror:
			col = colPartial
		}
		// '/' runs bottom-left to top-right, '\' top-left to bottom-right
		for k := pad; k < px-pad; k++ {
			y := k
			if c.Orientation == Slash {
				y = px - 1 - k
			}
			img.SetNRGBA(x0+k, y0+y, col)
			if k+1 < px-pad {
				img.SetNRGBA(x0+k+1, y0+y, col)
			}
		}
	}
}
