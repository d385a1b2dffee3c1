package photongrid

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var (
	styleEmpty    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBlocked  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorGray)
	styleGold     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBeam     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleMirror   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleSplitter = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleDetector = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleSource   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
	styleText     = tcell.StyleDefault
)

// cellGlyph picks the rune and style shown for one cell.
func cellGlyph(g *Grid, p Point, lit bool) (rune, tcell.Style) {
	if c, ok := g.ComponentAt(p); ok {
		switch c.Kind {
		case Detector:
			return 'D', styleDetector
		case Source:
			return 'S', styleSource
		case BeamSplitter, PartialMirror:
			if c.Orientation == Slash {
				return '/', styleSplitter
			}
			return '\\', styleSplitter
		default:
			if c.Orientation == Slash {
				return '/', styleMirror
			}
			return '\\', styleMirror
		}
	}
	switch g.Classify(p) {
	case Blocked:
		return '#', styleBlocked
	case Gold:
		if lit {
			return '$', styleBeam
		}
		return '$', styleGold
	}
	if lit {
		return '*', styleBeam
	}
	return '.', styleEmpty
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// DrawView renders g on s, one cell per grid cell, with lit beam cells from
// res (needs KeepSegments) and a detector table below the grid.
func DrawView(s tcell.Screen, g *Grid, res *TraceResult) {
	var exp []Real
	if res != nil && res.Raw != nil {
		exp = exposure(res.Raw, lastStep(res.Raw))
	}
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			p := Point{x, y}
			lit := len(exp) == g.W*g.H && exp[g.idx(p)] > 0
			r, st := cellGlyph(g, p, lit)
			s.SetContent(x, y, r, nil, st)
		}
	}
	if res == nil {
		return
	}
	row := g.H + 1
	for _, d := range res.Detectors {
		drawText(s, 0, row, styleText, fmt.Sprintf("%-12s (%d,%d) I=%.6f hits=%d", d.ID, d.Pos.X, d.Pos.Y, d.Intensity, len(d.Hits)))
		row++
	}
	e := res.Energy()
	drawText(s, 0, row, styleText, fmt.Sprintf("detected=%.6f lost=%.6f expired=%.6f", e.Detected, e.Lost, e.Expired))
}

// ShowView opens the terminal, draws the traced layout and waits for q, Esc or Ctrl-C.
func ShowView(g *Grid, res *TraceResult) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		screen.Clear()
		DrawView(screen, g, res)
		screen.Show()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return nil
		}
	}
}
