package photongrid

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"path/filepath"
)

// SaveGIF writes an animation of the beams spreading through g, one frame per
// propagation step (strided down to MaxGIFFrames). delay is in 100ths of a second.
func SaveGIF(g *Grid, res *TraceResult, path string, cellPx, delay int, gamma Real) error {
	if res == nil || res.Raw == nil {
		return fmt.Errorf("no trace to animate")
	}
	if cellPx <= 0 {
		cellPx = CellPx
	}
	raw := res.Raw
	steps := lastStep(raw)
	stride := imax(1, (steps+MaxGIFFrames-1)/MaxGIFFrames)
	n := steps/stride + 1

	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, n+1),
		Delay:     make([]int, 0, n+1),
		LoopCount: 0,
	}
	for k := 0; ; k += stride {
		if k > steps {
			k = steps
		}
		if k%imax(1, steps/10) == 0 {
			DebugLog("[GIF] step %d/%d", k, steps)
		}
		rgba := renderFrame(g, exposure(raw, k), cellPx, gamma)
		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})
		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, delay)
		if k == steps {
			break
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
