package photongrid

import (
	"image/png"
	"os"
	"path/filepath"
)

// SavePNG writes one snapshot of g with the full beam exposure of res.
// Beams are only drawn when res was traced with KeepSegments.
func SavePNG(g *Grid, res *TraceResult, path string, cellPx int, gamma Real) error {
	if cellPx <= 0 {
		cellPx = CellPx
	}
	var exp []Real
	if res != nil && res.Raw != nil {
		exp = exposure(res.Raw, lastStep(res.Raw))
	}
	img := renderFrame(g, exp, cellPx, gamma)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
