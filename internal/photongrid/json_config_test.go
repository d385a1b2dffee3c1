package photongrid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadLayoutJSONAndHCLAgree(t *testing.T) {
	js, err := LoadLayout(filepath.Join("..", "..", "layouts", "mach_zehnder.json"))
	require.NoError(t, err)
	hc, err := LoadLayout(filepath.Join("..", "..", "layouts", "mach_zehnder.hcl"))
	require.NoError(t, err)

	if diff := cmp.Diff(js.Grid.Components(), hc.Grid.Components()); diff != "" {
		t.Fatalf("JSON and HCL layouts differ (-json +hcl):\n%s", diff)
	}
	assert.Equal(t, js.Grid.Cells(Blocked), hc.Grid.Cells(Blocked))
	assert.Equal(t, js.Grid.Cells(Gold), hc.Grid.Cells(Gold))
	assert.Equal(t, js.Source, hc.Source)

	assert.Equal(t, []Point{{0, 0}, {9, 0}, {0, 7}, {9, 7}}, js.Grid.Cells(Blocked))
	assert.Equal(t, []Point{{4, 1}, {4, 4}}, js.Grid.Cells(Gold))

	c, ok := js.Grid.ComponentAt(Point{0, 4})
	require.True(t, ok)
	assert.Equal(t, Source, c.Kind)
}

func TestMachZehnderLayoutFile(t *testing.T) {
	l, err := LoadLayout(filepath.Join("..", "..", "layouts", "mach_zehnder.json"))
	require.NoError(t, err)
	res := Trace(l.Grid, l.Source, l.Options)
	assert.InDelta(t, 0, res.Intensity("D1"), tol)
	assert.InDelta(t, 1, res.Intensity("D2"), tol)
	assert.InDelta(t, 0.5, res.Gold[Point{4, 1}], tol)
	assert.InDelta(t, 0.5, res.Gold[Point{4, 4}], tol)
}

func TestPartialBlockedLayoutFile(t *testing.T) {
	l, err := LoadLayout(filepath.Join("..", "..", "layouts", "partial_blocked.json"))
	require.NoError(t, err)
	res := Trace(l.Grid, l.Source, l.Options)
	assert.InDelta(t, 0.7, res.Intensity("OUT"), tol)
	assert.InDelta(t, 0.3, res.TotalLoss, tol)
	assert.InDelta(t, 1, res.Gold[Point{4, 3}], tol)
	assert.InDelta(t, 0.7, res.Gold[Point{9, 3}], tol)
	assert.NoError(t, res.CheckConservation(ConservationTol))
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiny.json", `{"source": {"x": 0, "y": 0, "direction": "S"}}`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, GridW, cfg.Width)
	assert.Equal(t, GridH, cfg.Height)
	assert.Equal(t, PNGOut, cfg.PNGOut)
	assert.Equal(t, GIFOut, cfg.GIFOut)
	assert.Equal(t, ReportOut, cfg.ReportOut)
	assert.Equal(t, SweepSteps, cfg.SweepSteps)
	assert.Equal(t, CellPx, cfg.CellPx)
}

func TestLoadLayoutErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"nosource.json":  `{"width": 4, "height": 4}`,
		"badjson.json":   `{"width": 4,`,
		"baddir.json":    `{"source": {"x": 0, "y": 0, "direction": "NE"}}`,
		"badkind.json":   `{"source": {"x": 0, "y": 0, "direction": "E"}, "components": [{"kind": "prism", "x": 1, "y": 1}]}`,
		"overlap.json":   `{"source": {"x": 0, "y": 0, "direction": "E"}, "components": [{"kind": "detector", "x": 0, "y": 0}]}`,
		"badcell.json":   `{"source": {"x": 0, "y": 0, "direction": "E"}, "blocked": [[1, 2, 3]]}`,
		"badsyntax.hcl":  `width = `,
		"missingsrc.hcl": `width = 4`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadLayout(writeFile(t, dir, name, body))
			assert.Error(t, err)
		})
	}
	_, err := LoadLayout(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}

func TestLayoutOverlapIsPlacementError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "overlap.json", `{
		"width": 5, "height": 5,
		"source": {"x": 0, "y": 2, "direction": "E"},
		"components": [
			{"kind": "mirror", "x": 2, "y": 2, "orientation": "/"},
			{"kind": "detector", "x": 2, "y": 2}
		]
	}`)
	_, err := LoadLayout(path)
	assert.ErrorIs(t, err, ErrOccupied)
}

func TestLayoutFieldFilesRelativeToLayout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blocked.txt", "3,0\nbad line\n99,99\n")
	path := writeFile(t, dir, "l.hcl", `
width  = 6
height = 3
blocked_file = "blocked.txt"
gold = [[1, 1]]
source {
  x         = 0
  y         = 0
  direction = "east"
  disabled  = true
}
component "partial_mirror" {
  x            = 4
  y            = 1
  orientation  = "backslash"
  reflectivity = 0.2
}
`)
	l, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, []Point{{3, 0}}, l.Grid.Cells(Blocked))
	assert.Equal(t, []Point{{1, 1}}, l.Grid.Cells(Gold))
	assert.Len(t, l.FieldErrors, 2)
	assert.False(t, l.Source.Enabled)

	c, ok := l.Grid.ComponentAt(Point{4, 1})
	require.True(t, ok)
	assert.Equal(t, PartialMirror, c.Kind)
	assert.Equal(t, Backslash, c.Orientation)
	assert.InDelta(t, 0.2, c.Reflectivity, tol)
	assert.Equal(t, "partial_mirror@4,1", c.ID)
}

func TestLayoutDuplicateIDIsPlacementError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dup.json", `{
		"width": 6, "height": 4,
		"source": {"x": 0, "y": 1, "direction": "E"},
		"components": [
			{"id": "D", "kind": "detector", "x": 4, "y": 1},
			{"id": "D", "kind": "detector", "x": 4, "y": 2}
		]
	}`)
	_, err := LoadLayout(path)
	assert.ErrorIs(t, err, ErrDuplicateID)
	var pe *PlacementError
	assert.ErrorAs(t, err, &pe)
}

func TestLayoutComponentLoss(t *testing.T) {
	path := writeFile(t, t.TempDir(), "lossy.hcl", `
width  = 8
height = 5
source {
  x         = 0
  y         = 2
  direction = "E"
}
component "mirror" {
  id          = "M"
  x           = 3
  y           = 2
  orientation = "/"
  loss        = 0.25
}
component "detector" {
  id = "D"
  x  = 3
  y  = 0
}
`)
	l, err := LoadLayout(path)
	require.NoError(t, err)
	m, ok := l.Grid.ComponentAt(Point{3, 2})
	require.True(t, ok)
	assert.InDelta(t, 0.25, m.Loss, tol)

	res := Trace(l.Grid, l.Source, l.Options)
	assert.InDelta(t, 0.75, res.Intensity("D"), tol)
	assert.InDelta(t, 0.25, res.TotalLoss, tol)
}

func TestLayoutOutputsRelativeToLayout(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "abs.gif")
	path := writeFile(t, dir, "l.json", `{
		"source": {"x": 0, "y": 0, "direction": "S"},
		"pngOut": "out/l.png",
		"gifOut": "`+filepath.ToSlash(abs)+`",
		"reportOut": "l.report.json"
	}`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "l.png"), cfg.PNGOut)
	assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.GIFOut))
	assert.Equal(t, filepath.Join(dir, "l.report.json"), cfg.ReportOut)
}
