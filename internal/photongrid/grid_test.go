package photongrid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	require.NoError(t, err)
	return g
}

func snapshot(g *Grid) ([]Component, []Point, []Point) {
	return g.Components(), g.Cells(Blocked), g.Cells(Gold)
}

func TestNewGridRejectsBadSize(t *testing.T) {
	for _, wh := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := NewGrid(wh[0], wh[1])
		assert.Error(t, err, "size %v", wh)
	}
}

func TestClassifyOutOfBoundsIsBlocked(t *testing.T) {
	g := mustGrid(t, 4, 3)
	assert.Equal(t, Empty, g.Classify(Point{0, 0}))
	assert.Equal(t, Blocked, g.Classify(Point{-1, 0}))
	assert.Equal(t, Blocked, g.Classify(Point{4, 0}))
	assert.Equal(t, Blocked, g.Classify(Point{0, 3}))
}

func TestPlaceAndComponentAt(t *testing.T) {
	g := mustGrid(t, 5, 5)
	c, err := g.Place(Point{2, 3}, Mirror, Slash)
	require.NoError(t, err)
	assert.Equal(t, "mirror@2,3", c.ID)

	got, ok := g.ComponentAt(Point{2, 3})
	require.True(t, ok)
	assert.Equal(t, *c, got)
	assert.Equal(t, 1, g.Len())

	_, ok = g.ComponentAt(Point{1, 1})
	assert.False(t, ok)
	_, ok = g.ComponentAt(Point{9, 9})
	assert.False(t, ok)

	pm, err := g.Place(Point{0, 0}, PartialMirror, Backslash)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pm.Reflectivity)
}

func TestPlacementRejectionLeavesGridUnchanged(t *testing.T) {
	g := mustGrid(t, 6, 4)
	require.NoError(t, g.SetClass(Point{1, 1}, Blocked))
	require.NoError(t, g.SetClass(Point{4, 2}, Gold))
	_, err := g.Place(Point{3, 3}, Detector, NoOrientation)
	require.NoError(t, err)

	cases := []struct {
		name string
		c    Component
		want error
	}{
		{"out of bounds", Component{Kind: Mirror, Pos: Point{6, 0}, Orientation: Slash}, ErrOutOfBounds},
		{"negative", Component{Kind: Detector, Pos: Point{-1, 2}}, ErrOutOfBounds},
		{"occupied", Component{Kind: Mirror, Pos: Point{3, 3}, Orientation: Slash}, ErrOccupied},
		{"blocked", Component{Kind: BeamSplitter, Pos: Point{1, 1}, Orientation: Backslash}, ErrBlockedCell},
		{"mirror without orientation", Component{Kind: Mirror, Pos: Point{0, 0}}, ErrInvalidComponent},
		{"detector with orientation", Component{Kind: Detector, Pos: Point{0, 0}, Orientation: Slash}, ErrInvalidComponent},
		{"reflectivity above one", Component{Kind: PartialMirror, Pos: Point{0, 0}, Orientation: Slash, Reflectivity: 1.5}, ErrInvalidComponent},
		{"unknown kind", Component{Kind: Kind(42), Pos: Point{0, 0}}, ErrInvalidComponent},
		{"loss above one", Component{Kind: Mirror, Pos: Point{0, 0}, Orientation: Slash, Loss: 1.5}, ErrInvalidComponent},
		{"negative loss", Component{Kind: BeamSplitter, Pos: Point{0, 0}, Orientation: Slash, Loss: -0.1}, ErrInvalidComponent},
		{"lossy detector", Component{Kind: Detector, Pos: Point{0, 0}, Loss: 0.5}, ErrInvalidComponent},
		{"duplicate id", Component{ID: "detector@3,3", Kind: Mirror, Pos: Point{0, 0}, Orientation: Slash}, ErrDuplicateID},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			comps, blocked, gold := snapshot(g)
			err := g.PlaceComponent(tc.c)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var pe *PlacementError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.c.Pos, pe.Pos)

			comps2, blocked2, gold2 := snapshot(g)
			if diff := cmp.Diff(comps, comps2); diff != "" {
				t.Fatalf("components changed (-before +after):\n%s", diff)
			}
			assert.Equal(t, blocked, blocked2)
			assert.Equal(t, gold, gold2)
			assert.Equal(t, 1, g.Len())
		})
	}
}

func TestRemove(t *testing.T) {
	g := mustGrid(t, 3, 3)
	_, err := g.Place(Point{1, 1}, Mirror, Backslash)
	require.NoError(t, err)

	before := g.Clone()
	g.Remove(Point{0, 0})
	g.Remove(Point{7, 7})
	if diff := cmp.Diff(before.Components(), g.Components()); diff != "" {
		t.Fatalf("remove on an empty cell changed the grid:\n%s", diff)
	}

	g.Remove(Point{1, 1})
	_, ok := g.ComponentAt(Point{1, 1})
	assert.False(t, ok)
	assert.Equal(t, 0, g.Len())

	_, err = g.Place(Point{1, 1}, Detector, NoOrientation)
	assert.NoError(t, err, "cell is free again after remove")
}

func TestComponentIDsAreUnique(t *testing.T) {
	g := mustGrid(t, 5, 5)
	require.NoError(t, g.PlaceComponent(Component{ID: "D", Kind: Detector, Pos: Point{1, 1}}))

	err := g.PlaceComponent(Component{ID: "D", Kind: Detector, Pos: Point{3, 3}})
	assert.ErrorIs(t, err, ErrDuplicateID)
	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, Point{3, 3}, pe.Pos)
	_, ok := g.ComponentAt(Point{3, 3})
	assert.False(t, ok)

	snap := g.Clone()
	assert.ErrorIs(t, snap.PlaceComponent(Component{ID: "D", Kind: Detector, Pos: Point{4, 4}}), ErrDuplicateID)

	g.Remove(Point{1, 1})
	assert.NoError(t, g.PlaceComponent(Component{ID: "D", Kind: Detector, Pos: Point{3, 3}}), "id is free again after remove")
}

func TestSetClass(t *testing.T) {
	g := mustGrid(t, 3, 3)
	_, err := g.Place(Point{2, 2}, Detector, NoOrientation)
	require.NoError(t, err)

	assert.ErrorIs(t, g.SetClass(Point{2, 2}, Blocked), ErrOccupied)
	assert.NoError(t, g.SetClass(Point{2, 2}, Gold))
	assert.Equal(t, Gold, g.Classify(Point{2, 2}))
	assert.ErrorIs(t, g.SetClass(Point{3, 0}, Gold), ErrOutOfBounds)
	assert.Error(t, g.SetClass(Point{0, 0}, CellClass(9)))
}

func TestComponentsAndDetectorsRowMajor(t *testing.T) {
	g := mustGrid(t, 4, 4)
	for _, p := range []Point{{3, 2}, {0, 3}, {1, 0}} {
		_, err := g.Place(p, Detector, NoOrientation)
		require.NoError(t, err)
	}
	_, err := g.Place(Point{2, 0}, Mirror, Slash)
	require.NoError(t, err)

	var pos []Point
	for _, d := range g.Detectors() {
		pos = append(pos, d.Pos)
	}
	assert.Equal(t, []Point{{1, 0}, {3, 2}, {0, 3}}, pos)
	assert.Len(t, g.Components(), 4)
}

func TestCloneIsIndependent(t *testing.T) {
	g := mustGrid(t, 3, 3)
	_, err := g.Place(Point{0, 0}, Mirror, Slash)
	require.NoError(t, err)
	c := g.Clone()

	g.Remove(Point{0, 0})
	require.NoError(t, g.SetClass(Point{1, 1}, Blocked))

	_, ok := c.ComponentAt(Point{0, 0})
	assert.True(t, ok)
	assert.Equal(t, Empty, c.Classify(Point{1, 1}))
}
