package photongrid

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenRow(s tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawView(t *testing.T) {
	p, res := machZehnderResult(t)
	require.NoError(t, p.Grid.SetClass(Point{0, 0}, Blocked))
	require.NoError(t, p.Grid.SetClass(Point{9, 7}, Gold))

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(60, 20)

	DrawView(screen, p.Grid, res)

	assert.Equal(t, "#.........", screenRow(screen, 0, 10))
	assert.Equal(t, "../***\\...", screenRow(screen, 1, 10))
	assert.Equal(t, "S*/***\\*D.", screenRow(screen, 4, 10))
	assert.Equal(t, "......D...", screenRow(screen, 6, 10))
	assert.Equal(t, "$", screenRow(screen, 7, 10)[9:])
	assert.Contains(t, screenRow(screen, 9, 40), "D1")
	assert.Contains(t, screenRow(screen, 10, 40), "D2")
	assert.Contains(t, screenRow(screen, 11, 40), "detected=1.000000")

	_, _, style, _ := screen.GetContent(6, 6)
	assert.Equal(t, styleDetector, style)
	_, _, style, _ = screen.GetContent(4, 4)
	assert.Equal(t, styleBeam, style)
}
