package cave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

func TestParsePadsRaggedRows(t *testing.T) {
	l, err := Parse([]string{
		"#####",
		"#S",
		"#=  E#",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, l.Width)
	assert.Equal(t, 3, l.Height)
	assert.Equal(t, "#S    ", l.Rows[1])
	assert.Equal(t, core.Vec{X: 1.5, Y: 1.5}, l.Start)
	assert.Equal(t, TileEmpty, l.Tile(5, 0))
	assert.Equal(t, TileEmpty, l.Tile(-1, 0))
	assert.Equal(t, TileEndZone, l.Tile(4, 2))
}

func TestParseMergesRuns(t *testing.T) {
	l, err := Parse([]string{
		"########",
		"#S  EE #",
		"#==  ###",
	})
	require.NoError(t, err)

	assert.Equal(t, []Run{{0, 0, 8}, {0, 1, 1}, {7, 1, 1}, {0, 2, 1}, {5, 2, 3}}, l.Walls)
	assert.Equal(t, []Run{{1, 2, 2}}, l.Pads)
	assert.Equal(t, []Run{{4, 1, 2}}, l.EndZones)
}

func TestParseBonusesAndUnknownTiles(t *testing.T) {
	l, err := Parse([]string{"#S+1?E#"})
	require.NoError(t, err)

	assert.Equal(t, []BonusSpot{
		{X: 2, Y: 0, Kind: session.BonusFullShields},
		{X: 3, Y: 0, Kind: session.BonusOneUp},
	}, l.Bonuses)
	assert.Equal(t, TileEmpty, l.Tile(4, 0))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	assert.Error(t, err)

	_, err = Parse([]string{"#  E#"})
	assert.ErrorIs(t, err, ErrNoStart)

	_, err = Parse([]string{"# S #"})
	assert.ErrorIs(t, err, ErrNoEndZone)
}

func TestHeadingGlyph(t *testing.T) {
	assert.Equal(t, '↑', HeadingGlyph(0))
	assert.Equal(t, '→', HeadingGlyph(90))
	assert.Equal(t, '↙', HeadingGlyph(225))
	assert.Equal(t, '↖', HeadingGlyph(-45))
	assert.Equal(t, '↑', HeadingGlyph(350))
}

func TestCamera(t *testing.T) {
	l := &Layout{Width: 100, Height: 10}

	x, y := Camera(l, core.Vec{X: 50, Y: 5}, 20, 20)
	assert.Equal(t, 40, x)
	assert.Equal(t, -5, y, "short maps are centred")

	x, _ = Camera(l, core.Vec{X: 2, Y: 5}, 20, 20)
	assert.Equal(t, 0, x)

	x, _ = Camera(l, core.Vec{X: 99, Y: 5}, 20, 20)
	assert.Equal(t, 80, x)
}
