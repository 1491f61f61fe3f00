// Package cave turns ASCII cave maps into playable content: a resolv
// collision space per cave, the player's craft and a terminal renderer.
package cave

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

// Map legend.
const (
	TileEmpty    = ' '
	TileWall     = '#'
	TilePad      = '='
	TileStart    = 'S'
	TileEndZone  = 'E'
	TileShields  = '+'
	TileOneUp    = '1'
	TileEmptyAlt = '.'
)

var (
	ErrNoStart   = errors.New("cave: map has no start marker")
	ErrNoEndZone = errors.New("cave: map has no end zone")
)

// Run is a horizontal strip of identical tiles.
type Run struct {
	X, Y, Len int
}

// BonusSpot is the map position of a bonus box.
type BonusSpot struct {
	X, Y int
	Kind session.BonusKind
}

// Layout is a parsed cave map. Rows are padded to a common width.
type Layout struct {
	Width    int
	Height   int
	Rows     []string
	Start    core.Vec
	Walls    []Run
	Pads     []Run
	EndZones []Run
	Bonuses  []BonusSpot

	cells [][]rune
}

// Parse reads an ASCII map. Ragged rows are padded with empty tiles and
// unknown characters are treated as empty.
func Parse(rows []string) (*Layout, error) {
	if len(rows) == 0 {
		return nil, errors.New("cave: map is empty")
	}

	width := 0
	for _, r := range rows {
		width = max(width, len([]rune(r)))
	}
	l := &Layout{
		Width:  width,
		Height: len(rows),
		Rows:   make([]string, len(rows)),
		cells:  make([][]rune, len(rows)),
	}

	foundStart := false
	for y, row := range rows {
		runes := []rune(row)
		if pad := width - len(runes); pad > 0 {
			runes = append(runes, []rune(strings.Repeat(" ", pad))...)
		}
		for x, r := range runes {
			switch r {
			case TileStart:
				if !foundStart {
					l.Start = core.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
					foundStart = true
				}
			case TileShields:
				l.Bonuses = append(l.Bonuses, BonusSpot{X: x, Y: y, Kind: session.BonusFullShields})
			case TileOneUp:
				l.Bonuses = append(l.Bonuses, BonusSpot{X: x, Y: y, Kind: session.BonusOneUp})
			case TileWall, TilePad, TileEndZone, TileEmpty:
			default:
				runes[x] = TileEmpty
			}
		}
		l.Walls = appendRuns(l.Walls, runes, y, TileWall)
		l.Pads = appendRuns(l.Pads, runes, y, TilePad)
		l.EndZones = appendRuns(l.EndZones, runes, y, TileEndZone)
		l.Rows[y] = string(runes)
		l.cells[y] = runes
	}

	if !foundStart {
		return nil, ErrNoStart
	}
	if len(l.EndZones) == 0 {
		return nil, ErrNoEndZone
	}
	return l, nil
}

// Tile returns the tile at a cell, or TileEmpty outside the map.
func (l *Layout) Tile(x, y int) rune {
	if y < 0 || y >= l.Height || x < 0 || x >= l.Width {
		return TileEmpty
	}
	return l.cells[y][x]
}

// String renders the padded map.
func (l *Layout) String() string {
	return strings.Join(l.Rows, "\n")
}

func (r Run) String() string {
	return fmt.Sprintf("(%d,%d)x%d", r.X, r.Y, r.Len)
}

// appendRuns merges consecutive tiles of kind in a row into runs.
func appendRuns(runs []Run, row []rune, y int, kind rune) []Run {
	start := -1
	for x := 0; x <= len(row); x++ {
		if x < len(row) && row[x] == kind {
			if start < 0 {
				start = x
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, Run{X: start, Y: y, Len: x - start})
			start = -1
		}
	}
	return runs
}
