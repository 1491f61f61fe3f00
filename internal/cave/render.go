package cave

import (
	"math"

	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

// Glyphs used by the renderer.
const (
	glyphWall      = '█'
	glyphPad       = '▀'
	glyphEndZone   = '░'
	glyphShields   = '+'
	glyphOneUp     = '♥'
	glyphFlame     = '*'
	glyphExplosion = '✶'
)

var headingGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// HeadingGlyph returns the arrow closest to an angle in degrees.
func HeadingGlyph(deg float64) rune {
	i := int(math.Round(normalizeAngle(deg)/45)) % len(headingGlyphs)
	return headingGlyphs[i]
}

// Camera returns the top-left map cell shown in a view of the given size so
// that focus stays centred, clamped to the map edges. Maps smaller than the
// view get a negative offset and are centred.
func Camera(l *Layout, focus core.Vec, viewW, viewH int) (int, int) {
	return cameraAxis(l.Width, focus.X, viewW), cameraAxis(l.Height, focus.Y, viewH)
}

func cameraAxis(size int, focus float64, view int) int {
	if size <= view {
		return -(view - size) / 2
	}
	return core.Clamp(int(focus)-view/2, 0, size-view)
}

// Render draws the cave and craft into area of screen.
func Render(screen *core.Screen, area core.Rect, h *Handle, craft *Craft) {
	if h == nil || h.Destroyed() {
		return
	}
	l := h.Layout
	focus := l.Start
	if craft != nil && craft.Active() {
		focus = craft.Pos
	}
	camX, camY := Camera(l, focus, area.W, area.H)

	for sy := 0; sy < area.H; sy++ {
		for sx := 0; sx < area.W; sx++ {
			switch l.Tile(camX+sx, camY+sy) {
			case TileWall:
				screen.SetCell(area.X+sx, area.Y+sy, glyphWall, core.ColorWall)
			case TilePad:
				screen.SetCell(area.X+sx, area.Y+sy, glyphPad, core.ColorStartPad)
			case TileEndZone:
				screen.SetCell(area.X+sx, area.Y+sy, glyphEndZone, core.ColorEndZone)
			}
		}
	}

	for _, b := range h.Bonuses() {
		if !b.Active {
			continue
		}
		glyph, color := glyphShields, core.ColorShields
		if b.Kind == session.BonusOneUp {
			glyph, color = glyphOneUp, core.ColorOneUp
		}
		plot(screen, area, b.X-camX, b.Y-camY, glyph, color)
	}

	if craft == nil || !craft.Active() {
		return
	}
	cx := int(math.Floor(craft.Pos.X)) - camX
	cy := int(math.Floor(craft.Pos.Y)) - camY
	if craft.Exploded() {
		plot(screen, area, cx, cy, glyphExplosion, core.ColorDamage)
		return
	}
	if craft.Thrusting() {
		back := core.Heading(craft.Angle).Scale(-1)
		plot(screen, area, cx+int(math.Round(back.X)), cy+int(math.Round(back.Y)), glyphFlame, core.ColorFlame)
	}
	plot(screen, area, cx, cy, HeadingGlyph(craft.Angle), craft.Color)
}

func plot(screen *core.Screen, area core.Rect, x, y int, r rune, c core.Color) {
	if x < 0 || y < 0 || x >= area.W || y >= area.H {
		return
	}
	screen.SetCell(area.X+x, area.Y+y, r, c)
}
