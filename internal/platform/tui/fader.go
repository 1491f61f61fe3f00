package tui

import (
	"github.com/vovakirdan/subterra/internal/core"
)

// Fader dims the play area between caves. Alpha 0 is fully visible and
// alpha 1 is fully black. At most one fade runs at a time; starting a fade
// cancels the one in progress and continues from the current alpha.
type Fader struct {
	Alpha float64
	speed float64 // alpha units per second
	slot  core.Slot
}

// NewFader creates a fader that starts fully black.
func NewFader(speed float64) *Fader {
	if speed <= 0 {
		speed = 2
	}
	return &Fader{Alpha: 1, speed: speed}
}

// StraightToBlack cancels any fade and blacks out immediately.
func (f *Fader) StraightToBlack() {
	f.slot.Cancel()
	f.Alpha = 1
}

// FadeToBlack starts a fade to black. The returned signal is done once the
// fade finishes or is replaced.
func (f *Fader) FadeToBlack() core.Signal {
	return f.fade("fade-to-black", 1)
}

// FadeToVisible starts a fade to fully visible.
func (f *Fader) FadeToVisible() core.Signal {
	return f.fade("fade-to-visible", 0)
}

func (f *Fader) fade(name string, target float64) core.Signal {
	seq := core.NewSequence(name, func(dt float64) (float64, bool) {
		f.Alpha = core.MoveTowards(f.Alpha, target, f.speed*dt)
		return 0, f.Alpha == target
	})
	return f.slot.Start(seq)
}

// Fading reports whether a fade is in progress.
func (f *Fader) Fading() bool {
	return f.slot.Active()
}

// Tick advances the running fade.
func (f *Fader) Tick(dt float64) {
	f.slot.Tick(dt)
}

// bayer4 is a 4x4 ordered dither matrix.
var bayer4 = [4][4]float64{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// Shaded reports whether the cell at (x, y) is blacked out at the current
// alpha. Terminals have no translucency, so partial alpha blanks a dithered
// share of cells.
func (f *Fader) Shaded(x, y int) bool {
	if f.Alpha <= 0 {
		return false
	}
	if f.Alpha >= 1 {
		return true
	}
	threshold := (bayer4[y&3][x&3] + 0.5) / 16
	return f.Alpha > threshold
}

// Apply blanks the shaded cells of area.
func (f *Fader) Apply(screen *core.Screen, area core.Rect) {
	if f.Alpha <= 0 {
		return
	}
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if f.Shaded(x, y) {
				screen.SetCell(x, y, ' ', core.ColorDefault)
			}
		}
	}
}
