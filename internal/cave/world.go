package cave

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

// CellSize is the number of collision units per map cell. The resolv space
// uses one broadphase cell per map cell.
const CellSize = 8

// Collision tags.
const (
	TagSolid   = "solid"
	TagPad     = "pad"
	TagEndZone = "endzone"
	TagBonus   = "bonus"
	TagCraft   = "craft"
)

// Bonus is a collectable box placed in a cave.
type Bonus struct {
	BonusSpot
	Active bool

	obj *resolv.Object
}

// Handle is an instantiated cave: its layout, collision space and bonuses.
type Handle struct {
	Cave   catalog.Cave
	Layout *Layout
	Space  *resolv.Space

	static    []*resolv.Object
	bonuses   []*Bonus
	byObject  map[*resolv.Object]*Bonus
	destroyed bool
}

func newHandle(c catalog.Cave, l *Layout) *Handle {
	h := &Handle{
		Cave:     c,
		Layout:   l,
		Space:    resolv.NewSpace(l.Width*CellSize, l.Height*CellSize, CellSize, CellSize),
		byObject: make(map[*resolv.Object]*Bonus),
	}

	for _, r := range l.Walls {
		h.static = append(h.static, runObject(r, TagSolid))
	}
	for _, r := range l.Pads {
		h.static = append(h.static, runObject(r, TagSolid, TagPad))
	}
	for _, r := range l.EndZones {
		h.static = append(h.static, runObject(r, TagEndZone))
	}
	h.Space.Add(h.static...)
	for _, spot := range l.Bonuses {
		b := &Bonus{
			BonusSpot: spot,
			obj: resolv.NewObject(float64(spot.X*CellSize), float64(spot.Y*CellSize),
				CellSize, CellSize, TagBonus),
		}
		h.bonuses = append(h.bonuses, b)
		h.byObject[b.obj] = b
	}
	return h
}

func runObject(r Run, tags ...string) *resolv.Object {
	return resolv.NewObject(float64(r.X*CellSize), float64(r.Y*CellSize),
		float64(r.Len*CellSize), CellSize, tags...)
}

// Destroy implements session.CaveHandle.
func (h *Handle) Destroy() {
	if h.destroyed {
		return
	}
	h.destroyed = true
	h.Space.Remove(h.static...)
	for _, b := range h.bonuses {
		if b.Active {
			h.Space.Remove(b.obj)
		}
	}
	h.static = nil
	h.bonuses = nil
	h.byObject = nil
}

// Destroyed reports whether Destroy was called.
func (h *Handle) Destroyed() bool { return h.destroyed }

// ReactivateBonuses implements session.CaveHandle.
func (h *Handle) ReactivateBonuses() {
	for _, b := range h.bonuses {
		if !b.Active {
			b.Active = true
			h.Space.Add(b.obj)
		}
	}
}

// Bonuses returns the bonus boxes of the cave.
func (h *Handle) Bonuses() []*Bonus { return h.bonuses }

// collect deactivates the bonus backed by obj.
func (h *Handle) collect(obj *resolv.Object) (*Bonus, bool) {
	b, ok := h.byObject[obj]
	if !ok || !b.Active {
		return nil, false
	}
	b.Active = false
	h.Space.Remove(obj)
	return b, true
}

// StartPosition returns the centre of the start cell in cell units.
func (h *Handle) StartPosition() core.Vec { return h.Layout.Start }

// World instantiates caves for the session and tracks the live one.
type World struct {
	logger  *log.Logger
	current *Handle
}

// NewWorld creates an empty world.
func NewWorld(logger *log.Logger) *World {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &World{logger: logger}
}

// LoadCaveContent implements session.ContentProvider.
func (w *World) LoadCaveContent(c catalog.Cave) (session.CaveHandle, error) {
	layout, err := Parse(c.Map)
	if err != nil {
		return nil, fmt.Errorf("cave %s: %w", c.ID, err)
	}
	h := newHandle(c, layout)
	w.current = h
	w.logger.Debug("cave loaded", "id", c.ID, "label", c.Label(),
		"size", fmt.Sprintf("%dx%d", layout.Width, layout.Height), "bonuses", len(layout.Bonuses))
	return h, nil
}

// StartPosition implements session.ContentProvider.
func (w *World) StartPosition(h session.CaveHandle) core.Vec {
	if ch, ok := h.(*Handle); ok {
		return ch.StartPosition()
	}
	return core.Vec{}
}

// Current returns the most recently loaded cave that is still alive.
func (w *World) Current() *Handle {
	if w.current == nil || w.current.destroyed {
		return nil
	}
	return w.current
}

// Validate parses a cave map without instantiating it. It is suitable as a
// catalog.Loader validation hook.
func Validate(c catalog.Cave) error {
	_, err := Parse(c.Map)
	return err
}
