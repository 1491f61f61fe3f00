package cave

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/subterra/internal/config"
	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

const (
	craftSize     = 6 // collision units, smaller than a cell
	flashInterval = 0.1
	padFriction   = 0.8
	overlapEps    = 1e-6
)

// Craft is the pilot's ship. It implements session.PlayerAgent and reports
// collisions, end-zone progress and bonus pickups to a PlayerListener.
type Craft struct {
	cfg        config.CraftConfig
	difficulty *config.DifficultyManager
	world      *World
	listener   session.PlayerListener
	logger     *log.Logger

	Pos   core.Vec // Centre, in cell units
	Vel   core.Vec // Cells per second
	Angle float64  // Degrees, 0 is up, clockwise
	Color core.Color

	shield       session.Shield
	hold         session.EndZoneHold
	handle       *Handle
	obj          *resolv.Object
	gravity      float64
	maxSpeed     float64
	active       bool
	suspended    bool
	invulnerable bool
	exploded     bool
	thrusting    bool
	thrustFor    float64
	leftFor      float64
	rightFor     float64
	hitCooldown  float64
	flash        core.Slot
}

// NewCraft creates an inactive craft whose shield absorbs maxDamage hits.
// difficulty may be nil to fly with the base tuning.
func NewCraft(cfg config.CraftConfig, maxDamage int, difficulty *config.DifficultyManager, world *World, logger *log.Logger) *Craft {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Craft{
		cfg:        cfg,
		difficulty: difficulty,
		world:      world,
		logger:     logger,
		Color:      core.ColorCraft,
		shield:     session.NewShield(maxDamage),
		gravity:    cfg.Gravity,
		maxSpeed:   cfg.MaxSpeed,
	}
}

// SetListener sets the receiver of the craft's signals.
func (c *Craft) SetListener(l session.PlayerListener) {
	c.listener = l
}

// ResetState places the craft at start, at rest and pointing up, inside the
// world's current cave.
func (c *Craft) ResetState(start core.Vec) {
	if c.obj != nil && c.obj.Space != nil {
		c.obj.Space.Remove(c.obj)
	}
	c.obj = nil

	c.Pos = start
	c.Vel = core.Vec{}
	c.Angle = 0
	c.exploded = false
	c.thrusting = false
	c.thrustFor, c.leftFor, c.rightFor = 0, 0, 0
	c.hitCooldown = 0
	c.hold = session.EndZoneHold{}
	c.flash.Cancel()
	c.Color = core.ColorCraft

	c.handle = c.world.Current()
	if c.handle == nil {
		return
	}

	c.gravity, c.maxSpeed = c.cfg.Gravity, c.cfg.MaxSpeed
	if c.difficulty != nil {
		level := c.handle.Cave.Level
		c.gravity = c.difficulty.Gravity(c.cfg.Gravity, level)
		c.maxSpeed = c.difficulty.MaxSpeed(c.cfg.MaxSpeed, level)
	}

	c.obj = resolv.NewObject(start.X*CellSize-craftSize/2, start.Y*CellSize-craftSize/2,
		craftSize, craftSize, TagCraft)
	c.handle.Space.Add(c.obj)
}

// SetActive shows or hides the craft. Inactive crafts neither move nor collide.
func (c *Craft) SetActive(active bool) {
	c.active = active
	if !active {
		c.thrusting = false
	}
}

// RemoveAllDamage restores the shield.
func (c *Craft) RemoveAllDamage() {
	c.shield.Repair()
}

// SetSuspended freezes movement and input.
func (c *Craft) SetSuspended(suspended bool) {
	c.suspended = suspended
}

// SetInvulnerable makes the shield ignore hits.
func (c *Craft) SetInvulnerable(invulnerable bool) {
	c.invulnerable = invulnerable
}

// Active reports whether the craft is in play.
func (c *Craft) Active() bool { return c.active }

// Suspended reports whether the craft is frozen.
func (c *Craft) Suspended() bool { return c.suspended }

// Exploded reports whether the last hit destroyed the craft.
func (c *Craft) Exploded() bool { return c.exploded }

// Thrusting reports whether the engine fired during the last update.
func (c *Craft) Thrusting() bool { return c.thrusting }

// Shield returns the shield state.
func (c *Craft) Shield() session.Shield { return c.shield }

// HandleInput registers control presses. Terminals report presses, not
// releases, so a press keeps its control engaged for InputHold seconds and
// key repeat extends it.
func (c *Craft) HandleInput(frame core.InputFrame) {
	if !c.active || c.suspended || c.exploded {
		return
	}
	hold := c.cfg.InputHold
	if frame.Has(core.ActionThrust) {
		c.thrustFor = hold
	}
	if frame.Has(core.ActionRotateLeft) {
		c.leftFor = hold
	}
	if frame.Has(core.ActionRotateRight) {
		c.rightFor = hold
	}
}

// Update advances the craft by dt seconds.
func (c *Craft) Update(dt float64) {
	c.flash.Tick(dt)
	if !c.active || c.suspended || c.exploded || c.obj == nil || c.handle == nil || c.handle.destroyed {
		c.thrusting = false
		return
	}

	c.hitCooldown = math.Max(0, c.hitCooldown-dt)
	c.thrusting = c.thrustFor > 0
	left, right := c.leftFor > 0, c.rightFor > 0
	c.thrustFor = math.Max(0, c.thrustFor-dt)
	c.leftFor = math.Max(0, c.leftFor-dt)
	c.rightFor = math.Max(0, c.rightFor-dt)

	if left {
		c.Angle -= c.cfg.Rotation * dt
	}
	if right {
		c.Angle += c.cfg.Rotation * dt
	}
	c.Angle = normalizeAngle(c.Angle)

	acc := core.Vec{Y: c.gravity}
	if c.thrusting {
		acc = acc.Add(core.Heading(c.Angle).Scale(c.cfg.Thrust))
	}
	c.Vel = c.Vel.Add(acc.Scale(dt)).ClampLen(c.maxSpeed)

	c.move(dt)
	if c.exploded {
		return
	}
	if !c.insideMap() {
		if c.invulnerable {
			c.keepInMap()
		} else {
			c.logger.Debug("craft left the cave", "x", c.Pos.X, "y", c.Pos.Y)
			c.explode()
			return
		}
	}
	c.collectBonuses()
	c.trackEndZone(dt)
}

func (c *Craft) move(dt float64) {
	dx := c.Vel.X * dt * CellSize
	if contact, o, hit := c.sweep(dx, 0); hit {
		impact := math.Abs(c.Vel.X)
		dx = contact
		c.Vel.X = -c.Vel.X * c.cfg.Bounce
		c.impact(impact, o.HasTags(TagPad))
	}
	c.obj.Position.X += dx

	dy := c.Vel.Y * dt * c.cfg.Aspect * CellSize
	if contact, o, hit := c.sweep(0, dy); hit {
		impact := math.Abs(c.Vel.Y)
		pad := o.HasTags(TagPad)
		dy = contact
		if pad && c.Vel.Y > 0 {
			c.Vel.Y = 0
			c.Vel.X *= padFriction
		} else {
			c.Vel.Y = -c.Vel.Y * c.cfg.Bounce
		}
		c.impact(impact, pad)
	}
	c.obj.Position.Y += dy
	c.obj.Update()

	c.Pos = core.Vec{
		X: (c.obj.Position.X + craftSize/2) / CellSize,
		Y: (c.obj.Position.Y + craftSize/2) / CellSize,
	}
}

// sweep finds the nearest solid object blocking a move along one axis and
// returns the distance the craft may travel before touching it.
func (c *Craft) sweep(dx, dy float64) (float64, *resolv.Object, bool) {
	if dx == 0 && dy == 0 {
		return 0, nil, false
	}
	col := c.obj.Check(dx+sign(dx), dy+sign(dy), TagSolid)
	if col == nil {
		return 0, nil, false
	}

	var blocker *resolv.Object
	best := math.Inf(1)
	for _, o := range col.Objects {
		if overlaps(c.obj, o, 0, 0) || !overlaps(c.obj, o, dx, dy) {
			continue
		}
		contact := col.ContactWithObject(o)
		d := contact.X
		if dy != 0 {
			d = contact.Y
		}
		if math.Abs(d) < math.Abs(best) {
			best, blocker = d, o
		}
	}
	if blocker == nil {
		return 0, nil, false
	}
	return best, blocker, true
}

func (c *Craft) impact(speed float64, pad bool) {
	if pad || speed <= c.cfg.SafeImpactSpeed || c.hitCooldown > 0 {
		return
	}
	c.hitCooldown = c.cfg.HitCooldown

	if c.shield.Hit(c.invulnerable) {
		c.explode()
		return
	}
	c.logger.Debug("craft hit", "speed", speed, "damage", c.shield.Damage)
	if !c.invulnerable {
		c.startFlash()
	}
}

func (c *Craft) explode() {
	c.exploded = true
	c.thrusting = false
	c.Vel = core.Vec{}
	c.flash.Cancel()
	c.Color = core.ColorDamage
	if c.listener != nil {
		c.listener.OnFatalCollision()
	}
}

// startFlash blinks the craft for FlashTime. A new flash replaces the
// running one.
func (c *Craft) startFlash() {
	blinks := int(math.Round(c.cfg.FlashTime / flashInterval))
	n := 0
	reset := func() { c.Color = core.ColorCraft }
	c.flash.Start(core.NewSequence("flash",
		core.Repeat(flashInterval, func() bool {
			if n >= blinks {
				return false
			}
			if n%2 == 0 {
				c.Color = core.ColorDamage
			} else {
				c.Color = core.ColorCraft
			}
			n++
			return true
		}),
		core.Do(reset),
	).OnCancel(reset))
}

func (c *Craft) collectBonuses() {
	col := c.obj.Check(0, 0, TagBonus)
	if col == nil {
		return
	}
	for _, o := range col.Objects {
		if !overlaps(c.obj, o, 0, 0) {
			continue
		}
		b, ok := c.handle.collect(o)
		if !ok {
			continue
		}
		c.logger.Debug("bonus picked up", "kind", b.Kind, "x", b.X, "y", b.Y)
		if c.listener != nil {
			c.listener.OnBonusCollected(b.Kind)
		}
	}
}

func (c *Craft) trackEndZone(dt float64) {
	inside := false
	if col := c.obj.Check(0, 0, TagEndZone); col != nil {
		for _, o := range col.Objects {
			if overlaps(c.obj, o, 0, 0) {
				inside = true
				break
			}
		}
	}
	held := c.hold.Update(inside, dt)
	if inside && c.listener != nil {
		c.listener.OnHeldInEndZone(held)
	}
}

func (c *Craft) insideMap() bool {
	l := c.handle.Layout
	return c.Pos.X >= 0 && c.Pos.Y >= 0 && c.Pos.X < float64(l.Width) && c.Pos.Y < float64(l.Height)
}

// keepInMap bounces an invulnerable craft back off the map edges.
func (c *Craft) keepInMap() {
	l := c.handle.Layout
	half := float64(craftSize) / 2 / CellSize
	x := core.ClampF(c.Pos.X, half, float64(l.Width)-half)
	y := core.ClampF(c.Pos.Y, half, float64(l.Height)-half)
	if x != c.Pos.X {
		c.Vel.X = -c.Vel.X * c.cfg.Bounce
	}
	if y != c.Pos.Y {
		c.Vel.Y = -c.Vel.Y * c.cfg.Bounce
	}
	c.Pos = core.Vec{X: x, Y: y}
	c.obj.Position.X = x*CellSize - craftSize/2
	c.obj.Position.Y = y*CellSize - craftSize/2
	c.obj.Update()
}

// overlaps reports whether a moved by (dx, dy) intersects b. Touching edges
// do not count.
func overlaps(a, b *resolv.Object, dx, dy float64) bool {
	ax, ay := a.Position.X+dx, a.Position.Y+dy
	return ax < b.Position.X+b.Size.X-overlapEps &&
		ax+a.Size.X > b.Position.X+overlapEps &&
		ay < b.Position.Y+b.Size.Y-overlapEps &&
		ay+a.Size.Y > b.Position.Y+overlapEps
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
