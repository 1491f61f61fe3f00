package cave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/subterra/internal/catalog"
	"github.com/vovakirdan/subterra/internal/config"
	"github.com/vovakirdan/subterra/internal/core"
	"github.com/vovakirdan/subterra/internal/session"
)

const frame = 1.0 / 60

type recorder struct {
	fatal   int
	held    []float64
	bonuses []session.BonusKind
}

func (r *recorder) OnFatalCollision()                      { r.fatal++ }
func (r *recorder) OnHeldInEndZone(seconds float64)        { r.held = append(r.held, seconds) }
func (r *recorder) OnBonusCollected(kind session.BonusKind) { r.bonuses = append(r.bonuses, kind) }

func newTestCraft(t *testing.T, rows []string, tune func(*config.CraftConfig), maxDamage int) (*Craft, *Handle, *recorder) {
	t.Helper()
	world := NewWorld(nil)
	ch, err := world.LoadCaveContent(catalog.Cave{ID: "test", Level: 1, Number: 1, Map: rows})
	require.NoError(t, err)
	h := ch.(*Handle)
	h.ReactivateBonuses()

	cfg := config.Default().Craft
	if tune != nil {
		tune(&cfg)
	}
	rec := &recorder{}
	craft := NewCraft(cfg, maxDamage, nil, world, nil)
	craft.SetListener(rec)
	craft.ResetState(world.StartPosition(h))
	craft.SetActive(true)
	return craft, h, rec
}

func run(c *Craft, seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		c.Update(frame)
	}
}

func noGravity(cfg *config.CraftConfig) { cfg.Gravity = 0 }

func TestCraftLandsOnPad(t *testing.T) {
	craft, _, rec := newTestCraft(t, []string{
		"#######",
		"#E    #",
		"#  S  #",
		"#  =  #",
		"#######",
	}, nil, session.MaxShieldDamage)

	run(craft, 2)

	assert.Equal(t, 0.0, craft.Vel.Y)
	assert.Equal(t, 0, craft.Shield().Damage)
	assert.Zero(t, rec.fatal)
	assert.InDelta(t, 3.0-float64(craftSize)/2/CellSize, craft.Pos.Y, 0.01, "resting on the pad top")
	assert.InDelta(t, 3.5, craft.Pos.X, 1e-9)
}

func TestCraftThrustLiftsOff(t *testing.T) {
	craft, _, _ := newTestCraft(t, []string{
		"#######",
		"#E    #",
		"#     #",
		"#     #",
		"#  S  #",
		"#  =  #",
		"#######",
	}, nil, session.MaxShieldDamage)
	startY := craft.Pos.Y

	for i := 0; i < 20; i++ {
		craft.HandleInput(thrustFrame())
		craft.Update(frame)
	}
	assert.True(t, craft.Thrusting())
	assert.Less(t, craft.Pos.Y, startY)
	assert.Less(t, craft.Vel.Y, 0.0)
}

func thrustFrame() core.InputFrame {
	f := core.NewInputFrame()
	f.Set(core.ActionThrust)
	return f
}

func TestCraftRotationAndInputHold(t *testing.T) {
	craft, _, _ := newTestCraft(t, []string{"#S  E#"}, noGravity, session.MaxShieldDamage)

	f := core.NewInputFrame()
	f.Set(core.ActionRotateRight)
	craft.HandleInput(f)
	run(craft, 1)

	want := craft.cfg.Rotation * craft.cfg.InputHold
	assert.InDelta(t, want, craft.Angle, craft.cfg.Rotation*frame*1.5, "rotation stops after the hold expires")
}

func TestCraftWallHitDamagesAndFlashes(t *testing.T) {
	craft, _, rec := newTestCraft(t, []string{
		"##########",
		"#S      E#",
		"#=       #",
		"##########",
	}, noGravity, session.MaxShieldDamage)

	craft.Vel = core.Vec{X: -8}
	run(craft, 0.2)

	assert.Equal(t, 1, craft.Shield().Damage)
	assert.Greater(t, craft.Vel.X, 0.0, "bounced off the wall")
	assert.InDelta(t, 8*craft.cfg.Bounce, craft.Vel.X, 1e-9)
	assert.Zero(t, rec.fatal)
	assert.GreaterOrEqual(t, craft.Pos.X-float64(craftSize)/2/CellSize, 1.0-1e-9, "never inside the wall")

	run(craft, craft.cfg.FlashTime+0.2)
	assert.Equal(t, core.ColorCraft, craft.Color, "flash restores the colour")
}

func TestCraftSlowBumpIsHarmless(t *testing.T) {
	craft, _, _ := newTestCraft(t, []string{
		"##########",
		"#S      E#",
		"##########",
	}, noGravity, session.MaxShieldDamage)

	craft.Vel = core.Vec{X: -2}
	run(craft, 1)
	assert.Equal(t, 0, craft.Shield().Damage)
}

func TestCraftExplodesWhenShieldDepleted(t *testing.T) {
	craft, _, rec := newTestCraft(t, []string{
		"##########",
		"#S      E#",
		"##########",
	}, func(cfg *config.CraftConfig) {
		cfg.Gravity = 0
		cfg.HitCooldown = 0
	}, 1)

	craft.Vel = core.Vec{X: -8}
	run(craft, 0.2)
	require.Equal(t, 1, craft.Shield().Damage)
	assert.Zero(t, rec.fatal)

	craft.Vel = core.Vec{X: -8}
	run(craft, 0.2)
	assert.Equal(t, 1, rec.fatal)
	assert.True(t, craft.Exploded())
	assert.Equal(t, core.ColorDamage, craft.Color)

	pos := craft.Pos
	run(craft, 0.5)
	assert.Equal(t, pos, craft.Pos, "wreck does not move")

	craft.RemoveAllDamage()
	craft.ResetState(core.Vec{X: 4.5, Y: 1.5})
	assert.False(t, craft.Exploded())
	assert.Equal(t, core.ColorCraft, craft.Color)
}

func TestCraftInvulnerable(t *testing.T) {
	craft, _, rec := newTestCraft(t, []string{
		"##########",
		"#S      E#",
		"##########",
	}, func(cfg *config.CraftConfig) {
		cfg.Gravity = 0
		cfg.HitCooldown = 0
	}, 1)
	craft.SetInvulnerable(true)

	for i := 0; i < 3; i++ {
		craft.Vel = core.Vec{X: -8}
		run(craft, 0.2)
	}
	assert.Equal(t, 0, craft.Shield().Damage)
	assert.Zero(t, rec.fatal)
}

func TestCraftReportsEndZoneHold(t *testing.T) {
	craft, _, rec := newTestCraft(t, []string{
		"#######",
		"#S  E #",
		"#######",
	}, noGravity, session.MaxShieldDamage)

	craft.ResetState(core.Vec{X: 4.5, Y: 1.5})
	run(craft, 1)

	require.NotEmpty(t, rec.held)
	assert.InDelta(t, frame, rec.held[0], 1e-9, "the entering frame counts")
	assert.InDelta(t, 1.0, rec.held[len(rec.held)-1], 2*frame)

	n := len(rec.held)
	craft.ResetState(core.Vec{X: 2.5, Y: 1.5})
	run(craft, 0.5)
	assert.Len(t, rec.held, n, "no reports outside the zone")
}

func TestCraftCollectsBonus(t *testing.T) {
	craft, h, rec := newTestCraft(t, []string{
		"#######",
		"#S 1 E#",
		"#######",
	}, noGravity, session.MaxShieldDamage)

	craft.ResetState(core.Vec{X: 3.5, Y: 1.5})
	craft.Update(frame)
	craft.Update(frame)

	assert.Equal(t, []session.BonusKind{session.BonusOneUp}, rec.bonuses)
	require.Len(t, h.Bonuses(), 1)
	assert.False(t, h.Bonuses()[0].Active)

	h.ReactivateBonuses()
	assert.True(t, h.Bonuses()[0].Active)
}

func TestCraftSuspendedDoesNotMove(t *testing.T) {
	craft, _, _ := newTestCraft(t, []string{
		"#######",
		"#E    #",
		"#  S  #",
		"#     #",
		"#  =  #",
		"#######",
	}, nil, session.MaxShieldDamage)
	craft.SetSuspended(true)
	start := craft.Pos

	craft.HandleInput(thrustFrame())
	run(craft, 1)
	assert.Equal(t, start, craft.Pos)
	assert.False(t, craft.Thrusting())
}

func TestCraftLeavingMapExplodes(t *testing.T) {
	craft, _, rec := newTestCraft(t, []string{
		"#   #",
		"#S E#",
	}, func(cfg *config.CraftConfig) { cfg.Gravity = -5 }, session.MaxShieldDamage)

	run(craft, 3)
	assert.Equal(t, 1, rec.fatal)
	assert.True(t, craft.Exploded())
}

func TestCraftInvulnerableStaysInsideMap(t *testing.T) {
	craft, _, rec := newTestCraft(t, []string{
		"#   #",
		"#S E#",
	}, func(cfg *config.CraftConfig) { cfg.Gravity = -5 }, session.MaxShieldDamage)
	craft.SetInvulnerable(true)

	run(craft, 30)
	assert.Zero(t, rec.fatal)
	assert.False(t, craft.Exploded())
	assert.GreaterOrEqual(t, craft.Pos.Y, 0.0)
	assert.LessOrEqual(t, craft.Pos.Y, 2.0)

	// Still flyable: it comes back down once gravity points down again.
	craft.gravity = 5
	run(craft, 3)
	assert.Greater(t, craft.Pos.Y, 0.5)
}

func TestResetCancelsFlash(t *testing.T) {
	craft, _, _ := newTestCraft(t, []string{
		"##########",
		"#S      E#",
		"##########",
	}, noGravity, session.MaxShieldDamage)

	craft.Vel = core.Vec{X: -8}
	for craft.Color == core.ColorCraft {
		craft.Update(frame)
	}
	craft.ResetState(core.Vec{X: 4.5, Y: 1.5})
	assert.Equal(t, core.ColorCraft, craft.Color)
}

func TestWorldDestroyAndCurrent(t *testing.T) {
	world := NewWorld(nil)
	ch, err := world.LoadCaveContent(catalog.Cave{ID: "a", Map: []string{"#S+E#"}})
	require.NoError(t, err)
	h := ch.(*Handle)
	assert.Same(t, h, world.Current())
	assert.Equal(t, core.Vec{X: 1.5, Y: 0.5}, world.StartPosition(h))

	h.Destroy()
	h.Destroy()
	assert.True(t, h.Destroyed())
	assert.Nil(t, world.Current())

	_, err = world.LoadCaveContent(catalog.Cave{ID: "bad", Map: []string{"###"}})
	assert.ErrorIs(t, err, ErrNoStart)
}

func TestRenderDrawsCaveAndCraft(t *testing.T) {
	craft, h, _ := newTestCraft(t, []string{
		"#####",
		"#S+E#",
		"#=  #",
		"#####",
	}, noGravity, session.MaxShieldDamage)

	screen := core.NewScreen(5, 4)
	Render(screen, screen.Bounds(), h, craft)

	assert.Equal(t, "█████", screen.Row(0))
	assert.Equal(t, '↑', screen.Get(1, 1))
	assert.Equal(t, glyphShields, screen.Get(2, 1))
	assert.Equal(t, glyphEndZone, screen.Get(3, 1))
	assert.Equal(t, glyphPad, screen.Get(1, 2))
	assert.Equal(t, core.ColorCraft, screen.GetCell(1, 1).Color)
}
