// Package config provides YAML-based tuning and difficulty management for
// Subterra.
package config

// Config contains every tunable value of the game.
type Config struct {
	Session    SessionConfig    `yaml:"session"`
	Timings    TimingsConfig    `yaml:"timings"`
	Craft      CraftConfig      `yaml:"craft"`
	Fader      FaderConfig      `yaml:"fader"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SessionConfig defines lives, scoring and success/failure thresholds.
type SessionConfig struct {
	Lives                int     `yaml:"lives"`
	CavesPerLevel        int     `yaml:"caves_per_level"`
	HoldTime             float64 `yaml:"hold_time"`         // Seconds in the end zone to finish a cave
	MaxShieldDamage      int     `yaml:"max_shield_damage"` // Hits absorbed before the next one is fatal
	PointsPerCave        int     `yaml:"points_per_cave"`
	BonusPointsPerSecond int     `yaml:"bonus_points_per_second"`
}

// TimingsConfig defines the pauses of the scripted phase sequences, in seconds.
type TimingsConfig struct {
	ControlsMessage float64 `yaml:"controls_message"` // Key help shown at the start of a new game
	PrepareDelay    float64 `yaml:"prepare_delay"`    // After placing the craft
	ReadyDelay      float64 `yaml:"ready_delay"`      // After "GET READY"
	FadeInDelay     float64 `yaml:"fade_in_delay"`    // After starting the fade to visible
	GoMessage       float64 `yaml:"go_message"`       // How long "GO!" stays up
	MessageDuration float64 `yaml:"message_duration"` // Default message lifetime
	ResolveDelay    float64 `yaml:"resolve_delay"`    // After the outcome message
	FailureBlackout float64 `yaml:"failure_blackout"` // Black screen before a retry
	GameOverDelay   float64 `yaml:"game_over_delay"`  // Before the game over popup
	TallyPause      float64 `yaml:"tally_pause"`      // Around the bonus tally popup
	TallyTick       float64 `yaml:"tally_tick"`       // Between bonus tally steps
	AdvanceDelay    float64 `yaml:"advance_delay"`    // Before loading the next cave
}

// CraftConfig defines the flight model. Distances are in cave cells.
type CraftConfig struct {
	Thrust          float64 `yaml:"thrust"`            // Acceleration while the engine fires (cells/s^2)
	Rotation        float64 `yaml:"rotation"`          // Degrees per second
	MaxSpeed        float64 `yaml:"max_speed"`         // Cells per second
	Gravity         float64 `yaml:"gravity"`           // Cells/s^2 downward
	Bounce          float64 `yaml:"bounce"`            // Fraction of speed kept after a wall hit
	SafeImpactSpeed float64 `yaml:"safe_impact_speed"` // Slower touches do not damage the shield
	HitCooldown     float64 `yaml:"hit_cooldown"`      // Seconds before another hit can register
	FlashTime       float64 `yaml:"flash_time"`        // Damage flash duration
	InputHold       float64 `yaml:"input_hold"`        // Seconds a key press counts as held
	Aspect          float64 `yaml:"aspect"`            // Vertical scale of a terminal cell
}

// FaderConfig defines the black overlay.
type FaderConfig struct {
	Speed float64 `yaml:"speed"` // Alpha units per second
}

// DifficultyConfig defines how the flight model scales with the level number.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases across levels.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	GravityMultiplier float64 `yaml:"gravity_multiplier"` // Extra gravity fraction at max difficulty
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Extra max speed fraction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.6
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
