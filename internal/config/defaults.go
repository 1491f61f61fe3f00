package config

import (
	_ "embed"
)

//go:embed defaults/subterra.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration. It matches the
// embedded defaults/subterra.yaml.
func Default() Config {
	return Config{
		Session: SessionConfig{
			Lives:                3,
			CavesPerLevel:        3,
			HoldTime:             1.5,
			MaxShieldDamage:      5,
			PointsPerCave:        100,
			BonusPointsPerSecond: 5,
		},
		Timings: TimingsConfig{
			ControlsMessage: 3,
			PrepareDelay:    1,
			ReadyDelay:      1,
			FadeInDelay:     2,
			GoMessage:       1.5,
			MessageDuration: 2,
			ResolveDelay:    1,
			FailureBlackout: 2,
			GameOverDelay:   2,
			TallyPause:      1,
			TallyTick:       0.02,
			AdvanceDelay:    1,
		},
		Craft: CraftConfig{
			Thrust:          9.0,
			Rotation:        200,
			MaxSpeed:        10.0,
			Gravity:         3.0,
			Bounce:          0.4,
			SafeImpactSpeed: 3.0,
			HitCooldown:     0.5,
			FlashTime:       1.0,
			InputHold:       0.2,
			Aspect:          0.5,
		},
		Fader: FaderConfig{
			Speed: 2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLevel,
				MaxAt: 5,
			},
			Scaling: ScalingConfig{
				GravityMultiplier: 0.5,
				SpeedMultiplier:   0.3,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
