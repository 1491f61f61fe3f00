package config

import (
	"math"

	"github.com/vovakirdan/subterra/internal/core"
)

// ProgressionLevel ramps difficulty with the level number.
const ProgressionLevel = "level"

// DifficultyManager maps a level number to a difficulty in [0, 1] and scales
// the craft's gravity and speed cap with it.
type DifficultyManager struct {
	cfg  DifficultyConfig
	base float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: unit(cfg.InitialLevel)}
}

// IsEnabled reports whether difficulty grows with the level.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type == ProgressionLevel
}

// Level returns the difficulty of a 1-based level. It starts at the initial
// level on level 1 and reaches 1 on Progression.MaxAt.
func (d *DifficultyManager) Level(level int) float64 {
	if !d.IsEnabled() {
		return d.base
	}
	span := math.Max(float64(d.cfg.Progression.MaxAt-1), 1)
	return core.Lerp(d.base, 1, float64(level-1)/span)
}

// Gravity scales base gravity for level.
func (d *DifficultyManager) Gravity(base float64, level int) float64 {
	return base * (1 + d.Level(level)*d.cfg.Scaling.GravityMultiplier)
}

// MaxSpeed scales the base speed cap for level.
func (d *DifficultyManager) MaxSpeed(base float64, level int) float64 {
	return base * (1 + d.Level(level)*d.cfg.Scaling.SpeedMultiplier)
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
