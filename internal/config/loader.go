package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the tuning file in the config directories.
const FileName = "subterra.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.subterra/configs/subterra.yaml ->
// ./configs/subterra.yaml -> embedded default -> hardcoded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data on top of the hardcoded defaults and validates it.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the values keep the game playable.
func (c Config) Validate() error {
	var errs []error
	if c.Session.Lives < 1 {
		errs = append(errs, fmt.Errorf("session.lives must be at least 1, got %d", c.Session.Lives))
	}
	if c.Session.CavesPerLevel < 1 {
		errs = append(errs, fmt.Errorf("session.caves_per_level must be at least 1, got %d", c.Session.CavesPerLevel))
	}
	if c.Session.HoldTime <= 0 {
		errs = append(errs, errors.New("session.hold_time must be positive"))
	}
	if c.Session.MaxShieldDamage < 0 {
		errs = append(errs, errors.New("session.max_shield_damage must not be negative"))
	}
	if c.Timings.TallyTick <= 0 {
		errs = append(errs, errors.New("timings.tally_tick must be positive"))
	}
	if c.Fader.Speed <= 0 {
		errs = append(errs, errors.New("fader.speed must be positive"))
	}
	if c.Craft.MaxSpeed <= 0 {
		errs = append(errs, errors.New("craft.max_speed must be positive"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".subterra", "configs", filename)
}

// ParsePreset converts a flag value into a preset. An empty string selects
// the normal preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Session.Lives = 5
		cfg.Session.MaxShieldDamage = 8
		cfg.Craft.SafeImpactSpeed *= 1.5
	case DifficultyHard:
		cfg.Session.Lives = 2
		cfg.Session.MaxShieldDamage = 3
		cfg.Craft.SafeImpactSpeed *= 0.75
	}
}
