// Package config provides YAML-based game configuration loading and
// difficulty management for fracture.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FractureConfig contains all configuration for the fracture game.
type FractureConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Input      InputConfig      `yaml:"input"`
	Control    ControlConfig    `yaml:"control"`
	Powers     PowersConfig     `yaml:"powers"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Debug      DebugConfig      `yaml:"debug"`
}

// BoardConfig defines the play field.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// GameOverAfterFailedSpawns ends the run after this many consecutive
	// ticks on which the next shape could not be placed.
	GameOverAfterFailedSpawns int `yaml:"game_over_after_failed_spawns"`
}

// TimingConfig defines the logical tick rate.
type TimingConfig struct {
	TicksPerSecond float64 `yaml:"ticks_per_second"` // gravity steps per second at level 0
}

// InputConfig defines autorepeat behaviour.
type InputConfig struct {
	AutorepeatDelay time.Duration `yaml:"autorepeat_delay"` // hold time before an intent repeats
	// ReleaseAfter is how long a key counts as held after its last terminal
	// key event. Terminals report repeats, not releases.
	ReleaseAfter time.Duration `yaml:"release_after"`
}

// ControlConfig defines when a player-controlled shape locks.
type ControlConfig struct {
	LockDelay       int  `yaml:"lock_delay"`       // idle ticks before control detaches
	MaxDropWait     int  `yaml:"max_drop_wait"`    // ticks without a drop before control detaches
	RemnantInherits bool `yaml:"remnant_inherits"` // split remnants of a controlled shape stay controlled
}

// PowersConfig defines block modifiers.
type PowersConfig struct {
	FastChance float64 `yaml:"fast_chance"` // probability of a fast shape in lightning mode
}

// DebugConfig defines diagnostics.
type DebugConfig struct {
	VerifyEveryTick bool   `yaml:"verify_every_tick"`
	LogFile         string `yaml:"log_file"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to tick rate at max difficulty
}

// Validate reports every out-of-range setting.
func (c FractureConfig) Validate() error {
	var errs []error
	if c.Board.Width < 4 || c.Board.Height < 4 {
		errs = append(errs, fmt.Errorf("board must be at least 4x4, got %dx%d", c.Board.Width, c.Board.Height))
	}
	if c.Board.GameOverAfterFailedSpawns < 1 {
		errs = append(errs, fmt.Errorf("board.game_over_after_failed_spawns must be positive, got %d", c.Board.GameOverAfterFailedSpawns))
	}
	if c.Timing.TicksPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("timing.ticks_per_second must be positive, got %v", c.Timing.TicksPerSecond))
	}
	if c.Input.AutorepeatDelay <= 0 {
		errs = append(errs, fmt.Errorf("input.autorepeat_delay must be positive, got %s", c.Input.AutorepeatDelay))
	}
	if c.Control.LockDelay < 1 {
		errs = append(errs, fmt.Errorf("control.lock_delay must be at least 1, got %d", c.Control.LockDelay))
	}
	if c.Control.MaxDropWait < 0 {
		errs = append(errs, fmt.Errorf("control.max_drop_wait must not be negative, got %d", c.Control.MaxDropWait))
	}
	if c.Powers.FastChance < 0 || c.Powers.FastChance > 1 {
		errs = append(errs, fmt.Errorf("powers.fast_chance must be in [0,1], got %v", c.Powers.FastChance))
	}
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TickDuration returns the length of one logical tick at level 0.
func (c FractureConfig) TickDuration() time.Duration {
	return time.Duration(float64(time.Second) / c.Timing.TicksPerSecond)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
