package config

import "time"

// DifficultyManager turns score or elapsed ticks into a gravity speed.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = clamp01(cfg.InitialLevel)
	return &DifficultyManager{cfg: cfg}
}

// progressing reports whether the level moves away from the initial level.
func (d *DifficultyManager) progressing() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none" && d.cfg.Progression.Type != ""
}

// Level returns the difficulty level in [0, 1]. It starts at the initial
// level and reaches 1 at progression.max_at points or ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	start := d.cfg.InitialLevel
	if !d.progressing() {
		return start
	}

	var done int
	switch d.cfg.Progression.Type {
	case "score":
		done = score
	case "time":
		done = ticks
	}
	progress := clamp01(float64(done) / float64(max(d.cfg.Progression.MaxAt, 1)))
	return start + progress*(1-start)
}

// TicksPerSecond returns the gravity rate for the current difficulty level.
// The rate grows from base to base * (1 + speedMultiplier).
func (d *DifficultyManager) TicksPerSecond(base float64, score int, ticks int) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// TickDuration returns the logical tick length for the current level.
func (d *DifficultyManager) TickDuration(base float64, score int, ticks int) time.Duration {
	tps := d.TicksPerSecond(base, score, ticks)
	if tps <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / tps)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
