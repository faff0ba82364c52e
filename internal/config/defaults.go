package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/fracture.yaml
var defaultFractureYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFractureYAML
}

// DefaultFractureConfig returns the default fracture configuration.
func DefaultFractureConfig() FractureConfig {
	return FractureConfig{
		Board: BoardConfig{
			Width:                     10,
			Height:                    20,
			GameOverAfterFailedSpawns: 1,
		},
		Timing: TimingConfig{
			TicksPerSecond: 4,
		},
		Input: InputConfig{
			AutorepeatDelay: 500 * time.Millisecond,
			ReleaseAfter:    150 * time.Millisecond,
		},
		Control: ControlConfig{
			LockDelay:   1,
			MaxDropWait: 3,
		},
		Powers: PowersConfig{
			FastChance: 0.15,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}
