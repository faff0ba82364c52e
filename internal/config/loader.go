package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFracture loads the fracture configuration.
// Search order: customPath -> ~/.fracture/configs/fracture.yaml -> ./configs/fracture.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it names.
func LoadFracture(customPath string) (FractureConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFractureConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg := DefaultFractureConfig()
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultFractureConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("fracture.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "fracture.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := DefaultFractureConfig()
	if err := yaml.Unmarshal(defaultFractureYAML, &cfg); err != nil {
		return DefaultFractureConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Missing, malformed or invalid files
// are skipped.
func tryLoad(path string) (FractureConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FractureConfig{}, false
	}
	cfg := DefaultFractureConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FractureConfig{}, false
	}
	if cfg.Validate() != nil {
		return FractureConfig{}, false
	}
	return cfg, true
}

// HomeDir returns ~/.fracture, or empty if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fracture")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyFracturePreset modifies the config based on a difficulty preset.
func ApplyFracturePreset(cfg *FractureConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust lock timing based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Control.LockDelay = 2
		cfg.Control.MaxDropWait = 5
	case DifficultyHard:
		cfg.Control.LockDelay = 1
		cfg.Control.MaxDropWait = 2
	}
}
