package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded is reported by LoadMaze when no file on disk was used.
const SourceEmbedded = "embedded"

// LoadMaze loads the maze configuration and reports where it came from.
// Search order: customPath -> ~/.maze/configs/maze.yaml -> ./configs/maze.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides
// the keys it names.
func LoadMaze(customPath string) (MazeConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadMazeFile(customPath)
		if err != nil {
			return cfg, customPath, err
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("maze.yaml"); userCfgPath != "" {
		if cfg, err := loadMazeFile(userCfgPath); err == nil {
			return cfg, userCfgPath, nil
		}
	}

	// Try local configs directory
	if cfg, err := loadMazeFile(filepath.Join("configs", "maze.yaml")); err == nil {
		return cfg, filepath.Join("configs", "maze.yaml"), nil
	}

	// Use embedded default YAML
	cfg, err := ParseMaze(defaultMazeYAML)
	if err != nil {
		return DefaultMazeConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// ParseMaze decodes YAML over the default configuration and validates it.
func ParseMaze(data []byte) (MazeConfig, error) {
	cfg := DefaultMazeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadMazeFile(path string) (MazeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultMazeConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseMaze(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maze", "configs", filename)
}

// ApplyMazePreset modifies the config based on a difficulty preset.
func ApplyMazePreset(cfg *MazeConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Monster.TimeToEscape = 8
		cfg.Monster.PressesToEscape = 6
		cfg.Compass.Time = 15
	case DifficultyHard:
		cfg.Monster.TimeToEscape = 3
		cfg.Monster.PressesToEscape = 15
		cfg.Compass.Time = 6
		cfg.Items.PlayerWallCooldown = 30
	}
}
