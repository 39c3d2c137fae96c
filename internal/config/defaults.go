package config

import (
	_ "embed"
)

//go:embed defaults/maze.yaml
var defaultMazeYAML []byte

// DefaultMazeConfig returns the default maze configuration.
func DefaultMazeConfig() MazeConfig {
	return MazeConfig{
		Display: DisplayConfig{
			Columns:      0,
			FOV:          66,
			EdgeAsWall:   true,
			SolidMarkers: false,
			SpriteRange:  0,
			FogStrength:  8,
			ShowStats:    true,
		},
		Movement: MovementConfig{
			MoveSpeed:       4.0,
			TurnSpeed:       2.5,
			RunMultiplier:   2.0,
			CrawlMultiplier: 0.5,
			KeyHoldTime:     0.1,
			Collision:       true,
		},
		Monster: MonsterConfig{
			Enabled:         true,
			MovementWait:    0.5,
			Killing:         true,
			TimeToEscape:    5,
			PressesToEscape: 10,
			FlickerLights:   true,
		},
		Compass: CompassConfig{
			Time:                 10,
			ChargeDelay:          1.5,
			ChargeNormMultiplier: 0.5,
			ChargeBurnMultiplier: 1.0,
		},
		Items: ItemsConfig{
			KeySensorTime:      10,
			PlayerWallTime:     15,
			PlayerWallCooldown: 20,
		},
		Cheats: CheatsConfig{
			Map:       false,
			Solutions: false,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 300, // 5 minutes
			},
			Scaling: ScalingConfig{
				MonsterSpeedup: 0.4,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "maze", "maze_cheat":
		return defaultMazeYAML
	default:
		return nil
	}
}
