// Package config provides YAML-based game configuration loading and
// difficulty management for the maze game.
package config

import "fmt"

// MazeConfig contains all configuration for the maze game.
type MazeConfig struct {
	Display    DisplayConfig    `yaml:"display"`
	Movement   MovementConfig   `yaml:"movement"`
	Monster    MonsterConfig    `yaml:"monster"`
	Compass    CompassConfig    `yaml:"compass"`
	Items      ItemsConfig      `yaml:"items"`
	Cheats     CheatsConfig     `yaml:"cheats"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DisplayConfig defines how the first-person view is cast and drawn.
type DisplayConfig struct {
	Columns      int     `yaml:"columns"`       // Rays per frame; 0 = one per terminal column
	FOV          float64 `yaml:"fov"`           // Camera plane length in percent of the facing vector
	EdgeAsWall   bool    `yaml:"edge_as_wall"`  // Draw the grid edge as a wall instead of sky
	SolidMarkers bool    `yaml:"solid_markers"` // Draw keys and the exit as blocks instead of sprites
	SpriteRange  float64 `yaml:"sprite_range"`  // Tiles; 0 = unlimited
	FogStrength  float64 `yaml:"fog_strength"`  // 0 disables distance fog
	ShowStats    bool    `yaml:"show_stats"`
}

// MovementConfig defines player movement parameters.
type MovementConfig struct {
	MoveSpeed       float64 `yaml:"move_speed"`       // Tiles per second
	TurnSpeed       float64 `yaml:"turn_speed"`       // Radians per second
	RunMultiplier   float64 `yaml:"run_multiplier"`
	CrawlMultiplier float64 `yaml:"crawl_multiplier"`
	KeyHoldTime     float64 `yaml:"key_hold_time"` // Seconds of movement granted by one key press
	Collision       bool    `yaml:"collision"`
}

// MonsterConfig defines monster behaviour.
type MonsterConfig struct {
	Enabled         bool     `yaml:"enabled"`
	StartOverride   *float64 `yaml:"start_override,omitempty"` // Replaces every level's wait when set
	MovementWait    float64  `yaml:"movement_wait"`            // Seconds between steps
	Killing         bool     `yaml:"killing"`
	TimeToEscape    float64  `yaml:"time_to_escape"`
	PressesToEscape int      `yaml:"presses_to_escape"`
	FlickerLights   bool     `yaml:"flicker_lights"`
}

// CompassConfig defines the monster compass charge model.
type CompassConfig struct {
	Time                 float64 `yaml:"time"`         // Seconds of use on a full charge
	ChargeDelay          float64 `yaml:"charge_delay"` // Seconds before recharging starts
	ChargeNormMultiplier float64 `yaml:"charge_norm_multiplier"`
	ChargeBurnMultiplier float64 `yaml:"charge_burn_multiplier"`
}

// ItemsConfig defines pickup and player wall timings.
type ItemsConfig struct {
	KeySensorTime      float64 `yaml:"key_sensor_time"`
	PlayerWallTime     float64 `yaml:"player_wall_time"`
	PlayerWallCooldown float64 `yaml:"player_wall_cooldown"`
}

// CheatsConfig enables the cheat map and its overlays.
type CheatsConfig struct {
	Map       bool `yaml:"map"`       // Map may stay open while playing and shows everything
	Solutions bool `yaml:"solutions"` // Highlight solution paths on the map
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "time", "moves", or "none"
	MaxAt float64 `yaml:"max_at"` // Seconds or tiles walked at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	MonsterSpeedup float64 `yaml:"monster_speedup"` // Fraction of movement_wait removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", s)
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

// PlaneLength returns the camera plane magnitude for the configured FOV.
func (d DisplayConfig) PlaneLength() float64 {
	return d.FOV / 100
}

// Validate reports values the game cannot run with.
func (c MazeConfig) Validate() error {
	switch {
	case c.Display.Columns < 0:
		return fmt.Errorf("display.columns must not be negative")
	case c.Display.FOV <= 0:
		return fmt.Errorf("display.fov must be positive")
	case c.Movement.MoveSpeed <= 0:
		return fmt.Errorf("movement.move_speed must be positive")
	case c.Movement.KeyHoldTime <= 0:
		return fmt.Errorf("movement.key_hold_time must be positive")
	case c.Monster.MovementWait < 0:
		return fmt.Errorf("monster.movement_wait must not be negative")
	case c.Monster.PressesToEscape < 1:
		return fmt.Errorf("monster.presses_to_escape must be at least 1")
	case c.Compass.ChargeNormMultiplier <= 0 || c.Compass.ChargeBurnMultiplier <= 0:
		return fmt.Errorf("compass charge multipliers must be positive")
	}
	return nil
}
