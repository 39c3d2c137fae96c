package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and tick cadence.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for cosmetic randomness such as light flicker
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	LevelID  string  // Level being played
	Time     float64 // Seconds since the level started
	Moves    float64 // Distance walked in tiles
	Won      bool
	Killed   bool
	GameOver bool // Won or killed; the level accepts no more movement
	Paused   bool
}

// RunResult describes a finished level attempt.
type RunResult struct {
	LevelID string
	Time    float64
	Moves   float64
	Won     bool
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Finished is set on the tick a level is won or lost.
	Finished *RunResult
}
