package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseMaze(GetDefaultYAML("maze"))
	if err != nil {
		t.Fatalf("ParseMaze() error = %v", err)
	}
	def := DefaultMazeConfig()

	if cfg.Display != def.Display {
		t.Errorf("display = %+v, expected %+v", cfg.Display, def.Display)
	}
	if cfg.Movement != def.Movement {
		t.Errorf("movement = %+v, expected %+v", cfg.Movement, def.Movement)
	}
	if cfg.Compass != def.Compass {
		t.Errorf("compass = %+v, expected %+v", cfg.Compass, def.Compass)
	}
	if cfg.Items != def.Items {
		t.Errorf("items = %+v, expected %+v", cfg.Items, def.Items)
	}
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("difficulty = %+v, expected %+v", cfg.Difficulty, def.Difficulty)
	}
}

func TestParseMazePartialOverride(t *testing.T) {
	cfg, err := ParseMaze([]byte("display:\n  fov: 90\nmonster:\n  start_override: 3\n"))
	if err != nil {
		t.Fatalf("ParseMaze() error = %v", err)
	}
	if cfg.Display.FOV != 90 {
		t.Errorf("FOV = %v, expected 90", cfg.Display.FOV)
	}
	if cfg.Display.PlaneLength() != 0.9 {
		t.Errorf("PlaneLength() = %v, expected 0.9", cfg.Display.PlaneLength())
	}
	if cfg.Movement.MoveSpeed != DefaultMazeConfig().Movement.MoveSpeed {
		t.Errorf("MoveSpeed = %v, expected default", cfg.Movement.MoveSpeed)
	}
	if cfg.Monster.StartOverride == nil || *cfg.Monster.StartOverride != 3 {
		t.Errorf("StartOverride = %v, expected 3", cfg.Monster.StartOverride)
	}
}

func TestParseMazeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero fov", "display:\n  fov: 0\n"},
		{"negative columns", "display:\n  columns: -1\n"},
		{"no presses", "monster:\n  presses_to_escape: 0\n"},
		{"bad multiplier", "compass:\n  charge_burn_multiplier: 0\n"},
		{"malformed", "display: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseMaze([]byte(tc.doc)); err == nil {
				t.Errorf("ParseMaze(%q) error = nil, expected failure", tc.doc)
			}
		})
	}
}

func TestLoadMazeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte("movement:\n  collision: false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := LoadMaze(path)
	if err != nil {
		t.Fatalf("LoadMaze() error = %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Movement.Collision {
		t.Errorf("Collision = true, expected override to false")
	}

	if _, _, err := LoadMaze(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("LoadMaze() with missing custom path returned nil error")
	}
}

func TestApplyMazePreset(t *testing.T) {
	cfg := DefaultMazeConfig()
	ApplyMazePreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Errorf("fixed preset left progression enabled")
	}

	cfg = DefaultMazeConfig()
	ApplyMazePreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v, expected enabled at 0.7", cfg.Difficulty)
	}
	if cfg.Monster.TimeToEscape >= DefaultMazeConfig().Monster.TimeToEscape {
		t.Errorf("hard preset TimeToEscape = %v, expected less than default", cfg.Monster.TimeToEscape)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v, expected normal", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Errorf("ParsePreset(nightmare) error = nil")
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{MonsterSpeedup: 0.5},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		seconds  float64
		expected float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{500, 1},
	}
	for _, tc := range tests {
		if got := dm.Level(tc.seconds, 0); got != tc.expected {
			t.Errorf("Level(%v) = %v, expected %v", tc.seconds, got, tc.expected)
		}
	}

	if got := dm.MonsterWait(1.0, 100, 0); got != 0.5 {
		t.Errorf("MonsterWait() at max = %v, expected 0.5", got)
	}

	dm.SetEnabled(false)
	dm.SetInitialLevel(0.3)
	if got := dm.Level(100, 0); got != 0.3 {
		t.Errorf("Level() disabled = %v, expected initial 0.3", got)
	}
}

func TestReloaderPicksUpChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	if err := os.WriteFile(path, []byte("display:\n  fov: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err := LoadMaze(path)
	if err != nil {
		t.Fatal(err)
	}
	r := NewReloader(path, cfg)

	if _, changed, _ := r.Poll(); changed {
		t.Errorf("Poll() reported change on untouched file")
	}

	if err := os.WriteFile(path, []byte("display:\n  fov: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}

	got, changed, err := r.Poll()
	if err != nil || !changed {
		t.Fatalf("Poll() = changed %v, err %v, expected reload", changed, err)
	}
	if got.Display.FOV != 80 || r.Current().Display.FOV != 80 {
		t.Errorf("FOV = %v, expected 80", got.Display.FOV)
	}

	if err := os.WriteFile(path, []byte("display:\n  fov: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	later = later.Add(2 * time.Second)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if _, changed, err := r.Poll(); changed || err == nil {
		t.Errorf("Poll() with invalid file = changed %v, err %v", changed, err)
	}
	if r.Current().Display.FOV != 80 {
		t.Errorf("invalid reload replaced config")
	}
}

func TestReloaderEmbeddedNeverReloads(t *testing.T) {
	r := NewReloader(SourceEmbedded, DefaultMazeConfig())
	if _, changed, err := r.Poll(); changed || err != nil {
		t.Errorf("Poll() = %v, %v, expected no-op", changed, err)
	}
}
