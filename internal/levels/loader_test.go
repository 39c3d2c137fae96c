package levels_test

import (
	"errors"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/vovakirdan/tui-maze/internal/levels"
	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

// getTestdataPath returns path to testdata/levels.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)
	return filepath.Join(dir, "testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	ids := make([]string, len(lvls))
	for i, l := range lvls {
		ids[i] = l.ID
	}
	expected := []string{"lvl01", "lvl02"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("LoadAll() ids = %v, expected %v", ids, expected)
	}
}

func TestLoaderLoadAllStrictReportsBrokenFiles(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvls, err := loader.LoadAllStrict()
	if err == nil {
		t.Fatalf("LoadAllStrict() error = nil, expected broken.yaml to be reported")
	}
	if len(lvls) != 2 {
		t.Errorf("LoadAllStrict() loaded %d levels, expected 2", len(lvls))
	}
}

func TestLoaderLoadLevel01(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("lvl01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Name != "Corridor" {
		t.Errorf("expected Name 'Corridor', got %q", lvl.Name)
	}
	def := lvl.Definition
	if def.Width != 5 || def.Height != 1 {
		t.Errorf("expected 5x1, got %dx%d", def.Width, def.Height)
	}
	if def.Start != maze.C(0, 0) || def.End != maze.C(4, 0) {
		t.Errorf("start/end = %s/%s, expected (0,0)/(4,0)", def.Start, def.End)
	}
	if def.MonsterWait != nil {
		t.Errorf("expected no monster wait, got %v", *def.MonsterWait)
	}
	if def.EdgeTexture != formats.DefaultWallTexture {
		t.Errorf("edge texture = %q, expected default", def.EdgeTexture)
	}
}

func TestLoaderLoadLevel02(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	lvl, err := loader.LoadByID("lvl02")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	def := lvl.Definition

	if def.MonsterWait == nil || *def.MonsterWait != 2.5 {
		t.Errorf("monster wait = %v, expected 2.5", def.MonsterWait)
	}
	if def.MonsterStart == nil || *def.MonsterStart != maze.C(1, 3) {
		t.Errorf("monster start = %v, expected (1,3)", def.MonsterStart)
	}
	if !reflect.DeepEqual(def.ExitKeys, []maze.Coord{maze.C(3, 1)}) {
		t.Errorf("exit keys = %v, expected [(3,1)]", def.ExitKeys)
	}
	if def.Decorations[maze.C(2, 1)] != "barrel" {
		t.Errorf("decorations = %v, expected barrel at (2,1)", def.Decorations)
	}

	m, err := lvl.NewMaze()
	if err != nil {
		t.Fatalf("NewMaze() error = %v", err)
	}

	custom, _ := m.Presence(maze.C(1, 0))
	if custom.Wall.Texture(maze.SideEast) != "rust" || custom.Wall.Texture(maze.SideNorth) != "iron" {
		t.Errorf("legend wall = %v, expected iron with rust east face", custom.Wall)
	}
	plain, _ := m.Presence(maze.C(0, 0))
	if plain.Wall != maze.UniformWall("wood") {
		t.Errorf("default wall = %v, expected wood", plain.Wall)
	}

	monsterOnly, _ := m.Tile(maze.C(2, 2))
	if monsterOnly.PlayerCollide || !monsterOnly.MonsterCollide || monsterOnly.Presence.Present() {
		t.Errorf("'~' tile = %+v, expected monster-only barrier", monsterOnly)
	}
	playerOnly, _ := m.Tile(maze.C(3, 2))
	if !playerOnly.PlayerCollide || playerOnly.MonsterCollide {
		t.Errorf("'+' tile = %+v, expected player-only barrier", playerOnly)
	}
}

func TestLoaderLoadByIDNotFound(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath())

	_, err := loader.LoadByID("missing")
	if !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("LoadByID() error = %v, expected ErrNotFound", err)
	}
}

func TestBuiltinLevelsAreSolvable(t *testing.T) {
	lvls, err := levels.Builtin().LoadAllStrict()
	if err != nil {
		t.Fatalf("LoadAllStrict() error = %v", err)
	}
	if len(lvls) < 3 {
		t.Fatalf("expected at least 3 builtin levels, got %d", len(lvls))
	}

	for _, lvl := range lvls {
		t.Run(lvl.ID, func(t *testing.T) {
			m, err := lvl.NewMaze()
			if err != nil {
				t.Fatalf("NewMaze() error = %v", err)
			}
			if len(m.FindPossiblePaths()) == 0 {
				t.Errorf("no path from start to end")
			}
			for _, k := range m.ExitKeys() {
				if p := m.ShortestPath(m.Start(), k, maze.AttrPlayerCollide); p == nil {
					t.Errorf("key %s unreachable", k)
				}
			}
		})
	}
}
