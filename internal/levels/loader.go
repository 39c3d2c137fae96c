// Package levels loads maze level files and converts them into playable
// maze.Level values. This package depends on maze but maze does not depend
// on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/maze"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ErrNotFound is returned by LoadByID for an unknown level ID.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID         string
	Name       string
	Definition maze.Definition
	Metadata   map[string]string
	FilePath   string
}

// NewMaze validates the definition and returns a fresh playable level.
func (l *Level) NewMaze() (*maze.Level, error) {
	m, err := maze.NewLevel(l.Definition)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return m, nil
}

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Builtin returns a loader over the levels shipped with the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		// The embed pattern guarantees the directory exists.
		panic(err)
	}
	return &Loader{Root: "builtin", fsys: sub}
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for
// deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.scan()
	return levels, err
}

// LoadAllStrict is LoadAll but also reports every file that failed to
// parse or validate.
func (l *Loader) LoadAllStrict() ([]Level, error) {
	levels, problems, err := l.scan()
	if err != nil {
		return nil, err
	}
	return levels, errors.Join(problems...)
}

func (l *Loader) scan() ([]Level, []error, error) {
	var levels []Level
	var problems []error
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		if other, dup := seen[level.ID]; dup {
			problems = append(problems, fmt.Errorf("duplicate level id %s in %s and %s", level.ID, other, p))
			return nil
		}
		seen[level.ID] = p

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, problems, nil
}

// LoadFile loads and validates a single level file. The path is relative
// to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if _, err := maze.NewLevel(parsed.Definition); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", p, err)
	}

	return Level{
		ID:         parsed.Definition.ID,
		Name:       parsed.Definition.Name,
		Definition: parsed.Definition,
		Metadata:   parsed.Metadata,
		FilePath:   path.Join(l.Root, p),
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
