package config

import (
	"os"
	"time"
)

// Reloader re-reads a config file whenever its modification time changes.
type Reloader struct {
	path    string
	modTime time.Time
	current MazeConfig
}

// NewReloader watches path, starting from cfg. An empty path or the
// embedded source never reloads.
func NewReloader(path string, cfg MazeConfig) *Reloader {
	r := &Reloader{path: path, current: cfg}
	if r.watching() {
		if info, err := os.Stat(path); err == nil {
			r.modTime = info.ModTime()
		}
	}
	return r
}

// Path returns the watched file.
func (r *Reloader) Path() string {
	return r.path
}

// Current returns the last successfully loaded configuration.
func (r *Reloader) Current() MazeConfig {
	return r.current
}

// Poll checks the file and returns the new configuration when it changed.
// A file that fails to parse keeps the previous configuration and the
// error is returned so the caller can report it.
func (r *Reloader) Poll() (MazeConfig, bool, error) {
	if !r.watching() {
		return r.current, false, nil
	}
	info, err := os.Stat(r.path)
	if err != nil {
		return r.current, false, nil
	}
	if info.ModTime().Equal(r.modTime) {
		return r.current, false, nil
	}
	r.modTime = info.ModTime()

	cfg, err := loadMazeFile(r.path)
	if err != nil {
		return r.current, false, err
	}
	r.current = cfg
	return cfg, true, nil
}

func (r *Reloader) watching() bool {
	return r.path != "" && r.path != SourceEmbedded
}
