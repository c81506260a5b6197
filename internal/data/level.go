package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/skyraid/skyraid/internal/level"
	"gopkg.in/yaml.v3"
)

// ErrIndexOutOfBounds is returned for a level index outside the table.
var ErrIndexOutOfBounds = errors.New("level index out of bounds")

type levelListFile struct {
	Levels []level.Config `yaml:"levels"`
}

// LevelTable holds the ordered level progression.
type LevelTable struct {
	levels []level.Config
}

// LoadLevelTable loads levels.yaml. Every level is validated and all
// problems are reported together.
func LoadLevelTable(path string) (*LevelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level list: %w", err)
	}
	var f levelListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse level list: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, fmt.Errorf("level list %s: no levels", path)
	}
	var errs []error
	seen := make(map[string]bool, len(f.Levels))
	for i, l := range f.Levels {
		if err := l.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("level #%d: %w", i, err))
		}
		if seen[l.Name] {
			errs = append(errs, fmt.Errorf("level #%d: duplicate name %q", i, l.Name))
		}
		seen[l.Name] = true
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("level list %s: %w", path, err)
	}
	return &LevelTable{levels: f.Levels}, nil
}

// Get returns level i (0-based).
func (t *LevelTable) Get(i int) (level.Config, error) {
	if i < 0 || i >= len(t.levels) {
		return level.Config{}, fmt.Errorf("get level %d of %d: %w", i, len(t.levels), ErrIndexOutOfBounds)
	}
	return t.levels[i], nil
}

// Count returns the total number of levels loaded.
func (t *LevelTable) Count() int {
	return len(t.levels)
}
