// Package levels provides the built-in battle maps and loads extra ones from
// a directory.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels/formats"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/world"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultID is the level used when none is requested.
const DefaultID = "level1"

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Enemies  int
	Layout   world.Layout
	FilePath string // empty for built-in levels
}

// NewField builds a fresh field for one battle on this level.
func (l *Level) NewField() (*world.Field, error) {
	f, err := world.NewField(l.Layout)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return f, nil
}

// Builtin returns the embedded levels sorted by ID.
func Builtin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("reading built-in levels: %w", err)
	}
	var out []Level
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading built-in level %s: %w", e.Name(), err)
		}
		lvl, err := parse(e.Name(), data)
		if err != nil {
			return nil, fmt.Errorf("parsing built-in level %s: %w", e.Name(), err)
		}
		out = append(out, lvl)
	}
	sortLevels(out)
	return out, nil
}

// Loader handles loading levels from a directory on top of the built-in set.
type Loader struct {
	Root string // optional; empty means built-in levels only
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll returns the built-in levels plus every level file under Root.
// A file level replaces a built-in one with the same ID. Malformed files
// are errors. Levels come back sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, err := Builtin()
	if err != nil {
		return nil, err
	}
	if l.Root == "" {
		return levels, nil
	}

	byID := make(map[string]int, len(levels))
	for i, lvl := range levels {
		byID[lvl.ID] = i
	}

	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		lvl, err := l.LoadFile(path)
		if err != nil {
			return err
		}
		if i, ok := byID[lvl.ID]; ok {
			levels[i] = lvl
			return nil
		}
		byID[lvl.ID] = len(levels)
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := parse(filepath.Base(path), data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

// LoadByID loads a specific level by ID. An empty ID means DefaultID.
func (l *Loader) LoadByID(id string) (Level, error) {
	if id == "" {
		id = DefaultID
	}
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level not found: %s", id)
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

func parse(name string, data []byte) (Level, error) {
	ext := strings.ToLower(filepath.Ext(name))
	id := strings.TrimSuffix(name, filepath.Ext(name))

	var (
		parsed formats.Level
		err    error
	)
	switch ext {
	case ".yaml", ".yml":
		parsed, err = formats.ParseYAML(id, data)
	case ".txt":
		parsed, err = formats.ParseText(id, data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	if err != nil {
		return Level{}, err
	}
	return Level{
		ID:      parsed.ID,
		Name:    parsed.Name,
		Enemies: parsed.Enemies,
		Layout:  parsed.Layout,
	}, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func sortLevels(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}
