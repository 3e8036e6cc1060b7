// Package registry lets game modes register themselves from init() so the
// CLI and the terminal front end can list and create them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Game is what the front end drives. Implementations hold no terminal
// state: the platform maps keys to actions, runs the clock and paints the
// screen buffer.
type Game interface {
	// ID is the stable identifier used on the command line and in the
	// results table, e.g. "tanks" or "tanks_survival".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new battle. The RuntimeConfig carries the screen size,
	// tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the battle by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render paints the battle into dst.
	Render(dst *core.Screen)

	// State returns score, pause and end flags.
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new terminal size
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
	titles[id] = f().Title()
}

// List returns the registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
