// Package registry provides a global registry for demo factories.
// Demos register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osokolkov/steploop/internal/core"
)

// Demo is the interface all loop demos implement. Demos contain pure
// simulation logic with no external dependencies (especially no Bubble
// Tea); the platform handles input mapping, timing and display.
type Demo interface {
	// ID returns a unique identifier (e.g. "bounce"). Used for CLI
	// commands and run report storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the demo state. Called once at start
	// and again on restart. RuntimeConfig provides screen dimensions,
	// rates and the RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed update of duration dt.
	// Input is abstracted to platform-level actions.
	Step(in core.InputFrame, dt time.Duration) core.StepResult

	// Render draws the current state into the screen buffer. alpha is
	// the interpolation fraction in [0,1): zero renders the last
	// completed update exactly, larger values place moving entities
	// proportionally toward their next position. The screen is
	// pre-cleared before this call.
	Render(dst *core.Screen, alpha float64)

	// State returns the current demo state.
	State() core.DemoState
}

// DemoInfo contains metadata about a registered demo.
type DemoInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a demo.
type Factory func() Demo

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a demo factory to the registry.
// Typically called from a demo's init() function.
// Panics if a demo with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: demo %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	d := f()
	titles[id] = d.Title()
}

// List returns information about all registered demos, sorted by ID.
func List() []DemoInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]DemoInfo, 0, len(factories))
	for id := range factories {
		result = append(result, DemoInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new demo by its ID.
// Returns an error if the demo ID is not registered.
func Create(id string) (Demo, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown demo %q", id)
	}

	return f(), nil
}

// Exists checks if a demo with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
