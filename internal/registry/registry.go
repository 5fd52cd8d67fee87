// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platforms
// to discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/zero/internal/core"
	"github.com/vovakirdan/zero/internal/raster"
)

// Scene is the per-frame callback pair every host drives: Update once per
// tick, Draw once per presented frame.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "zero", "orbit").
	// Used for CLI arguments, URLs and capture records.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the scene for the given frame size and palette.
	// Called once at start, on resize, and on user reset.
	Reset(cfg core.RuntimeConfig)

	// Update advances the scene by one tick.
	Update(in core.InputFrame)

	// Draw renders the current state. Scenes clear the frame themselves.
	Draw(r *raster.Renderer)

	// State returns the host-visible state (frame counter, paused).
	State() core.SceneState
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SceneInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
