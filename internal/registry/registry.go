// Package registry provides a global registry of habitat scenarios.
// Scenarios register themselves in init() functions, allowing the CLI to
// list and apply them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/hamster-habitat/internal/config"
)

// DefaultScenario is applied when none is named.
const DefaultScenario = "habitat"

// Scenario adjusts a loaded configuration before the sandbox is built.
type Scenario struct {
	// ID is the unique name used on the command line (e.g., "solo").
	ID string

	// Title is a human-readable description for listings.
	Title string

	// Apply mutates the configuration in place. It may return an error if
	// the configuration cannot host the scenario.
	Apply func(cfg *config.HabitatConfig) error
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID    string
	Title string
}

var (
	scenarios = make(map[string]Scenario)
	mu        sync.RWMutex
)

// Register adds a scenario to the registry.
// Typically called from an init() function.
// Panics if a scenario with the same ID is already registered.
func Register(s Scenario) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := scenarios[s.ID]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", s.ID))
	}
	scenarios[s.ID] = s
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(scenarios))
	for id, s := range scenarios {
		result = append(result, ScenarioInfo{ID: id, Title: s.Title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Apply runs the scenario with the given ID against cfg.
// An empty ID means DefaultScenario.
func Apply(id string, cfg *config.HabitatConfig) error {
	if id == "" {
		id = DefaultScenario
	}

	mu.RLock()
	s, ok := scenarios[id]
	mu.RUnlock()
	if !ok {
		return fmt.Errorf("registry: unknown scenario %q", id)
	}
	if s.Apply == nil {
		return nil
	}
	if err := s.Apply(cfg); err != nil {
		return fmt.Errorf("registry: scenario %q: %w", id, err)
	}
	return nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := scenarios[id]
	return ok
}
