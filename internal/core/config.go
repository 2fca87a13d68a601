package core

// RuntimeConfig contains configuration passed to the sandbox at initialization.
// The sandbox uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic simulation
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameMillis returns the simulated milliseconds covered by one tick.
func (c RuntimeConfig) FrameMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60
	}
	return 1000.0 / float64(c.TickRate)
}

// GameState represents the current state of the simulation.
// Returned by State() to communicate status to the platform.
type GameState struct {
	Tick      uint64 // Ticks simulated since the last reset
	Creatures int    // Number of creatures in the enclosure
	Paused    bool   // Whether the simulation is paused
}

// StepResult is returned by Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Events holds user-facing feedback produced this tick ("Food added!").
	Events []string
}
