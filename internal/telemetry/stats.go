// Package telemetry aggregates per-tick habitat samples into fixed windows,
// writes them as CSV and summarizes a run.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/hamster-habitat/internal/habitat"
)

// Sample is what the driver observes after one tick.
type Sample struct {
	Tick       uint64
	SimTimeSec float64
	Creatures  []habitat.CreatureSnapshot
	FoodLevel  float64
	WaterLevel float64
	WheelSpin  float64
	Hidden     bool     // Tunnel occupied
	Actions    []string // User actions applied this tick ("feed", "fill", "pet", "reset")
}

// WindowStats holds aggregated statistics for one window of ticks.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Ticks           int     `csv:"ticks"`
	Creatures       int     `csv:"creatures"`

	// Needs sampled at window end, across creatures
	HungerMean    float64 `csv:"hunger_mean"`
	ThirstMean    float64 `csv:"thirst_mean"`
	TirednessMean float64 `csv:"tiredness_mean"`
	HappinessMean float64 `csv:"happiness_mean"`
	HappinessStd  float64 `csv:"happiness_std"`
	HappinessP10  float64 `csv:"happiness_p10"`
	HappinessP50  float64 `csv:"happiness_p50"`

	// Fraction of creature-ticks spent in each state during the window
	Idle      float64 `csv:"state_idle"`
	Walking   float64 `csv:"state_walking"`
	Exploring float64 `csv:"state_exploring"`
	Eating    float64 `csv:"state_eating"`
	Drinking  float64 `csv:"state_drinking"`
	Sleeping  float64 `csv:"state_sleeping"`
	Playing   float64 `csv:"state_playing"`
	Hiding    float64 `csv:"state_hiding"`

	// Recoveries during the window
	Transitions int `csv:"transitions"`
	Stalls      int `csv:"stalls"`
	OutOfBounds int `csv:"out_of_bounds"`

	// Resources at window end
	FoodLevel  float64 `csv:"food_level"`
	WaterLevel float64 `csv:"water_level"`
	HiddenTick int     `csv:"hidden_ticks"`

	// User actions during the window
	Feeds int `csv:"feeds"`
	Fills int `csv:"fills"`
	Pets  int `csv:"pets"`
}

// StateShare returns the fraction recorded for s.
func (w WindowStats) StateShare(s habitat.State) float64 {
	switch s {
	case habitat.StateIdle:
		return w.Idle
	case habitat.StateWalking:
		return w.Walking
	case habitat.StateExploring:
		return w.Exploring
	case habitat.StateEating:
		return w.Eating
	case habitat.StateDrinking:
		return w.Drinking
	case habitat.StateSleeping:
		return w.Sleeping
	case habitat.StatePlaying:
		return w.Playing
	case habitat.StateHiding:
		return w.Hiding
	default:
		return 0
	}
}

func (w *WindowStats) setStateShare(s habitat.State, v float64) {
	switch s {
	case habitat.StateIdle:
		w.Idle = v
	case habitat.StateWalking:
		w.Walking = v
	case habitat.StateExploring:
		w.Exploring = v
	case habitat.StateEating:
		w.Eating = v
	case habitat.StateDrinking:
		w.Drinking = v
	case habitat.StateSleeping:
		w.Sleeping = v
	case habitat.StatePlaying:
		w.Playing = v
	case habitat.StateHiding:
		w.Hiding = v
	}
}

// NeedStats calculates mean, standard deviation and the 10th and 50th
// percentiles of values. Empty input yields zeros; a single value has zero
// spread.
func NeedStats(values []float64) (mean, std, p10, p50 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)

	return mean, std, p10, p50
}
