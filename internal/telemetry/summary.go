package telemetry

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/hamster-habitat/internal/habitat"
)

// Summary condenses a run's windows.
type Summary struct {
	Windows int
	Ticks   int

	HappinessMean float64 // Mean of window-end happiness means
	HappinessStd  float64 // Spread of the window means across the run
	HungerMean    float64
	ThirstMean    float64
	TirednessMean float64

	Transitions int
	Stalls      int
	OutOfBounds int
	Feeds       int
	Fills       int
	Pets        int

	StateShare map[habitat.State]float64 // Tick-weighted over all windows
}

// Summarize folds windows into a Summary.
func Summarize(windows []WindowStats) Summary {
	s := Summary{
		Windows:    len(windows),
		StateShare: make(map[habitat.State]float64, len(habitat.States)),
	}
	if len(windows) == 0 {
		return s
	}

	happy := make([]float64, len(windows))
	hunger := make([]float64, len(windows))
	thirst := make([]float64, len(windows))
	tired := make([]float64, len(windows))
	weights := make([]float64, len(windows))
	for i, w := range windows {
		happy[i] = w.HappinessMean
		hunger[i] = w.HungerMean
		thirst[i] = w.ThirstMean
		tired[i] = w.TirednessMean
		weights[i] = float64(w.Ticks * w.Creatures)

		s.Ticks += w.Ticks
		s.Transitions += w.Transitions
		s.Stalls += w.Stalls
		s.OutOfBounds += w.OutOfBounds
		s.Feeds += w.Feeds
		s.Fills += w.Fills
		s.Pets += w.Pets
	}

	s.HappinessMean = stat.Mean(happy, nil)
	if len(happy) > 1 {
		s.HappinessStd = stat.StdDev(happy, nil)
	}
	s.HungerMean = stat.Mean(hunger, nil)
	s.ThirstMean = stat.Mean(thirst, nil)
	s.TirednessMean = stat.Mean(tired, nil)

	var totalWeight float64
	for _, w := range weights {
		totalWeight += w
	}
	shares := make([]float64, len(windows))
	for _, st := range habitat.States {
		if totalWeight == 0 {
			s.StateShare[st] = 0
			continue
		}
		for i, w := range windows {
			shares[i] = w.StateShare(st)
		}
		s.StateShare[st] = stat.Mean(shares, weights)
	}

	return s
}

// Write prints the summary as aligned text.
func (s Summary) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Windows: %d (%d ticks)\n", s.Windows, s.Ticks); err != nil {
		return err
	}
	fmt.Fprintf(w, "Happiness: %.1f (σ %.2f)\n", s.HappinessMean, s.HappinessStd)
	fmt.Fprintf(w, "Hunger: %.1f  Thirst: %.1f  Tiredness: %.1f\n", s.HungerMean, s.ThirstMean, s.TirednessMean)
	fmt.Fprintf(w, "Transitions: %d  Stalls: %d  Out of bounds: %d\n", s.Transitions, s.Stalls, s.OutOfBounds)
	fmt.Fprintf(w, "Feeds: %d  Fills: %d  Pets: %d\n", s.Feeds, s.Fills, s.Pets)
	fmt.Fprintln(w, "Time by state:")
	for _, st := range habitat.States {
		fmt.Fprintf(w, "  %-10s %5.1f%%\n", st, 100*s.StateShare[st])
	}
	return nil
}
