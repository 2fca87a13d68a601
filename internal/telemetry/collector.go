package telemetry

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/hamster-habitat/internal/habitat"
)

// Recorder receives one sample per simulated tick.
type Recorder interface {
	Record(s Sample) error
}

// Collector accumulates samples within windows and produces WindowStats.
// Completed windows are written to the output manager, if any, and kept
// for Summarize.
type Collector struct {
	windowTicks int
	out         *OutputManager

	// Current window tracking
	windowStart   uint64
	ticks         int
	creatureTicks int
	stateTicks    map[habitat.State]int
	hiddenTicks   int

	// Event counters for current window
	transitions int
	stalls      int
	outOfBounds int
	feeds       int
	fills       int
	pets        int

	lastRecoveries map[string]habitat.Recoveries
	windows        []WindowStats
}

// NewCollector creates a collector flushing every windowTicks ticks.
// out may be nil to keep windows in memory only.
func NewCollector(windowTicks int, out *OutputManager) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:    windowTicks,
		out:            out,
		stateTicks:     make(map[habitat.State]int),
		lastRecoveries: make(map[string]habitat.Recoveries),
	}
}

// Record accumulates a sample and flushes the window once it is full.
func (c *Collector) Record(s Sample) error {
	if c.ticks == 0 {
		c.windowStart = s.Tick
	}
	c.ticks++

	for _, cs := range s.Creatures {
		c.creatureTicks++
		c.stateTicks[cs.State]++

		prev := c.lastRecoveries[cs.Name]
		c.transitions += delta(cs.Recoveries.Transitions, prev.Transitions)
		c.stalls += delta(cs.Recoveries.Stalls, prev.Stalls)
		c.outOfBounds += delta(cs.Recoveries.OutOfBounds, prev.OutOfBounds)
		c.lastRecoveries[cs.Name] = cs.Recoveries
	}
	if s.Hidden {
		c.hiddenTicks++
	}
	for _, a := range s.Actions {
		switch a {
		case "feed":
			c.feeds++
		case "fill":
			c.fills++
		case "pet":
			c.pets++
		}
	}

	if c.ticks < c.windowTicks {
		return nil
	}
	return c.out.WriteTelemetry(c.Flush(s))
}

// delta returns how much a cumulative counter grew. A counter that went
// backwards was reset, so its whole value is new.
func delta(cur, prev int) int {
	if cur < prev {
		return cur
	}
	return cur - prev
}

// Flush produces a WindowStats from the accumulated counters and the final
// sample, then resets counters for the next window.
func (c *Collector) Flush(last Sample) WindowStats {
	w := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   last.Tick,
		SimTimeSec:      last.SimTimeSec,
		Ticks:           c.ticks,
		Creatures:       len(last.Creatures),

		Transitions: c.transitions,
		Stalls:      c.stalls,
		OutOfBounds: c.outOfBounds,

		FoodLevel:  last.FoodLevel,
		WaterLevel: last.WaterLevel,
		HiddenTick: c.hiddenTicks,

		Feeds: c.feeds,
		Fills: c.fills,
		Pets:  c.pets,
	}

	n := len(last.Creatures)
	hunger := make([]float64, 0, n)
	thirst := make([]float64, 0, n)
	tired := make([]float64, 0, n)
	happy := make([]float64, 0, n)
	for _, cs := range last.Creatures {
		hunger = append(hunger, cs.Hunger)
		thirst = append(thirst, cs.Thirst)
		tired = append(tired, cs.Tiredness)
		happy = append(happy, cs.Happiness)
	}
	if n > 0 {
		w.HungerMean = stat.Mean(hunger, nil)
		w.ThirstMean = stat.Mean(thirst, nil)
		w.TirednessMean = stat.Mean(tired, nil)
	}
	w.HappinessMean, w.HappinessStd, w.HappinessP10, w.HappinessP50 = NeedStats(happy)

	if c.creatureTicks > 0 {
		for _, s := range habitat.States {
			w.setStateShare(s, float64(c.stateTicks[s])/float64(c.creatureTicks))
		}
	}

	c.windows = append(c.windows, w)

	// Reset for next window
	c.ticks = 0
	c.creatureTicks = 0
	clear(c.stateTicks)
	c.hiddenTicks = 0
	c.transitions = 0
	c.stalls = 0
	c.outOfBounds = 0
	c.feeds = 0
	c.fills = 0
	c.pets = 0

	return w
}

// Pending reports whether samples were recorded since the last flush.
func (c *Collector) Pending() bool {
	return c.ticks > 0
}

// Windows returns every flushed window in order.
func (c *Collector) Windows() []WindowStats {
	return c.windows
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
