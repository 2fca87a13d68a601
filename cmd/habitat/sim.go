package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hamster-habitat/internal/core"
	"github.com/vovakirdan/hamster-habitat/internal/registry"
	"github.com/vovakirdan/hamster-habitat/internal/sandbox"
	"github.com/vovakirdan/hamster-habitat/internal/storage"
	"github.com/vovakirdan/hamster-habitat/internal/telemetry"
)

var (
	flagTicks        int
	flagTelemetryDir string
	flagWindow       int
	flagHistory      string
	flagNoHistory    bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the habitat headless",
	Long: `Run the simulation without a screen for a fixed number of ticks and
print a summary: mean needs, time spent in each state and how often the
hamsters crossed tubes or had to be recovered.

With --telemetry, one CSV row per window is written to telemetry.csv in
that directory, next to the config.yaml the run used. Every run is also
recorded in the run history (see 'habitat history') unless --no-history
is set.

Examples:
  habitat sim
  habitat sim --ticks 216000 --seed 7
  habitat sim --pace hectic --telemetry ./runs/hectic --window 600`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 36000, "Ticks to simulate")
	simCmd.Flags().StringVar(&flagTelemetryDir, "telemetry", "", "Directory for telemetry.csv and config.yaml")
	simCmd.Flags().IntVar(&flagWindow, "window", 0, "Ticks per telemetry window (0 = from config)")
	simCmd.Flags().StringVar(&flagHistory, "history", defaultHistoryPath, "Path to the run history database")
	simCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this run")
}

// lastSampleRecorder remembers the most recent sample so a partial final
// window can be flushed.
type lastSampleRecorder struct {
	*telemetry.Collector
	last telemetry.Sample
}

func (r *lastSampleRecorder) Record(s telemetry.Sample) error {
	r.last = s
	return r.Collector.Record(s)
}

func runSim(cmd *cobra.Command, args []string) {
	if flagTicks <= 0 {
		fail("--ticks must be positive, got %d", flagTicks)
	}

	cfg, err := loadHabitatConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	out, err := telemetry.NewOutputManager(flagTelemetryDir)
	if err != nil {
		fail("%v", err)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		fail("%v", err)
	}

	window := cfg.Telemetry.WindowTicks
	if flagWindow > 0 {
		window = flagWindow
	}
	rec := &lastSampleRecorder{Collector: telemetry.NewCollector(window, out)}

	sim, err := sandbox.New(cfg, sandbox.WithLogger(logger), sandbox.WithRecorder(rec))
	if err != nil {
		fail("%v", err)
	}

	seed := resolveSeed()
	sim.Reset(core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: flagFPS,
		Seed:     seed,
	})
	logger.Info("simulation started", "ticks", flagTicks, "seed", seed, "scenario", flagScenario, "pace", flagPace)

	in := core.NewInputFrame()
	for i := 0; i < flagTicks; i++ {
		sim.Step(in)
	}
	if err := sim.RecordErr(); err != nil {
		fail("telemetry: %v", err)
	}

	if rec.Pending() {
		if err := out.WriteTelemetry(rec.Flush(rec.last)); err != nil {
			fail("%v", err)
		}
	}

	summary := telemetry.Summarize(rec.Windows())
	fmt.Printf("Seed: %d  Scenario: %s  Pace: %s\n", seed, flagScenario, flagPace)
	if err := summary.Write(os.Stdout); err != nil {
		fail("%v", err)
	}
	if dir := out.Dir(); dir != "" {
		fmt.Printf("\nTelemetry written to %s\n", dir)
	}

	if flagNoHistory {
		return
	}
	store, err := storage.Open(flagHistory)
	if err != nil {
		logger.Warn("run history unavailable", "err", err)
		return
	}
	defer store.Close()
	scenario := flagScenario
	if scenario == "" {
		scenario = registry.DefaultScenario
	}
	id, err := store.SaveRun(storage.NewRunRecord(scenario, flagPace, seed, summary, out.Dir()))
	if err != nil {
		logger.Warn("run not recorded", "err", err)
		return
	}
	logger.Debug("run recorded", "id", id)
}
