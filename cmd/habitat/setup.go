package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/registry"
)

// loadHabitatConfig loads the configuration and applies the scenario and
// pace flags, in that order.
func loadHabitatConfig() (config.HabitatConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.HabitatConfig{}, err
	}

	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return config.HabitatConfig{}, err
	}

	if err := registry.Apply(flagScenario, &cfg); err != nil {
		return config.HabitatConfig{}, err
	}
	config.ApplyPacePreset(&cfg, pace)

	return cfg, nil
}

// newLogger builds the logger from --log-level and --log-file. Without a
// log file, output goes to fallback. The returned close function is never
// nil.
func newLogger(fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closeFn := func() error { return nil }
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "habitat",
		Level:           level,
	})
	return logger, closeFn, nil
}

// resolveSeed returns --seed, or a time-based seed when it is zero.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
