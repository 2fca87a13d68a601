package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hamster-habitat/internal/core"
	"github.com/vovakirdan/hamster-habitat/internal/platform/tui"
	"github.com/vovakirdan/hamster-habitat/internal/sandbox"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the habitat",
	Long: `Open the habitat in the terminal.

Controls:
  F          - Top up the food bowl
  W          - Refill the water bottle
  E          - Pet every hamster
  Click      - Feed (bowl), fill (bottle) or pet (hamster)
  Space/P    - Pause
  R          - Reset
  Tab        - Status table
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Logs are discarded unless --log-file is set, since the habitat owns the
screen.

Examples:
  habitat run
  habitat run --pace calm --seed 42
  habitat run --log-file habitat.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runRun,
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, err := loadHabitatConfig()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	sim, err := sandbox.New(cfg, sandbox.WithLogger(logger))
	if err != nil {
		fail("%v", err)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     resolveSeed(),
	}

	if err := tui.Run(sim, rc, logger); err != nil {
		logger.Error("habitat crashed", "err", err)
		closeLog()
		fail("running habitat: %v", err)
	}
}
