// habitat is a terminal hamster habitat: autonomous hamsters wander a
// five-room enclosure, get hungry, thirsty and tired, and react to being fed
// and petted.
//
// Usage:
//
//	habitat run              - Watch the habitat in the terminal
//	habitat sim              - Run headless and print a summary
//	habitat rooms            - Print the room and tube table
//	habitat scenarios        - List available scenarios
//	habitat history          - Show recorded headless runs
//	habitat config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--config <path>      - Custom habitat YAML
//	--pace <preset>      - Need accrual speed: calm, normal, hectic
//	--scenario <id>      - Scenario applied to the configuration
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the sandbox to register its scenarios
	_ "github.com/vovakirdan/hamster-habitat/internal/sandbox"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagPace     string
	flagScenario string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "habitat",
	Short: "Hamster Habitat - a pet sandbox in your terminal",
	Long: `Hamster Habitat simulates a few hamsters living in a five-room
enclosure connected by tubes. They eat, drink, sleep, run on the wheel and
hide in the tunnel on their own; you keep the bowl and bottle filled.

Available commands:
  run        - Watch the habitat interactively
  sim        - Run headless for a number of ticks
  rooms      - Print the enclosure layout
  scenarios  - List scenarios
  history    - Show recorded headless runs
  config     - Print the default configuration

Examples:
  habitat run
  habitat run --pace hectic --scenario solo
  habitat sim --ticks 36000 --telemetry ./out
  habitat config > ~/.habitat/configs/habitat.yaml`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom habitat config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "normal", "Pace preset: calm, normal, hectic")
	rootCmd.PersistentFlags().StringVar(&flagScenario, "scenario", "habitat", "Scenario to apply (see 'habitat scenarios')")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
