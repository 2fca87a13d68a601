package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hamster-habitat/internal/registry"
	"github.com/vovakirdan/hamster-habitat/internal/storage"
)

const defaultHistoryPath = "~/.habitat/runs.db"

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded headless runs",
	Long: `Display runs recorded by 'habitat sim'.

Without a scenario the most recent runs are listed. With one, its
happiest runs are shown together with totals for that scenario.

Examples:
  habitat history
  habitat history solo
  habitat history lazy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistory, "history", defaultHistoryPath, "Path to the run history database")
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of runs to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the scenario's runs")
}

func runHistory(cmd *cobra.Command, args []string) {
	scenario := ""
	if len(args) == 1 {
		scenario = args[0]
		if !registry.Exists(scenario) {
			fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenario)
			fmt.Fprintln(os.Stderr, "Run 'habitat scenarios' to see available scenarios.")
			os.Exit(1)
		}
	}
	if flagHistoryClear && scenario == "" {
		fail("--clear needs a scenario")
	}

	store, err := storage.Open(flagHistory)
	if err != nil {
		fail("opening run history: %v", err)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearRuns(scenario); err != nil {
			fail("%v", err)
		}
		fmt.Printf("Cleared runs for %s.\n", scenario)
		return
	}

	var runs []storage.RunRecord
	if scenario == "" {
		runs, err = store.RecentRuns(flagHistoryLimit)
		fmt.Println("Recent runs")
	} else {
		runs, err = store.BestRuns(scenario, flagHistoryLimit)
		fmt.Printf("Happiest runs - %s\n", scenario)
	}
	if err != nil {
		fail("retrieving runs: %v", err)
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'habitat sim' to record one.")
		return
	}

	fmt.Printf("  %-4s  %-10s  %-7s  %-20s  %8s  %5s  %6s  %5s  %s\n",
		"ID", "Scenario", "Pace", "Seed", "Ticks", "Happy", "Hunger", "Tubes", "Date")
	fmt.Printf("  %-4s  %-10s  %-7s  %-20s  %8s  %5s  %6s  %5s  %s\n",
		"--", "--------", "----", "----", "-----", "-----", "------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-4d  %-10s  %-7s  %-20d  %8d  %5.1f  %6.1f  %5d  %s\n",
			r.ID, r.Scenario, r.Pace, r.Seed, r.Ticks,
			r.HappinessMean, r.HungerMean, r.Transitions,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if scenario == "" {
		return
	}
	stats, err := store.GetScenarioStats(scenario)
	if err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %.1f  Average: %.1f  Ticks: %d\n",
			stats.Runs, stats.BestHappiness, stats.AvgHappiness, stats.TotalTicks)
	}
}
