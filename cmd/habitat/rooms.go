package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hamster-habitat/internal/habitat"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Print the enclosure layout",
	Long: `Shows the rooms, their openings and the tubes connecting them, after
validation. Useful when editing the layout section of a custom config.`,
	Args: cobra.NoArgs,
	Run:  runRooms,
}

func runRooms(cmd *cobra.Command, args []string) {
	cfg, err := loadHabitatConfig()
	if err != nil {
		fail("%v", err)
	}
	layout, err := habitat.NewLayout(cfg.Layout)
	if err != nil {
		fail("%v", err)
	}

	rooms := layout.Rooms()
	maxName := 4 // "Room" header
	for _, r := range rooms {
		maxName = max(maxName, len(r.Name))
	}

	fmt.Println("Rooms:")
	fmt.Println()
	fmt.Printf("  %-*s  %-23s  %s\n", maxName, "Room", "Bounds", "Openings")
	fmt.Printf("  %-*s  %-23s  %s\n", maxName, "----", "------", "--------")
	for _, r := range rooms {
		b := r.Bounds
		bounds := fmt.Sprintf("(%g,%g)-(%g,%g)", b.X, b.Y, b.X+b.Width, b.Y+b.Height)
		fmt.Printf("  %-*s  %-23s  %d\n", maxName, r.Name, bounds, len(r.Openings))
	}

	fmt.Println()
	fmt.Println("Tubes:")
	fmt.Println()
	for _, c := range layout.Connectors() {
		fmt.Printf("  %s\n", c.Name)
		fmt.Printf("    %-*s %s (%g,%g)  <->  %s %s (%g,%g)\n",
			maxName, c.A.Room, c.A.Edge, c.A.Point.X, c.A.Point.Y,
			c.B.Room, c.B.Edge, c.B.Point.X, c.B.Point.Y)
		fmt.Printf("    radius %g  cooldown %d ticks  arrival offset %g\n",
			c.DetectionRadius, c.CooldownTicks, c.ArrivalOffset)
	}
}
