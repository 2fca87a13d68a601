package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hamster-habitat/internal/habitat"
)

// statusColumns are the per-creature columns of the status panel.
var statusColumns = []table.Column{
	{Title: "Name", Width: 10},
	{Title: "State", Width: 10},
	{Title: "Room", Width: 12},
	{Title: "Hunger", Width: 6},
	{Title: "Thirst", Width: 6},
	{Title: "Energy", Width: 6},
	{Title: "Happy", Width: 6},
	{Title: "Tubes", Width: 5},
	{Title: "Stalls", Width: 6},
}

// statusHeight returns the rows the panel occupies for n creatures:
// header, its border and one row per creature.
func statusHeight(n int) int {
	return n + 2
}

// newStatusTable creates the creature status table.
func newStatusTable(creatures int) table.Model {
	t := table.New(
		table.WithColumns(statusColumns),
		table.WithFocused(false),
		table.WithHeight(statusHeight(creatures)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)

	return t
}

// statusRows formats creature snapshots as table rows.
func statusRows(creatures []habitat.CreatureSnapshot) []table.Row {
	rows := make([]table.Row, len(creatures))
	for i, c := range creatures {
		rows[i] = table.Row{
			c.Name,
			c.State.String(),
			c.Room,
			fmt.Sprintf("%.0f", c.Hunger),
			fmt.Sprintf("%.0f", c.Thirst),
			fmt.Sprintf("%.0f", 100-c.Tiredness),
			fmt.Sprintf("%.0f", c.Happiness),
			fmt.Sprintf("%d", c.Recoveries.Transitions),
			fmt.Sprintf("%d", c.Recoveries.Stalls),
		}
	}
	return rows
}
