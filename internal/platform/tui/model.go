package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hamster-habitat/internal/core"
	"github.com/vovakirdan/hamster-habitat/internal/sandbox"
)

// helpRows is the height reserved for the help footer.
const helpRows = 1

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model running the habitat.
type Model struct {
	sim        *sandbox.Sandbox
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	state      core.GameState
	logger     *log.Logger

	keys       KeyMap
	help       help.Model
	status     table.Model
	showStatus bool

	width, height int
	quitting      bool
}

// NewModel creates a new Bubble Tea model for the sandbox.
// A nil logger discards output.
func NewModel(sim *sandbox.Sandbox, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		sim:        sim,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       h,
		status:     newStatusTable(len(sim.Creatures())),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.screen = core.NewScreen(m.screenSize())
	return m
}

// screenSize returns the cells left for the habitat after the footer and
// the optional status panel.
func (m Model) screenSize() (int, int) {
	h := m.height - helpRows
	if m.showStatus {
		h -= statusHeight(len(m.sim.Creatures()))
	}
	return m.width, max(0, h)
}

// Init initializes the model and starts the simulation.
func (m Model) Init() tea.Cmd {
	w, h := m.screenSize()
	rc := m.config
	rc.ScreenW, rc.ScreenH = w, h
	m.sim.Reset(rc)
	m.logger.Info("habitat started", "seed", rc.Seed, "tick_rate", rc.TickRate, "creatures", len(m.sim.Creatures()))

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Status):
		m.showStatus = !m.showStatus
		m.applySize()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.logger.Info("habitat stopped", "tick", m.state.Tick)
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse turns left clicks into pointer input for the next tick.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.inputFrame.AddClick(msg.X, msg.Y)
	}
	return m, nil
}

// handleResize processes window resize events. The simulation keeps
// running; only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.applySize()
	return m, nil
}

func (m *Model) applySize() {
	w, h := m.screenSize()
	m.config.ScreenW, m.config.ScreenH = w, h
	m.screen.Resize(w, h)
	m.sim.Resize(w, h)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.sim.Step(m.inputFrame)
	m.state = result.State

	if m.showStatus {
		m.status.SetRows(statusRows(m.sim.Snapshot().Creatures))
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen as plain text under
// ~/.habitat/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.screen.Clear()
	m.sim.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".habitat", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.sim.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.sim.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	if m.showStatus {
		b.WriteString("\n")
		b.WriteString(m.status.View())
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program for the sandbox.
func Run(sim *sandbox.Sandbox, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(sim, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks feed, fill and pet
	)

	_, err := p.Run()
	return err
}
