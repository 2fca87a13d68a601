// Package sandbox drives the hamster habitat: it owns the creatures and the
// environment, applies user actions and clicks, ticks the simulation at a
// fixed step and draws it into a core.Screen.
//
// The sandbox has the same shape as a game (Reset, Step, Render, State), so
// the platform layer can run it without knowing anything about hamsters.
package sandbox

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/core"
	"github.com/vovakirdan/hamster-habitat/internal/habitat"
	"github.com/vovakirdan/hamster-habitat/internal/telemetry"
)

// feedbackMillis is how long a feedback message stays on the HUD.
const feedbackMillis = 1000.0

// ErrNoCreatures is returned when the configuration spawns nobody.
var ErrNoCreatures = errors.New("sandbox: no creatures configured")

// Sandbox is the simulation driver.
type Sandbox struct {
	cfg       config.HabitatConfig
	labels    labels
	layout    *habitat.Layout
	env       *habitat.Environment
	creatures []*habitat.Creature
	occupants []habitat.Occupant

	logger    *log.Logger
	recorder  telemetry.Recorder
	recordErr error

	config core.RuntimeConfig
	dt     float64 // ms per tick
	tick   uint64  // Ticks since the last reset
	frames uint64  // Ticks since Reset(RuntimeConfig), never rewound
	paused bool
	view   viewport

	feedback      string
	feedbackTicks int
	events        []string // Feedback produced during the current Step
	actions       []string // Actions not yet handed to the recorder
}

// Option customizes a Sandbox.
type Option func(*Sandbox)

// WithLogger sets the logger for user actions and creature recoveries.
func WithLogger(l *log.Logger) Option {
	return func(s *Sandbox) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sends one telemetry sample per simulated tick to r.
func WithRecorder(r telemetry.Recorder) Option {
	return func(s *Sandbox) { s.recorder = r }
}

// New builds the layout from cfg and resets the sandbox with the default
// runtime configuration.
func New(cfg config.HabitatConfig, opts ...Option) (*Sandbox, error) {
	if len(cfg.Creatures) == 0 {
		return nil, ErrNoCreatures
	}
	layout, err := habitat.NewLayout(cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	s := &Sandbox{
		cfg:    cfg,
		labels: labelsFor(cfg.Language),
		layout: layout,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Reset(core.DefaultConfig())
	return s, nil
}

// ID returns the identifier used for file names.
func (s *Sandbox) ID() string {
	return "habitat"
}

// Title returns the display name.
func (s *Sandbox) Title() string {
	return "Hamster Habitat"
}

// Reset rebuilds creatures and environment. Each creature gets its own
// random source seeded from rc.Seed, so equal seeds replay identically.
func (s *Sandbox) Reset(rc core.RuntimeConfig) {
	s.config = rc
	s.dt = rc.FrameMillis()

	rng := rand.New(rand.NewSource(rc.Seed))
	s.creatures = s.creatures[:0]
	s.occupants = s.occupants[:0]
	for _, spawn := range s.cfg.Creatures {
		c, err := habitat.NewCreature(s.cfg, s.layout, spawn, habitat.WithSeed(rng.Int63()))
		if err != nil {
			s.logger.Error("creature not created", "name", spawn.Name, "err", err)
			continue
		}
		s.creatures = append(s.creatures, c)
		s.occupants = append(s.occupants, c)
	}
	s.env = habitat.NewEnvironment(s.cfg)

	s.tick = 0
	s.frames = 0
	s.paused = false
	s.feedback = ""
	s.feedbackTicks = 0
	s.events = nil
	s.actions = nil
	s.recordErr = nil
	s.Resize(rc.ScreenW, rc.ScreenH)

	s.logger.Debug("sandbox reset", "seed", rc.Seed, "creatures", len(s.creatures), "tick_rate", rc.TickRate)
}

// Resize adapts the viewport to a new screen size without touching the
// simulation.
func (s *Sandbox) Resize(w, h int) {
	s.config.ScreenW = w
	s.config.ScreenH = h
	s.view = s.viewportFor(w, h)
}

// Step applies the frame's input and advances the simulation by one tick
// unless paused. Feed, fill, pet and clicks work while paused.
func (s *Sandbox) Step(in core.InputFrame) core.StepResult {
	s.events = nil

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
		s.logger.Info("pause toggled", "paused", s.paused)
	}
	if in.Has(core.ActionReset) {
		s.resetWorld()
	}
	if in.Has(core.ActionFeed) {
		s.Feed()
	}
	if in.Has(core.ActionFill) {
		s.Fill()
	}
	if in.Has(core.ActionPet) {
		s.PetAll()
	}
	for _, c := range in.Clicks {
		s.Click(c.X, c.Y)
	}

	if !s.paused {
		s.advance()
	}

	if s.feedbackTicks > 0 {
		s.feedbackTicks--
		if s.feedbackTicks == 0 {
			s.feedback = ""
		}
	}

	return core.StepResult{State: s.State(), Events: s.events}
}

// advance runs one simulation tick: every creature, then the toys.
func (s *Sandbox) advance() {
	s.tick++
	s.frames++

	for _, c := range s.creatures {
		before := c.Recoveries()
		c.Update(s.dt, s.env)
		s.logRecoveries(c, before)
	}
	s.env.Update(s.dt, s.occupants...)

	s.record()
}

func (s *Sandbox) logRecoveries(c *habitat.Creature, before habitat.Recoveries) {
	after := c.Recoveries()
	if after.Transitions > before.Transitions {
		s.logger.Debug("tube crossing", "creature", c.Name(), "room", c.Room(), "tick", s.tick)
	}
	if after.Stalls > before.Stalls {
		p := c.Position()
		s.logger.Debug("stall recovery", "creature", c.Name(), "x", p.X, "y", p.Y, "tick", s.tick)
	}
	if after.OutOfBounds > before.OutOfBounds {
		s.logger.Debug("out of bounds", "creature", c.Name(), "room", c.Room(), "tick", s.tick)
	}
}

func (s *Sandbox) record() {
	if s.recorder == nil {
		s.actions = s.actions[:0]
		return
	}

	sample := telemetry.Sample{
		Tick:       s.frames,
		SimTimeSec: float64(s.frames) * s.dt / 1000,
		Creatures:  make([]habitat.CreatureSnapshot, len(s.creatures)),
		Actions:    append([]string(nil), s.actions...),
	}
	for i, c := range s.creatures {
		sample.Creatures[i] = c.Snapshot()
	}
	if bowl, ok := s.env.Food(); ok {
		sample.FoodLevel = bowl.Level()
	}
	if bottle, ok := s.env.Water(); ok {
		sample.WaterLevel = bottle.Level()
	}
	if wheel, ok := s.env.WheelToy(); ok {
		sample.WheelSpin = wheel.RotationSpeed()
	}
	if tunnel, ok := s.env.TunnelToy(); ok {
		sample.Hidden = tunnel.Occupied()
	}
	s.actions = s.actions[:0]

	if err := s.recorder.Record(sample); err != nil {
		s.logger.Error("telemetry disabled", "err", err)
		s.recordErr = err
		s.recorder = nil
	}
}

// resetWorld puts creatures and objects back to their starting state.
// Baselines and seeds are kept, so the run restarts from the same point.
func (s *Sandbox) resetWorld() {
	for _, c := range s.creatures {
		c.Reset()
	}
	s.env.Reset()
	s.tick = 0
	s.note("reset", s.labels.Reset)
}

// Feed tops up the food bowl. It reports false if there is no bowl.
func (s *Sandbox) Feed() bool {
	bowl, ok := s.env.Food()
	if !ok {
		return false
	}
	bowl.Feed()
	s.note("feed", s.labels.FoodAdded, "level", bowl.Level())
	return true
}

// Fill refills the water bottle. It reports false if there is no bottle.
func (s *Sandbox) Fill() bool {
	bottle, ok := s.env.Water()
	if !ok {
		return false
	}
	bottle.Fill()
	s.note("fill", s.labels.WaterFilled, "level", bottle.Level())
	return true
}

// PetAll pets every creature once.
func (s *Sandbox) PetAll() {
	for _, c := range s.creatures {
		c.Pet()
	}
	s.note("pet", s.labels.Petted, "creatures", len(s.creatures))
}

// Click hit-tests a screen cell against the bowl, the bottle and then the
// creatures, and applies the first match. It reports whether anything was
// hit.
func (s *Sandbox) Click(x, y int) bool {
	if !s.view.valid() || !s.view.area.Contains(x, y) {
		return false
	}

	if bowl, ok := s.env.Food(); ok && s.view.rectToCells(bowl.Bounds()).Contains(x, y) {
		return s.Feed()
	}
	if bottle, ok := s.env.Water(); ok && s.view.rectToCells(bottle.Bounds()).Contains(x, y) {
		return s.Fill()
	}
	for _, c := range s.creatures {
		if s.hitCreature(c, x, y) {
			c.Pet()
			s.note("pet", s.labels.Petted, "creature", c.Name(), "happiness", c.Happiness())
			return true
		}
	}
	return false
}

// hitCreature reports whether cell (x, y) falls on the creature's body or
// its drawn sprite.
func (s *Sandbox) hitCreature(c *habitat.Creature, x, y int) bool {
	if s.view.rectToCells(c.Bounds()).Contains(x, y) {
		return true
	}
	cx, cy := s.view.toCell(c.Position())
	return y == cy && x >= cx-1 && x <= cx+1
}

// note records a user action, shows its feedback and logs it.
func (s *Sandbox) note(action, msg string, keyvals ...any) {
	s.actions = append(s.actions, action)
	s.events = append(s.events, msg)
	s.feedback = msg
	s.feedbackTicks = max(1, int(feedbackMillis/s.dt))
	s.logger.Info(action, keyvals...)
}

// State returns the tick count, creature count and pause flag.
func (s *Sandbox) State() core.GameState {
	return core.GameState{
		Tick:      s.tick,
		Creatures: len(s.creatures),
		Paused:    s.paused,
	}
}

// RecordErr returns the error that disabled telemetry, if any.
func (s *Sandbox) RecordErr() error {
	return s.recordErr
}

// Feedback returns the message currently shown on the HUD.
func (s *Sandbox) Feedback() string {
	return s.feedback
}

// Creatures returns the creatures in update order.
func (s *Sandbox) Creatures() []*habitat.Creature {
	return s.creatures
}

// Environment returns the interactive objects.
func (s *Sandbox) Environment() *habitat.Environment {
	return s.env
}

// Layout returns the enclosure geometry.
func (s *Sandbox) Layout() *habitat.Layout {
	return s.layout
}

// Snapshot is a read-only copy of the whole habitat.
type Snapshot struct {
	Tick           uint64
	Paused         bool
	FoodLevel      float64
	WaterLevel     float64
	WheelRotation  float64
	WheelSpin      float64
	TunnelOccupied bool
	Creatures      []habitat.CreatureSnapshot
}

// Snapshot copies the observable state of the habitat.
func (s *Sandbox) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      s.tick,
		Paused:    s.paused,
		Creatures: make([]habitat.CreatureSnapshot, len(s.creatures)),
	}
	for i, c := range s.creatures {
		snap.Creatures[i] = c.Snapshot()
	}
	if bowl, ok := s.env.Food(); ok {
		snap.FoodLevel = bowl.Level()
	}
	if bottle, ok := s.env.Water(); ok {
		snap.WaterLevel = bottle.Level()
	}
	if wheel, ok := s.env.WheelToy(); ok {
		snap.WheelRotation = wheel.Rotation()
		snap.WheelSpin = wheel.RotationSpeed()
	}
	if tunnel, ok := s.env.TunnelToy(); ok {
		snap.TunnelOccupied = tunnel.Occupied()
	}
	return snap
}
