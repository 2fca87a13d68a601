// Package habitat implements the hamster simulation: the enclosure layout,
// the interactive objects and the creature's needs, behavior state machine,
// movement and containment.
//
// Nothing here draws, logs or reads input. A driver calls Update on every
// creature and then on the Environment once per tick.
package habitat

import (
	"errors"
	"math"
	"math/rand"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/core"
)

const (
	needMax = 100.0

	// Reset and construction start in idle for this long.
	initialIdleMillis = 1000.0

	animationFrames   = 4.0
	animationMinSpeed = 0.5
)

// Recoveries counts the self-healing events a creature went through.
type Recoveries struct {
	Transitions int // Connector crossings
	Stalls      int // Teleports home after being stuck
	OutOfBounds int // Snaps to a room center from outside every room
}

// Creature is one autonomous hamster.
type Creature struct {
	cfg      config.CreatureConfig
	behavior config.BehaviorConfig
	layout   *Layout
	rng      *rand.Rand

	name  string
	color string

	// Kinematics
	pos         core.Vec2
	lastPos     core.Vec2 // Position at the end of the previous tick
	moved       float64   // Distance covered between the last two tick ends
	vel         core.Vec2 // Derived by the integrator
	heading     float64   // Radians
	speed       float64
	targetSpeed float64
	spawn       core.Vec2
	home        core.Vec2

	// Needs in [0, 100]
	hunger    float64
	thirst    float64
	tiredness float64
	happiness float64
	baseline  [4]float64 // hunger, thirst, tiredness, happiness

	// Behavior
	state    State
	timer    float64 // ms left in the current state
	waypoint Port    // Exploring target

	// Containment
	room     string
	cooldown int // Ticks before another connector crossing is allowed
	stuck    int

	// Animation
	frame       float64
	facingRight bool

	recoveries Recoveries
}

// CreatureOption customizes a creature at construction.
type CreatureOption func(*Creature)

// WithSeed gives the creature its own deterministic random source.
func WithSeed(seed int64) CreatureOption {
	return func(c *Creature) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithHome sets the stall recovery anchor. It defaults to the spawn point.
func WithHome(p core.Vec2) CreatureOption {
	return func(c *Creature) { c.home = p }
}

// ErrNoLayout is returned when a creature is built without an enclosure.
var ErrNoLayout = errors.New("habitat: creature needs a layout")

// NewCreature places a creature at the spawn point. Baseline needs are drawn
// once here so that Reset always restores the same values.
func NewCreature(cfg config.HabitatConfig, layout *Layout, spawn config.CreatureSpawn, opts ...CreatureOption) (*Creature, error) {
	if layout == nil {
		return nil, ErrNoLayout
	}

	start := core.V(spawn.X, spawn.Y)
	c := &Creature{
		cfg:      cfg.Creature,
		behavior: cfg.Behavior,
		layout:   layout,
		name:     spawn.Name,
		color:    spawn.Color,
		spawn:    start,
		home:     start,
	}
	if spawn.HomeX != nil && spawn.HomeY != nil {
		c.home = core.V(*spawn.HomeX, *spawn.HomeY)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(1))
	}

	maxNeed := c.cfg.BaselineNeedMax
	c.baseline = [4]float64{
		core.RandRange(c.rng, 0, maxNeed),
		core.RandRange(c.rng, 0, maxNeed),
		core.RandRange(c.rng, 0, maxNeed),
		needMax,
	}

	c.Reset()
	return c, nil
}

// Reset restores the creature to its spawn point and baseline needs.
// It draws no random numbers, so calling it twice equals calling it once.
func (c *Creature) Reset() {
	c.pos = c.spawn
	c.lastPos = c.spawn
	c.moved = 0
	c.vel = core.Vec2{}
	c.heading = 0
	c.speed = 0
	c.targetSpeed = 0

	c.hunger = c.baseline[0]
	c.thirst = c.baseline[1]
	c.tiredness = c.baseline[2]
	c.happiness = c.baseline[3]

	c.state = StateIdle
	c.timer = initialIdleMillis
	c.waypoint = Port{}

	c.room = c.resolveRoom(c.spawn)
	c.cooldown = 0
	c.stuck = 0

	c.frame = 0
	c.facingRight = true
	c.recoveries = Recoveries{}
}

// Update advances the creature by one tick of dt milliseconds.
// Order: needs, behavior, movement, stall check, containment, animation.
func (c *Creature) Update(dt float64, env *Environment) {
	c.updateNeeds(dt)
	c.updateBehavior(dt, env)
	c.integrate()
	c.checkStall()
	c.contain()
	c.clampNeeds()
	c.animate(dt)
	c.moved = core.Distance(c.pos, c.lastPos)
	c.lastPos = c.pos
}

// Pet cheers the creature up. It is the only external write to its needs.
func (c *Creature) Pet() {
	c.happiness = math.Min(needMax, c.happiness+c.cfg.PetAmount)
}

func (c *Creature) updateNeeds(dt float64) {
	c.hunger = math.Min(needMax, c.hunger+c.cfg.HungerRate*dt)
	c.thirst = math.Min(needMax, c.thirst+c.cfg.ThirstRate*dt)
	c.tiredness = math.Min(needMax, c.tiredness+c.cfg.EnergyRate*dt)

	if (c.hunger+c.thirst+c.tiredness)/3 > 50 {
		c.happiness -= c.cfg.HappinessDecayRate * dt
	} else {
		c.happiness += c.cfg.HappinessRecoveryRate * dt
	}
	c.happiness = core.ClampF(c.happiness, 0, needMax)
}

func (c *Creature) clampNeeds() {
	c.hunger = core.ClampF(c.hunger, 0, needMax)
	c.thirst = core.ClampF(c.thirst, 0, needMax)
	c.tiredness = core.ClampF(c.tiredness, 0, needMax)
	c.happiness = core.ClampF(c.happiness, 0, needMax)
}

func (c *Creature) animate(dt float64) {
	if c.speed <= animationMinSpeed {
		c.frame = 0
		return
	}
	c.frame += c.cfg.AnimationSpeed * dt / 16
	if c.frame > animationFrames {
		c.frame = 0
	}
}

// Name returns the display name.
func (c *Creature) Name() string { return c.name }

// Color returns the configured fur color name.
func (c *Creature) Color() string { return c.color }

// Position returns the body center in canvas space.
func (c *Creature) Position() core.Vec2 { return c.pos }

// Velocity returns the displacement applied at the last tick.
func (c *Creature) Velocity() core.Vec2 { return c.vel }

// Heading returns the direction of travel in radians.
func (c *Creature) Heading() float64 { return c.heading }

// Speed returns the current scalar speed.
func (c *Creature) Speed() float64 { return c.speed }

// TargetSpeed returns the speed the current behavior asks for.
func (c *Creature) TargetSpeed() float64 { return c.targetSpeed }

// Home returns the stall recovery anchor.
func (c *Creature) Home() core.Vec2 { return c.home }

// Hunger returns the hunger need.
func (c *Creature) Hunger() float64 { return c.hunger }

// Thirst returns the thirst need.
func (c *Creature) Thirst() float64 { return c.thirst }

// Tiredness returns the tiredness need.
func (c *Creature) Tiredness() float64 { return c.tiredness }

// Happiness returns the mood signal.
func (c *Creature) Happiness() float64 { return c.happiness }

// State returns the active behavior.
func (c *Creature) State() State { return c.state }

// Hiding reports whether the creature is in the hiding behavior.
func (c *Creature) Hiding() bool { return c.state == StateHiding }

// Room returns the name of the room the creature was last resolved into.
func (c *Creature) Room() string { return c.room }

// Cooldown returns the ticks left before a connector can fire again.
func (c *Creature) Cooldown() int { return c.cooldown }

// FacingRight is used to mirror the sprite.
func (c *Creature) FacingRight() bool { return c.facingRight }

// Frame returns the walk animation frame in [0, 4].
func (c *Creature) Frame() float64 { return c.frame }

// Recoveries returns the self-healing counters.
func (c *Creature) Recoveries() Recoveries { return c.recoveries }

// Bounds returns the body box centered on the position, for hit-testing.
func (c *Creature) Bounds() core.RectF {
	return core.CenteredRect(c.pos, c.cfg.Width, c.cfg.Height)
}

// CreatureSnapshot is a read-only copy of a creature's observable state.
type CreatureSnapshot struct {
	Name       string
	State      State
	Room       string
	X, Y       float64
	Heading    float64
	Speed      float64
	Hunger     float64
	Thirst     float64
	Tiredness  float64
	Happiness  float64
	Cooldown   int
	Stuck      int
	Recoveries Recoveries
}

// Snapshot copies the creature's observable state.
func (c *Creature) Snapshot() CreatureSnapshot {
	return CreatureSnapshot{
		Name:       c.name,
		State:      c.state,
		Room:       c.room,
		X:          c.pos.X,
		Y:          c.pos.Y,
		Heading:    c.heading,
		Speed:      c.speed,
		Hunger:     c.hunger,
		Thirst:     c.thirst,
		Tiredness:  c.tiredness,
		Happiness:  c.happiness,
		Cooldown:   c.cooldown,
		Stuck:      c.stuck,
		Recoveries: c.recoveries,
	}
}
