package habitat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/core"
)

const testDT = 1000.0 / 60

func newTestCreature(t *testing.T, tweak func(*config.HabitatConfig), spawn config.CreatureSpawn, opts ...CreatureOption) (*Creature, *Environment) {
	t.Helper()
	cfg := config.DefaultConfig()
	if tweak != nil {
		tweak(&cfg)
	}
	l, err := NewLayout(cfg.Layout)
	require.NoError(t, err)
	c, err := NewCreature(cfg, l, spawn, append([]CreatureOption{WithSeed(42)}, opts...)...)
	require.NoError(t, err)
	return c, NewEnvironment(cfg)
}

func spawnAt(x, y float64) config.CreatureSpawn {
	return config.CreatureSpawn{Name: "test", Color: "brown", X: x, Y: y}
}

// hold keeps the creature in one state long enough for a test.
func (c *Creature) hold(s State) {
	c.state = s
	c.timer = 1e9
}

func (c *Creature) place(p core.Vec2) {
	c.pos = p
	c.lastPos = p
	c.moved = 0
}

func TestNewCreatureRequiresLayout(t *testing.T) {
	_, err := NewCreature(config.DefaultConfig(), nil, spawnAt(0, 0))
	assert.ErrorIs(t, err, ErrNoLayout)
}

func TestNewCreatureDefaults(t *testing.T) {
	home := 480.0
	spawn := spawnAt(470, 410)
	spawn.HomeX, spawn.HomeY = &home, &home
	c, _ := newTestCreature(t, nil, spawn)

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "main", c.Room())
	assert.Equal(t, core.V(470, 410), c.Position())
	assert.Equal(t, core.V(480, 480), c.Home())
	assert.Less(t, c.Hunger(), 20.0)
	assert.Equal(t, 100.0, c.Happiness())

	c2, _ := newTestCreature(t, nil, spawnAt(470, 410), WithHome(core.V(1, 2)))
	assert.Equal(t, core.V(1, 2), c2.Home())
}

func TestInvariantsHoldOverLongRun(t *testing.T) {
	cfg := config.DefaultConfig()
	l, err := NewLayout(cfg.Layout)
	require.NoError(t, err)
	env := NewEnvironment(cfg)

	var creatures []*Creature
	var occupants []Occupant
	for i, s := range cfg.Creatures {
		c, err := NewCreature(cfg, l, s, WithSeed(int64(100+i)))
		require.NoError(t, err)
		creatures = append(creatures, c)
		occupants = append(occupants, c)
	}
	bowl, _ := env.Food()
	bottle, _ := env.Water()

	for tick := 0; tick < 20000; tick++ {
		if tick%1500 == 0 {
			bowl.Feed()
			bottle.Fill()
		}
		for _, c := range creatures {
			c.Update(testDT, env)

			for _, need := range []float64{c.Hunger(), c.Thirst(), c.Tiredness(), c.Happiness()} {
				require.GreaterOrEqual(t, need, 0.0, "tick %d", tick)
				require.LessOrEqual(t, need, 100.0, "tick %d", tick)
			}

			inside := false
			for _, r := range l.Rooms() {
				if r.Contains(c.Position()) {
					inside = true
					break
				}
			}
			require.True(t, inside || c.Cooldown() > 0,
				"tick %d: %s escaped at %v in state %s", tick, c.Name(), c.Position(), c.State())
		}
		env.Update(testDT, occupants...)

		require.GreaterOrEqual(t, bowl.Level(), 0.0)
		require.LessOrEqual(t, bowl.Level(), bowl.Max())
	}
}

func TestNeedsAccrue(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(470, 410))
	c.hold(StateIdle)
	c.hunger, c.thirst, c.tiredness = 0, 0, 0

	c.Update(1000, nil)

	assert.InDelta(t, 3.0, c.Hunger(), 1e-9)
	assert.InDelta(t, 2.5, c.Thirst(), 1e-9)
	assert.InDelta(t, 2.0, c.Tiredness(), 1e-9)

	c.hunger = 99.9
	c.Update(1000, nil)
	assert.Equal(t, 100.0, c.Hunger())
}

func TestHappinessDrift(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(470, 410))
	c.hold(StateIdle)

	c.hunger, c.thirst, c.tiredness, c.happiness = 90, 90, 90, 50
	c.Update(100, nil)
	assert.Less(t, c.Happiness(), 50.0)

	c.hunger, c.thirst, c.tiredness, c.happiness = 0, 0, 0, 50
	c.Update(100, nil)
	assert.Greater(t, c.Happiness(), 50.0)
}

func TestHungerSelectsEating(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(470, 410))
	c.hunger, c.thirst, c.tiredness = 60, 0, 0
	bowl, _ := env.Food()
	require.True(t, bowl.HasFood())

	c.chooseBehavior(env)

	assert.Equal(t, StateEating, c.State())
	assert.GreaterOrEqual(t, c.timer, 3000.0)
	assert.Less(t, c.timer, 4000.0)
}

func TestEmptyBowlIsIgnored(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(470, 410))
	c.hunger, c.thirst, c.tiredness = 60, 0, 70
	bowl, _ := env.Food()
	bowl.SetLevel(5)

	c.chooseBehavior(env)

	assert.Equal(t, StateSleeping, c.State())
}

func TestHungerAndThirstBothUrgent(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(470, 410))
	seen := map[State]int{}
	for i := 0; i < 200; i++ {
		c.hunger, c.thirst = 60, 60
		c.chooseBehavior(env)
		seen[c.State()]++
	}

	assert.Equal(t, 200, seen[StateEating]+seen[StateDrinking])
	assert.Positive(t, seen[StateEating])
	assert.Positive(t, seen[StateDrinking])

	// A gap wider than the jitter always wins.
	c.hunger, c.thirst = 45, 90
	c.chooseBehavior(env)
	assert.Equal(t, StateDrinking, c.State())
}

func TestNoEnvironmentDegrades(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(470, 410))
	for i := 0; i < 20000; i++ {
		c.Update(testDT, nil)
		switch c.State() {
		case StateEating, StateDrinking, StatePlaying, StateHiding:
			t.Fatalf("tick %d: entered %s without an environment", i, c.State())
		}
	}
}

func TestEatingRoutesThroughConnector(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(500, 400))
	bowl, _ := env.Food()

	assert.Equal(t, core.V(400, 450), c.routeTo(bowl.Position()))

	c.hold(StateEating)
	c.Update(testDT, env)
	want := core.V(400, 450).Sub(core.V(500, 400)).Angle()
	assert.InDelta(t, want, c.Heading(), 1e-9)
	assert.Equal(t, 3.0, c.TargetSpeed())
}

func TestEatingAtBowl(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(200, 580))
	bowl, _ := env.Food()
	c.hold(StateEating)
	c.hunger = 50

	c.Update(testDT, env)

	assert.InDelta(t, 99.5, bowl.Level(), 1e-9)
	assert.InDelta(t, 50+0.003*testDT-0.5, c.Hunger(), 1e-9)
	assert.Equal(t, 0.0, c.TargetSpeed())
}

func TestHidingSnapsToTunnel(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(210, 120))
	tunnel, _ := env.TunnelToy()
	c.hold(StateHiding)
	c.happiness = 50

	c.Update(testDT, env)
	env.Update(testDT, c)

	assert.Equal(t, tunnel.Position(), c.Position())
	assert.Equal(t, 0.0, c.Speed())
	assert.Greater(t, c.Happiness(), 50.0)
	assert.True(t, tunnel.Occupied())
}

func TestPlayingRunsOnWheel(t *testing.T) {
	c, env := newTestCreature(t, func(cfg *config.HabitatConfig) {
		cfg.Creature.EnergyRate = 0
	}, spawnAt(510, 360))
	wheel, _ := env.WheelToy()
	c.hold(StatePlaying)
	c.tiredness = 10

	for i := 0; i < 60; i++ {
		c.Update(testDT, env)
		env.Update(testDT, c)
		d := core.Distance(c.Position(), wheel.Position())
		require.Less(t, d, wheel.Radius())
	}

	assert.True(t, wheel.Occupied())
	assert.Greater(t, wheel.RotationSpeed(), 0.0)
	assert.Less(t, c.Tiredness(), 10.0)
}

func TestExploringArrivesAndWalks(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(500, 350))
	ports := c.layout.PortsIn("main")
	require.NotEmpty(t, ports)

	c.hold(StateExploring)
	c.waypoint = ports[0]
	c.place(ports[0].Point.Add(core.V(10, 20)))

	c.explore()

	assert.Equal(t, StateWalking, c.State())
	assert.Equal(t, Port{}, c.waypoint)
}

func TestExploringAfterCrossing(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(500, 350))
	c.hold(StateExploring)
	c.waypoint = c.layout.PortsIn("upper-left")[0]

	c.explore()

	assert.Equal(t, StateWalking, c.State())
}

func TestConnectorTransitionAndCooldown(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(470, 410))
	c.hold(StateIdle)
	c.place(core.V(400, 262))

	c.Update(testDT, env)

	assert.Equal(t, core.V(250, 155), c.Position())
	assert.Equal(t, "upper-left", c.Room())
	assert.Positive(t, c.Cooldown())
	assert.InDelta(t, -math.Pi/2, c.Heading(), 1e-9)
	assert.GreaterOrEqual(t, c.Speed(), 3.0)
	assert.Equal(t, 1, c.Recoveries().Transitions)

	// Straight back into the return window: the cooldown blocks it.
	c.place(core.V(250, 185))
	c.Update(testDT, env)

	assert.Equal(t, "upper-left", c.Room())
	assert.Equal(t, 1, c.Recoveries().Transitions)
	assert.Equal(t, 29, c.Cooldown())
}

func TestTurningBackDuringCooldownStaysInRoom(t *testing.T) {
	c, env := newTestCreature(t, func(cfg *config.HabitatConfig) {
		cfg.Creature.DirectionChangeChance = 0
		cfg.Creature.Friction = 1
	}, spawnAt(470, 410))
	c.hold(StateIdle)
	c.place(core.V(400, 262))
	c.Update(testDT, env)
	require.Equal(t, "upper-left", c.Room())
	require.Positive(t, c.Cooldown())

	// Walk back down the tube before the cooldown runs out.
	c.hold(StateWalking)
	c.place(core.V(250, 210))
	c.heading = math.Pi / 2
	c.speed = 3

	maxY := 0.0
	for i := 0; i < 8; i++ {
		c.Update(testDT, env)
		require.Positive(t, c.Cooldown())
		assert.Equal(t, "upper-left", c.Room())
		assert.LessOrEqual(t, c.Position().Y, 220.0)
		maxY = math.Max(maxY, c.Position().Y)
	}
	assert.Equal(t, 220.0, maxY, "held at the room margin")
	assert.Negative(t, math.Sin(c.Heading()), "turned back into the room")
	assert.Zero(t, c.Recoveries().OutOfBounds)
	assert.Equal(t, 1, c.Recoveries().Transitions)
}

func TestCooldownDecrementsOncePerTick(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(470, 410))
	c.hold(StateIdle)
	c.cooldown = 5

	for want := 4; want >= 0; want-- {
		c.Update(testDT, nil)
		assert.Equal(t, want, c.Cooldown())
	}
	c.Update(testDT, nil)
	assert.Equal(t, 0, c.Cooldown())
}

func TestOutOfBoundsRecovery(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(470, 410))
	c.hold(StateIdle)
	c.place(core.V(50, 400))

	c.Update(testDT, env)

	assert.Equal(t, core.V(200, 575), c.Position())
	assert.Equal(t, "lower-left", c.Room())
	assert.Equal(t, 1, c.Recoveries().OutOfBounds)

	inside := false
	for _, r := range c.layout.Rooms() {
		inside = inside || r.Contains(c.Position())
	}
	assert.True(t, inside)
}

func TestStallRecovery(t *testing.T) {
	home := core.V(450, 300)
	c, env := newTestCreature(t, func(cfg *config.HabitatConfig) {
		// Zero friction pins the creature while walking still wants speed.
		cfg.Creature.Friction = 0
	}, spawnAt(470, 410), WithHome(home))
	c.hold(StateWalking)
	stuckAt := core.V(560, 300)
	c.place(stuckAt)

	for i := 1; i <= 30; i++ {
		c.Update(testDT, env)
		require.Equal(t, stuckAt, c.Position(), "tick %d", i)
		require.Equal(t, i, c.stuck)
	}

	c.Update(testDT, env)

	assert.Equal(t, home, c.Position())
	assert.Equal(t, StateWalking, c.State())
	assert.Equal(t, 0, c.stuck)
	assert.Equal(t, 1, c.Recoveries().Stalls)
}

func TestStallRecoveryAgainstWall(t *testing.T) {
	home := core.V(450, 300)
	c, env := newTestCreature(t, func(cfg *config.HabitatConfig) {
		// A bowl outside every room is steered at directly and never reached.
		cfg.FoodBowl.X, cfg.FoodBowl.Y = 50, 400
	}, spawnAt(470, 410), WithHome(home))
	c.hold(StateEating)
	c.place(core.V(400, 400))

	var xs []float64
	for i := 0; i < 300 && c.Recoveries().Stalls == 0; i++ {
		c.Update(testDT, env)
		xs = append(xs, c.Position().X)
	}

	require.Equal(t, 1, c.Recoveries().Stalls, "creature stayed pinned: last x %v", xs[len(xs)-5:])
	assert.Equal(t, home, c.Position())
	assert.Equal(t, home, c.Home())
	assert.Equal(t, StateWalking, c.State())
	assert.Zero(t, c.stuck)

	// It sat against the left wall of the main room before recovering.
	assert.InDelta(t, 365, xs[len(xs)-2], 1e-9)
}

func TestMovingCreatureIsNotStuck(t *testing.T) {
	c, _ := newTestCreature(t, func(cfg *config.HabitatConfig) {
		cfg.Creature.DirectionChangeChance = 0
	}, spawnAt(470, 410))
	c.hold(StateWalking)
	c.heading = 0
	c.place(core.V(400, 350))

	for i := 0; i < 40; i++ {
		c.Update(testDT, nil)
	}
	assert.Zero(t, c.Recoveries().Stalls)
	assert.Zero(t, c.stuck)
}

func TestWallReflection(t *testing.T) {
	c, _ := newTestCreature(t, func(cfg *config.HabitatConfig) {
		cfg.Creature.DirectionChangeChance = 0
	}, spawnAt(470, 410))
	c.hold(StateWalking)
	c.place(core.V(366, 350))
	c.heading = math.Pi
	c.speed = 3

	c.Update(testDT, nil)

	assert.Equal(t, 365.0, c.Position().X)
	assert.Positive(t, math.Cos(c.Heading()))
	assert.InDelta(t, 0, c.Heading(), 0.2+1e-9)
}

func TestOpeningSkipsClamp(t *testing.T) {
	c, _ := newTestCreature(t, func(cfg *config.HabitatConfig) {
		cfg.Creature.DirectionChangeChance = 0
	}, spawnAt(470, 410))
	c.hold(StateWalking)
	c.cooldown = 10
	c.heading = -math.Pi / 2
	c.speed = 3

	c.place(core.V(400, 262))
	c.Update(testDT, nil)
	assert.Less(t, c.Position().Y, 261.0, "inside the opening the top edge is not enforced")

	c.heading = -math.Pi / 2
	c.speed = 3
	c.place(core.V(500, 262))
	c.Update(testDT, nil)
	assert.Equal(t, 261.0, c.Position().Y)
}

func TestPetClamps(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(470, 410))
	c.happiness = 90
	c.Pet()
	assert.Equal(t, 95.0, c.Happiness())
	c.happiness = 98
	c.Pet()
	assert.Equal(t, 100.0, c.Happiness())
}

func TestResetIsIdempotent(t *testing.T) {
	c, env := newTestCreature(t, nil, spawnAt(470, 410))
	for i := 0; i < 2000; i++ {
		c.Update(testDT, env)
	}

	c.Reset()
	once := c.Snapshot()
	c.Reset()
	twice := c.Snapshot()

	assert.Equal(t, once, twice)
	assert.Equal(t, StateIdle, once.State)
	assert.Equal(t, 470.0, once.X)
	assert.Equal(t, 410.0, once.Y)
	assert.Zero(t, once.Speed)
	assert.Zero(t, once.Cooldown)
}

func TestAnimationAndFacing(t *testing.T) {
	c, _ := newTestCreature(t, func(cfg *config.HabitatConfig) {
		cfg.Creature.DirectionChangeChance = 0
	}, spawnAt(470, 410))
	c.hold(StateWalking)
	c.place(core.V(450, 350))
	c.heading = math.Pi
	c.speed = 3

	c.Update(testDT, nil)
	assert.False(t, c.FacingRight())
	assert.Positive(t, c.Frame())

	c.hold(StateIdle)
	c.speed = 0
	c.Update(testDT, nil)
	assert.Zero(t, c.Frame())
}

func TestBoundsCentered(t *testing.T) {
	c, _ := newTestCreature(t, nil, spawnAt(470, 410))
	b := c.Bounds()
	assert.Equal(t, core.RectF{X: 455, Y: 399, Width: 30, Height: 22}, b)
}
