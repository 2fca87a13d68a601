package habitat

import (
	"math"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/core"
)

// State is the active behavior of a creature.
type State string

const (
	StateIdle      State = "idle"
	StateWalking   State = "walking"
	StateExploring State = "exploring"
	StateEating    State = "eating"
	StateDrinking  State = "drinking"
	StateSleeping  State = "sleeping"
	StatePlaying   State = "playing"
	StateHiding    State = "hiding"
)

// States lists every behavior in display order.
var States = []State{
	StateIdle, StateWalking, StateExploring, StateEating,
	StateDrinking, StateSleeping, StatePlaying, StateHiding,
}

func (s State) String() string { return string(s) }

func (c *Creature) updateBehavior(dt float64, env *Environment) {
	c.timer = math.Max(0, c.timer-dt)
	if c.timer <= 0 {
		c.chooseBehavior(env)
	}

	switch c.state {
	case StateIdle:
		c.targetSpeed = 0
	case StateWalking:
		c.walk()
	case StateExploring:
		c.explore()
	case StateEating:
		c.eat(env)
	case StateDrinking:
		c.drink(env)
	case StateSleeping:
		c.targetSpeed = 0
		c.tiredness = math.Max(0, c.tiredness-c.behavior.SleepRecovery)
	case StatePlaying:
		c.play(env)
	case StateHiding:
		c.hide(env)
	}
}

// chooseBehavior picks the next state by priority: urgent needs, fatigue,
// play, hiding, exploring, then a weighted walk/idle draw.
func (c *Creature) chooseBehavior(env *Environment) {
	b := c.behavior
	d := b.Durations

	hungry := false
	if bowl, ok := env.Food(); ok {
		hungry = c.hunger > b.HungerThreshold && bowl.HasFood()
	}
	thirsty := false
	if bottle, ok := env.Water(); ok {
		thirsty = c.thirst > b.ThirstThreshold && bottle.HasWater()
	}

	switch {
	case hungry && thirsty:
		// Independent jitter keeps a population from choosing in lockstep.
		hungerScore := c.hunger + c.jitter()
		thirstScore := c.thirst + c.jitter()
		if hungerScore >= thirstScore {
			c.setState(StateEating, d.Eating)
		} else {
			c.setState(StateDrinking, d.Drinking)
		}
		return
	case hungry:
		c.setState(StateEating, d.Eating)
		return
	case thirsty:
		c.setState(StateDrinking, d.Drinking)
		return
	}

	if c.tiredness > b.SleepThreshold {
		c.setState(StateSleeping, d.Sleeping)
		return
	}

	if _, ok := env.WheelToy(); ok && c.tiredness < b.PlayTirednessMax && c.rng.Float64() < b.PlayChance {
		c.setState(StatePlaying, d.Playing)
		return
	}

	if _, ok := env.TunnelToy(); ok && c.rng.Float64() < b.HideChance {
		c.setState(StateHiding, d.Hiding)
		return
	}

	if c.rng.Float64() < b.ExploreChance && c.pickWaypoint() {
		c.setState(StateExploring, d.Exploring)
		return
	}

	c.wander()
}

// wander is the default branch: walk on a fresh heading or stand still.
func (c *Creature) wander() {
	b := c.behavior
	total := b.WalkWeight + b.IdleWeight
	if total > 0 && c.rng.Float64()*total < b.IdleWeight {
		c.setState(StateIdle, b.Durations.Idle)
		return
	}
	c.startWalking()
}

func (c *Creature) startWalking() {
	c.setState(StateWalking, c.behavior.Durations.Walking)
	c.heading = core.RandRange(c.rng, 0, 2*math.Pi)
}

func (c *Creature) setState(s State, d config.Range) {
	c.state = s
	c.timer = core.RandRange(c.rng, d.Min, d.Max)
}

func (c *Creature) jitter() float64 {
	return core.RandRange(c.rng, 0, c.behavior.PriorityJitter)
}

// pickWaypoint selects a random connector port of the current room.
func (c *Creature) pickWaypoint() bool {
	ports := c.layout.PortsIn(c.room)
	if len(ports) == 0 {
		return false
	}
	c.waypoint = ports[c.rng.Intn(len(ports))]
	return true
}

func (c *Creature) walk() {
	c.targetSpeed = c.cfg.Speed
	if c.rng.Float64() < c.cfg.DirectionChangeChance {
		c.heading += core.RandRange(c.rng, -c.cfg.HeadingJitter, c.cfg.HeadingJitter)
	}
}

func (c *Creature) explore() {
	if c.waypoint.Room == "" && !c.pickWaypoint() {
		c.startWalking()
		return
	}
	// Already crossed, or close enough to the tube mouth.
	if c.waypoint.Room != c.room || core.Distance(c.pos, c.waypoint.Point) <= c.behavior.ArrivalRadius {
		c.waypoint = Port{}
		c.startWalking()
		return
	}
	c.seek(c.waypoint.Point)
}

func (c *Creature) eat(env *Environment) {
	bowl, ok := env.Food()
	if !ok {
		return
	}
	if core.Distance(c.pos, bowl.Position()) > bowl.CaptureRadius() {
		c.seek(c.routeTo(bowl.Position()))
		return
	}
	c.targetSpeed = 0
	if bowl.Eat() {
		c.hunger = math.Max(0, c.hunger-bowl.Satiation())
	}
}

func (c *Creature) drink(env *Environment) {
	bottle, ok := env.Water()
	if !ok {
		return
	}
	if core.Distance(c.pos, bottle.Position()) > bottle.CaptureRadius() {
		c.seek(c.routeTo(bottle.Position()))
		return
	}
	c.targetSpeed = 0
	if bottle.Drink() {
		c.thirst = math.Max(0, c.thirst-bottle.Satiation())
	}
}

func (c *Creature) play(env *Environment) {
	wheel, ok := env.WheelToy()
	if !ok {
		return
	}
	b := c.behavior
	center := wheel.Position()
	if core.Distance(c.pos, center) > wheel.Radius()-b.WheelCapInset {
		c.seek(c.routeTo(center))
		return
	}

	// Run along the inside of the rim.
	c.targetSpeed = c.cfg.Speed * b.PlayBoost
	c.heading += b.SpinRate
	angle := c.pos.Sub(center).Angle()
	c.pos = center.Add(core.FromAngle(angle, wheel.Radius()-b.WheelRimInset))
	c.tiredness = math.Max(0, c.tiredness-b.PlayRestRate)
	c.happiness = math.Min(needMax, c.happiness+b.PlayJoyRate)
}

func (c *Creature) hide(env *Environment) {
	tunnel, ok := env.TunnelToy()
	if !ok {
		return
	}
	center := tunnel.Position()
	if core.Distance(c.pos, center) > c.behavior.HideCapture {
		c.seek(c.routeTo(center))
		return
	}
	c.pos = center
	c.speed = 0
	c.targetSpeed = 0
	c.happiness = math.Min(needMax, c.happiness+c.behavior.HideJoyRate)
}

// seek steers straight at p at base speed.
func (c *Creature) seek(p core.Vec2) {
	c.heading = p.Sub(c.pos).Angle()
	c.targetSpeed = c.cfg.Speed
}

// routeTo returns the point to steer for on the way to target: the target
// itself when it shares the creature's room, otherwise the port that starts
// the shortest connector path toward it.
func (c *Creature) routeTo(target core.Vec2) core.Vec2 {
	dest, ok := c.layout.RoomAt(target)
	if !ok || dest.Name == c.room {
		return target
	}
	if port, ok := c.layout.NextPort(c.room, dest.Name); ok {
		return port.Point
	}
	return target
}
