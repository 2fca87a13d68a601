package habitat

import (
	"math"

	"github.com/vovakirdan/hamster-habitat/internal/core"
)

// integrate eases speed toward the target, applies friction and moves the
// creature one explicit Euler step along its heading.
func (c *Creature) integrate() {
	c.speed += (c.targetSpeed - c.speed) * c.cfg.Acceleration
	c.speed *= c.cfg.Friction
	c.speed = core.ClampF(c.speed, 0, c.cfg.MaxSpeed)

	c.vel = core.FromAngle(c.heading, c.speed)
	c.pos = c.pos.Add(c.vel)

	if math.Abs(c.vel.X) > c.cfg.FacingDeadband {
		c.facingRight = c.vel.X > 0
	}
}

// checkStall teleports the creature home after too many ticks of moving
// nowhere while its behavior wants to move. Displacement is measured between
// tick ends, after containment, so a creature pushing into a wall counts as
// stuck even though the integrator moved it.
func (c *Creature) checkStall() {
	if c.moved < c.cfg.StallEpsilon && c.targetSpeed > c.cfg.StallSpeedFloor {
		c.stuck++
	} else {
		c.stuck = 0
	}
	if c.stuck <= c.cfg.StallTicks {
		return
	}

	c.pos = c.home
	c.stuck = 0
	c.waypoint = Port{}
	c.startWalking()
	c.recoveries.Stalls++
}

// contain runs the connector transition check and, when no crossing fires,
// keeps the creature inside its room.
func (c *Creature) contain() {
	if c.cooldown > 0 {
		c.cooldown--
	}

	if c.cooldown == 0 {
		if x, ok := c.layout.Crossing(c.pos); ok {
			c.cross(x)
			return
		}
	}

	room, ok := c.layout.RoomAt(c.pos)
	if !ok && c.cooldown > 0 {
		room, ok = c.holdInOpening()
	}
	if !ok {
		room = c.layout.NearestRoom(c.pos)
		c.pos = room.Center()
		c.room = room.Name
		c.recoveries.OutOfBounds++
		return
	}
	c.room = room.Name
	c.clampToRoom(room)
}

// holdInOpening keeps a creature that turns back into the tube it just left
// inside its room's margin, and turns it around. It reports false when the
// current room is unknown.
func (c *Creature) holdInOpening() (Room, bool) {
	r, ok := c.layout.Room(c.room)
	if !ok {
		return Room{}, false
	}
	m := r.Margin
	x := core.ClampF(c.pos.X, r.Bounds.X-m, r.Bounds.X+r.Bounds.Width+m)
	y := core.ClampF(c.pos.Y, r.Bounds.Y-m, r.Bounds.Y+r.Bounds.Height+m)
	if x != c.pos.X {
		c.reflect(math.Pi - c.heading)
	}
	if y != c.pos.Y {
		c.reflect(-c.heading)
	}
	c.pos = core.V(x, y)
	return r, true
}

func (c *Creature) cross(x Crossing) {
	c.pos = x.Connector.Arrival(x.To)
	c.heading = x.To.Edge.Inward().Angle()
	c.speed = math.Max(c.speed, c.cfg.Speed)
	c.cooldown = x.Connector.CooldownTicks
	c.room = x.To.Room
	c.recoveries.Transitions++
}

// clampToRoom pushes the body back inside the room on every edge whose
// opening ranges do not cover the creature, reflecting the heading with a
// little noise.
func (c *Creature) clampToRoom(r Room) {
	hw, hh := c.cfg.Width/2, c.cfg.Height/2
	minX, maxX := r.Bounds.X+hw, r.Bounds.X+r.Bounds.Width-hw
	minY, maxY := r.Bounds.Y+hh, r.Bounds.Y+r.Bounds.Height-hh

	if c.pos.X < minX && !r.Open(EdgeLeft, c.pos.Y) {
		c.pos.X = minX
		c.reflect(math.Pi - c.heading)
	} else if c.pos.X > maxX && !r.Open(EdgeRight, c.pos.Y) {
		c.pos.X = maxX
		c.reflect(math.Pi - c.heading)
	}

	if c.pos.Y < minY && !r.Open(EdgeTop, c.pos.X) {
		c.pos.Y = minY
		c.reflect(-c.heading)
	} else if c.pos.Y > maxY && !r.Open(EdgeBottom, c.pos.X) {
		c.pos.Y = maxY
		c.reflect(-c.heading)
	}
}

func (c *Creature) reflect(heading float64) {
	j := c.behavior.ReflectionJitter
	c.heading = heading + core.RandRange(c.rng, -j, j)
}

// resolveRoom returns the room name for p, falling back to the nearest room.
func (c *Creature) resolveRoom(p core.Vec2) string {
	if r, ok := c.layout.RoomAt(p); ok {
		return r.Name
	}
	return c.layout.NearestRoom(p).Name
}
