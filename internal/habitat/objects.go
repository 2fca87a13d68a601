package habitat

import (
	"math"

	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/core"
)

// reservoir is a depletable container shared by the bowl and the bottle.
// Level never leaves [0, max].
type reservoir struct {
	center         core.Vec2
	width, height  float64
	max            float64
	level          float64
	topUp          float64
	consume        float64
	availableAbove float64
	satiation      float64
	capture        float64
}

func newReservoir(c config.ResourceConfig) reservoir {
	return reservoir{
		center:         core.V(c.X, c.Y),
		width:          c.Width,
		height:         c.Height,
		max:            c.Max,
		level:          c.Max,
		topUp:          c.TopUpAmount,
		consume:        c.ConsumeAmount,
		availableAbove: c.AvailableAbove,
		satiation:      c.Satiation,
		capture:        c.CaptureRadius,
	}
}

func (r *reservoir) add() {
	r.level = math.Min(r.max, r.level+r.topUp)
}

func (r *reservoir) take() bool {
	if r.level <= 0 {
		return false
	}
	r.level = math.Max(0, r.level-r.consume)
	return true
}

// Level returns the current amount held.
func (r *reservoir) Level() float64 { return r.level }

// Max returns the capacity.
func (r *reservoir) Max() float64 { return r.max }

// SetLevel overrides the current amount, clamped to [0, max].
func (r *reservoir) SetLevel(v float64) {
	r.level = core.ClampF(v, 0, r.max)
}

// Position returns the container center in canvas space.
func (r *reservoir) Position() core.Vec2 { return r.center }

// CaptureRadius is the distance at which a creature can consume.
func (r *reservoir) CaptureRadius() float64 { return r.capture }

// Satiation is the need removed per successful consume.
func (r *reservoir) Satiation() float64 { return r.satiation }

// Bounds returns the box centered on the container, for hit-testing.
func (r *reservoir) Bounds() core.RectF {
	return core.CenteredRect(r.center, r.width, r.height)
}

// FoodBowl holds food pellets.
type FoodBowl struct {
	reservoir
}

// NewFoodBowl creates a full bowl.
func NewFoodBowl(c config.ResourceConfig) *FoodBowl {
	return &FoodBowl{reservoir: newReservoir(c)}
}

// Feed tops the bowl up by the configured amount.
func (b *FoodBowl) Feed() { b.add() }

// Eat removes one bite. It returns false when the bowl is empty.
func (b *FoodBowl) Eat() bool { return b.take() }

// HasFood reports whether the bowl is worth walking to.
func (b *FoodBowl) HasFood() bool { return b.level > b.availableAbove }

// Reset refills the bowl.
func (b *FoodBowl) Reset() { b.level = b.max }

// WaterBottle holds drinking water.
type WaterBottle struct {
	reservoir
}

// NewWaterBottle creates a full bottle.
func NewWaterBottle(c config.ResourceConfig) *WaterBottle {
	return &WaterBottle{reservoir: newReservoir(c)}
}

// Fill tops the bottle up by the configured amount.
func (w *WaterBottle) Fill() { w.add() }

// Drink removes one sip. It returns false when the bottle is empty.
func (w *WaterBottle) Drink() bool { return w.take() }

// HasWater reports whether the bottle is worth walking to.
func (w *WaterBottle) HasWater() bool { return w.level > w.availableAbove }

// Reset refills the bottle.
func (w *WaterBottle) Reset() { w.level = w.max }

// Occupant is what the toys can observe about a creature. Occupants passed
// to Update must be non-nil.
type Occupant interface {
	Position() core.Vec2
	Speed() float64
	Hiding() bool
}

// Wheel is the exercise wheel. It spins while a fast enough occupant is on it.
type Wheel struct {
	center      core.Vec2
	radius      float64
	spinFactor  float64 // Spin per unit of runner speed
	decay       float64
	minRunSpeed float64

	rotation float64
	spin     float64
	occupied bool
}

// NewWheel creates a resting wheel.
func NewWheel(c config.WheelConfig) *Wheel {
	return &Wheel{
		center:      core.V(c.X, c.Y),
		radius:      c.Radius,
		spinFactor:  c.RotationSpeed,
		decay:       c.SpinDecay,
		minRunSpeed: c.MinRunSpeed,
	}
}

// Update recomputes occupancy from the occupants and advances the rotation.
func (w *Wheel) Update(occupants ...Occupant) {
	w.occupied = false
	var runner Occupant
	for _, o := range occupants {
		if core.Distance(o.Position(), w.center) < w.radius {
			w.occupied = true
			if runner == nil || o.Speed() > runner.Speed() {
				runner = o
			}
		}
	}

	if w.occupied && runner.Speed() > w.minRunSpeed {
		w.spin = w.spinFactor * runner.Speed()
	} else {
		w.spin *= w.decay
	}
	w.rotation = core.WrapAngle(w.rotation + w.spin)
}

// Reset stops the wheel.
func (w *Wheel) Reset() {
	w.rotation = 0
	w.spin = 0
	w.occupied = false
}

// Position returns the hub in canvas space.
func (w *Wheel) Position() core.Vec2 { return w.center }

// Radius returns the wheel radius.
func (w *Wheel) Radius() float64 { return w.radius }

// Rotation returns the current angle in [0, 2π).
func (w *Wheel) Rotation() float64 { return w.rotation }

// RotationSpeed returns the angle added per tick.
func (w *Wheel) RotationSpeed() float64 { return w.spin }

// Occupied reports whether a creature was on the wheel at the last update.
func (w *Wheel) Occupied() bool { return w.occupied }

// Bounds returns the wheel's bounding box.
func (w *Wheel) Bounds() core.RectF {
	return core.CenteredRect(w.center, 2*w.radius, 2*w.radius)
}

// Tunnel is a hideout. It is occupied while a hiding creature sits inside.
type Tunnel struct {
	center        core.Vec2
	width, height float64

	occupied bool
	hideTime float64 // ms
}

// NewTunnel creates an empty tunnel.
func NewTunnel(c config.TunnelConfig) *Tunnel {
	return &Tunnel{
		center: core.V(c.X, c.Y),
		width:  c.Width,
		height: c.Height,
	}
}

// Update recomputes occupancy and accumulates hide time while occupied.
func (t *Tunnel) Update(dt float64, occupants ...Occupant) {
	t.occupied = false
	for _, o := range occupants {
		if !o.Hiding() {
			continue
		}
		if core.Distance(o.Position(), t.center) < t.width/2 {
			t.occupied = true
			break
		}
	}
	if t.occupied {
		t.hideTime += dt
	}
}

// Reset empties the tunnel.
func (t *Tunnel) Reset() {
	t.occupied = false
	t.hideTime = 0
}

// Position returns the tunnel center in canvas space.
func (t *Tunnel) Position() core.Vec2 { return t.center }

// Occupied reports whether a hiding creature was inside at the last update.
func (t *Tunnel) Occupied() bool { return t.occupied }

// HideTime returns the accumulated occupied time in milliseconds.
func (t *Tunnel) HideTime() float64 { return t.hideTime }

// Bounds returns the tunnel's bounding box.
func (t *Tunnel) Bounds() core.RectF {
	return core.CenteredRect(t.center, t.width, t.height)
}
