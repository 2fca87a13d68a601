package habitat

import "github.com/vovakirdan/hamster-habitat/internal/config"

// Environment owns the interactive objects of the enclosure. Any object may
// be nil; the accessors below report absence instead of failing.
type Environment struct {
	bowl   *FoodBowl
	bottle *WaterBottle
	wheel  *Wheel
	tunnel *Tunnel
}

// NewEnvironment builds all four objects from configuration.
func NewEnvironment(cfg config.HabitatConfig) *Environment {
	return &Environment{
		bowl:   NewFoodBowl(cfg.FoodBowl),
		bottle: NewWaterBottle(cfg.WaterBottle),
		wheel:  NewWheel(cfg.Wheel),
		tunnel: NewTunnel(cfg.Tunnel),
	}
}

// NewEnvironmentWith assembles an environment from explicit objects.
// Pass nil for anything the enclosure lacks.
func NewEnvironmentWith(bowl *FoodBowl, bottle *WaterBottle, wheel *Wheel, tunnel *Tunnel) *Environment {
	return &Environment{bowl: bowl, bottle: bottle, wheel: wheel, tunnel: tunnel}
}

// Food returns the food bowl if present.
func (e *Environment) Food() (*FoodBowl, bool) {
	if e == nil || e.bowl == nil {
		return nil, false
	}
	return e.bowl, true
}

// Water returns the water bottle if present.
func (e *Environment) Water() (*WaterBottle, bool) {
	if e == nil || e.bottle == nil {
		return nil, false
	}
	return e.bottle, true
}

// WheelToy returns the exercise wheel if present.
func (e *Environment) WheelToy() (*Wheel, bool) {
	if e == nil || e.wheel == nil {
		return nil, false
	}
	return e.wheel, true
}

// TunnelToy returns the tunnel if present.
func (e *Environment) TunnelToy() (*Tunnel, bool) {
	if e == nil || e.tunnel == nil {
		return nil, false
	}
	return e.tunnel, true
}

// Update ticks the toys. The first occupant is the primary creature; the
// rest share the toys with it. Occupants must be non-nil.
func (e *Environment) Update(dt float64, occupants ...Occupant) {
	if e == nil {
		return
	}
	if e.wheel != nil {
		e.wheel.Update(occupants...)
	}
	if e.tunnel != nil {
		e.tunnel.Update(dt, occupants...)
	}
}

// Reset restores every object to its initial state.
func (e *Environment) Reset() {
	if e == nil {
		return
	}
	if e.bowl != nil {
		e.bowl.Reset()
	}
	if e.bottle != nil {
		e.bottle.Reset()
	}
	if e.wheel != nil {
		e.wheel.Reset()
	}
	if e.tunnel != nil {
		e.tunnel.Reset()
	}
}
