package config

import (
	_ "embed"
)

//go:embed defaults/habitat.yaml
var defaultHabitatYAML []byte

// DefaultYAML returns the embedded default habitat YAML.
func DefaultYAML() []byte {
	return defaultHabitatYAML
}

// DefaultConfig returns the built-in habitat configuration.
// It mirrors defaults/habitat.yaml and is used when the embedded file
// cannot be parsed.
func DefaultConfig() HabitatConfig {
	return HabitatConfig{
		Language: "en",
		Canvas:   CanvasConfig{Width: 1000, Height: 700},
		Creature: CreatureConfig{
			Width:                 30,
			Height:                22,
			Speed:                 3,
			MaxSpeed:              4,
			Acceleration:          0.15,
			Friction:              0.97,
			FacingDeadband:        0.1,
			DirectionChangeChance: 0.02,
			HeadingJitter:         0.5,
			AnimationSpeed:        0.1,
			HungerRate:            0.003,
			ThirstRate:            0.0025,
			EnergyRate:            0.002,
			HappinessDecayRate:    0.01,
			HappinessRecoveryRate: 0.005,
			BaselineNeedMax:       20,
			PetAmount:             5,
			StallEpsilon:          0.05,
			StallSpeedFloor:       0.1,
			StallTicks:            30,
		},
		Behavior: BehaviorConfig{
			HungerThreshold:  40,
			ThirstThreshold:  40,
			SleepThreshold:   60,
			PlayTirednessMax: 30,
			PlayChance:       0.15,
			HideChance:       0.1,
			ExploreChance:    0.2,
			WalkWeight:       0.8,
			IdleWeight:       0.2,
			PriorityJitter:   10,
			ReflectionJitter: 0.2,
			ArrivalRadius:    30,
			SleepRecovery:    0.05,
			PlayBoost:        1.5,
			SpinRate:         0.1,
			PlayRestRate:     0.02,
			PlayJoyRate:      0.01,
			HideJoyRate:      0.02,
			HideCapture:      30,
			WheelCapInset:    10,
			WheelRimInset:    20,
			Durations: DurationsConfig{
				Idle:      Range{Min: 1000, Max: 3000},
				Walking:   Range{Min: 2000, Max: 5000},
				Exploring: Range{Min: 3000, Max: 7000},
				Eating:    Range{Min: 3000, Max: 4000},
				Drinking:  Range{Min: 3000, Max: 4000},
				Sleeping:  Range{Min: 5000, Max: 6000},
				Playing:   Range{Min: 3000, Max: 6000},
				Hiding:    Range{Min: 4000, Max: 8000},
			},
		},
		FoodBowl: ResourceConfig{
			X: 200, Y: 600, Width: 80, Height: 40,
			Max:            100,
			TopUpAmount:    30,
			ConsumeAmount:  0.5,
			AvailableAbove: 10,
			Satiation:      0.5,
			CaptureRadius:  50,
		},
		WaterBottle: ResourceConfig{
			X: 800, Y: 100, Width: 40, Height: 100,
			Max:            100,
			TopUpAmount:    40,
			ConsumeAmount:  0.3,
			AvailableAbove: 10,
			Satiation:      0.3,
			CaptureRadius:  50,
		},
		Wheel: WheelConfig{
			X: 500, Y: 350, Radius: 50,
			RotationSpeed: 0.1,
			SpinDecay:     0.95,
			MinRunSpeed:   0.5,
		},
		Tunnel: TunnelConfig{X: 200, Y: 110, Width: 80, Height: 40},
		Layout: LayoutConfig{
			Rooms: []RoomConfig{
				{Name: "main", MinX: 350, MinY: 250, MaxX: 650, MaxY: 450, Margin: 20},
				{Name: "upper-left", MinX: 100, MinY: 50, MaxX: 300, MaxY: 200, Margin: 20},
				{Name: "upper-right", MinX: 700, MinY: 50, MaxX: 900, MaxY: 200, Margin: 20},
				{Name: "lower-left", MinX: 100, MinY: 500, MaxX: 300, MaxY: 650, Margin: 20},
				{Name: "lower-right", MinX: 700, MinY: 500, MaxX: 900, MaxY: 650, Margin: 20},
			},
			Connectors: []ConnectorConfig{
				tube("main-upper-left", PortConfig{"main", 400, 250, "top"}, PortConfig{"upper-left", 250, 200, "bottom"}),
				tube("main-upper-right", PortConfig{"main", 600, 250, "top"}, PortConfig{"upper-right", 750, 200, "bottom"}),
				tube("main-lower-left", PortConfig{"main", 400, 450, "bottom"}, PortConfig{"lower-left", 250, 500, "top"}),
				tube("main-lower-right", PortConfig{"main", 600, 450, "bottom"}, PortConfig{"lower-right", 750, 500, "top"}),
				tube("upper-left-upper-right", PortConfig{"upper-left", 300, 125, "right"}, PortConfig{"upper-right", 700, 125, "left"}),
				tube("lower-left-lower-right", PortConfig{"lower-left", 300, 575, "right"}, PortConfig{"lower-right", 700, 575, "left"}),
			},
		},
		Creatures: []CreatureSpawn{
			{Name: "Nibbles", Color: "brown", X: 470, Y: 410},
			{Name: "Peanut", Color: "white", X: 200, Y: 150},
			{Name: "Mochi", Color: "gray", X: 800, Y: 575},
		},
		Telemetry: TelemetryConfig{WindowTicks: 60},
	}
}

// tube builds a connector with the default detection window and cooldown.
func tube(name string, a, b PortConfig) ConnectorConfig {
	return ConnectorConfig{
		Name:            name,
		A:               a,
		B:               b,
		DetectionRadius: 30,
		CooldownTicks:   30,
		ArrivalOffset:   45,
	}
}
