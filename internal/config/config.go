// Package config provides YAML-based habitat configuration loading and
// pace presets for the simulation.
package config

// HabitatConfig contains all static configuration consumed by the simulation.
type HabitatConfig struct {
	Language    string          `yaml:"language"` // "en" or "zh" HUD labels
	Canvas      CanvasConfig    `yaml:"canvas"`
	Creature    CreatureConfig  `yaml:"creature"`
	Behavior    BehaviorConfig  `yaml:"behavior"`
	FoodBowl    ResourceConfig  `yaml:"food_bowl"`
	WaterBottle ResourceConfig  `yaml:"water_bottle"`
	Wheel       WheelConfig     `yaml:"wheel"`
	Tunnel      TunnelConfig    `yaml:"tunnel"`
	Layout      LayoutConfig    `yaml:"layout"`
	Creatures   []CreatureSpawn `yaml:"creatures"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
}

// CanvasConfig defines the world coordinate space.
type CanvasConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CreatureConfig defines body, movement and need parameters for a hamster.
type CreatureConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	Speed                 float64 `yaml:"speed"`        // Base movement speed (px/tick)
	MaxSpeed              float64 `yaml:"max_speed"`    // Hard cap after integration
	Acceleration          float64 `yaml:"acceleration"` // Fraction of the speed gap closed per tick
	Friction              float64 `yaml:"friction"`     // Per-tick speed multiplier (<1)
	FacingDeadband        float64 `yaml:"facing_deadband"`
	DirectionChangeChance float64 `yaml:"direction_change_chance"` // Per tick while walking
	HeadingJitter         float64 `yaml:"heading_jitter"`          // Max heading perturbation (rad)
	AnimationSpeed        float64 `yaml:"animation_speed"`

	// Need accrual per millisecond.
	HungerRate            float64 `yaml:"hunger_rate"`
	ThirstRate            float64 `yaml:"thirst_rate"`
	EnergyRate            float64 `yaml:"energy_rate"`
	HappinessDecayRate    float64 `yaml:"happiness_decay_rate"`
	HappinessRecoveryRate float64 `yaml:"happiness_recovery_rate"`
	BaselineNeedMax       float64 `yaml:"baseline_need_max"` // Reset needs are drawn from [0, this)

	PetAmount float64 `yaml:"pet_amount"`

	StallEpsilon    float64 `yaml:"stall_epsilon"`     // Displacement below this counts as stuck
	StallSpeedFloor float64 `yaml:"stall_speed_floor"` // Only target speeds above this can stall
	StallTicks      int     `yaml:"stall_ticks"`       // Stuck ticks tolerated before recovery
}

// BehaviorConfig defines state machine thresholds, chances and durations.
type BehaviorConfig struct {
	HungerThreshold  float64 `yaml:"hunger_threshold"`
	ThirstThreshold  float64 `yaml:"thirst_threshold"`
	SleepThreshold   float64 `yaml:"sleep_threshold"`
	PlayTirednessMax float64 `yaml:"play_tiredness_max"`
	PlayChance       float64 `yaml:"play_chance"`
	HideChance       float64 `yaml:"hide_chance"`
	ExploreChance    float64 `yaml:"explore_chance"`
	WalkWeight       float64 `yaml:"walk_weight"`
	IdleWeight       float64 `yaml:"idle_weight"`
	PriorityJitter   float64 `yaml:"priority_jitter"`   // Max random bonus per need on ties
	ReflectionJitter float64 `yaml:"reflection_jitter"` // Max heading noise on wall bounce (rad)

	ArrivalRadius float64 `yaml:"arrival_radius"` // Exploring: distance counted as arrived
	SleepRecovery float64 `yaml:"sleep_recovery"` // Tiredness removed per sleeping tick

	PlayBoost     float64 `yaml:"play_boost"`     // Target speed multiplier on the wheel
	SpinRate      float64 `yaml:"spin_rate"`      // Heading change per tick on the wheel
	PlayRestRate  float64 `yaml:"play_rest_rate"` // Tiredness removed per tick on the wheel
	PlayJoyRate   float64 `yaml:"play_joy_rate"`  // Happiness added per tick on the wheel
	HideJoyRate   float64 `yaml:"hide_joy_rate"`  // Happiness added per tick in the tunnel
	HideCapture   float64 `yaml:"hide_capture"`   // Tunnel capture radius
	WheelCapInset float64 `yaml:"wheel_capture_inset"`
	WheelRimInset float64 `yaml:"wheel_rim_inset"`

	Durations DurationsConfig `yaml:"durations"`
}

// DurationsConfig holds per-state duration ranges in milliseconds.
type DurationsConfig struct {
	Idle      Range `yaml:"idle"`
	Walking   Range `yaml:"walking"`
	Exploring Range `yaml:"exploring"`
	Eating    Range `yaml:"eating"`
	Drinking  Range `yaml:"drinking"`
	Sleeping  Range `yaml:"sleeping"`
	Playing   Range `yaml:"playing"`
	Hiding    Range `yaml:"hiding"`
}

// Range is a closed-open numeric interval [Min, Max).
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// ResourceConfig defines a depletable container (food bowl or water bottle).
type ResourceConfig struct {
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Max            float64 `yaml:"max"`
	TopUpAmount    float64 `yaml:"top_up_amount"`   // Added by feed/fill
	ConsumeAmount  float64 `yaml:"consume_amount"`  // Removed per eat/drink call
	AvailableAbove float64 `yaml:"available_above"` // Level that still counts as available
	Satiation      float64 `yaml:"satiation"`       // Need removed per successful eat/drink
	CaptureRadius  float64 `yaml:"capture_radius"`
}

// WheelConfig defines the exercise wheel.
type WheelConfig struct {
	X             float64 `yaml:"x"`
	Y             float64 `yaml:"y"`
	Radius        float64 `yaml:"radius"`
	RotationSpeed float64 `yaml:"rotation_speed"` // Spin per unit of occupant speed
	SpinDecay     float64 `yaml:"spin_decay"`     // Per-tick multiplier when unoccupied
	MinRunSpeed   float64 `yaml:"min_run_speed"`  // Occupant speed needed to drive the wheel
}

// TunnelConfig defines the hideout tunnel.
type TunnelConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LayoutConfig is the room and connector table of the enclosure.
type LayoutConfig struct {
	Rooms      []RoomConfig      `yaml:"rooms"`
	Connectors []ConnectorConfig `yaml:"connectors"`
}

// RoomConfig defines one rectangular room.
type RoomConfig struct {
	Name     string          `yaml:"name"`
	MinX     float64         `yaml:"min_x"`
	MinY     float64         `yaml:"min_y"`
	MaxX     float64         `yaml:"max_x"`
	MaxY     float64         `yaml:"max_y"`
	Margin   float64         `yaml:"margin"` // Tolerance used when resolving membership
	Openings []OpeningConfig `yaml:"openings"`
}

// OpeningConfig is an explicit gap along a room edge.
type OpeningConfig struct {
	Edge string  `yaml:"edge"` // top, bottom, left, right
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

// ConnectorConfig links two rooms through a tube.
type ConnectorConfig struct {
	Name            string     `yaml:"name"`
	A               PortConfig `yaml:"a"`
	B               PortConfig `yaml:"b"`
	DetectionRadius float64    `yaml:"detection_radius"`
	CooldownTicks   int        `yaml:"cooldown_ticks"`
	ArrivalOffset   float64    `yaml:"arrival_offset"`
}

// PortConfig is one end of a connector.
type PortConfig struct {
	Room string  `yaml:"room"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Edge string  `yaml:"edge"`
}

// CreatureSpawn places one creature at startup.
type CreatureSpawn struct {
	Name  string   `yaml:"name"`
	Color string   `yaml:"color"`
	X     float64  `yaml:"x"`
	Y     float64  `yaml:"y"`
	HomeX *float64 `yaml:"home_x,omitempty"` // Defaults to the spawn point
	HomeY *float64 `yaml:"home_y,omitempty"`
}

// TelemetryConfig controls headless stats collection.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"` // Ticks aggregated into one CSV row
}
