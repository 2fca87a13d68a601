package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "habitat.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultMatchesBuiltIn(t *testing.T) {
	embedded := Default()
	builtIn := DefaultConfig()

	if embedded.Canvas != builtIn.Canvas {
		t.Errorf("canvas = %+v, want %+v", embedded.Canvas, builtIn.Canvas)
	}
	if embedded.Creature != builtIn.Creature {
		t.Errorf("creature = %+v, want %+v", embedded.Creature, builtIn.Creature)
	}
	if embedded.Behavior != builtIn.Behavior {
		t.Errorf("behavior = %+v, want %+v", embedded.Behavior, builtIn.Behavior)
	}
	if embedded.FoodBowl != builtIn.FoodBowl || embedded.WaterBottle != builtIn.WaterBottle {
		t.Error("resource sections differ")
	}
	if embedded.Wheel != builtIn.Wheel || embedded.Tunnel != builtIn.Tunnel {
		t.Error("toy sections differ")
	}
	if len(embedded.Layout.Rooms) != 5 || len(embedded.Layout.Connectors) != 6 {
		t.Errorf("layout has %d rooms and %d connectors, want 5 and 6",
			len(embedded.Layout.Rooms), len(embedded.Layout.Connectors))
	}
	if len(embedded.Creatures) != len(builtIn.Creatures) {
		t.Errorf("creatures = %d, want %d", len(embedded.Creatures), len(builtIn.Creatures))
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
language: zh
creature:
  speed: 5
  stall_ticks: 45
food_bowl:
  top_up_amount: 50
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Language != "zh" {
		t.Errorf("Language = %q, want zh", cfg.Language)
	}
	if cfg.Creature.Speed != 5 {
		t.Errorf("Speed = %v, want 5", cfg.Creature.Speed)
	}
	if cfg.Creature.StallTicks != 45 {
		t.Errorf("StallTicks = %d, want 45", cfg.Creature.StallTicks)
	}
	if cfg.FoodBowl.TopUpAmount != 50 {
		t.Errorf("TopUpAmount = %v, want 50", cfg.FoodBowl.TopUpAmount)
	}

	// Keys left out keep their defaults.
	def := DefaultConfig()
	if cfg.Creature.MaxSpeed != def.Creature.MaxSpeed {
		t.Errorf("MaxSpeed = %v, want default %v", cfg.Creature.MaxSpeed, def.Creature.MaxSpeed)
	}
	if cfg.FoodBowl.Max != def.FoodBowl.Max {
		t.Errorf("FoodBowl.Max = %v, want default %v", cfg.FoodBowl.Max, def.FoodBowl.Max)
	}
	if len(cfg.Creatures) != 3 {
		t.Errorf("Creatures = %d, want 3", len(cfg.Creatures))
	}
}

func TestLoadCreatureHome(t *testing.T) {
	path := writeConfig(t, `
creatures:
  - {name: Solo, color: gold, x: 500, y: 350, home_x: 480, home_y: 360}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Creatures) != 1 {
		t.Fatalf("Creatures = %d, want 1", len(cfg.Creatures))
	}
	c := cfg.Creatures[0]
	if c.HomeX == nil || *c.HomeX != 480 || c.HomeY == nil || *c.HomeY != 360 {
		t.Errorf("home = %v,%v, want 480,360", c.HomeX, c.HomeY)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		want string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			want: "failed to read",
		},
		{
			name: "malformed yaml",
			path: func(t *testing.T) string { return writeConfig(t, "creature: [unterminated") },
			want: "failed to parse",
		},
		{
			name: "invalid values",
			path: func(t *testing.T) string { return writeConfig(t, "creature:\n  friction: 1.5\n") },
			want: "friction",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*HabitatConfig)
		want   string
	}{
		{"canvas", func(c *HabitatConfig) { c.Canvas.Width = 0 }, "canvas"},
		{"acceleration", func(c *HabitatConfig) { c.Creature.Acceleration = -0.1 }, "acceleration"},
		{"stall ticks", func(c *HabitatConfig) { c.Creature.StallTicks = 0 }, "stall_ticks"},
		{"duration", func(c *HabitatConfig) { c.Behavior.Durations.Sleeping = Range{Min: 10, Max: 5} }, "sleeping"},
		{"bowl max", func(c *HabitatConfig) { c.FoodBowl.Max = 0 }, "food_bowl.max"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Canvas.Height = -1
	cfg.WaterBottle.Max = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "canvas") || !strings.Contains(err.Error(), "water_bottle") {
		t.Errorf("error %q should report both problems", err)
	}
}

func TestParsePace(t *testing.T) {
	tests := []struct {
		in      string
		want    PacePreset
		wantErr bool
	}{
		{"", PaceNormal, false},
		{"normal", PaceNormal, false},
		{"calm", PaceCalm, false},
		{"hectic", PaceHectic, false},
		{"turbo", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePace(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePace(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestApplyPacePreset(t *testing.T) {
	tests := []struct {
		pace PacePreset
		mult float64
	}{
		{PaceCalm, 0.5},
		{PaceNormal, 1},
		{PaceHectic, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.pace), func(t *testing.T) {
			base := DefaultConfig()
			cfg := DefaultConfig()
			ApplyPacePreset(&cfg, tt.pace)

			if cfg.Creature.HungerRate != base.Creature.HungerRate*tt.mult {
				t.Errorf("HungerRate = %v, want %v", cfg.Creature.HungerRate, base.Creature.HungerRate*tt.mult)
			}
			if cfg.Creature.HappinessRecoveryRate != base.Creature.HappinessRecoveryRate*tt.mult {
				t.Errorf("HappinessRecoveryRate = %v, want %v",
					cfg.Creature.HappinessRecoveryRate, base.Creature.HappinessRecoveryRate*tt.mult)
			}
			// Movement is not affected by pace.
			if cfg.Creature.Speed != base.Creature.Speed {
				t.Errorf("Speed changed to %v", cfg.Creature.Speed)
			}
		})
	}
}
