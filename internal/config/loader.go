package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "habitat.yaml"

// Load loads the habitat configuration.
// Search order: customPath -> ~/.habitat/configs/habitat.yaml -> ./configs/habitat.yaml -> embedded default
//
// Files are decoded over the defaults, so a partial file only overrides the
// keys it sets.
func Load(customPath string) (HabitatConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return HabitatConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return HabitatConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	return Default(), nil
}

// Default returns the embedded default configuration, falling back to the
// hardcoded one if the embedded YAML cannot be decoded.
func Default() HabitatConfig {
	var cfg HabitatConfig
	if err := yaml.Unmarshal(defaultHabitatYAML, &cfg); err != nil {
		return DefaultConfig()
	}
	return cfg
}

// Parse decodes YAML over the default configuration and validates the result.
func Parse(data []byte) (HabitatConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return HabitatConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return HabitatConfig{}, err
	}
	return cfg, nil
}

// Validate checks numeric sanity of the configuration. Geometry consistency
// (rooms, connectors) is checked when the layout is built.
func (c HabitatConfig) Validate() error {
	var errs []error

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas must have a positive size, got %gx%g", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Creature.Friction < 0 || c.Creature.Friction > 1 {
		errs = append(errs, fmt.Errorf("creature.friction must be in [0, 1], got %g", c.Creature.Friction))
	}
	if c.Creature.Acceleration < 0 || c.Creature.Acceleration > 1 {
		errs = append(errs, fmt.Errorf("creature.acceleration must be in [0, 1], got %g", c.Creature.Acceleration))
	}
	if c.Creature.StallTicks <= 0 {
		errs = append(errs, fmt.Errorf("creature.stall_ticks must be positive, got %d", c.Creature.StallTicks))
	}
	for _, r := range []struct {
		name string
		rng  Range
	}{
		{"idle", c.Behavior.Durations.Idle},
		{"walking", c.Behavior.Durations.Walking},
		{"exploring", c.Behavior.Durations.Exploring},
		{"eating", c.Behavior.Durations.Eating},
		{"drinking", c.Behavior.Durations.Drinking},
		{"sleeping", c.Behavior.Durations.Sleeping},
		{"playing", c.Behavior.Durations.Playing},
		{"hiding", c.Behavior.Durations.Hiding},
	} {
		if r.rng.Min < 0 || r.rng.Max < r.rng.Min {
			errs = append(errs, fmt.Errorf("behavior.durations.%s: invalid range [%g, %g]", r.name, r.rng.Min, r.rng.Max))
		}
	}
	for _, res := range []struct {
		name string
		cfg  ResourceConfig
	}{
		{"food_bowl", c.FoodBowl},
		{"water_bottle", c.WaterBottle},
	} {
		if res.cfg.Max <= 0 {
			errs = append(errs, fmt.Errorf("%s.max must be positive, got %g", res.name, res.cfg.Max))
		}
	}

	return errors.Join(errs...)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".habitat", "configs", filename)
}
