package sandbox

import (
	"github.com/vovakirdan/hamster-habitat/internal/config"
	"github.com/vovakirdan/hamster-habitat/internal/registry"
)

func init() {
	registry.Register(registry.Scenario{
		ID:    registry.DefaultScenario,
		Title: "Every configured hamster in the five-room enclosure",
	})
	registry.Register(registry.Scenario{
		ID:    "solo",
		Title: "Only the first hamster, for watching one routine",
		Apply: func(cfg *config.HabitatConfig) error {
			if len(cfg.Creatures) == 0 {
				return ErrNoCreatures
			}
			cfg.Creatures = cfg.Creatures[:1]
			return nil
		},
	})
	registry.Register(registry.Scenario{
		ID:    "lazy",
		Title: "Fast tiring and little curiosity: a sleepy colony",
		Apply: func(cfg *config.HabitatConfig) error {
			cfg.Creature.EnergyRate *= 3
			cfg.Behavior.ExploreChance /= 2
			cfg.Behavior.PlayChance /= 2
			return nil
		},
	})
}
