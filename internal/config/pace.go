package config

import "fmt"

// PacePreset represents a named need-accrual speed.
type PacePreset string

const (
	PaceCalm   PacePreset = "calm"
	PaceNormal PacePreset = "normal"
	PaceHectic PacePreset = "hectic"
)

// ParsePace resolves a preset name. An empty name means PaceNormal.
func ParsePace(name string) (PacePreset, error) {
	switch PacePreset(name) {
	case "", PaceNormal:
		return PaceNormal, nil
	case PaceCalm:
		return PaceCalm, nil
	case PaceHectic:
		return PaceHectic, nil
	default:
		return "", fmt.Errorf("config: unknown pace %q (want calm, normal or hectic)", name)
	}
}

// MultiplierForPace returns the need-rate multiplier for a preset.
func MultiplierForPace(p PacePreset) float64 {
	switch p {
	case PaceCalm:
		return 0.5
	case PaceHectic:
		return 2.0
	default:
		return 1.0
	}
}

// ApplyPacePreset scales need accrual and happiness drift by the preset.
func ApplyPacePreset(cfg *HabitatConfig, p PacePreset) {
	m := MultiplierForPace(p)
	cfg.Creature.HungerRate *= m
	cfg.Creature.ThirstRate *= m
	cfg.Creature.EnergyRate *= m
	cfg.Creature.HappinessDecayRate *= m
	cfg.Creature.HappinessRecoveryRate *= m
}
