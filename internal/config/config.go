// Package config provides YAML-based ring configuration loading and
// validation for the rune forge.
package config

import (
	"time"

	"github.com/vovakirdan/runeforge/internal/rings"
)

// RingsConfig contains the full ring machine setup.
type RingsConfig struct {
	Runes   []int      `yaml:"runes" validate:"len=12,dive,gte=0,lte=11"`
	Reels   []ReelSpec `yaml:"reels" validate:"required,min=1,unique=ID,dive"`
	Rewards RewardSpec `yaml:"rewards"`
}

// ReelSpec describes one reel. Rotations are whole degrees.
type ReelSpec struct {
	ID          int     `yaml:"id" validate:"gte=1"`
	Scale       float64 `yaml:"scale" validate:"gt=0,lte=1"`
	MinRotation int     `yaml:"min_rotation" validate:"gte=0,segment"`
	MaxRotation int     `yaml:"max_rotation" validate:"gtefield=MinRotation,segment"`
	DurationMS  int     `yaml:"duration_ms" validate:"gt=0"`
	Direction   int     `yaml:"direction" validate:"oneof=-1 1"`
}

// RewardSpec defines base energy per group size.
type RewardSpec struct {
	Base       map[int]int `yaml:"base" validate:"required,dive,keys,gte=2,endkeys,gte=0"`
	Multiplier int         `yaml:"multiplier" validate:"gte=1"` // Applied when two or more groups match
}

// ReelConfigs converts the reel specs for the engine.
func (c RingsConfig) ReelConfigs() []rings.ReelConfig {
	out := make([]rings.ReelConfig, len(c.Reels))
	for i, r := range c.Reels {
		out[i] = rings.ReelConfig{
			ID:          r.ID,
			Scale:       r.Scale,
			MinRotation: float64(r.MinRotation),
			MaxRotation: float64(r.MaxRotation),
			Duration:    time.Duration(r.DurationMS) * time.Millisecond,
			Direction:   r.Direction,
		}
	}
	return out
}

// RewardTable converts the rewards section for the engine.
func (c RingsConfig) RewardTable() rings.RewardTable {
	base := make(map[int]int, len(c.Rewards.Base))
	for size, energy := range c.Rewards.Base {
		base[size] = energy
	}
	return rings.RewardTable{Base: base, Multiplier: c.Rewards.Multiplier}
}

// RuneLayout returns a copy of the rune sequence.
func (c RingsConfig) RuneLayout() []int {
	out := make([]int, len(c.Runes))
	copy(out, c.Runes)
	return out
}
