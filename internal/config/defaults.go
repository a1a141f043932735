package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/runeforge/internal/rings"
)

//go:embed defaults/rings.yaml
var defaultRingsYAML []byte

// DefaultRingsConfig returns the reference five-reel configuration.
func DefaultRingsConfig() RingsConfig {
	reels := rings.DefaultReelConfigs()
	specs := make([]ReelSpec, len(reels))
	for i, r := range reels {
		specs[i] = ReelSpec{
			ID:          r.ID,
			Scale:       r.Scale,
			MinRotation: int(r.MinRotation),
			MaxRotation: int(r.MaxRotation),
			DurationMS:  int(r.Duration / time.Millisecond),
			Direction:   r.Direction,
		}
	}

	table := rings.DefaultRewardTable()
	return RingsConfig{
		Runes:   rings.DefaultRunes(),
		Reels:   specs,
		Rewards: RewardSpec{Base: table.Base, Multiplier: table.Multiplier},
	}
}

// DefaultRingsYAML returns the embedded default YAML.
func DefaultRingsYAML() []byte {
	return defaultRingsYAML
}
