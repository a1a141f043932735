package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/runeforge/internal/rings"
)

func TestEmbeddedDefaultMatchesEngine(t *testing.T) {
	cfg, err := ParseRings(DefaultRingsYAML())
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}

	if !reflect.DeepEqual(cfg.ReelConfigs(), rings.DefaultReelConfigs()) {
		t.Errorf("embedded reels = %+v, want %+v", cfg.ReelConfigs(), rings.DefaultReelConfigs())
	}
	if !reflect.DeepEqual(cfg.RewardTable(), rings.DefaultRewardTable()) {
		t.Errorf("embedded rewards = %+v", cfg.RewardTable())
	}
	if !reflect.DeepEqual(cfg.RuneLayout(), rings.DefaultRunes()) {
		t.Errorf("embedded runes = %v", cfg.RuneLayout())
	}
	if !reflect.DeepEqual(cfg, DefaultRingsConfig()) {
		t.Error("embedded YAML and DefaultRingsConfig disagree")
	}
}

func TestLoadRingsFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadRings("")
	if err != nil {
		t.Fatalf("LoadRings() failed: %v", err)
	}
	if len(cfg.Reels) != 5 {
		t.Errorf("Expected 5 reels, got %d", len(cfg.Reels))
	}
}

func TestLoadRingsUserDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".runeforge", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := strings.Replace(string(DefaultRingsYAML()), "multiplier: 2", "multiplier: 3", 1)
	if err := os.WriteFile(filepath.Join(dir, "rings.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRings("")
	if err != nil {
		t.Fatalf("LoadRings() failed: %v", err)
	}
	if cfg.Rewards.Multiplier != 3 {
		t.Errorf("Expected user config multiplier 3, got %d", cfg.Rewards.Multiplier)
	}
}

func TestLoadRingsCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	custom := `
runes: [11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0]
reels:
  - {id: 1, scale: 1.0, min_rotation: 0, max_rotation: 30, duration_ms: 500, direction: -1}
  - {id: 2, scale: 0.5, min_rotation: 60, max_rotation: 60, duration_ms: 700, direction: 1}
rewards:
  base: {2: 25}
  multiplier: 1
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRings(path)
	if err != nil {
		t.Fatalf("LoadRings(custom) failed: %v", err)
	}

	reels := cfg.ReelConfigs()
	if len(reels) != 2 || reels[0].Direction != -1 || reels[1].MinRotation != 60 {
		t.Errorf("unexpected reels: %+v", reels)
	}
	if got, ok := cfg.RewardTable().Lookup(2); !ok || got != 25 {
		t.Errorf("Lookup(2) = %d, %v; want 25", got, ok)
	}
}

func TestLoadRingsMissingCustomPath(t *testing.T) {
	if _, err := LoadRings(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RingsConfig)
		want   string
	}{
		{
			name:   "off-segment rotation",
			mutate: func(c *RingsConfig) { c.Reels[0].MaxRotation = 95 },
			want:   "multiple of 30",
		},
		{
			name:   "max below min",
			mutate: func(c *RingsConfig) { c.Reels[2].MaxRotation = 150 },
			want:   "MinRotation",
		},
		{
			name:   "bad direction",
			mutate: func(c *RingsConfig) { c.Reels[1].Direction = 0 },
			want:   "Direction",
		},
		{
			name:   "short rune layout",
			mutate: func(c *RingsConfig) { c.Runes = c.Runes[:11] },
			want:   "Runes",
		},
		{
			name:   "duplicate reel ids",
			mutate: func(c *RingsConfig) { c.Reels[1].ID = 1 },
			want:   "unique",
		},
		{
			name:   "no reels",
			mutate: func(c *RingsConfig) { c.Reels = nil },
			want:   "Reels",
		},
		{
			name:   "zero multiplier",
			mutate: func(c *RingsConfig) { c.Rewards.Multiplier = 0 },
			want:   "Multiplier",
		},
		{
			name:   "rune id past the last rune",
			mutate: func(c *RingsConfig) { c.Runes[0] = 12 },
			want:   "Runes[0] must be between 0 and 11",
		},
		{
			name:   "negative rune id",
			mutate: func(c *RingsConfig) { c.Runes[5] = -1 },
			want:   "Runes[5] must be between 0 and 11",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRingsConfig()
			tt.mutate(&cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultConfigCopiesAreIndependent(t *testing.T) {
	cfg := DefaultRingsConfig()

	table := cfg.RewardTable()
	table.Base[2] = 999
	if cfg.Rewards.Base[2] == 999 {
		t.Error("RewardTable shares its map with the config")
	}

	layout := cfg.RuneLayout()
	layout[0] = 99
	if cfg.Runes[0] == 99 {
		t.Error("RuneLayout shares its slice with the config")
	}
}
