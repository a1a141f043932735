package progression

import (
	"fmt"
	"slices"
)

// Persistence keys.
const (
	KeyTotalEnergy           = "totalEnergy"
	KeyUnlockedLevels        = "unlockedLevels"
	KeyCurrentLevel          = "currentLevel"
	KeySelectedBackground    = "selectedBackgroundId"
	KeyUnlockedArtifacts     = "unlockedArtifacts"
	KeyCompletedAchievements = "completedAchievements"
	KeySoundEnabled          = "soundEnabled"
	KeyMusicEnabled          = "musicEnabled"
)

// Store is the key-value collaborator that persists a save.
// Getters report found=false for keys that were never set.
type Store interface {
	GetInt(key string) (value int, found bool, err error)
	SetInt(key string, value int) error
	GetIntList(key string) (values []int, found bool, err error)
	SetIntList(key string, values []int) error
	GetBool(key string) (value bool, found bool, err error)
	SetBool(key string, value bool) error
	ResetAll() error
}

// Load reads a save from the store. Missing keys fall back to the
// NewState defaults. Backgrounds are derived from the loaded levels.
func Load(store Store) (State, error) {
	s := NewState()

	energy, _, err := store.GetInt(KeyTotalEnergy)
	if err != nil {
		return s, fmt.Errorf("progression: load energy: %w", err)
	}
	s.TotalEnergy = energy

	if lvl, found, err := store.GetInt(KeyCurrentLevel); err != nil {
		return s, fmt.Errorf("progression: load current level: %w", err)
	} else if found && lvl != 0 {
		s.CurrentLevel = lvl
	}

	if bg, found, err := store.GetInt(KeySelectedBackground); err != nil {
		return s, fmt.Errorf("progression: load background: %w", err)
	} else if found && bg != 0 {
		s.SelectedBackground = bg
	}

	levels, _, err := store.GetIntList(KeyUnlockedLevels)
	if err != nil {
		return s, fmt.Errorf("progression: load levels: %w", err)
	}
	for i := range s.Levels {
		if slices.Contains(levels, s.Levels[i].ID) {
			s.Levels[i].IsUnlocked = true
		}
	}

	artifacts, _, err := store.GetIntList(KeyUnlockedArtifacts)
	if err != nil {
		return s, fmt.Errorf("progression: load artifacts: %w", err)
	}
	for i := range s.Artifacts {
		if slices.Contains(artifacts, s.Artifacts[i].ID) {
			s.Artifacts[i].IsUnlocked = true
		}
	}

	achievements, _, err := store.GetIntList(KeyCompletedAchievements)
	if err != nil {
		return s, fmt.Errorf("progression: load achievements: %w", err)
	}
	for i := range s.Achievements {
		if slices.Contains(achievements, s.Achievements[i].ID) {
			s.Achievements[i].IsCompleted = true
		}
	}

	for i := range s.Backgrounds {
		if lvl, ok := s.Level(s.Backgrounds[i].UnlockLevel); ok && lvl.IsUnlocked {
			s.Backgrounds[i].IsUnlocked = true
		}
	}

	if on, found, err := store.GetBool(KeySoundEnabled); err != nil {
		return s, fmt.Errorf("progression: load sound: %w", err)
	} else if found {
		s.Settings.SoundEnabled = on
	}
	if on, found, err := store.GetBool(KeyMusicEnabled); err != nil {
		return s, fmt.Errorf("progression: load music: %w", err)
	} else if found {
		s.Settings.MusicEnabled = on && s.Settings.SoundEnabled
	}

	return s, nil
}

// Save writes a save to the store.
func Save(store Store, s State) error {
	ints := []struct {
		key   string
		value int
	}{
		{KeyTotalEnergy, s.TotalEnergy},
		{KeyCurrentLevel, s.CurrentLevel},
		{KeySelectedBackground, s.SelectedBackground},
	}
	for _, kv := range ints {
		if err := store.SetInt(kv.key, kv.value); err != nil {
			return fmt.Errorf("progression: save %s: %w", kv.key, err)
		}
	}

	lists := []struct {
		key    string
		values []int
	}{
		{KeyUnlockedLevels, s.UnlockedLevelIDs()},
		{KeyUnlockedArtifacts, s.UnlockedArtifactIDs()},
		{KeyCompletedAchievements, s.CompletedAchievementIDs()},
	}
	for _, kv := range lists {
		if err := store.SetIntList(kv.key, kv.values); err != nil {
			return fmt.Errorf("progression: save %s: %w", kv.key, err)
		}
	}

	if err := store.SetBool(KeySoundEnabled, s.Settings.SoundEnabled); err != nil {
		return fmt.Errorf("progression: save %s: %w", KeySoundEnabled, err)
	}
	if err := store.SetBool(KeyMusicEnabled, s.Settings.MusicEnabled); err != nil {
		return fmt.Errorf("progression: save %s: %w", KeyMusicEnabled, err)
	}

	return nil
}
