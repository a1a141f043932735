package progression

import "fmt"

// Unlocks lists what a single energy gain newly unlocked or completed.
type Unlocks struct {
	Levels       []int
	Backgrounds  []int
	Artifacts    []int
	Achievements []int
}

// Empty reports whether nothing changed.
func (u Unlocks) Empty() bool {
	return len(u.Levels) == 0 && len(u.Backgrounds) == 0 &&
		len(u.Artifacts) == 0 && len(u.Achievements) == 0
}

// ApplyEnergyGain adds energy and re-evaluates every unlock.
// Levels are checked before backgrounds since backgrounds follow them.
// Negative amounts are ignored; flags are never cleared.
func (s *State) ApplyEnergyGain(amount int) Unlocks {
	if amount > 0 {
		s.TotalEnergy += amount
	}

	var u Unlocks

	for i := range s.Levels {
		l := &s.Levels[i]
		if !l.IsUnlocked && s.TotalEnergy >= l.EnergyRequired {
			l.IsUnlocked = true
			u.Levels = append(u.Levels, l.ID)
		}
	}

	for i := range s.Backgrounds {
		b := &s.Backgrounds[i]
		if b.IsUnlocked {
			continue
		}
		if lvl, ok := s.Level(b.UnlockLevel); ok && lvl.IsUnlocked {
			b.IsUnlocked = true
			u.Backgrounds = append(u.Backgrounds, b.ID)
		}
	}

	for i := range s.Artifacts {
		a := &s.Artifacts[i]
		if !a.IsUnlocked && s.TotalEnergy >= a.EnergyRequired {
			a.IsUnlocked = true
			u.Artifacts = append(u.Artifacts, a.ID)
		}
	}

	for i := range s.Achievements {
		a := &s.Achievements[i]
		if !a.IsCompleted && achievementDone(a.ID, s) {
			a.IsCompleted = true
			u.Achievements = append(u.Achievements, a.ID)
		}
	}

	return u
}

// ApplyEnergyGain is the copying form of State.ApplyEnergyGain.
// The input state is left untouched.
func ApplyEnergyGain(amount int, s State) (State, Unlocks) {
	next := s.Clone()
	u := next.ApplyEnergyGain(amount)
	return next, u
}

// SelectBackground selects an unlocked background.
// Locked or unknown IDs leave the state unchanged and return false.
func (s *State) SelectBackground(id int) bool {
	for _, b := range s.Backgrounds {
		if b.ID == id && b.IsUnlocked {
			s.SelectedBackground = id
			return true
		}
	}
	return false
}

// SetCurrentLevel makes an unlocked level current.
// Locked or unknown IDs leave the state unchanged and return false.
func (s *State) SetCurrentLevel(id int) bool {
	if lvl, ok := s.Level(id); ok && lvl.IsUnlocked {
		s.CurrentLevel = id
		return true
	}
	return false
}

// SetSound toggles sound. Turning sound off also turns music off.
func (s *State) SetSound(on bool) {
	s.Settings.SoundEnabled = on
	if !on {
		s.Settings.MusicEnabled = false
	}
}

// SetMusic toggles music. Music stays off while sound is off;
// returns false when the request was refused.
func (s *State) SetMusic(on bool) bool {
	if on && !s.Settings.SoundEnabled {
		s.Settings.MusicEnabled = false
		return false
	}
	s.Settings.MusicEnabled = on
	return true
}

// Reset wipes the save back to NewState.
func (s *State) Reset() {
	*s = NewState()
}

// Notices renders the unlocks as short player-facing lines.
// Names are looked up in s, which should be the state after the gain.
func (u Unlocks) Notices(s State) []string {
	var out []string
	for _, id := range u.Levels {
		out = append(out, fmt.Sprintf("Level %d unlocked", id))
	}
	for _, id := range u.Backgrounds {
		out = append(out, fmt.Sprintf("Background %d unlocked", id))
	}
	for _, id := range u.Artifacts {
		for _, a := range s.Artifacts {
			if a.ID == id {
				out = append(out, "Artifact found: "+a.Name)
			}
		}
	}
	for _, id := range u.Achievements {
		for _, a := range s.Achievements {
			if a.ID == id {
				out = append(out, "Achievement: "+a.Title)
			}
		}
	}
	return out
}
