package progression

// Level is one energy tier. Level 1 is always unlocked.
type Level struct {
	ID             int
	EnergyRequired int
	IsUnlocked     bool
}

// Background is a cosmetic backdrop tied to a level.
type Background struct {
	ID          int
	UnlockLevel int // Level ID that unlocks this background
	IsUnlocked  bool
	Image       string
}

// Artifact is a collectible unlocked at an energy threshold.
type Artifact struct {
	ID             int
	Name           string
	Legend         string
	EnergyRequired int
	IsUnlocked     bool
}

// Achievement is a one-shot goal evaluated after every energy gain.
type Achievement struct {
	ID          int
	Title       string
	Description string
	IsCompleted bool
}

// Settings holds the player's audio toggles.
// Music can only be on while sound is on.
type Settings struct {
	SoundEnabled bool
	MusicEnabled bool
}

// State is the full progression of one save.
type State struct {
	TotalEnergy        int
	CurrentLevel       int
	SelectedBackground int

	Levels       []Level
	Backgrounds  []Background
	Artifacts    []Artifact
	Achievements []Achievement

	Settings Settings
}

// NewState returns a fresh save: no energy, level 1 and background 1
// unlocked and selected, audio on.
func NewState() State {
	s := State{
		CurrentLevel:       1,
		SelectedBackground: 1,
		Settings:           Settings{SoundEnabled: true, MusicEnabled: true},
	}

	s.Levels = make([]Level, len(LevelThresholds))
	for i, energy := range LevelThresholds {
		s.Levels[i] = Level{ID: i + 1, EnergyRequired: energy, IsUnlocked: i == 0}
	}

	s.Backgrounds = make([]Background, len(backgroundCatalog))
	for i, def := range backgroundCatalog {
		s.Backgrounds[i] = Background{
			ID:          def.id,
			UnlockLevel: def.unlockLevel,
			IsUnlocked:  def.id == 1,
			Image:       def.image,
		}
	}

	s.Artifacts = make([]Artifact, len(artifactCatalog))
	for i, def := range artifactCatalog {
		s.Artifacts[i] = Artifact{
			ID:             i + 1,
			Name:           def.name,
			Legend:         def.legend,
			EnergyRequired: def.energy,
		}
	}

	s.Achievements = make([]Achievement, len(achievementCatalog))
	for i, def := range achievementCatalog {
		s.Achievements[i] = Achievement{ID: def.id, Title: def.title, Description: def.description}
	}

	return s
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	c := s
	c.Levels = append([]Level(nil), s.Levels...)
	c.Backgrounds = append([]Background(nil), s.Backgrounds...)
	c.Artifacts = append([]Artifact(nil), s.Artifacts...)
	c.Achievements = append([]Achievement(nil), s.Achievements...)
	return c
}

// Level returns the level with the given ID.
func (s *State) Level(id int) (Level, bool) {
	for _, l := range s.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// NextLevel returns the lowest locked level, or false when all are unlocked.
func (s *State) NextLevel() (Level, bool) {
	for _, l := range s.Levels {
		if !l.IsUnlocked {
			return l, true
		}
	}
	return Level{}, false
}

// UnlockedLevelIDs lists unlocked level IDs in order.
func (s *State) UnlockedLevelIDs() []int {
	ids := []int{}
	for _, l := range s.Levels {
		if l.IsUnlocked {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// UnlockedArtifactIDs lists unlocked artifact IDs in order.
func (s *State) UnlockedArtifactIDs() []int {
	ids := []int{}
	for _, a := range s.Artifacts {
		if a.IsUnlocked {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// CompletedAchievementIDs lists completed achievement IDs in order.
func (s *State) CompletedAchievementIDs() []int {
	ids := []int{}
	for _, a := range s.Achievements {
		if a.IsCompleted {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
