// Package progression tracks cumulative energy and the content it
// unlocks: levels, backgrounds, artifacts and achievements.
//
// State is a plain struct with reducer methods. Unlock and completion
// flags only ever go from false to true; Reset is the one way back.
// Session layers persistence and locking on top for the front ends.
package progression

// LevelThresholds is the energy needed to unlock each level, by level ID-1.
var LevelThresholds = []int{
	0, 100, 250, 500, 850, 1300, 2000, 3000, 4500, 6500,
	9000, 12500, 17000, 23000, 30000, 38000, 44000, 50000, 57000, 65000,
}

type backgroundDef struct {
	id          int
	unlockLevel int
	image       string
}

var backgroundCatalog = []backgroundDef{
	{id: 1, unlockLevel: 1, image: "bg1"},
	{id: 2, unlockLevel: 2, image: "bg2"},
	{id: 3, unlockLevel: 3, image: "bg3"},
	{id: 4, unlockLevel: 4, image: "bg4"},
}

type artifactDef struct {
	name   string
	legend string
	energy int
}

var artifactCatalog = []artifactDef{
	{"Ember Heart", "Burns with eternal flames, granting warmth to all who seek it.", 100},
	{"Mask of the Molten King", "Ancient relic of a forgotten ruler, carved from obsidian and magma.", 300},
	{"Crystal of Eternal Flame", "A precious gem that holds the essence of the volcano's heart.", 600},
	{"Ashen Feather", "Fallen from the skies during the great eruption, light yet unbreakable.", 1000},
	{"Stone of Whispers", "Ancient stone that carries the voices of the volcano's past.", 1500},
	{"Core Fragment", "A piece of the volcano's core, radiating immense power.", 2200},
	{"Rune of Flow", "Mystical rune that guides the flow of molten rivers.", 3000},
	{"Molten Skull", "Guardian of the deep, protecting the secrets of the earth.", 4000},
	{"Tear of Magma", "A crystallized tear from the volcano, precious beyond measure.", 5200},
	{"Titan's Fang", "The ultimate treasure, a fang from the titan of the volcano itself.", 6500},
}

// Achievement IDs.
const (
	AchievementFirstSpark = iota + 1
	AchievementEruptionMaster
	AchievementCoreIgniter
	AchievementTitanAwakened
	AchievementCollectorOfAshes
)

// FirstSparkEnergy is the total energy that completes First Spark.
const FirstSparkEnergy = 100

type achievementDef struct {
	id          int
	title       string
	description string
	done        func(s *State) bool
}

var achievementCatalog = []achievementDef{
	{
		id:          AchievementFirstSpark,
		title:       "First Spark",
		description: "Unlock Level 2 (100 energy)",
		done:        func(s *State) bool { return s.TotalEnergy >= FirstSparkEnergy },
	},
	{
		id:          AchievementEruptionMaster,
		title:       "Eruption Master",
		description: "Unlock the first artifact",
		done:        func(s *State) bool { return len(s.Artifacts) > 0 && s.Artifacts[0].IsUnlocked },
	},
	{
		id:          AchievementCoreIgniter,
		title:       "Core Igniter",
		description: "Unlock all backgrounds (Level 4)",
		done: func(s *State) bool {
			for _, b := range s.Backgrounds {
				if !b.IsUnlocked {
					return false
				}
			}
			return true
		},
	},
	{
		id:          AchievementTitanAwakened,
		title:       "Titan Awakened",
		description: "Unlock all artifacts",
		done: func(s *State) bool {
			for _, a := range s.Artifacts {
				if !a.IsUnlocked {
					return false
				}
			}
			return true
		},
	},
	{
		id:          AchievementCollectorOfAshes,
		title:       "Collector of Ashes",
		description: "Unlock all 20 levels (65,000 energy)",
		done: func(s *State) bool {
			for _, l := range s.Levels {
				if !l.IsUnlocked {
					return false
				}
			}
			return true
		},
	},
}

// achievementDone evaluates the predicate for an achievement ID.
func achievementDone(id int, s *State) bool {
	for _, def := range achievementCatalog {
		if def.id == id {
			return def.done(s)
		}
	}
	return false
}
