package core

// RuntimeConfig is what the platform hands a game on Reset.
type RuntimeConfig struct {
	ScreenW  int // Cells
	ScreenH  int
	TickRate int   // Steps per second
	Seed     int64 // 0 lets the platform pick one
}

// DefaultConfig is an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score  int // Energy earned in this run
	Paused bool

	// Busy is set while reels are animating; the platform keeps the
	// player in the game until it clears.
	Busy bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State GameState

	// Messages are short notices raised this tick, such as unlocks.
	Messages []string
}
