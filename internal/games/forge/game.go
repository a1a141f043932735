// Package forge is the playable rune ring machine. It drives a spin
// from input through reel animation to match detection, then feeds
// the reward into the player's progression and spin history.
package forge

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/runeforge/internal/config"
	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/progression"
	"github.com/vovakirdan/runeforge/internal/registry"
	"github.com/vovakirdan/runeforge/internal/rings"
	"github.com/vovakirdan/runeforge/internal/storage"
)

// Mode selects whether energy is persisted.
type Mode string

const (
	ModeCampaign Mode = "rings"
	ModePractice Mode = "rings_practice"
)

// Progress receives campaign energy. *progression.Session satisfies it.
type Progress interface {
	AddEnergy(amount int) (progression.Unlocks, error)
	Snapshot() progression.State
}

// Recorder stores resolved spins. *storage.Store satisfies it.
type Recorder interface {
	RecordSpin(rec storage.SpinRecord) (int64, error)
}

type phase int

const (
	phaseIdle phase = iota
	phaseSpinning
)

// Game implements registry.Game for the ring machine.
type Game struct {
	mode Mode

	rcfg  config.RingsConfig
	table rings.RewardTable
	rng   *rand.Rand
	reels []rings.Reel
	anims []reelAnim
	phase phase

	tickRate int
	tick     uint64

	score   int // Energy earned this run
	spins   int
	last    rings.MatchOutcome
	hasLast bool
	notices []string

	screenW  int
	screenH  int
	tooSmall bool
	paused   bool

	sessionID string
	profile   string
	progress  Progress
	recorder  Recorder
}

// Package-level settings applied on every Reset.
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets the custom ring config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes game logs. nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewPractice creates a practice game whose energy is not saved.
func NewPractice() *Game {
	return &Game{mode: ModePractice}
}

func init() {
	registry.Register(string(ModeCampaign), func() registry.Game {
		return New()
	})
	registry.Register(string(ModePractice), func() registry.Game {
		return NewPractice()
	})
}

// Attach binds the player's progression and spin history.
// Practice games ignore both. Either may be nil.
func (g *Game) Attach(progress Progress, recorder Recorder, profile string) {
	g.progress = progress
	g.recorder = recorder
	g.profile = profile
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModePractice {
		return "Rune Forge (Practice)"
	}
	return "Rune Forge"
}

// Description summarizes what the mode keeps.
func (g *Game) Description() string {
	if g.mode == ModePractice {
		return "Spin freely, nothing is saved"
	}
	return "Earn energy and unlock the forge"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset loads the ring config and places every reel on a random segment.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rcfg, err := config.LoadRings(configPath)
	if err != nil {
		logger.Warn("using default ring config", "err", err)
		rcfg = config.DefaultRingsConfig()
	}

	g.rcfg = rcfg
	g.table = rcfg.RewardTable()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.reels = rings.InitializeReels(rcfg.ReelConfigs(), rcfg.RuneLayout(), g.rng)
	g.anims = make([]reelAnim, len(g.reels))
	g.phase = phaseIdle

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.score = 0
	g.spins = 0
	g.last = rings.MatchOutcome{}
	g.hasLast = false
	g.notices = nil
	g.paused = false
	g.sessionID = uuid.NewString()

	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.checkScreenSize()

	logger.Debug("game reset", "mode", g.mode, "reels", len(g.reels), "session", g.sessionID)
}

// Resize adapts to a new screen size without touching the reels.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var msgs []string
	switch g.phase {
	case phaseIdle:
		if in.Any(core.ActionJump, core.ActionConfirm) {
			g.startSpin()
		}
	case phaseSpinning:
		if g.advance() {
			msgs = g.resolve()
		}
	}

	return core.StepResult{State: g.State(), Messages: msgs}
}

// resolve reads the settled reels and pays out.
func (g *Game) resolve() []string {
	out := rings.DetectMatches(g.reels, g.table)
	g.last = out
	g.hasLast = true
	g.spins++
	g.score += out.TotalEnergy
	g.phase = phaseIdle

	if len(out.Unscored) > 0 {
		logger.Warn("group size has no reward", "sizes", out.Unscored)
	}
	logger.Debug("spin resolved", "runes", out.Runes, "groups", out.Groups, "energy", out.TotalEnergy)

	msgs := []string{outcomeLine(out)}

	if g.mode == ModeCampaign {
		msgs = append(msgs, g.payOut(out)...)
		g.record(out)
	}

	g.notices = msgs
	return msgs
}

// payOut hands the reward to progression and returns unlock notices.
func (g *Game) payOut(out rings.MatchOutcome) []string {
	if g.progress == nil || out.TotalEnergy <= 0 {
		return nil
	}

	u, err := g.progress.AddEnergy(out.TotalEnergy)
	if err != nil {
		logger.Error("progress not saved", "err", err)
		return []string{"Progress could not be saved"}
	}
	return u.Notices(g.progress.Snapshot())
}

func (g *Game) record(out rings.MatchOutcome) {
	if g.recorder == nil {
		return
	}
	_, err := g.recorder.RecordSpin(storage.SpinRecord{
		Profile:    g.profile,
		SessionID:  g.sessionID,
		Runes:      out.Runes,
		Groups:     out.Groups,
		Multiplier: out.Multiplier,
		Energy:     out.TotalEnergy,
	})
	if err != nil {
		logger.Warn("spin not recorded", "err", err)
	}
}

func outcomeLine(out rings.MatchOutcome) string {
	if out.IsMiss() {
		return "No match"
	}
	parts := make([]string, len(out.Groups))
	for i, n := range out.Groups {
		parts[i] = fmt.Sprintf("%d", n)
	}
	line := fmt.Sprintf("+%d energy (groups %s)", out.TotalEnergy, strings.Join(parts, "+"))
	if out.Multiplier > 1 {
		line += fmt.Sprintf(" x%d", out.Multiplier)
	}
	return line
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:  g.score,
		Paused: g.paused,
		Busy:   g.phase == phaseSpinning,
	}
}

// Reels returns a copy of the reels. Angles of reels still animating
// hold their pre-spin value.
func (g *Game) Reels() []rings.Reel {
	out := make([]rings.Reel, len(g.reels))
	copy(out, g.reels)
	return out
}

// LastOutcome returns the most recent spin result.
func (g *Game) LastOutcome() (rings.MatchOutcome, bool) {
	return g.last, g.hasLast
}

// Spins returns how many spins resolved this run.
func (g *Game) Spins() int {
	return g.spins
}

// SessionID identifies this run in spin history.
func (g *Game) SessionID() string {
	return g.sessionID
}
