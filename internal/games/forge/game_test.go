package forge

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/progression"
	"github.com/vovakirdan/runeforge/internal/registry"
	"github.com/vovakirdan/runeforge/internal/rings"
	"github.com/vovakirdan/runeforge/internal/storage"
)

type fakeProgress struct {
	state progression.State
	gains []int
	err   error
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{state: progression.NewState()}
}

func (f *fakeProgress) AddEnergy(amount int) (progression.Unlocks, error) {
	f.gains = append(f.gains, amount)
	if f.err != nil {
		return progression.Unlocks{}, f.err
	}
	return f.state.ApplyEnergyGain(amount), nil
}

func (f *fakeProgress) Snapshot() progression.State {
	return f.state.Clone()
}

type fakeRecorder struct {
	records []storage.SpinRecord
}

func (f *fakeRecorder) RecordSpin(rec storage.SpinRecord) (int64, error) {
	f.records = append(f.records, rec)
	return int64(len(f.records)), nil
}

// isolate keeps user config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { SetConfigPath("") })
}

// useSameRuneConfig installs two fast reels whose every segment is
// rune 0, so each spin scores one group of 2.
func useSameRuneConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rings.yaml")
	yaml := `
runes: [0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0]
reels:
  - {id: 1, scale: 1.0, min_rotation: 30, max_rotation: 90, duration_ms: 100, direction: 1}
  - {id: 2, scale: 0.5, min_rotation: 90, max_rotation: 180, duration_ms: 200, direction: -1}
rewards:
  base: {2: 10}
  multiplier: 2
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)
}

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// spinOnce starts a spin and steps until it resolves.
func spinOnce(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	res := g.Step(core.FrameOf(core.ActionJump))
	if !res.State.Busy {
		t.Fatal("spin did not start")
	}
	for i := 0; i < 10000; i++ {
		res = g.Step(core.NewInputFrame())
		if !res.State.Busy {
			return res
		}
	}
	t.Fatal("spin never settled")
	return res
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"rings", "rings_practice"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, want %q", g.ID(), id)
		}
	}
}

func TestSpinSettlesBeforeDetection(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(42))
	before := g.Reels()

	g.Step(core.FrameOf(core.ActionJump))

	// The slowest default reel runs 2.0s, 120 ticks at 60 fps.
	for i := 0; i < 119; i++ {
		res := g.Step(core.NewInputFrame())
		if !res.State.Busy {
			t.Fatalf("spin resolved early at tick %d", i+1)
		}
	}
	if g.Spins() != 0 {
		t.Fatal("matches detected before every reel settled")
	}

	reels := g.Reels()
	if reels[4].CurrentAngle != before[4].CurrentAngle {
		t.Error("unsettled reel angle changed during animation")
	}
	if rem := math.Mod(reels[0].CurrentAngle, rings.SegmentDegrees); rem != 0 {
		t.Errorf("settled reel 0 not snapped: %v", reels[0].CurrentAngle)
	}

	res := g.Step(core.NewInputFrame())
	if res.State.Busy {
		t.Fatal("spin still running after the slowest reel finished")
	}
	if g.Spins() != 1 {
		t.Fatalf("Spins() = %d, want 1", g.Spins())
	}
	if len(res.Messages) == 0 {
		t.Error("resolve should report the outcome")
	}

	for i, r := range g.Reels() {
		if r.CurrentAngle < 0 || r.CurrentAngle >= rings.FullTurn || math.Mod(r.CurrentAngle, rings.SegmentDegrees) != 0 {
			t.Errorf("reel %d angle %v not a snapped segment", i, r.CurrentAngle)
		}
	}

	out, ok := g.LastOutcome()
	if !ok {
		t.Fatal("LastOutcome() missing after spin")
	}
	want := rings.DetectMatches(g.Reels(), rings.DefaultRewardTable())
	if !reflect.DeepEqual(out.Runes, want.Runes) || out.TotalEnergy != want.TotalEnergy {
		t.Errorf("outcome %+v does not match reels %+v", out, want)
	}
	if g.State().Score != out.TotalEnergy {
		t.Errorf("Score = %d, want %d", g.State().Score, out.TotalEnergy)
	}
}

func TestSpinsAreDeterministic(t *testing.T) {
	isolate(t)

	run := func() [][]int {
		g := NewPractice()
		g.Reset(testConfig(7))
		var tops [][]int
		for i := 0; i < 5; i++ {
			spinOnce(t, g)
			out, _ := g.LastOutcome()
			tops = append(tops, out.Runes)
		}
		return tops
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different spins:\n%v\n%v", a, b)
	}
}

func TestCampaignPaysOutAndRecords(t *testing.T) {
	isolate(t)
	useSameRuneConfig(t)

	prog := newFakeProgress()
	rec := &fakeRecorder{}

	g := New()
	g.Attach(prog, rec, "ash")
	g.Reset(testConfig(1))

	for i := 0; i < 10; i++ {
		spinOnce(t, g)
	}

	if len(prog.gains) != 10 {
		t.Fatalf("AddEnergy called %d times, want 10", len(prog.gains))
	}
	for _, gain := range prog.gains {
		if gain != 10 {
			t.Errorf("gain = %d, want 10", gain)
		}
	}
	if prog.state.TotalEnergy != 100 {
		t.Errorf("TotalEnergy = %d, want 100", prog.state.TotalEnergy)
	}
	if g.State().Score != 100 {
		t.Errorf("Score = %d, want 100", g.State().Score)
	}

	if len(rec.records) != 10 {
		t.Fatalf("recorded %d spins, want 10", len(rec.records))
	}
	first := rec.records[0]
	if first.Profile != "ash" || first.SessionID != g.SessionID() || first.SessionID == "" {
		t.Errorf("record identity = %q/%q", first.Profile, first.SessionID)
	}
	if !reflect.DeepEqual(first.Groups, []int{2}) || first.Energy != 10 || first.Multiplier != 1 {
		t.Errorf("record = %+v", first)
	}

	// The tenth spin crosses 100 and unlocks level 2.
	found := false
	for _, n := range g.notices {
		if n == "Level 2 unlocked" {
			found = true
		}
	}
	if !found {
		t.Errorf("notices %q lack the level unlock", g.notices)
	}
}

func TestPracticeIgnoresProgress(t *testing.T) {
	isolate(t)
	useSameRuneConfig(t)

	prog := newFakeProgress()
	rec := &fakeRecorder{}

	g := NewPractice()
	g.Attach(prog, rec, "ash")
	g.Reset(testConfig(1))
	spinOnce(t, g)

	if len(prog.gains) != 0 || len(rec.records) != 0 {
		t.Error("practice mode touched progression or history")
	}
	if g.State().Score != 10 {
		t.Errorf("practice Score = %d, want 10", g.State().Score)
	}
}

func TestSaveErrorIsReported(t *testing.T) {
	isolate(t)
	useSameRuneConfig(t)

	prog := newFakeProgress()
	prog.err = errors.New("disk full")

	g := New()
	g.Attach(prog, nil, "")
	g.Reset(testConfig(1))
	res := spinOnce(t, g)

	if len(res.Messages) != 2 || res.Messages[1] != "Progress could not be saved" {
		t.Errorf("Messages = %q", res.Messages)
	}
}

func TestPauseBlocksSpin(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(3))

	g.Step(core.FrameOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	if res := g.Step(core.FrameOf(core.ActionJump)); res.State.Busy {
		t.Error("spin started while paused")
	}

	g.Step(core.FrameOf(core.ActionPause))
	if res := g.Step(core.FrameOf(core.ActionConfirm)); !res.State.Busy {
		t.Error("Confirm should start a spin after unpausing")
	}
}

func TestRender(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(5))
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	out := scr.String()
	if !strings.Contains(out, "RUNE FORGE") {
		t.Error("title missing")
	}
	if !strings.ContainsRune(out, '▼') {
		t.Error("read marker missing")
	}
	if !strings.Contains(out, "Run energy 0") {
		t.Errorf("HUD missing:\n%s", out)
	}

	prog := newFakeProgress()
	g.Attach(prog, nil, "")
	scr.Clear()
	g.Render(scr)
	if !strings.Contains(scr.String(), "Energy 0  Level 1  Next at 100") {
		t.Errorf("campaign HUD missing:\n%s", scr.String())
	}
}

func TestRenderTooSmall(t *testing.T) {
	isolate(t)

	g := New()
	cfg := testConfig(5)
	cfg.ScreenW, cfg.ScreenH = 20, 10
	g.Reset(cfg)

	if res := g.Step(core.FrameOf(core.ActionJump)); res.State.Busy {
		t.Error("spin started on a too-small screen")
	}

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Terminal too small") {
		t.Error("too-small notice missing")
	}
}

func TestOutcomeLine(t *testing.T) {
	tests := []struct {
		out  rings.MatchOutcome
		want string
	}{
		{rings.MatchOutcome{}, "No match"},
		{rings.MatchOutcome{Groups: []int{5}, Multiplier: 1, TotalEnergy: 100}, "+100 energy (groups 5)"},
		{rings.MatchOutcome{Groups: []int{2, 3}, Multiplier: 2, TotalEnergy: 80}, "+80 energy (groups 2+3) x2"},
	}

	for _, tt := range tests {
		if got := outcomeLine(tt.out); got != tt.want {
			t.Errorf("outcomeLine(%+v) = %q, want %q", tt.out, got, tt.want)
		}
	}
}

func TestGlyph(t *testing.T) {
	if Glyph(0) != 'ᚠ' || Glyph(11) != 'ᛃ' {
		t.Error("unexpected futhark glyphs")
	}
	if Glyph(-1) != '?' || Glyph(12) != '?' {
		t.Error("out-of-range ids should render as ?")
	}
}

func TestResizeKeepsReels(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(9))
	before := g.Reels()

	g.Resize(20, 10)
	if res := g.Step(core.FrameOf(core.ActionJump)); res.State.Busy {
		t.Error("spin started after shrinking below the minimum")
	}

	g.Resize(80, 24)
	if !reflect.DeepEqual(g.Reels(), before) {
		t.Error("Resize changed the reels")
	}
	if res := g.Step(core.FrameOf(core.ActionJump)); !res.State.Busy {
		t.Error("spin should start once the screen is large enough")
	}
}

func TestEnergyBar(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testConfig(5))
	prog := newFakeProgress()
	prog.state.ApplyEnergyGain(150)
	g.Attach(prog, nil, "")

	scr := core.NewScreen(80, 24)
	g.Render(scr)

	// 50 of the 150 between level 2 and level 3.
	if got := strings.Count(scr.Row(2), "█"); got != 13 {
		t.Errorf("filled cells = %d, want 13\n%s", got, scr.Row(2))
	}
	if c := scr.GetCell(20, 2); c.Rune != '█' || c.Color != core.Heat(50.0/150) {
		t.Errorf("bar start = %+v", c)
	}

	practice := NewPractice()
	practice.Reset(testConfig(5))
	scr.Clear()
	practice.Render(scr)
	if strings.ContainsAny(scr.Row(2), "█░") {
		t.Error("practice mode should not draw an energy bar")
	}
}

func TestDescriptions(t *testing.T) {
	if New().Description() == NewPractice().Description() {
		t.Error("modes should describe themselves differently")
	}
}
