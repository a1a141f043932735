package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/games/forge"
	"github.com/vovakirdan/runeforge/internal/progression"
	"github.com/vovakirdan/runeforge/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testDeps(t *testing.T) Deps {
	t.Helper()
	sess, err := progression.NewSession(storage.NewMemoryKV(), nil)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return Deps{Progress: sess, Profile: "tester"}
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey('p'), core.ActionPause, false},
		{runeKey('q'), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey('x'), core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(tt.msg)
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
		}
	}

	if km.MapKeyToMenuAction(runeKey('j')) != MenuActionDown {
		t.Error("j should move down in menus")
	}
	if km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}) != MenuActionSelect {
		t.Error("enter should select in menus")
	}
}

func TestMainMenuItems(t *testing.T) {
	items := mainMenuItems()

	var titles []string
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	joined := strings.Join(titles, "|")

	for _, want := range []string{"Play Rune Forge", "Levels", "Upgrades", "Artifacts", "Achievements", "Settings", "Spin history", "Quit"} {
		if !strings.Contains(joined, want) {
			t.Errorf("menu %q lacks %q", joined, want)
		}
	}
	if items[len(items)-1].Kind != MenuQuit {
		t.Error("Quit should be the last entry")
	}
}

func TestMenuSelectsCollection(t *testing.T) {
	m := NewMenuModel(testDeps(t), core.DefaultConfig())

	idx := -1
	for i, it := range m.items {
		if it.Kind == MenuCollection && it.View == ViewArtifacts {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatal("Artifacts entry missing")
	}

	var model tea.Model = m
	for i := 0; i < idx; i++ {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	sel := model.(MenuModel).Selected()
	if sel == nil || sel.View != ViewArtifacts {
		t.Fatalf("Selected() = %+v, want Artifacts", sel)
	}

	if !strings.Contains(m.View(), "Energy 0") {
		t.Error("menu should show the player's energy")
	}
}

func TestRowsFor(t *testing.T) {
	s := progression.NewState()
	s.ApplyEnergyGain(300)

	levels := rowsFor(ViewLevels, s, nil)
	if len(levels) != 20 {
		t.Fatalf("levels rows = %d, want 20", len(levels))
	}
	if levels[0][2] != "Current" || levels[2][2] != "Unlocked" || levels[3][2] != "Locked" {
		t.Errorf("level statuses = %v %v %v", levels[0], levels[2], levels[3])
	}

	arts := rowsFor(ViewArtifacts, s, nil)
	if arts[0][0] != "Ember Heart" || arts[2][0] != "???" {
		t.Errorf("artifact names = %q, %q", arts[0][0], arts[2][0])
	}

	ups := rowsFor(ViewUpgrades, s, nil)
	if ups[0][2] != "Selected" || ups[2][2] != "Unlocked" || ups[3][2] != "Locked" {
		t.Errorf("upgrade statuses = %v", ups)
	}

	settings := rowsFor(ViewSettings, s, nil)
	if settings[0][1] != "on" || settings[1][1] != "on" {
		t.Errorf("settings = %v", settings)
	}

	spins := rowsFor(ViewSpins, s, []storage.SpinRecord{
		{ID: 7, Runes: []int{0, 0, 1, 2, 3}, Groups: []int{2}, Energy: 10},
		{ID: 8, Runes: []int{0, 1, 2, 3, 4}, Groups: []int{}, Energy: 0},
	})
	if spins[0][1] != "ᚠ ᚠ ᚢ ᚦ ᚨ" || spins[0][2] != "2" || spins[1][2] != "-" {
		t.Errorf("spin rows = %v", spins)
	}
}

func TestColumnsForFillsWidth(t *testing.T) {
	for _, v := range allViews {
		cols := columnsFor(v, 120)
		if len(cols) == 0 {
			t.Errorf("%s has no columns", v.Title())
		}
		if cols[len(cols)-1].Width > 60 {
			t.Errorf("%s last column too wide", v.Title())
		}
	}
}

func TestCollectionActivate(t *testing.T) {
	deps := testDeps(t)
	deps.Progress.AddEnergy(250)

	m := NewCollectionModel(deps, ViewLevels, 100, 30)

	m.activate(2)
	if got := deps.Progress.Snapshot().CurrentLevel; got != 3 {
		t.Errorf("CurrentLevel = %d, want 3", got)
	}

	m.activate(10)
	if got := deps.Progress.Snapshot().CurrentLevel; got != 3 {
		t.Error("locked level should not be selectable")
	}
	if m.status != "That level is still locked" {
		t.Errorf("status = %q", m.status)
	}

	m.switchTab(int(ViewSettings) - int(ViewLevels))
	if m.view != ViewSettings {
		t.Fatalf("view = %v, want settings", m.view)
	}

	m.activate(0)
	st := deps.Progress.Snapshot().Settings
	if st.SoundEnabled || st.MusicEnabled {
		t.Errorf("turning sound off should silence music too: %+v", st)
	}

	m.activate(1)
	if deps.Progress.Snapshot().Settings.MusicEnabled || m.status != "Turn sound on first" {
		t.Errorf("music enabled without sound, status %q", m.status)
	}
}

func TestCollectionTabsWrap(t *testing.T) {
	m := NewCollectionModel(testDeps(t), ViewLevels, 100, 30)

	m.switchTab(-1)
	if m.view != ViewSpins {
		t.Errorf("prev from first tab = %v, want spin history", m.view)
	}
	if !strings.Contains(m.View(), "No spins recorded yet") {
		t.Error("empty spin history should say so")
	}

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !model.(CollectionModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestGameModelFlow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	deps := testDeps(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 11}
	var model tea.Model = NewGameModel(forge.New(), deps, cfg)
	model.Init()

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	model, _ = model.Update(TickMsg{})
	if !model.(GameModel).State().Busy {
		t.Fatal("space should start a spin")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if model.(GameModel).BackToMenu() {
		t.Error("back should be ignored mid-spin")
	}

	for i := 0; i < 500 && model.(GameModel).State().Busy; i++ {
		model, _ = model.Update(TickMsg{})
	}
	if model.(GameModel).State().Busy {
		t.Fatal("spin never finished")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEscape})
	if !model.(GameModel).BackToMenu() {
		t.Error("back should return to menu once idle")
	}

	if !strings.Contains(model.View(), "RUNE FORGE") {
		t.Error("game view should render the title")
	}
}

func TestSessionModelRoutes(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	deps := testDeps(t)
	var model tea.Model = NewSessionModel(deps, core.DefaultConfig())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	sm := model.(SessionModel)
	if sm.screen != screenGame {
		t.Fatalf("first entry should start a game, screen = %v", sm.screen)
	}

	model, _ = model.Update(runeKey('q'))
	if !model.(SessionModel).quitting {
		t.Error("q should quit the session")
	}
}

func TestSSHSessionsAreShared(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	srv, err := NewSSHServer(SSHServerConfig{
		Address:     "127.0.0.1:0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "progress.db"),
	})
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer srv.store.Close()

	a, releaseA, err := srv.Acquire("alice")
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	defer releaseA()
	again, releaseAgain, _ := srv.Acquire("alice")
	defer releaseAgain()
	if a != again {
		t.Error("same user should share one session")
	}

	b, releaseB, _ := srv.Acquire("bob")
	defer releaseB()
	if a == b {
		t.Error("different users must not share a session")
	}

	a.AddEnergy(150)
	if b.Snapshot().TotalEnergy != 0 {
		t.Error("energy leaked between profiles")
	}

	reloaded, err := progression.NewSession(srv.store.Progress("alice"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Snapshot().TotalEnergy != 150 {
		t.Error("alice's progress was not persisted")
	}
}

func TestSSHLiveSessionsSurviveEviction(t *testing.T) {
	tests := []struct {
		name   string
		dbPath bool
	}{
		{"sqlite", true},
		{"memory", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("HOME", dir)

			cfg := SSHServerConfig{
				Address:          "127.0.0.1:0",
				HostKeyPath:      filepath.Join(dir, "host_key"),
				SessionCacheSize: 1,
			}
			if tt.dbPath {
				cfg.DBPath = filepath.Join(dir, "progress.db")
			}
			srv, err := NewSSHServer(cfg)
			if err != nil {
				t.Fatalf("NewSSHServer() failed: %v", err)
			}
			if srv.store != nil {
				defer srv.store.Close()
			}

			first, releaseFirst, err := srv.Acquire("alice")
			if err != nil {
				t.Fatalf("Acquire() failed: %v", err)
			}
			_, releaseBob, _ := srv.Acquire("bob")
			releaseBob()
			_, releaseCarol, _ := srv.Acquire("carol")
			releaseCarol()

			second, releaseSecond, _ := srv.Acquire("alice")
			if first != second {
				t.Fatal("connected player's session was evicted")
			}

			first.AddEnergy(100)
			second.AddEnergy(250)
			if got := second.Snapshot().TotalEnergy; got != 350 {
				t.Errorf("TotalEnergy = %d, want 350", got)
			}

			releaseFirst()
			releaseFirst()
			if _, ok := srv.live["alice"]; !ok {
				t.Error("double release dropped a reference held elsewhere")
			}
			releaseSecond()
			if _, ok := srv.live["alice"]; ok {
				t.Error("session still live after the last release")
			}

			third, releaseThird, _ := srv.Acquire("alice")
			defer releaseThird()
			if third != first {
				t.Error("idle session should be reused from the cache")
			}

			if srv.store == nil {
				return
			}
			reloaded, err := progression.NewSession(srv.store.Progress("alice"), nil)
			if err != nil {
				t.Fatal(err)
			}
			if got := reloaded.Snapshot().TotalEnergy; got != 350 {
				t.Errorf("persisted TotalEnergy = %d, want 350", got)
			}
		})
	}
}

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorEmber)
	s.DrawText(2, 0, "cd")
	s.SetColored(0, 1, 'ᚠ', core.Color(200))

	out := RenderScreen(s)
	for _, want := range []string{"ab", "cd", "ᚠ"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen lost %q: %q", want, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}
