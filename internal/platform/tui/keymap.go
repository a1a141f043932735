package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runeforge/internal/core"
)

// GameKeyMap binds keys to game actions.
type GameKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Spin    key.Binding
	Confirm key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultGameKeyMap returns the default game bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:      key.NewBinding(key.WithKeys("w", "up")),
		Down:    key.NewBinding(key.WithKeys("s", "down")),
		Left:    key.NewBinding(key.WithKeys("a", "left")),
		Right:   key.NewBinding(key.WithKeys("d", "right")),
		Spin:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "spin")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "spin")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Back:    key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MenuAction is a menu-level intent.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MenuKeyMap binds keys to menu navigation.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:     key.NewBinding(key.WithKeys("w", "up", "k")),
		Down:   key.NewBinding(key.WithKeys("s", "down", "j")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Back:   key.NewBinding(key.WithKeys("b", "esc")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

type actionBinding struct {
	binding key.Binding
	action  core.Action
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	Game GameKeyMap
	Menu MenuKeyMap

	actions []actionBinding
}

// NewKeyMapper creates a mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{Game: DefaultGameKeyMap(), Menu: DefaultMenuKeyMap()}
	g := km.Game
	km.actions = []actionBinding{
		{g.Quit, core.ActionQuit},
		{g.Up, core.ActionUp},
		{g.Down, core.ActionDown},
		{g.Left, core.ActionLeft},
		{g.Right, core.ActionRight},
		{g.Spin, core.ActionJump},
		{g.Confirm, core.ActionConfirm},
		{g.Back, core.ActionBack},
		{g.Pause, core.ActionPause},
		{g.Restart, core.ActionRestart},
	}
	return km
}

// MapKey returns the action for a key (ActionNone when unbound) and
// whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, ab := range km.actions {
		if key.Matches(msg, ab.binding) {
			return ab.action, ab.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame sets the key's action on frame. Returns true on quit.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	m := km.Menu
	switch {
	case key.Matches(msg, m.Quit):
		return MenuActionQuit
	case key.Matches(msg, m.Up):
		return MenuActionUp
	case key.Matches(msg, m.Down):
		return MenuActionDown
	case key.Matches(msg, m.Select):
		return MenuActionSelect
	case key.Matches(msg, m.Back):
		return MenuActionBack
	}
	return MenuActionNone
}
