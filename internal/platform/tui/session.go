package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/registry"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenCollection
)

// SessionModel manages the full flow: menu -> game or collection -> menu.
// Local menu runs and SSH sessions both use it.
type SessionModel struct {
	deps       Deps
	config     core.RuntimeConfig
	screen     screenKind
	menu       MenuModel
	gameModel  GameModel
	collection CollectionModel
	quitting   bool
}

// NewSessionModel creates a session that starts on the main menu.
func NewSessionModel(deps Deps, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		deps:   deps,
		config: cfg,
		menu:   NewMenuModel(deps, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenCollection:
		return m.updateCollection(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	switch selected.Kind {
	case MenuPlay:
		game, err := registry.Create(selected.GameID)
		if err != nil {
			m.deps.logger().Error("cannot start game", "err", err)
			m.menu = NewMenuModel(m.deps, m.config)
			return m, nil
		}
		m.gameModel = NewGameModel(game, m.deps, m.config)
		m.screen = screenGame
		return m, m.gameModel.Init()

	case MenuCollection:
		m.collection = NewCollectionModel(m.deps, selected.View, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenCollection
		return m, m.collection.Init()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.gameModel.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

// updateCollection handles updates on the collection screens.
func (m SessionModel) updateCollection(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.collection.Update(msg)
	if c, ok := newModel.(CollectionModel); ok {
		m.collection = c
	}

	if m.collection.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.collection.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.deps, m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenCollection:
		return m.collection.View()
	}
	return m.menu.View()
}

// RunApp runs the menu-driven session in the local terminal.
func RunApp(deps Deps, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(deps, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
