package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/runeforge/internal/core"
	"github.com/vovakirdan/runeforge/internal/registry"
)

// MenuItemKind tells the session what a menu entry opens.
type MenuItemKind int

const (
	MenuPlay MenuItemKind = iota
	MenuCollection
	MenuQuit
)

// MenuItem is one selectable main menu entry.
type MenuItem struct {
	Kind   MenuItemKind
	Title  string
	Hint   string
	GameID string // Set for MenuPlay
	View   View   // Set for MenuCollection
}

// mainMenuItems lists every registered game mode, then the collection
// screens, then Quit.
func mainMenuItems() []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+len(allViews)+1)

	for _, g := range games {
		items = append(items, MenuItem{Kind: MenuPlay, Title: "Play " + g.Title, Hint: g.Description, GameID: g.ID})
	}
	for _, v := range allViews {
		items = append(items, MenuItem{Kind: MenuCollection, Title: v.Title(), Hint: v.Hint(), View: v})
	}
	return append(items, MenuItem{Kind: MenuQuit, Title: "Quit", Hint: "Progress is saved after every spin"})
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	deps      Deps
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a new menu model.
func NewMenuModel(deps Deps, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     mainMenuItems(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		deps:      deps,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Kind == MenuQuit {
			m.quitting = true
			return m, tea.Quit
		}
		m.selected = &selected
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("R U N E   F O R G E"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.statusLine()), m.width))
	b.WriteString("\n\n")

	var list strings.Builder
	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = accentStyle.Render("> " + item.Title)
		}
		list.WriteString(line)
		if i < len(m.items)-1 {
			list.WriteString("\n")
		}
	}
	b.WriteString(centerText(panelStyle.Render(list.String()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.items[m.cursor].Hint), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// statusLine summarizes the player's progress.
func (m MenuModel) statusLine() string {
	if m.deps.Progress == nil {
		return "Spin the rings, match the runes"
	}
	s := m.deps.Progress.Snapshot()
	line := fmt.Sprintf("%s  |  Energy %d  |  Level %d", profileName(m.deps.Profile), s.TotalEnergy, s.CurrentLevel)
	return line
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

func profileName(p string) string {
	if p == "" {
		return "default"
	}
	return p
}

// centerText centers a possibly multi-line, possibly styled block.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	pad := strings.Repeat(" ", (width-w)/2)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
