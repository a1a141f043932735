package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/runeforge/internal/games/forge"
	"github.com/vovakirdan/runeforge/internal/progression"
	"github.com/vovakirdan/runeforge/internal/storage"
)

const maxSpins = 100 // Spin history rows to load

// View is one collection screen.
type View int

const (
	ViewLevels View = iota
	ViewUpgrades
	ViewArtifacts
	ViewAchievements
	ViewSettings
	ViewSpins
)

var allViews = []View{ViewLevels, ViewUpgrades, ViewArtifacts, ViewAchievements, ViewSettings, ViewSpins}

// Title returns the menu and tab label.
func (v View) Title() string {
	switch v {
	case ViewLevels:
		return "Levels"
	case ViewUpgrades:
		return "Upgrades"
	case ViewArtifacts:
		return "Artifacts"
	case ViewAchievements:
		return "Achievements"
	case ViewSettings:
		return "Settings"
	case ViewSpins:
		return "Spin history"
	}
	return "Unknown"
}

// Hint is the menu blurb for the tab.
func (v View) Hint() string {
	switch v {
	case ViewLevels:
		return "Pick any level you have reached"
	case ViewUpgrades:
		return "Choose a forge background"
	case ViewArtifacts:
		return "Relics found along the way"
	case ViewAchievements:
		return "Milestones and how to reach them"
	case ViewSettings:
		return "Sound and music"
	case ViewSpins:
		return "Your latest spins"
	}
	return ""
}

// CollectionKeyMap defines the key bindings for collection screens.
type CollectionKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CollectionKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k CollectionKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.NextTab, k.PrevTab, k.Back, k.Quit},
	}
}

// DefaultCollectionKeyMap returns default key bindings.
func DefaultCollectionKeyMap() CollectionKeyMap {
	return CollectionKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "choose"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// CollectionModel shows levels, upgrades, artifacts, achievements,
// settings and spin history, one tab at a time.
type CollectionModel struct {
	view      View
	deps      Deps
	state     progression.State
	spins     []storage.SpinRecord
	table     table.Model
	help      help.Model
	keys      CollectionKeyMap
	width     int
	height    int
	status    string
	quitting  bool
	goingBack bool
}

// NewCollectionModel opens the given tab.
func NewCollectionModel(deps Deps, view View, width, height int) CollectionModel {
	h := help.New()
	h.Width = width

	m := CollectionModel{
		view:   view,
		deps:   deps,
		keys:   DefaultCollectionKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// reload refreshes data for the current tab and rebuilds the table.
func (m *CollectionModel) reload() {
	if m.deps.Progress != nil {
		m.state = m.deps.Progress.Snapshot()
	} else {
		m.state = progression.NewState()
	}

	m.spins = nil
	if m.view == ViewSpins && m.deps.Store != nil {
		spins, err := m.deps.Store.RecentSpins(profileName(m.deps.Profile), maxSpins)
		if err != nil {
			m.deps.logger().Warn("cannot load spin history", "err", err)
		}
		m.spins = spins
	}

	cursor := m.table.Cursor()
	m.table = m.createTable()
	m.table.SetRows(rowsFor(m.view, m.state, m.spins))
	m.table.SetCursor(cursor)
}

// createTable creates a table sized for the current tab.
func (m *CollectionModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(columnsFor(m.view, m.width-6)),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// columnsFor returns the table columns of a tab. The last column takes
// whatever width is left.
func columnsFor(v View, width int) []table.Column {
	var cols []table.Column
	switch v {
	case ViewLevels:
		cols = []table.Column{{Title: "Level", Width: 8}, {Title: "Energy", Width: 10}, {Title: "Status", Width: 14}}
	case ViewUpgrades:
		cols = []table.Column{{Title: "Background", Width: 12}, {Title: "Unlocks at", Width: 12}, {Title: "Status", Width: 14}}
	case ViewArtifacts:
		cols = []table.Column{{Title: "Artifact", Width: 26}, {Title: "Energy", Width: 8}, {Title: "Legend", Width: 30}}
	case ViewAchievements:
		cols = []table.Column{{Title: "Achievement", Width: 20}, {Title: "Goal", Width: 32}, {Title: "Done", Width: 6}}
	case ViewSettings:
		cols = []table.Column{{Title: "Setting", Width: 12}, {Title: "Value", Width: 8}}
	case ViewSpins:
		cols = []table.Column{{Title: "#", Width: 6}, {Title: "Runes", Width: 16}, {Title: "Groups", Width: 10}, {Title: "Energy", Width: 8}, {Title: "When", Width: 14}}
	}

	used := 0
	for _, c := range cols[:len(cols)-1] {
		used += c.Width + 2
	}
	if rest := width - used; rest > cols[len(cols)-1].Width {
		cols[len(cols)-1].Width = min(rest, 60)
	}
	return cols
}

// rowsFor renders a tab's rows from the progression state and history.
func rowsFor(v View, s progression.State, spins []storage.SpinRecord) []table.Row {
	switch v {
	case ViewLevels:
		rows := make([]table.Row, len(s.Levels))
		for i, l := range s.Levels {
			status := "Locked"
			switch {
			case l.ID == s.CurrentLevel:
				status = "Current"
			case l.IsUnlocked:
				status = "Unlocked"
			}
			rows[i] = table.Row{fmt.Sprintf("%d", l.ID), fmt.Sprintf("%d", l.EnergyRequired), status}
		}
		return rows

	case ViewUpgrades:
		rows := make([]table.Row, len(s.Backgrounds))
		for i, b := range s.Backgrounds {
			status := "Locked"
			switch {
			case b.ID == s.SelectedBackground:
				status = "Selected"
			case b.IsUnlocked:
				status = "Unlocked"
			}
			rows[i] = table.Row{fmt.Sprintf("%d", b.ID), fmt.Sprintf("Level %d", b.UnlockLevel), status}
		}
		return rows

	case ViewArtifacts:
		rows := make([]table.Row, len(s.Artifacts))
		for i, a := range s.Artifacts {
			name, legend := "???", "Not yet found"
			if a.IsUnlocked {
				name, legend = a.Name, a.Legend
			}
			rows[i] = table.Row{name, fmt.Sprintf("%d", a.EnergyRequired), legend}
		}
		return rows

	case ViewAchievements:
		rows := make([]table.Row, len(s.Achievements))
		for i, a := range s.Achievements {
			done := ""
			if a.IsCompleted {
				done = "yes"
			}
			rows[i] = table.Row{a.Title, a.Description, done}
		}
		return rows

	case ViewSettings:
		return []table.Row{
			{"Sound", onOff(s.Settings.SoundEnabled)},
			{"Music", onOff(s.Settings.MusicEnabled)},
		}

	case ViewSpins:
		rows := make([]table.Row, len(spins))
		for i, sp := range spins {
			rows[i] = table.Row{
				fmt.Sprintf("%d", sp.ID),
				glyphs(sp.Runes),
				joinInts(sp.Groups),
				fmt.Sprintf("%d", sp.Energy),
				sp.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func glyphs(runes []int) string {
	var sb strings.Builder
	for i, r := range runes {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteRune(forge.Glyph(r))
	}
	return sb.String()
}

func joinInts(v []int) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, "+")
}

// Init initializes the collection model.
func (m CollectionModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the collection screens.
func (m CollectionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil

		case key.Matches(msg, m.keys.Select):
			m.activate(m.table.Cursor())
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *CollectionModel) switchTab(delta int) {
	n := len(allViews)
	m.view = View((int(m.view) + delta + n) % n)
	m.status = ""
	m.table.SetCursor(0)
	m.reload()
}

// activate applies the choice on the selected row: pick a level, pick
// a background or flip a setting.
func (m *CollectionModel) activate(row int) {
	p := m.deps.Progress
	if p == nil {
		return
	}

	var err error
	switch m.view {
	case ViewLevels:
		if row < len(m.state.Levels) {
			var ok bool
			id := m.state.Levels[row].ID
			if ok, err = p.SetCurrentLevel(id); ok {
				m.status = fmt.Sprintf("Level %d selected", id)
			} else if err == nil {
				m.status = "That level is still locked"
			}
		}

	case ViewUpgrades:
		if row < len(m.state.Backgrounds) {
			var ok bool
			id := m.state.Backgrounds[row].ID
			if ok, err = p.SelectBackground(id); ok {
				m.status = fmt.Sprintf("Background %d selected", id)
			} else if err == nil {
				m.status = "That background is still locked"
			}
		}

	case ViewSettings:
		switch row {
		case 0:
			err = p.SetSound(!m.state.Settings.SoundEnabled)
		case 1:
			var ok bool
			if ok, err = p.SetMusic(!m.state.Settings.MusicEnabled); !ok && err == nil {
				m.status = "Turn sound on first"
			}
		}
	}

	if err != nil {
		m.deps.logger().Error("cannot save progress", "err", err)
		m.status = "Could not save: " + err.Error()
	}
	m.reload()
}

// View renders the collection screen.
func (m CollectionModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render(strings.ToUpper(m.view.Title())), m.width))
	b.WriteString("\n")
	summary := fmt.Sprintf("Energy %d  |  Level %d", m.state.TotalEnergy, m.state.CurrentLevel)
	b.WriteString(centerText(dimStyle.Render(summary), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(centerText(accentStyle.Render(m.status), m.width))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m CollectionModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("130")).
		Padding(0, 1)

	tabs := make([]string, len(allViews))
	for i, v := range allViews {
		if v == m.view {
			tabs[i] = activeTabStyle.Render(v.Title())
		} else {
			tabs[i] = tabStyle.Render(v.Title())
		}
	}

	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", m.view.Title())
	}
	return line
}

// renderTableContent renders the table or an empty message.
func (m CollectionModel) renderTableContent() string {
	if len(m.table.Rows()) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No spins recorded yet.\nPlay a round to fill the history!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m CollectionModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m CollectionModel) IsQuitting() bool {
	return m.quitting
}
