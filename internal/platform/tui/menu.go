package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/levels"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// LevelChoice is a selectable level.
type LevelChoice struct {
	ID   string
	Name string
}

// menuKeys documents the menu controls in the help bar.
type menuKeys struct {
	Move   key.Binding
	Level  key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Level, k.Select, k.Scores, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultMenuKeys = menuKeys{
	Move:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "mode")),
	Level:  key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "level")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
	Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// MenuModel picks the mode and level of the next battle.
type MenuModel struct {
	modes          []registry.GameInfo
	levels         []LevelChoice
	cursor         int
	level          int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	help           help.Model
	quitting       bool
	selected       bool
	openScoreboard bool
}

// NewMenuModel creates a menu over the registered modes and the given
// levels. levelID preselects a level when present.
func NewMenuModel(choices []LevelChoice, levelID string, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		modes:     registry.List(),
		levels:    choices,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	for i, l := range choices {
		if l.ID == levelID {
			m.level = i
		}
	}
	return m
}

// LevelChoices lists the levels a loader can see.
func LevelChoices(loader *levels.Loader) ([]LevelChoice, error) {
	all, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	out := make([]LevelChoice, len(all))
	for i, l := range all {
		out[i] = LevelChoice{ID: l.ID, Name: l.Name}
	}
	return out, nil
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
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = core.Clamp(m.cursor-1, 0, max(len(m.modes)-1, 0))
	case MenuActionDown:
		m.cursor = core.Clamp(m.cursor+1, 0, max(len(m.modes)-1, 0))
	case MenuActionLeft:
		if len(m.levels) > 0 {
			m.level = (m.level + len(m.levels) - 1) % len(m.levels)
		}
	case MenuActionRight:
		if len(m.levels) > 0 {
			m.level = (m.level + 1) % len(m.levels)
		}
	case MenuActionSelect:
		if len(m.modes) > 0 {
			m.selected = true
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  T A N K S  "), m.width))
	b.WriteString("\n\n")

	for i, mode := range m.modes {
		line := "  " + mode.Title
		if i == m.cursor {
			line = activeStyle.Render("> " + mode.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if lvl, ok := m.SelectedLevel(); ok {
		b.WriteString(centerText(fmt.Sprintf("< Level: %s (%s) >", lvl.Name, lvl.ID), m.width))
	} else {
		b.WriteString(centerText(dimStyle.Render("no levels found"), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(defaultMenuKeys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// SelectedMode returns the mode under the cursor.
func (m MenuModel) SelectedMode() (registry.GameInfo, bool) {
	if len(m.modes) == 0 {
		return registry.GameInfo{}, false
	}
	return m.modes[m.cursor], true
}

// SelectedLevel returns the level under the cursor.
func (m MenuModel) SelectedLevel() (LevelChoice, bool) {
	if len(m.levels) == 0 {
		return LevelChoice{}, false
	}
	return m.levels[m.level], true
}

// Chosen reports whether the user started a battle.
func (m MenuModel) Chosen() bool {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	LevelID         string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes the final menu state.
func (m MenuModel) Result() MenuResult {
	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Chosen():
		mode, _ := m.SelectedMode()
		result.GameID = mode.ID
		if lvl, ok := m.SelectedLevel(); ok {
			result.LevelID = lvl.ID
		}
	default:
		result.Quit = true
	}
	return result
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(choices []LevelChoice, levelID string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(choices, levelID, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
