package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/theme"
)

// accentChoices are the selectable accent colors
var accentChoices = []string{"205", "39", "76", "214", "170", "117"}

// ThemeModel edits and persists the display preferences
type ThemeModel struct {
	app         *app.App
	current     theme.Theme
	accentIndex int
	statusMsg   string
	err         error
}

type themeSavedMsg struct {
	err error
}

// NewThemeModel creates a new theme screen model
func NewThemeModel(a *app.App) tea.Model {
	m := &ThemeModel{app: a}
	m.current = a.Theme.Load(context.Background())
	for i, c := range accentChoices {
		if c == m.current.Accent {
			m.accentIndex = i
			break
		}
	}
	return m
}

func (m *ThemeModel) Init() tea.Cmd {
	return nil
}

func (m *ThemeModel) saveTheme() tea.Cmd {
	t := m.current
	return func() tea.Msg {
		err := m.app.Theme.Save(context.Background(), t)
		return themeSavedMsg{err: err}
	}
}

func (m *ThemeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = "Theme saved"
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		switch {
		case msg.String() == "D":
			m.current.Dark = !m.current.Dark
			ApplyTheme(m.current.Palette())
			return m, m.saveTheme()

		case key.Matches(msg, DefaultKeyMap.Left):
			m.accentIndex = (m.accentIndex - 1 + len(accentChoices)) % len(accentChoices)
			m.current.Accent = accentChoices[m.accentIndex]
			ApplyTheme(m.current.Palette())
			return m, m.saveTheme()

		case key.Matches(msg, DefaultKeyMap.Right):
			m.accentIndex = (m.accentIndex + 1) % len(accentChoices)
			m.current.Accent = accentChoices[m.accentIndex]
			ApplyTheme(m.current.Palette())
			return m, m.saveTheme()
		}
	}

	return m, nil
}

func (m *ThemeModel) View() string {
	var s string
	s += titleStyle.Render("Theme") + "\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n"
	}
	s += "\n"

	mode := "Light"
	if m.current.Dark {
		mode = "Dark"
	}
	s += fmt.Sprintf("  %-12s %s\n", "Mode:", mode)

	swatch := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.current.Accent)).
		Render("██████")
	s += fmt.Sprintf("  %-12s %s  < %s >\n", "Accent:", swatch, m.current.Accent)

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  D: toggle dark mode  ←/→: change accent")
	return s
}
