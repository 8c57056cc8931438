package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
)

// ReportModel shows the validation report with jump-to-field navigation
type ReportModel struct {
	app    *app.App
	errs   []domain.ValidationError
	cursor int
	saved  bool
	err    error
}

type validationRunMsg struct {
	errs []domain.ValidationError
}

type invoiceSavedMsg struct {
	errs []domain.ValidationError
	err  error
}

// NewReportModel creates a new validation report screen model
func NewReportModel(a *app.App) tea.Model {
	return &ReportModel{app: a}
}

func (m *ReportModel) Init() tea.Cmd {
	return m.runValidation()
}

func (m *ReportModel) runValidation() tea.Cmd {
	return func() tea.Msg {
		return validationRunMsg{errs: m.app.Documents.Validate()}
	}
}

func (m *ReportModel) saveInvoice() tea.Cmd {
	return func() tea.Msg {
		errs, err := m.app.Documents.Save(context.Background())
		return invoiceSavedMsg{errs: errs, err: err}
	}
}

func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.saved = false
		return m, m.runValidation()

	case validationRunMsg:
		m.errs = msg.errs
		if m.cursor >= len(m.errs) {
			m.cursor = 0
		}
		return m, nil

	case invoiceSavedMsg:
		m.err = msg.err
		m.errs = msg.errs
		m.saved = msg.err == nil && len(msg.errs) == 0
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.errs)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.errs) > 0 && m.cursor < len(m.errs) {
				e := m.errs[m.cursor]
				return m, func() tea.Msg {
					return JumpToFieldMsg{Field: e.Field, EntryID: e.EntryID}
				}
			}
		case msg.String() == "w":
			return m, m.saveInvoice()
		}
	}

	return m, nil
}

func (m *ReportModel) View() string {
	var s string
	s += titleStyle.Render("Validation Report") + "\n\n"

	if len(m.errs) == 0 {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  ✓ Invoice is valid and ready to export") + "\n"
		if m.saved {
			s += lipgloss.NewStyle().Foreground(successColor).
				Render("  ✓ Invoice saved") + "\n"
		}
		s += "\n" + helpStyle.Render("  w: save invoice  p: preview")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf("  %d problem(s) found", len(m.errs))) + "\n\n"

	for i, e := range m.errs {
		indicator := "  "
		line := fmt.Sprintf("%-20s %s", e.Field.Label(), e.Message)
		if i == m.cursor {
			indicator = "> "
			line = selectedStyle.Render(line)
		} else {
			line = lipgloss.NewStyle().Foreground(errorColor).Render(line)
		}
		s += fmt.Sprintf("  %s%s\n", indicator, line)
	}

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: go to field  w: save invoice")
	return s
}
