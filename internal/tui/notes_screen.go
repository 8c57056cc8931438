package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicepro/internal/app"
)

type notesMode int

const (
	notesModeView notesMode = iota
	notesModeEdit
)

// NotesModel edits the free-form notes block at the bottom of the invoice
type NotesModel struct {
	app       *app.App
	mode      notesMode
	input     textarea.Model
	err       error
	statusMsg string
}

type notesSavedMsg struct {
	err error
}

// IsCapturingInput returns true while the notes are being edited
func (m *NotesModel) IsCapturingInput() bool {
	return m.mode == notesModeEdit
}

// NewNotesModel creates a new notes screen model
func NewNotesModel(a *app.App) tea.Model {
	return &NotesModel{app: a}
}

func (m *NotesModel) Init() tea.Cmd {
	return nil
}

func (m *NotesModel) openEditor() tea.Cmd {
	ta := textarea.New()
	ta.Placeholder = "Payment terms, thank-you note..."
	ta.CharLimit = 2000
	ta.SetWidth(60)
	ta.SetHeight(8)
	ta.SetValue(m.app.Documents.Document().Notes)
	m.input = ta
	m.mode = notesModeEdit
	return m.input.Focus()
}

func (m *NotesModel) saveNotes() tea.Cmd {
	notes := m.input.Value()
	return func() tea.Msg {
		err := m.app.Documents.SetNotes(context.Background(), notes)
		return notesSavedMsg{err: err}
	}
}

func (m *NotesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case notesSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = notesModeView
		m.statusMsg = "Notes saved"
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		if m.mode == notesModeView {
			switch {
			case key.Matches(msg, DefaultKeyMap.Edit), key.Matches(msg, DefaultKeyMap.Select):
				return m, m.openEditor()
			}
			return m, nil
		}

		switch msg.String() {
		case "esc":
			m.mode = notesModeView
			m.err = nil
			return m, nil
		case "ctrl+s":
			return m, m.saveNotes()
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *NotesModel) View() string {
	var s string
	s += titleStyle.Render("Notes") + "\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n"
	}
	s += "\n"

	if m.mode == notesModeEdit {
		s += m.input.View() + "\n\n"
		s += helpStyle.Render("  ctrl+s: save  esc: cancel")
		return s
	}

	notes := m.app.Documents.Document().Notes
	if notes == "" {
		s += subtitleStyle.Render("  No notes yet. Press 'e' to add some.") + "\n"
	} else {
		s += notes + "\n"
	}

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  e/enter: edit")
	return s
}
