package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
)

type detailsMode int

const (
	detailsModeView detailsMode = iota
	detailsModeEdit
)

// details form field indices
const (
	detailFieldBusinessName = iota
	detailFieldBusinessType
	detailFieldAddress
	detailFieldPhone
	detailFieldEmail
	detailFieldClientName
	detailFieldClientAddress
	detailFieldClientPhone
	detailFieldClientEmail
	detailFieldNumber
	detailFieldIssueDate
	detailFieldDueDate
	detailFieldCount
)

var detailLabels = []string{
	"Business Name:",
	"Business Type:",
	"Business Address:",
	"Business Phone:",
	"Business Email:",
	"Client Name:",
	"Client Address:",
	"Client Phone:",
	"Client Email:",
	"Invoice Number:",
	"Invoice Date (YYYY-MM-DD):",
	"Due Date (YYYY-MM-DD):",
}

// DetailsModel edits the provider, client, and invoice header fields
type DetailsModel struct {
	app        *app.App
	mode       detailsMode
	fields     []textinput.Model
	fieldFocus int
	err        error
	statusMsg  string
}

type detailsSavedMsg struct {
	err error
}

// IsCapturingInput returns true while the form is being edited
func (m *DetailsModel) IsCapturingInput() bool {
	return m.mode == detailsModeEdit
}

// NewDetailsModel creates a new invoice details screen model
func NewDetailsModel(a *app.App) tea.Model {
	return &DetailsModel{app: a}
}

func (m *DetailsModel) Init() tea.Cmd {
	return nil
}

// formValues reads the current document into an ordered value list
func (m *DetailsModel) formValues() []string {
	doc := m.app.Documents.Document()
	return []string{
		doc.Provider.Name,
		doc.Provider.BusinessType,
		doc.Provider.Address,
		doc.Provider.Phone,
		doc.Provider.Email,
		doc.Client.Name,
		doc.Client.Address,
		doc.Client.Phone,
		doc.Client.Email,
		doc.Details.Number,
		doc.Details.IssueDate,
		doc.Details.DueDate,
	}
}

func (m *DetailsModel) openForm() tea.Cmd {
	values := m.formValues()
	m.fields = make([]textinput.Model, detailFieldCount)
	for i := range m.fields {
		m.fields[i] = textinput.New()
		m.fields[i].CharLimit = 200
		m.fields[i].Width = 50
		m.fields[i].SetValue(values[i])
	}
	m.fields[detailFieldIssueDate].CharLimit = 10
	m.fields[detailFieldIssueDate].Width = 15
	m.fields[detailFieldDueDate].CharLimit = 10
	m.fields[detailFieldDueDate].Width = 15

	m.mode = detailsModeEdit
	m.fieldFocus = detailFieldBusinessName
	return m.fields[m.fieldFocus].Focus()
}

func (m *DetailsModel) focusField(idx int) tea.Cmd {
	m.fields[m.fieldFocus].Blur()
	m.fieldFocus = idx
	return m.fields[idx].Focus()
}

func (m *DetailsModel) saveForm() tea.Cmd {
	provider := domain.ProviderInfo{
		Name:         m.fields[detailFieldBusinessName].Value(),
		BusinessType: m.fields[detailFieldBusinessType].Value(),
		Address:      m.fields[detailFieldAddress].Value(),
		Phone:        m.fields[detailFieldPhone].Value(),
		Email:        m.fields[detailFieldEmail].Value(),
	}
	client := domain.ClientInfo{
		Name:    m.fields[detailFieldClientName].Value(),
		Address: m.fields[detailFieldClientAddress].Value(),
		Phone:   m.fields[detailFieldClientPhone].Value(),
		Email:   m.fields[detailFieldClientEmail].Value(),
	}
	details := domain.InvoiceDetails{
		Number:    m.fields[detailFieldNumber].Value(),
		IssueDate: m.fields[detailFieldIssueDate].Value(),
		DueDate:   m.fields[detailFieldDueDate].Value(),
	}

	return func() tea.Msg {
		ctx := context.Background()
		if err := m.app.Documents.SetProvider(ctx, provider); err != nil {
			return detailsSavedMsg{err: err}
		}
		if err := m.app.Documents.SetClient(ctx, client); err != nil {
			return detailsSavedMsg{err: err}
		}
		if err := m.app.Documents.SetDetails(ctx, details); err != nil {
			return detailsSavedMsg{err: err}
		}
		return detailsSavedMsg{}
	}
}

// fieldIndexFor maps a validation field to its form slot
func fieldIndexFor(f domain.Field) int {
	switch f {
	case domain.FieldBusinessName:
		return detailFieldBusinessName
	case domain.FieldBusinessType:
		return detailFieldBusinessType
	case domain.FieldAddress:
		return detailFieldAddress
	case domain.FieldPhone:
		return detailFieldPhone
	case domain.FieldEmail:
		return detailFieldEmail
	case domain.FieldClientName:
		return detailFieldClientName
	case domain.FieldClientAddress:
		return detailFieldClientAddress
	case domain.FieldClientPhone:
		return detailFieldClientPhone
	case domain.FieldClientEmail:
		return detailFieldClientEmail
	case domain.FieldInvoiceNumber:
		return detailFieldNumber
	case domain.FieldIssueDate:
		return detailFieldIssueDate
	case domain.FieldDueDate:
		return detailFieldDueDate
	}
	return detailFieldBusinessName
}

func (m *DetailsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case JumpToFieldMsg:
		openCmd := m.openForm()
		return m, tea.Batch(openCmd, m.focusField(fieldIndexFor(msg.Field)))

	case detailsSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = detailsModeView
		m.statusMsg = "Details saved"
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		if m.mode == detailsModeView {
			switch {
			case key.Matches(msg, DefaultKeyMap.Edit), key.Matches(msg, DefaultKeyMap.Select):
				return m, m.openForm()
			}
			return m, nil
		}

		// Edit mode
		switch msg.String() {
		case "esc":
			m.mode = detailsModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			return m, m.focusField((m.fieldFocus + 1) % detailFieldCount)

		case "shift+tab", "up":
			return m, m.focusField((m.fieldFocus - 1 + detailFieldCount) % detailFieldCount)

		case "enter":
			if m.fieldFocus == detailFieldCount-1 {
				return m, m.saveForm()
			}
			return m, m.focusField(m.fieldFocus + 1)

		case "ctrl+s":
			return m, m.saveForm()
		}

		var cmd tea.Cmd
		m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *DetailsModel) View() string {
	if m.mode == detailsModeEdit {
		return m.viewForm()
	}
	return m.viewRead()
}

func (m *DetailsModel) viewRead() string {
	var s string
	s += titleStyle.Render("Invoice Details") + "\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n"
	}
	s += "\n"

	values := m.formValues()
	for i, label := range detailLabels {
		value := values[i]
		if value == "" {
			value = subtitleStyle.Render("(empty)")
		}
		s += fmt.Sprintf("  %-28s %s\n", label, value)
		if i == detailFieldEmail || i == detailFieldClientEmail {
			s += "\n"
		}
	}

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  e/enter: edit")
	return s
}

func (m *DetailsModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Invoice Details") + "\n\n"

	for i, label := range detailLabels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%-30s %s\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")
	return s
}
