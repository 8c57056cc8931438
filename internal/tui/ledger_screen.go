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

type ledgerMode int

const (
	ledgerModeList          ledgerMode = iota
	ledgerModeForm                     // text input form for entry fields
	ledgerModeConfirmDelete            // y/n confirmation before delete
	ledgerModeConfirmAll               // y/n confirmation before confirm-all
)

// entry form field indices
const (
	ledgerFieldDescription = iota
	ledgerFieldDate
	ledgerFieldHours
	ledgerFieldCategory
	ledgerFieldCount
)

// LedgerModel displays the service entry list and hosts the entry form
type LedgerModel struct {
	app        *app.App
	cursor     int
	offset     int
	maxVisible int
	err        error
	statusMsg  string
	fieldErrs  []domain.ValidationError

	// Form state
	mode          ledgerMode
	fields        []textinput.Model
	fieldFocus    int
	categoryIndex int
	editingID     string

	// Set when the form save should be followed by a confirm
	confirmAfterSave bool
}

type entryUpdatedMsg struct {
	err error
}

type entryConfirmedMsg struct {
	fieldErrs []domain.ValidationError
	err       error
}

type entryDeletedMsg struct {
	err error
}

type entriesConfirmedMsg struct {
	result domain.ConfirmAllResult
	err    error
}

// IsCapturingInput returns true when the form or a confirmation prompt is active
func (m *LedgerModel) IsCapturingInput() bool {
	return m.mode != ledgerModeList
}

// NewLedgerModel creates a new services screen model
func NewLedgerModel(a *app.App) tea.Model {
	return &LedgerModel{
		app:        a,
		maxVisible: 12,
	}
}

func (m *LedgerModel) Init() tea.Cmd {
	return nil
}

func (m *LedgerModel) entries() []*domain.ServiceEntry {
	return m.app.Documents.Document().Ledger.Entries
}

func (m *LedgerModel) selectedEntry() *domain.ServiceEntry {
	entries := m.entries()
	if len(entries) == 0 || m.cursor >= len(entries) {
		return nil
	}
	return entries[m.cursor]
}

// openForm loads the entry's current values into the form
func (m *LedgerModel) openForm(entry *domain.ServiceEntry) tea.Cmd {
	m.editingID = entry.ID
	m.fields = make([]textinput.Model, ledgerFieldCount-1)

	m.fields[ledgerFieldDescription] = textinput.New()
	m.fields[ledgerFieldDescription].Placeholder = "Service description"
	m.fields[ledgerFieldDescription].CharLimit = 200
	m.fields[ledgerFieldDescription].Width = 50
	m.fields[ledgerFieldDescription].SetValue(entry.Description)

	m.fields[ledgerFieldDate] = textinput.New()
	m.fields[ledgerFieldDate].Placeholder = "2006-01-02"
	m.fields[ledgerFieldDate].CharLimit = 10
	m.fields[ledgerFieldDate].Width = 15
	m.fields[ledgerFieldDate].SetValue(entry.Date)

	m.fields[ledgerFieldHours] = textinput.New()
	m.fields[ledgerFieldHours].Placeholder = "2.5"
	m.fields[ledgerFieldHours].CharLimit = 8
	m.fields[ledgerFieldHours].Width = 10
	m.fields[ledgerFieldHours].SetValue(entry.Hours)

	m.categoryIndex = 0
	for i, c := range domain.Categories {
		if c == entry.Category {
			m.categoryIndex = i
			break
		}
	}

	m.mode = ledgerModeForm
	m.fieldFocus = ledgerFieldDescription
	return m.fields[ledgerFieldDescription].Focus()
}

// focusFormField moves focus to the given field index
func (m *LedgerModel) focusFormField(idx int) tea.Cmd {
	if m.fieldFocus < len(m.fields) {
		m.fields[m.fieldFocus].Blur()
	}
	m.fieldFocus = idx
	if idx < len(m.fields) {
		return m.fields[idx].Focus()
	}
	return nil
}

func (m *LedgerModel) saveForm() tea.Cmd {
	id := m.editingID
	desc := m.fields[ledgerFieldDescription].Value()
	date := m.fields[ledgerFieldDate].Value()
	hours := m.fields[ledgerFieldHours].Value()
	category := domain.Categories[m.categoryIndex]

	return func() tea.Msg {
		err := m.app.Documents.UpdateEntry(context.Background(), id, desc, date, hours, category)
		return entryUpdatedMsg{err: err}
	}
}

func (m *LedgerModel) confirmEntry(id string) tea.Cmd {
	return func() tea.Msg {
		fieldErrs, err := m.app.Documents.ConfirmEntry(context.Background(), id)
		return entryConfirmedMsg{fieldErrs: fieldErrs, err: err}
	}
}

func (m *LedgerModel) deleteEntry(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.app.Documents.DeleteEntry(context.Background(), id)
		return entryDeletedMsg{err: err}
	}
}

func (m *LedgerModel) confirmAll() tea.Cmd {
	return func() tea.Msg {
		result, err := m.app.Documents.ConfirmAll(context.Background())
		return entriesConfirmedMsg{result: result, err: err}
	}
}

func (m *LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ledgerModeForm:
		return m.updateForm(msg)
	case ledgerModeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case ledgerModeConfirmAll:
		return m.updateConfirmAll(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.clampCursor()
		return m, nil

	case JumpToFieldMsg:
		return m.jumpToField(msg)

	case entryConfirmedMsg:
		m.err = msg.err
		m.fieldErrs = msg.fieldErrs
		m.clampCursor()
		return m, nil

	case entryDeletedMsg:
		m.err = msg.err
		m.clampCursor()
		return m, nil

	case entriesConfirmedMsg:
		m.err = msg.err
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil
		m.fieldErrs = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.entries())-1 {
				m.cursor++
				if m.cursor >= m.offset+m.maxVisible {
					m.offset = m.cursor - m.maxVisible + 1
				}
			}
		case key.Matches(msg, DefaultKeyMap.Add):
			entry, err := m.app.Documents.AddEntry(context.Background())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.cursor = len(m.entries()) - 1
			return m, m.openForm(entry)

		case key.Matches(msg, DefaultKeyMap.Select), key.Matches(msg, DefaultKeyMap.Edit):
			entry := m.selectedEntry()
			if entry == nil {
				return m, nil
			}
			if entry.IsConfirmed() {
				// Unlock first, then edit
				if err := m.app.Documents.EditEntry(context.Background(), entry.ID); err != nil {
					m.err = err
					return m, nil
				}
			}
			return m, m.openForm(entry)

		case key.Matches(msg, DefaultKeyMap.Confirm):
			entry := m.selectedEntry()
			if entry == nil || entry.IsConfirmed() {
				return m, nil
			}
			return m, m.confirmEntry(entry.ID)

		case msg.String() == "C":
			m.mode = ledgerModeConfirmAll
			return m, nil

		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.selectedEntry() != nil {
				m.mode = ledgerModeConfirmDelete
			}
			return m, nil
		}
	}

	return m, nil
}

// jumpToField opens the form on the offending entry, or just highlights the
// list for ledger-level errors
func (m *LedgerModel) jumpToField(msg JumpToFieldMsg) (tea.Model, tea.Cmd) {
	if msg.EntryID == "" {
		return m, nil
	}
	for i, entry := range m.entries() {
		if entry.ID == msg.EntryID {
			m.cursor = i
			cmd := m.openForm(entry)
			switch msg.Field {
			case domain.FieldEntryDate:
				return m, m.focusFormField(ledgerFieldDate)
			case domain.FieldEntryHours:
				return m, m.focusFormField(ledgerFieldHours)
			}
			return m, cmd
		}
	}
	return m, nil
}

func (m *LedgerModel) clampCursor() {
	if n := len(m.entries()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

func (m *LedgerModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entryUpdatedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.confirmAfterSave = false
			return m, nil
		}
		m.mode = ledgerModeList
		m.statusMsg = "Service updated"
		if m.confirmAfterSave {
			m.confirmAfterSave = false
			m.statusMsg = ""
			return m, m.confirmEntry(m.editingID)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.mode = ledgerModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			return m, m.focusFormField((m.fieldFocus + 1) % ledgerFieldCount)

		case "shift+tab", "up":
			return m, m.focusFormField((m.fieldFocus - 1 + ledgerFieldCount) % ledgerFieldCount)

		case "left", "right":
			if m.fieldFocus == ledgerFieldCategory {
				n := len(domain.Categories)
				if msg.String() == "left" {
					m.categoryIndex = (m.categoryIndex - 1 + n) % n
				} else {
					m.categoryIndex = (m.categoryIndex + 1) % n
				}
				return m, nil
			}

		case "enter":
			// Enter on the last field saves and confirms the entry
			if m.fieldFocus == ledgerFieldCount-1 {
				m.confirmAfterSave = true
				return m, m.saveForm()
			}
			return m, m.focusFormField(m.fieldFocus + 1)

		case "ctrl+s":
			return m, m.saveForm()
		}
	}

	// Update the focused text input
	if m.fieldFocus < len(m.fields) {
		var cmd tea.Cmd
		m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *LedgerModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entryDeletedMsg:
		m.err = msg.err
		m.mode = ledgerModeList
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "y":
			entry := m.selectedEntry()
			m.mode = ledgerModeList
			if entry != nil {
				return m, m.deleteEntry(entry.ID)
			}
			return m, nil
		default:
			// Any other key cancels
			m.mode = ledgerModeList
			return m, nil
		}
	}
	return m, nil
}

func (m *LedgerModel) updateConfirmAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesConfirmedMsg:
		m.err = msg.err
		m.mode = ledgerModeList
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "y":
			m.mode = ledgerModeList
			return m, m.confirmAll()
		default:
			m.mode = ledgerModeList
			return m, nil
		}
	}
	return m, nil
}

func (m *LedgerModel) View() string {
	switch m.mode {
	case ledgerModeForm:
		return m.viewForm()
	case ledgerModeConfirmDelete:
		return m.viewConfirmDelete()
	case ledgerModeConfirmAll:
		return m.viewConfirmAll()
	default:
		return m.viewList()
	}
}

func (m *LedgerModel) viewConfirmDelete() string {
	entry := m.selectedEntry()
	desc := "(empty)"
	if entry != nil && entry.Description != "" {
		desc = truncateStr(entry.Description, 40)
	}

	var s string
	s += titleStyle.Render("Delete Service") + "\n\n"
	s += fmt.Sprintf("  %s\n\n", desc)
	s += lipgloss.NewStyle().Foreground(warningColor).Render("  Delete this service? (y/n)") + "\n"
	return s
}

func (m *LedgerModel) viewConfirmAll() string {
	var s string
	s += titleStyle.Render("Confirm All Services") + "\n\n"
	s += "  Complete draft services will be confirmed.\n"
	s += "  Incomplete services will be removed.\n\n"
	s += lipgloss.NewStyle().Foreground(warningColor).Render("  Continue? (y/n)") + "\n"
	return s
}

func (m *LedgerModel) viewList() string {
	var s string

	s += titleStyle.Render("Services") + "\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n"
	}

	entries := m.entries()
	totals := m.app.Documents.Totals()

	s += subtitleStyle.Render(fmt.Sprintf(
		"  %d services  |  %s hours  |  %s",
		len(entries), domain.FormatHours(totals.TotalHours), domain.FormatMoney(totals.GrandTotal),
	)) + "\n\n"

	// Column header
	s += subtitleStyle.Render(fmt.Sprintf(
		"   %-35s  %-12s  %-12s  %8s  %s",
		"Description", "Date", "Category", "Hours", "Status",
	)) + "\n"

	end := m.offset + m.maxVisible
	if end > len(entries) {
		end = len(entries)
	}

	for i := m.offset; i < end; i++ {
		s += m.renderEntry(entries[i], i == m.cursor) + "\n"
	}

	// Scroll indicators
	if m.offset > 0 {
		s += subtitleStyle.Render("  ... more above") + "\n"
	}
	if end < len(entries) {
		s += subtitleStyle.Render("  ... more below") + "\n"
	}

	// Totals block
	s += "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  %-12s %10s", "Subtotal", domain.FormatMoney(totals.Subtotal))) + "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  %-12s %10s", "Tax", domain.FormatMoney(totals.TaxAmount))) + "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  %-12s %10s", "Discount", domain.FormatMoney(totals.DiscountAmount))) + "\n"
	s += totalValueStyle.Render(fmt.Sprintf("  %-12s %10s", "Total", domain.FormatMoney(totals.GrandTotal))) + "\n"

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}
	for _, fe := range m.fieldErrs {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  %s", fe.Message)) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  a: add  enter: edit  c: confirm  C: confirm all  d: delete")

	return s
}

func (m *LedgerModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Service") + "\n\n"

	labels := []string{"Description:", "Date (YYYY-MM-DD):", "Hours:", "Category:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}

		var value string
		if i == ledgerFieldCategory {
			value = fmt.Sprintf("< %s >", domain.Categories[m.categoryIndex])
		} else {
			value = m.fields[i].View()
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), value)
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab: next field  ←/→: change category  enter: save+confirm  ctrl+s: save  esc: back")

	return s
}

func (m *LedgerModel) renderEntry(entry *domain.ServiceEntry, selected bool) string {
	desc := entry.Description
	if desc == "" {
		desc = "(new service)"
	}

	line := fmt.Sprintf(" %-35s  %-12s  %-12s  %8s  %s",
		truncateStr(desc, 35),
		entry.Date,
		entry.Category,
		entry.Hours,
		entry.Status,
	)

	if selected {
		return "  " + selectedStyle.Render(line)
	}
	if entry.IsConfirmed() {
		return "  " + confirmedStyle.Render(line)
	}
	return "  " + draftStyle.Render(line)
}
