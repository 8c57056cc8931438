package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenLedger Screen = iota
	ScreenDetails
	ScreenBilling
	ScreenNotes
	ScreenReport
	ScreenPreview
	ScreenTheme
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenLedger:
		return "Services"
	case ScreenDetails:
		return "Invoice Details"
	case ScreenBilling:
		return "Billing"
	case ScreenNotes:
		return "Notes"
	case ScreenReport:
		return "Validation Report"
	case ScreenPreview:
		return "Preview"
	case ScreenTheme:
		return "Theme"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	notes         chan domain.Notification
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	ledger      tea.Model
	details     tea.Model
	billing     tea.Model
	notesScreen tea.Model
	report      tea.Model
	preview     tea.Model
	themeScreen tea.Model

	// Last notification shown in the status line
	note *domain.Notification

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App, notes chan domain.Notification) Model {
	ledger := NewLedgerModel(a)
	return Model{
		app:           a,
		notes:         notes,
		currentScreen: ScreenLedger,
		ledger:        ledger,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.waitForNotification(),
	}
	if m.ledger != nil {
		cmds = append(cmds, m.ledger.Init())
	}
	return tea.Batch(cmds...)
}

// waitForNotification blocks on the service notification channel
func (m *Model) waitForNotification() tea.Cmd {
	return func() tea.Msg {
		return notificationMsg{note: <-m.notes}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenLedger:
		if m.ledger == nil {
			m.ledger = NewLedgerModel(m.app)
			return m.ledger.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenDetails:
		if m.details == nil {
			m.details = NewDetailsModel(m.app)
			return m.details.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenBilling:
		if m.billing == nil {
			m.billing = NewBillingModel(m.app)
			return m.billing.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenNotes:
		if m.notesScreen == nil {
			m.notesScreen = NewNotesModel(m.app)
			return m.notesScreen.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenReport:
		if m.report == nil {
			m.report = NewReportModel(m.app)
			return m.report.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenPreview:
		if m.preview == nil {
			m.preview = NewPreviewModel(m.app)
			return m.preview.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenTheme:
		if m.themeScreen == nil {
			m.themeScreen = NewThemeModel(m.app)
			return m.themeScreen.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreen returns the model for the current screen
func (m *Model) activeScreen() tea.Model {
	switch m.currentScreen {
	case ScreenLedger:
		return m.ledger
	case ScreenDetails:
		return m.details
	case ScreenBilling:
		return m.billing
	case ScreenNotes:
		return m.notesScreen
	case ScreenReport:
		return m.report
	case ScreenPreview:
		return m.preview
	case ScreenTheme:
		return m.themeScreen
	}
	return nil
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// setActiveScreen stores an updated screen model back into its slot
func (m *Model) setActiveScreen(updated tea.Model) {
	switch m.currentScreen {
	case ScreenLedger:
		m.ledger = updated
	case ScreenDetails:
		m.details = updated
	case ScreenBilling:
		m.billing = updated
	case ScreenNotes:
		m.notesScreen = updated
	case ScreenReport:
		m.report = updated
	case ScreenPreview:
		m.preview = updated
	case ScreenTheme:
		m.themeScreen = updated
	}
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Clear the status line on any keypress
		m.note = nil

		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Services):
				m.currentScreen = ScreenLedger
				return m, m.initScreen(ScreenLedger)

			case key.Matches(msg, DefaultKeyMap.Invoice):
				m.currentScreen = ScreenDetails
				return m, m.initScreen(ScreenDetails)

			case key.Matches(msg, DefaultKeyMap.Billing):
				m.currentScreen = ScreenBilling
				return m, m.initScreen(ScreenBilling)

			case key.Matches(msg, DefaultKeyMap.Notes):
				m.currentScreen = ScreenNotes
				return m, m.initScreen(ScreenNotes)

			case key.Matches(msg, DefaultKeyMap.Report):
				m.currentScreen = ScreenReport
				return m, m.initScreen(ScreenReport)

			case key.Matches(msg, DefaultKeyMap.Preview):
				m.currentScreen = ScreenPreview
				return m, m.initScreen(ScreenPreview)

			case key.Matches(msg, DefaultKeyMap.Theme):
				m.currentScreen = ScreenTheme
				return m, m.initScreen(ScreenTheme)
			}
		}

	case notificationMsg:
		note := msg.note
		m.note = &note
		return m, m.waitForNotification()

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		return m, m.initScreen(msg.Screen)

	case JumpToFieldMsg:
		m.currentScreen = screenForField(msg.Field)
		initCmd := m.initScreen(m.currentScreen)
		forward := func() tea.Msg { return msg }
		return m, tea.Sequence(initCmd, forward)

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	if screen := m.activeScreen(); screen != nil {
		updated, c := screen.Update(msg)
		m.setActiveScreen(updated)
		cmd = c
	}

	return m, cmd
}

// screenForField maps a validation error field to the screen that edits it
func screenForField(f domain.Field) Screen {
	switch f {
	case domain.FieldHourlyRate:
		return ScreenBilling
	case domain.FieldServices, domain.FieldEntryDescription, domain.FieldEntryDate, domain.FieldEntryHours:
		return ScreenLedger
	default:
		return ScreenDetails
	}
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	// Header
	header := headerStyle.Render(fmt.Sprintf("invoicepro - %s", m.currentScreen.String()))

	// Footer with navigation keys
	footer := footerStyle.Render("[S]ervices  [I]nvoice  [B]illing  [N]otes  [R]eport  [P]review  [T]heme  [Q]uit")

	// Current screen content
	content := "Loading..."
	if screen := m.activeScreen(); screen != nil {
		content = screen.View()
	}

	// Status line: last notification or error
	statusDisplay := ""
	if m.note != nil {
		statusDisplay = severityStyle(string(m.note.Severity)).
			Render(fmt.Sprintf("\n%s", m.note.Message))
	} else if m.err != nil {
		statusDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, statusDisplay, divider, footer)

	// Wrap in border, sized to terminal
	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	ApplyTheme(a.Theme.Load(context.Background()).Palette())

	notes := make(chan domain.Notification, 16)
	a.Documents.SetNotifier(func(n domain.Notification) {
		select {
		case notes <- n:
		default:
		}
	})

	p := tea.NewProgram(New(a, notes), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
