package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
)

type billingMode int

const (
	billingModeView billingMode = iota
	billingModeEdit
)

// billing form field indices
const (
	billingFieldRate = iota
	billingFieldTax
	billingFieldDiscountType
	billingFieldDiscountValue
	billingFieldCount
)

// BillingModel edits the hourly rate, tax, and discount settings
type BillingModel struct {
	app          *app.App
	mode         billingMode
	fields       []textinput.Model
	fieldFocus   int
	discountType domain.DiscountType
	err          error
	statusMsg    string
}

type billingSavedMsg struct {
	err error
}

// IsCapturingInput returns true while the form is being edited
func (m *BillingModel) IsCapturingInput() bool {
	return m.mode == billingModeEdit
}

// NewBillingModel creates a new billing screen model
func NewBillingModel(a *app.App) tea.Model {
	return &BillingModel{app: a}
}

func (m *BillingModel) Init() tea.Cmd {
	return nil
}

func (m *BillingModel) openForm() tea.Cmd {
	billing := m.app.Documents.Document().Billing

	m.fields = make([]textinput.Model, 3)
	for i := range m.fields {
		m.fields[i] = textinput.New()
		m.fields[i].CharLimit = 12
		m.fields[i].Width = 15
	}
	m.fields[0].Placeholder = "75.00"
	m.fields[0].SetValue(billing.HourlyRate.String())
	m.fields[1].Placeholder = "8.5"
	m.fields[1].SetValue(billing.TaxRatePercent.String())
	m.fields[2].Placeholder = "0"
	m.fields[2].SetValue(billing.DiscountValue.String())

	m.discountType = billing.DiscountType
	m.mode = billingModeEdit
	m.fieldFocus = billingFieldRate
	return m.fields[0].Focus()
}

// formInputIndex maps a form slot to its textinput slot, skipping the
// discount type selector
func formInputIndex(focus int) int {
	switch focus {
	case billingFieldRate:
		return 0
	case billingFieldTax:
		return 1
	case billingFieldDiscountValue:
		return 2
	}
	return -1
}

func (m *BillingModel) focusField(idx int) tea.Cmd {
	if in := formInputIndex(m.fieldFocus); in >= 0 {
		m.fields[in].Blur()
	}
	m.fieldFocus = idx
	if in := formInputIndex(idx); in >= 0 {
		return m.fields[in].Focus()
	}
	return nil
}

// parseAmount accepts an empty value as zero
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func (m *BillingModel) saveForm() tea.Cmd {
	rateStr := m.fields[0].Value()
	taxStr := m.fields[1].Value()
	discountStr := m.fields[2].Value()
	discountType := m.discountType

	return func() tea.Msg {
		rate, err := parseAmount(rateStr)
		if err != nil {
			return billingSavedMsg{err: fmt.Errorf("invalid hourly rate: %s", rateStr)}
		}
		tax, err := parseAmount(taxStr)
		if err != nil {
			return billingSavedMsg{err: fmt.Errorf("invalid tax rate: %s", taxStr)}
		}
		discount, err := parseAmount(discountStr)
		if err != nil {
			return billingSavedMsg{err: fmt.Errorf("invalid discount value: %s", discountStr)}
		}

		err = m.app.Documents.SetBilling(context.Background(), domain.BillingParameters{
			HourlyRate:     rate,
			TaxRatePercent: tax,
			DiscountType:   discountType,
			DiscountValue:  discount,
		})
		return billingSavedMsg{err: err}
	}
}

func (m *BillingModel) toggleDiscountType() {
	if m.discountType == domain.DiscountPercentage {
		m.discountType = domain.DiscountFixed
	} else {
		m.discountType = domain.DiscountPercentage
	}
}

func (m *BillingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		return m, nil

	case JumpToFieldMsg:
		return m, m.openForm()

	case billingSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = billingModeView
		m.statusMsg = "Billing settings saved"
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""

		if m.mode == billingModeView {
			switch {
			case key.Matches(msg, DefaultKeyMap.Edit), key.Matches(msg, DefaultKeyMap.Select):
				return m, m.openForm()
			}
			return m, nil
		}

		// Edit mode
		switch msg.String() {
		case "esc":
			m.mode = billingModeView
			m.err = nil
			return m, nil

		case "tab", "down":
			return m, m.focusField((m.fieldFocus + 1) % billingFieldCount)

		case "shift+tab", "up":
			return m, m.focusField((m.fieldFocus - 1 + billingFieldCount) % billingFieldCount)

		case "left", "right":
			if m.fieldFocus == billingFieldDiscountType {
				m.toggleDiscountType()
				return m, nil
			}

		case "enter":
			if m.fieldFocus == billingFieldCount-1 {
				return m, m.saveForm()
			}
			return m, m.focusField(m.fieldFocus + 1)

		case "ctrl+s":
			return m, m.saveForm()
		}

		if in := formInputIndex(m.fieldFocus); in >= 0 {
			var cmd tea.Cmd
			m.fields[in], cmd = m.fields[in].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m *BillingModel) View() string {
	if m.mode == billingModeEdit {
		return m.viewForm()
	}
	return m.viewRead()
}

func (m *BillingModel) viewRead() string {
	billing := m.app.Documents.Document().Billing
	totals := m.app.Documents.Totals()

	var s string
	s += titleStyle.Render("Billing") + "\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n"
	}
	s += "\n"

	discountLabel := "Discount (%):"
	if billing.DiscountType == domain.DiscountFixed {
		discountLabel = "Discount ($):"
	}

	s += fmt.Sprintf("  %-18s %s\n", "Hourly Rate:", domain.FormatMoney(billing.HourlyRate))
	s += fmt.Sprintf("  %-18s %s%%\n", "Tax Rate:", billing.TaxRatePercent.String())
	s += fmt.Sprintf("  %-18s %s\n\n", discountLabel, billing.DiscountValue.String())

	s += subtitleStyle.Render(fmt.Sprintf("  %-18s %s", "Subtotal:", domain.FormatMoney(totals.Subtotal))) + "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  %-18s %s", "Tax:", domain.FormatMoney(totals.TaxAmount))) + "\n"
	s += subtitleStyle.Render(fmt.Sprintf("  %-18s %s", "Discount:", domain.FormatMoney(totals.DiscountAmount))) + "\n"
	s += totalValueStyle.Render(fmt.Sprintf("  %-18s %s", "Total:", domain.FormatMoney(totals.GrandTotal))) + "\n"

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  e/enter: edit")
	return s
}

func (m *BillingModel) viewForm() string {
	var s string
	s += titleStyle.Render("Edit Billing") + "\n\n"

	labels := []string{"Hourly Rate:", "Tax Rate (%):", "Discount Type:", "Discount Value:"}
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}

		var value string
		if i == billingFieldDiscountType {
			value = fmt.Sprintf("< %s >", m.discountType)
		} else {
			value = m.fields[formInputIndex(i)].View()
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), value)
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab: next field  ←/→: change discount type  ctrl+s: save  esc: cancel")
	return s
}
