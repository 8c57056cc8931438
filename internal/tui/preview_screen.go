package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andy/invoicepro/internal/app"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/service"
)

// PreviewModel renders the print projection and drives PDF export
type PreviewModel struct {
	app        *app.App
	view       *domain.PrintView
	errs       []domain.ValidationError
	err        error
	exportPath string
}

type previewBuiltMsg struct {
	view *domain.PrintView
	errs []domain.ValidationError
	err  error
}

type pdfExportedMsg struct {
	path string
	errs []domain.ValidationError
	err  error
}

// NewPreviewModel creates a new preview screen model
func NewPreviewModel(a *app.App) tea.Model {
	return &PreviewModel{app: a}
}

func (m *PreviewModel) Init() tea.Cmd {
	return m.buildView()
}

func (m *PreviewModel) buildView() tea.Cmd {
	return func() tea.Msg {
		view, errs, err := m.app.Printing.BuildView()
		return previewBuiltMsg{view: view, errs: errs, err: err}
	}
}

func (m *PreviewModel) exportPDF() tea.Cmd {
	return func() tea.Msg {
		path, errs, err := m.app.Printing.ExportPDF(context.Background(), "")
		return pdfExportedMsg{path: path, errs: errs, err: err}
	}
}

func (m *PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.exportPath = ""
		return m, m.buildView()

	case previewBuiltMsg:
		m.view = msg.view
		m.errs = msg.errs
		m.err = msg.err
		return m, nil

	case pdfExportedMsg:
		m.errs = msg.errs
		m.err = msg.err
		m.exportPath = msg.path
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "x" && m.view != nil {
			return m, m.exportPDF()
		}
	}

	return m, nil
}

func (m *PreviewModel) View() string {
	var s string
	s += titleStyle.Render("Invoice Preview") + "\n\n"

	if len(m.errs) > 0 {
		s += lipgloss.NewStyle().Foreground(warningColor).
			Render(fmt.Sprintf("  Invoice is not ready, %d problem(s). See the [R]eport screen.", len(m.errs))) + "\n"
		return s
	}
	if m.err != nil {
		if service.IsNothingToPrint(m.err) {
			s += subtitleStyle.Render("  No complete services to print. Confirm at least one service.") + "\n"
		} else {
			s += lipgloss.NewStyle().Foreground(errorColor).
				Render(fmt.Sprintf("  Error: %v", m.err)) + "\n"
		}
		return s
	}
	if m.view == nil {
		return s + "  Building preview..."
	}

	s += m.renderView()

	if m.exportPath != "" {
		s += "\n" + lipgloss.NewStyle().Foreground(successColor).
			Render(fmt.Sprintf("  ✓ Exported: %s", m.exportPath)) + "\n"
	}

	s += "\n" + helpStyle.Render("  x: export PDF")
	return s
}

func (m *PreviewModel) renderView() string {
	v := m.view
	var s string

	s += "  " + totalValueStyle.Render("INVOICE")
	if v.Number != "" {
		s += subtitleStyle.Render("  #"+v.Number)
	}
	s += "\n"
	if v.IssueDate != "" {
		s += fmt.Sprintf("  Date: %s\n", v.IssueDate)
	}
	if v.DueDate != "" {
		s += fmt.Sprintf("  Due: %s\n", v.DueDate)
	}
	if v.DateRange != "" {
		s += fmt.Sprintf("  Service Period: %s\n", v.DateRange)
	}
	s += "\n"

	if len(v.ProviderLines) > 0 {
		s += subtitleStyle.Render("  From:") + "\n"
		for _, line := range v.ProviderLines {
			s += "    " + line + "\n"
		}
	}
	if len(v.ClientLines) > 0 {
		s += subtitleStyle.Render("  Bill To:") + "\n"
		for _, line := range v.ClientLines {
			s += "    " + line + "\n"
		}
	}
	s += "\n"

	s += subtitleStyle.Render(fmt.Sprintf("  %-35s  %-12s  %-12s  %s", "Description", "Date", "Category", "Hours")) + "\n"
	s += "  " + strings.Repeat("-", 72) + "\n"
	for _, row := range v.Rows {
		s += fmt.Sprintf("  %-35s  %-12s  %-12s  %s\n",
			truncateStr(row.Description, 35), row.Date, row.Category, row.Hours)
	}
	s += "  " + strings.Repeat("-", 72) + "\n\n"

	s += fmt.Sprintf("  %-14s %10s\n", "Total Hours:", v.TotalHours)
	s += fmt.Sprintf("  %-14s %10s\n", "Subtotal:", v.Subtotal)
	s += fmt.Sprintf("  %-14s %10s\n", "Tax:", v.TaxAmount)
	s += fmt.Sprintf("  %-14s %10s\n", "Discount:", "-"+v.DiscountAmount)
	s += totalValueStyle.Render(fmt.Sprintf("  %-14s %10s", "Total:", v.GrandTotal)) + "\n"

	if v.Notes != "" {
		s += "\n" + subtitleStyle.Render("  Notes:") + "\n"
		s += "    " + v.Notes + "\n"
	}

	return s
}
