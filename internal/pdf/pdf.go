package pdf

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/andy/invoicepro/internal/domain"
)

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// Renderer writes a print view as an A4 PDF
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// WriteFile renders the view and saves it at the given path
func (r *Renderer) WriteFile(view *domain.PrintView, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.AddPage()

	r.renderHeader(pdf, view)
	r.renderParties(pdf, view)
	r.renderRows(pdf, view)
	r.renderTotals(pdf, view)
	r.renderNotes(pdf, view)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (r *Renderer) renderHeader(pdf *gofpdf.Fpdf, view *domain.PrintView) {
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if view.Number != "" {
		pdf.CellFormat(0, lineHeight, "Invoice #: "+view.Number, "", 1, "L", false, 0, "")
	}
	if view.IssueDate != "" {
		pdf.CellFormat(0, lineHeight, "Date: "+view.IssueDate, "", 1, "L", false, 0, "")
	}
	if view.DueDate != "" {
		pdf.CellFormat(0, lineHeight, "Due Date: "+view.DueDate, "", 1, "L", false, 0, "")
	}
	if view.DateRange != "" {
		pdf.CellFormat(0, lineHeight, "Service Period: "+view.DateRange, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *Renderer) renderParties(pdf *gofpdf.Fpdf, view *domain.PrintView) {
	colWidth := (210 - 2*pageMargin) / 2

	pdf.SetFont("Helvetica", "B", 11)
	y := pdf.GetY()
	pdf.CellFormat(colWidth, lineHeight, "From", "", 0, "L", false, 0, "")
	pdf.CellFormat(colWidth, lineHeight, "Bill To", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	left := strings.Join(view.ProviderLines, "\n")
	right := strings.Join(view.ClientLines, "\n")

	y = pdf.GetY()
	pdf.MultiCell(colWidth, lineHeight-1, left, "", "L", false)
	leftEnd := pdf.GetY()

	pdf.SetXY(pageMargin+colWidth, y)
	pdf.MultiCell(colWidth, lineHeight-1, right, "", "L", false)
	rightEnd := pdf.GetY()

	if leftEnd > rightEnd {
		pdf.SetY(leftEnd)
	} else {
		pdf.SetY(rightEnd)
	}
	pdf.Ln(5)
}

func (r *Renderer) renderRows(pdf *gofpdf.Fpdf, view *domain.PrintView) {
	descWidth := 85.0
	dateWidth := 35.0
	catWidth := 35.0
	hoursWidth := 25.0

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(descWidth, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(dateWidth, 8, "Date", "1", 0, "L", true, 0, "")
	pdf.CellFormat(catWidth, 8, "Category", "1", 0, "L", true, 0, "")
	pdf.CellFormat(hoursWidth, 8, "Hours", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range view.Rows {
		pdf.CellFormat(descWidth, 8, row.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(dateWidth, 8, row.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(catWidth, 8, row.Category, "1", 0, "L", false, 0, "")
		pdf.CellFormat(hoursWidth, 8, row.Hours, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *Renderer) renderTotals(pdf *gofpdf.Fpdf, view *domain.PrintView) {
	labelWidth := 145.0
	valueWidth := 35.0

	line := func(label, value string, bold bool) {
		if bold {
			pdf.SetFont("Helvetica", "B", 11)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(labelWidth, lineHeight+1, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(valueWidth, lineHeight+1, value, "", 1, "R", false, 0, "")
	}

	line("Total Hours:", view.TotalHours, false)
	line("Subtotal:", view.Subtotal, false)
	line("Tax:", view.TaxAmount, false)
	line("Discount:", "-"+view.DiscountAmount, false)
	line("Total:", view.GrandTotal, true)
	pdf.Ln(4)
}

func (r *Renderer) renderNotes(pdf *gofpdf.Fpdf, view *domain.PrintView) {
	if view.Notes == "" {
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHeight, "Notes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, lineHeight-1, view.Notes, "", "L", false)
}
