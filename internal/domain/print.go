package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNothingToPrint is returned when no complete entries survive the print
// projection. Printing and export are blocked rather than producing an empty
// invoice.
var ErrNothingToPrint = errors.New("no complete service entries to print")

const (
	printLongDateFormat = "January 2, 2006"
	printRowDateFormat  = "Jan 2, 2006"
)

// placeholderTexts are the example values shown in an untouched form. Header
// fields still carrying them are suppressed from the printed invoice, the
// same as empty fields.
var placeholderTexts = []string{
	"Your Business",
	"Professional Services",
	"123 Business",
	"555-123",
	"contact@yourbusiness",
	"Client Name, Inc.",
	"456 Client Street",
	"555-987",
	"client@example",
}

func isPlaceholder(s string) bool {
	for _, p := range placeholderTexts {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// printableLines filters out empty and placeholder values
func printableLines(values ...string) []string {
	var lines []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || isPlaceholder(v) {
			continue
		}
		lines = append(lines, v)
	}
	return lines
}

// PrintRow is one service line on the printed invoice
type PrintRow struct {
	Description string
	Date        string
	Category    string
	Hours       string
}

// PrintView is the static, print-ready projection of the document: complete
// entries only, placeholder text suppressed, dates in long human format, and
// all amounts formatted. It carries no editing state.
type PrintView struct {
	ProviderLines []string
	ClientLines   []string
	Number        string
	IssueDate     string
	DueDate       string
	DateRange     string
	Rows          []PrintRow

	TotalHours     string
	Subtotal       string
	TaxAmount      string
	DiscountAmount string
	GrandTotal     string

	Notes string
}

// BuildPrintView projects the live document into a printable view. Entries
// missing any required field are omitted entirely; if none remain the
// projection fails with ErrNothingToPrint and the live document is untouched.
func BuildPrintView(doc *InvoiceDocument, totals ComputedTotals) (*PrintView, error) {
	view := &PrintView{
		ProviderLines: printableLines(
			doc.Provider.Name,
			doc.Provider.BusinessType,
			doc.Provider.Address,
			doc.Provider.Phone,
			doc.Provider.Email,
		),
		ClientLines: printableLines(
			doc.Client.Name,
			doc.Client.Address,
			doc.Client.Phone,
			doc.Client.Email,
		),
		Number:         strings.TrimSpace(doc.Details.Number),
		TotalHours:     FormatHours(totals.TotalHours),
		Subtotal:       FormatMoney(totals.Subtotal),
		TaxAmount:      FormatMoney(totals.TaxAmount),
		DiscountAmount: FormatMoney(totals.DiscountAmount),
		GrandTotal:     FormatMoney(totals.GrandTotal),
		Notes:          strings.TrimSpace(doc.Notes),
	}

	if date, err := doc.Details.ParsedIssueDate(); err == nil {
		view.IssueDate = date.Format(printLongDateFormat)
	}
	if date, err := doc.Details.ParsedDueDate(); err == nil {
		view.DueDate = date.Format(printLongDateFormat)
	}
	if totals.DateRange != nil {
		view.DateRange = fmt.Sprintf("%s - %s",
			totals.DateRange.Start.Format(printLongDateFormat),
			totals.DateRange.End.Format(printLongDateFormat),
		)
	}

	for _, e := range doc.Ledger.Entries {
		if !e.IsComplete() {
			continue
		}
		row := PrintRow{
			Description: strings.TrimSpace(e.Description),
			Date:        strings.TrimSpace(e.Date),
			Category:    string(e.Category),
			Hours:       fmt.Sprintf("%s hrs", strings.TrimSpace(e.Hours)),
		}
		if date, err := e.ParsedDate(); err == nil {
			row.Date = date.Format(printRowDateFormat)
		}
		view.Rows = append(view.Rows, row)
	}

	if len(view.Rows) == 0 {
		return nil, ErrNothingToPrint
	}
	return view, nil
}

// FileName suggests a name for an exported invoice file, derived from the
// invoice number
func (v *PrintView) FileName() string {
	if v.Number == "" {
		return "invoice"
	}
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, v.Number)
	return "invoice-" + sanitized
}
