package domain

import "time"

// HeaderDateFormat is the input format for the issue and due dates
const HeaderDateFormat = "2006-01-02"

// ProviderInfo identifies the business issuing the invoice
type ProviderInfo struct {
	Name         string `json:"name"`
	BusinessType string `json:"businessType"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// ClientInfo identifies the party being billed
type ClientInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// InvoiceDetails carries the invoice number and its dates, as entered
type InvoiceDetails struct {
	Number    string `json:"number"`
	IssueDate string `json:"date"`
	DueDate   string `json:"dueDate"`
}

// ParsedIssueDate returns the issue date, or an error if absent or malformed
func (d *InvoiceDetails) ParsedIssueDate() (time.Time, error) {
	return time.Parse(HeaderDateFormat, d.IssueDate)
}

// ParsedDueDate returns the due date, or an error if absent or malformed
func (d *InvoiceDetails) ParsedDueDate() (time.Time, error) {
	return time.Parse(HeaderDateFormat, d.DueDate)
}

// InvoiceDocument is the whole editable invoice: the unit of persistence.
// The ledger owns its entries exclusively; everything else is plain data
// bound to form fields.
type InvoiceDocument struct {
	Provider ProviderInfo      `json:"provider"`
	Client   ClientInfo        `json:"client"`
	Details  InvoiceDetails    `json:"invoice"`
	Billing  BillingParameters `json:"financial"`
	Ledger   *ServiceLedger    `json:"services"`
	Notes    string            `json:"notes"`
}

// NewInvoiceDocument creates an empty document with one draft entry
func NewInvoiceDocument() *InvoiceDocument {
	return &InvoiceDocument{
		Billing: DefaultBillingParameters(),
		Ledger:  NewServiceLedger(),
	}
}

// Normalize fills in whatever a decoded document is missing: a nil or empty
// ledger gets a fresh draft entry, and the discount type falls back to
// percentage. Call after unmarshaling stored data.
func (d *InvoiceDocument) Normalize() {
	if d.Ledger == nil {
		d.Ledger = NewServiceLedger()
	} else if len(d.Ledger.Entries) == 0 {
		d.Ledger.Add()
	}
	d.Billing.DiscountType = ParseDiscountType(string(d.Billing.DiscountType))
}
