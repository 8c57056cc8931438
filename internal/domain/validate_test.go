package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

// validDocument builds a document that passes every validation check
func validDocument() *InvoiceDocument {
	doc := NewInvoiceDocument()
	doc.Provider = ProviderInfo{
		Name:         "Jane Doe Consulting",
		BusinessType: "Software Development",
		Address:      "1 Main St, Springfield",
		Phone:        "555-555-1234",
		Email:        "jane@janedoe.dev",
	}
	doc.Client = ClientInfo{
		Name:    "Acme Corp",
		Address: "2 Corporate Dr, Metropolis",
		Phone:   "555-555-9876",
		Email:   "billing@acme.com",
	}
	doc.Details = InvoiceDetails{
		Number:    "INV-2026-001",
		IssueDate: "2026-03-01",
		DueDate:   "2026-03-31",
	}
	doc.Billing.HourlyRate = decimal.NewFromInt(75)
	doc.Ledger = &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("development", "2026-02-10", "8", EntryStatusConfirmed),
	}}
	return doc
}

func TestValidate_ValidDocumentHasNoErrors(t *testing.T) {
	errs := Validate(validDocument())
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidate_RequiredHeaderFields(t *testing.T) {
	doc := validDocument()
	doc.Provider.Name = ""
	doc.Client.Address = "   "
	doc.Details.Number = ""

	errs := Validate(doc)

	want := []Field{FieldBusinessName, FieldClientAddress, FieldInvoiceNumber}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
	}
	for i, f := range want {
		if errs[i].Field != f {
			t.Errorf("errs[%d].Field = %s, want %s", i, errs[i].Field, f)
		}
		if errs[i].Kind != ErrorMissing {
			t.Errorf("errs[%d].Kind = %s, want missing", i, errs[i].Kind)
		}
	}
}

func TestValidate_EmailFormats(t *testing.T) {
	doc := validDocument()
	doc.Provider.Email = "not-an-email"
	doc.Client.Email = "also@bad@"

	errs := Validate(doc)

	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if errs[0].Field != FieldEmail || errs[1].Field != FieldClientEmail {
		t.Errorf("wrong fields: %v", errs)
	}
	for _, e := range errs {
		if e.Kind != ErrorInvalid {
			t.Errorf("kind = %s, want invalid", e.Kind)
		}
	}
}

func TestValidate_EmptyClientContactIsAllowed(t *testing.T) {
	doc := validDocument()
	doc.Client.Email = ""
	doc.Client.Phone = ""

	if errs := Validate(doc); len(errs) != 0 {
		t.Errorf("optional empty contact fields flagged: %v", errs)
	}
}

func TestValidate_PhoneFormats(t *testing.T) {
	doc := validDocument()
	doc.Provider.Phone = "call me"

	errs := Validate(doc)

	if len(errs) != 1 || errs[0].Field != FieldPhone {
		t.Fatalf("expected one phone error, got %v", errs)
	}
}

func TestValidate_DueDateBeforeIssueDate(t *testing.T) {
	doc := validDocument()
	doc.Details.IssueDate = "2026-03-31"
	doc.Details.DueDate = "2026-03-01"

	errs := Validate(doc)

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Field != FieldDueDate || errs[0].Kind != ErrorInvalid {
		t.Errorf("wrong error: %+v", errs[0])
	}
}

func TestValidate_UnparseableDates(t *testing.T) {
	doc := validDocument()
	doc.Details.IssueDate = "03/01/2026"

	errs := Validate(doc)

	if len(errs) != 1 || errs[0].Field != FieldIssueDate || errs[0].Kind != ErrorInvalid {
		t.Fatalf("expected one invalid issue date error, got %v", errs)
	}
}

func TestValidate_UnconfirmedEntries(t *testing.T) {
	doc := validDocument()
	doc.Ledger.Add()

	errs := Validate(doc)

	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Field != FieldServices || errs[0].Kind != ErrorUnconfirmed {
		t.Errorf("wrong error: %+v", errs[0])
	}
}

func TestValidate_HourlyRateMustBePositive(t *testing.T) {
	doc := validDocument()
	doc.Billing.HourlyRate = decimal.Zero

	errs := Validate(doc)

	if len(errs) != 1 || errs[0].Field != FieldHourlyRate {
		t.Fatalf("expected one rate error, got %v", errs)
	}
}

func TestValidEmail(t *testing.T) {
	good := []string{"a@b.co", "first.last+tag@sub.domain.org"}
	bad := []string{"", "no-at", "a@", "@b.co", "a b@c.d"}

	for _, s := range good {
		if !ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = false, want true", s)
		}
	}
	for _, s := range bad {
		if ValidEmail(s) {
			t.Errorf("ValidEmail(%q) = true, want false", s)
		}
	}
}

func TestValidPhone(t *testing.T) {
	good := []string{"555-123-4567", "(555) 123-4567", "+1555123456", "555.123.4567"}
	bad := []string{"", "12", "phone", "555-12-34567890"}

	for _, s := range good {
		if !ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = false, want true", s)
		}
	}
	for _, s := range bad {
		if ValidPhone(s) {
			t.Errorf("ValidPhone(%q) = true, want false", s)
		}
	}
}
