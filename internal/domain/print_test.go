package domain

import (
	"errors"
	"testing"
)

func TestBuildPrintView_OmitsIncompleteEntries(t *testing.T) {
	doc := validDocument()
	doc.Ledger.Entries = append(doc.Ledger.Entries,
		testEntry("", "", "", EntryStatusDraft),
		testEntry("half filled", "", "2", EntryStatusDraft),
	)
	totals := ComputeTotals(doc.Ledger, doc.Billing)

	view, err := BuildPrintView(doc, totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(view.Rows))
	}
	if view.Rows[0].Description != "development" {
		t.Errorf("row description = %q", view.Rows[0].Description)
	}
}

func TestBuildPrintView_NothingToPrint(t *testing.T) {
	doc := validDocument()
	doc.Ledger = &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("", "", "", EntryStatusDraft),
	}}
	totals := ComputeTotals(doc.Ledger, doc.Billing)

	_, err := BuildPrintView(doc, totals)
	if !errors.Is(err, ErrNothingToPrint) {
		t.Fatalf("err = %v, want ErrNothingToPrint", err)
	}
}

func TestBuildPrintView_SuppressesPlaceholders(t *testing.T) {
	doc := validDocument()
	doc.Provider.Name = "Your Business LLC"
	doc.Client.Email = "client@example.com"
	totals := ComputeTotals(doc.Ledger, doc.Billing)

	view, err := BuildPrintView(doc, totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, line := range view.ProviderLines {
		if line == "Your Business LLC" {
			t.Error("placeholder business name should be suppressed")
		}
	}
	for _, line := range view.ClientLines {
		if line == "client@example.com" {
			t.Error("placeholder client email should be suppressed")
		}
	}
	// Real values survive
	if len(view.ProviderLines) == 0 || view.ProviderLines[0] != "Software Development" {
		t.Errorf("provider lines = %v", view.ProviderLines)
	}
}

func TestBuildPrintView_FormatsDates(t *testing.T) {
	doc := validDocument()
	totals := ComputeTotals(doc.Ledger, doc.Billing)

	view, err := BuildPrintView(doc, totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.IssueDate != "March 1, 2026" {
		t.Errorf("issue date = %q, want March 1, 2026", view.IssueDate)
	}
	if view.DueDate != "March 31, 2026" {
		t.Errorf("due date = %q, want March 31, 2026", view.DueDate)
	}
	if view.Rows[0].Date != "Feb 10, 2026" {
		t.Errorf("row date = %q, want Feb 10, 2026", view.Rows[0].Date)
	}
}

func TestBuildPrintView_KeepsUnparseableEntryDateAsEntered(t *testing.T) {
	doc := validDocument()
	doc.Ledger.Entries[0].Date = "mid February"
	totals := ComputeTotals(doc.Ledger, doc.Billing)

	view, err := BuildPrintView(doc, totals)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Rows[0].Date != "mid February" {
		t.Errorf("row date = %q, want raw value", view.Rows[0].Date)
	}
}

func TestPrintViewFileName(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{"", "invoice"},
		{"INV-2026-001", "invoice-inv-2026-001"},
		{"INV 2026/001", "invoice-inv-2026-001"},
	}
	for _, tt := range tests {
		v := &PrintView{Number: tt.number}
		if got := v.FileName(); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.number, got, tt.want)
		}
	}
}
