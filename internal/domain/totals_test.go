package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testEntry(desc, date, hours string, status EntryStatus) *ServiceEntry {
	e := NewServiceEntry()
	e.Description = desc
	e.Date = date
	e.Hours = hours
	e.Status = status
	return e
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestComputeTotals_SumsDraftAndConfirmedHours(t *testing.T) {
	ledger := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("design", "2026-01-10", "2", EntryStatusConfirmed),
		testEntry("dev", "2026-01-12", "3.5", EntryStatusDraft),
	}}
	billing := BillingParameters{
		HourlyRate:   decimal.NewFromInt(50),
		DiscountType: DiscountPercentage,
	}

	totals := ComputeTotals(ledger, billing)

	if !totals.TotalHours.Equal(decimalFromString(t, "5.5")) {
		t.Errorf("total hours = %s, want 5.5", totals.TotalHours)
	}
	if !totals.Subtotal.Equal(decimal.NewFromInt(275)) {
		t.Errorf("subtotal = %s, want 275", totals.Subtotal)
	}
}

func TestComputeTotals_UnparseableHoursCountZero(t *testing.T) {
	ledger := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("dev", "2026-01-10", "abc", EntryStatusDraft),
		testEntry("dev", "2026-01-11", "2", EntryStatusDraft),
	}}
	billing := BillingParameters{HourlyRate: decimal.NewFromInt(100)}

	totals := ComputeTotals(ledger, billing)

	if !totals.TotalHours.Equal(decimal.NewFromInt(2)) {
		t.Errorf("total hours = %s, want 2", totals.TotalHours)
	}
}

func TestComputeTotals_TaxAndPercentageDiscount(t *testing.T) {
	ledger := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("dev", "2026-01-10", "10", EntryStatusConfirmed),
	}}
	billing := BillingParameters{
		HourlyRate:     decimal.NewFromInt(100),
		TaxRatePercent: decimal.NewFromInt(10),
		DiscountType:   DiscountPercentage,
		DiscountValue:  decimal.NewFromInt(10),
	}

	totals := ComputeTotals(ledger, billing)

	if !totals.TaxAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("tax = %s, want 100", totals.TaxAmount)
	}
	if !totals.DiscountAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("discount = %s, want 100", totals.DiscountAmount)
	}
	// 1000 + 100 - 100
	if !totals.GrandTotal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("grand total = %s, want 1000", totals.GrandTotal)
	}
}

func TestComputeTotals_FixedDiscount(t *testing.T) {
	ledger := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("dev", "2026-01-10", "10", EntryStatusConfirmed),
	}}
	billing := BillingParameters{
		HourlyRate:    decimal.NewFromInt(100),
		DiscountType:  DiscountFixed,
		DiscountValue: decimal.NewFromInt(50),
	}

	totals := ComputeTotals(ledger, billing)

	if !totals.DiscountAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("discount = %s, want 50", totals.DiscountAmount)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(950)) {
		t.Errorf("grand total = %s, want 950", totals.GrandTotal)
	}
}

func TestComputeTotals_GrandTotalNotClamped(t *testing.T) {
	ledger := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("dev", "2026-01-10", "1", EntryStatusConfirmed),
	}}
	billing := BillingParameters{
		HourlyRate:    decimal.NewFromInt(100),
		DiscountType:  DiscountFixed,
		DiscountValue: decimal.NewFromInt(200),
	}

	totals := ComputeTotals(ledger, billing)

	if !totals.GrandTotal.Equal(decimal.NewFromInt(-100)) {
		t.Errorf("grand total = %s, want -100", totals.GrandTotal)
	}
}

func TestComputeTotals_DateRange(t *testing.T) {
	ledger := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("a", "2026-02-20", "1", EntryStatusDraft),
		testEntry("b", "2026-01-05", "1", EntryStatusDraft),
		testEntry("c", "not-a-date", "1", EntryStatusDraft),
	}}

	totals := ComputeTotals(ledger, BillingParameters{})

	if totals.DateRange == nil {
		t.Fatal("expected a date range")
	}
	if got := totals.DateRange.Start.Format(EntryDateFormat); got != "2026-01-05" {
		t.Errorf("range start = %s, want 2026-01-05", got)
	}
	if got := totals.DateRange.End.Format(EntryDateFormat); got != "2026-02-20" {
		t.Errorf("range end = %s, want 2026-02-20", got)
	}
}

func TestComputeTotals_NoDatesNoRange(t *testing.T) {
	ledger := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("a", "", "1", EntryStatusDraft),
	}}

	totals := ComputeTotals(ledger, BillingParameters{})

	if totals.DateRange != nil {
		t.Errorf("expected nil date range, got %+v", totals.DateRange)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1234.5", "$1,234.50"},
		{"1234567.891", "$1,234,567.89"},
		{"-42", "-$42.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimalFromString(t, tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
