package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// DateRange is the span covered by the dated entries on the ledger
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ComputedTotals are derived from the ledger and billing parameters. They are
// recomputed on every mutation and never persisted; money values stay
// unrounded until formatted for display.
type ComputedTotals struct {
	TotalHours     decimal.Decimal
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	GrandTotal     decimal.Decimal
	DateRange      *DateRange // nil when no entry has a parseable date
}

// ComputeTotals derives the invoice totals. Draft entries count: unconfirmed
// hours are still billable hours. Unparseable hour values contribute zero.
// The grand total is not clamped; a discount larger than the subtotal plus
// tax yields a negative total.
func ComputeTotals(ledger *ServiceLedger, billing BillingParameters) ComputedTotals {
	totals := ComputedTotals{
		TotalHours:     decimal.Zero,
		Subtotal:       decimal.Zero,
		TaxAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		GrandTotal:     decimal.Zero,
	}
	if ledger == nil {
		return totals
	}

	for _, e := range ledger.Entries {
		totals.TotalHours = totals.TotalHours.Add(e.HoursOrZero())

		if date, err := e.ParsedDate(); err == nil {
			if totals.DateRange == nil {
				totals.DateRange = &DateRange{Start: date, End: date}
				continue
			}
			if date.Before(totals.DateRange.Start) {
				totals.DateRange.Start = date
			}
			if date.After(totals.DateRange.End) {
				totals.DateRange.End = date
			}
		}
	}

	totals.Subtotal = totals.TotalHours.Mul(billing.HourlyRate)
	totals.TaxAmount = totals.Subtotal.Mul(billing.TaxRatePercent).Div(oneHundred)

	switch billing.DiscountType {
	case DiscountFixed:
		totals.DiscountAmount = billing.DiscountValue
	default:
		totals.DiscountAmount = totals.Subtotal.Mul(billing.DiscountValue).Div(oneHundred)
	}

	totals.GrandTotal = totals.Subtotal.Add(totals.TaxAmount).Sub(totals.DiscountAmount)
	return totals
}

// FormatMoney formats an amount as "$X,XXX.XX", rounding to two decimal
// places at this point only
func FormatMoney(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := "$"
	if negative {
		prefix = "-$"
	}
	return prefix + string(result) + decPart
}

// FormatHours formats an hour total with two decimal places
func FormatHours(hours decimal.Decimal) string {
	return hours.StringFixed(2)
}
