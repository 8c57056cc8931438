package domain

import "github.com/shopspring/decimal"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ParseDiscountType maps a stored value to a discount type, defaulting to
// percentage
func ParseDiscountType(s string) DiscountType {
	if s == string(DiscountFixed) {
		return DiscountFixed
	}
	return DiscountPercentage
}

// BillingParameters are the financial settings applied to the whole invoice
type BillingParameters struct {
	HourlyRate     decimal.Decimal `json:"hourlyRate"`
	TaxRatePercent decimal.Decimal `json:"taxRate"`
	DiscountType   DiscountType    `json:"discountType"`
	DiscountValue  decimal.Decimal `json:"discountValue"`
}

// DefaultBillingParameters returns zeroed parameters with a percentage
// discount
func DefaultBillingParameters() BillingParameters {
	return BillingParameters{
		DiscountType: DiscountPercentage,
	}
}
