package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryStatus string

const (
	EntryStatusDraft     EntryStatus = "draft"
	EntryStatusConfirmed EntryStatus = "confirmed"
)

type Category string

const (
	CategoryDevelopment Category = "development"
	CategoryDesign      Category = "design"
	CategoryConsulting  Category = "consulting"
	CategorySupport     Category = "support"
	CategoryOther       Category = "other"
)

// Categories lists all valid categories in display order.
var Categories = []Category{
	CategoryDevelopment,
	CategoryDesign,
	CategoryConsulting,
	CategorySupport,
	CategoryOther,
}

// ParseCategory maps a stored value to a category, defaulting to "other"
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// EntryDateFormat is the input format for service dates
const EntryDateFormat = "2006-01-02"

// ServiceEntry is one billable line item. Field values are held as the user
// entered them; Draft entries may carry partial or unparseable input.
type ServiceEntry struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Hours       string      `json:"hours"`
	Category    Category    `json:"category"`
	Status      EntryStatus `json:"status"`
}

// NewServiceEntry creates an empty draft entry
func NewServiceEntry() *ServiceEntry {
	return &ServiceEntry{
		ID:       uuid.NewString(),
		Category: CategoryOther,
		Status:   EntryStatusDraft,
	}
}

// IsConfirmed returns true if the entry is locked in
func (e *ServiceEntry) IsConfirmed() bool {
	return e.Status == EntryStatusConfirmed
}

// IsComplete returns true if all three required fields are populated.
// Completeness is a weaker check than confirmability: values only need to be
// present, not parseable.
func (e *ServiceEntry) IsComplete() bool {
	return strings.TrimSpace(e.Description) != "" &&
		strings.TrimSpace(e.Date) != "" &&
		strings.TrimSpace(e.Hours) != ""
}

// ParsedDate returns the entry date, or an error if absent or unparseable
func (e *ServiceEntry) ParsedDate() (time.Time, error) {
	return time.Parse(EntryDateFormat, strings.TrimSpace(e.Date))
}

// ParsedHours returns the entry hours, or an error if absent or unparseable
func (e *ServiceEntry) ParsedHours() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(e.Hours))
}

// HoursOrZero returns the parsed hours, treating bad input as zero.
// Draft entries contribute their hours to totals even before confirmation.
func (e *ServiceEntry) HoursOrZero() decimal.Decimal {
	h, err := e.ParsedHours()
	if err != nil {
		return decimal.Zero
	}
	return h
}

// CheckConfirmable validates the three required fields for confirmation:
// description non-empty, date parseable, hours numeric and positive.
// Returns one error per offending field; empty means the entry may be
// confirmed.
func (e *ServiceEntry) CheckConfirmable() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(e.Description) == "" {
		errs = append(errs, ValidationError{
			Field:   FieldEntryDescription,
			EntryID: e.ID,
			Message: "Service description is required.",
			Kind:    ErrorMissing,
		})
	}

	if strings.TrimSpace(e.Date) == "" {
		errs = append(errs, ValidationError{
			Field:   FieldEntryDate,
			EntryID: e.ID,
			Message: "Service date is required.",
			Kind:    ErrorMissing,
		})
	} else if _, err := e.ParsedDate(); err != nil {
		errs = append(errs, ValidationError{
			Field:   FieldEntryDate,
			EntryID: e.ID,
			Message: "Service date must be a valid date (YYYY-MM-DD).",
			Kind:    ErrorInvalid,
		})
	}

	if strings.TrimSpace(e.Hours) == "" {
		errs = append(errs, ValidationError{
			Field:   FieldEntryHours,
			EntryID: e.ID,
			Message: "Service hours are required.",
			Kind:    ErrorMissing,
		})
	} else if h, err := e.ParsedHours(); err != nil || !h.IsPositive() {
		errs = append(errs, ValidationError{
			Field:   FieldEntryHours,
			EntryID: e.ID,
			Message: "Service hours must be a number greater than zero.",
			Kind:    ErrorInvalid,
		})
	}

	return errs
}
