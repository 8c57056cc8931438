package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Field references a document field for error reporting and navigation
type Field string

const (
	FieldBusinessName  Field = "businessName"
	FieldBusinessType  Field = "businessType"
	FieldAddress       Field = "address"
	FieldPhone         Field = "phone"
	FieldEmail         Field = "email"
	FieldClientName    Field = "clientName"
	FieldClientAddress Field = "clientAddress"
	FieldClientPhone   Field = "clientPhone"
	FieldClientEmail   Field = "clientEmail"
	FieldInvoiceNumber Field = "invoiceNumber"
	FieldIssueDate     Field = "issueDate"
	FieldDueDate       Field = "dueDate"
	FieldHourlyRate    Field = "hourlyRate"
	FieldServices      Field = "services"

	FieldEntryDescription Field = "entryDescription"
	FieldEntryDate        Field = "entryDate"
	FieldEntryHours       Field = "entryHours"
)

var fieldLabels = map[Field]string{
	FieldBusinessName:     "Business Name",
	FieldBusinessType:     "Business Type",
	FieldAddress:          "Business Address",
	FieldPhone:            "Business Phone",
	FieldEmail:            "Business Email",
	FieldClientName:       "Client Name",
	FieldClientAddress:    "Client Address",
	FieldClientPhone:      "Client Phone",
	FieldClientEmail:      "Client Email",
	FieldInvoiceNumber:    "Invoice Number",
	FieldIssueDate:        "Invoice Date",
	FieldDueDate:          "Due Date",
	FieldHourlyRate:       "Hourly Rate",
	FieldServices:         "Services",
	FieldEntryDescription: "Service Description",
	FieldEntryDate:        "Service Date",
	FieldEntryHours:       "Service Hours",
}

// Label returns the human-readable name for the field
func (f Field) Label() string {
	if label, ok := fieldLabels[f]; ok {
		return label
	}
	return string(f)
}

type ErrorKind string

const (
	ErrorMissing     ErrorKind = "missing"     // required value absent
	ErrorInvalid     ErrorKind = "invalid"     // present but malformed
	ErrorUnconfirmed ErrorKind = "unconfirmed" // ledger entries not finalized
)

// ValidationError is one failure found by a validation pass. Errors are
// regenerated on each pass and never persisted. EntryID is set for errors
// scoped to a single ledger entry.
type ValidationError struct {
	Field   Field
	EntryID string
	Message string
	Kind    ErrorKind
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9-]+(?:\.[a-zA-Z0-9-]+)*$`)
	phonePattern = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)
)

// ValidEmail reports whether the value matches the local@domain pattern
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidPhone reports whether the value looks like a phone number: 3-3-4..6
// digit groups with optional separators and country code
func ValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// requiredHeaderField pairs a field reference with its current value
type requiredHeaderField struct {
	field Field
	value string
}

// Validate inspects the whole document and returns every failure found, in a
// fixed order: required header fields, email formats, phone formats, date
// presence, date ordering, ledger presence, ledger confirmation, hourly rate.
// It does not mutate the document. An empty result means the document is
// ready to save or print.
func Validate(doc *InvoiceDocument) []ValidationError {
	var errs []ValidationError

	required := []requiredHeaderField{
		{FieldBusinessName, doc.Provider.Name},
		{FieldBusinessType, doc.Provider.BusinessType},
		{FieldAddress, doc.Provider.Address},
		{FieldPhone, doc.Provider.Phone},
		{FieldEmail, doc.Provider.Email},
		{FieldClientName, doc.Client.Name},
		{FieldClientAddress, doc.Client.Address},
		{FieldInvoiceNumber, doc.Details.Number},
	}
	for _, rf := range required {
		if strings.TrimSpace(rf.value) == "" {
			errs = append(errs, ValidationError{
				Field:   rf.field,
				Message: fmt.Sprintf("%s is required.", rf.field.Label()),
				Kind:    ErrorMissing,
			})
		}
	}

	emails := []requiredHeaderField{
		{FieldEmail, doc.Provider.Email},
		{FieldClientEmail, doc.Client.Email},
	}
	for _, ef := range emails {
		if strings.TrimSpace(ef.value) != "" && !ValidEmail(ef.value) {
			errs = append(errs, ValidationError{
				Field:   ef.field,
				Message: fmt.Sprintf("%s must be a valid email address.", ef.field.Label()),
				Kind:    ErrorInvalid,
			})
		}
	}

	phones := []requiredHeaderField{
		{FieldPhone, doc.Provider.Phone},
		{FieldClientPhone, doc.Client.Phone},
	}
	for _, pf := range phones {
		if strings.TrimSpace(pf.value) != "" && !ValidPhone(pf.value) {
			errs = append(errs, ValidationError{
				Field:   pf.field,
				Message: fmt.Sprintf("%s must be a valid phone number.", pf.field.Label()),
				Kind:    ErrorInvalid,
			})
		}
	}

	issueDate, issueErr := doc.Details.ParsedIssueDate()
	dueDate, dueErr := doc.Details.ParsedDueDate()

	if strings.TrimSpace(doc.Details.IssueDate) == "" {
		errs = append(errs, ValidationError{
			Field:   FieldIssueDate,
			Message: "Invoice Date is required.",
			Kind:    ErrorMissing,
		})
	} else if issueErr != nil {
		errs = append(errs, ValidationError{
			Field:   FieldIssueDate,
			Message: "Invoice Date must be a valid date (YYYY-MM-DD).",
			Kind:    ErrorInvalid,
		})
	}

	if strings.TrimSpace(doc.Details.DueDate) == "" {
		errs = append(errs, ValidationError{
			Field:   FieldDueDate,
			Message: "Due Date is required.",
			Kind:    ErrorMissing,
		})
	} else if dueErr != nil {
		errs = append(errs, ValidationError{
			Field:   FieldDueDate,
			Message: "Due Date must be a valid date (YYYY-MM-DD).",
			Kind:    ErrorInvalid,
		})
	}

	if issueErr == nil && dueErr == nil && dueDate.Before(issueDate) {
		errs = append(errs, ValidationError{
			Field:   FieldDueDate,
			Message: "Due Date must be after Invoice Date.",
			Kind:    ErrorInvalid,
		})
	}

	if doc.Ledger == nil || doc.Ledger.Len() == 0 {
		errs = append(errs, ValidationError{
			Field:   FieldServices,
			Message: "At least one service is required.",
			Kind:    ErrorMissing,
		})
	} else if !doc.Ledger.AllConfirmed() {
		errs = append(errs, ValidationError{
			Field:   FieldServices,
			Message: "All services must be confirmed.",
			Kind:    ErrorUnconfirmed,
		})
	}

	if !doc.Billing.HourlyRate.IsPositive() {
		errs = append(errs, ValidationError{
			Field:   FieldHourlyRate,
			Message: "Hourly Rate must be greater than zero.",
			Kind:    ErrorInvalid,
		})
	}

	return errs
}
