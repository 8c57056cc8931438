package domain

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification is a user-facing message emitted by the service layer. The UI
// decides how to render it; the core never owns notification display.
type Notification struct {
	Message  string
	Severity Severity
}
