package tui

import "github.com/andy/invoicepro/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// notificationMsg delivers a service notification to the root model
type notificationMsg struct {
	note domain.Notification
}

// JumpToFieldMsg asks the target screen to focus the field that failed
// validation
type JumpToFieldMsg struct {
	Field   domain.Field
	EntryID string
}
