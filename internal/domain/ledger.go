package domain

import (
	"encoding/json"
	"errors"
)

var (
	ErrEntryNotFound  = errors.New("service entry not found")
	ErrEntryConfirmed = errors.New("service entry is confirmed and cannot be modified")
)

// ServiceLedger is the ordered collection of service entries on the invoice.
// Insertion order is display and print order. After any operation completes
// the ledger is never empty: deleting or bulk-removing the last entry appends
// a fresh draft.
type ServiceLedger struct {
	Entries []*ServiceEntry
}

// NewServiceLedger creates a ledger seeded with one empty draft entry
func NewServiceLedger() *ServiceLedger {
	l := &ServiceLedger{}
	l.Add()
	return l
}

// Add appends a new empty draft entry and returns it
func (l *ServiceLedger) Add() *ServiceEntry {
	entry := NewServiceEntry()
	l.Entries = append(l.Entries, entry)
	return entry
}

// Get returns the entry with the given id
func (l *ServiceLedger) Get(id string) (*ServiceEntry, error) {
	for _, e := range l.Entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, ErrEntryNotFound
}

// Len returns the number of entries
func (l *ServiceLedger) Len() int {
	return len(l.Entries)
}

// AllConfirmed returns true if every entry is confirmed.
// An empty ledger is not considered confirmed.
func (l *ServiceLedger) AllConfirmed() bool {
	if len(l.Entries) == 0 {
		return false
	}
	for _, e := range l.Entries {
		if !e.IsConfirmed() {
			return false
		}
	}
	return true
}

// Confirm validates the entry's required fields and, if valid, marks it
// confirmed. When confirming leaves every entry confirmed, a fresh draft is
// appended so there is always an open entry for further input.
//
// Returns the field errors when the entry is not confirmable (it stays
// draft), and whether a fresh draft entry was appended.
func (l *ServiceLedger) Confirm(id string) (fieldErrs []ValidationError, appended bool, err error) {
	entry, err := l.Get(id)
	if err != nil {
		return nil, false, err
	}

	if entry.IsConfirmed() {
		return nil, false, nil
	}

	if errs := entry.CheckConfirmable(); len(errs) > 0 {
		return errs, false, nil
	}

	entry.Status = EntryStatusConfirmed

	if l.AllConfirmed() {
		l.Add()
		return nil, true, nil
	}
	return nil, false, nil
}

// Edit returns a confirmed entry to draft so its fields can be changed again
func (l *ServiceLedger) Edit(id string) error {
	entry, err := l.Get(id)
	if err != nil {
		return err
	}
	entry.Status = EntryStatusDraft
	return nil
}

// Delete removes the entry. If removal empties the ledger, an empty draft is
// appended automatically. Returns whether that happened.
func (l *ServiceLedger) Delete(id string) (appended bool, err error) {
	for i, e := range l.Entries {
		if e.ID == id {
			l.Entries = append(l.Entries[:i], l.Entries[i+1:]...)
			if len(l.Entries) == 0 {
				l.Add()
				return true, nil
			}
			return false, nil
		}
	}
	return false, ErrEntryNotFound
}

// ConfirmAllResult reports the outcome of a bulk confirmation
type ConfirmAllResult struct {
	Confirmed int  // entries confirmed, including previously confirmed ones
	Removed   int  // incomplete entries deleted
	Appended  bool // a fresh draft was appended to keep an open entry
	Emptied   bool // removal deleted every entry
}

// ConfirmAll confirms every draft entry whose required fields are all
// populated and deletes the rest outright. Every surviving entry is then
// confirmed, so a fresh draft is appended to keep an open entry; the same
// happens when removal empties the ledger.
func (l *ServiceLedger) ConfirmAll() ConfirmAllResult {
	var result ConfirmAllResult

	kept := l.Entries[:0]
	for _, e := range l.Entries {
		if e.IsConfirmed() {
			result.Confirmed++
			kept = append(kept, e)
			continue
		}
		if e.IsComplete() {
			e.Status = EntryStatusConfirmed
			result.Confirmed++
			kept = append(kept, e)
			continue
		}
		result.Removed++
	}
	l.Entries = kept

	if len(l.Entries) == 0 {
		result.Emptied = true
	}
	if len(l.Entries) == 0 || l.AllConfirmed() {
		l.Add()
		result.Appended = true
	}
	return result
}

// MarshalJSON serializes the ledger as a plain entry array
func (l *ServiceLedger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Entries)
}

// UnmarshalJSON restores the ledger from an entry array. Entries missing an
// id (e.g. data written by hand) get one assigned; missing status defaults to
// draft; an empty array yields a single fresh draft entry.
func (l *ServiceLedger) UnmarshalJSON(data []byte) error {
	var entries []*ServiceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	for _, e := range entries {
		if e.ID == "" {
			e.ID = NewServiceEntry().ID
		}
		if e.Status != EntryStatusConfirmed {
			e.Status = EntryStatusDraft
		}
		e.Category = ParseCategory(string(e.Category))
	}
	l.Entries = entries
	if len(l.Entries) == 0 {
		l.Add()
	}
	return nil
}
