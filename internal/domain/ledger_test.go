package domain

import (
	"encoding/json"
	"testing"
)

func TestNewServiceLedger_SeedsOneDraft(t *testing.T) {
	l := NewServiceLedger()

	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
	if l.Entries[0].IsConfirmed() {
		t.Error("seed entry should be a draft")
	}
}

func TestConfirm_IncompleteEntryStaysDraft(t *testing.T) {
	l := NewServiceLedger()
	entry := l.Entries[0]
	entry.Description = "design work"
	// date and hours missing

	fieldErrs, appended, err := l.Confirm(entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) == 0 {
		t.Fatal("expected field errors for incomplete entry")
	}
	if appended {
		t.Error("no draft should be appended on failed confirm")
	}
	if entry.IsConfirmed() {
		t.Error("entry should remain draft")
	}
}

func TestConfirm_CompleteEntryAppendsFreshDraft(t *testing.T) {
	l := NewServiceLedger()
	entry := l.Entries[0]
	entry.Description = "design work"
	entry.Date = "2026-01-10"
	entry.Hours = "2.5"

	fieldErrs, appended, err := l.Confirm(entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) != 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if !entry.IsConfirmed() {
		t.Error("entry should be confirmed")
	}
	if !appended {
		t.Error("expected a fresh draft to be appended")
	}
	if l.Len() != 2 {
		t.Errorf("len = %d, want 2", l.Len())
	}
	if l.Entries[1].IsConfirmed() {
		t.Error("appended entry should be a draft")
	}
}

func TestConfirm_AlreadyConfirmedIsNoOp(t *testing.T) {
	l := NewServiceLedger()
	entry := l.Entries[0]
	entry.Description = "x"
	entry.Date = "2026-01-10"
	entry.Hours = "1"
	l.Confirm(entry.ID)

	fieldErrs, appended, err := l.Confirm(entry.ID)
	if err != nil || len(fieldErrs) != 0 || appended {
		t.Errorf("second confirm should be a no-op, got errs=%v appended=%v err=%v", fieldErrs, appended, err)
	}
}

func TestConfirm_NegativeHoursRejected(t *testing.T) {
	l := NewServiceLedger()
	entry := l.Entries[0]
	entry.Description = "x"
	entry.Date = "2026-01-10"
	entry.Hours = "-2"

	fieldErrs, _, err := l.Confirm(entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) != 1 || fieldErrs[0].Field != FieldEntryHours {
		t.Fatalf("expected one hours error, got %v", fieldErrs)
	}
	if entry.IsConfirmed() {
		t.Error("entry should remain draft")
	}
}

func TestEdit_ReturnsEntryToDraft(t *testing.T) {
	l := NewServiceLedger()
	entry := l.Entries[0]
	entry.Description = "x"
	entry.Date = "2026-01-10"
	entry.Hours = "1"
	l.Confirm(entry.ID)

	if err := l.Edit(entry.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.IsConfirmed() {
		t.Error("entry should be draft after edit")
	}
}

func TestDelete_LastEntryAppendsFreshDraft(t *testing.T) {
	l := NewServiceLedger()
	oldID := l.Entries[0].ID

	appended, err := l.Delete(oldID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !appended {
		t.Error("expected a fresh draft to be appended")
	}
	if l.Len() != 1 {
		t.Fatalf("len = %d, want 1", l.Len())
	}
	if l.Entries[0].ID == oldID {
		t.Error("appended entry should have a new id")
	}
}

func TestDelete_UnknownID(t *testing.T) {
	l := NewServiceLedger()
	if _, err := l.Delete("nope"); err != ErrEntryNotFound {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestConfirmAll_MixedLedger(t *testing.T) {
	l := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("done", "2026-01-05", "1", EntryStatusConfirmed),
		testEntry("complete draft", "2026-01-06", "2", EntryStatusDraft),
		testEntry("", "", "", EntryStatusDraft),
	}}

	result := l.ConfirmAll()

	if result.Confirmed != 2 {
		t.Errorf("confirmed = %d, want 2", result.Confirmed)
	}
	if result.Removed != 1 {
		t.Errorf("removed = %d, want 1", result.Removed)
	}
	if !result.Appended {
		t.Error("expected a fresh draft once every survivor is confirmed")
	}
	if result.Emptied {
		t.Error("ledger was never emptied")
	}
	if l.Len() != 3 {
		t.Errorf("len = %d, want 3", l.Len())
	}
	if !l.Entries[0].IsConfirmed() || !l.Entries[1].IsConfirmed() {
		t.Error("surviving entries should be confirmed")
	}
	if l.Entries[2].IsConfirmed() {
		t.Error("appended entry should be a draft")
	}
}

func TestConfirmAll_AllCompleteAppendsDraft(t *testing.T) {
	l := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("design", "2026-01-05", "2", EntryStatusDraft),
		testEntry("dev", "2026-01-06", "3", EntryStatusDraft),
	}}

	result := l.ConfirmAll()

	if result.Confirmed != 2 || result.Removed != 0 {
		t.Errorf("result = %+v, want 2 confirmed, 0 removed", result)
	}
	if !result.Appended {
		t.Error("expected a fresh draft after confirming every entry")
	}
	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3 (2 confirmed + appended draft)", l.Len())
	}
	if l.Entries[2].IsConfirmed() {
		t.Error("appended entry should be a draft")
	}
}

func TestConfirmAll_AllIncompleteAppendsDraft(t *testing.T) {
	l := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("", "", "", EntryStatusDraft),
		testEntry("half", "", "", EntryStatusDraft),
	}}

	result := l.ConfirmAll()

	if result.Removed != 2 {
		t.Errorf("removed = %d, want 2", result.Removed)
	}
	if !result.Appended || !result.Emptied {
		t.Errorf("result = %+v, want appended after emptying", result)
	}
	if l.Len() != 1 || l.Entries[0].IsConfirmed() {
		t.Errorf("ledger should hold exactly one fresh draft")
	}
}

func TestAllConfirmed_EmptyLedgerIsFalse(t *testing.T) {
	l := &ServiceLedger{}
	if l.AllConfirmed() {
		t.Error("empty ledger must not count as confirmed")
	}
}

func TestLedgerJSON_RoundTrip(t *testing.T) {
	l := &ServiceLedger{Entries: []*ServiceEntry{
		testEntry("design", "2026-01-05", "2", EntryStatusConfirmed),
		testEntry("dev", "2026-01-06", "3", EntryStatusDraft),
	}}

	data, err := json.Marshal(l)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	restored := &ServiceLedger{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if restored.Len() != 2 {
		t.Fatalf("len = %d, want 2", restored.Len())
	}
	if !restored.Entries[0].IsConfirmed() {
		t.Error("confirmed status lost in round trip")
	}
	if restored.Entries[1].IsConfirmed() {
		t.Error("draft status lost in round trip")
	}
}

func TestLedgerJSON_HealsMissingFields(t *testing.T) {
	data := []byte(`[{"description":"imported","date":"2026-01-05","hours":"2"}]`)

	l := &ServiceLedger{}
	if err := json.Unmarshal(data, l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	entry := l.Entries[0]
	if entry.ID == "" {
		t.Error("missing id should be assigned")
	}
	if entry.IsConfirmed() {
		t.Error("missing status should default to draft")
	}
	if entry.Category != CategoryOther {
		t.Errorf("category = %s, want %s", entry.Category, CategoryOther)
	}
}

func TestLedgerJSON_EmptyArrayYieldsOneDraft(t *testing.T) {
	l := &ServiceLedger{}
	if err := json.Unmarshal([]byte(`[]`), l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("len = %d, want 1", l.Len())
	}
}
