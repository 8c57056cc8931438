package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andy/invoicepro/internal/config"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/store"
)

// mock implementations
type mockBlobStore struct {
	blobs map[string][]byte
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{blobs: make(map[string][]byte)}
}

func (m *mockBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := m.blobs[key]; ok {
		return data, nil
	}
	return nil, nil
}

func (m *mockBlobStore) Put(ctx context.Context, key string, value []byte) error {
	m.blobs[key] = value
	return nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	delete(m.blobs, key)
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Invoice.DefaultDueDays = 30
	cfg.User.Name = "Jane Doe Consulting"
	cfg.User.Email = "jane@janedoe.dev"
	return cfg
}

// fillValidDocument drives the service until its document passes validation
func fillValidDocument(t *testing.T, svc DocumentService) {
	t.Helper()
	ctx := context.Background()

	if err := svc.SetProvider(ctx, domain.ProviderInfo{
		Name:         "Jane Doe Consulting",
		BusinessType: "Software Development",
		Address:      "1 Main St",
		Phone:        "555-555-1234",
		Email:        "jane@janedoe.dev",
	}); err != nil {
		t.Fatalf("SetProvider: %v", err)
	}
	if err := svc.SetClient(ctx, domain.ClientInfo{
		Name:    "Acme Corp",
		Address: "2 Corporate Dr",
	}); err != nil {
		t.Fatalf("SetClient: %v", err)
	}
	if err := svc.SetDetails(ctx, domain.InvoiceDetails{
		Number:    "INV-2026-001",
		IssueDate: "2026-03-01",
		DueDate:   "2026-03-31",
	}); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}
	if err := svc.SetBilling(ctx, domain.BillingParameters{
		HourlyRate:   decimal.NewFromInt(75),
		DiscountType: domain.DiscountPercentage,
	}); err != nil {
		t.Fatalf("SetBilling: %v", err)
	}

	entry := svc.Document().Ledger.Entries[0]
	if err := svc.UpdateEntry(ctx, entry.ID, "development", "2026-02-10", "8", domain.CategoryOther); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if fieldErrs, err := svc.ConfirmEntry(ctx, entry.ID); err != nil || len(fieldErrs) > 0 {
		t.Fatalf("ConfirmEntry: errs=%v err=%v", fieldErrs, err)
	}
	// Confirming the sole entry appends a fresh draft; drop it so the
	// document validates
	draft := svc.Document().Ledger.Entries[1]
	if err := svc.DeleteEntry(ctx, draft.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
}

func TestNewDocumentService_Defaults(t *testing.T) {
	svc := NewDocumentService(newMockBlobStore(), testConfig())
	doc := svc.Document()

	if doc.Provider.Name != "Jane Doe Consulting" {
		t.Errorf("provider name = %q, want config value", doc.Provider.Name)
	}
	if doc.Ledger.Len() != 1 {
		t.Errorf("ledger len = %d, want 1", doc.Ledger.Len())
	}

	issue, err := doc.Details.ParsedIssueDate()
	if err != nil {
		t.Fatalf("issue date unparseable: %q", doc.Details.IssueDate)
	}
	due, err := doc.Details.ParsedDueDate()
	if err != nil {
		t.Fatalf("due date unparseable: %q", doc.Details.DueDate)
	}
	if got := due.Sub(issue); got != 30*24*time.Hour {
		t.Errorf("due - issue = %v, want 720h", got)
	}
}

func TestUpdateEntry_RecomputesAndPersists(t *testing.T) {
	blobs := newMockBlobStore()
	svc := NewDocumentService(blobs, testConfig())
	ctx := context.Background()

	if err := svc.SetBilling(ctx, domain.BillingParameters{
		HourlyRate:   decimal.NewFromInt(50),
		DiscountType: domain.DiscountPercentage,
	}); err != nil {
		t.Fatalf("SetBilling: %v", err)
	}

	entry := svc.Document().Ledger.Entries[0]
	if err := svc.UpdateEntry(ctx, entry.ID, "dev", "2026-01-10", "4", domain.CategoryOther); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}

	if got := svc.Totals().Subtotal; !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("subtotal = %s, want 200", got)
	}
	if blobs.blobs[store.DocumentKey] == nil {
		t.Error("document should be persisted after mutation")
	}
}

func TestUpdateEntry_ConfirmedEntryFrozen(t *testing.T) {
	svc := NewDocumentService(newMockBlobStore(), testConfig())
	ctx := context.Background()

	entry := svc.Document().Ledger.Entries[0]
	if err := svc.UpdateEntry(ctx, entry.ID, "dev", "2026-01-10", "4", domain.CategoryOther); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if _, err := svc.ConfirmEntry(ctx, entry.ID); err != nil {
		t.Fatalf("ConfirmEntry: %v", err)
	}

	err := svc.UpdateEntry(ctx, entry.ID, "changed", "2026-01-11", "5", domain.CategoryOther)
	if err != domain.ErrEntryConfirmed {
		t.Errorf("err = %v, want ErrEntryConfirmed", err)
	}
}

func TestConfirmEntry_IncompleteNotifies(t *testing.T) {
	svc := NewDocumentService(newMockBlobStore(), testConfig())

	var notes []domain.Notification
	svc.SetNotifier(func(n domain.Notification) { notes = append(notes, n) })

	entry := svc.Document().Ledger.Entries[0]
	fieldErrs, err := svc.ConfirmEntry(context.Background(), entry.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) == 0 {
		t.Fatal("expected field errors for empty entry")
	}
	if len(notes) != 1 || notes[0].Severity != domain.SeverityError {
		t.Errorf("expected one error notification, got %v", notes)
	}
	if entry.IsConfirmed() {
		t.Error("entry should remain draft")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	blobs := newMockBlobStore()
	svc := NewDocumentService(blobs, testConfig())
	fillValidDocument(t, svc)

	errs, err := svc.Save(context.Background())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("Save blocked by validation: %v", errs)
	}

	restored := NewDocumentService(blobs, testConfig())
	if err := restored.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	doc := restored.Document()
	if doc.Client.Name != "Acme Corp" {
		t.Errorf("client name = %q", doc.Client.Name)
	}
	if doc.Details.Number != "INV-2026-001" {
		t.Errorf("invoice number = %q", doc.Details.Number)
	}
	if doc.Ledger.Len() != 1 {
		t.Fatalf("ledger len = %d, want 1", doc.Ledger.Len())
	}
	if !doc.Ledger.Entries[0].IsConfirmed() {
		t.Error("confirmed status lost in round trip")
	}
	if got := restored.Totals().Subtotal; !got.Equal(decimal.NewFromInt(600)) {
		t.Errorf("subtotal after load = %s, want 600", got)
	}
}

func TestSave_BlockedWhenInvalid(t *testing.T) {
	blobs := newMockBlobStore()
	svc := NewDocumentService(blobs, testConfig())

	errs, err := svc.Save(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(errs) == 0 {
		t.Fatal("expected validation errors for fresh document")
	}
	if blobs.blobs[store.DocumentKey] != nil {
		t.Error("invalid document should not be persisted by Save")
	}
}

func TestLoad_CorruptBlobFallsBack(t *testing.T) {
	blobs := newMockBlobStore()
	blobs.blobs[store.DocumentKey] = []byte("{not json")

	svc := NewDocumentService(blobs, testConfig())
	var notes []domain.Notification
	svc.SetNotifier(func(n domain.Notification) { notes = append(notes, n) })

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load should degrade, not fail: %v", err)
	}

	doc := svc.Document()
	if doc.Ledger.Len() != 1 || doc.Ledger.Entries[0].IsConfirmed() {
		t.Error("expected a fresh document with one draft entry")
	}
	if len(notes) != 1 || notes[0].Severity != domain.SeverityWarning {
		t.Errorf("expected one warning notification, got %v", notes)
	}
}

func TestLoad_NothingStoredKeepsDefaults(t *testing.T) {
	svc := NewDocumentService(newMockBlobStore(), testConfig())

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if svc.Document().Provider.Name != "Jane Doe Consulting" {
		t.Error("defaults should survive an empty store")
	}
}

func TestClear_ResetsDocumentAndStore(t *testing.T) {
	blobs := newMockBlobStore()
	svc := NewDocumentService(blobs, testConfig())
	ctx := context.Background()

	if _, err := svc.AddEntry(ctx); err != nil {
		t.Fatalf("AddEntry: %v", err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	if blobs.blobs[store.DocumentKey] != nil {
		t.Error("stored document should be deleted")
	}
	if svc.Document().Ledger.Len() != 1 {
		t.Errorf("ledger len = %d, want 1", svc.Document().Ledger.Len())
	}
}

func TestConfirmAll_AllCompleteLeavesOpenDraft(t *testing.T) {
	svc := NewDocumentService(newMockBlobStore(), testConfig())
	ctx := context.Background()

	var notes []domain.Notification
	svc.SetNotifier(func(n domain.Notification) { notes = append(notes, n) })

	entry := svc.Document().Ledger.Entries[0]
	if err := svc.UpdateEntry(ctx, entry.ID, "dev", "2026-01-10", "4", domain.CategoryOther); err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}

	result, err := svc.ConfirmAll(ctx)
	if err != nil {
		t.Fatalf("ConfirmAll: %v", err)
	}
	if result.Confirmed != 1 || result.Removed != 0 {
		t.Errorf("result = %+v, want 1 confirmed, 0 removed", result)
	}

	ledger := svc.Document().Ledger
	if ledger.Len() != 2 {
		t.Fatalf("ledger len = %d, want 2 (confirmed + open draft)", ledger.Len())
	}
	if !ledger.Entries[0].IsConfirmed() || ledger.Entries[1].IsConfirmed() {
		t.Error("expected one confirmed entry followed by an open draft")
	}
	if len(notes) == 0 || notes[len(notes)-1].Severity != domain.SeveritySuccess {
		t.Errorf("expected a success notification, got %v", notes)
	}
}

func TestSetDetails_DefaultsDueDate(t *testing.T) {
	svc := NewDocumentService(newMockBlobStore(), testConfig())
	ctx := context.Background()

	if err := svc.SetDetails(ctx, domain.InvoiceDetails{
		Number:    "INV-1",
		IssueDate: "2026-03-01",
	}); err != nil {
		t.Fatalf("SetDetails: %v", err)
	}

	if got := svc.Document().Details.DueDate; got != "2026-03-31" {
		t.Errorf("due date = %q, want 2026-03-31", got)
	}
}
