package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andy/invoicepro/internal/config"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/logging"
	"github.com/andy/invoicepro/internal/store"
)

var ErrDocumentInvalid = errors.New("document has validation errors")

// Notifier receives user-facing notifications. The service emits them; the
// UI layer renders them.
type Notifier func(domain.Notification)

// DocumentService owns the single in-memory invoice document. Every mutation
// recomputes totals and persists the whole document, mirroring the
// edit-recompute-save cycle of the form it models.
type DocumentService interface {
	// Document returns the live document. Callers must mutate it only
	// through service operations.
	Document() *domain.InvoiceDocument

	// Totals returns the totals computed by the most recent mutation
	Totals() domain.ComputedTotals

	// AddEntry appends a new draft entry and returns its id
	AddEntry(ctx context.Context) (*domain.ServiceEntry, error)

	// UpdateEntry replaces a draft entry's field values.
	// Confirmed entries are frozen and reject updates.
	UpdateEntry(ctx context.Context, id, description, date, hours string, category domain.Category) error

	// ConfirmEntry validates and locks an entry. Field errors mean the
	// entry stayed draft; they are reported, not returned as err.
	ConfirmEntry(ctx context.Context, id string) ([]domain.ValidationError, error)

	// EditEntry returns a confirmed entry to draft
	EditEntry(ctx context.Context, id string) error

	// DeleteEntry removes an entry, auto-appending a fresh draft if the
	// ledger would be left empty
	DeleteEntry(ctx context.Context, id string) error

	// ConfirmAll confirms every complete draft entry and deletes the
	// incomplete ones
	ConfirmAll(ctx context.Context) (domain.ConfirmAllResult, error)

	// Header and settings mutations; each triggers recompute + save
	SetProvider(ctx context.Context, p domain.ProviderInfo) error
	SetClient(ctx context.Context, c domain.ClientInfo) error
	SetDetails(ctx context.Context, d domain.InvoiceDetails) error
	SetBilling(ctx context.Context, b domain.BillingParameters) error
	SetNotes(ctx context.Context, notes string) error

	// Validate runs the full validation pipeline without mutating anything
	Validate() []domain.ValidationError

	// Save persists the document if it passes validation; a non-empty
	// result means the save was blocked
	Save(ctx context.Context) ([]domain.ValidationError, error)

	// Load restores the stored document, falling back to a fresh default
	// document when nothing is stored or the blob is corrupt
	Load(ctx context.Context) error

	// Clear wipes the stored document and resets to a fresh default
	Clear(ctx context.Context) error

	// SetNotifier installs the notification sink
	SetNotifier(n Notifier)
}

type documentService struct {
	mu     sync.Mutex
	store  store.BlobStore
	cfg    *config.Config
	notify Notifier

	doc    *domain.InvoiceDocument
	totals domain.ComputedTotals
}

// NewDocumentService creates a document service starting from a fresh
// default document. Call Load to restore stored data.
func NewDocumentService(blobStore store.BlobStore, cfg *config.Config) DocumentService {
	s := &documentService{
		store:  blobStore,
		cfg:    cfg,
		notify: func(domain.Notification) {},
	}
	s.doc = s.defaultDocument()
	s.totals = domain.ComputeTotals(s.doc.Ledger, s.doc.Billing)
	return s
}

func (s *documentService) SetNotifier(n Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n == nil {
		n = func(domain.Notification) {}
	}
	s.notify = n
}

// defaultDocument builds a fresh document: provider identity from config,
// issue date today, due date after the configured number of days
func (s *documentService) defaultDocument() *domain.InvoiceDocument {
	doc := domain.NewInvoiceDocument()
	doc.Provider = domain.ProviderInfo{
		Name:         s.cfg.User.Name,
		BusinessType: s.cfg.User.BusinessType,
		Address:      s.cfg.User.Address,
		Phone:        s.cfg.User.Phone,
		Email:        s.cfg.User.Email,
	}

	now := time.Now()
	doc.Details.IssueDate = now.Format(domain.HeaderDateFormat)
	doc.Details.DueDate = now.AddDate(0, 0, s.cfg.Invoice.DefaultDueDays).Format(domain.HeaderDateFormat)
	return doc
}

func (s *documentService) Document() *domain.InvoiceDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *documentService) Totals() domain.ComputedTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// recomputeAndPersist is the tail of every mutation
func (s *documentService) recomputeAndPersist(ctx context.Context) error {
	s.totals = domain.ComputeTotals(s.doc.Ledger, s.doc.Billing)

	data, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	if err := s.store.Put(ctx, store.DocumentKey, data); err != nil {
		logging.GetLogger().WithError(err).Error("document save failed")
		s.notify(domain.Notification{
			Message:  "Error saving invoice data",
			Severity: domain.SeverityError,
		})
		return err
	}
	return nil
}

func (s *documentService) AddEntry(ctx context.Context) (*domain.ServiceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.doc.Ledger.Add()
	if err := s.recomputeAndPersist(ctx); err != nil {
		return entry, err
	}
	return entry, nil
}

func (s *documentService) UpdateEntry(ctx context.Context, id, description, date, hours string, category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, err := s.doc.Ledger.Get(id)
	if err != nil {
		return err
	}
	if entry.IsConfirmed() {
		return domain.ErrEntryConfirmed
	}

	entry.Description = description
	entry.Date = date
	entry.Hours = hours
	entry.Category = category
	return s.recomputeAndPersist(ctx)
}

func (s *documentService) ConfirmEntry(ctx context.Context, id string) ([]domain.ValidationError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fieldErrs, _, err := s.doc.Ledger.Confirm(id)
	if err != nil {
		return nil, err
	}
	if len(fieldErrs) > 0 {
		s.notify(domain.Notification{
			Message:  "Please fill in all service details correctly",
			Severity: domain.SeverityError,
		})
		return fieldErrs, nil
	}

	if err := s.recomputeAndPersist(ctx); err != nil {
		return nil, err
	}
	s.notify(domain.Notification{
		Message:  "Service confirmed successfully",
		Severity: domain.SeveritySuccess,
	})
	return nil, nil
}

func (s *documentService) EditEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.doc.Ledger.Edit(id); err != nil {
		return err
	}
	return s.recomputeAndPersist(ctx)
}

func (s *documentService) DeleteEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.doc.Ledger.Delete(id); err != nil {
		return err
	}
	if err := s.recomputeAndPersist(ctx); err != nil {
		return err
	}
	s.notify(domain.Notification{
		Message:  "Service removed",
		Severity: domain.SeverityInfo,
	})
	return nil
}

func (s *documentService) ConfirmAll(ctx context.Context) (domain.ConfirmAllResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.doc.Ledger.ConfirmAll()
	if err := s.recomputeAndPersist(ctx); err != nil {
		return result, err
	}

	switch {
	case result.Emptied:
		s.notify(domain.Notification{
			Message:  "All incomplete services were removed. Please add at least one service.",
			Severity: domain.SeverityWarning,
		})
	case result.Removed > 0:
		s.notify(domain.Notification{
			Message:  fmt.Sprintf("Confirmed %d services and removed %d incomplete services.", result.Confirmed, result.Removed),
			Severity: domain.SeverityInfo,
		})
	case result.Confirmed > 0:
		s.notify(domain.Notification{
			Message:  fmt.Sprintf("All %d services confirmed successfully.", result.Confirmed),
			Severity: domain.SeveritySuccess,
		})
	}
	return result, nil
}

func (s *documentService) SetProvider(ctx context.Context, p domain.ProviderInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Provider = p
	return s.recomputeAndPersist(ctx)
}

func (s *documentService) SetClient(ctx context.Context, c domain.ClientInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Client = c
	return s.recomputeAndPersist(ctx)
}

func (s *documentService) SetDetails(ctx context.Context, d domain.InvoiceDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// When an issue date is set and the due date was left blank, default
	// the due date to the configured terms
	if d.DueDate == "" {
		if issue, err := time.Parse(domain.HeaderDateFormat, d.IssueDate); err == nil {
			d.DueDate = issue.AddDate(0, 0, s.cfg.Invoice.DefaultDueDays).Format(domain.HeaderDateFormat)
		}
	}

	s.doc.Details = d
	return s.recomputeAndPersist(ctx)
}

func (s *documentService) SetBilling(ctx context.Context, b domain.BillingParameters) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.DiscountType = domain.ParseDiscountType(string(b.DiscountType))
	s.doc.Billing = b
	return s.recomputeAndPersist(ctx)
}

func (s *documentService) SetNotes(ctx context.Context, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Notes = notes
	return s.recomputeAndPersist(ctx)
}

func (s *documentService) Validate() []domain.ValidationError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Validate(s.doc)
}

func (s *documentService) Save(ctx context.Context) ([]domain.ValidationError, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if errs := domain.Validate(s.doc); len(errs) > 0 {
		return errs, nil
	}

	if err := s.recomputeAndPersist(ctx); err != nil {
		return nil, err
	}
	s.notify(domain.Notification{
		Message:  "Invoice saved successfully",
		Severity: domain.SeveritySuccess,
	})
	return nil, nil
}

func (s *documentService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Get(ctx, store.DocumentKey)
	if err != nil {
		return err
	}
	if data == nil {
		// Nothing stored yet; keep the fresh default document
		s.totals = domain.ComputeTotals(s.doc.Ledger, s.doc.Billing)
		return nil
	}

	doc := &domain.InvoiceDocument{}
	if err := json.Unmarshal(data, doc); err != nil {
		// Corrupt blob: degrade to a fresh document rather than crash
		logging.GetLogger().WithError(err).Error("stored invoice data is corrupt")
		s.notify(domain.Notification{
			Message:  "Error loading saved invoice data",
			Severity: domain.SeverityWarning,
		})
		s.doc = s.defaultDocument()
		s.totals = domain.ComputeTotals(s.doc.Ledger, s.doc.Billing)
		return nil
	}

	doc.Normalize()
	s.doc = doc
	s.totals = domain.ComputeTotals(s.doc.Ledger, s.doc.Billing)
	s.notify(domain.Notification{
		Message:  "Invoice data loaded successfully",
		Severity: domain.SeveritySuccess,
	})
	return nil
}

func (s *documentService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, store.DocumentKey); err != nil {
		return err
	}
	s.doc = s.defaultDocument()
	s.totals = domain.ComputeTotals(s.doc.Ledger, s.doc.Billing)
	s.notify(domain.Notification{
		Message:  "Invoice data cleared",
		Severity: domain.SeverityInfo,
	})
	return nil
}
