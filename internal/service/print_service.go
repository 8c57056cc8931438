package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/andy/invoicepro/internal/config"
	"github.com/andy/invoicepro/internal/domain"
	"github.com/andy/invoicepro/internal/logging"
	"github.com/andy/invoicepro/internal/pdf"
)

// PrintService produces the print projection and exports it as a PDF. Both
// operations are gated on a fully valid document.
type PrintService interface {
	// BuildView runs validation and, when clean, builds the print
	// projection. Validation errors block the projection.
	BuildView() (*domain.PrintView, []domain.ValidationError, error)

	// ExportPDF writes the invoice as a PDF and returns the file path.
	// An empty path means the configured output directory with a name
	// derived from the invoice number.
	ExportPDF(ctx context.Context, path string) (string, []domain.ValidationError, error)
}

type printService struct {
	docs     DocumentService
	renderer *pdf.Renderer
	cfg      *config.Config
}

func NewPrintService(docs DocumentService, cfg *config.Config) PrintService {
	return &printService{
		docs:     docs,
		renderer: pdf.NewRenderer(),
		cfg:      cfg,
	}
}

func (s *printService) BuildView() (*domain.PrintView, []domain.ValidationError, error) {
	if errs := s.docs.Validate(); len(errs) > 0 {
		return nil, errs, ErrDocumentInvalid
	}

	view, err := domain.BuildPrintView(s.docs.Document(), s.docs.Totals())
	if err != nil {
		return nil, nil, err
	}
	return view, nil, nil
}

func (s *printService) ExportPDF(ctx context.Context, path string) (string, []domain.ValidationError, error) {
	view, errs, err := s.BuildView()
	if err != nil {
		return "", errs, err
	}
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	if path == "" {
		path = filepath.Join(s.cfg.Invoice.OutputDir, view.FileName()+".pdf")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := s.renderer.WriteFile(view, path); err != nil {
		logging.GetLogger().WithError(err).Error("pdf export failed")
		return "", nil, err
	}

	logging.GetLogger().WithField("path", path).Info("invoice exported")
	return path, nil, nil
}

// IsNothingToPrint reports whether the error means no complete entries
// survived the print projection
func IsNothingToPrint(err error) bool {
	return errors.Is(err, domain.ErrNothingToPrint)
}
