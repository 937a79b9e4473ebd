package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/praxis-events/registration-api/internal/models"
	"github.com/praxis-events/registration-api/pkg/export"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

type exportLister interface {
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error)
}

// ExportResult bundles the rendered document with its download metadata.
type ExportResult struct {
	Content     []byte
	Filename    string
	ContentType string
}

// ExportService renders the registration list as CSV or PDF for admins.
type ExportService struct {
	repo exportLister
	csv  *export.CSVExporter
	pdf  *export.PDFExporter
}

// NewExportService constructs the service.
func NewExportService(repo exportLister) *ExportService {
	return &ExportService{
		repo: repo,
		csv:  export.NewCSVExporter(),
		pdf:  export.NewPDFExporter(),
	}
}

var exportHeaders = []string{
	"Reference", "Status", "Title", "First Name", "Last Name", "Company",
	"City", "Telephone", "Email", "Practice Track", "Payment Method", "Created",
}

// Export renders registrations in the requested format, optionally
// filtered by status.
func (s *ExportService) Export(ctx context.Context, format string, status models.RegistrationStatus) (*ExportResult, error) {
	records, err := s.repo.List(ctx, models.RegistrationFilter{Status: status, Limit: 200})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}

	table := export.Table{Headers: exportHeaders, Rows: make([][]string, 0, len(records))}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.ID,
			string(r.Status),
			r.Title,
			r.FirstName,
			r.LastName,
			r.Company,
			r.City,
			r.Telephone,
			r.Email,
			r.PracticeTrack,
			r.PaymentMethod,
			r.CreatedAt.Format(time.RFC3339),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch strings.ToLower(format) {
	case "csv", "":
		content, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{
			Content:     content,
			Filename:    fmt.Sprintf("registrations_%s.csv", stamp),
			ContentType: "text/csv",
		}, nil
	case "pdf":
		content, err := s.pdf.Render(table, "Registrations")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{
			Content:     content,
			Filename:    fmt.Sprintf("registrations_%s.pdf", stamp),
			ContentType: "application/pdf",
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}
