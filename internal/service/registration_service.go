package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/praxis-events/registration-api/internal/dto"
	"github.com/praxis-events/registration-api/internal/models"
	"github.com/praxis-events/registration-api/internal/notification"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

type registrationStore interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id string) (*models.Registration, error)
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, error)
	UpdateStatusAndNotes(ctx context.Context, id string, status models.RegistrationStatus, notes string) error
}

type proofStorage interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
}

// ProofDownload bundles the payment-proof stream with its metadata.
type ProofDownload struct {
	File        *os.File
	Filename    string
	ContentType string
	SizeBytes   int64
}

// RegistrationService orchestrates intake and the status-transition
// workflow.
type RegistrationService struct {
	repo       registrationStore
	storage    proofStorage
	validator  *RegistrationValidator
	notifier   notification.Notifier
	templates  *notification.Templates
	adminAlert string
	logger     *zap.Logger
}

// NewRegistrationService constructs the service. A nil notifier degrades to
// the no-op implementation; working email is never a precondition.
func NewRegistrationService(repo registrationStore, storage proofStorage, validator *RegistrationValidator, notifier notification.Notifier, templates *notification.Templates, adminAlert string, logger *zap.Logger) *RegistrationService {
	if notifier == nil {
		notifier = notification.Noop{}
	}
	if templates == nil {
		templates = notification.NewTemplates("", nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		repo:       repo,
		storage:    storage,
		validator:  validator,
		notifier:   notifier,
		templates:  templates,
		adminAlert: adminAlert,
		logger:     logger,
	}
}

// Submit runs the intake: validate, persist the file, persist the row,
// then notify the applicant and the organizers. The id is generated first
// and passed explicitly into both the file naming and the record
// construction.
func (s *RegistrationService) Submit(ctx context.Context, req dto.CreateRegistrationRequest, upload RegistrationUpload) (*models.Registration, error) {
	if err := s.validator.ValidateFields(req); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateUpload(upload); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	filename := StorageFilename(id, upload.Filename)

	if _, err := upload.Content.Seek(0, io.SeekStart); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset upload stream")
	}
	path, err := s.storage.SaveStream(filename, upload.Content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrSubmissionFailed.Code, appErrors.ErrSubmissionFailed.Status, appErrors.ErrSubmissionFailed.Message)
	}

	reg := &models.Registration{
		ID:              id,
		Status:          models.StatusPendingVerification,
		MemberFlag:      strings.TrimSpace(req.MemberFlag),
		InterestFlag:    strings.TrimSpace(req.InterestFlag),
		Title:           strings.TrimSpace(req.Title),
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Company:         strings.TrimSpace(req.Company),
		POBox:           strings.TrimSpace(req.POBox),
		City:            strings.TrimSpace(req.City),
		Telephone:       strings.TrimSpace(req.Telephone),
		Email:           strings.TrimSpace(req.Email),
		PracticeTrack:   strings.TrimSpace(req.PracticeTrack),
		PaymentMethod:   strings.TrimSpace(req.PaymentMethod),
		Consent:         strings.TrimSpace(req.Consent),
		PaymentFileName: upload.Filename,
		PaymentFilePath: path,
	}
	if err := s.repo.Create(ctx, reg); err != nil {
		// Roll the file back so a failed intake leaves nothing behind.
		_ = s.storage.Delete(path)
		return nil, appErrors.Wrap(err, appErrors.ErrSubmissionFailed.Code, appErrors.ErrSubmissionFailed.Status, appErrors.ErrSubmissionFailed.Message)
	}

	subject, body := s.templates.Confirmation(*reg)
	s.dispatch(ctx, reg.Email, subject, body)
	if s.adminAlert != "" {
		subject, body = s.templates.AdminAlert(*reg)
		s.dispatch(ctx, s.adminAlert, subject, body)
	}

	return reg, nil
}

// Transition moves a registration to the target status and persists the
// review notes. The applicant is notified only when the status actually
// changes; note-only edits stay silent.
func (s *RegistrationService) Transition(ctx context.Context, id, target, notes string) (*models.Registration, error) {
	status := models.RegistrationStatus(strings.TrimSpace(target))
	if !models.IsValidStatus(status) {
		return nil, appErrors.ErrInvalidStatus
	}

	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}

	if err := s.repo.UpdateStatusAndNotes(ctx, id, status, notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update registration status")
	}

	if status != reg.Status {
		subject, body := s.templates.ForTransition(*reg, reg.Status, status, notes)
		s.dispatch(ctx, reg.Email, subject, body)
	}

	updated := *reg
	updated.Status = status
	updated.AdminNotes = notes
	return &updated, nil
}

// List returns summary rows, newest-created first.
func (s *RegistrationService) List(ctx context.Context, filter models.RegistrationFilter) ([]dto.RegistrationSummary, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	summaries := make([]dto.RegistrationSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, dto.SummaryFromModel(record))
	}
	return summaries, nil
}

// Get returns the full record.
func (s *RegistrationService) Get(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	return reg, nil
}

// DownloadProof opens the stored payment proof for streaming under its
// original filename.
func (s *RegistrationService) DownloadProof(ctx context.Context, id string) (*ProofDownload, error) {
	reg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	file, err := s.storage.Open(reg.PaymentFilePath)
	if err != nil {
		return nil, appErrors.ErrNotFound
	}
	info, err := file.Stat()
	if err != nil {
		file.Close() //nolint:errcheck
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read payment proof")
	}
	return &ProofDownload{
		File:        file,
		Filename:    reg.PaymentFileName,
		ContentType: contentTypeForFile(reg.PaymentFilePath),
		SizeBytes:   info.Size(),
	}, nil
}

func (s *RegistrationService) dispatch(ctx context.Context, to, subject, body string) {
	if strings.TrimSpace(to) == "" {
		return
	}
	if err := s.notifier.Send(ctx, to, subject, body); err != nil {
		s.logger.Warn("notification dispatch failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func contentTypeForFile(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
