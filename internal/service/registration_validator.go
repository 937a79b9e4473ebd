package service

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/praxis-events/registration-api/internal/dto"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

// Canonical rejection messages surfaced verbatim to the applicant.
const (
	msgMissingFields   = "Please complete all required fields."
	msgInvalidFileType = "Invalid file type. Please upload PDF, JPG, JPEG, or PNG."
	msgFileTooLarge    = "File too large. Maximum size is 10MB."
	msgMissingFile     = "Payment proof is required."
)

const defaultMaxFileSize = 10 * 1024 * 1024

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// extensionContentTypes pairs each accepted extension with the content type
// it must be declared under. A .jpg upload declared as application/pdf is
// rejected even though both values are individually acceptable.
var extensionContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// RegistrationUpload carries the payment-proof descriptor and stream.
type RegistrationUpload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.ReadSeeker
}

// RegistrationValidator makes the accept/reject decision for intake
// payloads. It has no side effects.
type RegistrationValidator struct {
	maxFileSize int64
	validate    *validator.Validate
}

// NewRegistrationValidator builds a validator with the configured size cap.
func NewRegistrationValidator(maxFileSize int64) *RegistrationValidator {
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxFileSize
	}
	return &RegistrationValidator{maxFileSize: maxFileSize, validate: validator.New()}
}

// ValidateFields checks required-field presence. Evaluation order is fixed
// so identical input always reports the same failure.
func (v *RegistrationValidator) ValidateFields(req dto.CreateRegistrationRequest) error {
	required := []string{
		req.MemberFlag,
		req.InterestFlag,
		req.Title,
		req.FirstName,
		req.LastName,
		req.Telephone,
		req.Email,
		req.PracticeTrack,
		req.PaymentMethod,
		req.Consent,
	}
	for _, value := range required {
		if strings.TrimSpace(value) == "" {
			return appErrors.Clone(appErrors.ErrValidation, msgMissingFields)
		}
	}
	if err := v.validate.Var(strings.TrimSpace(req.Email), "email"); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, msgMissingFields)
	}
	return nil
}

// ValidateUpload checks the payment proof before anything is persisted.
// Both the declared content type and the filename extension must be
// acceptable; a mismatch between the two rejects the upload.
func (v *RegistrationValidator) ValidateUpload(upload RegistrationUpload) error {
	if upload.Content == nil || upload.Size <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, msgMissingFile)
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if idx := strings.Index(contentType, ";"); idx >= 0 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return appErrors.Clone(appErrors.ErrValidation, msgInvalidFileType)
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(upload.Filename)))
	want, ok := extensionContentTypes[ext]
	if !ok || want != contentType {
		return appErrors.Clone(appErrors.ErrValidation, msgInvalidFileType)
	}
	if upload.Size > v.maxFileSize {
		return appErrors.Clone(appErrors.ErrValidation, msgFileTooLarge)
	}
	return nil
}

// StorageFilename derives the stored filename from the assigned id and the
// sanitized extension of the original name. Pure function of its inputs.
func StorageFilename(id, originalName string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if !validExtension(ext) {
		ext = ".bin"
	}
	return id + ext
}

func validExtension(ext string) bool {
	if len(ext) < 2 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
