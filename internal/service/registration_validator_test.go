package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praxis-events/registration-api/internal/dto"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

func validIntakeRequest() dto.CreateRegistrationRequest {
	return dto.CreateRegistrationRequest{
		MemberFlag:    "yes",
		InterestFlag:  "yes",
		Title:         "Mr.",
		FirstName:     "Ann",
		LastName:      "Lee",
		Company:       "Lee & Partners",
		City:          "Windhoek",
		Telephone:     "555-0100",
		Email:         "ann@example.com",
		PracticeTrack: "Civil",
		PaymentMethod: "Bank Transfer",
		Consent:       "on",
	}
}

func validUpload() RegistrationUpload {
	content := strings.NewReader("%PDF-1.4 fake receipt")
	return RegistrationUpload{
		Filename:    "receipt.pdf",
		Size:        21,
		ContentType: "application/pdf",
		Content:     content,
	}
}

func TestValidateFieldsAccepted(t *testing.T) {
	v := NewRegistrationValidator(0)
	require.NoError(t, v.ValidateFields(validIntakeRequest()))
}

func TestValidateFieldsEachRequiredFieldEnforced(t *testing.T) {
	v := NewRegistrationValidator(0)

	mutations := map[string]func(*dto.CreateRegistrationRequest){
		"member_flag":    func(r *dto.CreateRegistrationRequest) { r.MemberFlag = "" },
		"interest_flag":  func(r *dto.CreateRegistrationRequest) { r.InterestFlag = "" },
		"title":          func(r *dto.CreateRegistrationRequest) { r.Title = "" },
		"first_name":     func(r *dto.CreateRegistrationRequest) { r.FirstName = "   " },
		"last_name":      func(r *dto.CreateRegistrationRequest) { r.LastName = "" },
		"telephone":      func(r *dto.CreateRegistrationRequest) { r.Telephone = "" },
		"email":          func(r *dto.CreateRegistrationRequest) { r.Email = "" },
		"practice_track": func(r *dto.CreateRegistrationRequest) { r.PracticeTrack = "" },
		"payment_method": func(r *dto.CreateRegistrationRequest) { r.PaymentMethod = "" },
		"consent":        func(r *dto.CreateRegistrationRequest) { r.Consent = "" },
	}

	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			req := validIntakeRequest()
			mutate(&req)
			err := v.ValidateFields(req)
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			require.Equal(t, "Please complete all required fields.", appErr.Message)
		})
	}
}

func TestValidateFieldsRejectsMalformedEmail(t *testing.T) {
	v := NewRegistrationValidator(0)
	req := validIntakeRequest()
	req.Email = "not-an-email"
	err := v.ValidateFields(req)
	require.Error(t, err)
	require.Equal(t, "Please complete all required fields.", appErrors.FromError(err).Message)
}

func TestValidateFieldsOptionalFieldsMayBeBlank(t *testing.T) {
	v := NewRegistrationValidator(0)
	req := validIntakeRequest()
	req.Company = ""
	req.POBox = ""
	req.City = ""
	require.NoError(t, v.ValidateFields(req))
}

func TestValidateUpload(t *testing.T) {
	v := NewRegistrationValidator(0)

	t.Run("accepted pdf", func(t *testing.T) {
		require.NoError(t, v.ValidateUpload(validUpload()))
	})

	t.Run("accepted jpeg with charset param", func(t *testing.T) {
		upload := validUpload()
		upload.Filename = "receipt.JPG"
		upload.ContentType = "image/jpeg; charset=binary"
		require.NoError(t, v.ValidateUpload(upload))
	})

	t.Run("missing file", func(t *testing.T) {
		err := v.ValidateUpload(RegistrationUpload{})
		require.Error(t, err)
		require.Equal(t, "Payment proof is required.", appErrors.FromError(err).Message)
	})

	t.Run("content type not accepted", func(t *testing.T) {
		upload := validUpload()
		upload.ContentType = "image/gif"
		upload.Filename = "receipt.gif"
		err := v.ValidateUpload(upload)
		require.Error(t, err)
		require.Equal(t, "Invalid file type. Please upload PDF, JPG, JPEG, or PNG.", appErrors.FromError(err).Message)
	})

	t.Run("extension not accepted", func(t *testing.T) {
		upload := validUpload()
		upload.Filename = "receipt.docx"
		err := v.ValidateUpload(upload)
		require.Error(t, err)
		require.Equal(t, "Invalid file type. Please upload PDF, JPG, JPEG, or PNG.", appErrors.FromError(err).Message)
	})

	t.Run("pdf declared with jpg extension rejected", func(t *testing.T) {
		upload := validUpload()
		upload.Filename = "receipt.jpg"
		upload.ContentType = "application/pdf"
		err := v.ValidateUpload(upload)
		require.Error(t, err)
		require.Equal(t, "Invalid file type. Please upload PDF, JPG, JPEG, or PNG.", appErrors.FromError(err).Message)
	})

	t.Run("oversized upload rejected", func(t *testing.T) {
		upload := validUpload()
		upload.Size = 10*1024*1024 + 1
		err := v.ValidateUpload(upload)
		require.Error(t, err)
		require.Equal(t, "File too large. Maximum size is 10MB.", appErrors.FromError(err).Message)
	})

	t.Run("file at the limit accepted", func(t *testing.T) {
		upload := validUpload()
		upload.Size = 10 * 1024 * 1024
		require.NoError(t, v.ValidateUpload(upload))
	})
}

func TestStorageFilename(t *testing.T) {
	require.Equal(t, "abc.pdf", StorageFilename("abc", "Receipt.PDF"))
	require.Equal(t, "abc.jpeg", StorageFilename("abc", "photo.JPEG"))
	require.Equal(t, "abc.png", StorageFilename("abc", "../../evil.png"))
	require.Equal(t, "abc.bin", StorageFilename("abc", "no-extension"))
	require.Equal(t, "abc.bin", StorageFilename("abc", "weird.p df"))
	require.Equal(t, "abc.bin", StorageFilename("abc", "trailing."))
}
