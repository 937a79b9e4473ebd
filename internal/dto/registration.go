package dto

import (
	"time"

	"github.com/praxis-events/registration-api/internal/models"
)

// CreateRegistrationRequest is the public intake form payload. Field
// presence is checked by the registration validator so rejections use the
// canonical wording; binding tags only shape the multipart decoding.
type CreateRegistrationRequest struct {
	MemberFlag    string `form:"member_flag"`
	InterestFlag  string `form:"interest_flag"`
	Title         string `form:"title"`
	FirstName     string `form:"first_name"`
	LastName      string `form:"last_name"`
	Company       string `form:"company"`
	POBox         string `form:"po_box"`
	City          string `form:"city"`
	Telephone     string `form:"telephone"`
	Email         string `form:"email" binding:"omitempty,email"`
	PracticeTrack string `form:"practice_track"`
	PaymentMethod string `form:"payment_method"`
	Consent       string `form:"consent"`
}

// IntakeResponse returns the generated reference id to the applicant.
type IntakeResponse struct {
	RegistrationID string `json:"registration_id"`
}

// UpdateStatusRequest moves a registration to a new workflow status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// RegistrationSummary is the admin list row. It deliberately excludes the
// stored file path and the review notes.
type RegistrationSummary struct {
	ID              string                    `json:"id"`
	Status          models.RegistrationStatus `json:"status"`
	Title           string                    `json:"title"`
	FirstName       string                    `json:"firstName"`
	LastName        string                    `json:"lastName"`
	Email           string                    `json:"email"`
	PracticeTrack   string                    `json:"practiceTrack"`
	PaymentMethod   string                    `json:"paymentMethod"`
	PaymentFileName string                    `json:"paymentFileName"`
	CreatedAt       time.Time                 `json:"createdAt"`
}

// SummaryFromModel projects a full record onto its list row.
func SummaryFromModel(r models.Registration) RegistrationSummary {
	return RegistrationSummary{
		ID:              r.ID,
		Status:          r.Status,
		Title:           r.Title,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		PracticeTrack:   r.PracticeTrack,
		PaymentMethod:   r.PaymentMethod,
		PaymentFileName: r.PaymentFileName,
		CreatedAt:       r.CreatedAt,
	}
}
