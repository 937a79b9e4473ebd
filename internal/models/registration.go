package models

import "time"

// RegistrationStatus captures the manual payment-verification workflow state.
type RegistrationStatus string

const (
	StatusPendingVerification  RegistrationStatus = "Pending Verification"
	StatusPaymentVerified      RegistrationStatus = "Payment Verified"
	StatusPaymentRejected      RegistrationStatus = "Payment Rejected"
	StatusAwaitingResubmission RegistrationStatus = "Awaiting Resubmission"
	StatusCancelled            RegistrationStatus = "Cancelled"
	StatusWaitlisted           RegistrationStatus = "Waitlisted"
	StatusConfirmed            RegistrationStatus = "Confirmed"
)

// AllowedStatuses is the closed set of statuses a registration may hold.
// Every status permits further transitions so reviewers can always correct
// mistakes by hand.
var AllowedStatuses = []RegistrationStatus{
	StatusPendingVerification,
	StatusPaymentVerified,
	StatusPaymentRejected,
	StatusAwaitingResubmission,
	StatusCancelled,
	StatusWaitlisted,
	StatusConfirmed,
}

// IsValidStatus reports set membership of the target value.
func IsValidStatus(s RegistrationStatus) bool {
	for _, allowed := range AllowedStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Registration is one applicant's submission record. Apart from Status and
// AdminNotes the record is immutable after creation; there is no delete.
type Registration struct {
	ID              string             `db:"id" json:"id"`
	Status          RegistrationStatus `db:"status" json:"status"`
	MemberFlag      string             `db:"member_flag" json:"memberFlag"`
	InterestFlag    string             `db:"interest_flag" json:"interestFlag"`
	Title           string             `db:"title" json:"title"`
	FirstName       string             `db:"first_name" json:"firstName"`
	LastName        string             `db:"last_name" json:"lastName"`
	Company         string             `db:"company" json:"company,omitempty"`
	POBox           string             `db:"po_box" json:"poBox,omitempty"`
	City            string             `db:"city" json:"city,omitempty"`
	Telephone       string             `db:"telephone" json:"telephone"`
	Email           string             `db:"email" json:"email"`
	PracticeTrack   string             `db:"practice_track" json:"practiceTrack"`
	PaymentMethod   string             `db:"payment_method" json:"paymentMethod"`
	Consent         string             `db:"consent" json:"consent"`
	PaymentFileName string             `db:"payment_file_name" json:"paymentFileName"`
	PaymentFilePath string             `db:"payment_file_path" json:"-"`
	AdminNotes      string             `db:"admin_notes" json:"adminNotes,omitempty"`
	CreatedAt       time.Time          `db:"created_at" json:"createdAt"`
}

// RegistrationFilter constrains listing queries.
type RegistrationFilter struct {
	Status RegistrationStatus
	Limit  int
	Offset int
}

// StatusCount pairs one workflow status with its row count.
type StatusCount struct {
	Status RegistrationStatus `db:"status" json:"status"`
	Count  int64              `db:"count" json:"count"`
}
