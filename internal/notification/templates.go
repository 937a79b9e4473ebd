package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/praxis-events/registration-api/internal/models"
)

// Templates renders the lifecycle emails for a registration. Rendering is
// pure: identical input yields identical output, except for the submission
// date in the intake confirmation which comes from the injected clock.
type Templates struct {
	EventName string
	Now       func() time.Time
}

// NewTemplates builds a template set for the named event.
func NewTemplates(eventName string, now func() time.Time) *Templates {
	if eventName == "" {
		eventName = "Annual Conference"
	}
	if now == nil {
		now = time.Now
	}
	return &Templates{EventName: eventName, Now: now}
}

// Confirmation is sent to the applicant right after intake.
func (t *Templates) Confirmation(reg models.Registration) (string, string) {
	subject := fmt.Sprintf("Registration Received - %s", t.EventName)

	b := &strings.Builder{}
	fmt.Fprintf(b, "Dear %s %s %s,\n\n", reg.Title, reg.FirstName, reg.LastName)
	fmt.Fprintf(b, "Thank you for registering for the %s.\n\n", t.EventName)
	fmt.Fprintf(b, "Your reference number is %s. Please quote it in all correspondence.\n\n", reg.ID)
	b.WriteString("Submission details:\n")
	writeDetails(b, reg)
	fmt.Fprintf(b, "Submitted on: %s\n\n", t.Now().Format("2 January 2006"))
	b.WriteString("Your payment proof is being reviewed. You will receive a confirmation email once the payment has been verified.\n")

	return subject, b.String()
}

// AdminAlert notifies the organizers of a new submission.
func (t *Templates) AdminAlert(reg models.Registration) (string, string) {
	subject := fmt.Sprintf("New Registration %s - %s %s", reg.ID, reg.FirstName, reg.LastName)

	b := &strings.Builder{}
	fmt.Fprintf(b, "A new registration has been submitted for the %s.\n\n", t.EventName)
	fmt.Fprintf(b, "Reference: %s\n", reg.ID)
	writeDetails(b, reg)
	fmt.Fprintf(b, "Payment proof: %s\n\n", reg.PaymentFileName)
	b.WriteString("Please review the payment proof in the admin panel.\n")

	return subject, b.String()
}

// ForTransition maps a status change to its notification. The zero-value
// return of the generic template covers the extended statuses.
func (t *Templates) ForTransition(reg models.Registration, oldStatus, newStatus models.RegistrationStatus, note string) (string, string) {
	switch newStatus {
	case models.StatusPaymentVerified:
		return t.paymentVerified(reg)
	case models.StatusPaymentRejected:
		return t.paymentRejected(reg, note)
	case models.StatusAwaitingResubmission:
		return t.resubmissionRequired(reg, note)
	default:
		return t.statusChanged(reg, oldStatus, newStatus, note)
	}
}

func (t *Templates) paymentVerified(reg models.Registration) (string, string) {
	subject := fmt.Sprintf("Registration Confirmed - %s", t.EventName)

	b := &strings.Builder{}
	fmt.Fprintf(b, "Dear %s %s %s,\n\n", reg.Title, reg.FirstName, reg.LastName)
	fmt.Fprintf(b, "Your payment has been verified and your registration %s for the %s is now confirmed.\n\n", reg.ID, t.EventName)
	b.WriteString("We look forward to welcoming you at the event.\n")

	return subject, b.String()
}

func (t *Templates) paymentRejected(reg models.Registration, note string) (string, string) {
	subject := fmt.Sprintf("Payment Could Not Be Verified - %s", t.EventName)

	b := &strings.Builder{}
	fmt.Fprintf(b, "Dear %s %s %s,\n\n", reg.Title, reg.FirstName, reg.LastName)
	fmt.Fprintf(b, "Unfortunately we could not verify the payment for your registration %s.\n\n", reg.ID)
	if note != "" {
		fmt.Fprintf(b, "Reviewer note: %s\n\n", note)
	}
	b.WriteString("Please contact the organizers to resolve this.\n")

	return subject, b.String()
}

func (t *Templates) resubmissionRequired(reg models.Registration, note string) (string, string) {
	subject := fmt.Sprintf("Payment Proof Resubmission Required - %s", t.EventName)

	b := &strings.Builder{}
	fmt.Fprintf(b, "Dear %s %s %s,\n\n", reg.Title, reg.FirstName, reg.LastName)
	fmt.Fprintf(b, "The payment proof for your registration %s could not be accepted and a new document is required.\n\n", reg.ID)
	if note != "" {
		fmt.Fprintf(b, "Reviewer note: %s\n\n", note)
	}
	b.WriteString("Please reply to this email with a new payment proof.\n")

	return subject, b.String()
}

func (t *Templates) statusChanged(reg models.Registration, oldStatus, newStatus models.RegistrationStatus, note string) (string, string) {
	subject := fmt.Sprintf("Registration Status Update - %s", t.EventName)

	b := &strings.Builder{}
	fmt.Fprintf(b, "Dear %s %s %s,\n\n", reg.Title, reg.FirstName, reg.LastName)
	fmt.Fprintf(b, "The status of your registration %s has changed from %q to %q.\n\n", reg.ID, oldStatus, newStatus)
	if note != "" {
		fmt.Fprintf(b, "Reviewer note: %s\n\n", note)
	}
	b.WriteString("If you have any questions, please contact the organizers.\n")

	return subject, b.String()
}

// writeDetails lists the applicant fields; lines for empty optional fields
// are omitted entirely.
func writeDetails(b *strings.Builder, reg models.Registration) {
	fmt.Fprintf(b, "Name: %s %s %s\n", reg.Title, reg.FirstName, reg.LastName)
	if reg.Company != "" {
		fmt.Fprintf(b, "Company: %s\n", reg.Company)
	}
	if reg.POBox != "" {
		fmt.Fprintf(b, "P.O. Box: %s\n", reg.POBox)
	}
	if reg.City != "" {
		fmt.Fprintf(b, "City: %s\n", reg.City)
	}
	fmt.Fprintf(b, "Telephone: %s\n", reg.Telephone)
	fmt.Fprintf(b, "Email: %s\n", reg.Email)
	fmt.Fprintf(b, "Practice track: %s\n", reg.PracticeTrack)
	fmt.Fprintf(b, "Payment method: %s\n", reg.PaymentMethod)
	fmt.Fprintf(b, "Member: %s\n", reg.MemberFlag)
}
