package dto

import (
	"time"

	"github.com/spec-kit/registration-service/internal/domain"
)

// RegisterRequest payload for the public registration form.
type RegisterRequest struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Church         string `json:"church"`
	Zone           string `json:"zone"`
	TicketType     string `json:"ticket_type" validate:"required,oneof=solo guest"`
	GuestName      string `json:"guest_name"`
	PaymentMethod  string `json:"payment_method" validate:"required,oneof=cash transfer"`
	StaffPIN       string `json:"staff_pin"`
	TransactionRef string `json:"transaction_ref"`
	ReceiptImage   string `json:"receipt_image"`
}

// RegistrationResponse is the record as rendered to clients. The receipt
// image is withheld; it only matters to the admin approval screen.
type RegistrationResponse struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Phone          string               `json:"phone"`
	Email          string               `json:"email"`
	Church         string               `json:"church,omitempty"`
	Zone           string               `json:"zone,omitempty"`
	TicketType     domain.TicketType    `json:"ticket_type"`
	GuestName      string               `json:"guest_name,omitempty"`
	TotalDue       int64                `json:"total_due"`
	TotalPaid      int64                `json:"total_paid"`
	Balance        int64                `json:"balance"`
	PaymentMethod  domain.PaymentMethod `json:"payment_method"`
	Status         domain.PaymentStatus `json:"status"`
	TransactionRef string               `json:"transaction_ref,omitempty"`
	TicketQR       string               `json:"ticket_qr,omitempty"`
	EmailSent      bool                 `json:"email_sent"`
	CheckedIn      bool                 `json:"checked_in"`
	CreatedAt      time.Time            `json:"created_at"`
}

// AdminLoginRequest payload.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse payload.
type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PartialPaymentRequest payload.
type PartialPaymentRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// CheckinRequest carries the manually entered ticket identifier.
type CheckinRequest struct {
	TicketID string `json:"ticket_id" validate:"required"`
}

// CheckinResponse reports the door outcome; a repeat scan renders the
// welcome-back state rather than a second check-in.
type CheckinResponse struct {
	Registration     RegistrationResponse `json:"registration"`
	AlreadyCheckedIn bool                 `json:"already_checked_in"`
}
