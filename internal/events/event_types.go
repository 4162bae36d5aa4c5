package events

import (
	"time"

	"github.com/spec-kit/registration-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventRegistrationCreated EventType = "registration_created"
	EventPaymentRecorded     EventType = "payment_recorded"
	EventPaymentApproved     EventType = "payment_approved"
	EventETicketIssued       EventType = "eticket_issued"
	EventAttendeeCheckedIn   EventType = "attendee_checked_in"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	RegistrationID string      `json:"registration_id"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// RegistrationCreatedPayload payload.
type RegistrationCreatedPayload struct {
	Name          string               `json:"name"`
	TicketType    domain.TicketType    `json:"ticket_type"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	TotalDue      int64                `json:"total_due"`
	Status        domain.PaymentStatus `json:"status"`
}

// PaymentRecordedPayload payload.
type PaymentRecordedPayload struct {
	Amount  int64 `json:"amount"`
	Balance int64 `json:"balance"`
}

// PaymentApprovedPayload payload.
type PaymentApprovedPayload struct {
	TotalPaid int64 `json:"total_paid"`
}

// ETicketIssuedPayload payload.
type ETicketIssuedPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AttendeeCheckedInPayload payload.
type AttendeeCheckedInPayload struct {
	Name string `json:"name"`
}
