package domain

import "time"

// TicketType enumerates the ticket tiers on sale.
type TicketType string

const (
	TicketTypeSolo  TicketType = "solo"
	TicketTypeGuest TicketType = "guest"
)

// Valid reports whether the tier is one we sell.
func (t TicketType) Valid() bool {
	return t == TicketTypeSolo || t == TicketTypeGuest
}

// PaymentMethod enumerates how a registrant pays. Fixed at creation.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodTransfer
}

// PaymentStatus is derived state: paid iff the balance is cleared.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
)

// Registration is the sole aggregate: one attendee record from form
// submission through payment settlement to door check-in. Records are
// append-only plus field updates; there is no deletion path.
type Registration struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Phone          string        `json:"phone"`
	Email          string        `json:"email"`
	Church         string        `json:"church,omitempty"`
	Zone           string        `json:"zone,omitempty"`
	TicketType     TicketType    `json:"ticketType"`
	GuestName      string        `json:"guestName,omitempty"`
	TotalDue       int64         `json:"totalDue"`
	TotalPaid      int64         `json:"totalPaid"`
	Balance        int64         `json:"balance"`
	PaymentMethod  PaymentMethod `json:"paymentMethod"`
	Status         PaymentStatus `json:"status"`
	TransactionRef string        `json:"transactionRef,omitempty"`
	ReceiptImage   string        `json:"receiptImage,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	TicketQR       string        `json:"ticketQR,omitempty"`
	EmailSent      bool          `json:"emailSent"`
	CheckedIn      bool          `json:"checkedIn"`
}

// FullyPaid reports whether the balance is cleared. Overpayment counts as
// paid; the balance is never clamped.
func (r *Registration) FullyPaid() bool {
	return r.Balance <= 0
}

// Balanced reports the at-rest ledger invariant: totalPaid + balance == totalDue.
func (r *Registration) Balanced() bool {
	return r.TotalPaid+r.Balance == r.TotalDue
}

// RecordPayment credits amount against the record and re-derives balance and
// status. Callers validate the amount; the arithmetic here does not clamp.
func (r *Registration) RecordPayment(amount int64) {
	r.TotalPaid += amount
	r.Balance = r.TotalDue - r.TotalPaid
	r.Status = StatusFor(r.Balance)
}

// SettleInFull marks the whole due amount as paid.
func (r *Registration) SettleInFull() {
	r.TotalPaid = r.TotalDue
	r.Balance = 0
	r.Status = PaymentStatusPaid
}

// StatusFor derives payment status from a balance.
func StatusFor(balance int64) PaymentStatus {
	if balance <= 0 {
		return PaymentStatusPaid
	}
	return PaymentStatusPending
}
