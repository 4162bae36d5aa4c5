package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/registration-service/internal/domain"
	"github.com/spec-kit/registration-service/internal/events"
	"github.com/spec-kit/registration-service/internal/repository"
	"github.com/spec-kit/registration-service/internal/ticket"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// LedgerService mutates the payment side of a registration: approval,
// partial payments, and e-ticket issuance.
type LedgerService struct {
	store      repository.RegistrationStore
	renderer   ticket.Renderer
	dispatcher events.Dispatcher
	clock      func() time.Time
	idGen      func() string
}

// LedgerDependencies bundles collaborators for the service.
type LedgerDependencies struct {
	Store      repository.RegistrationStore
	Renderer   ticket.Renderer
	Dispatcher events.Dispatcher
	Clock      func() time.Time
	IDGen      func() string
}

// NewLedgerService constructs the service.
func NewLedgerService(deps LedgerDependencies) *LedgerService {
	s := &LedgerService{
		store:      deps.Store,
		renderer:   deps.Renderer,
		dispatcher: deps.Dispatcher,
		clock:      deps.Clock,
		idGen:      deps.IDGen,
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.idGen == nil {
		s.idGen = uuid.NewString
	}
	return s
}

// Approve settles a pending transfer in full. Approving an already-paid
// record is a no-op; it never double-credits.
func (s *LedgerService) Approve(ctx context.Context, id string) (*domain.Registration, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status != domain.PaymentStatusPending {
		return record, nil
	}

	updated, _, err := s.store.UpdateByID(ctx, id, func(r *domain.Registration) {
		if r.Status != domain.PaymentStatusPending {
			return
		}
		r.SettleInFull()
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventPaymentApproved,
		RegistrationID: updated.ID,
		Payload:        events.PaymentApprovedPayload{TotalPaid: updated.TotalPaid},
	})
	return &updated, nil
}

// AddPartialPayment credits amount against the record. The balance is not
// clamped, so overpayment drives it negative; status flips to paid once the
// balance reaches zero or below.
func (s *LedgerService) AddPartialPayment(ctx context.Context, id string, amount int64) (*domain.Registration, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("payment amount must be positive", map[string]any{"amount": amount})
	}
	if _, err := s.find(ctx, id); err != nil {
		return nil, err
	}

	updated, _, err := s.store.UpdateByID(ctx, id, func(r *domain.Registration) {
		r.RecordPayment(amount)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventPaymentRecorded,
		RegistrationID: updated.ID,
		Payload:        events.PaymentRecordedPayload{Amount: amount, Balance: updated.Balance},
	})
	return &updated, nil
}

// IssueETicket generates the scannable e-ticket once. Re-issuing after the
// first send is a no-op. Issuance against an outstanding balance is refused;
// an overpaid record counts as settled.
func (s *LedgerService) IssueETicket(ctx context.Context, id string) (*domain.Registration, error) {
	record, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.EmailSent {
		return record, nil
	}
	if !record.FullyPaid() {
		return nil, apperrors.NewPaymentIncomplete(record.Balance)
	}

	artifact, err := s.renderer.Render(ticket.Payload{
		ID:         record.ID,
		Name:       record.Name,
		TicketType: record.TicketType,
		GuestName:  record.GuestName,
	})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	updated, _, err := s.store.UpdateByID(ctx, id, func(r *domain.Registration) {
		if r.EmailSent {
			return
		}
		r.TicketQR = artifact
		r.EmailSent = true
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventETicketIssued,
		RegistrationID: updated.ID,
		Payload:        events.ETicketIssuedPayload{Name: updated.Name, Email: updated.Email},
	})
	return &updated, nil
}

func (s *LedgerService) find(ctx context.Context, id string) (*domain.Registration, error) {
	records := s.store.Load(ctx)
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, apperrors.NewNotFound("registration", map[string]any{"id": id})
}

func (s *LedgerService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = s.idGen()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clock()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
