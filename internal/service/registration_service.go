package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/registration-service/internal/auth"
	"github.com/spec-kit/registration-service/internal/config"
	"github.com/spec-kit/registration-service/internal/domain"
	"github.com/spec-kit/registration-service/internal/events"
	"github.com/spec-kit/registration-service/internal/repository"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// maxReceiptBytes caps the decoded size of an uploaded transfer receipt.
const maxReceiptBytes = 5 << 20

// RegistrationService runs the registration workflow: validate form input,
// price the ticket, branch on payment method, persist the new record.
type RegistrationService struct {
	store      repository.RegistrationStore
	prices     func() domain.PriceTable
	staffPIN   auth.CredentialVerifier
	dispatcher events.Dispatcher
	form       config.FormConfig
	zones      map[string]struct{}
	clock      func() time.Time
	idGen      func() string
}

// RegistrationDependencies bundles collaborators for the service.
type RegistrationDependencies struct {
	Store      repository.RegistrationStore
	Prices     func() domain.PriceTable
	StaffPIN   auth.CredentialVerifier
	Dispatcher events.Dispatcher
	Form       config.FormConfig
	Clock      func() time.Time
	IDGen      func() string
}

// RegisterInput describes a submitted registration form.
type RegisterInput struct {
	Name           string
	Phone          string
	Email          string
	Church         string
	Zone           string
	TicketType     domain.TicketType
	GuestName      string
	PaymentMethod  domain.PaymentMethod
	StaffPIN       string
	TransactionRef string
	ReceiptImage   string
}

// NewRegistrationService constructs the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	s := &RegistrationService{
		store:      deps.Store,
		prices:     deps.Prices,
		staffPIN:   deps.StaffPIN,
		dispatcher: deps.Dispatcher,
		form:       deps.Form,
		clock:      deps.Clock,
		idGen:      deps.IDGen,
	}
	if s.prices == nil {
		s.prices = domain.DefaultPriceTable
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.idGen == nil {
		s.idGen = uuid.NewString
	}
	s.zones = make(map[string]struct{}, len(deps.Form.Zones))
	for _, z := range deps.Form.Zones {
		s.zones[strings.ToLower(z)] = struct{}{}
	}
	return s
}

// Register validates the form, prices the ticket against the table in effect
// right now, and appends the new record. Validation reports the first unmet
// requirement only.
func (s *RegistrationService) Register(ctx context.Context, input RegisterInput) (*domain.Registration, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	email := strings.TrimSpace(input.Email)
	church := strings.TrimSpace(input.Church)
	zone := strings.TrimSpace(input.Zone)
	guestName := strings.TrimSpace(input.GuestName)

	switch {
	case name == "":
		return nil, apperrors.NewValidationError("name is required", nil)
	case phone == "":
		return nil, apperrors.NewValidationError("phone is required", nil)
	case email == "":
		return nil, apperrors.NewValidationError("email is required", nil)
	}
	if s.form.RequireChurch && church == "" {
		return nil, apperrors.NewValidationError("church is required", nil)
	}
	if zone != "" && len(s.zones) > 0 {
		if _, ok := s.zones[strings.ToLower(zone)]; !ok {
			return nil, apperrors.NewValidationError("unknown zone", map[string]any{"zone": zone})
		}
	}
	if !input.TicketType.Valid() {
		return nil, apperrors.NewValidationError("invalid ticket type", map[string]any{"ticketType": string(input.TicketType)})
	}
	if input.TicketType == domain.TicketTypeGuest && guestName == "" {
		return nil, apperrors.NewValidationError("guest name is required for guest tickets", nil)
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperrors.NewValidationError("invalid payment method", map[string]any{"paymentMethod": string(input.PaymentMethod)})
	}

	// price lookup happens at submission time, never from a cached render
	totalDue, ok := s.prices().PriceFor(input.TicketType)
	if !ok {
		return nil, apperrors.NewValidationError("ticket type is not priced", map[string]any{"ticketType": string(input.TicketType)})
	}

	record := domain.Registration{
		ID:            s.idGen(),
		Name:          name,
		Phone:         phone,
		Email:         email,
		Church:        church,
		Zone:          zone,
		TicketType:    input.TicketType,
		GuestName:     guestName,
		TotalDue:      totalDue,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     s.clock(),
	}

	switch input.PaymentMethod {
	case domain.PaymentMethodCash:
		if s.staffPIN == nil || !s.staffPIN.Verify(input.StaffPIN) {
			return nil, apperrors.NewAuthorizationError("invalid staff PIN")
		}
		record.SettleInFull()
	case domain.PaymentMethodTransfer:
		ref := strings.TrimSpace(input.TransactionRef)
		if ref == "" {
			return nil, apperrors.NewValidationError("transaction reference is required for transfers", nil)
		}
		if err := validateReceiptImage(input.ReceiptImage); err != nil {
			return nil, err
		}
		record.TransactionRef = ref
		record.ReceiptImage = input.ReceiptImage
		record.TotalPaid = 0
		record.Balance = totalDue
		record.Status = domain.StatusFor(record.Balance)
	}

	if err := s.store.Append(ctx, record); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventRegistrationCreated,
		RegistrationID: record.ID,
		Payload: events.RegistrationCreatedPayload{
			Name:          record.Name,
			TicketType:    record.TicketType,
			PaymentMethod: record.PaymentMethod,
			TotalDue:      record.TotalDue,
			Status:        record.Status,
		},
	})
	return &record, nil
}

// Get returns a single registration for the success screen.
func (s *RegistrationService) Get(ctx context.Context, id string) (*domain.Registration, error) {
	records := s.store.Load(ctx)
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, apperrors.NewNotFound("registration", map[string]any{"id": id})
}

// List returns the full registration list for the admin dashboard.
func (s *RegistrationService) List(ctx context.Context) []domain.Registration {
	return s.store.Load(ctx)
}

// Summary reduces the list into the dashboard totals.
type Summary struct {
	Registered        int   `json:"registered"`
	Paid              int   `json:"paid"`
	Pending           int   `json:"pending"`
	CheckedIn         int   `json:"checked_in"`
	AmountCollected   int64 `json:"amount_collected"`
	AmountOutstanding int64 `json:"amount_outstanding"`
}

// Summarize computes dashboard totals over the current list.
func (s *RegistrationService) Summarize(ctx context.Context) Summary {
	var summary Summary
	for _, rec := range s.store.Load(ctx) {
		summary.Registered++
		if rec.Status == domain.PaymentStatusPaid {
			summary.Paid++
		} else {
			summary.Pending++
		}
		if rec.CheckedIn {
			summary.CheckedIn++
		}
		summary.AmountCollected += rec.TotalPaid
		if rec.Balance > 0 {
			summary.AmountOutstanding += rec.Balance
		}
	}
	return summary
}

func validateReceiptImage(dataURI string) error {
	if strings.TrimSpace(dataURI) == "" {
		return apperrors.NewValidationError("receipt image is required for transfers", nil)
	}
	payload := dataURI
	if idx := strings.Index(dataURI, ","); idx >= 0 {
		payload = dataURI[idx+1:]
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxReceiptBytes {
		return apperrors.NewValidationError("receipt image exceeds 5 MB", nil)
	}
	return nil
}

func (s *RegistrationService) publishEvent(ctx context.Context, event events.Event) {
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
