package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/registration-service/internal/domain"
	"github.com/spec-kit/registration-service/internal/events"
	"github.com/spec-kit/registration-service/internal/repository"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// CheckinService resolves a manually entered ticket identifier and marks
// attendance.
type CheckinService struct {
	store      repository.RegistrationStore
	dispatcher events.Dispatcher
	clock      func() time.Time
	idGen      func() string
}

// CheckinDependencies bundles collaborators for the service.
type CheckinDependencies struct {
	Store      repository.RegistrationStore
	Dispatcher events.Dispatcher
	Clock      func() time.Time
	IDGen      func() string
}

// CheckinResult distinguishes a first-time check-in from a repeat scan. A
// repeat scan is not an error; the door renders a welcome-back state.
type CheckinResult struct {
	Registration     domain.Registration
	AlreadyCheckedIn bool
}

// NewCheckinService constructs the service.
func NewCheckinService(deps CheckinDependencies) *CheckinService {
	s := &CheckinService{
		store:      deps.Store,
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

// FindByID resolves a ticket identifier by exact match over the current list.
func (s *CheckinService) FindByID(ctx context.Context, id string) (*domain.Registration, error) {
	records := s.store.Load(ctx)
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
}

// CheckIn marks the attendee present. Order of enforcement: unknown ticket,
// then outstanding balance, then the one-time flag.
func (s *CheckinService) CheckIn(ctx context.Context, id string) (*CheckinResult, error) {
	record, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Balance > 0 {
		return nil, apperrors.NewPaymentIncomplete(record.Balance)
	}
	if record.CheckedIn {
		return &CheckinResult{Registration: *record, AlreadyCheckedIn: true}, nil
	}

	updated, _, err := s.store.UpdateByID(ctx, id, func(r *domain.Registration) {
		r.CheckedIn = true
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:           events.EventAttendeeCheckedIn,
		RegistrationID: updated.ID,
		Payload:        events.AttendeeCheckedInPayload{Name: updated.Name},
	})
	return &CheckinResult{Registration: updated}, nil
}

func (s *CheckinService) publishEvent(ctx context.Context, event events.Event) {
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
