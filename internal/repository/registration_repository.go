package repository

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/registration-service/internal/domain"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

// RegistrationStore owns the authoritative registration list. Every mutation
// rewrites the whole collection under a single key; there is no partial
// write path.
type RegistrationStore interface {
	// Load returns the persisted collection. An absent key or an unreadable
	// value yields an empty list; the failure is logged, not surfaced.
	Load(ctx context.Context) []domain.Registration
	// Save overwrites the persisted collection.
	Save(ctx context.Context, records []domain.Registration) error
	// Append adds one record to the end of the collection.
	Append(ctx context.Context, record domain.Registration) error
	// UpdateByID applies patch to the record with the matching id and
	// re-saves. A missing id is a no-op with found=false, not an error.
	UpdateByID(ctx context.Context, id string, patch func(*domain.Registration)) (updated domain.Registration, found bool, err error)
}

type registrationStore struct {
	kv     KV
	key    string
	logger *zap.Logger

	// serializes load-modify-save cycles; the system assumes a single
	// writer but the HTTP surface can deliver overlapping requests
	mu sync.Mutex
}

// NewRegistrationStore builds a store over the given KV collaborator.
func NewRegistrationStore(kv KV, key string, logger *zap.Logger) RegistrationStore {
	return &registrationStore{kv: kv, key: key, logger: logger}
}

func (s *registrationStore) Load(ctx context.Context) []domain.Registration {
	return s.load(ctx)
}

func (s *registrationStore) load(ctx context.Context) []domain.Registration {
	raw, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("registration load failed; treating as empty", zap.Error(err))
		return []domain.Registration{}
	}
	if !found {
		return []domain.Registration{}
	}
	var records []domain.Registration
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("registration decode failed; treating as empty", zap.Error(err))
		return []domain.Registration{}
	}
	if records == nil {
		records = []domain.Registration{}
	}
	return records
}

func (s *registrationStore) Save(ctx context.Context, records []domain.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, records)
}

func (s *registrationStore) save(ctx context.Context, records []domain.Registration) error {
	if records == nil {
		records = []domain.Registration{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return apperrors.NewPersistenceError(err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		s.logger.Error("registration save failed", zap.Error(err))
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

func (s *registrationStore) Append(ctx context.Context, record domain.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := append(s.load(ctx), record)
	return s.save(ctx, records)
}

func (s *registrationStore) UpdateByID(ctx context.Context, id string, patch func(*domain.Registration)) (domain.Registration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.load(ctx)
	for i := range records {
		if records[i].ID != id {
			continue
		}
		patch(&records[i])
		if err := s.save(ctx, records); err != nil {
			return domain.Registration{}, true, err
		}
		return records[i], true, nil
	}
	return domain.Registration{}, false, nil
}
