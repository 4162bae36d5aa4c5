package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/registration-service/internal/domain"
)

func newTestStore(t *testing.T) (RegistrationStore, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return NewRegistrationStore(kv, "registrations", zap.NewNop()), kv
}

func sampleRegistration(id string) domain.Registration {
	return domain.Registration{
		ID:            id,
		Name:          "Ada",
		Phone:         "0800000000",
		Email:         "ada@example.com",
		TicketType:    domain.TicketTypeSolo,
		TotalDue:      2000,
		TotalPaid:     2000,
		PaymentMethod: domain.PaymentMethodCash,
		Status:        domain.PaymentStatusPaid,
		CreatedAt:     time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestLoadAbsentKeyReturnsEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	records := store.Load(context.Background())
	if records == nil {
		t.Fatal("expected non-nil empty list")
	}
	if len(records) != 0 {
		t.Fatalf("expected empty list, got %d records", len(records))
	}
}

func TestLoadCorruptValueSwallowedAsEmpty(t *testing.T) {
	store, kv := newTestStore(t)
	if err := kv.Set(context.Background(), "registrations", "{not json"); err != nil {
		t.Fatalf("seed kv: %v", err)
	}
	records := store.Load(context.Background())
	if len(records) != 0 {
		t.Fatalf("expected corrupt value treated as empty, got %d records", len(records))
	}
}

func TestSaveLoadRoundTripIsFixedPoint(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	original := []domain.Registration{sampleRegistration("a"), sampleRegistration("b")}
	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := store.Load(ctx)
	if err := store.Save(ctx, loaded); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	reloaded := store.Load(ctx)

	if !reflect.DeepEqual(loaded, reloaded) {
		t.Fatalf("save(load()) not a fixed point:\nfirst:  %+v\nsecond: %+v", loaded, reloaded)
	}
	if !reflect.DeepEqual(original, reloaded) {
		t.Fatalf("collection changed across round trip:\nwant: %+v\ngot:  %+v", original, reloaded)
	}
}

func TestAppendAddsToEnd(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, sampleRegistration("first")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, sampleRegistration("second")); err != nil {
		t.Fatalf("append: %v", err)
	}

	records := store.Load(ctx)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "first" || records[1].ID != "second" {
		t.Fatalf("unexpected order: %s, %s", records[0].ID, records[1].ID)
	}
}

func TestUpdateByIDPatchesOnlyMatch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, []domain.Registration{sampleRegistration("a"), sampleRegistration("b")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	updated, found, err := store.UpdateByID(ctx, "b", func(r *domain.Registration) {
		r.CheckedIn = true
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if !updated.CheckedIn {
		t.Fatal("patch not applied to returned record")
	}

	records := store.Load(ctx)
	if records[0].CheckedIn {
		t.Fatal("patch leaked to non-matching record")
	}
	if !records[1].CheckedIn {
		t.Fatal("patch not persisted")
	}
}

func TestUpdateByIDMissingIsNoOp(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, []domain.Registration{sampleRegistration("a")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, found, err := store.UpdateByID(ctx, "missing", func(r *domain.Registration) {
		r.CheckedIn = true
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if found {
		t.Fatal("expected missing id to report found=false")
	}

	records := store.Load(ctx)
	if len(records) != 1 || records[0].CheckedIn {
		t.Fatalf("no-op update mutated the collection: %+v", records)
	}
}

type failingKV struct {
	getErr error
	setErr error
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, f.getErr
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	return f.setErr
}

func TestLoadSwallowsBackendFailure(t *testing.T) {
	kv := &failingKV{getErr: errors.New("connection refused")}
	store := NewRegistrationStore(kv, "registrations", zap.NewNop())

	records := store.Load(context.Background())
	if len(records) != 0 {
		t.Fatalf("expected read failure to yield empty list, got %d records", len(records))
	}
}

func TestSaveSurfacesBackendFailure(t *testing.T) {
	kv := &failingKV{setErr: errors.New("disk full")}
	store := NewRegistrationStore(kv, "registrations", zap.NewNop())

	err := store.Save(context.Background(), []domain.Registration{sampleRegistration("a")})
	if err == nil {
		t.Fatal("expected save failure to surface")
	}
}
