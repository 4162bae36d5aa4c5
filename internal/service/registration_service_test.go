package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/registration-service/internal/config"
	"github.com/spec-kit/registration-service/internal/domain"
	"github.com/spec-kit/registration-service/internal/events"
	"github.com/spec-kit/registration-service/internal/repository"
	"github.com/spec-kit/registration-service/internal/ticket"
	apperrors "github.com/spec-kit/registration-service/pkg/util/errorutil"
)

type staticPIN string

func (p staticPIN) Verify(input string) bool {
	return string(p) == input
}

type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

type fakeRenderer struct {
	rendered []ticket.Payload
}

func (f *fakeRenderer) Render(p ticket.Payload) (string, error) {
	f.rendered = append(f.rendered, p)
	return "data:image/png;base64,ticket-" + p.ID, nil
}

var testTime = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestStore() repository.RegistrationStore {
	return repository.NewRegistrationStore(repository.NewMemoryKV(), "registrations", zap.NewNop())
}

func newRegistrationService(store repository.RegistrationStore, deps RegistrationDependencies) *RegistrationService {
	deps.Store = store
	if deps.StaffPIN == nil {
		deps.StaffPIN = staticPIN("1234")
	}
	if deps.Clock == nil {
		deps.Clock = func() time.Time { return testTime }
	}
	if deps.IDGen == nil {
		n := 0
		deps.IDGen = func() string {
			n++
			return "reg-" + strconv.Itoa(n)
		}
	}
	return NewRegistrationService(deps)
}

func validCashInput() RegisterInput {
	return RegisterInput{
		Name:          "Ada",
		Phone:         "0800000000",
		Email:         "ada@example.com",
		TicketType:    domain.TicketTypeSolo,
		PaymentMethod: domain.PaymentMethodCash,
		StaffPIN:      "1234",
	}
}

func validTransferInput() RegisterInput {
	return RegisterInput{
		Name:           "Bola",
		Phone:          "0811111111",
		Email:          "bola@example.com",
		TicketType:     domain.TicketTypeGuest,
		GuestName:      "Chi",
		PaymentMethod:  domain.PaymentMethodTransfer,
		TransactionRef: "TRF1",
		ReceiptImage:   "data:image/png;base64,aGVsbG8=",
	}
}

func TestRegisterSoloCash(t *testing.T) {
	store := newTestStore()
	svc := newRegistrationService(store, RegistrationDependencies{})

	record, err := svc.Register(context.Background(), validCashInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if record.TotalDue != 2000 || record.TotalPaid != 2000 || record.Balance != 0 {
		t.Fatalf("unexpected cash ledger: due=%d paid=%d balance=%d", record.TotalDue, record.TotalPaid, record.Balance)
	}
	if record.Status != domain.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", record.Status)
	}
	if record.CreatedAt != testTime {
		t.Fatalf("expected createdAt %v, got %v", testTime, record.CreatedAt)
	}
	if len(store.Load(context.Background())) != 1 {
		t.Fatal("record not persisted")
	}
}

func TestRegisterGuestTransferIsPending(t *testing.T) {
	store := newTestStore()
	svc := newRegistrationService(store, RegistrationDependencies{})

	record, err := svc.Register(context.Background(), validTransferInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if record.TotalDue != 3000 || record.TotalPaid != 0 || record.Balance != 3000 {
		t.Fatalf("unexpected transfer ledger: due=%d paid=%d balance=%d", record.TotalDue, record.TotalPaid, record.Balance)
	}
	if record.Status != domain.PaymentStatusPending {
		t.Fatalf("expected pending, got %s", record.Status)
	}
	if record.TransactionRef != "TRF1" {
		t.Fatalf("expected transaction ref kept, got %q", record.TransactionRef)
	}
}

func TestRegisterWrongPINCreatesNothing(t *testing.T) {
	store := newTestStore()
	svc := newRegistrationService(store, RegistrationDependencies{})

	input := validCashInput()
	input.StaffPIN = "0000"
	_, err := svc.Register(context.Background(), input)
	if !apperrors.IsCode(err, "AUTHORIZATION_FAILED") {
		t.Fatalf("expected authorization failure, got %v", err)
	}
	if len(store.Load(context.Background())) != 0 {
		t.Fatal("no record should be created on a rejected PIN")
	}
}

func TestRegisterReportsFirstMissingField(t *testing.T) {
	svc := newRegistrationService(newTestStore(), RegistrationDependencies{})

	input := validCashInput()
	input.Name = "  "
	input.Phone = ""
	_, err := svc.Register(context.Background(), input)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if got := apperrors.ToDomainError(err).Message; got != "name is required" {
		t.Fatalf("expected first unmet requirement reported, got %q", got)
	}
}

func TestRegisterGuestRequiresGuestName(t *testing.T) {
	svc := newRegistrationService(newTestStore(), RegistrationDependencies{})

	input := validTransferInput()
	input.GuestName = ""
	_, err := svc.Register(context.Background(), input)
	if !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected validation failure, got %v", err)
	}
}

func TestRegisterTransferRequiresRefAndReceipt(t *testing.T) {
	svc := newRegistrationService(newTestStore(), RegistrationDependencies{})

	input := validTransferInput()
	input.TransactionRef = ""
	if _, err := svc.Register(context.Background(), input); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected missing ref rejected, got %v", err)
	}

	input = validTransferInput()
	input.ReceiptImage = ""
	if _, err := svc.Register(context.Background(), input); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected missing receipt rejected, got %v", err)
	}
}

func TestRegisterChurchRequiredInExtendedVariant(t *testing.T) {
	svc := newRegistrationService(newTestStore(), RegistrationDependencies{
		Form: config.FormConfig{RequireChurch: true, Zones: []string{"Akoka"}},
	})

	input := validCashInput()
	if _, err := svc.Register(context.Background(), input); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected missing church rejected, got %v", err)
	}

	input.Church = "Grace Chapel"
	input.Zone = "akoka"
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("register with church: %v", err)
	}
}

func TestRegisterRejectsUnknownZone(t *testing.T) {
	svc := newRegistrationService(newTestStore(), RegistrationDependencies{
		Form: config.FormConfig{Zones: []string{"Akoka", "Ilaje", "Jebako", "Shomolu"}},
	})

	input := validCashInput()
	input.Zone = "Yaba"
	if _, err := svc.Register(context.Background(), input); !apperrors.IsCode(err, "VALIDATION_FAILED") {
		t.Fatalf("expected unknown zone rejected, got %v", err)
	}
}

func TestRegisterConsultsPriceTableAtSubmissionTime(t *testing.T) {
	store := newTestStore()
	soloPrice := int64(2000)
	svc := newRegistrationService(store, RegistrationDependencies{
		Prices: func() domain.PriceTable {
			return domain.PriceTable{domain.TicketTypeSolo: soloPrice, domain.TicketTypeGuest: 3000}
		},
	})

	first, err := svc.Register(context.Background(), validCashInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	soloPrice = 2500
	second, err := svc.Register(context.Background(), validCashInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if first.TotalDue != 2000 || second.TotalDue != 2500 {
		t.Fatalf("price table not consulted at submission time: %d, %d", first.TotalDue, second.TotalDue)
	}
}

func TestRegisterZeroPricedTransferRestsPaid(t *testing.T) {
	svc := newRegistrationService(newTestStore(), RegistrationDependencies{
		Prices: func() domain.PriceTable {
			return domain.PriceTable{domain.TicketTypeSolo: 2000, domain.TicketTypeGuest: 0}
		},
	})

	record, err := svc.Register(context.Background(), validTransferInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if record.Balance != 0 || record.Status != domain.PaymentStatusPaid {
		t.Fatalf("zero-priced transfer should rest settled: %+v", record)
	}
}

func TestRegisterPublishesCreatedEvent(t *testing.T) {
	dispatcher := &captureDispatcher{}
	svc := newRegistrationService(newTestStore(), RegistrationDependencies{Dispatcher: dispatcher})

	if _, err := svc.Register(context.Background(), validCashInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(dispatcher.published) != 1 || dispatcher.published[0].Type != events.EventRegistrationCreated {
		t.Fatalf("expected one registration_created event, got %+v", dispatcher.published)
	}
}

func TestSummarize(t *testing.T) {
	store := newTestStore()
	svc := newRegistrationService(store, RegistrationDependencies{})

	if _, err := svc.Register(context.Background(), validCashInput()); err != nil {
		t.Fatalf("register cash: %v", err)
	}
	if _, err := svc.Register(context.Background(), validTransferInput()); err != nil {
		t.Fatalf("register transfer: %v", err)
	}

	summary := svc.Summarize(context.Background())
	if summary.Registered != 2 || summary.Paid != 1 || summary.Pending != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.AmountCollected != 2000 || summary.AmountOutstanding != 3000 {
		t.Fatalf("unexpected amounts: %+v", summary)
	}
}
