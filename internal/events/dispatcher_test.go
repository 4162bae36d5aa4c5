package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestPublishInvokesSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	var calls []string
	d.Subscribe(EventRegistrationCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "first:"+e.RegistrationID)
		return nil
	})
	d.Subscribe(EventRegistrationCreated, func(ctx context.Context, e Event) error {
		calls = append(calls, "second:"+e.RegistrationID)
		return nil
	})
	d.Subscribe(EventAttendeeCheckedIn, func(ctx context.Context, e Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventRegistrationCreated, RegistrationID: "reg-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(calls) != 2 || calls[0] != "first:reg-1" || calls[1] != "second:reg-1" {
		t.Fatalf("unexpected handler calls: %v", calls)
	}
}

func TestFailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher(zap.NewNop())
	var reached bool
	d.Subscribe(EventPaymentApproved, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventPaymentApproved, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventPaymentApproved}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !reached {
		t.Fatal("later handler should still run after a failure")
	}
}
