package order

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusDelivered, StatusCompleted, StatusCancelled, StatusRefunded,
}

func TestCanTransition(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusPreparing}: true,
		{StatusConfirmed, StatusCancelled}: true,
		{StatusPreparing, StatusReady}:     true,
		{StatusPreparing, StatusCancelled}: true,
		{StatusReady, StatusDelivered}:     true,
		{StatusReady, StatusCompleted}:     true,
		{StatusReady, StatusCancelled}:     true,
		{StatusDelivered, StatusCompleted}: true,
		{StatusCompleted, StatusRefunded}:  true,
		{StatusCancelled, StatusRefunded}:  true,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if got, want := CanTransition(from, to), allowed[[2]Status{from, to}]; got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTransitionDeniedLeavesOrderUntouched(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			if from == to || CanTransition(from, to) {
				continue
			}

			o := Order{Status: from, CreatedAt: now}
			before := o
			if err := o.Transition(to, now.Add(time.Minute)); !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("Transition(%s -> %s) error = %v, want ErrInvalidTransition", from, to, err)
			}
			if !reflect.DeepEqual(o, before) {
				t.Errorf("Transition(%s -> %s) mutated the order on denial", from, to)
			}
		}
	}
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	o := Order{Status: StatusPending, CreatedAt: now}
	before := o

	if err := o.Transition(StatusPending, now.Add(time.Hour)); err != nil {
		t.Fatalf("Transition to same status: %v", err)
	}
	if !reflect.DeepEqual(o, before) {
		t.Error("same-status transition mutated the order")
	}
}

func TestTransitionStampsEachStatusOnce(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	o := Order{Status: StatusPending, CreatedAt: start}

	steps := []Status{StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCompleted}
	for i, to := range steps {
		now := start.Add(time.Duration(i+1) * time.Minute)
		if err := o.Transition(to, now); err != nil {
			t.Fatalf("Transition to %s: %v", to, err)
		}
		got := o.StatusTimestamp(to)
		if got == nil || !got.Equal(now) {
			t.Fatalf("timestamp for %s = %v, want %v", to, got, now)
		}
		if !o.UpdatedAt.Equal(now) {
			t.Fatalf("UpdatedAt = %v, want %v", o.UpdatedAt, now)
		}
	}

	if o.CancelledAt != nil {
		t.Error("cancelled timestamp set on an order that was never cancelled")
	}
}

func TestTransitionTimestampsAreMonotonic(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	o := Order{Status: StatusPending, CreatedAt: start}

	if err := o.Transition(StatusConfirmed, start.Add(10*time.Minute)); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	// A clock that jumped backwards must not produce a timestamp before the
	// previous one.
	if err := o.Transition(StatusPreparing, start.Add(5*time.Minute)); err != nil {
		t.Fatalf("prepare: %v", err)
	}

	if o.PreparingAt == nil {
		t.Fatal("preparing timestamp not set")
	}
	if o.PreparingAt.Before(*o.ConfirmedAt) {
		t.Errorf("PreparingAt %v precedes ConfirmedAt %v", o.PreparingAt, o.ConfirmedAt)
	}
}

func TestTransitionSkippedStatesStayNil(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	o := Order{Status: StatusPending, CreatedAt: start}

	if err := o.Transition(StatusCancelled, start.Add(time.Minute)); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	for _, s := range []Status{StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCompleted} {
		if o.StatusTimestamp(s) != nil {
			t.Errorf("timestamp for skipped status %s is set", s)
		}
	}
	if o.CancelledAt == nil {
		t.Error("cancelled timestamp not set")
	}

	// The lifecycle graph has no edge out of cancelled except refunded.
	if err := o.Transition(StatusPreparing, start.Add(2*time.Minute)); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("cancelled -> preparing error = %v, want ErrInvalidTransition", err)
	}
	if err := o.Transition(StatusRefunded, start.Add(2*time.Minute)); err != nil {
		t.Errorf("cancelled -> refunded: %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range allStatuses {
		got, err := ParseStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("ParseStatus(shipped) error = %v, want ErrInvalidStatus", err)
	}
}
