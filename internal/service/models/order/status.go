package order

import (
	"errors"
	"time"
)

// Status describes an order's position in its fulfillment lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

var (
	ErrNotFound             = errors.New("order not found")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidType          = errors.New("invalid order type")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// AllowedTransitions represents the order lifecycle graph as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusDelivered, StatusCompleted, StatusCancelled},
	StatusDelivered: {StatusCompleted},
	StatusCompleted: {StatusRefunded},
	StatusCancelled: {StatusRefunded},
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusDelivered, StatusCompleted, StatusCancelled, StatusRefunded:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransition reports whether the lifecycle graph contains an edge
// from one status to another.
func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}

	return false
}

// Transition applies a status change to the order.
//
// Requesting the status the order already has is a silent no-op. An edge
// missing from the lifecycle graph returns ErrInvalidTransition and leaves
// the order untouched. A legal transition sets the status and stamps the
// per-status timestamp exactly once; timestamps of skipped states stay nil.
func (o *Order) Transition(to Status, now time.Time) error {
	if o.Status == to {
		return nil
	}
	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}

	o.Status = to
	o.stamp(to, now)
	o.UpdatedAt = now

	return nil
}

// stamp records the moment a status was first entered. Timestamps are
// monotonic: a stamp never lands before one already recorded.
func (o *Order) stamp(s Status, now time.Time) {
	target := o.timestampFor(s)
	if target == nil || *target != nil {
		return
	}
	if last := o.lastStamped(); last != nil && now.Before(*last) {
		now = *last
	}
	t := now
	*target = &t
}

func (o *Order) timestampFor(s Status) **time.Time {
	switch s {
	case StatusConfirmed:
		return &o.ConfirmedAt
	case StatusPreparing:
		return &o.PreparingAt
	case StatusReady:
		return &o.ReadyAt
	case StatusDelivered:
		return &o.DeliveredAt
	case StatusCompleted:
		return &o.CompletedAt
	case StatusCancelled:
		return &o.CancelledAt
	default:
		return nil
	}
}

func (o *Order) lastStamped() *time.Time {
	last := &o.CreatedAt
	for _, t := range []*time.Time{o.ConfirmedAt, o.PreparingAt, o.ReadyAt, o.DeliveredAt, o.CompletedAt, o.CancelledAt} {
		if t != nil && t.After(*last) {
			last = t
		}
	}

	return last
}

// StatusTimestamp returns the recorded instant for a lifecycle status, nil
// if that state was never entered.
func (o *Order) StatusTimestamp(s Status) *time.Time {
	if s == StatusPending {
		t := o.CreatedAt

		return &t
	}
	target := o.timestampFor(s)
	if target == nil {
		return nil
	}

	return *target
}

// IsTerminal reports whether no forward (non-refund) edge leaves the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRefunded
}
