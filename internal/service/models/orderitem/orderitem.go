package orderitem

import (
	"errors"

	"github.com/google/uuid"
)

// Status tracks a single line item through the kitchen.
type Status string

const (
	StatusQueued Status = "queued"
	StatusInPrep Status = "in_prep"
	StatusDone   Status = "done"
)

var (
	ErrItemNotFound      = errors.New("order item not found")
	ErrInvalidItemStatus = errors.New("invalid order item status")
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusQueued, StatusInPrep, StatusDone:
		return Status(s), nil
	default:
		return "", ErrInvalidItemStatus
	}
}

// Modifier is a per-item option (extra cheese, no onions) with a price delta.
type Modifier struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
}

// OrderItem represents an item within an order.
type OrderItem struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     uuid.UUID  `json:"orderId"`
	ProductID   uuid.UUID  `json:"productId"`
	Name        string     `json:"name"`
	Quantity    int        `json:"quantity"`
	PriceCents  int64      `json:"priceCents"`
	Modifiers   []Modifier `json:"modifiers,omitempty"`
	Status      Status     `json:"status"`
	Note        string     `json:"note,omitempty"`
}

// LineTotalCents is quantity times unit price plus all modifier deltas.
func (i OrderItem) LineTotalCents() int64 {
	unit := i.PriceCents
	for _, m := range i.Modifiers {
		unit += m.PriceCents
	}

	return unit * int64(i.Quantity)
}

// Units returns the quantity, never below zero.
func (i OrderItem) Units() int {
	if i.Quantity < 0 {
		return 0
	}

	return i.Quantity
}
