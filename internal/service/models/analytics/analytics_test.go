package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

func TestMetricsFromOrder(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		t := start.Add(d)
		return &t
	}

	o := order.Order{
		ID:          uuid.New(),
		TenantID:    uuid.New(),
		CreatedAt:   start,
		ConfirmedAt: at(2 * time.Minute),
		ReadyAt:     at(20 * time.Minute),
		CompletedAt: at(30 * time.Minute),
	}

	m := MetricsFromOrder(&o)

	if m.ConfirmationSeconds != 120 {
		t.Errorf("ConfirmationSeconds = %d, want 120", m.ConfirmationSeconds)
	}
	if m.PreparationSeconds != 18*60 {
		t.Errorf("PreparationSeconds = %d, want %d", m.PreparationSeconds, 18*60)
	}
	// The order was picked up, never delivered.
	if m.DeliverySeconds != 0 {
		t.Errorf("DeliverySeconds = %d, want 0", m.DeliverySeconds)
	}
	if m.TotalSeconds != 30*60 {
		t.Errorf("TotalSeconds = %d, want %d", m.TotalSeconds, 30*60)
	}
	if !m.CompletedAt.Equal(*o.CompletedAt) {
		t.Errorf("CompletedAt = %v, want %v", m.CompletedAt, o.CompletedAt)
	}
	if m.OrderID != o.ID || m.TenantID != o.TenantID {
		t.Error("metrics identity fields do not match the order")
	}
}
