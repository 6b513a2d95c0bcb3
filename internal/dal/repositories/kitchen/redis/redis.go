package redisrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/dal/redis"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
)

// ticketItem is one kitchen display line.
type ticketItem struct {
	Name      string               `json:"name"`
	Quantity  int                  `json:"quantity"`
	Modifiers []orderitem.Modifier `json:"modifiers,omitempty"`
	Status    orderitem.Status     `json:"status"`
	Note      string               `json:"note,omitempty"`
}

// ticket is the trimmed order view the kitchen display renders.
type ticket struct {
	OrderID             uuid.UUID    `json:"orderId"`
	Number              string       `json:"number"`
	Type                order.Type   `json:"type"`
	TableNumber         string       `json:"tableNumber,omitempty"`
	Status              order.Status `json:"status"`
	Items               []ticketItem `json:"items"`
	SpecialInstructions string       `json:"specialInstructions,omitempty"`
	EstimatedReadyAt    *time.Time   `json:"estimatedReadyAt,omitempty"`
	PlacedAt            time.Time    `json:"placedAt"`
}

// RedisKitchenRepository keeps the active kitchen tickets of every tenant in
// a per-tenant hash keyed by order ID.
type RedisKitchenRepository struct {
	client *redis.Client
}

// NewRedisKitchenRepository creates a new Redis kitchen repository.
func NewRedisKitchenRepository(client *redis.Client) *RedisKitchenRepository {
	return &RedisKitchenRepository{
		client: client,
	}
}

func kitchenKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("kitchen:%s", tenantID)
}

// PutTicket writes or replaces the order's kitchen ticket.
func (r *RedisKitchenRepository) PutTicket(ctx context.Context, o *order.Order) error {
	items := make([]ticketItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = ticketItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			Modifiers: item.Modifiers,
			Status:    item.Status,
			Note:      item.Note,
		}
	}

	payload, err := json.Marshal(ticket{
		OrderID:             o.ID,
		Number:              o.Number,
		Type:                o.Type,
		TableNumber:         o.TableNumber,
		Status:              o.Status,
		Items:               items,
		SpecialInstructions: o.SpecialInstructions,
		EstimatedReadyAt:    o.EstimatedReadyAt,
		PlacedAt:            o.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal kitchen ticket: %w", err)
	}

	if err := r.client.RDB().HSet(ctx, kitchenKey(o.TenantID), o.ID.String(), payload).Err(); err != nil {
		return fmt.Errorf("failed to write kitchen ticket: %w", err)
	}

	return nil
}

// RemoveTicket drops the order's ticket from the display.
func (r *RedisKitchenRepository) RemoveTicket(ctx context.Context, tenantID, orderID uuid.UUID) error {
	if err := r.client.RDB().HDel(ctx, kitchenKey(tenantID), orderID.String()).Err(); err != nil {
		return fmt.Errorf("failed to remove kitchen ticket: %w", err)
	}

	return nil
}
