package icustomerrepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

// ICustomerRepository is an interface for the customer postgres repository.
type ICustomerRepository interface {
	// AccrueOnOrder upserts the customer matched by the contact's email or
	// phone and atomically adds the order's spend, loyalty points and order
	// count.
	AccrueOnOrder(ctx context.Context, tenantID uuid.UUID, contact order.Contact, totalCents, points int64, now time.Time) error

	// UpsertMailingList records an opted-in address, once per tenant.
	UpsertMailingList(ctx context.Context, tenantID uuid.UUID, email, name string, now time.Time) error
}
