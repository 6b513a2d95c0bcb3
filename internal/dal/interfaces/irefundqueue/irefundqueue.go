package irefundqueue

import (
	"context"

	"github.com/eatech/platform/internal/service/models/refund"
)

// IRefundQueue hands refund requests to the external payment worker.
type IRefundQueue interface {
	Enqueue(ctx context.Context, req refund.Request) error
}
