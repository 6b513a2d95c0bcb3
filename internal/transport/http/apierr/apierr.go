package apierr

import (
	"errors"
	"net/http"

	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/service/models/staff"
	"github.com/eatech/platform/internal/service/models/tenant"
	"github.com/eatech/platform/internal/service/services/ordersvc"
)

// Status maps service errors to an HTTP status code. Anything unknown is an
// internal error.
func Status(err error) int {
	switch {
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, orderitem.ErrItemNotFound),
		errors.Is(err, tenant.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, staff.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, ordersvc.ErrNotAcceptingOrders),
		errors.Is(err, ordersvc.ErrPaymentMethodNotAccepted),
		errors.Is(err, ordersvc.ErrNotRefundable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ordersvc.ErrNoItems),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrInvalidType),
		errors.Is(err, order.ErrInvalidPaymentMethod),
		errors.Is(err, orderitem.ErrInvalidItemStatus),
		errors.Is(err, currency.ErrInvalidCurrency):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
