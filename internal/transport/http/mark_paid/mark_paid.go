package markpaid

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	MarkPaid(ctx context.Context, tenantID, orderID uuid.UUID, method order.PaymentMethod) (*order.Order, error)
}

// markPaidRequest represents a mark order paid request.
type markPaidRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// Validate validates the mark paid request.
func (r *markPaidRequest) Validate() error {
	return validator.New().Struct(r)
}

// MarkPaid handles the mark order paid request.
func MarkPaid(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing order id", "error", err)

		return
	}

	req := markPaidRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for mark paid", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for mark paid", "error", err)

		return
	}

	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error parsing payment method", "error", err)

		return
	}

	paid, err := service.MarkPaid(r.Context(), tenantID, orderID, method)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error marking order paid", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(paid); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for mark paid", "error", err)
	}
}
