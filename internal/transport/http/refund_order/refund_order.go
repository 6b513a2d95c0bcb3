package refundorder

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
	Refund(ctx context.Context, tenantID, orderID uuid.UUID, reason string, staffID *uuid.UUID) (*order.Order, error)
}

// refundOrderRequest represents a refund order request.
type refundOrderRequest struct {
	Reason  string `json:"reason" validate:"required"`
	StaffID string `json:"staffId" validate:"omitempty,uuid"`
}

// Validate validates the refund order request.
func (r *refundOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// RefundOrder handles the refund order request.
func RefundOrder(w http.ResponseWriter, r *http.Request, service service) {
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

	req := refundOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for refund order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for refund order", "error", err)

		return
	}

	var staffID *uuid.UUID
	if req.StaffID != "" {
		id, err := uuid.Parse(req.StaffID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			slog.Error("Error parsing staff id", "error", err)

			return
		}
		staffID = &id
	}

	refunded, err := service.Refund(r.Context(), tenantID, orderID, req.Reason, staffID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error refunding order", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(refunded); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for refund order", "error", err)
	}
}
