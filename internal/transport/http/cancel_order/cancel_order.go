package cancelorder

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
	Cancel(ctx context.Context, tenantID, orderID uuid.UUID, reason string, staffID *uuid.UUID) (*order.Order, error)
}

// cancelOrderRequest represents a cancel order request.
type cancelOrderRequest struct {
	Reason  string `json:"reason" validate:"required"`
	StaffID string `json:"staffId" validate:"omitempty,uuid"`
}

// Validate validates the cancel order request.
func (r *cancelOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// CancelOrder handles the cancel order request.
func CancelOrder(w http.ResponseWriter, r *http.Request, service service) {
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

	req := cancelOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for cancel order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for cancel order", "error", err)

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

	cancelled, err := service.Cancel(r.Context(), tenantID, orderID, req.Reason, staffID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error cancelling order", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(cancelled); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for cancel order", "error", err)
	}
}
