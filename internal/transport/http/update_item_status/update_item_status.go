package updateitemstatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	UpdateItemStatus(ctx context.Context, tenantID, orderID, itemID uuid.UUID, status orderitem.Status) (*order.Order, error)
}

// updateItemStatusRequest represents an update item status request.
type updateItemStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Validate validates the update item status request.
func (r *updateItemStatusRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdateItemStatus handles the update item status request.
func UpdateItemStatus(w http.ResponseWriter, r *http.Request, service service) {
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

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing item id", "error", err)

		return
	}

	req := updateItemStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update item status", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update item status", "error", err)

		return
	}

	status, err := orderitem.ParseStatus(req.Status)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error parsing item status", "error", err)

		return
	}

	updated, err := service.UpdateItemStatus(r.Context(), tenantID, orderID, itemID, status)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error updating item status", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for update item status", "error", err)
	}
}
