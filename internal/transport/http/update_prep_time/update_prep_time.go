package updatepreptime

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
	UpdatePreparationTime(ctx context.Context, tenantID, orderID uuid.UUID, minutes int) (*order.Order, error)
}

// updatePrepTimeRequest represents an update preparation time request.
type updatePrepTimeRequest struct {
	Minutes int `json:"minutes" validate:"gt=0"`
}

// Validate validates the update preparation time request.
func (r *updatePrepTimeRequest) Validate() error {
	return validator.New().Struct(r)
}

// UpdatePrepTime handles the update preparation time request.
func UpdatePrepTime(w http.ResponseWriter, r *http.Request, service service) {
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

	req := updatePrepTimeRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update prep time", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update prep time", "error", err)

		return
	}

	updated, err := service.UpdatePreparationTime(r.Context(), tenantID, orderID, req.Minutes)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error updating preparation time", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for update prep time", "error", err)
	}
}
