package updatestatus

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/services/ordersvc"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	UpdateStatus(ctx context.Context, model ordersvc.UpdateStatusModel) (*order.Order, error)
}

// updateStatusRequest represents an update order status request.
type updateStatusRequest struct {
	Status           string     `json:"status" validate:"required"`
	Reason           string     `json:"reason"`
	StaffID          string     `json:"staffId" validate:"omitempty,uuid"`
	EstimatedReadyAt *time.Time `json:"estimatedReadyAt"`
	PrepTimeMinutes  int        `json:"prepTimeMinutes" validate:"gte=0"`
}

// Validate validates the update status request.
func (r *updateStatusRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts updateStatusRequest to ordersvc.UpdateStatusModel.
func (r *updateStatusRequest) toModel(tenantID, orderID uuid.UUID) (*ordersvc.UpdateStatusModel, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	model := &ordersvc.UpdateStatusModel{
		TenantID:         tenantID,
		OrderID:          orderID,
		NewStatus:        status,
		Reason:           r.Reason,
		EstimatedReadyAt: r.EstimatedReadyAt,
		PrepTimeMinutes:  r.PrepTimeMinutes,
	}

	if r.StaffID != "" {
		staffID, err := uuid.Parse(r.StaffID)
		if err != nil {
			return nil, err
		}
		model.StaffID = &staffID
	}

	return model, nil
}

// UpdateStatus handles the update order status request.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
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

	req := updateStatusRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update status", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update status", "error", err)

		return
	}

	model, err := req.toModel(tenantID, orderID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error converting update status request to model", "error", err)

		return
	}

	updated, err := service.UpdateStatus(r.Context(), *model)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error updating order status", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for update status", "error", err)
	}
}
