package assignstaff

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
	AssignStaff(ctx context.Context, tenantID, orderID, staffID uuid.UUID) (*order.Order, error)
}

// assignStaffRequest represents an assign staff request.
type assignStaffRequest struct {
	StaffID string `json:"staffId" validate:"required,uuid"`
}

// Validate validates the assign staff request.
func (r *assignStaffRequest) Validate() error {
	return validator.New().Struct(r)
}

// AssignStaff handles the assign staff request.
func AssignStaff(w http.ResponseWriter, r *http.Request, service service) {
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

	req := assignStaffRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for assign staff", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for assign staff", "error", err)

		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing staff id", "error", err)

		return
	}

	assigned, err := service.AssignStaff(r.Context(), tenantID, orderID, staffID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error assigning staff to order", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(assigned); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for assign staff", "error", err)
	}
}
