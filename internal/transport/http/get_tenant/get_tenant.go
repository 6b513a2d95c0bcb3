package gettenant

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/tenant"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*tenant.Tenant, error)
}

// GetTenant handles the get tenant request.
func GetTenant(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	found, err := service.Get(r.Context(), tenantID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error getting tenant", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(found); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for get tenant", "error", err)
	}
}
