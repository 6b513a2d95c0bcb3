package tenantavailability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/services/tenantsvc"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Availability(ctx context.Context, tenantID uuid.UUID) (*tenantsvc.Availability, error)
}

// TenantAvailability handles the tenant availability request.
func TenantAvailability(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	availability, err := service.Availability(r.Context(), tenantID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error getting tenant availability", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(availability); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for tenant availability", "error", err)
	}
}
