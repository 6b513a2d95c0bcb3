package listalerts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/alert"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Alerts(ctx context.Context, tenantID uuid.UUID) ([]alert.LowStockAlert, error)
}

// ListAlerts handles the list low stock alerts request.
func ListAlerts(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	alerts, err := service.Alerts(r.Context(), tenantID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error listing low stock alerts", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(alerts); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list alerts", "error", err)
	}
}
