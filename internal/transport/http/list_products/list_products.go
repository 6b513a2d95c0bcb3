package listproducts

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]product.Product, error)
}

// ListProducts handles the list products request. Inactive products are
// included only when ?all=true is passed.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	activeOnly := r.URL.Query().Get("all") != "true"

	products, err := service.List(r.Context(), tenantID, activeOnly)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error listing products", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(products); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list products", "error", err)
	}
}
