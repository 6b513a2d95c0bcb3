package restockproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Restock(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error)
}

// restockProductRequest represents a restock product request.
type restockProductRequest struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

// Validate validates the restock product request.
func (r *restockProductRequest) Validate() error {
	return validator.New().Struct(r)
}

// RestockProduct handles the restock product request.
func RestockProduct(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing product id", "error", err)

		return
	}

	req := restockProductRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for restock product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for restock product", "error", err)

		return
	}

	restocked, err := service.Restock(r.Context(), tenantID, productID, req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error restocking product", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(restocked); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for restock product", "error", err)
	}
}
