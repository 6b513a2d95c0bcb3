package updateproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/service/services/productsvc"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Update(ctx context.Context, model productsvc.UpdateProductModel) (*product.Product, error)
}

// updateProductRequest represents a partial product update. Absent fields
// keep their stored values.
type updateProductRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Category          *string `json:"category"`
	PriceCents        *int64  `json:"priceCents" validate:"omitempty,gte=0"`
	TrackInventory    *bool   `json:"trackInventory"`
	Stock             *int    `json:"stock" validate:"omitempty,gte=0"`
	LowStockThreshold *int    `json:"lowStockThreshold" validate:"omitempty,gte=0"`
	Active            *bool   `json:"active"`
}

// Validate validates the update product request.
func (r *updateProductRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts updateProductRequest to productsvc.UpdateProductModel.
func (r *updateProductRequest) toModel(tenantID, productID uuid.UUID) productsvc.UpdateProductModel {
	return productsvc.UpdateProductModel{
		TenantID:          tenantID,
		ProductID:         productID,
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		PriceCents:        r.PriceCents,
		TrackInventory:    r.TrackInventory,
		Stock:             r.Stock,
		LowStockThreshold: r.LowStockThreshold,
		Active:            r.Active,
	}
}

// UpdateProduct handles the update product request.
func UpdateProduct(w http.ResponseWriter, r *http.Request, service service) {
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

	req := updateProductRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for update product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for update product", "error", err)

		return
	}

	updated, err := service.Update(r.Context(), req.toModel(tenantID, productID))
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error updating product", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for update product", "error", err)
	}
}
