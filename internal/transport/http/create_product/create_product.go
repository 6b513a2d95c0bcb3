package createproduct

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, p product.Product) (product.Product, error)
}

// createProductRequest represents a create product request.
type createProductRequest struct {
	Name              string `json:"name" validate:"required"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	PriceCents        int64  `json:"priceCents" validate:"gte=0"`
	Currency          string `json:"currency"`
	TrackInventory    bool   `json:"trackInventory"`
	Stock             int    `json:"stock" validate:"gte=0"`
	LowStockThreshold int    `json:"lowStockThreshold" validate:"gte=0"`
	Active            *bool  `json:"active"`
}

// Validate validates the create product request.
func (r *createProductRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createProductRequest to product.Product. New products are
// active unless the request says otherwise.
func (r *createProductRequest) toModel(tenantID uuid.UUID) (*product.Product, error) {
	var cur currency.Currency
	if r.Currency != "" {
		parsed, err := currency.ParseCurrency(r.Currency)
		if err != nil {
			return nil, err
		}
		cur = parsed
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return &product.Product{
		TenantID:          tenantID,
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		PriceCents:        r.PriceCents,
		Currency:          cur,
		TrackInventory:    r.TrackInventory,
		Stock:             r.Stock,
		LowStockThreshold: r.LowStockThreshold,
		Active:            active,
	}, nil
}

// CreateProduct handles the create product request.
func CreateProduct(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	req := createProductRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create product", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create product", "error", err)

		return
	}

	model, err := req.toModel(tenantID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error converting create product request to model", "error", err)

		return
	}

	created, err := service.Create(r.Context(), *model)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error creating product", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create product", "error", err)
	}
}
