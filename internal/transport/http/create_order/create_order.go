package createorder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
}

// modifierInCreateOrderRequest represents a selected item option.
type modifierInCreateOrderRequest struct {
	Name       string `json:"name" validate:"required"`
	PriceCents int64  `json:"priceCents"`
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID  string                         `json:"productId"  validate:"required,uuid"`
	Name       string                         `json:"name"       validate:"required"`
	Quantity   int                            `json:"quantity"   validate:"gt=0"`
	PriceCents int64                          `json:"priceCents" validate:"gte=0"`
	Modifiers  []modifierInCreateOrderRequest `json:"modifiers"  validate:"dive"`
	Note       string                         `json:"note"`
}

// toModel converts itemInCreateOrderRequest to orderitem.OrderItem.
func (r *itemInCreateOrderRequest) toModel() (*orderitem.OrderItem, error) {
	productID, err := uuid.Parse(r.ProductID)
	if err != nil {
		return nil, err
	}

	modifiers := make([]orderitem.Modifier, len(r.Modifiers))
	for i, modifier := range r.Modifiers {
		modifiers[i] = orderitem.Modifier{
			Name:       modifier.Name,
			PriceCents: modifier.PriceCents,
		}
	}

	return &orderitem.OrderItem{
		ProductID:  productID,
		Name:       r.Name,
		Quantity:   r.Quantity,
		PriceCents: r.PriceCents,
		Modifiers:  modifiers,
		Note:       r.Note,
	}, nil
}

// contactInCreateOrderRequest identifies the ordering customer.
type contactInCreateOrderRequest struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"  validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	PushToken  string `json:"pushToken"`
}

// createOrderRequest represents a create order request.
type createOrderRequest struct {
	Type                string                      `json:"type" validate:"required"`
	TableNumber         string                      `json:"tableNumber"`
	DeliveryAddress     string                      `json:"deliveryAddress"`
	PaymentMethod       string                      `json:"paymentMethod"`
	DiscountCents       int64                       `json:"discountCents" validate:"gte=0"`
	SpecialInstructions string                      `json:"specialInstructions"`
	Contact             contactInCreateOrderRequest `json:"contact"`
	Items               []itemInCreateOrderRequest  `json:"items" validate:"required,min=1,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts createOrderRequest to order.Order.
func (r *createOrderRequest) toModel(tenantID uuid.UUID) (*order.Order, error) {
	orderType, err := order.ParseType(r.Type)
	if err != nil {
		return nil, err
	}

	var paymentMethod order.PaymentMethod
	if r.PaymentMethod != "" {
		paymentMethod, err = order.ParsePaymentMethod(r.PaymentMethod)
		if err != nil {
			return nil, err
		}
	}

	items := make([]orderitem.OrderItem, len(r.Items))
	for i := range r.Items {
		item, err := r.Items[i].toModel()
		if err != nil {
			return nil, err
		}
		items[i] = *item
	}

	return &order.Order{
		TenantID:            tenantID,
		Type:                orderType,
		TableNumber:         r.TableNumber,
		DeliveryAddress:     r.DeliveryAddress,
		PaymentMethod:       paymentMethod,
		DiscountCents:       r.DiscountCents,
		SpecialInstructions: r.SpecialInstructions,
		Contact: order.Contact{
			CustomerID: r.Contact.CustomerID,
			Name:       r.Contact.Name,
			Email:      r.Contact.Email,
			Phone:      r.Contact.Phone,
			PushToken:  r.Contact.PushToken,
		},
		Items: items,
	}, nil
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for create order", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for create order", "error", err)

		return
	}

	model, err := req.toModel(tenantID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error converting create order request to model", "error", err)

		return
	}

	created, err := service.Create(r.Context(), *model)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error creating order", "error", err)

		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		slog.Error("Error sending response for create order", "error", err)
	}
}
