package createorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/services/ordersvc"
)

type fakeService struct {
	created *order.Order
	err     error
}

func (s *fakeService) Create(_ context.Context, o order.Order) (order.Order, error) {
	if s.err != nil {
		return order.Order{}, s.err
	}

	o.ID = uuid.New()
	o.Number = "E-260821-0001"
	s.created = &o

	return o, nil
}

func serveCreate(service *fakeService, target, body string) *httptest.ResponseRecorder {
	router := chi.NewMux()
	router.Post("/api/v1/tenants/{tenantID}/orders", func(w http.ResponseWriter, r *http.Request) {
		CreateOrder(w, r, service)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	router.ServeHTTP(rec, req)

	return rec
}

func validBody(productID uuid.UUID) string {
	return `{
		"type": "takeaway",
		"paymentMethod": "twint",
		"contact": {"name": "Mia Keller", "email": "mia@example.ch"},
		"items": [
			{"productId": "` + productID.String() + `", "name": "Rösti", "quantity": 2, "priceCents": 1500}
		]
	}`
}

func TestCreateOrderParsesRequest(t *testing.T) {
	service := &fakeService{}
	tenantID := uuid.New()
	productID := uuid.New()

	rec := serveCreate(service, "/api/v1/tenants/"+tenantID.String()+"/orders", validBody(productID))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if service.created == nil {
		t.Fatal("expected the service to receive an order")
	}
	if service.created.TenantID != tenantID {
		t.Errorf("expected tenant %s, got %s", tenantID, service.created.TenantID)
	}
	if service.created.Type != order.TypeTakeaway {
		t.Errorf("expected takeaway order, got %s", service.created.Type)
	}
	if service.created.PaymentMethod != order.PaymentTwint {
		t.Errorf("expected twint payment, got %s", service.created.PaymentMethod)
	}
	if len(service.created.Items) != 1 || service.created.Items[0].ProductID != productID {
		t.Errorf("unexpected items: %+v", service.created.Items)
	}

	var created order.Order
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.Number != "E-260821-0001" {
		t.Errorf("expected assigned order number in response, got %q", created.Number)
	}
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	productID := uuid.New()
	tenantID := uuid.New()

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{
			name:   "malformed tenant id",
			target: "/api/v1/tenants/not-a-uuid/orders",
			body:   validBody(productID),
		},
		{
			name:   "empty items",
			target: "/api/v1/tenants/" + tenantID.String() + "/orders",
			body:   `{"type": "takeaway", "contact": {"name": "Mia"}, "items": []}`,
		},
		{
			name:   "unknown order type",
			target: "/api/v1/tenants/" + tenantID.String() + "/orders",
			body: `{"type": "drive-through", "contact": {"name": "Mia"}, "items": [
				{"productId": "` + productID.String() + `", "name": "Rösti", "quantity": 1, "priceCents": 1500}
			]}`,
		},
		{
			name:   "zero quantity",
			target: "/api/v1/tenants/" + tenantID.String() + "/orders",
			body: `{"type": "takeaway", "contact": {"name": "Mia"}, "items": [
				{"productId": "` + productID.String() + `", "name": "Rösti", "quantity": 0, "priceCents": 1500}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{}

			rec := serveCreate(service, tt.target, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if service.created != nil {
				t.Error("expected the service to not be called")
			}
		})
	}
}

func TestCreateOrderMapsServiceErrors(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	service := &fakeService{err: ordersvc.ErrNotAcceptingOrders}

	rec := serveCreate(service, "/api/v1/tenants/"+tenantID.String()+"/orders", validBody(productID))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}
