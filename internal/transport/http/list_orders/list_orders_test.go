package listorders

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

type fakeService struct {
	gotFilter *order.QueryOrdersModel
	orders    []order.Order
}

func (s *fakeService) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	s.gotFilter = filter

	return s.orders, nil
}

func serveList(service *fakeService, target string) *httptest.ResponseRecorder {
	router := chi.NewMux()
	router.Get("/api/v1/tenants/{tenantID}/orders", func(w http.ResponseWriter, r *http.Request) {
		ListOrders(w, r, service)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(rec, req)

	return rec
}

func TestListOrdersDecodesQuery(t *testing.T) {
	service := &fakeService{orders: []order.Order{}}
	tenantID := uuid.New()

	target := "/api/v1/tenants/" + tenantID.String() + "/orders" +
		"?status=pending&status=confirmed&type=delivery&from=2026-08-21T00:00:00Z&limit=20&offset=40"

	rec := serveList(service, target)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	filter := service.gotFilter
	if filter == nil {
		t.Fatal("expected the service to receive a filter")
	}
	if filter.TenantID != tenantID {
		t.Errorf("expected tenant %s, got %s", tenantID, filter.TenantID)
	}
	if len(filter.Statuses) != 2 || filter.Statuses[0] != order.StatusPending || filter.Statuses[1] != order.StatusConfirmed {
		t.Errorf("unexpected statuses: %v", filter.Statuses)
	}
	if len(filter.Types) != 1 || filter.Types[0] != order.TypeDelivery {
		t.Errorf("unexpected types: %v", filter.Types)
	}
	if filter.From == nil || !filter.From.Equal(time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected from bound: %v", filter.From)
	}
	if filter.To != nil {
		t.Errorf("expected no to bound, got %v", filter.To)
	}
	if filter.Limit != 20 || filter.Offset != 40 {
		t.Errorf("unexpected paging: limit=%d offset=%d", filter.Limit, filter.Offset)
	}
}

func TestListOrdersRejectsBadQuery(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name   string
		target string
	}{
		{
			name:   "unknown status",
			target: "/api/v1/tenants/" + tenantID.String() + "/orders?status=parked",
		},
		{
			name:   "bad from timestamp",
			target: "/api/v1/tenants/" + tenantID.String() + "/orders?from=yesterday",
		},
		{
			name:   "malformed id filter",
			target: "/api/v1/tenants/" + tenantID.String() + "/orders?id=42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{}

			rec := serveList(service, tt.target)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			if service.gotFilter != nil {
				t.Error("expected the service to not be called")
			}
		})
	}
}
