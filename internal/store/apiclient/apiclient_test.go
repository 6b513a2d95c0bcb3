package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
)

func TestQueryBuildsTenantScopedRequest(t *testing.T) {
	tenantID := uuid.New()
	from := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)

	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]order.Order{
			{ID: uuid.New(), TenantID: tenantID, Number: "E-260821-0001", Status: order.StatusPending},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")

	orders, err := client.Query(context.Background(), &order.QueryOrdersModel{
		TenantID: tenantID,
		Statuses: []order.Status{order.StatusPending, order.StatusConfirmed},
		From:     &from,
		Limit:    25,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := "/api/v1/tenants/" + tenantID.String() + "/orders"
	if gotPath != wantPath {
		t.Errorf("expected path %s, got %s", wantPath, gotPath)
	}
	for _, param := range []string{"status=pending", "status=confirmed", "limit=25", "from=2026-08-21T00%3A00%3A00Z"} {
		if !strings.Contains(gotQuery, param) {
			t.Errorf("expected query to contain %q, got %q", param, gotQuery)
		}
	}
	if len(orders) != 1 || orders[0].Number != "E-260821-0001" {
		t.Errorf("unexpected orders: %+v", orders)
	}
}

func TestUpdateStatusPostsBody(t *testing.T) {
	tenantID := uuid.New()
	orderID := uuid.New()

	var gotPath string
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(order.Order{ID: orderID, Status: order.StatusConfirmed})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	updated, err := client.UpdateStatus(context.Background(), tenantID, orderID, order.StatusConfirmed, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantPath := "/api/v1/tenants/" + tenantID.String() + "/orders/" + orderID.String() + "/status"
	if gotPath != wantPath {
		t.Errorf("expected path %s, got %s", wantPath, gotPath)
	}
	if gotBody["status"] != "confirmed" {
		t.Errorf("expected status confirmed in body, got %+v", gotBody)
	}
	if updated.Status != order.StatusConfirmed {
		t.Errorf("expected confirmed order back, got %s", updated.Status)
	}
}

func TestErrorResponsesSurfaceStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tenant is not accepting orders", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Cancel(context.Background(), uuid.New(), uuid.New(), "guest left")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "unexpected status 422") {
		t.Errorf("expected the status code in the error, got %q", err)
	}
	if !strings.Contains(err.Error(), "tenant is not accepting orders") {
		t.Errorf("expected the response body in the error, got %q", err)
	}
}
