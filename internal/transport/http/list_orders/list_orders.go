package listorders

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/schema"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

var decoder = schema.NewDecoder()

// service is an interface for the service layer.
type service interface {
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}

// listOrdersQuery represents a list orders query.
type listOrdersQuery struct {
	Ids      []string `schema:"id"`
	Statuses []string `schema:"status"`
	Types    []string `schema:"type"`
	From     string   `schema:"from"`
	To       string   `schema:"to"`
	Limit    int      `schema:"limit"`
	Offset   int      `schema:"offset"`
}

// toModel converts listOrdersQuery to order.QueryOrdersModel.
func (q *listOrdersQuery) toModel(tenantID uuid.UUID) (*order.QueryOrdersModel, error) {
	ids := make([]uuid.UUID, len(q.Ids))
	for i, raw := range q.Ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	statuses := make([]order.Status, len(q.Statuses))
	for i, raw := range q.Statuses {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		statuses[i] = status
	}

	types := make([]order.Type, len(q.Types))
	for i, raw := range q.Types {
		orderType, err := order.ParseType(raw)
		if err != nil {
			return nil, err
		}
		types[i] = orderType
	}

	model := &order.QueryOrdersModel{
		TenantID: tenantID,
		Ids:      ids,
		Statuses: statuses,
		Types:    types,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}

	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return nil, err
		}
		model.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return nil, err
		}
		model.To = &to
	}

	return model, nil
}

// ListOrders handles the list orders request.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	query := &listOrdersQuery{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding query params for list orders", "error", err)

		return
	}

	model, err := query.toModel(tenantID)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error converting list orders query to model", "error", err)

		return
	}

	orders, err := service.Query(r.Context(), model)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error listing orders", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(orders); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for list orders", "error", err)
	}
}
