package addnote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/transport/http/apierr"
)

// service is an interface for the service layer.
type service interface {
	AddNote(ctx context.Context, tenantID, orderID uuid.UUID, note order.Note) (*order.Order, error)
}

// addNoteRequest represents an add note request.
type addNoteRequest struct {
	Author string `json:"author"`
	Text   string `json:"text" validate:"required"`
}

// Validate validates the add note request.
func (r *addNoteRequest) Validate() error {
	return validator.New().Struct(r)
}

// AddNote handles the add note request.
func AddNote(w http.ResponseWriter, r *http.Request, service service) {
	tenantID, err := uuid.Parse(chi.URLParam(r, "tenantID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tenant id", "error", err)

		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing order id", "error", err)

		return
	}

	req := addNoteRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding request body for add note", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for add note", "error", err)

		return
	}

	note := order.Note{
		Author: req.Author,
		Text:   req.Text,
	}

	updated, err := service.AddNote(r.Context(), tenantID, orderID, note)
	if err != nil {
		http.Error(w, err.Error(), apierr.Status(err))
		slog.Error("Error adding note to order", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending response for add note", "error", err)
	}
}
