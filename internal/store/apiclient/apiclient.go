package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
)

// Client talks to the platform HTTP API on behalf of a terminal. It
// implements the order store's Loader and Mutator interfaces.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends one JSON request and decodes the JSON response into out when out
// is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		text, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(text)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) ordersPath(tenantID uuid.UUID, parts ...string) string {
	path := fmt.Sprintf("/api/v1/tenants/%s/orders", tenantID)
	for _, part := range parts {
		path += "/" + part
	}

	return path
}

// Query lists orders matching the filter.
func (c *Client) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	params := url.Values{}
	for _, id := range filter.Ids {
		params.Add("id", id.String())
	}
	for _, status := range filter.Statuses {
		params.Add("status", string(status))
	}
	for _, orderType := range filter.Types {
		params.Add("type", string(orderType))
	}
	if filter.From != nil {
		params.Set("from", filter.From.Format(time.RFC3339))
	}
	if filter.To != nil {
		params.Set("to", filter.To.Format(time.RFC3339))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}

	path := c.ordersPath(filter.TenantID)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var orders []order.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	return orders, nil
}

// Get fetches one order.
func (c *Client) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*order.Order, error) {
	var found order.Order
	if err := c.do(ctx, http.MethodGet, c.ordersPath(tenantID, orderID.String()), nil, &found); err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return &found, nil
}

// UpdateStatus moves an order to the given status.
func (c *Client) UpdateStatus(ctx context.Context, tenantID, orderID uuid.UUID, status order.Status, reason string) (*order.Order, error) {
	body := struct {
		Status string `json:"status"`
		Reason string `json:"reason,omitempty"`
	}{Status: string(status), Reason: reason}

	var updated order.Order
	if err := c.do(ctx, http.MethodPost, c.ordersPath(tenantID, orderID.String(), "status"), body, &updated); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &updated, nil
}

// Cancel cancels an order.
func (c *Client) Cancel(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*order.Order, error) {
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}

	var cancelled order.Order
	if err := c.do(ctx, http.MethodPost, c.ordersPath(tenantID, orderID.String(), "cancel"), body, &cancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	return &cancelled, nil
}

// Refund refunds a completed order.
func (c *Client) Refund(ctx context.Context, tenantID, orderID uuid.UUID, reason string) (*order.Order, error) {
	body := struct {
		Reason string `json:"reason"`
	}{Reason: reason}

	var refunded order.Order
	if err := c.do(ctx, http.MethodPost, c.ordersPath(tenantID, orderID.String(), "refund"), body, &refunded); err != nil {
		return nil, fmt.Errorf("failed to refund order: %w", err)
	}

	return &refunded, nil
}

// AssignStaff assigns a staff member to an order.
func (c *Client) AssignStaff(ctx context.Context, tenantID, orderID, staffID uuid.UUID) (*order.Order, error) {
	body := struct {
		StaffID string `json:"staffId"`
	}{StaffID: staffID.String()}

	var assigned order.Order
	if err := c.do(ctx, http.MethodPost, c.ordersPath(tenantID, orderID.String(), "assign"), body, &assigned); err != nil {
		return nil, fmt.Errorf("failed to assign staff: %w", err)
	}

	return &assigned, nil
}

// UpdatePreparationTime overrides the kitchen estimate for an order.
func (c *Client) UpdatePreparationTime(ctx context.Context, tenantID, orderID uuid.UUID, minutes int) (*order.Order, error) {
	body := struct {
		Minutes int `json:"minutes"`
	}{Minutes: minutes}

	var updated order.Order
	if err := c.do(ctx, http.MethodPost, c.ordersPath(tenantID, orderID.String(), "prep-time"), body, &updated); err != nil {
		return nil, fmt.Errorf("failed to update preparation time: %w", err)
	}

	return &updated, nil
}

// UpdateItemStatus moves one line item through the kitchen.
func (c *Client) UpdateItemStatus(ctx context.Context, tenantID, orderID, itemID uuid.UUID, status orderitem.Status) (*order.Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: string(status)}

	path := c.ordersPath(tenantID, orderID.String(), "items", itemID.String(), "status")

	var updated order.Order
	if err := c.do(ctx, http.MethodPost, path, body, &updated); err != nil {
		return nil, fmt.Errorf("failed to update item status: %w", err)
	}

	return &updated, nil
}

// AddNote appends a staff note to an order.
func (c *Client) AddNote(ctx context.Context, tenantID, orderID uuid.UUID, note order.Note) (*order.Order, error) {
	body := struct {
		Author string `json:"author,omitempty"`
		Text   string `json:"text"`
	}{Author: note.Author, Text: note.Text}

	var updated order.Order
	if err := c.do(ctx, http.MethodPost, c.ordersPath(tenantID, orderID.String(), "notes"), body, &updated); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	return &updated, nil
}
