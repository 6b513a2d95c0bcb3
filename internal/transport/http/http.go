package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/eatech/platform/internal/service/models/alert"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/orderitem"
	"github.com/eatech/platform/internal/service/models/product"
	"github.com/eatech/platform/internal/service/models/tenant"
	"github.com/eatech/platform/internal/service/services/ordersvc"
	"github.com/eatech/platform/internal/service/services/productsvc"
	"github.com/eatech/platform/internal/service/services/tenantsvc"
	addnote "github.com/eatech/platform/internal/transport/http/add_note"
	assignstaff "github.com/eatech/platform/internal/transport/http/assign_staff"
	cancelorder "github.com/eatech/platform/internal/transport/http/cancel_order"
	createorder "github.com/eatech/platform/internal/transport/http/create_order"
	createproduct "github.com/eatech/platform/internal/transport/http/create_product"
	getorder "github.com/eatech/platform/internal/transport/http/get_order"
	gettenant "github.com/eatech/platform/internal/transport/http/get_tenant"
	listalerts "github.com/eatech/platform/internal/transport/http/list_alerts"
	listorders "github.com/eatech/platform/internal/transport/http/list_orders"
	listproducts "github.com/eatech/platform/internal/transport/http/list_products"
	markpaid "github.com/eatech/platform/internal/transport/http/mark_paid"
	orderstats "github.com/eatech/platform/internal/transport/http/order_stats"
	refundorder "github.com/eatech/platform/internal/transport/http/refund_order"
	restockproduct "github.com/eatech/platform/internal/transport/http/restock_product"
	tenantavailability "github.com/eatech/platform/internal/transport/http/tenant_availability"
	updateitemstatus "github.com/eatech/platform/internal/transport/http/update_item_status"
	updatepreptime "github.com/eatech/platform/internal/transport/http/update_prep_time"
	updateproduct "github.com/eatech/platform/internal/transport/http/update_product"
	updatestatus "github.com/eatech/platform/internal/transport/http/update_status"
	"github.com/eatech/platform/pkg/http/middleware/trace"
	"github.com/eatech/platform/pkg/logger"
)

// orderService is an interface for the order service layer.
type orderService interface {
	Create(ctx context.Context, o order.Order) (order.Order, error)
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*order.Order, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	Stats(ctx context.Context, tenantID uuid.UUID) (order.Stats, error)
	UpdateStatus(ctx context.Context, model ordersvc.UpdateStatusModel) (*order.Order, error)
	Cancel(ctx context.Context, tenantID, orderID uuid.UUID, reason string, staffID *uuid.UUID) (*order.Order, error)
	Refund(ctx context.Context, tenantID, orderID uuid.UUID, reason string, staffID *uuid.UUID) (*order.Order, error)
	AssignStaff(ctx context.Context, tenantID, orderID, staffID uuid.UUID) (*order.Order, error)
	UpdatePreparationTime(ctx context.Context, tenantID, orderID uuid.UUID, minutes int) (*order.Order, error)
	UpdateItemStatus(ctx context.Context, tenantID, orderID, itemID uuid.UUID, status orderitem.Status) (*order.Order, error)
	MarkPaid(ctx context.Context, tenantID, orderID uuid.UUID, method order.PaymentMethod) (*order.Order, error)
	AddNote(ctx context.Context, tenantID, orderID uuid.UUID, note order.Note) (*order.Order, error)
}

// productService is an interface for the product service layer.
type productService interface {
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]product.Product, error)
	Create(ctx context.Context, p product.Product) (product.Product, error)
	Update(ctx context.Context, model productsvc.UpdateProductModel) (*product.Product, error)
	Restock(ctx context.Context, tenantID, productID uuid.UUID, qty int) (*product.Product, error)
	Alerts(ctx context.Context, tenantID uuid.UUID) ([]alert.LowStockAlert, error)
}

// tenantService is an interface for the tenant service layer.
type tenantService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*tenant.Tenant, error)
	Availability(ctx context.Context, tenantID uuid.UUID) (*tenantsvc.Availability, error)
}

// HTTPTransport represents the HTTP transport layer.
type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	orders   orderService
	products productService
	tenants  tenantService
}

// NewHTTPTransport creates a new HTTP transport.
func NewHTTPTransport(orders orderService, products productService, tenants tenantService) *HTTPTransport {
	transport := &HTTPTransport{
		orders:   orders,
		products: products,
		tenants:  tenants,
	}
	transport.router = newRouter()
	transport.server = newServer(transport.router)

	return transport
}

// newRouter creates a new chi router with middlewares.
func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   viper.GetStringSlice("server.http.cors.allowed_origins"),
		AllowedMethods:   viper.GetStringSlice("server.http.cors.allowed_methods"),
		AllowedHeaders:   viper.GetStringSlice("server.http.cors.allowed_headers"),
		AllowCredentials: viper.GetBool("server.http.cors.allow_credentials"),
		MaxAge:           viper.GetInt("server.http.cors.max_age"),
	}).Handler)

	return router
}

// newServer creates a new HTTP server.
func newServer(router *chi.Mux) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}

// RegisterRoutes registers the HTTP routes.
func (t *HTTPTransport) RegisterRoutes() {
	t.router.Route("/api/v1/tenants/{tenantID}", func(r chi.Router) {
		r.Get("/", t.getTenant)
		r.Get("/availability", t.tenantAvailability)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", t.createOrder)
			r.Get("/", t.listOrders)
			r.Get("/stats", t.orderStats)

			r.Route("/{orderID}", func(r chi.Router) {
				r.Get("/", t.getOrder)
				r.Post("/status", t.updateStatus)
				r.Post("/cancel", t.cancelOrder)
				r.Post("/refund", t.refundOrder)
				r.Post("/assign", t.assignStaff)
				r.Post("/prep-time", t.updatePrepTime)
				r.Post("/pay", t.markPaid)
				r.Post("/items/{itemID}/status", t.updateItemStatus)
				r.Post("/notes", t.addNote)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", t.listProducts)
			r.Post("/", t.createProduct)
			r.Patch("/{productID}", t.updateProduct)
			r.Post("/{productID}/restock", t.restockProduct)
		})

		r.Get("/alerts", t.listAlerts)
	})
}

func (t *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, t.orders)
}

func (t *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, t.orders)
}

func (t *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, t.orders)
}

func (t *HTTPTransport) orderStats(w http.ResponseWriter, r *http.Request) {
	orderstats.OrderStats(w, r, t.orders)
}

func (t *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, t.orders)
}

func (t *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, t.orders)
}

func (t *HTTPTransport) refundOrder(w http.ResponseWriter, r *http.Request) {
	refundorder.RefundOrder(w, r, t.orders)
}

func (t *HTTPTransport) assignStaff(w http.ResponseWriter, r *http.Request) {
	assignstaff.AssignStaff(w, r, t.orders)
}

func (t *HTTPTransport) updatePrepTime(w http.ResponseWriter, r *http.Request) {
	updatepreptime.UpdatePrepTime(w, r, t.orders)
}

func (t *HTTPTransport) markPaid(w http.ResponseWriter, r *http.Request) {
	markpaid.MarkPaid(w, r, t.orders)
}

func (t *HTTPTransport) updateItemStatus(w http.ResponseWriter, r *http.Request) {
	updateitemstatus.UpdateItemStatus(w, r, t.orders)
}

func (t *HTTPTransport) addNote(w http.ResponseWriter, r *http.Request) {
	addnote.AddNote(w, r, t.orders)
}

func (t *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, t.products)
}

func (t *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	createproduct.CreateProduct(w, r, t.products)
}

func (t *HTTPTransport) updateProduct(w http.ResponseWriter, r *http.Request) {
	updateproduct.UpdateProduct(w, r, t.products)
}

func (t *HTTPTransport) restockProduct(w http.ResponseWriter, r *http.Request) {
	restockproduct.RestockProduct(w, r, t.products)
}

func (t *HTTPTransport) listAlerts(w http.ResponseWriter, r *http.Request) {
	listalerts.ListAlerts(w, r, t.products)
}

func (t *HTTPTransport) getTenant(w http.ResponseWriter, r *http.Request) {
	gettenant.GetTenant(w, r, t.tenants)
}

func (t *HTTPTransport) tenantAvailability(w http.ResponseWriter, r *http.Request) {
	tenantavailability.TenantAvailability(w, r, t.tenants)
}

// Run starts the HTTP server.
func (t *HTTPTransport) Run() error {
	return t.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (t *HTTPTransport) Shutdown(ctx context.Context) error {
	return t.server.Shutdown(ctx)
}
