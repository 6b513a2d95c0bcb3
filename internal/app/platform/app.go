package platform

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/dal/rabbitmq"
	"github.com/eatech/platform/internal/dal/redis"
	alertrepo "github.com/eatech/platform/internal/dal/repositories/alert/postgres"
	effectrepo "github.com/eatech/platform/internal/dal/repositories/effect/postgres"
	feedrepo "github.com/eatech/platform/internal/dal/repositories/feed/redis"
	orderrepo "github.com/eatech/platform/internal/dal/repositories/order/postgres"
	outboxrepo "github.com/eatech/platform/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/eatech/platform/internal/dal/repositories/product/postgres"
	tenantrepo "github.com/eatech/platform/internal/dal/repositories/tenant/postgres"
	"github.com/eatech/platform/internal/otel"
	"github.com/eatech/platform/internal/service/services/inventorysvc"
	"github.com/eatech/platform/internal/service/services/ordersvc"
	"github.com/eatech/platform/internal/service/services/productsvc"
	"github.com/eatech/platform/internal/service/services/tenantsvc"
	httptransport "github.com/eatech/platform/internal/transport/http"
	outboxworker "github.com/eatech/platform/internal/worker/outbox"
)

// App represents the platform API application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitClient   *rabbitmq.Client
}

// MustNewApp creates a new platform application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("platform")

	postgresClient := postgres.MustNewClient()
	redisClient := redis.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	pool := postgresClient.Pool()
	orderRepo := orderrepo.NewPostgresOrderRepository(pool)
	outboxRepo := outboxrepo.NewOutboxRepository(pool)
	tenantRepo := tenantrepo.NewPostgresTenantRepository(pool)
	productRepo := productrepo.NewPostgresProductRepository(pool)
	alertRepo := alertrepo.NewPostgresAlertRepository(pool)
	effectRepo := effectrepo.NewPostgresEffectRepository(pool)
	feedRepo := feedrepo.NewRedisFeedRepository(redisClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithTenantRepository(tenantRepo),
		ordersvc.WithEffectRepository(effectRepo),
		ordersvc.WithFeedPublisher(feedRepo),
	)

	inventorySvc := inventorysvc.MustNewInventoryService(
		inventorysvc.WithProductRepository(productRepo),
		inventorysvc.WithAlertRepository(alertRepo),
	)

	productSvc := productsvc.MustNewProductService(
		productsvc.WithProductRepository(productRepo),
		productsvc.WithAlertRepository(alertRepo),
		productsvc.WithTenantRepository(tenantRepo),
		productsvc.WithInventoryService(inventorySvc),
	)

	tenantSvc := tenantsvc.MustNewTenantService(
		tenantsvc.WithTenantRepository(tenantRepo),
		tenantsvc.WithOrderRepository(orderRepo),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, productSvc, tenantSvc)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.MustNewWorker(outboxRepo, rabbitClient)

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		otelController: otelController,
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitClient:   rabbitClient,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.outboxWorker.Start(ctx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.transport.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.outboxWorker.Stop()

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
