package dispatcher

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/dal/rabbitmq"
	"github.com/eatech/platform/internal/dal/redis"
	alertrepo "github.com/eatech/platform/internal/dal/repositories/alert/postgres"
	analyticsrepo "github.com/eatech/platform/internal/dal/repositories/analytics/postgres"
	customerrepo "github.com/eatech/platform/internal/dal/repositories/customer/postgres"
	effectrepo "github.com/eatech/platform/internal/dal/repositories/effect/postgres"
	feedrepo "github.com/eatech/platform/internal/dal/repositories/feed/redis"
	kitchenrepo "github.com/eatech/platform/internal/dal/repositories/kitchen/redis"
	ledgerrepo "github.com/eatech/platform/internal/dal/repositories/ledger/postgres"
	orderrepo "github.com/eatech/platform/internal/dal/repositories/order/postgres"
	productrepo "github.com/eatech/platform/internal/dal/repositories/product/postgres"
	refundqueuerepo "github.com/eatech/platform/internal/dal/repositories/refundqueue/rabbitmq"
	staffrepo "github.com/eatech/platform/internal/dal/repositories/staff/postgres"
	tenantrepo "github.com/eatech/platform/internal/dal/repositories/tenant/postgres"
	"github.com/eatech/platform/internal/notify"
	"github.com/eatech/platform/internal/otel"
	"github.com/eatech/platform/internal/service/services/dispatchsvc"
	"github.com/eatech/platform/internal/service/services/inventorysvc"
	"github.com/eatech/platform/internal/service/services/ordersvc"
	"github.com/eatech/platform/internal/transport/consumer"
	"github.com/eatech/platform/internal/worker/feedback"
)

// App represents the dispatcher application.
type App struct {
	consumer       *consumer.Consumer
	scheduler      *feedback.Scheduler
	otelController *otel.OtelController
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitClient   *rabbitmq.Client
}

// MustNewApp creates a new dispatcher application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel("dispatcher")

	postgresClient := postgres.MustNewClient()
	redisClient := redis.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	pool := postgresClient.Pool()
	orderRepo := orderrepo.NewPostgresOrderRepository(pool)
	tenantRepo := tenantrepo.NewPostgresTenantRepository(pool)
	productRepo := productrepo.NewPostgresProductRepository(pool)
	alertRepo := alertrepo.NewPostgresAlertRepository(pool)
	customerRepo := customerrepo.NewPostgresCustomerRepository(pool)
	staffRepo := staffrepo.NewPostgresStaffRepository(pool)
	analyticsRepo := analyticsrepo.NewPostgresAnalyticsRepository(pool)
	ledgerRepo := ledgerrepo.NewPostgresLedgerRepository(pool)
	effectRepo := effectrepo.NewPostgresEffectRepository(pool)
	feedRepo := feedrepo.NewRedisFeedRepository(redisClient)
	kitchenRepo := kitchenrepo.NewRedisKitchenRepository(redisClient)
	refundQueue := refundqueuerepo.NewRabbitMQRefundQueue(rabbitClient)

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

	scheduler := feedback.MustNewScheduler()

	dispatchSvc := dispatchsvc.MustNewDispatchService(
		dispatchsvc.WithOrderService(orderSvc),
		dispatchsvc.WithInventoryService(inventorySvc),
		dispatchsvc.WithMailer(notify.NewMailer()),
		dispatchsvc.WithPusher(notify.MustNewPusher(context.Background())),
		dispatchsvc.WithScheduler(scheduler),
		dispatchsvc.WithOrderRepository(orderRepo),
		dispatchsvc.WithTenantRepository(tenantRepo),
		dispatchsvc.WithCustomerRepository(customerRepo),
		dispatchsvc.WithStaffRepository(staffRepo),
		dispatchsvc.WithAnalyticsRepository(analyticsRepo),
		dispatchsvc.WithLedgerRepository(ledgerRepo),
		dispatchsvc.WithKitchenRepository(kitchenRepo),
		dispatchsvc.WithRefundQueue(refundQueue),
	)

	eventConsumer := consumer.MustNewConsumer(rabbitClient, dispatchSvc)

	return &App{
		consumer:       eventConsumer,
		scheduler:      scheduler,
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

	go func() {
		slog.Info("Starting order event consumer")
		if err := a.consumer.Run(ctx); err != nil {
			slog.Error("Consumer error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	if err := a.consumer.Shutdown(); err != nil {
		slog.Error("Consumer shutdown error", "error", err)
	} else {
		slog.Info("Consumer stopped gracefully")
	}

	if err := a.scheduler.Shutdown(); err != nil {
		slog.Error("Scheduler shutdown error", "error", err)
	}

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
