package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/eatech/platform/internal/dal/redis"
	feedrepo "github.com/eatech/platform/internal/dal/repositories/feed/redis"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/store/apiclient"
	"github.com/eatech/platform/internal/store/orderstore"
)

// feedAdapter exposes the redis feed repository through the store's Feed
// interface.
type feedAdapter struct {
	feed *feedrepo.RedisFeedRepository
}

func (a *feedAdapter) Subscribe(ctx context.Context, tenantID uuid.UUID) (orderstore.Subscription, error) {
	return a.feed.Subscribe(ctx, tenantID)
}

// App represents a staff terminal application. It mirrors the tenant's
// orders for the current day and rings on every new unseen order.
type App struct {
	store       *orderstore.Store
	redisClient *redis.Client
}

// MustNewApp creates a new terminal application.
func MustNewApp() *App {
	tenantID, err := uuid.Parse(viper.GetString("terminal.tenant_id"))
	if err != nil {
		panic(fmt.Sprintf("Failed to parse terminal tenant id: %v", err))
	}

	client := apiclient.NewClient(viper.GetString("terminal.api_base_url"))

	redisClient := redis.MustNewClient()
	feedRepo := feedrepo.NewRedisFeedRepository(redisClient)

	store := orderstore.MustNewStore(
		orderstore.WithLoader(client),
		orderstore.WithMutator(client),
		orderstore.WithFeed(&feedAdapter{feed: feedRepo}),
		orderstore.WithTenantID(tenantID),
		orderstore.WithNotifier(announceOrder),
	)

	return &App{
		store:       store,
		redisClient: redisClient,
	}
}

// announceOrder rings the terminal bell for a new pending order.
func announceOrder(o order.Order) {
	fmt.Printf("\a[%s] new order %s from %s\n", o.CreatedAt.Format("15:04"), o.Number, o.Contact.Name)
}

// Run loads today's orders, follows the live feed and blocks until an
// interrupt signal arrives.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := a.store.Load(ctx, &order.QueryOrdersModel{From: &from}); err != nil {
		slog.Error("Failed to load orders", "error", err)
	}

	if err := a.store.Subscribe(ctx); err != nil {
		slog.Error("Failed to subscribe to order feed", "error", err)
	} else {
		slog.Info("Following live order feed")
	}

	stats := a.store.Stats()
	slog.Info("Terminal ready", "today_orders", stats.TodayCount, "today_revenue_cents", stats.TodayRevenueCents)

	<-stop
	slog.Info("Shutdown signal received")

	a.store.Unsubscribe()

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	}

	slog.Info("Terminal shutdown complete")
}
