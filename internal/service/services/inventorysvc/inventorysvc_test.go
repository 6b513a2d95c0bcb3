package inventorysvc

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/alert"
	"github.com/eatech/platform/internal/service/models/product"
)

type fakeProductRepo struct {
	p *product.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, _, _ uuid.UUID) (*product.Product, error) {
	cp := *f.p

	return &cp, nil
}

func (f *fakeProductRepo) List(_ context.Context, _ uuid.UUID, _ bool) ([]product.Product, error) {
	return []product.Product{*f.p}, nil
}

func (f *fakeProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (f *fakeProductRepo) Update(_ context.Context, _ *product.Product) error {
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, _, _ uuid.UUID, delta int) (*product.Product, error) {
	if f.p.TrackInventory {
		f.p.Stock += delta
		if f.p.Stock < 0 {
			f.p.Stock = 0
		}
	}
	cp := *f.p

	return &cp, nil
}

type fakeAlertRepo struct {
	alerts []alert.LowStockAlert
}

func (f *fakeAlertRepo) Insert(_ context.Context, a alert.LowStockAlert) error {
	f.alerts = append(f.alerts, a)

	return nil
}

func (f *fakeAlertRepo) HasUnresolved(_ context.Context, _, _ uuid.UUID) (bool, error) {
	for _, a := range f.alerts {
		if !a.Resolved {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeAlertRepo) ResolveForProduct(_ context.Context, _, _ uuid.UUID, now time.Time) error {
	for i := range f.alerts {
		if !f.alerts[i].Resolved {
			f.alerts[i].Resolved = true
			f.alerts[i].ResolvedAt = &now
		}
	}

	return nil
}

func (f *fakeAlertRepo) ListUnresolved(_ context.Context, _ uuid.UUID) ([]alert.LowStockAlert, error) {
	var open []alert.LowStockAlert
	for _, a := range f.alerts {
		if !a.Resolved {
			open = append(open, a)
		}
	}

	return open, nil
}

func (f *fakeAlertRepo) openCount() int {
	n := 0
	for _, a := range f.alerts {
		if !a.Resolved {
			n++
		}
	}

	return n
}

func newTestService(p *product.Product) (*InventoryService, *fakeAlertRepo) {
	alerts := &fakeAlertRepo{}
	svc := MustNewInventoryService(
		WithProductRepository(&fakeProductRepo{p: p}),
		WithAlertRepository(alerts),
	)

	return svc, alerts
}

func TestDecrementClampsAtZero(t *testing.T) {
	p := &product.Product{
		ID:             uuid.New(),
		TenantID:       uuid.New(),
		Name:           "Espresso",
		TrackInventory: true,
		Stock:          3,
	}
	svc, _ := newTestService(p)

	got, err := svc.Decrement(context.Background(), p.TenantID, p.ID, 5)
	if err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if got.Stock != 0 {
		t.Errorf("stock = %d, want 0", got.Stock)
	}
}

func TestDecrementAlertsOncePerEpisode(t *testing.T) {
	ctx := context.Background()
	p := &product.Product{
		ID:                uuid.New(),
		TenantID:          uuid.New(),
		Name:              "Burger Buns",
		TrackInventory:    true,
		Stock:             7,
		LowStockThreshold: 5,
	}
	svc, alerts := newTestService(p)

	// 7 -> 6: above threshold, no alert.
	if _, err := svc.Decrement(ctx, p.TenantID, p.ID, 1); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if len(alerts.alerts) != 0 {
		t.Fatalf("alerts after first decrement = %d, want 0", len(alerts.alerts))
	}

	// 6 -> 5: crossing, one alert.
	if _, err := svc.Decrement(ctx, p.TenantID, p.ID, 1); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if len(alerts.alerts) != 1 {
		t.Fatalf("alerts after crossing = %d, want 1", len(alerts.alerts))
	}
	if alerts.alerts[0].StockLevel != 5 || alerts.alerts[0].Threshold != 5 {
		t.Errorf("alert recorded stock %d threshold %d, want 5 and 5",
			alerts.alerts[0].StockLevel, alerts.alerts[0].Threshold)
	}

	// 5 -> 4: still low, but the open alert dedupes.
	if _, err := svc.Decrement(ctx, p.TenantID, p.ID, 1); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if len(alerts.alerts) != 1 {
		t.Fatalf("alerts while episode open = %d, want 1", len(alerts.alerts))
	}

	// 4 -> 5: restock not above threshold, alert stays open.
	if _, err := svc.Restock(ctx, p.TenantID, p.ID, 1); err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if alerts.openCount() != 1 {
		t.Fatalf("open alerts after partial restock = %d, want 1", alerts.openCount())
	}

	// 5 -> 8: restock above threshold resolves the episode.
	if _, err := svc.Restock(ctx, p.TenantID, p.ID, 3); err != nil {
		t.Fatalf("Restock: %v", err)
	}
	if alerts.openCount() != 0 {
		t.Fatalf("open alerts after full restock = %d, want 0", alerts.openCount())
	}

	// 8 -> 4: next crossing starts a new episode.
	if _, err := svc.Decrement(ctx, p.TenantID, p.ID, 4); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if len(alerts.alerts) != 2 {
		t.Errorf("total alerts after re-crossing = %d, want 2", len(alerts.alerts))
	}
	if alerts.openCount() != 1 {
		t.Errorf("open alerts after re-crossing = %d, want 1", alerts.openCount())
	}
}

func TestDecrementUntrackedProductNeverAlerts(t *testing.T) {
	p := &product.Product{
		ID:                uuid.New(),
		TenantID:          uuid.New(),
		Name:              "Tap Water",
		TrackInventory:    false,
		Stock:             0,
		LowStockThreshold: 5,
	}
	svc, alerts := newTestService(p)

	got, err := svc.Decrement(context.Background(), p.TenantID, p.ID, 3)
	if err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	if got.Stock != 0 {
		t.Errorf("stock = %d, want 0 (untracked stock never moves)", got.Stock)
	}
	if len(alerts.alerts) != 0 {
		t.Errorf("alerts = %d, want 0", len(alerts.alerts))
	}
}
