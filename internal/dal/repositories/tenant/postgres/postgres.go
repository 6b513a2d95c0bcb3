package postgresrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eatech/platform/internal/dal/postgres"
	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/order"
	"github.com/eatech/platform/internal/service/models/tenant"
)

// TenantDal represents the tenant data access layer model.
type TenantDal struct {
	ID                 uuid.UUID
	Slug               string
	Name               string
	Branding           []byte
	ContactEmail       string
	ContactPhone       string
	Currency           string
	TaxRateBps         int64
	ServiceFeeBps      int64
	PlatformFeeBps     int64
	PaymentMethods     []string
	AutoAcceptOrders   bool
	Active             bool
	SubscriptionPlan   string
	SubscriptionStatus string
	TrialExpiresAt     *time.Time
	MonthlyOrderLimit  int
	Hours              []byte
	Timezone           string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ToModel converts TenantDal to the service layer Tenant model.
func (d *TenantDal) ToModel() (*tenant.Tenant, error) {
	cur, err := currency.ParseCurrency(d.Currency)
	if err != nil {
		return nil, err
	}
	subStatus, err := tenant.ParseSubscriptionStatus(d.SubscriptionStatus)
	if err != nil {
		return nil, err
	}

	var branding tenant.Branding
	if len(d.Branding) > 0 {
		if err := json.Unmarshal(d.Branding, &branding); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tenant branding: %w", err)
		}
	}
	var hours tenant.Hours
	if len(d.Hours) > 0 {
		if err := json.Unmarshal(d.Hours, &hours); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tenant hours: %w", err)
		}
	}

	methods := make([]order.PaymentMethod, len(d.PaymentMethods))
	for i, m := range d.PaymentMethods {
		methods[i] = order.PaymentMethod(m)
	}

	return &tenant.Tenant{
		ID:               d.ID,
		Slug:             d.Slug,
		Name:             d.Name,
		Branding:         branding,
		ContactEmail:     d.ContactEmail,
		ContactPhone:     d.ContactPhone,
		Currency:         cur,
		TaxRateBps:       d.TaxRateBps,
		ServiceFeeBps:    d.ServiceFeeBps,
		PlatformFeeBps:   d.PlatformFeeBps,
		PaymentMethods:   methods,
		AutoAcceptOrders: d.AutoAcceptOrders,
		Active:           d.Active,
		Subscription: tenant.Subscription{
			Plan:              d.SubscriptionPlan,
			Status:            subStatus,
			TrialExpiresAt:    d.TrialExpiresAt,
			MonthlyOrderLimit: d.MonthlyOrderLimit,
		},
		Hours:     hours,
		Timezone:  d.Timezone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

// PostgresTenantRepository represents a Postgres tenant repository.
type PostgresTenantRepository struct {
	conn postgres.Querier
}

// NewPostgresTenantRepository creates a new Postgres tenant repository.
func NewPostgresTenantRepository(conn postgres.Querier) *PostgresTenantRepository {
	return &PostgresTenantRepository{
		conn: conn,
	}
}

// GetByID loads one tenant.
func (r *PostgresTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	query, args, err := sq.Select(
		"id",
		"slug",
		"name",
		"branding",
		"contact_email",
		"contact_phone",
		"currency",
		"tax_rate_bps",
		"service_fee_bps",
		"platform_fee_bps",
		"payment_methods",
		"auto_accept_orders",
		"active",
		"subscription_plan",
		"subscription_status",
		"trial_expires_at",
		"monthly_order_limit",
		"hours",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("tenants").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var d TenantDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&d.ID,
		&d.Slug,
		&d.Name,
		&d.Branding,
		&d.ContactEmail,
		&d.ContactPhone,
		&d.Currency,
		&d.TaxRateBps,
		&d.ServiceFeeBps,
		&d.PlatformFeeBps,
		&d.PaymentMethods,
		&d.AutoAcceptOrders,
		&d.Active,
		&d.SubscriptionPlan,
		&d.SubscriptionStatus,
		&d.TrialExpiresAt,
		&d.MonthlyOrderLimit,
		&d.Hours,
		&d.Timezone,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return d.ToModel()
}
