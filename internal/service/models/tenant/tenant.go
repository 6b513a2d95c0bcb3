package tenant

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/order"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

var (
	ErrNotFound                  = errors.New("tenant not found")
	ErrInvalidSubscriptionStatus = errors.New("invalid subscription status")
)

func ParseSubscriptionStatus(s string) (SubscriptionStatus, error) {
	switch SubscriptionStatus(s) {
	case SubscriptionActive, SubscriptionTrial, SubscriptionExpired, SubscriptionSuspended:
		return SubscriptionStatus(s), nil
	default:
		return "", ErrInvalidSubscriptionStatus
	}
}

// Subscription is the tenant's plan state. MonthlyOrderLimit of zero means
// unlimited.
type Subscription struct {
	Plan              string             `json:"plan"`
	Status            SubscriptionStatus `json:"status"`
	TrialExpiresAt    *time.Time         `json:"trialExpiresAt,omitempty"`
	MonthlyOrderLimit int                `json:"monthlyOrderLimit"`
}

// Valid reports whether the subscription still entitles the tenant to take
// orders: active always does, a trial does until its expiry passes.
func (s Subscription) Valid(now time.Time) bool {
	switch s.Status {
	case SubscriptionActive:
		return true
	case SubscriptionTrial:
		return s.TrialExpiresAt == nil || now.Before(*s.TrialExpiresAt)
	default:
		return false
	}
}

type Branding struct {
	DisplayName string `json:"displayName"`
	LogoURL     string `json:"logoUrl,omitempty"`
	AccentColor string `json:"accentColor,omitempty"`
}

type Tenant struct {
	ID           uuid.UUID `json:"id"`
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	Branding     Branding  `json:"branding"`
	ContactEmail string    `json:"contactEmail"`
	ContactPhone string    `json:"contactPhone,omitempty"`

	Currency       currency.Currency     `json:"currency"`
	TaxRateBps     int64                 `json:"taxRateBps"`
	ServiceFeeBps  int64                 `json:"serviceFeeBps"`
	PlatformFeeBps int64                 `json:"platformFeeBps"`
	PaymentMethods []order.PaymentMethod `json:"paymentMethods"`

	AutoAcceptOrders bool         `json:"autoAcceptOrders"`
	Active           bool         `json:"active"`
	Subscription     Subscription `json:"subscription"`
	Hours            Hours        `json:"hours"`
	Timezone         string       `json:"timezone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Location resolves the tenant's timezone, falling back to UTC when the
// name is empty or unknown.
func (t *Tenant) Location() *time.Location {
	if t.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// IsOpen reports whether the business is open at now, evaluated on the
// tenant's local clock.
func (t *Tenant) IsOpen(now time.Time) bool {
	return t.Hours.IsOpen(now.In(t.Location()))
}

// NextOpenTime returns the next opening instant within the coming week on
// the tenant's local clock, or nil when every day is closed.
func (t *Tenant) NextOpenTime(now time.Time) *time.Time {
	return t.Hours.NextOpenTime(now.In(t.Location()))
}

// CanAcceptOrders decides whether a new order may be placed right now.
// The tenant must be active with a valid subscription and under its monthly
// order limit; unless auto-accept is enabled the business must also be open.
// The check is evaluated fresh on every call.
func (t *Tenant) CanAcceptOrders(now time.Time, monthlyOrders int) bool {
	if !t.Active || !t.Subscription.Valid(now) {
		return false
	}
	if limit := t.Subscription.MonthlyOrderLimit; limit > 0 && monthlyOrders >= limit {
		return false
	}
	if t.AutoAcceptOrders {
		return true
	}

	return t.IsOpen(now)
}

// AcceptsPaymentMethod reports whether the tenant has the method configured.
func (t *Tenant) AcceptsPaymentMethod(m order.PaymentMethod) bool {
	for _, pm := range t.PaymentMethods {
		if pm == m {
			return true
		}
	}

	return false
}
