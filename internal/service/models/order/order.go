package order

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eatech/platform/internal/service/models/currency"
	"github.com/eatech/platform/internal/service/models/orderitem"
)

// Type distinguishes how the order is fulfilled.
type Type string

const (
	TypeDineIn   Type = "dine_in"
	TypeTakeaway Type = "takeaway"
	TypeDelivery Type = "delivery"
)

// PaymentMethod is the tender the customer chose.
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentTwint   PaymentMethod = "twint"
	PaymentInvoice PaymentMethod = "invoice"
)

// PaymentStatus tracks the money side independently of fulfillment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Contact identifies the customer on an order. Orders reference customers,
// they do not own them.
type Contact struct {
	CustomerID string `json:"customerId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	PushToken  string `json:"pushToken,omitempty"`
}

// Note is a free-text annotation appended to an order.
type Note struct {
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Order represents a customer order inside one tenant.
type Order struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenantId"`
	Number   string    `json:"number"`

	Items []orderitem.OrderItem `json:"items"`

	SubtotalCents   int64             `json:"subtotalCents"`
	TaxCents        int64             `json:"taxCents"`
	ServiceFeeCents int64             `json:"serviceFeeCents"`
	DiscountCents   int64             `json:"discountCents"`
	TotalCents      int64             `json:"totalCents"`
	Currency        currency.Currency `json:"currency"`

	Type            Type   `json:"type"`
	TableNumber     string `json:"tableNumber,omitempty"`
	DeliveryAddress string `json:"deliveryAddress,omitempty"`

	Status        Status        `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`

	Contact Contact    `json:"contact"`
	StaffID *uuid.UUID `json:"staffId,omitempty"`
	Notes   []Note     `json:"notes,omitempty"`

	SpecialInstructions string `json:"specialInstructions,omitempty"`

	RequiresReview bool   `json:"requiresReview,omitempty"`
	ReviewReason   string `json:"reviewReason,omitempty"`

	EstimatedReadyAt *time.Time `json:"estimatedReadyAt,omitempty"`
	PrepTimeMinutes  int        `json:"prepTimeMinutes,omitempty"`

	CancelReason string `json:"cancelReason,omitempty"`
	RefundReason string `json:"refundReason,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	PreparingAt *time.Time `json:"preparingAt,omitempty"`
	ReadyAt     *time.Time `json:"readyAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeDineIn, TypeTakeaway, TypeDelivery:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentTwint, PaymentInvoice:
		return PaymentMethod(s), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// ItemUnits is the sum of item quantities across the order.
func (o *Order) ItemUnits() int {
	units := 0
	for _, item := range o.Items {
		units += item.Units()
	}

	return units
}

// ComputeTotals recalculates the money fields from the items and the
// tenant's tax and service-fee rates (basis points). The total is
// subtotal + tax + service fee - discount, clamped at zero.
func (o *Order) ComputeTotals(taxRateBps, serviceFeeBps int64) {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.LineTotalCents()
	}

	o.SubtotalCents = subtotal
	o.TaxCents = roundBps(subtotal, taxRateBps)
	o.ServiceFeeCents = roundBps(subtotal, serviceFeeBps)

	total := o.SubtotalCents + o.TaxCents + o.ServiceFeeCents - o.DiscountCents
	if total < 0 {
		total = 0
	}
	o.TotalCents = total
}

// roundBps applies a basis-point rate with half-up rounding to the cent.
func roundBps(amountCents, rateBps int64) int64 {
	if rateBps <= 0 || amountCents <= 0 {
		return 0
	}

	return (amountCents*rateBps + 5000) / 10000
}

// EstimatePrepMinutes implements the kitchen heuristic: 15 minutes base,
// 2 per item unit, 5 extra when special instructions are present, capped
// at 60.
func EstimatePrepMinutes(itemUnits int, hasInstructions bool) int {
	minutes := 15 + 2*itemUnits
	if hasInstructions {
		minutes += 5
	}
	if minutes > 60 {
		minutes = 60
	}

	return minutes
}

// MatchesSearch reports whether the term matches the order number or the
// customer name, email or phone, case-insensitively. An empty term
// matches everything.
func (o *Order) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{o.Number, o.Contact.Name, o.Contact.Email, o.Contact.Phone} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}
