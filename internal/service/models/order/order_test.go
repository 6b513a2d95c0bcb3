package order

import (
	"testing"

	"github.com/eatech/platform/internal/service/models/orderitem"
)

func TestEstimatePrepMinutes(t *testing.T) {
	tests := []struct {
		name         string
		units        int
		instructions bool
		want         int
	}{
		{name: "three items", units: 3, want: 21},
		{name: "thirty items capped", units: 30, want: 60},
		{name: "instructions only", units: 0, instructions: true, want: 20},
		{name: "empty order", units: 0, want: 15},
		{name: "exactly at cap", units: 20, instructions: true, want: 60},
		{name: "one over cap", units: 23, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimatePrepMinutes(tt.units, tt.instructions); got != tt.want {
				t.Errorf("EstimatePrepMinutes(%d, %v) = %d, want %d", tt.units, tt.instructions, got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	o := Order{
		Items: []orderitem.OrderItem{
			{Name: "Burger", Quantity: 2, PriceCents: 950, Modifiers: []orderitem.Modifier{{Name: "Extra cheese", PriceCents: 150}}},
			{Name: "Fries", Quantity: 1, PriceCents: 1200},
		},
	}

	o.ComputeTotals(770, 0)

	if o.SubtotalCents != 3400 {
		t.Errorf("SubtotalCents = %d, want 3400", o.SubtotalCents)
	}
	// 3400 * 7.70% = 261.8 cents, rounded half-up to 262.
	if o.TaxCents != 262 {
		t.Errorf("TaxCents = %d, want 262", o.TaxCents)
	}
	if o.ServiceFeeCents != 0 {
		t.Errorf("ServiceFeeCents = %d, want 0", o.ServiceFeeCents)
	}
	if o.TotalCents != 3662 {
		t.Errorf("TotalCents = %d, want 3662", o.TotalCents)
	}
}

func TestComputeTotalsRoundsHalfUp(t *testing.T) {
	o := Order{Items: []orderitem.OrderItem{{Quantity: 1, PriceCents: 200}}}

	// 200 cents at 25 bps is exactly half a cent.
	o.ComputeTotals(25, 0)

	if o.TaxCents != 1 {
		t.Errorf("TaxCents = %d, want 1", o.TaxCents)
	}
}

func TestComputeTotalsClampsAtZero(t *testing.T) {
	o := Order{
		Items:         []orderitem.OrderItem{{Quantity: 1, PriceCents: 500}},
		DiscountCents: 10_000,
	}

	o.ComputeTotals(0, 0)

	if o.TotalCents != 0 {
		t.Errorf("TotalCents = %d, want 0", o.TotalCents)
	}
}

func TestItemUnits(t *testing.T) {
	o := Order{
		Items: []orderitem.OrderItem{
			{Quantity: 2},
			{Quantity: 3},
			{Quantity: -1},
		},
	}

	if got := o.ItemUnits(); got != 5 {
		t.Errorf("ItemUnits() = %d, want 5", got)
	}
}

func TestMatchesSearch(t *testing.T) {
	o := Order{
		Number:  "E-250602-0042",
		Contact: Contact{Name: "Anna Keller", Email: "anna@example.ch", Phone: "+41791234567"},
	}

	tests := []struct {
		term string
		want bool
	}{
		{term: "", want: true},
		{term: "0042", want: true},
		{term: "anna", want: true},
		{term: "KELLER", want: true},
		{term: "example.ch", want: true},
		{term: "79123", want: true},
		{term: "bruno", want: false},
	}

	for _, tt := range tests {
		if got := o.MatchesSearch(tt.term); got != tt.want {
			t.Errorf("MatchesSearch(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}
