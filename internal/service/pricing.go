package service

import (
	"github.com/shopspring/decimal"

	"github.com/fjod/go_storefront/internal/domain"
)

// PricingPolicy holds the checkout pricing constants. They are fixed business
// rules, configurable only so tests and future localization can swap them.
type PricingPolicy struct {
	FreeShippingThreshold float64
	FlatShippingRate      float64
	TaxRate               float64
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		FreeShippingThreshold: 100,
		FlatShippingRate:      12,
		TaxRate:               0.08,
	}
}

type Calculator struct {
	policy PricingPolicy
}

func NewCalculator(policy PricingPolicy) *Calculator {
	return &Calculator{policy: policy}
}

// Calculate prices a set of cart lines. Intermediate sums are kept exact,
// nothing is rounded; display formatting is the client's concern. The free
// shipping threshold compares against the raw subtotal.
func (c *Calculator) Calculate(lines []domain.CartItem) domain.OrderTotals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(lineTotal(line.Quantity, line.UnitPrice))
	}

	shipping := decimal.NewFromFloat(c.policy.FlatShippingRate)
	if subtotal.GreaterThanOrEqual(decimal.NewFromFloat(c.policy.FreeShippingThreshold)) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(decimal.NewFromFloat(c.policy.TaxRate))
	total := subtotal.Add(shipping).Add(tax)

	return domain.OrderTotals{
		Subtotal:     subtotal.InexactFloat64(),
		ShippingCost: shipping.InexactFloat64(),
		TaxAmount:    tax.InexactFloat64(),
		TotalAmount:  total.InexactFloat64(),
	}
}

// Subtotal prices the cart lines without shipping or tax, used for the cart
// summary shown before checkout.
func (c *Calculator) Subtotal(lines []domain.CartItem) float64 {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(lineTotal(line.Quantity, line.UnitPrice))
	}
	return subtotal.InexactFloat64()
}

// LineTotal is the snapshot price of one order item: quantity times the unit
// price captured when the line was added to the cart.
func LineTotal(quantity int, unitPrice float64) float64 {
	return lineTotal(quantity, unitPrice).InexactFloat64()
}

func lineTotal(quantity int, unitPrice float64) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
}
