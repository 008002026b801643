package cart

import (
	"github.com/shopspring/decimal"
)

// Rules are the pricing rules applied on top of the item subtotal.
type Rules struct {
	// ShippingFee is charged unless the subtotal exceeds FreeShippingThreshold.
	ShippingFee decimal.Decimal
	// FreeShippingThreshold must be strictly exceeded for free shipping.
	FreeShippingThreshold decimal.Decimal
	// TaxRate is applied to the subtotal.
	TaxRate decimal.Decimal
}

// DefaultRules returns the storefront's standard pricing: 29.99 shipping,
// free above 1000, 18% tax.
func DefaultRules() Rules {
	return Rules{
		ShippingFee:           decimal.RequireFromString("29.99"),
		FreeShippingThreshold: decimal.NewFromInt(1000),
		TaxRate:               decimal.RequireFromString("0.18"),
	}
}

// Shipping returns the shipping charge for a subtotal.
func (r Rules) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(r.FreeShippingThreshold) {
		return decimal.Zero
	}
	return r.ShippingFee
}

// Tax returns the tax charged on a subtotal.
func (r Rules) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(r.TaxRate)
}

// Summary holds every derived pricing figure of a cart.
//
// @Description Cart totals
type Summary struct {
	Subtotal  decimal.Decimal `json:"subtotal" swaggertype:"number" example:"200"`
	Shipping  decimal.Decimal `json:"envio" swaggertype:"number" example:"29.99"`
	Tax       decimal.Decimal `json:"impuestos" swaggertype:"number" example:"36"`
	Total     decimal.Decimal `json:"total" swaggertype:"number" example:"265.99"`
	ItemCount int             `json:"cantidadTotal" example:"2"`
}

// Price computes the summary for a set of items.
func (r Rules) Price(items []Item) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
		count += it.Cantidad
	}

	shipping := r.Shipping(subtotal)
	tax := r.Tax(subtotal)

	return Summary{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal.Add(shipping).Add(tax),
		ItemCount: count,
	}
}

// Rounded returns the summary rounded to cents for display.
func (s Summary) Rounded() Summary {
	return Summary{
		Subtotal:  s.Subtotal.Round(2),
		Shipping:  s.Shipping.Round(2),
		Tax:       s.Tax.Round(2),
		Total:     s.Total.Round(2),
		ItemCount: s.ItemCount,
	}
}
