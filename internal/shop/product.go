package shop

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Products are immutable once loaded.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       Price  `json:"price"`
}

// Purchasable reports whether the product can be added to the basket.
func (p Product) Purchasable() bool {
	return p.Price.Valid()
}

// Price is a product price. A price without a value marks a product that
// cannot be bought; it encodes as JSON null.
type Price struct {
	value decimal.NullDecimal
}

// Priceless is the price of a product that cannot be bought.
var Priceless = Price{}

// NewPrice returns a price with the given amount.
func NewPrice(d decimal.Decimal) Price {
	return Price{value: decimal.NewNullDecimal(d)}
}

// PriceFromInt returns a price of a whole amount.
func PriceFromInt(n int64) Price {
	return NewPrice(decimal.NewFromInt(n))
}

// Valid reports whether the price has a value.
func (p Price) Valid() bool {
	return p.value.Valid
}

// Amount returns the price amount, or zero for a priceless product.
func (p Price) Amount() decimal.Decimal {
	if !p.value.Valid {
		return decimal.Zero
	}
	return p.value.Decimal
}

// Equal reports whether two prices are both priceless or have equal amounts.
func (p Price) Equal(other Price) bool {
	if p.value.Valid != other.value.Valid {
		return false
	}
	return !p.value.Valid || p.value.Decimal.Equal(other.value.Decimal)
}

// String returns the amount, or "null" for a priceless product.
func (p Price) String() string {
	if !p.value.Valid {
		return "null"
	}
	return p.value.Decimal.String()
}

// MarshalJSON encodes the price as a JSON number or null.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.value.Valid {
		return []byte("null"), nil
	}
	return []byte(p.value.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string or null.
func (p *Price) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		p.value = decimal.NullDecimal{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	p.value = decimal.NewNullDecimal(d)
	return nil
}

// Total returns the sum of the products' prices. Priceless products count
// as zero.
func Total(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price.Amount())
	}
	return total
}
