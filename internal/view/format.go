package view

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dshills/storefront/internal/shop"
)

// PricelessLabel is shown for products that cannot be bought.
const PricelessLabel = "Priceless"

// Formatter renders amounts with locale digit grouping and a currency word.
type Formatter struct {
	printer  *message.Printer
	currency string
}

// NewFormatter creates a formatter for a BCP 47 locale such as "en-US".
func NewFormatter(locale, currency string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}, nil
}

// DefaultFormatter returns an en-US formatter counting in synapses.
func DefaultFormatter() *Formatter {
	f, err := NewFormatter("en-US", "synapses")
	if err != nil {
		panic(err)
	}
	return f
}

// Amount formats d, e.g. "12,500 synapses". Fractions keep two places.
func (f *Formatter) Amount(d decimal.Decimal) string {
	var num string
	if d.IsInteger() {
		num = f.printer.Sprintf("%d", d.IntPart())
	} else {
		num = f.printer.Sprintf("%.2f", d.InexactFloat64())
	}
	if f.currency == "" {
		return num
	}
	return num + " " + f.currency
}

// Price formats a product price.
func (f *Formatter) Price(p shop.Price) string {
	if !p.Valid() {
		return PricelessLabel
	}
	return f.Amount(p.Amount())
}

// Count formats a plain number with digit grouping.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}
