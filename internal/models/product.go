package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// DefaultMarkup is the factor applied to the cost price to obtain the selling price.
var DefaultMarkup = decimal.NewFromInt(2)

// Product represents a product entity in the shop catalog.
//
// SellingPrice is derived from CostPrice and is never persisted.
type Product struct {
	Name         string          `json:"name" db:"name"`
	Brand        string          `json:"brand" db:"brand"`
	Stock        int             `json:"stock" db:"stock"`
	CostPrice    decimal.Decimal `json:"cost_price" db:"cost_price"`
	Country      string          `json:"country" db:"country"`
	SellingPrice decimal.Decimal `json:"selling_price" db:"-"`
}

// Reprice recomputes the selling price from the current cost price.
func (p *Product) Reprice(markup decimal.Decimal) {
	p.SellingPrice = p.CostPrice.Mul(markup)
}

// Key returns the case-folded name used to match products.
func (p Product) Key() string {
	return NameKey(p.Name)
}

// NameKey folds a product name so that lookups ignore case.
func NameKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
