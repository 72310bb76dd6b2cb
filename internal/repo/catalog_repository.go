package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/shopspring/decimal"
)

// CatalogRepository persists the whole product catalog as one unit.
//
// Save always replaces everything previously stored, so callers must Load,
// mutate the returned slice, then Save the complete list.
type CatalogRepository interface {
	Load() ([]models.Product, error)
	Save(products []models.Product) error
}

var (
	// ErrProductNotFound is returned when no product matches a name.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidRecord marks a stored product that breaks the catalog invariants.
	ErrInvalidRecord = errors.New("invalid product record")
)

// checkProduct enforces the invariants every stored product must satisfy.
// An empty name is tolerated so hand-edited records survive a rewrite;
// unnamed new products are refused before they reach the catalog.
func checkProduct(p models.Product) error {
	for _, field := range []string{p.Name, p.Brand, p.Country} {
		if strings.ContainsAny(field, "\r\n") {
			return fmt.Errorf("%w: line break in %q", ErrInvalidRecord, field)
		}
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: negative stock %d", ErrInvalidRecord, p.Stock)
	}
	if p.CostPrice.IsNegative() {
		return fmt.Errorf("%w: negative cost price %s", ErrInvalidRecord, p.CostPrice)
	}
	return nil
}

func cloneProducts(products []models.Product, markup decimal.Decimal) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	for i := range out {
		out[i].Reprice(markup)
	}
	return out
}
