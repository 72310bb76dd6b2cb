package pos

import (
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
	"github.com/shopspring/decimal"
)

// Catalog is the in-memory handle a session mutates between loading the
// catalog and saving it back.
type Catalog struct {
	products []models.Product
	markup   decimal.Decimal
}

func NewCatalog(products []models.Product, markup decimal.Decimal) *Catalog {
	return &Catalog{products: products, markup: markup}
}

// Products returns a copy of the catalog in its stored order.
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find returns the first product whose name matches ignoring case.
func (c *Catalog) Find(name string) (models.Product, error) {
	i := c.index(name)
	if i < 0 {
		return models.Product{}, repo.ErrProductNotFound
	}
	return c.products[i], nil
}

func (c *Catalog) index(name string) int {
	key := models.NameKey(name)
	for i, p := range c.products {
		if p.Key() == key {
			return i
		}
	}
	return -1
}

func (c *Catalog) add(p models.Product) {
	p.Reprice(c.markup)
	c.products = append(c.products, p)
}
