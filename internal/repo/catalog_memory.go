package repo

import (
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/shopspring/decimal"
)

// InMemoryCatalogRepository is an in-memory implementation of CatalogRepository.
type InMemoryCatalogRepository struct {
	products []models.Product
	markup   decimal.Decimal
	saves    int
}

// NewInMemoryCatalogRepository creates a repository seeded with products.
func NewInMemoryCatalogRepository(markup decimal.Decimal, products ...models.Product) *InMemoryCatalogRepository {
	return &InMemoryCatalogRepository{
		products: cloneProducts(products, markup),
		markup:   markup,
	}
}

// Load returns a copy of the stored catalog with selling prices recomputed.
func (r *InMemoryCatalogRepository) Load() ([]models.Product, error) {
	return cloneProducts(r.products, r.markup), nil
}

// Save replaces the stored catalog.
func (r *InMemoryCatalogRepository) Save(products []models.Product) error {
	for _, p := range products {
		if err := checkProduct(p); err != nil {
			return err
		}
	}
	r.products = cloneProducts(products, r.markup)
	r.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (r *InMemoryCatalogRepository) Saves() int {
	return r.saves
}
