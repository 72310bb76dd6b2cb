package pos

import (
	"errors"
	"strings"

	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
	"github.com/shopspring/decimal"
)

// RestockSession collects items received from one supplier until Finish.
type RestockSession struct {
	svc      *Service
	supplier string
	catalog  *Catalog
	items    []models.LineItem
	done     bool
}

// BeginRestock loads the catalog and opens a restock from supplier.
func (s *Service) BeginRestock(supplier string) (*RestockSession, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return &RestockSession{svc: s, supplier: strings.TrimSpace(supplier), catalog: catalog}, nil
}

// Find returns the existing product with that name, or repo.ErrProductNotFound
// when the name is new to the catalog.
func (rs *RestockSession) Find(name string) (models.Product, error) {
	return rs.catalog.Find(name)
}

// RestockExisting adds qty units to a known product. A zero cost keeps the
// current cost price; a positive one replaces it and reprices the product.
func (rs *RestockSession) RestockExisting(name string, qty int, cost decimal.Decimal) (models.LineItem, error) {
	if rs.done {
		return models.LineItem{}, ErrSessionClosed
	}
	if qty <= 0 {
		return models.LineItem{}, ErrInvalidQuantity
	}
	if cost.IsNegative() {
		return models.LineItem{}, ErrInvalidPrice
	}

	i := rs.catalog.index(name)
	if i < 0 {
		return models.LineItem{}, repo.ErrProductNotFound
	}
	p := &rs.catalog.products[i]
	if cost.IsPositive() {
		p.CostPrice = cost
		p.Reprice(rs.catalog.markup)
	}
	p.Stock += qty

	li := models.LineItem{Name: p.Name, Brand: p.Brand, Quantity: qty, UnitPrice: p.CostPrice}
	rs.items = append(rs.items, li)
	return li, nil
}

// AddNew appends a product the catalog has not seen before.
func (rs *RestockSession) AddNew(name, brand string, qty int, cost decimal.Decimal, country string) (models.LineItem, error) {
	if rs.done {
		return models.LineItem{}, ErrSessionClosed
	}
	if qty <= 0 {
		return models.LineItem{}, ErrInvalidQuantity
	}
	if cost.IsNegative() {
		return models.LineItem{}, ErrInvalidPrice
	}

	name, brand, country = strings.TrimSpace(name), strings.TrimSpace(brand), strings.TrimSpace(country)
	if name == "" || brand == "" || country == "" {
		return models.LineItem{}, ErrInvalidProduct
	}
	if _, err := rs.catalog.Find(name); !errors.Is(err, repo.ErrProductNotFound) {
		return models.LineItem{}, ErrDuplicateProduct
	}

	rs.catalog.add(models.Product{Name: name, Brand: brand, Stock: qty, CostPrice: cost, Country: country})

	li := models.LineItem{Name: name, Brand: brand, Quantity: qty, UnitPrice: cost}
	rs.items = append(rs.items, li)
	return li, nil
}

// Items returns the line items collected so far.
func (rs *RestockSession) Items() []models.LineItem {
	return append([]models.LineItem(nil), rs.items...)
}

// Finish commits the restock. With no items nothing is written and
// ErrNothingRecorded is returned.
func (rs *RestockSession) Finish() (Receipt, error) {
	if rs.done {
		return Receipt{}, ErrSessionClosed
	}
	rs.done = true
	return rs.svc.commit(models.RestockInvoice, rs.supplier, rs.catalog, rs.items)
}
