package pos

import (
	"strings"

	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
)

// SaleSession collects items sold to one customer until Finish.
type SaleSession struct {
	svc      *Service
	customer string
	catalog  *Catalog
	items    []models.LineItem
	done     bool
}

// BeginSale loads the catalog and opens a sale for customer.
func (s *Service) BeginSale(customer string) (*SaleSession, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return &SaleSession{svc: s, customer: strings.TrimSpace(customer), catalog: catalog}, nil
}

// Find looks a product up for sale. A product with no stock left is reported
// as ErrOutOfStock.
func (ss *SaleSession) Find(name string) (models.Product, error) {
	p, err := ss.catalog.Find(name)
	if err != nil {
		return models.Product{}, err
	}
	if p.Stock == 0 {
		return p, ErrOutOfStock
	}
	return p, nil
}

// Sell takes qty units of the named product out of stock and bills them at the
// current selling price. Nothing changes when the request cannot be met.
func (ss *SaleSession) Sell(name string, qty int) (models.LineItem, error) {
	if ss.done {
		return models.LineItem{}, ErrSessionClosed
	}
	if qty <= 0 {
		return models.LineItem{}, ErrInvalidQuantity
	}

	i := ss.catalog.index(name)
	if i < 0 {
		return models.LineItem{}, repo.ErrProductNotFound
	}
	p := &ss.catalog.products[i]
	if p.Stock == 0 {
		return models.LineItem{}, ErrOutOfStock
	}
	if qty > p.Stock {
		return models.LineItem{}, ErrInsufficientStock
	}

	li := models.LineItem{Name: p.Name, Brand: p.Brand, Quantity: qty, UnitPrice: p.SellingPrice}
	p.Stock -= qty
	ss.items = append(ss.items, li)
	return li, nil
}

// Items returns the line items collected so far.
func (ss *SaleSession) Items() []models.LineItem {
	return append([]models.LineItem(nil), ss.items...)
}

// Finish commits the sale. With no items nothing is written and
// ErrNothingRecorded is returned.
func (ss *SaleSession) Finish() (Receipt, error) {
	if ss.done {
		return Receipt{}, ErrSessionClosed
	}
	ss.done = true
	return ss.svc.commit(models.SaleInvoice, ss.customer, ss.catalog, ss.items)
}
