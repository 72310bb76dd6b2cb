// Package pos implements the sale and restock workflows on top of the catalog
// store, the invoice recorder and the movement log.
//
// Sessions consume values the caller has already validated; they never read
// from the terminal.
package pos

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
	"github.com/shopspring/decimal"
)

var (
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrNothingRecorded   = errors.New("no items recorded")
	ErrDuplicateProduct  = errors.New("product already exists")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidPrice      = errors.New("price cannot be negative")
	ErrInvalidProduct    = errors.New("product name, brand and country are required")
	ErrSessionClosed     = errors.New("session already finished")
)

// InvoiceWriter records a completed transaction and returns the file it wrote.
// RemoveInvoice takes back an invoice whose transaction could not be saved.
type InvoiceWriter interface {
	WriteInvoice(inv models.Invoice) (string, error)
	RemoveInvoice(path string) error
}

// Receipt summarises a committed transaction.
type Receipt struct {
	Kind          models.InvoiceKind
	Counterparty  string
	TransactionID uuid.UUID
	Filename      string
	Items         []models.LineItem
	Total         decimal.Decimal
}

type Service struct {
	catalogRepo  repo.CatalogRepository
	movementRepo repo.MovementRepository
	invoices     InvoiceWriter
	markup       decimal.Decimal
	logger       *log.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

func NewService(catalogRepo repo.CatalogRepository, movementRepo repo.MovementRepository, invoices InvoiceWriter, markup decimal.Decimal, logger *log.Logger) *Service {
	if movementRepo == nil {
		movementRepo = repo.NopMovementRepository{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		catalogRepo:  catalogRepo,
		movementRepo: movementRepo,
		invoices:     invoices,
		markup:       markup,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.New,
	}
}

// SetClock replaces the time source used to stamp invoices and movements.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Products loads the current catalog.
func (s *Service) Products() ([]models.Product, error) {
	products, err := s.catalogRepo.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return products, nil
}

func (s *Service) loadCatalog() (*Catalog, error) {
	products, err := s.Products()
	if err != nil {
		return nil, err
	}
	return NewCatalog(products, s.markup), nil
}

// commit writes the invoice, persists the catalog and logs one movement per
// item. Nothing is saved unless the invoice could be written.
func (s *Service) commit(kind models.InvoiceKind, counterparty string, catalog *Catalog, items []models.LineItem) (Receipt, error) {
	if len(items) == 0 {
		return Receipt{}, ErrNothingRecorded
	}

	inv := models.Invoice{
		Kind:          kind,
		Counterparty:  counterparty,
		TransactionID: s.newID(),
		IssuedAt:      s.now(),
		Items:         items,
	}
	filename, err := s.invoices.WriteInvoice(inv)
	if err != nil {
		return Receipt{}, fmt.Errorf("write invoice: %w", err)
	}

	if err := s.catalogRepo.Save(catalog.products); err != nil {
		if rerr := s.invoices.RemoveInvoice(filename); rerr != nil {
			s.logger.Warn("failed to remove invoice of unsaved transaction", "file", filename, "err", rerr)
		}
		return Receipt{}, fmt.Errorf("save catalog: %w", err)
	}

	s.logMovements(inv)
	s.logger.Info("transaction recorded", "kind", kind, "reference", inv.TransactionID, "items", len(items), "file", filename)

	return Receipt{
		Kind:          kind,
		Counterparty:  counterparty,
		TransactionID: inv.TransactionID,
		Filename:      filename,
		Items:         items,
		Total:         inv.Total(),
	}, nil
}

// logMovements never fails the transaction: stock and invoice are already written.
func (s *Service) logMovements(inv models.Invoice) {
	kind, sign := models.MovementSale, -1
	if inv.Kind == models.RestockInvoice {
		kind, sign = models.MovementRestock, 1
	}

	for _, li := range inv.Items {
		m := models.Movement{
			TransactionID: inv.TransactionID,
			ProductName:   li.Name,
			Kind:          kind,
			Delta:         sign * li.Quantity,
			UnitPrice:     li.UnitPrice,
			CreatedAt:     inv.IssuedAt,
		}
		if err := s.movementRepo.Log(m); err != nil {
			s.logger.Warn("failed to log stock movement", "product", li.Name, "reference", inv.TransactionID, "err", err)
		}
	}
}
