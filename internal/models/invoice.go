package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceKind int

const (
	SaleInvoice InvoiceKind = iota
	RestockInvoice
)

func (k InvoiceKind) String() string {
	switch k {
	case SaleInvoice:
		return "sale"
	case RestockInvoice:
		return "restock"
	default:
		return "unknown"
	}
}

// LineItem is one row of an invoice.
type LineItem struct {
	Name      string
	Brand     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Amount returns quantity × unit price.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Invoice is the receipt of one completed sale or restock.
type Invoice struct {
	Kind          InvoiceKind
	Counterparty  string
	TransactionID uuid.UUID
	IssuedAt      time.Time
	Items         []LineItem
}

// Total sums the amounts of all line items.
func (inv Invoice) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range inv.Items {
		total = total.Add(li.Amount())
	}
	return total
}
