package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementSale    MovementKind = "sale"
	MovementRestock MovementKind = "restock"
)

// Movement is one stock delta applied to a product by a sale or restock.
// Movements of the same transaction share a TransactionID.
type Movement struct {
	ID            int             `json:"id" db:"id"`
	TransactionID uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	Kind          MovementKind    `json:"kind" db:"kind"`
	Delta         int             `json:"delta" db:"delta"`
	UnitPrice     decimal.Decimal `json:"unit_price" db:"unit_price"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
