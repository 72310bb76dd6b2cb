package repo

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/shopspring/decimal"
)

// SQLiteCatalogRepository keeps the catalog in the products table of a SQLite
// database. Row order is preserved through the position column.
type SQLiteCatalogRepository struct {
	db     *sqlx.DB
	markup decimal.Decimal
	logger *log.Logger
}

func NewSQLiteCatalogRepository(db *sqlx.DB, markup decimal.Decimal, logger *log.Logger) *SQLiteCatalogRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &SQLiteCatalogRepository{db: db, markup: markup, logger: logger}
}

func (r *SQLiteCatalogRepository) Load() ([]models.Product, error) {
	var rows []models.Product
	err := r.db.Select(&rows, `SELECT name, brand, stock, cost_price, country FROM products ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	products := make([]models.Product, 0, len(rows))
	for i, p := range rows {
		if err := checkProduct(p); err != nil {
			r.logger.Warn("skipping invalid catalog row", "position", i, "name", p.Name, "err", err)
			continue
		}
		p.Reprice(r.markup)
		products = append(products, p)
	}
	return products, nil
}

// Save replaces every row inside one transaction.
func (r *SQLiteCatalogRepository) Save(products []models.Product) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	const q = `INSERT INTO products (position, name, brand, stock, cost_price, country) VALUES (?, ?, ?, ?, ?, ?)`
	for i, p := range products {
		if err := checkProduct(p); err != nil {
			return fmt.Errorf("refusing to save %q: %w", p.Name, err)
		}
		if _, err := tx.Exec(q, i, p.Name, p.Brand, p.Stock, p.CostPrice.String(), p.Country); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}
