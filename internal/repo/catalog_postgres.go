package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/shopspring/decimal"
)

type PostgresCatalogRepository struct {
	db     *sql.DB
	markup decimal.Decimal
	logger *log.Logger
}

func NewPostgresCatalogRepository(db *sql.DB, markup decimal.Decimal, logger *log.Logger) *PostgresCatalogRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &PostgresCatalogRepository{db: db, markup: markup, logger: logger}
}

func (r *PostgresCatalogRepository) Load() ([]models.Product, error) {
	query := `SELECT name, brand, stock, cost_price, country FROM products ORDER BY position`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	position := 0
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Name, &p.Brand, &p.Stock, &p.CostPrice, &p.Country); err != nil {
			return nil, err
		}
		if err := checkProduct(p); err != nil {
			r.logger.Warn("skipping invalid catalog row", "position", position, "name", p.Name, "err", err)
		} else {
			p.Reprice(r.markup)
			products = append(products, p)
		}
		position++
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PostgresCatalogRepository) Save(products []models.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("clear products: %w", err)
	}

	query := `INSERT INTO products (position, name, brand, stock, cost_price, country) VALUES ($1, $2, $3, $4, $5, $6)`
	for i, p := range products {
		if err := checkProduct(p); err != nil {
			return fmt.Errorf("refusing to save %q: %w", p.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, i, p.Name, p.Brand, p.Stock, p.CostPrice, p.Country); err != nil {
			return fmt.Errorf("insert %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}
