package repo

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/shop-pos/internal/models"
)

type SQLiteMovementRepository struct {
	db *sqlx.DB
}

func NewSQLiteMovementRepository(db *sqlx.DB) *SQLiteMovementRepository {
	return &SQLiteMovementRepository{db: db}
}

func (r *SQLiteMovementRepository) Log(m models.Movement) error {
	const q = `
		INSERT INTO movements (transaction_id, product_name, product_key, kind, delta, unit_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(q, m.TransactionID.String(), m.ProductName, models.NameKey(m.ProductName),
		string(m.Kind), m.Delta, m.UnitPrice.String(), m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

func (r *SQLiteMovementRepository) GetByProduct(name string, mf MovementFilter) ([]models.Movement, int, error) {
	where := "WHERE product_key = ?"
	args := []any{models.NameKey(name)}
	if mf.Since != nil {
		where += " AND created_at >= ?"
		args = append(args, mf.Since.UTC())
	}
	if mf.Until != nil {
		where += " AND created_at <= ?"
		args = append(args, mf.Until.UTC())
	}

	var total int
	if err := r.db.Get(&total, "SELECT COUNT(*) FROM movements "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count movements: %w", err)
	}

	start, end := mf.page(total)
	if start == end {
		return []models.Movement{}, total, nil
	}

	query := `SELECT id, transaction_id, product_name, kind, delta, unit_price, created_at
		FROM movements ` + where + ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, end-start, start)

	movements := []models.Movement{}
	if err := r.db.Select(&movements, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query movements: %w", err)
	}
	return movements, total, nil
}

func (r *SQLiteMovementRepository) Count() (int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM movements`); err != nil {
		return 0, fmt.Errorf("failed to count movements: %w", err)
	}
	return total, nil
}
