package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products (
	position   INTEGER NOT NULL,
	name       TEXT    NOT NULL,
	brand      TEXT    NOT NULL,
	stock      INTEGER NOT NULL CHECK (stock >= 0),
	cost_price NUMERIC NOT NULL CHECK (cost_price >= 0),
	country    TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS movements (
	id             SERIAL PRIMARY KEY,
	transaction_id UUID        NOT NULL,
	product_name   TEXT        NOT NULL,
	product_key    TEXT        NOT NULL,
	kind           TEXT        NOT NULL,
	delta          INTEGER     NOT NULL,
	unit_price     NUMERIC     NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS movements_product_key_idx ON movements (product_key, created_at);
`

// Connect opens a pgx-backed *sql.DB, checks connectivity and applies the schema.
func Connect(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, errors.New("postgres DSN is empty")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
