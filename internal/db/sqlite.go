package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	position   INTEGER NOT NULL,
	name       TEXT    NOT NULL,
	brand      TEXT    NOT NULL,
	stock      INTEGER NOT NULL CHECK (stock >= 0),
	cost_price TEXT    NOT NULL,
	country    TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS movements (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	transaction_id TEXT      NOT NULL,
	product_name   TEXT      NOT NULL,
	product_key    TEXT      NOT NULL,
	kind           TEXT      NOT NULL,
	delta          INTEGER   NOT NULL,
	unit_price     TEXT      NOT NULL,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS movements_product_key_idx ON movements (product_key, created_at);
`

// OpenSQLite opens (creating if needed) the SQLite file at path and applies the schema.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
	}
	return db, nil
}
