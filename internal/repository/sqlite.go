package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pratham-associates/listings/internal/config"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL,
		price_type TEXT NOT NULL,
		property_type TEXT NOT NULL,
		bedrooms INTEGER,
		bathrooms INTEGER,
		area INTEGER NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		sector TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT 'Faridabad',
		amenities TEXT NOT NULL DEFAULT '[]',
		images TEXT NOT NULL DEFAULT '[]',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		contact_person TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_available ON properties (available, price_type, property_type)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		property_type TEXT,
		message TEXT NOT NULL,
		property_id INTEGER,
		status TEXT NOT NULL DEFAULT 'new'
	)`,
	`CREATE TABLE IF NOT EXISTS ai_recommendations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		preferences TEXT NOT NULL,
		recommended_properties TEXT NOT NULL DEFAULT '[]',
		confidence TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ai_recommendations_user ON ai_recommendations (user_id)`,
}

// sqlDBExecutor adapts database/sql to sqlExecutor.
type sqlDBExecutor struct {
	db *sql.DB
}

type sqlRows struct {
	rows *sql.Rows
}

func (r sqlRows) Next() bool                     { return r.rows.Next() }
func (r sqlRows) Scan(dest ...interface{}) error { return r.rows.Scan(dest...) }
func (r sqlRows) Err() error                     { return r.rows.Err() }
func (r sqlRows) Close()                         { _ = r.rows.Close() }

func (e sqlDBExecutor) QueryRow(ctx context.Context, query string, args ...interface{}) rowScanner {
	return e.db.QueryRowContext(ctx, query, args...)
}

func (e sqlDBExecutor) Query(ctx context.Context, query string, args ...interface{}) (rowIterator, error) {
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows: rows}, nil
}

func (e sqlDBExecutor) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := e.db.ExecContext(ctx, query, args...)
	return err
}

func (e sqlDBExecutor) IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// NewSQLiteStore returns a Store backed by an open SQLite handle, as returned
// by database.OpenSQLite. The store owns the handle and closes it on Close.
func NewSQLiteStore(db *sql.DB) *Store {
	s := newSQLStore(sqlDBExecutor{db: db}, dialect{
		name:        config.DriverSQLite,
		placeholder: questionPlaceholder,
		schema:      sqliteSchema,
	})
	s.ping = db.PingContext
	s.close = db.Close
	return s
}
