package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/pratham-associates/listings/internal/config"
	"github.com/pratham-associates/listings/internal/database"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS properties (
		id SERIAL PRIMARY KEY,
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
		amenities JSONB NOT NULL DEFAULT '[]',
		images JSONB NOT NULL DEFAULT '[]',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		contact_person TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_available ON properties (available, price_type, property_type)`,
	`CREATE TABLE IF NOT EXISTS inquiries (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		property_type TEXT,
		message TEXT NOT NULL,
		property_id INTEGER,
		status TEXT NOT NULL DEFAULT 'new'
	)`,
	`CREATE TABLE IF NOT EXISTS ai_recommendations (
		id SERIAL PRIMARY KEY,
		user_id TEXT NOT NULL,
		preferences TEXT NOT NULL,
		recommended_properties JSONB NOT NULL DEFAULT '[]',
		confidence TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ai_recommendations_user ON ai_recommendations (user_id)`,
}

// pgxExecutor adapts a pgx pool to sqlExecutor.
type pgxExecutor struct {
	db *database.Database
}

func (e pgxExecutor) QueryRow(ctx context.Context, query string, args ...interface{}) rowScanner {
	return e.db.Pool.QueryRow(ctx, query, args...)
}

func (e pgxExecutor) Query(ctx context.Context, query string, args ...interface{}) (rowIterator, error) {
	rows, err := e.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (e pgxExecutor) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := e.db.Pool.Exec(ctx, query, args...)
	return err
}

func (e pgxExecutor) IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// NewPostgresStore returns a Store backed by the given pool. The store owns
// the pool and closes it on Close.
func NewPostgresStore(db *database.Database) *Store {
	s := newSQLStore(pgxExecutor{db: db}, dialect{
		name:        config.DriverPostgres,
		placeholder: dollarPlaceholder,
		schema:      postgresSchema,
	})
	s.ping = db.Ping
	s.close = func() error {
		db.Close()
		return nil
	}
	return s
}
