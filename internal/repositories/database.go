package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Muppalavinisree/vibecommerce/internal/config"
	"github.com/XSAM/otelsql"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	price BIGINT NOT NULL CHECK (price >= 1),
	image TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT 'general',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cart_items (
	id TEXT PRIMARY KEY,
	product_id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	price BIGINT NOT NULL,
	image TEXT NOT NULL,
	qty INTEGER NOT NULL CHECK (qty >= 1),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

type Repository struct {
	DB *sql.DB
}

// NewPostgres opens an instrumented connection pool and verifies it is reachable.
func NewPostgres(ctx context.Context, cfg *config.Database) (*Repository, error) {
	db, err := otelsql.Open("postgres", cfg.GetDSN(), otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("✅ Successfully connected to PostgreSQL", slog.String("host", cfg.Host), slog.String("database", cfg.Name))

	return &Repository{DB: db}, nil
}

// EnsureSchema creates the tables if they are missing.
func (p *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
