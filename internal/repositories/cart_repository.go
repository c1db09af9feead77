package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"github.com/lib/pq"
)

const cartLineColumns = `id, product_id, name, price, image, qty, created_at, updated_at`

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCartLine(row rowScanner, line *models.CartLine) error {
	return row.Scan(&line.ID, &line.ProductID, &line.Name, &line.Price, &line.Image, &line.Qty, &line.CreatedAt, &line.UpdatedAt)
}

// AddOrIncrement relies on the unique product_id constraint so concurrent
// adds of the same product always land on one row.
func (r *cartRepository) AddOrIncrement(ctx context.Context, line *models.CartLine) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `INSERT INTO cart_items (id, product_id, name, price, image, qty)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (product_id) DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty, updated_at = NOW()
			  WHERE cart_items.qty + EXCLUDED.qty <= $7
			  RETURNING ` + cartLineColumns

	row := r.DB.QueryRowContext(dbCtx, query, line.ID, line.ProductID, line.Name, line.Price, line.Image, line.Qty, models.MaxLineQty)

	if err := scanCartLine(row, line); err != nil {
		// the conflict update was skipped by the limit guard
		if errors.Is(err, sql.ErrNoRows) {
			return ErrQtyLimit
		}

		return fmt.Errorf("upserting cart line: %w", err)
	}

	return nil
}

func (r *cartRepository) SetQuantity(ctx context.Context, productID string, qty int) (*models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE cart_items SET qty = $1, updated_at = NOW()
			  WHERE product_id = $2
			  RETURNING ` + cartLineColumns

	line := &models.CartLine{}

	if err := scanCartLine(r.DB.QueryRowContext(dbCtx, query, qty, productID), line); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("updating cart line: %w", err)
	}

	return line, nil
}

func (r *cartRepository) DeleteLine(ctx context.Context, id string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := r.DB.ExecContext(dbCtx, `DELETE FROM cart_items WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting cart line: %w", err)
	}

	return nil
}

func (r *cartRepository) ListLines(ctx context.Context) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `SELECT `+cartLineColumns+` FROM cart_items ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying cart: %w", err)
	}

	defer rows.Close()

	return collectCartLines(rows)
}

// TakeLines is a single DELETE ... RETURNING, so a line removed concurrently
// is simply absent from the result.
func (r *cartRepository) TakeLines(ctx context.Context, ids []string) ([]models.CartLine, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(dbCtx, `DELETE FROM cart_items WHERE id = ANY($1) RETURNING `+cartLineColumns, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("taking cart lines: %w", err)
	}

	defer rows.Close()

	lines, err := collectCartLines(rows)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(lines, func(a, b models.CartLine) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return lines, nil
}

func collectCartLines(rows *sql.Rows) ([]models.CartLine, error) {
	lines := []models.CartLine{}

	for rows.Next() {
		var line models.CartLine

		if err := scanCartLine(rows, &line); err != nil {
			return nil, fmt.Errorf("scanning cart line: %w", err)
		}

		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cart lines: %w", err)
	}

	return lines, nil
}
