package repository

import (
	"context"
	"errors"

	"github.com/Muppalavinisree/vibecommerce/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrQtyLimit is returned when an add would push a line past models.MaxLineQty.
	ErrQtyLimit = errors.New("cart line quantity limit reached")
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// CartRepository stores the single global cart. Every mutation is one
// atomic round trip against the backing store.
type CartRepository interface {
	// AddOrIncrement inserts line when no line exists for line.ProductID,
	// otherwise adds line.Qty to the existing quantity. line is overwritten
	// with the stored row. ErrQtyLimit leaves the stored line untouched.
	AddOrIncrement(ctx context.Context, line *models.CartLine) error
	SetQuantity(ctx context.Context, productID string, qty int) (*models.CartLine, error)
	DeleteLine(ctx context.Context, id string) error
	ListLines(ctx context.Context) ([]models.CartLine, error)
	// TakeLines deletes and returns the lines with the given ids.
	// Ids that do not exist are skipped.
	TakeLines(ctx context.Context, ids []string) ([]models.CartLine, error)
}
