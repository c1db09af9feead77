package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/Muppalavinisree/vibecommerce/internal/metrics"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	repository "github.com/Muppalavinisree/vibecommerce/internal/repositories"
	"github.com/google/uuid"
)

const defaultAddQty = 1

type CartService interface {
	AddToCart(ctx context.Context, req *models.AddToCartRequest) (*models.CartView, error)
	UpdateQuantity(ctx context.Context, req *models.UpdateQuantityRequest) (*models.CartView, error)
	RemoveLine(ctx context.Context, lineID string) (*models.CartView, error)
	GetCart(ctx context.Context) (*models.CartView, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService only ever reads from the product repository.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func checkQty(qty int) error {
	if qty < 1 {
		return appErrors.FieldValidationError("qty", "must be at least 1")
	}

	if qty > models.MaxLineQty {
		return appErrors.FieldValidationError("qty", fmt.Sprintf("must be at most %d", models.MaxLineQty))
	}

	return nil
}

func (s *cartService) AddToCart(ctx context.Context, req *models.AddToCartRequest) (*models.CartView, error) {
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return nil, appErrors.FieldValidationError("productId", "is required")
	}

	qty := defaultAddQty
	if req.Qty != nil {
		qty = *req.Qty
	}

	if err := checkQty(qty); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.CartAddsTotal.WithLabelValues("unknown_product").Inc()
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	line := &models.CartLine{
		ID:              uuid.NewString(),
		ProductID:       product.ID,
		ProductSnapshot: product.Snapshot(),
		Qty:             qty,
	}

	if err := s.cartRepo.AddOrIncrement(ctx, line); err != nil {
		if errors.Is(err, repository.ErrQtyLimit) {
			metrics.CartAddsTotal.WithLabelValues("qty_limit").Inc()
			return nil, appErrors.FieldValidationError("qty", fmt.Sprintf("line quantity cannot exceed %d", models.MaxLineQty)).WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	metrics.CartAddsTotal.WithLabelValues("ok").Inc()

	return s.GetCart(ctx)
}

// UpdateQuantity replaces the quantity. Concurrent updates are last write wins.
func (s *cartService) UpdateQuantity(ctx context.Context, req *models.UpdateQuantityRequest) (*models.CartView, error) {
	productID := strings.TrimSpace(req.ProductID)
	if productID == "" {
		return nil, appErrors.FieldValidationError("productId", "is required")
	}

	if err := checkQty(req.Qty); err != nil {
		return nil, err
	}

	if _, err := s.cartRepo.SetQuantity(ctx, productID, req.Qty); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Item not in cart").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update cart item").WithError(err)
	}

	return s.GetCart(ctx)
}

// RemoveLine succeeds whether or not the line still exists.
func (s *cartService) RemoveLine(ctx context.Context, lineID string) (*models.CartView, error) {
	if lineID = strings.TrimSpace(lineID); lineID != "" {
		if err := s.cartRepo.DeleteLine(ctx, lineID); err != nil {
			return nil, appErrors.DatabaseError("Failed to remove cart item").WithError(err)
		}
	}

	return s.GetCart(ctx)
}

func (s *cartService) GetCart(ctx context.Context) (*models.CartView, error) {
	lines, err := s.cartRepo.ListLines(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	return models.NewCartView(lines), nil
}
