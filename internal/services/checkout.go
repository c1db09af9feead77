package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/Muppalavinisree/vibecommerce/internal/logging"
	"github.com/Muppalavinisree/vibecommerce/internal/metrics"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	repository "github.com/Muppalavinisree/vibecommerce/internal/repositories"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ReceiptNotifier delivers a receipt to the customer after checkout.
type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, receipt *models.Receipt) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.Receipt, error)
}

type checkoutService struct {
	cartRepo  repository.CartRepository
	notifier  ReceiptNotifier
	validator *validator.Validate
	now       func() time.Time
}

// NewCheckoutService accepts a nil notifier, receipts are then only returned.
func NewCheckoutService(cartRepo repository.CartRepository, notifier ReceiptNotifier) CheckoutService {
	return &checkoutService{
		cartRepo:  cartRepo,
		notifier:  notifier,
		validator: validator.New(),
		now:       time.Now,
	}
}

func newReceiptID(now time.Time) string {
	return fmt.Sprintf("RCPT-%d-%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *checkoutService) Checkout(ctx context.Context, req *models.CheckoutRequest) (*models.Receipt, error) {
	logger := logging.FromContext(ctx)

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if err := utils.Validate(req, s.validator); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(req.SelectedIDs))
	for _, id := range req.SelectedIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, appErrors.ValidationError("No items selected")
	}

	// Lines taken here are gone for every other request.
	lines, err := s.cartRepo.TakeLines(ctx, ids)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to checkout").WithError(err)
	}

	if len(lines) == 0 {
		return nil, appErrors.NotFoundError("Selected items not found")
	}

	name := req.Name
	if name == "" {
		name = models.DefaultCustomerName
	}

	now := s.now().UTC()
	receipt := &models.Receipt{
		ID:        newReceiptID(now),
		Name:      name,
		Email:     req.Email,
		Total:     models.SumLines(lines),
		Items:     lines,
		Timestamp: now,
	}

	units := 0
	for _, line := range lines {
		units += line.Qty
	}

	metrics.RecordCheckout(units, receipt.Total)

	logger.Info("Checkout completed",
		slog.String("receiptId", receipt.ID),
		slog.Int("lines", len(lines)),
		slog.Int64("total", receipt.Total),
	)

	if s.notifier != nil && receipt.Email != "" {
		if err := s.notifier.SendReceipt(ctx, receipt); err != nil {
			logger.Warn("Failed to send receipt email", slog.String("receiptId", receipt.ID), slog.Any("error", err))
		}
	}

	return receipt, nil
}
