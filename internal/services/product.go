package service

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/Muppalavinisree/vibecommerce/internal/cache"
	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/Muppalavinisree/vibecommerce/internal/logging"
	"github.com/Muppalavinisree/vibecommerce/internal/metrics"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	repository "github.com/Muppalavinisree/vibecommerce/internal/repositories"
	"github.com/Muppalavinisree/vibecommerce/internal/storage"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest, upload *models.ImageUpload) (*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest, upload *models.ImageUpload) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]*models.Product, error)
}

type productService struct {
	repo      repository.ProductRepository
	images    storage.ImageStore
	cache     cache.Cache
	cacheTTL  time.Duration
	validator *validator.Validate
	policy    *bluemonday.Policy
	now       func() time.Time
}

func NewProductService(repo repository.ProductRepository, images storage.ImageStore, productCache cache.Cache, cacheTTL time.Duration) ProductService {
	if productCache == nil {
		productCache = cache.NewNoopCache()
	}

	return &productService{
		repo:      repo,
		images:    images,
		cache:     productCache,
		cacheTTL:  cacheTTL,
		validator: validator.New(),
		policy:    bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

const maxCleanPasses = 8

// clean strips markup and surrounding whitespace from free text. Entities are
// decoded and the result sanitized again until nothing changes, so encoded
// markup cannot come back to life after decoding.
func (s *productService) clean(value string) string {
	for range maxCleanPasses {
		next := html.UnescapeString(s.policy.Sanitize(value))
		if next == value {
			return strings.TrimSpace(value)
		}

		value = next
	}

	// Still changing: keep the escaped form.
	return strings.TrimSpace(s.policy.Sanitize(value))
}

func normalizeCategory(category string) string {
	category = strings.ToLower(category)
	if category == "" {
		return models.DefaultProductCategory
	}

	return category
}

func (s *productService) saveImage(ctx context.Context, upload *models.ImageUpload) (string, error) {
	if s.images == nil {
		return "", appErrors.BadRequestError("Image uploads are not enabled")
	}

	ref, err := s.images.Save(ctx, upload)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			return "", appErrors.FieldValidationError("image", "uploaded file must be an image").WithError(err)
		}

		return "", appErrors.StorageError("Failed to store image").WithError(err)
	}

	return ref, nil
}

// releaseImage drops an image this service stored earlier. Failures are
// only logged, the product change has already been committed.
func (s *productService) releaseImage(ctx context.Context, ref string) {
	if s.images == nil || ref == "" {
		return
	}

	if err := s.images.Delete(ctx, ref); err != nil {
		logging.FromContext(ctx).Warn("Failed to release product image", slog.String("image", ref), slog.Any("error", err))
	}
}

func (s *productService) invalidate(ctx context.Context, id string) {
	keys := []string{cache.ProductListKey}
	if id != "" {
		keys = cache.ProductKeys(id)
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		logging.FromContext(ctx).Warn("Failed to invalidate product cache", slog.String("productId", id), slog.Any("error", err))
	}
}

func (s *productService) CreateProduct(ctx context.Context, req *models.CreateProductRequest, upload *models.ImageUpload) (*models.Product, error) {
	req.Name = s.clean(req.Name)
	req.Description = s.clean(req.Description)
	req.Category = s.clean(req.Category)
	req.Image = strings.TrimSpace(req.Image)

	if err := utils.Validate(req, s.validator); err != nil {
		return nil, err
	}

	image := req.Image

	if upload != nil {
		ref, err := s.saveImage(ctx, upload)
		if err != nil {
			return nil, err
		}

		image = ref
	}

	if image == "" {
		image = models.DefaultProductImage
	}

	now := s.now().UTC()
	product := &models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       image,
		Category:    normalizeCategory(req.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if upload != nil {
			s.releaseImage(ctx, image)
		}

		return nil, appErrors.DatabaseError("Failed to create product").WithError(err)
	}

	s.invalidate(ctx, "")

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	logger := logging.FromContext(ctx)
	key := cache.Key(cache.ProductKeyPrefix, id)

	var cached models.Product

	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache lookup failed", slog.String("productId", id), slog.Any("error", err))
	}

	if found {
		metrics.ProductCacheLookups.WithLabelValues("hit").Inc()
		return &cached, nil
	}

	metrics.ProductCacheLookups.WithLabelValues("miss").Inc()

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.cache.Set(ctx, key, product, s.cacheTTL); err != nil {
		logger.Warn("Failed to cache product", slog.String("productId", id), slog.Any("error", err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest, upload *models.ImageUpload) (*models.Product, error) {
	for _, field := range []*string{req.Name, req.Description, req.Category} {
		if field != nil {
			*field = s.clean(*field)
		}
	}

	if req.Image != nil {
		*req.Image = strings.TrimSpace(*req.Image)
	}

	if err := utils.Validate(req, s.validator); err != nil {
		return nil, err
	}

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	oldImage := product.Image

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = normalizeCategory(*req.Category)
	}
	if req.Image != nil {
		product.Image = *req.Image
		if product.Image == "" {
			product.Image = models.DefaultProductImage
		}
	}

	if upload != nil {
		ref, err := s.saveImage(ctx, upload)
		if err != nil {
			return nil, err
		}

		product.Image = ref
	}

	product.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if upload != nil {
			s.releaseImage(ctx, product.Image)
		}

		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update product").WithError(err)
	}

	if product.Image != oldImage {
		s.releaseImage(ctx, oldImage)
	}

	s.invalidate(ctx, id)

	return product, nil
}

// DeleteProduct leaves cart lines alone, they keep their snapshot.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return appErrors.NotFoundError("Product not found").WithError(err)
		}

		return appErrors.DatabaseError("Failed to delete product").WithError(err)
	}

	s.releaseImage(ctx, product.Image)
	s.invalidate(ctx, id)

	return nil
}

func (s *productService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	var cached []*models.Product

	found, err := s.cache.Get(ctx, cache.ProductListKey, &cached)
	if err != nil {
		logging.FromContext(ctx).Warn("Catalog cache lookup failed", slog.Any("error", err))
	}

	if found && cached != nil {
		return cached, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, appErrors.DatabaseError("Failed to fetch products").WithError(err)
	}

	if err := s.cache.Set(ctx, cache.ProductListKey, products, s.cacheTTL); err != nil {
		logging.FromContext(ctx).Warn("Failed to cache catalog", slog.Any("error", err))
	}

	return products, nil
}
