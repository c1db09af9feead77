package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/Muppalavinisree/vibecommerce/internal/api/middleware"
	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	service "github.com/Muppalavinisree/vibecommerce/internal/services"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"github.com/Muppalavinisree/vibecommerce/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	imageField = "image"
	// form fields and multipart headers on top of the image itself
	formOverheadBytes = 1 << 20
	formMemoryBytes   = 1 << 20
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
	maxImageBytes  int64
}

func NewProductHandler(productService service.ProductService, maxImageBytes int64) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New(), maxImageBytes: maxImageBytes}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))

	return err == nil && mediaType == "multipart/form-data"
}

// productForm is a parsed multipart product request. Close must be called
// once the upload has been consumed.
type productForm struct {
	values map[string][]string
	upload *models.ImageUpload
	file   multipart.File
}

func (f *productForm) has(key string) bool {
	_, ok := f.values[key]
	return ok
}

func (f *productForm) get(key string) string {
	if v := f.values[key]; len(v) > 0 {
		return v[0]
	}

	return ""
}

func (f *productForm) price() (*int64, error) {
	if !f.has("price") {
		return nil, nil
	}

	price, err := strconv.ParseInt(strings.TrimSpace(f.get("price")), 10, 64)
	if err != nil {
		return nil, appErrors.FieldValidationError("price", "must be a whole number").WithError(err)
	}

	return &price, nil
}

func (f *productForm) Close() {
	if f.file != nil {
		f.file.Close()
	}
}

func (h *ProductHandler) parseForm(w http.ResponseWriter, r *http.Request) (*productForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxImageBytes+formOverheadBytes)

	if err := r.ParseMultipartForm(formMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, appErrors.PayloadTooLargeError("Image exceeds the upload limit").WithError(err)
		}

		return nil, appErrors.BadRequestError("Invalid multipart form").WithError(err)
	}

	form := &productForm{values: r.MultipartForm.Value}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return form, nil
		}

		return nil, appErrors.BadRequestError("Invalid image upload").WithError(err)
	}

	if header.Size > h.maxImageBytes {
		file.Close()
		return nil, appErrors.PayloadTooLargeError("Image exceeds the upload limit")
	}

	form.file = file
	form.upload = &models.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}

	return form, nil
}

// CreateProduct godoc
//
//	@Summary		Create a product
//	@Description	Adds a product to the catalog. Accepts JSON or multipart/form-data with an optional image file. Requires the admin secret.
//	@Tags			Products
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			product		body		models.CreateProductRequest	false	"Product details (JSON)"
//	@Param			image		formData	file						false	"Product image"
//	@Param			X-Admin-Pass	header		string						true	"Admin secret"
//	@Success		201			{object}	models.Product
//	@Failure		400			{object}	response.ErrorResponse	"Validation error or malformed body"
//	@Failure		401			{object}	response.ErrorResponse	"Admin secret missing or wrong"
//	@Failure		413			{object}	response.ErrorResponse	"Image too large"
//	@Failure		429			{object}	response.ErrorResponse	"Too many failed admin attempts"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products [post]
func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var (
			req    models.CreateProductRequest
			upload *models.ImageUpload
		)

		if isMultipart(r) {
			form, err := h.parseForm(w, r)
			if err != nil {
				logger.Warn("Invalid product form", slog.Any("error", err))
				response.Error(w, err)
				return
			}
			defer form.Close()

			price, err := form.price()
			if err != nil {
				response.Error(w, err)
				return
			}

			req = models.CreateProductRequest{
				Name:        form.get("name"),
				Description: form.get("description"),
				Image:       form.get(imageField),
				Category:    form.get("category"),
			}
			if price != nil {
				req.Price = *price
			}

			upload = form.upload
		} else {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

			if err := utils.DecodeJSONBody(r, &req); err != nil {
				logger.Warn("Invalid create product input", slog.Any("error", err))
				response.Error(w, utils.DecodeError(err))
				return
			}
		}

		product, err := h.productService.CreateProduct(r.Context(), &req, upload)
		if err != nil {
			logger.Error("Failed to create product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product created successfully", slog.String("productId", product.ID))
		response.WriteJson(w, http.StatusCreated, product)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product by ID
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	models.Product
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Failure	500	{object}	response.ErrorResponse	"Internal server error"
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		product, err := h.productService.GetProductByID(r.Context(), id)
		if err != nil {
			logger.Warn("Failed to get product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, product)
	}
}

// UpdateProduct godoc
//
//	@Summary		Update a product
//	@Description	Partially updates a product. Fields left out are unchanged. A new image file replaces the stored one. Requires the admin secret.
//	@Tags			Products
//	@Accept			json,mpfd
//	@Produce		json
//	@Param			id				path		string						true	"Product ID"
//	@Param			product			body		models.UpdateProductRequest	false	"Fields to change (JSON)"
//	@Param			image			formData	file						false	"Replacement image"
//	@Param			X-Admin-Pass	header		string						true	"Admin secret"
//	@Success		200				{object}	models.Product
//	@Failure		400				{object}	response.ErrorResponse	"Validation error or malformed body"
//	@Failure		401				{object}	response.ErrorResponse	"Admin secret missing or wrong"
//	@Failure		404				{object}	response.ErrorResponse	"Product not found"
//	@Failure		413				{object}	response.ErrorResponse	"Image too large"
//	@Failure		429				{object}	response.ErrorResponse	"Too many failed admin attempts"
//	@Router			/products/{id} [put]
func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")
		logger = logger.With(slog.String("productId", id))

		var (
			req    models.UpdateProductRequest
			upload *models.ImageUpload
		)

		if isMultipart(r) {
			form, err := h.parseForm(w, r)
			if err != nil {
				logger.Warn("Invalid product form", slog.Any("error", err))
				response.Error(w, err)
				return
			}
			defer form.Close()

			if req.Price, err = form.price(); err != nil {
				response.Error(w, err)
				return
			}

			for field, dest := range map[string]**string{
				"name":        &req.Name,
				"description": &req.Description,
				"category":    &req.Category,
				imageField:    &req.Image,
			} {
				if form.has(field) {
					value := form.get(field)
					*dest = &value
				}
			}

			upload = form.upload
		} else {
			r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

			if err := utils.DecodeJSONBody(r, &req); err != nil {
				logger.Warn("Invalid update product input", slog.Any("error", err))
				response.Error(w, utils.DecodeError(err))
				return
			}
		}

		product, err := h.productService.UpdateProduct(r.Context(), id, &req, upload)
		if err != nil {
			logger.Error("Failed to update product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product updated successfully")
		response.WriteJson(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Produce	json
//	@Param		id				path		string	true	"Product ID"
//	@Param		X-Admin-Pass	header		string	true	"Admin secret"
//	@Success	200				{object}	models.MessageResponse
//	@Failure	401				{object}	response.ErrorResponse	"Admin secret missing or wrong"
//	@Failure	404				{object}	response.ErrorResponse	"Product not found"
//	@Failure	429				{object}	response.ErrorResponse	"Too many failed admin attempts"
//	@Router		/products/{id} [delete]
func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		id := r.PathValue("id")

		if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("Failed to delete product", slog.String("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Product deleted successfully", slog.String("productId", id))
		response.WriteJson(w, http.StatusOK, models.MessageResponse{Message: "Product deleted successfully"})
	}
}

// ListProducts godoc
//
//	@Summary	List the catalog
//	@Tags		Products
//	@Produce	json
//	@Success	200	{array}		models.Product
//	@Failure	500	{object}	response.ErrorResponse	"Failed to fetch products"
//	@Router		/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		products, err := h.productService.ListProducts(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to fetch products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if products == nil {
			products = []*models.Product{}
		}

		response.WriteJson(w, http.StatusOK, products)
	}
}
