package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Muppalavinisree/vibecommerce/internal/api/middleware"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	service "github.com/Muppalavinisree/vibecommerce/internal/services"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"github.com/Muppalavinisree/vibecommerce/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const maxJSONBodyBytes = 1 << 20

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

// GetCart godoc
//
//	@Summary		Get the cart
//	@Description	Returns every cart line and the total, recomputed on each read.
//	@Tags			Cart
//	@Produce		json
//	@Success		200	{object}	models.CartView
//	@Failure		500	{object}	response.ErrorResponse	"Failed to fetch cart"
//	@Router			/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		cart, err := h.cartService.GetCart(r.Context())
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//
//	@Summary		Add a product to the cart
//	@Description	Adds qty (default 1) of a product. Adding a product already in the cart increases that line's quantity.
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddToCartRequest	true	"Product and quantity"
//	@Success		200		{object}	models.CartView
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

		var req models.AddToCartRequest
		if err := utils.ParseAndValidate(r, &req, h.validator); err != nil {
			logger.Warn("Invalid add to cart input", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.AddToCart(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.String("productId", req.ProductID))
		response.WriteJson(w, http.StatusOK, cart)
	}
}

// UpdateQuantity godoc
//
//	@Summary		Set a cart line's quantity
//	@Tags			Cart
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpdateQuantityRequest	true	"Product and new quantity"
//	@Success		200		{object}	models.CartView
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		404		{object}	response.ErrorResponse	"Item not in cart"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart [put]
func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

		var req models.UpdateQuantityRequest
		if err := utils.ParseAndValidate(r, &req, h.validator); err != nil {
			logger.Warn("Invalid update quantity input", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), &req)
		if err != nil {
			logger.Warn("Failed to update cart quantity", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//
//	@Summary		Remove a cart line
//	@Description	Removing a line that is already gone still succeeds.
//	@Tags			Cart
//	@Produce		json
//	@Param			id	path		string	true	"Cart line ID"
//	@Success		200	{object}	models.CartView
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/cart/{id} [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		lineID := r.PathValue("id")

		cart, err := h.cartService.RemoveLine(r.Context(), lineID)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Error("Failed to remove cart line", slog.String("lineId", lineID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.WriteJson(w, http.StatusOK, cart)
	}
}
