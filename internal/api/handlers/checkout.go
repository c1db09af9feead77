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

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// Checkout godoc
//
//	@Summary		Check out selected cart lines
//	@Description	Removes the selected lines from the cart and returns a receipt for them. Ids no longer in the cart are ignored. No payment is taken and the receipt is not stored.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Param			checkout	body		models.CheckoutRequest	true	"Customer details and selected line ids"
//	@Success		200			{object}	models.CheckoutResponse
//	@Failure		400			{object}	response.ErrorResponse	"No items selected"
//	@Failure		404			{object}	response.ErrorResponse	"Selected items not found"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/checkout [post]
func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

		var req models.CheckoutRequest
		if err := utils.ParseAndValidate(r, &req, h.validator); err != nil {
			logger.Warn("Invalid checkout input", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		receipt, err := h.checkoutService.Checkout(r.Context(), &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.Int("selected", len(req.SelectedIDs)), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout succeeded", slog.String("receiptId", receipt.ID))
		response.WriteJson(w, http.StatusOK, models.CheckoutResponse{Receipt: receipt})
	}
}
