package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/Muppalavinisree/vibecommerce/internal/models"
	"github.com/Muppalavinisree/vibecommerce/internal/utils"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndValidate(t *testing.T) {
	validate := validator.New()

	t.Run("Success - Valid body", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"Desk Lamp","price":1299}`))
		var dest models.CreateProductRequest

		// Act
		err := utils.ParseAndValidate(req, &dest, validate)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Desk Lamp", dest.Name)
		assert.Equal(t, int64(1299), dest.Price)
	})

	t.Run("Failure - Empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/products", strings.NewReader("  "))
		var dest models.CreateProductRequest

		err := utils.ParseAndValidate(req, &dest, validate)

		require.Error(t, err)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
		assert.ErrorIs(t, err, utils.ErrEmptyBody)
	})

	t.Run("Failure - Malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":`))
		var dest models.CreateProductRequest

		err := utils.ParseAndValidate(req, &dest, validate)

		require.Error(t, err)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodeBadRequest))
	})

	t.Run("Failure - Body too large", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/cart", strings.NewReader(`{"productId":"p-1","qty":2}`))
		req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, 8)
		var dest models.AddToCartRequest

		err := utils.ParseAndValidate(req, &dest, validate)

		require.Error(t, err)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrCodePayloadTooLarge))
	})

	t.Run("Failure - Validation", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/products", strings.NewReader(`{"name":"A","price":0}`))
		var dest models.CreateProductRequest

		err := utils.ParseAndValidate(req, &dest, validate)

		require.Error(t, err)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeValidation, appErr.Code)
		assert.Contains(t, appErr.Detail, "Field Name must be at least 2 characters")
		assert.Contains(t, appErr.Detail, "Field Price is required")
	})
}
