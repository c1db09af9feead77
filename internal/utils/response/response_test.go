package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/Muppalavinisree/vibecommerce/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	t.Run("AppError", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		response.Error(recorder, appErrors.NotFoundError("Product not found").WithDetail("p-1"))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, appErrors.ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "Product not found", resp.Error.Message)
		assert.Equal(t, []string{"p-1"}, resp.Error.Details)
	})

	t.Run("Plain error", func(t *testing.T) {
		recorder := httptest.NewRecorder()

		response.Error(recorder, errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)

		var resp response.APIResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		assert.Equal(t, appErrors.ErrCodeInternal, resp.Error.Code)
		assert.NotContains(t, recorder.Body.String(), "boom")
	})
}

func TestTooManyRequests(t *testing.T) {
	recorder := httptest.NewRecorder()

	response.TooManyRequests(recorder, 42, appErrors.TooManyRequestsError("Too many attempts"))

	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "42", recorder.Header().Get("Retry-After"))
}
