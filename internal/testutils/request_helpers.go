package testutils

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/Muppalavinisree/vibecommerce/internal/api/middleware"
	"github.com/Muppalavinisree/vibecommerce/internal/logging"
)

// NewRequest builds a request carrying path values and a discarding
// request-scoped logger.
func NewRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return req.WithContext(logging.WithLogger(req.Context(), logger))
}

// NewAdminRequest is NewRequest with the admin header set.
func NewAdminRequest(method, target string, body io.Reader, secret string, pathParams map[string]string) *http.Request {
	req := NewRequest(method, target, body, pathParams)
	req.Header.Set(middleware.AdminHeader, secret)

	return req
}
