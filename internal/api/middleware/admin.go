package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"

	appErrors "github.com/Muppalavinisree/vibecommerce/internal/errors"
	"github.com/Muppalavinisree/vibecommerce/internal/metrics"
	"github.com/Muppalavinisree/vibecommerce/internal/utils/response"
	"golang.org/x/crypto/bcrypt"
)

const AdminHeader = "X-Admin-Pass"

type Authorizer interface {
	Authorize(ctx context.Context, secret string) bool
}

// SharedSecretAuthorizer compares against a plain shared secret. An empty
// configured secret rejects every request.
type SharedSecretAuthorizer struct {
	secret []byte
}

func NewSharedSecretAuthorizer(secret string) *SharedSecretAuthorizer {
	return &SharedSecretAuthorizer{secret: []byte(secret)}
}

func (a *SharedSecretAuthorizer) Authorize(_ context.Context, secret string) bool {
	if len(a.secret) == 0 {
		return false
	}

	return subtle.ConstantTimeCompare(a.secret, []byte(secret)) == 1
}

// BcryptAuthorizer checks the secret against a bcrypt hash.
type BcryptAuthorizer struct {
	hash []byte
}

func NewBcryptAuthorizer(hash string) *BcryptAuthorizer {
	return &BcryptAuthorizer{hash: []byte(hash)}
}

func (a *BcryptAuthorizer) Authorize(_ context.Context, secret string) bool {
	if len(a.hash) == 0 || secret == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword(a.hash, []byte(secret)) == nil
}

// FailureLimiter counts failed admin attempts per client.
type FailureLimiter interface {
	Blocked(ctx context.Context, client string) (bool, int, error)
	RecordFailure(ctx context.Context, client string) (bool, int, error)
}

type AdminMiddleware struct {
	authorizer Authorizer
	limiter    FailureLimiter
}

// NewAdminMiddleware accepts a nil limiter, failed attempts are then not
// counted.
func NewAdminMiddleware(authorizer Authorizer, limiter FailureLimiter) *AdminMiddleware {
	return &AdminMiddleware{authorizer: authorizer, limiter: limiter}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

func (m *AdminMiddleware) AdminOnly(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := LoggerFromContext(ctx)
		client := clientIP(r)

		if m.limiter != nil {
			blocked, retryAfter, err := m.limiter.Blocked(ctx, client)
			if err != nil {
				// fail open while the limiter is unavailable
				logger.Error("Admin rate limit check failed", slog.String("client", client), slog.Any("error", err))
			} else if blocked {
				metrics.AdminAuthFailures.WithLabelValues("rate_limited").Inc()
				logger.Warn("Admin request rejected by rate limiter", slog.String("client", client), slog.Int("retryAfter", retryAfter))
				response.TooManyRequests(w, retryAfter, appErrors.TooManyRequestsError("Too many failed admin attempts"))
				return
			}
		}

		secret := r.Header.Get(AdminHeader)

		if m.authorizer != nil && secret != "" && m.authorizer.Authorize(ctx, secret) {
			next.ServeHTTP(w, r)
			return
		}

		reason := "invalid"
		if secret == "" {
			reason = "missing"
		}

		metrics.AdminAuthFailures.WithLabelValues(reason).Inc()
		logger.Warn("Admin authorization failed", slog.String("client", client), slog.String("reason", reason))

		if m.limiter != nil {
			allowed, retryAfter, err := m.limiter.RecordFailure(ctx, client)
			if err != nil {
				logger.Error("Failed to record admin failure", slog.String("client", client), slog.Any("error", err))
			} else if !allowed {
				response.TooManyRequests(w, retryAfter, appErrors.TooManyRequestsError("Too many failed admin attempts"))
				return
			}
		}

		response.Error(w, appErrors.UnauthorizedError("Unauthorized (admin pass required)"))
	}
}
