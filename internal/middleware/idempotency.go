// Package middleware provides HTTP middleware for the back-office API.
package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benx421/backoffice/internal/models"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
	apiPrefix            = "/api/v1/"
)

// IdempotencyRepository stores the first successful response per key and path
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

type responseCapture struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default if WriteHeader not called
	}
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b)
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the cached response for a repeated Idempotency-Key on
// any POST under /api/v1/. Requests without the header run normally. Only 2xx
// responses are cached, so a rejected operation can be retried with the same
// key. Cache failures never fail the request.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requiresIdempotency(r) {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := strings.TrimSpace(r.Header.Get(idempotencyKeyHeader))
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			requestPath := normalizeRequestPath(r.URL.Path)
			ctx := r.Context()

			cached, err := repo.Get(ctx, idempotencyKey, requestPath)
			if err != nil {
				logger.Error("failed to check idempotency cache", "error", err, "path", requestPath)
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				logger.Info("replaying idempotent response",
					"key", idempotencyKey,
					"path", requestPath,
					"status", cached.ResponseStatus,
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(replayedHeader, "true")
				w.WriteHeader(cached.ResponseStatus)
				_, _ = w.Write([]byte(cached.ResponseBody)) //nolint:errcheck // best effort replay
				return
			}

			capture := newResponseCapture(w)
			next.ServeHTTP(capture, r)

			if !shouldCacheResponse(capture.statusCode) {
				return
			}

			idemKey := &models.IdempotencyKey{
				Key:            idempotencyKey,
				RequestPath:    requestPath,
				ResponseStatus: capture.statusCode,
				ResponseBody:   capture.body.String(),
				CreatedAt:      time.Now(),
			}

			// The response is already written; a cancelled request context must
			// not prevent caching it.
			if err := repo.Store(context.WithoutCancel(ctx), idemKey); err != nil {
				logger.Error("failed to store idempotency key", "error", err, "key", idempotencyKey)
			}
		})
	}
}

func requiresIdempotency(r *http.Request) bool {
	return r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, apiPrefix)
}

func normalizeRequestPath(urlPath string) string {
	return strings.TrimSuffix(urlPath, "/")
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
