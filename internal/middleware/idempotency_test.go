package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benx421/backoffice/internal/models"
	"github.com/benx421/backoffice/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body)) //nolint:errcheck // test helper
	})
}

func postWithKey(path, key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotency_Bypassed(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		key    string
	}{
		{"GET request", http.MethodGet, "/api/v1/accounts", "k"},
		{"PUT request", http.MethodPut, "/api/v1/cards/7000/status", "k"},
		{"path outside the API", http.MethodPost, "/health", "k"},
		{"missing key", http.MethodPost, "/api/v1/deposits", ""},
		{"blank key", http.MethodPost, "/api/v1/deposits", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockIdempotencyRepository(t)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(idempotencyKeyHeader, tt.key)
			}

			called := false
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			Idempotency(repo, testLogger())(handler).ServeHTTP(httptest.NewRecorder(), req)

			assert.True(t, called)
			repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
			repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
		})
	}
}

func TestIdempotency_FirstResponseStored(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "key-1", "/api/v1/transfers").Return(nil, nil)
	repo.On("Store", mock.Anything, mock.MatchedBy(func(k *models.IdempotencyKey) bool {
		return k.Key == "key-1" &&
			k.RequestPath == "/api/v1/transfers" &&
			k.ResponseStatus == http.StatusCreated &&
			k.ResponseBody == `{"debit":{"id":2}}` &&
			!k.CreatedAt.IsZero()
	})).Return(nil)

	rec := httptest.NewRecorder()
	Idempotency(repo, testLogger())(testHandler(http.StatusCreated, `{"debit":{"id":2}}`)).
		ServeHTTP(rec, postWithKey("/api/v1/transfers/", "key-1"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"debit":{"id":2}}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get(replayedHeader))
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "key-2", "/api/v1/loans/5000/payments").Return(&models.IdempotencyKey{
		Key:            "key-2",
		RequestPath:    "/api/v1/loans/5000/payments",
		ResponseStatus: http.StatusOK,
		ResponseBody:   `{"remaining_balance":"7000.00"}`,
	}, nil)

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	Idempotency(repo, testLogger())(handler).ServeHTTP(rec, postWithKey("/api/v1/loans/5000/payments", "key-2"))

	assert.False(t, called, "a replay must not apply the payment again")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get(replayedHeader))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"remaining_balance":"7000.00"}`, rec.Body.String())
}

func TestIdempotency_FailuresNotCached(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusPaymentRequired, http.StatusConflict, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			repo := mocks.NewMockIdempotencyRepository(t)
			repo.On("Get", mock.Anything, "key-3", "/api/v1/withdrawals").Return(nil, nil)

			rec := httptest.NewRecorder()
			Idempotency(repo, testLogger())(testHandler(status, `{"error":"x"}`)).
				ServeHTTP(rec, postWithKey("/api/v1/withdrawals", "key-3"))

			assert.Equal(t, status, rec.Code)
			repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
		})
	}
}

func TestIdempotency_CacheErrorsFailOpen(t *testing.T) {
	t.Run("get error runs the handler", func(t *testing.T) {
		repo := mocks.NewMockIdempotencyRepository(t)
		repo.On("Get", mock.Anything, "key-4", "/api/v1/deposits").Return(nil, errors.New("redis unavailable"))

		rec := httptest.NewRecorder()
		Idempotency(repo, testLogger())(testHandler(http.StatusCreated, `{}`)).
			ServeHTTP(rec, postWithKey("/api/v1/deposits", "key-4"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("store error keeps the response", func(t *testing.T) {
		repo := mocks.NewMockIdempotencyRepository(t)
		repo.On("Get", mock.Anything, "key-5", "/api/v1/deposits").Return(nil, nil)
		repo.On("Store", mock.Anything, mock.Anything).Return(errors.New("redis unavailable"))

		rec := httptest.NewRecorder()
		Idempotency(repo, testLogger())(testHandler(http.StatusCreated, `{"id":9}`)).
			ServeHTTP(rec, postWithKey("/api/v1/deposits", "key-5"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, `{"id":9}`, rec.Body.String())
	})
}

func TestIdempotency_KeysScopedByPath(t *testing.T) {
	repo := mocks.NewMockIdempotencyRepository(t)
	repo.On("Get", mock.Anything, "shared", mock.Anything).Return(nil, nil)
	repo.On("Store", mock.Anything, mock.Anything).Return(nil)

	mw := Idempotency(repo, testLogger())
	for _, path := range []string{"/api/v1/cards/7000/purchases", "/api/v1/cards/7000/payments"} {
		mw(testHandler(http.StatusOK, `{}`)).ServeHTTP(httptest.NewRecorder(), postWithKey(path, "shared"))
	}

	repo.AssertCalled(t, "Get", mock.Anything, "shared", "/api/v1/cards/7000/purchases")
	repo.AssertCalled(t, "Get", mock.Anything, "shared", "/api/v1/cards/7000/payments")
}
