package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benx421/backoffice/internal/config"
	"github.com/benx421/backoffice/internal/middleware"
	"github.com/benx421/backoffice/internal/service/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testMocks struct {
	accounts *mocks.MockAccountManager
	teller   *mocks.MockTeller
	loans    *mocks.MockLoanOfficer
	cards    *mocks.MockCardIssuer
}

func newMockedRouter(t *testing.T) (http.Handler, *testMocks) {
	t.Helper()

	m := &testMocks{
		accounts: mocks.NewMockAccountManager(t),
		teller:   mocks.NewMockTeller(t),
		loans:    mocks.NewMockLoanOfficer(t),
		cards:    mocks.NewMockCardIssuer(t),
	}
	h := NewHandler(m.accounts, m.teller, m.loans, m.cards, nil, testLogger())
	return mustRouter(t, h, nil), m
}

func mustRouter(t *testing.T, h *Handler, repo middleware.IdempotencyRepository) http.Handler {
	t.Helper()

	router, err := NewRouter(h, repo, &config.Config{}, testLogger())
	require.NoError(t, err)
	return router
}

func do(t *testing.T, router http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// amount matches a decimal argument by value, ignoring its exponent
func amount(s string) any {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
