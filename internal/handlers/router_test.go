package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/benx421/backoffice/internal/api"
	"github.com/benx421/backoffice/internal/models"
	"github.com/benx421/backoffice/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryIdempotency is an in-process response cache for router tests
type memoryIdempotency struct {
	entries map[string]*models.IdempotencyKey
	mu      sync.Mutex
}

func (m *memoryIdempotency) Get(_ context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[requestPath+"|"+key], nil
}

func (m *memoryIdempotency) Store(_ context.Context, k *models.IdempotencyKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[k.RequestPath+"|"+k.Key] = k
	return nil
}

func newLiveRouter(t *testing.T) http.Handler {
	t.Helper()

	engine := service.NewEngine(service.NewIDAllocator(), nil, nil)
	bank := service.NewBank(engine, nil, nil, testLogger())
	h := NewHandler(bank, bank, bank, bank, nil, testLogger())

	return mustRouter(t, h, &memoryIdempotency{entries: make(map[string]*models.IdempotencyKey)})
}

func openLiveAccount(t *testing.T, router http.Handler, holder, accountType, deposit string) api.Account {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/api/v1/accounts",
		fmt.Sprintf(`{"holder_name":%q,"account_type":%q,"initial_deposit":%s}`, holder, accountType, deposit))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeJSON[api.Account](t, rec)
}

func liveBalance(t *testing.T, router http.Handler, id int64) string {
	t.Helper()

	rec := do(t, router, http.MethodGet, fmt.Sprintf("/api/v1/accounts/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeJSON[api.Account](t, rec).Balance
}

func TestRouter_AccountsAndLedger(t *testing.T) {
	router := newLiveRouter(t)

	alice := openLiveAccount(t, router, "Alice Moreau", "Checking", "1000")
	bob := openLiveAccount(t, router, "Bob Adeyemi", "Savings", "0")
	assert.Equal(t, int64(1000), alice.ID)
	assert.Equal(t, int64(1001), bob.ID)

	rec := do(t, router, http.MethodPost, "/api/v1/deposits", `{"account_id":1000,"amount":250.50}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Deposit", decodeJSON[api.Transaction](t, rec).Description)

	rec = do(t, router, http.MethodPost, "/api/v1/withdrawals", `{"account_id":1001,"amount":20}`)
	require.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/transfers", `{"from_account_id":1000,"to_account_id":1001,"amount":200}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "1050.50", liveBalance(t, router, alice.ID))
	assert.Equal(t, "200.00", liveBalance(t, router, bob.ID))

	rec = do(t, router, http.MethodPost, "/api/v1/transfers", `{"from_account_id":1000,"to_account_id":1000,"amount":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/1000/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	history := decodeJSON[[]api.Transaction](t, rec)
	require.Len(t, history, 3)
	assert.Equal(t, models.EntryKindTransfer, history[0].Kind, "most recent first")
	assert.Equal(t, "Initial deposit", history[2].Description)

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/4242", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decodeJSON[api.Summary](t, rec)
	assert.Equal(t, 2, summary.TotalAccounts)
	assert.Equal(t, "1250.50", summary.TotalBalance)
	assert.Equal(t, 4, summary.TotalTransactions)
}

func TestRouter_LoanLifecycle(t *testing.T) {
	router := newLiveRouter(t)
	account := openLiveAccount(t, router, "Carmen Ruiz", "Business", "100")

	rec := do(t, router, http.MethodGet, "/api/v1/loans/quote?loan_type=Personal&principal=12000&term_years=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "545.47", decodeJSON[api.LoanQuote](t, rec).MonthlyPayment)

	rec = do(t, router, http.MethodPost, "/api/v1/loans", `{"account_id":1000,"loan_type":"Personal","principal":12000,"term_years":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	loan := decodeJSON[api.Loan](t, rec)
	assert.Equal(t, int64(5000), loan.ID)
	assert.Equal(t, "12000.00", loan.RemainingBalance)
	assert.Equal(t, "12100.00", liveBalance(t, router, account.ID))

	rec = do(t, router, http.MethodPost, "/api/v1/loans/5000/payments", `{"amount":545.47}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "11454.53", decodeJSON[api.Loan](t, rec).RemainingBalance)

	rec = do(t, router, http.MethodPost, "/api/v1/loans/5000/payments", `{"amount":50000}`)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/loans/5000/payments", `{"amount":11454.53}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.LoanStatusPaidOff, decodeJSON[api.Loan](t, rec).Status)

	rec = do(t, router, http.MethodPost, "/api/v1/loans/5000/payments", `{"amount":1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/loans?active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/v1/loans?account_id=9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CardLifecycle(t *testing.T) {
	router := newLiveRouter(t)
	openLiveAccount(t, router, "Dmitri Volkov", "Checking", "500")

	rec := do(t, router, http.MethodPost, "/api/v1/cards", `{"account_id":1000,"card_type":"Credit"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	card := decodeJSON[api.Card](t, rec)
	assert.Equal(t, int64(7000), card.ID)
	assert.Len(t, card.CVV, 3)
	assert.Equal(t, "5000.00", card.CreditLimit)

	rec = do(t, router, http.MethodPost, "/api/v1/cards/7000/purchases", `{"amount":100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	card = decodeJSON[api.Card](t, rec)
	assert.Equal(t, "100.00", card.UsedCredit)
	assert.Equal(t, "4900.00", card.AvailableCredit)
	assert.Empty(t, card.CVV)

	rec = do(t, router, http.MethodPut, "/api/v1/cards/7000/status", `{"status":"Inactive"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/cards/7000/purchases", `{"amount":10}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, api.InactiveCard, decodeJSON[api.Error](t, rec).Error)

	rec = do(t, router, http.MethodGet, "/api/v1/cards?account_id=1000&active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_IdempotentDeposit(t *testing.T) {
	router := newLiveRouter(t)
	openLiveAccount(t, router, "Esther Okafor", "Savings", "0")

	first := do(t, router, http.MethodPost, "/api/v1/deposits", `{"account_id":1000,"amount":75}`, "Idempotency-Key", "dep-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := do(t, router, http.MethodPost, "/api/v1/deposits", `{"account_id":1000,"amount":75}`, "Idempotency-Key", "dep-1")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotent-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	assert.Equal(t, "75.00", liveBalance(t, router, 1000))
}

func TestRouter_DocsAndUnknownRoutes(t *testing.T) {
	router := newLiveRouter(t)

	assert.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/docs/openapi", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/v1/nowhere", "").Code)
}
