package handlers

import (
	"net/http"

	"github.com/benx421/backoffice/internal/api"
)

// Deposit handles POST /api/v1/deposits
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req api.MovementRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	entry, err := h.teller.Deposit(r.Context(), req.AccountID, req.Amount, req.Description)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewTransaction(entry))
}

// Withdraw handles POST /api/v1/withdrawals
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req api.MovementRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	entry, err := h.teller.Withdraw(r.Context(), req.AccountID, req.Amount, req.Description)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewTransaction(entry))
}

// Transfer handles POST /api/v1/transfers
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req api.TransferRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	entries, err := h.teller.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.Transfer{
		Debit:  api.NewTransaction(entries.Debit),
		Credit: api.NewTransaction(entries.Credit),
	})
}

// ListAccountTransactions handles GET /api/v1/accounts/{accountId}/transactions
func (h *Handler) ListAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "accountId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	entries, err := h.teller.ListTransactions(r.Context(), accountID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewTransactions(entries))
}

// ListTransactions handles GET /api/v1/transactions
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.teller.ListAllTransactions(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewTransactions(entries))
}
