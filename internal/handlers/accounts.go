package handlers

import (
	"net/http"

	"github.com/benx421/backoffice/internal/api"
)

// OpenAccount handles POST /api/v1/accounts
func (h *Handler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	var req api.OpenAccountRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	account, err := h.accounts.OpenAccount(r.Context(), req.HolderName, req.AccountType, req.InitialDeposit)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewAccount(account))
}

// ListAccounts handles GET /api/v1/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	out := make([]api.Account, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, api.NewAccount(a))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetAccount handles GET /api/v1/accounts/{accountId}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathID(r, "accountId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	account, err := h.accounts.GetAccount(r.Context(), accountID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewAccount(account))
}

// GetSummary handles GET /api/v1/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.accounts.Summary(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewSummary(summary))
}
