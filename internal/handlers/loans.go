package handlers

import (
	"net/http"

	"github.com/benx421/backoffice/internal/api"
	"github.com/benx421/backoffice/internal/models"
	"github.com/oapi-codegen/runtime"
	"github.com/shopspring/decimal"
)

// QuoteLoan handles GET /api/v1/loans/quote
func (h *Handler) QuoteLoan(w http.ResponseWriter, r *http.Request) {
	var (
		loanType  string
		principal string
		termYears int
	)

	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, true, "loan_type", query, &loanType); err != nil {
		badRequest(w, "invalid format for parameter loan_type: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "principal", query, &principal); err != nil {
		badRequest(w, "invalid format for parameter principal: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "term_years", query, &termYears); err != nil {
		badRequest(w, "invalid format for parameter term_years: "+err.Error())
		return
	}

	amount, err := decimal.NewFromString(principal)
	if err != nil {
		badRequest(w, "invalid format for parameter principal: not a number")
		return
	}

	quote, err := h.loans.QuoteLoan(r.Context(), models.LoanType(loanType), amount, termYears)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewLoanQuote(models.LoanType(loanType), amount, termYears, quote))
}

// OriginateLoan handles POST /api/v1/loans
func (h *Handler) OriginateLoan(w http.ResponseWriter, r *http.Request) {
	var req api.LoanRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	loan, err := h.loans.OriginateLoan(r.Context(), req.AccountID, req.LoanType, req.Principal, req.TermYears)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewLoan(loan))
}

// ListLoans handles GET /api/v1/loans
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	accountID, activeOnly, err := ownerFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	loans, err := h.loans.ListLoans(r.Context(), accountID, activeOnly)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	out := make([]api.Loan, 0, len(loans))
	for _, l := range loans {
		out = append(out, api.NewLoan(l))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetLoan handles GET /api/v1/loans/{loanId}
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	loan, err := h.loans.GetLoan(r.Context(), loanID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewLoan(loan))
}

// PayLoan handles POST /api/v1/loans/{loanId}/payments
func (h *Handler) PayLoan(w http.ResponseWriter, r *http.Request) {
	loanID, err := pathID(r, "loanId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req api.AmountRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	loan, err := h.loans.PayLoan(r.Context(), loanID, req.Amount)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewLoan(loan))
}
