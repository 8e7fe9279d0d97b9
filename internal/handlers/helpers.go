package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/benx421/backoffice/internal/api"
	"github.com/benx421/backoffice/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body) //nolint:errcheck // headers already sent
}

func writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	writeJSON(w, status, api.Error{Error: code, Message: message})
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, api.ValidationError, message)
}

// handleServiceError maps service errors to appropriate HTTP responses
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	svcErr := extractServiceError(err)
	if svcErr == nil || svcErr.Code == service.ErrCodeInternalError {
		h.logger.Error("unexpected error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, api.InternalError, "internal error")
		return
	}

	writeError(w, statusForCode(svcErr.Code), api.ErrorCode(svcErr.Code), svcErr.Message)
}

func statusForCode(code string) int {
	switch code {
	case service.ErrCodeValidation:
		return http.StatusBadRequest
	case service.ErrCodeNotFound:
		return http.StatusNotFound
	case service.ErrCodeInsufficientFunds, service.ErrCodeInsufficientCredit:
		return http.StatusPaymentRequired
	case service.ErrCodeInactiveCard, service.ErrCodeAlreadyPaidOff:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func extractServiceError(err error) *service.ServiceError {
	var svcErr *service.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return id, nil
}

// ownerFilter reads the optional account_id and active query parameters.
// A missing account_id yields zero, which selects every account.
func ownerFilter(r *http.Request) (accountID int64, activeOnly bool, err error) {
	var (
		account *int64
		active  *bool
	)

	if err := runtime.BindQueryParameter("form", true, false, "account_id", r.URL.Query(), &account); err != nil {
		return 0, false, fmt.Errorf("invalid format for parameter account_id: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "active", r.URL.Query(), &active); err != nil {
		return 0, false, fmt.Errorf("invalid format for parameter active: %w", err)
	}

	if account != nil {
		accountID = *account
	}
	if active != nil {
		activeOnly = *active
	}
	return accountID, activeOnly, nil
}
