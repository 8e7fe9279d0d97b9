// Package handlers implements HTTP handlers for the back-office API.
package handlers

import (
	"log/slog"

	"github.com/benx421/backoffice/internal/service"
)

// Handler serves every API endpoint over the injected capabilities
type Handler struct {
	accounts      service.AccountManager
	teller        service.Teller
	loans         service.LoanOfficer
	cards         service.CardIssuer
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
// healthChecker may be nil when no database is configured.
func NewHandler(
	accounts service.AccountManager,
	teller service.Teller,
	loans service.LoanOfficer,
	cards service.CardIssuer,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		accounts:      accounts,
		teller:        teller,
		loans:         loans,
		cards:         cards,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
