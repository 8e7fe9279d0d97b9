package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/benx421/backoffice/internal/api"
	"github.com/benx421/backoffice/internal/config"
	"github.com/benx421/backoffice/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures the HTTP router with all routes and
// middleware. idempotencyRepo may be nil, which disables response replay.
func NewRouter(
	handler *Handler,
	idempotencyRepo middleware.IdempotencyRepository,
	cfg *config.Config,
	logger *slog.Logger,
) (http.Handler, error) {
	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}

	validate, err := middleware.RequestValidation(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validation: %w", err)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	if cfg.Server.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.Server.RequestTimeout))
	}

	api.RegisterDocsRoutes(r)
	r.Get("/health", handler.GetHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(validate)
		if idempotencyRepo != nil {
			r.Use(middleware.Idempotency(idempotencyRepo, logger))
		}

		r.Get("/summary", handler.GetSummary)

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", handler.OpenAccount)
			r.Get("/", handler.ListAccounts)
			r.Get("/{accountId}", handler.GetAccount)
			r.Get("/{accountId}/transactions", handler.ListAccountTransactions)
		})

		r.Post("/deposits", handler.Deposit)
		r.Post("/withdrawals", handler.Withdraw)
		r.Post("/transfers", handler.Transfer)
		r.Get("/transactions", handler.ListTransactions)

		r.Route("/loans", func(r chi.Router) {
			r.Get("/quote", handler.QuoteLoan)
			r.Post("/", handler.OriginateLoan)
			r.Get("/", handler.ListLoans)
			r.Get("/{loanId}", handler.GetLoan)
			r.Post("/{loanId}/payments", handler.PayLoan)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", handler.IssueCard)
			r.Get("/", handler.ListCards)
			r.Get("/{cardId}", handler.GetCard)
			r.Post("/{cardId}/purchases", handler.CardPurchase)
			r.Post("/{cardId}/payments", handler.CardPayment)
			r.Put("/{cardId}/status", handler.SetCardStatus)
		})
	})

	return r, nil
}
