package handlers

import (
	"net/http"

	"github.com/benx421/backoffice/internal/api"
)

// IssueCard handles POST /api/v1/cards. The response is the only place the
// CVV is ever returned.
func (h *Handler) IssueCard(w http.ResponseWriter, r *http.Request) {
	var req api.CardRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.cards.IssueCard(r.Context(), req.AccountID, req.CardType)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.NewIssuedCard(card))
}

// ListCards handles GET /api/v1/cards
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	accountID, activeOnly, err := ownerFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	cards, err := h.cards.ListCards(r.Context(), accountID, activeOnly)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	out := make([]api.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, api.NewCard(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetCard handles GET /api/v1/cards/{cardId}
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.cards.GetCard(r.Context(), cardID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewCard(card))
}

// CardPurchase handles POST /api/v1/cards/{cardId}/purchases
func (h *Handler) CardPurchase(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req api.AmountRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.cards.CardPurchase(r.Context(), cardID, req.Amount)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewCard(card))
}

// CardPayment handles POST /api/v1/cards/{cardId}/payments
func (h *Handler) CardPayment(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req api.AmountRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.cards.CardPayment(r.Context(), cardID, req.Amount)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewCard(card))
}

// SetCardStatus handles PUT /api/v1/cards/{cardId}/status
func (h *Handler) SetCardStatus(w http.ResponseWriter, r *http.Request) {
	cardID, err := pathID(r, "cardId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req api.CardStatusRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	card, err := h.cards.SetCardStatus(r.Context(), cardID, req.Status)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.NewCard(card))
}
