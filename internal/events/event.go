// Package events carries committed back-office operations to a RabbitMQ topic
// exchange and back out to consumers such as the audit worker.
package events

import (
	"time"

	"github.com/benx421/backoffice/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the routing key an event is published under
type Type string

const (
	AccountOpened  Type = "account.opened"
	Deposited      Type = "ledger.deposit"
	Withdrawn      Type = "ledger.withdraw"
	Transferred    Type = "ledger.transfer"
	LoanOriginated Type = "loan.originated"
	LoanPayment    Type = "loan.payment"
	CardIssued     Type = "card.issued"
	CardPurchase   Type = "card.purchase"
	CardPayment    Type = "card.payment"
	CardStatus     Type = "card.status"
)

// Event describes one committed operation
type Event struct {
	OccurredAt time.Time       `json:"occurred_at" bson:"occurred_at"`
	Type       Type            `json:"type" bson:"type"`
	Detail     string          `json:"detail,omitempty" bson:"detail,omitempty"`
	Amount     decimal.Decimal `json:"amount" bson:"-"`
	EntryIDs   []int64         `json:"entry_ids,omitempty" bson:"entry_ids,omitempty"`
	AccountID  int64           `json:"account_id" bson:"account_id"`
	SubjectID  int64           `json:"subject_id,omitempty" bson:"subject_id,omitempty"`
	ID         uuid.UUID       `json:"id" bson:"-"`
}

// New creates an event with a fresh id
func New(eventType Type, accountID int64, amount decimal.Decimal, occurredAt time.Time) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		AccountID:  accountID,
		Amount:     amount,
		OccurredAt: occurredAt.UTC(),
	}
}

// WithEntries records the ledger entries the operation produced
func (e *Event) WithEntries(entries ...*models.LedgerEntry) *Event {
	for _, entry := range entries {
		if entry != nil {
			e.EntryIDs = append(e.EntryIDs, entry.ID)
		}
	}
	return e
}

// WithSubject records the loan or card the operation acted on
func (e *Event) WithSubject(id int64) *Event {
	e.SubjectID = id
	return e
}

// WithDetail attaches a short free-form note
func (e *Event) WithDetail(detail string) *Event {
	e.Detail = detail
	return e
}
