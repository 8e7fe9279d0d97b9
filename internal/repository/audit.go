package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/benx421/backoffice/internal/events"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const auditCollection = "audit_logs"

// AuditRecord is the document stored for each consumed event
type AuditRecord struct {
	ID         string    `bson:"_id"`
	Type       string    `bson:"type"`
	Detail     string    `bson:"detail,omitempty"`
	Amount     string    `bson:"amount"`
	EntryIDs   []int64   `bson:"entry_ids,omitempty"`
	AccountID  int64     `bson:"account_id"`
	SubjectID  int64     `bson:"subject_id,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// NewAuditRecord converts an event into its audit document. The event id
// becomes the document id so redelivered events are stored once.
func NewAuditRecord(event *events.Event, recordedAt time.Time) AuditRecord {
	return AuditRecord{
		ID:         event.ID.String(),
		Type:       string(event.Type),
		Detail:     event.Detail,
		Amount:     event.Amount.StringFixed(2),
		EntryIDs:   event.EntryIDs,
		AccountID:  event.AccountID,
		SubjectID:  event.SubjectID,
		OccurredAt: event.OccurredAt,
		RecordedAt: recordedAt.UTC(),
	}
}

// AuditRepository stores audit documents in MongoDB
type AuditRepository struct {
	collection *mongo.Collection
}

// NewAuditRepository binds to the audit collection of dbName
func NewAuditRepository(client *mongo.Client, dbName string) *AuditRepository {
	return &AuditRepository{collection: client.Database(dbName).Collection(auditCollection)}
}

// Save records an event. Saving the same event twice is not an error.
func (r *AuditRepository) Save(ctx context.Context, event *events.Event) error {
	record := NewAuditRecord(event, time.Now())

	_, err := r.collection.InsertOne(ctx, record)
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to insert audit record: %w", err)
	}

	return nil
}

// ListByAccount returns an account's audit trail in the order events occurred
func (r *AuditRepository) ListByAccount(ctx context.Context, accountID int64) ([]AuditRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.D{{Key: "account_id", Value: accountID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit records: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck // read-only cursor

	var records []AuditRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}

	return records, nil
}
