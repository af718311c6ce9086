package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ebank/backoffice/internal/core/domain"
)

// AuthEventRepository implements ports.AuthEventRepository using MongoDB.
type AuthEventRepository struct {
	col *mongo.Collection
}

// NewAuthEventRepository creates a new AuthEventRepository.
func NewAuthEventRepository(db *mongo.Database) *AuthEventRepository {
	return &AuthEventRepository{col: db.Collection(collectionAuthEvents)}
}

// InsertEvent persists an event to the auth_events audit collection.
func (r *AuthEventRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	_, err := r.col.InsertOne(ctx, authEventDocument(event, time.Now().UTC()))
	return err
}

func authEventDocument(event *domain.AuthEvent, recordedAt time.Time) bson.M {
	doc := bson.M{
		"type":        string(event.Type),
		"login":       event.Login,
		"timestamp":   event.Timestamp.UTC(),
		"recorded_at": recordedAt,
	}
	if event.Reason != "" {
		doc["reason"] = event.Reason
	}
	if event.ClientIP != "" {
		doc["client_ip"] = event.ClientIP
	}
	if event.RequestID != "" {
		doc["request_id"] = event.RequestID
	}
	return doc
}
