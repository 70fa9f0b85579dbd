package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/credexa/session-gateway/internal/core/ports"
)

const auditCollection = "auth_audit"

// AuditRepository stores the authentication audit trail: logins, logouts,
// idle timeouts and session expiries.
type AuditRepository struct {
	coll *mongo.Collection
}

var _ ports.AuditRecorder = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Username  string `bson:"username,omitempty"`
	EventType string `bson:"event_type"`
	Success   bool   `bson:"success"`
	Detail    string `bson:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

// Record inserts one audit event.
func (r *AuditRepository) Record(ctx context.Context, event ports.AuditEvent) error {
	ts := event.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	doc := auditDoc{
		Username:  event.Username,
		EventType: string(event.Type),
		Success:   event.Success,
		Detail:    event.Detail,
		Timestamp: ts.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// RecentForUser returns the latest audit events for a username, newest first.
func (r *AuditRepository) RecentForUser(ctx context.Context, username string, limit int64) ([]ports.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"username": username}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []ports.AuditEvent
	for cursor.Next(ctx) {
		var doc auditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, ports.AuditEvent{
			Username:  doc.Username,
			Type:      ports.AuditEventType(doc.EventType),
			Success:   doc.Success,
			Detail:    doc.Detail,
			Timestamp: time.Unix(doc.Timestamp, 0).UTC(),
		})
	}
	return events, cursor.Err()
}
