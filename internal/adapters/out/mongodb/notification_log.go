// Package mongodb keeps the notification audit log in MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"ecofleet/internal/core/domain/model/kernel"
	"ecofleet/internal/core/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notificationsCollection = "notifications"

// NotificationLog appends sent notifications, one document per outbox
// message id. Appending the same message twice keeps the first document.
type NotificationLog struct {
	coll *mongo.Collection
}

var _ ports.NotificationLog = (*NotificationLog)(nil)

func NewNotificationLog(client *mongo.Client, dbName string) *NotificationLog {
	return &NotificationLog{coll: client.Database(dbName).Collection(notificationsCollection)}
}

type notificationDocument struct {
	MessageID string    `bson:"_id"`
	EventType string    `bson:"eventType"`
	Recipient string    `bson:"recipient"`
	Subject   string    `bson:"subject"`
	Body      string    `bson:"body"`
	SentAt    time.Time `bson:"sentAt"`
}

func (l *NotificationLog) Append(ctx context.Context, n ports.Notification) error {
	_, err := l.coll.InsertOne(ctx, notificationDocument{
		MessageID: n.MessageID.String(),
		EventType: n.EventType,
		Recipient: n.Recipient,
		Subject:   n.Subject,
		Body:      n.Body,
		SentAt:    n.SentAt.UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByRecipient returns the newest notifications for recipient first.
func (l *NotificationLog) ListByRecipient(ctx context.Context, recipient string, limit int) ([]ports.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sentAt", Value: -1}}).SetLimit(int64(limit))

	cursor, err := l.coll.Find(ctx, bson.M{"recipient": recipient}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []ports.Notification
	for cursor.Next(ctx) {
		var doc notificationDocument
		if err = cursor.Decode(&doc); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromString(doc.MessageID)
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, ports.Notification{
			MessageID: id,
			EventType: doc.EventType,
			Recipient: doc.Recipient,
			Subject:   doc.Subject,
			Body:      doc.Body,
			SentAt:    doc.SentAt,
		})
	}
	return out, cursor.Err()
}

// EnsureIndexes creates the recipient/sentAt index used by ListByRecipient.
func (l *NotificationLog) EnsureIndexes(ctx context.Context) error {
	_, err := l.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "recipient", Value: 1}, {Key: "sentAt", Value: -1}},
	})
	return err
}

// NopNotificationLog is used when MongoDB is not configured.
type NopNotificationLog struct{}

func (NopNotificationLog) Append(context.Context, ports.Notification) error { return nil }
