// Package messaging implements chat between doctors and patients on MongoDB:
// accounts, login sessions, two-party conversations and messages with inline
// image attachments.
package messaging

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("session invalid or expired")
	ErrUserNotFound       = errors.New("chat user not found")
)

// Service carries the collection handles for the messaging database.
type Service struct {
	client        *mongo.Client
	users         *mongo.Collection
	messages      *mongo.Collection
	conversations *mongo.Collection
	sessions      *mongo.Collection
}

// NewService wires a Service over an already connected client.
func NewService(client *mongo.Client, dbName string) *Service {
	db := client.Database(dbName)
	return &Service{
		client:        client,
		users:         db.Collection("users"),
		messages:      db.Collection("messages"),
		conversations: db.Collection("conversations"),
		sessions:      db.Collection("user_sessions"),
	}
}

// EnsureIndexes creates the collection indexes. A failure is logged and
// skipped; the service works without indexes, only slower.
func (s *Service) EnsureIndexes(ctx context.Context) {
	create := func(coll *mongo.Collection, model mongo.IndexModel) {
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			log.Printf("create index on %s: %v", coll.Name(), err)
		}
	}

	create(s.users, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	create(s.users, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}})

	create(s.messages, mongo.IndexModel{
		Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	create(s.messages, mongo.IndexModel{Keys: bson.D{{Key: "sender_id", Value: 1}}})

	create(s.conversations, mongo.IndexModel{Keys: bson.D{{Key: "participants", Value: 1}}})
	create(s.conversations, mongo.IndexModel{Keys: bson.D{{Key: "last_activity", Value: 1}}})

	create(s.sessions, mongo.IndexModel{Keys: bson.D{{Key: "user_id", Value: 1}}})
	// TTL index: expired sessions get reaped by the server itself.
	create(s.sessions, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
}

// Close disconnects the underlying client.
func (s *Service) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
