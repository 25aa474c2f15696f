package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clinic-backend/internal/models"
)

// endOfDay returns 23:59:59 on t's calendar day. Sessions never outlive the
// day they were opened on.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func (s *Service) createSession(ctx context.Context, userID string) (string, error) {
	now := time.Now().UTC()
	session := models.ChatSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: endOfDay(now),
		IsActive:  true,
	}
	if _, err := s.sessions.InsertOne(ctx, session); err != nil {
		return "", err
	}
	return session.ID, nil
}

// ValidateSession resolves an active, unexpired session to its user id.
func (s *Service) ValidateSession(ctx context.Context, sessionID string) (string, error) {
	var session models.ChatSession
	err := s.sessions.FindOne(ctx, bson.M{
		"_id":        sessionID,
		"is_active":  true,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidSession
		}
		return "", err
	}
	return session.UserID, nil
}

// Logout deactivates the session. A session that is unknown or already
// inactive reports ErrInvalidSession.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	result, err := s.sessions.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return err
	}
	if result.ModifiedCount == 0 {
		return ErrInvalidSession
	}
	return nil
}
