package messaging

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinic-backend/internal/models"
)

// pairFilter matches the conversation holding both participants, whatever
// order they were stored in.
func pairFilter(a, b string) bson.M {
	return bson.M{"participants": bson.M{"$all": bson.A{a, b}}}
}

// GetOrCreateConversation returns the id of the conversation between the two
// users, creating it when the pair has never talked.
func (s *Service) GetOrCreateConversation(ctx context.Context, participant1, participant2 string) (string, error) {
	var conv models.Conversation
	err := s.conversations.FindOne(ctx, pairFilter(participant1, participant2)).Decode(&conv)
	if err == nil {
		return conv.ID.Hex(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	now := time.Now().UTC()
	result, err := s.conversations.InsertOne(ctx, models.Conversation{
		Participants: []string{participant1, participant2},
		CreatedAt:    now,
		LastActivity: now,
		MessageCount: 0,
	})
	if err != nil {
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetUserConversations lists the user's conversations, most recently active
// first, with the counterpart's public profile attached. Conversations whose
// counterpart no longer exists are skipped.
func (s *Service) GetUserConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_activity", Value: -1}})
	cursor, err := s.conversations.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		otherID := otherParticipant(conv.Participants, userID)
		if otherID == "" {
			continue
		}
		oid, err := primitive.ObjectIDFromHex(otherID)
		if err != nil {
			continue
		}
		var other models.ChatUser
		if err := s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&other); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return nil, err
		}
		summaries = append(summaries, models.ConversationSummary{
			ID:               conv.ID.Hex(),
			LastActivity:     conv.LastActivity,
			MessageCount:     conv.MessageCount,
			OtherParticipant: summarize(other),
		})
	}
	return summaries, nil
}

// otherParticipant returns the first participant that is not userID.
func otherParticipant(participants []string, userID string) string {
	for _, p := range participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// GetUnreadCount sums unread messages addressed to the user across all their
// conversations.
func (s *Service) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	cursor, err := s.conversations.Find(ctx, bson.M{"participants": userID})
	if err != nil {
		return 0, err
	}
	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return 0, err
	}

	var total int64
	for _, conv := range conversations {
		n, err := s.messages.CountDocuments(ctx, bson.M{
			"conversation_id": conv.ID.Hex(),
			"sender_id":       bson.M{"$ne": userID},
			"is_read":         false,
		})
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
