package messaging

import (
	"context"
	"encoding/base64"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinic-backend/internal/models"
	"clinic-backend/internal/utils"
)

const defaultMessageLimit = 50

// SendMessage appends a message to the conversation and bumps its activity.
// When image data and a filename are both present the message becomes an
// image message with the payload inlined as base64.
func (s *Service) SendMessage(ctx context.Context, senderID, conversationID, text string, imageData []byte, imageFilename string) (string, error) {
	convID, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return "", err
	}

	msg := models.ChatMessage{
		ConversationID: conversationID,
		SenderID:       senderID,
		MessageText:    text,
		MessageType:    models.MessageTypeText,
		Timestamp:      time.Now().UTC(),
		IsRead:         false,
	}
	if len(imageData) > 0 && imageFilename != "" {
		msg.MessageType = models.MessageTypeImage
		msg.ImageData = base64.StdEncoding.EncodeToString(imageData)
		msg.ImageFilename = imageFilename
		msg.ImageMimeType = utils.DetectImageMimeType(imageFilename)
		msg.ImageSize = int64(len(imageData))
	}

	result, err := s.messages.InsertOne(ctx, msg)
	if err != nil {
		return "", err
	}

	_, err = s.conversations.UpdateOne(ctx, bson.M{"_id": convID}, bson.M{
		"$set": bson.M{"last_activity": time.Now().UTC()},
		"$inc": bson.M{"message_count": 1},
	})
	if err != nil {
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetConversationMessages returns one page of messages in chronological
// order. Paging walks backwards from the newest message: skip counts from the
// end, limit defaults to 50.
func (s *Service) GetConversationMessages(ctx context.Context, conversationID string, limit, skip int64) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cursor, err := s.messages.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	var messages []models.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	reverseMessages(messages)
	return messages, nil
}

// reverseMessages flips the newest-first page into chronological order.
func reverseMessages(messages []models.ChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}

// MarkMessagesAsRead marks every unread message in the conversation that the
// user did not send, and reports how many were flipped.
func (s *Service) MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error) {
	result, err := s.messages.UpdateMany(ctx,
		bson.M{
			"conversation_id": conversationID,
			"sender_id":       bson.M{"$ne": userID},
			"is_read":         false,
		},
		bson.M{"$set": bson.M{"is_read": true, "read_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
