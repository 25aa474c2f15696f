package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chat user types.
const (
	UserTypeDoctor  = "doctor"
	UserTypePatient = "patient"
)

// Message types.
const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// ChatUser is a messaging account. ExternalID links it back to the doctor or
// patient record in the clinic store.
type ChatUser struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	UserType     string             `json:"user_type" bson:"user_type"`
	FirstName    string             `json:"first_name" bson:"first_name"`
	LastName     string             `json:"last_name" bson:"last_name"`
	ExternalID   *int64             `json:"user_id" bson:"user_id"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	IsActive     bool               `json:"is_active" bson:"is_active"`
	ProfileImage *ProfileImage      `json:"profile_image,omitempty" bson:"profile_image,omitempty"`
}

// ProfileImage is an inline base64 profile picture on a chat user.
type ProfileImage struct {
	Data       string    `json:"data" bson:"data"`
	Filename   string    `json:"filename" bson:"filename"`
	MimeType   string    `json:"mime_type" bson:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Conversation is a thread between exactly two users. At most one
// conversation exists per unordered participant pair.
type Conversation struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Participants []string           `json:"participants" bson:"participants"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	LastActivity time.Time          `json:"last_activity" bson:"last_activity"`
	MessageCount int64              `json:"message_count" bson:"message_count"`
}

// ChatMessage is a single message. Image messages carry the payload inline as
// base64 together with the guessed MIME type and original byte size.
type ChatMessage struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ConversationID string             `json:"conversation_id" bson:"conversation_id"`
	SenderID       string             `json:"sender_id" bson:"sender_id"`
	MessageText    string             `json:"message_text" bson:"message_text"`
	MessageType    string             `json:"message_type" bson:"message_type"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
	IsRead         bool               `json:"is_read" bson:"is_read"`
	ReadAt         *time.Time         `json:"read_at,omitempty" bson:"read_at,omitempty"`
	ImageData      string             `json:"image_data,omitempty" bson:"image_data,omitempty"`
	ImageFilename  string             `json:"image_filename,omitempty" bson:"image_filename,omitempty"`
	ImageMimeType  string             `json:"image_mime_type,omitempty" bson:"image_mime_type,omitempty"`
	ImageSize      int64              `json:"image_size,omitempty" bson:"image_size,omitempty"`
}

// ChatSession is a login session. The id doubles as the opaque session token
// handed to clients; expiry is enforced both in queries and by a TTL index.
type ChatSession struct {
	ID        string    `json:"session_id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
}

// UserSummary is the public projection of a chat user returned by searches
// and conversation listings.
type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserType  string `json:"user_type"`
}

// ConversationSummary is a conversation as listed for one user, with the
// counterpart's public profile attached.
type ConversationSummary struct {
	ID               string      `json:"id"`
	LastActivity     time.Time   `json:"last_activity"`
	MessageCount     int64       `json:"message_count"`
	OtherParticipant UserSummary `json:"other_participant"`
}
