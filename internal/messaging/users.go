package messaging

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinic-backend/internal/models"
	"clinic-backend/internal/utils"
)

const searchLimit = 20

// AuthResult is returned on a successful login.
type AuthResult struct {
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
	UserType   string `json:"user_type"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ExternalID *int64 `json:"external_id"`
	SessionID  string `json:"session_id"`
}

// CreateUser registers a chat account with a bcrypt-hashed password and
// returns the new user id.
func (s *Service) CreateUser(ctx context.Context, username, password, userType, firstName, lastName string, externalID *int64) (string, error) {
	count, err := s.users.CountDocuments(ctx, bson.M{"username": username})
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrUsernameTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return "", err
	}
	user := models.ChatUser{
		Username:     username,
		PasswordHash: hash,
		UserType:     userType,
		FirstName:    firstName,
		LastName:     lastName,
		ExternalID:   externalID,
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
	result, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrUsernameTaken
		}
		return "", err
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Authenticate checks the credentials against the active account and opens a
// session on success.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	var user models.ChatUser
	err := s.users.FindOne(ctx, bson.M{"username": username, "is_active": true}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	sessionID, err := s.createSession(ctx, user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		UserID:     user.ID.Hex(),
		Username:   user.Username,
		UserType:   user.UserType,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		ExternalID: user.ExternalID,
		SessionID:  sessionID,
	}, nil
}

// EnsureUserForDoctor returns the chat account backing a clinic doctor,
// creating it on first use.
func (s *Service) EnsureUserForDoctor(ctx context.Context, doctorID int64, firstName, lastName string) (string, error) {
	return s.ensureExternalUser(ctx, models.UserTypeDoctor, doctorID, firstName, lastName)
}

// EnsureUserForPatient returns the chat account backing a clinic patient,
// creating it on first use.
func (s *Service) EnsureUserForPatient(ctx context.Context, patientID int64, firstName, lastName string) (string, error) {
	return s.ensureExternalUser(ctx, models.UserTypePatient, patientID, firstName, lastName)
}

// ensureExternalUser upserts the account keyed by "<type>.<id>". These
// accounts carry no password; they exist so clinic records can chat without
// registering.
func (s *Service) ensureExternalUser(ctx context.Context, userType string, externalID int64, firstName, lastName string) (string, error) {
	username := fmt.Sprintf("%s.%d", userType, externalID)

	var existing models.ChatUser
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&existing)
	if err == nil {
		return existing.ID.Hex(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	err = s.users.FindOne(ctx, bson.M{"user_id": externalID, "user_type": userType}).Decode(&existing)
	if err == nil {
		return existing.ID.Hex(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	update := bson.M{"$setOnInsert": bson.M{
		"password_hash": "",
		"user_type":     userType,
		"first_name":    firstName,
		"last_name":     lastName,
		"user_id":       externalID,
		"created_at":    time.Now().UTC(),
		"is_active":     true,
		"profile_image": nil,
	}}
	result, err := s.users.UpdateOne(ctx, bson.M{"username": username}, update, options.Update().SetUpsert(true))
	if err != nil {
		return "", err
	}
	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	// Lost the upsert race; the winner's document is there now.
	if err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&existing); err != nil {
		return "", err
	}
	return existing.ID.Hex(), nil
}

// SearchUsers finds active users whose username or name matches the query,
// case-insensitively. An empty userType matches all types.
func (s *Service) SearchUsers(ctx context.Context, query, userType string) ([]models.UserSummary, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"username": primitive.Regex{Pattern: query, Options: "i"}},
			bson.M{"first_name": primitive.Regex{Pattern: query, Options: "i"}},
			bson.M{"last_name": primitive.Regex{Pattern: query, Options: "i"}},
		},
		"is_active": true,
	}
	if userType != "" {
		filter["user_type"] = userType
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "username": 1, "first_name": 1, "last_name": 1, "user_type": 1}).
		SetLimit(searchLimit)
	cursor, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var users []models.ChatUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, summarize(u))
	}
	return summaries, nil
}

// UploadProfileImage replaces the user's profile picture. The payload is kept
// inline as base64.
func (s *Service) UploadProfileImage(ctx context.Context, userID string, data []byte, filename string) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrUserNotFound
	}
	image := models.ProfileImage{
		Data:       base64.StdEncoding.EncodeToString(data),
		Filename:   filename,
		MimeType:   utils.DetectImageMimeType(filename),
		UploadedAt: time.Now().UTC(),
	}
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"profile_image": image}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func summarize(u models.ChatUser) models.UserSummary {
	return models.UserSummary{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  u.UserType,
	}
}
