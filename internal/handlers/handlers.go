// Package handlers exposes the clinic and messaging operations over HTTP.
// Input validation happens here, before anything reaches a store.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/messaging"
	"clinic-backend/internal/models"
	"clinic-backend/internal/store"
)

// Messenger is the slice of the messaging service the handlers call.
type Messenger interface {
	CreateUser(ctx context.Context, username, password, userType, firstName, lastName string, externalID *int64) (string, error)
	Authenticate(ctx context.Context, username, password string) (*messaging.AuthResult, error)
	ValidateSession(ctx context.Context, sessionID string) (string, error)
	Logout(ctx context.Context, sessionID string) error
	EnsureUserForDoctor(ctx context.Context, doctorID int64, firstName, lastName string) (string, error)
	EnsureUserForPatient(ctx context.Context, patientID int64, firstName, lastName string) (string, error)
	GetOrCreateConversation(ctx context.Context, participant1, participant2 string) (string, error)
	SendMessage(ctx context.Context, senderID, conversationID, text string, imageData []byte, imageFilename string) (string, error)
	GetConversationMessages(ctx context.Context, conversationID string, limit, skip int64) ([]models.ChatMessage, error)
	GetUserConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error)
	SearchUsers(ctx context.Context, query, userType string) ([]models.UserSummary, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	UploadProfileImage(ctx context.Context, userID string, data []byte, filename string) error
}

var _ Messenger = (*messaging.Service)(nil)

// Handler carries the handles every route works against.
type Handler struct {
	Store store.ClinicStore
	Chat  Messenger
}

// New builds a Handler over the chosen clinic store and the messaging
// service.
func New(clinicStore store.ClinicStore, chat Messenger) *Handler {
	return &Handler{Store: clinicStore, Chat: chat}
}

// RegisterRoutes attaches every route to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	r.GET("/departments", h.GetDepartments)
	r.GET("/departments/:department_id/doctors", h.GetDoctorsByDepartment)

	r.GET("/doctors", h.GetDoctors)
	r.GET("/doctors/:doctor_id/appointments", h.GetDoctorAppointments)
	r.GET("/doctors/:doctor_id/patients", h.GetDoctorPatients)

	r.GET("/patients/find", h.FindPatient)
	r.POST("/patients", h.CreatePatient)
	r.GET("/patients/appointments", h.GetPatientAppointments)
	r.GET("/patients/:patient_id/doctors", h.GetPatientDoctors)

	r.POST("/appointments", h.BookAppointment)

	r.POST("/observations", h.CreateObservation)
	r.GET("/observations/:observation_id/files", h.GetObservationFiles)
	r.POST("/diagnoses", h.CreateDiagnosis)

	r.POST("/files", h.UploadFile)
	r.GET("/files", h.ListFiles)
	r.GET("/files/:file_id", h.GetFileInfo)
	r.GET("/files/:file_id/download", h.DownloadFile)
	r.DELETE("/files/:file_id", h.DeleteFile)
	r.POST("/files/:file_id/link", h.LinkFile)

	r.POST("/research/query", h.RunResearchQuery)

	chat := r.Group("/chat")
	{
		chat.POST("/users", h.CreateChatUser)
		chat.POST("/login", h.ChatLogin)
		chat.POST("/logout", h.ChatLogout)
		chat.GET("/sessions/:session_id", h.ValidateChatSession)
		chat.POST("/users/ensure", h.EnsureChatUser)
		chat.GET("/users/search", h.SearchChatUsers)
		chat.GET("/users/:user_id/conversations", h.GetChatConversations)
		chat.GET("/users/:user_id/unread", h.GetChatUnreadCount)
		chat.POST("/users/:user_id/profile-image", h.UploadChatProfileImage)
		chat.POST("/conversations", h.OpenChatConversation)
		chat.GET("/conversations/:conversation_id/messages", h.GetChatMessages)
		chat.POST("/conversations/:conversation_id/read", h.MarkChatMessagesRead)
		chat.POST("/messages", h.SendChatMessage)
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "clinic-backend"})
}

// parseIDParam reads a positive integer path parameter and answers 400 itself
// when the value does not parse.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name + " format"})
		return 0, false
	}
	return id, true
}
