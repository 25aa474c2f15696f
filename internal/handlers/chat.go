package handlers

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/messaging"
	"clinic-backend/internal/models"
)

// --- Structs for Request Binding ---

type CreateChatUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	UserType  string `json:"user_type" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	UserID    *int64 `json:"user_id"`
}

type ChatLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChatLogoutRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type EnsureChatUserRequest struct {
	UserType  string `json:"user_type" binding:"required"`
	UserID    int64  `json:"user_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type OpenConversationRequest struct {
	Participant1 string `json:"participant1_id" binding:"required"`
	Participant2 string `json:"participant2_id" binding:"required"`
}

type MarkReadRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type SendChatMessageRequest struct {
	SenderID       string `json:"sender_id" binding:"required"`
	ConversationID string `json:"conversation_id" binding:"required"`
	MessageText    string `json:"message_text"`
}

func validUserType(userType string) bool {
	return userType == models.UserTypeDoctor || userType == models.UserTypePatient
}

// --- Handler Functions ---

func (h *Handler) CreateChatUser(c *gin.Context) {
	var req CreateChatUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validUserType(req.UserType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user_type must be doctor or patient"})
		return
	}

	userID, err := h.Chat.CreateUser(c.Request.Context(), req.Username, req.Password, req.UserType, req.FirstName, req.LastName, req.UserID)
	if err != nil {
		if errors.Is(err, messaging.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create user", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User created successfully",
		"user_id": userID,
	})
}

func (h *Handler) ChatLogin(c *gin.Context) {
	var req ChatLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	auth, err := h.Chat.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, messaging.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, auth)
}

func (h *Handler) ChatLogout(c *gin.Context) {
	var req ChatLogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Chat.Logout(c.Request.Context(), req.SessionID); err != nil {
		if errors.Is(err, messaging.ErrInvalidSession) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Session not found or already inactive"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) ValidateChatSession(c *gin.Context) {
	userID, err := h.Chat.ValidateSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		if errors.Is(err, messaging.ErrInvalidSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Session invalid or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Session check failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID})
}

// EnsureChatUser resolves the chat account backing a clinic doctor or
// patient, creating it on first contact.
func (h *Handler) EnsureChatUser(c *gin.Context) {
	var req EnsureChatUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		userID string
		err    error
	)
	switch req.UserType {
	case models.UserTypeDoctor:
		userID, err = h.Chat.EnsureUserForDoctor(c.Request.Context(), req.UserID, req.FirstName, req.LastName)
	case models.UserTypePatient:
		userID, err = h.Chat.EnsureUserForPatient(c.Request.Context(), req.UserID, req.FirstName, req.LastName)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "user_type must be doctor or patient"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to ensure chat user", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": userID})
}

func (h *Handler) SearchChatUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Search query q is required"})
		return
	}
	userType := c.Query("user_type")
	if userType != "" && !validUserType(userType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "user_type must be doctor or patient"})
		return
	}

	users, err := h.Chat.SearchUsers(c.Request.Context(), query, userType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Search failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) OpenChatConversation(c *gin.Context) {
	var req OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversationID, err := h.Chat.GetOrCreateConversation(c.Request.Context(), req.Participant1, req.Participant2)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to open conversation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_id": conversationID})
}

func (h *Handler) GetChatConversations(c *gin.Context) {
	conversations, err := h.Chat.GetUserConversations(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to list conversations", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (h *Handler) GetChatUnreadCount(c *gin.Context) {
	count, err := h.Chat.GetUnreadCount(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count unread messages", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *Handler) UploadChatProfileImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "An image upload is required", "details": err.Error()})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read upload", "details": err.Error()})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read upload", "details": err.Error()})
		return
	}

	err = h.Chat.UploadProfileImage(c.Request.Context(), c.Param("user_id"), data, filepath.Base(fileHeader.Filename))
	if err != nil {
		if errors.Is(err, messaging.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Chat user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store profile image", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile image updated"})
}

func (h *Handler) GetChatMessages(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit < 1 {
		limit = 50
	}
	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil || skip < 0 {
		skip = 0
	}

	messages, err := h.Chat.GetConversationMessages(c.Request.Context(), c.Param("conversation_id"), limit, skip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *Handler) MarkChatMessagesRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marked, err := h.Chat.MarkMessagesAsRead(c.Request.Context(), c.Param("conversation_id"), req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mark messages read", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked_read": marked})
}

// SendChatMessage accepts JSON for text messages and multipart form data
// when an image rides along.
func (h *Handler) SendChatMessage(c *gin.Context) {
	var (
		senderID       string
		conversationID string
		text           string
		imageData      []byte
		imageFilename  string
	)

	if c.ContentType() == "multipart/form-data" {
		senderID = c.PostForm("sender_id")
		conversationID = c.PostForm("conversation_id")
		text = c.PostForm("message_text")
		if fileHeader, err := c.FormFile("image"); err == nil {
			src, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read upload", "details": err.Error()})
				return
			}
			defer src.Close()
			imageData, err = io.ReadAll(src)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to read upload", "details": err.Error()})
				return
			}
			imageFilename = filepath.Base(fileHeader.Filename)
		}
	} else {
		var req SendChatMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		senderID = req.SenderID
		conversationID = req.ConversationID
		text = req.MessageText
	}

	if senderID == "" || conversationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Both sender_id and conversation_id are required"})
		return
	}
	if text == "" && len(imageData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message text or an image is required"})
		return
	}

	messageID, err := h.Chat.SendMessage(c.Request.Context(), senderID, conversationID, text, imageData, imageFilename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Message sent successfully",
		"message_id": messageID,
	})
}
