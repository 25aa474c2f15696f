package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/store"
	"clinic-backend/internal/utils"
)

type LinkFileRequest struct {
	ObservationID int64 `json:"observation_id" binding:"required"`
}

// UploadFile stores a multipart upload whole in the database. Optional form
// fields observation_id and description attach context to the file.
func (h *Handler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A file upload is required", "details": err.Error()})
		return
	}

	var observationID *int64
	if raw := c.PostForm("observation_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid observation_id format"})
			return
		}
		observationID = &id
	}
	var description *string
	if raw := c.PostForm("description"); raw != "" {
		description = &raw
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

	// Browsers may send a full client-side path as the filename.
	filename := filepath.Base(fileHeader.Filename)
	fileType := utils.DetectFileType(filename)

	fileID, err := h.Store.StoreFile(c.Request.Context(), filename, fileType, data, observationID, description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to store file", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "File stored successfully",
		"file_id":        fileID,
		"filename":       filename,
		"file_type":      fileType,
		"file_size":      int64(len(data)),
		"formatted_size": utils.FormatFileSize(int64(len(data))),
	})
}

func (h *Handler) ListFiles(c *gin.Context) {
	files, err := h.Store.ListFiles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching files", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}

func (h *Handler) GetFileInfo(c *gin.Context) {
	fileID, ok := parseIDParam(c, "file_id")
	if !ok {
		return
	}
	file, err := h.Store.RetrieveFile(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching file", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, file)
}

// DownloadFile streams the stored bytes back unchanged under the original
// filename.
func (h *Handler) DownloadFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "file_id")
	if !ok {
		return
	}
	file, err := h.Store.RetrieveFile(c.Request.Context(), fileID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching file", "details": err.Error()})
		return
	}

	// The stored type may be a bare extension when MIME detection failed at
	// upload time; that is not servable as a content type.
	contentType := file.FileType
	if !strings.Contains(contentType, "/") {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, contentType, file.FileData)
}

func (h *Handler) DeleteFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "file_id")
	if !ok {
		return
	}
	if err := h.Store.DeleteFile(c.Request.Context(), fileID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete file", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

func (h *Handler) LinkFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "file_id")
	if !ok {
		return
	}
	var req LinkFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Store.LinkFileToObservation(c.Request.Context(), fileID, req.ObservationID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to link file", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "File linked to observation"})
}
