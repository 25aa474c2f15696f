package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type CreateObservationRequest struct {
	AppointmentID int64  `json:"appointment_id" binding:"required"`
	Type          string `json:"type" binding:"required"`
	Description   string `json:"description" binding:"required"`
}

type CreateDiagnosisRequest struct {
	ObservationID int64  `json:"observation_id" binding:"required"`
	Description   string `json:"description" binding:"required"`
}

// --- Handler Functions ---

func (h *Handler) CreateObservation(c *gin.Context) {
	var req CreateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	observationID, err := h.Store.CreateObservation(c.Request.Context(), req.AppointmentID, req.Type, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save observation", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Observation saved successfully",
		"observation_id": observationID,
	})
}

func (h *Handler) CreateDiagnosis(c *gin.Context) {
	var req CreateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	diagnosisID, err := h.Store.CreateDiagnosis(c.Request.Context(), req.ObservationID, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save diagnosis", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Diagnosis saved successfully",
		"diagnosis_id": diagnosisID,
	})
}

func (h *Handler) GetObservationFiles(c *gin.Context) {
	observationID, ok := parseIDParam(c, "observation_id")
	if !ok {
		return
	}
	files, err := h.Store.GetFilesByObservation(c.Request.Context(), observationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching files", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, files)
}
