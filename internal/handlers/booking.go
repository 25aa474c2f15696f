package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/store"
	"clinic-backend/internal/utils"
)

// --- Structs for Request Binding ---

type CreatePatientRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	DoctorID  *int64 `json:"doctor_id"`
}

type BookAppointmentRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	DoctorID  int64  `json:"doctor_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

// --- Handler Functions ---

func (h *Handler) FindPatient(c *gin.Context) {
	firstName := c.Query("first_name")
	lastName := c.Query("last_name")
	if firstName == "" || lastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Both first_name and last_name are required"})
		return
	}

	patient, err := h.Store.GetPatientByName(c.Request.Context(), firstName, lastName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Patient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patientID, err := h.Store.CreatePatient(c.Request.Context(), req.FirstName, req.LastName, req.DoctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create patient", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Patient created successfully",
		"patient_id": patientID,
	})
}

// BookAppointment reuses the patient record when the exact name already
// exists and registers the patient otherwise. Double-booking the same
// doctor, patient and date is allowed.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.ValidateDate(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be in YYYY-MM-DD format"})
		return
	}

	ctx := c.Request.Context()
	var patientID int64
	patientCreated := false

	patient, err := h.Store.GetPatientByName(ctx, req.FirstName, req.LastName)
	switch {
	case err == nil:
		patientID = patient.ID
	case errors.Is(err, store.ErrNotFound):
		patientID, err = h.Store.CreatePatient(ctx, req.FirstName, req.LastName, &req.DoctorID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create patient", "details": err.Error()})
			return
		}
		patientCreated = true
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error", "details": err.Error()})
		return
	}

	appointmentID, err := h.Store.CreateAppointment(ctx, req.DoctorID, req.Date, patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to book appointment", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         "Appointment booked successfully",
		"appointment_id":  appointmentID,
		"patient_id":      patientID,
		"patient_created": patientCreated,
	})
}

func (h *Handler) GetPatientAppointments(c *gin.Context) {
	firstName := c.Query("first_name")
	lastName := c.Query("last_name")
	if firstName == "" || lastName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Both first_name and last_name are required"})
		return
	}

	appointments, err := h.Store.GetAppointmentsForPatient(c.Request.Context(), firstName, lastName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching appointments", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appointments)
}
