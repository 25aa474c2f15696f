package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDepartments(c *gin.Context) {
	departments, err := h.Store.GetDepartments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching departments", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, departments)
}

func (h *Handler) GetDoctors(c *gin.Context) {
	doctors, err := h.Store.GetDoctors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching doctors", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctorsByDepartment(c *gin.Context) {
	departmentID, ok := parseIDParam(c, "department_id")
	if !ok {
		return
	}
	doctors, err := h.Store.GetDoctorsByDepartment(c.Request.Context(), departmentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching doctors", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *Handler) GetDoctorAppointments(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}
	appointments, err := h.Store.GetAppointmentsForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching appointments", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

func (h *Handler) GetDoctorPatients(c *gin.Context) {
	doctorID, ok := parseIDParam(c, "doctor_id")
	if !ok {
		return
	}
	patients, err := h.Store.GetPatientsForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching patients", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) GetPatientDoctors(c *gin.Context) {
	patientID, ok := parseIDParam(c, "patient_id")
	if !ok {
		return
	}
	doctors, err := h.Store.GetDoctorsForPatient(c.Request.Context(), patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error fetching doctors", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doctors)
}
