package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-backend/internal/models"
)

func TestHealthReportsService(t *testing.T) {
	r := newTestRouter(&MockClinicStore{}, &MockMessenger{})

	w := serve(r, getRequest("/health"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), "clinic-backend")
}

func TestGetDepartmentsListsAll(t *testing.T) {
	clinicID := int64(1)
	mockStore := &MockClinicStore{
		GetDepartmentsFunc: func(ctx context.Context) ([]models.Department, error) {
			return []models.Department{
				{ID: 3, Name: "Cardiology", ClinicID: &clinicID},
				{ID: 7, Name: "Neurology", ClinicID: &clinicID},
			}, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, getRequest("/departments"))

	assert.Equal(t, http.StatusOK, w.Code)
	var departments []models.Department
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &departments))
	assert.Len(t, departments, 2)
	assert.Equal(t, "Cardiology", departments[0].Name)
}

func TestGetDepartmentsDatabaseError(t *testing.T) {
	mockStore := &MockClinicStore{
		GetDepartmentsFunc: func(ctx context.Context) ([]models.Department, error) {
			return nil, errors.New("connection refused")
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, getRequest("/departments"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestGetDoctorsByDepartmentRejectsBadID(t *testing.T) {
	r := newTestRouter(&MockClinicStore{}, &MockMessenger{})

	w := serve(r, getRequest("/departments/zero/doctors"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid department_id format")
}

func TestGetDoctorsByDepartmentFiltersByID(t *testing.T) {
	deptID := int64(3)
	mockStore := &MockClinicStore{
		GetDoctorsByDepartmentFunc: func(ctx context.Context, departmentID int64) ([]models.Doctor, error) {
			assert.Equal(t, int64(3), departmentID)
			return []models.Doctor{{ID: 5, FirstName: "Anna", LastName: "Johnson", DepartmentID: &deptID}}, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, getRequest("/departments/3/doctors"))

	assert.Equal(t, http.StatusOK, w.Code)
	var doctors []models.Doctor
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	assert.Len(t, doctors, 1)
	assert.Equal(t, int64(5), doctors[0].ID)
}

func TestGetDoctorAppointmentsListsRows(t *testing.T) {
	mockStore := &MockClinicStore{
		GetAppointmentsForDoctorFunc: func(ctx context.Context, doctorID int64) ([]models.DoctorAppointment, error) {
			assert.Equal(t, int64(5), doctorID)
			return []models.DoctorAppointment{
				{AppointmentID: 1, Date: "2024-01-15", PatientFirstName: "Lars", PatientLastName: "Nilsson"},
			}, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, getRequest("/doctors/5/appointments"))

	assert.Equal(t, http.StatusOK, w.Code)
	var rows []models.DoctorAppointment
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "Lars", rows[0].PatientFirstName)
}

func TestGetDoctorPatientsListsTreated(t *testing.T) {
	mockStore := &MockClinicStore{
		GetPatientsForDoctorFunc: func(ctx context.Context, doctorID int64) ([]models.Patient, error) {
			return []models.Patient{{ID: 1, FirstName: "Lars", LastName: "Nilsson"}}, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, getRequest("/doctors/5/patients"))

	assert.Equal(t, http.StatusOK, w.Code)
	var patients []models.Patient
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &patients))
	assert.Len(t, patients, 1)
}

func TestGetPatientDoctorsListsTreating(t *testing.T) {
	mockStore := &MockClinicStore{
		GetDoctorsForPatientFunc: func(ctx context.Context, patientID int64) ([]models.Doctor, error) {
			assert.Equal(t, int64(1), patientID)
			return []models.Doctor{
				{ID: 5, FirstName: "Anna", LastName: "Johnson"},
				{ID: 6, FirstName: "Michael", LastName: "Williams"},
			}, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, getRequest("/patients/1/doctors"))

	assert.Equal(t, http.StatusOK, w.Code)
	var doctors []models.Doctor
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &doctors))
	assert.Len(t, doctors, 2)
}
