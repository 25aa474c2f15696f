// Package store defines the clinic query facade implemented by each backing
// store variant. Every operation is a single parameterized read or write;
// nothing here retries or spans statements.
package store

import (
	"context"
	"errors"

	"clinic-backend/internal/models"
)

// ErrNotFound is returned by lookups that match no record. Callers surface it
// as an empty result, not a failure.
var ErrNotFound = errors.New("record not found")

// ErrStatementNotAllowed is returned when a research statement fails the
// read-only guard before reaching the database.
var ErrStatementNotAllowed = errors.New("statement not allowed")

// ClinicStore is the domain query facade shared by the MySQL and Neo4j
// variants.
type ClinicStore interface {
	// Bootstrap makes the schema exist and inserts the fixture data set when
	// the store holds no data yet. Safe to call on every startup.
	Bootstrap(ctx context.Context) error

	GetDepartments(ctx context.Context) ([]models.Department, error)
	GetDoctors(ctx context.Context) ([]models.Doctor, error)
	GetDoctorsByDepartment(ctx context.Context, departmentID int64) ([]models.Doctor, error)

	// GetPatientByName matches on exact first and last name and returns the
	// first match only; duplicates are not disambiguated.
	GetPatientByName(ctx context.Context, firstName, lastName string) (*models.Patient, error)
	CreatePatient(ctx context.Context, firstName, lastName string, doctorID *int64) (int64, error)

	// CreateAppointment accepts any date string and performs no overlap or
	// availability checks; double-booking is allowed.
	CreateAppointment(ctx context.Context, doctorID int64, date string, patientID int64) (int64, error)
	GetAppointmentsForPatient(ctx context.Context, firstName, lastName string) ([]models.PatientAppointment, error)
	GetAppointmentsForDoctor(ctx context.Context, doctorID int64) ([]models.DoctorAppointment, error)

	CreateObservation(ctx context.Context, appointmentID int64, obsType, description string) (int64, error)
	CreateDiagnosis(ctx context.Context, observationID int64, description string) (int64, error)

	StoreFile(ctx context.Context, filename, fileType string, data []byte, observationID *int64, description *string) (int64, error)
	RetrieveFile(ctx context.Context, fileID int64) (*models.MedicalFile, error)
	ListFiles(ctx context.Context) ([]models.MedicalFileInfo, error)
	GetFilesByObservation(ctx context.Context, observationID int64) ([]models.MedicalFileInfo, error)
	DeleteFile(ctx context.Context, fileID int64) error
	LinkFileToObservation(ctx context.Context, fileID, observationID int64) error

	GetDoctorsForPatient(ctx context.Context, patientID int64) ([]models.Doctor, error)
	GetPatientsForDoctor(ctx context.Context, doctorID int64) ([]models.Patient, error)

	// ResearchQuery runs a free-form read statement after checking it against
	// the store's allow-listed statement prefixes. Only the leading keyword
	// is checked.
	ResearchQuery(ctx context.Context, statement string) ([]string, [][]interface{}, error)

	Close(ctx context.Context) error
}
