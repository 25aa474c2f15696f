// Package mysqlstore implements the clinic query facade on MySQL through
// GORM. Parent references live in foreign key columns with cascading
// delete and update rules.
package mysqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"clinic-backend/internal/models"
	"clinic-backend/internal/store"
	"clinic-backend/internal/utils"
)

// Compile-time check that Store satisfies the facade contract.
var _ store.ClinicStore = (*Store)(nil)

// Store is the MySQL-backed clinic store.
type Store struct {
	db *gorm.DB
}

// New creates a Store over an open GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) GetDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := s.db.WithContext(ctx).Order("name").Find(&departments).Error
	return departments, err
}

func (s *Store) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.db.WithContext(ctx).Order("first_name, last_name").Find(&doctors).Error
	return doctors, err
}

func (s *Store) GetDoctorsByDepartment(ctx context.Context, departmentID int64) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("first_name, last_name").
		Find(&doctors).Error
	return doctors, err
}

// GetPatientByName returns the first patient matching the exact name pair.
func (s *Store) GetPatientByName(ctx context.Context, firstName, lastName string) (*models.Patient, error) {
	var patient models.Patient
	err := s.db.WithContext(ctx).
		Where("first_name = ? AND last_name = ?", firstName, lastName).
		First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

func (s *Store) CreatePatient(ctx context.Context, firstName, lastName string, doctorID *int64) (int64, error) {
	patient := models.Patient{FirstName: firstName, LastName: lastName, DoctorID: doctorID}
	if err := s.db.WithContext(ctx).Create(&patient).Error; err != nil {
		return 0, err
	}
	return patient.ID, nil
}

func (s *Store) CreateAppointment(ctx context.Context, doctorID int64, date string, patientID int64) (int64, error) {
	appointment := models.Appointment{DoctorID: &doctorID, Date: date, PatientID: &patientID}
	if err := s.db.WithContext(ctx).Create(&appointment).Error; err != nil {
		return 0, err
	}
	return appointment.ID, nil
}

func (s *Store) GetAppointmentsForPatient(ctx context.Context, firstName, lastName string) ([]models.PatientAppointment, error) {
	var rows []models.PatientAppointment
	err := s.db.WithContext(ctx).
		Table("appointment AS a").
		Select("a.appointment_id, a.date, d.first_name AS doctor_first_name, d.last_name AS doctor_last_name, dept.name AS department").
		Joins("JOIN doctor d ON a.doctor_id = d.doctor_id").
		Joins("JOIN patient p ON a.patient_id = p.patient_id").
		Joins("JOIN department dept ON d.department_id = dept.department_id").
		Where("p.first_name = ? AND p.last_name = ?", firstName, lastName).
		Order("a.date").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) GetAppointmentsForDoctor(ctx context.Context, doctorID int64) ([]models.DoctorAppointment, error) {
	var rows []models.DoctorAppointment
	err := s.db.WithContext(ctx).
		Table("appointment AS a").
		Select("a.appointment_id, a.date, p.first_name AS patient_first_name, p.last_name AS patient_last_name").
		Joins("JOIN patient p ON a.patient_id = p.patient_id").
		Where("a.doctor_id = ?", doctorID).
		Order("a.date").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) CreateObservation(ctx context.Context, appointmentID int64, obsType, description string) (int64, error) {
	observation := models.Observation{Type: obsType, Description: description, AppointmentID: &appointmentID}
	if err := s.db.WithContext(ctx).Create(&observation).Error; err != nil {
		return 0, err
	}
	return observation.ID, nil
}

func (s *Store) CreateDiagnosis(ctx context.Context, observationID int64, description string) (int64, error) {
	diagnosis := models.Diagnosis{Description: description, ObservationID: &observationID}
	if err := s.db.WithContext(ctx).Create(&diagnosis).Error; err != nil {
		return 0, err
	}
	return diagnosis.ID, nil
}

func (s *Store) GetDoctorsForPatient(ctx context.Context, patientID int64) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.db.WithContext(ctx).
		Table("doctor AS d").
		Select("DISTINCT d.doctor_id, d.first_name, d.last_name").
		Joins("JOIN appointment a ON a.doctor_id = d.doctor_id").
		Where("a.patient_id = ?", patientID).
		Order("d.first_name, d.last_name").
		Scan(&doctors).Error
	return doctors, err
}

func (s *Store) GetPatientsForDoctor(ctx context.Context, doctorID int64) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Table("patient AS p").
		Select("DISTINCT p.patient_id, p.first_name, p.last_name").
		Joins("JOIN appointment a ON a.patient_id = p.patient_id").
		Where("a.doctor_id = ?", doctorID).
		Order("p.first_name, p.last_name").
		Scan(&patients).Error
	return patients, err
}

// ResearchQuery runs a free-form read-only SQL statement. Only statements
// whose leading keyword is SELECT are allowed.
func (s *Store) ResearchQuery(ctx context.Context, statement string) ([]string, [][]interface{}, error) {
	if !utils.HasAllowedPrefix(statement, "select") {
		return nil, nil, fmt.Errorf("%w: only SELECT statements can run here", store.ErrStatementNotAllowed)
	}
	rows, err := s.db.WithContext(ctx).Raw(statement).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		// The driver hands text columns back as []byte.
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		out = append(out, values)
	}
	return columns, out, rows.Err()
}
