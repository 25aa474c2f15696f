package mysqlstore

import (
	"context"
	"fmt"
	"log"

	"clinic-backend/internal/models"
)

var seedClinics = []models.Clinic{
	{Name: "Sunshine Health Center", Address: "123 Wellness Ave", Phone: "+46701234567", Email: "contact@sunshine.com"},
	{Name: "Green Valley Clinic", Address: "456 Nature Rd", Phone: "+46707654321", Email: "info@greenvalley.com"},
}

// Dermatology appears twice; both entries get seeded as distinct rows.
var seedDepartments = []string{
	"Cardiology", "Pediatrics", "Emergency", "Internal medicine", "Surgery",
	"Obstetrics & Gynecology", "Orthopedics", "Neurology", "Oncology", "ENT",
	"Psychiatry", "Radiology", "Ophtalmology", "Laboratory", "Dermatology",
	"Dermatology", "Rehabilitation", "Nutrition", "Medical records",
	"Biomedical Engineering", "Nephrology", "Gastroenterology", "Pulmonology",
	"Urology", "Plastic Surgery",
}

// dept is the 1-based position in seedDepartments.
var seedDoctors = []struct {
	firstName, lastName string
	dept                int
}{
	{"Anna", "Johnson", 1}, {"Michael", "Chen", 1}, {"Reine", "Bergström", 1},
	{"Erik", "Andersson", 2}, {"Sarah", "Williams", 2},
	{"James", "Brown", 3}, {"Lisa", "Garcia", 3},
	{"Robert", "Davis", 4}, {"Maria", "Rodriguez", 4},
	{"David", "Miller", 5}, {"Jennifer", "Wilson", 5},
	{"Christopher", "Moore", 6}, {"Amanda", "Taylor", 6},
	{"Daniel", "Anderson", 7}, {"Jessica", "Thomas", 7},
	{"Datthew", "Jackson", 8}, {"Ashley", "White", 8},
	{"Andrew", "Harris", 9}, {"Samantha", "Martin", 9},
	{"Joshua", "Thompson", 10}, {"Nicole", "Garcia", 10},
	{"Kevin", "Martinez", 11}, {"Rachel", "Robinson", 11},
	{"Brian", "Clark", 12}, {"Lauren", "Rodriguez", 12},
	{"Ryan", "Lewis", 13}, {"Megan", "Lee", 13},
	{"Tyler", "Walker", 14}, {"Stephanie", "Hall", 14},
	{"Nathan", "Allen", 15}, {"Danielle", "Young", 15},
	{"Justin", "King", 16}, {"Michelle", "Wright", 16},
	{"Brandon", "Scott", 17}, {"Kimberly", "Torres", 17},
	{"Jacob", "Nguyen", 18}, {"Angela", "Hill", 18},
	{"Zachary", "Flores", 19}, {"Heather", "Green", 19},
	{"Aaron", "Adams", 20}, {"Rebecca", "Nelson", 20},
	{"Kyle", "Baker", 21}, {"Victoria", "Carter", 21},
	{"Ethan", "Mitchell", 22}, {"Christina", "Perez", 22},
	{"Noah", "Roberts", 23}, {"Kelly", "Turner", 23},
	{"Logan", "Phillips", 24}, {"Amy", "Campbell", 24},
}

// doctor and patient are 1-based positions in seedDoctors and the seeded
// patient list.
var seedAppointments = []struct {
	doctor  int
	date    string
	patient int
}{
	{1, "2024-01-15", 1},
	{2, "2024-01-16", 2},
	{1, "2024-01-17", 1},
	{2, "2024-01-18", 2},
}

var seedObservations = []struct {
	obsType     string
	description string
	appointment int
}{
	{"Physical Examination", "Patient shows signs of elevated blood pressure and irregular heartbeat", 1},
	{"Blood Test", "Complete blood count shows elevated white blood cell count", 1},
	{"Physical Examination", "Child shows normal growth patterns and healthy vital signs", 2},
	{"X-Ray", "Chest X-ray reveals clear lungs with no abnormalities", 2},
	{"Physical Examination", "Follow-up examination shows improved blood pressure readings", 3},
	{"Blood Test", "Follow-up blood work shows normal white blood cell count", 3},
	{"Physical Examination", "Routine check-up shows excellent health status", 4},
}

var seedDiagnoses = []struct {
	description string
	observation int
}{
	{"Hypertension - Stage 1", 1},
	{"Possible infection - requires further monitoring", 2},
	{"Healthy child - no medical concerns", 3},
	{"Normal chest examination", 4},
	{"Blood pressure under control with medication", 5},
	{"Infection resolved - normal blood work", 6},
	{"Excellent health - no medical issues", 7},
}

// Bootstrap migrates the schema and seeds sample data when the database
// holds no departments yet.
func (s *Store) Bootstrap(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	err := db.AutoMigrate(
		&models.Clinic{},
		&models.Department{},
		&models.Doctor{},
		&models.Patient{},
		&models.Appointment{},
		&models.Observation{},
		&models.Diagnosis{},
		&models.MedicalFile{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	var count int64
	if err := db.Model(&models.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.seed(ctx)
}

func (s *Store) seed(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	clinicIDs := make([]int64, 0, len(seedClinics))
	for _, c := range seedClinics {
		clinic := c
		if err := db.Create(&clinic).Error; err != nil {
			return fmt.Errorf("seed clinics: %w", err)
		}
		clinicIDs = append(clinicIDs, clinic.ID)
	}

	// Departments all belong to the first clinic.
	deptIDs := make([]int64, 0, len(seedDepartments))
	for _, name := range seedDepartments {
		department := models.Department{Name: name, ClinicID: &clinicIDs[0]}
		if err := db.Create(&department).Error; err != nil {
			return fmt.Errorf("seed departments: %w", err)
		}
		deptIDs = append(deptIDs, department.ID)
	}

	doctorIDs := make([]int64, 0, len(seedDoctors))
	for _, d := range seedDoctors {
		doctor := models.Doctor{FirstName: d.firstName, LastName: d.lastName, DepartmentID: &deptIDs[d.dept-1]}
		if err := db.Create(&doctor).Error; err != nil {
			return fmt.Errorf("seed doctors: %w", err)
		}
		doctorIDs = append(doctorIDs, doctor.ID)
	}

	patientIDs := make([]int64, 0, 2)
	for _, name := range [][2]string{{"Lars", "Nilsson"}, {"Maria", "Garcia"}} {
		patient := models.Patient{FirstName: name[0], LastName: name[1], DoctorID: &doctorIDs[0]}
		if err := db.Create(&patient).Error; err != nil {
			return fmt.Errorf("seed patients: %w", err)
		}
		patientIDs = append(patientIDs, patient.ID)
	}

	apptIDs := make([]int64, 0, len(seedAppointments))
	for _, a := range seedAppointments {
		appointment := models.Appointment{
			DoctorID:  &doctorIDs[a.doctor-1],
			Date:      a.date,
			PatientID: &patientIDs[a.patient-1],
		}
		if err := db.Create(&appointment).Error; err != nil {
			return fmt.Errorf("seed appointments: %w", err)
		}
		apptIDs = append(apptIDs, appointment.ID)
	}

	obsIDs := make([]int64, 0, len(seedObservations))
	for _, o := range seedObservations {
		observation := models.Observation{
			Type:          o.obsType,
			Description:   o.description,
			AppointmentID: &apptIDs[o.appointment-1],
		}
		if err := db.Create(&observation).Error; err != nil {
			return fmt.Errorf("seed observations: %w", err)
		}
		obsIDs = append(obsIDs, observation.ID)
	}

	for _, d := range seedDiagnoses {
		diagnosis := models.Diagnosis{Description: d.description, ObservationID: &obsIDs[d.observation-1]}
		if err := db.Create(&diagnosis).Error; err != nil {
			return fmt.Errorf("seed diagnoses: %w", err)
		}
	}

	log.Printf("mysql sample data inserted")
	return nil
}
