package neostore

import (
	"context"
	"fmt"
	"log"
)

var constraintStatements = []string{
	"CREATE CONSTRAINT IF NOT EXISTS FOR (c:Clinic) REQUIRE c.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (d:Department) REQUIRE d.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (d:Doctor) REQUIRE d.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Patient) REQUIRE p.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Appointment) REQUIRE a.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (o:Observation) REQUIRE o.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (x:Diagnosis) REQUIRE x.id IS UNIQUE",
	"CREATE CONSTRAINT IF NOT EXISTS FOR (f:MedicalFile) REQUIRE f.id IS UNIQUE",
}

var seedDepartments = []string{
	"Cardiology", "Pediatrics", "Emergency", "Internal medicine", "Surgery",
	"Obstetrics & Gynecology", "Orthopedics", "Neurology", "Oncology", "ENT",
	"Psychiatry", "Radiology", "Ophtalmology", "Laboratory", "Dermatology",
	"Rehabilitation", "Nutrition", "Medical records", "Biomedical Engineering",
	"Nephrology", "Gastroenterology", "Pulmonology", "Urology", "Plastic Surgery",
}

var seedDoctorNames = [][2]string{
	{"Anna", "Johnson"}, {"Michael", "Chen"}, {"Reine", "Bergström"}, {"Erik", "Andersson"},
	{"Sarah", "Williams"}, {"James", "Brown"}, {"Lisa", "Garcia"}, {"Robert", "Davis"},
	{"Maria", "Rodriguez"}, {"David", "Miller"}, {"Jennifer", "Wilson"}, {"Christopher", "Moore"},
	{"Amanda", "Taylor"}, {"Daniel", "Anderson"}, {"Jessica", "Thomas"}, {"Datthew", "Jackson"},
	{"Ashley", "White"}, {"Andrew", "Harris"}, {"Samantha", "Martin"}, {"Joshua", "Thompson"},
	{"Nicole", "Garcia"}, {"Kevin", "Martinez"}, {"Rachel", "Robinson"}, {"Brian", "Clark"},
	{"Lauren", "Rodriguez"}, {"Ryan", "Lewis"}, {"Megan", "Lee"}, {"Tyler", "Walker"},
	{"Stephanie", "Hall"}, {"Nathan", "Allen"}, {"Danielle", "Young"}, {"Justin", "King"},
	{"Michelle", "Wright"}, {"Brandon", "Scott"}, {"Kimberly", "Torres"}, {"Jacob", "Nguyen"},
	{"Angela", "Hill"}, {"Zachary", "Flores"}, {"Heather", "Green"}, {"Aaron", "Adams"},
	{"Rebecca", "Nelson"}, {"Kyle", "Baker"}, {"Victoria", "Carter"}, {"Ethan", "Mitchell"},
	{"Christina", "Perez"}, {"Noah", "Roberts"}, {"Kelly", "Turner"}, {"Logan", "Phillips"},
	{"Amy", "Campbell"},
}

// Bootstrap ensures uniqueness constraints and the id counter exist, then
// seeds sample data when the graph holds no departments yet.
func (s *Store) Bootstrap(ctx context.Context) error {
	for _, stmt := range constraintStatements {
		if _, err := s.runner.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("ensure constraint: %w", err)
		}
	}
	_, err := s.runner.Run(ctx,
		"MERGE (ctr:Counter {name:$name}) "+
			"ON CREATE SET ctr.clinic=1, ctr.department=1, ctr.doctor=1, ctr.patient=1, "+
			"ctr.appointment=1, ctr.observation=1, ctr.diagnosis=1, ctr.medicalfile=1",
		map[string]interface{}{"name": counterName})
	if err != nil {
		return fmt.Errorf("ensure id counter: %w", err)
	}

	departments, err := s.GetDepartments(ctx)
	if err != nil {
		return err
	}
	if len(departments) > 0 {
		return nil
	}
	return s.seed(ctx)
}

func (s *Store) seed(ctx context.Context) error {
	clinics := []struct {
		name, address, phone, email string
	}{
		{"Sunshine Health Center", "123 Wellness Ave", "+46701234567", "contact@sunshine.com"},
		{"Green Valley Clinic", "456 Nature Rd", "+46707654321", "info@greenvalley.com"},
	}
	clinicIDs := make([]int64, 0, len(clinics))
	for _, c := range clinics {
		id, err := s.NextID(ctx, LabelClinic)
		if err != nil {
			return err
		}
		clinicIDs = append(clinicIDs, id)
		_, err = s.runner.Run(ctx,
			"CREATE (:Clinic {id:$id, name:$name, address:$address, phone:$phone, email:$email})",
			map[string]interface{}{"id": id, "name": c.name, "address": c.address, "phone": c.phone, "email": c.email})
		if err != nil {
			return fmt.Errorf("seed clinics: %w", err)
		}
	}

	// Departments all hang off the first clinic.
	deptIDs := make([]int64, 0, len(seedDepartments))
	for _, name := range seedDepartments {
		id, err := s.NextID(ctx, LabelDepartment)
		if err != nil {
			return err
		}
		deptIDs = append(deptIDs, id)
		_, err = s.runner.Run(ctx,
			"MATCH (c:Clinic {id:$cid}) "+
				"CREATE (d:Department {id:$id, name:$name})<-[:HAS_DEPARTMENT]-(c)",
			map[string]interface{}{"cid": clinicIDs[0], "id": id, "name": name})
		if err != nil {
			return fmt.Errorf("seed departments: %w", err)
		}
	}

	// Two doctors per department until the roster runs out.
	doctorIDs := make([]int64, 0, len(seedDoctorNames))
	idx := 0
	for _, deptID := range deptIDs {
		for i := 0; i < 2 && idx < len(seedDoctorNames); i++ {
			name := seedDoctorNames[idx]
			idx++
			id, err := s.NextID(ctx, LabelDoctor)
			if err != nil {
				return err
			}
			doctorIDs = append(doctorIDs, id)
			_, err = s.runner.Run(ctx,
				"MATCH (d:Department {id:$did}) "+
					"CREATE (doc:Doctor {id:$id, first_name:$fn, last_name:$ln})<-[:HAS_DOCTOR]-(d)",
				map[string]interface{}{"did": deptID, "id": id, "fn": name[0], "ln": name[1]})
			if err != nil {
				return fmt.Errorf("seed doctors: %w", err)
			}
		}
	}

	p1, err := s.CreatePatient(ctx, "Lars", "Nilsson", &doctorIDs[0])
	if err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}
	p2, err := s.CreatePatient(ctx, "Maria", "Garcia", &doctorIDs[0])
	if err != nil {
		return fmt.Errorf("seed patients: %w", err)
	}

	appointments := []struct {
		doctorID  int64
		patientID int64
		date      string
	}{
		{doctorIDs[0], p1, "2024-01-15"},
		{doctorIDs[1], p2, "2024-01-16"},
		{doctorIDs[0], p1, "2024-01-17"},
		{doctorIDs[1], p2, "2024-01-18"},
	}
	apptIDs := make([]int64, 0, len(appointments))
	for _, a := range appointments {
		id, err := s.CreateAppointment(ctx, a.doctorID, a.date, a.patientID)
		if err != nil {
			return fmt.Errorf("seed appointments: %w", err)
		}
		apptIDs = append(apptIDs, id)
	}

	observations := []struct {
		appt        int
		obsType     string
		description string
	}{
		{0, "Physical Examination", "Patient shows signs of elevated blood pressure and irregular heartbeat"},
		{0, "Blood Test", "Complete blood count shows elevated white blood cell count"},
		{1, "Physical Examination", "Child shows normal growth patterns and healthy vital signs"},
		{1, "X-Ray", "Chest X-ray reveals clear lungs with no abnormalities"},
		{2, "Physical Examination", "Follow-up examination shows improved blood pressure readings"},
		{2, "Blood Test", "Follow-up blood work shows normal white blood cell count"},
		{3, "Physical Examination", "Routine check-up shows excellent health status"},
	}
	obsIDs := make([]int64, 0, len(observations))
	for _, o := range observations {
		id, err := s.CreateObservation(ctx, apptIDs[o.appt], o.obsType, o.description)
		if err != nil {
			return fmt.Errorf("seed observations: %w", err)
		}
		obsIDs = append(obsIDs, id)
	}

	diagnoses := []struct {
		obs         int
		description string
	}{
		{0, "Hypertension - Stage 1"},
		{1, "Possible infection - requires further monitoring"},
		{2, "Healthy child - no medical concerns"},
		{3, "Normal chest examination"},
		{4, "Blood pressure under control with medication"},
		{5, "Infection resolved - normal blood work"},
		{6, "Excellent health - no medical issues"},
	}
	for _, d := range diagnoses {
		if _, err := s.CreateDiagnosis(ctx, obsIDs[d.obs], d.description); err != nil {
			return fmt.Errorf("seed diagnoses: %w", err)
		}
	}

	log.Printf("neo4j sample data inserted")
	return nil
}
