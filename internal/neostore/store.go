// Package neostore implements the clinic query facade on Neo4j. Domain nodes
// carry integer ids handed out by a shared counter node; hierarchy is
// expressed with HAS_DEPARTMENT / HAS_DOCTOR / TREATS / HAS_APPOINTMENT /
// HAS_OBSERVATION / HAS_DIAGNOSIS / HAS_FILE relationships.
package neostore

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"clinic-backend/internal/database"
	"clinic-backend/internal/models"
	"clinic-backend/internal/store"
	"clinic-backend/internal/utils"
)

// Compile-time check that Store satisfies the facade contract.
var _ store.ClinicStore = (*Store)(nil)

// Store is the Neo4j-backed clinic store.
type Store struct {
	runner database.Neo4jRunner
}

// New creates a Store over the given query runner.
func New(runner database.Neo4jRunner) *Store {
	return &Store{runner: runner}
}

// Close releases the runner's driver when it owns one.
func (s *Store) Close(ctx context.Context) error {
	if c, ok := s.runner.(interface{ Close(context.Context) error }); ok {
		return c.Close(ctx)
	}
	return nil
}

func (s *Store) GetDepartments(ctx context.Context) ([]models.Department, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (d:Department) RETURN d.id AS id, d.name AS name ORDER BY name", nil)
	if err != nil {
		return nil, err
	}
	departments := make([]models.Department, 0, len(result.Records))
	for _, rec := range result.Records {
		id, err := recordInt64(rec, "id")
		if err != nil {
			return nil, err
		}
		name, err := recordString(rec, "name")
		if err != nil {
			return nil, err
		}
		departments = append(departments, models.Department{ID: id, Name: name})
	}
	return departments, nil
}

func (s *Store) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (doc:Doctor) RETURN doc.id AS id, doc.first_name AS fn, doc.last_name AS ln ORDER BY fn, ln", nil)
	if err != nil {
		return nil, err
	}
	return scanDoctors(result.Records)
}

func (s *Store) GetDoctorsByDepartment(ctx context.Context, departmentID int64) ([]models.Doctor, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (:Department {id:$id})-[:HAS_DOCTOR]->(doc:Doctor) "+
			"RETURN doc.id AS id, doc.first_name AS fn, doc.last_name AS ln ORDER BY fn, ln",
		map[string]interface{}{"id": departmentID})
	if err != nil {
		return nil, err
	}
	return scanDoctors(result.Records)
}

// GetPatientByName returns the first patient matching the exact name pair.
func (s *Store) GetPatientByName(ctx context.Context, firstName, lastName string) (*models.Patient, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (p:Patient {first_name:$fn, last_name:$ln}) "+
			"RETURN p.id AS id, p.first_name AS fn, p.last_name AS ln",
		map[string]interface{}{"fn": firstName, "ln": lastName})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, store.ErrNotFound
	}
	rec := result.Records[0]
	id, err := recordInt64(rec, "id")
	if err != nil {
		return nil, err
	}
	return &models.Patient{ID: id, FirstName: firstName, LastName: lastName}, nil
}

func (s *Store) CreatePatient(ctx context.Context, firstName, lastName string, doctorID *int64) (int64, error) {
	pid, err := s.NextID(ctx, LabelPatient)
	if err != nil {
		return 0, err
	}
	_, err = s.runner.Run(ctx,
		"CREATE (:Patient {id:$id, first_name:$fn, last_name:$ln})",
		map[string]interface{}{"id": pid, "fn": firstName, "ln": lastName})
	if err != nil {
		return 0, err
	}
	if doctorID != nil {
		_, err = s.runner.Run(ctx,
			"MATCH (doc:Doctor {id:$did}), (p:Patient {id:$pid}) MERGE (doc)-[:TREATS]->(p)",
			map[string]interface{}{"did": *doctorID, "pid": pid})
		if err != nil {
			return 0, err
		}
	}
	return pid, nil
}

func (s *Store) CreateAppointment(ctx context.Context, doctorID int64, date string, patientID int64) (int64, error) {
	aid, err := s.NextID(ctx, LabelAppointment)
	if err != nil {
		return 0, err
	}
	_, err = s.runner.Run(ctx,
		"MATCH (doc:Doctor {id:$did}), (p:Patient {id:$pid}) "+
			"CREATE (a:Appointment {id:$aid, date:$date}) "+
			"MERGE (doc)-[:HAS_APPOINTMENT]->(a) "+
			"MERGE (p)-[:HAS_APPOINTMENT]->(a)",
		map[string]interface{}{"did": doctorID, "pid": patientID, "aid": aid, "date": date})
	if err != nil {
		return 0, err
	}
	return aid, nil
}

func (s *Store) GetAppointmentsForPatient(ctx context.Context, firstName, lastName string) ([]models.PatientAppointment, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (p:Patient {first_name:$fn, last_name:$ln})-[:HAS_APPOINTMENT]->(a:Appointment)<-[:HAS_APPOINTMENT]-(d:Doctor) "+
			"MATCH (d)<-[:HAS_DOCTOR]-(dept:Department) "+
			"RETURN a.id AS aid, a.date AS date, d.first_name AS dfn, d.last_name AS dln, dept.name AS dept "+
			"ORDER BY date",
		map[string]interface{}{"fn": firstName, "ln": lastName})
	if err != nil {
		return nil, err
	}
	appointments := make([]models.PatientAppointment, 0, len(result.Records))
	for _, rec := range result.Records {
		row, err := scanPatientAppointment(rec)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, row)
	}
	return appointments, nil
}

func (s *Store) GetAppointmentsForDoctor(ctx context.Context, doctorID int64) ([]models.DoctorAppointment, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (d:Doctor {id:$did})-[:HAS_APPOINTMENT]->(a:Appointment)<-[:HAS_APPOINTMENT]-(p:Patient) "+
			"RETURN a.id AS aid, a.date AS date, p.first_name AS pfn, p.last_name AS pln ORDER BY date",
		map[string]interface{}{"did": doctorID})
	if err != nil {
		return nil, err
	}
	appointments := make([]models.DoctorAppointment, 0, len(result.Records))
	for _, rec := range result.Records {
		aid, err := recordInt64(rec, "aid")
		if err != nil {
			return nil, err
		}
		date, err := recordString(rec, "date")
		if err != nil {
			return nil, err
		}
		pfn, err := recordString(rec, "pfn")
		if err != nil {
			return nil, err
		}
		pln, err := recordString(rec, "pln")
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, models.DoctorAppointment{
			AppointmentID:    aid,
			Date:             date,
			PatientFirstName: pfn,
			PatientLastName:  pln,
		})
	}
	return appointments, nil
}

func (s *Store) CreateObservation(ctx context.Context, appointmentID int64, obsType, description string) (int64, error) {
	oid, err := s.NextID(ctx, LabelObservation)
	if err != nil {
		return 0, err
	}
	_, err = s.runner.Run(ctx,
		"MATCH (a:Appointment {id:$aid}) "+
			"CREATE (o:Observation {id:$id, type:$type, description:$desc})<-[:HAS_OBSERVATION]-(a)",
		map[string]interface{}{"aid": appointmentID, "id": oid, "type": obsType, "desc": description})
	if err != nil {
		return 0, err
	}
	return oid, nil
}

func (s *Store) CreateDiagnosis(ctx context.Context, observationID int64, description string) (int64, error) {
	did, err := s.NextID(ctx, LabelDiagnosis)
	if err != nil {
		return 0, err
	}
	_, err = s.runner.Run(ctx,
		"MATCH (o:Observation {id:$oid}) "+
			"CREATE (x:Diagnosis {id:$id, description:$desc})<-[:HAS_DIAGNOSIS]-(o)",
		map[string]interface{}{"oid": observationID, "id": did, "desc": description})
	if err != nil {
		return 0, err
	}
	return did, nil
}

func (s *Store) GetDoctorsForPatient(ctx context.Context, patientID int64) ([]models.Doctor, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (p:Patient {id:$pid})-[:HAS_APPOINTMENT]->(:Appointment)<-[:HAS_APPOINTMENT]-(d:Doctor) "+
			"RETURN DISTINCT d.id AS id, d.first_name AS fn, d.last_name AS ln ORDER BY fn, ln",
		map[string]interface{}{"pid": patientID})
	if err != nil {
		return nil, err
	}
	return scanDoctors(result.Records)
}

func (s *Store) GetPatientsForDoctor(ctx context.Context, doctorID int64) ([]models.Patient, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (d:Doctor {id:$did})-[:HAS_APPOINTMENT]->(:Appointment)<-[:HAS_APPOINTMENT]-(p:Patient) "+
			"RETURN DISTINCT p.id AS id, p.first_name AS fn, p.last_name AS ln ORDER BY fn, ln",
		map[string]interface{}{"did": doctorID})
	if err != nil {
		return nil, err
	}
	patients := make([]models.Patient, 0, len(result.Records))
	for _, rec := range result.Records {
		id, err := recordInt64(rec, "id")
		if err != nil {
			return nil, err
		}
		fn, err := recordString(rec, "fn")
		if err != nil {
			return nil, err
		}
		ln, err := recordString(rec, "ln")
		if err != nil {
			return nil, err
		}
		patients = append(patients, models.Patient{ID: id, FirstName: fn, LastName: ln})
	}
	return patients, nil
}

// ResearchQuery runs a free-form read-only Cypher statement. Only statements
// whose leading keyword is MATCH or RETURN are allowed.
func (s *Store) ResearchQuery(ctx context.Context, statement string) ([]string, [][]interface{}, error) {
	if !utils.HasAllowedPrefix(statement, "match", "return") {
		return nil, nil, fmt.Errorf("%w: only MATCH or RETURN statements can run here", store.ErrStatementNotAllowed)
	}
	result, err := s.runner.Run(ctx, statement, nil)
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]interface{}, 0, len(result.Records))
	for _, rec := range result.Records {
		row := make([]interface{}, len(rec.Values))
		copy(row, rec.Values)
		rows = append(rows, row)
	}
	return result.Keys, rows, nil
}

// --- record scanning helpers ---

func scanDoctors(records []*neo4j.Record) ([]models.Doctor, error) {
	doctors := make([]models.Doctor, 0, len(records))
	for _, rec := range records {
		id, err := recordInt64(rec, "id")
		if err != nil {
			return nil, err
		}
		fn, err := recordString(rec, "fn")
		if err != nil {
			return nil, err
		}
		ln, err := recordString(rec, "ln")
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, models.Doctor{ID: id, FirstName: fn, LastName: ln})
	}
	return doctors, nil
}

func scanPatientAppointment(rec *neo4j.Record) (models.PatientAppointment, error) {
	var row models.PatientAppointment
	var err error
	if row.AppointmentID, err = recordInt64(rec, "aid"); err != nil {
		return row, err
	}
	if row.Date, err = recordString(rec, "date"); err != nil {
		return row, err
	}
	if row.DoctorFirstName, err = recordString(rec, "dfn"); err != nil {
		return row, err
	}
	if row.DoctorLastName, err = recordString(rec, "dln"); err != nil {
		return row, err
	}
	if row.Department, err = recordString(rec, "dept"); err != nil {
		return row, err
	}
	return row, nil
}

func recordValue(rec *neo4j.Record, key string) (interface{}, error) {
	v, ok := rec.Get(key)
	if !ok {
		return nil, fmt.Errorf("missing %q in query result", key)
	}
	return v, nil
}

func recordInt64(rec *neo4j.Record, key string) (int64, error) {
	v, err := recordValue(rec, key)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("result value %q is %T, expected int64", key, v)
	}
	return n, nil
}

// recordString treats a null property as the empty string.
func recordString(rec *neo4j.Record, key string) (string, error) {
	v, err := recordValue(rec, key)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("result value %q is %T, expected string", key, v)
	}
	return s, nil
}

func recordOptionalID(rec *neo4j.Record, key string) (*int64, error) {
	v, err := recordValue(rec, key)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	n, ok := v.(int64)
	if !ok {
		return nil, fmt.Errorf("result value %q is %T, expected int64", key, v)
	}
	return &n, nil
}
