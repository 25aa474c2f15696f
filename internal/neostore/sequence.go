package neostore

import (
	"context"
	"fmt"
)

// Node labels whose ids come out of the shared counter.
const (
	LabelClinic      = "Clinic"
	LabelDepartment  = "Department"
	LabelDoctor      = "Doctor"
	LabelPatient     = "Patient"
	LabelAppointment = "Appointment"
	LabelObservation = "Observation"
	LabelDiagnosis   = "Diagnosis"
	LabelMedicalFile = "MedicalFile"
)

const counterName = "global_ids"

// counterFields maps a node label to its field on the counter node.
var counterFields = map[string]string{
	LabelClinic:      "clinic",
	LabelDepartment:  "department",
	LabelDoctor:      "doctor",
	LabelPatient:     "patient",
	LabelAppointment: "appointment",
	LabelObservation: "observation",
	LabelDiagnosis:   "diagnosis",
	LabelMedicalFile: "medicalfile",
}

// NextID reserves the next id for the given label. Read and increment happen
// in one statement so concurrent callers never see the same value; a missing
// field starts the sequence at 1.
func (s *Store) NextID(ctx context.Context, label string) (int64, error) {
	field, ok := counterFields[label]
	if !ok {
		return 0, fmt.Errorf("no id counter for label %q", label)
	}
	query := fmt.Sprintf(
		"MATCH (ctr:Counter {name:'%s'}) "+
			"WITH ctr, ctr.%s AS current "+
			"SET ctr.%s = coalesce(current, 1) + 1 "+
			"RETURN coalesce(current, 1) AS id",
		counterName, field, field)
	result, err := s.runner.Run(ctx, query, nil)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %w", label, err)
	}
	if len(result.Records) == 0 {
		return 0, fmt.Errorf("counter node %q not found", counterName)
	}
	return recordInt64(result.Records[0], "id")
}
