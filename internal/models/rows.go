package models

// PatientAppointment is the joined row shown to a patient: their appointment
// together with the doctor and department it belongs to.
type PatientAppointment struct {
	AppointmentID   int64  `json:"appointment_id"`
	Date            string `json:"date"`
	DoctorFirstName string `json:"doctor_first_name"`
	DoctorLastName  string `json:"doctor_last_name"`
	Department      string `json:"department"`
}

// DoctorAppointment is the joined row shown to a doctor: their appointment
// together with the patient it is for.
type DoctorAppointment struct {
	AppointmentID    int64  `json:"appointment_id"`
	Date             string `json:"date"`
	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
}
