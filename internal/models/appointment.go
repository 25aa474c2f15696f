package models

// Appointment links one doctor and one patient at a date. Uniqueness of
// (doctor, patient, date) is not enforced.
type Appointment struct {
	ID        int64    `json:"appointment_id" gorm:"column:appointment_id;primaryKey"`
	DoctorID  *int64   `json:"doctor_id" gorm:"column:doctor_id;index"`
	Date      string   `json:"date" gorm:"type:date"`
	PatientID *int64   `json:"patient_id" gorm:"column:patient_id;index"`
	Doctor    *Doctor  `json:"-" gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Patient   *Patient `json:"-" gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Appointment) TableName() string { return "appointment" }
