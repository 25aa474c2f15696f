package models

// Patient defines the structure for patient records. DoctorID is the optional
// primary doctor; the many-to-many doctor relation goes through appointments.
type Patient struct {
	ID        int64   `json:"patient_id" gorm:"column:patient_id;primaryKey"`
	FirstName string  `json:"first_name" gorm:"size:255;not null"`
	LastName  string  `json:"last_name" gorm:"size:255;not null"`
	DoctorID  *int64  `json:"doctor_id,omitempty" gorm:"column:doctor_id;index"`
	Doctor    *Doctor `json:"-" gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Patient) TableName() string { return "patient" }
