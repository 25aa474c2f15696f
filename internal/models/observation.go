package models

// Observation defines the structure for observations recorded during an
// appointment.
type Observation struct {
	ID            int64        `json:"observation_id" gorm:"column:observation_id;primaryKey"`
	Type          string       `json:"type" gorm:"size:255"`
	Description   string       `json:"description" gorm:"type:text"`
	AppointmentID *int64       `json:"appointment_id" gorm:"column:appointment_id;index"`
	Appointment   *Appointment `json:"-" gorm:"foreignKey:AppointmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Observation) TableName() string { return "observation" }
