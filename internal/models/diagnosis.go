package models

// Diagnosis defines the structure for diagnoses derived from an observation.
type Diagnosis struct {
	ID            int64        `json:"diagnosis_id" gorm:"column:diagnosis_id;primaryKey"`
	Description   string       `json:"description" gorm:"type:text"`
	ObservationID *int64       `json:"observation_id" gorm:"column:observation_id;index"`
	Observation   *Observation `json:"-" gorm:"foreignKey:ObservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Diagnosis) TableName() string { return "diagnosis" }
