package models

// Department defines the structure for department records.
type Department struct {
	ID       int64   `json:"department_id" gorm:"column:department_id;primaryKey"`
	Name     string  `json:"name" gorm:"size:255;not null"`
	ClinicID *int64  `json:"clinic_id" gorm:"column:clinic_id;index"`
	Clinic   *Clinic `json:"-" gorm:"foreignKey:ClinicID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Department) TableName() string { return "department" }
