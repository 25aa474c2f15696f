package models

// Doctor defines the structure for doctor records.
// DepartmentID is nil in the graph variant, where membership is a relationship.
type Doctor struct {
	ID           int64       `json:"doctor_id" gorm:"column:doctor_id;primaryKey"`
	FirstName    string      `json:"first_name" gorm:"size:255;not null"`
	LastName     string      `json:"last_name" gorm:"size:255;not null"`
	DepartmentID *int64      `json:"department_id,omitempty" gorm:"column:department_id;index"`
	Department   *Department `json:"-" gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Doctor) TableName() string { return "doctor" }
