package models

// Clinic defines the structure for clinic records. It is the root of the
// clinic -> department -> doctor hierarchy.
type Clinic struct {
	ID      int64  `json:"clinic_id" gorm:"column:clinic_id;primaryKey"`
	Name    string `json:"name" gorm:"size:255;not null"`
	Address string `json:"address" gorm:"size:255;not null"`
	Phone   string `json:"phone" gorm:"size:30;not null"`
	Email   string `json:"email" gorm:"size:100"`
}

// TableName maps the model to the singular table used by the schema.
func (Clinic) TableName() string { return "clinic" }
