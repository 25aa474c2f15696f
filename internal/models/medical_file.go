package models

// MedicalFile defines the structure for file blobs stored whole in the
// database. FileData is never serialized to JSON; downloads stream it raw.
type MedicalFile struct {
	ID            int64        `json:"file_id" gorm:"column:file_id;primaryKey"`
	Filename      string       `json:"filename" gorm:"size:255;not null"`
	FileType      string       `json:"file_type" gorm:"size:100;not null"`
	FileSize      int64        `json:"file_size" gorm:"not null"`
	FileData      []byte       `json:"-" gorm:"type:longblob;not null"`
	UploadDate    string       `json:"upload_date" gorm:"type:datetime;not null"`
	ObservationID *int64       `json:"observation_id" gorm:"column:observation_id;index"`
	Description   *string      `json:"description"`
	Observation   *Observation `json:"-" gorm:"foreignKey:ObservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (MedicalFile) TableName() string { return "medical_files" }

// MedicalFileInfo is the metadata-only row returned by file listings.
type MedicalFileInfo struct {
	ID            int64   `json:"file_id"`
	Filename      string  `json:"filename"`
	FileType      string  `json:"file_type"`
	FileSize      int64   `json:"file_size"`
	UploadDate    string  `json:"upload_date"`
	ObservationID *int64  `json:"observation_id"`
	Description   *string `json:"description,omitempty"`
}
