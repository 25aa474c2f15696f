package mysqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"clinic-backend/internal/models"
	"clinic-backend/internal/store"
)

const fileInfoColumns = "file_id AS id, filename, file_type, file_size, upload_date, observation_id, description"

// StoreFile persists the file content as a LONGBLOB row, optionally attached
// to an observation.
func (s *Store) StoreFile(ctx context.Context, filename, fileType string, data []byte, observationID *int64, description *string) (int64, error) {
	file := models.MedicalFile{
		Filename:      filename,
		FileType:      fileType,
		FileSize:      int64(len(data)),
		FileData:      data,
		UploadDate:    time.Now().Format("2006-01-02 15:04:05"),
		ObservationID: observationID,
		Description:   description,
	}
	if err := s.db.WithContext(ctx).Create(&file).Error; err != nil {
		return 0, err
	}
	return file.ID, nil
}

// RetrieveFile loads a full file row including its content.
func (s *Store) RetrieveFile(ctx context.Context, fileID int64) (*models.MedicalFile, error) {
	var file models.MedicalFile
	err := s.db.WithContext(ctx).Where("file_id = ?", fileID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &file, nil
}

// ListFiles returns file metadata without content, newest upload first.
func (s *Store) ListFiles(ctx context.Context) ([]models.MedicalFileInfo, error) {
	var infos []models.MedicalFileInfo
	err := s.db.WithContext(ctx).
		Model(&models.MedicalFile{}).
		Select(fileInfoColumns).
		Order("upload_date DESC").
		Scan(&infos).Error
	return infos, err
}

// GetFilesByObservation returns metadata for files attached to the
// observation, newest upload first.
func (s *Store) GetFilesByObservation(ctx context.Context, observationID int64) ([]models.MedicalFileInfo, error) {
	var infos []models.MedicalFileInfo
	err := s.db.WithContext(ctx).
		Model(&models.MedicalFile{}).
		Select(fileInfoColumns).
		Where("observation_id = ?", observationID).
		Order("upload_date DESC").
		Scan(&infos).Error
	return infos, err
}

// DeleteFile removes the file row.
func (s *Store) DeleteFile(ctx context.Context, fileID int64) error {
	result := s.db.WithContext(ctx).Where("file_id = ?", fileID).Delete(&models.MedicalFile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// LinkFileToObservation attaches a stored file to an observation.
func (s *Store) LinkFileToObservation(ctx context.Context, fileID, observationID int64) error {
	var file models.MedicalFile
	err := s.db.WithContext(ctx).Select("file_id").Where("file_id = ?", fileID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).
		Model(&models.MedicalFile{}).
		Where("file_id = ?", fileID).
		Update("observation_id", observationID).Error
}
