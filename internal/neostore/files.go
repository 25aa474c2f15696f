package neostore

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"clinic-backend/internal/models"
	"clinic-backend/internal/store"
)

// StoreFile persists the file content on a MedicalFile node and optionally
// links it to an observation. The upload date is recorded in UTC.
func (s *Store) StoreFile(ctx context.Context, filename, fileType string, data []byte, observationID *int64, description *string) (int64, error) {
	fid, err := s.NextID(ctx, LabelMedicalFile)
	if err != nil {
		return 0, err
	}
	params := map[string]interface{}{
		"id":   fid,
		"fn":   filename,
		"ft":   fileType,
		"fs":   int64(len(data)),
		"data": data,
		"ud":   time.Now().UTC().Format(time.RFC3339),
	}
	if description != nil {
		params["desc"] = *description
	} else {
		params["desc"] = nil
	}
	_, err = s.runner.Run(ctx,
		"CREATE (mf:MedicalFile {id:$id, filename:$fn, file_type:$ft, file_size:$fs, "+
			"file_data:$data, upload_date:$ud, description:$desc})", params)
	if err != nil {
		return 0, fmt.Errorf("store file: %w", err)
	}
	if observationID != nil {
		if err := s.LinkFileToObservation(ctx, fid, *observationID); err != nil {
			return 0, err
		}
	}
	return fid, nil
}

// RetrieveFile loads a file node including its content. The owning
// observation, when linked, is resolved with a second lookup.
func (s *Store) RetrieveFile(ctx context.Context, fileID int64) (*models.MedicalFile, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (mf:MedicalFile {id:$id}) RETURN mf",
		map[string]interface{}{"id": fileID})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, store.ErrNotFound
	}
	v, err := recordValue(result.Records[0], "mf")
	if err != nil {
		return nil, err
	}
	node, ok := v.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("result value \"mf\" is %T, expected node", v)
	}
	file := fileFromNode(node)

	obs, err := s.runner.Run(ctx,
		"MATCH (o:Observation)-[:HAS_FILE]->(mf:MedicalFile {id:$id}) RETURN o.id AS oid",
		map[string]interface{}{"id": fileID})
	if err != nil {
		return nil, err
	}
	if len(obs.Records) > 0 {
		oid, err := recordOptionalID(obs.Records[0], "oid")
		if err != nil {
			return nil, err
		}
		file.ObservationID = oid
	}
	return file, nil
}

// ListFiles returns file metadata without content, newest upload first.
func (s *Store) ListFiles(ctx context.Context) ([]models.MedicalFileInfo, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (mf:MedicalFile) "+
			"OPTIONAL MATCH (o:Observation)-[:HAS_FILE]->(mf) "+
			"RETURN mf.id AS id, mf.filename AS filename, mf.file_type AS file_type, "+
			"mf.file_size AS file_size, mf.upload_date AS upload_date, "+
			"mf.description AS description, o.id AS oid "+
			"ORDER BY mf.upload_date DESC", nil)
	if err != nil {
		return nil, err
	}
	return scanFileInfos(result.Records)
}

// GetFilesByObservation returns metadata for files linked to the observation,
// newest upload first.
func (s *Store) GetFilesByObservation(ctx context.Context, observationID int64) ([]models.MedicalFileInfo, error) {
	result, err := s.runner.Run(ctx,
		"MATCH (o:Observation {id:$oid})-[:HAS_FILE]->(mf:MedicalFile) "+
			"RETURN mf.id AS id, mf.filename AS filename, mf.file_type AS file_type, "+
			"mf.file_size AS file_size, mf.upload_date AS upload_date, "+
			"mf.description AS description, o.id AS oid "+
			"ORDER BY mf.upload_date DESC",
		map[string]interface{}{"oid": observationID})
	if err != nil {
		return nil, err
	}
	return scanFileInfos(result.Records)
}

// DeleteFile detaches and deletes the file node.
func (s *Store) DeleteFile(ctx context.Context, fileID int64) error {
	result, err := s.runner.Run(ctx,
		"MATCH (mf:MedicalFile {id:$id}) DETACH DELETE mf RETURN 1",
		map[string]interface{}{"id": fileID})
	if err != nil {
		return err
	}
	if len(result.Records) == 0 {
		return store.ErrNotFound
	}
	return nil
}

// LinkFileToObservation attaches a stored file to an observation. MERGE keeps
// the link idempotent.
func (s *Store) LinkFileToObservation(ctx context.Context, fileID, observationID int64) error {
	_, err := s.runner.Run(ctx,
		"MATCH (o:Observation {id:$oid}), (mf:MedicalFile {id:$fid}) MERGE (o)-[:HAS_FILE]->(mf)",
		map[string]interface{}{"oid": observationID, "fid": fileID})
	return err
}

func scanFileInfos(records []*neo4j.Record) ([]models.MedicalFileInfo, error) {
	infos := make([]models.MedicalFileInfo, 0, len(records))
	for _, rec := range records {
		var info models.MedicalFileInfo
		var err error
		if info.ID, err = recordInt64(rec, "id"); err != nil {
			return nil, err
		}
		if info.Filename, err = recordString(rec, "filename"); err != nil {
			return nil, err
		}
		if info.FileType, err = recordString(rec, "file_type"); err != nil {
			return nil, err
		}
		if info.FileSize, err = recordInt64(rec, "file_size"); err != nil {
			return nil, err
		}
		if info.UploadDate, err = recordString(rec, "upload_date"); err != nil {
			return nil, err
		}
		if info.ObservationID, err = recordOptionalID(rec, "oid"); err != nil {
			return nil, err
		}
		desc, err := recordValue(rec, "description")
		if err != nil {
			return nil, err
		}
		if str, ok := desc.(string); ok {
			info.Description = &str
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func fileFromNode(node neo4j.Node) *models.MedicalFile {
	file := &models.MedicalFile{
		ID:         nodeInt64(node, "id"),
		Filename:   nodeString(node, "filename"),
		FileType:   nodeString(node, "file_type"),
		FileSize:   nodeInt64(node, "file_size"),
		FileData:   nodeBytes(node, "file_data"),
		UploadDate: nodeString(node, "upload_date"),
	}
	if desc, ok := node.Props["description"].(string); ok {
		file.Description = &desc
	}
	return file
}

func nodeString(node neo4j.Node, key string) string {
	v, _ := node.Props[key].(string)
	return v
}

func nodeInt64(node neo4j.Node, key string) int64 {
	v, _ := node.Props[key].(int64)
	return v
}

func nodeBytes(node neo4j.Node, key string) []byte {
	v, _ := node.Props[key].([]byte)
	return v
}
