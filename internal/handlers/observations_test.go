package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-backend/internal/models"
	"clinic-backend/internal/store"
)

func TestCreateObservationReturnsID(t *testing.T) {
	mockStore := &MockClinicStore{
		CreateObservationFunc: func(ctx context.Context, appointmentID int64, obsType, description string) (int64, error) {
			assert.Equal(t, int64(2), appointmentID)
			assert.Equal(t, "General", obsType)
			assert.Equal(t, "Elevated blood pressure", description)
			return 8, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, jsonRequest(http.MethodPost, "/observations",
		`{"appointment_id": 2, "type": "General", "description": "Elevated blood pressure"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(8), resp["observation_id"])
}

func TestCreateObservationRequiresFields(t *testing.T) {
	r := newTestRouter(&MockClinicStore{}, &MockMessenger{})

	w := serve(r, jsonRequest(http.MethodPost, "/observations",
		`{"appointment_id": 2, "description": "no type given"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDiagnosisReturnsID(t *testing.T) {
	mockStore := &MockClinicStore{
		CreateDiagnosisFunc: func(ctx context.Context, observationID int64, description string) (int64, error) {
			assert.Equal(t, int64(8), observationID)
			return 15, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, jsonRequest(http.MethodPost, "/diagnoses",
		`{"observation_id": 8, "description": "Hypertension stage 1"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(15), resp["diagnosis_id"])
}

func TestGetObservationFilesListsAttached(t *testing.T) {
	obsID := int64(8)
	mockStore := &MockClinicStore{
		GetFilesByObservationFunc: func(ctx context.Context, observationID int64) ([]models.MedicalFileInfo, error) {
			assert.Equal(t, int64(8), observationID)
			return []models.MedicalFileInfo{
				{ID: 1, Filename: "scan.png", FileType: "image/png", ObservationID: &obsID},
			}, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, getRequest("/observations/8/files"))

	assert.Equal(t, http.StatusOK, w.Code)
	var rows []models.MedicalFileInfo
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "scan.png", rows[0].Filename)
}

func TestRunResearchQueryRejectsWrites(t *testing.T) {
	mockStore := &MockClinicStore{
		ResearchQueryFunc: func(ctx context.Context, statement string) ([]string, [][]interface{}, error) {
			return nil, nil, fmt.Errorf("%w: only SELECT statements can run here", store.ErrStatementNotAllowed)
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, jsonRequest(http.MethodPost, "/research/query",
		`{"statement": "DROP TABLE patient"}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Statement not allowed")
}

func TestRunResearchQueryReturnsTable(t *testing.T) {
	mockStore := &MockClinicStore{
		ResearchQueryFunc: func(ctx context.Context, statement string) ([]string, [][]interface{}, error) {
			assert.Equal(t, "SELECT name, COUNT(*) FROM department GROUP BY name", statement)
			return []string{"name", "count"}, [][]interface{}{{"Cardiology", int64(2)}, {"Neurology", int64(1)}}, nil
		},
	}
	r := newTestRouter(mockStore, &MockMessenger{})

	w := serve(r, jsonRequest(http.MethodPost, "/research/query",
		`{"statement": "SELECT name, COUNT(*) FROM department GROUP BY name"}`))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Columns  []string        `json:"columns"`
		Rows     [][]interface{} `json:"rows"`
		RowCount int             `json:"row_count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"name", "count"}, resp.Columns)
	assert.Equal(t, 2, resp.RowCount)
	assert.Len(t, resp.Rows, 2)
}

func TestRunResearchQueryRequiresStatement(t *testing.T) {
	r := newTestRouter(&MockClinicStore{}, &MockMessenger{})

	w := serve(r, jsonRequest(http.MethodPost, "/research/query", `{}`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
