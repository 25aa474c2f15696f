package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"clinic-backend/internal/messaging"
	"clinic-backend/internal/models"
	"clinic-backend/internal/store"
)

func newTestRouter(clinicStore store.ClinicStore, chat Messenger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(clinicStore, chat).RegisterRoutes(r)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func getRequest(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

// --- MockClinicStore ---
// Compile-time check to ensure MockClinicStore implements store.ClinicStore.
var _ store.ClinicStore = (*MockClinicStore)(nil)

// MockClinicStore is a mock implementation of store.ClinicStore.
type MockClinicStore struct {
	BootstrapFunc                func(ctx context.Context) error
	GetDepartmentsFunc           func(ctx context.Context) ([]models.Department, error)
	GetDoctorsFunc               func(ctx context.Context) ([]models.Doctor, error)
	GetDoctorsByDepartmentFunc   func(ctx context.Context, departmentID int64) ([]models.Doctor, error)
	GetPatientByNameFunc         func(ctx context.Context, firstName, lastName string) (*models.Patient, error)
	CreatePatientFunc            func(ctx context.Context, firstName, lastName string, doctorID *int64) (int64, error)
	CreateAppointmentFunc        func(ctx context.Context, doctorID int64, date string, patientID int64) (int64, error)
	GetAppointmentsForPatientFunc func(ctx context.Context, firstName, lastName string) ([]models.PatientAppointment, error)
	GetAppointmentsForDoctorFunc func(ctx context.Context, doctorID int64) ([]models.DoctorAppointment, error)
	CreateObservationFunc        func(ctx context.Context, appointmentID int64, obsType, description string) (int64, error)
	CreateDiagnosisFunc          func(ctx context.Context, observationID int64, description string) (int64, error)
	StoreFileFunc                func(ctx context.Context, filename, fileType string, data []byte, observationID *int64, description *string) (int64, error)
	RetrieveFileFunc             func(ctx context.Context, fileID int64) (*models.MedicalFile, error)
	ListFilesFunc                func(ctx context.Context) ([]models.MedicalFileInfo, error)
	GetFilesByObservationFunc    func(ctx context.Context, observationID int64) ([]models.MedicalFileInfo, error)
	DeleteFileFunc               func(ctx context.Context, fileID int64) error
	LinkFileToObservationFunc    func(ctx context.Context, fileID, observationID int64) error
	GetDoctorsForPatientFunc     func(ctx context.Context, patientID int64) ([]models.Doctor, error)
	GetPatientsForDoctorFunc     func(ctx context.Context, doctorID int64) ([]models.Patient, error)
	ResearchQueryFunc            func(ctx context.Context, statement string) ([]string, [][]interface{}, error)

	CreatePatientCallCount     int32
	CreateAppointmentCallCount int32
	StoreFileCallCount         int32
}

func (m *MockClinicStore) Bootstrap(ctx context.Context) error {
	if m.BootstrapFunc != nil {
		return m.BootstrapFunc(ctx)
	}
	return nil
}

func (m *MockClinicStore) GetDepartments(ctx context.Context) ([]models.Department, error) {
	if m.GetDepartmentsFunc != nil {
		return m.GetDepartmentsFunc(ctx)
	}
	return nil, errors.New("GetDepartmentsFunc not implemented in mock")
}

func (m *MockClinicStore) GetDoctors(ctx context.Context) ([]models.Doctor, error) {
	if m.GetDoctorsFunc != nil {
		return m.GetDoctorsFunc(ctx)
	}
	return nil, errors.New("GetDoctorsFunc not implemented in mock")
}

func (m *MockClinicStore) GetDoctorsByDepartment(ctx context.Context, departmentID int64) ([]models.Doctor, error) {
	if m.GetDoctorsByDepartmentFunc != nil {
		return m.GetDoctorsByDepartmentFunc(ctx, departmentID)
	}
	return nil, errors.New("GetDoctorsByDepartmentFunc not implemented in mock")
}

func (m *MockClinicStore) GetPatientByName(ctx context.Context, firstName, lastName string) (*models.Patient, error) {
	if m.GetPatientByNameFunc != nil {
		return m.GetPatientByNameFunc(ctx, firstName, lastName)
	}
	return nil, errors.New("GetPatientByNameFunc not implemented in mock")
}

func (m *MockClinicStore) CreatePatient(ctx context.Context, firstName, lastName string, doctorID *int64) (int64, error) {
	atomic.AddInt32(&m.CreatePatientCallCount, 1)
	if m.CreatePatientFunc != nil {
		return m.CreatePatientFunc(ctx, firstName, lastName, doctorID)
	}
	return 0, errors.New("CreatePatientFunc not implemented in mock")
}

func (m *MockClinicStore) CreateAppointment(ctx context.Context, doctorID int64, date string, patientID int64) (int64, error) {
	atomic.AddInt32(&m.CreateAppointmentCallCount, 1)
	if m.CreateAppointmentFunc != nil {
		return m.CreateAppointmentFunc(ctx, doctorID, date, patientID)
	}
	return 0, errors.New("CreateAppointmentFunc not implemented in mock")
}

func (m *MockClinicStore) GetAppointmentsForPatient(ctx context.Context, firstName, lastName string) ([]models.PatientAppointment, error) {
	if m.GetAppointmentsForPatientFunc != nil {
		return m.GetAppointmentsForPatientFunc(ctx, firstName, lastName)
	}
	return nil, errors.New("GetAppointmentsForPatientFunc not implemented in mock")
}

func (m *MockClinicStore) GetAppointmentsForDoctor(ctx context.Context, doctorID int64) ([]models.DoctorAppointment, error) {
	if m.GetAppointmentsForDoctorFunc != nil {
		return m.GetAppointmentsForDoctorFunc(ctx, doctorID)
	}
	return nil, errors.New("GetAppointmentsForDoctorFunc not implemented in mock")
}

func (m *MockClinicStore) CreateObservation(ctx context.Context, appointmentID int64, obsType, description string) (int64, error) {
	if m.CreateObservationFunc != nil {
		return m.CreateObservationFunc(ctx, appointmentID, obsType, description)
	}
	return 0, errors.New("CreateObservationFunc not implemented in mock")
}

func (m *MockClinicStore) CreateDiagnosis(ctx context.Context, observationID int64, description string) (int64, error) {
	if m.CreateDiagnosisFunc != nil {
		return m.CreateDiagnosisFunc(ctx, observationID, description)
	}
	return 0, errors.New("CreateDiagnosisFunc not implemented in mock")
}

func (m *MockClinicStore) StoreFile(ctx context.Context, filename, fileType string, data []byte, observationID *int64, description *string) (int64, error) {
	atomic.AddInt32(&m.StoreFileCallCount, 1)
	if m.StoreFileFunc != nil {
		return m.StoreFileFunc(ctx, filename, fileType, data, observationID, description)
	}
	return 0, errors.New("StoreFileFunc not implemented in mock")
}

func (m *MockClinicStore) RetrieveFile(ctx context.Context, fileID int64) (*models.MedicalFile, error) {
	if m.RetrieveFileFunc != nil {
		return m.RetrieveFileFunc(ctx, fileID)
	}
	return nil, errors.New("RetrieveFileFunc not implemented in mock")
}

func (m *MockClinicStore) ListFiles(ctx context.Context) ([]models.MedicalFileInfo, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(ctx)
	}
	return nil, errors.New("ListFilesFunc not implemented in mock")
}

func (m *MockClinicStore) GetFilesByObservation(ctx context.Context, observationID int64) ([]models.MedicalFileInfo, error) {
	if m.GetFilesByObservationFunc != nil {
		return m.GetFilesByObservationFunc(ctx, observationID)
	}
	return nil, errors.New("GetFilesByObservationFunc not implemented in mock")
}

func (m *MockClinicStore) DeleteFile(ctx context.Context, fileID int64) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, fileID)
	}
	return errors.New("DeleteFileFunc not implemented in mock")
}

func (m *MockClinicStore) LinkFileToObservation(ctx context.Context, fileID, observationID int64) error {
	if m.LinkFileToObservationFunc != nil {
		return m.LinkFileToObservationFunc(ctx, fileID, observationID)
	}
	return errors.New("LinkFileToObservationFunc not implemented in mock")
}

func (m *MockClinicStore) GetDoctorsForPatient(ctx context.Context, patientID int64) ([]models.Doctor, error) {
	if m.GetDoctorsForPatientFunc != nil {
		return m.GetDoctorsForPatientFunc(ctx, patientID)
	}
	return nil, errors.New("GetDoctorsForPatientFunc not implemented in mock")
}

func (m *MockClinicStore) GetPatientsForDoctor(ctx context.Context, doctorID int64) ([]models.Patient, error) {
	if m.GetPatientsForDoctorFunc != nil {
		return m.GetPatientsForDoctorFunc(ctx, doctorID)
	}
	return nil, errors.New("GetPatientsForDoctorFunc not implemented in mock")
}

func (m *MockClinicStore) ResearchQuery(ctx context.Context, statement string) ([]string, [][]interface{}, error) {
	if m.ResearchQueryFunc != nil {
		return m.ResearchQueryFunc(ctx, statement)
	}
	return nil, nil, errors.New("ResearchQueryFunc not implemented in mock")
}

func (m *MockClinicStore) Close(ctx context.Context) error {
	return nil
}

// --- MockMessenger ---
// Compile-time check to ensure MockMessenger implements Messenger.
var _ Messenger = (*MockMessenger)(nil)

// MockMessenger is a mock implementation of Messenger.
type MockMessenger struct {
	CreateUserFunc              func(ctx context.Context, username, password, userType, firstName, lastName string, externalID *int64) (string, error)
	AuthenticateFunc            func(ctx context.Context, username, password string) (*messaging.AuthResult, error)
	ValidateSessionFunc         func(ctx context.Context, sessionID string) (string, error)
	LogoutFunc                  func(ctx context.Context, sessionID string) error
	EnsureUserForDoctorFunc     func(ctx context.Context, doctorID int64, firstName, lastName string) (string, error)
	EnsureUserForPatientFunc    func(ctx context.Context, patientID int64, firstName, lastName string) (string, error)
	GetOrCreateConversationFunc func(ctx context.Context, participant1, participant2 string) (string, error)
	SendMessageFunc             func(ctx context.Context, senderID, conversationID, text string, imageData []byte, imageFilename string) (string, error)
	GetConversationMessagesFunc func(ctx context.Context, conversationID string, limit, skip int64) ([]models.ChatMessage, error)
	GetUserConversationsFunc    func(ctx context.Context, userID string) ([]models.ConversationSummary, error)
	MarkMessagesAsReadFunc      func(ctx context.Context, conversationID, userID string) (int64, error)
	SearchUsersFunc             func(ctx context.Context, query, userType string) ([]models.UserSummary, error)
	GetUnreadCountFunc          func(ctx context.Context, userID string) (int64, error)
	UploadProfileImageFunc      func(ctx context.Context, userID string, data []byte, filename string) error

	CreateUserCallCount  int32
	SendMessageCallCount int32
}

func (m *MockMessenger) CreateUser(ctx context.Context, username, password, userType, firstName, lastName string, externalID *int64) (string, error) {
	atomic.AddInt32(&m.CreateUserCallCount, 1)
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, username, password, userType, firstName, lastName, externalID)
	}
	return "", errors.New("CreateUserFunc not implemented in mock")
}

func (m *MockMessenger) Authenticate(ctx context.Context, username, password string) (*messaging.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, username, password)
	}
	return nil, errors.New("AuthenticateFunc not implemented in mock")
}

func (m *MockMessenger) ValidateSession(ctx context.Context, sessionID string) (string, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, sessionID)
	}
	return "", errors.New("ValidateSessionFunc not implemented in mock")
}

func (m *MockMessenger) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return errors.New("LogoutFunc not implemented in mock")
}

func (m *MockMessenger) EnsureUserForDoctor(ctx context.Context, doctorID int64, firstName, lastName string) (string, error) {
	if m.EnsureUserForDoctorFunc != nil {
		return m.EnsureUserForDoctorFunc(ctx, doctorID, firstName, lastName)
	}
	return "", errors.New("EnsureUserForDoctorFunc not implemented in mock")
}

func (m *MockMessenger) EnsureUserForPatient(ctx context.Context, patientID int64, firstName, lastName string) (string, error) {
	if m.EnsureUserForPatientFunc != nil {
		return m.EnsureUserForPatientFunc(ctx, patientID, firstName, lastName)
	}
	return "", errors.New("EnsureUserForPatientFunc not implemented in mock")
}

func (m *MockMessenger) GetOrCreateConversation(ctx context.Context, participant1, participant2 string) (string, error) {
	if m.GetOrCreateConversationFunc != nil {
		return m.GetOrCreateConversationFunc(ctx, participant1, participant2)
	}
	return "", errors.New("GetOrCreateConversationFunc not implemented in mock")
}

func (m *MockMessenger) SendMessage(ctx context.Context, senderID, conversationID, text string, imageData []byte, imageFilename string) (string, error) {
	atomic.AddInt32(&m.SendMessageCallCount, 1)
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, senderID, conversationID, text, imageData, imageFilename)
	}
	return "", errors.New("SendMessageFunc not implemented in mock")
}

func (m *MockMessenger) GetConversationMessages(ctx context.Context, conversationID string, limit, skip int64) ([]models.ChatMessage, error) {
	if m.GetConversationMessagesFunc != nil {
		return m.GetConversationMessagesFunc(ctx, conversationID, limit, skip)
	}
	return nil, errors.New("GetConversationMessagesFunc not implemented in mock")
}

func (m *MockMessenger) GetUserConversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	if m.GetUserConversationsFunc != nil {
		return m.GetUserConversationsFunc(ctx, userID)
	}
	return nil, errors.New("GetUserConversationsFunc not implemented in mock")
}

func (m *MockMessenger) MarkMessagesAsRead(ctx context.Context, conversationID, userID string) (int64, error) {
	if m.MarkMessagesAsReadFunc != nil {
		return m.MarkMessagesAsReadFunc(ctx, conversationID, userID)
	}
	return 0, errors.New("MarkMessagesAsReadFunc not implemented in mock")
}

func (m *MockMessenger) SearchUsers(ctx context.Context, query, userType string) ([]models.UserSummary, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(ctx, query, userType)
	}
	return nil, errors.New("SearchUsersFunc not implemented in mock")
}

func (m *MockMessenger) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	if m.GetUnreadCountFunc != nil {
		return m.GetUnreadCountFunc(ctx, userID)
	}
	return 0, errors.New("GetUnreadCountFunc not implemented in mock")
}

func (m *MockMessenger) UploadProfileImage(ctx context.Context, userID string, data []byte, filename string) error {
	if m.UploadProfileImageFunc != nil {
		return m.UploadProfileImageFunc(ctx, userID, data, filename)
	}
	return errors.New("UploadProfileImageFunc not implemented in mock")
}
