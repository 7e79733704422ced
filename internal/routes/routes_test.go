package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"asha-backend/internal/handlers"
	"asha-backend/internal/models"
	"asha-backend/internal/routes"
	"asha-backend/internal/services"
	"asha-backend/internal/store/storetest"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type server struct {
	t      *testing.T
	st     *storetest.Memory
	tokens *utils.TokenManager
	router *gin.Engine
}

func newServer(t *testing.T) *server {
	st := storetest.NewMemory()
	tokens := utils.NewTokenManager("test-secret", time.Hour)
	logger := zerolog.Nop()
	family := services.NewFamilyService(st)

	h := &handlers.Handler{
		Auth:          services.NewAuthService(st, tokens, family),
		Identity:      services.NewIdentityService(st),
		Profiles:      services.NewProfileService(st, family, nil),
		Fanout:        services.NewFanoutService(st, nil, 100, 100, logger),
		Notifications: services.NewNotificationService(st),
		Queue:         services.NewQueueService(st, st, logger),
		Appointments:  services.NewAppointmentService(st),
		Records:       services.NewRecordService(st, st),
		Surveys:       services.NewSurveyService(st),
		Inventory:     services.NewInventoryService(st),
		Logger:        logger,
	}

	r := gin.New()
	routes.SetupRoutes(r, h, tokens)
	return &server{t: t, st: st, tokens: tokens, router: r}
}

func (s *server) tokenFor(userID uint64) string {
	token, err := s.tokens.GenerateToken(strconv.FormatUint(userID, 10))
	require.NoError(s.t, err)
	return token
}

func (s *server) do(method, path, token string, body interface{}) (int, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *server) seedUser(name, phone, password string, role models.Role) models.User {
	hash, err := utils.HashPassword(password)
	require.NoError(s.t, err)
	return s.st.AddUser(models.User{UserName: name, Phone: phone, PasswordHash: hash, Role: role})
}

func TestPing(t *testing.T) {
	s := newServer(t)
	code, env := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestLogin(t *testing.T) {
	s := newServer(t)
	u := s.seedUser("Asha", "9000000001", "secret1", models.RoleAsha)
	s.st.AddAsha(models.AshaWorker{UserID: u.UserID, AshaName: "Asha", Village: "V1"})

	code, env := s.do(http.MethodPost, "/api/v1/asha/login", "", gin.H{"phone": "9000000001", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotEmpty(t, result.Token)

	code, env = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"phone": "9000000001", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid phone or password", env.Message)

	// ASHA credentials on the doctor route
	code, _ = s.do(http.MethodPost, "/api/v1/doctor/login", "", gin.H{"phone": "9000000001", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestValidationMessageUsesJSONNames(t *testing.T) {
	s := newServer(t)
	code, env := s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error)
	assert.Contains(t, env.Message, "phone is required")
}

func TestRegisterSupervisor_DuplicatePhone(t *testing.T) {
	s := newServer(t)
	body := gin.H{
		"asha_name": "Sunita", "phone": "9876543210", "password": "secret1",
		"village": "V1", "district": "D", "taluka": "T",
	}
	code, _ := s.do(http.MethodPost, "/api/v1/asha/register-supervisor", "", body)
	require.Equal(t, http.StatusCreated, code)

	code, env := s.do(http.MethodPost, "/api/v1/asha/register-supervisor", "", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Phone number already registered", env.Message)
}

func TestRoleGate(t *testing.T) {
	s := newServer(t)
	u := s.seedUser("Asha", "9000000001", "secret1", models.RoleAsha)
	s.st.AddAsha(models.AshaWorker{UserID: u.UserID, AshaName: "Asha", Village: "V1"})

	code, env := s.do(http.MethodGet, "/api/v1/doctor/queue", s.tokenFor(u.UserID), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Access denied for role ASHA", env.Message)

	code, env = s.do(http.MethodGet, "/api/v1/doctor/queue", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "No token provided", env.Message)
}

func TestAshaProfile_Idempotent(t *testing.T) {
	s := newServer(t)
	u := s.seedUser("Asha", "9000000001", "secret1", models.RoleAsha)
	s.st.AddAsha(models.AshaWorker{UserID: u.UserID, AshaName: "Asha", Village: "V1"})
	token := s.tokenFor(u.UserID)

	code, first := s.do(http.MethodGet, "/api/v1/asha/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	code, second := s.do(http.MethodGet, "/api/v1/asha/profile", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, string(first.Data), string(second.Data))

	code, env := s.do(http.MethodPut, "/api/v1/asha/profile", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestCreateNotice_DefaultScopeAndDirect(t *testing.T) {
	s := newServer(t)
	su := s.seedUser("S", "9000000001", "secret1", models.RoleSupervisor)
	sw := s.st.AddAsha(models.AshaWorker{UserID: su.UserID, AshaName: "S", Village: "V1"})
	s.st.Supervisors[su.UserID] = models.SupervisorDetails{UserID: su.UserID, Village: "V1"}
	a1 := s.seedUser("A1", "9000000002", "secret1", models.RoleAsha)
	s.st.AddAsha(models.AshaWorker{UserID: a1.UserID, AshaName: "A1", Village: "V1", SupervisorID: &sw.AshaID})
	s.st.Tokens[a1.UserID] = "T1"
	a2 := s.seedUser("A2", "9000000003", "secret1", models.RoleAsha)
	s.st.AddAsha(models.AshaWorker{UserID: a2.UserID, AshaName: "A2", Village: "V1", SupervisorID: &sw.AshaID})

	code, env := s.do(http.MethodPost, "/api/v1/notice/create-notice", s.tokenFor(su.UserID),
		gin.H{"title": "Camp", "body": "Vaccination camp on Monday"})
	require.Equal(t, http.StatusCreated, code)

	var result services.FanoutResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, string(models.ScopeSupervisorVillage), result.Scope)
	assert.Equal(t, 2, result.Recipients)
	assert.Equal(t, 1, result.Delivered)
	assert.Equal(t, 1, result.Skipped)

	// A1 sees it, and reading it twice is fine
	token := s.tokenFor(a1.UserID)
	code, env = s.do(http.MethodGet, "/api/v1/notice/notifications", token, nil)
	require.Equal(t, http.StatusOK, code)
	var unread []models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &unread))
	require.Len(t, unread, 1)

	path := "/api/v1/notice/notifications/read/" + strconv.FormatUint(unread[0].ID, 10)
	code, _ = s.do(http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodPost, path, token, nil)
	assert.Equal(t, http.StatusOK, code)

	// GOVT has no default scope
	g := s.seedUser("G", "9000000009", "secret1", models.RoleGovt)
	code, env = s.do(http.MethodPost, "/api/v1/notice/create-notice", s.tokenFor(g.UserID),
		gin.H{"title": "Circular", "body": "Body"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "receiver_id")

	code, env = s.do(http.MethodPost, "/api/v1/notice/create-notice", s.tokenFor(g.UserID),
		gin.H{"title": "Circular", "body": "Body", "receiver_id": a1.UserID})
	require.Equal(t, http.StatusCreated, code)
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, string(models.ScopeDirect), result.Scope)
	assert.Equal(t, 1, result.Delivered)

	// ASHA cannot use a supervisor forward route
	code, _ = s.do(http.MethodPost, "/api/v1/notice/forward/supervisor-to-asha", token,
		gin.H{"title": "x", "body": "y"})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestDoctorQueueFlow(t *testing.T) {
	s := newServer(t)
	du := s.seedUser("Dr", "9000000001", "secret1", models.RoleDoctor)
	s.st.AddDoctor(models.Doctor{UserID: du.UserID, DocName: "Dr", DocRole: "PHC"})
	pu := s.seedUser("P", "9000000002", "secret1", models.RolePatient)
	p := s.st.AddPatient(models.Patient{UserID: pu.UserID, PatientName: "P"})
	qu := s.seedUser("Q", "9000000003", "secret1", models.RolePatient)
	q := s.st.AddPatient(models.Patient{UserID: qu.UserID, PatientName: "Q"})
	token := s.tokenFor(du.UserID)

	code, _ := s.do(http.MethodPost, "/api/v1/doctor/queue/add", token, gin.H{"patient_id": p.PatientID, "priority": "GREEN"})
	require.Equal(t, http.StatusCreated, code)
	code, env := s.do(http.MethodPost, "/api/v1/doctor/queue/add", token, gin.H{"patient_id": q.PatientID, "priority": "RED"})
	require.Equal(t, http.StatusCreated, code)
	var redEntry models.QueueEntry
	require.NoError(t, json.Unmarshal(env.Data, &redEntry))

	code, _ = s.do(http.MethodPost, "/api/v1/doctor/queue/add", token, gin.H{"patient_id": p.PatientID, "priority": "PURPLE"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/doctor/queue", token, nil)
	require.Equal(t, http.StatusOK, code)
	var queue []models.QueueEntry
	require.NoError(t, json.Unmarshal(env.Data, &queue))
	require.Len(t, queue, 2)
	assert.Equal(t, q.PatientID, queue[0].PatientID)

	start := "/api/v1/doctor/queue/" + strconv.FormatUint(redEntry.QueueID, 10) + "/start"
	code, _ = s.do(http.MethodPost, start, token, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodPost, start, token, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Consultation already started", env.Message)

	code, _ = s.do(http.MethodPost, "/api/v1/doctor/consultation-with-items", token, gin.H{
		"patient_id": q.PatientID,
		"diagnosis":  "Fever",
		"items":      []gin.H{{"medicine_name": "Paracetamol", "dosage": "500mg"}},
	})
	require.Equal(t, http.StatusCreated, code)

	// The patient sees the consultation, the other patient does not
	code, env = s.do(http.MethodGet, "/api/v1/patient/consultations", s.tokenFor(qu.UserID), nil)
	require.Equal(t, http.StatusOK, code)
	var views []models.ConsultationView
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 1)

	path := "/api/v1/patient/consultation/" + strconv.FormatUint(views[0].ConsultationID, 10)
	code, _ = s.do(http.MethodGet, path, s.tokenFor(qu.UserID), nil)
	assert.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, path, s.tokenFor(pu.UserID), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You can only view your own consultations", env.Message)
}

func TestAppointment_SlotConflict(t *testing.T) {
	s := newServer(t)
	du := s.seedUser("Dr", "9000000001", "secret1", models.RoleDoctor)
	d := s.st.AddDoctor(models.Doctor{UserID: du.UserID, DocName: "Dr", DocRole: "PHC"})
	pu := s.seedUser("P", "9000000002", "secret1", models.RolePatient)
	s.st.AddPatient(models.Patient{UserID: pu.UserID, PatientName: "P"})
	token := s.tokenFor(pu.UserID)

	body := gin.H{"doctor_id": d.DocID, "appointment_date": "2030-05-01", "appointment_time": "10:30"}
	code, _ := s.do(http.MethodPost, "/api/v1/appointment", token, body)
	require.Equal(t, http.StatusCreated, code)
	code, env := s.do(http.MethodPost, "/api/v1/appointment", token, body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "You already have an appointment at this time", env.Message)
}
