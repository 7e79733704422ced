package gormstore

import (
	"context"
	"testing"
	"time"

	"asha-backend/internal/models"
	"asha-backend/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newSQLiteStore opens a private in-memory database and migrates it.
func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

// village seeds supervisor S in V1 with ASHA A1 (token T1) and A2 (no token),
// and an ASHA A3 in V2 under the same supervisor.
type village struct {
	s          *Store
	supervisor models.AshaWorker
	a1, a2, a3 models.AshaWorker
}

func seedVillage(t *testing.T) village {
	t.Helper()
	ctx := context.Background()
	s := newSQLiteStore(t)

	su := &models.User{UserName: "S", Phone: "9000000001", PasswordHash: "h", Role: models.RoleSupervisor}
	sw := &models.AshaWorker{AshaName: "S", Village: "V1"}
	require.NoError(t, s.CreateSupervisor(ctx, su, sw, &models.SupervisorDetails{Village: "V1"}))

	asha := func(name, phone, villageName string) models.AshaWorker {
		u := &models.User{UserName: name, Phone: phone, PasswordHash: "h", Role: models.RoleAsha}
		w := &models.AshaWorker{AshaName: name, Village: villageName, SupervisorID: &sw.AshaID}
		require.NoError(t, s.CreateAsha(ctx, u, w))
		return *w
	}
	v := village{
		s:          s,
		supervisor: *sw,
		a1:         asha("A1", "9000000002", "V1"),
		a2:         asha("A2", "9000000003", "V1"),
		a3:         asha("A3", "9000000004", "V2"),
	}
	require.NoError(t, s.UpsertDeviceToken(ctx, v.a1.UserID, "T0"))
	require.NoError(t, s.UpsertDeviceToken(ctx, v.a1.UserID, "T1"))
	return v
}

func TestSQLite_Registration(t *testing.T) {
	v := seedVillage(t)
	ctx := context.Background()

	assert.Nil(t, v.supervisor.SupervisorID)
	worker, err := v.s.GetAshaByUserID(ctx, v.a1.UserID)
	require.NoError(t, err)
	require.NotNil(t, worker.User)
	assert.Equal(t, "9000000002", worker.User.Phone)

	dup := &models.User{UserName: "X", Phone: "9000000002", PasswordHash: "h", Role: models.RoleAsha}
	err = v.s.CreateAsha(ctx, dup, &models.AshaWorker{AshaName: "X", Village: "V1"})
	assert.ErrorIs(t, err, store.ErrConflict)

	// nothing from the failed transaction is left behind
	team, err := v.s.ListAshasBySupervisor(ctx, v.supervisor.AshaID)
	require.NoError(t, err)
	assert.Len(t, team, 3)
}

func TestSQLite_PatientFamilyHead(t *testing.T) {
	v := seedVillage(t)
	ctx := context.Background()

	head := &models.Patient{PatientName: "Head", RegisteredAshaID: &v.a1.AshaID}
	require.NoError(t, v.s.CreatePatient(ctx,
		&models.User{UserName: "Head", Phone: "7000000001", PasswordHash: "h", Role: models.RolePatient}, head))
	assert.Equal(t, head.PatientID, head.SupremeID)

	stored, err := v.s.GetPatient(ctx, head.PatientID)
	require.NoError(t, err)
	assert.Equal(t, head.PatientID, stored.SupremeID)

	member := &models.Patient{PatientName: "Member", SupremeID: head.PatientID, RegisteredAshaID: &v.a1.AshaID}
	require.NoError(t, v.s.CreatePatient(ctx,
		&models.User{UserName: "Member", Phone: "7000000002", PasswordHash: "h", Role: models.RolePatient}, member))

	family, err := v.s.ListPatientsBySupreme(ctx, head.PatientID)
	require.NoError(t, err)
	require.Len(t, family, 2)
	assert.Equal(t, head.PatientID, family[0].PatientID)
	assert.Equal(t, member.PatientID, family[1].PatientID)
}

func TestSQLite_MigrateNormalizesFamilyHead(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Exec(
		"INSERT INTO patient (patient_id, user_id, supreme_id, patient_name) VALUES (7, 70, 0, 'Legacy')",
	).Error)
	require.NoError(t, s.Migrate(ctx))

	p, err := s.GetPatient(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), p.SupremeID)
}

func TestSQLite_Recipients(t *testing.T) {
	v := seedVillage(t)
	ctx := context.Background()

	got, err := v.s.ListAshaRecipientsByVillage(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, []models.Recipient{
		{UserID: v.a1.UserID, FCMToken: "T1"},
		{UserID: v.a2.UserID, FCMToken: ""},
	}, got)

	got, err = v.s.ListAshaRecipientsBySupervisor(ctx, v.supervisor.AshaID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, v.a3.UserID, got[2].UserID)

	got, err = v.s.ListSupervisorRecipientsByVillage(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, []models.Recipient{{UserID: v.supervisor.UserID}}, got)

	got, err = v.s.ListSupervisorRecipientsByVillage(ctx, "V2")
	require.NoError(t, err)
	assert.Empty(t, got)

	p := &models.Patient{PatientName: "P", RegisteredAshaID: &v.a2.AshaID}
	require.NoError(t, v.s.CreatePatient(ctx,
		&models.User{UserName: "P", Phone: "7000000001", PasswordHash: "h", Role: models.RolePatient}, p))
	require.NoError(t, v.s.UpsertDeviceToken(ctx, p.UserID, "TP"))
	got, err = v.s.ListPatientRecipientsByAsha(ctx, v.a2.AshaID)
	require.NoError(t, err)
	assert.Equal(t, []models.Recipient{{UserID: p.UserID, FCMToken: "TP"}}, got)

	r, err := v.s.GetRecipient(ctx, v.a2.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.Recipient{UserID: v.a2.UserID}, r)

	_, err = v.s.GetRecipient(ctx, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLite_Notifications(t *testing.T) {
	v := seedVillage(t)
	ctx := context.Background()

	notice := &models.Notice{SenderID: v.supervisor.UserID, Title: "Camp", Body: "Monday", Scope: models.ScopeSupervisorVillage}
	require.NoError(t, v.s.CreateNotice(ctx, notice))
	row := &models.Notification{NoticeID: notice.NoticeID, SenderID: v.supervisor.UserID, ReceiverID: v.a1.UserID, Title: "Camp", Body: "Monday"}
	require.NoError(t, v.s.InsertNotification(ctx, row))

	unread, err := v.s.ListUnreadNotifications(ctx, v.a1.UserID)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	assert.ErrorIs(t, v.s.MarkNotificationRead(ctx, row.ID, v.a2.UserID), store.ErrNotFound)
	require.NoError(t, v.s.MarkNotificationRead(ctx, row.ID, v.a1.UserID))
	require.NoError(t, v.s.MarkNotificationRead(ctx, row.ID, v.a1.UserID))

	unread, err = v.s.ListUnreadNotifications(ctx, v.a1.UserID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

type sqliteClinic struct {
	s       *Store
	doctor  models.Doctor
	patient models.Patient
}

func seedSQLiteClinic(t *testing.T) sqliteClinic {
	t.Helper()
	ctx := context.Background()
	s := newSQLiteStore(t)

	d := &models.Doctor{DocName: "Dr. Rao", DocRole: "PHC"}
	require.NoError(t, s.CreateDoctor(ctx,
		&models.User{UserName: "Dr. Rao", Phone: "8000000001", PasswordHash: "h", Role: models.RoleDoctor}, d))
	p := &models.Patient{PatientName: "P"}
	require.NoError(t, s.CreatePatient(ctx,
		&models.User{UserName: "P", Phone: "7000000001", PasswordHash: "h", Role: models.RolePatient}, p))
	return sqliteClinic{s: s, doctor: *d, patient: *p}
}

func (c sqliteClinic) doctorStatus(t *testing.T) string {
	t.Helper()
	d, err := c.s.GetDoctor(context.Background(), c.doctor.DocID)
	require.NoError(t, err)
	return d.Status
}

func TestSQLite_ConsultationLifecycle(t *testing.T) {
	c := seedSQLiteClinic(t)
	ctx := context.Background()
	assert.Equal(t, models.DoctorStatusOff, c.doctorStatus(t))

	entry := &models.QueueEntry{PatientID: c.patient.PatientID, DocID: c.doctor.DocID, Priority: models.PriorityRed, Status: models.QueueStatusWaiting, InTime: time.Now()}
	require.NoError(t, c.s.AddQueueEntry(ctx, entry))

	// completing before the start writes nothing
	early := &models.Consultation{PatientID: c.patient.PatientID, DoctorID: c.doctor.DocID, Diagnosis: "x", ConsultationDate: time.Now()}
	assert.ErrorIs(t, c.s.CompleteConsultation(ctx, early), store.ErrInvalidState)
	list, err := c.s.ListConsultationsByPatient(ctx, c.patient.PatientID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = c.s.StartConsultation(ctx, entry.QueueID, c.doctor.DocID+1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	started, err := c.s.StartConsultation(ctx, entry.QueueID, c.doctor.DocID)
	require.NoError(t, err)
	assert.Equal(t, models.QueueStatusInConsultation, started.Status)
	assert.Equal(t, models.DoctorStatusOn, c.doctorStatus(t))

	_, err = c.s.StartConsultation(ctx, entry.QueueID, c.doctor.DocID)
	assert.ErrorIs(t, err, store.ErrInvalidState)

	waiting, err := c.s.ListWaitingQueue(ctx, c.doctor.DocID)
	require.NoError(t, err)
	assert.Empty(t, waiting)

	done := &models.Consultation{
		PatientID: c.patient.PatientID, DoctorID: c.doctor.DocID, Diagnosis: "Fever", ConsultationDate: time.Now(),
		Items: []models.PrescriptionItem{},
	}
	require.NoError(t, c.s.CompleteConsultation(ctx, done))
	assert.Equal(t, models.DoctorStatusOff, c.doctorStatus(t))

	_, err = c.s.GetQueueEntry(ctx, entry.QueueID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	got, err := c.s.GetConsultation(ctx, done.ConsultationID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	require.NotNil(t, got.Doctor)
	assert.Equal(t, "Dr. Rao", got.Doctor.DocName)
}

func TestSQLite_ConsultationItems(t *testing.T) {
	c := seedSQLiteClinic(t)
	ctx := context.Background()

	entry := &models.QueueEntry{PatientID: c.patient.PatientID, DocID: c.doctor.DocID, Status: models.QueueStatusWaiting, InTime: time.Now()}
	require.NoError(t, c.s.AddQueueEntry(ctx, entry))
	_, err := c.s.StartConsultation(ctx, entry.QueueID, c.doctor.DocID)
	require.NoError(t, err)

	done := &models.Consultation{
		PatientID: c.patient.PatientID, DoctorID: c.doctor.DocID, Diagnosis: "Fever", ConsultationDate: time.Now(),
		Items: []models.PrescriptionItem{{MedicineName: "Paracetamol"}, {MedicineName: "ORS"}},
	}
	require.NoError(t, c.s.CompleteConsultation(ctx, done))

	list, err := c.s.ListConsultationsByPatient(ctx, c.patient.PatientID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Items, 2)
}

func TestSQLite_TagEmergency(t *testing.T) {
	c := seedSQLiteClinic(t)
	ctx := context.Background()

	entry := &models.QueueEntry{PatientID: c.patient.PatientID, DocID: c.doctor.DocID, Status: models.QueueStatusWaiting, InTime: time.Now()}
	require.NoError(t, c.s.AddQueueEntry(ctx, entry))
	require.NoError(t, c.s.TagEmergency(ctx, entry.QueueID))
	require.NoError(t, c.s.TagEmergency(ctx, entry.QueueID))
	assert.ErrorIs(t, c.s.TagEmergency(ctx, 9999), store.ErrNotFound)

	got, err := c.s.GetQueueEntry(ctx, entry.QueueID)
	require.NoError(t, err)
	assert.True(t, got.TaggedEmergency)
}

func TestSQLite_AppointmentSlots(t *testing.T) {
	c := seedSQLiteClinic(t)
	ctx := context.Background()

	other := &models.Doctor{DocName: "Dr. Iyer", DocRole: "CHO"}
	require.NoError(t, c.s.CreateDoctor(ctx,
		&models.User{UserName: "Dr. Iyer", Phone: "8000000002", PasswordHash: "h", Role: models.RoleDoctor}, other))

	book := func(patientID, doctorID uint64) error {
		return c.s.CreateAppointment(ctx, &models.Appointment{
			PatientID: patientID, DoctorID: doctorID, AppointmentDate: "2030-05-01", AppointmentTime: "10:30",
		})
	}
	require.NoError(t, book(c.patient.PatientID, c.doctor.DocID))

	err := book(c.patient.PatientID, other.DocID)
	assert.ErrorIs(t, err, store.ErrPatientSlotTaken)
	assert.ErrorIs(t, err, store.ErrConflict)

	err = book(c.patient.PatientID+100, c.doctor.DocID)
	assert.ErrorIs(t, err, store.ErrDoctorSlotTaken)

	require.NoError(t, book(c.patient.PatientID+100, other.DocID))

	list, err := c.s.ListAppointmentsByPatient(ctx, c.patient.PatientID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLite_SurveyPaging(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		require.NoError(t, s.CreateSurvey(ctx, &models.Survey{
			AshaID: 1, PatientID: 2, SurveyType: models.SurveyGeneral, Answers: []byte(`{"q":1}`),
		}))
	}
	require.NoError(t, s.CreateSurvey(ctx, &models.Survey{AshaID: 1, PatientID: 2, SurveyType: models.SurveyTBFirst, Answers: []byte(`{}`)}))

	page, total, err := s.ListSurveysByAsha(ctx, 1, models.SurveyGeneral, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.Len(t, page, 2)

	all, err := s.ListSurveysByPatient(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}
