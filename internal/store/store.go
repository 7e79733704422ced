package store

import (
	"context"

	"asha-backend/internal/models"
)

type UserStore interface {
	GetUser(ctx context.Context, userID uint64) (models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (models.User, error)
	// UpdateUserCredentials changes phone and/or password hash; empty values are left alone.
	UpdateUserCredentials(ctx context.Context, userID uint64, phone, passwordHash string) error
}

type ProfileStore interface {
	GetAsha(ctx context.Context, ashaID uint64) (models.AshaWorker, error)
	GetAshaByUserID(ctx context.Context, userID uint64) (models.AshaWorker, error)
	GetPatient(ctx context.Context, patientID uint64) (models.Patient, error)
	GetPatientByUserID(ctx context.Context, userID uint64) (models.Patient, error)
	GetDoctor(ctx context.Context, docID uint64) (models.Doctor, error)
	GetDoctorByUserID(ctx context.Context, userID uint64) (models.Doctor, error)
	GetChemistByUserID(ctx context.Context, userID uint64) (models.Chemist, error)
	GetSupervisorDetails(ctx context.Context, userID uint64) (models.SupervisorDetails, error)
	GetLHVDetails(ctx context.Context, userID uint64) (models.LHVDetails, error)
	ListPatientsBySupreme(ctx context.Context, headID uint64) ([]models.Patient, error)
	ListPatientsByAsha(ctx context.Context, ashaID uint64) ([]models.Patient, error)
	ListAshasBySupervisor(ctx context.Context, supervisorAshaID uint64) ([]models.AshaWorker, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	UpdateAshaProfilePic(ctx context.Context, ashaID uint64, url string) error
}

// RegistrationStore writes a user row together with its role row in one transaction.
type RegistrationStore interface {
	CreateSupervisor(ctx context.Context, user *models.User, worker *models.AshaWorker, details *models.SupervisorDetails) error
	CreateAsha(ctx context.Context, user *models.User, worker *models.AshaWorker) error
	CreatePatient(ctx context.Context, user *models.User, patient *models.Patient) error
	CreateLHV(ctx context.Context, user *models.User, details *models.LHVDetails) error
	CreateDoctor(ctx context.Context, user *models.User, doctor *models.Doctor) error
	CreateChemist(ctx context.Context, user *models.User, chemist *models.Chemist) error
}

// NoticeStore backs the fan-out engine. Recipient lists carry the device
// token when one exists, an empty FCMToken otherwise.
type NoticeStore interface {
	CreateNotice(ctx context.Context, notice *models.Notice) error
	InsertNotification(ctx context.Context, notification *models.Notification) error
	GetRecipient(ctx context.Context, userID uint64) (models.Recipient, error)
	ListAshaRecipientsByVillage(ctx context.Context, village string) ([]models.Recipient, error)
	ListSupervisorRecipientsByVillage(ctx context.Context, village string) ([]models.Recipient, error)
	ListAshaRecipientsBySupervisor(ctx context.Context, supervisorAshaID uint64) ([]models.Recipient, error)
	ListPatientRecipientsByAsha(ctx context.Context, ashaID uint64) ([]models.Recipient, error)
	ListUnreadNotifications(ctx context.Context, userID uint64) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID uint64) error
	UpsertDeviceToken(ctx context.Context, userID uint64, token string) error
}

type ClinicStore interface {
	AddQueueEntry(ctx context.Context, entry *models.QueueEntry) error
	GetQueueEntry(ctx context.Context, queueID uint64) (models.QueueEntry, error)
	ListWaitingQueue(ctx context.Context, docID uint64) ([]models.QueueEntry, error)
	TagEmergency(ctx context.Context, queueID uint64) error
	// StartConsultation moves the entry to IN_CONSULTATION and the doctor ON, atomically.
	StartConsultation(ctx context.Context, queueID, docID uint64) (models.QueueEntry, error)
	// CompleteConsultation inserts the consultation with its items, clears the
	// patient's queue entry and turns the doctor OFF, atomically.
	CompleteConsultation(ctx context.Context, consultation *models.Consultation) error
	ListConsultationsByPatient(ctx context.Context, patientID uint64) ([]models.Consultation, error)
	GetConsultation(ctx context.Context, consultationID uint64) (models.Consultation, error)
	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	ListAppointmentsByPatient(ctx context.Context, patientID uint64) ([]models.Appointment, error)
	CreateQuery(ctx context.Context, query *models.PatientQuery) error
	ListQueriesByDoctor(ctx context.Context, docID uint64) ([]models.PatientQuery, error)
}

type SurveyStore interface {
	CreateSurvey(ctx context.Context, survey *models.Survey) error
	ListSurveysByAsha(ctx context.Context, ashaID uint64, surveyType models.SurveyType, limit, offset int) ([]models.Survey, int64, error)
	ListSurveysByPatient(ctx context.Context, patientID uint64) ([]models.Survey, error)
	ListSurveysByAshasOnDate(ctx context.Context, ashaIDs []uint64, surveyType models.SurveyType, date string) ([]models.Survey, error)
}

// Store is the relational side of the system.
type Store interface {
	UserStore
	ProfileStore
	RegistrationStore
	NoticeStore
	ClinicStore
	SurveyStore
}

// DocumentStore is the document side: medical history and chemist inventory.
type DocumentStore interface {
	GetHistory(ctx context.Context, patientID uint64) (models.MedicalHistory, error)
	AppendVisit(ctx context.Context, patientID uint64, visit models.Visit) error
	GetInventory(ctx context.Context, chemistID uint64) (models.ChemistInventory, error)
	ReplaceInventory(ctx context.Context, chemistID uint64, items []models.Medicine) (models.ChemistInventory, error)
	AddMedicine(ctx context.Context, chemistID uint64, medicine models.Medicine) (models.ChemistInventory, error)
}
