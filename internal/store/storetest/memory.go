// Package storetest holds an in-memory store used by service and handler tests.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
)

// Memory implements store.Store and store.DocumentStore with plain maps.
// Set Errors[method] to make that method fail.
type Memory struct {
	mu sync.Mutex

	Errors map[string]error
	// NotificationErrors fails InsertNotification for one receiver only.
	NotificationErrors map[uint64]error

	nextID uint64
	Now    func() time.Time

	Users         map[uint64]models.User
	Ashas         map[uint64]models.AshaWorker
	Supervisors   map[uint64]models.SupervisorDetails // by user id
	LHVs          map[uint64]models.LHVDetails        // by user id
	Patients      map[uint64]models.Patient
	Doctors       map[uint64]models.Doctor
	Chemists      map[uint64]models.Chemist
	Queue         map[uint64]models.QueueEntry
	Consultations map[uint64]models.Consultation
	Appointments  map[uint64]models.Appointment
	Notices       map[uint64]models.Notice
	Notifications map[uint64]models.Notification
	Tokens        map[uint64]string
	Surveys       map[uint64]models.Survey
	Queries       map[uint64]models.PatientQuery
	Histories     map[uint64]models.MedicalHistory
	Inventories   map[uint64]models.ChemistInventory
}

var (
	_ store.Store         = (*Memory)(nil)
	_ store.DocumentStore = (*Memory)(nil)
)

func NewMemory() *Memory {
	return &Memory{
		Errors:             map[string]error{},
		NotificationErrors: map[uint64]error{},
		Now:                time.Now,
		Users:              map[uint64]models.User{},
		Ashas:              map[uint64]models.AshaWorker{},
		Supervisors:        map[uint64]models.SupervisorDetails{},
		LHVs:               map[uint64]models.LHVDetails{},
		Patients:           map[uint64]models.Patient{},
		Doctors:            map[uint64]models.Doctor{},
		Chemists:           map[uint64]models.Chemist{},
		Queue:              map[uint64]models.QueueEntry{},
		Consultations:      map[uint64]models.Consultation{},
		Appointments:       map[uint64]models.Appointment{},
		Notices:            map[uint64]models.Notice{},
		Notifications:      map[uint64]models.Notification{},
		Tokens:             map[uint64]string{},
		Surveys:            map[uint64]models.Survey{},
		Queries:            map[uint64]models.PatientQuery{},
		Histories:          map[uint64]models.MedicalHistory{},
		Inventories:        map[uint64]models.ChemistInventory{},
	}
}

func (m *Memory) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) fail(method string) error {
	return m.Errors[method]
}

// Seed helpers. They bypass the error hooks and keep ids unique.

func (m *Memory) AddUser(u models.User) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.UserID == 0 {
		u.UserID = m.id()
	} else if u.UserID > m.nextID {
		m.nextID = u.UserID
	}
	m.Users[u.UserID] = u
	return u
}

func (m *Memory) AddAsha(w models.AshaWorker) models.AshaWorker {
	m.mu.Lock()
	defer m.mu.Unlock()
	if w.AshaID == 0 {
		w.AshaID = m.id()
	} else if w.AshaID > m.nextID {
		m.nextID = w.AshaID
	}
	m.Ashas[w.AshaID] = w
	return w
}

func (m *Memory) AddPatient(p models.Patient) models.Patient {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.PatientID == 0 {
		p.PatientID = m.id()
	} else if p.PatientID > m.nextID {
		m.nextID = p.PatientID
	}
	m.Patients[p.PatientID] = p
	return p
}

func (m *Memory) AddDoctor(d models.Doctor) models.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d.DocID == 0 {
		d.DocID = m.id()
	} else if d.DocID > m.nextID {
		m.nextID = d.DocID
	}
	m.Doctors[d.DocID] = d
	return d
}

func (m *Memory) AddChemist(c models.Chemist) models.Chemist {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ChemistID == 0 {
		c.ChemistID = m.id()
	} else if c.ChemistID > m.nextID {
		m.nextID = c.ChemistID
	}
	m.Chemists[c.ChemistID] = c
	return c
}

func (m *Memory) AddQueueEntry(ctx context.Context, entry *models.QueueEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AddQueueEntry"); err != nil {
		return err
	}
	if entry.QueueID == 0 {
		entry.QueueID = m.id()
	}
	if entry.Status == "" {
		entry.Status = models.QueueStatusWaiting
	}
	m.Queue[entry.QueueID] = *entry
	return nil
}

// users

func (m *Memory) GetUser(ctx context.Context, userID uint64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetUser"); err != nil {
		return models.User{}, err
	}
	u, ok := m.Users[userID]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (m *Memory) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetUserByPhone"); err != nil {
		return models.User{}, err
	}
	for _, u := range m.Users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (m *Memory) UpdateUserCredentials(ctx context.Context, userID uint64, phone, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpdateUserCredentials"); err != nil {
		return err
	}
	u, ok := m.Users[userID]
	if !ok {
		return store.ErrNotFound
	}
	if phone != "" {
		for id, other := range m.Users {
			if id != userID && other.Phone == phone {
				return store.ErrConflict
			}
		}
		u.Phone = phone
	}
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	m.Users[userID] = u
	return nil
}

// profiles

func (m *Memory) GetAsha(ctx context.Context, ashaID uint64) (models.AshaWorker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.Ashas[ashaID]
	if !ok {
		return models.AshaWorker{}, store.ErrNotFound
	}
	return w, nil
}

func (m *Memory) GetAshaByUserID(ctx context.Context, userID uint64) (models.AshaWorker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetAshaByUserID"); err != nil {
		return models.AshaWorker{}, err
	}
	for _, w := range m.Ashas {
		if w.UserID == userID {
			if u, ok := m.Users[userID]; ok {
				w.User = &u
			}
			return w, nil
		}
	}
	return models.AshaWorker{}, store.ErrNotFound
}

func (m *Memory) GetPatient(ctx context.Context, patientID uint64) (models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("GetPatient"); err != nil {
		return models.Patient{}, err
	}
	p, ok := m.Patients[patientID]
	if !ok {
		return models.Patient{}, store.ErrNotFound
	}
	return p, nil
}

func (m *Memory) GetPatientByUserID(ctx context.Context, userID uint64) (models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Patients {
		if p.UserID == userID {
			return p, nil
		}
	}
	return models.Patient{}, store.ErrNotFound
}

func (m *Memory) GetDoctor(ctx context.Context, docID uint64) (models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Doctors[docID]
	if !ok {
		return models.Doctor{}, store.ErrNotFound
	}
	return d, nil
}

func (m *Memory) GetDoctorByUserID(ctx context.Context, userID uint64) (models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.Doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return models.Doctor{}, store.ErrNotFound
}

func (m *Memory) GetChemistByUserID(ctx context.Context, userID uint64) (models.Chemist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Chemists {
		if c.UserID == userID {
			return c, nil
		}
	}
	return models.Chemist{}, store.ErrNotFound
}

func (m *Memory) GetSupervisorDetails(ctx context.Context, userID uint64) (models.SupervisorDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.Supervisors[userID]
	if !ok {
		return models.SupervisorDetails{}, store.ErrNotFound
	}
	return d, nil
}

func (m *Memory) GetLHVDetails(ctx context.Context, userID uint64) (models.LHVDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.LHVs[userID]
	if !ok {
		return models.LHVDetails{}, store.ErrNotFound
	}
	return d, nil
}

func (m *Memory) ListPatientsBySupreme(ctx context.Context, headID uint64) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("ListPatientsBySupreme"); err != nil {
		return nil, err
	}
	out := []models.Patient{}
	for _, p := range m.Patients {
		if p.SupremeID == headID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatientID < out[j].PatientID })
	return out, nil
}

func (m *Memory) ListPatientsByAsha(ctx context.Context, ashaID uint64) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Patient{}
	for _, p := range m.Patients {
		if p.RegisteredAshaID != nil && *p.RegisteredAshaID == ashaID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatientID < out[j].PatientID })
	return out, nil
}

func (m *Memory) ListAshasBySupervisor(ctx context.Context, supervisorAshaID uint64) ([]models.AshaWorker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.AshaWorker{}
	for _, w := range m.Ashas {
		if w.SupervisorID != nil && *w.SupervisorID == supervisorAshaID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AshaID < out[j].AshaID })
	return out, nil
}

func (m *Memory) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range m.Doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DocName < out[j].DocName })
	return out, nil
}

func (m *Memory) UpdateAshaProfilePic(ctx context.Context, ashaID uint64, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.Ashas[ashaID]
	if !ok {
		return store.ErrNotFound
	}
	w.ProfilePic = url
	m.Ashas[ashaID] = w
	return nil
}

// registration

func (m *Memory) createUser(user *models.User) error {
	for _, u := range m.Users {
		if u.Phone == user.Phone {
			return store.ErrConflict
		}
	}
	user.UserID = m.id()
	user.CreatedAt = m.Now()
	m.Users[user.UserID] = *user
	return nil
}

func (m *Memory) CreateSupervisor(ctx context.Context, user *models.User, worker *models.AshaWorker, details *models.SupervisorDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateSupervisor"); err != nil {
		return err
	}
	if err := m.createUser(user); err != nil {
		return err
	}
	worker.UserID, worker.AshaID, worker.SupervisorID = user.UserID, m.id(), nil
	m.Ashas[worker.AshaID] = *worker
	details.UserID, details.ID = user.UserID, m.id()
	m.Supervisors[user.UserID] = *details
	return nil
}

func (m *Memory) CreateAsha(ctx context.Context, user *models.User, worker *models.AshaWorker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateAsha"); err != nil {
		return err
	}
	if err := m.createUser(user); err != nil {
		return err
	}
	worker.UserID, worker.AshaID = user.UserID, m.id()
	m.Ashas[worker.AshaID] = *worker
	return nil
}

func (m *Memory) CreatePatient(ctx context.Context, user *models.User, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreatePatient"); err != nil {
		return err
	}
	if err := m.createUser(user); err != nil {
		return err
	}
	patient.UserID, patient.PatientID = user.UserID, m.id()
	if patient.SupremeID == 0 {
		patient.SupremeID = patient.PatientID
	}
	m.Patients[patient.PatientID] = *patient
	return nil
}

func (m *Memory) CreateLHV(ctx context.Context, user *models.User, details *models.LHVDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.createUser(user); err != nil {
		return err
	}
	details.UserID, details.ID = user.UserID, m.id()
	m.LHVs[user.UserID] = *details
	return nil
}

func (m *Memory) CreateDoctor(ctx context.Context, user *models.User, doctor *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.createUser(user); err != nil {
		return err
	}
	doctor.UserID, doctor.DocID = user.UserID, m.id()
	m.Doctors[doctor.DocID] = *doctor
	return nil
}

func (m *Memory) CreateChemist(ctx context.Context, user *models.User, chemist *models.Chemist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.createUser(user); err != nil {
		return err
	}
	chemist.UserID, chemist.ChemistID = user.UserID, m.id()
	m.Chemists[chemist.ChemistID] = *chemist
	return nil
}

// notices

func (m *Memory) CreateNotice(ctx context.Context, notice *models.Notice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CreateNotice"); err != nil {
		return err
	}
	notice.NoticeID = m.id()
	notice.CreatedAt = m.Now()
	m.Notices[notice.NoticeID] = *notice
	return nil
}

func (m *Memory) InsertNotification(ctx context.Context, notification *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.NotificationErrors[notification.ReceiverID]; err != nil {
		return err
	}
	notification.ID = m.id()
	notification.CreatedAt = m.Now()
	m.Notifications[notification.ID] = *notification
	return nil
}

func (m *Memory) recipient(userID uint64) models.Recipient {
	return models.Recipient{UserID: userID, FCMToken: m.Tokens[userID]}
}

func sortRecipients(rs []models.Recipient) []models.Recipient {
	sort.Slice(rs, func(i, j int) bool { return rs[i].UserID < rs[j].UserID })
	return rs
}

func (m *Memory) GetRecipient(ctx context.Context, userID uint64) (models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Users[userID]; !ok {
		return models.Recipient{}, store.ErrNotFound
	}
	return m.recipient(userID), nil
}

func (m *Memory) ListAshaRecipientsByVillage(ctx context.Context, village string) ([]models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Recipient{}
	for _, w := range m.Ashas {
		if w.Village == village && w.SupervisorID != nil {
			out = append(out, m.recipient(w.UserID))
		}
	}
	return sortRecipients(out), nil
}

func (m *Memory) ListSupervisorRecipientsByVillage(ctx context.Context, village string) ([]models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Recipient{}
	for userID, d := range m.Supervisors {
		if d.Village == village && m.Users[userID].Role == models.RoleSupervisor {
			out = append(out, m.recipient(userID))
		}
	}
	return sortRecipients(out), nil
}

func (m *Memory) ListAshaRecipientsBySupervisor(ctx context.Context, supervisorAshaID uint64) ([]models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Recipient{}
	for _, w := range m.Ashas {
		if w.SupervisorID != nil && *w.SupervisorID == supervisorAshaID {
			out = append(out, m.recipient(w.UserID))
		}
	}
	return sortRecipients(out), nil
}

func (m *Memory) ListPatientRecipientsByAsha(ctx context.Context, ashaID uint64) ([]models.Recipient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Recipient{}
	for _, p := range m.Patients {
		if p.RegisteredAshaID != nil && *p.RegisteredAshaID == ashaID {
			out = append(out, m.recipient(p.UserID))
		}
	}
	return sortRecipients(out), nil
}

func (m *Memory) ListUnreadNotifications(ctx context.Context, userID uint64) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Notification{}
	for _, n := range m.Notifications {
		if n.ReceiverID == userID && !n.IsRead {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) MarkNotificationRead(ctx context.Context, notificationID, userID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.Notifications[notificationID]
	if !ok || n.ReceiverID != userID {
		return store.ErrNotFound
	}
	n.IsRead = true
	m.Notifications[notificationID] = n
	return nil
}

func (m *Memory) UpsertDeviceToken(ctx context.Context, userID uint64, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("UpsertDeviceToken"); err != nil {
		return err
	}
	m.Tokens[userID] = token
	return nil
}

// clinic

func (m *Memory) GetQueueEntry(ctx context.Context, queueID uint64) (models.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Queue[queueID]
	if !ok {
		return models.QueueEntry{}, store.ErrNotFound
	}
	return e, nil
}

func (m *Memory) ListWaitingQueue(ctx context.Context, docID uint64) ([]models.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.QueueEntry{}
	for _, e := range m.Queue {
		if e.DocID == docID && e.Status == models.QueueStatusWaiting {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) TagEmergency(ctx context.Context, queueID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Queue[queueID]
	if !ok {
		return store.ErrNotFound
	}
	e.TaggedEmergency = true
	m.Queue[queueID] = e
	return nil
}

func (m *Memory) StartConsultation(ctx context.Context, queueID, docID uint64) (models.QueueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Queue[queueID]
	if !ok || e.DocID != docID {
		return models.QueueEntry{}, store.ErrNotFound
	}
	if e.Status != models.QueueStatusWaiting {
		return models.QueueEntry{}, store.ErrInvalidState
	}
	e.Status = models.QueueStatusInConsultation
	m.Queue[queueID] = e
	d := m.Doctors[docID]
	d.Status = models.DoctorStatusOn
	m.Doctors[docID] = d
	return e, nil
}

// CompleteConsultation applies nothing when Errors["CompleteConsultation"] is set
// or no consultation was started for the patient.
func (m *Memory) CompleteConsultation(ctx context.Context, consultation *models.Consultation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("CompleteConsultation"); err != nil {
		return err
	}
	started := []uint64{}
	for id, e := range m.Queue {
		if e.PatientID == consultation.PatientID && e.DocID == consultation.DoctorID &&
			e.Status == models.QueueStatusInConsultation {
			started = append(started, id)
		}
	}
	if len(started) == 0 {
		return store.ErrInvalidState
	}
	for _, id := range started {
		delete(m.Queue, id)
	}

	consultation.ConsultationID = m.id()
	for i := range consultation.Items {
		consultation.Items[i].ItemID = m.id()
		consultation.Items[i].ConsultationID = consultation.ConsultationID
	}
	m.Consultations[consultation.ConsultationID] = *consultation
	d := m.Doctors[consultation.DoctorID]
	d.Status = models.DoctorStatusOff
	m.Doctors[consultation.DoctorID] = d
	return nil
}

func (m *Memory) withDoctor(c models.Consultation) models.Consultation {
	if d, ok := m.Doctors[c.DoctorID]; ok {
		c.Doctor = &d
	}
	return c
}

func (m *Memory) ListConsultationsByPatient(ctx context.Context, patientID uint64) ([]models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Consultation{}
	for _, c := range m.Consultations {
		if c.PatientID == patientID {
			out = append(out, m.withDoctor(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConsultationDate.After(out[j].ConsultationDate) })
	return out, nil
}

func (m *Memory) GetConsultation(ctx context.Context, consultationID uint64) (models.Consultation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Consultations[consultationID]
	if !ok {
		return models.Consultation{}, store.ErrNotFound
	}
	return m.withDoctor(c), nil
}

// CreateAppointment enforces the same slot uniqueness as the database indexes.
func (m *Memory) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctorTaken := false
	for _, a := range m.Appointments {
		if a.AppointmentDate != appointment.AppointmentDate || a.AppointmentTime != appointment.AppointmentTime {
			continue
		}
		if a.PatientID == appointment.PatientID {
			return store.ErrPatientSlotTaken
		}
		if a.DoctorID == appointment.DoctorID {
			doctorTaken = true
		}
	}
	if doctorTaken {
		return store.ErrDoctorSlotTaken
	}
	appointment.AppointmentID = m.id()
	appointment.CreatedAt = m.Now()
	m.Appointments[appointment.AppointmentID] = *appointment
	return nil
}

func (m *Memory) ListAppointmentsByPatient(ctx context.Context, patientID uint64) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range m.Appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate < out[j].AppointmentDate
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

func (m *Memory) CreateQuery(ctx context.Context, query *models.PatientQuery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	query.QueryID = m.id()
	query.CreatedAt = m.Now()
	m.Queries[query.QueryID] = *query
	return nil
}

func (m *Memory) ListQueriesByDoctor(ctx context.Context, docID uint64) ([]models.PatientQuery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.PatientQuery{}
	for _, q := range m.Queries {
		if q.DocID == nil || *q.DocID == docID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QueryID > out[j].QueryID })
	return out, nil
}

// surveys

func (m *Memory) CreateSurvey(ctx context.Context, survey *models.Survey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	survey.SurveyID = m.id()
	if survey.CreatedAt.IsZero() {
		survey.CreatedAt = m.Now()
	}
	m.Surveys[survey.SurveyID] = *survey
	return nil
}

func (m *Memory) ListSurveysByAsha(ctx context.Context, ashaID uint64, surveyType models.SurveyType, limit, offset int) ([]models.Survey, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := []models.Survey{}
	for _, s := range m.Surveys {
		if s.AshaID == ashaID && s.SurveyType == surveyType {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SurveyID > all[j].SurveyID })
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Survey{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *Memory) ListSurveysByPatient(ctx context.Context, patientID uint64) ([]models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Survey{}
	for _, s := range m.Surveys {
		if s.PatientID == patientID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SurveyID > out[j].SurveyID })
	return out, nil
}

func (m *Memory) ListSurveysByAshasOnDate(ctx context.Context, ashaIDs []uint64, surveyType models.SurveyType, date string) ([]models.Survey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[uint64]bool{}
	for _, id := range ashaIDs {
		wanted[id] = true
	}
	out := []models.Survey{}
	for _, s := range m.Surveys {
		if wanted[s.AshaID] && s.SurveyType == surveyType && s.CreatedAt.Format("2006-01-02") == date {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SurveyID < out[j].SurveyID })
	return out, nil
}

// documents

func (m *Memory) GetHistory(ctx context.Context, patientID uint64) (models.MedicalHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.Histories[patientID]
	if !ok {
		return models.MedicalHistory{}, store.ErrNotFound
	}
	return h, nil
}

func (m *Memory) AppendVisit(ctx context.Context, patientID uint64, visit models.Visit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("AppendVisit"); err != nil {
		return err
	}
	h, ok := m.Histories[patientID]
	if !ok {
		h = models.MedicalHistory{PatientID: patientID, CreatedAt: m.Now()}
	}
	h.History = append(h.History, visit)
	h.UpdatedAt = m.Now()
	m.Histories[patientID] = h
	return nil
}

func (m *Memory) GetInventory(ctx context.Context, chemistID uint64) (models.ChemistInventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.Inventories[chemistID]
	if !ok {
		return models.ChemistInventory{}, store.ErrNotFound
	}
	return inv, nil
}

func (m *Memory) ReplaceInventory(ctx context.Context, chemistID uint64, items []models.Medicine) (models.ChemistInventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.Inventories[chemistID]
	if !ok {
		inv = models.ChemistInventory{ChemistID: chemistID, CreatedAt: m.Now()}
	}
	if items == nil {
		items = []models.Medicine{}
	}
	inv.Inventory = append([]models.Medicine(nil), items...)
	inv.UpdatedAt = m.Now()
	m.Inventories[chemistID] = inv
	return inv, nil
}

func (m *Memory) AddMedicine(ctx context.Context, chemistID uint64, medicine models.Medicine) (models.ChemistInventory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inv, ok := m.Inventories[chemistID]
	if !ok {
		inv = models.ChemistInventory{ChemistID: chemistID, CreatedAt: m.Now()}
	}
	inv.Inventory = append(inv.Inventory, medicine)
	inv.UpdatedAt = m.Now()
	m.Inventories[chemistID] = inv
	return inv, nil
}
