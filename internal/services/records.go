package services

import (
	"context"
	"strings"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

// RecordService serves the read side of clinical records plus patient queries.
type RecordService struct {
	store store.Store
	docs  store.DocumentStore
}

func NewRecordService(st store.Store, docs store.DocumentStore) *RecordService {
	return &RecordService{store: st, docs: docs}
}

func (s *RecordService) PatientConsultations(ctx context.Context, patient Actor) ([]models.ConsultationView, error) {
	consultations, err := s.store.ListConsultationsByPatient(ctx, patient.PatientID)
	if err != nil {
		return nil, storeError(err, "Consultations not found")
	}
	views := make([]models.ConsultationView, 0, len(consultations))
	for _, c := range consultations {
		views = append(views, c.View())
	}
	return views, nil
}

func (s *RecordService) ConsultationSummaries(ctx context.Context, patient Actor) ([]models.ConsultationSummary, error) {
	consultations, err := s.store.ListConsultationsByPatient(ctx, patient.PatientID)
	if err != nil {
		return nil, storeError(err, "Consultations not found")
	}
	summaries := make([]models.ConsultationSummary, 0, len(consultations))
	for _, c := range consultations {
		summaries = append(summaries, c.Summary())
	}
	return summaries, nil
}

// PatientConsultation returns one consultation, only to the patient it belongs to.
func (s *RecordService) PatientConsultation(ctx context.Context, patient Actor, consultationID uint64) (models.ConsultationView, error) {
	c, err := s.store.GetConsultation(ctx, consultationID)
	if err != nil {
		return models.ConsultationView{}, storeError(err, "Consultation not found")
	}
	if c.PatientID != patient.PatientID {
		return models.ConsultationView{}, utils.AuthorizationError("You can only view your own consultations")
	}
	return c.View(), nil
}

func (s *RecordService) History(ctx context.Context, patientID uint64) (models.MedicalHistory, error) {
	history, err := s.docs.GetHistory(ctx, patientID)
	if err != nil {
		return models.MedicalHistory{}, storeError(err, "No medical history found for this patient")
	}
	if history.History == nil {
		history.History = []models.Visit{}
	}
	return history, nil
}

// PatientHistory is History for a patient id that must exist.
func (s *RecordService) PatientHistory(ctx context.Context, patientID uint64) (models.MedicalHistory, error) {
	if _, err := s.store.GetPatient(ctx, patientID); err != nil {
		return models.MedicalHistory{}, storeError(err, "Patient not found")
	}
	return s.History(ctx, patientID)
}

func (s *RecordService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.store.ListDoctors(ctx)
	if err != nil {
		return nil, storeError(err, "Doctors not found")
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	return doctors, nil
}

// RaiseQuery records a question for a doctor. Patients ask for themselves,
// ASHA workers ask on behalf of a patient.
func (s *RecordService) RaiseQuery(ctx context.Context, actor Actor, input models.PatientQueryInput) (models.PatientQuery, error) {
	query := models.PatientQuery{
		Text:     strings.TrimSpace(input.Text),
		VoiceURL: input.VoiceURL,
		Disease:  strings.TrimSpace(input.Disease),
		Status:   "PENDING",
	}

	switch actor.Role {
	case models.RolePatient:
		query.PatientID = actor.PatientID
	case models.RoleAsha:
		if input.PatientID == 0 {
			return models.PatientQuery{}, utils.ValidationError("patient_id is required")
		}
		if _, err := s.store.GetPatient(ctx, input.PatientID); err != nil {
			return models.PatientQuery{}, storeError(err, "Patient not found")
		}
		ashaID := actor.AshaID
		query.PatientID = input.PatientID
		query.AshaID = &ashaID
	default:
		return models.PatientQuery{}, utils.AuthorizationError("Only patients and ASHA workers can raise queries")
	}

	if input.DocID != nil && *input.DocID != 0 {
		if _, err := s.store.GetDoctor(ctx, *input.DocID); err != nil {
			return models.PatientQuery{}, storeError(err, "Doctor not found")
		}
		docID := *input.DocID
		query.DocID = &docID
	}

	if err := s.store.CreateQuery(ctx, &query); err != nil {
		return models.PatientQuery{}, storeError(err, "Query not found")
	}
	return query, nil
}

// DoctorQueries lists queries addressed to the doctor or to no doctor yet.
func (s *RecordService) DoctorQueries(ctx context.Context, doctor Actor) ([]models.PatientQuery, error) {
	queries, err := s.store.ListQueriesByDoctor(ctx, doctor.DoctorID)
	if err != nil {
		return nil, storeError(err, "Queries not found")
	}
	return queries, nil
}
