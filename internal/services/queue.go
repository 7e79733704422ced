package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"

	"github.com/rs/zerolog"
)

// RankEntry is the triage rank of a queue entry, lower goes first.
func RankEntry(e models.QueueEntry) int {
	if e.TaggedEmergency {
		return 0
	}
	switch strings.ToUpper(e.Priority) {
	case models.PriorityRed:
		return 1
	case models.PriorityOrange:
		return 2
	default:
		return 3
	}
}

// SortQueue orders entries by rank, then arrival, then queue id.
func SortQueue(entries []models.QueueEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := RankEntry(a), RankEntry(b); ra != rb {
			return ra < rb
		}
		if !a.InTime.Equal(b.InTime) {
			return a.InTime.Before(b.InTime)
		}
		return a.QueueID < b.QueueID
	})
}

type QueueService struct {
	store  store.Store
	docs   store.DocumentStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewQueueService(st store.Store, docs store.DocumentStore, logger zerolog.Logger) *QueueService {
	return &QueueService{store: st, docs: docs, logger: logger, now: time.Now}
}

func (s *QueueService) AddToQueue(ctx context.Context, doctor Actor, input models.AddToQueueInput) (models.QueueEntry, error) {
	if _, err := s.store.GetPatient(ctx, input.PatientID); err != nil {
		return models.QueueEntry{}, storeError(err, "Patient not found")
	}

	entry := models.QueueEntry{
		PatientID:       input.PatientID,
		DocID:           doctor.DoctorID,
		Priority:        strings.ToUpper(input.Priority),
		TaggedEmergency: input.TaggedEmergency,
		Status:          models.QueueStatusWaiting,
		InTime:          s.now(),
	}
	if err := s.store.AddQueueEntry(ctx, &entry); err != nil {
		return models.QueueEntry{}, storeError(err, "Queue entry not found")
	}
	return entry, nil
}

// ListQueue returns the doctor's waiting patients in triage order.
func (s *QueueService) ListQueue(ctx context.Context, docID uint64) ([]models.QueueEntry, error) {
	entries, err := s.store.ListWaitingQueue(ctx, docID)
	if err != nil {
		return nil, storeError(err, "Queue not found")
	}
	SortQueue(entries)
	return entries, nil
}

func (s *QueueService) TagEmergency(ctx context.Context, doctor Actor, queueID uint64) (models.QueueEntry, error) {
	entry, err := s.store.GetQueueEntry(ctx, queueID)
	if err != nil {
		return models.QueueEntry{}, storeError(err, "Queue entry not found")
	}
	if entry.DocID != doctor.DoctorID {
		return models.QueueEntry{}, utils.AuthorizationError("Queue entry belongs to another doctor")
	}
	if err := s.store.TagEmergency(ctx, queueID); err != nil {
		return models.QueueEntry{}, storeError(err, "Queue entry not found")
	}
	entry.TaggedEmergency = true
	return entry, nil
}

func (s *QueueService) StartConsultation(ctx context.Context, doctor Actor, queueID uint64) (models.QueueEntry, error) {
	entry, err := s.store.StartConsultation(ctx, queueID, doctor.DoctorID)
	if err != nil {
		if errors.Is(err, store.ErrInvalidState) {
			return models.QueueEntry{}, utils.ConflictError("Consultation already started")
		}
		return models.QueueEntry{}, storeError(err, "Queue entry not found")
	}
	return entry, nil
}

// CompleteConsultation stores the consultation and its items, clears the
// queue entry and frees the doctor in one transaction. The visit is then
// appended to the patient's medical history; that step is logged on failure
// and never undoes the consultation.
func (s *QueueService) CompleteConsultation(ctx context.Context, doctor Actor, input models.ConsultationInput) (models.Consultation, error) {
	if _, err := s.store.GetPatient(ctx, input.PatientID); err != nil {
		return models.Consultation{}, storeError(err, "Patient not found")
	}

	consultation := models.Consultation{
		PatientID:        input.PatientID,
		DoctorID:         doctor.DoctorID,
		Diagnosis:        input.Diagnosis,
		Notes:            input.Notes,
		ConsultationDate: s.now(),
		Items:            make([]models.PrescriptionItem, 0, len(input.Items)),
	}
	for _, item := range input.Items {
		consultation.Items = append(consultation.Items, models.PrescriptionItem{
			MedicineName: item.MedicineName,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		})
	}

	if err := s.store.CompleteConsultation(ctx, &consultation); err != nil {
		if errors.Is(err, store.ErrInvalidState) {
			return models.Consultation{}, utils.ConflictError("No consultation in progress for this patient")
		}
		return models.Consultation{}, storeError(err, "Consultation not found")
	}

	if s.docs != nil {
		visit := models.VisitFromConsultation(consultation, input.Vitals)
		if err := s.docs.AppendVisit(ctx, consultation.PatientID, visit); err != nil {
			s.logger.Error().Err(err).
				Uint64("consultation_id", consultation.ConsultationID).
				Uint64("patient_id", consultation.PatientID).
				Msg("medical history append failed")
		}
	}
	return consultation, nil
}
