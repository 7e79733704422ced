package gormstore

import (
	"context"
	"errors"

	"asha-backend/internal/models"
	"asha-backend/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) AddQueueEntry(ctx context.Context, entry *models.QueueEntry) error {
	return translate(s.db.WithContext(ctx).Create(entry).Error)
}

func (s *Store) GetQueueEntry(ctx context.Context, queueID uint64) (models.QueueEntry, error) {
	var entry models.QueueEntry
	err := s.db.WithContext(ctx).Where("queue_id = ?", queueID).First(&entry).Error
	return entry, translate(err)
}

// ListWaitingQueue returns the doctor's WAITING entries unordered; ranking is
// done by the caller.
func (s *Store) ListWaitingQueue(ctx context.Context, docID uint64) ([]models.QueueEntry, error) {
	entries := []models.QueueEntry{}
	err := s.db.WithContext(ctx).
		Where("doc_id = ? AND status = ?", docID, models.QueueStatusWaiting).
		Find(&entries).Error
	return entries, translate(err)
}

func (s *Store) TagEmergency(ctx context.Context, queueID uint64) error {
	res := s.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where("queue_id = ?", queueID).
		Update("tagged_emergency", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero rows when the value did not change
		if _, err := s.GetQueueEntry(ctx, queueID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) StartConsultation(ctx context.Context, queueID, docID uint64) (models.QueueEntry, error) {
	var entry models.QueueEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the entry so two starts cannot both see WAITING
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("queue_id = ?", queueID).
			First(&entry).Error; err != nil {
			return err
		}
		if entry.DocID != docID {
			return store.ErrNotFound
		}
		if entry.Status != models.QueueStatusWaiting {
			return store.ErrInvalidState
		}

		// 2. Move the entry and the doctor together
		if err := tx.Model(&entry).Update("status", models.QueueStatusInConsultation).Error; err != nil {
			return err
		}
		entry.Status = models.QueueStatusInConsultation
		return tx.Model(&models.Doctor{}).
			Where("doc_id = ?", docID).
			Update("doc_status", models.DoctorStatusOn).Error
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidState) {
			return models.QueueEntry{}, err
		}
		return models.QueueEntry{}, translate(err)
	}
	return entry, nil
}

// CompleteConsultation requires a started consultation for this doctor and
// patient; without one it returns store.ErrInvalidState and writes nothing.
func (s *Store) CompleteConsultation(ctx context.Context, consultation *models.Consultation) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. The patient leaves this doctor's queue
		res := tx.Where("patient_id = ? AND doc_id = ? AND status = ?",
			consultation.PatientID, consultation.DoctorID, models.QueueStatusInConsultation).
			Delete(&models.QueueEntry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrInvalidState
		}

		// 2. Consultation row, items follow through the association
		if err := tx.Omit("Doctor").Create(consultation).Error; err != nil {
			return err
		}

		// 3. Doctor is free again
		return tx.Model(&models.Doctor{}).
			Where("doc_id = ?", consultation.DoctorID).
			Update("doc_status", models.DoctorStatusOff).Error
	})
	if errors.Is(err, store.ErrInvalidState) {
		return err
	}
	return translate(err)
}

func (s *Store) ListConsultationsByPatient(ctx context.Context, patientID uint64) ([]models.Consultation, error) {
	consultations := []models.Consultation{}
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("consultation_date DESC").
		Find(&consultations).Error
	return consultations, translate(err)
}

func (s *Store) GetConsultation(ctx context.Context, consultationID uint64) (models.Consultation, error) {
	var consultation models.Consultation
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Doctor").
		Where("consultation_id = ?", consultationID).
		First(&consultation).Error
	return consultation, translate(err)
}

// CreateAppointment relies on the slot unique indexes. On a violation it
// looks up which side already holds the slot, patient first.
func (s *Store) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	err := translate(s.db.WithContext(ctx).Create(appointment).Error)
	if !errors.Is(err, store.ErrConflict) {
		return err
	}

	if s.slotHeld(ctx, appointment, "patient_id", appointment.PatientID) {
		return store.ErrPatientSlotTaken
	}
	if s.slotHeld(ctx, appointment, "doctor_id", appointment.DoctorID) {
		return store.ErrDoctorSlotTaken
	}
	return err
}

func (s *Store) slotHeld(ctx context.Context, appointment *models.Appointment, column string, id uint64) bool {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Appointment{}).
		Where(column+" = ? AND appointment_date = ? AND appointment_time = ?",
			id, appointment.AppointmentDate, appointment.AppointmentTime).
		Count(&count).Error
	return err == nil && count > 0
}

func (s *Store) ListAppointmentsByPatient(ctx context.Context, patientID uint64) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	return appointments, translate(err)
}

func (s *Store) CreateQuery(ctx context.Context, query *models.PatientQuery) error {
	return translate(s.db.WithContext(ctx).Create(query).Error)
}

func (s *Store) ListQueriesByDoctor(ctx context.Context, docID uint64) ([]models.PatientQuery, error) {
	queries := []models.PatientQuery{}
	err := s.db.WithContext(ctx).
		Where("doc_id = ? OR doc_id IS NULL", docID).
		Order("created_at DESC").
		Find(&queries).Error
	return queries, translate(err)
}
