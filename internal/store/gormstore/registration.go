package gormstore

import (
	"context"

	"asha-backend/internal/models"

	"gorm.io/gorm"
)

// createWithUser inserts the user row, stamps its id on the role row via
// link and runs the remaining writes in the same transaction.
func (s *Store) createWithUser(ctx context.Context, user *models.User, link func(tx *gorm.DB, userID uint64) error) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return link(tx, user.UserID)
	}))
}

func (s *Store) CreateSupervisor(ctx context.Context, user *models.User, worker *models.AshaWorker, details *models.SupervisorDetails) error {
	return s.createWithUser(ctx, user, func(tx *gorm.DB, userID uint64) error {
		worker.UserID = userID
		worker.SupervisorID = nil
		if err := tx.Create(worker).Error; err != nil {
			return err
		}
		details.UserID = userID
		return tx.Create(details).Error
	})
}

func (s *Store) CreateAsha(ctx context.Context, user *models.User, worker *models.AshaWorker) error {
	return s.createWithUser(ctx, user, func(tx *gorm.DB, userID uint64) error {
		worker.UserID = userID
		return tx.Create(worker).Error
	})
}

// CreatePatient makes the patient its own family head when no SupremeID is
// given. The self reference is written before the transaction commits.
func (s *Store) CreatePatient(ctx context.Context, user *models.User, patient *models.Patient) error {
	return s.createWithUser(ctx, user, func(tx *gorm.DB, userID uint64) error {
		patient.UserID = userID
		if err := tx.Create(patient).Error; err != nil {
			return err
		}
		if patient.SupremeID != 0 {
			return nil
		}
		patient.SupremeID = patient.PatientID
		return tx.Model(patient).Update("supreme_id", patient.PatientID).Error
	})
}

func (s *Store) CreateLHV(ctx context.Context, user *models.User, details *models.LHVDetails) error {
	return s.createWithUser(ctx, user, func(tx *gorm.DB, userID uint64) error {
		details.UserID = userID
		return tx.Create(details).Error
	})
}

func (s *Store) CreateDoctor(ctx context.Context, user *models.User, doctor *models.Doctor) error {
	return s.createWithUser(ctx, user, func(tx *gorm.DB, userID uint64) error {
		doctor.UserID = userID
		if doctor.Status == "" {
			doctor.Status = models.DoctorStatusOff
		}
		return tx.Create(doctor).Error
	})
}

func (s *Store) CreateChemist(ctx context.Context, user *models.User, chemist *models.Chemist) error {
	return s.createWithUser(ctx, user, func(tx *gorm.DB, userID uint64) error {
		chemist.UserID = userID
		return tx.Create(chemist).Error
	})
}
