package gormstore

import (
	"context"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
)

func (s *Store) GetUser(ctx context.Context, userID uint64) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	return user, translate(err)
}

func (s *Store) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	return user, translate(err)
}

func (s *Store) UpdateUserCredentials(ctx context.Context, userID uint64, phone, passwordHash string) error {
	updates := map[string]interface{}{}
	if phone != "" {
		updates["phone"] = phone
	}
	if passwordHash != "" {
		updates["user_password"] = passwordHash
	}
	if len(updates) == 0 {
		return nil
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) GetAsha(ctx context.Context, ashaID uint64) (models.AshaWorker, error) {
	var worker models.AshaWorker
	err := s.db.WithContext(ctx).Where("asha_id = ?", ashaID).First(&worker).Error
	return worker, translate(err)
}

func (s *Store) GetAshaByUserID(ctx context.Context, userID uint64) (models.AshaWorker, error) {
	var worker models.AshaWorker
	err := s.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&worker).Error
	return worker, translate(err)
}

func (s *Store) GetPatient(ctx context.Context, patientID uint64) (models.Patient, error) {
	var patient models.Patient
	err := s.db.WithContext(ctx).Where("patient_id = ?", patientID).First(&patient).Error
	return patient, translate(err)
}

func (s *Store) GetPatientByUserID(ctx context.Context, userID uint64) (models.Patient, error) {
	var patient models.Patient
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&patient).Error
	return patient, translate(err)
}

func (s *Store) GetDoctor(ctx context.Context, docID uint64) (models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.WithContext(ctx).Where("doc_id = ?", docID).First(&doctor).Error
	return doctor, translate(err)
}

func (s *Store) GetDoctorByUserID(ctx context.Context, userID uint64) (models.Doctor, error) {
	var doctor models.Doctor
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&doctor).Error
	return doctor, translate(err)
}

func (s *Store) GetChemistByUserID(ctx context.Context, userID uint64) (models.Chemist, error) {
	var chemist models.Chemist
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&chemist).Error
	return chemist, translate(err)
}

func (s *Store) GetSupervisorDetails(ctx context.Context, userID uint64) (models.SupervisorDetails, error) {
	var details models.SupervisorDetails
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&details).Error
	return details, translate(err)
}

func (s *Store) GetLHVDetails(ctx context.Context, userID uint64) (models.LHVDetails, error) {
	var details models.LHVDetails
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&details).Error
	return details, translate(err)
}

func (s *Store) ListPatientsBySupreme(ctx context.Context, headID uint64) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Where("supreme_id = ?", headID).
		Order("patient_id ASC").
		Find(&patients).Error
	return patients, translate(err)
}

func (s *Store) ListPatientsByAsha(ctx context.Context, ashaID uint64) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.WithContext(ctx).
		Where("registered_asha_id = ?", ashaID).
		Order("created_at DESC").
		Find(&patients).Error
	return patients, translate(err)
}

func (s *Store) ListAshasBySupervisor(ctx context.Context, supervisorAshaID uint64) ([]models.AshaWorker, error) {
	var workers []models.AshaWorker
	err := s.db.WithContext(ctx).
		Where("supervisor_id = ?", supervisorAshaID).
		Order("asha_id ASC").
		Find(&workers).Error
	return workers, translate(err)
}

func (s *Store) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := s.db.WithContext(ctx).Order("doc_name ASC").Find(&doctors).Error
	return doctors, translate(err)
}

func (s *Store) UpdateAshaProfilePic(ctx context.Context, ashaID uint64, url string) error {
	res := s.db.WithContext(ctx).Model(&models.AshaWorker{}).Where("asha_id = ?", ashaID).Update("profile_pic", url)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
