package gormstore

import (
	"context"

	"asha-backend/internal/models"
)

func (s *Store) CreateSurvey(ctx context.Context, survey *models.Survey) error {
	return translate(s.db.WithContext(ctx).Create(survey).Error)
}

func (s *Store) ListSurveysByAsha(ctx context.Context, ashaID uint64, surveyType models.SurveyType, limit, offset int) ([]models.Survey, int64, error) {
	var total int64
	base := s.db.WithContext(ctx).
		Model(&models.Survey{}).
		Where("asha_id = ? AND survey_type = ?", ashaID, surveyType)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	surveys := []models.Survey{}
	err := s.db.WithContext(ctx).
		Where("asha_id = ? AND survey_type = ?", ashaID, surveyType).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&surveys).Error
	return surveys, total, translate(err)
}

func (s *Store) ListSurveysByPatient(ctx context.Context, patientID uint64) ([]models.Survey, error) {
	surveys := []models.Survey{}
	err := s.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&surveys).Error
	return surveys, translate(err)
}

// ListSurveysByAshasOnDate matches on the day the survey was recorded.
func (s *Store) ListSurveysByAshasOnDate(ctx context.Context, ashaIDs []uint64, surveyType models.SurveyType, date string) ([]models.Survey, error) {
	surveys := []models.Survey{}
	if len(ashaIDs) == 0 {
		return surveys, nil
	}
	err := s.db.WithContext(ctx).
		Where("asha_id IN ? AND survey_type = ? AND DATE(created_at) = ?", ashaIDs, surveyType, date).
		Order("asha_id ASC, created_at ASC").
		Find(&surveys).Error
	return surveys, translate(err)
}
