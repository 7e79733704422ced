package services

import (
	"context"
	"encoding/json"
	"time"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"
)

const (
	defaultSurveyPage  = 1
	defaultSurveyLimit = 5
	maxSurveyLimit     = 100
)

type SurveyService struct {
	store store.Store
	now   func() time.Time
}

func NewSurveyService(st store.Store) *SurveyService {
	return &SurveyService{store: st, now: time.Now}
}

func parseSurveyType(slug string) (models.SurveyType, error) {
	t, ok := models.ParseSurveyType(slug)
	if !ok {
		return "", utils.ValidationError("Unknown survey type " + slug)
	}
	return t, nil
}

func (s *SurveyService) Save(ctx context.Context, asha Actor, slug string, input models.SurveyInput) (models.Survey, error) {
	surveyType, err := parseSurveyType(slug)
	if err != nil {
		return models.Survey{}, err
	}
	var answers map[string]interface{}
	if err := json.Unmarshal(input.Answers, &answers); err != nil {
		return models.Survey{}, utils.ValidationError("answers must be a JSON object")
	}
	if _, err := s.store.GetPatient(ctx, input.PatientID); err != nil {
		return models.Survey{}, storeError(err, "Patient not found")
	}

	visitDate := input.VisitDate
	if visitDate == "" {
		visitDate = s.now().Format("2006-01-02")
	}
	survey := models.Survey{
		AshaID:     asha.AshaID,
		PatientID:  input.PatientID,
		SurveyType: surveyType,
		VisitDate:  visitDate,
		Answers:    input.Answers,
	}
	if err := s.store.CreateSurvey(ctx, &survey); err != nil {
		return models.Survey{}, storeError(err, "Survey not found")
	}
	return survey, nil
}

// ListOwn pages through the actor's surveys of one type, newest first.
func (s *SurveyService) ListOwn(ctx context.Context, asha Actor, slug string, page, limit int) (models.SurveyPage, error) {
	surveyType, err := parseSurveyType(slug)
	if err != nil {
		return models.SurveyPage{}, err
	}
	if page < 1 {
		page = defaultSurveyPage
	}
	if limit < 1 {
		limit = defaultSurveyLimit
	}
	if limit > maxSurveyLimit {
		limit = maxSurveyLimit
	}

	surveys, total, err := s.store.ListSurveysByAsha(ctx, asha.AshaID, surveyType, limit, (page-1)*limit)
	if err != nil {
		return models.SurveyPage{}, storeError(err, "Surveys not found")
	}
	if surveys == nil {
		surveys = []models.Survey{}
	}
	return models.SurveyPage{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		Surveys:    surveys,
	}, nil
}

func (s *SurveyService) ListByPatient(ctx context.Context, patientID uint64) ([]models.Survey, error) {
	if _, err := s.store.GetPatient(ctx, patientID); err != nil {
		return nil, storeError(err, "Patient not found")
	}
	surveys, err := s.store.ListSurveysByPatient(ctx, patientID)
	if err != nil {
		return nil, storeError(err, "Surveys not found")
	}
	return surveys, nil
}

// ListTeamOnDate returns the surveys recorded on date by the supervisor's ASHA workers.
func (s *SurveyService) ListTeamOnDate(ctx context.Context, supervisor Actor, slug, date string) ([]models.Survey, error) {
	surveyType, err := parseSurveyType(slug)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, utils.ValidationError("date must be YYYY-MM-DD")
	}

	team, err := s.store.ListAshasBySupervisor(ctx, supervisor.AshaID)
	if err != nil {
		return nil, storeError(err, "ASHA workers not found")
	}
	ids := make([]uint64, 0, len(team))
	for _, w := range team {
		ids = append(ids, w.AshaID)
	}

	surveys, err := s.store.ListSurveysByAshasOnDate(ctx, ids, surveyType, date)
	if err != nil {
		return nil, storeError(err, "Surveys not found")
	}
	if surveys == nil {
		surveys = []models.Survey{}
	}
	return surveys, nil
}
