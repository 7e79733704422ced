package models

import (
	"time"

	"gorm.io/datatypes"
)

// SurveyType selects the form an ASHA worker filled in
type SurveyType string

const (
	SurveyGeneral     SurveyType = "GENERAL"
	SurveyTBFirst     SurveyType = "TB_FIRST"
	SurveyTBFollowup  SurveyType = "TB_FOLLOWUP"
	SurveyANCFirst    SurveyType = "ANC_FIRST"
	SurveyANCFollowup SurveyType = "ANC_FOLLOWUP"
)

var surveyTypeSlugs = map[string]SurveyType{
	"general":      SurveyGeneral,
	"tb-first":     SurveyTBFirst,
	"tb-followup":  SurveyTBFollowup,
	"anc":          SurveyANCFirst,
	"anc-followup": SurveyANCFollowup,
}

// ParseSurveyType maps a URL slug (e.g. "tb-first") to a SurveyType.
func ParseSurveyType(slug string) (SurveyType, bool) {
	t, ok := surveyTypeSlugs[slug]
	return t, ok
}

// Survey keeps the form answers as JSON, the questions differ per type
type Survey struct {
	SurveyID   uint64         `gorm:"column:survey_id;primaryKey" json:"survey_id"`
	AshaID     uint64         `gorm:"not null;index" json:"asha_id"`
	PatientID  uint64         `gorm:"not null;index" json:"patient_id"`
	SurveyType SurveyType     `gorm:"size:20;not null;index" json:"survey_type"`
	VisitDate  string         `gorm:"size:10" json:"visit_date"`
	Answers    datatypes.JSON `json:"answers"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (Survey) TableName() string { return "surveys" }

type SurveyInput struct {
	PatientID uint64         `json:"patient_id" binding:"required"`
	VisitDate string         `json:"visit_date" binding:"omitempty,datetime=2006-01-02"`
	Answers   datatypes.JSON `json:"answers" binding:"required"`
}

// SurveyPage is one page of an ASHA worker's surveys
type SurveyPage struct {
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	Total      int64    `json:"total"`
	TotalPages int      `json:"totalPages"`
	Surveys    []Survey `json:"surveys"`
}

// PatientQuery is a question raised for a doctor on behalf of a patient
type PatientQuery struct {
	QueryID   uint64    `gorm:"column:query_id;primaryKey" json:"query_id"`
	PatientID uint64    `gorm:"not null;index" json:"patient_id"`
	AshaID    *uint64   `json:"asha_id"`
	DocID     *uint64   `gorm:"column:doc_id;index" json:"doc_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	VoiceURL  string    `gorm:"size:255" json:"voice_url"`
	Disease   string    `gorm:"size:100" json:"disease"`
	Status    string    `gorm:"column:query_status;size:20;default:PENDING" json:"query_status"`
	CreatedAt time.Time `json:"created_at"`
}

func (PatientQuery) TableName() string { return "queries" }

type PatientQueryInput struct {
	PatientID uint64  `json:"patient_id"`
	DocID     *uint64 `json:"doc_id"`
	Text      string  `json:"text" binding:"required"`
	VoiceURL  string  `json:"voice_url" binding:"omitempty,url"`
	Disease   string  `json:"disease" binding:"required"`
}
