package models

import (
	"time"
)

// MedicalHistory is the per-patient document in Mongo. Visits are appended
// after each completed consultation.
type MedicalHistory struct {
	PatientID uint64    `bson:"patient_id" json:"patient_id"`
	History   []Visit   `bson:"history" json:"history"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Visit struct {
	VisitDate   time.Time              `bson:"visit_date" json:"visit_date"`
	DoctorID    uint64                 `bson:"doctor_id" json:"doctor_id"`
	Diagnosis   string                 `bson:"diagnosis" json:"diagnosis"`
	Medications []Medication           `bson:"medications" json:"medications"`
	Vitals      map[string]interface{} `bson:"vitals,omitempty" json:"vitals,omitempty"` // e.g. {"bp": "120/80", "temp": 36.5}
	Notes       string                 `bson:"notes,omitempty" json:"notes,omitempty"`
}

type Medication struct {
	Name     string `bson:"name" json:"name"`
	Dose     string `bson:"dose" json:"dose"`
	Duration string `bson:"duration" json:"duration"`
}

// VisitFromConsultation turns a completed consultation into a history entry
func VisitFromConsultation(c Consultation, vitals map[string]interface{}) Visit {
	meds := make([]Medication, 0, len(c.Items))
	for _, item := range c.Items {
		meds = append(meds, Medication{
			Name:     item.MedicineName,
			Dose:     item.Dosage,
			Duration: item.Duration,
		})
	}
	return Visit{
		VisitDate:   c.ConsultationDate,
		DoctorID:    c.DoctorID,
		Diagnosis:   c.Diagnosis,
		Medications: meds,
		Vitals:      vitals,
		Notes:       c.Notes,
	}
}
