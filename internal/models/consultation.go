package models

import "time"

const (
	QueueStatusWaiting        = "WAITING"
	QueueStatusInConsultation = "IN_CONSULTATION"

	PriorityRed    = "RED"
	PriorityOrange = "ORANGE"
	PriorityYellow = "YELLOW"
	PriorityGreen  = "GREEN"
)

// QueueEntry is a patient waiting for a doctor
type QueueEntry struct {
	QueueID         uint64    `gorm:"column:queue_id;primaryKey" json:"queue_id"`
	PatientID       uint64    `gorm:"not null;index" json:"patient_id"`
	DocID           uint64    `gorm:"column:doc_id;not null;index" json:"doc_id"`
	Priority        string    `gorm:"size:10" json:"priority"`
	TaggedEmergency bool      `gorm:"default:false" json:"tagged_emergency"`
	Status          string    `gorm:"size:20;default:WAITING;index" json:"status"`
	InTime          time.Time `gorm:"not null" json:"in_time"`
}

func (QueueEntry) TableName() string { return "patient_queue" }

type AddToQueueInput struct {
	PatientID       uint64 `json:"patient_id" binding:"required"`
	Priority        string `json:"priority" binding:"required,oneof=RED ORANGE YELLOW GREEN"`
	TaggedEmergency bool   `json:"tagged_emergency"`
}

// Consultation is written when a doctor completes an encounter
type Consultation struct {
	ConsultationID   uint64    `gorm:"column:consultation_id;primaryKey" json:"consultation_id"`
	PatientID        uint64    `gorm:"not null;index" json:"patient_id"`
	DoctorID         uint64    `gorm:"not null;index" json:"doctor_id"`
	Diagnosis        string    `gorm:"type:text" json:"diagnosis"`
	Notes            string    `gorm:"type:text" json:"notes"`
	ConsultationDate time.Time `gorm:"not null" json:"consultation_date"`

	Items  []PrescriptionItem `gorm:"foreignKey:ConsultationID;references:ConsultationID" json:"items"`
	Doctor *Doctor            `gorm:"foreignKey:DoctorID;references:DocID" json:"-"`
}

func (Consultation) TableName() string { return "consultations" }

type PrescriptionItem struct {
	ItemID         uint64 `gorm:"column:item_id;primaryKey" json:"item_id"`
	ConsultationID uint64 `gorm:"not null;index" json:"consultation_id"`
	MedicineName   string `gorm:"size:150;not null" json:"medicine_name"`
	Dosage         string `gorm:"size:100" json:"dosage"`
	Frequency      string `gorm:"size:100" json:"frequency"`
	Duration       string `gorm:"size:100" json:"duration"`
	Instructions   string `gorm:"type:text" json:"instructions"`
}

func (PrescriptionItem) TableName() string { return "prescription_items" }

type PrescriptionItemInput struct {
	MedicineName string `json:"medicine_name" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// ConsultationInput is the consultation-with-items body. Items may be empty.
type ConsultationInput struct {
	PatientID uint64                  `json:"patient_id" binding:"required"`
	Diagnosis string                  `json:"diagnosis" binding:"required"`
	Notes     string                  `json:"notes"`
	Vitals    map[string]interface{}  `json:"vitals"`
	Items     []PrescriptionItemInput `json:"items" binding:"dive"`
}

// ConsultationView is a consultation joined with its doctor, as patients see it
type ConsultationView struct {
	ConsultationID   uint64             `json:"consultation_id"`
	ConsultationDate time.Time          `json:"consultation_date"`
	DoctorID         uint64             `json:"doctor_id"`
	DoctorName       string             `json:"doctor_name"`
	DoctorPhone      string             `json:"doctor_phone"`
	Diagnosis        string             `json:"diagnosis"`
	Notes            string             `json:"notes"`
	Items            []PrescriptionItem `json:"items"`
}

// ConsultationSummary is the one-line listing
type ConsultationSummary struct {
	ConsultationID           uint64    `json:"consultation_id"`
	ConsultationDate         time.Time `json:"consultation_date"`
	ConsultationDateReadable string    `json:"consultation_date_readable"`
	DoctorName               string    `json:"doctor_name"`
	DoctorID                 uint64    `json:"doctor_id"`
}

func (c Consultation) View() ConsultationView {
	v := ConsultationView{
		ConsultationID:   c.ConsultationID,
		ConsultationDate: c.ConsultationDate,
		DoctorID:         c.DoctorID,
		Diagnosis:        c.Diagnosis,
		Notes:            c.Notes,
		Items:            c.Items,
	}
	if v.Items == nil {
		v.Items = []PrescriptionItem{}
	}
	if c.Doctor != nil {
		v.DoctorName = c.Doctor.DocName
		v.DoctorPhone = c.Doctor.Phone
	}
	return v
}

func (c Consultation) Summary() ConsultationSummary {
	s := ConsultationSummary{
		ConsultationID:           c.ConsultationID,
		ConsultationDate:         c.ConsultationDate,
		ConsultationDateReadable: c.ConsultationDate.Format("02 Jan 2006"),
		DoctorID:                 c.DoctorID,
	}
	if c.Doctor != nil {
		s.DoctorName = c.Doctor.DocName
	}
	return s
}
