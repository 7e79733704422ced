package models

import "time"

// Appointment slots are unique per doctor and per patient. The unique index
// is what serializes concurrent bookings of the same slot.
type Appointment struct {
	AppointmentID   uint64    `gorm:"column:appointment_id;primaryKey" json:"appointment_id"`
	PatientID       uint64    `gorm:"not null;uniqueIndex:idx_patient_slot" json:"patient_id"`
	DoctorID        uint64    `gorm:"not null;uniqueIndex:idx_doctor_slot" json:"doctor_id"`
	AppointmentDate string    `gorm:"size:10;not null;uniqueIndex:idx_doctor_slot;uniqueIndex:idx_patient_slot" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5;not null;uniqueIndex:idx_doctor_slot;uniqueIndex:idx_patient_slot" json:"appointment_time"`
	Notes           string    `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Appointment) TableName() string { return "appointments" }

type BookAppointmentInput struct {
	DoctorID        uint64 `json:"doctor_id" binding:"required"`
	AppointmentDate string `json:"appointment_date" binding:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" binding:"required,datetime=15:04"`
	Notes           string `json:"notes"`
}
