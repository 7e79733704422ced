package models

import "time"

// Patient rows are grouped into families by SupremeID. A family head points
// at itself, so SupremeID is always set once the row is committed.
type Patient struct {
	PatientID        uint64    `gorm:"column:patient_id;primaryKey" json:"patient_id"`
	UserID           uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	SupremeID        uint64    `gorm:"column:supreme_id;not null;index" json:"supreme_id"`
	RegisteredAshaID *uint64   `gorm:"column:registered_asha_id;index" json:"registered_asha_id"`
	PatientName      string    `gorm:"column:patient_name;size:100;not null" json:"patient_name"`
	Gender           string    `gorm:"size:10" json:"gender"`
	DOB              string    `gorm:"column:dob;size:10" json:"dob"` // YYYY-MM-DD
	Phone            string    `gorm:"size:20" json:"phone"`
	ProfilePic       string    `gorm:"size:255" json:"profile_pic"`
	Village          string    `gorm:"size:100" json:"village"`
	Taluka           string    `gorm:"size:100" json:"taluka"`
	District         string    `gorm:"size:100" json:"district"`
	History          string    `gorm:"type:text" json:"history"`
	CreatedAt        time.Time `json:"created_at"`
}

func (Patient) TableName() string { return "patient" }

// CohortHead is the patient id shared by the whole family. Rows that have
// not been normalized yet (zero supreme id) are their own head.
func (p Patient) CohortHead() uint64 {
	if p.SupremeID == 0 {
		return p.PatientID
	}
	return p.SupremeID
}

func (p Patient) IsFamilyHead() bool {
	return p.CohortHead() == p.PatientID
}

// PatientSummary is the family-profile projection, no credentials
type PatientSummary struct {
	PatientID   uint64 `json:"patient_id"`
	PatientName string `json:"patient_name"`
	Gender      string `json:"gender"`
	DOB         string `json:"dob"`
	Phone       string `json:"phone"`
	ProfilePic  string `json:"profile_pic"`
	Village     string `json:"village"`
	Taluka      string `json:"taluka"`
	District    string `json:"district"`
}

func (p Patient) Summary() PatientSummary {
	return PatientSummary{
		PatientID:   p.PatientID,
		PatientName: p.PatientName,
		Gender:      p.Gender,
		DOB:         p.DOB,
		Phone:       p.Phone,
		ProfilePic:  p.ProfilePic,
		Village:     p.Village,
		Taluka:      p.Taluka,
		District:    p.District,
	}
}

// RegisterPatientInput is posted by an ASHA worker enrolling a patient
type RegisterPatientInput struct {
	Name       string  `json:"patient_name" binding:"required"`
	Password   string  `json:"patient_password" binding:"required,min=6"`
	Gender     string  `json:"patient_gender" binding:"required,oneof=M F O"`
	DOB        string  `json:"patient_dob" binding:"omitempty,datetime=2006-01-02"`
	Phone      string  `json:"patient_phone" binding:"required,min=10,max=15"`
	SupremeID  *uint64 `json:"patient_supreme_id"`
	ProfilePic string  `json:"patient_profile_pic" binding:"omitempty,url"`
	Village    string  `json:"patient_village" binding:"required"`
	Taluka     string  `json:"patient_taluka" binding:"required"`
	District   string  `json:"patient_dist" binding:"required"`
	History    string  `json:"patient_hist"`
}

// PatientProfile is the GET /patient/profile response
type PatientProfile struct {
	Patient        Patient          `json:"patient"`
	FamilyProfiles []PatientSummary `json:"familyProfiles"`
	AshaWorker     *AshaContact     `json:"ashaWorker"`
}

// AshaContact is what a patient sees of the ASHA who enrolled them
type AshaContact struct {
	AshaID   uint64 `json:"asha_id"`
	AshaName string `json:"asha_name"`
	Phone    string `json:"asha_phone"`
	Village  string `json:"asha_village"`
	Taluka   string `json:"asha_taluka"`
	District string `json:"asha_dist"`
}
