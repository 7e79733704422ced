package models

import "time"

const (
	DoctorStatusOn  = "ON"
	DoctorStatusOff = "OFF"
)

// Doctor is the 'doctors' table, linked 1:1 to a DOCTOR user
type Doctor struct {
	DocID            uint64    `gorm:"column:doc_id;primaryKey" json:"doc_id"`
	UserID           uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	DocName          string    `gorm:"column:doc_name;size:100;not null" json:"doc_name"`
	DocRole          string    `gorm:"column:doc_role;size:10;not null" json:"doc_role"` // CHO, PHC, CIVIL
	ProfilePic       string    `gorm:"column:doc_profile_pic;size:255" json:"doc_profile_pic"`
	HospitalAddress  string    `gorm:"size:255" json:"hospital_address"`
	HospitalVillage  string    `gorm:"size:100" json:"hospital_village"`
	HospitalTaluka   string    `gorm:"size:100" json:"hospital_taluka"`
	HospitalDistrict string    `gorm:"size:100" json:"hospital_district"`
	HospitalState    string    `gorm:"size:100" json:"hospital_state"`
	Phone            string    `gorm:"column:doc_phone;size:20" json:"doc_phone"`
	Speciality       string    `gorm:"column:doc_speciality;size:100" json:"doc_speciality"`
	Status           string    `gorm:"column:doc_status;size:3;default:OFF" json:"doc_status"`
	CreatedAt        time.Time `gorm:"column:doc_created_at" json:"doc_created_at"`
}

func (Doctor) TableName() string { return "doctors" }

type RegisterDoctorInput struct {
	Name             string `json:"doc_name" binding:"required"`
	Password         string `json:"doc_password" binding:"required,min=6"`
	ProfilePic       string `json:"doc_profile_pic" binding:"omitempty,url"`
	Role             string `json:"doc_role" binding:"required,oneof=CHO PHC CIVIL"`
	HospitalAddress  string `json:"hospital_address" binding:"required"`
	HospitalVillage  string `json:"hospital_village" binding:"required"`
	HospitalTaluka   string `json:"hospital_taluka" binding:"required"`
	HospitalDistrict string `json:"hospital_district" binding:"required"`
	HospitalState    string `json:"hospital_state" binding:"required"`
	Phone            string `json:"doc_phone" binding:"required,numeric,len=10"`
	Speciality       string `json:"doc_speciality"`
}

// Chemist is the 'chemists' table; the inventory itself lives in Mongo
type Chemist struct {
	ChemistID   uint64    `gorm:"column:chemist_id;primaryKey" json:"chemist_id"`
	UserID      uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	ChemistName string    `gorm:"column:chemist_name;size:100;not null" json:"chemist_name"`
	ShopName    string    `gorm:"size:150" json:"shop_name"`
	Village     string    `gorm:"size:100" json:"village"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Chemist) TableName() string { return "chemists" }

type RegisterChemistInput struct {
	Name     string `json:"chemist_name" binding:"required"`
	Phone    string `json:"phone" binding:"required,min=10,max=15"`
	Password string `json:"password" binding:"required,min=6"`
	ShopName string `json:"shop_name" binding:"required"`
	Village  string `json:"village" binding:"required"`
}
