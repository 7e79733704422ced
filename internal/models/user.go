package models

import (
	"time"
)

// Role of a user account. Fixed at registration.
type Role string

const (
	RolePatient    Role = "PATIENT"
	RoleAsha       Role = "ASHA"
	RoleSupervisor Role = "SUPERVISOR"
	RoleLHV        Role = "LHV"
	RoleDoctor     Role = "DOCTOR"
	RoleChemist    Role = "CHEMIST"
	RoleGovt       Role = "GOVT"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleAsha, RoleSupervisor, RoleLHV, RoleDoctor, RoleChemist, RoleGovt:
		return true
	}
	return false
}

// User is the 'users' table, one row per login regardless of role
type User struct {
	UserID       uint64    `gorm:"column:user_id;primaryKey" json:"user_id"`
	UserName     string    `gorm:"column:user_name;size:100;not null" json:"user_name"`
	Phone        string    `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	PasswordHash string    `gorm:"column:user_password;not null" json:"-"` // never sent back to the client
	Role         Role      `gorm:"column:user_role;size:20;not null;index" json:"user_role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// LoginInput is shared by every login route
type LoginInput struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the public projection of a user row
type UserSummary struct {
	UserID   uint64 `json:"user_id"`
	UserName string `json:"user_name"`
	Phone    string `json:"phone"`
	Role     Role   `json:"user_role"`
}

func (u User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, UserName: u.UserName, Phone: u.Phone, Role: u.Role}
}
