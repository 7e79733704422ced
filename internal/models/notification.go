package models

import "time"

// Scope says which slice of the hierarchy a notice fans out to
type Scope string

const (
	ScopeSupervisorVillage Scope = "SUPERVISOR_VILLAGE" // supervisor -> ASHAs in the same village
	ScopeLHVSupervisors    Scope = "LHV_SUPERVISORS"    // LHV -> supervisors in the same village
	ScopeSupervisorTeam    Scope = "SUPERVISOR_TEAM"    // supervisor -> ASHAs reporting to them
	ScopeAshaPatients      Scope = "ASHA_PATIENTS"      // ASHA -> patients they registered
	ScopeDirect            Scope = "DIRECT"             // one explicit receiver
)

// Notice is the message being distributed
type Notice struct {
	NoticeID  uint64    `gorm:"column:notice_id;primaryKey" json:"notice_id"`
	SenderID  uint64    `gorm:"not null;index" json:"sender_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Scope     Scope     `gorm:"size:30" json:"scope"`
	CreatedAt time.Time `json:"created_at"`
}

func (Notice) TableName() string { return "notices" }

// Notification is one delivered copy of a notice, per recipient
type Notification struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	NoticeID   uint64    `gorm:"index" json:"notice_id"`
	SenderID   uint64    `gorm:"not null" json:"sender_id"`
	ReceiverID uint64    `gorm:"not null;index" json:"receiver_id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Body       string    `gorm:"type:text" json:"body"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// DeviceToken is the push address of a user, one per user
type DeviceToken struct {
	UserID    uint64    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	FCMToken  string    `gorm:"column:fcm_token;size:255;not null" json:"fcm_token"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DeviceToken) TableName() string { return "device_tokens" }

// Recipient is a resolved fan-out target
type Recipient struct {
	UserID   uint64 `gorm:"column:user_id"`
	FCMToken string `gorm:"column:fcm_token"` // empty when the user never saved a token
}

type CreateNoticeInput struct {
	Title      string  `json:"title" binding:"required,max=200"`
	Body       string  `json:"body" binding:"required"`
	ReceiverID *uint64 `json:"receiver_id"`
}

type ForwardNoticeInput struct {
	Title string `json:"title" binding:"required,max=200"`
	Body  string `json:"body" binding:"required"`
}

type SaveTokenInput struct {
	FCMToken string `json:"fcm_token" binding:"required"`
}
